package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Kargones/loupe-ci/internal/config"
)

func (s *session) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Работа с файлом конфигурации",
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Создать пример файла конфигурации",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := config.WriteTemplate(path, config.Template()); err != nil {
				return err
			}
			pr, err := s.printer()
			if err != nil {
				return err
			}
			pr.Success("Конфигурация записана в " + path + "; задайте пароль через LOUPE_PASSWORD")
			return nil
		},
	}
	initCmd.Flags().StringVar(&path, "path", "loupe.yaml", "путь к создаваемому файлу")

	cmd.AddCommand(initCmd)
	return cmd
}
