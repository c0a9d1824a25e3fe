package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/loupectl/output"
	"github.com/Kargones/loupe-ci/internal/pkg/apperrors"
)

func (s *session) newVersionsCmd() *cobra.Command {
	var product, application string
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Версии приложения",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, a, err := s.productApp(product, application)
			if err != nil {
				return err
			}
			client, tenant, err := s.client()
			if err != nil {
				return err
			}
			resp, err := client.GetVersions(cmd.Context(), tenant, p, a)
			if err != nil {
				return err
			}
			versions := resp.Data
			if versions == nil {
				versions = []loupe.VersionSummary{}
			}

			pr, err := s.printer()
			if err != nil {
				return err
			}
			return pr.Print(versions, func() error {
				if len(versions) == 0 {
					pr.Info(fmt.Sprintf("Версии %s/%s не найдены", p, a))
					return nil
				}
				rows := make([][]string, 0, len(versions))
				for _, v := range versions {
					rows = append(rows, []string{v.ID, v.Version.Title, v.Caption})
				}
				return pr.Table([]string{"ID", "VERSION", "CAPTION"}, rows)
			})
		},
	}
	addProductAppFlags(cmd, &product, &application)
	return cmd
}

func (s *session) newIssuesCmd() *cobra.Command {
	var product, application, version string
	cmd := &cobra.Command{
		Use:   "issues",
		Short: "Проблемы версии; --version может содержать '*'",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, a, err := s.productApp(product, application)
			if err != nil {
				return err
			}
			spec := coalesce(version, s.cfg.Params.Version)
			if spec == "" {
				return apperrors.NewAppError(apperrors.ErrCommandParams, "не задан обязательный флаг: --version", nil)
			}
			client, tenant, err := s.client()
			if err != nil {
				return err
			}
			issues, err := client.GetIssues(cmd.Context(), tenant, spec, p, a)
			if err != nil {
				return err
			}
			records := loupe.NewIssueRecords(client.BaseURL(), issues)

			pr, err := s.printer()
			if err != nil {
				return err
			}
			return pr.Print(records, func() error {
				if len(records) == 0 {
					pr.Info(fmt.Sprintf("Проблем для версии %s не найдено", spec))
					return nil
				}
				rows := make([][]string, 0, len(records))
				for _, r := range records {
					status := r.Status
					if r.Closed {
						status += " (closed)"
					}
					rows = append(rows, []string{r.ID, status, r.Title, r.Submitter, output.FormatTime(r.SubmittedDate), r.URL})
				}
				return pr.Table([]string{"ID", "STATUS", "TITLE", "SUBMITTER", "SUBMITTED", "URL"}, rows)
			})
		},
	}
	addProductAppFlags(cmd, &product, &application)
	cmd.Flags().StringVar(&version, "version", "", "версия или шаблон (по умолчанию LOUPE_VERSION)")
	return cmd
}
