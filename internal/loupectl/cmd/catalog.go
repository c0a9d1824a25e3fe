package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Kargones/loupe-ci/internal/adapter/loupe"
	"github.com/Kargones/loupe-ci/internal/constants"
	"github.com/Kargones/loupe-ci/internal/suggest"
)

func (s *session) newTenantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   constants.SuggestTenants,
		Short: "Арендаторы, доступные пользователю",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := s.client()
			if err != nil {
				return err
			}
			names, err := suggest.Tenants(cmd.Context(), client, suggest.Query{})
			if err != nil {
				return err
			}
			return s.printNames(names, "TENANT", "Арендаторы не найдены")
		},
	}
}

func (s *session) newProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   constants.SuggestProducts,
		Short: "Продукты арендатора",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, tenant, err := s.client()
			if err != nil {
				return err
			}
			names, err := suggest.Products(cmd.Context(), client, suggest.Query{Tenant: tenant})
			if err != nil {
				return err
			}
			return s.printNames(names, "PRODUCT", "Продукты не найдены")
		},
	}
}

func (s *session) newApplicationsCmd() *cobra.Command {
	var product string
	cmd := &cobra.Command{
		Use:   constants.SuggestApplications,
		Short: "Приложения арендатора, при заданном --product только его",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, tenant, err := s.client()
			if err != nil {
				return err
			}
			product = coalesce(product, s.cfg.Params.Product)
			names, err := suggest.Applications(cmd.Context(), client, suggest.Query{Tenant: tenant, Product: product})
			if err != nil {
				return err
			}
			return s.printNames(names, "APPLICATION", "Приложения не найдены")
		},
	}
	cmd.Flags().StringVar(&product, "product", "", "продукт (по умолчанию LOUPE_PRODUCT)")
	return cmd
}

// listFunc — запрос справочника приложения.
type listFunc func(client loupe.Client, ctx context.Context, tenant, product, application string) ([]string, error)

var listFuncs = map[string]listFunc{
	constants.SuggestReleaseTypes:    loupe.Client.GetReleaseTypes,
	constants.SuggestPromotionLevels: loupe.Client.GetPromotionLevels,
}

// newListCmd создаёт команду справочника версии (типы релиза, уровни продвижения).
// В отличие от suggest справочник запрашивается и без арендатора.
func (s *session) newListCmd(kind, short, header string) *cobra.Command {
	var product, application string
	cmd := &cobra.Command{
		Use:   kind,
		Short: short,
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
			names, err := listFuncs[kind](client, cmd.Context(), tenant, p, a)
			if err != nil {
				return err
			}
			return s.printNames(names, header, "Значения не найдены")
		},
	}
	addProductAppFlags(cmd, &product, &application)
	return cmd
}

func addProductAppFlags(cmd *cobra.Command, product, application *string) {
	cmd.Flags().StringVar(product, "product", "", "продукт (по умолчанию LOUPE_PRODUCT)")
	cmd.Flags().StringVar(application, "application", "", "приложение (по умолчанию LOUPE_APPLICATION)")
}

// printNames печатает список названий одной колонкой.
func (s *session) printNames(names []string, header, empty string) error {
	p, err := s.printer()
	if err != nil {
		return err
	}
	if names == nil {
		names = []string{}
	}
	return p.Print(names, func() error {
		if len(names) == 0 {
			p.Info(empty)
			return nil
		}
		rows := make([][]string, 0, len(names))
		for _, n := range names {
			rows = append(rows, []string{n})
		}
		return p.Table([]string{header}, rows)
	})
}
