package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "categories",
		Aliases:           []string{"category"},
		Short:             "Kategorien anzeigen",
		PersistentPreRunE: a.preRun,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Alle Kategorien nach Name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.categoryRepo().GetAll(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer.Categories(list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Eine Kategorie anzeigen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			category, err := a.categoryRepo().GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if category == nil {
				return fmt.Errorf("Kategorie %d nicht gefunden", id)
			}
			return a.printer.Category(category)
		},
	})

	return cmd
}
