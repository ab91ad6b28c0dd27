package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pokedex-web/service"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print the detail view of a pokemon as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initializeApp()
		if err != nil {
			return err
		}

		detail, err := application.Catalog.GetPokemonDetail(application.RequestContext(cmd.Context()), args[0])
		if errors.Is(err, service.ErrPokemonNotFound) {
			return fmt.Errorf("pokemon %q not found", args[0])
		}
		if err != nil {
			return err
		}
		return writeJSON(detail)
	},
}
