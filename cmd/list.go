package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pokedex-web/models"
)

var listFilter struct {
	typeName string
	weakness string
	height   string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the first catalog page as JSON, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := initializeApp()
		if err != nil {
			return err
		}

		filter := models.QueryFilter{
			Type:     listFilter.typeName,
			Weakness: listFilter.weakness,
			Height:   models.HeightBucket(listFilter.height),
		}
		if !filter.Height.Valid() {
			logger.Warn("unrecognized height filter, nothing will match", zap.String("height", listFilter.height))
		}
		filtered := cmd.Flags().Changed("type") || cmd.Flags().Changed("weakness") || cmd.Flags().Changed("height")

		entries, err := application.Catalog.ListPokemon(application.RequestContext(cmd.Context()), filter, filtered)
		if err != nil {
			return err
		}
		return writeJSON(entries)
	},
}

func init() {
	listCmd.Flags().StringVar(&listFilter.typeName, "type", "", "keep pokemon of this type")
	listCmd.Flags().StringVar(&listFilter.weakness, "weakness", "", "keep pokemon weak to this type")
	listCmd.Flags().StringVar(&listFilter.height, "height", "", "keep pokemon in this height bucket (small, medium, large)")
}

func writeJSON(v any) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
