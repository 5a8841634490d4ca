package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/scorecard/internal/model"
)

var schemaCmd = &cobra.Command{
	Use:       "schema <request|result|history>",
	Short:     "Print the JSON Schema of a wire type",
	Args:      cobra.ExactArgs(1),
	ValidArgs: model.SchemaNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := model.Schema(args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), s)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
