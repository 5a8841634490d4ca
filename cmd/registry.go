package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/scorecard/internal/model"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Inspect subcomponent content",
}

var registryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured subcomponents",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := initRegistry(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		return printSubcomponents(cmd.OutOrStdout(), reg.List())
	},
}

var registryShowCmd = &cobra.Command{
	Use:   "show <subcomponent>",
	Short: "Print a subcomponent's dimensions and use cases as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := initRegistry(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		sub, ok := reg.Lookup(args[0])
		if !ok {
			return eris.Errorf("registry: subcomponent %q not found", args[0])
		}
		return writeJSON(cmd.OutOrStdout(), sub)
	},
}

func init() {
	registryCmd.AddCommand(registryListCmd, registryShowCmd)
	rootCmd.AddCommand(registryCmd)
}

func printSubcomponents(w io.Writer, subs []model.Subcomponent) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDIMENSIONS\tUSE CASES")
	for _, s := range subs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", s.ID, s.Name, len(s.Dimensions), len(s.UseCases))
	}
	return eris.Wrap(tw.Flush(), "print registry")
}
