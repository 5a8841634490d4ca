package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/scorecard/internal/config"
	"github.com/sells-group/scorecard/internal/model"
	"github.com/sells-group/scorecard/internal/store"
)

var (
	historySubcomponent string
	historyLimit        int
	historyOffset       int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect stored analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analyses, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), config.ModeCLI)
		if err != nil {
			return err
		}
		defer env.Close()

		recs, err := env.Service.History(cmd.Context(), store.HistoryFilter{
			SubcomponentID: historySubcomponent,
			Limit:          historyLimit,
			Offset:         historyOffset,
		})
		if err != nil {
			return err
		}
		return printHistory(cmd.OutOrStdout(), recs)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <subcomponent> <session>",
	Short: "Print one stored analysis as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), config.ModeCLI)
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.Service.Get(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	historyListCmd.Flags().StringVar(&historySubcomponent, "subcomponent", "", "filter by subcomponent id")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", store.DefaultListLimit, "max records")
	historyListCmd.Flags().IntVar(&historyOffset, "offset", 0, "records to skip")
	historyCmd.AddCommand(historyListCmd, historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func printHistory(w io.Writer, recs []model.HistoryRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBCOMPONENT\tSESSION\tSCORE\tBAND\tUPDATED")
	for _, r := range recs {
		band := ""
		if r.Result != nil {
			band = r.Result.OverallBand
		}
		fmt.Fprintf(tw, "%s\t%s\t%.0f\t%s\t%s\n",
			r.SubcomponentID, r.SessionID, r.OverallScore, band, r.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return eris.Wrap(tw.Flush(), "print history")
}
