package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/scorecard/internal/config"
)

var (
	reportFormat string
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report <subcomponent> <session>",
	Short: "Render a stored analysis as HTML or XLSX",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context(), config.ModeCLI)
		if err != nil {
			return err
		}
		defer env.Close()

		format := reportFormat
		if format == "" {
			format = cfg.Render.DefaultFormat
		}
		doc, err := env.Service.Report(cmd.Context(), args[0], args[1], format)
		if err != nil {
			return err
		}

		if reportOutput == "-" {
			_, err := cmd.OutOrStdout().Write(doc.Data)
			return eris.Wrap(err, "report: write stdout")
		}
		path := reportOutput
		if path == "" {
			path = doc.Filename
		}
		if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
			return eris.Wrapf(err, "report: write %s", path)
		}
		zap.L().Info("report written", zap.String("path", path), zap.Int("bytes", len(doc.Data)))
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "", "html or xlsx (default from config)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output path, - for stdout (default: generated file name)")
	rootCmd.AddCommand(reportCmd)
}
