package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/scorecard/internal/analysis"
	"github.com/sells-group/scorecard/internal/config"
	"github.com/sells-group/scorecard/internal/model"
	"github.com/sells-group/scorecard/internal/render"
)

var (
	analyzeRender string
	analyzeOut    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <request.json>...",
	Short: "Analyze one or more request files and print the results as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx, config.ModeCLI)
		if err != nil {
			return err
		}
		defer env.Close()

		results, err := analyzeFiles(ctx, env.Service, args, cfg.Batch.Concurrency)
		if err != nil {
			return err
		}

		if analyzeRender != "" {
			if err := writeReports(ctx, env.Service, results, analyzeRender, analyzeOut); err != nil {
				return err
			}
		}
		return writeJSON(cmd.OutOrStdout(), results)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeRender, "render", "", "also render each result (html or xlsx)")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", ".", "directory for rendered reports")
	rootCmd.AddCommand(analyzeCmd)
}

// readRequest decodes one request file.
func readRequest(path string) (model.AnalysisRequest, error) {
	var req model.AnalysisRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, eris.Wrapf(err, "analyze: read %s", path)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, eris.Wrapf(err, "analyze: decode %s", path)
	}
	return req, nil
}

// analyzeFiles runs the files concurrently. Results keep argument order; the
// first failure cancels the rest.
func analyzeFiles(ctx context.Context, svc *analysis.Service, paths []string, concurrency int) ([]*model.AnalysisResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]*model.AnalysisResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			req, err := readRequest(path)
			if err != nil {
				return err
			}
			res, err := svc.Analyze(gctx, req)
			if err != nil {
				return eris.Wrapf(err, "analyze: %s", path)
			}
			zap.L().Info("analysis complete",
				zap.String("file", path),
				zap.String("subcomponent", res.SubcomponentID),
				zap.Float64("overall", res.OverallScore),
			)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// writeReports renders every result into dir.
func writeReports(ctx context.Context, svc *analysis.Service, results []*model.AnalysisResult, format, dir string) error {
	r, err := render.New(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrap(err, "analyze: create output dir")
	}
	for _, res := range results {
		doc, err := svc.RenderResult(ctx, r, res)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, doc.Filename)
		if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
			return eris.Wrapf(err, "analyze: write %s", path)
		}
		zap.L().Info("report written", zap.String("path", path))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode output")
}
