package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/domgraph/internal/browser/dom"
	"github.com/xkilldash9x/domgraph/internal/config"
)

// loadDocument parses one file into a Document configured from cfg.
func loadDocument(path string, cfg config.Interface, logger *zap.Logger) (*dom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rect := cfg.Layout().DefaultRect()
	doc, err := dom.NewDocumentFromReader(f, dom.Options{
		URL:         cfg.Document().URL,
		Referrer:    cfg.Document().Referrer,
		Logger:      logger.With(zap.String("file", path)),
		DefaultRect: &rect,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return doc, nil
}

// processFiles runs fn for every file with at most limit in flight. Each
// call builds its own Document, so nothing is shared between goroutines.
// Results keep the order of files. The first error cancels the rest.
func processFiles[T any](ctx context.Context, files []string, limit int, fn func(ctx context.Context, file string) (T, error)) ([]T, error) {
	results := make([]T, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := fn(ctx, file)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// documentFlags are the overrides shared by commands that read documents.
type documentFlags struct {
	url         string
	format      string
	concurrency int
}

func (f *documentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.url, "url", "", "URL the documents are treated as loaded from")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format (json or text)")
	cmd.Flags().IntVarP(&f.concurrency, "concurrency", "j", 0, "number of files processed in parallel")
}

// apply copies explicitly set flags onto cfg and revalidates it.
func (f *documentFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.SetDocumentURL(f.url)
	}
	if flags.Changed("format") {
		cfg.SetQueryFormat(f.format)
	}
	if flags.Changed("concurrency") {
		cfg.SetQueryConcurrency(f.concurrency)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}
