package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/domgraph/api/schemas"
	"github.com/xkilldash9x/domgraph/internal/browser/dom"
	"github.com/xkilldash9x/domgraph/internal/config"
	"github.com/xkilldash9x/domgraph/internal/observability"
)

// query pairs an expression with the language it is written in.
type query struct {
	mode       schemas.QueryMode
	expression string
}

func (q query) evaluate(doc *dom.Document) ([]*dom.Element, error) {
	if q.mode == schemas.QueryModeXPath {
		return doc.Evaluate(q.expression)
	}
	list, err := doc.QuerySelectorAll(q.expression)
	if err != nil {
		return nil, err
	}
	return list.Slice(), nil
}

// newQueryCmd creates and configures the `query` command.
func newQueryCmd() *cobra.Command {
	var (
		selector string
		xpath    string
		flags    documentFlags
	)

	queryCmd := &cobra.Command{
		Use:   "query [files...]",
		Short: "Runs a CSS selector or XPath expression over one or more documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			q := query{mode: schemas.QueryModeSelector, expression: selector}
			if cmd.Flags().Changed("xpath") {
				q = query{mode: schemas.QueryModeXPath, expression: xpath}
			}

			logger := observability.GetLogger().Named("query")
			logger.Info("Running query",
				zap.String("mode", string(q.mode)),
				zap.String("expression", q.expression),
				zap.Int("files", len(args)),
				zap.Int("concurrency", cfg.Query().Concurrency),
			)

			results, err := runQuery(cmd.Context(), cfg, q, args, logger)
			if err != nil {
				return err
			}
			return writeQueryResults(cmd.OutOrStdout(), cfg.Query().Format, results)
		},
	}

	queryCmd.Flags().StringVarP(&selector, "selector", "s", "", "CSS selector to match")
	queryCmd.Flags().StringVarP(&xpath, "xpath", "x", "", "XPath expression to evaluate")
	queryCmd.MarkFlagsMutuallyExclusive("selector", "xpath")
	queryCmd.MarkFlagsOneRequired("selector", "xpath")
	flags.register(queryCmd)
	return queryCmd
}

func runQuery(ctx context.Context, cfg config.Interface, q query, files []string, logger *zap.Logger) ([]schemas.QueryResult, error) {
	return processFiles(ctx, files, cfg.Query().Concurrency, func(_ context.Context, file string) (schemas.QueryResult, error) {
		doc, err := loadDocument(file, cfg, logger)
		if err != nil {
			return schemas.QueryResult{}, err
		}
		els, err := q.evaluate(doc)
		if err != nil {
			return schemas.QueryResult{}, fmt.Errorf("%s: %w", file, err)
		}

		res := schemas.QueryResult{
			File:       file,
			Mode:       q.mode,
			Expression: q.expression,
			Count:      len(els),
			Matches:    make([]schemas.Match, 0, len(els)),
		}
		for _, el := range els {
			res.Matches = append(res.Matches, newMatch(el))
		}
		logger.Debug("Query evaluated", zap.String("file", file), zap.Int("matches", res.Count))
		return res, nil
	})
}

func newMatch(el *dom.Element) schemas.Match {
	return schemas.Match{
		NodeID:    int(el.NodeID()),
		Tag:       strings.ToLower(el.NodeName()),
		XPath:     el.XPath(),
		Text:      strings.Join(strings.Fields(el.TextContent()), " "),
		OuterHTML: el.OuterHTML(),
	}
}

func writeQueryResults(w io.Writer, format string, results []schemas.QueryResult) error {
	if format == config.FormatJSON {
		return writeJSON(w, results)
	}
	for _, res := range results {
		if _, err := fmt.Fprintf(w, "== %s (%d matches)\n", res.File, res.Count); err != nil {
			return err
		}
		for _, m := range res.Matches {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", m.XPath, m.Text); err != nil {
				return err
			}
		}
	}
	return nil
}
