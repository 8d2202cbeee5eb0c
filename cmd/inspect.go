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

const formControlsSelector = "input, select, textarea, button"

// newInspectCmd creates and configures the `inspect` command.
func newInspectCmd() *cobra.Command {
	var flags documentFlags

	inspectCmd := &cobra.Command{
		Use:   "inspect [files...]",
		Short: "Prints a summary of each document: title, ids, forms and links",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromContext(cmd.Context())
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			logger := observability.GetLogger().Named("inspect")
			reports, err := processFiles(cmd.Context(), args, cfg.Query().Concurrency, func(_ context.Context, file string) (schemas.InspectReport, error) {
				doc, err := loadDocument(file, cfg, logger)
				if err != nil {
					return schemas.InspectReport{}, err
				}
				return inspectDocument(file, doc)
			})
			if err != nil {
				return err
			}
			logger.Debug("Inspection finished", zap.Int("files", len(reports)))
			return writeInspectReports(cmd.OutOrStdout(), cfg.Query().Format, reports)
		},
	}

	flags.register(inspectCmd)
	return inspectCmd
}

func inspectDocument(file string, doc *dom.Document) (schemas.InspectReport, error) {
	report := schemas.InspectReport{
		File:  file,
		URL:   doc.Location().Href(),
		Title: doc.Title(),
		IDs:   []string{},
		Forms: []schemas.FormSummary{},
		Links: []string{},
	}

	all := doc.GetElementsByTagName("*").Slice()
	report.ElementCount = len(all)
	for _, el := range all {
		if id := el.ID(); id != "" {
			report.IDs = append(report.IDs, id)
		}
	}

	for _, form := range doc.Forms().Slice() {
		controls, err := form.QuerySelectorAll(formControlsSelector)
		if err != nil {
			return schemas.InspectReport{}, err
		}
		summary := schemas.FormSummary{
			ID:       form.ID(),
			Name:     form.Name(),
			Controls: controls.Len(),
		}
		if method, ok := form.GetAttribute("method"); ok {
			summary.Method = strings.ToLower(method)
		}
		if action, ok := form.GetAttribute("action"); ok {
			summary.Action = doc.Location().Resolve(action)
		}
		report.Forms = append(report.Forms, summary)
	}

	anchors, err := doc.QuerySelectorAll("a[href]")
	if err != nil {
		return schemas.InspectReport{}, err
	}
	seen := make(map[string]bool)
	anchors.ForEach(func(a *dom.Element, _ int) {
		href := a.Href()
		if href == "" || seen[href] {
			return
		}
		seen[href] = true
		report.Links = append(report.Links, href)
	})
	return report, nil
}

func writeInspectReports(w io.Writer, format string, reports []schemas.InspectReport) error {
	if format == config.FormatJSON {
		return writeJSON(w, reports)
	}
	var b strings.Builder
	for _, r := range reports {
		fmt.Fprintf(&b, "file: %s\n", r.File)
		fmt.Fprintf(&b, "url: %s\n", r.URL)
		fmt.Fprintf(&b, "title: %s\n", r.Title)
		fmt.Fprintf(&b, "elements: %d\n", r.ElementCount)
		fmt.Fprintf(&b, "ids: %s\n", strings.Join(r.IDs, ", "))
		fmt.Fprintf(&b, "forms: %d\n", len(r.Forms))
		for _, f := range r.Forms {
			fmt.Fprintf(&b, "  #%s method=%s action=%s controls=%d\n", f.ID, f.Method, f.Action, f.Controls)
		}
		fmt.Fprintf(&b, "links: %d\n", len(r.Links))
		for _, l := range r.Links {
			fmt.Fprintf(&b, "  %s\n", l)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
