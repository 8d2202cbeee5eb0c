package cmd

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/xkilldash9x/domgraph/api/schemas"
)

func decodeQueryResults(t *testing.T, out string) []schemas.QueryResult {
	t.Helper()
	var results []schemas.QueryResult
	require.NoError(t, json.Unmarshal([]byte(out), &results), "output: %s", out)
	return results
}

func TestQueryCmd_Selector(t *testing.T) {
	page := writeFile(t, "catalog.html", catalogHTML)

	out, err := executeCommand(t, "query", "--selector", ".item", page)
	require.NoError(t, err)

	results := decodeQueryResults(t, out)
	require.Len(t, results, 1)
	res := results[0]
	assert.Equal(t, page, res.File)
	assert.Equal(t, schemas.QueryModeSelector, res.Mode)
	assert.Equal(t, ".item", res.Expression)
	assert.Equal(t, 2, res.Count)

	for _, m := range res.Matches {
		assert.Positive(t, m.NodeID)
	}
	got := make([]schemas.Match, len(res.Matches))
	for i, m := range res.Matches {
		m.NodeID = 0
		got[i] = m
	}
	want := []schemas.Match{
		{Tag: "li", XPath: "//*[@id='items']/li[1]", Text: "One", OuterHTML: `<li class="item">One</li>`},
		{Tag: "li", XPath: "//*[@id='items']/li[2]", Text: "Two", OuterHTML: `<li class="item">Two</li>`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryCmd_XPathRoundTrip(t *testing.T) {
	page := writeFile(t, "catalog.html", catalogHTML)

	out, err := executeCommand(t, "query", "-s", "li:last-child", page)
	require.NoError(t, err)
	first := decodeQueryResults(t, out)[0].Matches
	require.Len(t, first, 1)

	out, err = executeCommand(t, "query", "--xpath", first[0].XPath, page)
	require.NoError(t, err)
	second := decodeQueryResults(t, out)[0]
	assert.Equal(t, schemas.QueryModeXPath, second.Mode)
	require.Len(t, second.Matches, 1)
	// Node ids are per document, so only the content is compared.
	assert.Equal(t, first[0].XPath, second.Matches[0].XPath)
	assert.Equal(t, first[0].OuterHTML, second.Matches[0].OuterHTML)
	assert.Equal(t, "Two", second.Matches[0].Text)
}

func TestQueryCmd_TextFormat(t *testing.T) {
	page := writeFile(t, "catalog.html", catalogHTML)

	out, err := executeCommand(t, "query", "-s", ".item", "--format", "text", page)
	require.NoError(t, err)

	want := fmt.Sprintf("== %s (2 matches)\n//*[@id='items']/li[1]\tOne\n//*[@id='items']/li[2]\tTwo\n", page)
	assert.Equal(t, want, out)
}

func TestQueryCmd_ManyFilesConcurrently(t *testing.T) {
	defer goleak.VerifyNone(t)

	var files []string
	for i := 0; i < 12; i++ {
		var b strings.Builder
		b.WriteString("<ul>")
		for j := 0; j <= i; j++ {
			b.WriteString("<li>x</li>")
		}
		b.WriteString("</ul>")
		files = append(files, writeFile(t, fmt.Sprintf("page%02d.html", i), b.String()))
	}

	args := append([]string{"query", "-s", "li", "--concurrency", "3"}, files...)
	out, err := executeCommand(t, args...)
	require.NoError(t, err)

	results := decodeQueryResults(t, out)
	require.Len(t, results, len(files))
	for i, res := range results {
		assert.Equal(t, files[i], res.File, "results keep argument order")
		assert.Equal(t, i+1, res.Count)
	}
}

func TestQueryCmd_Errors(t *testing.T) {
	defer goleak.VerifyNone(t)
	page := writeFile(t, "catalog.html", catalogHTML)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no files", []string{"query", "-s", "li"}, "requires at least 1 arg"},
		{"no expression", []string{"query", page}, "at least one of the flags in the group [selector xpath] is required"},
		{"both expressions", []string{"query", "-s", "li", "-x", "//li", page}, "were all set"},
		{"invalid selector", []string{"query", "-s", "div[", page}, "'div[' is not a valid selector."},
		{"invalid xpath", []string{"query", "-x", "//li[", page}, "is not a valid XPath expression"},
		{"missing file", []string{"query", "-s", "li", page, "/nonexistent/page.html"}, "failed to open /nonexistent/page.html"},
		{"zero concurrency", []string{"query", "-s", "li", "-j", "0", page}, "concurrency must be a positive integer"},
		{"unknown format", []string{"query", "-s", "li", "-f", "xml", page}, `format must be "json" or "text"`},
		{"relative url", []string{"query", "-s", "li", "--url", "nope", page}, "document.url is invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
