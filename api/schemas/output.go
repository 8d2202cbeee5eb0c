// File: api/schemas/output.go
package schemas

// QueryMode names how a query expression is evaluated.
type QueryMode string

const (
	QueryModeSelector QueryMode = "selector"
	QueryModeXPath    QueryMode = "xpath"
)

// Match is one node returned by a query.
type Match struct {
	NodeID    int    `json:"node_id"`
	Tag       string `json:"tag"`
	XPath     string `json:"xpath"`
	Text      string `json:"text"`
	OuterHTML string `json:"outer_html"`
}

// QueryResult holds the matches for a single input file.
type QueryResult struct {
	File       string    `json:"file"`
	Mode       QueryMode `json:"mode"`
	Expression string    `json:"expression"`
	Count      int       `json:"count"`
	Matches    []Match   `json:"matches"`
}

// FormSummary describes one form element in an inspected document.
type FormSummary struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Action   string `json:"action,omitempty"`
	Method   string `json:"method,omitempty"`
	Controls int    `json:"controls"`
}

// InspectReport summarizes a parsed document.
type InspectReport struct {
	File         string        `json:"file"`
	URL          string        `json:"url"`
	Title        string        `json:"title"`
	ElementCount int           `json:"element_count"`
	IDs          []string      `json:"ids"`
	Forms        []FormSummary `json:"forms"`
	Links        []string      `json:"links"`
}
