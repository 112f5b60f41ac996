package rag

import (
	"strings"

	"clinic-concierge-be/internal/repository/contract"
	"clinic-concierge-be/pkg/store"
)

// SQLResult is the outcome of the structured retrieval branch.
type SQLResult struct {
	OK   bool
	SQL  string
	Rows *contract.ResultSet
	Text string
}

// DocsResult is the outcome of the unstructured retrieval branch.
type DocsResult struct {
	OK   bool
	Text string
	Docs []store.Document
}

// Retrieval bundles both branch outcomes for context assembly.
type Retrieval struct {
	SQL  SQLResult
	Docs DocsResult
}

// BuildContext merges the branch results into the context block handed to
// generation. Failed or empty branches are omitted entirely so the
// generator is never told about them.
func BuildContext(results Retrieval) string {
	var parts []string
	if results.SQL.OK && results.SQL.Text != "" {
		parts = append(parts, "## Structured Results (SQL)\n"+results.SQL.Text)
	}
	if results.Docs.OK && results.Docs.Text != "" {
		parts = append(parts, "## Unstructured Context (Docs)\n"+results.Docs.Text)
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}
