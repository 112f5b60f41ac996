package structured

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"clinic-concierge-be/internal/pkg/logger"
	"clinic-concierge-be/internal/repository/contract"
	"clinic-concierge-be/pkg/llm"
	"clinic-concierge-be/pkg/rag"
	"clinic-concierge-be/pkg/rag/prompt"
)

// Executor answers questions against the relational store: it generates a
// read-only SELECT from the question, executes it, and falls back to a
// hand-written consultation pricing query when execution fails.
type Executor struct {
	llmProvider llm.LLMProvider
	repo        contract.StructuredRepository
	rowLimit    int
	logger      logger.ILogger
}

func NewExecutor(llmProvider llm.LLMProvider, repo contract.StructuredRepository, rowLimit int, logger logger.ILogger) *Executor {
	if rowLimit <= 0 {
		rowLimit = 5
	}
	return &Executor{
		llmProvider: llmProvider,
		repo:        repo,
		rowLimit:    rowLimit,
		logger:      logger,
	}
}

// Run never returns an error: every failure degrades to an empty, not-ok
// result or to the fallback query.
func (e *Executor) Run(ctx context.Context, question string) rag.SQLResult {
	expanded := rag.ExpandQuery(question)

	generated, err := e.llmProvider.Generate(ctx, prompt.SQLGeneration(expanded, e.rowLimit),
		llm.WithTemperature(0.0))
	if err != nil {
		e.logger.Warn("structured", "sql generation failed", map[string]interface{}{"error": err.Error()})
		return rag.SQLResult{}
	}

	query := CleanStatement(generated)
	if query == "" {
		return rag.SQLResult{}
	}

	if err := ValidateSelect(query); err != nil {
		// A statement that is not provably read-only must never reach
		// execution; take the fallback path instead.
		e.logger.Warn("structured", "generated statement rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return e.fallback(ctx, query)
	}

	rows, err := e.repo.ExecSelect(ctx, query)
	if err != nil {
		e.logger.Warn("structured", "query execution failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return e.fallback(ctx, query)
	}

	text := RenderTable(rows)
	return rag.SQLResult{
		OK:   strings.TrimSpace(text) != "",
		SQL:  query,
		Rows: rows,
		Text: text,
	}
}

// fallback runs the fixed consultation-pricing query. On success the
// result carries the fallback's own SQL text, not the failed statement.
func (e *Executor) fallback(ctx context.Context, failedSQL string) rag.SQLResult {
	rows, fallbackSQL, err := e.repo.FallbackConsultationPricing(ctx)
	if err != nil || rows == nil || len(rows.Rows) == 0 {
		return rag.SQLResult{SQL: failedSQL}
	}
	return rag.SQLResult{
		OK:   true,
		SQL:  fallbackSQL,
		Rows: rows,
		Text: RenderTable(rows),
	}
}

// CleanStatement strips code fences, surrounding whitespace, and a
// trailing semicolon from model output.
func CleanStatement(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```sql")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ";")
	return strings.TrimSpace(s)
}

var forbiddenKeyword = regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter|create|truncate|grant|revoke|merge|copy|call|do|execute)\b`)

// ValidateSelect enforces the read-only contract on generated statements:
// a single statement that starts with SELECT and contains no DML/DDL
// keywords anywhere.
func ValidateSelect(query string) error {
	trimmed := strings.TrimSpace(query)
	if !strings.HasPrefix(strings.ToUpper(trimmed), "SELECT") {
		return fmt.Errorf("statement does not start with SELECT")
	}
	if strings.Contains(trimmed, ";") {
		return fmt.Errorf("multiple statements are not allowed")
	}
	if kw := forbiddenKeyword.FindString(trimmed); kw != "" {
		return fmt.Errorf("forbidden keyword %q in statement", kw)
	}
	return nil
}

// RenderTable renders rows as a GitHub-style markdown table, the format
// the generation prompt tells the model to parse. Column order follows
// the executed SELECT.
func RenderTable(rs *contract.ResultSet) string {
	if rs == nil || len(rs.Rows) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("| ")
	b.WriteString(strings.Join(rs.Columns, " | "))
	b.WriteString(" |\n|")
	for range rs.Columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, row := range rs.Rows {
		b.WriteString("| ")
		cells := make([]string, len(rs.Columns))
		for i, col := range rs.Columns {
			cells[i] = renderCell(row[col])
		}
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCell(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
