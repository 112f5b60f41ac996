package contract

import "context"

// ResultSet preserves column order from the executed SELECT so downstream
// rendering can emit a stable header row.
type ResultSet struct {
	Columns []string
	Rows    []map[string]interface{}
}

// StructuredRepository is the read-only boundary to the relational store.
type StructuredRepository interface {
	// ExecSelect runs an already-validated SELECT statement.
	ExecSelect(ctx context.Context, sql string) (*ResultSet, error)

	// FallbackConsultationPricing runs the hand-written consultation
	// pricing query and returns its rows plus the SQL text it used.
	FallbackConsultationPricing(ctx context.Context) (*ResultSet, string, error)

	// LatestBookingLink returns the most recently updated non-null
	// clinic_info.booking_link, or "" when none exists.
	LatestBookingLink(ctx context.Context) (string, error)
}
