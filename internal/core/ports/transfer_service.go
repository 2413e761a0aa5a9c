package ports

import (
	"context"
	"io"
)

// ImportResult accumulates the outcome of one bulk import invocation.
// Success means at least one record was persisted; a batch can succeed while
// still reporting per-record failures (partial success).
type ImportResult struct {
	Success         bool     `json:"success"`
	TotalRecords    int      `json:"totalRecords"`
	ImportedRecords int      `json:"importedRecords"`
	FailedRecords   int      `json:"failedRecords"`
	Errors          []string `json:"errors"`
}

// ValidationResult is the outcome of a read-only pre-flight check. It never
// reflects persistence; Messages carry informational counts.
type ValidationResult struct {
	Valid       bool     `json:"valid"`
	RecordCount int      `json:"recordCount"`
	Messages    []string `json:"messages"`
	Errors      []string `json:"errors"`
}

// ImportService ingests user-supplied JSON or CSV location batches.
// Streams are read once, start to finish, and remain owned by the caller.
// All failures, structural and per-record, are reported inside the result;
// a structural failure carries zero counts and a single error message.
type ImportService interface {
	ImportJSON(ctx context.Context, r io.Reader, userID string) *ImportResult
	ImportCSV(ctx context.Context, r io.Reader, userID string) *ImportResult
	ValidateJSON(ctx context.Context, r io.Reader) *ValidationResult
	ValidateCSV(ctx context.Context, r io.Reader) *ValidationResult
}

// ExportService serializes a user's stored locations. The output defines the
// round-trip contract the import side honors.
type ExportService interface {
	ExportJSON(ctx context.Context, userID string) ([]byte, error)
	ExportCSV(ctx context.Context, userID string) ([]byte, error)
}
