package store

import (
	"context"
	"time"

	"github.com/semestra/semestra/internal/records"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
	Subject string    // exact subject match when set
}

// ImportResult describes one stored batch of raw rows.
type ImportResult struct {
	Batch string
	Rows  int
}

// RowQuery selects stored rows. Empty fields match everything.
type RowQuery struct {
	Source  string
	Student string // case-insensitive exact match on the student name
	Batch   string
}

// SourceSummary counts the rows stored for one source.
type SourceSummary struct {
	Source   string
	Rows     int
	Students int
	Batches  int
}

// RowRepo stores raw result rows as imported from a source system. Rows
// are kept verbatim; normalization happens on read.
type RowRepo interface {
	// ImportRows stores rows under a new batch id.
	ImportRows(ctx context.Context, p records.SourceProfile, rows []records.Row) (ImportResult, error)

	// Rows returns stored rows in import order.
	Rows(ctx context.Context, q RowQuery) ([]records.Row, error)

	// Sources summarizes the stored rows per source.
	Sources(ctx context.Context) ([]SourceSummary, error)

	// DeleteBatch removes one import batch and reports how many rows went.
	DeleteBatch(ctx context.Context, batch string) (int, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	Subject      string // who the request was about, e.g. a student key
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

// LLMUsage is the aggregated usage of one purpose or one model. Key holds
// the purpose or the model id.
type LLMUsage struct {
	Key          string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}
