package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Tables are declared with ent's migration schema and created on Open.
// Both tables carry the shared event columns: a global sequence number
// and a UTC timestamp.

var (
	resultRowsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "batch", Type: field.TypeString},
		{Name: "source", Type: field.TypeString},
		{Name: "student", Type: field.TypeString, Default: ""},
		{Name: "payload", Type: field.TypeString, Size: 2147483647},
	}
	resultRowsTable = &schema.Table{
		Name:       "result_rows",
		Columns:    resultRowsColumns,
		PrimaryKey: []*schema.Column{resultRowsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "resultrow_batch", Columns: []*schema.Column{resultRowsColumns[3]}},
			{Name: "resultrow_source_student", Columns: []*schema.Column{resultRowsColumns[4], resultRowsColumns[5]}},
		},
	}

	llmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "subject", Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[5]}},
			{Name: "llmrequestevent_subject", Columns: []*schema.Column{llmRequestEventsColumns[6]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{llmRequestEventsColumns[10]}},
		},
	}

	tables = []*schema.Table{
		resultRowsTable,
		llmRequestEventsTable,
	}
)
