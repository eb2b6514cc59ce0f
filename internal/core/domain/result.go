package domain

import "github.com/shopspring/decimal"

// GroupRow is one row of an executed recipe: the grouping key values in
// recipe order plus the aggregate value.
type GroupRow struct {
	Keys  []string
	Value decimal.Decimal
}

// ResultKind discriminates the shapes a query can produce. The original
// handlers mixed scalars, dicts, lists and pre-formatted message rows per
// intent; everything is normalized into QueryResult at the dispatcher
// boundary so the formatter only deals with one type.
type ResultKind int

const (
	ResultEmpty ResultKind = iota
	ResultRecord
	ResultRecords
	// ResultMessage carries a pre-formatted sentence ("recipe ran but found
	// nothing") that must be surfaced verbatim.
	ResultMessage
	// ResultEnvelope is the total-quantity success/failure envelope, the one
	// result whose execution fault stays distinguishable from a zero value.
	ResultEnvelope
)

// QuantityEnvelope wraps the total-quantity aggregate.
type QuantityEnvelope struct {
	Success       bool   `json:"success"`
	TotalQuantity int64  `json:"total_quantity"`
	Message       string `json:"message,omitempty"`
}

// QueryResult is the discriminated result of executing a catalog entry.
// Exactly the field matching Kind is meaningful.
type QueryResult struct {
	Kind     ResultKind
	Record   map[string]any
	Records  []map[string]any
	Message  string
	Envelope *QuantityEnvelope
}

func EmptyResult() QueryResult { return QueryResult{Kind: ResultEmpty} }

func RecordResult(rec map[string]any) QueryResult {
	return QueryResult{Kind: ResultRecord, Record: rec}
}

func RecordsResult(recs []map[string]any) QueryResult {
	return QueryResult{Kind: ResultRecords, Records: recs}
}

func MessageResult(msg string) QueryResult {
	return QueryResult{Kind: ResultMessage, Message: msg}
}

func EnvelopeResult(env QuantityEnvelope) QueryResult {
	return QueryResult{Kind: ResultEnvelope, Envelope: &env}
}

// IsEmpty reports whether the result carries no displayable data.
func (r QueryResult) IsEmpty() bool {
	switch r.Kind {
	case ResultEmpty:
		return true
	case ResultRecord:
		return len(r.Record) == 0
	case ResultRecords:
		return len(r.Records) == 0
	default:
		return false
	}
}

// Data returns the payload placed in the response envelope's data field.
func (r QueryResult) Data() any {
	switch r.Kind {
	case ResultRecord:
		return r.Record
	case ResultRecords:
		return r.Records
	case ResultMessage:
		return []map[string]any{{"Message": r.Message}}
	case ResultEnvelope:
		return r.Envelope
	default:
		return nil
	}
}
