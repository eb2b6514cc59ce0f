package repositories

import (
	"context"
	"time"

	"github.com/procurelens/procurement_chat_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProcurementRepository is the read-only store interface the query pipeline
// depends on. All grouping, sorting and limiting is pushed down to the store;
// the dataset is far too large to materialize per request.
type ProcurementRepository interface {
	// Aggregate executes a recipe with the given bind values (one per
	// parameterized condition, in Match order; OpBetween consumes two).
	// An aggregate over zero matching rows yields an empty slice.
	Aggregate(ctx context.Context, recipe domain.Recipe, binds []any) ([]domain.GroupRow, error)

	// Distinct returns the distinct non-empty values of a field, ordered by
	// the value itself so extractor tie-breaks are deterministic.
	Distinct(ctx context.Context, field domain.Field) ([]string, error)

	// FindLines fetches full lines whose field equals value, case-insensitively.
	// limit 0 means unlimited.
	FindLines(ctx context.Context, field domain.Field, value string, limit int) ([]domain.PurchaseLine, error)

	// ListLinesAbove fetches lines whose numeric field exceeds the threshold
	// (>= when inclusive), sorted descending on that field. limit 0 means
	// unlimited.
	ListLinesAbove(ctx context.Context, field domain.Field, threshold decimal.Decimal, inclusive bool, limit int) ([]domain.PurchaseLine, error)

	// FirstLineSorted returns the single line ranked first by sortField, with
	// an optional filter condition bound to bind. Returns nil when no line
	// matches.
	FirstLineSorted(ctx context.Context, match *domain.Condition, bind any, sortField domain.Field, dir domain.SortDirection) (*domain.PurchaseLine, error)

	// SpendingByQuarter sums total price per creation-date quarter, ordered
	// Q1..Q4.
	SpendingByQuarter(ctx context.Context) ([]domain.GroupRow, error)

	// HighestSpendingQuarter returns the single quarter with the largest
	// total spending, or nil on an empty store.
	HighestSpendingQuarter(ctx context.Context) (*domain.GroupRow, error)

	// CountOrdersBetween counts lines created inside the inclusive range.
	CountOrdersBetween(ctx context.Context, from, to time.Time) (int64, error)

	// TotalQuantity sums the quantity column over the whole store. An empty
	// store yields zero, not an error.
	TotalQuantity(ctx context.Context) (decimal.Decimal, error)
}
