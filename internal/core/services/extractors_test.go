package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelens/procurement_chat_app/internal/core/domain"
)

// stubRepo serves canned distinct values; everything else is unused by the
// extractors.
type stubRepo struct {
	distinct map[domain.Field][]string
	err      error
}

func (s *stubRepo) Distinct(_ context.Context, field domain.Field) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.distinct[field], nil
}

func (s *stubRepo) Aggregate(context.Context, domain.Recipe, []any) ([]domain.GroupRow, error) {
	return nil, nil
}
func (s *stubRepo) FindLines(context.Context, domain.Field, string, int) ([]domain.PurchaseLine, error) {
	return nil, nil
}
func (s *stubRepo) ListLinesAbove(context.Context, domain.Field, decimal.Decimal, bool, int) ([]domain.PurchaseLine, error) {
	return nil, nil
}
func (s *stubRepo) FirstLineSorted(context.Context, *domain.Condition, any, domain.Field, domain.SortDirection) (*domain.PurchaseLine, error) {
	return nil, nil
}
func (s *stubRepo) SpendingByQuarter(context.Context) ([]domain.GroupRow, error) { return nil, nil }
func (s *stubRepo) HighestSpendingQuarter(context.Context) (*domain.GroupRow, error) {
	return nil, nil
}
func (s *stubRepo) CountOrdersBetween(context.Context, time.Time, time.Time) (int64, error) {
	return 0, nil
}
func (s *stubRepo) TotalQuantity(context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func newTestExtractors(repo *stubRepo, now time.Time) *Extractors {
	e := NewExtractors(repo)
	e.now = func() time.Time { return now }
	return e
}

func TestFiscalYear(t *testing.T) {
	e := newTestExtractors(&stubRepo{}, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))

	year, ok := e.FiscalYear("total spending for fiscal year 2023")
	require.True(t, ok)
	assert.Equal(t, "2023", year)

	year, ok = e.FiscalYear("spending last year")
	require.True(t, ok)
	assert.Equal(t, "2023", year)

	year, ok = e.FiscalYear("spending next year")
	require.True(t, ok)
	assert.Equal(t, "2025", year)

	// First token wins when both a year and a relative phrase appear.
	year, ok = e.FiscalYear("spending in 2014 compared to last year")
	require.True(t, ok)
	assert.Equal(t, "2014", year)

	_, ok = e.FiscalYear("no year in this sentence")
	assert.False(t, ok)
}

func TestDateRange_Explicit(t *testing.T) {
	e := newTestExtractors(&stubRepo{}, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))

	r, ok := e.DateRange("orders from 2022-01-01 to 2022-12-31")
	require.True(t, ok)
	start, end := r.Strings()
	assert.Equal(t, "2022-01-01", start)
	assert.Equal(t, "2022-12-31", end)
}

func TestDateRange_RelativePhrases(t *testing.T) {
	e := newTestExtractors(&stubRepo{}, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))

	r, ok := e.DateRange("orders last year")
	require.True(t, ok)
	start, end := r.Strings()
	assert.Equal(t, "2023-01-01", start)
	assert.Equal(t, "2023-12-31", end)

	r, ok = e.DateRange("orders this month")
	require.True(t, ok)
	start, end = r.Strings()
	assert.Equal(t, "2024-05-01", start)
	assert.Equal(t, "2024-05-31", end)
}

func TestDateRange_LastMonthJanuaryRollover(t *testing.T) {
	e := newTestExtractors(&stubRepo{}, time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))

	r, ok := e.DateRange("orders last month")
	require.True(t, ok)
	start, end := r.Strings()
	assert.Equal(t, "2023-12-01", start)
	assert.Equal(t, "2023-12-31", end)
}

func TestDateRange_LooseTokens(t *testing.T) {
	e := newTestExtractors(&stubRepo{}, time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))

	// Two distinct dates form a range regardless of their order in the text.
	r, ok := e.DateRange("orders between 2022-06-30 and 2022-01-15")
	require.True(t, ok)
	start, end := r.Strings()
	assert.Equal(t, "2022-01-15", start)
	assert.Equal(t, "2022-06-30", end)

	// A single date collapses into a one-day range.
	r, ok = e.DateRange("orders on 2022-03-01")
	require.True(t, ok)
	start, end = r.Strings()
	assert.Equal(t, "2022-03-01", start)
	assert.Equal(t, "2022-03-01", end)

	_, ok = e.DateRange("orders sometime recently")
	assert.False(t, ok)
}

func TestDistinctMatch(t *testing.T) {
	repo := &stubRepo{distinct: map[domain.Field][]string{
		domain.FieldDepartmentName: {"Corrections", "Water Resources"},
		domain.FieldSupplierName:   {"Acme Corp"},
	}}
	e := newTestExtractors(repo, time.Now())

	// The value comes back verbatim from the store, not from the text.
	dept, ok := e.Department(context.Background(), "spending for the WATER RESOURCES department")
	require.True(t, ok)
	assert.Equal(t, "Water Resources", dept)

	_, ok = e.Department(context.Background(), "spending for the transportation department")
	assert.False(t, ok)

	supplier, ok := e.Supplier(context.Background(), "orders from acme corp last year")
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", supplier)
}

func TestDistinctMatch_RepoError(t *testing.T) {
	e := newTestExtractors(&stubRepo{err: assert.AnError}, time.Now())

	_, ok := e.Department(context.Background(), "spending for the water resources department")
	assert.False(t, ok)
}

func TestPONumber(t *testing.T) {
	e := newTestExtractors(&stubRepo{}, time.Now())

	po, ok := e.PONumber("details for PO12345")
	require.True(t, ok)
	assert.Equal(t, "po12345", po)

	po, ok = e.PONumber("details for order 987654")
	require.True(t, ok)
	assert.Equal(t, "987654", po)

	_, ok = e.PONumber("details for order 123")
	assert.False(t, ok)
}
