package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/procurelens/procurement_chat_app/internal/core/domain"
	portsrepo "github.com/procurelens/procurement_chat_app/internal/core/ports/repositories"
)

// columnNames maps domain fields to their table columns. Acting as a
// whitelist, it is the only way a recipe can reach a column; unknown fields
// fail the query before any SQL is built.
var columnNames = map[domain.Field]string{
	domain.FieldPurchaseOrderNumber: "purchase_order_number",
	domain.FieldCreationDate:        "creation_date",
	domain.FieldFiscalYear:          "fiscal_year",
	domain.FieldAcquisitionType:     "acquisition_type",
	domain.FieldAcquisitionMethod:   "acquisition_method",
	domain.FieldDepartmentName:      "department_name",
	domain.FieldSupplierCode:        "supplier_code",
	domain.FieldSupplierName:        "supplier_name",
	domain.FieldCalCard:             "calcard",
	domain.FieldItemName:            "item_name",
	domain.FieldItemDescription:     "item_description",
	domain.FieldClassificationCodes: "classification_codes",
	domain.FieldQuantity:            "quantity",
	domain.FieldUnitPrice:           "unit_price",
	domain.FieldTotalPrice:          "total_price",
}

// lineSelectColumns wraps nullable columns so rows scan into plain Go values.
const lineSelectColumns = `
	line_id,
	purchase_order_number,
	creation_date,
	COALESCE(fiscal_year, ''),
	acquisition_type,
	COALESCE(acquisition_method, ''),
	COALESCE(department_name, ''),
	COALESCE(supplier_code, ''),
	COALESCE(supplier_name, ''),
	COALESCE(calcard, ''),
	COALESCE(item_name, ''),
	COALESCE(item_description, ''),
	COALESCE(classification_codes, ''),
	COALESCE(quantity, 0),
	COALESCE(unit_price, 0),
	COALESCE(total_price, 0)`

// procurementRepository implements the ProcurementRepository interface
type procurementRepository struct {
	BaseRepository
}

// NewProcurementRepository creates a new procurement repository
func NewProcurementRepository(db *pgxpool.Pool) portsrepo.ProcurementRepository {
	return &procurementRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func columnFor(field domain.Field) (string, error) {
	col, ok := columnNames[field]
	if !ok {
		return "", fmt.Errorf("unknown field %q", field)
	}
	return col, nil
}

// buildAggregateQuery renders a recipe into one SQL statement. Placeholders
// are numbered in Match order; the caller supplies binds in the same order.
func buildAggregateQuery(recipe domain.Recipe) (string, error) {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	for _, g := range recipe.GroupBy {
		col, err := columnFor(g)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "COALESCE(%s, ''), ", col)
	}

	switch recipe.Agg {
	case domain.AggregateSum, domain.AggregateAvg:
		col, err := columnFor(recipe.AggField)
		if err != nil {
			return "", err
		}
		if len(recipe.GroupBy) == 0 {
			// An aggregate over zero rows must stay distinguishable from an
			// aggregate that happens to be zero, so carry the row count.
			fmt.Fprintf(&sb, "COUNT(*) AS n, COALESCE(%s(%s), 0) AS value", recipe.Agg, col)
		} else {
			fmt.Fprintf(&sb, "COALESCE(%s(%s), 0) AS value", recipe.Agg, col)
		}
	case domain.AggregateCount:
		sb.WriteString("COUNT(*) AS value")
	default:
		return "", fmt.Errorf("unknown aggregate %q", recipe.Agg)
	}

	sb.WriteString(" FROM purchase_order_lines")

	placeholder := 0
	for i, cond := range recipe.Match {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		col, err := columnFor(cond.Field)
		if err != nil {
			return "", err
		}
		switch cond.Op {
		case domain.OpEqualFold:
			placeholder++
			fmt.Fprintf(&sb, "LOWER(%s) = LOWER($%d)", col, placeholder)
		case domain.OpContainsFold:
			placeholder++
			fmt.Fprintf(&sb, "%s ILIKE '%%' || $%d || '%%'", col, placeholder)
		case domain.OpBetween:
			fmt.Fprintf(&sb, "%s BETWEEN $%d AND $%d", col, placeholder+1, placeholder+2)
			placeholder += 2
		case domain.OpAtLeast:
			// Static operands come from the recipe catalog, never from users.
			fmt.Fprintf(&sb, "%s >= %s", col, cond.Value)
		case domain.OpAbove:
			fmt.Fprintf(&sb, "%s > %s", col, cond.Value)
		default:
			return "", fmt.Errorf("unknown condition op %d", cond.Op)
		}
	}

	if len(recipe.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		for i := range recipe.GroupBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%d", i+1)
		}
	}

	switch recipe.SortBy {
	case domain.SortByValue:
		fmt.Fprintf(&sb, " ORDER BY value %s", recipe.SortDir)
	case domain.SortByGroup:
		if len(recipe.GroupBy) > 0 {
			sb.WriteString(" ORDER BY ")
			for i := range recipe.GroupBy {
				if i > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(&sb, "%d %s", i+1, recipe.SortDir)
			}
		}
	}

	if recipe.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", recipe.Limit)
	}

	return sb.String(), nil
}

// Aggregate executes a recipe against the store in a single statement.
func (r *procurementRepository) Aggregate(ctx context.Context, recipe domain.Recipe, binds []any) ([]domain.GroupRow, error) {
	query, err := buildAggregateQuery(recipe)
	if err != nil {
		return nil, fmt.Errorf("error building aggregate query: %w", err)
	}

	rows, err := r.Pool.Query(ctx, query, binds...)
	if err != nil {
		return nil, fmt.Errorf("error querying aggregate data: %w", err)
	}
	defer rows.Close()

	groupless := len(recipe.GroupBy) == 0 && recipe.Agg != domain.AggregateCount

	result := []domain.GroupRow{}
	for rows.Next() {
		var row domain.GroupRow

		if groupless {
			var n int64
			if err := rows.Scan(&n, &row.Value); err != nil {
				return nil, fmt.Errorf("error scanning aggregate row: %w", err)
			}
			if n == 0 {
				// No matching lines at all.
				continue
			}
		} else {
			keys := make([]string, len(recipe.GroupBy))
			dest := make([]any, 0, len(keys)+1)
			for i := range keys {
				dest = append(dest, &keys[i])
			}
			dest = append(dest, &row.Value)
			if err := rows.Scan(dest...); err != nil {
				return nil, fmt.Errorf("error scanning aggregate row: %w", err)
			}
			row.Keys = keys
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aggregate rows: %w", err)
	}

	return result, nil
}

// Distinct returns the distinct non-empty values of a field in ascending order.
func (r *procurementRepository) Distinct(ctx context.Context, field domain.Field) ([]string, error) {
	col, err := columnFor(field)
	if err != nil {
		return nil, fmt.Errorf("error building distinct query: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT DISTINCT %s FROM purchase_order_lines WHERE %s IS NOT NULL AND %s <> '' ORDER BY 1",
		col, col, col,
	)

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying distinct values: %w", err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("error scanning distinct value: %w", err)
		}
		values = append(values, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distinct values: %w", err)
	}

	return values, nil
}

// FindLines fetches full purchase lines matching a field value, case-insensitively.
func (r *procurementRepository) FindLines(ctx context.Context, field domain.Field, value string, limit int) ([]domain.PurchaseLine, error) {
	col, err := columnFor(field)
	if err != nil {
		return nil, fmt.Errorf("error building line query: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM purchase_order_lines WHERE LOWER(%s) = LOWER($1) ORDER BY line_id",
		lineSelectColumns, col,
	)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := r.Pool.Query(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("error querying purchase lines: %w", err)
	}
	defer rows.Close()

	return collectLines(rows)
}

// ListLinesAbove fetches lines whose numeric field exceeds the threshold,
// largest first.
func (r *procurementRepository) ListLinesAbove(ctx context.Context, field domain.Field, threshold decimal.Decimal, inclusive bool, limit int) ([]domain.PurchaseLine, error) {
	col, err := columnFor(field)
	if err != nil {
		return nil, fmt.Errorf("error building line query: %w", err)
	}

	op := ">"
	if inclusive {
		op = ">="
	}

	query := fmt.Sprintf(
		"SELECT %s FROM purchase_order_lines WHERE %s %s $1 ORDER BY %s DESC",
		lineSelectColumns, col, op, col,
	)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := r.Pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("error querying purchase lines: %w", err)
	}
	defer rows.Close()

	return collectLines(rows)
}

// FirstLineSorted returns the single top-ranked line, optionally filtered.
func (r *procurementRepository) FirstLineSorted(ctx context.Context, match *domain.Condition, bind any, sortField domain.Field, dir domain.SortDirection) (*domain.PurchaseLine, error) {
	sortCol, err := columnFor(sortField)
	if err != nil {
		return nil, fmt.Errorf("error building line query: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM purchase_order_lines", lineSelectColumns)

	binds := []any{}
	if match != nil {
		col, err := columnFor(match.Field)
		if err != nil {
			return nil, fmt.Errorf("error building line query: %w", err)
		}
		switch match.Op {
		case domain.OpEqualFold:
			fmt.Fprintf(&sb, " WHERE LOWER(%s) = LOWER($1)", col)
			binds = append(binds, bind)
		case domain.OpContainsFold:
			fmt.Fprintf(&sb, " WHERE %s ILIKE '%%' || $1 || '%%'", col)
			binds = append(binds, bind)
		default:
			return nil, fmt.Errorf("unsupported condition op %d", match.Op)
		}
	}

	fmt.Fprintf(&sb, " ORDER BY %s %s LIMIT 1", sortCol, dir)

	rows, err := r.Pool.Query(ctx, sb.String(), binds...)
	if err != nil {
		return nil, fmt.Errorf("error querying purchase lines: %w", err)
	}
	defer rows.Close()

	lines, err := collectLines(rows)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return &lines[0], nil
}

// SpendingByQuarter sums total price per creation-date quarter.
func (r *procurementRepository) SpendingByQuarter(ctx context.Context) ([]domain.GroupRow, error) {
	return r.queryQuarters(ctx, "ORDER BY 1 ASC", 0)
}

// HighestSpendingQuarter returns the quarter with the largest total spending.
func (r *procurementRepository) HighestSpendingQuarter(ctx context.Context) (*domain.GroupRow, error) {
	rows, err := r.queryQuarters(ctx, "ORDER BY 2 DESC", 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *procurementRepository) queryQuarters(ctx context.Context, orderBy string, limit int) ([]domain.GroupRow, error) {
	query := `
		SELECT
			CASE
				WHEN EXTRACT(MONTH FROM creation_date) <= 3 THEN 'Q1'
				WHEN EXTRACT(MONTH FROM creation_date) <= 6 THEN 'Q2'
				WHEN EXTRACT(MONTH FROM creation_date) <= 9 THEN 'Q3'
				ELSE 'Q4'
			END AS quarter,
			COALESCE(SUM(total_price), 0) AS value
		FROM purchase_order_lines
		GROUP BY 1
	` + " " + orderBy
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying quarterly spending: %w", err)
	}
	defer rows.Close()

	result := []domain.GroupRow{}
	for rows.Next() {
		var quarter string
		var value decimal.Decimal
		if err := rows.Scan(&quarter, &value); err != nil {
			return nil, fmt.Errorf("error scanning quarterly spending row: %w", err)
		}
		result = append(result, domain.GroupRow{Keys: []string{quarter}, Value: value})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quarterly spending rows: %w", err)
	}

	return result, nil
}

// CountOrdersBetween counts lines created inside the inclusive range.
func (r *procurementRepository) CountOrdersBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM purchase_order_lines WHERE creation_date BETWEEN $1 AND $2",
		from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting orders: %w", err)
	}
	return count, nil
}

// TotalQuantity sums the quantity column over the whole store.
func (r *procurementRepository) TotalQuantity(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(quantity), 0) FROM purchase_order_lines",
	).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("error summing quantity: %w", err)
	}
	return total, nil
}

func collectLines(rows pgx.Rows) ([]domain.PurchaseLine, error) {
	lines := []domain.PurchaseLine{}
	for rows.Next() {
		var l domain.PurchaseLine
		if err := rows.Scan(
			&l.LineID,
			&l.PurchaseOrderNumber,
			&l.CreationDate,
			&l.FiscalYear,
			&l.AcquisitionType,
			&l.AcquisitionMethod,
			&l.DepartmentName,
			&l.SupplierCode,
			&l.SupplierName,
			&l.CalCard,
			&l.ItemName,
			&l.ItemDescription,
			&l.ClassificationCodes,
			&l.Quantity,
			&l.UnitPrice,
			&l.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("error scanning purchase line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase lines: %w", err)
	}

	return lines, nil
}
