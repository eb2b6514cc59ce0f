package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/procurelens/procurement_chat_app/internal/platform/config"
	"github.com/procurelens/procurement_chat_app/pkg/database"
)

// Date layouts seen in the purchase order extracts.
var dateLayouts = []string{
	"01/02/2006",
	"2006-01-02",
	"1/2/2006",
	"01/02/2006 15:04",
}

var insertColumns = []string{
	"purchase_order_number",
	"creation_date",
	"fiscal_year",
	"acquisition_type",
	"acquisition_method",
	"department_name",
	"supplier_code",
	"supplier_name",
	"calcard",
	"item_name",
	"item_description",
	"classification_codes",
	"quantity",
	"unit_price",
	"total_price",
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	csvPath := flag.String("csv", "", "path to the purchase order CSV extract")
	batchSize := flag.Int("batch", 5000, "rows per copy batch")
	flag.Parse()

	if *csvPath == "" {
		logger.Error("Missing required -csv flag")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	f, err := os.Open(*csvPath)
	if err != nil {
		logger.Error("Failed to open CSV file", slog.String("path", *csvPath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		logger.Error("Failed to read CSV header", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cols := headerIndex(header)

	var (
		batch    [][]any
		total    int64
		skipped  int64
		rowIndex int64
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Error("Failed to read CSV record", slog.Int64("row", rowIndex), slog.String("error", err.Error()))
			os.Exit(1)
		}
		rowIndex++

		row, ok := parseRow(cols, record)
		if !ok {
			skipped++
			continue
		}

		batch = append(batch, row)
		if len(batch) >= *batchSize {
			total += copyBatch(ctx, logger, dbPool, batch)
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		total += copyBatch(ctx, logger, dbPool, batch)
	}

	logger.Info("Ingest complete", slog.Int64("rows_loaded", total), slog.Int64("rows_skipped", skipped))
}

func copyBatch(ctx context.Context, logger *slog.Logger, dbPool *pgxpool.Pool, rows [][]any) int64 {
	n, err := dbPool.CopyFrom(ctx, pgx.Identifier{"purchase_order_lines"}, insertColumns, pgx.CopyFromRows(rows))
	if err != nil {
		logger.Error("Failed to copy batch", slog.String("error", err.Error()))
		os.Exit(1)
	}
	return n
}

// headerIndex maps normalized header names to their column positions.
func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

// parseRow converts one CSV record into an insert row. Rows without a
// purchase order number or a parsable creation date are skipped.
func parseRow(cols map[string]int, record []string) ([]any, bool) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	poNumber := get("purchase order number")
	if poNumber == "" {
		return nil, false
	}

	creationDate, ok := parseDate(get("creation date"))
	if !ok {
		return nil, false
	}

	return []any{
		poNumber,
		creationDate,
		get("fiscal year"),
		get("acquisition type"),
		get("acquisition method"),
		get("department name"),
		get("supplier code"),
		get("supplier name"),
		get("calcard"),
		get("item name"),
		get("item description"),
		get("classification codes"),
		parseDecimal(get("quantity")),
		parseDecimal(get("unit price")),
		parseDecimal(get("total price")),
	}, true
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseDecimal strips currency formatting before parsing. Unparsable or
// empty values load as zero rather than failing the row.
func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "$", ""), ",", ""))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
