package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/procurelens/procurement_chat_app/internal/apperrors"
	"github.com/procurelens/procurement_chat_app/internal/core/domain"
	portsrepo "github.com/procurelens/procurement_chat_app/internal/core/ports/repositories"
	portssvc "github.com/procurelens/procurement_chat_app/internal/core/ports/services"
	"github.com/procurelens/procurement_chat_app/internal/dto"
	"github.com/procurelens/procurement_chat_app/internal/utils"
)

// Terminal failure messages of the dispatch state machine.
const (
	msgInputMissing        = "Input message is missing."
	msgIntentNotRecognized = "Intent not recognized."
	msgNoDataFound         = "No data found for the query."
)

// paramMissMessages name the missing parameter in the clarification failure.
var paramMissMessages = map[domain.ParamKind]string{
	domain.ParamFiscalYear:      "Fiscal year not found in query.",
	domain.ParamDateRange:       "Date range not found in query.",
	domain.ParamDepartment:      "Department name not found in query.",
	domain.ParamSupplier:        "Supplier name not found in query.",
	domain.ParamItem:            "Item name not found in query.",
	domain.ParamAcquisitionType: "Acquisition type not found in query.",
	domain.ParamPONumber:        "Purchase order number not found in query.",
}

// ChatService is the dispatcher: it classifies a message, resolves the
// catalog entry and its parameters, executes the recipe and formats the
// answer. Stateless across requests; no error ever escapes HandleMessage.
type ChatService struct {
	repo         portsrepo.ProcurementRepository
	resolver     *IntentResolver
	extractors   *Extractors
	catalog      map[string]catalogEntry
	queryTimeout time.Duration
}

// NewChatService creates the chat dispatcher.
func NewChatService(repo portsrepo.ProcurementRepository, resolver *IntentResolver, queryTimeout time.Duration) portssvc.ChatSvcFacade {
	return &ChatService{
		repo:         repo,
		resolver:     resolver,
		extractors:   NewExtractors(repo),
		catalog:      newCatalog(),
		queryTimeout: queryTimeout,
	}
}

// HandleMessage runs the per-request state machine: validate input, classify,
// resolve parameters, execute, format. Every failure path yields a
// success=false envelope with a human-readable message.
func (s *ChatService) HandleMessage(ctx context.Context, message string) dto.ChatResponse {
	logger := utils.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(message) == "" {
		return failure(msgInputMissing)
	}

	intent, err := s.resolver.Resolve(ctx, message)
	if err != nil {
		return failure(msgIntentNotRecognized)
	}
	entry, ok := s.catalog[intent]
	if !ok {
		logger.Warn("Intent has no catalog entry", slog.String("intent", intent))
		return failure(msgIntentNotRecognized)
	}

	// The timeout covers parameter resolution too: the dictionary extractors
	// scan whole columns via Distinct.
	qctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	params, dateRange, err := s.resolveParams(qctx, entry, message)
	if err != nil {
		return failure(err.Error())
	}

	result, err := s.execute(qctx, entry, params, dateRange)
	if err != nil {
		// Execution faults surface as "no data"; the cause stays in the logs.
		logger.Error("Query execution failed", slog.String("intent", intent), slog.String("error", err.Error()))
		result = domain.EmptyResult()
	}

	if result.IsEmpty() {
		if entry.emptyMsgFmt != "" {
			result = domain.MessageResult(fmt.Sprintf(entry.emptyMsgFmt, firstParamValue(entry, params)))
		} else {
			return failure(msgNoDataFound)
		}
	}

	return dto.ChatResponse{
		Success: true,
		Message: formatResponse(entry, result),
		Data:    result.Data(),
	}
}

func failure(message string) dto.ChatResponse {
	return dto.ChatResponse{Success: false, Message: message}
}

// missingParamError identifies the first extractor that came up empty. Its
// Error text is the user-facing clarification sentence.
type missingParamError struct {
	kind domain.ParamKind
}

func (e *missingParamError) Error() string { return paramMissMessages[e.kind] }

func (e *missingParamError) Unwrap() error { return apperrors.ErrMissingParameter }

// resolveParams runs the extractors the entry requires. A miss yields a
// missingParamError wrapping apperrors.ErrMissingParameter.
func (s *ChatService) resolveParams(ctx context.Context, entry catalogEntry, message string) (map[domain.ParamKind]string, domain.DateRange, error) {
	params := map[domain.ParamKind]string{}
	var dateRange domain.DateRange

	for _, kind := range entry.params {
		var (
			value string
			ok    bool
		)
		switch kind {
		case domain.ParamFiscalYear:
			value, ok = s.extractors.FiscalYear(message)
		case domain.ParamDateRange:
			dateRange, ok = s.extractors.DateRange(message)
		case domain.ParamDepartment:
			value, ok = s.extractors.Department(ctx, message)
		case domain.ParamSupplier:
			value, ok = s.extractors.Supplier(ctx, message)
		case domain.ParamItem:
			value, ok = s.extractors.Item(ctx, message)
		case domain.ParamAcquisitionType:
			value, ok = s.extractors.AcquisitionType(ctx, message)
		case domain.ParamPONumber:
			value, ok = s.extractors.PONumber(message)
		}
		if !ok {
			return nil, domain.DateRange{}, &missingParamError{kind: kind}
		}
		params[kind] = value
	}

	return params, dateRange, nil
}

// execute runs a catalog entry against the store and normalizes the raw
// result into a QueryResult.
func (s *ChatService) execute(ctx context.Context, entry catalogEntry, params map[domain.ParamKind]string, dateRange domain.DateRange) (domain.QueryResult, error) {
	switch entry.special {
	case specialGreeting:
		return domain.MessageResult(greetingMessage), nil

	case specialQuarterTop:
		row, err := s.repo.HighestSpendingQuarter(ctx)
		if err != nil {
			return domain.QueryResult{}, err
		}
		if row == nil {
			return domain.EmptyResult(), nil
		}
		return domain.RecordResult(map[string]any{
			"Quarter":        row.Keys[0],
			"Total Spending": utils.FormatUSD(row.Value),
		}), nil

	case specialQuarterBreakdown:
		rows, err := s.repo.SpendingByQuarter(ctx)
		if err != nil {
			return domain.QueryResult{}, err
		}
		return domain.RecordsResult(s.rowsToRecords(entry, rows)), nil

	case specialCheapestItem:
		line, err := s.repo.FirstLineSorted(ctx, nil, nil, domain.FieldUnitPrice, domain.SortAsc)
		if err != nil {
			return domain.QueryResult{}, err
		}
		if line == nil {
			return domain.EmptyResult(), nil
		}
		return domain.RecordResult(entry.project(*line)), nil

	case specialExpensiveInYear:
		match := domain.Condition{Field: domain.FieldFiscalYear, Op: domain.OpContainsFold, Param: domain.ParamFiscalYear}
		line, err := s.repo.FirstLineSorted(ctx, &match, params[domain.ParamFiscalYear], domain.FieldUnitPrice, domain.SortDesc)
		if err != nil {
			return domain.QueryResult{}, err
		}
		if line == nil {
			return domain.EmptyResult(), nil
		}
		return domain.RecordResult(entry.project(*line)), nil

	case specialOrdersInRange:
		count, err := s.repo.CountOrdersBetween(ctx, dateRange.Start, dateRange.End)
		if err != nil {
			return domain.QueryResult{}, err
		}
		if count == 0 {
			return domain.EmptyResult(), nil
		}
		return domain.RecordResult(map[string]any{"Total Orders": count}), nil

	case specialTotalQuantity:
		total, err := s.repo.TotalQuantity(ctx)
		if err != nil {
			// The one recipe that keeps the success/failure distinction in
			// its payload instead of collapsing into "no data".
			return domain.EnvelopeResult(domain.QuantityEnvelope{
				Success: false,
				Message: "An error occurred: " + err.Error(),
			}), nil
		}
		return domain.EnvelopeResult(domain.QuantityEnvelope{
			Success:       true,
			TotalQuantity: total.IntPart(),
		}), nil

	case specialLargestOrder:
		recipe := domain.Recipe{
			GroupBy:  []domain.Field{domain.FieldPurchaseOrderNumber},
			Agg:      domain.AggregateSum,
			AggField: domain.FieldQuantity,
			SortBy:   domain.SortByValue,
			SortDir:  domain.SortDesc,
			Limit:    1,
		}
		rows, err := s.repo.Aggregate(ctx, recipe, nil)
		if err != nil {
			return domain.QueryResult{}, err
		}
		if len(rows) == 0 {
			return domain.EmptyResult(), nil
		}
		poNumber := rows[0].Keys[0]
		lines, err := s.repo.FindLines(ctx, domain.FieldPurchaseOrderNumber, poNumber, 1)
		if err != nil {
			return domain.QueryResult{}, err
		}
		if len(lines) == 0 {
			return domain.MessageResult("Order details not found for the largest order."), nil
		}
		return domain.RecordResult(map[string]any{
			"Purchase Order Number": lines[0].PurchaseOrderNumber,
			"Department Name":       lines[0].DepartmentName,
			"Supplier Name":         lines[0].SupplierName,
			"Total Quantity":        rows[0].Value.IntPart(),
		}), nil

	case specialLineLookup:
		lines, err := s.repo.FindLines(ctx, entry.lookupField, firstParamValue(entry, params), entry.limit)
		if err != nil {
			return domain.QueryResult{}, err
		}
		return domain.RecordsResult(projectLines(entry, lines)), nil

	case specialLinesAbove:
		threshold, err := decimal.NewFromString(entry.threshold)
		if err != nil {
			return domain.QueryResult{}, fmt.Errorf("invalid threshold %q: %w", entry.threshold, err)
		}
		lines, err := s.repo.ListLinesAbove(ctx, entry.lookupField, threshold, entry.inclusive, entry.limit)
		if err != nil {
			return domain.QueryResult{}, err
		}
		return domain.RecordsResult(projectLines(entry, lines)), nil
	}

	// Plain recipe execution.
	rows, err := s.repo.Aggregate(ctx, *entry.recipe, recipeBinds(entry, params, dateRange))
	if err != nil {
		return domain.QueryResult{}, err
	}
	if len(rows) == 0 {
		return domain.EmptyResult(), nil
	}

	// A count over zero matching rows still yields one row; treat it as no data.
	if len(entry.recipe.GroupBy) == 0 && entry.recipe.Agg == domain.AggregateCount && rows[0].Value.IsZero() {
		return domain.EmptyResult(), nil
	}

	if entry.shape == shapeRecord {
		record := s.rowToRecord(entry, rows[0])
		if entry.echoParam != "" {
			record[entry.echoParam] = firstParamValue(entry, params)
		}
		return domain.RecordResult(record), nil
	}
	return domain.RecordsResult(s.rowsToRecords(entry, rows)), nil
}

// recipeBinds lays out bind values in Match order. A between condition
// consumes the extracted date range; everything else binds its parameter's
// extracted string.
func recipeBinds(entry catalogEntry, params map[domain.ParamKind]string, dateRange domain.DateRange) []any {
	if entry.recipe == nil {
		return nil
	}
	binds := []any{}
	for _, cond := range entry.recipe.Match {
		switch cond.BindCount() {
		case 0:
			// Static operand, inlined into the SQL.
		case 2:
			binds = append(binds, dateRange.Start, dateRange.End)
		default:
			binds = append(binds, params[cond.Param])
		}
	}
	return binds
}

func firstParamValue(entry catalogEntry, params map[domain.ParamKind]string) string {
	if len(entry.params) == 0 {
		return ""
	}
	return params[entry.params[0]]
}

func (s *ChatService) rowsToRecords(entry catalogEntry, rows []domain.GroupRow) []map[string]any {
	records := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		records = append(records, s.rowToRecord(entry, row))
	}
	return records
}

func (s *ChatService) rowToRecord(entry catalogEntry, row domain.GroupRow) map[string]any {
	record := map[string]any{}
	for i, col := range entry.columns {
		if i < len(row.Keys) {
			record[col] = row.Keys[i]
		}
	}
	if entry.valueName != "" && !entry.hideValue {
		record[entry.valueName] = renderValue(entry.value, row.Value)
	}
	return record
}

func projectLines(entry catalogEntry, lines []domain.PurchaseLine) []map[string]any {
	records := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		records = append(records, entry.project(line))
	}
	return records
}

// renderValue converts an aggregate value into its display form: dollars for
// money, plain integers for counts and quantities, two decimals otherwise.
func renderValue(kind valueKind, v decimal.Decimal) any {
	switch kind {
	case valueMoney:
		return utils.FormatUSD(v)
	case valueCount, valueQuantity:
		return v.IntPart()
	default:
		return v.Round(2).String()
	}
}
