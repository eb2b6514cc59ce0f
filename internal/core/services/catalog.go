package services

import (
	"github.com/procurelens/procurement_chat_app/internal/core/domain"
	"github.com/procurelens/procurement_chat_app/internal/utils"
)

// greetingMessage is the canned reply for the greeting intent.
const greetingMessage = "Hi! How can I assist you today?"

// valueKind controls how a recipe's aggregate value is rendered.
type valueKind int

const (
	valueMoney valueKind = iota
	valueCount
	valueQuantity
	valueNumber
)

// specialKind marks catalog entries that cannot be expressed as a plain
// filter/group/sort/limit recipe.
type specialKind int

const (
	specialNone specialKind = iota
	specialQuarterTop
	specialQuarterBreakdown
	specialCheapestItem
	specialOrdersInRange
	specialTotalQuantity
	specialLargestOrder
	specialGreeting
	specialLineLookup
	specialExpensiveInYear
	specialLinesAbove
)

// resultShape declares whether an entry answers with a list of rows or a
// single record.
type resultShape int

const (
	shapeRecords resultShape = iota
	shapeRecord
)

// catalogEntry binds an intent to its recipe, its required parameters and
// its presentation. Entries are immutable configuration built once at
// startup.
type catalogEntry struct {
	intent  string
	params  []domain.ParamKind
	recipe  *domain.Recipe
	special specialKind

	columns   []string // display names of the group keys (or projected keys)
	valueName string   // display name of the aggregate value; empty for projections
	value     valueKind
	shape     resultShape
	hideValue bool   // render group keys only (distinct-style recipes)
	echoParam string // display name under which the bound parameter joins the record

	lead        string // intro sentence for list renderings
	emptyMsgFmt string // Message sentinel when a parameterized lookup matches nothing

	// Line lookups and threshold scans.
	lookupField domain.Field
	threshold   string
	inclusive   bool
	limit       int
	project     func(domain.PurchaseLine) map[string]any
}

// newCatalog builds the full intent registry. Each entry collapses one of
// the original per-intent aggregations into declarative form; the dispatcher
// executes them through one generic routine.
func newCatalog() map[string]catalogEntry {
	entries := []catalogEntry{
		// Frequency and item recipes.
		{
			intent:    "frequent_items",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldItemName}, Agg: domain.AggregateCount, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 5},
			columns:   []string{"Item Name"},
			valueName: "Frequency",
			value:     valueCount,
			lead:      "The most frequently ordered items are:",
		},
		{
			intent:    "frequent_line_items",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldItemName}, Agg: domain.AggregateCount, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 5},
			columns:   []string{"Item Name"},
			valueName: "Frequency",
			value:     valueCount,
			lead:      "The most frequently ordered items are:",
		},

		// Acquisition method recipes.
		{
			intent:    "acquisition_method_avg_price",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldAcquisitionMethod}, Agg: domain.AggregateAvg, AggField: domain.FieldUnitPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Acquisition Method"},
			valueName: "Average Price",
			value:     valueMoney,
			lead:      "The average prices for acquisition methods are:",
		},
		{
			intent:    "acquisition_method_department",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldAcquisitionMethod, domain.FieldDepartmentName}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByGroup, SortDir: domain.SortAsc},
			columns:   []string{"Acquisition Method", "Department"},
			valueName: "Total Spending",
			value:     valueMoney,
			lead:      "Spending by acquisition method and department:",
		},
		{
			intent:    "acquisition_method_frequency",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldAcquisitionMethod}, Agg: domain.AggregateCount, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Acquisition Method"},
			valueName: "Frequency",
			value:     valueCount,
			lead:      "Order frequency by acquisition method:",
		},
		{
			intent:    "acquisition_method_spending",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldAcquisitionMethod}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Acquisition Method"},
			valueName: "Total Spending",
			value:     valueMoney,
			lead:      "Total spending by acquisition method:",
		},

		// Acquisition type recipes.
		{
			intent:    "acquisition_spending",
			params:    []domain.ParamKind{domain.ParamAcquisitionType},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldAcquisitionType, Op: domain.OpEqualFold, Param: domain.ParamAcquisitionType}}, GroupBy: []domain.Field{domain.FieldAcquisitionType}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Acquisition Type"},
			valueName: "Total Spending",
			value:     valueMoney,
			lead:      "Spending by acquisition type:",
		},
		{
			intent:    "acquisition_type_spending",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldAcquisitionType}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Acquisition Type"},
			valueName: "Total Spending",
			value:     valueMoney,
			lead:      "Total spending by acquisition type:",
		},
		{
			intent:    "acquisition_type_department_usage",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldAcquisitionType, domain.FieldDepartmentName}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByGroup, SortDir: domain.SortAsc},
			columns:   []string{"Acquisition Type", "Department"},
			valueName: "Total Spending",
			value:     valueMoney,
			lead:      "Department usage by acquisition type:",
		},
		{
			intent:    "acquisition_type_orders",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldAcquisitionType}, Agg: domain.AggregateCount, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Acquisition Type"},
			valueName: "Total Orders",
			value:     valueCount,
			lead:      "Total orders by acquisition type:",
		},
		{
			intent:    "acquisition_type_top_suppliers",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldAcquisitionType, domain.FieldSupplierName}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 10},
			columns:   []string{"Acquisition Type", "Supplier"},
			valueName: "Total Spending",
			value:     valueMoney,
			lead:      "Top suppliers by acquisition type:",
		},

		// Quantity and unit price recipes.
		{
			intent:    "avg_quantity_per_order",
			recipe:    &domain.Recipe{Agg: domain.AggregateAvg, AggField: domain.FieldQuantity, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			valueName: "Average Quantity Per Order",
			value:     valueNumber,
			shape:     shapeRecord,
		},
		{
			intent:    "avg_unit_price_by_category",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldClassificationCodes}, Agg: domain.AggregateAvg, AggField: domain.FieldUnitPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Classification Code"},
			valueName: "Average Unit Price",
			value:     valueMoney,
			lead:      "Average unit price by category:",
		},
		{
			intent:      "bulk_items",
			special:     specialLinesAbove,
			lookupField: domain.FieldQuantity,
			threshold:   "100",
			inclusive:   true,
			limit:       10,
			columns:     []string{"Item Name", "Quantity"},
			lead:        "Items purchased in bulk:",
			project: func(l domain.PurchaseLine) map[string]any {
				return map[string]any{"Item Name": l.ItemName, "Quantity": l.Quantity.IntPart()}
			},
		},
		{
			intent:      "large_quantity_orders",
			special:     specialLinesAbove,
			lookupField: domain.FieldQuantity,
			threshold:   "50",
			inclusive:   true,
			columns:     []string{"Item Name", "Quantity", "Purchase Order Number"},
			lead:        "Orders with large quantities:",
			project: func(l domain.PurchaseLine) map[string]any {
				return map[string]any{"Item Name": l.ItemName, "Quantity": l.Quantity.IntPart(), "Purchase Order Number": l.PurchaseOrderNumber}
			},
		},
		{
			intent:      "high_unit_price_items",
			special:     specialLinesAbove,
			lookupField: domain.FieldUnitPrice,
			threshold:   "1000",
			limit:       10,
			columns:     []string{"Item Name", "Unit Price", "Purchase Order Number"},
			lead:        "The items with high unit prices are:",
			project: func(l domain.PurchaseLine) map[string]any {
				return map[string]any{"Item Name": l.ItemName, "Unit Price": utils.FormatUSD(l.UnitPrice), "Purchase Order Number": l.PurchaseOrderNumber}
			},
		},

		// CalCard recipes.
		{
			// The original grouped every line regardless of card usage; kept as-is.
			intent:    "calcard_frequent_items",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldItemName}, Agg: domain.AggregateCount, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 10},
			columns:   []string{"Item Name"},
			valueName: "Frequency",
			value:     valueCount,
			lead:      "Most frequent items purchased using CalCard:",
		},
		{
			intent:    "calcard_orders",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldCalCard}, Agg: domain.AggregateCount, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"CalCard"},
			valueName: "Total Orders",
			value:     valueCount,
			lead:      "Total orders by CalCard usage:",
		},
		{
			intent:    "calcard_top_departments",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldCalCard, domain.FieldDepartmentName}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"CalCard", "Department"},
			valueName: "Total Spending",
			value:     valueMoney,
			lead:      "Top departments using CalCard:",
		},
		{
			intent:    "calcard_total_spending",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldCalCard}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"CalCard"},
			valueName: "Total Spending",
			value:     valueMoney,
			lead:      "Total spending by CalCard:",
		},

		// Classification recipes.
		{
			intent:    "classification_frequent_items",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldClassificationCodes}, Agg: domain.AggregateCount, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 10},
			columns:   []string{"Classification Code"},
			valueName: "Frequency",
			value:     valueCount,
			lead:      "Most frequent classification items:",
		},
		{
			intent:    "classification_items",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldClassificationCodes, domain.FieldItemName}, Agg: domain.AggregateSum, AggField: domain.FieldQuantity, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Classification Code", "Item Name"},
			valueName: "Total Quantity",
			value:     valueQuantity,
			lead:      "Items by classification code:",
		},
		{
			intent:    "classification_spending_breakdown",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldClassificationCodes}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Classification Code"},
			valueName: "Total Spending",
			value:     valueMoney,
			lead:      "Spending breakdown by classification code:",
		},
		{
			intent:    "top_classification_code",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldClassificationCodes}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 1},
			columns:   []string{"Classification Code"},
			valueName: "Total Spending",
			value:     valueMoney,
			shape:     shapeRecord,
		},
		{
			intent:    "total_price_by_category",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldClassificationCodes}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Classification Code"},
			valueName: "Total Price",
			value:     valueMoney,
			lead:      "Total price by category:",
		},

		// Department recipes.
		{
			intent:    "department_item_count",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldDepartmentName}, Agg: domain.AggregateSum, AggField: domain.FieldQuantity, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Department Name"},
			valueName: "Total Item Count",
			value:     valueQuantity,
			lead:      "Item count by department:",
		},
		{
			intent:    "department_spending_breakdown",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldDepartmentName}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Department Name"},
			valueName: "Total Spending",
			value:     valueMoney,
			lead:      "Spending breakdown by department:",
		},
		{
			intent:    "department_spending",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldDepartmentName}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Department Name"},
			valueName: "Total Spending",
			value:     valueMoney,
			lead:      "Spending breakdown by department:",
		},
		{
			intent:    "department_spending_by_name",
			params:    []domain.ParamKind{domain.ParamDepartment},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldDepartmentName, Op: domain.OpEqualFold, Param: domain.ParamDepartment}}, GroupBy: []domain.Field{domain.FieldDepartmentName}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 1},
			columns:   []string{"Department Name"},
			valueName: "Total Spending",
			value:     valueMoney,
			shape:     shapeRecord,
		},
		{
			intent:    "highest_spending_department",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldDepartmentName}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 1},
			columns:   []string{"Department Name"},
			valueName: "Total Spending",
			value:     valueMoney,
			shape:     shapeRecord,
		},
		{
			intent:    "quantity_top_department",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldDepartmentName}, Agg: domain.AggregateSum, AggField: domain.FieldQuantity, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 1},
			columns:   []string{"Department Name"},
			valueName: "Total Quantity",
			value:     valueQuantity,
			shape:     shapeRecord,
		},
		{
			intent:    "department_suppliers",
			params:    []domain.ParamKind{domain.ParamDepartment},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldDepartmentName, Op: domain.OpEqualFold, Param: domain.ParamDepartment}}, GroupBy: []domain.Field{domain.FieldSupplierName}, Agg: domain.AggregateCount, SortBy: domain.SortByGroup, SortDir: domain.SortAsc},
			columns:   []string{"Supplier Name"},
			valueName: "Total Orders",
			value:     valueCount,
			hideValue: true,
			lead:      "The suppliers for the department are:",
		},
		{
			intent:    "department_top_purchases",
			params:    []domain.ParamKind{domain.ParamDepartment},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldDepartmentName, Op: domain.OpEqualFold, Param: domain.ParamDepartment}}, GroupBy: []domain.Field{domain.FieldItemName}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 10},
			columns:   []string{"Item Name"},
			valueName: "Total Spending",
			value:     valueMoney,
			lead:      "The top purchases for the department are:",
		},

		// Fiscal year recipes. The stored label may be a range like
		// "2013-2014", so the filter is a containment match.
		{
			intent:    "fiscal_year_spending",
			params:    []domain.ParamKind{domain.ParamFiscalYear},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldFiscalYear, Op: domain.OpContainsFold, Param: domain.ParamFiscalYear}}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			valueName: "Total Spending",
			value:     valueMoney,
			shape:     shapeRecord,
			echoParam: "Fiscal Year",
		},
		{
			intent:    "fiscal_year_orders",
			params:    []domain.ParamKind{domain.ParamFiscalYear},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldFiscalYear, Op: domain.OpContainsFold, Param: domain.ParamFiscalYear}}, Agg: domain.AggregateCount, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			valueName: "Total Orders",
			value:     valueCount,
			shape:     shapeRecord,
			echoParam: "Fiscal Year",
		},
		{
			intent:      "fiscal_year_expensive_item",
			params:      []domain.ParamKind{domain.ParamFiscalYear},
			special:     specialExpensiveInYear,
			columns:     []string{"Item Name", "Unit Price", "Purchase Order Number", "Department Name"},
			project: func(l domain.PurchaseLine) map[string]any {
				return map[string]any{"Item Name": l.ItemName, "Unit Price": utils.FormatUSD(l.UnitPrice), "Purchase Order Number": l.PurchaseOrderNumber, "Department Name": l.DepartmentName}
			},
		},
		{
			intent:    "fiscal_year_top_department",
			params:    []domain.ParamKind{domain.ParamFiscalYear},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldFiscalYear, Op: domain.OpContainsFold, Param: domain.ParamFiscalYear}}, GroupBy: []domain.Field{domain.FieldDepartmentName}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 1},
			columns:   []string{"Department Name"},
			valueName: "Total Spending",
			value:     valueMoney,
			shape:     shapeRecord,
		},

		// Supplier recipes.
		{
			intent:      "supplier_orders",
			params:      []domain.ParamKind{domain.ParamSupplier},
			special:     specialLineLookup,
			lookupField: domain.FieldSupplierName,
			columns:     []string{"Purchase Order Number", "Total Price", "Creation Date"},
			lead:        "Orders for the supplier:",
			emptyMsgFmt: "No orders found for supplier: %s.",
			project: func(l domain.PurchaseLine) map[string]any {
				return map[string]any{"Purchase Order Number": l.PurchaseOrderNumber, "Total Price": utils.FormatUSD(l.TotalPrice), "Creation Date": l.CreationDate.Format("2006-01-02")}
			},
		},
		{
			intent:    "supplier_spending",
			params:    []domain.ParamKind{domain.ParamSupplier},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldSupplierName, Op: domain.OpEqualFold, Param: domain.ParamSupplier}}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			valueName: "Total Spending",
			value:     valueMoney,
			shape:     shapeRecord,
			echoParam: "Supplier Name",
		},
		{
			intent:    "supplier_top_orders",
			params:    []domain.ParamKind{domain.ParamSupplier},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldSupplierName, Op: domain.OpEqualFold, Param: domain.ParamSupplier}}, GroupBy: []domain.Field{domain.FieldPurchaseOrderNumber}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 10},
			columns:   []string{"Purchase Order Number"},
			valueName: "Order Value",
			value:     valueMoney,
			lead:      "The top orders for the supplier are:",
		},
		{
			intent:    "supplier_items",
			params:    []domain.ParamKind{domain.ParamSupplier},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldSupplierName, Op: domain.OpEqualFold, Param: domain.ParamSupplier}}, GroupBy: []domain.Field{domain.FieldItemName}, Agg: domain.AggregateSum, AggField: domain.FieldQuantity, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Item Name"},
			valueName: "Total Quantity",
			value:     valueQuantity,
			lead:      "Items provided by the supplier:",
		},
		{
			intent:    "supplier_top_revenue",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldSupplierName}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 10},
			columns:   []string{"Supplier Name"},
			valueName: "Total Revenue",
			value:     valueMoney,
			lead:      "Suppliers with the highest total revenue:",
		},

		// Item recipes.
		{
			intent:      "item_details",
			params:      []domain.ParamKind{domain.ParamItem},
			special:     specialLineLookup,
			lookupField: domain.FieldItemName,
			limit:       10,
			columns:     []string{"Item Name", "Item Description", "Unit Price", "Quantity", "Total Price", "Department Name", "Supplier Name", "Purchase Order Number"},
			lead:        "Details for the item:",
			project: func(l domain.PurchaseLine) map[string]any {
				return map[string]any{
					"Item Name":             l.ItemName,
					"Item Description":      l.ItemDescription,
					"Unit Price":            utils.FormatUSD(l.UnitPrice),
					"Quantity":              l.Quantity.IntPart(),
					"Total Price":           utils.FormatUSD(l.TotalPrice),
					"Department Name":       l.DepartmentName,
					"Supplier Name":         l.SupplierName,
					"Purchase Order Number": l.PurchaseOrderNumber,
				}
			},
		},
		{
			intent:      "unit_price_item",
			params:      []domain.ParamKind{domain.ParamItem},
			special:     specialLineLookup,
			lookupField: domain.FieldItemName,
			limit:       10,
			columns:     []string{"Item Name", "Unit Price", "Department Name", "Supplier Name", "Purchase Order Number"},
			lead:        "Unit price details for the item:",
			project: func(l domain.PurchaseLine) map[string]any {
				return map[string]any{
					"Item Name":             l.ItemName,
					"Unit Price":            utils.FormatUSD(l.UnitPrice),
					"Department Name":       l.DepartmentName,
					"Supplier Name":         l.SupplierName,
					"Purchase Order Number": l.PurchaseOrderNumber,
				}
			},
		},

		// Purchase order recipes.
		{
			intent:      "purchase_order_details",
			params:      []domain.ParamKind{domain.ParamPONumber},
			special:     specialLineLookup,
			lookupField: domain.FieldPurchaseOrderNumber,
			limit:       10,
			columns:     []string{"Purchase Order Number", "Creation Date", "Item Name", "Quantity", "Unit Price", "Total Price", "Department Name", "Supplier Name"},
			lead:        "Details of the purchase order:",
			project: func(l domain.PurchaseLine) map[string]any {
				return map[string]any{
					"Purchase Order Number": l.PurchaseOrderNumber,
					"Creation Date":         l.CreationDate.Format("2006-01-02"),
					"Item Name":             l.ItemName,
					"Quantity":              l.Quantity.IntPart(),
					"Unit Price":            utils.FormatUSD(l.UnitPrice),
					"Total Price":           utils.FormatUSD(l.TotalPrice),
					"Department Name":       l.DepartmentName,
					"Supplier Name":         l.SupplierName,
				}
			},
		},
		{
			intent:    "purchase_order_items",
			params:    []domain.ParamKind{domain.ParamPONumber},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldPurchaseOrderNumber, Op: domain.OpEqualFold, Param: domain.ParamPONumber}}, GroupBy: []domain.Field{domain.FieldItemName}, Agg: domain.AggregateSum, AggField: domain.FieldQuantity, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			columns:   []string{"Item Name"},
			valueName: "Total Quantity",
			value:     valueQuantity,
			lead:      "Items in the purchase order:",
		},
		{
			intent:    "purchase_order_supplier",
			params:    []domain.ParamKind{domain.ParamPONumber},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldPurchaseOrderNumber, Op: domain.OpEqualFold, Param: domain.ParamPONumber}}, GroupBy: []domain.Field{domain.FieldSupplierName}, Agg: domain.AggregateCount, SortBy: domain.SortByGroup, SortDir: domain.SortAsc},
			columns:   []string{"Supplier Name"},
			valueName: "Total Orders",
			value:     valueCount,
			hideValue: true,
			lead:      "Suppliers for the purchase order:",
		},
		{
			intent:    "purchase_order_value",
			params:    []domain.ParamKind{domain.ParamPONumber},
			recipe:    &domain.Recipe{Match: []domain.Condition{{Field: domain.FieldPurchaseOrderNumber, Op: domain.OpEqualFold, Param: domain.ParamPONumber}}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc},
			valueName: "Total Value",
			value:     valueMoney,
			shape:     shapeRecord,
			echoParam: "Purchase Order Number",
		},
		{
			intent:    "highest_total_price_order",
			recipe:    &domain.Recipe{GroupBy: []domain.Field{domain.FieldPurchaseOrderNumber}, Agg: domain.AggregateSum, AggField: domain.FieldTotalPrice, SortBy: domain.SortByValue, SortDir: domain.SortDesc, Limit: 1},
			columns:   []string{"Purchase Order Number"},
			valueName: "Total Price",
			value:     valueMoney,
			shape:     shapeRecord,
		},

		// Specials.
		{intent: "show_highest_spending_quarter", special: specialQuarterTop},
		{intent: "total_price_by_quarter", special: specialQuarterBreakdown, columns: []string{"Quarter"}, valueName: "Total Price", value: valueMoney, lead: "Total price by quarter:"},
		{
			intent:  "cheapest_item",
			special: specialCheapestItem,
			columns: []string{"Item Name", "Unit Price", "Department Name", "Supplier Name", "Purchase Order Number", "Description"},
			project: func(l domain.PurchaseLine) map[string]any {
				return map[string]any{
					"Item Name":             l.ItemName,
					"Unit Price":            utils.FormatUSD(l.UnitPrice),
					"Department Name":       l.DepartmentName,
					"Supplier Name":         l.SupplierName,
					"Purchase Order Number": l.PurchaseOrderNumber,
					"Description":           l.ItemDescription,
				}
			},
		},
		{intent: "total_orders", params: []domain.ParamKind{domain.ParamDateRange}, special: specialOrdersInRange},
		{intent: "total_quantity", special: specialTotalQuantity},
		{intent: "largest_order", special: specialLargestOrder},
		{intent: "greeting", special: specialGreeting},
	}

	catalog := make(map[string]catalogEntry, len(entries))
	for _, e := range entries {
		catalog[e.intent] = e
	}
	return catalog
}
