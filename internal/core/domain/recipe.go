package domain

// Field names a column of the purchase line schema. Recipes refer to fields
// only through this enum so the SQL layer can whitelist columns.
type Field string

const (
	FieldPurchaseOrderNumber Field = "purchase_order_number"
	FieldCreationDate        Field = "creation_date"
	FieldFiscalYear          Field = "fiscal_year"
	FieldAcquisitionType     Field = "acquisition_type"
	FieldAcquisitionMethod   Field = "acquisition_method"
	FieldDepartmentName      Field = "department_name"
	FieldSupplierCode        Field = "supplier_code"
	FieldSupplierName        Field = "supplier_name"
	FieldCalCard             Field = "calcard"
	FieldItemName            Field = "item_name"
	FieldItemDescription     Field = "item_description"
	FieldClassificationCodes Field = "classification_codes"
	FieldQuantity            Field = "quantity"
	FieldUnitPrice           Field = "unit_price"
	FieldTotalPrice          Field = "total_price"
)

// ParamKind identifies a typed parameter that must be extracted from the
// user's text before a recipe can run.
type ParamKind string

const (
	ParamFiscalYear      ParamKind = "fiscal_year"
	ParamDateRange       ParamKind = "date_range"
	ParamDepartment      ParamKind = "department"
	ParamSupplier        ParamKind = "supplier"
	ParamItem            ParamKind = "item"
	ParamAcquisitionType ParamKind = "acquisition_type"
	ParamPONumber        ParamKind = "purchase_order_number"
)

// AggregateOp is the per-group aggregate a recipe computes.
type AggregateOp string

const (
	AggregateSum   AggregateOp = "SUM"
	AggregateAvg   AggregateOp = "AVG"
	AggregateCount AggregateOp = "COUNT"
)

// SortDirection orders a recipe's result rows.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// SortKey selects what a recipe sorts on.
type SortKey int

const (
	// SortByValue orders by the aggregate value (the common case).
	SortByValue SortKey = iota
	// SortByGroup orders by the grouping key columns.
	SortByGroup
)

// ConditionOp is the comparison a filter condition applies.
type ConditionOp int

const (
	// OpEqualFold matches the field case-insensitively against a bound parameter.
	OpEqualFold ConditionOp = iota
	// OpContainsFold matches when the bound parameter occurs anywhere in the
	// field, ignoring case. Used for fiscal-year labels that may be ranges.
	OpContainsFold
	// OpBetween matches when the field lies inside an inclusive bound pair.
	// Consumes two bind values.
	OpBetween
	// OpAtLeast matches field >= Value (static operand).
	OpAtLeast
	// OpAbove matches field > Value (static operand).
	OpAbove
)

// Condition is one filter predicate of a recipe. Either Param names the
// runtime-bound operand or Value carries a static one.
type Condition struct {
	Field Field
	Op    ConditionOp
	Param ParamKind
	Value string
}

// BindCount reports how many placeholder values the condition consumes at
// dispatch time. Static conditions are inlined and consume none.
func (c Condition) BindCount() int {
	switch c.Op {
	case OpBetween:
		return 2
	case OpAtLeast, OpAbove:
		return 0
	default:
		return 1
	}
}

// Recipe is a declarative aggregation template: optional filters, a grouping
// key of zero to two fields, one aggregate, a sort and an optional limit.
// The entire recipe executes inside the store; nothing is grouped in-process.
type Recipe struct {
	Match    []Condition
	GroupBy  []Field
	Agg      AggregateOp
	AggField Field // aggregated column; ignored for COUNT
	SortBy   SortKey
	SortDir  SortDirection
	Limit    int // 0 means unlimited
}
