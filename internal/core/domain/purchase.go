package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLine represents a single line item of a purchase order.
// One order number typically spans several lines. TotalPrice is stored
// independently of UnitPrice and Quantity and is authoritative on its own.
type PurchaseLine struct {
	LineID              int64           `json:"lineID"`
	PurchaseOrderNumber string          `json:"purchaseOrderNumber"` // Not Null
	CreationDate        time.Time       `json:"creationDate"`        // Not Null
	FiscalYear          string          `json:"fiscalYear"`          // Label, may be a range like "2013-2014"
	AcquisitionType     string          `json:"acquisitionType"`     // Not Null
	AcquisitionMethod   string          `json:"acquisitionMethod"`
	DepartmentName      string          `json:"departmentName"`
	SupplierCode        string          `json:"supplierCode"`
	SupplierName        string          `json:"supplierName"`
	CalCard             string          `json:"calCard"` // Payment-card usage flag
	ItemName            string          `json:"itemName"`
	ItemDescription     string          `json:"itemDescription"`
	ClassificationCodes string          `json:"classificationCodes"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	TotalPrice          decimal.Decimal `json:"totalPrice"`
}

// DateRange is an inclusive [Start, End] pair extracted from a query.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Strings renders the range the way it travels through the API (YYYY-MM-DD).
func (r DateRange) Strings() (string, string) {
	return r.Start.Format("2006-01-02"), r.End.Format("2006-01-02")
}
