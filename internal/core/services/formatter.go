package services

import (
	"fmt"
	"strings"

	"github.com/procurelens/procurement_chat_app/internal/core/domain"
	"github.com/procurelens/procurement_chat_app/internal/utils"
)

// fallbackMessage covers unknown intents and result shapes a template did
// not expect. A mismatch is never a crash.
const fallbackMessage = "I'm sorry, I couldn't process your request. Please try again."

// formatResponse renders a query result into the user-facing sentence for
// its intent. Pre-formatted Message results pass through verbatim.
func formatResponse(entry catalogEntry, res domain.QueryResult) string {
	switch res.Kind {
	case domain.ResultMessage:
		return res.Message
	case domain.ResultEnvelope:
		if res.Envelope == nil {
			return fallbackMessage
		}
		if !res.Envelope.Success {
			return res.Envelope.Message
		}
		return fmt.Sprintf("The total quantity of items ordered is %s.", utils.FormatInt(res.Envelope.TotalQuantity))
	}

	if sentence, ok := formatIntentSentence(entry, res); ok {
		return sentence
	}

	switch res.Kind {
	case domain.ResultRecords:
		return formatRecordList(entry, res.Records)
	case domain.ResultRecord:
		return formatRecord(entry, res.Record)
	}

	return fallbackMessage
}

// formatIntentSentence handles the intents with a dedicated sentence.
// Returns false when the intent is list-styled or the record is missing an
// expected key, in which case the generic renderers take over.
func formatIntentSentence(entry catalogEntry, res domain.QueryResult) (string, bool) {
	rec := res.Record

	switch entry.intent {
	case "show_highest_spending_quarter":
		if quarter, ok := recString(rec, "Quarter"); ok {
			if spending, ok := recString(rec, "Total Spending"); ok {
				return fmt.Sprintf("The highest spending quarter is '%s' with a total spending of %s.", quarter, spending), true
			}
		}

	case "total_orders":
		if count, ok := recInt(rec, "Total Orders"); ok {
			return fmt.Sprintf("The total number of orders placed is %d.", count), true
		}

	case "largest_order":
		poNumber, ok1 := recString(rec, "Purchase Order Number")
		department, ok2 := recString(rec, "Department Name")
		supplier, ok3 := recString(rec, "Supplier Name")
		quantity, ok4 := recInt(rec, "Total Quantity")
		if ok1 && ok2 && ok3 && ok4 {
			return fmt.Sprintf(
				"The largest order is:\n- Purchase Order Number: %s\n- Department Name: %s\n- Supplier Name: %s\n- Total Quantity: %d",
				poNumber, department, supplier, quantity,
			), true
		}

	case "cheapest_item":
		name, ok1 := recString(rec, "Item Name")
		price, ok2 := recString(rec, "Unit Price")
		supplier, ok3 := recString(rec, "Supplier Name")
		department, ok4 := recString(rec, "Department Name")
		poNumber, ok5 := recString(rec, "Purchase Order Number")
		description, ok6 := recString(rec, "Description")
		if ok1 && ok2 && ok3 && ok4 && ok5 && ok6 {
			return fmt.Sprintf(
				"The cheapest item is '%s' priced at %s.\nSupplier: %s\nDepartment: %s\nPurchase Order: %s\nDescription: %s",
				name, price, supplier, department, poNumber, description,
			), true
		}

	case "highest_spending_department":
		if name, ok := recString(rec, "Department Name"); ok {
			if spending, ok := recString(rec, "Total Spending"); ok {
				return fmt.Sprintf("The highest spending department is '%s' with a total spending of %s.", name, spending), true
			}
		}

	case "department_spending_by_name":
		if name, ok := recString(rec, "Department Name"); ok {
			if spending, ok := recString(rec, "Total Spending"); ok {
				return fmt.Sprintf("The total spending for the department '%s' is %s.", name, spending), true
			}
		}

	case "top_classification_code":
		if code, ok := recString(rec, "Classification Code"); ok {
			if spending, ok := recString(rec, "Total Spending"); ok {
				return fmt.Sprintf("The classification code with the highest total spending is %s with a total spending of %s.", code, spending), true
			}
		}

	case "quantity_top_department":
		if name, ok := recString(rec, "Department Name"); ok {
			if quantity, ok := recInt(rec, "Total Quantity"); ok {
				return fmt.Sprintf("The department with the highest total quantity is '%s' with a total quantity of %d.", name, quantity), true
			}
		}

	case "highest_total_price_order":
		if poNumber, ok := recString(rec, "Purchase Order Number"); ok {
			if price, ok := recString(rec, "Total Price"); ok {
				return fmt.Sprintf("The highest total price order is '%s' with a total price of %s.", poNumber, price), true
			}
		}

	case "avg_quantity_per_order":
		if avg, ok := recString(rec, "Average Quantity Per Order"); ok {
			return fmt.Sprintf("The average quantity per order is %s.", avg), true
		}

	case "fiscal_year_spending":
		if year, ok := recString(rec, "Fiscal Year"); ok {
			if spending, ok := recString(rec, "Total Spending"); ok {
				return fmt.Sprintf("Total spending for fiscal year %s: %s.", year, spending), true
			}
		}

	case "fiscal_year_orders":
		if year, ok := recString(rec, "Fiscal Year"); ok {
			if count, ok := recInt(rec, "Total Orders"); ok {
				return fmt.Sprintf("The total number of orders in fiscal year %s is %d.", year, count), true
			}
		}

	case "fiscal_year_top_department":
		if name, ok := recString(rec, "Department Name"); ok {
			if spending, ok := recString(rec, "Total Spending"); ok {
				return fmt.Sprintf("The top department in the fiscal year is '%s' with a total spending of %s.", name, spending), true
			}
		}

	case "fiscal_year_expensive_item":
		name, ok1 := recString(rec, "Item Name")
		price, ok2 := recString(rec, "Unit Price")
		poNumber, ok3 := recString(rec, "Purchase Order Number")
		department, ok4 := recString(rec, "Department Name")
		if ok1 && ok2 && ok3 && ok4 {
			return fmt.Sprintf(
				"The most expensive item in the specified fiscal year is '%s' with a unit price of %s. It was purchased under the order number '%s' by the '%s' department.",
				name, price, poNumber, department,
			), true
		}

	case "supplier_spending":
		if name, ok := recString(rec, "Supplier Name"); ok {
			if spending, ok := recString(rec, "Total Spending"); ok {
				return fmt.Sprintf("The total spending for supplier '%s' is %s.", name, spending), true
			}
		}

	case "purchase_order_value":
		if poNumber, ok := recString(rec, "Purchase Order Number"); ok {
			if value, ok := recString(rec, "Total Value"); ok {
				return fmt.Sprintf("The total value of purchase order %s is %s.", poNumber, value), true
			}
		}
	}

	return "", false
}

// formatRecordList renders the generic list intents: the entry's lead
// sentence followed by one line per row in display-column order.
func formatRecordList(entry catalogEntry, records []map[string]any) string {
	if len(records) == 0 {
		return fallbackMessage
	}

	columns := displayColumns(entry)
	if len(columns) == 0 {
		return fallbackMessage
	}

	var sb strings.Builder
	if entry.lead != "" {
		sb.WriteString(entry.lead)
	}
	for _, record := range records {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("- ")
		if entry.hideValue && len(columns) == 1 {
			sb.WriteString(stringify(record[columns[0]]))
			continue
		}
		for i, col := range columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(col)
			sb.WriteString(": ")
			sb.WriteString(stringify(record[col]))
		}
	}
	return sb.String()
}

func formatRecord(entry catalogEntry, record map[string]any) string {
	if len(record) == 0 {
		return fallbackMessage
	}

	var sb strings.Builder
	for _, col := range displayColumns(entry) {
		v, ok := record[col]
		if !ok {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(col)
		sb.WriteString(": ")
		sb.WriteString(stringify(v))
	}
	if sb.Len() == 0 {
		return fallbackMessage
	}
	return sb.String()
}

func displayColumns(entry catalogEntry) []string {
	columns := make([]string, 0, len(entry.columns)+2)
	if entry.echoParam != "" {
		columns = append(columns, entry.echoParam)
	}
	columns = append(columns, entry.columns...)
	if entry.valueName != "" && !entry.hideValue {
		columns = append(columns, entry.valueName)
	}
	return columns
}

func recString(rec map[string]any, key string) (string, bool) {
	v, ok := rec[key].(string)
	return v, ok
}

func recInt(rec map[string]any, key string) (int64, bool) {
	v, ok := rec[key].(int64)
	return v, ok
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "N/A"
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
