package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/procurelens/procurement_chat_app/internal/core/domain"
	portsrepo "github.com/procurelens/procurement_chat_app/internal/core/ports/repositories"
)

var (
	fiscalYearRe = regexp.MustCompile(`\b(20\d{2})\b`)
	poNumberRe   = regexp.MustCompile(`(po\d{5,})|\d{5,}`)
	dateRangeRe  = regexp.MustCompile(`from\s+([\w/-]+)\s+to\s+([\w/-]+)`)

	// Standalone date tokens: ISO, numeric slash/dash, "Month Day, Year".
	dateTokenRes = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
		regexp.MustCompile(`\b(?:january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}\b`),
	}
)

// Extractors recovers typed parameters from free text. Dictionary-backed
// extractors (department, supplier, item, acquisition type) consult the
// store's live distinct-value sets; the rest are pure text heuristics.
// Malformed input never errors, it just yields "not found".
type Extractors struct {
	repo portsrepo.ProcurementRepository
	now  func() time.Time
}

// NewExtractors creates the extractor set against the given store.
func NewExtractors(repo portsrepo.ProcurementRepository) *Extractors {
	return &Extractors{repo: repo, now: time.Now}
}

// FiscalYear finds a 4-digit year token beginning "20", or resolves
// "last year"/"next year" against the current date. First match wins.
func (e *Extractors) FiscalYear(text string) (string, bool) {
	text = strings.ToLower(text)

	if m := fiscalYearRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}

	year := e.now().Year()
	if strings.Contains(text, "last year") {
		return fmt.Sprintf("%d", year-1), true
	}
	if strings.Contains(text, "next year") {
		return fmt.Sprintf("%d", year+1), true
	}

	return "", false
}

// DateRange resolves an inclusive date range from the text. Relative phrases
// win over explicit dates; an explicit "from X to Y" wins over loose tokens;
// of the loose tokens, exactly two distinct dates form a range and exactly
// one a degenerate range.
func (e *Extractors) DateRange(text string) (domain.DateRange, bool) {
	text = strings.ToLower(text)
	now := e.now()

	if strings.Contains(text, "last year") {
		return yearRange(now.Year() - 1), true
	}
	if strings.Contains(text, "this year") {
		return yearRange(now.Year()), true
	}
	if strings.Contains(text, "last month") {
		year, month := now.Year(), now.Month()
		if month == time.January {
			year, month = year-1, time.December
		} else {
			month--
		}
		return monthRange(year, month), true
	}
	if strings.Contains(text, "this month") {
		return monthRange(now.Year(), now.Month()), true
	}

	if m := dateRangeRe.FindStringSubmatch(text); m != nil {
		start, errS := dateparse.ParseAny(m[1])
		end, errE := dateparse.ParseAny(m[2])
		if errS == nil && errE == nil {
			return domain.DateRange{Start: dateOnly(start), End: dateOnly(end)}, true
		}
	}

	seen := map[string]time.Time{}
	for _, re := range dateTokenRes {
		for _, token := range re.FindAllString(text, -1) {
			parsed, err := dateparse.ParseAny(token)
			if err != nil {
				continue
			}
			d := dateOnly(parsed)
			seen[d.Format("2006-01-02")] = d
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	switch len(dates) {
	case 2:
		return domain.DateRange{Start: dates[0], End: dates[1]}, true
	case 1:
		return domain.DateRange{Start: dates[0], End: dates[0]}, true
	default:
		return domain.DateRange{}, false
	}
}

// Department matches the text against the store's distinct department names.
func (e *Extractors) Department(ctx context.Context, text string) (string, bool) {
	return e.distinctMatch(ctx, domain.FieldDepartmentName, text)
}

// Supplier matches the text against the store's distinct supplier names.
func (e *Extractors) Supplier(ctx context.Context, text string) (string, bool) {
	return e.distinctMatch(ctx, domain.FieldSupplierName, text)
}

// Item matches the text against the store's distinct item names.
func (e *Extractors) Item(ctx context.Context, text string) (string, bool) {
	return e.distinctMatch(ctx, domain.FieldItemName, text)
}

// AcquisitionType matches the text against the store's distinct acquisition types.
func (e *Extractors) AcquisitionType(ctx context.Context, text string) (string, bool) {
	return e.distinctMatch(ctx, domain.FieldAcquisitionType, text)
}

// PONumber finds a purchase order number: "PO" followed by five or more
// digits, or a bare run of five or more digits. First match wins.
func (e *Extractors) PONumber(text string) (string, bool) {
	if m := poNumberRe.FindString(strings.ToLower(text)); m != "" {
		return m, true
	}
	return "", false
}

// distinctMatch returns the first stored value whose lowercased form occurs
// as a substring of the lowercased text. The value comes back verbatim from
// the store, never from the text. Distinct returns values in ascending
// order, which fixes the tie-break when one value is a substring of another.
func (e *Extractors) distinctMatch(ctx context.Context, field domain.Field, text string) (string, bool) {
	values, err := e.repo.Distinct(ctx, field)
	if err != nil {
		return "", false
	}

	text = strings.ToLower(text)
	for _, v := range values {
		if v != "" && strings.Contains(text, strings.ToLower(v)) {
			return v, true
		}
	}

	return "", false
}

func yearRange(year int) domain.DateRange {
	return domain.DateRange{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

func monthRange(year int, month time.Month) domain.DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return domain.DateRange{
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
