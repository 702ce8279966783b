package core

import "strings"

// TypeAll disables transaction-type filtering. The zero value of
// Filter.Type behaves the same way.
const TypeAll TransactionType = "all"

type (
	// DateRange is an inclusive [Start, End] interval. A zero Start or End
	// leaves that side of the interval open.
	DateRange struct {
		Start Date `json:"startDate"`
		End   Date `json:"endDate"`
	}

	// Filter holds the active view filters that parameterize every
	// aggregation query. All conditions are conjunctive.
	Filter struct {
		MemberID string          `json:"memberId,omitempty"` // empty: all members
		Range    DateRange       `json:"dateRange"`
		Type     TransactionType `json:"type"`   // all | income | expense
		Search   string          `json:"search"` // case-insensitive substring
	}
)

// NewDateRange builds a validated inclusive range.
func NewDateRange(start, end Date) (DateRange, error) {
	r := DateRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// MonthRange covers a full calendar month.
func MonthRange(year, month int) DateRange {
	start := NewDate(year, month, 1)
	end := Date{Time: start.AddDate(0, 1, -1)}
	return DateRange{Start: start, End: end}
}

func (r DateRange) Validate() error {
	if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End.Time) {
		return ErrInvalidRange
	}
	return nil
}

// Contains reports whether d falls within the range, bounds included.
func (r DateRange) Contains(d Date) bool {
	if !r.Start.IsZero() && d.Before(r.Start.Time) {
		return false
	}
	if !r.End.IsZero() && d.After(r.End.Time) {
		return false
	}
	return true
}

// Matches reports whether t passes every active filter condition. The
// category name is resolved through s so that searching by category works
// even though transactions only store the category id.
func (f Filter) Matches(t Transaction, s Snapshot) bool {
	if !f.Range.Contains(t.Date) {
		return false
	}
	if f.MemberID != "" && t.MemberID != f.MemberID {
		return false
	}
	if f.Type != "" && f.Type != TypeAll && t.Type != f.Type {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if strings.Contains(strings.ToLower(t.Description), needle) {
			return true
		}
		if cat, ok := s.CategoryByID(t.CategoryID); ok {
			if strings.Contains(strings.ToLower(cat.Name), needle) {
				return true
			}
		}
		return false
	}
	return true
}
