package services

import (
	"sync"

	"bilancio/internal/core"
)

// FilterState owns the active view filters. Setters are independent: each
// one replaces exactly its own slice of the state and nothing else. Reads
// hand out value copies, so aggregation always works on a consistent
// snapshot of the filter.
type FilterState struct {
	mu     sync.RWMutex
	filter core.Filter
}

// NewFilterState starts with the current calendar month, all members, all
// transaction types and no search text.
func NewFilterState(now core.Date) *FilterState {
	return &FilterState{
		filter: core.Filter{
			Range: core.MonthRange(now.Year(), int(now.Month())),
			Type:  core.TypeAll,
		},
	}
}

// Filter returns a copy of the current filter.
func (fs *FilterState) Filter() core.Filter {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.filter
}

// SetSelectedMember filters to one member; the empty string clears the
// member filter.
func (fs *FilterState) SetSelectedMember(id string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.filter.MemberID = id
}

// SetTransactionType accepts all, income or expense.
func (fs *FilterState) SetTransactionType(t core.TransactionType) error {
	if t != core.TypeAll && t != "" {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.filter.Type = t
	return nil
}

// SetDateRange replaces the active range. A reversed range (start after
// end) is rejected with core.ErrInvalidRange and the previous range stays
// in place; it is never silently clamped.
func (fs *FilterState) SetDateRange(start, end core.Date) error {
	r, err := core.NewDateRange(start, end)
	if err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.filter.Range = r
	return nil
}

func (fs *FilterState) SetSearchText(text string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.filter.Search = text
}
