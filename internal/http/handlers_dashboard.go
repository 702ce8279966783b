package http

import (
	"fmt"
	"net/http"

	"bilancio/internal/core"
)

// handleSnapshot returns the full read surface: every collection as a
// point-in-time copy.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Snapshot failed", "error", err)
		writeError(w, http.StatusInternalServerError, "snapshot failed")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleOverview returns the dashboard headline figures for the active
// filter, memoized per (revision, filter).
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	key := s.overviewKey()
	if ov, ok := s.overviewCache.Get(key); ok {
		writeJSON(w, http.StatusOK, ov)
		return
	}

	ov, err := s.svc.Overview(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Overview failed", "error", err)
		writeError(w, http.StatusInternalServerError, "overview failed")
		return
	}

	s.overviewCache.Set(key, ov)
	writeJSON(w, http.StatusOK, ov)
}

func (s *Server) overviewKey() string {
	f := s.svc.Filters().Filter()
	return fmt.Sprintf("%d|%s|%s|%s|%s|%s",
		s.svc.Revision(), f.MemberID, f.Range.Start, f.Range.End, f.Type, f.Search)
}

// handleGetFilters returns the active filter state.
func (s *Server) handleGetFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Filters().Filter())
}

// filterUpdate carries the optional filter changes of a PUT. Absent
// fields leave the corresponding filter slice untouched, matching the
// four independent setters underneath.
type filterUpdate struct {
	MemberID  *string `json:"memberId"`
	Type      *string `json:"type"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Search    *string `json:"search"`
}

func (s *Server) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	var upd filterUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filters := s.svc.Filters()

	if upd.MemberID != nil {
		filters.SetSelectedMember(sanitizeInput(*upd.MemberID))
	}
	if upd.Type != nil {
		if err := filters.SetTransactionType(core.TransactionType(*upd.Type)); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if upd.StartDate != nil || upd.EndDate != nil {
		if upd.StartDate == nil || upd.EndDate == nil {
			writeError(w, http.StatusBadRequest, "startDate and endDate must be set together")
			return
		}
		start, err := core.ParseDate(*upd.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid startDate")
			return
		}
		end, err := core.ParseDate(*upd.EndDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid endDate")
			return
		}
		if err := filters.SetDateRange(start, end); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if upd.Search != nil {
		filters.SetSearchText(sanitizeInput(*upd.Search))
	}

	writeJSON(w, http.StatusOK, filters.Filter())
}
