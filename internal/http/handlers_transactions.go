package http

import (
	"net/http"
	"sort"

	"bilancio/internal/core"
)

// transactionView is a table row: the transaction plus its resolved
// display names. Dangling references resolve to placeholders, never to
// an error.
type transactionView struct {
	core.Transaction
	MemberName   string `json:"memberName"`
	CategoryName string `json:"categoryName"`
	SourceName   string `json:"sourceName,omitempty"`
}

// handleListTransactions returns the filtered transactions sorted by
// date descending, the table's presentation order.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Snapshot failed", "error", err)
		writeError(w, http.StatusInternalServerError, "snapshot failed")
		return
	}

	filtered := snap.FilteredTransactions(s.svc.Filters().Filter())
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date.Time)
	})

	views := make([]transactionView, 0, len(filtered))
	for _, t := range filtered {
		memberName := ""
		if m, ok := snap.MemberByID(t.MemberID); ok {
			memberName = m.Name
		}
		views = append(views, transactionView{
			Transaction:  t,
			MemberName:   memberName,
			CategoryName: snap.CategoryName(t.CategoryID),
			SourceName:   snap.SourceName(t),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var p core.CreateTransactionParams
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p.Description = sanitizeInput(p.Description)
	p.Notes = sanitizeInput(p.Notes)

	id, err := s.svc.AddTransaction(r.Context(), p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var p core.UpdateTransactionParams
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.svc.UpdateTransaction(r.Context(), r.PathValue("id"), p); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
