package api

import (
	"net/http"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/budgets"
)

func (s *APIServer) listBudgetsHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.budgets.List(r.Context(), ownerFrom(r.Context()))
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

func (s *APIServer) getBudgetHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.fail(w, r, err)
			return
		}

		budget, err := s.budgets.Get(r.Context(), ownerFrom(r.Context()), id)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, budget)
	}
}

func (s *APIServer) createBudgetHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req budgets.NewBudget
		if err := decodeJSON(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		budget, err := s.budgets.Create(r.Context(), ownerFrom(r.Context()), req)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, envelope{
			Status:  http.StatusCreated,
			Success: "budget created successfully",
			ID:      budget.ID.String(),
		})
	}
}

func (s *APIServer) updateBudgetHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.fail(w, r, err)
			return
		}

		var req budgets.Update
		if err := decodeJSON(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		if _, err := s.budgets.Update(r.Context(), ownerFrom(r.Context()), id, req); err != nil {
			s.fail(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, "budget updated successfully")
	}
}

func (s *APIServer) deleteBudgetHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.fail(w, r, err)
			return
		}

		if err := s.budgets.Delete(r.Context(), ownerFrom(r.Context()), id); err != nil {
			s.fail(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, "budget deleted successfully")
	}
}
