package api

import (
	"net/http"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/ledger"
)

func (s *APIServer) listAccountsHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := s.ledger.ListAccounts(r.Context(), ownerFrom(r.Context()))
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, accounts)
	}
}

func (s *APIServer) getAccountHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.fail(w, r, err)
			return
		}

		account, err := s.ledger.GetAccount(r.Context(), ownerFrom(r.Context()), id)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, account)
	}
}

func (s *APIServer) createAccountHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ledger.NewAccount
		if err := decodeJSON(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		account, err := s.ledger.CreateAccount(r.Context(), ownerFrom(r.Context()), req)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, envelope{
			Status:  http.StatusCreated,
			Success: "account created successfully",
			ID:      account.ID.String(),
		})
	}
}

func (s *APIServer) updateAccountHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.fail(w, r, err)
			return
		}

		var patch models.AccountPatch
		if err := decodeJSON(r, &patch); err != nil {
			s.fail(w, r, err)
			return
		}

		if _, err := s.ledger.UpdateAccount(r.Context(), ownerFrom(r.Context()), id, patch); err != nil {
			s.fail(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, "account updated successfully")
	}
}

func (s *APIServer) deleteAccountHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.fail(w, r, err)
			return
		}

		if err := s.ledger.DeleteAccount(r.Context(), ownerFrom(r.Context()), id); err != nil {
			s.fail(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, "account deleted successfully")
	}
}

// reconcileHandler reports balance drift; with apply set it also corrects it.
func (s *APIServer) reconcileHandler(apply bool) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.fail(w, r, err)
			return
		}

		result, err := s.ledger.ReconcileAccount(r.Context(), ownerFrom(r.Context()), id, apply)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
