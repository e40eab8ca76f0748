package api

import (
	"net/http"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/ledger"
)

func (s *APIServer) listTransactionsHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		txs, err := s.ledger.ListTransactions(r.Context(), ownerFrom(r.Context()))
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, txs)
	}
}

func (s *APIServer) listAccountTransactionsHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := pathID(r, "accountId")
		if err != nil {
			s.fail(w, r, err)
			return
		}

		txs, err := s.ledger.ListAccountTransactions(r.Context(), ownerFrom(r.Context()), accountID)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, txs)
	}
}

func (s *APIServer) getTransactionHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := pathID(r, "accountId")
		if err != nil {
			s.fail(w, r, err)
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			s.fail(w, r, err)
			return
		}

		tx, err := s.ledger.GetTransaction(r.Context(), ownerFrom(r.Context()), accountID, id)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, tx)
	}
}

func (s *APIServer) createTransactionHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := pathID(r, "accountId")
		if err != nil {
			s.fail(w, r, err)
			return
		}

		var req ledger.NewTransaction
		if err := decodeJSON(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		tx, balance, err := s.ledger.CreateTransaction(r.Context(), ownerFrom(r.Context()), accountID, req)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, envelope{
			Status:  http.StatusCreated,
			Success: "transaction created successfully",
			ID:      tx.ID.String(),
			Balance: &balance,
		})
	}
}

func (s *APIServer) deleteTransactionHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := pathID(r, "accountId")
		if err != nil {
			s.fail(w, r, err)
			return
		}
		id, err := pathID(r, "id")
		if err != nil {
			s.fail(w, r, err)
			return
		}

		balance, err := s.ledger.DeleteTransaction(r.Context(), ownerFrom(r.Context()), accountID, id)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, envelope{
			Status:  http.StatusOK,
			Success: "transaction deleted successfully",
			Balance: &balance,
		})
	}
}
