package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"banking-service/internal/domain"
	"banking-service/internal/usecase"
	"banking-service/pkg/response"
)

// AccountLister is the read side the account handler needs; the postgres
// account repository satisfies it.
type AccountLister interface {
	List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error)
}

type AccountHandler struct {
	ledger   *usecase.LedgerService
	accounts AccountLister
}

func NewAccountHandler(ledger *usecase.LedgerService, accounts AccountLister) *AccountHandler {
	return &AccountHandler{ledger: ledger, accounts: accounts}
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.CreateAccountInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.UserID == "" {
		in.UserID = UserIDFrom(r.Context())
	}

	number, err := h.ledger.CreateAccount(r.Context(), in)
	if err != nil {
		status, msg := errStatus(err)
		response.Error(w, status, msg)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{"accountNumber": number})
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.AccountFilter{Search: r.URL.Query().Get("search")}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			response.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}

	accounts, err := h.accounts.List(r.Context(), filter)
	if err != nil {
		status, msg := errStatus(err)
		response.Error(w, status, msg)
		return
	}
	response.JSON(w, http.StatusOK, accounts)
}
