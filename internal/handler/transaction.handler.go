package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"banking-service/internal/domain"
	"banking-service/internal/usecase"
	"banking-service/pkg/response"

	"github.com/shopspring/decimal"
)

type TransactionLister interface {
	List(ctx context.Context, filter domain.TransactionFilter) ([]*domain.TransactionRecord, error)
}

type TransactionHandler struct {
	ledger       *usecase.LedgerService
	transactions TransactionLister
}

func NewTransactionHandler(ledger *usecase.LedgerService, transactions TransactionLister) *TransactionHandler {
	return &TransactionHandler{ledger: ledger, transactions: transactions}
}

func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.ledger.Deposit, "Deposit successful")
}

func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.ledger.Withdraw, "Withdrawal successful")
}

func (h *TransactionHandler) apply(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, domain.TransactionInput) (decimal.Decimal, error),
	message string,
) {
	var in domain.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.UserID == "" {
		in.UserID = UserIDFrom(r.Context())
	}

	newBalance, err := op(r.Context(), in)
	if err != nil {
		status, msg := errStatus(err)
		response.Error(w, status, msg)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"message":    message,
		"newBalance": newBalance,
	})
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var in domain.TransferInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.UserID == "" {
		in.UserID = UserIDFrom(r.Context())
	}

	if err := h.ledger.Transfer(r.Context(), in); err != nil {
		status, msg := errStatus(err)
		response.Error(w, status, msg)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Transfer successful"})
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.TransactionFilter{AccountNumber: r.URL.Query().Get("accountNumber")}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			response.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}

	records, err := h.transactions.List(r.Context(), filter)
	if err != nil {
		status, msg := errStatus(err)
		response.Error(w, status, msg)
		return
	}
	response.JSON(w, http.StatusOK, records)
}
