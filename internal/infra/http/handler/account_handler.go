package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/usecase"
)

type AccountHandler struct {
	createUC  *usecase.CreateAccountUseCase
	statusUC  *usecase.AccountStatusUseCase
	queriesUC *usecase.AccountQueriesUseCase
}

func NewAccountHandler(
	createUC *usecase.CreateAccountUseCase,
	statusUC *usecase.AccountStatusUseCase,
	queriesUC *usecase.AccountQueriesUseCase,
) *AccountHandler {
	return &AccountHandler{
		createUC:  createUC,
		statusUC:  statusUC,
		queriesUC: queriesUC,
	}
}

type createAccountRequest struct {
	UserID      int64  `json:"user_id"`
	AccountName string `json:"account_name"`
	Currency    string `json:"currency"`
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.UserID <= 0 || req.AccountName == "" {
		respondError(w, http.StatusBadRequest, "user_id and account_name are required")
		return
	}

	output, err := h.createUC.Execute(r.Context(), usecase.CreateAccountInput{
		UserID:      req.UserID,
		AccountName: req.AccountName,
		Currency:    req.Currency,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, output)
}

func (h *AccountHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "accountID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	output, err := h.queriesUC.Details(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "accountID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	balance, err := h.queriesUC.Balance(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]decimal.Decimal{"balance": balance})
}

func (h *AccountHandler) UserAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	outputs, err := h.queriesUC.UserAccounts(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outputs)
}

func (h *AccountHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.statusUC.Activate)
}

func (h *AccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.statusUC.Deactivate)
}

func (h *AccountHandler) setStatus(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64) error) {
	id, ok := pathID(r, "accountID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	if err := fn(r.Context(), id); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) RecentTransactions(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")
	if accountNumber == "" {
		respondError(w, http.StatusBadRequest, "account number is required")
		return
	}

	count := 10
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "invalid count")
			return
		}
		count = parsed
	}

	outputs, err := h.queriesUC.RecentTransactions(r.Context(), accountNumber, count)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outputs)
}

func (h *AccountHandler) Transaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "transactionID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	output, err := h.queriesUC.Transaction(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

func (h *AccountHandler) SearchTransactions(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		respondError(w, http.StatusBadRequest, "reference query parameter is required")
		return
	}

	outputs, err := h.queriesUC.SearchByReference(r.Context(), reference)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outputs)
}
