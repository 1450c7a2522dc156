package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/usecase"
)

type TransferHandler struct {
	depositUC  *usecase.DepositUseCase
	withdrawUC *usecase.WithdrawUseCase
	transferUC *usecase.TransferFundsUseCase
	reverseUC  *usecase.ReverseTransactionUseCase
}

func NewTransferHandler(
	depositUC *usecase.DepositUseCase,
	withdrawUC *usecase.WithdrawUseCase,
	transferUC *usecase.TransferFundsUseCase,
	reverseUC *usecase.ReverseTransactionUseCase,
) *TransferHandler {
	return &TransferHandler{
		depositUC:  depositUC,
		withdrawUC: withdrawUC,
		transferUC: transferUC,
		reverseUC:  reverseUC,
	}
}

type movementRequest struct {
	AccountID   int64           `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (h *TransferHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req movementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	output, err := h.depositUC.Execute(r.Context(), usecase.DepositInput{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, output)
}

func (h *TransferHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req movementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	output, err := h.withdrawUC.Execute(r.Context(), usecase.WithdrawInput{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, output)
}

type transferRequest struct {
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.FromAccount == "" || req.ToAccount == "" {
		respondError(w, http.StatusBadRequest, "from_account and to_account are required")
		return
	}

	output, err := h.transferUC.Execute(r.Context(), usecase.TransferRequest{
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, output)
}

func (h *TransferHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "transactionID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	output, err := h.reverseUC.Execute(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, output)
}
