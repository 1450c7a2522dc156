package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/usecase"
)

type WireTransferHandler struct {
	wireUC *usecase.WireTransferUseCase
}

func NewWireTransferHandler(wireUC *usecase.WireTransferUseCase) *WireTransferHandler {
	return &WireTransferHandler{wireUC: wireUC}
}

type initiateWireRequest struct {
	SenderAccountID        int64           `json:"sender_account_id"`
	RecipientBankCode      string          `json:"recipient_bank_code"`
	RecipientAccountNumber string          `json:"recipient_account_number"`
	RecipientName          string          `json:"recipient_name"`
	Amount                 decimal.Decimal `json:"amount"`
	Currency               string          `json:"currency"`
}

func (h *WireTransferHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req initiateWireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.RecipientBankCode == "" || req.RecipientAccountNumber == "" || req.RecipientName == "" {
		respondError(w, http.StatusBadRequest, "recipient details are required")
		return
	}

	output, err := h.wireUC.Initiate(r.Context(), usecase.InitiateWireInput{
		SenderAccountID:        req.SenderAccountID,
		RecipientBankCode:      req.RecipientBankCode,
		RecipientAccountNumber: req.RecipientAccountNumber,
		RecipientName:          req.RecipientName,
		Amount:                 req.Amount,
		Currency:               req.Currency,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, output)
}

func (h *WireTransferHandler) Complete(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		respondError(w, http.StatusBadRequest, "reference is required")
		return
	}

	output, err := h.wireUC.Complete(r.Context(), reference)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

func (h *WireTransferHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		respondError(w, http.StatusBadRequest, "reference is required")
		return
	}

	output, err := h.wireUC.Cancel(r.Context(), reference)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

func (h *WireTransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		respondError(w, http.StatusBadRequest, "reference is required")
		return
	}

	output, err := h.wireUC.GetByReference(r.Context(), reference)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

func (h *WireTransferHandler) ListBySender(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(r, "accountID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	outputs, err := h.wireUC.ListBySender(r.Context(), accountID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outputs)
}

func (h *WireTransferHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	outputs, err := h.wireUC.ListPending(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outputs)
}
