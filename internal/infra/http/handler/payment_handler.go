package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
	"github.com/mohmad-Awadallah/e-bank/internal/usecase"
)

type PaymentHandler struct {
	billUC *usecase.BillPaymentUseCase
	cardUC *usecase.CreditCardUseCase
}

func NewPaymentHandler(billUC *usecase.BillPaymentUseCase, cardUC *usecase.CreditCardUseCase) *PaymentHandler {
	return &PaymentHandler{billUC: billUC, cardUC: cardUC}
}

type payBillRequest struct {
	AccountID         int64           `json:"account_id"`
	BillerCode        string          `json:"biller_code"`
	CustomerReference string          `json:"customer_reference"`
	Amount            decimal.Decimal `json:"amount"`
}

func (h *PaymentHandler) PayBill(w http.ResponseWriter, r *http.Request) {
	var req payBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.BillerCode == "" {
		respondError(w, http.StatusBadRequest, "biller_code is required")
		return
	}

	output, err := h.billUC.Process(r.Context(), usecase.ProcessBillPaymentInput{
		AccountID:         req.AccountID,
		BillerCode:        req.BillerCode,
		CustomerReference: req.CustomerReference,
		Amount:            req.Amount,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, output)
}

func (h *PaymentHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	receipt := chi.URLParam(r, "receiptNumber")
	if receipt == "" {
		respondError(w, http.StatusBadRequest, "receipt number is required")
		return
	}

	output, err := h.billUC.GetByReceipt(r.Context(), receipt)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

func (h *PaymentHandler) BillHistory(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(r, "accountID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	outputs, err := h.billUC.History(r.Context(), accountID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outputs)
}

type issueCardRequest struct {
	AccountID      int64           `json:"account_id"`
	CardHolderName string          `json:"card_holder_name"`
	CardType       string          `json:"card_type"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
}

func (h *PaymentHandler) IssueCard(w http.ResponseWriter, r *http.Request) {
	var req issueCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.CardHolderName == "" {
		respondError(w, http.StatusBadRequest, "card_holder_name is required")
		return
	}

	output, err := h.cardUC.Issue(r.Context(), usecase.IssueCardInput{
		AccountID:      req.AccountID,
		CardHolderName: req.CardHolderName,
		CardType:       domain.CardType(req.CardType),
		CreditLimit:    req.CreditLimit,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, output)
}

type chargeCardRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *PaymentHandler) ChargeCard(w http.ResponseWriter, r *http.Request) {
	cardID, ok := pathID(r, "cardID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	var req chargeCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	output, err := h.cardUC.Charge(r.Context(), cardID, req.Amount)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, output)
}

func (h *PaymentHandler) DeactivateCard(w http.ResponseWriter, r *http.Request) {
	cardID, ok := pathID(r, "cardID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid card id")
		return
	}

	if err := h.cardUC.Deactivate(r.Context(), cardID); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PaymentHandler) ActiveCards(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(r, "accountID")
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	outputs, err := h.cardUC.ActiveCards(r.Context(), accountID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, outputs)
}
