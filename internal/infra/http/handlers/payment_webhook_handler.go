package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// PaymentWebhookHandler recebe a confirmação de depósito do processador
// de pagamento e credita o saldo do buyer.
type PaymentWebhookHandler struct {
	UseCase *usecase.UpdateBalanceUseCase
}

func NewPaymentWebhookHandler(uc *usecase.UpdateBalanceUseCase) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{UseCase: uc}
}

func (h *PaymentWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var event struct {
		Event   string `json:"event"`
		Payment struct {
			ID string `json:"id"`
			// Centavos
			Value int64 `json:"value"`
			// Nosso buyer id, devolvido pelo processador
			ExternalReference string `json:"external_reference"`
		} `json:"payment"`
	}

	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad JSON", 400)
		return
	}

	// Só nos interessa dinheiro confirmado. Os demais eventos recebem
	// 200 para o processador parar de reenviar.
	if event.Event != "PAYMENT_RECEIVED" && event.Event != "PAYMENT_CONFIRMED" {
		w.WriteHeader(200)
		return
	}

	buyerID, err := strconv.ParseInt(event.Payment.ExternalReference, 10, 64)
	if err != nil {
		log.Printf("❌ Webhook: external_reference inválida: %q", event.Payment.ExternalReference)
		w.WriteHeader(200)
		return
	}

	ok, err := h.UseCase.Execute(r.Context(), usecase.UpdateBalanceInput{
		BuyerID:           buyerID,
		Amount:            event.Payment.Value,
		Type:              "deposit",
		Description:       "Deposit via payment processor",
		ExternalPaymentID: event.Payment.ID,
	})
	if err != nil {
		if usecase.IsDomainError(err) {
			// Payload ruim do processador: loga e dá 200 para não
			// entrar em loop de retry
			log.Printf("⚠️ Webhook: depósito rejeitado: %v", err)
			w.WriteHeader(200)
			return
		}
		log.Printf("❌ Webhook: falha ao creditar buyer %d: %v", buyerID, err)
		w.WriteHeader(500)
		return
	}

	if ok {
		log.Printf("💰 Depósito confirmado para o buyer %d (pagamento %s)", buyerID, event.Payment.ID)
	}
	w.WriteHeader(200)
}
