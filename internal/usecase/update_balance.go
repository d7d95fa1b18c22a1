package usecase

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// UpdateBalanceUseCase recebe depósitos (webhook do processador de
// pagamento) e ajustes administrativos. Mesma regra de sempre: saldo e
// lançamento entram na mesma transação, sob o lock do buyer.
type UpdateBalanceUseCase struct {
	Ledger entity.Ledger
}

func NewUpdateBalanceUseCase(ledger entity.Ledger) *UpdateBalanceUseCase {
	return &UpdateBalanceUseCase{Ledger: ledger}
}

func (uc *UpdateBalanceUseCase) Execute(ctx context.Context, input UpdateBalanceInput) (bool, error) {
	txType := entity.TransactionType(input.Type)

	// charge/refund/free_lead são internos; por aqui só entra dinheiro
	// de fora ou ajuste manual.
	switch txType {
	case entity.TransactionDeposit, entity.TransactionAdjustment:
	default:
		return false, &DomainError{
			Code:    "INVALID_TRANSACTION_TYPE",
			Message: "type must be deposit or adjustment",
		}
	}

	if txType == entity.TransactionDeposit && input.Amount <= 0 {
		return false, &DomainError{
			Code:    "INVALID_AMOUNT",
			Message: "deposit amount must be positive",
		}
	}
	if input.Amount == 0 {
		return false, &DomainError{
			Code:    "INVALID_AMOUNT",
			Message: "amount must not be zero",
		}
	}

	var newBalance int64

	err := uc.Ledger.WithBuyerLock(ctx, input.BuyerID, func(ctx context.Context, tx entity.LedgerTx, buyer *entity.Buyer) error {
		// Depósito NÃO reativa buyer pausado: a volta é administrativa
		buyer.Balance += input.Amount
		newBalance = buyer.Balance

		if err := tx.UpdateBuyer(ctx, buyer); err != nil {
			return err
		}

		var paymentRef *string
		if input.ExternalPaymentID != "" {
			paymentRef = &input.ExternalPaymentID
		}

		return tx.AppendTransaction(ctx, &entity.Transaction{
			BuyerID:      buyer.ID,
			Type:         txType,
			Amount:       input.Amount,
			BalanceAfter: buyer.Balance,
			Description:  input.Description,
			ReferenceID:  input.ReferenceID,
			PaymentRef:   paymentRef,
			CreatedAt:    time.Now(),
		})
	})

	if err != nil {
		return false, err
	}

	log.Printf("💰 Buyer %d: %s de %d centavos (saldo agora %d)", input.BuyerID, input.Type, input.Amount, newBalance)
	return true, nil
}
