package usecase

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// ChargeBuyerUseCase é o Billing Coordinator. Tudo acontece dentro do
// lock do buyer: decremento de free lead OU débito do saldo, virada do
// BuyerLead para delivered e o lançamento no razão — uma transação só.
type ChargeBuyerUseCase struct {
	Ledger entity.Ledger
}

func NewChargeBuyerUseCase(ledger entity.Ledger) *ChargeBuyerUseCase {
	return &ChargeBuyerUseCase{Ledger: ledger}
}

func (uc *ChargeBuyerUseCase) Execute(ctx context.Context, input ChargeInput) (*ChargeOutput, error) {
	var out ChargeOutput

	err := uc.Ledger.WithBuyerLock(ctx, input.BuyerID, func(ctx context.Context, tx entity.LedgerTx, buyer *entity.Buyer) error {
		// O Matcher já filtrou, mas a suspensão é reavaliada aqui dentro
		// do lock: um admin pode ter suspendido entre a leitura e a cobrança.
		if buyer.Status == entity.BuyerSuspended {
			return &DomainError{
				Code:    "BUYER_SUSPENDED",
				Message: "buyer is suspended and cannot be charged",
			}
		}

		now := time.Now()
		leadID := input.BuyerLeadID

		// Janela de trial: consome crédito, não mexe no saldo
		if buyer.FreeLeadsRemaining > 0 {
			buyer.FreeLeadsRemaining--

			if err := tx.UpdateBuyer(ctx, buyer); err != nil {
				return err
			}
			if err := tx.MarkLeadDelivered(ctx, leadID, now); err != nil {
				return err
			}
			if err := tx.AppendTransaction(ctx, &entity.Transaction{
				BuyerID:      buyer.ID,
				Type:         entity.TransactionFreeLead,
				Amount:       0,
				BalanceAfter: buyer.Balance,
				Description:  "Free trial lead",
				ReferenceID:  &leadID,
				CreatedAt:    now,
			}); err != nil {
				return err
			}

			out = ChargeOutput{FreeLead: true, NewBalance: buyer.Balance}
			return nil
		}

		// Cobrança real
		buyer.Balance -= input.Price

		paused := false
		if buyer.Balance < buyer.MinBalance && buyer.Status == entity.BuyerActive {
			// Única transição automática de status do sistema
			buyer.Status = entity.BuyerPaused
			paused = true
		}

		if err := tx.UpdateBuyer(ctx, buyer); err != nil {
			return err
		}
		if err := tx.MarkLeadDelivered(ctx, leadID, now); err != nil {
			return err
		}
		if err := tx.AppendTransaction(ctx, &entity.Transaction{
			BuyerID:      buyer.ID,
			Type:         entity.TransactionCharge,
			Amount:       -input.Price,
			BalanceAfter: buyer.Balance,
			Description:  "Lead purchase",
			ReferenceID:  &leadID,
			CreatedAt:    now,
		}); err != nil {
			return err
		}

		out = ChargeOutput{NewBalance: buyer.Balance, Paused: paused}
		return nil
	})

	if err != nil {
		return nil, err
	}

	if out.Paused {
		log.Printf("⏸️ Buyer %d pausado automaticamente: Balance below minimum (saldo %d)",
			input.BuyerID, out.NewBalance)
	}

	return &out, nil
}

// PauseBuyerUseCase cobre o caminho administrativo de pausa/suspensão.
// Registrado pelo mesmo lock do razão para não atropelar uma cobrança em voo.
type PauseBuyerUseCase struct {
	Ledger entity.Ledger
}

func NewPauseBuyerUseCase(ledger entity.Ledger) *PauseBuyerUseCase {
	return &PauseBuyerUseCase{Ledger: ledger}
}

func (uc *PauseBuyerUseCase) Execute(ctx context.Context, buyerID int64, status entity.BuyerStatus, reason string) error {
	switch status {
	case entity.BuyerActive, entity.BuyerPaused, entity.BuyerSuspended:
	default:
		return &DomainError{Code: "INVALID_STATUS", Message: "status must be active, paused or suspended"}
	}

	err := uc.Ledger.WithBuyerLock(ctx, buyerID, func(ctx context.Context, tx entity.LedgerTx, buyer *entity.Buyer) error {
		buyer.Status = status
		return tx.UpdateBuyer(ctx, buyer)
	})
	if err != nil {
		return err
	}

	log.Printf("🔧 Buyer %d agora está %s (%s)", buyerID, status, reason)
	return nil
}
