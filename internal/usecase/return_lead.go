package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// ReturnLeadUseCase é o Return/Refund Handler: desfaz uma venda (lead
// ruim ou disputado) devolvendo o valor integral ao buyer — ou o crédito
// de trial, quando a venda original não custou dinheiro.
type ReturnLeadUseCase struct {
	Ledger   entity.Ledger
	LeadRepo BuyerLeadRepositoryInterface
}

func NewReturnLeadUseCase(ledger entity.Ledger, leadRepo BuyerLeadRepositoryInterface) *ReturnLeadUseCase {
	return &ReturnLeadUseCase{
		Ledger:   ledger,
		LeadRepo: leadRepo,
	}
}

// Execute devolve (false, nil) quando o lead não está em delivered —
// estornar duas vezes, ou estornar um pending, é erro do usuário, não
// pane do sistema.
func (uc *ReturnLeadUseCase) Execute(ctx context.Context, buyerLeadID int64, reason string) (bool, error) {
	// Leitura fora do lock só para descobrir o buyer dono da linha
	lead, err := uc.LeadRepo.FindByID(ctx, buyerLeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return false, nil
		}
		return false, err
	}

	err = uc.Ledger.WithBuyerLock(ctx, lead.BuyerID, func(ctx context.Context, tx entity.LedgerTx, buyer *entity.Buyer) error {
		now := time.Now()

		// Recarrega com lock: o status pode ter mudado desde a leitura
		locked, err := tx.LeadForUpdate(ctx, buyerLeadID)
		if err != nil {
			return err
		}
		if locked.Status != entity.LeadDelivered {
			return entity.ErrLeadNotReturnable
		}

		if err := tx.MarkLeadReturned(ctx, buyerLeadID, reason, now); err != nil {
			return err
		}

		original, err := tx.FindChargeTransaction(ctx, buyerLeadID)
		if err != nil {
			return fmt.Errorf("lançamento original do lead %d não encontrado: %w", buyerLeadID, err)
		}

		if original.Type == entity.TransactionFreeLead {
			// A venda consumiu um free lead: devolve o crédito, não dinheiro.
			// Estornar moeda aqui daria dinheiro de graça ao buyer.
			buyer.FreeLeadsRemaining++

			if err := tx.UpdateBuyer(ctx, buyer); err != nil {
				return err
			}
			return tx.AppendTransaction(ctx, &entity.Transaction{
				BuyerID:      buyer.ID,
				Type:         entity.TransactionRefund,
				Amount:       0,
				BalanceAfter: buyer.Balance,
				Description:  "Lead returned: free lead credit restored",
				ReferenceID:  &buyerLeadID,
				CreatedAt:    now,
			})
		}

		// Estorno integral. O pause é mão única: devolver saldo não
		// reativa buyer pausado — isso é decisão administrativa.
		buyer.Balance += locked.Price

		if err := tx.UpdateBuyer(ctx, buyer); err != nil {
			return err
		}
		return tx.AppendTransaction(ctx, &entity.Transaction{
			BuyerID:      buyer.ID,
			Type:         entity.TransactionRefund,
			Amount:       locked.Price,
			BalanceAfter: buyer.Balance,
			Description:  "Lead returned: " + reason,
			ReferenceID:  &buyerLeadID,
			CreatedAt:    now,
		})
	})

	if err != nil {
		if errors.Is(err, entity.ErrLeadNotReturnable) {
			return false, nil
		}
		return false, err
	}

	log.Printf("↩️ Lead %d estornado para o buyer %d (%s)", buyerLeadID, lead.BuyerID, reason)
	return true, nil
}
