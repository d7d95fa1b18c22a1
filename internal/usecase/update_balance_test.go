package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func TestDepositCreditsBalanceAndAppendsTransaction(t *testing.T) {
	ledger := newFakeLedger(activeBuyer(1, 1000, 0, 3500, 0))
	uc := usecase.NewUpdateBalanceUseCase(ledger)

	ok, err := uc.Execute(context.Background(), usecase.UpdateBalanceInput{
		BuyerID:           1,
		Amount:            50000,
		Type:              "deposit",
		Description:       "PIX recebido",
		ExternalPaymentID: "pay_abc123",
	})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(51000), ledger.Buyer.Balance)

	tr := ledger.Txs[0]
	assert.Equal(t, entity.TransactionDeposit, tr.Type)
	assert.Equal(t, int64(50000), tr.Amount)
	assert.Equal(t, int64(51000), tr.BalanceAfter)
	assert.Equal(t, "pay_abc123", *tr.PaymentRef)
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	ledger := newFakeLedger(activeBuyer(1, 1000, 0, 3500, 0))
	uc := usecase.NewUpdateBalanceUseCase(ledger)

	ok, err := uc.Execute(context.Background(), usecase.UpdateBalanceInput{
		BuyerID: 1, Amount: -500, Type: "deposit",
	})
	assert.False(t, ok)
	assert.True(t, usecase.IsDomainError(err))
	assert.Equal(t, int64(1000), ledger.Buyer.Balance)
	assert.Empty(t, ledger.Txs)
}

// charge/refund/free_lead são lançamentos internos: não entram por aqui.
func TestUpdateBalanceRejectsInternalTypes(t *testing.T) {
	ledger := newFakeLedger(activeBuyer(1, 1000, 0, 3500, 0))
	uc := usecase.NewUpdateBalanceUseCase(ledger)

	for _, txType := range []string{"charge", "refund", "free_lead", "pix"} {
		ok, err := uc.Execute(context.Background(), usecase.UpdateBalanceInput{
			BuyerID: 1, Amount: 100, Type: txType,
		})
		assert.False(t, ok)
		assert.True(t, usecase.IsDomainError(err))
	}
	assert.Empty(t, ledger.Txs)
}

// Ajuste administrativo pode ser negativo (desconto, multa contratual).
func TestAdjustmentAcceptsNegativeAmount(t *testing.T) {
	ledger := newFakeLedger(activeBuyer(1, 10000, 0, 3500, 0))
	uc := usecase.NewUpdateBalanceUseCase(ledger)

	ok, err := uc.Execute(context.Background(), usecase.UpdateBalanceInput{
		BuyerID: 1, Amount: -2500, Type: "adjustment", Description: "acordo comercial",
	})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7500), ledger.Buyer.Balance)
	assert.Equal(t, entity.TransactionAdjustment, ledger.Txs[0].Type)
}

// Depósito não reativa buyer pausado: a reativação é administrativa.
func TestDepositDoesNotReactivatePausedBuyer(t *testing.T) {
	buyer := activeBuyer(1, 500, 3500, 3500, 0)
	buyer.Status = entity.BuyerPaused
	ledger := newFakeLedger(buyer)
	uc := usecase.NewUpdateBalanceUseCase(ledger)

	ok, err := uc.Execute(context.Background(), usecase.UpdateBalanceInput{
		BuyerID: 1, Amount: 100000, Type: "deposit",
	})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(100500), ledger.Buyer.Balance)
	assert.Equal(t, entity.BuyerPaused, ledger.Buyer.Status)
}

func TestUpdateBalanceUnknownBuyer(t *testing.T) {
	ledger := newFakeLedger(activeBuyer(1, 0, 0, 3500, 0))
	uc := usecase.NewUpdateBalanceUseCase(ledger)

	ok, err := uc.Execute(context.Background(), usecase.UpdateBalanceInput{
		BuyerID: 999, Amount: 100, Type: "deposit",
	})
	assert.False(t, ok)
	assert.ErrorIs(t, err, entity.ErrBuyerNotFound)
}
