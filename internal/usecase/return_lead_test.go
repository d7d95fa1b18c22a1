package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// MockBuyerLeadRepository
type MockBuyerLeadRepository struct {
	mock.Mock
}

func (m *MockBuyerLeadRepository) Create(ctx context.Context, l *entity.BuyerLead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockBuyerLeadRepository) FindByID(ctx context.Context, id int64) (*entity.BuyerLead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BuyerLead), args.Error(1)
}

func deliveredLead(id, buyerID, price int64) *entity.BuyerLead {
	now := time.Now()
	return &entity.BuyerLead{
		ID:          id,
		BuyerID:     buyerID,
		CRMLeadID:   9000 + id,
		Price:       price,
		Status:      entity.LeadDelivered,
		DeliveredAt: &now,
		CreatedAt:   now,
	}
}

// Estorno de venda paga: devolve o valor integral, marca o lead como
// returned e lança o refund no razão. Cobrança + estorno = saldo original.
func TestReturnRefundsPaidLead(t *testing.T) {
	ctx := context.Background()

	ledger := newFakeLedger(activeBuyer(1, 6500, 1000, 3500, 0))
	lead := deliveredLead(100, 1, 3500)
	ledger.addLead(lead)

	ref := int64(100)
	ledger.Txs = append(ledger.Txs, &entity.Transaction{
		ID: 1, BuyerID: 1, Type: entity.TransactionCharge,
		Amount: -3500, BalanceAfter: 6500, ReferenceID: &ref,
	})
	ledger.nextTxID = 2

	leadRepo := new(MockBuyerLeadRepository)
	leadRepo.On("FindByID", mock.Anything, int64(100)).Return(lead, nil)

	uc := usecase.NewReturnLeadUseCase(ledger, leadRepo)

	ok, err := uc.Execute(ctx, 100, "wrong number")
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, int64(10000), ledger.Buyer.Balance)
	assert.Equal(t, entity.LeadReturned, ledger.Leads[100].Status)
	assert.Equal(t, "wrong number", *ledger.Leads[100].ReturnReason)

	refund := ledger.Txs[len(ledger.Txs)-1]
	assert.Equal(t, entity.TransactionRefund, refund.Type)
	assert.Equal(t, int64(3500), refund.Amount)
	assert.Equal(t, int64(10000), refund.BalanceAfter)
	assert.Equal(t, int64(100), *refund.ReferenceID)
}

// Estornar duas vezes: a segunda chamada acha o lead já em returned e
// devolve (false, nil) sem tocar no saldo de novo.
func TestReturnTwiceSecondAttemptRejected(t *testing.T) {
	ctx := context.Background()

	ledger := newFakeLedger(activeBuyer(1, 6500, 1000, 3500, 0))
	lead := deliveredLead(100, 1, 3500)
	ledger.addLead(lead)

	ref := int64(100)
	ledger.Txs = append(ledger.Txs, &entity.Transaction{
		ID: 1, BuyerID: 1, Type: entity.TransactionCharge,
		Amount: -3500, BalanceAfter: 6500, ReferenceID: &ref,
	})
	ledger.nextTxID = 2

	leadRepo := new(MockBuyerLeadRepository)
	leadRepo.On("FindByID", mock.Anything, int64(100)).Return(lead, nil)

	uc := usecase.NewReturnLeadUseCase(ledger, leadRepo)

	ok, err := uc.Execute(ctx, 100, "bad lead")
	assert.NoError(t, err)
	assert.True(t, ok)
	balanceAfterFirst := ledger.Buyer.Balance
	txCount := len(ledger.Txs)

	ok, err = uc.Execute(ctx, 100, "bad lead again")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, balanceAfterFirst, ledger.Buyer.Balance)
	assert.Len(t, ledger.Txs, txCount)
}

// Venda que consumiu free lead: o estorno devolve o crédito de trial,
// não dinheiro. O lançamento de refund entra com valor zero.
func TestReturnFreeLeadRestoresTrialCredit(t *testing.T) {
	ctx := context.Background()

	ledger := newFakeLedger(activeBuyer(2, 0, 1000, 3500, 2))
	lead := deliveredLead(200, 2, 3500)
	ledger.addLead(lead)

	ref := int64(200)
	ledger.Txs = append(ledger.Txs, &entity.Transaction{
		ID: 1, BuyerID: 2, Type: entity.TransactionFreeLead,
		Amount: 0, BalanceAfter: 0, ReferenceID: &ref,
	})
	ledger.nextTxID = 2

	leadRepo := new(MockBuyerLeadRepository)
	leadRepo.On("FindByID", mock.Anything, int64(200)).Return(lead, nil)

	uc := usecase.NewReturnLeadUseCase(ledger, leadRepo)

	ok, err := uc.Execute(ctx, 200, "no answer")
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 3, ledger.Buyer.FreeLeadsRemaining)
	assert.Equal(t, int64(0), ledger.Buyer.Balance)

	refund := ledger.Txs[len(ledger.Txs)-1]
	assert.Equal(t, entity.TransactionRefund, refund.Type)
	assert.Equal(t, int64(0), refund.Amount)
}

// Estorno não reativa buyer pausado: a volta é decisão administrativa.
func TestReturnDoesNotReactivatePausedBuyer(t *testing.T) {
	ctx := context.Background()

	buyer := activeBuyer(3, 3000, 3500, 3500, 0)
	buyer.Status = entity.BuyerPaused
	ledger := newFakeLedger(buyer)
	lead := deliveredLead(300, 3, 3500)
	ledger.addLead(lead)

	ref := int64(300)
	ledger.Txs = append(ledger.Txs, &entity.Transaction{
		ID: 1, BuyerID: 3, Type: entity.TransactionCharge,
		Amount: -3500, BalanceAfter: 3000, ReferenceID: &ref,
	})
	ledger.nextTxID = 2

	leadRepo := new(MockBuyerLeadRepository)
	leadRepo.On("FindByID", mock.Anything, int64(300)).Return(lead, nil)

	uc := usecase.NewReturnLeadUseCase(ledger, leadRepo)

	ok, err := uc.Execute(ctx, 300, "duplicate")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(6500), ledger.Buyer.Balance)
	assert.Equal(t, entity.BuyerPaused, ledger.Buyer.Status)
}

func TestReturnUnknownLead(t *testing.T) {
	ledger := newFakeLedger(activeBuyer(4, 0, 0, 3500, 0))

	leadRepo := new(MockBuyerLeadRepository)
	leadRepo.On("FindByID", mock.Anything, int64(999)).Return(nil, entity.ErrLeadNotFound)

	uc := usecase.NewReturnLeadUseCase(ledger, leadRepo)

	ok, err := uc.Execute(context.Background(), 999, "whatever")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, ledger.Txs)
}

// Lead em pending (cobrança nunca confirmada) não é estornável.
func TestReturnPendingLeadRejected(t *testing.T) {
	ledger := newFakeLedger(activeBuyer(5, 1000, 0, 3500, 0))
	lead := pendingLead(500, 5, 3500)
	ledger.addLead(lead)

	leadRepo := new(MockBuyerLeadRepository)
	leadRepo.On("FindByID", mock.Anything, int64(500)).Return(lead, nil)

	uc := usecase.NewReturnLeadUseCase(ledger, leadRepo)

	ok, err := uc.Execute(context.Background(), 500, "never charged")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1000), ledger.Buyer.Balance)
	assert.Empty(t, ledger.Txs)
}
