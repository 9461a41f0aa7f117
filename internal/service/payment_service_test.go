package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpix/promptpix/internal/razorpay"
	"github.com/promptpix/promptpix/internal/repository"
	"github.com/promptpix/promptpix/pkg/logger"
)

type fakePaymentGateway struct {
	orders     int
	validSig   bool
	lastAmount int
}

func (g *fakePaymentGateway) CreateOrder(ctx context.Context, amount int, currency, receipt string) (*razorpay.Order, error) {
	g.orders++
	g.lastAmount = amount
	return &razorpay.Order{ID: "order_abc", Amount: amount, Currency: currency, Receipt: receipt, Status: "created"}, nil
}

func (g *fakePaymentGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return g.validSig
}

func (g *fakePaymentGateway) KeyID() string { return "rzp_test_key" }

func newPaymentFixture(t *testing.T, gateway *fakePaymentGateway) (*PaymentService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewPaymentService(
		logger.New(),
		gateway,
		repository.NewTransactionRepository(db),
		repository.NewUserRepository(db),
		NewPlanService(repository.NewPlanRepository(db)),
		"INR",
	)
	return svc, mock
}

func planRow(mock sqlmock.Sqlmock, id string, amount, credits int) {
	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM pricing_plans WHERE id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label", "amount", "credits", "is_active", "created_at", "updated_at"}).
			AddRow(id, "Basic", amount, credits, 1, now, now))
}

func transactionRow(mock sqlmock.Sqlmock, settled int) {
	mock.ExpectQuery("SELECT .* FROM transactions WHERE provider_order_id").
		WithArgs("order_abc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "plan_id", "amount", "credits", "provider_order_id", "settled", "created_at", "settled_at"}).
			AddRow("txn-1", "u1", "basic", 10, 100, "order_abc", settled, time.Now(), nil))
}

func TestInitiatePurchaseCreatesOrderInMinorUnits(t *testing.T) {
	gateway := &fakePaymentGateway{}
	svc, mock := newPaymentFixture(t, gateway)

	planRow(mock, "basic", 10, 100)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transactions")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	order, err := svc.InitiatePurchase(context.Background(), "u1", "basic")
	require.NoError(t, err)

	assert.Equal(t, "order_abc", order.OrderID)
	assert.Equal(t, 1000, gateway.lastAmount) // 10 INR in paise
	assert.Equal(t, "rzp_test_key", order.KeyID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInitiatePurchaseUnknownPlan(t *testing.T) {
	gateway := &fakePaymentGateway{}
	svc, mock := newPaymentFixture(t, gateway)

	mock.ExpectQuery("SELECT .* FROM pricing_plans WHERE id").
		WithArgs("gold").
		WillReturnRows(sqlmock.NewRows([]string{"id", "label", "amount", "credits", "is_active", "created_at", "updated_at"}))

	_, err := svc.InitiatePurchase(context.Background(), "u1", "gold")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, gateway.orders)
}

func TestConfirmPurchaseCreditsOnce(t *testing.T) {
	gateway := &fakePaymentGateway{validSig: true}
	svc, mock := newPaymentFixture(t, gateway)

	transactionRow(mock, 0)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE transactions SET settled = 1")).
		WithArgs("txn-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET credit_balance = credit_balance + ?")).
		WithArgs(100, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := svc.ConfirmPurchase(context.Background(), "u1", "order_abc", "pay_1", "sig")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPurchaseDuplicateCallbackDoesNotDoubleCredit(t *testing.T) {
	gateway := &fakePaymentGateway{validSig: true}
	svc, mock := newPaymentFixture(t, gateway)

	// Already settled: no further SQL may run.
	transactionRow(mock, 1)

	err := svc.ConfirmPurchase(context.Background(), "u1", "order_abc", "pay_1", "sig")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPurchaseInvalidSignature(t *testing.T) {
	gateway := &fakePaymentGateway{validSig: false}
	svc, mock := newPaymentFixture(t, gateway)

	err := svc.ConfirmPurchase(context.Background(), "u1", "order_abc", "pay_1", "bad")
	require.ErrorIs(t, err, ErrInvalidSignature)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPurchaseForeignTransaction(t *testing.T) {
	gateway := &fakePaymentGateway{validSig: true}
	svc, mock := newPaymentFixture(t, gateway)

	transactionRow(mock, 0)

	err := svc.ConfirmPurchase(context.Background(), "other-user", "order_abc", "pay_1", "sig")
	require.ErrorIs(t, err, ErrForbidden)
	require.NoError(t, mock.ExpectationsWereMet())
}
