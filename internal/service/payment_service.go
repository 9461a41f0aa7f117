package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/promptpix/promptpix/internal/models"
	"github.com/promptpix/promptpix/internal/razorpay"
	"github.com/promptpix/promptpix/internal/repository"
)

// PaymentGateway is the outbound side of the purchase flow.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int, currency, receipt string) (*razorpay.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

// PaymentService creates pending credit purchases and settles them when
// the gateway confirms payment.
type PaymentService struct {
	log          *slog.Logger
	gateway      PaymentGateway
	transactions *repository.TransactionRepository
	users        *repository.UserRepository
	plans        *PlanService
	currency     string
}

// PendingOrder is handed to the browser checkout widget.
type PendingOrder struct {
	OrderID       string `json:"orderId"`
	Amount        int    `json:"amount"`
	Currency      string `json:"currency"`
	KeyID         string `json:"keyId"`
	PlanID        string `json:"planId"`
	TransactionID string `json:"transactionId"`
}

func NewPaymentService(log *slog.Logger, gateway PaymentGateway, transactions *repository.TransactionRepository, users *repository.UserRepository, plans *PlanService, currency string) *PaymentService {
	return &PaymentService{
		log:          log,
		gateway:      gateway,
		transactions: transactions,
		users:        users,
		plans:        plans,
		currency:     currency,
	}
}

// InitiatePurchase resolves the plan, registers a provider order and
// records the unsettled transaction keyed by that order.
func (s *PaymentService) InitiatePurchase(ctx context.Context, userID, planID string) (*PendingOrder, error) {
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		ID:      uuid.NewString(),
		UserID:  userID,
		PlanID:  plan.ID,
		Amount:  plan.Amount,
		Credits: plan.Credits,
	}

	// Razorpay wants the amount in minor units (paise).
	order, err := s.gateway.CreateOrder(ctx, plan.Amount*100, s.currency, txn.ID)
	if err != nil {
		return nil, fmt.Errorf("create provider order: %w", err)
	}
	txn.ProviderOrderID = order.ID

	if _, err := s.transactions.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	return &PendingOrder{
		OrderID:       order.ID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		KeyID:         s.gateway.KeyID(),
		PlanID:        plan.ID,
		TransactionID: txn.ID,
	}, nil
}

// ConfirmPurchase verifies the checkout signature, settles the
// transaction and credits the plan quantity exactly once. Duplicate
// confirmations for an already settled order succeed without a second
// credit.
func (s *PaymentService) ConfirmPurchase(ctx context.Context, userID, orderID, paymentID, signature string) error {
	if !s.gateway.VerifySignature(orderID, paymentID, signature) {
		return ErrInvalidSignature
	}

	txn, err := s.transactions.FindByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	if txn == nil {
		return ErrNotFound
	}
	if txn.UserID != userID {
		return ErrForbidden
	}
	if txn.Settled {
		return nil
	}

	settled, err := s.transactions.MarkSettled(ctx, txn.ID)
	if err != nil {
		return err
	}
	if !settled {
		// Raced with a duplicate callback that already settled it.
		return nil
	}

	if err := s.users.AddCredits(ctx, txn.UserID, txn.Credits); err != nil {
		return fmt.Errorf("apply credits: %w", err)
	}

	s.log.Info("purchase settled", "user_id", txn.UserID, "plan_id", txn.PlanID, "credits", txn.Credits)
	return nil
}
