package service

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/payment"
)

// classPriceLookup is the slice of ClassStore the payment flow needs.
type classPriceLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error)
}

// PaymentService creates payment intents for class enrollment. The actual
// enrollment record is written by a separate, later client-driven call —
// intent creation and enrollment are deliberately not atomic.
type PaymentService struct {
	classes  classPriceLookup
	intents  payment.IntentCreator
	currency string
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(classes classPriceLookup, intents payment.IntentCreator, currency string) *PaymentService {
	return &PaymentService{classes: classes, intents: intents, currency: currency}
}

// CreateIntent looks up the class price, converts it to integer minor
// currency units, and asks the payment provider for an intent. Only the
// client-opaque secret is returned.
func (s *PaymentService) CreateIntent(ctx context.Context, classID uuid.UUID) (string, error) {
	cl, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return "", err
	}

	amount := int64(math.Round(cl.Price * 100))
	intent, err := s.intents.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
