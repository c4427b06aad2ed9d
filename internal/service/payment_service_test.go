package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/payment"
	"github.com/learnnest/learnnest-backend/internal/repository"
	"github.com/stretchr/testify/require"
)

// fakeIntentCreator records the last amount and currency it was asked for.
type fakeIntentCreator struct {
	amount   int64
	currency string
	err      error
}

func (f *fakeIntentCreator) CreateIntent(_ context.Context, amount int64, currency string) (*payment.Intent, error) {
	f.amount = amount
	f.currency = currency
	if f.err != nil {
		return nil, f.err
	}
	return &payment.Intent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func TestPaymentService_CreateIntent_MinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		amount int64
	}{
		{name: "typical price", price: 19.99, amount: 1999},
		{name: "whole dollars", price: 50, amount: 5000},
		{name: "float representation", price: 0.29, amount: 29},
		{name: "free class", price: 0, amount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := &model.Class{ID: uuid.New(), Price: tt.price, Status: model.ClassStatusApproved}
			creator := &fakeIntentCreator{}
			svc := NewPaymentService(newFakeClassStore(cl), creator, "usd")

			secret, err := svc.CreateIntent(context.Background(), cl.ID)

			require.NoError(t, err)
			require.Equal(t, "pi_test_secret", secret)
			require.Equal(t, tt.amount, creator.amount)
			require.Equal(t, "usd", creator.currency)
		})
	}
}

func TestPaymentService_CreateIntent_UnknownClass(t *testing.T) {
	creator := &fakeIntentCreator{}
	svc := NewPaymentService(newFakeClassStore(), creator, "usd")

	_, err := svc.CreateIntent(context.Background(), uuid.New())

	require.ErrorIs(t, err, repository.ErrNotFound)
	// No provider call without a priced class.
	require.Zero(t, creator.amount)
}

func TestPaymentService_CreateIntent_ProviderError(t *testing.T) {
	cl := &model.Class{ID: uuid.New(), Price: 10}
	creator := &fakeIntentCreator{err: errors.New("provider unavailable")}
	svc := NewPaymentService(newFakeClassStore(cl), creator, "usd")

	_, err := svc.CreateIntent(context.Background(), cl.ID)

	require.Error(t, err)
	require.NotErrorIs(t, err, repository.ErrNotFound)
}
