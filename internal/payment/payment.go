// Package payment wraps the external payment provider. The core only needs
// one operation: turning an amount into a payment intent the client can
// complete on its own.
package payment

import "context"

// Intent is the client-facing result of intent creation. Only the client
// secret is ever returned to callers; everything else stays provider-side.
type Intent struct {
	ID           string
	ClientSecret string
}

// IntentCreator creates a payment intent for an amount in minor currency
// units (e.g. cents).
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (*Intent, error)
}
