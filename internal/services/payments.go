package services

import (
	"context"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/paymentintent"
)

// PaymentIntentCreator abstracts the payment provider so handlers can be
// exercised without network access.
type PaymentIntentCreator interface {
	CreateIntent(ctx context.Context, amount float64, campaignID string) (clientSecret string, err error)
}

// StripePayments creates real PaymentIntents. Amounts are dollars and are
// converted to cents on the wire.
type StripePayments struct {
	SecretKey string
}

func (p StripePayments) CreateIntent(ctx context.Context, amount float64, campaignID string) (string, error) {
	stripe.Key = p.SecretKey
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if campaignID != "" {
		params.AddMetadata("campaignId", campaignID)
	}
	intent, err := paymentintent.New(params)
	if err != nil {
		return "", WrapError(err, "create payment intent")
	}
	return intent.ClientSecret, nil
}
