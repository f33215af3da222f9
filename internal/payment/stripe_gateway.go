package payment

import (
	"context"
	"errors"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

type StripeGateway struct {
	currency string
}

// NewStripeGateway mengeset API key global stripe-go. Currency dipakai untuk
// semua intent (payroll satu organisasi selalu satu mata uang).
func NewStripeGateway(apiKey, currency string) *StripeGateway {
	stripe.Key = apiKey
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeGateway{currency: currency}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, p CreateIntentParams) (Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(p.Amount),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("payroll_id", p.PayrollID)
	params.AddMetadata("employee_id", p.EmployeeID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return Intent{}, err
	}

	return Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

func (g *StripeGateway) Confirm(ctx context.Context, intentID, paymentMethodID string) (CaptureResult, error) {
	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodID),
	}
	params.Context = ctx

	pi, err := paymentintent.Confirm(intentID, params)
	if err != nil {
		// Card decline dan sejenisnya adalah hasil capture yang gagal,
		// bukan kegagalan transport; kembalikan sebagai result.
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return CaptureResult{
				Status:  string(stripeErr.Code),
				Message: stripeErr.Msg,
			}, nil
		}
		return CaptureResult{}, err
	}

	result := CaptureResult{
		TransactionID: pi.ID,
		Status:        string(pi.Status),
		Succeeded:     pi.Status == stripe.PaymentIntentStatusSucceeded,
	}
	if !result.Succeeded {
		result.Message = "payment intent did not reach succeeded status"
	}
	return result, nil
}
