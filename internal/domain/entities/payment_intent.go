package entities

// CreatePaymentIntentInput is the payload of the payment-intent endpoint.
// Amount is in the currency's minor unit.
type CreatePaymentIntentInput struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	SecretKey string `json:"secretKey"`
}

// PaymentIntentResult is returned to the browser
type PaymentIntentResult struct {
	ClientSecret string `json:"clientSecret"`
}
