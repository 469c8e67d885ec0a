package usecases

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"homequote.backend/internal/domain/entities"
	domainerrors "homequote.backend/internal/domain/errors"
	"homequote.backend/internal/domain/events"
	"homequote.backend/pkg/logger"
)

// PaymentUsecase creates deposit payment intents on the partner's Stripe account
type PaymentUsecase struct {
	gateway         PaymentGateway
	defaultCurrency string
	emitter         events.Emitter
}

func NewPaymentUsecase(gateway PaymentGateway, defaultCurrency string, emitter events.Emitter) *PaymentUsecase {
	if emitter == nil {
		emitter = events.Nop{}
	}
	return &PaymentUsecase{
		gateway:         gateway,
		defaultCurrency: strings.ToLower(defaultCurrency),
		emitter:         emitter,
	}
}

// CreatePaymentIntent returns the client secret of a new payment intent.
// Gateway failures surface as internal errors without retry.
func (u *PaymentUsecase) CreatePaymentIntent(ctx context.Context, input *entities.CreatePaymentIntentInput, idempotencyKey string) (*entities.PaymentIntentResult, error) {
	if input.Amount <= 0 {
		return nil, domainerrors.BadRequest("amount must be greater than zero")
	}
	if strings.TrimSpace(input.SecretKey) == "" {
		return nil, domainerrors.BadRequest("secretKey is required")
	}
	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = u.defaultCurrency
	}

	clientSecret, err := u.gateway.CreatePaymentIntent(ctx, input.SecretKey, input.Amount, currency, idempotencyKey)
	if err != nil {
		logger.Error(ctx, "payment intent creation failed", zap.Int64("amount", input.Amount), zap.String("currency", currency), zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}

	u.emitter.Emit(ctx, events.Event{
		Name:    events.PaymentIntentCreated,
		Payload: map[string]interface{}{"amount": input.Amount, "currency": currency},
	})
	return &entities.PaymentIntentResult{ClientSecret: clientSecret}, nil
}
