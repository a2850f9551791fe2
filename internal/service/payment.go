package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/kvitka/hotel-bookings/internal/domain"
	"github.com/kvitka/hotel-bookings/internal/repo/postgres"
	"github.com/kvitka/hotel-bookings/pkg/config"
	"github.com/kvitka/hotel-bookings/pkg/events"
	"github.com/kvitka/hotel-bookings/pkg/logger"
)

type PaymentIntent struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type PaymentService interface {
	// CreateIntent opens a Stripe payment intent for the booking's total.
	// Rooms must be assigned first, otherwise there is nothing to charge.
	CreateIntent(ctx context.Context, token uuid.UUID, userID int64) (*PaymentIntent, error)
	// ConfirmPaid marks the booking paid once the intent has succeeded.
	ConfirmPaid(ctx context.Context, token uuid.UUID, intentID string) (*domain.Booking, error)
}

type paymentService struct {
	bookingRepo postgres.BookingRepository
	eventBus    events.EventBus
	config      *config.Config
}

func NewPaymentService(bookingRepo postgres.BookingRepository, eventBus events.EventBus, config *config.Config) PaymentService {
	return &paymentService{
		bookingRepo: bookingRepo,
		eventBus:    eventBus,
		config:      config,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, token uuid.UUID, userID int64) (*PaymentIntent, error) {
	booking, err := s.bookingRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil || booking.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if booking.IsPaid {
		return nil, fmt.Errorf("booking is already paid")
	}

	amount := booking.TotalPrice()
	if amount <= 0 {
		return nil, fmt.Errorf("booking has no rooms assigned yet")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(s.config.Stripe.Currency),
	}
	params.AddMetadata("booking_token", token.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntent{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       amount,
		Currency:     s.config.Stripe.Currency,
	}, nil
}

func (s *paymentService) ConfirmPaid(ctx context.Context, token uuid.UUID, intentID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil {
		return nil, domain.ErrNotFound
	}
	if booking.IsPaid {
		return booking, nil
	}

	pi, err := paymentintent.Get(intentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment intent: %w", err)
	}
	if pi.Metadata["booking_token"] != token.String() {
		return nil, fmt.Errorf("payment intent does not belong to this booking")
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("payment has not succeeded: %s", pi.Status)
	}

	if err := s.bookingRepo.MarkPaid(ctx, token); err != nil {
		return nil, fmt.Errorf("failed to mark booking paid: %w", err)
	}
	booking.IsPaid = true

	event := events.BookingPaidEvent{
		BookingToken: token.String(),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		PaidAt:       time.Now(),
	}
	if err := s.eventBus.Publish(ctx, events.BookingPaid, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking paid event", "error", err, "booking_token", token)
	}

	return booking, nil
}
