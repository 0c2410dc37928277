package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Service is the notification boundary. Every Send* method is
// fire-and-forget: it returns whether delivery succeeded and logs
// failures at warn level. Nothing is retried.
type Service struct {
	mailer Mailer
	logger *zap.Logger
}

func NewService(mailer Mailer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{mailer: mailer, logger: logger}
}

func (s *Service) send(ctx context.Context, kind, to, subject, body string) bool {
	if err := s.mailer.Send(ctx, to, subject, body); err != nil {
		s.logger.Warn("email delivery failed",
			zap.String("kind", kind),
			zap.String("to", to),
			zap.Error(err),
		)
		return false
	}
	return true
}

// SendOTP delivers a one-time verification code.
func (s *Service) SendOTP(ctx context.Context, email, code string) bool {
	body := fmt.Sprintf("Your EvOrgs verification code is %s. It expires in 10 minutes.", code)
	return s.send(ctx, "otp", email, "Your verification code", body)
}

// SendBookingConfirmation notifies a user their booking was confirmed.
func (s *Service) SendBookingConfirmation(ctx context.Context, email string, bookingID int64) bool {
	body := fmt.Sprintf("Your booking #%d has been confirmed.", bookingID)
	return s.send(ctx, "booking_confirmation", email, "Booking confirmed", body)
}

// SendPaymentReminder nudges a user about an unpaid booking balance.
func (s *Service) SendPaymentReminder(ctx context.Context, email string, bookingID int64, amountDue float64) bool {
	body := fmt.Sprintf("Booking #%d has an outstanding balance of %.2f. Please complete payment.", bookingID, amountDue)
	return s.send(ctx, "payment_reminder", email, "Payment reminder", body)
}
