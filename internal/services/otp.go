package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sevasetu/seva-backend/internal/metrics"
	"github.com/sevasetu/seva-backend/internal/models"
	"github.com/sevasetu/seva-backend/internal/otp"
	"github.com/sevasetu/seva-backend/internal/utils"
)

const (
	// ChallengeTTL is the logical lifetime of a challenge, checked lazily on
	// the next verify call rather than by an eviction sweep.
	ChallengeTTL = 5 * time.Minute

	// MaxAttempts is the attempt ceiling, checked before the current attempt
	// is counted.
	MaxAttempts = 3

	// registryTTL bounds how long an abandoned challenge lingers in a
	// TTL-capable registry. It is longer than ChallengeTTL so the service
	// can still report "expired" instead of "not found" shortly after the
	// logical expiry.
	registryTTL = 10 * time.Minute
)

// OTPService issues and verifies one-time codes against a Registry.
// The clock is injectable so tests can assert expiry behavior
// deterministically.
type OTPService struct {
	registry otp.Registry
	notifier Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewOTPService creates an OTP service. A nil metrics is allowed.
func NewOTPService(registry otp.Registry, notifier Notifier, m *metrics.Metrics) *OTPService {
	return &OTPService{
		registry: registry,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
	}
}

// WithClock replaces the service clock. Test hook.
func (s *OTPService) WithClock(now func() time.Time) *OTPService {
	s.now = now
	return s
}

// Issue generates a fresh 6-digit code for the contact, overwriting any
// pending challenge, and hands it to the notifier for delivery.
func (s *OTPService) Issue(ctx context.Context, contact string) error {
	code, err := utils.GenerateOTPCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	challenge := models.OTPChallenge{
		Contact:  contact,
		Code:     code,
		IssuedAt: s.now(),
		Attempts: 0,
	}

	if err := s.registry.Put(ctx, contact, challenge, registryTTL); err != nil {
		return fmt.Errorf("failed to store OTP challenge: %w", err)
	}

	if err := s.notifier.SendOTP(contact, code); err != nil {
		return fmt.Errorf("failed to deliver OTP: %w", err)
	}

	if s.metrics != nil {
		s.metrics.OTPIssued.Inc()
	}
	return nil
}

// Verify checks a submitted code against the pending challenge.
//
// A mismatch is not an error: it returns (false, nil) and leaves the
// challenge pending with its attempt counter incremented. The counter counts
// consumed attempts, not failed ones; it is incremented even when the
// verification succeeds on the same call.
func (s *OTPService) Verify(ctx context.Context, contact, submitted string) (bool, error) {
	challenge, err := s.registry.Get(ctx, contact)
	if err != nil {
		return false, err
	}

	if s.now().Sub(challenge.IssuedAt) > ChallengeTTL {
		if err := s.registry.Delete(ctx, contact); err != nil {
			return false, err
		}
		if s.metrics != nil {
			s.metrics.OTPRejected.Inc()
		}
		return false, otp.ErrChallengeExpired
	}

	if challenge.Attempts >= MaxAttempts {
		if err := s.registry.Delete(ctx, contact); err != nil {
			return false, err
		}
		if s.metrics != nil {
			s.metrics.OTPRejected.Inc()
		}
		return false, otp.ErrTooManyAttempts
	}

	challenge.Attempts++

	if submitted != challenge.Code {
		if err := s.registry.Update(ctx, contact, *challenge); err != nil {
			return false, err
		}
		if s.metrics != nil {
			s.metrics.OTPRejected.Inc()
		}
		return false, nil
	}

	// Challenge consumed on success.
	if err := s.registry.Delete(ctx, contact); err != nil {
		return false, err
	}
	if s.metrics != nil {
		s.metrics.OTPVerified.Inc()
	}
	return true, nil
}
