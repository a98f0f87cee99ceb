package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/sevasetu/seva-backend/internal/models"
	"github.com/sevasetu/seva-backend/internal/otp"
	"github.com/sevasetu/seva-backend/internal/services"
	"github.com/sevasetu/seva-backend/internal/storage"
)

var (
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrInvalidTransition = errors.New("action not allowed in current state")
)

var (
	mobileRe = regexp.MustCompile(`^[6-9]\d{9}$`)
	cardRe   = regexp.MustCompile(`^\d{16}$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe    = regexp.MustCompile(`^\d{3,4}$`)
)

// Flow drives checkout sessions through
//
//	anonymous → {known_user | unknown_user} → otp_pending → verified
//	          → address_valid → order_placed
//
// by calling the identity, OTP, address and order services. It is the
// server-side rendition of the storefront's cascading async flows, with
// named states and explicit transition triggers instead of chained
// callbacks.
//
// Every method returns a snapshot copy of the session, taken while its
// mutex is held. Callers never see the live session, so they can read and
// serialize the result while the flow and the cleanup sweep keep mutating
// the original.
type Flow struct {
	identity *services.IdentityService
	otps     *services.OTPService
	orders   *services.OrderService
	address  *services.AddressService

	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewFlow creates a checkout flow over the given services.
func NewFlow(identity *services.IdentityService, otps *services.OTPService, orders *services.OrderService, address *services.AddressService) *Flow {
	return &Flow{
		identity: identity,
		otps:     otps,
		orders:   orders,
		address:  address,
		sessions: make(map[string]*Session),
	}
}

// Start opens a new anonymous session holding a snapshot of the cart.
func (f *Flow) Start(items []models.OrderItem) *Session {
	session := newSession(items)

	f.mu.Lock()
	f.sessions[session.ID] = session
	f.mu.Unlock()

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshot()
}

// lookup returns the live session. Callers must take session.mu before
// touching any of its fields.
func (f *Flow) lookup(id string) (*Session, error) {
	f.mu.RLock()
	session, exists := f.sessions[id]
	f.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Get returns a snapshot of the session by id, or ErrSessionNotFound.
func (f *Flow) Get(id string) (*Session, error) {
	session, err := f.lookup(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshot(), nil
}

// SubmitMobile runs the identity existence check and lands the session in
// known_user or unknown_user.
func (f *Flow) SubmitMobile(ctx context.Context, id, contact string) (*Session, error) {
	session, err := f.lookup(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch()

	switch session.State {
	case StateAnonymous, StateKnownUser, StateUnknownUser:
	default:
		return session.snapshot(), ErrInvalidTransition
	}

	if !mobileRe.MatchString(contact) {
		session.Message = "Invalid mobile number"
		return session.snapshot(), fmt.Errorf("invalid mobile number: %w", ErrInvalidTransition)
	}

	exists, err := f.identity.UserExists(contact)
	if err != nil {
		session.Message = "Could not check mobile number"
		return session.snapshot(), err
	}

	session.Contact = contact
	if exists {
		session.State = StateKnownUser
	} else {
		session.State = StateUnknownUser
	}
	session.Message = ""
	return session.snapshot(), nil
}

// RequestOTP issues a challenge for a known user. Also valid from
// otp_pending: a re-issue overwrites the prior challenge.
func (f *Flow) RequestOTP(ctx context.Context, id string) (*Session, error) {
	session, err := f.lookup(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch()

	switch session.State {
	case StateKnownUser, StateOTPPending:
	default:
		return session.snapshot(), ErrInvalidTransition
	}

	if err := f.otps.Issue(ctx, session.Contact); err != nil {
		session.Message = "Failed to send OTP"
		return session.snapshot(), err
	}

	session.State = StateOTPPending
	session.Message = "OTP sent successfully"
	return session.snapshot(), nil
}

// SignUp creates the account for an unknown contact and issues the signup
// OTP. The account outlives the session even if the OTP is never verified.
func (f *Flow) SignUp(ctx context.Context, id, name, email string) (*Session, error) {
	session, err := f.lookup(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch()

	if session.State != StateUnknownUser {
		return session.snapshot(), ErrInvalidTransition
	}

	user, err := f.identity.CreateUser(session.Contact, name, email)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			session.Message = "User already exists"
		} else {
			session.Message = "Failed to create user"
		}
		return session.snapshot(), err
	}

	if err := f.otps.Issue(ctx, session.Contact); err != nil {
		session.Message = "Failed to send OTP"
		return session.snapshot(), err
	}

	session.User = user
	session.State = StateOTPPending
	session.Message = "User created, OTP sent"
	return session.snapshot(), nil
}

// SubmitOTP verifies the challenge. A wrong code keeps the session in
// otp_pending; an expired or exhausted challenge returns it to known_user so
// the devotee can request a fresh code.
func (f *Flow) SubmitOTP(ctx context.Context, id, code string) (*Session, error) {
	session, err := f.lookup(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch()

	if session.State != StateOTPPending {
		return session.snapshot(), ErrInvalidTransition
	}

	valid, err := f.otps.Verify(ctx, session.Contact, code)
	if err != nil {
		switch {
		case errors.Is(err, otp.ErrChallengeExpired):
			session.Message = "OTP expired"
		case errors.Is(err, otp.ErrTooManyAttempts):
			session.Message = "Too many attempts"
		case errors.Is(err, otp.ErrChallengeNotFound):
			session.Message = "OTP not found or expired"
		default:
			session.Message = "Failed to verify OTP"
		}
		// The challenge is gone; back to the step before issuance.
		session.State = StateKnownUser
		return session.snapshot(), err
	}
	if !valid {
		session.Message = "Invalid OTP"
		return session.snapshot(), nil
	}

	user, err := f.identity.GetUserByContact(session.Contact)
	if err != nil {
		session.Message = "Failed to load user"
		return session.snapshot(), err
	}

	session.User = user
	session.State = StateVerified
	session.Message = "User verified successfully"
	return session.snapshot(), nil
}

// SubmitAddress validates the pincode against the reference table and, on
// success, completes the address with the resolved city/state and marks it
// verified.
func (f *Flow) SubmitAddress(ctx context.Context, id string, address models.Address) (*Session, error) {
	session, err := f.lookup(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch()

	switch session.State {
	case StateVerified, StateAddressValid:
	default:
		return session.snapshot(), ErrInvalidTransition
	}

	info, err := f.address.GetAddressByPincode(strconv.Itoa(address.Pincode))
	if err != nil {
		session.Message = "Invalid pincode"
		return session.snapshot(), err
	}

	address.City = info.City
	address.State = info.State
	address.Verified = true

	session.Address = &address
	session.State = StateAddressValid
	session.Message = "Address validated successfully"
	return session.snapshot(), nil
}

// SubmitPayment validates the card fields the way the storefront's payment
// modal does and places the order. No payment processor is ever contacted.
func (f *Flow) SubmitPayment(ctx context.Context, id, cardNumber, expiry, cvv string) (*Session, error) {
	session, err := f.lookup(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.touch()

	if session.State != StateAddressValid {
		return session.snapshot(), ErrInvalidTransition
	}

	if err := validatePayment(cardNumber, expiry, cvv); err != nil {
		session.Message = err.Error()
		return session.snapshot(), fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
	}

	userID := 0
	if session.User != nil {
		userID = session.User.ID
	}

	receipt, err := f.orders.PlaceOrder(userID, session.Items, session.Address)
	if err != nil {
		session.Message = "Payment failed"
		return session.snapshot(), err
	}

	session.Receipt = receipt
	session.State = StateOrderPlaced
	session.Message = "Order placed successfully"
	return session.snapshot(), nil
}

// Evict drops sessions idle for longer than ttl and reports how many were
// removed. LastActive is written under each session's own mutex, so reading
// it here takes that mutex too.
func (f *Flow) Evict(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	f.mu.Lock()
	defer f.mu.Unlock()

	removed := 0
	for id, session := range f.sessions {
		session.mu.Lock()
		idle := session.LastActive.Before(cutoff)
		session.mu.Unlock()

		if idle {
			delete(f.sessions, id)
			removed++
		}
	}
	return removed
}

// ActiveSessions reports the current session count.
func (f *Flow) ActiveSessions() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sessions)
}

func validatePayment(cardNumber, expiry, cvv string) error {
	if cardNumber == "" {
		return errors.New("Card number is required")
	}
	if !cardRe.MatchString(cardNumber) {
		return errors.New("Invalid card number (16 digits)")
	}
	if expiry == "" {
		return errors.New("Expiry date is required")
	}
	if !expiryRe.MatchString(expiry) {
		return errors.New("Invalid expiry (MM/YY)")
	}
	if cvv == "" {
		return errors.New("CVV is required")
	}
	if !cvvRe.MatchString(cvv) {
		return errors.New("Invalid CVV (3-4 digits)")
	}
	return nil
}
