package checkout

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sevasetu/seva-backend/internal/models"
)

// State is a named checkout session state. Identity checks and pincode
// lookups resolve synchronously within one request, so the transient
// "checking" and "address pending" phases are only ever observable as the
// request in flight; sessions rest in one of the states below.
type State string

const (
	StateAnonymous    State = "anonymous"
	StateKnownUser    State = "known_user"
	StateUnknownUser  State = "unknown_user"
	StateOTPPending   State = "otp_pending"
	StateVerified     State = "verified"
	StateAddressValid State = "address_valid"
	StateOrderPlaced  State = "order_placed"
)

// Session is one cart checkout in progress. A failure surfaces a message on
// the session and returns it to the preceding state; it never silently drops
// state.
type Session struct {
	ID         string               `json:"sessionId"`
	State      State                `json:"state"`
	Contact    string               `json:"contact,omitempty"`
	User       *models.User         `json:"user,omitempty"`
	Items      []models.OrderItem   `json:"items"`
	Address    *models.Address      `json:"address,omitempty"`
	Receipt    *models.OrderReceipt `json:"receipt,omitempty"`
	Message    string               `json:"message,omitempty"`
	CreatedAt  time.Time            `json:"createdAt"`
	LastActive time.Time            `json:"lastActive"`

	mu sync.Mutex
}

func newSession(items []models.OrderItem) *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.New().String(),
		State:      StateAnonymous,
		Items:      items,
		CreatedAt:  now,
		LastActive: now,
	}
}

func (s *Session) touch() {
	s.LastActive = time.Now()
}

// snapshot copies the session so callers can read and serialize it after the
// lock is released. Caller holds s.mu.
func (s *Session) snapshot() *Session {
	snap := &Session{
		ID:         s.ID,
		State:      s.State,
		Contact:    s.Contact,
		Items:      s.Items,
		Message:    s.Message,
		CreatedAt:  s.CreatedAt,
		LastActive: s.LastActive,
	}
	if s.User != nil {
		user := *s.User
		snap.User = &user
	}
	if s.Address != nil {
		addr := *s.Address
		snap.Address = &addr
	}
	if s.Receipt != nil {
		receipt := *s.Receipt
		snap.Receipt = &receipt
	}
	return snap
}
