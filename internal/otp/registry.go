package otp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sevasetu/seva-backend/internal/models"
)

// Errors surfaced by the OTP flow. ErrChallengeNotFound comes from the
// registry; the expiry and attempt-ceiling errors are produced by the
// service after it inspects the challenge.
var (
	ErrChallengeNotFound = errors.New("otp challenge not found")
	ErrChallengeExpired  = errors.New("otp challenge expired")
	ErrTooManyAttempts   = errors.New("too many attempts")
)

// Registry holds at most one pending challenge per contact. Implementations
// are injectable so tests can drive the flow against the in-memory registry
// with a fake clock on the service.
type Registry interface {
	// Put overwrites any existing challenge for the contact. The ttl is a
	// storage-level upper bound on the challenge lifetime; logical expiry is
	// still enforced lazily by the verifying service.
	Put(ctx context.Context, contact string, challenge models.OTPChallenge, ttl time.Duration) error
	Get(ctx context.Context, contact string) (*models.OTPChallenge, error)
	Update(ctx context.Context, contact string, challenge models.OTPChallenge) error
	Delete(ctx context.Context, contact string) error
}

// MemoryRegistry is the default process-local registry. Challenges do not
// survive a restart and are not shared across processes.
type MemoryRegistry struct {
	mu         sync.RWMutex
	challenges map[string]models.OTPChallenge
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		challenges: make(map[string]models.OTPChallenge),
	}
}

// Put stores the challenge. The ttl is ignored; the memory registry relies
// on the service's lazy expiry check.
func (r *MemoryRegistry) Put(_ context.Context, contact string, challenge models.OTPChallenge, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.challenges[contact] = challenge
	return nil
}

func (r *MemoryRegistry) Get(_ context.Context, contact string) (*models.OTPChallenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	challenge, exists := r.challenges[contact]
	if !exists {
		return nil, ErrChallengeNotFound
	}
	return &challenge, nil
}

func (r *MemoryRegistry) Update(_ context.Context, contact string, challenge models.OTPChallenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.challenges[contact]; !exists {
		return ErrChallengeNotFound
	}
	r.challenges[contact] = challenge
	return nil
}

func (r *MemoryRegistry) Delete(_ context.Context, contact string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.challenges, contact)
	return nil
}
