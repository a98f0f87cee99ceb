package services

import (
	"github.com/sevasetu/seva-backend/internal/models"
	"github.com/sevasetu/seva-backend/internal/storage"
)

// IdentityService answers existence checks and creates accounts keyed by
// mobile contact. OTP issuance on signup is the calling flow's job, not this
// service's.
type IdentityService struct {
	store storage.Store
}

func NewIdentityService(store storage.Store) *IdentityService {
	return &IdentityService{store: store}
}

// UserExists reports whether some stored user's contact exactly matches.
func (s *IdentityService) UserExists(contact string) (bool, error) {
	return s.store.UserExists(contact)
}

// GetUserByContact returns the full user record, or storage.ErrNotFound.
func (s *IdentityService) GetUserByContact(contact string) (*models.User, error) {
	return s.store.GetUserByContact(contact)
}

// CreateUser appends a new user. Returns storage.ErrConflict when a user
// with that contact already exists.
func (s *IdentityService) CreateUser(contact, name, email string) (*models.User, error) {
	return s.store.CreateUser(contact, name, email)
}
