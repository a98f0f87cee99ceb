package storage

import (
	"errors"

	"github.com/sevasetu/seva-backend/internal/models"
)

// Sentinel errors returned by Store implementations. Handlers map these to
// HTTP statuses with errors.Is.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// Store defines the interface for storage operations
type Store interface {
	// Seva operations (catalog is read-only after seeding)
	CreateSeva(seva *models.Seva) (*models.Seva, error)
	ListSevas(page, limit int) ([]*models.Seva, error)
	GetSevaByCode(code string) (*models.Seva, error)
	CountSevas() (int64, error)

	// User operations
	UserExists(contact string) (bool, error)
	GetUserByContact(contact string) (*models.User, error)
	CreateUser(contact, name, email string) (*models.User, error)
	CountUsers() (int64, error)

	// Order operations
	CreateOrder(order *models.Order) (*models.Order, error)
	GetOrdersByUser(userID int) ([]*models.Order, error)
	CountOrders() (int64, error)

	// Pincode reference operations
	CreatePincode(info *models.PincodeInfo) error
	GetPincode(pincode string) (*models.PincodeInfo, error)
	CountPincodes() (int64, error)
}
