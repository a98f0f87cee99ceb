package storage

import (
	"sync"
	"time"

	"github.com/sevasetu/seva-backend/internal/models"
)

// MemoryStore holds all collections in memory. It is the default for tests
// and local development. Slices keep insertion order, which pagination and
// per-user order listing rely on.
type MemoryStore struct {
	sevas    []*models.Seva
	users    []*models.User
	orders   []*models.Order
	pincodes map[string]*models.PincodeInfo

	sevaMu    sync.RWMutex
	userMu    sync.RWMutex
	orderMu   sync.RWMutex
	pincodeMu sync.RWMutex
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pincodes: make(map[string]*models.PincodeInfo),
	}
}

// Seva operations

func (m *MemoryStore) CreateSeva(seva *models.Seva) (*models.Seva, error) {
	m.sevaMu.Lock()
	defer m.sevaMu.Unlock()

	if seva.ID == 0 {
		seva.ID = len(m.sevas) + 1
	}
	m.sevas = append(m.sevas, seva)
	return seva, nil
}

func (m *MemoryStore) ListSevas(page, limit int) ([]*models.Seva, error) {
	m.sevaMu.RLock()
	defer m.sevaMu.RUnlock()

	start := (page - 1) * limit
	if start >= len(m.sevas) {
		return []*models.Seva{}, nil
	}
	end := start + limit
	if end > len(m.sevas) {
		end = len(m.sevas)
	}

	out := make([]*models.Seva, end-start)
	copy(out, m.sevas[start:end])
	return out, nil
}

func (m *MemoryStore) GetSevaByCode(code string) (*models.Seva, error) {
	m.sevaMu.RLock()
	defer m.sevaMu.RUnlock()

	for _, seva := range m.sevas {
		if seva.Code == code {
			return seva, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CountSevas() (int64, error) {
	m.sevaMu.RLock()
	defer m.sevaMu.RUnlock()
	return int64(len(m.sevas)), nil
}

// User operations

func (m *MemoryStore) UserExists(contact string) (bool, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	for _, user := range m.users {
		if user.Contact == contact {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) GetUserByContact(contact string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	for _, user := range m.users {
		if user.Contact == contact {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CreateUser(contact, name, email string) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	for _, user := range m.users {
		if user.Contact == contact {
			return nil, ErrConflict
		}
	}

	user := &models.User{
		ID:        len(m.users) + 1,
		Contact:   contact,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
	m.users = append(m.users, user)
	return user, nil
}

func (m *MemoryStore) CountUsers() (int64, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()
	return int64(len(m.users)), nil
}

// Order operations

func (m *MemoryStore) CreateOrder(order *models.Order) (*models.Order, error) {
	m.orderMu.Lock()
	defer m.orderMu.Unlock()

	// max existing orderId + 1, fixed base when the store is empty
	next := models.FirstOrderID
	for _, existing := range m.orders {
		if existing.OrderID >= next {
			next = existing.OrderID + 1
		}
	}
	order.OrderID = next
	order.CreatedAt = time.Now()

	m.orders = append(m.orders, order)
	return order, nil
}

func (m *MemoryStore) GetOrdersByUser(userID int) ([]*models.Order, error) {
	m.orderMu.RLock()
	defer m.orderMu.RUnlock()

	var orders []*models.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *MemoryStore) CountOrders() (int64, error) {
	m.orderMu.RLock()
	defer m.orderMu.RUnlock()
	return int64(len(m.orders)), nil
}

// Pincode reference operations

func (m *MemoryStore) CreatePincode(info *models.PincodeInfo) error {
	m.pincodeMu.Lock()
	defer m.pincodeMu.Unlock()

	m.pincodes[info.Pincode] = info
	return nil
}

func (m *MemoryStore) GetPincode(pincode string) (*models.PincodeInfo, error) {
	m.pincodeMu.RLock()
	defer m.pincodeMu.RUnlock()

	info, exists := m.pincodes[pincode]
	if !exists {
		return nil, ErrNotFound
	}
	return info, nil
}

func (m *MemoryStore) CountPincodes() (int64, error) {
	m.pincodeMu.RLock()
	defer m.pincodeMu.RUnlock()
	return int64(len(m.pincodes)), nil
}
