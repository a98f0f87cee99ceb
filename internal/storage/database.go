package storage

import (
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sevasetu/seva-backend/internal/models"
)

// DatabaseStore implements Store on top of GORM/Postgres.
// Id assignment mirrors the memory store: user ids are count+1 and order ids
// are max+1, computed read-then-write without serialization. Two concurrent
// writers can race; this is a documented limitation of the design, not a
// guarantee.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given GORM connection.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Seva operations

func (d *DatabaseStore) CreateSeva(seva *models.Seva) (*models.Seva, error) {
	if seva.ID == 0 {
		var count int64
		if err := d.db.Model(&models.Seva{}).Count(&count).Error; err != nil {
			return nil, err
		}
		seva.ID = int(count) + 1
	}
	if err := d.db.Create(seva).Error; err != nil {
		return nil, err
	}
	return seva, nil
}

func (d *DatabaseStore) ListSevas(page, limit int) ([]*models.Seva, error) {
	var sevas []*models.Seva
	err := d.db.Order("id").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&sevas).Error
	if err != nil {
		return nil, err
	}
	if sevas == nil {
		sevas = []*models.Seva{}
	}
	return sevas, nil
}

func (d *DatabaseStore) GetSevaByCode(code string) (*models.Seva, error) {
	var seva models.Seva
	err := d.db.Where("code = ?", code).First(&seva).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &seva, nil
}

func (d *DatabaseStore) CountSevas() (int64, error) {
	var count int64
	err := d.db.Model(&models.Seva{}).Count(&count).Error
	return count, err
}

// User operations

func (d *DatabaseStore) UserExists(contact string) (bool, error) {
	var count int64
	err := d.db.Model(&models.User{}).Where("contact = ?", contact).Count(&count).Error
	return count > 0, err
}

func (d *DatabaseStore) GetUserByContact(contact string) (*models.User, error) {
	var user models.User
	err := d.db.Where("contact = ?", contact).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DatabaseStore) CreateUser(contact, name, email string) (*models.User, error) {
	exists, err := d.UserExists(contact)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	var count int64
	if err := d.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        int(count) + 1,
		Contact:   contact,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
	if err := d.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (d *DatabaseStore) CountUsers() (int64, error) {
	var count int64
	err := d.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// Order operations

func (d *DatabaseStore) CreateOrder(order *models.Order) (*models.Order, error) {
	var maxID sql.NullInt64
	err := d.db.Model(&models.Order{}).Select("max(order_id)").Scan(&maxID).Error
	if err != nil {
		return nil, err
	}
	if maxID.Valid {
		order.OrderID = int(maxID.Int64) + 1
	} else {
		order.OrderID = models.FirstOrderID
	}
	order.CreatedAt = time.Now()

	if err := d.db.Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (d *DatabaseStore) GetOrdersByUser(userID int) ([]*models.Order, error) {
	var orders []*models.Order
	err := d.db.Where("user_id = ?", userID).Order("id").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (d *DatabaseStore) CountOrders() (int64, error) {
	var count int64
	err := d.db.Model(&models.Order{}).Count(&count).Error
	return count, err
}

// Pincode reference operations

func (d *DatabaseStore) CreatePincode(info *models.PincodeInfo) error {
	return d.db.Create(info).Error
}

func (d *DatabaseStore) GetPincode(pincode string) (*models.PincodeInfo, error) {
	var info models.PincodeInfo
	err := d.db.Where("pincode = ?", pincode).First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (d *DatabaseStore) CountPincodes() (int64, error) {
	var count int64
	err := d.db.Model(&models.PincodeInfo{}).Count(&count).Error
	return count, err
}
