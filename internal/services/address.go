package services

import (
	"github.com/sevasetu/seva-backend/internal/models"
	"github.com/sevasetu/seva-backend/internal/storage"
)

// AddressService resolves pincodes against the static reference table so the
// client can mark a delivery address verified.
type AddressService struct {
	store storage.Store
}

func NewAddressService(store storage.Store) *AddressService {
	return &AddressService{store: store}
}

// GetAddressByPincode returns the reference row for an exact pincode match,
// or storage.ErrNotFound.
func (s *AddressService) GetAddressByPincode(pincode string) (*models.PincodeInfo, error) {
	return s.store.GetPincode(pincode)
}
