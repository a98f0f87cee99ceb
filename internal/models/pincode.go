package models

// PincodeInfo is one row of the static pincode reference table used to
// resolve city/state while validating a delivery address.
type PincodeInfo struct {
	Pincode  string `json:"pincode" gorm:"primaryKey"`
	City     string `json:"city"`
	District string `json:"district"`
	State    string `json:"state"`
	Country  string `json:"country"`
}
