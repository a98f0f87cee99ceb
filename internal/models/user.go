package models

import "time"

// User is a devotee account identified by mobile contact number.
// The contact is the identity key everywhere; the numeric id is assigned as
// current count + 1 at creation time (not safe under concurrent writers).
type User struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Contact   string    `json:"contact" gorm:"uniqueIndex"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}
