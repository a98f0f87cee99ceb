package models

import "time"

// OTPChallenge is the pending one-time-code state for a single contact.
// At most one live challenge exists per contact; a new issuance overwrites
// any prior one. The challenge is consumed on successful verification, on
// expiry detection, or once the attempt ceiling is exceeded.
type OTPChallenge struct {
	Contact  string    `json:"contact"`
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issuedAt"`
	Attempts int       `json:"attempts"`
}
