package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOTPCode generates a cryptographically secure 6-digit OTP in the
// range 100000-999999 inclusive.
func GenerateOTPCode() (string, error) {
	max := big.NewInt(900000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// GeneratePaymentID derives a payment reference from the issuance timestamp.
func GeneratePaymentID(now time.Time) string {
	return fmt.Sprintf("PAY%d", now.UnixMilli())
}
