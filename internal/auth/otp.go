// Package auth implements one-time-passcode issuance and verification for
// the email sign-in flow. Codes are never stored in the clear: only a
// salted SHA-256 digest leaves this package.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// OTPTTL is how long an issued code stays valid.
const OTPTTL = 10 * time.Minute

const otpDigits = 6

// OTP is a freshly issued one-time passcode. Code is sent to the customer;
// Salt and Hash are what the caller persists for later verification.
type OTP struct {
	Code      string
	Salt      string
	Hash      string
	ExpiresAt time.Time
}

// GenerateOTP issues a 6-digit code with a random salt and its digest.
func GenerateOTP(now time.Time) (OTP, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return OTP{}, fmt.Errorf("failed to generate code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64()+100000)

	saltBytes := make([]byte, 16)
	if _, err := rand.Read(saltBytes); err != nil {
		return OTP{}, fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := hex.EncodeToString(saltBytes)

	return OTP{
		Code:      code,
		Salt:      salt,
		Hash:      hashCode(code, salt),
		ExpiresAt: now.Add(OTPTTL),
	}, nil
}

// VerifyOTP checks a candidate code against the stored salt and digest in
// constant time.
func VerifyOTP(code, salt, hash string) bool {
	return hmac.Equal([]byte(hashCode(code, salt)), []byte(hash))
}

func hashCode(code, salt string) string {
	sum := sha256.Sum256([]byte(code + salt))
	return hex.EncodeToString(sum[:])
}
