package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/hkdf"
)

// CodeSubject is the part of a user's state a confirmation code is bound to.
// Any change to it (activation, a new login, a new email) invalidates earlier codes.
type CodeSubject struct {
	UserID    string
	Email     string
	Active    bool
	LastLogin *time.Time
}

// ConfirmationCodes issues and verifies stateless confirmation codes.
// A code is "<unix seconds base36>-<truncated HMAC-SHA256>", so nothing is stored.
type ConfirmationCodes struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

const (
	codeKeyInfo = "yamdb/confirmation-code/v1"
	sigLength   = 20
)

// NewConfirmationCodes derives a dedicated signing key from secret so codes and
// bearer tokens never share key material.
func NewConfirmationCodes(secret string, ttl time.Duration) (*ConfirmationCodes, error) {
	if secret == "" {
		return nil, fmt.Errorf("confirmation codes: empty secret")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("confirmation codes: ttl must be positive, got %s", ttl)
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(codeKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive confirmation key: %w", err)
	}
	return &ConfirmationCodes{key: key, ttl: ttl, now: time.Now}, nil
}

// Make returns a fresh code for the subject's current state.
func (c *ConfirmationCodes) Make(s CodeSubject) string {
	ts := c.now().Unix()
	return strconv.FormatInt(ts, 36) + "-" + c.sign(s, ts)
}

// Check reports whether code was issued for exactly this state and has not expired.
func (c *ConfirmationCodes) Check(s CodeSubject, code string) bool {
	tsPart, sig, ok := strings.Cut(code, "-")
	if !ok || tsPart == "" || sig == "" {
		return false
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(s, ts))) {
		return false
	}
	age := c.now().Sub(time.Unix(ts, 0))
	return age >= 0 && age <= c.ttl
}

func (c *ConfirmationCodes) sign(s CodeSubject, ts int64) string {
	var lastLogin int64
	if s.LastLogin != nil {
		lastLogin = s.LastLogin.UnixMicro()
	}
	mac := hmac.New(sha256.New, c.key)
	fmt.Fprintf(mac, "%s|%s|%t|%d|%d", s.UserID, strings.ToLower(s.Email), s.Active, lastLogin, ts)
	return hex.EncodeToString(mac.Sum(nil))[:sigLength]
}
