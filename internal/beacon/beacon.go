// Package beacon implements the truncated-HMAC scheme used by proximity
// beacons. A beacon advertisement is size-constrained (~31 bytes), so the
// MAC is HMAC-SHA-256 truncated to a few bytes and the signed timestamp is
// second-granularity, tolerating sub-second clock skew between the scanning
// device and the server.
package beacon

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// TruncatedHMAC computes HMAC-SHA-256 over data with key and returns the
// first n bytes hex-encoded. Deterministic for equal inputs.
func TruncatedHMAC(key, data string, n int) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(data))
	sum := mac.Sum(nil)
	if n > len(sum) {
		n = len(sum)
	}
	return hex.EncodeToString(sum[:n])
}

// ConstantTimeEqual compares two hex strings in time independent of where
// they first differ. Differing lengths return false immediately; the MAC is
// fixed-length, so the length leak is acceptable for this threat model.
func ConstantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Payload builds the string a beacon signs: sessionId|userId|floor(ts/1000)|nonce.
// tsMillis is the full-precision event timestamp; only whole seconds are signed.
func Payload(sessionID, userID string, tsMillis int64, nonce string) string {
	return fmt.Sprintf("%s|%s|%d|%s", sessionID, userID, tsMillis/1000, nonce)
}
