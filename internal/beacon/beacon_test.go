package beacon

import (
	"strings"
	"testing"
)

func TestTruncatedHMACKnownVector(t *testing.T) {
	// HMAC-SHA-256("k", "s1|u1|1700000000|n1"), first 8 bytes hex.
	got := TruncatedHMAC("k", "s1|u1|1700000000|n1", 8)
	want := "c397d87187df5eac"
	if got != want {
		t.Fatalf("TruncatedHMAC = %q, want %q", got, want)
	}
}

func TestTruncatedHMACDeterministic(t *testing.T) {
	a := TruncatedHMAC("secret", "payload", 8)
	b := TruncatedHMAC("secret", "payload", 8)
	if a != b {
		t.Fatalf("same inputs produced %q and %q", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("8 truncated bytes should hex-encode to 16 chars, got %d", len(a))
	}
}

func TestTruncatedHMACClampsToDigestSize(t *testing.T) {
	full := TruncatedHMAC("k", "data", 32)
	over := TruncatedHMAC("k", "data", 64)
	if full != over {
		t.Fatalf("n beyond digest size should clamp: %q != %q", full, over)
	}
	if len(full) != 64 {
		t.Fatalf("full SHA-256 HMAC should be 64 hex chars, got %d", len(full))
	}
}

func TestTruncatedHMACKeySensitive(t *testing.T) {
	if TruncatedHMAC("k1", "data", 8) == TruncatedHMAC("k2", "data", 8) {
		t.Fatal("different keys produced identical MACs")
	}
}

func TestConstantTimeEqual(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"c397d87187df5eac", "c397d87187df5eac", true},
		{"c397d87187df5eac", "c397d87187df5ead", false},
		{"abc", "abcd", false}, // length mismatch
		{"", "", true},
		{"", "a", false},
	}
	for _, tc := range cases {
		if got := ConstantTimeEqual(tc.a, tc.b); got != tc.want {
			t.Errorf("ConstantTimeEqual(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestPayloadSecondGranularity(t *testing.T) {
	// Millisecond remainders must not change the signed payload.
	a := Payload("s1", "u1", 1700000000000, "n1")
	b := Payload("s1", "u1", 1700000000999, "n1")
	if a != b {
		t.Fatalf("payloads differ across sub-second timestamps: %q vs %q", a, b)
	}
	if a != "s1|u1|1700000000|n1" {
		t.Fatalf("payload = %q", a)
	}
	if parts := strings.Split(a, "|"); len(parts) != 4 {
		t.Fatalf("payload should have 4 pipe-joined fields, got %d", len(parts))
	}
}
