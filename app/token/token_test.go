package token

import (
	"testing"
)

func TestDerive_Deterministic(t *testing.T) {
	codec := NewCodec("test-secret")

	first := codec.Derive("user@example.com")
	second := codec.Derive("user@example.com")

	if first != second {
		t.Errorf("Expected identical tokens, got %s and %s", first, second)
	}
}

func TestDerive_Length(t *testing.T) {
	codec := NewCodec("test-secret")

	tok := codec.Derive("user@example.com")
	if len(tok) != 16 {
		t.Errorf("Expected 16 character token, got %d: %s", len(tok), tok)
	}
}

func TestDerive_NormalizesEmail(t *testing.T) {
	codec := NewCodec("test-secret")

	if codec.Derive("User@Example.com") != codec.Derive("user@example.com") {
		t.Error("Expected case-insensitive derivation")
	}
	if codec.Derive("  user@example.com  ") != codec.Derive("user@example.com") {
		t.Error("Expected whitespace-insensitive derivation")
	}
}

func TestDerive_SecretMatters(t *testing.T) {
	a := NewCodec("secret-a")
	b := NewCodec("secret-b")

	if a.Derive("user@example.com") == b.Derive("user@example.com") {
		t.Error("Expected different secrets to yield different tokens")
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	codec := NewCodec("test-secret")

	emails := []string{
		"user@example.com",
		"another.user+tag@sub.example.org",
		"UPPER@EXAMPLE.COM",
	}

	for _, email := range emails {
		if !codec.Verify(email, codec.Derive(email)) {
			t.Errorf("Expected Verify to accept derived token for %s", email)
		}
	}
}

func TestVerify_RejectsWrongToken(t *testing.T) {
	codec := NewCodec("test-secret")

	if codec.Verify("user@example.com", "0123456789abcdef") {
		t.Error("Expected Verify to reject an arbitrary token")
	}
	if codec.Verify("user@example.com", codec.Derive("other@example.com")) {
		t.Error("Expected Verify to reject another email's token")
	}
	if codec.Verify("user@example.com", "") {
		t.Error("Expected Verify to reject an empty token")
	}
}
