package security_test

import (
	"strings"
	"testing"

	"github.com/angelmondragon/novastore/pkg/config"
	"github.com/angelmondragon/novastore/pkg/security"
)

var testParams = config.PasswordConfig{
	ArgonMemoryKB:    8192,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("very-secure-password", testParams)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, err := security.VerifyPassword("very-secure-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for valid hash: %v", err)
	}
	if !ok {
		t.Fatal("VerifyPassword failed for the correct password")
	}

	ok, err = security.VerifyPassword("bogus-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword returned error for invalid password: %v", err)
	}
	if ok {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestHashesAreSalted(t *testing.T) {
	a, err := security.HashPassword("same", testParams)
	if err != nil {
		t.Fatal(err)
	}
	b, err := security.HashPassword("same", testParams)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := security.HashPassword("", testParams); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if _, err := security.VerifyPassword("irrelevant", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestHasher(t *testing.T) {
	h := security.NewHasher(testParams)
	hash, err := h.Hash("pw")
	if err != nil {
		t.Fatal(err)
	}
	if !h.Verify("pw", hash) {
		t.Fatal("expected match")
	}
	if h.Verify("PW", hash) {
		t.Fatal("password comparison must be case-sensitive")
	}
	if h.Verify("pw", "$argon2id$broken") {
		t.Fatal("malformed hash must not match")
	}
}
