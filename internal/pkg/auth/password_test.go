package auth

import "testing"

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the password")
	}

	if err := hasher.Compare(hash, "s3cret"); err != nil {
		t.Fatalf("compare failed for correct password: %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected error for wrong password")
	}
}

func TestBcryptHasherDefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(0)
	if hasher.cost == 0 {
		t.Fatal("expected default cost to be applied")
	}
}
