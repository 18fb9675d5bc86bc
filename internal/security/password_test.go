package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("bcrypt at production cost is slow")
	}

	hash, err := HashPassword("correct horse battery staple")

	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if hash == "correct horse battery staple" {
		t.Fatal("hash equals the plaintext")
	}

	if err := CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("CheckPassword with correct password: %v", err)
	}

	if err := CheckPassword(hash, "wrong password"); err == nil {
		t.Error("CheckPassword with wrong password: want error, got nil")
	}
}

func TestCheckPasswordBadHash(t *testing.T) {
	if err := CheckPassword("not-a-bcrypt-hash", "whatever"); err == nil {
		t.Error("want error for malformed hash, got nil")
	}
}
