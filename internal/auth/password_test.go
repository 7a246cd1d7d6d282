package auth

import "testing"

func TestPasswordHashingLifecycle(t *testing.T) {
	password := "S3curePass!"
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("unexpected error generating salt: %v", err)
	}
	if salt == "" {
		t.Fatal("expected salt to be populated")
	}

	hash, err := HashPassword(password, salt)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	if hash == "" {
		t.Fatal("expected hash to be populated")
	}
	if hash == password {
		t.Fatal("expected hash to differ from plaintext")
	}

	if err := VerifyPassword(hash, salt, password); err != nil {
		t.Fatalf("expected password to verify, got error: %v", err)
	}

	if err := VerifyPassword(hash, salt, "wrong"); err == nil {
		t.Fatal("expected verification to fail for wrong password")
	}
}

func TestHashPasswordIsDeterministicPerSalt(t *testing.T) {
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("unexpected error generating salt: %v", err)
	}

	first, err := HashPassword("Secret#1", salt)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	second, err := HashPassword("Secret#1", salt)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	if first != second {
		t.Fatal("expected identical hash for identical password and salt")
	}

	other, err := NewSalt()
	if err != nil {
		t.Fatalf("unexpected error generating salt: %v", err)
	}
	different, err := HashPassword("Secret#1", other)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	if first == different {
		t.Fatal("expected different hash for different salt")
	}
}

func TestHashPasswordRejectsEmptyInput(t *testing.T) {
	if _, err := HashPassword("", "salt"); err == nil {
		t.Fatal("expected error for empty password")
	}
	if _, err := HashPassword("password", " "); err == nil {
		t.Fatal("expected error for empty salt")
	}
}
