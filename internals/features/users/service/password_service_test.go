// file: internals/features/users/service/password_service_test.go
package service

import "testing"

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("rahasia-123")
	if err != nil {
		t.Fatalf("hash gagal: %v", err)
	}
	if hash == "rahasia-123" {
		t.Fatal("hash tidak boleh plaintext")
	}
	if !ComparePassword(hash, "rahasia-123") {
		t.Error("password benar harus lolos")
	}
	if ComparePassword(hash, "rahasia-124") {
		t.Error("password salah harus ditolak")
	}
}

func TestComparePassword_InvalidHash(t *testing.T) {
	if ComparePassword("bukan-hash-bcrypt", "apapun") {
		t.Error("hash rusak tidak boleh lolos")
	}
}
