package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "correct horse" {
		t.Fatal("hash equals plaintext")
	}
	if !Verify(hash, "correct horse") {
		t.Fatal("Verify rejected the right password")
	}
	if Verify(hash, "wrong") {
		t.Fatal("Verify accepted the wrong password")
	}
}

func TestVerifyGarbageHash(t *testing.T) {
	if Verify("not-a-bcrypt-hash", "anything") {
		t.Fatal("Verify accepted a malformed hash")
	}
}
