package unknowndomain

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
)

func TestClientEncodeIsLayeredUnderBothKeys(t *testing.T) {
	serverPriv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey (server): %v", err)
	}
	auxPriv, err := rsa.GenerateKey(rand.Reader, 4096)
	if err != nil {
		t.Fatalf("rsa.GenerateKey (aux): %v", err)
	}

	ct, err := Client{}.Encode("chrome", &serverPriv.PublicKey, &auxPriv.PublicKey)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// The outer layer must only open under the aux server's key.
	if _, err := NewServer(serverPriv).Decrypt([][]byte{ct}); err == nil {
		t.Fatal("Decrypt with the wrong (server) key unexpectedly succeeded")
	}

	// A deeply negative threshold guarantees release regardless of which way
	// the Laplace noise happens to land, keeping this test deterministic.
	aux := NewAuxServer(auxPriv)
	released, err := aux.Protect([][]byte{ct}, -1000, 1.0, deterministicRNG())
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}
	if len(released) != 1 {
		t.Fatalf("Protect: want exactly 1 survivor, got %d", len(released))
	}

	recovered, err := NewServer(serverPriv).Decrypt(released)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if len(recovered) != 1 || recovered[0] != "chrome" {
		t.Fatalf("Decrypt: want [chrome], got %v", recovered)
	}
}
