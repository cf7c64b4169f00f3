package unknowndomain

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
)

func TestServerDecryptRoundTripsMultipleMessages(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	auxPriv, err := rsa.GenerateKey(rand.Reader, 4096)
	if err != nil {
		t.Fatalf("rsa.GenerateKey (aux): %v", err)
	}

	client := Client{}
	messages := []string{"chrome", "firefox", "safari"}
	var reports [][]byte
	for _, m := range messages {
		ct, err := client.Encode(m, &priv.PublicKey, &auxPriv.PublicKey)
		if err != nil {
			t.Fatalf("Encode(%q): %v", m, err)
		}
		reports = append(reports, ct)
	}

	aux := NewAuxServer(auxPriv)
	released, err := aux.Protect(reports, -1000, 0.01, deterministicRNG())
	if err != nil {
		t.Fatalf("Protect: %v", err)
	}

	recovered, err := NewServer(priv).Decrypt(released)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}

	got := make(map[string]bool, len(recovered))
	for _, m := range recovered {
		got[m] = true
	}
	for _, m := range messages {
		if !got[m] {
			t.Fatalf("Decrypt: missing expected message %q in %v", m, recovered)
		}
	}
}

func TestServerDecryptErrorsOnGarbage(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey: %v", err)
	}
	if _, err := NewServer(priv).Decrypt([][]byte{[]byte("garbage")}); err == nil {
		t.Fatal("Decrypt: expected an error for an undecryptable report")
	}
}
