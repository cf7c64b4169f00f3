package unknowndomain

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
)

// Client double-encrypts each raw message: once under the server's public
// key (the payload the server eventually recovers), then again under the
// auxiliary server's public key together with a SHA-256 tag of the
// plaintext (the grouping key the auxiliary server uses to count
// duplicates without learning the message itself).
//
// The outer layer carries a whole inner ciphertext plus the 32-byte tag in
// one OAEP block, so the auxiliary server's RSA modulus must be larger
// than the server's: with SHA-256 OAEP it needs at least the inner
// ciphertext length + 32 + 66 bytes.
type Client struct{}

// Encode ports unknown_domain_client.on_device_algorithm for a single
// message.
func (Client) Encode(message string, serverPub, auxPub *rsa.PublicKey) ([]byte, error) {
	tag := sha256.Sum256([]byte(message))

	innerCiphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, serverPub, []byte(message), nil)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 0, len(innerCiphertext)+len(tag))
	payload = append(payload, innerCiphertext...)
	payload = append(payload, tag[:]...)

	return rsa.EncryptOAEP(sha256.New(), rand.Reader, auxPub, payload, nil)
}
