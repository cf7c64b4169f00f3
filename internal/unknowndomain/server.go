package unknowndomain

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"

	"github.com/auroradata-ai/anonpsi-gcms/internal/telemetry"
)

// Server holds the collecting party's RSA private key and recovers the
// plaintext messages the auxiliary server released.
type Server struct {
	priv *rsa.PrivateKey
}

// NewServer wraps the server's RSA private key.
func NewServer(priv *rsa.PrivateKey) *Server {
	return &Server{priv: priv}
}

// Decrypt ports unknown_domain_server.decrypt_message.
func (s *Server) Decrypt(messages [][]byte) ([]string, error) {
	out := make([]string, 0, len(messages))
	for _, ct := range messages {
		decrypted, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, s.priv, ct, nil)
		if err != nil {
			telemetry.Error("unknowndomain: server report decrypt failed: %v", err)
			return nil, fmt.Errorf("unknowndomain: server decrypt: %w", err)
		}
		out = append(out, string(decrypted))
	}
	return out, nil
}
