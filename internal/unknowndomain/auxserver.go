package unknowndomain

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	mathrand "math/rand"

	"github.com/auroradata-ai/anonpsi-gcms/internal/telemetry"
)

// AuxServer groups shuffled reports by their plaintext SHA-256 tag and
// releases one uniformly-random representative of each group whose
// Laplace-noised count clears threshold — a group that never clears it is
// dropped entirely, so a message never appearing enough times leaks
// nothing about who sent it or that it exists.
type AuxServer struct {
	priv    *rsa.PrivateKey
	hashLen int
}

// NewAuxServer wraps the auxiliary server's RSA private key.
func NewAuxServer(priv *rsa.PrivateKey) *AuxServer {
	return &AuxServer{priv: priv, hashLen: sha256.Size}
}

// Protect ports unknown_domain_aux_server.dp_protection. rng drives the
// Laplace noise (a plain PRNG, matching the reference implementation);
// survivor selection within a released group draws from crypto/rand,
// since that choice is part of the privacy mechanism itself, not a noise
// term.
func (a *AuxServer) Protect(messages [][]byte, threshold, laplaceScale float64, rng *mathrand.Rand) ([][]byte, error) {
	groups := make(map[string][][]byte)
	var order []string

	for _, ct := range messages {
		decrypted, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, a.priv, ct, nil)
		if err != nil {
			telemetry.Error("unknowndomain: aux-server report decrypt failed: %v", err)
			return nil, fmt.Errorf("unknowndomain: aux-server decrypt: %w", err)
		}
		if len(decrypted) < a.hashLen {
			telemetry.Error("unknowndomain: decrypted report of length %d shorter than hash tag of %d", len(decrypted), a.hashLen)
			return nil, fmt.Errorf("unknowndomain: decrypted report shorter than hash tag")
		}

		split := len(decrypted) - a.hashLen
		key := hex.EncodeToString(decrypted[split:])
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], decrypted[:split])
	}

	var survivors [][]byte
	for _, key := range order {
		value := groups[key]
		noise := sampleLaplace(rng, laplaceScale)
		if float64(len(value))+noise >= threshold {
			idx, err := randBelowCrypto(len(value))
			if err != nil {
				return nil, err
			}
			survivors = append(survivors, value[idx])
		}
	}

	return survivors, nil
}

func randBelowCrypto(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
