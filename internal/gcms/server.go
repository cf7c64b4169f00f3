package gcms

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"

	"github.com/auroradata-ai/anonpsi-gcms/internal/telemetry"
)

// Server aggregates decrypted client reports into a K×M sketch matrix and
// estimates per-message frequency from it, per gcms_server.GCMSServer.
type Server struct {
	k, m      int
	priv      *rsa.PrivateKey
	matrix    [][]float64
	n         int
	mBytesLen int
	kBytesLen int
}

// NewServer builds a Server with an empty K×M sketch matrix.
func NewServer(k, m int, priv *rsa.PrivateKey) *Server {
	matrix := make([][]float64, k)
	for i := range matrix {
		matrix[i] = make([]float64, m)
	}
	return &Server{
		k:         k,
		m:         m,
		priv:      priv,
		matrix:    matrix,
		mBytesLen: byteLength(m),
		kBytesLen: byteLength(k),
	}
}

// N returns the number of reports accumulated so far.
func (s *Server) N() int { return s.n }

// DecryptAndAccumulate decrypts each shuffled report, splits it into its
// payload integers and trailing hash index, and folds it into the sketch
// matrix.
func (s *Server) DecryptAndAccumulate(messages [][]byte) error {
	for _, ct := range messages {
		decrypted, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, s.priv, ct, nil)
		if err != nil {
			telemetry.Error("gcms: report decrypt failed: %v", err)
			return fmt.Errorf("gcms: decrypt report: %w", err)
		}
		if len(decrypted) < s.kBytesLen {
			telemetry.Error("gcms: decrypted report of length %d shorter than hash-index field of %d", len(decrypted), s.kBytesLen)
			return fmt.Errorf("gcms: decrypted report shorter than hash-index field")
		}

		split := len(decrypted) - s.kBytesLen
		hashIndexes := deserializeIntegers(decrypted[split:], s.kBytesLen)
		hashIndex := hashIndexes[0]
		payload := deserializeIntegers(decrypted[:split], s.mBytesLen)

		s.n++
		for _, col := range payload {
			s.matrix[hashIndex][col]++
		}
	}
	return nil
}

// EstimateFrequency returns the debiased frequency estimate of message
// under inclusion probability p and payload size s, per spec §4.11's
// unbiased estimator.
func (s *Server) EstimateFrequency(message string, p float64, sSize int) float64 {
	totalCount := 0.0
	for i := 0; i < s.k; i++ {
		hashResult := hashEncode(message, i, s.m)
		totalCount += s.matrix[i][hashResult]
	}

	m := float64(s.m)
	sFloat := float64(sSize)
	q := (p*(sFloat-1) + (1-p)*sFloat) / (m - 1)
	n := float64(s.n)

	return (totalCount - (p * n / m) - (q * n * (1 - 1/m))) / ((p - q) * (1 - 1/m))
}
