package gcms

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"io"
)

// Client performs the on-device LDP privatization and RSA-OAEP encryption
// step of the GCMS pipeline: bit-exact port of
// gcms_client.GCMSClient.on_device_ldp_algorithm, one message at a time.
type Client struct{}

// Encode privatizes rawMessage under params and encrypts the result for
// serverPub. rng drives every random choice (hash-function index,
// Bernoulli inclusion, padding-slot sampling) — pass crypto/rand.Reader in
// production, a seeded deterministic reader in tests.
func (Client) Encode(rawMessage string, params Params, serverPub *rsa.PublicKey, rng io.Reader) ([]byte, error) {
	randomIndex, err := randBelow(rng, params.K)
	if err != nil {
		return nil, err
	}
	hashResultR := hashEncode(rawMessage, randomIndex, params.M)

	include, err := bernoulliSample(rng, params.P)
	if err != nil {
		return nil, err
	}

	var messageX []int
	if include == 1 {
		messageX = append(messageX, hashResultR)
	}
	for len(messageX) < params.S {
		candidate, err := randBelow(rng, params.M)
		if err != nil {
			return nil, err
		}
		if candidate != hashResultR && !containsInt(messageX, candidate) {
			messageX = append(messageX, candidate)
		}
	}

	mBytesLen := byteLength(params.M)
	kBytesLen := byteLength(params.K)

	plaintext := serializeIntegers(messageX, mBytesLen)
	plaintext = append(plaintext, serializeIntegers([]int{randomIndex}, kBytesLen)...)

	return rsa.EncryptOAEP(sha256.New(), rand.Reader, serverPub, plaintext, nil)
}
