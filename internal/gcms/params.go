// Package gcms implements the General Count Mean Sketch shuffle-model LDP
// pipeline: on-device client privatization, a shuffler that severs the
// link between a message and its sender, and a server that aggregates
// shuffled reports into a sketch matrix and estimates per-message
// frequency from it.
package gcms

import (
	"crypto/rand"
	"crypto/sha256"
	"io"
	"math"
	"math/big"
	"math/bits"
	"strconv"
)

// Params configures one GCMS instance: K hash functions, hash-encode
// modulus M, per-message payload size S, and inclusion probability P.
type Params struct {
	K int
	M int
	S int
	P float64
}

// Epsilon returns the privacy parameter implied by these parameters:
// ln((m-s)p / ((1-p)s)).
func (p Params) Epsilon() float64 {
	return math.Log((float64(p.M-p.S) * p.P) / ((1 - p.P) * float64(p.S)))
}

// hashEncode mirrors gcms_utils.hash_encode: hash the message concatenated
// with the hash-function index, reduce modulo module.
func hashEncode(message string, index, module int) int {
	sum := sha256.Sum256([]byte(message + "$$$" + strconv.Itoa(index)))
	n := new(big.Int).SetBytes(sum[:])
	return int(n.Mod(n, big.NewInt(int64(module))).Int64())
}

// bernoulliSample returns 1 with probability p, drawing from rng.
func bernoulliSample(rng io.Reader, p float64) (int, error) {
	n, err := rand.Int(rng, big.NewInt(1000000))
	if err != nil {
		return 0, err
	}
	if float64(n.Int64()) < p*1000000 {
		return 1, nil
	}
	return 0, nil
}

// randBelow draws a uniform integer in [0, n) from rng.
func randBelow(rng io.Reader, n int) (int, error) {
	v, err := rand.Int(rng, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// byteLength returns the number of bytes needed to hold n's bit length,
// matching Python's (n.bit_length() + 7) // 8.
func byteLength(n int) int {
	return (bits.Len(uint(n)) + 7) / 8
}

// serializeIntegers big-endian packs each integer into fixedLength bytes.
func serializeIntegers(values []int, fixedLength int) []byte {
	out := make([]byte, 0, len(values)*fixedLength)
	buf := make([]byte, fixedLength)
	for _, v := range values {
		big.NewInt(int64(v)).FillBytes(buf)
		out = append(out, buf...)
	}
	return out
}

// deserializeIntegers is serializeIntegers's inverse.
func deserializeIntegers(data []byte, fixedLength int) []int {
	count := len(data) / fixedLength
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		chunk := data[i*fixedLength : (i+1)*fixedLength]
		out = append(out, int(new(big.Int).SetBytes(chunk).Int64()))
	}
	return out
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

