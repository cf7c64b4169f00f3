package gcms

import "io"

// Shuffler severs the link between a client's report and whichever client
// submitted it — the shuffle model's anonymity guarantee depends on this
// permutation being unpredictable, so it always draws from a CSPRNG
// (crypto/rand.Reader in production), never math/rand.
type Shuffler struct{}

// Shuffle returns a freshly, independently permuted copy of messages via
// Fisher-Yates, ported from gcms_shuffler.GCMSShuffler.shuffle.
func (Shuffler) Shuffle(messages [][]byte, rng io.Reader) ([][]byte, error) {
	out := make([][]byte, len(messages))
	copy(out, messages)

	for i := len(out) - 1; i > 0; i-- {
		j, err := randBelow(rng, i+1)
		if err != nil {
			return nil, err
		}
		out[i], out[j] = out[j], out[i]
	}

	return out, nil
}
