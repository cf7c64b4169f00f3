package gcms

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestShufflePreservesMultiset(t *testing.T) {
	messages := make([][]byte, 10)
	for i := range messages {
		messages[i] = []byte{byte(i)}
	}

	shuffled, err := Shuffler{}.Shuffle(messages, rand.Reader)
	if err != nil {
		t.Fatalf("Shuffle: %v", err)
	}
	if len(shuffled) != len(messages) {
		t.Fatalf("Shuffle: want %d messages, got %d", len(messages), len(shuffled))
	}

	seen := make(map[byte]bool)
	for _, m := range shuffled {
		seen[m[0]] = true
	}
	if len(seen) != len(messages) {
		t.Fatalf("Shuffle: lost or duplicated a message, saw %d distinct values", len(seen))
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	original := [][]byte{{1}, {2}, {3}, {4}, {5}}
	originalCopy := make([][]byte, len(original))
	copy(originalCopy, original)

	if _, err := (Shuffler{}).Shuffle(original, rand.Reader); err != nil {
		t.Fatalf("Shuffle: %v", err)
	}

	for i := range original {
		if !bytes.Equal(original[i], originalCopy[i]) {
			t.Fatalf("Shuffle mutated its input slice at index %d", i)
		}
	}
}
