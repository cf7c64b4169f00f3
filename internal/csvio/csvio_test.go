package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
)

func TestLoadSetReadsOneElementPerRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "victim.csv")
	writeFile(t, path, "alice\nbob\ncarol\n")

	set, err := LoadSet(path)
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	if len(set) != 3 {
		t.Fatalf("LoadSet: want 3 elements, got %d", len(set))
	}
	for _, id := range []string{"alice", "bob", "carol"} {
		if _, ok := set[id]; !ok {
			t.Fatalf("LoadSet: missing expected element %q", id)
		}
	}
}

func TestLoadSetMissingFile(t *testing.T) {
	if _, err := LoadSet("/nonexistent/path/does-not-exist.csv"); err == nil {
		t.Fatal("LoadSet: expected an error for a missing file")
	}
}

func TestDumpResultsWritesBothLabels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")

	zPos := oracle.NewSet("a", "b")
	zNeg := oracle.NewSet("c")

	if err := DumpResults(path, zPos, zNeg); err != nil {
		t.Fatalf("DumpResults: %v", err)
	}

	loaded, err := LoadSet(path)
	if err != nil {
		t.Fatalf("LoadSet of DumpResults output: %v", err)
	}
	// LoadSet only reads the first column, so the header row ("element")
	// and every id should appear as keys; 4 rows (header + 3 data) means
	// 4 distinct first-column values here.
	if len(loaded) != 4 {
		t.Fatalf("expected 4 distinct first-column values (header + 3 ids), got %d: %v", len(loaded), loaded)
	}
	for _, id := range []string{"a", "b", "c"} {
		if _, ok := loaded[id]; !ok {
			t.Fatalf("DumpResults output missing id %q", id)
		}
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing test fixture %s: %v", path, err)
	}
}
