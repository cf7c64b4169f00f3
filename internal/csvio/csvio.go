// Package csvio loads victim/target element sets from CSV files and dumps
// an attack engine's predictions back out, in the same single/two-column
// CSV convention the teacher's db.CSVDatabase uses.
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/auroradata-ai/anonpsi-gcms/internal/oracle"
)

// LoadSet reads a single-column CSV file into a Set, one element per row.
func LoadSet(filePath string) (oracle.Set, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	set := make(oracle.Set, len(records))
	for _, record := range records {
		if len(record) < 1 {
			continue
		}
		set[record[0]] = struct{}{}
	}
	return set, nil
}

// DumpResults writes an attack's Z_pos/Z_neg predictions to a two-column
// CSV file: element, predicted-label ("pos" or "neg").
func DumpResults(filePath string, zPos, zNeg oracle.Set) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"element", "predicted"}); err != nil {
		return fmt.Errorf("csvio: write header: %w", err)
	}
	for id := range zPos {
		if err := w.Write([]string{id, "pos"}); err != nil {
			return fmt.Errorf("csvio: write row: %w", err)
		}
	}
	for id := range zNeg {
		if err := w.Write([]string{id, "neg"}); err != nil {
			return fmt.Errorf("csvio: write row: %w", err)
		}
	}
	return w.Error()
}
