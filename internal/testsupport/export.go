package testsupport

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// WriteExport writes a UTF-8 CSV export with the given header and rows.
func WriteExport(t testing.TB, path string, header []string, rows [][]string) {
	t.Helper()
	writeCSV(t, path, header, rows, nil)
}

// WriteShiftJISExport writes a CSV export encoded as Shift-JIS, matching the
// catalog exports downloaded on Windows machines.
func WriteShiftJISExport(t testing.TB, path string, header []string, rows [][]string) {
	t.Helper()
	writeCSV(t, path, header, rows, japanese.ShiftJIS.NewEncoder())
}

func writeCSV(t testing.TB, path string, header []string, rows [][]string, enc *encoding.Encoder) {
	t.Helper()

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		t.Fatalf("flush csv: %v", err)
	}

	data := buf.Bytes()
	if enc != nil {
		encoded, _, err := transform.Bytes(enc, data)
		if err != nil {
			t.Fatalf("encode csv: %v", err)
		}
		data = encoded
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
