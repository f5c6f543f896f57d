package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"crosslist/internal/listing"
)

// Sentinel errors let callers distinguish an empty export from one whose
// schema could not be resolved; the two degrade different decisions.
var (
	ErrNoData   = errors.New("export contains no data rows")
	ErrNoSchema = errors.New("export header resolves no usable columns")
)

// Options controls how a platform's export is normalized.
type Options struct {
	Platform listing.Platform

	// Mapping translates the platform's native status values. Required.
	Mapping listing.StatusMapping

	// TitleSuffixes are marketplace decorations stripped from titles before
	// key extraction, e.g. " | フリマアプリ ラクマ".
	TitleSuffixes []string

	// RequireFieldAgreement enables the two-field key check: a key is
	// accepted only when title and description extract the same digits.
	// Without it the title alone decides.
	RequireFieldAgreement bool
}

// Result carries the normalized records plus per-file diagnostics.
type Result struct {
	Records []listing.Record

	Encoding     string
	RowCount     int
	StatusKnown  bool
	UnmatchedKey int
}

// Load reads, decodes, and normalizes one export file.
func Load(path string, opts Options) (Result, error) {
	decoded, encodingName, err := decodeFile(path)
	if err != nil {
		return Result{}, err
	}
	result, err := parse(decoded, opts)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	result.Encoding = encodingName
	return result, nil
}

func parse(decoded string, opts Options) (Result, error) {
	reader := csv.NewReader(strings.NewReader(decoded))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}

	schema := ResolveSchema(header)
	if !schema.Has(FieldTitle) && !schema.Has(FieldID) {
		return Result{}, ErrNoSchema
	}
	statusKnown := schema.Has(FieldStatus)

	result := Result{StatusKnown: statusKnown}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read row: %w", err)
		}
		if rowEmpty(row) {
			continue
		}
		record := normalizeRow(row, schema, opts)
		if !record.HasKey() {
			result.UnmatchedKey++
		}
		result.Records = append(result.Records, record)
		result.RowCount++
	}
	if result.RowCount == 0 {
		return Result{}, ErrNoData
	}
	return result, nil
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
