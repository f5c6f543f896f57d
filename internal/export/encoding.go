package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type candidateEncoding struct {
	name string
	enc  encoding.Encoding
}

// decodeOrder is the fixed fallback sequence tried per input file. The first
// encoding whose output decodes the header plus at least one data row without
// replacement characters wins.
var decodeOrder = []candidateEncoding{
	{name: "utf-8-sig", enc: unicode.UTF8BOM},
	{name: "utf-8", enc: unicode.UTF8},
	{name: "shift-jis", enc: japanese.ShiftJIS},
	{name: "euc-jp", enc: japanese.EUCJP},
	{name: "iso-2022-jp", enc: japanese.ISO2022JP},
	{name: "latin-1", enc: charmap.ISO8859_1},
}

// ErrUndecodable is returned when no candidate encoding yields a parseable
// header and data row.
var ErrUndecodable = errors.New("no supported encoding decodes the export")

// decodeFile reads the file and returns its contents decoded to UTF-8 along
// with the name of the encoding that succeeded.
func decodeFile(path string) (string, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read export: %w", err)
	}
	return decodeBytes(raw)
}

func decodeBytes(raw []byte) (string, string, error) {
	var lastErr error
	for _, candidate := range decodeOrder {
		decoded, err := tryDecode(raw, candidate.enc)
		if err != nil {
			lastErr = err
			continue
		}
		if !parsesAsTable(decoded) {
			lastErr = fmt.Errorf("%s: header or first data row unparseable", candidate.name)
			continue
		}
		return decoded, candidate.name, nil
	}
	if lastErr != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUndecodable, lastErr)
	}
	return "", "", ErrUndecodable
}

func tryDecode(raw []byte, enc encoding.Encoding) (string, error) {
	if enc == unicode.UTF8BOM {
		if !bytes.HasPrefix(raw, utf8BOM) {
			return "", errors.New("no byte-order mark")
		}
		raw = bytes.TrimPrefix(raw, utf8BOM)
		enc = unicode.UTF8
	}
	if enc == unicode.UTF8 {
		if !utf8.Valid(raw) {
			return "", errors.New("invalid utf-8")
		}
		return string(raw), nil
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	// x/text decoders substitute U+FFFD instead of failing; treat any
	// replacement rune as a decode miss so the next encoding gets tried.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return "", errors.New("replacement characters in decoded output")
	}
	return string(decoded), nil
}

// parsesAsTable accepts decoded text only when a CSV header parses, and when
// a first data row exists, it parses too. Header-only files pass so the
// reader can report them as empty instead of undecodable.
func parsesAsTable(decoded string) bool {
	reader := csv.NewReader(strings.NewReader(decoded))
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil || len(header) == 0 {
		return false
	}
	_, err = reader.Read()
	return err == nil || errors.Is(err, io.EOF)
}
