package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"crosslist/internal/listing"
)

func writeExportFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}
	return path
}

func TestLoadCodeStyleExport(t *testing.T) {
	content := "商品ID,商品ステータス,商品名,商品説明,価格,最終更新日時\n" +
		"m001,2,1001 vintage jacket,1001 denim size M,4500,2024/05/01 10:30:00\n" +
		"m002,1,2002 wool scarf,2002 handmade,1200,2024/05/02 09:00:00\n"
	path := writeExportFile(t, "mercari.csv", content)

	result, err := Load(path, Options{
		Platform: "mercari",
		Mapping:  listing.CodeStatusMapping(),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.RowCount != 2 {
		t.Fatalf("RowCount = %d, want 2", result.RowCount)
	}
	if !result.StatusKnown {
		t.Fatal("StatusKnown must be true")
	}
	if result.Encoding != "utf-8" {
		t.Fatalf("Encoding = %q, want utf-8", result.Encoding)
	}

	first := result.Records[0]
	if first.Key != "1001" || first.State != listing.StateActive {
		t.Fatalf("first record = key %q state %v", first.Key, first.State)
	}
	if first.Price != 4500 {
		t.Fatalf("Price = %d", first.Price)
	}
	wantTime := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	if !first.UpdatedAt.Equal(wantTime) {
		t.Fatalf("UpdatedAt = %v", first.UpdatedAt)
	}

	second := result.Records[1]
	if second.State != listing.StateSoldOrSuspended {
		t.Fatalf("second record state = %v", second.State)
	}
}

func TestLoadShiftJISExport(t *testing.T) {
	utf8Content := "商品ID,商品ステータス,商品名\n" +
		"m001,2,1001 ヴィンテージジャケット\n"
	encoded, _, err := transform.String(japanese.ShiftJIS.NewEncoder(), utf8Content)
	if err != nil {
		t.Fatalf("encode shift-jis: %v", err)
	}
	path := writeExportFile(t, "mercari.csv", encoded)

	result, err := Load(path, Options{Platform: "mercari", Mapping: listing.CodeStatusMapping()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Encoding != "shift-jis" {
		t.Fatalf("Encoding = %q, want shift-jis", result.Encoding)
	}
	if result.Records[0].Title != "1001 ヴィンテージジャケット" {
		t.Fatalf("Title = %q", result.Records[0].Title)
	}
}

func TestLoadBOMExport(t *testing.T) {
	content := "\xEF\xBB\xBF商品ID,商品名\nm001,1001 jacket\n"
	path := writeExportFile(t, "mercari.csv", content)

	result, err := Load(path, Options{Platform: "mercari", Mapping: listing.CodeStatusMapping()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Encoding != "utf-8-sig" {
		t.Fatalf("Encoding = %q, want utf-8-sig", result.Encoding)
	}
	if result.Records[0].ListingID != "m001" {
		t.Fatalf("ListingID = %q; BOM likely leaked into the header", result.Records[0].ListingID)
	}
}

func TestLoadStripsTitleSuffix(t *testing.T) {
	content := "商品ID,商品名\nr001,3003 silk tie | フリマアプリ ラクマ\n"
	path := writeExportFile(t, "rakuma.csv", content)

	result, err := Load(path, Options{
		Platform:      "rakuma",
		Mapping:       listing.CodeStatusMapping(),
		TitleSuffixes: []string{" | フリマアプリ ラクマ"},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := result.Records[0].Title; got != "3003 silk tie" {
		t.Fatalf("Title = %q", got)
	}
	if result.Records[0].Key != "3003" {
		t.Fatalf("Key = %q", result.Records[0].Key)
	}
}

func TestLoadFieldAgreement(t *testing.T) {
	content := "商品ID,商品名,商品説明\n" +
		"m001,1001 jacket,1001 matching description\n" +
		"m002,2002 scarf,9999 mismatched description\n"
	path := writeExportFile(t, "mercari.csv", content)

	result, err := Load(path, Options{
		Platform:              "mercari",
		Mapping:               listing.CodeStatusMapping(),
		RequireFieldAgreement: true,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.Records[0].Key != "1001" {
		t.Fatalf("matching record key = %q", result.Records[0].Key)
	}
	if result.Records[1].HasKey() {
		t.Fatalf("mismatched record must stay keyless, got %q", result.Records[1].Key)
	}
	if result.UnmatchedKey != 1 {
		t.Fatalf("UnmatchedKey = %d, want 1", result.UnmatchedKey)
	}
}

func TestLoadWithoutStatusColumn(t *testing.T) {
	content := "商品ID,商品名\nm001,1001 jacket\n"
	path := writeExportFile(t, "mercari.csv", content)

	result, err := Load(path, Options{Platform: "mercari", Mapping: listing.CodeStatusMapping()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.StatusKnown {
		t.Fatal("StatusKnown must be false")
	}
	if result.Records[0].State != listing.StateUnknown {
		t.Fatalf("State = %v, want unknown", result.Records[0].State)
	}
}

func TestLoadEmptyExport(t *testing.T) {
	path := writeExportFile(t, "mercari.csv", "商品ID,商品名\n")
	if _, err := Load(path, Options{Platform: "mercari", Mapping: listing.CodeStatusMapping()}); !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestLoadUnusableHeader(t *testing.T) {
	path := writeExportFile(t, "mercari.csv", "col_a,col_b\nfoo,bar\n")
	if _, err := Load(path, Options{Platform: "mercari", Mapping: listing.CodeStatusMapping()}); !errors.Is(err, ErrNoSchema) {
		t.Fatalf("err = %v, want ErrNoSchema", err)
	}
}

func TestParseIntVariants(t *testing.T) {
	cases := []struct {
		raw   string
		want  int
		found bool
	}{
		{raw: "4500", want: 4500, found: true},
		{raw: "4,500", want: 4500, found: true},
		{raw: "１０", want: 10, found: true},
		{raw: "2.0", want: 2, found: true},
		{raw: "", found: false},
		{raw: "none", found: false},
	}
	for _, tc := range cases {
		got, ok := parseInt(tc.raw)
		if ok != tc.found || (ok && got != tc.want) {
			t.Errorf("parseInt(%q) = %d, %v; want %d, %v", tc.raw, got, ok, tc.want, tc.found)
		}
	}
}

func TestLatestFile(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "mercari-old.csv")
	newer := filepath.Join(dir, "mercari-new.csv")
	if err := os.WriteFile(older, []byte("a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(newer, []byte("b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatal(err)
	}

	got, err := LatestFile(filepath.Join(dir, "mercari*.csv"))
	if err != nil {
		t.Fatalf("LatestFile: %v", err)
	}
	if got != newer {
		t.Fatalf("LatestFile = %q, want %q", got, newer)
	}

	if _, err := LatestFile(filepath.Join(dir, "missing*.csv")); err == nil {
		t.Fatal("expected error for glob with no matches")
	}
}
