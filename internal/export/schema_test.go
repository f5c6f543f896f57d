package export

import "testing"

func TestResolveSchemaJapaneseHeaders(t *testing.T) {
	header := []string{"商品ID", "商品ステータス", "商品名", "商品説明", "SKU1_現在の在庫数", "価格", "最終更新日時"}
	schema := ResolveSchema(header)

	want := map[Field]int{
		FieldID:          0,
		FieldStatus:      1,
		FieldTitle:       2,
		FieldDescription: 3,
		FieldStock:       4,
		FieldPrice:       5,
		FieldUpdated:     6,
	}
	for field, idx := range want {
		got, ok := schema.Column(field)
		if !ok || got != idx {
			t.Errorf("Column(%s) = %d, %v; want %d", field, got, ok, idx)
		}
	}
}

func TestResolveSchemaEnglishHeaders(t *testing.T) {
	header := []string{"id", "status", "name", "description", "price", "url", "updated_at", "watch", "access", "bids"}
	schema := ResolveSchema(header)

	for field, idx := range map[Field]int{
		FieldID:      0,
		FieldStatus:  1,
		FieldTitle:   2,
		FieldPrice:   4,
		FieldURL:     5,
		FieldWatches: 7,
		FieldViews:   8,
		FieldBids:    9,
	} {
		got, ok := schema.Column(field)
		if !ok || got != idx {
			t.Errorf("Column(%s) = %d, %v; want %d", field, got, ok, idx)
		}
	}
}

func TestResolveSchemaStripsBOM(t *testing.T) {
	schema := ResolveSchema([]string{"\ufeff商品ID", "商品名"})
	if idx, ok := schema.Column(FieldID); !ok || idx != 0 {
		t.Fatalf("BOM-prefixed header not matched: %d, %v", idx, ok)
	}
}

func TestResolveSchemaClaimsColumnsOnce(t *testing.T) {
	// Both headers could match FieldID; only the first is claimed, leaving
	// the second free for later matchers.
	schema := ResolveSchema([]string{"商品ID", "product_id"})
	idx, ok := schema.Column(FieldID)
	if !ok || idx != 0 {
		t.Fatalf("Column(id) = %d, %v; want 0", idx, ok)
	}
}

func TestResolveSchemaMissingColumns(t *testing.T) {
	schema := ResolveSchema([]string{"商品名"})
	if schema.Has(FieldStatus) {
		t.Fatal("status must be absent")
	}
	if !schema.Has(FieldTitle) {
		t.Fatal("title must be present")
	}
}
