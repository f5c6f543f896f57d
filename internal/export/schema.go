package export

import (
	"regexp"
	"strings"
)

// Field names a logical column the normalizer needs from an export.
type Field string

const (
	FieldID          Field = "id"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldStatus      Field = "status"
	FieldStock       Field = "stock"
	FieldPrice       Field = "price"
	FieldCondition   Field = "condition"
	FieldURL         Field = "url"
	FieldUpdated     Field = "updated"
	FieldWatches     Field = "watches"
	FieldViews       Field = "views"
	FieldBids        Field = "bids"
)

// Schema maps logical fields to column indexes for one export file. It is
// resolved once per file and never re-guessed per row.
type Schema struct {
	columns map[Field]int
}

// Column returns the column index for a field. ok is false when the export
// has no matching header.
func (s Schema) Column(field Field) (int, bool) {
	idx, ok := s.columns[field]
	return idx, ok
}

// Has reports whether the schema resolved a column for the field.
func (s Schema) Has(field Field) bool {
	_, ok := s.columns[field]
	return ok
}

type fieldMatcher struct {
	field    Field
	exact    []string
	patterns []*regexp.Regexp
}

// Matchers are ordered: the first matcher to claim a header column wins, and
// within a matcher exact names beat regex patterns. The pattern lists mirror
// the header variants observed across marketplace export revisions.
var fieldMatchers = []fieldMatcher{
	{
		field: FieldID,
		exact: []string{"商品ID", "product_id", "id"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)product.?id`),
			regexp.MustCompile(`(?i)商品.*id`),
			regexp.MustCompile(`(?i)^id$`),
		},
	},
	{
		field: FieldStatus,
		exact: []string{"商品ステータス", "product_status", "status"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)product.?status`),
			regexp.MustCompile(`商品.*ステータス`),
			regexp.MustCompile(`(?i)ステータス|status`),
			regexp.MustCompile(`状態`),
		},
	},
	{
		field: FieldTitle,
		exact: []string{"商品名", "product_name", "name", "title"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)product.?name`),
			regexp.MustCompile(`(?i)^name$|^title$`),
		},
	},
	{
		field: FieldDescription,
		exact: []string{"商品説明", "description"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)description`),
			regexp.MustCompile(`説明`),
		},
	},
	{
		field: FieldStock,
		exact: []string{"SKU1_現在の在庫数", "在庫数", "stock"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`SKU1.*在庫`),
			regexp.MustCompile(`現在の在庫数`),
			regexp.MustCompile(`(?i)在庫|stock`),
		},
	},
	{
		field: FieldPrice,
		exact: []string{"価格", "price"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)price`),
			regexp.MustCompile(`価格|販売価格`),
		},
	},
	{
		field: FieldCondition,
		exact: []string{"商品の状態", "condition"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)condition`),
			regexp.MustCompile(`商品の状態`),
		},
	},
	{
		field: FieldURL,
		exact: []string{"URL", "url"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^url$|リンク`),
		},
	},
	{
		field: FieldUpdated,
		exact: []string{"最終更新日時", "商品登録日時", "updated_at"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`最終更新|更新日時`),
			regexp.MustCompile(`登録日時`),
			regexp.MustCompile(`(?i)updated|modified|created`),
		},
	},
	{
		field: FieldWatches,
		exact: []string{"watch", "ウォッチ"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)watch`),
			regexp.MustCompile(`ウォッチ`),
		},
	},
	{
		field: FieldViews,
		exact: []string{"access", "アクセス"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)access|views?`),
			regexp.MustCompile(`アクセス|閲覧`),
		},
	},
	{
		field: FieldBids,
		exact: []string{"bids", "入札"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)bids?`),
			regexp.MustCompile(`入札`),
		},
	},
}

// ResolveSchema maps logical fields onto the header row. Each column can
// satisfy at most one field; fields without any matching header are simply
// absent from the schema and degrade the decisions that need them.
func ResolveSchema(header []string) Schema {
	cleaned := make([]string, len(header))
	for i, name := range header {
		cleaned[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	columns := make(map[Field]int)
	claimed := make(map[int]bool)

	for _, matcher := range fieldMatchers {
		if idx, ok := matchColumn(cleaned, claimed, matcher); ok {
			columns[matcher.field] = idx
			claimed[idx] = true
		}
	}
	return Schema{columns: columns}
}

func matchColumn(header []string, claimed map[int]bool, matcher fieldMatcher) (int, bool) {
	for _, exact := range matcher.exact {
		for i, name := range header {
			if claimed[i] {
				continue
			}
			if strings.EqualFold(name, exact) {
				return i, true
			}
		}
	}
	for _, pattern := range matcher.patterns {
		for i, name := range header {
			if claimed[i] {
				continue
			}
			if pattern.MatchString(name) {
				return i, true
			}
		}
	}
	return 0, false
}
