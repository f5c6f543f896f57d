package export

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"crosslist/internal/listing"
)

var (
	integerPattern = regexp.MustCompile(`-?\d+`)

	// Timestamp layouts seen across export revisions, tried in order.
	timeLayouts = []string{
		"2006/01/02 15:04:05",
		"2006/01/02 15:04",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006/01/02",
		"2006-01-02",
	}
)

func normalizeRow(row []string, schema Schema, opts Options) listing.Record {
	record := listing.Record{
		Platform:    opts.Platform,
		ListingID:   cell(row, schema, FieldID),
		URL:         cell(row, schema, FieldURL),
		Description: cell(row, schema, FieldDescription),
		Condition:   cell(row, schema, FieldCondition),
	}

	record.Title = cleanTitle(cell(row, schema, FieldTitle), opts.TitleSuffixes)

	if opts.RequireFieldAgreement && schema.Has(FieldDescription) {
		if key, ok := listing.MatchedKey(record.Title, record.Description); ok {
			record.Key = key
		}
	} else if key, ok := listing.ExtractKey(record.Title); ok {
		record.Key = key
	}

	record.RawStatus = cell(row, schema, FieldStatus)
	if schema.Has(FieldStatus) {
		if state, ok := opts.Mapping.Map(record.RawStatus); ok {
			record.State = state
		} else {
			record.State = listing.StateUnknown
		}
	} else {
		record.State = listing.StateUnknown
	}

	if stock, ok := parseInt(cell(row, schema, FieldStock)); ok {
		record.Stock = &stock
	}
	if price, ok := parseInt(cell(row, schema, FieldPrice)); ok {
		record.Price = price
	}
	if bids, ok := parseInt(cell(row, schema, FieldBids)); ok {
		record.Engagement.Bids = bids
	}
	if watches, ok := parseInt(cell(row, schema, FieldWatches)); ok {
		record.Engagement.Watches = watches
	}
	if views, ok := parseInt(cell(row, schema, FieldViews)); ok {
		record.Engagement.Views = views
	}
	if updated, ok := parseTime(cell(row, schema, FieldUpdated)); ok {
		record.UpdatedAt = updated
	}
	return record
}

func cell(row []string, schema Schema, field Field) string {
	idx, ok := schema.Column(field)
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cleanTitle(title string, suffixes []string) string {
	for _, suffix := range suffixes {
		if i := strings.Index(title, suffix); i >= 0 {
			title = title[:i]
			break
		}
	}
	return strings.TrimSpace(title)
}

// parseInt extracts the first integer from a cell, tolerating full-width
// digits, decimals ("2.0"), and thousands separators.
func parseInt(raw string) (int, bool) {
	cleaned := listing.NormalizeDigits(raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	match := integerPattern.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	value, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return value, true
}

func parseTime(raw string) (time.Time, bool) {
	cleaned := strings.TrimSpace(listing.NormalizeDigits(raw))
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
