package listing

import (
	"regexp"

	"golang.org/x/text/width"
)

// Product keys are runs of 3-5 digits anchored at the start of the listing
// text. Anchoring avoids false matches on prices or sizes embedded later in
// free text, at the cost of missing keys typed mid-title.
var keyPattern = regexp.MustCompile(`^\s*([0-9]{3,5})`)

// NormalizeDigits folds full-width digits (and other full-width forms) to
// their ASCII equivalents. Marketplace exports mix both freely.
func NormalizeDigits(s string) string {
	return width.Fold.String(s)
}

// ExtractKey derives the product key from a single text field. It returns
// false when no anchored digit run exists; callers must not fall back to
// scanning the middle of the string.
func ExtractKey(text string) (string, bool) {
	match := keyPattern.FindStringSubmatch(NormalizeDigits(text))
	if match == nil {
		return "", false
	}
	return match[1], true
}

// MatchedKey extracts the key from two independent fields and accepts it only
// when both agree. Disagreement is treated as no key at all: merging two
// different products that happen to share a title prefix is worse than
// leaving a record unmatched.
func MatchedKey(title, description string) (string, bool) {
	titleKey, ok := ExtractKey(title)
	if !ok {
		return "", false
	}
	descKey, ok := ExtractKey(description)
	if !ok {
		return "", false
	}
	if titleKey != descKey {
		return "", false
	}
	return titleKey, true
}
