package listing

import "testing"

func TestExtractKey(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{name: "plain prefix", text: "1234 vintage denim jacket", want: "1234", found: true},
		{name: "leading whitespace", text: "  987 wool scarf", want: "987", found: true},
		{name: "full-width digits", text: "１２３４５ leather boots", want: "12345", found: true},
		{name: "five digit cap", text: "123456 six digits", want: "12345", found: true},
		{name: "too short", text: "12 short run", found: false},
		{name: "digits mid-title", text: "price 4500 yen", found: false},
		{name: "no digits", text: "plain title", found: false},
		{name: "empty", text: "", found: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractKey(tc.text)
			if ok != tc.found {
				t.Fatalf("ExtractKey(%q) found = %v, want %v", tc.text, ok, tc.found)
			}
			if ok && got != tc.want {
				t.Fatalf("ExtractKey(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestMatchedKey(t *testing.T) {
	if key, ok := MatchedKey("1234 jacket", "1234 denim, size M"); !ok || key != "1234" {
		t.Fatalf("agreeing fields: got %q, %v", key, ok)
	}
	if _, ok := MatchedKey("1234 jacket", "5678 different product"); ok {
		t.Fatal("disagreeing fields must yield no key")
	}
	if _, ok := MatchedKey("1234 jacket", "no key in description"); ok {
		t.Fatal("missing description key must yield no key")
	}
	if _, ok := MatchedKey("no key", "1234 description"); ok {
		t.Fatal("missing title key must yield no key")
	}
}

func TestNormalizeDigits(t *testing.T) {
	if got := NormalizeDigits("２０２４"); got != "2024" {
		t.Fatalf("NormalizeDigits full-width = %q", got)
	}
	if got := NormalizeDigits("1050"); got != "1050" {
		t.Fatalf("NormalizeDigits ascii = %q", got)
	}
}
