package listing

import (
	"regexp"
	"strconv"
	"strings"
)

// State is the normalized lifecycle of a listing.
type State string

const (
	StateActive          State = "active"
	StateSoldOrSuspended State = "sold_or_suspended"
	StateDraft           State = "draft"
	StateEndedUnsold     State = "ended_unsold"

	// StateUnknown marks records from an export whose status column could not
	// be resolved. Unknown records are never delisted or pruned.
	StateUnknown State = "unknown"
)

// StatusMapping translates a marketplace-native status value into a State.
// Every marketplace gets an explicit mapping; there is no fallback guessing
// beyond the documented code and label tables.
type StatusMapping struct {
	codes  map[int]State
	labels map[string]State
}

var statusCodePattern = regexp.MustCompile(`(\d+)`)

// CodeStatusMapping maps the numeric status codes used by catalog-style
// exports: 2 means the listing is live, 1 means it sold or was suspended.
// Codes may arrive as full-width digits or decimals ("２", "2.0"); they are
// normalized before parsing.
func CodeStatusMapping() StatusMapping {
	return StatusMapping{
		codes: map[int]State{
			1: StateSoldOrSuspended,
			2: StateActive,
		},
	}
}

// LabelStatusMapping maps the textual status labels used by auction-style
// exports.
func LabelStatusMapping() StatusMapping {
	return StatusMapping{
		labels: map[string]State{
			"出品中":      StateActive,
			"終了（落札者なし）": StateEndedUnsold,
			"下書き":      StateDraft,
			"売り切れ":     StateSoldOrSuspended,
			"sold":     StateSoldOrSuspended,
			"sold out": StateSoldOrSuspended,
			"active":   StateActive,
			"draft":    StateDraft,
			"ended":    StateEndedUnsold,
		},
	}
}

// Map resolves a raw status value to a State. The second return value is
// false when the value matches neither the code nor the label table.
func (m StatusMapping) Map(raw string) (State, bool) {
	cleaned := strings.TrimSpace(NormalizeDigits(raw))
	if cleaned == "" {
		return StateUnknown, false
	}
	if len(m.codes) > 0 {
		if match := statusCodePattern.FindString(cleaned); match != "" {
			if code, err := strconv.Atoi(match); err == nil {
				if state, ok := m.codes[code]; ok {
					return state, true
				}
			}
		}
	}
	if len(m.labels) > 0 {
		if state, ok := m.labels[strings.ToLower(cleaned)]; ok {
			return state, true
		}
	}
	return StateUnknown, false
}

// Terminal reports whether the state means the listing is finished on its own
// marketplace. A terminal listing is never delisted by reconciliation; a sale
// in progress must not be cancelled.
func (s State) Terminal() bool {
	return s == StateSoldOrSuspended
}
