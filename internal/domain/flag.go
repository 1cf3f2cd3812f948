package domain

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DefaultTrialDays is substituted when the trial-day flag value is missing
// or not numeric.
const DefaultTrialDays = 7

// FlagValueKind discriminates the shapes a flag evaluation can return.
type FlagValueKind int

const (
	FlagText FlagValueKind = iota
	FlagNumeric
	FlagStructured
)

// FlagValue is a single evaluated flag value. Evaluations return
// heterogeneous shapes (a day count, free-form text, or a structured record
// carrying a banner string), so the value is a tagged variant.
type FlagValue struct {
	Kind       FlagValueKind
	Text       string
	Number     float64
	BannerText string
}

func TextFlag(s string) FlagValue {
	return FlagValue{Kind: FlagText, Text: s}
}

func NumericFlag(n float64) FlagValue {
	return FlagValue{Kind: FlagNumeric, Number: n}
}

func StructuredFlag(bannerText string) FlagValue {
	return FlagValue{Kind: FlagStructured, BannerText: bannerText}
}

// DisplayText extracts the user-visible text of the value: the banner-text
// field for structured values, the textual form otherwise.
func (v FlagValue) DisplayText() string {
	switch v.Kind {
	case FlagStructured:
		return v.BannerText
	case FlagNumeric:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return v.Text
	}
}

// TrialDays coerces the value to a day count, substituting def when the
// value is not numeric.
func (v FlagValue) TrialDays(def int) int {
	switch v.Kind {
	case FlagNumeric:
		return int(v.Number)
	case FlagText:
		if n, err := strconv.Atoi(strings.TrimSpace(v.Text)); err == nil {
			return n
		}
	}
	return def
}

// IsTruthy reports whether the value is present in the sense the banner
// checks use: non-empty text or a non-zero number.
func (v FlagValue) IsTruthy() bool {
	switch v.Kind {
	case FlagNumeric:
		return v.Number != 0
	case FlagStructured:
		return v.BannerText != ""
	default:
		return v.Text != ""
	}
}

// String renders the value for the flag-evaluation histogram.
func (v FlagValue) String() string {
	return v.DisplayText()
}

// FlagAssignment is the full set of flag values evaluated for one user,
// plus the evaluation time all downstream event timestamps must follow.
type FlagAssignment struct {
	TrialDays      FlagValue
	SeasonalBanner FlagValue
	HeroBanner     FlagValue
	EvaluatedAt    time.Time
}

// FlagDetail is the evaluation metadata recorded in the journey journal.
type FlagDetail struct {
	Value          any             `json:"value"`
	VariationIndex *int            `json:"variation_index"`
	Reason         json.RawMessage `json:"reason,omitempty"`
}
