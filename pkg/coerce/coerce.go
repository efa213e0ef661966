package coerce

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Float is a float64 that accepts either a JSON number or a numeric string
// when unmarshalling. Blank or unparseable input coerces to zero instead of
// failing the whole payload; shop-floor forms routinely submit "" for
// untouched numeric cells.
type Float float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *Float) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*f = 0
		return nil
	}
	*f = Float(Number(raw))
	return nil
}

// TrimmedString is a string that trims surrounding whitespace when
// unmarshalling and coerces non-string input to its textual form, with ""
// as the fallback.
type TrimmedString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *TrimmedString) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = ""
		return nil
	}
	*s = TrimmedString(Trimmed(raw))
	return nil
}

// Number converts an arbitrary decoded JSON value to a float64, defaulting
// to zero for blank, missing or unparseable input.
func Number(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		if parsed, err := v.Float64(); err == nil {
			return parsed
		}
		return 0
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// Trimmed converts an arbitrary decoded JSON value to a trimmed string,
// defaulting to "" for nil or unrepresentable input.
func Trimmed(raw any) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return ""
	}
}
