package httpapi

import (
	"bytes"
	"strconv"
	"strings"
)

// flexInt accepts a JSON number or a numeric string. Anything unparsable
// becomes 0 and is left to range validation.
type flexInt int

func (v *flexInt) UnmarshalJSON(data []byte) error {
	*v = flexInt(parseFlexNumber(data, true))
	return nil
}

func (v *flexInt) intPtr() *int {
	if v == nil {
		return nil
	}
	out := int(*v)
	return &out
}

// flexFloat is flexInt for rate stats.
type flexFloat float64

func (v *flexFloat) UnmarshalJSON(data []byte) error {
	*v = flexFloat(parseFlexNumber(data, false))
	return nil
}

func (v *flexFloat) floatPtr() *float64 {
	if v == nil {
		return nil
	}
	out := float64(*v)
	return &out
}

func parseFlexNumber(data []byte, integer bool) float64 {
	raw := strings.TrimSpace(string(bytes.Trim(bytes.TrimSpace(data), `"`)))
	if raw == "" || raw == "null" {
		return 0
	}
	if integer {
		if n, err := strconv.ParseInt(leadingInteger(raw), 10, 64); err == nil {
			return float64(n)
		}
		return 0
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return 0
}

// leadingInteger keeps an optional sign and the digits that follow it, so
// "12.7" and "25 years" both read as their integer prefix.
func leadingInteger(raw string) string {
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	return raw[:end]
}

// flexString accepts a JSON string or number, e.g. established: 2020.
type flexString string

func (v *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		unquoted, err := strconv.Unquote(string(trimmed))
		if err != nil {
			return err
		}
		*v = flexString(unquoted)
		return nil
	}
	*v = flexString(trimmed)
	return nil
}

func (v *flexString) stringPtr() *string {
	if v == nil {
		return nil
	}
	out := string(*v)
	return &out
}
