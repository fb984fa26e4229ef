package sources

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var numberPattern = regexp.MustCompile(`^\$?\s*(-?\d[\d,]*(?:\.\d+)?)`)

// ParseNumber reads a provider number such as "28500", "$28,500.00" or
// "15,000 mi". A leading currency symbol, thousands separators and trailing
// units are ignored. ok is false when raw does not start with a number.
func ParseNumber(raw string) (v float64, ok bool) {
	m := numberPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParsePrice returns nil for missing, zero, negative or malformed prices.
func ParsePrice(raw string) *float64 {
	v, ok := ParseNumber(raw)
	if !ok || v <= 0 {
		return nil
	}
	return &v
}

// ParseCount returns nil for missing, zero, negative or malformed integer
// values such as mileage or mpg. Fractions are truncated.
func ParseCount(raw string) *int {
	v, ok := ParseNumber(raw)
	if !ok || v <= 0 || v > math.MaxInt32 {
		return nil
	}
	n := int(v)
	return &n
}

// ParseYear returns 0 unless raw holds a plausible model year.
func ParseYear(raw string) int {
	v, ok := ParseNumber(raw)
	if !ok {
		return 0
	}
	y := int(v)
	if y < 1900 || y > 2100 {
		return 0
	}
	return y
}

// ParseRating returns nil unless raw holds a 1-5 star rating.
func ParseRating(raw string) *int {
	v, ok := ParseNumber(raw)
	if !ok {
		return nil
	}
	r := int(v)
	if r < 1 || r > 5 {
		return nil
	}
	return &r
}

// TitleCase normalizes provider spellings such as "TOYOTA" or
// "single_speed" to "Toyota" and "Single Speed".
func TitleCase(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	if s == "" {
		return ""
	}
	// Casers are stateful, so each call gets its own.
	return cases.Title(language.English).String(s)
}

// Flex is a JSON scalar that providers send either as a string or as a
// number. Null and absent values decode to "".
type Flex string

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flex) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flex(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = Flex(n.String())
	return nil
}

// String returns the raw value.
func (f Flex) String() string { return string(f) }

func capStrings(in []string, n int) []string {
	out := make([]string, 0, min(len(in), n))
	for _, s := range in {
		if len(out) == n {
			break
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
