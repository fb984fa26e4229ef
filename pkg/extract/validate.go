package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// Validation errors.
var (
	ErrOutOfRange  = errors.New("value out of valid range")
	ErrInvalidEnum = errors.New("invalid enum value")
)

// FuelTypes are the canonical fuel spellings listings carry.
var FuelTypes = []string{"Gasoline", "Diesel", FuelHybrid, FuelElectric}

var (
	truckClasses = []string{"1500", "2500", "3500"}
	zipCode      = regexp.MustCompile(`^\d{5}$`)
)

const (
	minModelYear   = 1900
	maxModelYear   = 2100
	maxBudget      = 10_000_000
	maxRadius      = 500
	maxFeatures    = 10
	maxFieldLength = 40
)

// llmPreferences mirrors the prompt schema. Pointers tell absent from zero.
type llmPreferences struct {
	Make            string   `json:"make"`
	Model           string   `json:"model"`
	YearMin         *int     `json:"year_min"`
	YearMax         *int     `json:"year_max"`
	BudgetMax       *float64 `json:"budget_max"`
	MileageMax      *int     `json:"mileage_max"`
	Location        string   `json:"location"`
	Radius          *int     `json:"radius"`
	FuelType        string   `json:"fuel_type"`
	VehicleType     string   `json:"vehicle_type"`
	TruckClass      string   `json:"truck_class"`
	DesiredFeatures []string `json:"desired_features"`
}

// ParsePreferences decodes an LLM's JSON answer into preferences. Fields
// that fail validation are dropped and reported in the returned error; the
// preferences always hold only the fields that passed. A reply that is not
// a JSON object yields empty preferences and an error.
func ParsePreferences(content string) (domain.PreferenceSet, error) {
	var raw llmPreferences
	if err := json.Unmarshal([]byte(stripFences(content)), &raw); err != nil {
		return domain.PreferenceSet{}, fmt.Errorf("decoding preferences JSON: %w", err)
	}

	var (
		p    domain.PreferenceSet
		errs []error
	)

	p.Make = titleCase(clip(raw.Make))
	p.Model = clip(raw.Model)

	for _, y := range []struct {
		name string
		src  *int
		dst  **int
	}{
		{"year_min", raw.YearMin, &p.YearMin},
		{"year_max", raw.YearMax, &p.YearMax},
	} {
		if y.src == nil {
			continue
		}
		if *y.src < minModelYear || *y.src > maxModelYear {
			errs = append(errs, fmt.Errorf("%s %d: %w", y.name, *y.src, ErrOutOfRange))
			continue
		}
		*y.dst = y.src
	}
	if p.YearMin != nil && p.YearMax != nil && *p.YearMin > *p.YearMax {
		errs = append(errs, fmt.Errorf("year_min %d after year_max %d: %w", *p.YearMin, *p.YearMax, ErrOutOfRange))
		p.YearMin, p.YearMax = nil, nil
	}

	if b := raw.BudgetMax; b != nil {
		if *b <= 0 || *b > maxBudget {
			errs = append(errs, fmt.Errorf("budget_max %g: %w", *b, ErrOutOfRange))
		} else {
			p.BudgetMax = b
		}
	}
	if m := raw.MileageMax; m != nil {
		if *m < 0 {
			errs = append(errs, fmt.Errorf("mileage_max %d: %w", *m, ErrOutOfRange))
		} else {
			p.MileageMax = m
		}
	}
	if r := raw.Radius; r != nil {
		if *r <= 0 || *r > maxRadius {
			errs = append(errs, fmt.Errorf("radius %d: %w", *r, ErrOutOfRange))
		} else {
			p.Radius = r
		}
	}

	if loc := strings.TrimSpace(raw.Location); loc != "" {
		if zipCode.MatchString(loc) {
			p.Location = loc
		} else {
			errs = append(errs, fmt.Errorf("location %q: %w", loc, ErrInvalidEnum))
		}
	}

	if f := strings.TrimSpace(raw.FuelType); f != "" {
		i := slices.IndexFunc(FuelTypes, func(v string) bool { return strings.EqualFold(v, f) })
		if i < 0 {
			errs = append(errs, fmt.Errorf("fuel_type %q: %w", f, ErrInvalidEnum))
		} else {
			p.FuelType = FuelTypes[i]
		}
	}

	if vt := strings.ToLower(strings.TrimSpace(raw.VehicleType)); vt != "" {
		if domain.VehicleType(vt).IsValid() {
			p.VehicleType = domain.VehicleType(vt)
		} else {
			errs = append(errs, fmt.Errorf("vehicle_type %q: %w", vt, ErrInvalidEnum))
		}
	}

	if tc := strings.TrimSpace(raw.TruckClass); tc != "" {
		if slices.Contains(truckClasses, tc) {
			p.TruckClass = tc
			if p.VehicleType == "" {
				p.VehicleType = domain.VehicleTruck
			}
		} else {
			errs = append(errs, fmt.Errorf("truck_class %q: %w", tc, ErrInvalidEnum))
		}
	}

	for _, f := range raw.DesiredFeatures {
		f = strings.ToLower(clip(f))
		if f != "" && !slices.Contains(p.DesiredFeatures, f) && len(p.DesiredFeatures) < maxFeatures {
			p.DesiredFeatures = append(p.DesiredFeatures, f)
		}
	}

	return p, errors.Join(errs...)
}

// stripFences removes a Markdown code fence some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func clip(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxFieldLength {
		s = s[:maxFieldLength]
	}
	return s
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
