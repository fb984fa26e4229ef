// Package extract turns free-form shopping requests into structured
// preferences using keyword and pattern matching. LLMExtractor covers
// messages the keyword rules cannot read, using an Ollama, Anthropic or
// OpenAI-compatible backend.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// Values the keyword rules assign.
const (
	RecentYearMin  = 2020
	LowMileageMax  = 30000
	FuelElectric   = "Electric"
	FuelHybrid     = "Hybrid"
	priorityWeight = 0.1
)

var (
	// Budget patterns are tried in order; the first match wins.
	budgetPatterns = []*regexp.Regexp{
		regexp.MustCompile(`budget.*?(\d+(?:,\d+)*(?:\.\d+)?)(k)?`),
		regexp.MustCompile(`under.*?(\d+(?:,\d+)*(?:\.\d+)?)(k)?`),
		regexp.MustCompile(`max.*?(\d+(?:,\d+)*(?:\.\d+)?)(k)?`),
		regexp.MustCompile(`\$(\d+(?:,\d+)*(?:\.\d+)?)(k)?`),
	}

	mileagePattern = regexp.MustCompile(
		`(?:under|less than|below|max|no more than)\s+(\d+(?:,\d+)*)(k)?\s*(?:miles|mi)\b`,
	)
	radiusPattern = regexp.MustCompile(`within\s+(\d+)\s*(?:miles|mi)\b`)
	zipPattern    = regexp.MustCompile(`(?:zip(?:\s*code)?:?|near)\s*(\d{5})\b`)
	yearPattern   = regexp.MustCompile(`\b(20\d{2})\b`)
	recentPattern = regexp.MustCompile(`\b(?:new|newer|recent|latest)\b`)
	lowMiles      = regexp.MustCompile(`low mileage|low miles|few miles|barely driven`)
	classPattern  = regexp.MustCompile(`(?:^|[^$\d,])(1500|2500|3500)\b`)
	electricWords = regexp.MustCompile(`\b(?:electric|ev|evs|tesla|plug-in)\b`)
	hybridWords   = regexp.MustCompile(`\b(?:hybrid|prius)\b`)
)

type keywordRule struct {
	value   string
	pattern *regexp.Regexp
}

func words(alts ...string) *regexp.Regexp {
	quoted := make([]string, len(alts))
	for i, a := range alts {
		quoted[i] = regexp.QuoteMeta(a)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// makeRules are checked in order; the first hit becomes the make.
var makeRules = []keywordRule{
	{"Toyota", words("toyota")},
	{"Honda", words("honda")},
	{"Ford", words("ford")},
	{"Chevrolet", words("chevrolet", "chevy")},
	{"Nissan", words("nissan")},
	{"Hyundai", words("hyundai")},
	{"Kia", words("kia")},
	{"Subaru", words("subaru")},
	{"Mazda", words("mazda")},
	{"Volkswagen", words("volkswagen", "vw")},
	{"BMW", words("bmw")},
	{"Mercedes-Benz", words("mercedes", "mercedes-benz")},
	{"Audi", words("audi")},
	{"Lexus", words("lexus")},
	{"Acura", words("acura")},
	{"Infiniti", words("infiniti")},
	{"Tesla", words("tesla")},
	{"Jeep", words("jeep")},
	{"Dodge", words("dodge")},
	{"Chrysler", words("chrysler")},
	{"Ram", words("ram")},
	{"GMC", words("gmc")},
}

var vehicleTypeRules = []keywordRule{
	{string(domain.VehicleSedan), words("sedan", "sedans")},
	{string(domain.VehicleSUV), words("suv", "suvs", "crossover", "crossovers")},
	{string(domain.VehicleTruck), words("truck", "trucks", "pickup", "pickups")},
	{string(domain.VehicleCoupe), words("coupe", "coupes", "sports car")},
	{string(domain.VehicleHatchback), words("hatchback", "hatchbacks")},
	{string(domain.VehicleWagon), words("wagon", "wagons")},
}

var truckClassRules = []keywordRule{
	{"1500", words("half-ton", "half ton")},
	{"2500", words("three-quarter-ton", "three quarter ton", "3/4 ton")},
	{"3500", words("one-ton", "one ton")},
}

var featureRules = []keywordRule{
	{"backup camera", words("backup camera", "rear camera", "rearview camera")},
	{"navigation", words("navigation", "nav", "gps")},
	{"heated seats", words("heated seats", "seat warmers")},
	{"sunroof", words("sunroof", "moonroof")},
	{"bluetooth", words("bluetooth", "wireless")},
	{"all-wheel drive", words("awd", "all-wheel", "all wheel", "4wd", "four-wheel")},
}

var priorityRules = []keywordRule{
	{string(domain.PriorityReliability), words("reliable", "reliability", "dependable")},
	{string(domain.PriorityFuelEconomy), words("mpg", "fuel economy", "fuel efficient", "fuel-efficient", "gas mileage")},
	{string(domain.PrioritySafety), words("safe", "safety", "safest")},
	{string(domain.PriorityLuxury), words("luxury", "premium", "upscale")},
}

// FromText extracts every preference it can recognize in text. Fields it
// finds nothing for are left unset.
func FromText(text string) domain.PreferenceSet {
	var p domain.PreferenceSet
	t := strings.ToLower(text)

	// Mileage phrases are consumed first so "under 50k miles" is not read
	// as a budget.
	if m := mileagePattern.FindStringSubmatch(t); m != nil {
		if v, ok := parseAmount(m[1], m[2] != ""); ok {
			miles := int(v)
			p.MileageMax = &miles
		}
		t = strings.Replace(t, m[0], " ", 1)
	}
	if m := radiusPattern.FindStringSubmatch(t); m != nil {
		if r, err := strconv.Atoi(m[1]); err == nil {
			p.Radius = &r
		}
		t = strings.Replace(t, m[0], " ", 1)
	}
	if m := zipPattern.FindStringSubmatch(t); m != nil {
		p.Location = m[1]
		t = strings.Replace(t, m[0], " ", 1)
	}

	p.BudgetMax = extractBudget(t)
	p.Make = firstMatch(makeRules, t)
	p.FuelType = extractFuel(t)

	if m := yearPattern.FindStringSubmatch(t); m != nil {
		y, _ := strconv.Atoi(m[1])
		p.YearMin = &y
	} else if recentPattern.MatchString(t) {
		y := RecentYearMin
		p.YearMin = &y
	}

	if p.MileageMax == nil && lowMiles.MatchString(t) {
		m := LowMileageMax
		p.MileageMax = &m
	}

	p.VehicleType = domain.VehicleType(firstMatch(vehicleTypeRules, t))
	p.TruckClass = extractTruckClass(t)
	if p.TruckClass != "" && p.VehicleType == "" {
		p.VehicleType = domain.VehicleTruck
	}

	p.DesiredFeatures = allMatches(featureRules, t)
	for _, v := range allMatches(priorityRules, t) {
		p.Priorities = append(p.Priorities, domain.Priority(v))
	}
	if len(p.Priorities) > 0 {
		w := WeightsFor(p.Priorities)
		p.Weights = &w
	}

	return p
}

// WeightsFor shifts the default weights toward the given priorities and
// normalizes the result. Luxury raises the features weight.
func WeightsFor(priorities []domain.Priority) domain.Weights {
	w := domain.DefaultWeights()
	for _, pr := range priorities {
		switch pr {
		case domain.PriorityReliability:
			w.Reliability += priorityWeight
		case domain.PriorityFuelEconomy:
			w.FuelEfficiency += priorityWeight
		case domain.PrioritySafety:
			w.Safety += priorityWeight
		case domain.PriorityLuxury:
			w.Features += priorityWeight
		}
	}
	return w.Normalized()
}

func extractBudget(t string) *float64 {
	for _, re := range budgetPatterns {
		m := re.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		if v, ok := parseAmount(m[1], m[2] != ""); ok {
			return &v
		}
	}
	return nil
}

// parseAmount reads a number such as "28,500" or "30". Values given with a
// k suffix or below 1000 are taken as thousands.
func parseAmount(raw string, thousands bool) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if thousands || v < 1000 {
		v *= 1000
	}
	return v, true
}

func extractFuel(t string) string {
	switch {
	case electricWords.MatchString(t):
		return FuelElectric
	case hybridWords.MatchString(t):
		return FuelHybrid
	default:
		return ""
	}
}

func extractTruckClass(t string) string {
	if m := classPattern.FindStringSubmatch(t); m != nil {
		return m[1]
	}
	return firstMatch(truckClassRules, t)
}

func firstMatch(rules []keywordRule, t string) string {
	for _, r := range rules {
		if r.pattern.MatchString(t) {
			return r.value
		}
	}
	return ""
}

func allMatches(rules []keywordRule, t string) []string {
	var out []string
	for _, r := range rules {
		if r.pattern.MatchString(t) {
			out = append(out, r.value)
		}
	}
	return out
}
