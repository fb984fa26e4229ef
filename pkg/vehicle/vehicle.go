// Package vehicle classifies listings into body styles using fixed keyword
// vocabularies. Matching is case-insensitive substring containment, so
// models missing from the lists are not recognized.
package vehicle

import "strings"

// TruckMakes are the manufacturers searched individually when a shopper
// asks for a truck without naming a make.
var TruckMakes = []string{"Ford", "Chevrolet", "Toyota", "Ram", "GMC"}

// truckOnlyMakes build nothing but trucks.
var truckOnlyMakes = []string{"ram"}

var truckModelKeywords = []string{
	"f-150", "silverado", "sierra", "tacoma", "tundra", "ram",
	"frontier", "ranger", "colorado", "canyon", "ridgeline",
	"truck", "1500", "2500", "3500",
}

var suvModelKeywords = []string{
	"suv", "cr-v", "cx-5", "rav4", "escape", "equinox", "explorer",
	"highlander", "pilot", "outback", "forester", "wrangler", "cherokee",
	"tahoe", "suburban", "4runner", "pathfinder", "rogue", "tucson",
	"santa fe", "model y", "x3", "x5",
}

// TruckClasses are the recognized size-class tokens.
var TruckClasses = []string{"1500", "2500", "3500"}

// IsTruckModel reports whether model contains a truck keyword.
func IsTruckModel(model string) bool {
	return containsAny(model, truckModelKeywords)
}

// IsTruckOnlyMake reports whether mk only produces trucks.
func IsTruckOnlyMake(mk string) bool {
	m := strings.ToLower(strings.TrimSpace(mk))
	for _, t := range truckOnlyMakes {
		if m == t {
			return true
		}
	}
	return false
}

// IsTruck reports whether a make/model pair looks like a truck.
func IsTruck(mk, model string) bool {
	return IsTruckOnlyMake(mk) || IsTruckModel(model)
}

// IsSUVModel reports whether model contains an SUV keyword.
func IsSUVModel(model string) bool {
	return containsAny(model, suvModelKeywords)
}

// MatchesTruckClass reports whether model carries the given size class.
// An empty class matches everything.
func MatchesTruckClass(model, class string) bool {
	if class == "" {
		return true
	}
	return strings.Contains(strings.ToLower(model), strings.ToLower(class))
}

func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
