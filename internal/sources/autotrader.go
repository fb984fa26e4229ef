package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// AutotraderName is the provider name for Autotrader listings.
const AutotraderName = "autotrader"

type autotraderRecord struct {
	ID      string `json:"id"`
	Vehicle struct {
		Make         string `json:"make"`
		Model        string `json:"model"`
		Year         Flex   `json:"year"`
		VIN          string `json:"vin"`
		FuelType     string `json:"fuelType"`
		Transmission string `json:"transmission"`
		MPGCity      Flex   `json:"mpgCity"`
		MPGHighway   Flex   `json:"mpgHighway"`
		SafetyRating Flex   `json:"safetyRating"`
	} `json:"vehicle"`
	Pricing struct {
		ListPrice Flex `json:"listPrice"`
	} `json:"pricing"`
	Odometer Flex `json:"odometer"`
	Dealer   struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		City  string `json:"city"`
		State string `json:"state"`
	} `json:"dealer"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Images      []string `json:"images"`
	URL         string   `json:"url"`
	ListedOn    string   `json:"listedOn"`
	Detail      *struct {
		Description string   `json:"description"`
		Features    []string `json:"features"`
		Images      []string `json:"images"`
	} `json:"detail"`
}

// NewAutotrader returns the fixture-backed Autotrader provider.
func NewAutotrader(opts ...FixtureOption) *Fixture {
	return newFixture(AutotraderName, "https://api.autotrader.com/v1", "autotrader.json", "results", convertAutotrader, opts...)
}

func convertAutotrader(raw json.RawMessage, detailed bool) (domain.VehicleListing, error) {
	var r autotraderRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.VehicleListing{}, fmt.Errorf("decoding autotrader result: %w", err)
	}
	if r.ID == "" || r.Vehicle.Make == "" {
		return domain.VehicleListing{}, errors.New("autotrader result missing id or vehicle.make")
	}

	l := domain.VehicleListing{
		Source:       AutotraderName,
		ExternalID:   r.ID,
		Make:         r.Vehicle.Make,
		Model:        r.Vehicle.Model,
		Year:         ParseYear(r.Vehicle.Year.String()),
		Price:        ParsePrice(r.Pricing.ListPrice.String()),
		Mileage:      ParseCount(r.Odometer.String()),
		FuelType:     TitleCase(r.Vehicle.FuelType),
		Transmission: TitleCase(r.Vehicle.Transmission),
		Location:     joinLocation(r.Dealer.City, r.Dealer.State),
		SafetyRating: ParseRating(r.Vehicle.SafetyRating.String()),
		MPGCity:      ParseCount(r.Vehicle.MPGCity.String()),
		MPGHighway:   ParseCount(r.Vehicle.MPGHighway.String()),
		VIN:          r.Vehicle.VIN,
		Description:  r.Description,
		Features:     capStrings(r.Features, maxFeatures),
		Images:       capStrings(r.Images, maxImages),
		DealerName:   r.Dealer.Name,
		DealerPhone:  r.Dealer.Phone,
		ListingURL:   r.URL,
		ListingDate:  r.ListedOn,
	}

	if detailed && r.Detail != nil {
		if r.Detail.Description != "" {
			l.Description = r.Detail.Description
		}
		if len(r.Detail.Features) > 0 {
			l.Features = capStrings(r.Detail.Features, maxFeatures)
		}
		if len(r.Detail.Images) > 0 {
			l.Images = capStrings(r.Detail.Images, maxImages)
		}
	}

	return l, nil
}

// joinLocation renders "City, ST". Either part may be missing.
func joinLocation(city, state string) string {
	city, state = strings.TrimSpace(city), strings.TrimSpace(state)
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}
