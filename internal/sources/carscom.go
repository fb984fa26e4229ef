package sources

import (
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// CarsComName is the provider name for cars.com listings.
const CarsComName = "cars.com"

// carsComRecord is one cars.com listing. Numbers arrive display-formatted
// ("$28,500", "15,000 mi").
type carsComRecord struct {
	ListingID    string `json:"listing_id"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         Flex   `json:"year"`
	Price        Flex   `json:"price"`
	Mileage      Flex   `json:"mileage"`
	Fuel         string `json:"fuel"`
	Transmission string `json:"transmission"`
	Location     string `json:"location"`
	SafetyRating Flex   `json:"safety_rating"`
	MPG          struct {
		City    Flex `json:"city"`
		Highway Flex `json:"highway"`
	} `json:"mpg"`
	VIN         string   `json:"vin"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Photos      []string `json:"photos"`
	Dealer      struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	} `json:"dealer"`
	URL    string `json:"url"`
	Listed string `json:"listed"`
	Detail *struct {
		Description string   `json:"description"`
		Features    []string `json:"features"`
		Photos      []string `json:"photos"`
	} `json:"detail"`
}

// NewCarsCom returns the fixture-backed cars.com provider.
func NewCarsCom(opts ...FixtureOption) *Fixture {
	return newFixture(CarsComName, "https://www.cars.com", "carscom.json", "listings", convertCarsCom, opts...)
}

func convertCarsCom(raw json.RawMessage, detailed bool) (domain.VehicleListing, error) {
	var r carsComRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.VehicleListing{}, fmt.Errorf("decoding cars.com listing: %w", err)
	}
	if r.ListingID == "" || r.Make == "" {
		return domain.VehicleListing{}, errors.New("cars.com listing missing listing_id or make")
	}

	l := domain.VehicleListing{
		Source:       CarsComName,
		ExternalID:   r.ListingID,
		Make:         r.Make,
		Model:        r.Model,
		Year:         ParseYear(r.Year.String()),
		Price:        ParsePrice(r.Price.String()),
		Mileage:      ParseCount(r.Mileage.String()),
		FuelType:     TitleCase(r.Fuel),
		Transmission: r.Transmission,
		Location:     r.Location,
		SafetyRating: ParseRating(r.SafetyRating.String()),
		MPGCity:      ParseCount(r.MPG.City.String()),
		MPGHighway:   ParseCount(r.MPG.Highway.String()),
		VIN:          r.VIN,
		Description:  r.Description,
		Features:     capStrings(r.Features, maxFeatures),
		Images:       capStrings(r.Photos, maxImages),
		DealerName:   r.Dealer.Name,
		DealerPhone:  r.Dealer.Phone,
		ListingURL:   r.URL,
		ListingDate:  r.Listed,
	}

	if detailed && r.Detail != nil {
		if r.Detail.Description != "" {
			l.Description = r.Detail.Description
		}
		if len(r.Detail.Features) > 0 {
			l.Features = capStrings(r.Detail.Features, maxFeatures)
		}
		if len(r.Detail.Photos) > 0 {
			l.Images = capStrings(r.Detail.Photos, maxImages)
		}
	}

	return l, nil
}
