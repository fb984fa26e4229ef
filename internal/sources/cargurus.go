package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// CarGurusName is the provider name for CarGurus listings.
const CarGurusName = "cargurus"

// cargurusRecord is one CarGurus listing. Fuel economy arrives as a single
// "city/highway" string and is empty for electric cars.
type cargurusRecord struct {
	ListingID     string   `json:"listingId"`
	MakeName      string   `json:"makeName"`
	ModelName     string   `json:"modelName"`
	CarYear       Flex     `json:"carYear"`
	ExpectedPrice Flex     `json:"expectedPrice"`
	Mileage       Flex     `json:"mileage"`
	FuelType      string   `json:"fuelType"`
	Transmission  string   `json:"transmission"`
	SellerCity    string   `json:"sellerCity"`
	SafetyRating  Flex     `json:"nhtsaOverall"`
	MPG           string   `json:"mpg"`
	VIN           string   `json:"vin"`
	Description   string   `json:"description"`
	Options       []string `json:"options"`
	PictureURLs   []string `json:"pictureUrls"`
	SellerName    string   `json:"sellerName"`
	SellerPhone   string   `json:"sellerPhone"`
	ListingURL    string   `json:"listingUrl"`
	ListedDate    string   `json:"listedDate"`
	Detail        *struct {
		Description string   `json:"description"`
		Options     []string `json:"options"`
		PictureURLs []string `json:"pictureUrls"`
	} `json:"detail"`
}

// NewCarGurus returns the fixture-backed CarGurus provider.
func NewCarGurus(opts ...FixtureOption) *Fixture {
	return newFixture(CarGurusName, "https://www.cargurus.com", "cargurus.json", "data", convertCarGurus, opts...)
}

func convertCarGurus(raw json.RawMessage, detailed bool) (domain.VehicleListing, error) {
	var r cargurusRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.VehicleListing{}, fmt.Errorf("decoding cargurus listing: %w", err)
	}
	if r.ListingID == "" || r.MakeName == "" {
		return domain.VehicleListing{}, errors.New("cargurus listing missing listingId or makeName")
	}

	city, highway := splitMPG(r.MPG)

	l := domain.VehicleListing{
		Source:       CarGurusName,
		ExternalID:   r.ListingID,
		Make:         r.MakeName,
		Model:        r.ModelName,
		Year:         ParseYear(r.CarYear.String()),
		Price:        ParsePrice(r.ExpectedPrice.String()),
		Mileage:      ParseCount(r.Mileage.String()),
		FuelType:     TitleCase(r.FuelType),
		Transmission: r.Transmission,
		Location:     r.SellerCity,
		SafetyRating: ParseRating(r.SafetyRating.String()),
		MPGCity:      city,
		MPGHighway:   highway,
		VIN:          r.VIN,
		Description:  r.Description,
		Features:     capStrings(r.Options, maxFeatures),
		Images:       capStrings(r.PictureURLs, maxImages),
		DealerName:   r.SellerName,
		DealerPhone:  r.SellerPhone,
		ListingURL:   r.ListingURL,
		ListingDate:  r.ListedDate,
	}

	if detailed && r.Detail != nil {
		if r.Detail.Description != "" {
			l.Description = r.Detail.Description
		}
		if len(r.Detail.Options) > 0 {
			l.Features = capStrings(r.Detail.Options, maxFeatures)
		}
		if len(r.Detail.PictureURLs) > 0 {
			l.Images = capStrings(r.Detail.PictureURLs, maxImages)
		}
	}

	return l, nil
}

// splitMPG reads "26/33" as city and highway mpg.
func splitMPG(s string) (city, highway *int) {
	c, h, ok := strings.Cut(s, "/")
	if !ok {
		return nil, nil
	}
	return ParseCount(c), ParseCount(h)
}
