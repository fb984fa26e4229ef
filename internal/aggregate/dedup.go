package aggregate

import (
	"slices"
	"strings"

	score "github.com/donaldgifford/carfinder/pkg/scorer"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// similarityKey identifies listings of the same car seen through different
// providers. Unknown mileage and zero mileage are distinct.
type similarityKey struct {
	make       string
	model      string
	year       int
	mileage    int
	hasMileage bool
	price      int64
}

func keyOf(l *domain.VehicleListing) similarityKey {
	k := similarityKey{
		make:  strings.ToLower(l.Make),
		model: strings.ToLower(l.Model),
		year:  l.Year,
	}
	if l.Mileage != nil {
		k.mileage = *l.Mileage
		k.hasMileage = true
	}
	if l.Price != nil {
		k.price = int64(*l.Price)
	}
	return k
}

type dropped struct {
	vin     int
	similar int
}

// Dedup keeps the first listing of every VIN and of every
// make/model/year/mileage/whole-dollar-price combination, in input order.
func Dedup(listings []domain.VehicleListing) []domain.VehicleListing {
	out, _ := dedupBy(listings, self)
	return out
}

// DedupFunc applies the Dedup rules to any value that carries a listing.
func DedupFunc[T any](items []T, listing func(*T) *domain.VehicleListing) []T {
	out, _ := dedupBy(items, listing)
	return out
}

func self(l *domain.VehicleListing) *domain.VehicleListing { return l }

func dedupBy[T any](items []T, listing func(*T) *domain.VehicleListing) ([]T, dropped) {
	var d dropped
	out := make([]T, 0, len(items))
	vins := make(map[string]struct{}, len(items))
	similar := make(map[similarityKey]struct{}, len(items))

	for i := range items {
		l := listing(&items[i])
		if l.VIN != "" {
			if _, seen := vins[l.VIN]; seen {
				d.vin++
				continue
			}
		}
		k := keyOf(l)
		if _, seen := similar[k]; seen {
			d.similar++
			continue
		}

		out = append(out, items[i])
		if l.VIN != "" {
			vins[l.VIN] = struct{}{}
		}
		similar[k] = struct{}{}
	}
	return out, d
}

// Rank returns listings ordered by score.RankScore, highest first. Ties keep
// their input order. The input slice is not modified.
func Rank(
	listings []domain.VehicleListing,
	c *domain.SearchCriteria,
	bonus score.SourceBonus,
	currentYear int,
) []domain.VehicleListing {
	type scored struct {
		listing domain.VehicleListing
		score   float64
	}
	tmp := make([]scored, len(listings))
	for i := range listings {
		tmp[i] = scored{
			listing: listings[i],
			score:   score.RankScore(&listings[i], c, bonus, currentYear),
		}
	}
	slices.SortStableFunc(tmp, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return 0
		}
	})

	out := make([]domain.VehicleListing, len(tmp))
	for i := range tmp {
		out[i] = tmp[i].listing
	}
	return out
}
