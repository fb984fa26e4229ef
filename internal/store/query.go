package store

import (
	"fmt"
	"strings"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// VehicleQuery defines optional filters for a cache search. Empty strings
// and nil pointers place no constraint.
type VehicleQuery struct {
	Make       string
	Model      string
	FuelType   string
	YearMin    *int
	YearMax    *int
	PriceMin   *float64
	PriceMax   *float64
	MileageMax *int
	Limit      int // default 50
	Offset     int
}

// QueryFromPreferences maps shopper preferences onto cache filters.
func QueryFromPreferences(p *domain.PreferenceSet, limit int) *VehicleQuery {
	return &VehicleQuery{
		Make:       p.Make,
		Model:      p.Model,
		FuelType:   p.FuelType,
		YearMin:    p.YearMin,
		YearMax:    p.YearMax,
		PriceMin:   p.PriceMin,
		PriceMax:   p.BudgetMax,
		MileageMax: p.MileageMax,
		Limit:      limit,
	}
}

// ToSQL builds the full SELECT with WHERE, ORDER BY, LIMIT and OFFSET and
// returns it with its positional parameters. Make and fuel type compare
// case-insensitively; model matches as a case-insensitive substring. Rows
// with a NULL in a range-filtered column are excluded.
func (q *VehicleQuery) ToSQL() (dataSQL string, args []any) {
	var conditions []string
	add := func(format string, v any) {
		args = append(args, v)
		conditions = append(conditions, fmt.Sprintf(format, len(args)))
	}

	if q.Make != "" {
		add("lower(make) = lower($%d)", q.Make)
	}
	if q.Model != "" {
		add(`model ILIKE '%%' || $%d || '%%'`, escapeLike(q.Model))
	}
	if q.FuelType != "" {
		add("lower(fuel_type) = lower($%d)", q.FuelType)
	}
	if q.YearMin != nil {
		add("year >= $%d", *q.YearMin)
	}
	if q.YearMax != nil {
		add("year <= $%d", *q.YearMax)
	}
	if q.PriceMin != nil {
		add("price >= $%d", *q.PriceMin)
	}
	if q.PriceMax != nil {
		add("price <= $%d", *q.PriceMax)
	}
	if q.MileageMax != nil {
		add("mileage <= $%d", *q.MileageMax)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY cached_at DESC, id DESC LIMIT %d OFFSET %d",
		baseVehiclesSelect, whereClause, limit, offset,
	)
	return dataSQL, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
