package store

// SQL query constants. PostgresStore methods reference these.

const vehicleColumns = `id, source, external_id, make, model, COALESCE(year, 0),
	price, mileage, fuel_type, transmission, location,
	safety_rating, mpg_city, mpg_highway, COALESCE(vin, ''),
	description, features, images,
	dealer_name, dealer_phone, listing_url, listing_date, cached_at`

const baseVehiclesSelect = "SELECT " + vehicleColumns + "\nFROM vehicles"

const (
	queryGetVehicleByVIN = baseVehiclesSelect + `
		WHERE vin = $1`

	// Conflicts on either unique index mean the car is already cached; no
	// row is returned in that case.
	queryInsertVehicle = `
		INSERT INTO vehicles (
			source, external_id, make, model, year,
			price, mileage, fuel_type, transmission, location,
			safety_rating, mpg_city, mpg_highway, vin,
			description, features, images,
			dealer_name, dealer_phone, listing_url, listing_date, cached_at
		) VALUES (
			@source, @external_id, @make, @model, NULLIF(@year::int, 0),
			@price, @mileage, @fuel_type, @transmission, @location,
			@safety_rating, @mpg_city, @mpg_highway, NULLIF(@vin, ''),
			@description, @features, @images,
			@dealer_name, @dealer_phone, @listing_url, @listing_date, COALESCE(@cached_at::timestamptz, now())
		)
		ON CONFLICT DO NOTHING
		RETURNING id, cached_at`

	queryCountVehicles = `SELECT COUNT(*) FROM vehicles`
)
