package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	apiclient "github.com/donaldgifford/carfinder/internal/api/client"
	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// searchFlags holds the preference flags shared by search and refresh.
type searchFlags struct {
	makeName    string
	model       string
	budget      float64
	yearMin     int
	yearMax     int
	mileageMax  int
	fuel        string
	vehicleType string
	truckClass  string
	location    string
	radius      int
	limit       int
}

func (f *searchFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.makeName, "make", "", "vehicle make")
	fs.StringVar(&f.model, "model", "", "vehicle model")
	fs.Float64Var(&f.budget, "budget", 0, "maximum price")
	fs.IntVar(&f.yearMin, "year-min", 0, "oldest model year")
	fs.IntVar(&f.yearMax, "year-max", 0, "newest model year")
	fs.IntVar(&f.mileageMax, "mileage-max", 0, "maximum mileage")
	fs.StringVar(&f.fuel, "fuel", "", "fuel type (Gasoline, Hybrid, Electric, Diesel)")
	fs.StringVar(&f.vehicleType, "type", "", "vehicle type (sedan, suv, truck, coupe, hatchback, wagon)")
	fs.StringVar(&f.truckClass, "truck-class", "", "truck class (1500, 2500, 3500)")
	fs.StringVar(&f.location, "location", "", "zip code to search around")
	fs.IntVar(&f.radius, "radius", 0, "search radius in miles")
	fs.IntVar(&f.limit, "limit", 0, "maximum number of results")
}

// apply overlays the flags that were set on p.
func (f *searchFlags) apply(fs *pflag.FlagSet, p *domain.PreferenceSet) {
	if fs.Changed("make") {
		p.Make = f.makeName
	}
	if fs.Changed("model") {
		p.Model = f.model
	}
	if fs.Changed("budget") {
		p.BudgetMax = &f.budget
	}
	if fs.Changed("year-min") {
		p.YearMin = &f.yearMin
	}
	if fs.Changed("year-max") {
		p.YearMax = &f.yearMax
	}
	if fs.Changed("mileage-max") {
		p.MileageMax = &f.mileageMax
	}
	if fs.Changed("fuel") {
		p.FuelType = f.fuel
	}
	if fs.Changed("type") {
		p.VehicleType = domain.VehicleType(strings.ToLower(f.vehicleType))
	}
	if fs.Changed("truck-class") {
		p.TruckClass = f.truckClass
	}
	if fs.Changed("location") {
		p.Location = f.location
	}
	if fs.Changed("radius") {
		p.Radius = &f.radius
	}
	if fs.Changed("limit") {
		p.Limit = f.limit
	}
}

func searchCmd() *cobra.Command {
	var (
		flags searchFlags
		live  bool
	)

	cmd := &cobra.Command{
		Use:   "search [description]",
		Short: "Search used car listings",
		Long: "Searches the listing cache, or the live providers with --live.\n" +
			"A free-text description is parsed into preferences first; flags override it.",
		Example: `  cf search "hybrid sedan under 25k"
  cf search --make Toyota --budget 30000 --live
  cf search "three-quarter-ton pickup near 75201" --limit 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()

			var prefs domain.PreferenceSet
			if len(args) == 1 {
				ext, err := c.Extract(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				prefs = ext.Preferences
			}
			flags.apply(cmd.Flags(), &prefs)

			req := &apiclient.SearchRequest{Preferences: prefs}
			if cmd.Flags().Changed("live") {
				req.UseLiveData = &live
			}

			resp, err := c.Search(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, resp)
			}

			if len(resp.Results) == 0 {
				fmt.Fprintln(out, "No vehicles found.")
				return nil
			}

			fmt.Fprintf(out, "Found %d vehicles\n\n", resp.Total)
			return printResultsTable(out, resp.Results)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&live, "live", false, "query live providers instead of the cache")

	return cmd
}
