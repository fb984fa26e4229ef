package extract

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	domain "github.com/donaldgifford/carfinder/pkg/types"
)

// SystemPrompt frames every preference extraction request.
const SystemPrompt = "You turn car shoppers' messages into search filters. " +
	"You answer with JSON only and never invent values the shopper did not state."

const preferencesTmpl = `Extract car shopping preferences from the message below.
Respond ONLY with a JSON object matching the schema. Leave out any field
the message does not mention.

Message: {{.Text}}

Schema:
{
  "make": string,
  "model": string,
  "year_min": integer,
  "year_max": integer,
  "budget_max": number (US dollars),
  "mileage_max": integer,
  "location": string (5-digit US ZIP code),
  "radius": integer (miles),
  "fuel_type": {{.FuelTypes}},
  "vehicle_type": {{.VehicleTypes}},
  "truck_class": "1500" | "2500" | "3500",
  "desired_features": [string]
}`

// PromptData holds the template variables for the preferences prompt.
type PromptData struct {
	Text         string
	FuelTypes    string
	VehicleTypes string
}

var preferencesTemplate = template.Must(template.New("preferences").Parse(preferencesTmpl))

func quoteAlternatives[T ~string](vals []T) string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprintf("%q", string(v))
	}
	return strings.Join(out, " | ")
}

// RenderPreferencesPrompt renders the extraction prompt for one message.
func RenderPreferencesPrompt(text string) (string, error) {
	var buf bytes.Buffer
	data := PromptData{
		Text:         strings.TrimSpace(text),
		FuelTypes:    quoteAlternatives(FuelTypes),
		VehicleTypes: quoteAlternatives(domain.AllVehicleTypes()),
	}
	if err := preferencesTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering preferences prompt: %w", err)
	}
	return buf.String(), nil
}
