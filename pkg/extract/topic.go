package extract

import "strings"

// Topic is what a chat message is mostly about.
type Topic string

// Topic constants.
const (
	TopicBudget      Topic = "budget"
	TopicVehicleType Topic = "vehicle_type"
	TopicFuel        Topic = "fuel"
	TopicFeatures    Topic = "features"
	TopicSearch      Topic = "search"
	TopicGeneral     Topic = "general"
)

var topicRules = []struct {
	topic Topic
	words []string
}{
	{TopicBudget, []string{"budget", "price", "cost", "afford"}},
	{TopicVehicleType, []string{"suv", "sedan", "truck", "car type"}},
	{TopicFuel, []string{"gas", "fuel", "mpg", "economy", "efficient"}},
	{TopicFeatures, []string{"features", "options", "tech", "safety"}},
	{TopicSearch, []string{"search", "find", "show", "ready", "look"}},
}

// DetectTopic classifies a message by the first matching keyword group.
func DetectTopic(text string) Topic {
	t := strings.ToLower(text)
	for _, r := range topicRules {
		for _, w := range r.words {
			if strings.Contains(t, w) {
				return r.topic
			}
		}
	}
	return TopicGeneral
}
