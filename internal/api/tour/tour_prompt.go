package tour

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

const (
	diningOutdoor = "outdoor"
	diningIndoor  = "indoor"
)

// recommendDining suggests outdoor dining only for warm, dry weather.
func recommendDining(w types.Weather) string {
	if w.TempC > 18 && (w.Condition == "Clear" || w.Condition == "Clouds") {
		return diningOutdoor
	}
	return diningIndoor
}

func getFoodieTourPrompt(city string, weather *types.Weather, dishes []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You're a travel writer crafting a delightful one-day foodie tour in %s.\n", city)

	if weather != nil {
		desc := weather.Description
		if desc == "" {
			desc = strings.ToLower(weather.Condition)
		}
		fmt.Fprintf(&sb, "The weather today is %s with a temperature of %.1f°C. ", desc, weather.TempC)
		fmt.Fprintf(&sb, "Dining should be %s today; say so in the narrative.\n", recommendDining(*weather))
	}

	if len(dishes) > 0 {
		fmt.Fprintf(&sb, "Recommend breakfast, lunch and dinner options based on these iconic dishes: %s.\n", strings.Join(dishes, ", "))
	} else {
		fmt.Fprintf(&sb, "Recommend breakfast, lunch and dinner options based on 3 iconic local dishes from %s.\n", city)
	}

	fmt.Fprintf(&sb, `Write a charming narrative for the foodie journey using exactly this layout:
%s
Breakfast:
- <dish> at <restaurant>
Lunch:
- <dish> at <restaurant>
Dinner:
- <dish> at <restaurant>
Start the first line with the city name in capital letters. Every recommendation is a line starting with "- ".
Do not use the words Morning, Breakfast, Lunch, Dinner or Evening inside a recommendation line.
Do not mention other cities in capital letters.`, strings.ToUpper(city))
	return sb.String()
}

// ensureMarker prefixes a generated narrative with the city marker when the
// model left it out, so the narrative can still be segmented.
func ensureMarker(marker, narrative string) string {
	narrative = strings.TrimSpace(narrative)
	if strings.Contains(narrative, marker) {
		return narrative
	}
	return marker + "\n" + narrative
}
