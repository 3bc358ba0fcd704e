package extraction

import "strings"

// CitySegment is the slice of the narrative attributed to one city.
type CitySegment struct {
	City        string
	Text        string
	MarkerFound bool
}

// Marker returns the header marker a city is announced with in a narrative.
func Marker(city string) string {
	return strings.ToUpper(city)
}

// Segment cuts the narrative into one contiguous block per city. Block i
// starts at city i's marker (the first block starts at the beginning of the
// narrative) and ends right before the next found marker, so the blocks
// concatenate back into the narrative. A city whose marker is absent gets an
// empty block and the preceding block absorbs its text.
func Segment(narrative string, cities []string) []CitySegment {
	if len(cities) == 0 {
		return nil
	}

	cuts := make([]int, len(cities))
	found := make([]bool, len(cities))
	found[0] = true
	from := 0
	for i := 1; i < len(cities); i++ {
		marker := Marker(cities[i])
		idx := -1
		if marker != "" {
			idx = strings.Index(narrative[from:], marker)
		}
		if idx < 0 {
			cuts[i] = -1
			continue
		}
		cuts[i] = from + idx
		found[i] = true
		from = cuts[i] + len(marker)
	}

	// missing cuts collapse onto the next found one
	next := len(narrative)
	for i := len(cities) - 1; i >= 1; i-- {
		if cuts[i] < 0 {
			cuts[i] = next
		} else {
			next = cuts[i]
		}
	}

	segments := make([]CitySegment, len(cities))
	for i, city := range cities {
		end := len(narrative)
		if i+1 < len(cities) {
			end = cuts[i+1]
		}
		segments[i] = CitySegment{
			City:        city,
			Text:        narrative[cuts[i]:end],
			MarkerFound: found[i],
		}
	}
	return segments
}
