package extraction

import (
	"strings"

	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

var sectionHeaders = map[types.Section]string{
	types.SectionMorning: "Morning:",
	types.SectionLunch:   "Lunch:",
	types.SectionDinner:  "Dinner:",
}

// RenderCity writes a record back as a narrative block in the layout the
// extractor reads: the city marker, then one header and bullet list per section.
func RenderCity(city string, rec types.CityRecord) string {
	var sb strings.Builder
	sb.WriteString(Marker(city))
	sb.WriteString("\n\n")
	for _, s := range types.Sections {
		sb.WriteString(sectionHeaders[s])
		sb.WriteByte('\n')
		for _, entry := range rec.Itinerary.Get(s) {
			sb.WriteString(bulletMarker)
			sb.WriteString(entry)
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderDocument renders every record and joins them with a rule, in order.
func RenderDocument(records types.CityRecords) types.NarrativeDocument {
	blocks := make([]string, 0, len(records))
	for _, ct := range records {
		blocks = append(blocks, RenderCity(ct.City, ct.Record))
	}
	return types.NarrativeDocument{
		Narrative: strings.Join(blocks, NarrativeSeparator),
		Cities:    records.Cities(),
	}
}

// NarrativeSeparator is the rule placed between per-city narratives.
const NarrativeSeparator = "\n\n---\n\n"
