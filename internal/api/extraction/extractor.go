package extraction

import (
	"fmt"

	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

// Extractor turns city narratives into CityRecords using a dish keyword table.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	keywords DishKeywordTable
}

func NewExtractor(keywords DishKeywordTable) *Extractor {
	return &Extractor{keywords: keywords}
}

// Keywords returns the table the extractor matches dishes against.
func (e *Extractor) Keywords() DishKeywordTable {
	return e.keywords
}

// Extract segments the document and extracts every city in caller order.
func (e *Extractor) Extract(doc types.NarrativeDocument) types.CityRecords {
	segments := Segment(doc.Narrative, doc.Cities)
	records := make(types.CityRecords, 0, len(segments))
	for _, seg := range segments {
		rec := e.ExtractCity(seg.City, seg.Text)
		if !seg.MarkerFound {
			rec.Warnings = append([]types.ExtractionWarning{{
				Kind:   types.WarningMissingCityMarker,
				Detail: fmt.Sprintf("marker %q not found in narrative", Marker(seg.City)),
			}}, rec.Warnings...)
		}
		records = append(records, types.CityTour{City: seg.City, Record: rec})
	}
	return records
}

// ExtractCity runs the section state machine over one city block.
func (e *Extractor) ExtractCity(city, block string) types.CityRecord {
	b := newRecordBuilder()
	keywords, known := e.keywords.Lookup(city)
	if !known {
		b.warn(types.WarningUnknownCityKeywordSet, fmt.Sprintf("no dish keywords for city %q", city))
	}

	var c sectionClassifier
	for _, line := range lines(block) {
		kind, content := c.next(line)
		switch kind {
		case lineItem:
			section, _ := c.state.section()
			b.itinerary.Append(section, content)
			if name, ok := restaurantName(content); ok {
				b.addRestaurant(name)
			}
			if dish, ok := dishText(content, keywords); ok {
				b.addDish(dish)
			}
		case lineOrphanItem:
			b.warn(types.WarningMalformedBullet, fmt.Sprintf("bullet before any section header: %q", content))
		}
	}
	return b.record()
}

type recordBuilder struct {
	dishes      []string
	restaurants []string
	itinerary   types.Itinerary
	warnings    []types.ExtractionWarning
	seenDish    map[string]struct{}
	seenPlace   map[string]struct{}
}

func newRecordBuilder() *recordBuilder {
	return &recordBuilder{
		dishes:      []string{},
		restaurants: []string{},
		itinerary:   types.NewItinerary(),
		seenDish:    make(map[string]struct{}),
		seenPlace:   make(map[string]struct{}),
	}
}

func (b *recordBuilder) addDish(dish string) {
	if _, ok := b.seenDish[dish]; ok {
		return
	}
	b.seenDish[dish] = struct{}{}
	b.dishes = append(b.dishes, dish)
}

func (b *recordBuilder) addRestaurant(name string) {
	if _, ok := b.seenPlace[name]; ok {
		return
	}
	b.seenPlace[name] = struct{}{}
	b.restaurants = append(b.restaurants, name)
}

func (b *recordBuilder) warn(kind types.WarningKind, detail string) {
	b.warnings = append(b.warnings, types.ExtractionWarning{Kind: kind, Detail: detail})
}

func (b *recordBuilder) record() types.CityRecord {
	return types.CityRecord{
		Dishes:      b.dishes,
		Restaurants: b.restaurants,
		Itinerary:   b.itinerary,
		Warnings:    b.warnings,
	}
}
