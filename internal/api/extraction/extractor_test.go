package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-foodie-tour/internal/types"
)

func TestExtractor_ExtractCity(t *testing.T) {
	e := NewExtractor(DefaultDishKeywords())

	t.Run("bullet before any header is dropped", func(t *testing.T) {
		rec := e.ExtractCity("New York", "- Random note\nLunch:\n- Pizza at Joe's")

		assert.Equal(t, []string{"Pizza at Joe's"}, rec.Itinerary.Lunch)
		assert.Empty(t, rec.Itinerary.Morning)
		assert.Empty(t, rec.Itinerary.Dinner)
		assert.Equal(t, []string{"Joe's"}, rec.Restaurants)
		assert.Equal(t, []string{"Pizza at Joe's"}, rec.Dishes)
		require.Len(t, rec.Warnings, 1)
		assert.Equal(t, types.WarningMalformedBullet, rec.Warnings[0].Kind)
	})

	t.Run("croissant at a café", func(t *testing.T) {
		rec := e.ExtractCity("Paris", "Morning:\n- Croissant at Café de Flore")

		assert.Equal(t, []string{"Croissant at Café de Flore"}, rec.Itinerary.Morning)
		assert.Equal(t, []string{"Café de Flore"}, rec.Restaurants)
		assert.Equal(t, []string{"Croissant at Café de Flore"}, rec.Dishes)
		assert.Empty(t, rec.Warnings)
	})

	t.Run("from delimiter", func(t *testing.T) {
		rec := e.ExtractCity("Tokyo", "Dinner:\n- Ramen from Ichiran")

		assert.Equal(t, []string{"Ichiran"}, rec.Restaurants)
		assert.Equal(t, []string{"Ramen from Ichiran"}, rec.Dishes)
		assert.Equal(t, []string{"Ramen from Ichiran"}, rec.Itinerary.Dinner)
	})

	t.Run("every section is present on empty input", func(t *testing.T) {
		rec := e.ExtractCity("Paris", "")

		assert.NotNil(t, rec.Itinerary.Morning)
		assert.NotNil(t, rec.Itinerary.Lunch)
		assert.NotNil(t, rec.Itinerary.Dinner)
		assert.NotNil(t, rec.Dishes)
		assert.NotNil(t, rec.Restaurants)
	})

	t.Run("header keywords in precedence order", func(t *testing.T) {
		block := `Breakfast and Lunch ideas
- Bagel with lox
Lunch & Dinner
- Pizza slice
Evening stroll
- Cheesecake`
		rec := e.ExtractCity("New York", block)

		assert.Equal(t, []string{"Bagel with lox"}, rec.Itinerary.Morning)
		assert.Equal(t, []string{"Pizza slice"}, rec.Itinerary.Lunch)
		assert.Equal(t, []string{"Cheesecake"}, rec.Itinerary.Dinner)
	})

	t.Run("header keywords are case sensitive", func(t *testing.T) {
		rec := e.ExtractCity("Paris", "Lunch:\nthe morning light\n- Crepe at Breizh Café")

		assert.Equal(t, []string{"Crepe at Breizh Café"}, rec.Itinerary.Lunch)
		assert.Empty(t, rec.Itinerary.Morning)
	})

	t.Run("a header line is never content", func(t *testing.T) {
		rec := e.ExtractCity("Paris", "Morning:\n- Dinner reservation at Le Jules Verne")

		assert.Empty(t, rec.Itinerary.Morning)
		assert.Empty(t, rec.Itinerary.Dinner)
		assert.Empty(t, rec.Restaurants)
	})

	t.Run("lines are trimmed and non-bullets discarded", func(t *testing.T) {
		block := "   Lunch:   \n\n\t- Baguette sandwich at Du Pain et des Idées  \n* not a bullet\n-no space"
		rec := e.ExtractCity("Paris", block)

		assert.Equal(t, []string{"Baguette sandwich at Du Pain et des Idées"}, rec.Itinerary.Lunch)
		assert.Equal(t, []string{"Du Pain et des Idées"}, rec.Restaurants)
	})

	t.Run("dedup keeps first appearance across sections", func(t *testing.T) {
		block := `Morning:
- Bagel at Russ & Daughters
- Coffee at Joe's (West Village)
Lunch:
- Pizza at Joe's
- Bagel at Russ & Daughters
Dinner:
- Pastrami for dinner at Katz's
- Pastrami for a late bite at Katz's`
		rec := e.ExtractCity("New York", block)

		assert.Equal(t, []string{"Russ & Daughters", "Joe's", "Katz's"}, rec.Restaurants)
		assert.Equal(t, []string{"Bagel at Russ & Daughters", "Pizza at Joe's", "Pastrami"}, rec.Dishes)
		assert.Equal(t, []string{"Pizza at Joe's", "Bagel at Russ & Daughters"}, rec.Itinerary.Lunch)
		assert.Len(t, rec.Itinerary.Dinner, 2)
	})

	t.Run("unknown city degrades to no dishes", func(t *testing.T) {
		rec := e.ExtractCity("Lisbon", "Morning:\n- Pastel de nata at Manteigaria")

		assert.Empty(t, rec.Dishes)
		assert.Equal(t, []string{"Manteigaria"}, rec.Restaurants)
		require.Len(t, rec.Warnings, 1)
		assert.Equal(t, types.WarningUnknownCityKeywordSet, rec.Warnings[0].Kind)
	})

	t.Run("state resets between blocks", func(t *testing.T) {
		_ = e.ExtractCity("Paris", "Dinner:\n- Escargot at Chez Paul")
		rec := e.ExtractCity("Paris", "- Crepe at Breizh Café")

		assert.Empty(t, rec.Itinerary.Dinner)
		assert.Empty(t, rec.Dishes)
	})
}

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor(DefaultDishKeywords())

	records := e.Extract(types.NarrativeDocument{
		Narrative: threeCityNarrative,
		Cities:    []string{"Paris", "New York", "Tokyo"},
	})

	require.Len(t, records, 3)
	assert.Equal(t, []string{"Paris", "New York", "Tokyo"}, records.Cities())

	paris, ok := records.Get("Paris")
	require.True(t, ok)
	assert.Equal(t, []string{"Café de Flore"}, paris.Restaurants)
	assert.Equal(t, []string{"Croissant at Café de Flore"}, paris.Dishes)

	ny, _ := records.Get("New York")
	assert.Equal(t, []string{"Katz's Delicatessen"}, ny.Restaurants)
	assert.Equal(t, []string{"Pastrami sandwich at Katz's Delicatessen"}, ny.Itinerary.Lunch)

	tokyo, _ := records.Get("Tokyo")
	assert.Equal(t, []string{"Ichiran"}, tokyo.Restaurants)
	assert.Equal(t, []string{"Ramen from Ichiran"}, tokyo.Dishes)

	t.Run("missing marker is reported on the affected city", func(t *testing.T) {
		records := e.Extract(types.NarrativeDocument{
			Narrative: "PARIS\nMorning:\n- Croissant at Café de Flore",
			Cities:    []string{"Paris", "Tokyo"},
		})

		tokyo, ok := records.Get("Tokyo")
		require.True(t, ok)
		require.NotEmpty(t, tokyo.Warnings)
		assert.Equal(t, types.WarningMissingCityMarker, tokyo.Warnings[0].Kind)

		paris, _ := records.Get("Paris")
		assert.Empty(t, paris.Warnings)
		assert.Equal(t, []string{"Café de Flore"}, paris.Restaurants)
	})
}

func TestRenderRoundTrip(t *testing.T) {
	e := NewExtractor(DefaultDishKeywords())
	doc := types.NarrativeDocument{
		Narrative: threeCityNarrative,
		Cities:    []string{"Paris", "New York", "Tokyo"},
	}
	first := e.Extract(doc)

	second := e.Extract(RenderDocument(first))

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].City, second[i].City)
		assert.Equal(t, first[i].Record.Dishes, second[i].Record.Dishes)
		assert.Equal(t, first[i].Record.Restaurants, second[i].Record.Restaurants)
		assert.Equal(t, first[i].Record.Itinerary, second[i].Record.Itinerary)
	}
}

func BenchmarkExtract(b *testing.B) {
	e := NewExtractor(DefaultDishKeywords())
	doc := types.NarrativeDocument{
		Narrative: threeCityNarrative,
		Cities:    []string{"Paris", "New York", "Tokyo"},
	}
	b.ReportAllocs()
	for b.Loop() {
		e.Extract(doc)
	}
}
