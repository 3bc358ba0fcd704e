package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoCities              = errors.New("at least one city is required")
	ErrDuplicateCity         = errors.New("duplicate city in request")
	ErrTourNotFound          = errors.New("tour not found")
	ErrGenerationUnavailable = errors.New("narrative generation is not configured")
)

// Section is one of the three meal buckets of a day itinerary.
type Section int

const (
	SectionMorning Section = iota
	SectionLunch
	SectionDinner
)

// Sections lists every Section in itinerary order.
var Sections = [...]Section{SectionMorning, SectionLunch, SectionDinner}

func (s Section) String() string {
	switch s {
	case SectionMorning:
		return "morning"
	case SectionLunch:
		return "lunch"
	case SectionDinner:
		return "dinner"
	default:
		return fmt.Sprintf("section(%d)", int(s))
	}
}

// Itinerary holds exactly one ordered entry list per Section.
type Itinerary struct {
	Morning []string `json:"morning"`
	Lunch   []string `json:"lunch"`
	Dinner  []string `json:"dinner"`
}

// NewItinerary returns an itinerary whose sections are empty but non-nil.
func NewItinerary() Itinerary {
	return Itinerary{Morning: []string{}, Lunch: []string{}, Dinner: []string{}}
}

// Get returns the entries of a section.
func (it Itinerary) Get(s Section) []string {
	switch s {
	case SectionMorning:
		return it.Morning
	case SectionLunch:
		return it.Lunch
	case SectionDinner:
		return it.Dinner
	}
	return nil
}

// Append adds content to the given section.
func (it *Itinerary) Append(s Section, content string) {
	switch s {
	case SectionMorning:
		it.Morning = append(it.Morning, content)
	case SectionLunch:
		it.Lunch = append(it.Lunch, content)
	case SectionDinner:
		it.Dinner = append(it.Dinner, content)
	}
}

type WarningKind string

const (
	WarningMissingCityMarker     WarningKind = "missing_city_marker"
	WarningUnknownCityKeywordSet WarningKind = "unknown_city_keyword_set"
	WarningMalformedBullet       WarningKind = "malformed_bullet"
)

// ExtractionWarning is a non-fatal condition met while extracting one city.
type ExtractionWarning struct {
	Kind   WarningKind `json:"kind"`
	Detail string      `json:"detail"`
}

// NarrativeDocument is the raw narrative plus the ordered cities it covers.
type NarrativeDocument struct {
	Narrative string   `json:"narrative"`
	Cities    []string `json:"cities"`
}

// CityRecord is the structured result extracted from one city's block.
type CityRecord struct {
	Dishes      []string            `json:"dishes"`
	Restaurants []string            `json:"restaurants"`
	Itinerary   Itinerary           `json:"itinerary"`
	Warnings    []ExtractionWarning `json:"warnings,omitempty"`
}

type CityTour struct {
	City   string
	Record CityRecord
}

// CityRecords is an ordered mapping from city name to record. It encodes as
// a JSON object whose keys keep the order of the slice.
type CityRecords []CityTour

// Get looks up a city's record.
func (c CityRecords) Get(city string) (CityRecord, bool) {
	for _, ct := range c {
		if ct.City == city {
			return ct.Record, true
		}
	}
	return CityRecord{}, false
}

func (c CityRecords) Cities() []string {
	cities := make([]string, 0, len(c))
	for _, ct := range c {
		cities = append(cities, ct.City)
	}
	return cities
}

// OrderedBy returns the records sorted to follow cities. Records whose city
// is not listed keep their relative order after the listed ones.
func (c CityRecords) OrderedBy(cities []string) CityRecords {
	if c == nil {
		return nil
	}
	out := make(CityRecords, 0, len(c))
	used := make([]bool, len(c))
	for _, city := range cities {
		for i, ct := range c {
			if !used[i] && ct.City == city {
				out = append(out, ct)
				used[i] = true
				break
			}
		}
	}
	for i, ct := range c {
		if !used[i] {
			out = append(out, ct)
		}
	}
	return out
}

func (c CityRecords) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ct := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ct.City)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(ct.Record)
		if err != nil {
			return nil, fmt.Errorf("failed to encode record for %s: %w", ct.City, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *CityRecords) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("city records: expected object, got %v", tok)
	}
	records := CityRecords{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		city, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("city records: expected string key, got %v", keyTok)
		}
		var rec CityRecord
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("city records: failed to decode %s: %w", city, err)
		}
		records = append(records, CityTour{City: city, Record: rec})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = records
	return nil
}

// TokenUsage mirrors the generation collaborator's usage counters.
type TokenUsage struct {
	CompletionTokens int `json:"completion_tokens"`
	PromptTokens     int `json:"prompt_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func (u TokenUsage) Add(o TokenUsage) TokenUsage {
	return TokenUsage{
		CompletionTokens: u.CompletionTokens + o.CompletionTokens,
		PromptTokens:     u.PromptTokens + o.PromptTokens,
		TotalTokens:      u.TotalTokens + o.TotalTokens,
	}
}

// Tour is a planned multi-city foodie tour.
type Tour struct {
	ID        uuid.UUID   `json:"id"`
	Cities    []string    `json:"cities"`
	Tours     CityRecords `json:"tours"`
	CreatedAt time.Time   `json:"created_at"`
	Usage     TokenUsage  `json:"usage"`
	Narrative string      `json:"narrative,omitempty"`
}

// TourExport is the document written to foodie_tours.json.
type TourExport struct {
	Cities    []string    `json:"cities"`
	Tours     CityRecords `json:"tours"`
	CreatedAt time.Time   `json:"created_at"`
	Usage     TokenUsage  `json:"usage"`
}

func (t Tour) Export() TourExport {
	return TourExport{
		Cities:    t.Cities,
		Tours:     t.Tours,
		CreatedAt: t.CreatedAt,
		Usage:     t.Usage,
	}
}

type TourSummary struct {
	ID        uuid.UUID  `json:"id"`
	Cities    []string   `json:"cities"`
	CreatedAt time.Time  `json:"created_at"`
	Usage     TokenUsage `json:"usage"`
}

type PaginatedTours struct {
	Tours    []TourSummary `json:"tours"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// Weather is the current weather of a city as reported by an external source.
type Weather struct {
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	TempC       float64 `json:"temp_c"`
}

type PlanTourRequest struct {
	Cities  []string           `json:"cities"`
	Weather map[string]Weather `json:"weather,omitempty"`
}

// Response is the envelope of every error reply.
type Response struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

type ExtractToursResponse struct {
	Tours CityRecords `json:"tours"`
}

// ValidateCities rejects empty and duplicate city lists.
func ValidateCities(cities []string) error {
	if len(cities) == 0 {
		return ErrNoCities
	}
	seen := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		if c == "" {
			return fmt.Errorf("%w: empty city name", ErrNoCities)
		}
		if _, ok := seen[c]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateCity, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}
