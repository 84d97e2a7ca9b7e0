package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleListings() []Listing {
	return []Listing{
		{ID: "1", Title: "Sunny Flat", Price: 400, City: "Batumi", Type: "Rent", Rooms: "2",
			Amenities: []string{"WiFi", "Balcony"}, Heating: []string{"Central"}},
		{ID: "2", Title: "Loft", Price: 900, City: "Tbilisi", Type: "Sale", Rooms: "4+",
			Amenities: []string{"WiFi"}, Heating: []string{"Electric", "Central"}},
		{ID: "3", Title: "SUNNY studio", Price: 350, City: "Tbilisi", Type: "Rent", Rooms: "1"},
	}
}

func ids(listings []Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.ID
	}
	return out
}

func TestFilterListings_EmptyCriteriaIsIdentity(t *testing.T) {
	listings := sampleListings()

	got := FilterListings(listings, FilterCriteria{})

	assert.True(t, FilterCriteria{}.IsEmpty())
	assert.Equal(t, listings, got)
}

func TestFilterListings_Scenario(t *testing.T) {
	listings := []Listing{
		{ID: "1", Title: "Sunny Flat", Price: 400, City: "Batumi"},
		{ID: "2", Title: "Loft", Price: 900, City: "Tbilisi"},
	}

	got := FilterListings(listings, FilterCriteria{MaxPrice: ptr(500.0)})

	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilterListings_Predicates(t *testing.T) {
	testCases := []struct {
		name     string
		criteria FilterCriteria
		expected []string
	}{
		{name: "search is case insensitive", criteria: FilterCriteria{Search: "sunny"}, expected: []string{"1", "3"}},
		{name: "city", criteria: FilterCriteria{City: "Tbilisi"}, expected: []string{"2", "3"}},
		{name: "price bound is inclusive", criteria: FilterCriteria{MaxPrice: ptr(400.0)}, expected: []string{"1", "3"}},
		{name: "category", criteria: FilterCriteria{Category: "Rent"}, expected: []string{"1", "3"}},
		{name: "rooms", criteria: FilterCriteria{Rooms: "4+"}, expected: []string{"2"}},
		{name: "amenities superset", criteria: FilterCriteria{Amenities: []string{"WiFi", "Balcony"}}, expected: []string{"1"}},
		{name: "listing without amenities fails", criteria: FilterCriteria{Amenities: []string{"WiFi"}}, expected: []string{"1", "2"}},
		{name: "heating superset", criteria: FilterCriteria{Heating: []string{"Central"}}, expected: []string{"1", "2"}},
		{name: "unknown amenity", criteria: FilterCriteria{Amenities: []string{"Sauna"}}, expected: []string{}},
		{name: "combined", criteria: FilterCriteria{City: "Tbilisi", Category: "Rent", Search: "studio"}, expected: []string{"3"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterListings(sampleListings(), tc.criteria)
			require.NotNil(t, got)
			assert.Equal(t, tc.expected, ids(got))
		})
	}
}

func TestFilterListings_NoFalsePositives(t *testing.T) {
	criteria := FilterCriteria{City: "Tbilisi", MaxPrice: ptr(1000.0), Heating: []string{"Central"}}

	for _, l := range FilterListings(sampleListings(), criteria) {
		assert.True(t, criteria.Matches(l), "listing %s must satisfy every active predicate", l.ID)
	}
}

func TestFilterListings_DoesNotModifyInput(t *testing.T) {
	listings := sampleListings()
	before := sampleListings()

	_ = FilterListings(listings, FilterCriteria{Search: "loft"})

	assert.Equal(t, before, listings)
}
