package catalog

import "rentacar/models"

// SearchStore holds the UI-selected search and filter parameters for one
// chat. Single-writer, like the session store: the bot serializes updates per
// chat.
type SearchStore struct {
	search  models.SearchParams
	filters models.FilterParams
}

// SetSearch merges the non-zero fields of p into the current search params.
func (s *SearchStore) SetSearch(p models.SearchParams) {
	if !p.PickupDate.IsZero() {
		s.search.PickupDate = p.PickupDate
	}
	if !p.ReturnDate.IsZero() {
		s.search.ReturnDate = p.ReturnDate
	}
	if p.PickupLocation != "" {
		s.search.PickupLocation = p.PickupLocation
	}
	if p.ReturnLocation != "" {
		s.search.ReturnLocation = p.ReturnLocation
	}
}

// SetFilters merges the non-zero fields of p into the current filter params.
func (s *SearchStore) SetFilters(p models.FilterParams) {
	if p.Segment != "" {
		s.filters.Segment = p.Segment
	}
	if p.Brand != "" {
		s.filters.Brand = p.Brand
	}
	if p.Transmission != "" {
		s.filters.Transmission = p.Transmission
	}
	if p.FuelType != "" {
		s.filters.FuelType = p.FuelType
	}
	if p.MinPrice > 0 {
		s.filters.MinPrice = p.MinPrice
	}
	if p.MaxPrice > 0 {
		s.filters.MaxPrice = p.MaxPrice
	}
	if p.Available != nil {
		s.filters.Available = p.Available
	}
	if p.SortBy != "" {
		s.filters.SortBy = p.SortBy
	}
	if p.SortOrder != "" {
		s.filters.SortOrder = p.SortOrder
	}
}

// Search returns the current search params.
func (s *SearchStore) Search() models.SearchParams { return s.search }

// Filters returns the current filter params.
func (s *SearchStore) Filters() models.FilterParams { return s.filters }

// ResetSearch clears the search params.
func (s *SearchStore) ResetSearch() { s.search = models.SearchParams{} }

// ResetFilters clears the filter params.
func (s *SearchStore) ResetFilters() { s.filters = models.FilterParams{} }
