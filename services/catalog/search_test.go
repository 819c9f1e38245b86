package catalog

import (
	"testing"
	"time"

	"rentacar/models"
)

func TestSetSearchMergesNonZeroFields(t *testing.T) {
	store := &SearchStore{}
	pickup := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	store.SetSearch(models.SearchParams{PickupDate: pickup, PickupLocation: "Havalimanı"})
	store.SetSearch(models.SearchParams{ReturnLocation: "Merkez Ofis"})

	got := store.Search()
	if !got.PickupDate.Equal(pickup) {
		t.Errorf("pickup date lost on merge: %v", got.PickupDate)
	}
	if got.PickupLocation != "Havalimanı" {
		t.Errorf("pickup location lost on merge: %q", got.PickupLocation)
	}
	if got.ReturnLocation != "Merkez Ofis" {
		t.Errorf("return location not merged: %q", got.ReturnLocation)
	}
}

func TestSetFiltersMergesAndKeepsPrior(t *testing.T) {
	store := &SearchStore{}
	store.SetFilters(models.FilterParams{Segment: models.SegmentEconomy, MaxPrice: 1500})
	store.SetFilters(models.FilterParams{Transmission: "Otomatik"})

	got := store.Filters()
	if got.Segment != models.SegmentEconomy {
		t.Errorf("segment lost on merge: %q", got.Segment)
	}
	if got.MaxPrice != 1500 {
		t.Errorf("max price lost on merge: %v", got.MaxPrice)
	}
	if got.Transmission != "Otomatik" {
		t.Errorf("transmission not merged: %q", got.Transmission)
	}
}

func TestSetFiltersExplicitAvailableFalse(t *testing.T) {
	store := &SearchStore{}
	unavailable := false
	store.SetFilters(models.FilterParams{Available: &unavailable})

	got := store.Filters()
	if got.Available == nil || *got.Available != false {
		t.Errorf("explicit available=false was dropped: %v", got.Available)
	}
}

func TestResetClearsIndependently(t *testing.T) {
	store := &SearchStore{}
	store.SetSearch(models.SearchParams{PickupLocation: "Havalimanı"})
	store.SetFilters(models.FilterParams{Segment: models.SegmentSUV})

	store.ResetFilters()
	if store.Filters() != (models.FilterParams{}) {
		t.Errorf("filters not cleared: %+v", store.Filters())
	}
	if store.Search().PickupLocation != "Havalimanı" {
		t.Error("ResetFilters touched the search params")
	}

	store.ResetSearch()
	if store.Search() != (models.SearchParams{}) {
		t.Errorf("search not cleared: %+v", store.Search())
	}
}
