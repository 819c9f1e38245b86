package api

import (
	"context"
	"net/url"
	"strconv"

	"rentacar/models"
)

// Vehicles lists the catalog with the given filters applied server-side.
func (c *Client) Vehicles(ctx context.Context, filters models.FilterParams) ([]models.Vehicle, error) {
	query := url.Values{}
	if filters.Segment != "" {
		query.Set("segment", filters.Segment)
	}
	if filters.Brand != "" {
		query.Set("brand", filters.Brand)
	}
	if filters.Transmission != "" {
		query.Set("transmission", filters.Transmission)
	}
	if filters.FuelType != "" {
		query.Set("fuel_type", filters.FuelType)
	}
	if filters.MinPrice > 0 {
		query.Set("min_price", strconv.FormatFloat(filters.MinPrice, 'f', -1, 64))
	}
	if filters.MaxPrice > 0 {
		query.Set("max_price", strconv.FormatFloat(filters.MaxPrice, 'f', -1, 64))
	}
	if filters.Available != nil {
		query.Set("available", strconv.FormatBool(*filters.Available))
	}
	if filters.SortBy != "" {
		query.Set("sort_by", filters.SortBy)
	}
	if filters.SortOrder != "" {
		query.Set("sort_order", filters.SortOrder)
	}

	var vehicles []models.Vehicle
	if err := c.get(ctx, "/vehicles", query, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Vehicle fetches a single vehicle by id.
func (c *Client) Vehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := c.get(ctx, "/vehicles/"+id, nil, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// PopularVehicles returns the backend's featured selection.
func (c *Client) PopularVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := c.get(ctx, "/vehicles/popular", nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}
