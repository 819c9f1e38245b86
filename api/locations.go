package api

import (
	"context"
	"net/url"

	"rentacar/models"
)

// Locations lists pickup/return branches, optionally filtered by city.
func (c *Client) Locations(ctx context.Context, city string) ([]models.Location, error) {
	query := url.Values{}
	if city != "" {
		query.Set("city", city)
	}
	var locations []models.Location
	if err := c.get(ctx, "/locations", query, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// Campaigns lists active promotional campaigns.
func (c *Client) Campaigns(ctx context.Context) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := c.get(ctx, "/campaigns", nil, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}
