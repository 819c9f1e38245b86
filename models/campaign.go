package models

// Campaign is a promotional offer shown on the storefront home screen.
type Campaign struct {
	CampaignID      string `json:"campaign_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Image           string `json:"image"`
	DiscountPercent int    `json:"discount_percent"`
	ValidUntil      string `json:"valid_until"`
	Active          bool   `json:"active"`
}
