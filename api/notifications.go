package api

import (
	"context"

	"rentacar/models"
)

// Notifications returns the authenticated user's inbox, newest first.
func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := c.get(ctx, "/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/notifications/unread-count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.put(ctx, "/notifications/"+id+"/read", nil, nil)
}

// MarkAllNotificationsRead marks the whole inbox as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.put(ctx, "/notifications/read-all", nil, nil)
}
