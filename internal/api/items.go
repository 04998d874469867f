package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// ListItems fetches the catalog, optionally filtered by a search query.
func (c *Client) ListItems(ctx context.Context, query string) ([]Item, error) {
	var q url.Values
	if query != "" {
		q = url.Values{"q": []string{query}}
	}
	var out []Item
	if err := c.do(ctx, http.MethodGet, "/items", q, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ItemFields is the editable field set for catalog items. Price is a decimal
// string and is sent to the server as a JSON number.
type ItemFields struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
}

type itemEnvelope struct {
	Item ItemFields `json:"item"`
}

// CreateItem adds a catalog item (admin only).
func (c *Client) CreateItem(ctx context.Context, fields ItemFields) (*Item, error) {
	var out Item
	if err := c.do(ctx, http.MethodPost, "/items", nil, nil, itemEnvelope{Item: fields}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateItem edits a catalog item (admin only).
func (c *Client) UpdateItem(ctx context.Context, id int64, fields ItemFields) (*Item, error) {
	var out Item
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/items/%d", id), nil, nil, itemEnvelope{Item: fields}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteItem removes a catalog item (admin only).
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/items/%d", id), nil, nil, nil, nil)
}
