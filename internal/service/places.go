package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

var ErrMapsKeyMissing = errors.New("maps API key is not configured")

// Place is one nearby-search result, passed through verbatim.
type Place map[string]interface{}

type placesResponse struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message"`
	Results      []Place `json:"results"`
}

// PlacesClient searches for nearby clinics/hospitals via the maps API.
type PlacesClient interface {
	SearchNearby(ctx context.Context, location, radius, placeType string) ([]Place, error)
}

type placesClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewPlacesClient(baseURL, apiKey string) PlacesClient {
	return &placesClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
	}
}

func (c *placesClient) SearchNearby(ctx context.Context, location, radius, placeType string) ([]Place, error) {
	if c.apiKey == "" {
		return nil, ErrMapsKeyMissing
	}

	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return nil, errors.New("invalid location coordinates format, expected 'lat,lng'")
	}
	lat, latErr := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, lngErr := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if latErr != nil || lngErr != nil {
		return nil, errors.New("invalid location coordinates format, expected 'lat,lng'")
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%v,%v", lat, lng))
	params.Set("radius", radius)
	params.Set("type", placeType)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("maps request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed placesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	if parsed.Status != "OK" {
		msg := parsed.ErrorMessage
		if msg == "" {
			msg = "Unknown error"
		}
		return nil, fmt.Errorf("maps API error: %s - %s", parsed.Status, msg)
	}

	return parsed.Results, nil
}
