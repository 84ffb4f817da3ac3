package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fieldops/internal/domain"
	"fieldops/internal/domain/discount"
	"fieldops/internal/modules/quote"
)

const defaultRequestTimeout = 15 * time.Second

// Client talks to the quote service over HTTP. It implements QuoteAPI.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}
}

// envelope is the service's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	var q domain.Quote
	if err := c.do(ctx, http.MethodGet, "/api/v1/quotes/"+id, nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) GetLeadQuote(ctx context.Context, leadID string) (*domain.Quote, error) {
	var q domain.Quote
	if err := c.do(ctx, http.MethodGet, "/api/v1/leads/"+leadID+"/quote", nil, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) UpdateQuote(ctx context.Context, id string, req quote.UpdateQuoteRequest) (*domain.Quote, error) {
	var q domain.Quote
	if err := c.do(ctx, http.MethodPut, "/api/v1/quotes/"+id, req, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (c *Client) DeleteLineItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/quote-line-items/"+id, nil, nil)
}

func (c *Client) AvailableDiscounts(ctx context.Context, companyID, planID string, isManager bool) ([]discount.Discount, error) {
	q := url.Values{}
	if planID != "" {
		q.Set("planId", planID)
	}
	q.Set("userIsManager", strconv.FormatBool(isManager))
	path := "/api/v1/companies/" + companyID + "/discounts/available?" + q.Encode()

	var data struct {
		Discounts []discount.Discount `json:"discounts"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return data.Discounts, nil
}

func (c *Client) GetAddon(ctx context.Context, companyID, addonID string) (*domain.AddonService, error) {
	var data struct {
		Addon domain.AddonService `json:"addon"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/add-on-services/"+companyID+"/"+addonID, nil, &data); err != nil {
		return nil, err
	}
	return &data.Addon, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		if env.Error != nil {
			return fmt.Errorf("%s: %s", env.Error.Code, env.Error.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}
