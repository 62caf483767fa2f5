// Package client is a Go client for the CrowdSpark API. Every call takes a
// context so callers can cancel in-flight requests on teardown, and responses
// are normalized so consumers never see nil slices or dangling references.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Client talks to a CrowdSpark server. The zero value is not usable; construct
// with New.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// User mirrors the server's user payload.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	IsActive      bool      `json:"isActive"`
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
	DonationCount int       `json:"donationCount"`
	TotalDonated  float64   `json:"totalDonated"`
}

// Campaign mirrors the server's campaign payload.
type Campaign struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Organizer       string    `json:"organizer"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	TargetAmount    float64   `json:"targetAmount"`
	CollectedAmount float64   `json:"collectedAmount"`
	StartDate       *string   `json:"startDate"`
	EndDate         *string   `json:"endDate"`
	IsActive        bool      `json:"isActive"`
	Images          []string  `json:"images"`
	Progress        float64   `json:"progress"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Ref names a related record on a donation. A nil Ref means the record was
// deleted after the donation was made.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Donation mirrors the server's donation payload.
type Donation struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"`
	Campaign  *Ref      `json:"campaign"`
	User      *Ref      `json:"user"`
	Message   string    `json:"message"`
	PaymentID string    `json:"paymentId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CampaignName returns the referenced campaign name, or empty when the
// campaign no longer exists.
func (d Donation) CampaignName() string {
	if d.Campaign == nil {
		return ""
	}
	return d.Campaign.Name
}

// LoginResult is the server's response to a successful login. ExpiresAt is a
// unix timestamp.
type LoginResult struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	User      User   `json:"user"`
}

// APIError is a non-2xx server response carrying the server's message body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		_ = json.Unmarshal(raw, &payload)
		return &APIError{Status: resp.StatusCode, Message: payload.Message}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Login authenticates and returns the session token. The returned client is
// unchanged; call WithToken on a new client to use the token.
func (c *Client) Login(ctx context.Context, email, password string, rememberMe bool) (LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/api/users/login", map[string]any{
		"email":      email,
		"password":   password,
		"rememberMe": rememberMe,
	}, &result)
	return result, err
}

// Campaigns fetches all campaigns, with optional query filters
// (search, status, category, from, to).
func (c *Client) Campaigns(ctx context.Context, query map[string]string) ([]Campaign, error) {
	var campaigns []Campaign
	if err := c.do(ctx, http.MethodGet, "/api/campaigns/get-all"+encodeQuery(query), nil, &campaigns); err != nil {
		return nil, err
	}
	for i := range campaigns {
		if campaigns[i].Images == nil {
			campaigns[i].Images = []string{}
		}
	}
	return campaigns, nil
}

// Campaign fetches one campaign by id.
func (c *Client) Campaign(ctx context.Context, id string) (Campaign, error) {
	var campaign Campaign
	err := c.do(ctx, http.MethodGet, "/api/campaigns/get/"+id, nil, &campaign)
	if err == nil && campaign.Images == nil {
		campaign.Images = []string{}
	}
	return campaign, err
}

// Donations fetches all donations, with optional query filters
// (search, campaign, period, from, to).
func (c *Client) Donations(ctx context.Context, query map[string]string) ([]Donation, error) {
	var donations []Donation
	if err := c.do(ctx, http.MethodGet, "/api/donations/get-all"+encodeQuery(query), nil, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

// DonationsByUser fetches a single user's donations.
func (c *Client) DonationsByUser(ctx context.Context, userID string) ([]Donation, error) {
	var donations []Donation
	err := c.do(ctx, http.MethodGet, "/api/donations/get-donations-by-user/"+userID, nil, &donations)
	return donations, err
}

// Dashboard bundles the two collections admin views load together.
type Dashboard struct {
	Campaigns []Campaign
	Donations []Donation
}

// LoadDashboard fetches campaigns and donations concurrently. Either failure
// cancels the other request.
func (c *Client) LoadDashboard(ctx context.Context) (Dashboard, error) {
	var dashboard Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		campaigns, err := c.Campaigns(ctx, nil)
		dashboard.Campaigns = campaigns
		return err
	})
	g.Go(func() error {
		donations, err := c.Donations(ctx, nil)
		dashboard.Donations = donations
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return dashboard, nil
}

// CreateDonation records a donation after payment confirmation.
func (c *Client) CreateDonation(ctx context.Context, campaignID string, amount float64, message, paymentID string) (Donation, error) {
	var donation Donation
	err := c.do(ctx, http.MethodPost, "/api/donations/create", map[string]any{
		"campaignId": campaignID,
		"amount":     amount,
		"message":    message,
		"paymentId":  paymentID,
	}, &donation)
	return donation, err
}

// CreatePaymentIntent asks the server for a payment client secret.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount float64, campaignID string) (string, error) {
	var resp struct {
		ClientSecret string `json:"clientSecret"`
	}
	err := c.do(ctx, http.MethodPost, "/api/payments/create-payment-intent", map[string]any{
		"amount":     amount,
		"campaignId": campaignID,
	}, &resp)
	return resp.ClientSecret, err
}

func encodeQuery(query map[string]string) string {
	values := url.Values{}
	for key, value := range query {
		if value != "" {
			values.Set(key, value)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
