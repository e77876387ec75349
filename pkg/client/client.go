package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pharma-service/internal/model"
)

// Client is the API wrapper the mobile screens call. After Login it caches
// the session token plus the signed-in role and email and sends the token on
// every subsequent request.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// session cache, populated by Login and cleared by Logout
	Token     string
	Role      string
	Email     string
	Dashboard string
}

// LoginResult is the successful login payload
type LoginResult struct {
	User      model.Record `json:"user"`
	Token     string       `json:"token"`
	Dashboard string       `json:"dashboard"`
	Message   string       `json:"message"`
}

// Stats mirrors the dashboard counters payload
type Stats = model.Stats

// apiError is returned for any non-success response
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// New creates a client for the given server base URL
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// envelope is the shared response wrapper; payload keys vary per endpoint
type envelope struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Token     string         `json:"token"`
	Dashboard string         `json:"dashboard"`
	User      model.Record   `json:"user"`
	Users     []model.Record `json:"users"`
	Medicine  model.Record   `json:"medicine"`
	Medicines []model.Record `json:"medicines"`
	Order     model.Record   `json:"order"`
	Orders    []model.Record `json:"orders"`
	Report    model.Record   `json:"report"`
	Reports   []model.Record `json:"reports"`
	Stats     *model.Stats   `json:"stats"`
	Timestamp string         `json:"timestamp"`
}

func (c *Client) do(method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 || !env.Success {
		return nil, &apiError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return &env, nil
}

// Login authenticates and caches the session
func (c *Client) Login(email, password, role string) (*LoginResult, error) {
	env, err := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
		"role":     role,
	})
	if err != nil {
		return nil, err
	}

	c.Token = env.Token
	c.Email = email
	c.Role = role
	c.Dashboard = env.Dashboard

	return &LoginResult{
		User:      env.User,
		Token:     env.Token,
		Dashboard: env.Dashboard,
		Message:   env.Message,
	}, nil
}

// Logout clears the cached session
func (c *Client) Logout() {
	c.Token = ""
	c.Email = ""
	c.Role = ""
	c.Dashboard = ""
}

// Register creates a new account
func (c *Client) Register(email, password, role, name, phone string) (model.Record, error) {
	env, err := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"role":     role,
		"name":     name,
		"phone":    phone,
	})
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *Client) ListUsers() ([]model.Record, error) {
	env, err := c.do(http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}
	return env.Users, nil
}

func (c *Client) GetUser(id string) (model.Record, error) {
	env, err := c.do(http.MethodGet, "/api/users/"+id, nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *Client) UpdateUser(id string, fields model.Record) (model.Record, error) {
	env, err := c.do(http.MethodPut, "/api/users/"+id, fields)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *Client) DeleteUser(id string) error {
	_, err := c.do(http.MethodDelete, "/api/users/"+id, nil)
	return err
}

func (c *Client) ListMedicines() ([]model.Record, error) {
	env, err := c.do(http.MethodGet, "/api/medicines", nil)
	if err != nil {
		return nil, err
	}
	return env.Medicines, nil
}

func (c *Client) GetMedicine(id string) (model.Record, error) {
	env, err := c.do(http.MethodGet, "/api/medicines/"+id, nil)
	if err != nil {
		return nil, err
	}
	return env.Medicine, nil
}

func (c *Client) CreateMedicine(fields model.Record) (model.Record, error) {
	env, err := c.do(http.MethodPost, "/api/medicines", fields)
	if err != nil {
		return nil, err
	}
	return env.Medicine, nil
}

func (c *Client) UpdateMedicine(id string, fields model.Record) (model.Record, error) {
	env, err := c.do(http.MethodPut, "/api/medicines/"+id, fields)
	if err != nil {
		return nil, err
	}
	return env.Medicine, nil
}

func (c *Client) DeleteMedicine(id string) error {
	_, err := c.do(http.MethodDelete, "/api/medicines/"+id, nil)
	return err
}

func (c *Client) ListOrders() ([]model.Record, error) {
	env, err := c.do(http.MethodGet, "/api/orders", nil)
	if err != nil {
		return nil, err
	}
	return env.Orders, nil
}

func (c *Client) GetOrder(id string) (model.Record, error) {
	env, err := c.do(http.MethodGet, "/api/orders/"+id, nil)
	if err != nil {
		return nil, err
	}
	return env.Order, nil
}

func (c *Client) CreateOrder(fields model.Record) (model.Record, error) {
	env, err := c.do(http.MethodPost, "/api/orders", fields)
	if err != nil {
		return nil, err
	}
	return env.Order, nil
}

func (c *Client) UpdateOrder(id string, fields model.Record) (model.Record, error) {
	env, err := c.do(http.MethodPut, "/api/orders/"+id, fields)
	if err != nil {
		return nil, err
	}
	return env.Order, nil
}

func (c *Client) ListReports() ([]model.Record, error) {
	env, err := c.do(http.MethodGet, "/api/reports", nil)
	if err != nil {
		return nil, err
	}
	return env.Reports, nil
}

func (c *Client) CreateReport(fields model.Record) (model.Record, error) {
	env, err := c.do(http.MethodPost, "/api/reports", fields)
	if err != nil {
		return nil, err
	}
	return env.Report, nil
}

// DashboardStats fetches the aggregated dashboard counters
func (c *Client) DashboardStats() (*Stats, error) {
	env, err := c.do(http.MethodGet, "/api/stats/dashboard", nil)
	if err != nil {
		return nil, err
	}
	return env.Stats, nil
}

// Health checks the server health endpoint
func (c *Client) Health() (string, error) {
	env, err := c.do(http.MethodGet, "/api/health", nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
