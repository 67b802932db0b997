// Package client is the persistence gateway for the data-entry form: it
// probes API connectivity and upserts budget records remotely, falling
// back to the local store when the server is unreachable.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"munibudget/internal/form"
	"munibudget/internal/localstore"
	"munibudget/internal/models"
)

// Status is the connectivity tri-state consumed by the UI.
type Status string

const (
	StatusChecking     Status = "checking"
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
)

// Outcome of a save: whether the record was inserted or updated.
const (
	OutcomeInserted = "inserted"
	OutcomeUpdated  = "updated"
)

// Storage modes a save can land in.
const (
	StorageRemote = "remote"
	StorageLocal  = "local"
)

// SaveResult reports where a save landed and what it did there.
type SaveResult struct {
	Outcome     string
	StorageMode string
	Message     string
}

// Client talks to the municipality budget API and owns the local
// fallback store. The fallback store must not be written by anyone else.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *localstore.Store

	status atomic.Value // Status
	saving atomic.Bool
}

// New creates a Client for the given API base URL (e.g.
// "http://localhost:5000/api").
func New(baseURL string, httpClient *http.Client, store *localstore.Store) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		store:      store,
	}
	c.status.Store(StatusChecking)
	return c
}

// Status returns the connectivity state observed by the last probe.
func (c *Client) Status() Status {
	return c.status.Load().(Status)
}

// Probe checks whether the API is reachable. Any transport failure or
// non-success status counts as disconnected. The result is not cached:
// every save probes again.
func (c *Client) Probe(ctx context.Context) bool {
	c.status.Store(StatusChecking)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		c.status.Store(StatusDisconnected)
		return false
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.status.Store(StatusDisconnected)
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	connected := resp.StatusCode >= 200 && resp.StatusCode < 300
	if connected {
		c.status.Store(StatusConnected)
	} else {
		c.status.Store(StatusDisconnected)
	}
	return connected
}

// saveRequest is the English-keyed upsert payload.
type saveRequest struct {
	MuniCode    string            `json:"muniCode"`
	MuniName    string            `json:"muniName"`
	Province    string            `json:"province"`
	Website     string            `json:"website"`
	TotalBudget float64           `json:"totalBudget"`
	TotalSpent  float64           `json:"totalSpent"`
	Plans       []models.PlanItem `json:"plans"`
}

// saveResponse is the server's reply to an upsert.
type saveResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Operation string `json:"operation"`
}

// Save upserts the draft keyed by its muniCode. It validates required
// fields before any I/O, probes connectivity, and either submits to the
// API or writes the local fallback store. Saves are non-reentrant; a
// second call while one is pending fails with ErrSaveInFlight.
func (c *Client) Save(ctx context.Context, data form.Data) (*SaveResult, error) {
	if data.MuniCode == "" {
		return nil, &ValidationError{Field: "muniCode"}
	}
	if data.MuniName == "" {
		return nil, &ValidationError{Field: "muniName"}
	}
	if data.Province == "" {
		return nil, &ValidationError{Field: "province"}
	}

	if !c.saving.CompareAndSwap(false, true) {
		return nil, ErrSaveInFlight
	}
	defer c.saving.Store(false)

	if !c.Probe(ctx) {
		return c.saveLocal(data)
	}
	return c.saveRemote(ctx, data)
}

// saveLocal writes the fallback store, never contacting the API.
func (c *Client) saveLocal(data form.Data) (*SaveResult, error) {
	operation, err := c.store.Save(data.MuniCode, localstore.FromForm(data))
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return &SaveResult{
		Outcome:     operation,
		StorageMode: StorageLocal,
		Message:     "saved to this device only",
	}, nil
}

func (c *Client) saveRemote(ctx context.Context, data form.Data) (*SaveResult, error) {
	plans := data.Plans
	if plans == nil {
		plans = []models.PlanItem{}
	}
	body, err := json.Marshal(saveRequest{
		MuniCode:    data.MuniCode,
		MuniName:    data.MuniName,
		Province:    data.Province,
		Website:     data.Website,
		TotalBudget: data.TotalBudget,
		TotalSpent:  data.TotalSpent,
		Plans:       plans,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling save request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/saveFormData", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating save request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ServerError{Message: fmt.Sprintf("saving form data: %v", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServerError{Status: resp.StatusCode, Message: fmt.Sprintf("reading server response: %v", err)}
	}

	if resp.StatusCode == http.StatusForbidden {
		return nil, &ForbiddenError{Message: "access denied (403 Forbidden): not permitted to save data"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServerError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
	}

	if len(raw) == 0 {
		return nil, &ServerError{Message: "no response body from server"}
	}

	var result saveResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ServerError{Message: "could not parse server response"}
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "server rejected the save"
		}
		return nil, &ServerError{Message: msg}
	}

	return &SaveResult{
		Outcome:     result.Operation,
		StorageMode: StorageRemote,
		Message:     result.Message,
	}, nil
}

// errorMessage extracts the server-provided message from a failed
// response, synthesizing a generic one including the status code when
// the body has none.
func errorMessage(raw []byte, status int) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return fmt.Sprintf("request failed with status %d", status)
}

// listResponse wraps the list and get endpoints' replies.
type listResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// List fetches all stored records' summaries.
func (c *Client) List(ctx context.Context) ([]models.BudgetRecordSummary, error) {
	raw, err := c.get(ctx, c.baseURL+"/municipalities")
	if err != nil {
		return nil, err
	}
	var summaries []models.BudgetRecordSummary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		return nil, &ServerError{Message: "could not parse server response"}
	}
	return summaries, nil
}

// GetByCode fetches one stored record.
func (c *Client) GetByCode(ctx context.Context, code string) (*models.BudgetRecord, error) {
	raw, err := c.get(ctx, c.baseURL+"/municipalities/"+code)
	if err != nil {
		return nil, err
	}
	var record models.BudgetRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, &ServerError{Message: "could not parse server response"}
	}
	return &record, nil
}

func (c *Client) get(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ServerError{Message: fmt.Sprintf("fetching data: %v", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ServerError{Status: resp.StatusCode, Message: fmt.Sprintf("reading server response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServerError{Status: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
	}

	var body listResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &ServerError{Message: "could not parse server response"}
	}
	if !body.Success {
		msg := body.Message
		if msg == "" {
			msg = "server rejected the request"
		}
		return nil, &ServerError{Message: msg}
	}
	return body.Data, nil
}
