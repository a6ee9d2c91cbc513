// Package clientapi talks to the REST endpoint that stores client records.
package clientapi

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

	"clientes-form/internal/apperror"
	"clientes-form/internal/config"
	"clientes-form/internal/model"

	"go.uber.org/zap"
)

// API defines the calls the form and the listing page make.
type API interface {
	Create(ctx context.Context, values model.Values) error
	Update(ctx context.Context, id string, values model.Values) error
	Get(ctx context.Context, id string) (*model.Client, error)
	List(ctx context.Context) ([]model.Client, error)
}

// client is the HTTP implementation of API.
type client struct {
	log      *zap.Logger
	endpoint string
	http     *http.Client
}

// New initializes an API client for cfg.APIURL.
func New(cfg *config.Config, logger *zap.Logger) API {
	return &client{
		log:      logger,
		endpoint: strings.TrimRight(cfg.APIURL, "/"),
		http:     &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// Create posts values to the endpoint. The response body must be JSON but is
// otherwise ignored, status code included.
func (c *client) Create(ctx context.Context, values model.Values) error {
	return c.send(ctx, "create", http.MethodPost, c.endpoint, values)
}

// Update puts values to {endpoint}/{id}, with the same response handling as
// Create.
func (c *client) Update(ctx context.Context, id string, values model.Values) error {
	return c.send(ctx, "update", http.MethodPut, c.recordURL(id), values)
}

// Get fetches one record. A 404 yields apperror.ErrNotFound.
func (c *client) Get(ctx context.Context, id string) (*model.Client, error) {
	var record model.Client
	if err := c.fetch(ctx, "get", c.recordURL(id), &record); err != nil {
		return nil, err
	}
	if record.ID == "" {
		record.ID = id
	}
	return &record, nil
}

// List fetches every record.
func (c *client) List(ctx context.Context) ([]model.Client, error) {
	var records []model.Client
	if err := c.fetch(ctx, "list", c.endpoint, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *client) recordURL(id string) string {
	return c.endpoint + "/" + url.PathEscape(id)
}

func (c *client) send(ctx context.Context, op, method, target string, values model.Values) error {
	payload, err := json.Marshal(values)
	if err != nil {
		return &apperror.SerializationFailure{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(payload))
	if err != nil {
		return &apperror.NetworkFailure{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return &apperror.NetworkFailure{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var discard any
	if err := decodeBody(op, resp.Body, &discard); err != nil {
		return err
	}

	c.log.Debug("client record sent",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func (c *client) fetch(ctx context.Context, op, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &apperror.NetworkFailure{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &apperror.NetworkFailure{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperror.ErrNotFound
	case resp.StatusCode >= 300:
		return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	return decodeBody(op, resp.Body, out)
}

// decodeBody reads the whole body and requires it to be exactly one JSON
// value. Read errors are network failures, anything else a serialization
// failure.
func decodeBody(op string, body io.Reader, out any) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return &apperror.NetworkFailure{Op: op, Err: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &apperror.SerializationFailure{Op: op, Err: err}
	}
	return nil
}
