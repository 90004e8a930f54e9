// Package apper spricht das Record-Store-Protokoll des Apper Backends.
package apper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"hufschlaeger.net/task-records/internal/config"
	apperDomain "hufschlaeger.net/task-records/internal/domain/apper"
	"hufschlaeger.net/task-records/internal/domain/records"
)

const (
	HeaderProjectID = "X-Apper-Project-Id"
	HeaderPublicKey = "X-Apper-Public-Key"
	HeaderRequestID = "X-Request-Id"
)

// Factory erzeugt pro Aufruf einen frischen Client aus der injizierten Konfiguration
type Factory struct {
	config     *config.Config
	httpClient *http.Client
}

func NewFactory(cfg *config.Config) *Factory {
	return &Factory{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Client liefert einen neuen Handle; kein eigener Fehlerpfad
func (f *Factory) Client() *Client {
	return &Client{
		config:     f.config,
		httpClient: f.httpClient,
		baseURL:    f.config.GetBaseURL(),
	}
}

type Client struct {
	config     *config.Config
	httpClient *http.Client
	baseURL    string
}

// FetchRecords entspricht fetchRecords(table, params)
func (c *Client) FetchRecords(ctx context.Context, table string, params apperDomain.FetchParams) (*apperDomain.Response, error) {
	return c.do(ctx, http.MethodPost, recordsPath(table)+"/query", params)
}

// GetRecordByID entspricht getRecordById(table, id, params)
func (c *Client) GetRecordByID(ctx context.Context, table string, id int, params apperDomain.FetchParams) (*apperDomain.Response, error) {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("%s/%d/query", recordsPath(table), id), params)
}

func (c *Client) CreateRecords(ctx context.Context, table string, recs []interface{}) (*apperDomain.Response, error) {
	return c.do(ctx, http.MethodPost, recordsPath(table), apperDomain.RecordsRequest{Records: recs})
}

func (c *Client) UpdateRecords(ctx context.Context, table string, recs []interface{}) (*apperDomain.Response, error) {
	return c.do(ctx, http.MethodPatch, recordsPath(table), apperDomain.RecordsRequest{Records: recs})
}

func (c *Client) DeleteRecords(ctx context.Context, table string, ids []int) (*apperDomain.Response, error) {
	return c.do(ctx, http.MethodDelete, recordsPath(table), apperDomain.DeleteRequest{RecordIDs: ids})
}

// ValidateConnection prüft ob der Record Store erreichbar ist und die Schlüssel akzeptiert
func (c *Client) ValidateConnection(ctx context.Context, table string) error {
	resp, err := c.FetchRecords(ctx, table, apperDomain.FetchParams{
		Fields:     apperDomain.Fields("Id"),
		PagingInfo: &apperDomain.PagingInfo{Limit: 1, Offset: 0},
	})
	if err != nil {
		return fmt.Errorf("apper connection failed: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("apper connection failed: %w: %s", records.ErrServiceFailure, resp.Message)
	}
	return nil
}

// Private helper methods

func recordsPath(table string) string {
	return fmt.Sprintf("/v1/tables/%s/records", url.PathEscape(table))
}

// do führt den Request aus. Fehler werden nur für Transportprobleme geliefert;
// ein success:false des Stores kommt als Response zurück.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (*apperDomain.Response, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", records.ErrTransportFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", records.ErrTransportFailure, err)
	}

	req.Header.Set(HeaderProjectID, c.config.ProjectID)
	req.Header.Set(HeaderPublicKey, c.config.PublicKey)
	req.Header.Set(HeaderRequestID, uuid.NewString())
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", records.ErrTransportFailure, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", records.ErrTransportFailure, err)
	}

	var envelope apperDomain.Response
	decodeErr := json.Unmarshal(body, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Fehlerantwort mit Umschlag (Feld success vorhanden) gilt als Antwort des Stores
		if decodeErr == nil && hasSuccessField(body) && !envelope.Success {
			if envelope.Message == "" {
				envelope.Message = fmt.Sprintf("%s (%d)", http.StatusText(resp.StatusCode), resp.StatusCode)
			}
			return &envelope, nil
		}
		return nil, fmt.Errorf("%w: %s %s failed %d: %s", records.ErrTransportFailure, method, path, resp.StatusCode, string(body))
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode response: %v", records.ErrTransportFailure, decodeErr)
	}

	return &envelope, nil
}

func hasSuccessField(body []byte) bool {
	var probe struct {
		Success *bool `json:"success"`
	}
	return json.Unmarshal(body, &probe) == nil && probe.Success != nil
}
