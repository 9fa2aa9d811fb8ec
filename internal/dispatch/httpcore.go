// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/catalogsync/sir/internal/materialize"
)

// HTTPCore is a [SearchCore] backed by a plain HTTP document endpoint: POST
// to upsert, DELETE to remove by id. The actual search backend (its commit
// policy, batching, schema) is an external collaborator; this is the thin
// transport that reaches it.
type HTTPCore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPCore builds an HTTPCore posting documents to baseURL.
func NewHTTPCore(baseURL string) *HTTPCore {
	return &HTTPCore{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Upsert POSTs doc's fields as a JSON body to baseURL/<pk>.
func (c *HTTPCore) Upsert(ctx context.Context, doc materialize.Document) error {
	body, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("dispatch: encode document: %w", err)
	}

	url := fmt.Sprintf("%s/%v", c.baseURL, doc.PK)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("dispatch: build upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// Delete issues a DELETE for pk.
func (c *HTTPCore) Delete(ctx context.Context, pk any) error {
	url := fmt.Sprintf("%s/%v", c.baseURL, pk)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("dispatch: build delete request: %w", err)
	}

	return c.do(req)
}

func (c *HTTPCore) do(req *http.Request) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch: http core request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("dispatch: http core returned status %d", resp.StatusCode)
	}
	return nil
}
