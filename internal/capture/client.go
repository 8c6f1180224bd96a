package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/adaai/leadcapture/internal/dto"
)

// APISubmitter posts assembled leads to the lead API over HTTP.
type APISubmitter struct {
	client  *http.Client
	baseURL string
}

// NewAPISubmitter builds a submitter for the given API base URL. A nil client
// gets a default with a request timeout.
func NewAPISubmitter(client *http.Client, baseURL string) *APISubmitter {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &APISubmitter{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Submit implements Submitter against POST /api/leads.
func (s *APISubmitter) Submit(ctx context.Context, req dto.SubmitLeadRequest) (int64, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, fmt.Errorf("marshal lead: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/leads", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create lead request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("submit lead: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return 0, fmt.Errorf("lead rejected: %s", apiErr.Error)
		}
		return 0, fmt.Errorf("lead submit failed with status %d", resp.StatusCode)
	}

	var payload struct {
		OK     bool  `json:"ok"`
		LeadID int64 `json:"leadId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("decode lead response: %w", err)
	}
	return payload.LeadID, nil
}
