package handler

import "github.com/adaai/leadcapture/internal/entity"

// The bodies below are the public wire contract consumed by the capture
// client, so they are fixed structs rather than a generic envelope.

// SubmitResponse is returned by a successful POST /api/leads.
type SubmitResponse struct {
	OK     bool  `json:"ok"`
	LeadID int64 `json:"leadId"`
}

// ListResponse wraps GET /api/leads results, newest first.
type ListResponse struct {
	Leads []entity.Lead `json:"leads"`
}

// ErrorResponse carries a client-safe error message. Store and transport
// failures must never leak backend detail through it.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports liveness for /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
