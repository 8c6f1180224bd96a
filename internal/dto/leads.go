package dto

import "strings"

// SubmitLeadRequest is the candidate payload accepted by POST /api/leads.
type SubmitLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Service string `json:"service"`
	Details string `json:"details"`
}

// Normalize returns a copy with every field trimmed of surrounding
// whitespace. Validation always runs on the normalized form.
func (r SubmitLeadRequest) Normalize() SubmitLeadRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.Service = strings.TrimSpace(r.Service)
	r.Details = strings.TrimSpace(r.Details)
	return r
}

// Field returns the value of the named lead field, or "" for an unknown name.
func (r SubmitLeadRequest) Field(name string) string {
	switch name {
	case "name":
		return r.Name
	case "email":
		return r.Email
	case "phone":
		return r.Phone
	case "company":
		return r.Company
	case "service":
		return r.Service
	case "details":
		return r.Details
	default:
		return ""
	}
}
