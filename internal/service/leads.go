package service

import (
	"context"
	"fmt"
	"log"

	"github.com/nyaruka/phonenumbers"

	"github.com/adaai/leadcapture/internal/dto"
	"github.com/adaai/leadcapture/internal/entity"
	"github.com/adaai/leadcapture/internal/repository"
)

const defaultPhoneRegion = "US"

// LeadsService coordinates validation and persistence for lead submissions.
type LeadsService struct {
	repo   repository.LeadsRepository
	region string
}

// NewLeadsService creates a new instance of LeadsService. phoneRegion is the
// default region used for the informational E.164 log hint.
func NewLeadsService(repo repository.LeadsRepository, phoneRegion string) *LeadsService {
	if phoneRegion == "" {
		phoneRegion = defaultPhoneRegion
	}
	return &LeadsService{repo: repo, region: phoneRegion}
}

// Submit validates a candidate lead and persists it, returning the generated
// id. On a validation failure the returned error is a *ValidationError and
// nothing is persisted.
func (s *LeadsService) Submit(ctx context.Context, req dto.SubmitLeadRequest) (int64, error) {
	req = req.Normalize()
	if verr := ValidateLead(req); verr != nil {
		return 0, verr
	}

	id, err := s.repo.Insert(ctx, entity.Lead{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Service: req.Service,
		Details: req.Details,
	})
	if err != nil {
		return 0, fmt.Errorf("insert lead: %w", err)
	}

	if e164 := NormalizePhoneHint(req.Phone, s.region); e164 != "" {
		log.Printf("lead saved id=%d phone_e164=%s", id, e164)
	} else {
		log.Printf("lead saved id=%d", id)
	}
	return id, nil
}

// List returns the most recent leads, newest first, capped at the repository
// snapshot limit.
func (s *LeadsService) List(ctx context.Context) ([]entity.Lead, error) {
	leads, err := s.repo.List(ctx, repository.DefaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	if leads == nil {
		leads = []entity.Lead{}
	}
	return leads, nil
}

// NormalizePhoneHint returns the E.164 form when the phone parses as a valid
// number for the region, and "" otherwise. Informational only: it never gates
// a submission, since the accepted phone pattern is wider than E.164.
func NormalizePhoneHint(raw, region string) string {
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}
