// Package profile provides the stored onboarding profile that seeds the
// prompt context for every generation request.
package profile

import (
	"context"
	"strings"
	"time"
)

// Profile holds what the user told us about themselves during onboarding.
// The context assembler turns it into the system-prompt context block; the
// compact representation is used whenever structured fields are filled in.
type Profile struct {
	ID     uint
	UserID string

	FullName string
	Headline string
	Industry string
	Company  string

	TargetAudience string
	Goals          string
	Topics         []string
	PreferredTone  string

	// AboutYou is the free-text fallback used by the verbose representation
	// when no structured fields are available.
	AboutYou string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasStructuredContext reports whether enough structured fields are present
// for the compact context representation.
func (p *Profile) HasStructuredContext() bool {
	if p == nil {
		return false
	}
	return p.Industry != "" || p.TargetAudience != "" || p.Goals != "" || len(p.Topics) > 0
}

// DisplayName returns the name the prompt should refer to the user by.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.FullName)
}

// UpdateRequest represents fields that can be updated via API.
type UpdateRequest struct {
	FullName       *string  `json:"full_name,omitempty"`
	Headline       *string  `json:"headline,omitempty"`
	Industry       *string  `json:"industry,omitempty"`
	Company        *string  `json:"company,omitempty"`
	TargetAudience *string  `json:"target_audience,omitempty"`
	Goals          *string  `json:"goals,omitempty"`
	Topics         []string `json:"topics,omitempty"`
	PreferredTone  *string  `json:"preferred_tone,omitempty"`
	AboutYou       *string  `json:"about_you,omitempty"`
}

// Apply updates the Profile with non-nil fields from UpdateRequest.
func (p *Profile) Apply(req UpdateRequest) {
	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.Headline != nil {
		p.Headline = *req.Headline
	}
	if req.Industry != nil {
		p.Industry = *req.Industry
	}
	if req.Company != nil {
		p.Company = *req.Company
	}
	if req.TargetAudience != nil {
		p.TargetAudience = *req.TargetAudience
	}
	if req.Goals != nil {
		p.Goals = *req.Goals
	}
	if req.Topics != nil {
		p.Topics = req.Topics
	}
	if req.PreferredTone != nil {
		p.PreferredTone = *req.PreferredTone
	}
	if req.AboutYou != nil {
		p.AboutYou = *req.AboutYou
	}
}

// Repository defines storage operations for profiles.
type Repository interface {
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) (*Profile, error)
}

// Service manages profile operations.
type Service struct {
	repo Repository
}

// NewService constructs a Service with required dependencies.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetProfile retrieves the profile for a user. A user who never completed
// onboarding has no profile; callers must tolerate nil.
func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// UpdateProfile applies updates to the stored profile, creating it on first
// write.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req UpdateRequest) (*Profile, error) {
	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing = &Profile{UserID: userID}
	}

	existing.Apply(req)

	return s.repo.Upsert(ctx, existing)
}
