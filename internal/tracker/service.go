package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"resume-tailor/internal/apperr"
	"resume-tailor/internal/jobmeta"
	"resume-tailor/internal/shared/telemetry"
)

// CreateInput describes a new entry. Empty Date means today and empty Status means Applied.
type CreateInput struct {
	Date     string
	URL      string
	Platform string
	Company  string
	Role     string
	Status   Status
}

// Patch holds the fields to change; nil fields are left as they are.
type Patch struct {
	Date     *string
	URL      *string
	Platform *string
	Company  *string
	Role     *string
	Status   *Status
}

// Service validates and persists tracker entries.
type Service struct {
	Repo     Repo
	Now      func() time.Time
	validate *validator.Validate
}

// NewService constructs a Service over repo.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now, validate: validator.New()}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Create records a new entry for clientID.
func (s *Service) Create(ctx context.Context, clientID string, in CreateInput) (Entry, error) {
	now := s.now()
	e := Entry{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Date:      strings.TrimSpace(in.Date),
		URL:       strings.TrimSpace(in.URL),
		Platform:  strings.TrimSpace(in.Platform),
		Company:   strings.TrimSpace(in.Company),
		Role:      strings.TrimSpace(in.Role),
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if e.Date == "" {
		e.Date = now.Format(DateLayout)
	}
	if e.Status == "" {
		e.Status = StatusApplied
	}
	if e.Platform == "" && e.URL != "" {
		e.Platform = jobmeta.Platform(e.URL)
	}
	if err := s.check(e); err != nil {
		return Entry{}, err
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return Entry{}, fmt.Errorf("create tracker entry: %w", err)
	}
	telemetry.Info("tracker.create", map[string]any{
		"client_id": clientID,
		"entry_id":  e.ID,
		"platform":  e.Platform,
		"status":    string(e.Status),
	})
	return e, nil
}

// RecordApplication adds an Applied entry for a posting the client just tailored for.
func (s *Service) RecordApplication(ctx context.Context, clientID string, meta jobmeta.Metadata) (Entry, error) {
	return s.Create(ctx, clientID, CreateInput{
		URL:      meta.URL,
		Platform: meta.Platform,
		Company:  meta.Company,
		Role:     meta.Position,
		Status:   StatusApplied,
	})
}

// List returns the client's entries, newest first.
func (s *Service) List(ctx context.Context, clientID string) ([]Entry, error) {
	return s.Repo.List(ctx, clientID)
}

// Update applies patch to an existing entry.
func (s *Service) Update(ctx context.Context, clientID, id string, patch Patch) (Entry, error) {
	if !validID(id) {
		return Entry{}, ErrNotFound
	}
	e, err := s.Repo.Get(ctx, clientID, id)
	if err != nil {
		return Entry{}, err
	}
	if patch.Date != nil {
		e.Date = strings.TrimSpace(*patch.Date)
	}
	if patch.URL != nil {
		e.URL = strings.TrimSpace(*patch.URL)
	}
	if patch.Platform != nil {
		e.Platform = strings.TrimSpace(*patch.Platform)
	}
	if patch.Company != nil {
		e.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Role != nil {
		e.Role = strings.TrimSpace(*patch.Role)
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	e.UpdatedAt = s.now()

	if err := s.check(e); err != nil {
		return Entry{}, err
	}
	if err := s.Repo.Update(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, clientID, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, clientID, id)
}

// validID reports whether id could have been issued by Create.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Service) check(e Entry) error {
	v := s.validate
	if v == nil {
		v = validator.New()
	}
	err := v.Struct(e)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation(err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return apperr.Validation(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "url":
		return field + " must be a valid URL"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
