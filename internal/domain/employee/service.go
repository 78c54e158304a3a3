package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fias/marcaciones/internal/repository"
)

// Service handles roster employee administration.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new employee service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines employee creation inputs.
type CreateRequest struct {
	ID         int
	Code       string
	FullName   string
	GivenName  string
	FamilyName string
	Title      string
	ProjectID  string
	Email      string
	Phone      string
}

// UpdateRequest defines employee update inputs. Nil fields are left as-is.
type UpdateRequest struct {
	ID         int
	Code       *string
	FullName   *string
	GivenName  *string
	FamilyName *string
	Title      *string
	ProjectID  *string
	Email      *string
	Phone      *string
}

// Create registers a new active employee.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Employee, error) {
	if req.ID <= 0 ||
		strings.TrimSpace(req.Code) == "" ||
		strings.TrimSpace(req.FullName) == "" ||
		strings.TrimSpace(req.ProjectID) == "" {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	emp := &Employee{
		ID:           req.ID,
		Code:         strings.TrimSpace(req.Code),
		FullName:     strings.TrimSpace(req.FullName),
		GivenName:    strings.TrimSpace(req.GivenName),
		FamilyName:   strings.TrimSpace(req.FamilyName),
		Title:        req.Title,
		ProjectID:    req.ProjectID,
		Email:        req.Email,
		Phone:        req.Phone,
		Active:       true,
		RegisteredAt: now,
		ModifiedAt:   now,
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, s.classifyDuplicate(ctx, emp)
		}
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	return emp, nil
}

// classifyDuplicate distinguishes an id collision from a code collision
// so callers can report the right field.
func (s *Service) classifyDuplicate(ctx context.Context, emp *Employee) error {
	if _, err := s.repo.Get(ctx, emp.ID); err == nil {
		return ErrDuplicateID
	}
	return ErrDuplicateCode
}

// Get fetches an employee by numeric identifier.
func (s *Service) Get(ctx context.Context, id int) (*Employee, error) {
	emp, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("getting employee: %w", err)
	}
	return emp, nil
}

// Update modifies an existing employee.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Employee, error) {
	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Code != nil {
		updated.Code = strings.TrimSpace(*req.Code)
	}
	if req.FullName != nil {
		updated.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.GivenName != nil {
		updated.GivenName = strings.TrimSpace(*req.GivenName)
	}
	if req.FamilyName != nil {
		updated.FamilyName = strings.TrimSpace(*req.FamilyName)
	}
	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.ProjectID != nil {
		updated.ProjectID = *req.ProjectID
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	if updated.Code == "" || updated.FullName == "" || updated.ProjectID == "" {
		return nil, ErrInvalidInput
	}
	updated.ModifiedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("updating employee: %w", err)
	}

	return &updated, nil
}

// SetActive activates or deactivates an employee. Deactivated employees
// stay in the roster but are never matched during reconciliation.
func (s *Service) SetActive(ctx context.Context, id int, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("setting employee active flag: %w", err)
	}
	return nil
}

// Delete removes an employee permanently.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("deleting employee: %w", err)
	}
	return nil
}

// List returns employees matching the options, in stored roster order.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Employee, error) {
	return s.repo.List(ctx, opts)
}

// ListActive returns only active employees, in stored roster order.
func (s *Service) ListActive(ctx context.Context) ([]Employee, error) {
	active := true
	return s.repo.List(ctx, ListOptions{Active: &active})
}
