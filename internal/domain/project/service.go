package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fias/marcaciones/internal/repository"
)

// Service handles roster project administration.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ID          string
	Name        string
	Description string
	Color       string
	StartDate   string
	EndDate     string
}

// validID accepts the short stable tokens used as project identifiers
// (e.g. "FIAS", "PROAMAZONIA"): no spaces, at least two characters.
func validID(id string) bool {
	if len(id) < 2 {
		return false
	}
	return !strings.ContainsAny(id, " \t")
}

// Create registers a new active project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	id := strings.TrimSpace(req.ID)
	if !validID(id) || strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	proj := &Project{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Color:       req.Color,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Active:      true,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateID
		}
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Get fetches a project by identifier.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// UpdateRequest defines project update inputs. Nil fields are left as-is.
type UpdateRequest struct {
	ID          string
	Name        *string
	Description *string
	Color       *string
	StartDate   *string
	EndDate     *string
}

// Update modifies an existing project.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Project, error) {
	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Color != nil {
		updated.Color = *req.Color
	}
	if req.StartDate != nil {
		updated.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		updated.EndDate = *req.EndDate
	}
	if updated.Name == "" {
		return nil, ErrInvalidInput
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	return &updated, nil
}

// SetActive activates or deactivates a project.
func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("setting project active flag: %w", err)
	}
	return nil
}

// Delete removes a project. Projects with assigned employees cannot be
// deleted; deactivate them instead.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		if errors.Is(err, repository.ErrInUse) {
			return ErrProjectInUse
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// List returns all projects with employee counts.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

// ListActive returns only active projects.
func (s *Service) ListActive(ctx context.Context) ([]Project, error) {
	return s.repo.ListActive(ctx)
}
