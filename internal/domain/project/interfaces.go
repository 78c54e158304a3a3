package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Summary, error)
	ListActive(ctx context.Context) ([]Project, error)
	SetActive(ctx context.Context, id string, active bool) error
}
