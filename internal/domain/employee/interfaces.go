package employee

import "context"

// ListOptions filters employee listings.
type ListOptions struct {
	ProjectID string
	Active    *bool
	Search    string
}

// Repository provides persistence for employees.
type Repository interface {
	Create(ctx context.Context, emp *Employee) error
	Get(ctx context.Context, id int) (*Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, opts ListOptions) ([]Employee, error)
	SetActive(ctx context.Context, id int, active bool) error
}
