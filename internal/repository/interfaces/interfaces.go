package interfaces

import (
	"context"

	"github.com/fias/marcaciones/internal/domain/activity"
	"github.com/fias/marcaciones/internal/domain/employee"
	"github.com/fias/marcaciones/internal/domain/project"
)

// EmployeeRepository manages roster employee persistence.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *employee.Employee) error
	Get(ctx context.Context, id int) (*employee.Employee, error)
	Update(ctx context.Context, emp *employee.Employee) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, opts employee.ListOptions) ([]employee.Employee, error)
	SetActive(ctx context.Context, id int, active bool) error
}

// ProjectRepository manages roster project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, proj *project.Project) error
	Get(ctx context.Context, id string) (*project.Project, error)
	Update(ctx context.Context, proj *project.Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]project.Summary, error)
	ListActive(ctx context.Context) ([]project.Project, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// ActivityRepository manages the bounded activity feed.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
	Recent(ctx context.Context, limit int) ([]activity.Entry, error)
}
