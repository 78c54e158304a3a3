package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fias/marcaciones/internal/domain/activity"
	"github.com/fias/marcaciones/internal/domain/employee"
	"github.com/fias/marcaciones/internal/domain/project"
)

// employeePayload is the wire form of an employee create/update body,
// using the field names of the FIAS data files.
type employeePayload struct {
	ID         int     `json:"id"`
	Code       *string `json:"codigo"`
	FullName   *string `json:"nombreCompleto"`
	GivenName  *string `json:"nombre"`
	FamilyName *string `json:"apellido"`
	Title      *string `json:"cargo"`
	ProjectID  *string `json:"proyecto"`
	Email      *string `json:"email"`
	Phone      *string `json:"telefono"`
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	opts := employee.ListOptions{
		ProjectID: r.URL.Query().Get("proyecto"),
		Search:    r.URL.Query().Get("buscar"),
	}
	switch r.URL.Query().Get("estado") {
	case "activo":
		active := true
		opts.Active = &active
	case "inactivo":
		active := false
		opts.Active = &active
	}

	list, err := s.employees.List(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error listando funcionarios")
		return
	}
	if list == nil {
		list = []employee.Employee{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var p employeePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return
	}

	emp, err := s.employees.Create(r.Context(), employee.CreateRequest{
		ID:         p.ID,
		Code:       deref(p.Code),
		FullName:   deref(p.FullName),
		GivenName:  deref(p.GivenName),
		FamilyName: deref(p.FamilyName),
		Title:      deref(p.Title),
		ProjectID:  deref(p.ProjectID),
		Email:      deref(p.Email),
		Phone:      deref(p.Phone),
	})
	if err != nil {
		s.writeEmployeeError(w, err)
		return
	}

	s.activity.Record(r.Context(), activity.LevelInfo, "Funcionario creado: %s", emp.FullName)
	writeJSON(w, http.StatusCreated, emp)
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "identificador inválido")
		return
	}

	var p employeePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return
	}

	emp, err := s.employees.Update(r.Context(), employee.UpdateRequest{
		ID:         id,
		Code:       p.Code,
		FullName:   p.FullName,
		GivenName:  p.GivenName,
		FamilyName: p.FamilyName,
		Title:      p.Title,
		ProjectID:  p.ProjectID,
		Email:      p.Email,
		Phone:      p.Phone,
	})
	if err != nil {
		s.writeEmployeeError(w, err)
		return
	}

	s.activity.Record(r.Context(), activity.LevelInfo, "Funcionario actualizado: %s", emp.FullName)
	writeJSON(w, http.StatusOK, emp)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "identificador inválido")
		return
	}
	if err := s.employees.Delete(r.Context(), id); err != nil {
		s.writeEmployeeError(w, err)
		return
	}
	s.activity.Record(r.Context(), activity.LevelInfo, "Funcionario eliminado: %d", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setEmployeeActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "identificador inválido")
			return
		}
		if err := s.employees.SetActive(r.Context(), id, active); err != nil {
			s.writeEmployeeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) writeEmployeeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound):
		writeError(w, http.StatusNotFound, "funcionario no encontrado")
	case errors.Is(err, employee.ErrDuplicateID), errors.Is(err, employee.ErrDuplicateCode):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, employee.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "datos de funcionario inválidos")
	default:
		s.logger.Error("employee operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error interno")
	}
}

// projectPayload is the wire form of a project create/update body.
type projectPayload struct {
	ID          string  `json:"id"`
	Name        *string `json:"nombre"`
	Description *string `json:"descripcion"`
	Color       *string `json:"codigoColor"`
	StartDate   *string `json:"fechaInicio"`
	EndDate     *string `json:"fechaFin"`
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := s.projects.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error listando proyectos")
		return
	}
	if list == nil {
		list = []project.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var p projectPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return
	}

	proj, err := s.projects.Create(r.Context(), project.CreateRequest{
		ID:          p.ID,
		Name:        deref(p.Name),
		Description: deref(p.Description),
		Color:       deref(p.Color),
		StartDate:   deref(p.StartDate),
		EndDate:     deref(p.EndDate),
	})
	if err != nil {
		s.writeProjectError(w, err)
		return
	}

	s.activity.Record(r.Context(), activity.LevelInfo, "Proyecto creado: %s", proj.ID)
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var p projectPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return
	}

	proj, err := s.projects.Update(r.Context(), project.UpdateRequest{
		ID:          chi.URLParam(r, "id"),
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
	})
	if err != nil {
		s.writeProjectError(w, err)
		return
	}

	s.activity.Record(r.Context(), activity.LevelInfo, "Proyecto actualizado: %s", proj.ID)
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.projects.Delete(r.Context(), id); err != nil {
		s.writeProjectError(w, err)
		return
	}
	s.activity.Record(r.Context(), activity.LevelInfo, "Proyecto eliminado: %s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setProjectActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.projects.SetActive(r.Context(), chi.URLParam(r, "id"), active); err != nil {
			s.writeProjectError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) writeProjectError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		writeError(w, http.StatusNotFound, "proyecto no encontrado")
	case errors.Is(err, project.ErrDuplicateID):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, project.ErrProjectInUse):
		writeError(w, http.StatusConflict, "el proyecto tiene funcionarios asignados")
	case errors.Is(err, project.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "datos de proyecto inválidos")
	default:
		s.logger.Error("project operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error interno")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
