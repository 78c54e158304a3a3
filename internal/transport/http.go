package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fias/marcaciones/internal/config"
	"github.com/fias/marcaciones/internal/domain/activity"
	"github.com/fias/marcaciones/internal/domain/employee"
	"github.com/fias/marcaciones/internal/domain/project"
	"github.com/fias/marcaciones/internal/export"
	"github.com/fias/marcaciones/internal/ingest"
	"github.com/fias/marcaciones/internal/reconcile"
)

// Server wires HTTP handlers over the domain services and the
// reconciliation engine.
type Server struct {
	employees *employee.Service
	projects  *project.Service
	activity  *activity.Service
	engine    *reconcile.Engine
	cfg       config.Config
	logger    *slog.Logger
}

// NewRouter creates the API router.
func NewRouter(
	employees *employee.Service,
	projects *project.Service,
	activitySvc *activity.Service,
	engine *reconcile.Engine,
	cfg config.Config,
	logger *slog.Logger,
) *chi.Mux {
	srv := &Server{
		employees: employees,
		projects:  projects,
		activity:  activitySvc,
		engine:    engine,
		cfg:       cfg,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/procesar", srv.handleProcess)
		r.Post("/exportar", srv.handleExport)
		r.Get("/actividad", srv.handleActivity)

		r.Route("/funcionarios", func(r chi.Router) {
			r.Get("/", srv.handleListEmployees)
			r.Post("/", srv.handleCreateEmployee)
			r.Put("/{id}", srv.handleUpdateEmployee)
			r.Delete("/{id}", srv.handleDeleteEmployee)
			r.Post("/{id}/activar", srv.setEmployeeActive(true))
			r.Post("/{id}/desactivar", srv.setEmployeeActive(false))
		})

		r.Route("/proyectos", func(r chi.Router) {
			r.Get("/", srv.handleListProjects)
			r.Post("/", srv.handleCreateProject)
			r.Put("/{id}", srv.handleUpdateProject)
			r.Delete("/{id}", srv.handleDeleteProject)
			r.Post("/{id}/activar", srv.setProjectActive(true))
			r.Post("/{id}/desactivar", srv.setProjectActive(false))
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleProcess runs one reconciliation over the uploaded files and
// returns the RunResult. At least one of the "teams" and "biometrico"
// multipart parts must be present.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	result, ok := s.runFromRequest(w, r)
	if !ok {
		return
	}
	s.activity.Record(r.Context(), activity.LevelSuccess,
		"Procesamiento completado: %d registros, %d errores", len(result.Events), len(result.Errors))
	writeJSON(w, http.StatusOK, result)
}

// handleExport runs one reconciliation and streams the consolidated
// workbook.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.runFromRequest(w, r)
	if !ok {
		return
	}

	f, err := export.Workbook(result, s.cfg.Export.IncludeErrors)
	if err != nil {
		s.logger.Error("export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "error generando archivo")
		return
	}

	name := export.Filename(s.cfg.Export.BaseName, time.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := f.WriteTo(w); err != nil {
		s.logger.Error("writing export", "error", err)
		return
	}
	s.activity.Record(r.Context(), activity.LevelInfo, "Exportación a Excel realizada: %s", name)
}

// runFromRequest parses the multipart upload, snapshots the roster, and
// runs the engine. On failure it writes the HTTP error itself and
// returns ok=false.
func (s *Server) runFromRequest(w http.ResponseWriter, r *http.Request) (reconcile.RunResult, bool) {
	maxSize := int64(s.cfg.Files.Teams.MaxSizeMB+s.cfg.Files.Biometric.MaxSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "solicitud multipart inválida")
		return reconcile.RunResult{}, false
	}

	teamsRows, ok := s.readUpload(w, r, "teams", delimiter(s.cfg.Files.Teams.CSVDelimiter, ';'))
	if !ok {
		return reconcile.RunResult{}, false
	}
	bioRows, ok := s.readUpload(w, r, "biometrico", delimiter(s.cfg.Files.Biometric.CSVDelimiter, ','))
	if !ok {
		return reconcile.RunResult{}, false
	}
	if teamsRows == nil && bioRows == nil {
		writeError(w, http.StatusBadRequest, "debe adjuntar al menos un archivo")
		return reconcile.RunResult{}, false
	}

	roster, err := s.snapshot(r)
	if err != nil {
		s.logger.Error("loading roster snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "error cargando datos del sistema")
		return reconcile.RunResult{}, false
	}

	result := s.engine.Run(roster, teamsRows, bioRows)
	s.cfg.Rules().Apply(result.Events)
	return result, true
}

// readUpload reads one optional multipart file part into rows. A
// missing part yields nil rows and ok=true.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string, delim rune) ([]reconcile.RawRow, bool) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "archivo "+field+" inválido")
		return nil, false
	}
	defer file.Close()

	rows, err := ingest.ReadFile(header.Filename, file, delim)
	if err != nil {
		s.logger.Warn("failed to read upload", "field", field, "file", header.Filename, "error", err)
		writeError(w, http.StatusUnprocessableEntity, "no se pudo leer el archivo "+field)
		return nil, false
	}
	return rows, true
}

// snapshot loads the roster reference data for one run. The run
// operates on this copy; concurrent roster edits don't tear it.
func (s *Server) snapshot(r *http.Request) (*reconcile.Roster, error) {
	employees, err := s.employees.List(r.Context(), employee.ListOptions{})
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.ListActive(r.Context())
	if err != nil {
		return nil, err
	}
	return reconcile.NewRoster(employees, projects), nil
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limite"))
	entries, err := s.activity.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error cargando actividad")
		return
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func delimiter(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
