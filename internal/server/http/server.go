// Package httpserver exposes the registrar REST API.
package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/campusware/registrar/internal/authz"
	"github.com/campusware/registrar/internal/config"
	"github.com/campusware/registrar/internal/repository"
	"github.com/campusware/registrar/internal/service"
	"github.com/campusware/registrar/internal/session"
)

// Deps are the collaborators injected into every request handler. Nothing
// here is ambient framework state; each request resolves and checks through
// these explicitly.
type Deps struct {
	Auth      service.AuthService
	Registrar service.RegistrarService
	Guard     *authz.Guard
	Ownership repository.OwnershipRepository
	Log       *zap.Logger
	Cookies   session.CookieOptions
}

// Handler carries the injected collaborators for the route handlers.
type Handler struct {
	auth      service.AuthService
	registrar service.RegistrarService
	guard     *authz.Guard
	ownership repository.OwnershipRepository
	log       *zap.Logger
	cookies   session.CookieOptions
}

// NewRouter builds the full route table.
func NewRouter(d Deps) http.Handler {
	h := &Handler{
		auth:      d.Auth,
		registrar: d.Registrar,
		guard:     d.Guard,
		ownership: d.Ownership,
		log:       d.Log,
		cookies:   d.Cookies,
	}

	r := chi.NewRouter()
	r.Use(h.recoverPanics, h.logRequests, h.resolveIdentity)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		api.Get("/ping", h.ping)
		api.Get("/me", h.me)
		api.Post("/signup", h.signUp)
		api.Post("/signin", h.signIn)

		api.Get("/semesters", h.listSemesters)
		api.Get("/departments", h.listDepartments)
		api.Get("/majors", h.listMajors)
		api.Get("/courses", h.listCourses)
		api.Get("/rooms", h.listRooms)
		api.Get("/presented-courses", h.listPresentedCourses)
		api.Get("/presented-courses/{pcid}/students", h.listSectionStudents)
		api.Get("/students/{student_id}/transcript", h.transcript)
		api.Get("/my-courses", h.myCourses)
		api.Get("/my-presented-courses", h.myPresentedCourses)
		api.Get("/members", h.listMembers)
		api.Get("/staff", h.listStaff)

		api.Group(func(mut chi.Router) {
			mut.Use(h.requireCSRF)
			mut.Post("/signout", h.signOut)
			mut.Post("/semesters", h.createSemester)
			mut.Post("/semesters/{sid}/deactivate", h.deactivateSemester)
			mut.Post("/departments", h.createDepartment)
			mut.Post("/majors", h.createMajor)
			mut.Post("/courses", h.createCourse)
			mut.Post("/rooms", h.createRoom)
			mut.Post("/presented-courses/create", h.createPresentedCourse)
			mut.Post("/student-records", h.createStudentRecord)
			mut.Post("/student-semesters", h.createStudentSemester)
			mut.Post("/taken-courses", h.enroll)
			mut.Post("/students/{student_id}/enrollments", h.enrollByPath)
			mut.Patch("/taken-courses/status", h.updateStatus)
			mut.Patch("/grades", h.updateGrade)
			mut.Post("/staff", h.createStaff)
			mut.Post("/staff-roles", h.createStaffRole)
			mut.Delete("/admin/{resource}/{pk}", h.adminDelete)
		})
	})

	return r
}

// Server wraps the HTTP listener with configured timeouts.
type Server struct{ httpServer *http.Server }

// New constructs the server around the assembled router.
func New(cfg config.HTTPConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// ListenAndServe blocks serving requests.
func (s *Server) ListenAndServe() error { return s.httpServer.ListenAndServe() }

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error { return s.httpServer.Shutdown(ctx) }
