package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/campusware/registrar/internal/authz"
)

// Catalog endpoints: the admin-curated reference data (semesters,
// departments, majors, courses, rooms, presented courses). Listing is
// public; creation is admin-only.

func (h *Handler) listCatalog(w http.ResponseWriter, r *http.Request, routine string, cols []string) {
	rows, err := h.registrar.List(r.Context(), routine)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsToJSON(rows, cols))
}

func (h *Handler) listSemesters(w http.ResponseWriter, r *http.Request) {
	h.listCatalog(w, r, "list_semesters", []string{"sid", "name", "starts_on", "ends_on", "active"})
}

func (h *Handler) listDepartments(w http.ResponseWriter, r *http.Request) {
	h.listCatalog(w, r, "list_departments", []string{"did", "name", "building"})
}

func (h *Handler) listMajors(w http.ResponseWriter, r *http.Request) {
	h.listCatalog(w, r, "list_majors", []string{"mjid", "name", "department_id"})
}

func (h *Handler) listCourses(w http.ResponseWriter, r *http.Request) {
	h.listCatalog(w, r, "list_courses", []string{"cid", "code", "title", "units", "department_id"})
}

func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	h.listCatalog(w, r, "list_rooms", []string{"rid", "name", "capacity"})
}

func (h *Handler) listPresentedCourses(w http.ResponseWriter, r *http.Request) {
	h.listCatalog(w, r, "list_presented_courses",
		[]string{"pcid", "course_code", "title", "semester", "room", "staff_name", "capacity", "enrolled"})
}

// createCatalog guards with AdminOnly, invokes the create routine, and
// returns the new identifier from column 0.
func (h *Handler) createCatalog(w http.ResponseWriter, r *http.Request, routine, idField string, args ...any) {
	ident := IdentityFromCtx(r.Context())
	if err := h.guard.Authorize(r.Context(), ident, authz.AdminOnly); err != nil {
		writeServiceError(w, err)
		return
	}
	id, err := h.registrar.CreateOne(r.Context(), routine, args...)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{idField: id.String()})
}

func (h *Handler) createSemester(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		StartsOn string `json:"starts_on"`
		EndsOn   string `json:"ends_on"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.StartsOn == "" || req.EndsOn == "" {
		writeError(w, http.StatusBadRequest, "name, starts_on and ends_on are required")
		return
	}
	h.createCatalog(w, r, "add_semester", "sid", req.Name, req.StartsOn, req.EndsOn)
}

func (h *Handler) deactivateSemester(w http.ResponseWriter, r *http.Request) {
	sid, err := uuid.FromString(chi.URLParam(r, "sid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid semester id")
		return
	}
	ident := IdentityFromCtx(r.Context())
	if err := h.guard.Authorize(r.Context(), ident, authz.AdminOnly); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.registrar.Exec(r.Context(), "deactivate_semester", sid); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createDepartment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Building string `json:"building"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	h.createCatalog(w, r, "add_department", "did", req.Name, req.Building)
}

func (h *Handler) createMajor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		DepartmentID string `json:"department_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	did, err := uuid.FromString(req.DepartmentID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid department_id")
		return
	}
	h.createCatalog(w, r, "add_major", "mjid", req.Name, did)
}

func (h *Handler) createCourse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code         string `json:"code"`
		Title        string `json:"title"`
		Units        int    `json:"units"`
		DepartmentID string `json:"department_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "code and title are required")
		return
	}
	if req.Units <= 0 {
		writeError(w, http.StatusBadRequest, "units must be positive")
		return
	}
	did, err := uuid.FromString(req.DepartmentID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid department_id")
		return
	}
	h.createCatalog(w, r, "add_course", "cid", req.Code, req.Title, req.Units, did)
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Capacity int    `json:"capacity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Capacity <= 0 {
		writeError(w, http.StatusBadRequest, "capacity must be positive")
		return
	}
	h.createCatalog(w, r, "add_room", "rid", req.Name, req.Capacity)
}

func (h *Handler) createPresentedCourse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CourseID   string `json:"course_id"`
		SemesterID string `json:"semester_id"`
		RoomID     string `json:"room_id"`
		StaffID    string `json:"staff_id"`
		Capacity   int    `json:"capacity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ids := make([]uuid.UUID, 4)
	for i, raw := range []string{req.CourseID, req.SemesterID, req.RoomID, req.StaffID} {
		id, err := uuid.FromString(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "course_id, semester_id, room_id and staff_id must be valid ids")
			return
		}
		ids[i] = id
	}
	if req.Capacity <= 0 {
		writeError(w, http.StatusBadRequest, "capacity must be positive")
		return
	}
	h.createCatalog(w, r, "add_presented_course", "pcid", ids[0], ids[1], ids[2], ids[3], req.Capacity)
}
