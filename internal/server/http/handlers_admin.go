package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/campusware/registrar/internal/authz"
)

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromCtx(r.Context())
	if err := h.guard.Authorize(r.Context(), ident, authz.AdminOnly); err != nil {
		writeServiceError(w, err)
		return
	}
	rows, err := h.registrar.List(r.Context(), "list_members")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsToJSON(rows,
		[]string{"mid", "username", "first_name", "last_name", "is_admin"}))
}

func (h *Handler) listStaff(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromCtx(r.Context())
	if err := h.guard.Authorize(r.Context(), ident, authz.AdminOnly); err != nil {
		writeServiceError(w, err)
		return
	}
	rows, err := h.registrar.List(r.Context(), "list_staff")
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsToJSON(rows,
		[]string{"stid", "member_id", "first_name", "last_name", "department"}))
}

func (h *Handler) createStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID     string `json:"member_id"`
		DepartmentID string `json:"department_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mid, err1 := uuid.FromString(req.MemberID)
	did, err2 := uuid.FromString(req.DepartmentID)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "member_id and department_id must be valid ids")
		return
	}
	h.createCatalog(w, r, "add_staff", "stid", mid, did)
}

func (h *Handler) createStaffRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID string `json:"staff_id"`
		Role    string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Role == "" {
		writeError(w, http.StatusBadRequest, "role is required")
		return
	}
	stid, err := uuid.FromString(req.StaffID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff_id")
		return
	}
	h.createCatalog(w, r, "add_staff_role", "srid", stid, req.Role)
}

// deleteRoutines maps URL resource names onto delete routines. Anything not
// listed here cannot be deleted through the generic admin endpoint.
var deleteRoutines = map[string]string{
	"semesters":         "delete_semester",
	"departments":       "delete_department",
	"majors":            "delete_major",
	"courses":           "delete_course",
	"rooms":             "delete_room",
	"presented-courses": "delete_presented_course",
	"student-records":   "delete_student_record",
	"members":           "delete_member",
}

func (h *Handler) adminDelete(w http.ResponseWriter, r *http.Request) {
	routine, ok := deleteRoutines[chi.URLParam(r, "resource")]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown resource")
		return
	}
	pk, err := uuid.FromString(chi.URLParam(r, "pk"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	ident := IdentityFromCtx(r.Context())
	if err := h.guard.Authorize(r.Context(), ident, authz.AdminOnly); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.registrar.Exec(r.Context(), routine, pk); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
