package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/campusware/registrar/internal/authz"
)

// Student-facing endpoints. Everything that touches a specific student
// record or taught section carries an Owner policy; the ownership check
// runs before the routine is invoked, and admins override uniformly.

func (h *Handler) createStudentRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID        string `json:"member_id"`
		MajorID         string `json:"major_id"`
		EntrySemesterID string `json:"entry_semester_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mid, err1 := uuid.FromString(req.MemberID)
	mjid, err2 := uuid.FromString(req.MajorID)
	sid, err3 := uuid.FromString(req.EntrySemesterID)
	if err1 != nil || err2 != nil || err3 != nil {
		writeError(w, http.StatusBadRequest, "member_id, major_id and entry_semester_id must be valid ids")
		return
	}

	ident := IdentityFromCtx(r.Context())
	if err := h.guard.Authorize(r.Context(), ident, authz.AdminOnly); err != nil {
		writeServiceError(w, err)
		return
	}

	// two-value create: record id in column 0, student number in column 1
	srid, number, err := h.registrar.CreatePair(r.Context(), "add_student_record", mid, mjid, sid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"srid":           srid.String(),
		"student_number": number,
	})
}

func (h *Handler) createStudentSemester(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentRecordID string `json:"student_record_id"`
		SemesterID      string `json:"semester_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	srid, err1 := uuid.FromString(req.StudentRecordID)
	sid, err2 := uuid.FromString(req.SemesterID)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "student_record_id and semester_id must be valid ids")
		return
	}

	ident := IdentityFromCtx(r.Context())
	pol := authz.Owner{Resource: authz.StudentRecord, ResourceID: srid, AdminOverride: true}
	if err := h.guard.Authorize(r.Context(), ident, pol); err != nil {
		writeServiceError(w, err)
		return
	}

	ssid, err := h.registrar.CreateOne(r.Context(), "add_student_semester", srid, sid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"ssid": ssid.String()})
}

func (h *Handler) enrollRecord(w http.ResponseWriter, r *http.Request, srid, pcid uuid.UUID) {
	ident := IdentityFromCtx(r.Context())
	pol := authz.Owner{Resource: authz.StudentRecord, ResourceID: srid, AdminOverride: true}
	if err := h.guard.Authorize(r.Context(), ident, pol); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.registrar.Exec(r.Context(), "enroll_student", srid, pcid); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) enroll(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentRecordID   string `json:"student_record_id"`
		PresentedCourseID string `json:"presented_course_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	srid, err1 := uuid.FromString(req.StudentRecordID)
	pcid, err2 := uuid.FromString(req.PresentedCourseID)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "student_record_id and presented_course_id must be valid ids")
		return
	}
	h.enrollRecord(w, r, srid, pcid)
}

func (h *Handler) enrollByPath(w http.ResponseWriter, r *http.Request) {
	srid, err := uuid.FromString(chi.URLParam(r, "student_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid student id")
		return
	}
	var req struct {
		PresentedCourseID string `json:"presented_course_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	pcid, err := uuid.FromString(req.PresentedCourseID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid presented_course_id")
		return
	}
	h.enrollRecord(w, r, srid, pcid)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentRecordID   string `json:"student_record_id"`
		PresentedCourseID string `json:"presented_course_id"`
		Status            string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	srid, err1 := uuid.FromString(req.StudentRecordID)
	pcid, err2 := uuid.FromString(req.PresentedCourseID)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "student_record_id and presented_course_id must be valid ids")
		return
	}

	ident := IdentityFromCtx(r.Context())
	pol := authz.Owner{Resource: authz.StudentRecord, ResourceID: srid, AdminOverride: true}
	if err := h.guard.Authorize(r.Context(), ident, pol); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.registrar.Exec(r.Context(), "set_course_status", srid, pcid, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateGrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PresentedCourseID string   `json:"presented_course_id"`
		StudentRecordID   string   `json:"student_record_id"`
		Grade             *float64 `json:"grade"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Grade == nil {
		writeError(w, http.StatusBadRequest, "grade is required")
		return
	}
	pcid, err1 := uuid.FromString(req.PresentedCourseID)
	srid, err2 := uuid.FromString(req.StudentRecordID)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "presented_course_id and student_record_id must be valid ids")
		return
	}

	// the grader must teach the section
	ident := IdentityFromCtx(r.Context())
	pol := authz.Owner{Resource: authz.PresentedCourse, ResourceID: pcid, AdminOverride: true}
	if err := h.guard.Authorize(r.Context(), ident, pol); err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.registrar.Exec(r.Context(), "update_grade", pcid, srid, *req.Grade); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) transcript(w http.ResponseWriter, r *http.Request) {
	srid, err := uuid.FromString(chi.URLParam(r, "student_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid student id")
		return
	}

	ident := IdentityFromCtx(r.Context())
	pol := authz.Owner{Resource: authz.StudentRecord, ResourceID: srid, AdminOverride: true}
	if err := h.guard.Authorize(r.Context(), ident, pol); err != nil {
		writeServiceError(w, err)
		return
	}

	rows, err := h.registrar.List(r.Context(), "get_transcript", srid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsToJSON(rows, []string{"course_code", "term", "grade"}))
}

func (h *Handler) listSectionStudents(w http.ResponseWriter, r *http.Request) {
	pcid, err := uuid.FromString(chi.URLParam(r, "pcid"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid presented course id")
		return
	}

	ident := IdentityFromCtx(r.Context())
	pol := authz.Owner{Resource: authz.PresentedCourse, ResourceID: pcid, AdminOverride: true}
	if err := h.guard.Authorize(r.Context(), ident, pol); err != nil {
		writeServiceError(w, err)
		return
	}

	rows, err := h.registrar.List(r.Context(), "list_section_students", pcid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsToJSON(rows,
		[]string{"srid", "student_number", "first_name", "last_name", "status", "grade"}))
}

func (h *Handler) myCourses(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromCtx(r.Context())
	if !ident.Authenticated {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	srid, err := h.ownership.StudentRecordOf(r.Context(), ident.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rows, err := h.registrar.List(r.Context(), "list_record_courses", srid)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsToJSON(rows, []string{"course_code", "term", "status", "grade"}))
}

func (h *Handler) myPresentedCourses(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromCtx(r.Context())
	if !ident.Authenticated {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	rows, err := h.registrar.List(r.Context(), "list_staff_sections", ident.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rowsToJSON(rows,
		[]string{"pcid", "course_code", "semester", "enrolled", "capacity"}))
}
