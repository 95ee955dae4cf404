package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/campusware/registrar/internal/dberr"
)

// Routines handlers may invoke. The name is interpolated into the call
// text, so it must come from this fixed set and never from request input.
var allowedRoutines = map[string]struct{}{
	"signup_member":           {},
	"add_semester":            {},
	"deactivate_semester":     {},
	"add_department":          {},
	"add_major":               {},
	"add_course":              {},
	"add_room":                {},
	"add_presented_course":    {},
	"add_student_record":      {},
	"add_student_semester":    {},
	"enroll_student":          {},
	"set_course_status":       {},
	"update_grade":            {},
	"add_staff":               {},
	"add_staff_role":          {},
	"list_semesters":          {},
	"list_departments":        {},
	"list_majors":             {},
	"list_courses":            {},
	"list_rooms":              {},
	"list_presented_courses":  {},
	"list_section_students":   {},
	"list_members":            {},
	"list_staff":              {},
	"list_record_courses":     {},
	"list_staff_sections":     {},
	"get_transcript":          {},
	"delete_semester":         {},
	"delete_department":       {},
	"delete_major":            {},
	"delete_course":           {},
	"delete_room":             {},
	"delete_presented_course": {},
	"delete_student_record":   {},
	"delete_member":           {},
}

// Procedures invokes named database routines with positional parameters.
type Procedures struct{ db *DB }

// NewProcedures constructs the routine invoker.
func NewProcedures(db *DB) *Procedures { return &Procedures{db: db} }

// Invoke runs an allow-listed routine and returns its rows in column order.
// Parameter values are always bound, never interpolated into the call text.
// Effect-only routines yield an empty slice. Every database failure is
// classified before it leaves this layer; callers never see driver errors.
func (p *Procedures) Invoke(ctx context.Context, name string, args ...any) ([][]any, error) {
	if _, ok := allowedRoutines[name]; !ok {
		return nil, fmt.Errorf("routine %q is not allow-listed", name)
	}

	ph := make([]string, len(args))
	for i := range args {
		ph[i] = "$" + strconv.Itoa(i+1)
	}
	q := fmt.Sprintf("SELECT * FROM %s(%s)", name, strings.Join(ph, ","))

	rows, err := p.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, dberr.Classify(err)
	}
	defer rows.Close()

	out := [][]any{}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, dberr.Classify(err)
		}
		// A void routine surfaces as one row holding a single NULL column;
		// treat it as no result set.
		if len(vals) == 1 && vals[0] == nil {
			continue
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Classify(err)
	}
	return out, nil
}
