package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"github.com/campusware/registrar/internal/errs"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError renders the uniform failure shape {"detail": "<message>"}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// writeServiceError maps service-layer failures onto the wire. Classified
// errors carry their own status; sentinels map to fixed codes; anything
// else is an opaque 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if e, ok := errs.As(err); ok {
		writeError(w, e.Status, e.Message)
		return
	}
	switch {
	case errors.Is(err, errs.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "too many sign-in attempts, try again later")
	case errors.Is(err, errs.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// rowsToJSON zips routine result rows with column names, preserving the
// routine's column order.
func rowsToJSON(rows [][]any, cols []string) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		m := make(map[string]any, len(cols))
		for i, col := range cols {
			if i < len(row) {
				m[col] = jsonValue(row[i])
			}
		}
		out = append(out, m)
	}
	return out
}

// jsonValue normalizes driver types for JSON output.
func jsonValue(v any) any {
	switch x := v.(type) {
	case [16]byte:
		id, err := uuid.FromBytes(x[:])
		if err != nil {
			return v
		}
		return id.String()
	case uuid.UUID:
		return x.String()
	case []byte:
		return string(x)
	case int16:
		return int(x)
	default:
		return v
	}
}
