package validators

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/girotrack/girotrack-backend/pkg/errors"
)

const queryDateLayout = "2006-01-02"

// ParseQueryInt reads an integer query parameter with a default and an
// allowed range.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryDate reads a YYYY-MM-DD query parameter. A missing value
// returns the zero time with no error so callers can apply defaults.
func ParseQueryDate(r *http.Request, key string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, nil
	}
	value, err := time.Parse(queryDateLayout, raw)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseQueryDateRange reads the start/end pair. When both are absent the
// range defaults to the current calendar month; a half-specified or
// inverted range is a validation error.
func ParseQueryDateRange(r *http.Request, now time.Time) (time.Time, time.Time, error) {
	start, err := ParseQueryDate(r, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseQueryDate(r, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if start.IsZero() && end.IsZero() {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return monthStart, monthStart.AddDate(0, 1, -1), nil
	}
	if start.IsZero() || end.IsZero() {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "start and end must be provided together")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "end must not precede start")
	}
	return start, end, nil
}

// ParseQueryUUID reads an optional UUID query parameter. A missing value
// returns nil.
func ParseQueryUUID(r *http.Request, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a UUID").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}
