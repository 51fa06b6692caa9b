package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/validator"
)

// queryDate reads a YYYY-MM-DD query parameter, falling back to today.
func queryDate(r *http.Request, name string, clk clock.Clock) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return clock.Today(clk), nil
	}
	date, err := clock.ParseDate(raw)
	if err != nil {
		return time.Time{}, validator.ValidationErrors{{Field: name, Message: name + " must be in YYYY-MM-DD format"}}
	}
	return date, nil
}

// queryOptionalDate reads a YYYY-MM-DD query parameter, nil when absent.
func queryOptionalDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	date, err := clock.ParseDate(raw)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: name, Message: name + " must be in YYYY-MM-DD format"}}
	}
	return &date, nil
}

// queryRange reads from/to, each defaulting to today.
func queryRange(r *http.Request, clk clock.Clock) (time.Time, time.Time, error) {
	from, err := queryDate(r, "from", clk)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := queryDate(r, "to", clk)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func queryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
