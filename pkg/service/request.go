package service

import (
	"net/http"
	"strconv"
	"strings"
)

// Selector controls how many registered records a request processes.
type Selector int

// Selector values: the first record only, or every record.
const (
	SelectorFirst Selector = iota
	SelectorAll
)

// Query parameter names. Matched case-insensitively, as OWS front ends do.
const (
	ParamService    = "SERVICE"
	ParamRequest    = "REQUEST"
	ParamTemplateID = "TEMPLATE_ID"
	ParamQuery      = "QUERY"
)

// Params exposes the derived request parameters for one FLTS request.
type Params struct {
	// Request is the lower-cased operation name, empty when absent.
	Request string

	// TemplateID is the registry key, case-sensitive, empty when absent.
	TemplateID string

	// Selector is parsed from QUERY: 0 selects the first record, 1 selects
	// all records; absent defaults to first.
	Selector Selector
}

// QueryParam returns the first value of the named query parameter, matching
// the name case-insensitively.
func QueryParam(r *http.Request, name string) string {
	for key, values := range r.URL.Query() {
		if strings.EqualFold(key, name) && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// ParseParams derives Params from the request query string. A non-numeric
// or out-of-range QUERY value yields a 400 service Error.
func ParseParams(r *http.Request) (*Params, error) {
	p := &Params{
		Request:    strings.ToLower(QueryParam(r, ParamRequest)),
		TemplateID: QueryParam(r, ParamTemplateID),
		Selector:   SelectorFirst,
	}

	if raw := QueryParam(r, ParamQuery); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 1 {
			return nil, NewError(http.StatusBadRequest,
				"Invalid QUERY parameter. Use 0 for FIRST or 1 for ALL.")
		}
		p.Selector = Selector(n)
	}
	return p, nil
}
