package service

import (
	"net/http"

	"github.com/gkahiu/fltsd/pkg/httputil"
)

// Capabilities is the static service metadata returned by GetCapabilities.
type Capabilities struct {
	Name                string   `json:"Name"`
	Version             string   `json:"Version"`
	Description         string   `json:"Description"`
	ContactPerson       string   `json:"Contact Person"`
	ContactOrganization string   `json:"Contact Organization"`
	Operations          []string `json:"Operations"`
}

// CapabilitiesHandler exposes the FLTS service capabilities.
type CapabilitiesHandler struct{}

// NewCapabilitiesHandler creates the GetCapabilities handler.
func NewCapabilitiesHandler() *CapabilitiesHandler {
	return &CapabilitiesHandler{}
}

// RequestID implements Handler.
func (h *CapabilitiesHandler) RequestID() string {
	return "GetCapabilities"
}

// Exec implements Handler.
func (h *CapabilitiesHandler) Exec(w http.ResponseWriter, _ *Params) error {
	httputil.WriteJSON(w, http.StatusOK, Capabilities{
		Name:                ServiceName,
		Version:             ServiceVersion,
		Description:         "Service for generating starter title certificates from layout templates",
		ContactPerson:       "John Gitau",
		ContactOrganization: "FLTS",
		Operations:          []string{"GetCapabilities", "GetStarterCert"},
	})
	return nil
}
