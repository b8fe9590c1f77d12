package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkahiu/fltsd/pkg/registry"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	reg, err := registry.Sample(t.TempDir())
	require.NoError(t, err)
	svc, err := New(reg, WithDocumentDir(t.TempDir()))
	require.NoError(t, err)
	return svc
}

func doRequest(t *testing.T, svc *Service, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	svc.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	return body["message"]
}

func TestServiceIdentity(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	assert.Equal(t, "FLTS", svc.Name())
	assert.Equal(t, "1.0.0", svc.Version())
	assert.Equal(t, []string{"GetCapabilities", "GetStarterCert"}, svc.SupportedRequests())
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	t.Run("missing REQUEST parameter", func(t *testing.T) {
		t.Parallel()
		rec := doRequest(t, newTestService(t), "SERVICE=FLTS")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Null REQUEST parameter", errorMessage(t, rec))
	})

	t.Run("unknown REQUEST lists supported operations", func(t *testing.T) {
		t.Parallel()
		rec := doRequest(t, newTestService(t), "REQUEST=GetLandHoldTitle")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		msg := errorMessage(t, rec)
		assert.Contains(t, msg, "GetLandHoldTitle")
		assert.Contains(t, msg, "GetCapabilities")
		assert.Contains(t, msg, "GetStarterCert")
	})

	t.Run("request name is case-insensitive", func(t *testing.T) {
		t.Parallel()
		rec := doRequest(t, newTestService(t), "REQUEST=getcapabilities")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("parameter names are case-insensitive", func(t *testing.T) {
		t.Parallel()
		rec := doRequest(t, newTestService(t), "request=GetCapabilities")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid QUERY parameter", func(t *testing.T) {
		t.Parallel()
		rec := doRequest(t, newTestService(t), "REQUEST=GetStarterCert&TEMPLATE_ID=D4F9A1A4&QUERY=abc")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorMessage(t, rec), "Invalid QUERY parameter")
	})

	t.Run("out-of-range QUERY parameter", func(t *testing.T) {
		t.Parallel()
		rec := doRequest(t, newTestService(t), "REQUEST=GetStarterCert&TEMPLATE_ID=D4F9A1A4&QUERY=5")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCapabilities(t *testing.T) {
	t.Parallel()

	rec := doRequest(t, newTestService(t), "REQUEST=GetCapabilities")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var caps Capabilities
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &caps))
	assert.Equal(t, "FLTS", caps.Name)
	assert.Equal(t, "1.0.0", caps.Version)
	assert.Contains(t, caps.Operations, "GetStarterCert")

	// Contact keys are spelled with spaces on the wire.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw, "Contact Person")
	assert.Contains(t, raw, "Contact Organization")
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	reg, err := registry.New(registry.ProjectInfo{ID: "A1", Path: "/srv/a.xml"})
	require.NoError(t, err)
	svc, err := New(reg)
	require.NoError(t, err)

	t.Run("rejects empty request id", func(t *testing.T) {
		assert.Error(t, svc.register(stubHandler{id: ""}))
	})

	t.Run("rejects duplicate request id ignoring case", func(t *testing.T) {
		assert.Error(t, svc.register(stubHandler{id: "getcapabilities"}))
	})
}

type stubHandler struct{ id string }

func (h stubHandler) RequestID() string                       { return h.id }
func (h stubHandler) Exec(http.ResponseWriter, *Params) error { return nil }

func TestParseParams(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		p, err := ParseParams(req)
		require.NoError(t, err)
		assert.Empty(t, p.Request)
		assert.Empty(t, p.TemplateID)
		assert.Equal(t, SelectorFirst, p.Selector)
	})

	t.Run("request lower-cased, template id preserved", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?REQUEST=GetStarterCert&TEMPLATE_ID=D4F9A1A4", nil)
		p, err := ParseParams(req)
		require.NoError(t, err)
		assert.Equal(t, "getstartercert", p.Request)
		assert.Equal(t, "D4F9A1A4", p.TemplateID)
	})

	t.Run("QUERY=1 selects all", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?QUERY=1", nil)
		p, err := ParseParams(req)
		require.NoError(t, err)
		assert.Equal(t, SelectorAll, p.Selector)
	})

	t.Run("non-numeric QUERY is a 400 service error", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/?QUERY=first", nil)
		_, err := ParseParams(req)
		se, ok := AsServiceError(err)
		assert.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, se.Code)
	})
}
