package service

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gkahiu/fltsd/pkg/httputil"
	"github.com/gkahiu/fltsd/pkg/logging"
	"github.com/gkahiu/fltsd/pkg/project"
	"github.com/gkahiu/fltsd/pkg/registry"
	"github.com/gkahiu/fltsd/pkg/renderer"
)

// StarterCertHandler generates starter title certificates: one document per
// selected record of the requested template.
type StarterCertHandler struct {
	reg    *registry.Registry
	rend   *renderer.Renderer
	docDir string
	log    *slog.Logger
}

// NewStarterCertHandler creates the GetStarterCert handler. Documents are
// written under docDir; empty means the OS temp directory.
func NewStarterCertHandler(reg *registry.Registry, rend *renderer.Renderer, docDir string, log *slog.Logger) *StarterCertHandler {
	if log == nil {
		log = logging.Nop()
	}
	return &StarterCertHandler{reg: reg, rend: rend, docDir: docDir, log: log}
}

// RequestID implements Handler.
func (h *StarterCertHandler) RequestID() string {
	return "GetStarterCert"
}

// Exec implements Handler. It validates the template id, renders a document
// for each selected record and packages the results: zero documents as an
// informational JSON message, one as a PDF response, several as a zip.
func (h *StarterCertHandler) Exec(w http.ResponseWriter, params *Params) error {
	if params.TemplateID == "" {
		return NewError(http.StatusBadRequest, "Null TEMPLATE_ID parameter")
	}

	info, ok := h.reg.Lookup(params.TemplateID)
	if !ok {
		return NewError(http.StatusBadRequest,
			"'%s' is an invalid value for TEMPLATE_ID parameter", params.TemplateID)
	}

	proj, err := project.Load(info.Path)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return NewError(http.StatusNotFound, "Layout template not found")
		}
		h.log.Error("failed to load project", "template_id", info.ID, "path", info.Path, "error", err)
		return NewError(http.StatusInternalServerError, "Could not load layout template")
	}

	docs, err := h.renderRecords(proj, info, params.Selector)
	if err != nil {
		return err
	}
	return h.sendDocuments(w, docs)
}

// renderRecords renders the selected records. Template-level failures
// (missing layout, empty layout) abort the batch; per-record export
// failures are logged and skipped.
func (h *StarterCertHandler) renderRecords(proj *project.Project, info *registry.ProjectInfo, sel Selector) ([]*renderer.Result, error) {
	var docs []*renderer.Result
	for _, rec := range info.Records {
		ctx := renderer.NewContext(proj)
		ctx.RecordKey = rec.Key
		ctx.DocumentDir = h.docDir
		if info.Layout != "" {
			ctx.LayoutName = info.Layout
		}
		for id, value := range rec.Values {
			ctx.SetItemValue(id, value)
		}

		res, err := h.rend.Render(ctx)
		switch {
		case err == nil:
			docs = append(docs, res)
		case errors.Is(err, renderer.ErrLayoutNotFound):
			return nil, NewError(http.StatusNotFound,
				"'%s' layout not found in the project file", ctx.LayoutName)
		case errors.Is(err, renderer.ErrNoLayoutName), errors.Is(err, renderer.ErrNoPages):
			return nil, NewError(http.StatusInternalServerError, "Invalid layout template")
		case errors.Is(err, renderer.ErrTempFile):
			h.log.Error("could not write document file",
				"template_id", info.ID,
				"record", rec.Key,
				"error", err,
			)
			return nil, NewError(http.StatusInternalServerError,
				"Could not open temporary file to write document")
		default:
			// Export failure for this record only; keep going.
			h.log.Error("document export failed",
				"template_id", info.ID,
				"record", rec.Key,
				"error", err,
			)
		}

		if sel == SelectorFirst {
			break
		}
	}
	return docs, nil
}

// sendDocuments writes the batch outcome: a PDF for a single document, a
// timestamped zip archive for several.
func (h *StarterCertHandler) sendDocuments(w http.ResponseWriter, docs []*renderer.Result) error {
	switch len(docs) {
	case 0:
		httputil.WriteMessage(w, http.StatusOK, "No documents generated")
		return nil
	case 1:
		return httputil.WritePDF(w, docs[0].Name, docs[0].Data)
	default:
		data, err := buildZip(docs)
		if err != nil {
			h.log.Error("failed to build document archive", "error", err)
			return NewError(http.StatusInternalServerError, "Could not package documents")
		}
		name := "flts-documents-" + time.Now().Format("20060102150405") + ".zip"
		return httputil.WriteZip(w, name, data)
	}
}
