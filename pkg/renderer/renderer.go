package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/gkahiu/fltsd/pkg/logging"
	"github.com/gkahiu/fltsd/pkg/project"
)

// Render failures the service boundary maps to status codes. ErrTempFile
// covers the document file write and aborts the whole batch; ErrExportFailed
// covers in-memory PDF generation and fails only the record at hand.
var (
	ErrNoLayoutName   = errors.New("layout name not specified")
	ErrLayoutNotFound = errors.New("layout not found in project")
	ErrNoPages        = errors.New("no pages in layout template")
	ErrExportFailed   = errors.New("document export failed")
	ErrTempFile       = errors.New("could not write document file")
)

// Result is one exported document.
type Result struct {
	// Name is the document file name, e.g. "190865.pdf".
	Name string

	// Path is where the document was written.
	Path string

	// Data holds the document bytes.
	Data []byte
}

// Renderer drives layout population and PDF export.
type Renderer struct {
	log *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Renderer) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{log: logging.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render resolves the context layout, applies the item values and exports
// every page to a PDF written under the context document directory.
func (r *Renderer) Render(ctx *Context) (*Result, error) {
	layout, err := r.resolveLayout(ctx)
	if err != nil {
		return nil, err
	}

	r.configureLayout(layout, ctx)

	data, err := exportPDF(layout, ctx)
	if err != nil {
		return nil, err
	}

	name := documentName(ctx)
	dir := ctx.DocumentDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrTempFile, path, err)
	}

	r.log.Debug("document exported",
		"layout", layout.Name,
		"record", ctx.RecordKey,
		"path", path,
		"bytes", len(data),
	)
	return &Result{Name: name, Path: path, Data: data}, nil
}

func (r *Renderer) resolveLayout(ctx *Context) (*project.Layout, error) {
	if ctx.LayoutName == "" {
		return nil, ErrNoLayoutName
	}
	layout := ctx.Project.LayoutByName(ctx.LayoutName)
	if layout == nil {
		return nil, fmt.Errorf("%w: %q", ErrLayoutNotFound, ctx.LayoutName)
	}
	if layout.PageCount() < 1 {
		return nil, fmt.Errorf("%w: %q", ErrNoPages, ctx.LayoutName)
	}
	return layout, nil
}

// configureLayout sets values on items whose id appears in the item-value
// map. Only label items are supported; values for other kinds are ignored.
func (r *Renderer) configureLayout(layout *project.Layout, ctx *Context) {
	for id, value := range ctx.ItemValues {
		item := layout.ItemByID(id)
		if item == nil {
			r.log.Debug("no layout item for value", "layout", layout.Name, "item", id)
			continue
		}
		if item.Kind != project.KindLabel {
			continue
		}
		text, ok := value.(string)
		if !ok {
			text = fmt.Sprint(value)
		}
		item.SetText(text)
	}
}

func exportPDF(layout *project.Layout, ctx *Context) ([]byte, error) {
	first := layout.Pages[0]
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: first.WidthMM, Ht: first.HeightMM},
	})
	pdf.SetTitle(ctx.Title, true)
	pdf.SetAuthor(ctx.Author, true)
	pdf.SetSubject(ctx.Abstract, true)
	pdf.SetCreator("fltsd", true)
	pdf.SetCreationDate(time.Now())
	pdf.SetAutoPageBreak(false, 0)

	for i, page := range layout.Pages {
		orient := "P"
		size := fpdf.SizeType{Wd: page.WidthMM, Ht: page.HeightMM}
		if size.Wd > size.Ht {
			orient = "L"
			size = fpdf.SizeType{Wd: page.HeightMM, Ht: page.WidthMM}
		}
		pdf.AddPageFormat(orient, size)

		for _, item := range layout.Items {
			if item.Page != i || item.Kind != project.KindLabel {
				continue
			}
			drawLabel(pdf, item)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return buf.Bytes(), nil
}

func drawLabel(pdf *fpdf.Fpdf, item *project.Item) {
	pdf.SetFont("Helvetica", "", item.FontSize)
	pdf.SetXY(item.X, item.Y)
	pdf.CellFormat(item.Width, item.Height, item.Text, "", 0, cellAlign(item.Align), false, 0, "")
}

func cellAlign(align string) string {
	switch align {
	case "center":
		return "CM"
	case "right":
		return "RM"
	default:
		return "LM"
	}
}

func documentName(ctx *Context) string {
	if ctx.Naming == NamingRecordKey && ctx.RecordKey != "" {
		return ctx.RecordKey + ".pdf"
	}
	return uuid.NewString() + ".pdf"
}
