package service

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/gkahiu/fltsd/pkg/renderer"
)

// buildZip packages the documents into a zip archive, one entry per
// document named by its file name.
func buildZip(docs []*renderer.Result) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, doc := range docs {
		entry, err := zw.Create(doc.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create archive entry %s: %w", doc.Name, err)
		}
		if _, err := entry.Write(doc.Data); err != nil {
			return nil, fmt.Errorf("failed to write archive entry %s: %w", doc.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
