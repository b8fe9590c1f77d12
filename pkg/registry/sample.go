package registry

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed samples/*.xml
var sampleFS embed.FS

// Sample template ids.
const (
	SamplePersonID = "D4F9A1A4"
	SampleSchemeID = "86AB5327"
)

// Sample materializes the built-in demo projects under dir and returns a
// Registry mimicking values from a records database: a person certificate
// template with two holders and a scheme template with two scheme areas.
func Sample(dir string) (*Registry, error) {
	personPath, err := writeSample(dir, "starter_person.xml")
	if err != nil {
		return nil, err
	}
	schemePath, err := writeSample(dir, "starter_scheme.xml")
	if err != nil {
		return nil, err
	}

	return New(
		ProjectInfo{
			ID:   SamplePersonID,
			Path: personPath,
			Records: []Record{
				{Key: "190865", Values: map[string]string{
					"lbl_first_name": "Alex",
					"lbl_last_name":  "Jones",
				}},
				{Key: "569813", Values: map[string]string{
					"lbl_first_name": "Tracy",
					"lbl_last_name":  "Lee",
				}},
			},
		},
		ProjectInfo{
			ID:   SampleSchemeID,
			Path: schemePath,
			Records: []Record{
				{Key: "Makongeni", Values: map[string]string{
					"lbl_county":       "Nairobi",
					"lbl_constituency": "Madaraka",
				}},
				{Key: "Ichaweri", Values: map[string]string{
					"lbl_county":       "Kiambu",
					"lbl_constituency": "Gatundu South",
				}},
			},
		},
	)
}

func writeSample(dir, name string) (string, error) {
	data, err := sampleFS.ReadFile("samples/" + name)
	if err != nil {
		return "", fmt.Errorf("embedded sample %s: %w", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write sample project %s: %w", path, err)
	}
	return path, nil
}
