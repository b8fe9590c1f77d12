package registry

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Common errors for manifest loading.
var (
	ErrManifestNotFound = errors.New("template manifest not found")
	ErrInvalidManifest  = errors.New("invalid template manifest")
)

// manifest is the YAML document shape for template manifests.
type manifest struct {
	Templates []ProjectInfo `yaml:"templates"`
}

// LoadManifest reads a Registry from a YAML manifest file:
//
//	templates:
//	  - id: D4F9A1A4
//	    path: /srv/flts/projects/starter_person.xml
//	    layout: Main
//	    records:
//	      - key: "190865"
//	        values:
//	          lbl_first_name: Alex
//	          lbl_last_name: Jones
func LoadManifest(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if len(m.Templates) == 0 {
		return nil, fmt.Errorf("%w: no templates defined", ErrInvalidManifest)
	}

	r, err := New(m.Templates...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return r, nil
}
