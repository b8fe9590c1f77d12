package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gkahiu/fltsd/pkg/project"
	"github.com/gkahiu/fltsd/pkg/registry"
	"github.com/gkahiu/fltsd/pkg/renderer"
)

func newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration, template manifest and project files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			if cfg.TemplatesFile == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no template manifest configured; built-in samples will be used")
				return nil
			}

			reg, err := registry.LoadManifest(cfg.TemplatesFile)
			if err != nil {
				return err
			}

			var failed bool
			for _, id := range reg.IDs() {
				info, _ := reg.Lookup(id)
				if err := validateTemplate(info); err != nil {
					failed = true
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", id, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "OK   %s (%d records)\n", id, len(info.Records))
			}
			if failed {
				return fmt.Errorf("template manifest validation failed")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d templates validated\n", reg.Len())
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the fltsd configuration file")
	return cmd
}

// validateTemplate checks that the project file loads and the configured
// layout exists with at least one page.
func validateTemplate(info *registry.ProjectInfo) error {
	proj, err := project.Load(info.Path)
	if err != nil {
		return err
	}

	layoutName := info.Layout
	if layoutName == "" {
		layoutName = renderer.DefaultLayoutName
	}
	layout := proj.LayoutByName(layoutName)
	if layout == nil {
		return fmt.Errorf("layout %q not found in %s", layoutName, info.Path)
	}
	if layout.PageCount() < 1 {
		return fmt.Errorf("layout %q has no pages", layoutName)
	}
	return nil
}
