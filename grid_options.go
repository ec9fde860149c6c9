package emojistatus

import (
	"errors"
	"fmt"
)

// gridConfig holds configuration during panel grid construction.
type gridConfig struct {
	fileTemplate string
	dimensions   map[string][]string
	panelOpts    []PanelOption
}

// GridOption configures panel grid generation.
// GridOption implements the functional options pattern for [NewPanelGrid].
type GridOption func(*gridConfig) error

// WithFileTemplate sets the template used to render each panel's series
// file path. Dimension keys are available as template variables.
//
//	WithFileTemplate("data/{{.env}}/{{.service}}.yaml")
//
// Returns an error if the template string is empty.
func WithFileTemplate(tmpl string) GridOption {
	return func(cfg *gridConfig) error {
		if tmpl == "" {
			return errors.New("file template required")
		}
		cfg.fileTemplate = tmpl
		return nil
	}
}

// WithDimensions sets the dimension values for cartesian product expansion.
//
// Returns an error if the map is empty, any dimension has no values, or any
// dimension repeats a value.
func WithDimensions(dims map[string][]string) GridOption {
	return func(cfg *gridConfig) error {
		if len(dims) == 0 {
			return errors.New("at least one dimension required")
		}

		copied := make(map[string][]string, len(dims))
		for k, values := range dims {
			if len(values) == 0 {
				return fmt.Errorf("dimension %q has no values", k)
			}
			seen := make(map[string]struct{}, len(values))
			for _, v := range values {
				if v == "" {
					return fmt.Errorf("dimension %q has an empty value", k)
				}
				if _, dup := seen[v]; dup {
					return fmt.Errorf("dimension %q has duplicate value %q", k, v)
				}
				seen[v] = struct{}{}
			}
			copied[k] = append([]string(nil), values...)
		}
		cfg.dimensions = copied
		return nil
	}
}

// WithGridPanelOptions sets panel options applied to every generated panel.
// Can be called multiple times; options accumulate in order.
func WithGridPanelOptions(opts ...PanelOption) GridOption {
	return func(cfg *gridConfig) error {
		cfg.panelOpts = append(cfg.panelOpts, opts...)
		return nil
	}
}
