package emojistatus

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// NewPanelGrid creates one panel per combination of dimension values, each
// reading its series from a file whose path is rendered from a template.
//
// The path template uses Go's text/template syntax with the dimension keys
// as variables. Missing template keys cause an error (fail-fast).
//
// Each panel name has the form "Base Name (val1/val2)", with values ordered
// by sorted dimension key. Panel options given with [WithGridPanelOptions]
// apply to every generated panel; a [WithSource] among them is overridden
// by the rendered file source.
//
// Example:
//
//	panels, err := emojistatus.NewPanelGrid("CPU",
//	    emojistatus.WithFileTemplate("data/{{.region}}/{{.tier}}.yaml"),
//	    emojistatus.WithDimensions(map[string][]string{
//	        "region": {"eu", "us"},
//	        "tier":   {"web", "db"},
//	    }),
//	    emojistatus.WithGridPanelOptions(emojistatus.WithTheme(emojistatus.ThemeTraffic)),
//	)
//	// Returns 4 panels, usable with WithPanels(panels...)
func NewPanelGrid(baseName string, opts ...GridOption) ([]Panel, error) {
	if strings.TrimSpace(baseName) == "" {
		return nil, errors.New("base name cannot be empty")
	}

	cfg := &gridConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.fileTemplate == "" {
		return nil, errors.New("file template required")
	}
	if len(cfg.dimensions) == 0 {
		return nil, errors.New("at least one dimension required")
	}

	tmpl, err := template.New("path").Option("missingkey=error").Parse(cfg.fileTemplate)
	if err != nil {
		return nil, fmt.Errorf("invalid file template: %w", err)
	}

	combinations := cartesianProduct(cfg.dimensions)
	panels := make([]Panel, 0, len(combinations))
	for _, combo := range combinations {
		var path strings.Builder
		if err := tmpl.Execute(&path, combo); err != nil {
			return nil, fmt.Errorf("template execution failed: %w", err)
		}

		name := gridPanelName(baseName, combo)
		panelOpts := append(append([]PanelOption(nil), cfg.panelOpts...), WithSource(FileSource(path.String())))

		p, err := NewPanel(name, panelOpts...)
		if err != nil {
			return nil, err
		}
		panels = append(panels, p)
	}

	return panels, nil
}

// cartesianProduct generates all combinations of dimension values.
// Keys are sorted alphabetically for deterministic output; values keep
// their slice order.
//
//	Input:  {"x": ["a","b"], "y": ["1","2"]}
//	Output: [{"x":"a","y":"1"}, {"x":"a","y":"2"}, {"x":"b","y":"1"}, {"x":"b","y":"2"}]
func cartesianProduct(dims map[string][]string) []map[string]string {
	keys := sortedKeys(dims)
	for _, k := range keys {
		if len(dims[k]) == 0 {
			return nil
		}
	}
	if len(keys) == 0 {
		return nil
	}

	total := 1
	for _, k := range keys {
		total *= len(dims[k])
	}
	result := make([]map[string]string, 0, total)

	indices := make([]int, len(keys))
	for {
		combo := make(map[string]string, len(keys))
		for i, k := range keys {
			combo[k] = dims[k][indices[i]]
		}
		result = append(result, combo)

		// odometer increment, rightmost key first
		for i := len(keys) - 1; i >= 0; i-- {
			indices[i]++
			if indices[i] < len(dims[keys[i]]) {
				break
			}
			indices[i] = 0
			if i == 0 {
				return result
			}
		}
	}
}

// gridPanelName creates a name in the format "Base (v1/v2)".
func gridPanelName(baseName string, combo map[string]string) string {
	keys := sortedKeys(combo)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = combo[k]
	}
	return fmt.Sprintf("%s (%s)", baseName, strings.Join(parts, "/"))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
