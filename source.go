package emojistatus

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultFieldName names the single field produced from an unnamed series.
const DefaultFieldName = "value"

// SeriesSource supplies the fields a [Board] evaluates for a panel.
//
// A source is called once per refresh and must return a fresh snapshot; the
// board never retains or mutates the returned slices between refreshes.
// Sources are called within a panic recovery boundary: a panicking source
// marks that refresh as failed without stopping the board.
type SeriesSource func(ctx context.Context) ([]Field, error)

// StaticSource returns a [SeriesSource] that always yields copies of fields.
func StaticSource(fields ...Field) SeriesSource {
	snapshot := copyFields(fields)
	return func(ctx context.Context) ([]Field, error) {
		return copyFields(snapshot), nil
	}
}

// FileSource returns a [SeriesSource] that reads fields from a YAML or JSON
// file on every call.
//
// Two document shapes are accepted:
//
//	# a single series, exposed as the field "value"
//	[97.2, 98.1, 99.4]
//
//	# named series; fields are returned sorted by name
//	cpu: [40, 42, 45]
//	memory: [70, 71, 69]
func FileSource(path string) SeriesSource {
	return func(ctx context.Context) ([]Field, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read series file: %w", err)
		}
		fields, err := ParseFields(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return fields, nil
	}
}

// ParseFields decodes a series document in one of the shapes accepted by
// [FileSource].
func ParseFields(data []byte) ([]Field, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse series: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var values Series
		if err := root.Decode(&values); err != nil {
			return nil, fmt.Errorf("series must be a list of numbers: %w", err)
		}
		return []Field{{Name: DefaultFieldName, Values: values}}, nil

	case yaml.MappingNode:
		var named map[string]Series
		if err := root.Decode(&named); err != nil {
			return nil, fmt.Errorf("series must map names to lists of numbers: %w", err)
		}
		names := make([]string, 0, len(named))
		for name := range named {
			names = append(names, name)
		}
		sort.Strings(names)

		fields := make([]Field, 0, len(names))
		for _, name := range names {
			fields = append(fields, Field{Name: name, Values: named[name]})
		}
		return fields, nil

	default:
		return nil, fmt.Errorf("series must be a list or a mapping, got %v", root.Kind)
	}
}

// copyFields deep-copies fields so callers cannot alias each other's samples.
func copyFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{Name: f.Name, Values: append(Series(nil), f.Values...)}
	}
	return out
}
