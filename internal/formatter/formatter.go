// Package formatter renders validation results for CLI consumption.
package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/qiita-spots/qtp-diversity/internal/types"
	"gopkg.in/yaml.v3"
)

// Formatter defines the interface for formatting results
type Formatter interface {
	Format(result *types.Result) (string, error)
}

// Type represents the type of formatter
type Type string

const (
	// TypeJSON formats results as JSON
	TypeJSON Type = "json"
	// TypeYAML formats results as YAML
	TypeYAML Type = "yaml"
	// TypeTable formats results as a table
	TypeTable Type = "table"
)

// New returns the formatter for the given output type
func New(t Type) (Formatter, error) {
	switch t {
	case TypeJSON:
		return &JSON{}, nil
	case TypeYAML:
		return &YAML{}, nil
	case TypeTable:
		return &Table{}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", t)
	}
}

// JSON implements JSON formatting
type JSON struct{}

// YAML implements YAML formatting
type YAML struct{}

// Table implements table formatting
type Table struct{}

// Format formats a result as JSON
func (j *JSON) Format(result *types.Result) (string, error) {
	bytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error formatting as JSON: %w", err)
	}
	return string(bytes), nil
}

// Format formats a result as YAML
func (y *YAML) Format(result *types.Result) (string, error) {
	bytes, err := yaml.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("error formatting as YAML: %w", err)
	}
	return string(bytes), nil
}

// Format formats a result as a table using go-pretty/v6/table
func (t *Table) Format(result *types.Result) (string, error) {
	if !result.Success {
		tw := table.NewWriter()
		tw.SetStyle(table.StyleLight)
		tw.SetTitle("VALIDATION FAILED")
		tw.AppendRow(table.Row{"Error", result.Error})
		return tw.Render() + "\n", nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Options.SeparateColumns = true
	tw.SetTitle("VALIDATED ARTIFACTS")
	tw.AppendHeader(table.Row{"#", "Type", "Path", "Role"})
	for i, info := range result.Artifacts {
		for _, file := range info.Files {
			tw.AppendRow(table.Row{i + 1, info.Type, file.Path, file.Role})
		}
	}
	return tw.Render() + "\n", nil
}
