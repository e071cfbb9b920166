// Package report records query outcomes and exports them as JSON, CSV or
// YAML.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DrSkyle/linkpath/pkg/display"
	"github.com/DrSkyle/linkpath/pkg/storage"
)

// Result is the exported form of one query.
type Result struct {
	ID         string   `json:"id" yaml:"id"`
	Label      string   `json:"label,omitempty" yaml:"label,omitempty"`
	From       string   `json:"from" yaml:"from"`
	Through    string   `json:"through,omitempty" yaml:"through,omitempty"`
	To         string   `json:"to" yaml:"to"`
	Found      bool     `json:"found" yaml:"found"`
	Length     int      `json:"length" yaml:"length"`
	Path       []string `json:"path,omitempty" yaml:"path,omitempty"`
	Titles     []string `json:"titles,omitempty" yaml:"titles,omitempty"`
	Visited    int      `json:"visited" yaml:"visited"`
	DurationMS float64  `json:"duration_ms" yaml:"duration_ms"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, csv, yaml or yml, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported report format %q", s)
}

// FormatFor guesses the format from a file name, defaulting to JSON.
func FormatFor(key string) Format {
	i := strings.LastIndexByte(key, '.')
	if i < 0 {
		return FormatJSON
	}
	if f, err := ParseFormat(key[i+1:]); err == nil {
		return f
	}
	return FormatJSON
}

var csvHeader = []string{
	"ID",
	"Label",
	"From",
	"Through",
	"To",
	"Found",
	"Length",
	"Path",
	"Visited",
	"DurationMS",
	"Error",
}

// Encode renders results in the given format.
func Encode(results []Result, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil

	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatCSV:
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(csvHeader); err != nil {
			return nil, err
		}
		for _, r := range results {
			record := []string{
				r.ID,
				r.Label,
				r.From,
				r.Through,
				r.To,
				strconv.FormatBool(r.Found),
				strconv.Itoa(r.Length),
				strings.Join(r.Path, display.Separator),
				strconv.Itoa(r.Visited),
				strconv.FormatFloat(r.DurationMS, 'f', 3, 64),
				r.Error,
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
		w.Flush()
		return buf.Bytes(), w.Error()
	}
	return nil, fmt.Errorf("unsupported report format %q", format)
}

// Write encodes results and stores them under key.
func Write(ctx context.Context, blobs storage.BlobStore, key string, format Format, results []Result) error {
	data, err := Encode(results, format)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := blobs.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
