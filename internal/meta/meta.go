// Package meta reads route documents published by an API's own meta
// endpoints, either from disk or over HTTP.
package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"venomdocs/internal/errors"
	"venomdocs/internal/model"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 8 << 20
)

// Format selects the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Version accepts both string and numeric JSON values ("2" and 2).
type Version string

func (v *Version) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case nil:
		*v = ""
	case string:
		*v = Version(x)
	case json.Number:
		*v = Version(x.String())
	default:
		return fmt.Errorf("version: unexpected %T", raw)
	}
	return nil
}

func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("version: expected scalar, got line %d", node.Line)
	}
	if node.Tag == "!!null" {
		*v = ""
		return nil
	}
	*v = Version(node.Value)
	return nil
}

// Document is a versioned set of routes.
type Document struct {
	Version Version        `json:"version" yaml:"version"`
	Routes  []*model.Route `json:"routes" yaml:"routes"`
}

// Summary is the listing entry for one route.
type Summary struct {
	Path    string    `json:"path"`
	Methods []string  `json:"methods"`
	UI      SummaryUI `json:"ui"`
}

type SummaryUI struct {
	GUID string `json:"guid"`
}

// Index is the route listing served to clients.
type Index struct {
	Version string    `json:"version"`
	Routes  []Summary `json:"routes"`
}

// Summarize builds the listing for routes in their given order.
func Summarize(version string, routes []*model.Route) Index {
	idx := Index{Version: version, Routes: make([]Summary, 0, len(routes))}
	for _, r := range routes {
		if r == nil {
			continue
		}
		idx.Routes = append(idx.Routes, Summary{
			Path:    r.Path,
			Methods: r.Methods,
			UI:      SummaryUI{GUID: r.GUID()},
		})
	}
	return idx
}

// Decode reads a document in the given format.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.NewLoadError("decode json routes", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.NewLoadError("decode yaml routes", err)
		}
	default:
		return nil, errors.InvalidArgument("unsupported routes format %q", format)
	}
	for i, route := range doc.Routes {
		if route == nil {
			return nil, errors.NewLoadError(fmt.Sprintf("route %d is null", i), nil)
		}
	}
	return &doc, nil
}

// FormatForPath picks the format from a file extension; anything that is
// not .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFile reads a document from disk.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError("open routes file", err)
	}
	defer f.Close()
	return Decode(f, FormatForPath(path))
}

// Fetch downloads a document. YAML is assumed when the server says so;
// otherwise the body is decoded as JSON.
func Fetch(ctx context.Context, url string) (*Document, error) {
	client := &http.Client{Timeout: defaultTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewLoadError("build request", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.NewLoadError("GET "+url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewLoadError(fmt.Sprintf("GET %s: %s", url, resp.Status), nil)
	}

	return Decode(io.LimitReader(resp.Body, maxBodySize), formatForContentType(resp.Header.Get("Content-Type")))
}

func formatForContentType(ct string) Format {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return FormatJSON
	}
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
