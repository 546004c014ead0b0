package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/aretw0/autoplan/pkg/domain"
)

// FileSource reads the index from a JSON file.
type FileSource struct {
	Path string
}

// Fetch reads and decodes the file.
func (s FileSource) Fetch(ctx context.Context) (*domain.TemplateIndex, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template index: %w", err)
	}
	return DecodeIndex(data)
}

// HTTPSource fetches the index with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch downloads and decodes the index.
func (s HTTPSource) Fetch(ctx context.Context) (*domain.TemplateIndex, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build index request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch template index: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read template index body: %w", err)
	}
	return DecodeIndex(data)
}

// StaticSource serves an index already in memory.
type StaticSource struct {
	Index *domain.TemplateIndex
}

// Fetch returns a normalised copy of the index header with the same entries.
func (s StaticSource) Fetch(ctx context.Context) (*domain.TemplateIndex, error) {
	if s.Index == nil {
		return domain.EmptyTemplateIndex(), nil
	}
	idx := *s.Index
	normalize(&idx)
	return &idx, nil
}

// DecodeIndex parses an index document.
func DecodeIndex(data []byte) (*domain.TemplateIndex, error) {
	var idx domain.TemplateIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to decode template index: %w", err)
	}
	normalize(&idx)
	return &idx, nil
}

// normalize fills nil slices and derived counts so consumers never see a
// partially populated index.
func normalize(idx *domain.TemplateIndex) {
	if idx.Workflows == nil {
		idx.Workflows = []domain.TemplateEntry{}
	}
	if idx.Integrations == nil {
		idx.Integrations = []string{}
	}
	if len(idx.Categories) == 0 {
		idx.Categories = categoryFacets(idx.Workflows)
	}
	idx.TotalWorkflows = len(idx.Workflows)
}
