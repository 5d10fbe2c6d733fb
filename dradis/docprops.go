package dradis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
)

// DocumentPropertyScope provides operations on the report document
// properties of a project. Properties are addressed by name (for
// example "dradis.client") rather than numeric id.
type DocumentPropertyScope struct {
	project *ProjectScope
}

// List returns all document properties of the project.
func (s *DocumentPropertyScope) List(ctx context.Context) ([]DocumentProperty, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/document_properties", s.project.client.baseURL)

	// The API returns an array of single-pair objects.
	var raw []map[string]string
	if err := s.project.client.doJSON(ctx, "GET", u, "list document properties", s.project.projectID, nil, &raw); err != nil {
		return nil, err
	}

	var props []DocumentProperty
	for _, pair := range raw {
		props = append(props, propsFromMap(pair)...)
	}
	return props, nil
}

// Get returns a single document property by name.
func (s *DocumentPropertyScope) Get(ctx context.Context, name string) (*DocumentProperty, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("dradis: document property name is required")
	}
	u := fmt.Sprintf("%s/pro/api/document_properties/%s",
		s.project.client.baseURL, url.PathEscape(name))

	var raw map[string]string
	if err := s.project.client.doJSON(ctx, "GET", u, "get document property", s.project.projectID, nil, &raw); err != nil {
		return nil, err
	}
	if value, ok := raw[name]; ok {
		return &DocumentProperty{Name: name, Value: value}, nil
	}
	// Fall back to the single pair the server sent.
	props := propsFromMap(raw)
	if len(props) == 0 {
		return nil, fmt.Errorf("get document property: empty response")
	}
	return &props[0], nil
}

// Create creates document properties from a name/value map and returns
// the created set.
func (s *DocumentPropertyScope) Create(ctx context.Context, properties map[string]string) ([]DocumentProperty, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	if len(properties) == 0 {
		return nil, fmt.Errorf("dradis: at least one document property is required")
	}
	u := fmt.Sprintf("%s/pro/api/document_properties", s.project.client.baseURL)

	payload, err := json.Marshal(docPropsCreatePayload{DocumentProperties: properties})
	if err != nil {
		return nil, fmt.Errorf("create document properties: marshal: %w", err)
	}

	var raw map[string]string
	if err := s.project.client.doJSON(ctx, "POST", u, "create document properties", s.project.projectID, bytes.NewReader(payload), &raw); err != nil {
		return nil, err
	}
	return propsFromMap(raw), nil
}

// Update replaces the value of a document property.
func (s *DocumentPropertyScope) Update(ctx context.Context, name, value string) (*DocumentProperty, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("dradis: document property name is required")
	}
	u := fmt.Sprintf("%s/pro/api/document_properties/%s",
		s.project.client.baseURL, url.PathEscape(name))

	var body docPropUpdatePayload
	body.DocumentProperty.Value = value
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("update document property: marshal: %w", err)
	}

	var raw map[string]string
	if err := s.project.client.doJSON(ctx, "PUT", u, "update document property", s.project.projectID, bytes.NewReader(payload), &raw); err != nil {
		return nil, err
	}
	if v, ok := raw[name]; ok {
		return &DocumentProperty{Name: name, Value: v}, nil
	}
	return &DocumentProperty{Name: name, Value: value}, nil
}

// Delete deletes a document property by name.
func (s *DocumentPropertyScope) Delete(ctx context.Context, name string) error {
	if err := s.project.validate(); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("dradis: document property name is required")
	}
	u := fmt.Sprintf("%s/pro/api/document_properties/%s",
		s.project.client.baseURL, url.PathEscape(name))
	return s.project.client.doJSON(ctx, "DELETE", u, "delete document property", s.project.projectID, nil, nil)
}

// propsFromMap flattens a name/value object into a sorted property list.
func propsFromMap(raw map[string]string) []DocumentProperty {
	props := make([]DocumentProperty, 0, len(raw))
	for name, value := range raw {
		props = append(props, DocumentProperty{Name: name, Value: value})
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	return props
}
