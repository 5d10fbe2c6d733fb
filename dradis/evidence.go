package dradis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// EvidenceScope provides operations on the evidence attached to one node.
type EvidenceScope struct {
	project *ProjectScope
	nodeID  int
}

func (s *EvidenceScope) validate() error {
	if err := s.project.validate(); err != nil {
		return err
	}
	if s.nodeID <= 0 {
		return fmt.Errorf("dradis: node id is required")
	}
	return nil
}

// List returns one page of evidence records on the node.
func (s *EvidenceScope) List(ctx context.Context, opts ...ListOption) ([]Evidence, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	u := listURL(fmt.Sprintf("%s/pro/api/nodes/%d/evidence", s.project.client.baseURL, s.nodeID), opts)

	var evidence []Evidence
	if err := s.project.client.doJSON(ctx, "GET", u, "list evidence", s.project.projectID, nil, &evidence); err != nil {
		return nil, err
	}
	return evidence, nil
}

// ListAll returns all evidence records on the node, auto-paginating.
func (s *EvidenceScope) ListAll(ctx context.Context) ([]Evidence, error) {
	var all []Evidence
	for page := 1; ; page++ {
		batch, err := s.List(ctx, WithPage(page))
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < defaultPageSize {
			break
		}
	}
	return all, nil
}

// Get returns a single evidence record by its numeric ID.
func (s *EvidenceScope) Get(ctx context.Context, id int) (*Evidence, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/evidence/%d", s.project.client.baseURL, s.nodeID, id)

	var evidence Evidence
	if err := s.project.client.doJSON(ctx, "GET", u, "get evidence", s.project.projectID, nil, &evidence); err != nil {
		return nil, err
	}
	return &evidence, nil
}

// Create attaches new evidence for an issue to the node.
func (s *EvidenceScope) Create(ctx context.Context, req EvidenceRequest) (*Evidence, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/evidence", s.project.client.baseURL, s.nodeID)

	payload, err := json.Marshal(evidencePayload{Evidence: req})
	if err != nil {
		return nil, fmt.Errorf("create evidence: marshal: %w", err)
	}

	var evidence Evidence
	if err := s.project.client.doJSON(ctx, "POST", u, "create evidence", s.project.projectID, bytes.NewReader(payload), &evidence); err != nil {
		return nil, err
	}
	return &evidence, nil
}

// Update replaces the content of an evidence record.
func (s *EvidenceScope) Update(ctx context.Context, id int, req EvidenceRequest) (*Evidence, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/evidence/%d", s.project.client.baseURL, s.nodeID, id)

	payload, err := json.Marshal(evidencePayload{Evidence: req})
	if err != nil {
		return nil, fmt.Errorf("update evidence: marshal: %w", err)
	}

	var evidence Evidence
	if err := s.project.client.doJSON(ctx, "PUT", u, "update evidence", s.project.projectID, bytes.NewReader(payload), &evidence); err != nil {
		return nil, err
	}
	return &evidence, nil
}

// Delete deletes an evidence record.
func (s *EvidenceScope) Delete(ctx context.Context, id int) error {
	if err := s.validate(); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/evidence/%d", s.project.client.baseURL, s.nodeID, id)
	return s.project.client.doJSON(ctx, "DELETE", u, "delete evidence", s.project.projectID, nil, nil)
}
