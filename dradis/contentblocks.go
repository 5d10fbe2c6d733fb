package dradis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// ContentBlockScope provides operations on the content blocks of a
// project.
type ContentBlockScope struct {
	project *ProjectScope
}

// List returns one page of content blocks.
func (s *ContentBlockScope) List(ctx context.Context, opts ...ListOption) ([]ContentBlock, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := listURL(fmt.Sprintf("%s/pro/api/content_blocks", s.project.client.baseURL), opts)

	var blocks []ContentBlock
	if err := s.project.client.doJSON(ctx, "GET", u, "list content blocks", s.project.projectID, nil, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// ListAll returns all content blocks in the project, auto-paginating.
func (s *ContentBlockScope) ListAll(ctx context.Context) ([]ContentBlock, error) {
	var all []ContentBlock
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

// Get returns a single content block by its numeric ID.
func (s *ContentBlockScope) Get(ctx context.Context, id int) (*ContentBlock, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/content_blocks/%d", s.project.client.baseURL, id)

	var block ContentBlock
	if err := s.project.client.doJSON(ctx, "GET", u, "get content block", s.project.projectID, nil, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// Create creates a new content block.
func (s *ContentBlockScope) Create(ctx context.Context, req ContentBlockRequest) (*ContentBlock, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/content_blocks", s.project.client.baseURL)

	payload, err := json.Marshal(contentBlockPayload{ContentBlock: req})
	if err != nil {
		return nil, fmt.Errorf("create content block: marshal: %w", err)
	}

	var block ContentBlock
	if err := s.project.client.doJSON(ctx, "POST", u, "create content block", s.project.projectID, bytes.NewReader(payload), &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// Update updates a content block. Only the fields set in req are sent.
func (s *ContentBlockScope) Update(ctx context.Context, id int, req ContentBlockRequest) (*ContentBlock, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/content_blocks/%d", s.project.client.baseURL, id)

	payload, err := json.Marshal(contentBlockPayload{ContentBlock: req})
	if err != nil {
		return nil, fmt.Errorf("update content block: marshal: %w", err)
	}

	var block ContentBlock
	if err := s.project.client.doJSON(ctx, "PUT", u, "update content block", s.project.projectID, bytes.NewReader(payload), &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// Delete deletes a content block.
func (s *ContentBlockScope) Delete(ctx context.Context, id int) error {
	if err := s.project.validate(); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/pro/api/content_blocks/%d", s.project.client.baseURL, id)
	return s.project.client.doJSON(ctx, "DELETE", u, "delete content block", s.project.projectID, nil, nil)
}
