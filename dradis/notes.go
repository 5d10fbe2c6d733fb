package dradis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// NoteScope provides operations on the notes attached to one node.
type NoteScope struct {
	project *ProjectScope
	nodeID  int
}

func (s *NoteScope) validate() error {
	if err := s.project.validate(); err != nil {
		return err
	}
	if s.nodeID <= 0 {
		return fmt.Errorf("dradis: node id is required")
	}
	return nil
}

// List returns one page of notes on the node.
func (s *NoteScope) List(ctx context.Context, opts ...ListOption) ([]Note, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	u := listURL(fmt.Sprintf("%s/pro/api/nodes/%d/notes", s.project.client.baseURL, s.nodeID), opts)

	var notes []Note
	if err := s.project.client.doJSON(ctx, "GET", u, "list notes", s.project.projectID, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// ListAll returns all notes on the node, auto-paginating.
func (s *NoteScope) ListAll(ctx context.Context) ([]Note, error) {
	var all []Note
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

// Get returns a single note by its numeric ID.
func (s *NoteScope) Get(ctx context.Context, id int) (*Note, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/notes/%d", s.project.client.baseURL, s.nodeID, id)

	var note Note
	if err := s.project.client.doJSON(ctx, "GET", u, "get note", s.project.projectID, nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Create creates a new note on the node.
func (s *NoteScope) Create(ctx context.Context, req NoteRequest) (*Note, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/notes", s.project.client.baseURL, s.nodeID)

	payload, err := json.Marshal(notePayload{Note: req})
	if err != nil {
		return nil, fmt.Errorf("create note: marshal: %w", err)
	}

	var note Note
	if err := s.project.client.doJSON(ctx, "POST", u, "create note", s.project.projectID, bytes.NewReader(payload), &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Update replaces the content of a note.
func (s *NoteScope) Update(ctx context.Context, id int, req NoteRequest) (*Note, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/notes/%d", s.project.client.baseURL, s.nodeID, id)

	payload, err := json.Marshal(notePayload{Note: req})
	if err != nil {
		return nil, fmt.Errorf("update note: marshal: %w", err)
	}

	var note Note
	if err := s.project.client.doJSON(ctx, "PUT", u, "update note", s.project.projectID, bytes.NewReader(payload), &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Delete deletes a note.
func (s *NoteScope) Delete(ctx context.Context, id int) error {
	if err := s.validate(); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/notes/%d", s.project.client.baseURL, s.nodeID, id)
	return s.project.client.doJSON(ctx, "DELETE", u, "delete note", s.project.projectID, nil, nil)
}
