package dradis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// IssueLibraryScope provides operations on the instance-wide IssueLibrary
// add-on entries. These are not project-scoped.
type IssueLibraryScope struct {
	client *Client
}

// IssueLibrary returns an IssueLibraryScope for managing library entries.
func (c *Client) IssueLibrary() *IssueLibraryScope {
	return &IssueLibraryScope{client: c}
}

// List returns one page of library entries.
func (s *IssueLibraryScope) List(ctx context.Context, opts ...ListOption) ([]IssueLibraryEntry, error) {
	u := listURL(fmt.Sprintf("%s/pro/api/addons/issuelib/entries", s.client.baseURL), opts)

	var entries []IssueLibraryEntry
	if err := s.client.doJSON(ctx, "GET", u, "list library entries", 0, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListAll returns all library entries, auto-paginating.
func (s *IssueLibraryScope) ListAll(ctx context.Context) ([]IssueLibraryEntry, error) {
	var all []IssueLibraryEntry
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

// Get returns a single library entry by its numeric ID.
func (s *IssueLibraryScope) Get(ctx context.Context, id int) (*IssueLibraryEntry, error) {
	u := fmt.Sprintf("%s/pro/api/addons/issuelib/entries/%d", s.client.baseURL, id)

	var entry IssueLibraryEntry
	if err := s.client.doJSON(ctx, "GET", u, "get library entry", 0, nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Create creates a new library entry.
func (s *IssueLibraryScope) Create(ctx context.Context, req IssueLibraryEntryRequest) (*IssueLibraryEntry, error) {
	u := fmt.Sprintf("%s/pro/api/addons/issuelib/entries", s.client.baseURL)

	payload, err := json.Marshal(issueLibraryPayload{Entry: req})
	if err != nil {
		return nil, fmt.Errorf("create library entry: marshal: %w", err)
	}

	var entry IssueLibraryEntry
	if err := s.client.doJSON(ctx, "POST", u, "create library entry", 0, bytes.NewReader(payload), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update replaces the content of a library entry.
func (s *IssueLibraryScope) Update(ctx context.Context, id int, req IssueLibraryEntryRequest) (*IssueLibraryEntry, error) {
	u := fmt.Sprintf("%s/pro/api/addons/issuelib/entries/%d", s.client.baseURL, id)

	payload, err := json.Marshal(issueLibraryPayload{Entry: req})
	if err != nil {
		return nil, fmt.Errorf("update library entry: marshal: %w", err)
	}

	var entry IssueLibraryEntry
	if err := s.client.doJSON(ctx, "PUT", u, "update library entry", 0, bytes.NewReader(payload), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete deletes a library entry.
func (s *IssueLibraryScope) Delete(ctx context.Context, id int) error {
	u := fmt.Sprintf("%s/pro/api/addons/issuelib/entries/%d", s.client.baseURL, id)
	return s.client.doJSON(ctx, "DELETE", u, "delete library entry", 0, nil, nil)
}
