package dradis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// IssueScope provides operations on the issues of a project.
type IssueScope struct {
	project *ProjectScope
}

// List returns one page of issues.
func (s *IssueScope) List(ctx context.Context, opts ...ListOption) ([]Issue, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := listURL(fmt.Sprintf("%s/pro/api/issues", s.project.client.baseURL), opts)

	var issues []Issue
	if err := s.project.client.doJSON(ctx, "GET", u, "list issues", s.project.projectID, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// ListAll returns all issues in the project, auto-paginating.
func (s *IssueScope) ListAll(ctx context.Context) ([]Issue, error) {
	var all []Issue
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

// Get returns a single issue by its numeric ID.
func (s *IssueScope) Get(ctx context.Context, id int) (*Issue, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/issues/%d", s.project.client.baseURL, id)

	var issue Issue
	if err := s.project.client.doJSON(ctx, "GET", u, "get issue", s.project.projectID, nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// Create creates a new issue from its full text content.
func (s *IssueScope) Create(ctx context.Context, req IssueRequest) (*Issue, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/issues", s.project.client.baseURL)

	payload, err := json.Marshal(issuePayload{Issue: req})
	if err != nil {
		return nil, fmt.Errorf("create issue: marshal: %w", err)
	}

	var issue Issue
	if err := s.project.client.doJSON(ctx, "POST", u, "create issue", s.project.projectID, bytes.NewReader(payload), &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// Update replaces the text content of an issue.
func (s *IssueScope) Update(ctx context.Context, id int, req IssueRequest) (*Issue, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/issues/%d", s.project.client.baseURL, id)

	payload, err := json.Marshal(issuePayload{Issue: req})
	if err != nil {
		return nil, fmt.Errorf("update issue: marshal: %w", err)
	}

	var issue Issue
	if err := s.project.client.doJSON(ctx, "PUT", u, "update issue", s.project.projectID, bytes.NewReader(payload), &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// Delete deletes an issue and its evidence.
func (s *IssueScope) Delete(ctx context.Context, id int) error {
	if err := s.project.validate(); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/pro/api/issues/%d", s.project.client.baseURL, id)
	return s.project.client.doJSON(ctx, "DELETE", u, "delete issue", s.project.projectID, nil, nil)
}

// FindByTitle returns the first issue with the given title, or nil when
// no issue matches.
func (s *IssueScope) FindByTitle(ctx context.Context, title string) (*Issue, error) {
	issues, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, issue := range issues {
		if issue.Title == title {
			return &issue, nil
		}
	}
	return nil, nil
}

// Exists reports whether an issue with the given title exists in the
// project.
func (s *IssueScope) Exists(ctx context.Context, title string) (bool, error) {
	issue, err := s.FindByTitle(ctx, title)
	if err != nil {
		return false, err
	}
	return issue != nil, nil
}
