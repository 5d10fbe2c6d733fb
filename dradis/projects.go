package dradis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// ProjectsScope provides operations on projects themselves. Resources
// nested inside a project are reached through [Client.Project] instead.
type ProjectsScope struct {
	client *Client
}

// Projects returns a ProjectsScope for managing projects.
func (c *Client) Projects() *ProjectsScope {
	return &ProjectsScope{client: c}
}

// List returns one page of projects.
func (s *ProjectsScope) List(ctx context.Context, opts ...ListOption) ([]Project, error) {
	u := listURL(fmt.Sprintf("%s/pro/api/projects", s.client.baseURL), opts)

	var projects []Project
	if err := s.client.doJSON(ctx, "GET", u, "list projects", 0, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListAll returns all projects, auto-paginating.
func (s *ProjectsScope) ListAll(ctx context.Context) ([]Project, error) {
	var all []Project
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

// Get returns a single project by its numeric ID.
func (s *ProjectsScope) Get(ctx context.Context, id int) (*Project, error) {
	u := fmt.Sprintf("%s/pro/api/projects/%d", s.client.baseURL, id)

	var project Project
	if err := s.client.doJSON(ctx, "GET", u, "get project", 0, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Create creates a new project. The team association (TeamID) is
// required by the remote service.
func (s *ProjectsScope) Create(ctx context.Context, req ProjectRequest) (*Project, error) {
	u := fmt.Sprintf("%s/pro/api/projects", s.client.baseURL)

	payload, err := json.Marshal(projectPayload{Project: req})
	if err != nil {
		return nil, fmt.Errorf("create project: marshal: %w", err)
	}

	var project Project
	if err := s.client.doJSON(ctx, "POST", u, "create project", 0, bytes.NewReader(payload), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Update updates a project. Only the fields set in req are sent.
func (s *ProjectsScope) Update(ctx context.Context, id int, req ProjectRequest) (*Project, error) {
	u := fmt.Sprintf("%s/pro/api/projects/%d", s.client.baseURL, id)

	payload, err := json.Marshal(projectPayload{Project: req})
	if err != nil {
		return nil, fmt.Errorf("update project: marshal: %w", err)
	}

	var project Project
	if err := s.client.doJSON(ctx, "PUT", u, "update project", 0, bytes.NewReader(payload), &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Delete deletes a project.
func (s *ProjectsScope) Delete(ctx context.Context, id int) error {
	u := fmt.Sprintf("%s/pro/api/projects/%d", s.client.baseURL, id)
	return s.client.doJSON(ctx, "DELETE", u, "delete project", 0, nil, nil)
}
