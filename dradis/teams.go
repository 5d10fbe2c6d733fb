package dradis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// TeamScope provides operations on teams.
type TeamScope struct {
	client *Client
}

// Teams returns a TeamScope for managing teams.
func (c *Client) Teams() *TeamScope {
	return &TeamScope{client: c}
}

// List returns one page of teams.
func (s *TeamScope) List(ctx context.Context, opts ...ListOption) ([]Team, error) {
	u := listURL(fmt.Sprintf("%s/pro/api/teams", s.client.baseURL), opts)

	var teams []Team
	if err := s.client.doJSON(ctx, "GET", u, "list teams", 0, nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// ListAll returns all teams, auto-paginating.
func (s *TeamScope) ListAll(ctx context.Context) ([]Team, error) {
	var all []Team
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

// Get returns a single team by its numeric ID.
func (s *TeamScope) Get(ctx context.Context, id int) (*Team, error) {
	u := fmt.Sprintf("%s/pro/api/teams/%d", s.client.baseURL, id)

	var team Team
	if err := s.client.doJSON(ctx, "GET", u, "get team", 0, nil, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// Create creates a new team.
func (s *TeamScope) Create(ctx context.Context, req TeamRequest) (*Team, error) {
	u := fmt.Sprintf("%s/pro/api/teams", s.client.baseURL)

	payload, err := json.Marshal(teamPayload{Team: req})
	if err != nil {
		return nil, fmt.Errorf("create team: marshal: %w", err)
	}

	var team Team
	if err := s.client.doJSON(ctx, "POST", u, "create team", 0, bytes.NewReader(payload), &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// Update updates a team. Only the fields set in req are sent.
func (s *TeamScope) Update(ctx context.Context, id int, req TeamRequest) (*Team, error) {
	u := fmt.Sprintf("%s/pro/api/teams/%d", s.client.baseURL, id)

	payload, err := json.Marshal(teamPayload{Team: req})
	if err != nil {
		return nil, fmt.Errorf("update team: marshal: %w", err)
	}

	var team Team
	if err := s.client.doJSON(ctx, "PUT", u, "update team", 0, bytes.NewReader(payload), &team); err != nil {
		return nil, err
	}
	return &team, nil
}

// Delete deletes a team.
func (s *TeamScope) Delete(ctx context.Context, id int) error {
	u := fmt.Sprintf("%s/pro/api/teams/%d", s.client.baseURL, id)
	return s.client.doJSON(ctx, "DELETE", u, "delete team", 0, nil, nil)
}
