package dradis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// NodeScope provides operations on the node tree of a project.
type NodeScope struct {
	project *ProjectScope
}

// List returns one page of nodes.
func (s *NodeScope) List(ctx context.Context, opts ...ListOption) ([]Node, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := listURL(fmt.Sprintf("%s/pro/api/nodes", s.project.client.baseURL), opts)

	var nodes []Node
	if err := s.project.client.doJSON(ctx, "GET", u, "list nodes", s.project.projectID, nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// ListAll returns all nodes in the project, auto-paginating.
func (s *NodeScope) ListAll(ctx context.Context) ([]Node, error) {
	var all []Node
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

// Get returns a single node by its numeric ID.
func (s *NodeScope) Get(ctx context.Context, id int) (*Node, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d", s.project.client.baseURL, id)

	var node Node
	if err := s.project.client.doJSON(ctx, "GET", u, "get node", s.project.projectID, nil, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Create creates a new node in the project tree.
func (s *NodeScope) Create(ctx context.Context, req NodeRequest) (*Node, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/nodes", s.project.client.baseURL)

	payload, err := json.Marshal(nodePayload{Node: req})
	if err != nil {
		return nil, fmt.Errorf("create node: marshal: %w", err)
	}

	var node Node
	if err := s.project.client.doJSON(ctx, "POST", u, "create node", s.project.projectID, bytes.NewReader(payload), &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Update updates a node. Only the fields set in req are sent.
func (s *NodeScope) Update(ctx context.Context, id int, req NodeRequest) (*Node, error) {
	if err := s.project.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d", s.project.client.baseURL, id)

	payload, err := json.Marshal(nodePayload{Node: req})
	if err != nil {
		return nil, fmt.Errorf("update node: marshal: %w", err)
	}

	var node Node
	if err := s.project.client.doJSON(ctx, "PUT", u, "update node", s.project.projectID, bytes.NewReader(payload), &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// Delete deletes a node and everything attached to it.
func (s *NodeScope) Delete(ctx context.Context, id int) error {
	if err := s.project.validate(); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d", s.project.client.baseURL, id)
	return s.project.client.doJSON(ctx, "DELETE", u, "delete node", s.project.projectID, nil, nil)
}

// FindByLabel returns the first node with the given label, or nil when no
// node matches.
func (s *NodeScope) FindByLabel(ctx context.Context, label string) (*Node, error) {
	nodes, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if n.Label == label {
			return &n, nil
		}
	}
	return nil, nil
}

// Exists reports whether a node with the given label exists in the project.
func (s *NodeScope) Exists(ctx context.Context, label string) (bool, error) {
	node, err := s.FindByLabel(ctx, label)
	if err != nil {
		return false, err
	}
	return node != nil, nil
}

// GetOrCreate returns the node with the given label, creating it as a
// host node when it does not exist yet.
func (s *NodeScope) GetOrCreate(ctx context.Context, label string) (*Node, error) {
	node, err := s.FindByLabel(ctx, label)
	if err != nil {
		return nil, err
	}
	if node != nil {
		return node, nil
	}
	s.project.logger().DebugContext(ctx, "node not found, creating", "label", label)
	return s.Create(ctx, NodeRequest{Label: label, TypeID: Int(NodeTypeHost)})
}
