package dradis

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
)

// defaultPageSize is the page size the API uses for paginated index
// endpoints. ListAll stops when a page comes back shorter than this.
const defaultPageSize = 25

// ListOption configures pagination for index endpoints.
type ListOption func(params url.Values)

// WithPage requests a specific page (1-based) of a paginated index.
func WithPage(n int) ListOption {
	return func(p url.Values) { p.Set("page", strconv.Itoa(n)) }
}

// listURL appends encoded query parameters to an endpoint URL.
func listURL(endpoint string, opts []ListOption) string {
	params := url.Values{}
	for _, opt := range opts {
		opt(params)
	}
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}

// ProjectScope provides access to resources within a specific Dradis
// project. All calls made through it carry the Dradis-Project-Id header.
type ProjectScope struct {
	client    *Client
	projectID int
}

// Project returns a ProjectScope for the project with the given id.
func (c *Client) Project(id int) *ProjectScope {
	return &ProjectScope{client: c, projectID: id}
}

// ID returns the project id this scope addresses.
func (p *ProjectScope) ID() int { return p.projectID }

// Nodes returns a NodeScope for the nodes in this project.
func (p *ProjectScope) Nodes() *NodeScope {
	return &NodeScope{project: p}
}

// Issues returns an IssueScope for the issues in this project.
func (p *ProjectScope) Issues() *IssueScope {
	return &IssueScope{project: p}
}

// Evidence returns an EvidenceScope for the evidence on the given node.
func (p *ProjectScope) Evidence(nodeID int) *EvidenceScope {
	return &EvidenceScope{project: p, nodeID: nodeID}
}

// Notes returns a NoteScope for the notes on the given node.
func (p *ProjectScope) Notes(nodeID int) *NoteScope {
	return &NoteScope{project: p, nodeID: nodeID}
}

// Attachments returns an AttachmentScope for the files on the given node.
func (p *ProjectScope) Attachments(nodeID int) *AttachmentScope {
	return &AttachmentScope{project: p, nodeID: nodeID}
}

// ContentBlocks returns a ContentBlockScope for this project.
func (p *ProjectScope) ContentBlocks() *ContentBlockScope {
	return &ContentBlockScope{project: p}
}

// DocumentProperties returns a DocumentPropertyScope for this project.
func (p *ProjectScope) DocumentProperties() *DocumentPropertyScope {
	return &DocumentPropertyScope{project: p}
}

// validate checks that the scope addresses a real project id before any
// path is formatted with it.
func (p *ProjectScope) validate() error {
	if p.projectID <= 0 {
		return fmt.Errorf("dradis: project id is required")
	}
	return nil
}

func (p *ProjectScope) logger() *slog.Logger {
	return p.client.logger.With("project_id", p.projectID)
}
