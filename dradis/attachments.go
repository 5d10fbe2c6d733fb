package dradis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
)

// AttachmentScope provides operations on the files attached to one node.
// Attachments are addressed by filename rather than numeric id.
type AttachmentScope struct {
	project *ProjectScope
	nodeID  int
}

func (s *AttachmentScope) validate() error {
	if err := s.project.validate(); err != nil {
		return err
	}
	if s.nodeID <= 0 {
		return fmt.Errorf("dradis: node id is required")
	}
	return nil
}

// List returns all attachments on the node.
func (s *AttachmentScope) List(ctx context.Context) ([]Attachment, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/attachments", s.project.client.baseURL, s.nodeID)

	var attachments []Attachment
	if err := s.project.client.doJSON(ctx, "GET", u, "list attachments", s.project.projectID, nil, &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

// Get returns the metadata of a single attachment by filename.
func (s *AttachmentScope) Get(ctx context.Context, filename string) (*Attachment, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if filename == "" {
		return nil, fmt.Errorf("dradis: attachment filename is required")
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/attachments/%s",
		s.project.client.baseURL, s.nodeID, url.PathEscape(filename))

	var attachment Attachment
	if err := s.project.client.doJSON(ctx, "GET", u, "get attachment", s.project.projectID, nil, &attachment); err != nil {
		return nil, err
	}
	return &attachment, nil
}

// Upload attaches one or more local files to the node as a single
// multipart request and returns the created attachments.
func (s *AttachmentScope) Upload(ctx context.Context, paths ...string) ([]Attachment, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("dradis: at least one file is required")
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("upload attachments: %w", err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("upload attachments: %s is not a regular file", path)
		}
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/attachments", s.project.client.baseURL, s.nodeID)

	var attachments []Attachment
	if err := s.project.client.doMultipart(ctx, u, "upload attachments", s.project.projectID, paths, &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

// Rename changes the filename of an attachment.
func (s *AttachmentScope) Rename(ctx context.Context, filename, newFilename string) (*Attachment, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if filename == "" || newFilename == "" {
		return nil, fmt.Errorf("dradis: attachment filename is required")
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/attachments/%s",
		s.project.client.baseURL, s.nodeID, url.PathEscape(filename))

	var body attachmentPayload
	body.Attachment.Filename = newFilename
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("rename attachment: marshal: %w", err)
	}

	var attachment Attachment
	if err := s.project.client.doJSON(ctx, "PUT", u, "rename attachment", s.project.projectID, bytes.NewReader(payload), &attachment); err != nil {
		return nil, err
	}
	return &attachment, nil
}

// Delete deletes an attachment by filename.
func (s *AttachmentScope) Delete(ctx context.Context, filename string) error {
	if err := s.validate(); err != nil {
		return err
	}
	if filename == "" {
		return fmt.Errorf("dradis: attachment filename is required")
	}
	u := fmt.Sprintf("%s/pro/api/nodes/%d/attachments/%s",
		s.project.client.baseURL, s.nodeID, url.PathEscape(filename))
	return s.project.client.doJSON(ctx, "DELETE", u, "delete attachment", s.project.projectID, nil, nil)
}
