package dradis

import (
	"encoding/json"
	"fmt"
	"time"
)

// dateOnly is the fallback layout for date fields such as team_since.
const dateOnly = "2006-01-02"

// Timestamp represents a point in time serialized as a string. On
// deserialization it accepts both RFC 3339 values and bare dates, which
// the API mixes depending on the field. Serialization always produces
// RFC 3339.
type Timestamp time.Time

// Time returns the underlying time.Time value.
func (t Timestamp) Time() time.Time { return time.Time(t) }

// MarshalJSON serializes the timestamp as RFC 3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339))
}

// UnmarshalJSON deserializes a string timestamp, accepting RFC 3339 or a
// bare date.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("unmarshal timestamp: %w", err)
	}
	if value == "" {
		*t = Timestamp(time.Time{})
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse(dateOnly, value)
	}
	if err != nil {
		return fmt.Errorf("unmarshal timestamp %q: %w", value, err)
	}
	*t = Timestamp(parsed)
	return nil
}

// Int returns a pointer to v, for optional numeric request fields.
func Int(v int) *int { return &v }

// Node type ids accepted by the API.
const (
	// NodeTypeNote marks an organizational node (intro, summary, ...).
	NodeTypeNote = 0
	// NodeTypeHost marks an endpoint node (host, website, app).
	NodeTypeHost = 1
)

// --- Response types (hand-written, aligned with the Dradis Pro API v1) ---

// Team represents a Dradis team (client organization).
type Team struct {
	ID        int              `json:"id"`
	Name      string           `json:"name,omitempty"`
	TeamSince *Timestamp       `json:"team_since,omitempty"`
	CreatedAt *Timestamp       `json:"created_at,omitempty"`
	UpdatedAt *Timestamp       `json:"updated_at,omitempty"`
	Projects  []ProjectSummary `json:"projects,omitempty"`
}

// ProjectSummary is the abbreviated project reference embedded in team
// responses.
type ProjectSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// TeamSummary is the abbreviated team reference embedded in project
// responses.
type TeamSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// Author identifies a user with access to a project.
type Author struct {
	Email string `json:"email"`
}

// Project represents a Dradis project.
type Project struct {
	ID        int          `json:"id"`
	Name      string       `json:"name,omitempty"`
	Team      *TeamSummary `json:"team,omitempty"`
	Authors   []Author     `json:"authors,omitempty"`
	Owners    []Author     `json:"owners,omitempty"`
	CreatedAt *Timestamp   `json:"created_at,omitempty"`
	UpdatedAt *Timestamp   `json:"updated_at,omitempty"`
}

// Node represents a node in a project's tree (host, website, or
// organizational grouping).
type Node struct {
	ID        int        `json:"id"`
	Label     string     `json:"label,omitempty"`
	TypeID    int        `json:"type_id"`
	ParentID  *int       `json:"parent_id,omitempty"`
	Position  int        `json:"position,omitempty"`
	ProjectID int        `json:"project_id,omitempty"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
	UpdatedAt *Timestamp `json:"updated_at,omitempty"`
}

// Issue represents a finding in a project.
type Issue struct {
	ID        int               `json:"id"`
	Title     string            `json:"title,omitempty"`
	Text      string            `json:"text,omitempty"`
	Author    string            `json:"author,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	CreatedAt *Timestamp        `json:"created_at,omitempty"`
	UpdatedAt *Timestamp        `json:"updated_at,omitempty"`
}

// IssueSummary is the abbreviated issue reference embedded in evidence
// responses.
type IssueSummary struct {
	ID    int    `json:"id"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Evidence represents an instance of an issue on a specific node.
type Evidence struct {
	ID      int               `json:"id"`
	Content string            `json:"content,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Issue   *IssueSummary     `json:"issue,omitempty"`
}

// Note represents a note attached to a node.
type Note struct {
	ID         int               `json:"id"`
	Title      string            `json:"title,omitempty"`
	Text       string            `json:"text,omitempty"`
	CategoryID int               `json:"category_id,omitempty"`
	Author     string            `json:"author,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// ContentBlock represents a block of report content in a project.
type ContentBlock struct {
	ID         int               `json:"id"`
	Title      string            `json:"title,omitempty"`
	BlockGroup string            `json:"block_group,omitempty"`
	Content    string            `json:"content,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// DocumentProperty is a single name/value report property.
type DocumentProperty struct {
	Name  string
	Value string
}

// Attachment represents a file attached to a node. Attachments are
// addressed by filename, not numeric id.
type Attachment struct {
	Filename string `json:"filename"`
	Link     string `json:"link,omitempty"`
}

// IssueLibraryEntry represents an entry in the IssueLibrary add-on.
type IssueLibraryEntry struct {
	ID      int               `json:"id"`
	Title   string            `json:"title,omitempty"`
	Content string            `json:"content,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// --- Request types ---

// TeamRequest carries the writable fields of a team. Unset fields are
// omitted, so the same type serves create and partial update.
type TeamRequest struct {
	Name string `json:"name,omitempty"`
	// TeamSince is a bare date (YYYY-MM-DD); the server defaults to today.
	TeamSince string `json:"team_since,omitempty"`
}

// ProjectRequest carries the writable fields of a project.
type ProjectRequest struct {
	Name             string   `json:"name,omitempty"`
	TeamID           *int     `json:"client_id,omitempty"`
	ReportTemplateID *int     `json:"report_template_properties_id,omitempty"`
	Authors          []Author `json:"author_ids,omitempty"`
	Template         string   `json:"template,omitempty"`
}

// NodeRequest carries the writable fields of a node. TypeID, ParentID and
// Position are pointers because zero is a meaningful value for each.
type NodeRequest struct {
	Label    string `json:"label,omitempty"`
	TypeID   *int   `json:"type_id,omitempty"`
	ParentID *int   `json:"parent_id,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// IssueRequest carries the writable fields of an issue. Text is the full
// issue content, including the #[Title]# field.
type IssueRequest struct {
	Text string `json:"text"`
}

// EvidenceRequest carries the writable fields of an evidence record.
type EvidenceRequest struct {
	Content string `json:"content"`
	IssueID int    `json:"issue_id,string"`
}

// NoteRequest carries the writable fields of a note.
type NoteRequest struct {
	Text       string `json:"text"`
	CategoryID *int   `json:"category_id,omitempty"`
}

// ContentBlockRequest carries the writable fields of a content block.
type ContentBlockRequest struct {
	Content    string `json:"content,omitempty"`
	BlockGroup string `json:"block_group,omitempty"`
}

// IssueLibraryEntryRequest carries the writable fields of a library entry.
type IssueLibraryEntryRequest struct {
	Content string `json:"content"`
}

// --- Payload envelopes required by the API ---

type teamPayload struct {
	Team TeamRequest `json:"team"`
}

type projectPayload struct {
	Project ProjectRequest `json:"project"`
}

type nodePayload struct {
	Node NodeRequest `json:"node"`
}

type issuePayload struct {
	Issue IssueRequest `json:"issue"`
}

type evidencePayload struct {
	Evidence EvidenceRequest `json:"evidence"`
}

type notePayload struct {
	Note NoteRequest `json:"note"`
}

type contentBlockPayload struct {
	ContentBlock ContentBlockRequest `json:"content_block"`
}

type attachmentPayload struct {
	Attachment struct {
		Filename string `json:"filename"`
	} `json:"attachment"`
}

type docPropsCreatePayload struct {
	DocumentProperties map[string]string `json:"document_properties"`
}

type docPropUpdatePayload struct {
	DocumentProperty struct {
		Value string `json:"value"`
	} `json:"document_property"`
}

type issueLibraryPayload struct {
	Entry IssueLibraryEntryRequest `json:"entry"`
}
