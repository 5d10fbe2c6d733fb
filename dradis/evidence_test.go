package dradis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEvidenceScope_List_Path(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pro/api/nodes/17/evidence" && r.Method == "GET" {
			json.NewEncoder(w).Encode([]Evidence{
				{ID: 1, Content: "nc output", Issue: &IssueSummary{ID: 77, Title: "Open port"}},
			})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	evidence, err := client.Project(12).Evidence(17).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(evidence) != 1 || evidence[0].Issue.ID != 77 {
		t.Errorf("unexpected evidence: %+v", evidence)
	}
}

func TestEvidenceScope_Create(t *testing.T) {
	var receivedBody map[string]map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pro/api/nodes/17/evidence" && r.Method == "POST" {
			if r.Header.Get("Dradis-Project-Id") != "12" {
				t.Errorf("Dradis-Project-Id = %q, want 12", r.Header.Get("Dradis-Project-Id"))
			}
			json.NewDecoder(r.Body).Decode(&receivedBody)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(Evidence{ID: 5, Content: "proof"})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	evidence, err := client.Project(12).Evidence(17).Create(context.Background(), EvidenceRequest{
		Content: "proof",
		IssueID: 77,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if evidence.ID != 5 {
		t.Errorf("unexpected evidence: %+v", evidence)
	}
	// The API expects issue_id serialized as a string.
	if receivedBody["evidence"]["issue_id"] != "77" {
		t.Errorf("unexpected payload: %v", receivedBody["evidence"])
	}
}

func TestEvidenceScope_Get_Path(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pro/api/nodes/17/evidence/5" {
			json.NewEncoder(w).Encode(Evidence{ID: 5})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	evidence, err := client.Project(12).Evidence(17).Get(context.Background(), 5)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if evidence.ID != 5 {
		t.Errorf("unexpected evidence: %+v", evidence)
	}
}

func TestEvidenceScope_Delete_Path(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"message": "Evidence deleted"})
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	if err := client.Project(12).Evidence(17).Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if method != "DELETE" || path != "/pro/api/nodes/17/evidence/5" {
		t.Errorf("unexpected request: %s %s", method, path)
	}
}

func TestEvidenceScope_RequiresNodeID(t *testing.T) {
	client, _ := New("http://dradis.example.com", "test-token")
	if _, err := client.Project(12).Evidence(0).List(context.Background()); err == nil {
		t.Error("expected error for missing node id")
	}
}
