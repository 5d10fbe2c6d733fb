package dradis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIssueScope_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pro/api/issues/77" && r.Method == "GET" {
			json.NewEncoder(w).Encode(Issue{
				ID:    77,
				Title: "SQL injection in login form",
				Fields: map[string]string{
					"Title":  "SQL injection in login form",
					"Rating": "High",
				},
			})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	issue, err := client.Project(12).Issues().Get(context.Background(), 77)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if issue.Title != "SQL injection in login form" || issue.Fields["Rating"] != "High" {
		t.Errorf("unexpected issue: %+v", issue)
	}
}

func TestIssueScope_Create(t *testing.T) {
	var receivedBody map[string]map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pro/api/issues" && r.Method == "POST" {
			json.NewDecoder(r.Body).Decode(&receivedBody)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(Issue{ID: 78, Title: "XSS"})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	issue, err := client.Project(12).Issues().Create(context.Background(), IssueRequest{
		Text: "#[Title]#\nXSS\n\n#[Rating]#\nMedium\n",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if issue.ID != 78 {
		t.Errorf("unexpected issue: %+v", issue)
	}
	if receivedBody["issue"]["text"] == "" {
		t.Errorf("unexpected payload: %v", receivedBody)
	}
}

func TestIssueScope_Update(t *testing.T) {
	var path, method string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path, method = r.URL.Path, r.Method
		json.NewEncoder(w).Encode(Issue{ID: 77})
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	if _, err := client.Project(12).Issues().Update(context.Background(), 77, IssueRequest{Text: "updated"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if method != "PUT" || path != "/pro/api/issues/77" {
		t.Errorf("unexpected request: %s %s", method, path)
	}
}

func TestIssueScope_ListAll_Paginates(t *testing.T) {
	var pages []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		pages = append(pages, page)
		if page == "1" {
			issues := make([]Issue, defaultPageSize)
			for i := range issues {
				issues[i] = Issue{ID: i + 1}
			}
			json.NewEncoder(w).Encode(issues)
			return
		}
		json.NewEncoder(w).Encode([]Issue{})
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	all, err := client.Project(12).Issues().ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != defaultPageSize {
		t.Errorf("expected %d issues, got %d", defaultPageSize, len(all))
	}
	if len(pages) != 2 {
		t.Errorf("expected 2 page requests, got: %v", pages)
	}
}

func TestIssueScope_FindByTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Issue{
			{ID: 1, Title: "XSS"},
			{ID: 2, Title: "SQL injection"},
		})
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	issues := client.Project(12).Issues()

	issue, err := issues.FindByTitle(context.Background(), "SQL injection")
	if err != nil {
		t.Fatalf("FindByTitle: %v", err)
	}
	if issue == nil || issue.ID != 2 {
		t.Errorf("unexpected issue: %+v", issue)
	}

	exists, err := issues.Exists(context.Background(), "CSRF")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("expected Exists to be false for unknown title")
	}
}

func TestIssueScope_Delete(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"message": "Issue deleted"})
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	if err := client.Project(12).Issues().Delete(context.Background(), 77); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if path != "/pro/api/issues/77" {
		t.Errorf("unexpected path: %s", path)
	}
}
