package dradis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTeamScope_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pro/api/teams" && r.Method == "GET" {
			json.NewEncoder(w).Encode([]Team{
				{ID: 1, Name: "ACME"},
				{ID: 2, Name: "Initech"},
			})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	teams, err := client.Teams().List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(teams) != 2 || teams[0].Name != "ACME" {
		t.Errorf("unexpected teams: %+v", teams)
	}
}

func TestTeamScope_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pro/api/teams/7" && r.Method == "GET" {
			json.NewEncoder(w).Encode(Team{ID: 7, Name: "ACME"})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	team, err := client.Teams().Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if team.ID != 7 || team.Name != "ACME" {
		t.Errorf("unexpected team: %+v", team)
	}
}

func TestTeamScope_Create(t *testing.T) {
	var receivedBody map[string]map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pro/api/teams" && r.Method == "POST" {
			json.NewDecoder(r.Body).Decode(&receivedBody)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(Team{ID: 9, Name: "ACME"})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	team, err := client.Teams().Create(context.Background(), TeamRequest{
		Name:      "ACME",
		TeamSince: "2020-03-01",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if team.ID != 9 {
		t.Errorf("unexpected team: %+v", team)
	}
	if receivedBody["team"]["name"] != "ACME" || receivedBody["team"]["team_since"] != "2020-03-01" {
		t.Errorf("unexpected payload: %v", receivedBody)
	}
}

func TestTeamScope_Update_PartialPayload(t *testing.T) {
	var receivedBody map[string]map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pro/api/teams/9" && r.Method == "PUT" {
			json.NewDecoder(r.Body).Decode(&receivedBody)
			json.NewEncoder(w).Encode(Team{ID: 9, Name: "ACME Corp"})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	if _, err := client.Teams().Update(context.Background(), 9, TeamRequest{Name: "ACME Corp"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, ok := receivedBody["team"]["team_since"]; ok {
		t.Error("unset team_since should be omitted from the payload")
	}
}

func TestTeamScope_Delete(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]string{"message": "Team deleted"})
	}))
	defer server.Close()

	client, _ := New(server.URL, "test-token", WithHTTPClient(server.Client()))
	if err := client.Teams().Delete(context.Background(), 9); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if method != "DELETE" || path != "/pro/api/teams/9" {
		t.Errorf("unexpected request: %s %s", method, path)
	}
}
