package dradis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "dradis.yaml", `
url: https://dradis.example.com
api_token: abc123
timeout_seconds: 30
verify_ssl: false
user_agent: pentest-sync/2.1
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.URL != "https://dradis.example.com" || cfg.APIToken != "abc123" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("timeout_seconds = %d", cfg.TimeoutSeconds)
	}
	if cfg.VerifySSL == nil || *cfg.VerifySSL {
		t.Error("verify_ssl should be false")
	}
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeConfig(t, "dradis.json", `{
		"url": "https://dradis.example.com",
		"api_token": "abc123"
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.URL != "https://dradis.example.com" || cfg.APIToken != "abc123" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfig_MissingURL(t *testing.T) {
	path := writeConfig(t, "dradis.yaml", "api_token: abc123\n")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for missing url")
	}
}

func TestLoadConfig_MissingToken(t *testing.T) {
	path := writeConfig(t, "dradis.yaml", "url: https://dradis.example.com\n")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for missing token")
	}
}

func TestLoadConfig_BothTokenSources(t *testing.T) {
	path := writeConfig(t, "dradis.yaml", `
url: https://dradis.example.com
api_token: abc123
api_token_file: /tmp/token
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for both token sources")
	}
}

func TestNewFromConfig_TokenFile(t *testing.T) {
	tokenPath := writeConfig(t, ".dradis-api-token", "from-file\n")

	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Team{})
	}))
	defer server.Close()

	cfg := &Config{URL: server.URL, APITokenFile: tokenPath}
	client, err := NewFromConfig(cfg, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if _, err := client.Teams().List(context.Background()); err != nil {
		t.Fatal(err)
	}
	if auth != "Token token=from-file" {
		t.Errorf("Authorization = %q", auth)
	}
}

func TestNewFromConfig_AppliesUserAgent(t *testing.T) {
	var ua string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode([]Team{})
	}))
	defer server.Close()

	cfg := &Config{URL: server.URL, APIToken: "t", UserAgent: "custom-agent"}
	client, err := NewFromConfig(cfg, WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if _, err := client.Teams().List(context.Background()); err != nil {
		t.Fatal(err)
	}
	if ua != "custom-agent" {
		t.Errorf("User-Agent = %q", ua)
	}
}
