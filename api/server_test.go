package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cwren/asmopt/api"
)

func TestHealthEndpoint(t *testing.T) {
	srv := api.NewServer(0)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	srv := api.NewServer(0)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	createResp, err := http.Post(ts.URL+"/api/sessions", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST /api/sessions: %v", err)
	}
	defer createResp.Body.Close()
	if createResp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", createResp.StatusCode)
	}

	var created api.SessionCreateResponse
	if err := readBody(t, createResp, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("created.ID is empty")
	}

	sourceResp, err := http.Post(ts.URL+"/api/sessions/"+created.ID+"/source", "text/plain", strings.NewReader("mov rax, 0\n"))
	if err != nil {
		t.Fatalf("POST source: %v", err)
	}
	defer sourceResp.Body.Close()
	if sourceResp.StatusCode != http.StatusNoContent {
		t.Fatalf("source status = %d, want 204", sourceResp.StatusCode)
	}

	optResp, err := http.Post(ts.URL+"/api/sessions/"+created.ID+"/optimize", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST optimize: %v", err)
	}
	defer optResp.Body.Close()
	if optResp.StatusCode != http.StatusOK {
		t.Fatalf("optimize status = %d, want 200", optResp.StatusCode)
	}

	asmResp, err := http.Get(ts.URL + "/api/sessions/" + created.ID + "/assembly")
	if err != nil {
		t.Fatalf("GET assembly: %v", err)
	}
	defer asmResp.Body.Close()
	body := readAll(t, asmResp)
	if body != "xor rax, rax\n" {
		t.Fatalf("assembly = %q", body)
	}

	delReq, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/sessions/"+created.ID, nil)
	delResp, err := http.DefaultClient.Do(delReq)
	if err != nil {
		t.Fatalf("DELETE session: %v", err)
	}
	defer delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", delResp.StatusCode)
	}

	notFound, err := http.Get(ts.URL + "/api/sessions/" + created.ID)
	if err != nil {
		t.Fatalf("GET deleted session: %v", err)
	}
	defer notFound.Body.Close()
	if notFound.StatusCode != http.StatusNotFound {
		t.Fatalf("status after delete = %d, want 404", notFound.StatusCode)
	}
}
