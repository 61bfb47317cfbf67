package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

func readBody(t *testing.T, resp *http.Response, v interface{}) error {
	t.Helper()
	return json.NewDecoder(resp.Body).Decode(v)
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}
