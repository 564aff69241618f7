package analysis

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnalyzeSendsQueryWithoutFilePart(t *testing.T) {
	var gotQuery string
	var hadFile bool

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analyze/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotQuery = r.FormValue("query")
		_, _, err := r.FormFile("file")
		hadFile = err == nil

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, sampleBody)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	resp, err := c.Analyze(context.Background(), "price trend for Akurdi", nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if gotQuery != "price trend for Akurdi" {
		t.Fatalf("unexpected query field: %q", gotQuery)
	}
	if hadFile {
		t.Fatalf("file part sent without an attachment")
	}
	if resp.Summary != "X" {
		t.Fatalf("unexpected summary: %q", resp.Summary)
	}
}

func TestAnalyzeSendsAttachment(t *testing.T) {
	var gotName string
	var gotData []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		gotName = hdr.Filename
		gotData, _ = io.ReadAll(f)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, sampleBody)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	att := &Attachment{Name: "pune.xlsx", Data: []byte("workbook-bytes")}
	if _, err := c.Analyze(context.Background(), "compare supply", att); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if gotName != "pune.xlsx" {
		t.Fatalf("unexpected filename: %q", gotName)
	}
	if string(gotData) != "workbook-bytes" {
		t.Fatalf("unexpected file bytes: %q", gotData)
	}
}

func TestAnalyzeNonSuccessStatusIsUnavailable(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "backend detail that must not leak", status)
		}))

		c := NewClient(srv.URL, srv.Client())
		_, err := c.Analyze(context.Background(), "q", nil)
		srv.Close()

		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("status %d: expected ErrUnavailable, got %v", status, err)
		}
	}
}

func TestAnalyzeMalformedBodyIsSchemaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"summary": ""}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	if _, err := c.Analyze(context.Background(), "q", nil); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}
