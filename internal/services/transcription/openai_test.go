package transcription

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIProviderTranscribe(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/transcriptions") {
			t.Errorf("Unexpected request path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Expected multipart request: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("Expected model 'whisper-1', got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"text":"  went for a run this morning \n"}`)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL, "", nil)

	text, err := p.Transcribe(context.Background(), strings.NewReader("fake-ogg-bytes"), "voice.ogg")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if text != "went for a run this morning" {
		t.Errorf("Expected trimmed transcription, got %q", text)
	}
}

func TestOpenAIProviderTranscribeEmptyResult(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"text":"   "}`)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL, "", nil)

	text, err := p.Transcribe(context.Background(), strings.NewReader("silence"), "voice.ogg")
	if err != nil {
		t.Fatalf("Expected empty transcription to succeed, got %v", err)
	}
	if text != "" {
		t.Errorf("Expected empty text, got %q", text)
	}
}

func TestOpenAIProviderTranscribeAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		if _, err := w.Write([]byte(`{"error":{"message":"unsupported format"}}`)); err != nil {
			t.Errorf("Failed to write response: %v", err)
		}
	}))
	defer srv.Close()

	p := NewOpenAIProvider("test-key", srv.URL, "", nil)

	_, err := p.Transcribe(context.Background(), strings.NewReader("not-audio"), "voice.ogg")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, ErrTranscriptionFailed) {
		t.Errorf("Expected ErrTranscriptionFailed, got %v", err)
	}
}

func TestNewOpenAIProviderDefaults(t *testing.T) {
	t.Parallel()

	p := NewOpenAIProvider("test-key", "", "", nil)
	if p.model != DefaultModel {
		t.Errorf("Expected default model %q, got %q", DefaultModel, p.model)
	}
}
