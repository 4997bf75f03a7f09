package store

import (
	"path/filepath"
	"testing"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	ts := NewFileTokenStore(path)

	// Missing file is "no token", not an error.
	token, err := ts.Load()
	if err != nil {
		t.Fatalf("load of missing file: %v", err)
	}
	if token != "" {
		t.Fatalf("token = %q, want empty", token)
	}

	if err := ts.Save("abc"); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, err = ts.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if token != "abc" {
		t.Fatalf("token = %q, want abc", token)
	}

	if err := ts.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	token, _ = ts.Load()
	if token != "" {
		t.Fatal("token should be gone after clear")
	}

	// Clearing twice is fine.
	if err := ts.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestFileTokenStoreTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	ts := NewFileTokenStore(path)

	if err := ts.Save("abc\n"); err != nil {
		t.Fatal(err)
	}
	token, err := ts.Load()
	if err != nil {
		t.Fatal(err)
	}
	if token != "abc" {
		t.Fatalf("token = %q, want trimmed abc", token)
	}
}
