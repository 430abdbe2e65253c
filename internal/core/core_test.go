package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddress(t *testing.T) {
	if got := Address("", 8080); got != ":8080" {
		t.Fatalf("expected :8080, got %q", got)
	}

	host, port := SplitAddress("localhost:9000")
	if host != "localhost" || port != "9000" {
		t.Fatalf("expected localhost 9000, got %q %q", host, port)
	}

	host, port = SplitAddress("localhost")
	if host != "localhost" || port != "" {
		t.Fatalf("expected bare host, got %q %q", host, port)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")

	exists, err := FileExists(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatalf("expected %s to not exist", path)
	}

	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	exists, err = FileExists(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatalf("expected %s to exist", path)
	}
}

func TestIsBlank(t *testing.T) {
	for _, s := range []string{"", " ", "\t\n"} {
		if !IsBlank(s) {
			t.Fatalf("expected %q to be blank", s)
		}
	}
	if IsBlank(" x ") {
		t.Fatalf("expected %q to not be blank", " x ")
	}
}
