package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadSubjectResolvesRelativePhoto(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		imageURL string
		want     string
	}{
		{"mini.jpg", filepath.Join(dir, "mini.jpg")},
		{"/abs/mini.jpg", "/abs/mini.jpg"},
		{"https://example.test/mini.jpg", "https://example.test/mini.jpg"},
		{"data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
	}
	for _, tt := range tests {
		t.Run(tt.imageURL, func(t *testing.T) {
			path := filepath.Join(dir, "subject.json")
			body := `{"name": "Knight", "image_url": "` + tt.imageURL + `"}`
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			s, err := readSubject(path)
			if err != nil {
				t.Fatal(err)
			}
			if s.Name != "Knight" || s.ImageURL != tt.want {
				t.Errorf("subject = %+v, want image_url %q", s, tt.want)
			}
		})
	}
}

func TestReadSubjectErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := readSubject(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0o644)
	if _, err := readSubject(bad); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
