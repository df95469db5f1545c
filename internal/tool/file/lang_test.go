package file

import "testing"

func TestLanguageFor(t *testing.T) {
	tests := map[string]string{
		"/src/main.go":      "go",
		"/src/lib.RS":       "rust",
		"/web/app.tsx":      "tsx",
		"/ci/deploy.yml":    "yaml",
		"/repo/Dockerfile":  "dockerfile",
		"/repo/Makefile":    "makefile",
		"/repo/LICENSE":     "",
		"/repo/archive.xyz": "",
	}
	for path, want := range tests {
		if got := languageFor(path); got != want {
			t.Errorf("languageFor(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSnippetAround(t *testing.T) {
	content := "a\nb\nc\nd\ne\n"
	if got := snippetAround(content, 2, 1, 0); got != "b\nc\nd" {
		t.Errorf("unexpected middle snippet %q", got)
	}
	if got := snippetAround(content, 0, 4, 0); got != "a\nb\nc\nd\ne" {
		t.Errorf("unexpected clamped snippet %q", got)
	}
	if got := snippetAround("x\r\ny\r\n", 0, 4, 0); got != "x\ny" {
		t.Errorf("expected carriage returns stripped, got %q", got)
	}
	if got := snippetAround("", 0, 4, 0); got != "" {
		t.Errorf("expected empty snippet, got %q", got)
	}
}
