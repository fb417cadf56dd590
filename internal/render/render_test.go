package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"contentforge/internal/coordinator"
	"contentforge/internal/core"
	"contentforge/internal/pipeline"
	"contentforge/internal/seo"
)

func sampleResult() *pipeline.RunResult {
	return &pipeline.RunResult{
		RunID:        "test-run",
		Requirements: core.DefaultRequirements("Solar Power"),
		FinalContent: "# Solar Power\n\nBody text about panels.",
		SEO: &seo.Optimization{
			MetaTags: seo.MetaTags{
				Title:       "Solar Power",
				Description: "All about panels.",
				Keywords:    "solar, panels",
				Canonical:   "https://example.com/solar-power",
				Robots:      "index, follow",
			},
		},
		Report: &coordinator.FinalReport{
			Metadata:        coordinator.ContentMetadata{WordCount: 6},
			SEOScore:        80,
			Recommendations: []string{"Add internal links"},
			NextSteps:       []string{"Publish"},
		},
	}
}

func TestRenderMarkdownRun(t *testing.T) {
	dir := t.TempDir()

	path, err := RenderMarkdownRun(sampleResult(), dir)
	if err != nil {
		t.Fatalf("RenderMarkdownRun returned error: %v", err)
	}

	wantName := "content_solar-power_" + time.Now().UTC().Format("2006-01-02") + ".md"
	if filepath.Base(path) != wantName {
		t.Errorf("filename = %q, want %q", filepath.Base(path), wantName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"# Solar Power",
		"## Meta Tags",
		"- **Canonical:** https://example.com/solar-power",
		"## Quality Report",
		"- **Run ID:** test-run",
		"- Add internal links",
		"- Publish",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderMarkdownRunInvalidDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := RenderMarkdownRun(sampleResult(), filepath.Join(file, "nested")); err == nil {
		t.Error("expected an error for an unusable output directory")
	}
}

func TestWriteContentToFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteContentToFile("hello", dir, "note.md")
	if err != nil {
		t.Fatalf("WriteContentToFile returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", string(data), "hello")
	}
}
