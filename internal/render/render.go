package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"contentforge/internal/pipeline"
)

// RenderMarkdownRun writes the run's final content plus its meta tags
// and quality report to a date-stamped markdown file under outputDir.
// It returns the path of the written file.
func RenderMarkdownRun(result *pipeline.RunResult, outputDir string) (string, error) {
	dateStr := time.Now().UTC().Format("2006-01-02")
	filename := fmt.Sprintf("content_%s_%s.md", slug(result.Requirements.Topic), dateStr)

	if outputDir == "" {
		outputDir = "output" // Default output directory
	}

	err := os.MkdirAll(outputDir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filePath := filepath.Join(outputDir, filename)

	var b strings.Builder

	b.WriteString(result.FinalContent)
	b.WriteString("\n\n---\n\n")

	b.WriteString("## Meta Tags\n\n")
	tags := result.SEO.MetaTags
	b.WriteString(fmt.Sprintf("- **Title:** %s\n", tags.Title))
	b.WriteString(fmt.Sprintf("- **Description:** %s\n", tags.Description))
	if tags.Keywords != "" {
		b.WriteString(fmt.Sprintf("- **Keywords:** %s\n", tags.Keywords))
	}
	b.WriteString(fmt.Sprintf("- **Canonical:** %s\n", tags.Canonical))
	b.WriteString(fmt.Sprintf("- **Robots:** %s\n", tags.Robots))
	b.WriteString("\n")

	b.WriteString("## Quality Report\n\n")
	report := result.Report
	b.WriteString(fmt.Sprintf("- **Word count:** %d\n", report.Metadata.WordCount))
	b.WriteString(fmt.Sprintf("- **Quality score:** %.0f\n", report.Quality.OverallScore))
	b.WriteString(fmt.Sprintf("- **SEO score:** %.0f\n", report.SEOScore))
	b.WriteString(fmt.Sprintf("- **Run ID:** %s\n\n", result.RunID))

	if len(report.Recommendations) > 0 {
		b.WriteString("### Recommendations\n\n")
		for _, rec := range report.Recommendations {
			b.WriteString("- " + rec + "\n")
		}
		b.WriteString("\n")
	}

	if len(report.NextSteps) > 0 {
		b.WriteString("### Next Steps\n\n")
		for _, step := range report.NextSteps {
			b.WriteString("- " + step + "\n")
		}
	}

	err = os.WriteFile(filePath, []byte(b.String()), 0644)
	if err != nil {
		return "", fmt.Errorf("failed to write content file %s: %w", filePath, err)
	}

	return filePath, nil
}

// WriteContentToFile writes content to a named file under outputDir,
// creating the directory when needed.
func WriteContentToFile(content, outputDir, filename string) (string, error) {
	if outputDir == "" {
		outputDir = "output"
	}

	err := os.MkdirAll(outputDir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	filePath := filepath.Join(outputDir, filename)

	err = os.WriteFile(filePath, []byte(content), 0644)
	if err != nil {
		return "", fmt.Errorf("failed to write content file %s: %w", filePath, err)
	}

	return filePath, nil
}

func slug(topic string) string {
	return strings.Join(strings.Fields(strings.ToLower(topic)), "-")
}
