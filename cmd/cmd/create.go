/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"contentforge/internal/config"
	"contentforge/internal/coordinator"
	"contentforge/internal/core"
	"contentforge/internal/editor"
	"contentforge/internal/llm"
	"contentforge/internal/pipeline"
	"contentforge/internal/render"
	"contentforge/internal/research"
	"contentforge/internal/search"
	"contentforge/internal/seo"
	"contentforge/internal/writer"

	"github.com/spf13/cobra"
)

// createCmd runs the full content pipeline for a topic
var createCmd = &cobra.Command{
	Use:   "create [topic]",
	Short: "Create a piece of content for the given topic",
	Long: `Create runs the complete content pipeline for a topic: the
coordinator builds a plan, the researcher gathers sources, the writer
drafts the content, the editor refines it, and the SEO optimizer
prepares it for publication. The result is written to the output
directory as a dated markdown file.

Examples:
  contentforge create "Artificial Intelligence in Healthcare"
  contentforge create "Remote Work" --audience "HR managers" --tone Casual
  contentforge create "Kubernetes" --keywords "k8s,containers,orchestration"`,
	Args: cobra.ExactArgs(1),
	Run:  createRunFunc,
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().String("audience", "General audience", "Target audience for the content")
	createCmd.Flags().Int("word-count", 1000, "Target word count")
	createCmd.Flags().String("tone", "Professional", "Writing tone: Professional, Casual, Technical, Academic")
	createCmd.Flags().String("content-type", "Blog post", "Content type: Blog post, Guide, Review, ...")
	createCmd.Flags().String("keywords", "", "Comma-separated SEO keywords, ordered by priority")
	createCmd.Flags().String("provider", "", "Search provider: google, duckduckgo, mock (default from config)")
	createCmd.Flags().String("output", "", "Output directory (default from config)")
}

func createRunFunc(cmd *cobra.Command, args []string) {
	topic := args[0]
	audience, _ := cmd.Flags().GetString("audience")
	wordCount, _ := cmd.Flags().GetInt("word-count")
	tone, _ := cmd.Flags().GetString("tone")
	contentType, _ := cmd.Flags().GetString("content-type")
	keywords, _ := cmd.Flags().GetString("keywords")
	providerName, _ := cmd.Flags().GetString("provider")
	outputDir, _ := cmd.Flags().GetString("output")

	req := core.Requirements{
		Topic:          topic,
		TargetAudience: audience,
		WordCount:      wordCount,
		Tone:           core.Tone(tone),
		ContentType:    contentType,
		SEOKeywords:    splitKeywords(keywords),
	}.Normalize()

	cfg := config.Get()
	if providerName == "" {
		providerName = cfg.Search.DefaultProvider
	}
	if outputDir == "" {
		outputDir = cfg.Output.Directory
	}

	provider, err := buildSearchProvider(providerName, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating search provider: %v\n", err)
		os.Exit(1)
	}

	p, err := buildPipeline(provider, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building pipeline: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("🚀 Creating content for: %s\n", req.Topic)
	fmt.Printf("📋 %d words, %s tone, %s, search via %s\n", req.WordCount, req.Tone, req.ContentType, provider.Name())

	result, err := p.Run(context.Background(), req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running pipeline: %v\n", err)
		os.Exit(1)
	}

	path, err := render.RenderMarkdownRun(result, outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Content created in %s\n", result.Stats.ProcessingTime.Round(time.Millisecond))
	fmt.Printf("📝 Word count: %d\n", core.CountWords(result.FinalContent))
	fmt.Printf("⭐ Quality score: %.0f/100 (passed: %t)\n", result.Report.Quality.OverallScore, result.Report.Quality.Passed)
	fmt.Printf("🔍 SEO score: %.0f/100\n", result.Report.SEOScore)
	fmt.Printf("💾 Saved to: %s\n", path)

	for _, rec := range result.Report.Recommendations {
		fmt.Printf("💡 %s\n", rec)
	}
}

// splitKeywords splits a comma-separated keyword list, dropping empties.
func splitKeywords(s string) []string {
	var keywords []string
	for _, k := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// buildSearchProvider creates the search provider named by flag or config.
func buildSearchProvider(name string, cfg *config.Config) (search.Provider, error) {
	factory := search.NewProviderFactory()
	providerConfig := map[string]string{}
	if search.ProviderType(name) == search.ProviderTypeGoogle {
		providerConfig["api_key"] = cfg.Search.Providers.Google.APIKey
		providerConfig["search_id"] = cfg.Search.Providers.Google.SearchID
	}
	return factory.CreateProvider(search.ProviderType(name), providerConfig)
}

// buildPipeline assembles the stages, attaching a text generator to the
// writer when one is configured. Without a generator every stage runs
// on its template renderers.
func buildPipeline(provider search.Provider, cfg *config.Config) (*pipeline.Pipeline, error) {
	opts := research.DefaultOptions()
	if cfg.Pipeline.MaxQueries > 0 {
		opts.MaxQueries = cfg.Pipeline.MaxQueries
	}
	if cfg.Pipeline.ResultsPerQuery > 0 {
		opts.ResultsPerQuery = cfg.Pipeline.ResultsPerQuery
	}
	if cfg.Pipeline.SearchTimeout != "" {
		if d, err := time.ParseDuration(cfg.Pipeline.SearchTimeout); err == nil {
			opts.SearchTimeout = d
		}
	}

	generator, err := llm.NewGenerator(generatorSettings(cfg))
	if err != nil {
		return nil, err
	}

	contentWriter := writer.NewWriter()
	if generator != nil {
		contentWriter = writer.NewWriterWithGenerator(generator)
	}

	return pipeline.NewPipeline(
		coordinator.NewCoordinator(),
		research.NewResearcher(provider, opts),
		contentWriter,
		editor.NewEditor(),
		seo.NewOptimizer(),
	), nil
}

func generatorSettings(cfg *config.Config) llm.Settings {
	switch cfg.AI.Provider {
	case "gemini":
		return llm.Settings{
			Provider: "gemini",
			Model:    cfg.AI.Gemini.Model,
			APIKey:   cfg.AI.Gemini.APIKey,
		}
	case "openai":
		return llm.Settings{
			Provider: "openai",
			Model:    cfg.AI.OpenAI.Model,
			APIKey:   cfg.AI.OpenAI.APIKey,
			BaseURL:  cfg.AI.OpenAI.BaseURL,
		}
	default:
		return llm.Settings{}
	}
}
