// Command batch extracts facts from a list of earnings release pages defined
// in a YAML (or Hjson) config and writes one JSON record per page. It is a
// plain one-shot loop: no scheduling, no retries beyond the fetcher's own.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"earnings_facts/pkg/core/facts"
	"earnings_facts/pkg/core/fetch"
	"earnings_facts/pkg/core/utils"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// PageJob identifies one earnings release page to extract
type PageJob struct {
	URL     string `json:"url" yaml:"url"`
	Company string `json:"company" yaml:"company"`
	Period  string `json:"period" yaml:"period"`
}

// BatchConfig is the job file schema
type BatchConfig struct {
	OutputDir string    `json:"output_dir" yaml:"output_dir"`
	CacheDir  string    `json:"cache_dir" yaml:"cache_dir"`
	Pages     []PageJob `json:"pages" yaml:"pages"`
}

func main() {
	godotenv.Load()

	configPath := "config/pages.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", configPath, err)
	}
	if len(cfg.Pages) == 0 {
		log.Fatalf("Config %s lists no pages", configPath)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "batch_output"
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}

	fetcher := fetch.NewPageFetcher(cfg.CacheDir)
	parser := facts.NewParser()

	succeeded := 0
	for i, page := range cfg.Pages {
		fmt.Printf("\n=== [%d/%d] %s %s ===\n", i+1, len(cfg.Pages), page.Company, page.Period)

		record := extractPage(fetcher, parser, page)
		outPath := filepath.Join(cfg.OutputDir, outputFilename(page))
		if err := writeRecord(outPath, record); err != nil {
			log.Printf("Failed to write %s: %v", outPath, err)
			continue
		}

		if result, ok := record.(*facts.ExtractionResult); ok {
			fmt.Printf("Extracted %d facts, %d tables -> %s\n", result.FactCount, len(result.Tables), outPath)
			succeeded++
		} else {
			fmt.Printf("Failed -> %s\n", outPath)
		}
	}

	fmt.Printf("\nDone: %d/%d pages extracted\n", succeeded, len(cfg.Pages))
}

// extractPage fetches and parses one page, returning either an
// ExtractionResult or an error record
func extractPage(fetcher *fetch.PageFetcher, parser *facts.Parser, page PageJob) interface{} {
	if page.URL == "" {
		return facts.NewErrorRecord("", page.Company, page.Period, "missing url")
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetch.DefaultTimeout)
	defer cancel()

	html, err := fetcher.FetchHTML(ctx, page.URL)
	if err != nil {
		log.Printf("Fetch failed for %s: %v", page.URL, err)
		return facts.NewErrorRecord(page.URL, page.Company, page.Period, err.Error())
	}

	result, err := parser.Parse(html, page.URL, page.Company, page.Period)
	if err != nil {
		return facts.NewErrorRecord(page.URL, page.Company, page.Period, err.Error())
	}
	result.HTMLLength = len(html)
	return result
}

// loadConfig reads the job file, accepting YAML or Hjson by extension
func loadConfig(path string) (*BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg BatchConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hjson", ".json":
		if err := utils.ParseHJSONToStruct(string(data), &cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func outputFilename(page PageJob) string {
	name := strings.ReplaceAll(page.Company, " ", "_") + "_" + strings.ReplaceAll(page.Period, " ", "_")
	name = strings.ReplaceAll(name, ",", "")
	name = strings.ReplaceAll(name, ".", "")
	name = strings.ReplaceAll(name, "/", "-")
	if name == "_" {
		name = "page"
	}
	return name + ".json"
}

func writeRecord(path string, record interface{}) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
