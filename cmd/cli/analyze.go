package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sentimenthub/sentimenthub/pkg/review"
)

// analyzedReview is one entry of the analyze command's JSON output. It
// mirrors the shape returned by the HTTP API.
type analyzedReview struct {
	ReviewID   string                   `json:"review_id"`
	Text       string                   `json:"text"`
	Labels     []review.Label           `json:"labels"`
	Language   string                   `json:"language,omitempty"`
	Confidence *float64                 `json:"confidence,omitempty"`
	Issues     []review.ValidationIssue `json:"issues,omitempty"`
	Attempts   int                      `json:"attempts"`
	Error      string                   `json:"error,omitempty"`
}

func NewAnalyzeCommand() *cobra.Command {
	var (
		inputFile  string
		outputFile string
		texts      []string
	)

	cmd := &cobra.Command{
		Use:   "analyze [review text...]",
		Short: "Classify customer reviews",
		Long: `Classify one or more customer reviews against the taxonomy.

Reviews are read from positional arguments, repeated --text flags, or an
input file (JSON array of strings, or plain text with one review per line).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args, texts, inputFile, outputFile)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file containing reviews (JSON or TXT)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for analysis results (JSON)")
	cmd.Flags().StringArrayVarP(&texts, "text", "t", nil, "Review text to analyze (can be specified multiple times)")

	return cmd
}

func runAnalyze(args, texts []string, inputFile, outputFile string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reviews := append(append([]string{}, args...), texts...)

	if inputFile != "" {
		fromFile, err := loadReviewsFromFile(inputFile)
		if err != nil {
			return err
		}
		reviews = append(reviews, fromFile...)
	}

	if len(reviews) == 0 {
		return fmt.Errorf("no input provided, use --input, --text or positional arguments")
	}

	config, err := LoadConfig()
	if err != nil {
		return err
	}

	model, err := buildLanguageModel(ctx, config)
	if err != nil {
		return err
	}

	registry, err := loadRegistry(config)
	if err != nil {
		return err
	}

	processor := buildProcessor(model, registry, config)

	log.Info().
		Int("reviews", len(reviews)).
		Str("model", model.ID()).
		Msg("Analyzing reviews")

	results := processor.ProcessAll(ctx, reviews)

	analyzed := make([]analyzedReview, len(results))
	for i, result := range results {
		analyzed[i] = toAnalyzedReview(i, reviews[i], result)
	}

	encoded, err := json.MarshalIndent(map[string][]analyzedReview{"reviews": analyzed}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, append(encoded, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing results to %s: %w", outputFile, err)
		}
		log.Info().Str("path", outputFile).Msg("Results written")
		return nil
	}

	fmt.Println(string(encoded))
	return nil
}

func toAnalyzedReview(index int, text string, result review.ProcessingResult) analyzedReview {
	out := analyzedReview{
		ReviewID: fmt.Sprintf("%d", 1000+index),
		Text:     text,
		Labels:   []review.Label{},
		Attempts: result.Attempts,
	}

	if result.Succeeded() {
		out.Labels = result.Analysis.Labels
		out.Language = result.Analysis.Language
		out.Confidence = result.Analysis.Confidence
		out.Issues = result.Analysis.Issues
	} else {
		out.Error = result.Failure.Error()
	}

	return out
}

// loadReviewsFromFile reads review texts from a JSON array of strings or,
// for any other extension, a plain text file with one review per line.
func loadReviewsFromFile(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading input file: %w", err)
		}

		var texts []string
		if err := json.Unmarshal(data, &texts); err != nil {
			return nil, fmt.Errorf("parsing %s as a JSON array of strings: %w", path, err)
		}
		return texts, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("reading input file: %w", err)
		}
		defer f.Close()

		var texts []string
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				texts = append(texts, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading input file: %w", err)
		}
		return texts, nil
	}
}
