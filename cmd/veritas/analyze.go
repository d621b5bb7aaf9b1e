package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"edusignal-hq/veritas/pkg/cli"
	"edusignal-hq/veritas/pkg/config"
	"edusignal-hq/veritas/pkg/detector"
	"edusignal-hq/veritas/pkg/detector/feature"
	"edusignal-hq/veritas/pkg/detector/profile"
)

var analyzeFlags struct {
	profilePath string
	format      string
	output      string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze text files from the command line",
	Long: `Analyze one or more text files without starting the server.

Each file is scored through the same detection pipeline the server uses.
With no arguments (or "-") the passage is read from standard input.

Examples:
  # Analyze a single file
  veritas analyze essay.txt

  # Analyze several files with CSV output
  veritas analyze --format csv submissions/*.txt

  # Read from stdin
  cat essay.txt | veritas analyze

  # Score against a specific profile file
  veritas analyze --profile strict.yaml essay.txt`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeFlags.profilePath, "profile", "", "scoring profile file (overrides config)")
	analyzeCmd.Flags().StringVar(&analyzeFlags.format, "format", "text", "output format: text, json, csv")
	analyzeCmd.Flags().StringVarP(&analyzeFlags.output, "output", "o", "", "output file (default: stdout)")
}

// analysisResult is one scored document in command output.
type analysisResult struct {
	Source         string             `json:"source"`
	IsAIGenerated  bool               `json:"is_ai_generated"`
	Confidence     float64            `json:"confidence"`
	Metrics        map[string]float64 `json:"metrics"`
	Explanation    string             `json:"explanation"`
	Profile        string             `json:"profile"`
	ProfileVersion string             `json:"profile_version,omitempty"`
	Strategy       string             `json:"strategy"`
	WordCount      int                `json:"word_count"`
	SentenceCount  int                `json:"sentence_count"`
}

// analysisReport is the full command output.
type analysisReport struct {
	Results []analysisResult `json:"results"`
}

// TableHeader implements cli.Tabular.
func (r *analysisReport) TableHeader() []string {
	return []string{"source", "verdict", "confidence", "word_count", "sentence_count", "profile", "strategy"}
}

// TableRows implements cli.Tabular.
func (r *analysisReport) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		verdict := "human"
		if res.IsAIGenerated {
			verdict = "ai"
		}
		rows = append(rows, []string{
			res.Source,
			verdict,
			strconv.FormatFloat(res.Confidence, 'f', 4, 64),
			strconv.Itoa(res.WordCount),
			strconv.Itoa(res.SentenceCount),
			res.Profile,
			res.Strategy,
		})
	}
	return rows
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	logger, err := newCommandLogger(cfg)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := loadProfileOnce(ctx, cfg, analyzeFlags.profilePath, logger)
	if err != nil {
		return cli.NewCommandError("analyze", err)
	}

	var tagger *feature.Tagger
	if !cfg.Detector.DisablePOSTagging {
		tagger = feature.NewTagger()
	}
	det := detector.New(detector.NewRegistry(tagger), profile.NewStore(p), logger)

	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	var progress cli.ProgressReporter
	if len(sources) > 1 {
		progress = cli.NewProgressReporter(os.Stderr)
		progress.Start(int64(len(sources)))
	}

	report := &analysisReport{Results: make([]analysisResult, 0, len(sources))}
	for i, source := range sources {
		text, err := readSource(source)
		if err != nil {
			if progress != nil {
				progress.Error(err)
			}
			return cli.NewInputError(source, err)
		}

		result, err := det.Detect(ctx, text)
		if err != nil {
			if progress != nil {
				progress.Error(err)
			}
			return cli.NewCommandError("analyze", fmt.Errorf("analysis of %s failed: %w", source, err))
		}

		report.Results = append(report.Results, analysisResult{
			Source:         source,
			IsAIGenerated:  result.AIGenerated,
			Confidence:     result.Confidence,
			Metrics:        result.Metrics,
			Explanation:    result.Explanation,
			Profile:        result.Profile,
			ProfileVersion: result.ProfileVersion,
			Strategy:       result.Strategy,
			WordCount:      result.WordCount,
			SentenceCount:  result.SentenceCount,
		})

		if progress != nil {
			progress.Update(int64(i + 1))
		}
	}
	if progress != nil {
		progress.Finish()
	}

	out := os.Stdout
	if analyzeFlags.output != "" {
		out, err = os.Create(analyzeFlags.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer out.Close()
	}

	switch analyzeFlags.format {
	case "json":
		return cli.NewFormatter(cli.FormatJSON).FormatTo(out, report)
	case "csv":
		return cli.NewFormatter(cli.FormatCSV).FormatTo(out, report)
	default:
		return writeAnalysisText(out, report)
	}
}

// writeAnalysisText renders the per-document verdict report.
func writeAnalysisText(w io.Writer, report *analysisReport) error {
	for i, res := range report.Results {
		if i > 0 {
			fmt.Fprintln(w)
		}

		verdict := "likely human-written"
		if res.IsAIGenerated {
			verdict = "likely AI-generated"
		}

		fmt.Fprintf(w, "Source: %s\n", res.Source)
		fmt.Fprintf(w, "Verdict: %s (confidence %.2f)\n", verdict, res.Confidence)
		fmt.Fprintf(w, "Profile: %s", res.Profile)
		if res.ProfileVersion != "" {
			fmt.Fprintf(w, " (version %s)", res.ProfileVersion)
		}
		fmt.Fprintf(w, ", strategy: %s\n", res.Strategy)
		fmt.Fprintf(w, "Words: %d, Sentences: %d\n", res.WordCount, res.SentenceCount)
		if res.Explanation != "" {
			fmt.Fprintf(w, "\n%s\n", res.Explanation)
		}
	}
	return nil
}

// readSource reads a file argument, or stdin for "-".
func readSource(source string) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
