package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/smartmatch-advisor/internal/analyzer"
	"github.com/jonathan/smartmatch-advisor/internal/config"
	"github.com/jonathan/smartmatch-advisor/internal/ingest"
	"github.com/jonathan/smartmatch-advisor/internal/observability"
	"github.com/jonathan/smartmatch-advisor/internal/types"
)

var (
	analyzeResumePath string
	analyzeJobPath    string
	analyzeJobURL     string
	analyzeBrowser    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis from the command line",
	Long:  "Score a resume file against a job description file or job posting URL and print the result.",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResumePath, "resume", "", "Path to the resume text file (required)")
	analyzeCmd.Flags().StringVar(&analyzeJobPath, "job", "", "Path to the job description text file")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL of the job posting")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "browser", false, "Render JavaScript-heavy job pages in a headless browser")
	_ = analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsOneRequired("job", "job-url")
	analyzeCmd.MarkFlagsMutuallyExclusive("job", "job-url")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	log, err := observability.NewLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()

	resumeText, err := os.ReadFile(analyzeResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	var jobText string
	if analyzeJobPath != "" {
		data, err := os.ReadFile(analyzeJobPath)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jobText = string(data)
	} else {
		jobText, err = ingest.NewFetcher(0, analyzeBrowser, log).JobText(ctx, analyzeJobURL)
		if err != nil {
			return err
		}
	}

	completer, embedder, closeLLM, err := buildLLM(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLLM()

	result, err := analyzer.New(cfg, completer, embedder, log).Analyze(ctx, types.AnalysisRequest{
		ResumeText:     string(resumeText),
		JobDescription: jobText,
	})
	if err != nil {
		return err
	}

	printResult(cmd, result)
	return nil
}

func printResult(cmd *cobra.Command, result *types.AnalysisResult) {
	cmd.Printf("Match: %.0f%%", result.MatchPercentage)
	if result.SemanticScore > 0 {
		cmd.Printf(" (semantic score %.2f)", result.SemanticScore)
	}
	cmd.Println()
	cmd.Println(result.OverallFeedback)

	if len(result.MatchedKeywords) > 0 {
		cmd.Printf("\nMatched keywords: %s\n", strings.Join(result.MatchedKeywords, ", "))
	}
	if len(result.MissingKeywords) > 0 {
		cmd.Printf("Missing keywords: %s\n", strings.Join(result.MissingKeywords, ", "))
	}
	if len(result.Strengths) > 0 {
		cmd.Println("\nStrengths:")
		for _, s := range result.Strengths {
			cmd.Printf("  - %s\n", s)
		}
	}
	if len(result.AreasForImprovement) > 0 {
		cmd.Println("\nAreas for improvement:")
		for _, s := range result.AreasForImprovement {
			cmd.Printf("  - %s\n", s)
		}
	}
	if len(result.Suggestions) > 0 {
		cmd.Println("\nBullet suggestions:")
		for _, s := range result.Suggestions {
			cmd.Printf("  original: %s\n", s.Original)
			cmd.Printf("  improved: %s\n", s.Improved)
			cmd.Printf("  reason:   %s\n\n", s.Reason)
		}
	}
}
