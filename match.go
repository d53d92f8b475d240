package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadolammi/skillmatch/internal/document"
	"github.com/muhammadolammi/skillmatch/internal/skills"
	"github.com/spf13/cobra"
)

var (
	matchResumeFile string
	matchJobFile    string
	matchJobText    string
	matchJSON       bool
	matchOutFile    string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a resume file against a job description",
	Long:  "Extract skills from a PDF, DOCX or text resume and from a job description, then report matched and missing skills with an overlap score.",
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchResumeFile, "resume", "r", "", "Path to the resume (PDF, DOCX or TXT)")
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "Path to a text file with the job description")
	matchCmd.Flags().StringVar(&matchJobText, "job-text", "", "Job description text")
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "Print the result as JSON")
	matchCmd.Flags().StringVarP(&matchOutFile, "out", "o", "", "Also write the JSON result to this file (e.g. match_result.json)")
	_ = matchCmd.MarkFlagRequired("resume")
	matchCmd.MarkFlagsMutuallyExclusive("job", "job-text")
	matchCmd.MarkFlagsOneRequired("job", "job-text")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	jobText := matchJobText
	if matchJobFile != "" {
		data, err := os.ReadFile(matchJobFile)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jobText = string(data)
	}

	report, err := matchResumeFileAgainst(a.extractor, matchResumeFile, jobText)
	if err != nil {
		return err
	}

	if matchOutFile != "" {
		if err := writeReportFile(matchOutFile, report); err != nil {
			return err
		}
	}
	if matchJSON {
		return writeReportJSON(cmd.OutOrStdout(), report)
	}
	return printReport(cmd.OutOrStdout(), report)
}

func matchResumeFileAgainst(e *skills.Extractor, resumePath, jobText string) (skills.Report, error) {
	if strings.TrimSpace(jobText) == "" {
		return skills.Report{}, errors.New("please provide the job description")
	}
	data, err := os.ReadFile(resumePath)
	if err != nil {
		return skills.Report{}, fmt.Errorf("failed to read resume: %w", err)
	}
	resumeText, err := document.Extract(filepath.Base(resumePath), "", data)
	if err != nil {
		return skills.Report{}, fmt.Errorf("failed to read resume: %w", err)
	}
	return skills.Analyze(e, resumeText, jobText), nil
}

func printReport(w io.Writer, r skills.Report) error {
	_, err := fmt.Fprintf(w, "Resume Skills (detected): %s\nJob Skills (detected from JD): %s\nMatched: %s\nMissing: %s\nMatch score: %s\n",
		listOrNone(r.ResumeSkills),
		listOrNone(r.JobSkills),
		listOrNone(r.Matched),
		listOrNone(r.Missing),
		skills.FormatScore(r.Score),
	)
	return err
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

func writeReportJSON(w io.Writer, r skills.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func writeReportFile(path string, r skills.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := writeReportJSON(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
