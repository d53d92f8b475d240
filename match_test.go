package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/muhammadolammi/skillmatch/internal/document/documenttest"
	"github.com/muhammadolammi/skillmatch/internal/skills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestMatchResumeFileAgainst(t *testing.T) {
	e := skills.NewExtractor(skills.Default())

	t.Run("docx", func(t *testing.T) {
		path := writeTemp(t, "jane.docx", documenttest.DOCX("Skills", "Python, Django", "AWS Lambda"))

		report, err := matchResumeFileAgainst(e, path, testJobDescription)

		require.NoError(t, err)
		assert.Equal(t, []string{"AWS", "Django", "Python"}, report.ResumeSkills)
		assert.Equal(t, []string{"AWS", "Python"}, report.Matched)
		assert.Equal(t, []string{"Kubernetes"}, report.Missing)
	})

	t.Run("text", func(t *testing.T) {
		path := writeTemp(t, "notes.txt", []byte("Docker and Kubernetes"))

		report, err := matchResumeFileAgainst(e, path, "Kubernetes")

		require.NoError(t, err)
		assert.Equal(t, []string{"Kubernetes"}, report.Matched)
		assert.Empty(t, report.Missing)
		assert.Equal(t, 100.0, report.Score)
	})

	t.Run("blank job description", func(t *testing.T) {
		_, err := matchResumeFileAgainst(e, "unused.pdf", " \t")
		assert.EqualError(t, err, "please provide the job description")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := matchResumeFileAgainst(e, filepath.Join(t.TempDir(), "nope.pdf"), "Python")
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported file", func(t *testing.T) {
		path := writeTemp(t, "photo.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))

		_, err := matchResumeFileAgainst(e, path, "Python")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read resume: unsupported file type")
	})
}

func TestPrintReport(t *testing.T) {
	report := skills.Report{
		ResumeSkills: []string{"AWS", "Python"},
		JobSkills:    []string{"AWS", "Kubernetes", "Python"},
		Matched:      []string{"AWS", "Python"},
		Missing:      []string{"Kubernetes"},
		Score:        200.0 / 3,
	}
	var buf bytes.Buffer

	require.NoError(t, printReport(&buf, report))

	assert.Equal(t, "Resume Skills (detected): AWS, Python\n"+
		"Job Skills (detected from JD): AWS, Kubernetes, Python\n"+
		"Matched: AWS, Python\n"+
		"Missing: Kubernetes\n"+
		"Match score: 66.7%\n", buf.String())
}

func TestPrintReport_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, printReport(&buf, skills.Report{}))

	assert.Equal(t, "Resume Skills (detected): (none)\n"+
		"Job Skills (detected from JD): (none)\n"+
		"Matched: (none)\n"+
		"Missing: (none)\n"+
		"Match score: 0.0%\n", buf.String())
}

func TestWriteReportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match_result.json")
	report := skills.Report{
		ResumeSkills: []string{"Go"},
		JobSkills:    []string{"Go", "Rust"},
		Matched:      []string{"Go"},
		Missing:      []string{"Rust"},
		Score:        50,
	}

	require.NoError(t, writeReportFile(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"resume_skills": ["Go"],
		"job_skills": ["Go", "Rust"],
		"matched": ["Go"],
		"missing": ["Rust"],
		"score": 50
	}`, string(data))

	var decoded skills.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report, decoded)
}

func TestWriteReportFile_BadPath(t *testing.T) {
	err := writeReportFile(filepath.Join(t.TempDir(), "missing", "out.json"), skills.Report{})
	assert.ErrorContains(t, err, "failed to create")
}
