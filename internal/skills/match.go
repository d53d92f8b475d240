package skills

import (
	"fmt"
	"sort"
)

// Match is the overlap between resume skills and job skills.
type Match struct {
	Matched []string
	Missing []string
	// Score is the share of job skills found in the resume, 0-100.
	Score float64
}

// Report is the full result of one resume/job comparison.
type Report struct {
	ResumeSkills []string `json:"resume_skills"`
	JobSkills    []string `json:"job_skills"`
	Matched      []string `json:"matched"`
	Missing      []string `json:"missing"`
	Score        float64  `json:"score"`
}

// Compare intersects the two skill sets. The score is 0 when the job
// mentions no known skill.
func Compare(resumeSkills, jobSkills []string) Match {
	have := make(map[string]struct{}, len(resumeSkills))
	for _, s := range resumeSkills {
		have[s] = struct{}{}
	}

	wanted := make(map[string]struct{}, len(jobSkills))
	m := Match{Matched: []string{}, Missing: []string{}}
	for _, s := range jobSkills {
		if _, dup := wanted[s]; dup {
			continue
		}
		wanted[s] = struct{}{}
		if _, ok := have[s]; ok {
			m.Matched = append(m.Matched, s)
		} else {
			m.Missing = append(m.Missing, s)
		}
	}
	sort.Strings(m.Matched)
	sort.Strings(m.Missing)

	if len(wanted) > 0 {
		m.Score = float64(len(m.Matched)) / float64(len(wanted)) * 100
	}
	return m
}

// Analyze extracts skills from both texts and compares them.
func Analyze(e *Extractor, resumeText, jobText string) Report {
	resumeSkills := e.Extract(resumeText)
	jobSkills := e.Extract(jobText)
	m := Compare(resumeSkills, jobSkills)
	return Report{
		ResumeSkills: resumeSkills,
		JobSkills:    jobSkills,
		Matched:      m.Matched,
		Missing:      m.Missing,
		Score:        m.Score,
	}
}

// FormatScore renders a score the way it is shown to users, e.g. "66.7%".
func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score)
}
