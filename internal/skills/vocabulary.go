// Package skills detects known skill keywords in free text and compares the
// skills found in a resume against those found in a job description.
package skills

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary is the ordered list of skill names the extractor looks for.
// Names are reported exactly as written here.
type Vocabulary []string

var defaultVocabulary = Vocabulary{
	"Python", "Java", "C++", "C", "SQL", "NoSQL", "JavaScript", "TypeScript", "HTML", "CSS",
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Pandas", "NumPy",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Git", "Linux", "REST", "GraphQL",
	"React", "Vue", "Angular", "Django", "Flask", "FastAPI", "CI/CD", "Jenkins", "Terraform",
}

// Default returns a copy of the built-in vocabulary.
func Default() Vocabulary {
	v := make(Vocabulary, len(defaultVocabulary))
	copy(v, defaultVocabulary)
	return v
}

// Validate rejects empty vocabularies, blank entries and entries that only
// differ by case.
func (v Vocabulary) Validate() error {
	if len(v) == 0 {
		return fmt.Errorf("vocabulary is empty")
	}
	seen := make(map[string]int, len(v))
	for i, skill := range v {
		if strings.TrimSpace(skill) == "" {
			return fmt.Errorf("vocabulary entry %d is blank", i)
		}
		key := strings.ToLower(skill)
		if j, ok := seen[key]; ok {
			return fmt.Errorf("vocabulary entries %d (%q) and %d (%q) are duplicates", j, v[j], i, skill)
		}
		seen[key] = i
	}
	return nil
}

type vocabularyFile struct {
	Skills []string `yaml:"skills"`
}

// LoadFile reads a YAML vocabulary of the form:
//
//	skills:
//	  - Go
//	  - PostgreSQL
func LoadFile(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skills file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML vocabulary document.
func Parse(data []byte) (Vocabulary, error) {
	var f vocabularyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse skills yaml: %w", err)
	}
	return FromNames(f.Skills)
}

// FromNames trims the given names and returns them as a validated vocabulary.
func FromNames(names []string) (Vocabulary, error) {
	v := make(Vocabulary, 0, len(names))
	for _, name := range names {
		v = append(v, strings.TrimSpace(name))
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}
