package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	v := Default()

	require.NoError(t, v.Validate())
	assert.Len(t, v, 34)
	assert.Contains(t, v, "CI/CD")

	v[0] = "changed"
	assert.Equal(t, "Python", Default()[0], "Default must return a copy")
}

func TestVocabulary_Validate(t *testing.T) {
	tests := []struct {
		name    string
		vocab   Vocabulary
		wantErr string
	}{
		{name: "empty", vocab: Vocabulary{}, wantErr: "empty"},
		{name: "blank entry", vocab: Vocabulary{"Go", "  "}, wantErr: "blank"},
		{name: "case duplicate", vocab: Vocabulary{"Go", "go"}, wantErr: "duplicates"},
		{name: "ok", vocab: Vocabulary{"Go", "Rust"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.vocab.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse(t *testing.T) {
	v, err := Parse([]byte("skills:\n  - ' Go '\n  - PostgreSQL\n"))

	require.NoError(t, err)
	assert.Equal(t, Vocabulary{"Go", "PostgreSQL"}, v)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("skills: [unterminated"))
	assert.Error(t, err)

	_, err = Parse([]byte("other: value\n"))
	assert.ErrorContains(t, err, "empty")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.yaml")
	require.NoError(t, os.WriteFile(path, []byte("skills:\n  - Go\n  - gRPC\n"), 0o600))

	v, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Vocabulary{"Go", "gRPC"}, v)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read skills file")
}
