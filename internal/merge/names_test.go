package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"alice", true},
		{"jean-paul", true},
		{"mary ann", true},
		{"Zoë", true},
		{"", false},
		{" - ", false},
		{"r2d2", false},
		{"o'neil", false},
		{"alice!", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidName(tt.in), "ValidName(%q)", tt.in)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jean-paul", "Jean-Paul"},
		{"alice", "Alice"},
		{"MARY ann", "Mary Ann"},
		{"  bob ", "Bob"},
	}
	for _, tt := range tests {
		got, err := NormalizeName(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := NormalizeName("b0b")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestParseNames(t *testing.T) {
	got, err := ParseNames("Alice, Bob, Carol")
	require.NoError(t, err)
	if diff := cmp.Diff(RecipientList{"Alice", "Bob", "Carol"}, got); diff != "" {
		t.Errorf("ParseNames mismatch (-want +got):\n%s", diff)
	}

	got, err = ParseNames("Alice, Bob, Carol\n")
	require.NoError(t, err)
	assert.Equal(t, RecipientList{"Alice", "Bob", "Carol"}, got)
}

func TestParseNamesRejectsMissingDelimiter(t *testing.T) {
	for _, content := range []string{"Alice Bob Carol", "Alice,Bob", "Alice\nBob", ""} {
		_, err := ParseNames(content)
		assert.ErrorIs(t, err, ErrNoDelimiter, "content %q", content)
	}
}

func TestParseNamesOnlyDelimiters(t *testing.T) {
	_, err := ParseNames(", , ")
	assert.ErrorIs(t, err, ErrNoNames)
}

func TestRecipientListString(t *testing.T) {
	assert.Equal(t, "Alice, Bob", RecipientList{"Alice", "Bob"}.String())
}
