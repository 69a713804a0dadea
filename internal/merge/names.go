package merge

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NamesDelimiter separates recipients inside a names text file.
const NamesDelimiter = ", "

var (
	ErrInvalidName = errors.New("name may only contain letters, spaces and hyphens")
	ErrNoDelimiter = errors.New("names must be separated by a comma and a space")
	ErrNoNames     = errors.New("no names found")
)

// RecipientList is the ordered set of names a mail merge writes letters for.
type RecipientList []string

// String renders the list the way the confirmation prompt shows it.
func (r RecipientList) String() string {
	return strings.Join(r, NamesDelimiter)
}

// ValidName reports whether candidate is made only of letters once spaces
// and hyphens are removed. An empty remainder is invalid.
func ValidName(candidate string) bool {
	stripped := strings.NewReplacer(" ", "", "-", "").Replace(candidate)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// NormalizeName validates a manually entered name and returns it title cased,
// so "jean-paul" becomes "Jean-Paul".
func NormalizeName(candidate string) (string, error) {
	trimmed := strings.Trim(candidate, " ")
	if !ValidName(trimmed) {
		return "", fmt.Errorf("%q: %w", candidate, ErrInvalidName)
	}
	return cases.Title(language.Und).String(trimmed), nil
}

// ParseNames splits the content of a names file on NamesDelimiter. Content
// without the delimiter is rejected. Entries are trimmed and blanks dropped.
func ParseNames(content string) (RecipientList, error) {
	if !strings.Contains(content, NamesDelimiter) {
		return nil, ErrNoDelimiter
	}

	var names RecipientList
	for _, part := range strings.Split(content, NamesDelimiter) {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, ErrNoNames
	}
	return names, nil
}
