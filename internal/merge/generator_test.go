package merge

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	godocx "github.com/fumiama/go-docx"
	"github.com/nguyenthenguyen/docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edumerge/internal/logger"
)

func TestGenerateWritesOneLetterPerRecipient(t *testing.T) {
	dir := t.TempDir()
	tmpl := NewTextTemplate("Dear [name],\nSee you soon, [name]!\n")
	recipients := RecipientList{"Alice", "Jean-Paul", "Carol"}

	paths, err := NewGenerator(logger.Nop()).Generate(context.Background(), tmpl, recipients, dir)
	require.NoError(t, err)
	require.Len(t, paths, len(recipients))

	for i, name := range recipients {
		assert.Equal(t, filepath.Join(dir, name+"'s Mail.txt"), paths[i])
		data, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		assert.Equal(t, strings.ReplaceAll(tmpl.Body, Placeholder, name), string(data))
		assert.NotContains(t, string(data), Placeholder)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(recipients))
}

func TestGenerateRefusesTemplateWithoutPlaceholder(t *testing.T) {
	dir := t.TempDir()

	_, err := NewGenerator(logger.Nop()).Generate(context.Background(),
		NewTextTemplate("Dear friend,"), RecipientList{"Alice"}, dir)
	assert.ErrorIs(t, err, ErrMissingPlaceholder)

	_, err = NewGenerator(logger.Nop()).Generate(context.Background(),
		NewTextTemplate(""), RecipientList{"Alice"}, dir)
	assert.ErrorIs(t, err, ErrEmptyLetter)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateRejectsEmptyRecipientList(t *testing.T) {
	_, err := NewGenerator(logger.Nop()).Generate(context.Background(),
		NewTextTemplate("Hi [name]"), nil, t.TempDir())
	assert.ErrorIs(t, err, ErrNoNames)
}

func TestGenerateHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths, err := NewGenerator(logger.Nop()).Generate(ctx,
		NewTextTemplate("Hi [name]"), RecipientList{"Alice"}, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, paths)
}

func TestLetterPathIncrementsSuffixOnCollision(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(logger.Nop())

	tmpl := NewTextTemplate("Hi [name]")
	paths, err := g.Generate(context.Background(), tmpl, RecipientList{"Alice", "Alice", "Alice"}, dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "Alice's Mail.txt"),
		filepath.Join(dir, "Alice's Mail(1).txt"),
		filepath.Join(dir, "Alice's Mail(2).txt"),
	}, paths)
}

func TestLetterPathReplacesSeparators(t *testing.T) {
	g := NewGenerator(logger.Nop())
	g.exists = func(string) bool { return false }

	assert.Equal(t, filepath.Join("out", "a_b's Mail.txt"), g.LetterPath("out", "a/b", ".txt"))
}

func TestLoadTemplateFromTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "letter.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello [name]"), 0o644))

	tmpl, err := LoadTemplate(path)
	require.NoError(t, err)
	require.NoError(t, tmpl.Validate())
	assert.Equal(t, ".txt", tmpl.Extension())
}

func writeDocx(t *testing.T, path string, lines ...string) {
	t.Helper()
	doc := godocx.New().WithDefaultTheme()
	for _, line := range lines {
		doc.AddParagraph().AddText(line)
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = doc.WriteTo(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestGenerateFromDocxTemplate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "letter.docx")
	writeDocx(t, src, "Dear [name],", "Kind regards")

	tmpl, err := LoadDocxTemplate(src)
	require.NoError(t, err)
	defer tmpl.Close()

	out := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(out, 0o755))

	paths, err := NewGenerator(logger.Nop()).Generate(context.Background(), tmpl, RecipientList{"Alice", "Bob"}, out)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(out, "Alice's Mail.docx"), paths[0])

	letter, err := docx.ReadDocxFile(paths[1])
	require.NoError(t, err)
	defer letter.Close()
	content := letter.Editable().GetContent()
	assert.Contains(t, content, "Dear Bob,")
	assert.NotContains(t, content, Placeholder)
}

func TestDocxTemplateWithoutPlaceholder(t *testing.T) {
	src := filepath.Join(t.TempDir(), "letter.docx")
	writeDocx(t, src, "Dear friend,")

	tmpl, err := LoadDocxTemplate(src)
	require.NoError(t, err)
	defer tmpl.Close()

	assert.ErrorIs(t, tmpl.Validate(), ErrMissingPlaceholder)
}

func TestDocxTemplateBlankParagraphsAreEmpty(t *testing.T) {
	src := filepath.Join(t.TempDir(), "letter.docx")
	writeDocx(t, src, "   ")

	tmpl, err := LoadDocxTemplate(src)
	require.NoError(t, err)
	defer tmpl.Close()

	assert.ErrorIs(t, tmpl.Validate(), ErrEmptyLetter)
}

func TestHasText(t *testing.T) {
	tests := map[string]struct {
		xml  string
		want bool
	}{
		"plain run":      {`<w:r><w:t>Dear [name]</w:t></w:r>`, true},
		"preserve space": {`<w:r><w:t xml:space="preserve"> Hi </w:t></w:r>`, true},
		"blank run":      {`<w:r><w:t xml:space="preserve">   </w:t></w:r>`, false},
		"tab only":       {`<w:r><w:tab/></w:r>`, false},
		"empty table":    {`<w:tbl><w:tr><w:tc><w:tcPr/><w:p/></w:tc></w:tr></w:tbl>`, false},
		"no body":        {``, false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasText(tt.xml))
		})
	}
}
