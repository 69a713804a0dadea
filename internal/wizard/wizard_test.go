package wizard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edumerge/internal/logger"
	"edumerge/internal/merge"
)

// step is one expected prompt and the answer the fake user gives.
type step struct {
	call   string // choose, int, string, text, info, warn, file, folder
	expect string // message or title; empty skips the check
	answer string // button pressed, or path picked
	n      int
	text   string
}

type scriptedPrompter struct {
	t     *testing.T
	steps []step
	seen  []string
}

func (p *scriptedPrompter) next(call, message string) step {
	p.t.Helper()
	require.NotEmpty(p.t, p.steps, "unexpected %s prompt %q", call, message)
	s := p.steps[0]
	p.steps = p.steps[1:]
	require.Equal(p.t, s.call, call, "prompt %q", message)
	if s.expect != "" {
		assert.Equal(p.t, s.expect, message)
	}
	p.seen = append(p.seen, message)
	return s
}

func (p *scriptedPrompter) Choose(_ context.Context, message string, _ ...string) (string, error) {
	return p.next("choose", message).answer, nil
}

func (p *scriptedPrompter) AskInt(_ context.Context, message string, _, _ int, _ ...string) (int, string, error) {
	s := p.next("int", message)
	return s.n, s.answer, nil
}

func (p *scriptedPrompter) AskString(_ context.Context, message string, _ ...string) (string, string, error) {
	s := p.next("string", message)
	return s.text, s.answer, nil
}

func (p *scriptedPrompter) AskText(_ context.Context, message string, _ ...string) (string, string, error) {
	s := p.next("text", message)
	return s.text, s.answer, nil
}

func (p *scriptedPrompter) Info(_ context.Context, message string) error {
	p.next("info", message)
	return nil
}

func (p *scriptedPrompter) Warn(_ context.Context, message string) error {
	p.next("warn", message)
	return nil
}

func (p *scriptedPrompter) OpenFile(_ context.Context, title string, _ []string) (string, error) {
	return p.next("file", title).answer, nil
}

func (p *scriptedPrompter) OpenFolder(_ context.Context, title string) (string, error) {
	return p.next("folder", title).answer, nil
}

func (p *scriptedPrompter) done() {
	p.t.Helper()
	assert.Empty(p.t, p.steps, "prompts left unanswered")
}

type recordingOpener struct {
	dirs []string
}

func (o *recordingOpener) OpenDirectory(dir string) error {
	o.dirs = append(o.dirs, dir)
	return nil
}

func newWizard(t *testing.T, steps ...step) (*Wizard, *scriptedPrompter, *recordingOpener) {
	p := &scriptedPrompter{t: t, steps: steps}
	o := &recordingOpener{}
	log := logger.Nop()
	return New(p, merge.NewGenerator(log), o, log), p, o
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunManualMailMerge(t *testing.T) {
	out := t.TempDir()
	w, p, opener := newWizard(t,
		step{call: "choose", expect: msgInputMethod, answer: btnManual},
		step{call: "int", expect: msgCount, answer: btnContinue, n: 3},
		step{call: "string", expect: msgName, answer: btnContinue, text: "alice"},
		step{call: "string", expect: msgName, answer: btnContinue, text: "b0b"},
		step{call: "string", expect: msgInvalidName, answer: btnContinue, text: "bob"},
		step{call: "string", expect: msgName, answer: btnContinue, text: " jean-paul "},
		step{call: "choose", expect: "Names entered:\nAlice, Bob, Jean-Paul", answer: btnContinue},
		step{call: "choose", expect: msgLetterChoice, answer: btnTypeLetter},
		step{call: "info", expect: msgPlaceholder},
		step{call: "text", expect: msgLetterContent, answer: btnContinue, text: "Dear [name],\nSee you soon."},
		step{call: "choose", expect: msgSelectFolder, answer: btnContinue},
		step{call: "folder", expect: msgFolder, answer: out},
		step{call: "choose", expect: msgSuccess, answer: btnExit},
	)

	s, err := w.Run(context.Background())
	require.NoError(t, err)
	p.done()

	if diff := cmp.Diff(merge.RecipientList{"Alice", "Bob", "Jean-Paul"}, s.Recipients); diff != "" {
		t.Errorf("recipients mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, s.Letters, 3)
	assert.Equal(t, out, s.OutputDir)
	assert.Equal(t, []string{out}, opener.dirs)

	data, err := os.ReadFile(filepath.Join(out, "Jean-Paul's Mail.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Dear Jean-Paul,\nSee you soon.", string(data))
}

func TestExitConfirmed(t *testing.T) {
	w, p, _ := newWizard(t,
		step{call: "choose", expect: msgInputMethod, answer: btnExit},
		step{call: "choose", expect: msgExit, answer: btnYes},
	)

	_, err := w.Run(context.Background())
	assert.ErrorIs(t, err, ErrExit)
	p.done()
}

func TestExitDeclinedRepeatsStep(t *testing.T) {
	w, p, _ := newWizard(t,
		step{call: "choose", expect: msgInputMethod, answer: ""},
		step{call: "choose", expect: msgExit, answer: btnNo},
		step{call: "choose", expect: msgInputMethod, answer: btnExit},
		step{call: "choose", expect: msgExit, answer: btnYes},
	)

	_, err := w.Run(context.Background())
	assert.ErrorIs(t, err, ErrExit)
	p.done()
}

func TestManualEntryExitDeclinedKeepsNames(t *testing.T) {
	w, p, _ := newWizard(t,
		step{call: "choose", answer: btnManual},
		step{call: "int", answer: btnContinue, n: 2},
		step{call: "string", answer: btnContinue, text: "ann"},
		step{call: "string", answer: btnExit},
		step{call: "choose", expect: msgExit, answer: btnNo},
		step{call: "string", expect: msgName, answer: btnContinue, text: "ben"},
		step{call: "choose", expect: "Names entered:\nAnn, Ben", answer: btnContinue},
	)

	s := &Session{}
	require.NoError(t, w.CollectNames(context.Background(), s))
	p.done()
	assert.Equal(t, merge.RecipientList{"Ann", "Ben"}, s.Recipients)
}

func TestCountExitDeclinedAsksAgain(t *testing.T) {
	w, p, _ := newWizard(t,
		step{call: "choose", answer: btnManual},
		step{call: "int", answer: btnExit},
		step{call: "choose", expect: msgExit, answer: btnNo},
		step{call: "int", expect: msgCount, answer: btnContinue, n: 2},
		step{call: "string", answer: btnContinue, text: "ann"},
		step{call: "string", answer: btnContinue, text: "ben"},
		step{call: "choose", answer: btnContinue},
	)

	s := &Session{}
	require.NoError(t, w.CollectNames(context.Background(), s))
	p.done()
}

func TestReenterNamesDiscardsList(t *testing.T) {
	w, p, _ := newWizard(t,
		step{call: "choose", answer: btnManual},
		step{call: "int", answer: btnContinue, n: 2},
		step{call: "string", answer: btnContinue, text: "ann"},
		step{call: "string", answer: btnContinue, text: "ben"},
		step{call: "choose", expect: "Names entered:\nAnn, Ben", answer: btnReenter},
		step{call: "choose", expect: msgInputMethod, answer: btnManual},
		step{call: "int", answer: btnContinue, n: 2},
		step{call: "string", answer: btnContinue, text: "cy"},
		step{call: "string", answer: btnContinue, text: "di"},
		step{call: "choose", expect: "Names entered:\nCy, Di", answer: btnContinue},
	)

	s := &Session{}
	require.NoError(t, w.CollectNames(context.Background(), s))
	p.done()
	assert.Equal(t, merge.RecipientList{"Cy", "Di"}, s.Recipients)
}

func TestNamesFileNeedsDelimiter(t *testing.T) {
	bad := writeFile(t, "bad.txt", "Alice Bob")
	good := writeFile(t, "good.txt", "Alice, Bob,  , Carol\n")

	w, p, _ := newWizard(t,
		step{call: "choose", answer: btnTextFile},
		step{call: "file", expect: msgNamesFile, answer: bad},
		step{call: "warn", expect: msgNoDelimiter},
		step{call: "file", expect: msgNamesFile, answer: good},
		step{call: "choose", expect: "Names entered:\nAlice, Bob, Carol", answer: btnContinue},
	)

	s := &Session{}
	require.NoError(t, w.CollectNames(context.Background(), s))
	p.done()
	assert.Equal(t, merge.RecipientList{"Alice", "Bob", "Carol"}, s.Recipients)
}

func TestNamesFileReadErrorRestarts(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	w, p, _ := newWizard(t,
		step{call: "choose", expect: msgInputMethod, answer: btnTextFile},
		step{call: "file", answer: missing},
		step{call: "warn"},
		step{call: "choose", expect: msgInputMethod, answer: btnExit},
		step{call: "choose", expect: msgExit, answer: btnYes},
	)

	err := w.CollectNames(context.Background(), &Session{})
	assert.ErrorIs(t, err, ErrExit)
	p.done()
	assert.Contains(t, p.seen[2], "Error:")
}

func TestNamesFileCancelAsksToExit(t *testing.T) {
	w, p, _ := newWizard(t,
		step{call: "choose", answer: btnTextFile},
		step{call: "file", answer: ""},
		step{call: "choose", expect: msgExit, answer: btnYes},
	)

	err := w.CollectNames(context.Background(), &Session{})
	assert.ErrorIs(t, err, ErrExit)
	p.done()
}

func TestLetterNeedsContentAndPlaceholder(t *testing.T) {
	w, p, _ := newWizard(t,
		step{call: "choose", expect: msgLetterChoice, answer: btnTypeLetter},
		step{call: "info"},
		step{call: "text", answer: btnContinue, text: "  \n"},
		step{call: "warn", expect: msgEmptyLetter},
		step{call: "choose", expect: msgLetterChoice, answer: btnTypeLetter},
		step{call: "info"},
		step{call: "text", answer: btnContinue, text: "Hello there"},
		step{call: "warn", expect: msgNoPlaceholder},
		step{call: "choose", expect: msgLetterChoice, answer: btnTypeLetter},
		step{call: "info"},
		step{call: "text", answer: btnContinue, text: "Hello [name]"},
	)

	s := &Session{}
	require.NoError(t, w.CollectLetter(context.Background(), s))
	p.done()

	tmpl, ok := s.Template.(*merge.TextTemplate)
	require.True(t, ok)
	assert.Equal(t, "Hello [name]", tmpl.Body)
}

func TestLetterFromFile(t *testing.T) {
	noPlaceholder := writeFile(t, "plain.txt", "Hello")
	letter := writeFile(t, "letter.txt", "Hi [name]!")

	w, p, _ := newWizard(t,
		step{call: "choose", answer: btnBrowse},
		step{call: "info", expect: msgPlaceholder},
		step{call: "file", expect: msgLetterFile, answer: noPlaceholder},
		step{call: "warn", expect: msgNoPlaceholder},
		step{call: "choose", answer: btnBrowse},
		step{call: "info"},
		step{call: "file", answer: ""},
		step{call: "choose", expect: msgExit, answer: btnNo},
		step{call: "choose", answer: btnBrowse},
		step{call: "info"},
		step{call: "file", answer: letter},
	)

	s := &Session{}
	require.NoError(t, w.CollectLetter(context.Background(), s))
	p.done()
	assert.Equal(t, ".txt", s.Template.Extension())
}

func TestGenerateRetriesUnusableFolder(t *testing.T) {
	out := t.TempDir()
	missing := filepath.Join(out, "missing")

	w, p, opener := newWizard(t,
		step{call: "choose", expect: msgSelectFolder, answer: btnContinue},
		step{call: "folder", answer: missing},
		step{call: "warn"},
		step{call: "choose", expect: msgSelectFolder, answer: btnContinue},
		step{call: "folder", answer: out},
		step{call: "choose", expect: msgSuccess, answer: btnExit},
	)

	s := &Session{
		Recipients: merge.RecipientList{"Ann", "Ben"},
		Template:   merge.NewTextTemplate("To [name]"),
	}
	require.NoError(t, w.Generate(context.Background(), s))
	p.done()

	assert.Len(t, s.Letters, 2)
	assert.Equal(t, []string{out}, opener.dirs)
	assert.Contains(t, p.seen[2], "Could not write the letters")
}
