// Package wizard drives the mail merge: it collects recipients and a letter
// through a dialogs.Prompter and hands them to a merge.Generator.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"edumerge/internal/dialogs"
	"edumerge/internal/logger"
	"edumerge/internal/merge"
)

const component = "Wizard"

// ErrExit is returned when the user confirms leaving the mail merge.
var ErrExit = errors.New("mail merge exited by user")

const (
	btnContinue   = "Continue"
	btnExit       = "Exit"
	btnYes        = "Yes"
	btnNo         = "No"
	btnManual     = "Manual Insert"
	btnTextFile   = "Text File"
	btnReenter    = "Re-enter Names"
	btnBrowse     = "Browse"
	btnTypeLetter = "Type Letter Content"

	msgExit          = "Do you want to exit the app?"
	msgInputMethod   = "Do you want to enter names manually, or through a text file?"
	msgCount         = "How many people do you want send a mail to?"
	msgName          = "Please enter the name:"
	msgInvalidName   = "Please enter a valid name:"
	msgNamesFile     = "Select the names text file"
	msgNoDelimiter   = "Please enter the names separated by comma."
	msgNoNames       = "The names file does not contain any names."
	msgLetterChoice  = "How do you want to enter the letter content?\nAs a file or type it?"
	msgPlaceholder   = "Make sure that you've entered the [name] placeholder in your letter"
	msgLetterFile    = "Select your mail"
	msgLetterContent = "Enter the letter Content"
	msgEmptyLetter   = "The letter is empty, please try again."
	msgNoPlaceholder = "Warning: Placeholder '[name]' is not in the letter body"
	msgSelectFolder  = "Now please select the folders in which you want to save your mails."
	msgFolder        = "Where do you want to save the mails?"
	msgSuccess       = "Your Mail Merge was successful, congratulations!"

	// MinRecipients and MaxRecipients bound the recipient count spinner.
	MinRecipients = 2
	MaxRecipients = 1000
)

// Session is the state built up during one run.
type Session struct {
	Recipients merge.RecipientList
	Template   merge.Template
	OutputDir  string
	Letters    []string
}

// Wizard asks the mail merge questions in order. Every re-prompt is a loop;
// cancelling a step asks whether to exit and repeats the step on "No".
type Wizard struct {
	prompter     dialogs.Prompter
	generator    *merge.Generator
	opener       merge.DirOpener
	logger       logger.Logger
	readFile     func(string) ([]byte, error)
	loadTemplate func(string) (merge.Template, error)
}

func New(prompter dialogs.Prompter, generator *merge.Generator, opener merge.DirOpener, log logger.Logger) *Wizard {
	return &Wizard{
		prompter:     prompter,
		generator:    generator,
		opener:       opener,
		logger:       log,
		readFile:     os.ReadFile,
		loadTemplate: merge.LoadTemplate,
	}
}

// Run performs a whole mail merge. It returns ErrExit when the user leaves
// early, and the session reached so far in every case.
func (w *Wizard) Run(ctx context.Context) (*Session, error) {
	s := &Session{}
	defer func() {
		if c, ok := s.Template.(io.Closer); ok {
			_ = c.Close()
		}
	}()

	w.logger.Info(component, "mail merge started", nil)

	if err := w.CollectNames(ctx, s); err != nil {
		return s, w.finish(err)
	}
	if err := w.CollectLetter(ctx, s); err != nil {
		return s, w.finish(err)
	}
	if err := w.Generate(ctx, s); err != nil {
		return s, w.finish(err)
	}
	return s, nil
}

func (w *Wizard) finish(err error) error {
	if errors.Is(err, ErrExit) {
		w.logger.Info(component, "mail merge exited", nil)
	} else {
		w.logger.Error(component, err, nil)
	}
	return err
}

// confirmExit returns ErrExit if the user wants to leave, nil to retry the
// current step.
func (w *Wizard) confirmExit(ctx context.Context) error {
	choice, err := w.prompter.Choose(ctx, msgExit, btnYes, btnNo)
	if err != nil {
		return err
	}
	if choice == btnYes {
		return ErrExit
	}
	return nil
}

// errRestart sends name collection back to its first question.
var errRestart = errors.New("restart name collection")

// CollectNames fills s.Recipients and returns once the user confirms them.
func (w *Wizard) CollectNames(ctx context.Context, s *Session) error {
	for {
		s.Recipients = nil

		method, err := w.prompter.Choose(ctx, msgInputMethod, btnManual, btnTextFile, btnExit)
		if err != nil {
			return err
		}
		switch method {
		case btnManual:
			err = w.collectManually(ctx, s)
		case btnTextFile:
			err = w.collectFromFile(ctx, s)
		default:
			if err := w.confirmExit(ctx); err != nil {
				return err
			}
			continue
		}
		if errors.Is(err, errRestart) {
			continue
		}
		if err != nil {
			return err
		}

		confirmed, err := w.confirmNames(ctx, s)
		if err != nil {
			return err
		}
		if confirmed {
			w.logger.Info(component, "recipients confirmed", map[string]interface{}{
				"count": len(s.Recipients),
			})
			return nil
		}
	}
}

// confirmNames returns false when the user wants to enter the names again.
func (w *Wizard) confirmNames(ctx context.Context, s *Session) (bool, error) {
	for {
		choice, err := w.prompter.Choose(ctx, "Names entered:\n"+s.Recipients.String(), btnContinue, btnReenter, btnExit)
		if err != nil {
			return false, err
		}
		switch choice {
		case btnContinue:
			return true, nil
		case btnReenter:
			return false, nil
		}
		if err := w.confirmExit(ctx); err != nil {
			return false, err
		}
	}
}

func (w *Wizard) collectManually(ctx context.Context, s *Session) error {
	var count int
	for count < MinRecipients {
		n, button, err := w.prompter.AskInt(ctx, msgCount, MinRecipients, MaxRecipients, btnContinue, btnExit)
		if err != nil {
			return err
		}
		if button != btnContinue {
			if err := w.confirmExit(ctx); err != nil {
				return err
			}
			continue
		}
		count = n
	}

	prompt := msgName
	for len(s.Recipients) < count {
		entered, button, err := w.prompter.AskString(ctx, prompt, btnContinue, btnExit)
		if err != nil {
			return err
		}
		if button != btnContinue {
			if err := w.confirmExit(ctx); err != nil {
				return err
			}
			continue
		}

		name, err := merge.NormalizeName(entered)
		if err != nil {
			prompt = msgInvalidName
			continue
		}
		prompt = msgName
		s.Recipients = append(s.Recipients, name)
	}
	return nil
}

func (w *Wizard) collectFromFile(ctx context.Context, s *Session) error {
	for {
		path, err := w.prompter.OpenFile(ctx, msgNamesFile, []string{".txt"})
		if err != nil {
			return err
		}
		if path == "" {
			if err := w.confirmExit(ctx); err != nil {
				return err
			}
			continue
		}

		data, err := w.readFile(path)
		if err != nil {
			w.logger.Warning(component, "names file unreadable", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
			if err := w.prompter.Warn(ctx, fmt.Sprintf("Error: %v", err)); err != nil {
				return err
			}
			return errRestart
		}

		names, err := merge.ParseNames(string(data))
		switch {
		case errors.Is(err, merge.ErrNoDelimiter):
			if err := w.prompter.Warn(ctx, msgNoDelimiter); err != nil {
				return err
			}
			continue
		case errors.Is(err, merge.ErrNoNames):
			if err := w.prompter.Warn(ctx, msgNoNames); err != nil {
				return err
			}
			continue
		case err != nil:
			return err
		}

		s.Recipients = names
		return nil
	}
}

// CollectLetter fills s.Template with a letter that contains the placeholder.
func (w *Wizard) CollectLetter(ctx context.Context, s *Session) error {
	for {
		choice, err := w.prompter.Choose(ctx, msgLetterChoice, btnBrowse, btnTypeLetter)
		if err != nil {
			return err
		}

		var tmpl merge.Template
		switch choice {
		case btnBrowse:
			tmpl, err = w.browseLetter(ctx)
		case btnTypeLetter:
			tmpl, err = w.typeLetter(ctx)
		default:
			err = w.confirmExit(ctx)
		}
		if err != nil {
			return err
		}
		if tmpl == nil {
			continue
		}

		if err := tmpl.Validate(); err != nil {
			if c, ok := tmpl.(io.Closer); ok {
				_ = c.Close()
			}
			message := msgNoPlaceholder
			if errors.Is(err, merge.ErrEmptyLetter) {
				message = msgEmptyLetter
			}
			if err := w.prompter.Warn(ctx, message); err != nil {
				return err
			}
			continue
		}

		s.Template = tmpl
		return nil
	}
}

// browseLetter returns a nil template when the step should be repeated.
func (w *Wizard) browseLetter(ctx context.Context) (merge.Template, error) {
	if err := w.prompter.Info(ctx, msgPlaceholder); err != nil {
		return nil, err
	}
	path, err := w.prompter.OpenFile(ctx, msgLetterFile, []string{".txt", ".docx"})
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, w.confirmExit(ctx)
	}

	tmpl, err := w.loadTemplate(path)
	if err != nil {
		w.logger.Warning(component, "letter file unreadable", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return nil, w.prompter.Warn(ctx, fmt.Sprintf("Error: %v", err))
	}
	return tmpl, nil
}

func (w *Wizard) typeLetter(ctx context.Context) (merge.Template, error) {
	if err := w.prompter.Info(ctx, msgPlaceholder); err != nil {
		return nil, err
	}
	body, button, err := w.prompter.AskText(ctx, msgLetterContent, btnContinue, btnExit)
	if err != nil {
		return nil, err
	}
	if button != btnContinue {
		return nil, w.confirmExit(ctx)
	}
	return merge.NewTextTemplate(body), nil
}

// Generate asks for the output folder, writes the letters and opens the
// folder.
func (w *Wizard) Generate(ctx context.Context, s *Session) error {
	for {
		choice, err := w.prompter.Choose(ctx, msgSelectFolder, btnContinue, btnExit)
		if err != nil {
			return err
		}
		if choice != btnContinue {
			if err := w.confirmExit(ctx); err != nil {
				return err
			}
			continue
		}

		dir, err := w.prompter.OpenFolder(ctx, msgFolder)
		if err != nil {
			return err
		}
		if dir == "" {
			if err := w.confirmExit(ctx); err != nil {
				return err
			}
			continue
		}

		letters, err := w.generator.Generate(ctx, s.Template, s.Recipients, dir)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			if err := w.prompter.Warn(ctx, fmt.Sprintf("Could not write the letters: %v", err)); err != nil {
				return err
			}
			continue
		}
		s.OutputDir = dir
		s.Letters = letters
		break
	}

	if _, err := w.prompter.Choose(ctx, msgSuccess, btnExit); err != nil {
		return err
	}
	if w.opener != nil {
		if err := w.opener.OpenDirectory(s.OutputDir); err != nil {
			w.logger.Warning(component, "could not open output folder", map[string]interface{}{
				"dir":   s.OutputDir,
				"error": err.Error(),
			})
		}
	}
	return nil
}
