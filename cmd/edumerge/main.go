package main

import (
	"context"
	"errors"
	"log"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"edumerge/internal/config"
	"edumerge/internal/controllers"
	"edumerge/internal/dialogs"
	"edumerge/internal/documents"
	"edumerge/internal/logger"
	"edumerge/internal/merge"
	"edumerge/internal/models"
	"edumerge/internal/shutdown"
	"edumerge/internal/views"
	"edumerge/internal/wizard"
)

const (
	AppName    = "EduMerge"
	AppID      = "org.edumerge.app"
	AppVersion = "1.0.0"

	component = "Application"

	// editorComponent names the open editor in the shutdown manager. Only
	// one editor window exists at a time.
	editorComponent = "editor"
)

// Application owns the Fyne app, the start window and the tool that was
// launched from it.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	cfg     config.Config
	logger  logger.Logger

	start    *views.StartView
	shutdown *shutdown.Manager

	// openOnStart is a file named on the command line, opened the first
	// time the editor starts.
	openOnStart string
}

func main() {
	cfg := config.FromEnv()

	application, err := NewApplication(cfg)
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}
	if len(os.Args) > 1 {
		application.openOnStart = os.Args[1]
	}
	application.Run()
}

func NewApplication(cfg config.Config) (*Application, error) {
	appLogger := logger.NewConsoleLogger(cfg.LogLevel)

	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(views.NewEditorTheme())
	if icon, err := fyne.LoadResourceFromPath(cfg.AssetPath("logo.png")); err == nil {
		fyneApp.SetIcon(icon)
	}

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(640, 480))
	window.CenterOnScreen()

	manager := shutdown.NewManager(appLogger)
	manager.SetQuit(fyneApp.Quit)

	a := &Application{
		fyneApp:  fyneApp,
		window:   window,
		cfg:      cfg,
		logger:   appLogger,
		start:    views.NewStartView(cfg.AssetPath("logo.png")),
		shutdown: manager,
	}
	a.setupStartScreen()
	a.setupWindowEvents()

	appLogger.Info(component, "application initialized", map[string]interface{}{
		"version":      AppVersion,
		"go_version":   runtime.Version(),
		"log_level":    cfg.LogLevel.String(),
		"assets":       cfg.AssetsDir,
		"pdf_renderer": string(cfg.PDFRenderer),
	})
	return a, nil
}

// Run shows the start screen and blocks until the app quits.
func (a *Application) Run() {
	a.shutdown.Listen()
	a.window.SetContent(a.start.GetContainer())
	a.window.Show()
	a.fyneApp.Run()
	a.logger.Info(component, "application terminated", nil)
}

func (a *Application) setupStartScreen() {
	a.start.SetHandler(views.StartMailMerge, a.startMailMerge)
	a.start.SetHandler(views.StartEditor, a.startEditor)
	a.start.SetHandler(views.StartExit, a.confirmExit)
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(a.confirmExit)
}

func (a *Application) confirmExit() {
	m := dialogs.NewButtonModal("Exit", "Do you want to exit the app?", "Yes", "No")
	m.Show(a.window, func(r dialogs.Result[struct{}]) {
		if r.Button == "Yes" {
			go a.shutdown.Shutdown()
		}
	})
}

// startMailMerge runs the wizard on its own goroutine. The app quits once
// the wizard finishes, whether the letters were written or the user left.
func (a *Application) startMailMerge() {
	a.start.SetEnabled(false)

	prompter := dialogs.NewFynePrompter(a.window, a.cfg.AssetPath("label.png"), "Exit")
	w := wizard.New(prompter, merge.NewGenerator(a.logger), dialogs.AppOpener{App: a.fyneApp}, a.logger)

	go func() {
		session, err := w.Run(a.shutdown.Context())
		switch {
		case errors.Is(err, context.Canceled):
			return
		case err == nil:
			a.logger.Info(component, "mail merge finished", map[string]interface{}{
				"letters": len(session.Letters),
				"dir":     session.OutputDir,
			})
		}
		a.shutdown.Shutdown()
	}()
}

// startEditor replaces the start screen with an editor window. Closing the
// editor brings the start screen back.
func (a *Application) startEditor() {
	registry := documents.NewDefaultRegistry(a.cfg, a.logger)
	controller := controllers.NewEditorController(registry, models.NewDocumentBuffer(), a.logger)
	a.shutdown.Register(editorComponent, controller)

	editorWindow := a.fyneApp.NewWindow(controllers.AppTitle)
	editorWindow.Resize(fyne.NewSize(1200, 800))
	view := views.NewEditorView(editorWindow, a.cfg.CSVPageSize)
	editorWindow.SetContent(view.GetContainer())
	view.Bind(controller)

	editorWindow.SetCloseIntercept(func() {
		controller.RequestClose(func() {
			a.shutdown.Unregister(editorComponent)
			go controller.Shutdown()
			editorWindow.Close()
			a.window.Show()
		})
	})

	a.window.Hide()
	editorWindow.Show()
	a.logger.Info(component, "editor opened", map[string]interface{}{
		"formats": registry.Extensions(),
	})

	if path := a.openOnStart; path != "" {
		a.openOnStart = ""
		go func() {
			if err := controller.OpenPath(a.shutdown.Context(), path); err != nil {
				view.ShowError("Could not open file", err)
			}
		}()
	}
}
