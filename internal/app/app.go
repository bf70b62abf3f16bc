package app

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/applaudhq/applaud/internal/engine"
)

type Config struct {
	Port      string
	AIBaseUrl string
	AIApiKey  string
}

// ComponentBuilder decouples handlers from the concrete templ components.
type ComponentBuilder struct {
	Index                func(employees []string) templ.Component
	Editor               func(s engine.State) templ.Component
	EditorState          func(s engine.State) templ.Component
	EditorStateWithDraft func(s engine.State) templ.Component
	ThankYou             func(employee string) templ.Component
	Error                func(title string, msg string) templ.Component
}

type App struct {
	Deps             engine.Deps
	Sessions         *SessionStore
	ComponentBuilder ComponentBuilder
	Employees        []string
	Config           Config
}

func (a App) Start() {
	http.Handle("/static/",
		http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	http.Handle("/", ComponentHandler(a.index))
	http.Handle("/editor", ComponentHandler(a.openEditor))
	http.Handle("/editor/text", ComponentHandler(a.textChange))
	http.Handle("/editor/state", ComponentHandler(a.editorState))
	http.Handle("/editor/accept", ComponentHandler(a.acceptGhost))
	http.Handle("/editor/rewrite", ComponentHandler(a.rewrite))
	http.Handle("/editor/use-suggestion", ComponentHandler(a.useSuggestion))
	http.Handle("/editor/submit", ComponentHandler(a.submit))
	http.Handle("/editor/back", ComponentHandler(a.back))
	http.Handle("/editor/close", ComponentHandler(a.closeEditor))

	slog.Info(fmt.Sprintf("App running on %s...", a.Config.Port))
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%s", a.Config.Port), nil))
}
