package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/joho/godotenv"
	_ "go.uber.org/automaxprocs"

	"github.com/applaudhq/applaud/internal/app"
	"github.com/applaudhq/applaud/internal/components"
	"github.com/applaudhq/applaud/internal/engine"
	"github.com/applaudhq/applaud/internal/persistence"
)

func config() app.Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using system environment")
	}

	port := os.Getenv("GOPORT")
	if port == "" {
		port = "8000"
	}

	aiBaseUrl := os.Getenv("AI_BASE_URL")
	if aiBaseUrl == "" {
		aiBaseUrl = "http://localhost:5000/api"
	}

	aiApiKey := os.Getenv("AI_API_KEY")
	if aiApiKey == "" {
		slog.Error("AI_API_KEY environment variable not set")
	}

	return app.Config{Port: port, AIBaseUrl: aiBaseUrl, AIApiKey: aiApiKey}
}

func main() {
	config := config()

	componentBuilder := app.ComponentBuilder{
		Index:                components.Index,
		Editor:               components.Editor,
		EditorState:          components.EditorState,
		EditorStateWithDraft: components.EditorStateWithDraft,
		ThankYou:             components.ThankYou,
		Error:                components.ErrorPage,
	}

	aiHeaders := []string{
		"Content-Type: application/json",
		fmt.Sprintf("Authorization: Bearer %s", config.AIApiKey)}

	languageRepo := persistence.LanguageRepo{BaseUrl: config.AIBaseUrl, BaseHeaders: aiHeaders}
	qualityRepo := persistence.QualityRepo{BaseUrl: config.AIBaseUrl, BaseHeaders: aiHeaders}
	rewriteRepo := persistence.RewriteRepo{BaseUrl: config.AIBaseUrl, BaseHeaders: aiHeaders}
	completionRepo := persistence.CompletionRepo{BaseUrl: config.AIBaseUrl, BaseHeaders: aiHeaders}

	deps := engine.Deps{
		Abuse:     languageRepo,
		Quality:   qualityRepo,
		Rewriter:  rewriteRepo,
		Completer: completionRepo,
		Scheduler: engine.RealScheduler(),
		Intn:      rand.Intn,
	}

	a := app.App{
		Deps:             deps,
		Sessions:         app.NewSessionStore(),
		ComponentBuilder: componentBuilder,
		Employees: []string{
			"Aisha Khan",
			"Daniel Moore",
			"Elena Petrova",
			"Marcus Lee",
			"Priya Sharma",
			"Tom Becker",
		},
		Config: config,
	}

	a.Start()
}
