// Package components renders the server-side UI fragments. Components are
// handwritten templ.ComponentFunc values; everything user-derived goes
// through templ.EscapeString.
package components

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/a-h/templ"

	"github.com/applaudhq/applaud/internal/domain"
	"github.com/applaudhq/applaud/internal/engine"
)

const ringRadius = 34.0

type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) write(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) writef(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

// Index is the page shell: the colleague picker plus the container the
// editor fragments swap into.
func Index(employees []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.write(`<!doctype html><html lang="en"><head><meta charset="utf-8">` +
			`<title>Applaud</title>` +
			`<link rel="stylesheet" href="/static/styles.css">` +
			`<script src="https://unpkg.com/htmx.org@1.9.10"></script>` +
			`</head><body><main id="app">` +
			`<section class="picker"><h1>Appreciate a colleague</h1>` +
			`<form hx-post="/editor" hx-target="#app">` +
			`<select name="employee">`)
		for _, e := range employees {
			h.writef(`<option value="%s">%s</option>`, templ.EscapeString(e), templ.EscapeString(e))
		}
		h.write(`</select>` +
			`<button type="submit">Write appreciation</button>` +
			`</form></section></main></body></html>`)

		return h.err
	})
}

// Editor is the appreciation editor for one colleague: the textarea plus the
// live coaching panel, which polls for async updates.
func Editor(s engine.State) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.writef(`<section class="editor"><header>`+
			`<button hx-post="/editor/back" hx-target="#app">Back</button>`+
			`<h2>Appreciating %s</h2>`+
			`<button hx-post="/editor/close" hx-target="#app">Close</button>`+
			`</header>`, templ.EscapeString(s.Employee))
		writeDraft(h, s, false)
		h.write(`<div id="editor-state" hx-get="/editor/state" hx-trigger="every 500ms" hx-target="this">`)
		if h.err != nil {
			return h.err
		}
		if err := EditorState(s).Render(ctx, w); err != nil {
			return err
		}
		h.write(`</div></section>`)

		return h.err
	})
}

func writeDraft(h *htmlWriter, s engine.State, oob bool) {
	extra := ""
	if oob {
		extra = ` hx-swap-oob="true"`
	}
	h.writef(`<textarea id="draft" name="text" autofocus%s `+
		`hx-post="/editor/text" hx-trigger="input" hx-target="#editor-state" `+
		`placeholder="Write your appreciation...">%s</textarea>`,
		extra, templ.EscapeString(s.Text))
}

// EditorStateWithDraft is the fragment for operations that replace the draft
// server-side (ghost acceptance, applying a suggestion). The out-of-band
// textarea swap keeps the visible draft and focus in step with the session,
// so the next input event posts the replaced text rather than the stale one.
func EditorStateWithDraft(s engine.State) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		writeDraft(h, s, true)
		if h.err != nil {
			return h.err
		}
		return EditorState(s).Render(ctx, w)
	})
}

// EditorState is the fragment reflecting one session snapshot: criteria,
// score ring, guidance, suggestion box and ghost text.
func EditorState(s engine.State) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		if s.Checking {
			h.write(`<p class="checking">Checking your message...</p>`)
		}

		h.write(`<ul class="criteria">`)
		for _, item := range s.Criteria {
			h.writef(`<li class="criterion %s">%s</li>`,
				string(item.Status), templ.EscapeString(string(item.Label)))
		}
		h.write(`</ul>`)

		writeScoreRing(h, s)
		writeGuidance(h, s)

		if s.ShowAISuggestion {
			h.writef(`<aside class="suggestion"><p>%s</p>`+
				`<button hx-post="/editor/use-suggestion" hx-target="#editor-state">Use this</button>`+
				`</aside>`, templ.EscapeString(s.AIText))
		}

		if s.GhostText != "" {
			h.writef(`<span class="ghost">%s</span>`+
				`<button hx-post="/editor/accept" hx-target="#editor-state">Tab to accept</button>`,
				templ.EscapeString(s.GhostText))
		}

		h.write(`<footer>`)
		h.write(`<button hx-post="/editor/rewrite" hx-target="#editor-state">Rewrite with AI</button>`)
		if s.CanSubmit {
			h.write(`<button hx-post="/editor/submit" hx-target="#app">Post appreciation</button>`)
		} else {
			h.write(`<button disabled>Post appreciation</button>`)
		}
		h.write(`</footer>`)

		return h.err
	})
}

func writeScoreRing(h *htmlWriter, s engine.State) {
	circumference := 2 * math.Pi * ringRadius
	offset := circumference * (1 - s.ScoreFraction)

	h.writef(`<div class="score %s"><svg viewBox="0 0 80 80">`+
		`<circle cx="40" cy="40" r="%.0f" class="track"/>`+
		`<circle cx="40" cy="40" r="%.0f" class="value" stroke-dasharray="%.2f" stroke-dashoffset="%.2f"/>`+
		`</svg><span>%d</span></div>`,
		s.ScoreBand, ringRadius, ringRadius, circumference, offset, s.Score)
}

func writeGuidance(h *htmlWriter, s engine.State) {
	if s.GuidanceKind == domain.KindEmpty {
		return
	}

	h.writef(`<div class="guidance %s">`, string(s.GuidanceKind))

	lead, phrases := engine.SplitGuidance(s.GuidanceText)
	h.writef(`<p>%s</p>`, templ.EscapeString(lead))
	if len(phrases) > 0 {
		h.writef(`<p class="try-using">%s</p><ul class="word-suggestions">`, engine.PhraseMarker)
		for _, p := range phrases {
			h.writef(`<li>%s</li>`, templ.EscapeString(p))
		}
		h.write(`</ul>`)
	}

	h.write(`</div>`)
}

// ThankYou confirms a posted appreciation.
func ThankYou(employee string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.writef(`<section class="thanks"><h2>Appreciation posted!</h2>`+
			`<p>%s will see your message.</p>`+
			`<button hx-post="/editor/back" hx-target="#app">Appreciate someone else</button>`+
			`</section>`, templ.EscapeString(employee))
		return h.err
	})
}

// ErrorPage renders an error fragment.
func ErrorPage(title string, msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.writef(`<section class="error"><h2>%s</h2><p>%s</p></section>`,
			templ.EscapeString(title), templ.EscapeString(msg))
		return h.err
	})
}
