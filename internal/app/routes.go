package app

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/applaudhq/applaud/internal/engine"
)

const sessionCookie = "applaud_session"

func (a App) ok(c component) *ComponentResponse {
	return &ComponentResponse{Component: c, Code: 200, Message: "OK", ContentType: "text/html", Error: nil}
}

func (a App) fail(ctx errCtx, err error) *ComponentResponse {
	return &ComponentResponse{
		Component:   a.ComponentBuilder.Error(ctx.Title, ctx.Msg),
		Code:        ctx.Code,
		Message:     ctx.Title,
		ContentType: "text/html",
		Error:       err,
	}
}

// session resolves the editor session bound to the request's cookie.
func (a App) session(r *http.Request) (*ComponentResponse, sessionHandle) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return a.fail(get400(), nil), sessionHandle{}
	}

	s, found := a.Sessions.Get(c.Value)
	if !found {
		return a.fail(get400(), nil), sessionHandle{}
	}

	return nil, sessionHandle{id: c.Value, session: s}
}

type sessionHandle struct {
	id      string
	session *engine.Session
}

func (a App) index(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	if r.URL.Path != "/" {
		return a.fail(get404(), nil)
	}
	return a.ok(a.ComponentBuilder.Index(a.Employees))
}

func (a App) openEditor(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	if r.Method != http.MethodPost {
		return a.fail(get405(), nil)
	}

	employee := strings.TrimSpace(r.FormValue("employee"))
	if employee == "" {
		return a.fail(get400(), nil)
	}

	s := engine.NewSession(a.Deps, employee)
	id := uuid.NewString()
	a.Sessions.Save(id, s)

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: id, Path: "/", HttpOnly: true})

	return a.ok(a.ComponentBuilder.Editor(s.Snapshot()))
}

func (a App) textChange(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	if r.Method != http.MethodPost {
		return a.fail(get405(), nil)
	}

	errResp, h := a.session(r)
	if errResp != nil {
		return errResp
	}

	h.session.OnTextChange(r.FormValue("text"))

	return a.ok(a.ComponentBuilder.EditorState(h.session.Snapshot()))
}

func (a App) editorState(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	if r.Method != http.MethodGet {
		return a.fail(get405(), nil)
	}

	errResp, h := a.session(r)
	if errResp != nil {
		return errResp
	}

	return a.ok(a.ComponentBuilder.EditorState(h.session.Snapshot()))
}

func (a App) acceptGhost(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	if r.Method != http.MethodPost {
		return a.fail(get405(), nil)
	}

	errResp, h := a.session(r)
	if errResp != nil {
		return errResp
	}

	h.session.AcceptGhost()

	return a.ok(a.ComponentBuilder.EditorStateWithDraft(h.session.Snapshot()))
}

func (a App) rewrite(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	if r.Method != http.MethodPost {
		return a.fail(get405(), nil)
	}

	errResp, h := a.session(r)
	if errResp != nil {
		return errResp
	}

	h.session.RewriteWithAI()

	return a.ok(a.ComponentBuilder.EditorState(h.session.Snapshot()))
}

func (a App) useSuggestion(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	if r.Method != http.MethodPost {
		return a.fail(get405(), nil)
	}

	errResp, h := a.session(r)
	if errResp != nil {
		return errResp
	}

	h.session.UseAIText()

	return a.ok(a.ComponentBuilder.EditorStateWithDraft(h.session.Snapshot()))
}

func (a App) submit(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	if r.Method != http.MethodPost {
		return a.fail(get405(), nil)
	}

	errResp, h := a.session(r)
	if errResp != nil {
		return errResp
	}

	employee := h.session.Employee()
	if !h.session.Submit() {
		return a.ok(a.ComponentBuilder.EditorState(h.session.Snapshot()))
	}

	return a.ok(a.ComponentBuilder.ThankYou(employee))
}

func (a App) back(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	if r.Method != http.MethodPost {
		return a.fail(get405(), nil)
	}

	errResp, h := a.session(r)
	if errResp != nil {
		return errResp
	}

	h.session.Reset()

	return a.ok(a.ComponentBuilder.Index(a.Employees))
}

func (a App) closeEditor(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	if r.Method != http.MethodPost {
		return a.fail(get405(), nil)
	}

	errResp, h := a.session(r)
	if errResp != nil {
		return errResp
	}

	a.Sessions.Delete(h.id)

	return a.ok(a.ComponentBuilder.Index(a.Employees))
}
