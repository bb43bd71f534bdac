package http

import (
	"bytes"
	"net/http"

	"github.com/aussiebroadwan/estate/internal/estate/catalog"
	"github.com/aussiebroadwan/estate/internal/estate/session"
	"github.com/aussiebroadwan/estate/internal/estate/view"
	"github.com/aussiebroadwan/estate/pkg/httpx"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

// Pages renders views with the per-request data every page shares.
type Pages struct {
	Views view.Renderer
}

// base fills in the session state and pending notices.
func (p *Pages) base(w http.ResponseWriter, r *http.Request) view.Page {
	page := view.Page{
		HeaderImageURL:  catalog.HeaderImageURL,
		CompanyImageURL: catalog.CompanyImageURL,
		Notices:         takeNotices(w, r),
	}
	if sess, ok := session.FromContext(r.Context()).Current(); ok {
		page.LoggedIn = true
		page.Username = sess.Username
	}
	return page
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, name string, page view.Page) {
	p.renderStatus(w, r, http.StatusOK, name, page)
}

func (p *Pages) renderStatus(w http.ResponseWriter, r *http.Request, code int, name string, page view.Page) {
	var buf bytes.Buffer
	if err := p.Views.Render(&buf, name, page); err != nil {
		slogx.FromContext(r.Context()).Error("render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// fail logs an unexpected error and shows the generic error page.
func (p *Pages) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slogx.FromContext(r.Context()).Error(msg, "error", err)
	p.renderStatus(w, r, http.StatusInternalServerError, view.Error, p.base(w, r))
}

// redirect uses 303 after a form POST so the browser follows up with a GET,
// and 302 otherwise.
func redirect(w http.ResponseWriter, r *http.Request, location string) {
	if r.Method == http.MethodPost {
		httpx.SeeOther(w, r, location)
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}
