package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/estate/internal/estate/catalog"
	"github.com/aussiebroadwan/estate/internal/estate/view"
)

// ListingsHandler serves the catalog pages.
type ListingsHandler struct {
	*Pages
	Catalog *catalog.Catalog
}

func (h *ListingsHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	page := h.base(w, r)
	page.Listings = h.Catalog.All()
	page.Agents = h.Catalog.Agents()
	page.Reviews = h.Catalog.Reviews()
	h.render(w, r, view.Home, page)
}

func (h *ListingsHandler) HandleProperty(w http.ResponseWriter, r *http.Request) {
	listing, ok := h.Catalog.ByID(r.PathValue("id"))
	if !ok {
		addNotice(w, r, danger("Property not found."))
		redirect(w, r, "/")
		return
	}

	page := h.base(w, r)
	page.Title = listing.Title
	page.Listing = listing
	h.render(w, r, view.Property, page)
}

func (h *ListingsHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := h.Catalog.Search(query)
	switch {
	case errors.Is(err, catalog.ErrEmptyQuery):
		addNotice(w, r, warning("Please enter a search term."))
		redirect(w, r, "/")
		return
	case err != nil:
		h.fail(w, r, "search catalog", err)
		return
	}

	page := h.base(w, r)
	page.Title = "Search"
	page.Query = query
	page.Listings = results
	h.render(w, r, view.Search, page)
}
