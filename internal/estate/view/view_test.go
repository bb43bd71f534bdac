package view_test

import (
	"bytes"
	"testing"

	"github.com/aussiebroadwan/estate/internal/estate/catalog"
	"github.com/aussiebroadwan/estate/internal/estate/domain"
	"github.com/aussiebroadwan/estate/internal/estate/view"
	"github.com/stretchr/testify/require"
)

func TestRenderPages(t *testing.T) {
	tmpl, err := view.NewTemplates()
	require.NoError(t, err)

	c := catalog.Default()
	listing := c.All()[0]

	tests := []struct {
		name string
		page view.Page
		want []string
	}{
		{name: view.Home, page: view.Page{Listings: c.All(), Agents: c.Agents(), Reviews: c.Reviews()}, want: []string{listing.Title, "Jane Doe", "Sarah K.", `action="/contact"`}},
		{name: view.Property, page: view.Page{Listing: listing}, want: []string{listing.Title, listing.Description}},
		{name: view.Search, page: view.Page{Query: "castle"}, want: []string{"No properties matched"}},
		{name: view.Login, page: view.Page{}, want: []string{`action="/login"`, "Register"}},
		{name: view.Register, page: view.Page{}, want: []string{`action="/register"`}},
		{name: view.Error, page: view.Page{}, want: []string{"Something went wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tmpl.Render(&buf, tt.name, tt.page))
			for _, w := range tt.want {
				require.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestLayoutShowsSessionAndNotices(t *testing.T) {
	tmpl, err := view.NewTemplates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.Render(&buf, view.Login, view.Page{
		LoggedIn: true,
		Username: "<alice>",
		Notices:  []domain.Notice{{Category: domain.NoticeSuccess, Message: "Welcome back, <alice>!"}},
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "Hello, &lt;alice&gt;")
	require.Contains(t, out, `alert-success`)
	require.Contains(t, out, "Welcome back, &lt;alice&gt;!")
	require.Contains(t, out, `href="/logout"`)
}

func TestRenderUnknownPage(t *testing.T) {
	tmpl, err := view.NewTemplates()
	require.NoError(t, err)
	require.Error(t, tmpl.Render(&bytes.Buffer{}, "nope", view.Page{}))
}
