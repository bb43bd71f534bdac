package domain

// Listing is a property advertised on the site. Listings are built once at
// start-up and never change afterwards.
type Listing struct {
	ID          string
	Title       string
	Location    string
	Price       string // pre-formatted for display, e.g. "$1,200,000"
	ImageURL    string
	Bedrooms    int
	AreaSqFt    int
	Type        string
	Description string
	Keywords    string // free text, searched as a whole
}

type Agent struct {
	Name     string
	Title    string
	Phone    string
	Email    string
	PhotoURL string
}

// Review is a customer testimonial; Rating is 1..5.
type Review struct {
	Author   string
	PhotoURL string
	Feedback string
	Rating   int
}
