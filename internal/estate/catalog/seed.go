package catalog

import "github.com/aussiebroadwan/estate/internal/estate/domain"

const pexels = "https://images.pexels.com/photos/"
const pexelsOpts = "?auto=compress&cs=tinysrgb&w=1260&h=750&dpr=1"

func pexelsURL(photo string) string {
	return pexels + photo + "/pexels-photo-" + photo + ".jpeg" + pexelsOpts
}

const (
	HeaderImageURL  = pexels + "106399/pexels-photo-106399.jpeg" + pexelsOpts
	CompanyImageURL = pexels + "3184405/pexels-photo-3184405.jpeg" + pexelsOpts
)

// Default builds the catalog the site ships with.
func Default() *Catalog {
	return New(defaultListings(), defaultAgents(), defaultReviews())
}

func defaultListings() []domain.Listing {
	return []domain.Listing{
		{
			Title: "Luxury Downtown Apartment", Location: "New York, USA", Price: "$1,200,000",
			ImageURL: pexelsURL("1643383"), Bedrooms: 3, AreaSqFt: 1500, Type: "Apartment",
			Description: "High-rise with stunning city views, modern finishes, and concierge service.",
			Keywords:    "New York, downtown, apartment, 3-bed, luxury, 1.2M",
		},
		{
			Title: "Spacious Suburban Villa", Location: "Los Angeles, USA", Price: "$2,500,000",
			ImageURL: pexelsURL("186077"), Bedrooms: 5, AreaSqFt: 4000, Type: "Villa",
			Description: "Large backyard, private pool, excellent school district. Ideal for families.",
			Keywords:    "Los Angeles, suburban, villa, 5-bed, family, 2.5M",
		},
		{
			Title: "Cozy Mountain Cabin", Location: "Denver, USA", Price: "$450,000",
			ImageURL: pexelsURL("208736"), Bedrooms: 2, AreaSqFt: 800, Type: "Cabin",
			Description: "Perfect getaway spot. Close to ski slopes and hiking trails. Fully furnished.",
			Keywords:    "Denver, mountain, cabin, 2-bed, vacation, 450K",
		},
		{
			Title: "Modern Loft", Location: "San Francisco, USA", Price: "$950,000",
			ImageURL: pexelsURL("271743"), Bedrooms: 1, AreaSqFt: 900, Type: "Apartment",
			Description: "Open-concept, industrial design, prime city location.",
			Keywords:    "San Francisco, loft, apartment, 1-bed, modern, 950K",
		},
		{
			Title: "Beachfront House", Location: "Miami, USA", Price: "$3,800,000",
			ImageURL: pexelsURL("2089698"), Bedrooms: 4, AreaSqFt: 3200, Type: "House",
			Description: "Direct beach access, stunning ocean views, large terrace.",
			Keywords:    "Miami, beach, house, 4-bed, luxury, 3.8M",
		},
		{
			Title: "Rural Farmhouse", Location: "Austin, USA", Price: "$750,000",
			ImageURL: pexelsURL("259647"), Bedrooms: 4, AreaSqFt: 2500, Type: "House",
			Description: "Spacious land, quiet environment, perfect for farming.",
			Keywords:    "Austin, rural, farmhouse, 4-bed, quiet, 750K",
		},
		{
			Title: "Chic Studio", Location: "Seattle, USA", Price: "$300,000",
			ImageURL: pexelsURL("1396122"), Bedrooms: 0, AreaSqFt: 500, Type: "Studio",
			Description: "Efficient layout, close to public transport, ideal for singles.",
			Keywords:    "Seattle, studio, apartment, 0-bed, cheap, 300K",
		},
		{
			Title: "Penthouse Suite", Location: "Chicago, USA", Price: "$5,000,000",
			ImageURL: pexelsURL("1571471"), Bedrooms: 4, AreaSqFt: 5000, Type: "Apartment",
			Description: "Top floor, exclusive elevator access, panoramic city views.",
			Keywords:    "Chicago, penthouse, apartment, 4-bed, exclusive, 5M",
		},
		{
			Title: "Townhouse with Garden", Location: "Boston, USA", Price: "$1,100,000",
			ImageURL: pexelsURL("1475938"), Bedrooms: 3, AreaSqFt: 1800, Type: "Townhouse",
			Description: "Three stories, small private garden, historic neighborhood.",
			Keywords:    "Boston, townhouse, 3-bed, historic, 1.1M",
		},
	}
}

func defaultAgents() []domain.Agent {
	return []domain.Agent{
		{Name: "Jane Doe", Title: "Senior Broker", Phone: "(555) 123-4567", Email: "jane.doe@estate.com", PhotoURL: "https://randomuser.me/api/portraits/women/44.jpg"},
		{Name: "John Smith", Title: "Sales Associate", Phone: "(555) 987-6543", Email: "john.smith@estate.com", PhotoURL: "https://randomuser.me/api/portraits/men/55.jpg"},
		{Name: "Alex Lee", Title: "Investment Specialist", Phone: "(555) 555-1212", Email: "alex.lee@estate.com", PhotoURL: "https://randomuser.me/api/portraits/lego/3.jpg"},
	}
}

func defaultReviews() []domain.Review {
	return []domain.Review{
		{Author: "Sarah K.", PhotoURL: "https://randomuser.me/api/portraits/women/12.jpg", Rating: 5,
			Feedback: "The agents were incredibly professional and helped us find our dream home in a tough market. Highly recommend!"},
		{Author: "Mark L.", PhotoURL: "https://randomuser.me/api/portraits/men/21.jpg", Rating: 5,
			Feedback: "Seamless transaction from start to finish. The details provided were accurate, and the team was always available for questions."},
		{Author: "David O.", PhotoURL: "https://randomuser.me/api/portraits/women/3.jpg", Rating: 4,
			Feedback: "Found a great property below budget. Their search feature is very effective!"},
	}
}
