//go:build unit || e2e

package builder

type ListingBuilder struct {
	ID       string
	Name     string
	Bedrooms *int
	Country  string
}

func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{
		ID:      "2001",
		Name:    "Marina Studio 12",
		Country: "United Arab Emirates",
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

func (b *ListingBuilder) WithBedrooms(n int) *ListingBuilder {
	b.Bedrooms = &n
	return b
}

func (b *ListingBuilder) BuildProviderJSON() map[string]any {
	payload := map[string]any{
		"id":      b.ID,
		"name":    b.Name,
		"country": b.Country,
	}
	if b.Bedrooms != nil {
		payload["bedroomsNumber"] = *b.Bedrooms
	}
	return payload
}
