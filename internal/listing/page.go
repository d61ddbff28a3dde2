package listing

// PageLink is one entry of the pagination control. URL is nil for inert
// entries (gaps, Previous on the first page, Next on the last).
type PageLink struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// PageMeta describes where a page sits in the full result.
type PageMeta struct {
	CurrentPage int        `json:"current_page"`
	LastPage    int        `json:"last_page"`
	PerPage     int        `json:"per_page"`
	Total       int        `json:"total"`
	From        int        `json:"from"`
	To          int        `json:"to"`
	Path        string     `json:"path"`
	Links       []PageLink `json:"links"`
}

// Page is one slice of a list result.
type Page[T any] struct {
	Data []T      `json:"data"`
	Meta PageMeta `json:"meta"`
}

// Envelope is the wire shape of a list response.
type Envelope[T any] struct {
	Data        []T         `json:"data"`
	Meta        PageMeta    `json:"meta"`
	QueryParams QueryParams `json:"queryParams"`
}
