// Package joke holds the domain types and error taxonomy shared by the
// API client, the sampler, the record store and the leaderboard.
package joke

// Record is a single joke as returned by the search API and as persisted
// in the record store. ID is the identity; Text is the joke body.
type Record struct {
	ID   string
	Text string
}

// SearchPage is the decoded result of one search request: aggregate
// metadata about every match plus the results of the requested page.
type SearchPage struct {
	// TotalResults is the number of jokes matching the term across all pages.
	TotalResults int

	// Limit is the maximum number of results per page.
	Limit int

	// TotalPages is the number of pages the API splits the matches into.
	TotalPages int

	// CurrentPage is the 1-based page number Results belong to.
	CurrentPage int

	// Results holds the jokes on CurrentPage, in API order.
	Results []Record
}
