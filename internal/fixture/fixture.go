// Package fixture serves a small, fixed story set in the shape of the search
// API. It backs offline mode and the tests of the packages above it.
package fixture

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// SearchPath is where Router mounts the search endpoint.
const SearchPath = "/api/v1/search"

// Story mirrors a hit record; ObjectID is numeric like the seeded data.
type Story struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	NumComments int    `json:"num_comments"`
	Points      int    `json:"points"`
	ObjectID    int    `json:"objectID"`
}

// Stories returns the seeded story set.
func Stories() []Story {
	return []Story{
		{
			Title:       "React",
			URL:         "https://reactjs.org/",
			Author:      "Jordan Walke",
			NumComments: 3,
			Points:      4,
			ObjectID:    0,
		},
		{
			Title:       "Redux",
			URL:         "https://redux.js.org/",
			Author:      "Dan Abramov, Andrew Clark",
			NumComments: 2,
			Points:      5,
			ObjectID:    1,
		},
	}
}

// Filter keeps stories whose title contains query, ignoring case.
// An empty query matches everything.
func Filter(stories []Story, query string) []Story {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]Story, 0, len(stories))
	for _, s := range stories {
		if strings.Contains(strings.ToLower(s.Title), needle) {
			out = append(out, s)
		}
	}
	return out
}

// Router returns a chi router answering GET SearchPath from stories.
func Router(stories []Story) http.Handler {
	r := chi.NewRouter()
	r.Get(SearchPath, func(w http.ResponseWriter, req *http.Request) {
		hits := Filter(stories, req.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(struct {
			Hits []Story `json:"hits"`
		}{Hits: hits})
	})
	return r
}
