package hn

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ItemID identifies a story. The live API sends it as a string and older
// fixtures as a number; both decode to the same textual form.
type ItemID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode object id: %w", err)
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("decode object id: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// Item is a single search result as held by the list store.
type Item struct {
	ID          ItemID `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	NumComments int    `json:"numComments"`
	Points      int    `json:"points"`
}

// SearchResponse mirrors the payload returned by the search endpoint.
type SearchResponse struct {
	Hits []Hit `json:"hits"`
}

// Hit is one record of the hits array in transport form.
type Hit struct {
	ObjectID    ItemID `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	NumComments int    `json:"num_comments"`
	Points      int    `json:"points"`
}
