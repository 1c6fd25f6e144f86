// Package query owns the search text: the draft being typed and the active
// query that last produced a fetch.
package query

// DefaultKey is the persisted key for the search term.
const DefaultKey = "searchTerm"

// DefaultFallback seeds the draft when nothing has been persisted yet.
const DefaultFallback = "React"

// Persister is the durable cell behind the draft. *prefs.Store satisfies it.
type Persister interface {
	Read(key, fallback string) string
	Write(key, value string)
}

// Options configure a Controller.
type Options struct {
	Key      string
	Fallback string
}

// Controller separates typing from fetching. Typing changes only the draft;
// Submit promotes the draft to the active query, and Sync reports when the
// active query needs a fetch.
type Controller struct {
	persist Persister
	key     string

	draft  string
	active string

	synced  bool
	fetched string
}

// NewController reads the persisted draft once and seeds both queries with it.
func NewController(persist Persister, opts Options) *Controller {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}
	fallback := opts.Fallback
	if fallback == "" {
		fallback = DefaultFallback
	}
	initial := persist.Read(key, fallback)
	return &Controller{
		persist: persist,
		key:     key,
		draft:   initial,
		active:  initial,
	}
}

// Draft returns the text being edited.
func (c *Controller) Draft() string { return c.draft }

// Active returns the last submitted query.
func (c *Controller) Active() string { return c.active }

// OnDraftChange replaces the draft and writes it through to storage.
func (c *Controller) OnDraftChange(text string) {
	if text == c.draft {
		return
	}
	c.draft = text
	c.persist.Write(c.key, text)
}

// Submit makes the draft the active query and reports, like Sync, whether
// that calls for a fetch. Blank drafts are accepted.
func (c *Controller) Submit() (string, bool) {
	c.active = c.draft
	return c.Sync()
}

// Sync returns the active query and true when it differs from the last query
// handed out, or when none has been handed out yet.
func (c *Controller) Sync() (string, bool) {
	if c.synced && c.active == c.fetched {
		return c.active, false
	}
	c.synced = true
	c.fetched = c.active
	return c.active, true
}
