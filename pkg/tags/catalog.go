// Package tags loads and serves the word -> tag mapping used to enrich and
// filter the ranked tables. A tag is a named word set with a menu letter and
// a color; one word may carry any number of tags. The catalog is read once
// at startup and never mutated afterwards.
package tags

import "strings"

// TagID indexes into the catalog, assigned in file order.
type TagID int

// StopTagName marks the tag treated as the stop-word set by the filter
// toggle. Any tag may use the name; only one is honored (first wins).
const StopTagName = "stopwords"

// Tag is one named word set from the configuration.
type Tag struct {
	ID          TagID
	Name        string
	Letter      string
	Color       string
	Description string
	words       map[string]struct{}
}

// Has reports whether word belongs to this tag.
func (t *Tag) Has(word string) bool {
	_, ok := t.words[word]
	return ok
}

// Size returns the number of distinct words in the tag.
func (t *Tag) Size() int {
	return len(t.words)
}

// Catalog holds every loaded tag plus reverse lookups.
type Catalog struct {
	tags   []Tag
	byWord map[string][]TagID
	stop   TagID
}

// Empty returns a catalog with no tags. Lookups on it succeed and return
// nothing, so a failed tags.toml load degrades without special-casing.
func Empty() *Catalog {
	return &Catalog{byWord: make(map[string][]TagID), stop: -1}
}

// Len returns the number of tags.
func (c *Catalog) Len() int {
	return len(c.tags)
}

// Tags returns all tags in declaration order.
func (c *Catalog) Tags() []Tag {
	return c.tags
}

// Get returns the tag with the given id.
func (c *Catalog) Get(id TagID) (*Tag, bool) {
	if id < 0 || int(id) >= len(c.tags) {
		return nil, false
	}
	return &c.tags[id], true
}

// ByLetter returns the tag bound to a menu letter.
func (c *Catalog) ByLetter(letter string) (*Tag, bool) {
	for i := range c.tags {
		if c.tags[i].Letter == letter {
			return &c.tags[i], true
		}
	}
	return nil, false
}

// ForWord returns the ids of every tag containing word, in catalog order.
func (c *Catalog) ForWord(word string) []TagID {
	return c.byWord[word]
}

// StopTag returns the id of the stop-word tag, if the catalog has one.
func (c *Catalog) StopTag() (TagID, bool) {
	if c.stop < 0 {
		return 0, false
	}
	return c.stop, true
}

// Def declares one tag for Build.
type Def struct {
	Name        string
	Letter      string
	Color       string
	Description string
	Words       []string
}

// Build assembles a catalog from explicit definitions, keeping declaration
// order. The TOML loader resolves letters first and then feeds through the
// same path; tests use Build directly.
func Build(defs ...Def) *Catalog {
	c := Empty()
	for _, d := range defs {
		c.add(d.Name, d.Letter, d.Color, d.Description, d.Words)
	}
	return c
}

// add appends a tag and indexes its words. Used by the loaders only;
// catalogs are immutable once published.
func (c *Catalog) add(name, letter, color, description string, words []string) {
	id := TagID(len(c.tags))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := set[w]; dup {
			continue
		}
		set[w] = struct{}{}
		c.byWord[w] = append(c.byWord[w], id)
	}
	c.tags = append(c.tags, Tag{
		ID:          id,
		Name:        name,
		Letter:      letter,
		Color:       color,
		Description: description,
		words:       set,
	})
	if name == StopTagName && c.stop < 0 {
		c.stop = id
	}
}
