package tags

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTags(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tags.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write tag file: %v", err)
	}
	return path
}

func TestBuildLookups(t *testing.T) {
	c := Build(
		Def{Name: "animals", Letter: "a", Words: []string{"fox", "dog"}},
		Def{Name: "pets", Letter: "p", Words: []string{"dog", "cat"}},
	)

	if c.Len() != 2 {
		t.Fatalf("expected 2 tags, got %d", c.Len())
	}
	tag, ok := c.ByLetter("p")
	if !ok || tag.Name != "pets" {
		t.Errorf("ByLetter(p) should find pets, got %v %v", tag, ok)
	}
	if !tag.Has("cat") || tag.Has("fox") {
		t.Error("pets should contain cat and not fox")
	}
	if ids := c.ForWord("dog"); len(ids) != 2 {
		t.Errorf("dog carries both tags, got %v", ids)
	}
	if ids := c.ForWord("owl"); len(ids) != 0 {
		t.Errorf("owl carries no tags, got %v", ids)
	}
}

func TestBuildNormalizesWords(t *testing.T) {
	c := Build(Def{Name: "x", Letter: "x", Words: []string{" Fox ", "fox", "FOX", "", "dog"}})
	tag, _ := c.Get(0)
	if tag.Size() != 2 {
		t.Errorf("duplicates and blanks should collapse, got %d words", tag.Size())
	}
	if !tag.Has("fox") {
		t.Error("words should be lowercased and trimmed")
	}
}

func TestStopTagDetection(t *testing.T) {
	c := Build(
		Def{Name: "other", Letter: "o"},
		Def{Name: StopTagName, Letter: "s", Words: []string{"the"}},
	)
	id, ok := c.StopTag()
	if !ok || id != 1 {
		t.Errorf("expected stop tag id 1, got %d %v", id, ok)
	}
	if _, ok := Empty().StopTag(); ok {
		t.Error("empty catalog has no stop tag")
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	id, ok := c.StopTag()
	if !ok {
		t.Fatal("built-in catalog must carry a stop tag")
	}
	tag, _ := c.Get(id)
	if !tag.Has("the") || !tag.Has("and") {
		t.Error("built-in stop list should cover basic function words")
	}
}

func TestLoadCatalog(t *testing.T) {
	path := writeTags(t, `
[[tag]]
name = "animals"
letter = "a"
color = "120"
words = ["Fox", "dog"]

[[tag]]
name = "colors"
words = ["red"]
`)
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 tags, got %d", c.Len())
	}
	if tag, ok := c.ByLetter("a"); !ok || !tag.Has("fox") {
		t.Error("animals tag should load with lowercased words")
	}
	// no letter declared: first letter of the name steps in
	if _, ok := c.ByLetter("c"); !ok {
		t.Error("colors should get the letter c from its name")
	}
}

func TestLoadCatalogLetterCollision(t *testing.T) {
	path := writeTags(t, `
[[tag]]
name = "animals"
letter = "a"
words = ["fox"]

[[tag]]
name = "adjectives"
letter = "a"
words = ["red"]
`)
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	tag, ok := c.ByLetter("a")
	if !ok || tag.Name != "animals" {
		t.Error("first tag keeps the contested letter")
	}
	second, _ := c.Get(1)
	if second.Letter != "" {
		t.Errorf("later tag loses its hotkey, got %q", second.Letter)
	}
}

func TestLoadCatalogSkipsNameless(t *testing.T) {
	path := writeTags(t, `
[[tag]]
letter = "x"
words = ["fox"]

[[tag]]
name = "ok"
words = ["dog"]
`)
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("nameless records are dropped, got %d tags", c.Len())
	}
}

func TestLoadCatalogWithPriorityDegrades(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	bad := writeTags(t, "not [ valid toml")
	c, _ := LoadCatalogWithPriority(bad)
	if c == nil {
		t.Fatal("a broken tag file must still yield a catalog")
	}
	if _, ok := c.StopTag(); !ok {
		t.Error("fallback catalog should be the built-in one")
	}
}
