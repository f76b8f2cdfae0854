package tags

import (
	"fmt"
	"path/filepath"

	"github.com/bastiangx/zipfview/internal/logger"
	"github.com/bastiangx/zipfview/internal/utils"
)

// tagFile mirrors the on-disk layout of tags.toml.
type tagFile struct {
	Tags []tagRecord `toml:"tag"`
}

type tagRecord struct {
	Name        string   `toml:"name"`
	Letter      string   `toml:"letter"`
	Color       string   `toml:"color"`
	Description string   `toml:"description"`
	Words       []string `toml:"words"`
}

// DefaultCatalog returns the built-in catalog: one stop-word tag with a
// compact English function-word list.
func DefaultCatalog() *Catalog {
	c := Empty()
	c.add(StopTagName, "s", "203", "Common English function words", defaultStopWords)
	return c
}

// DefaultTagsPath returns the default location for tags.toml.
func DefaultTagsPath() (string, error) {
	configDir, err := utils.AppConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tags.toml"), nil
}

// LoadCatalog parses a tags.toml file into a catalog.
func LoadCatalog(path string) (*Catalog, error) {
	var file tagFile
	if err := utils.LoadTOMLFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tag file %s: %w", path, err)
	}
	return buildCatalog(&file), nil
}

// LoadCatalogWithPriority loads the tag catalog with priority:
// 1. Custom path from --tags flag
// 2. Default path (created with the built-in set on first run)
// 3. Built-in catalog
// Tags are an enrichment, not a dependency of the analysis, so this never
// fails: a malformed file degrades to the built-in catalog with a warning.
func LoadCatalogWithPriority(customPath string) (*Catalog, string) {
	log := logger.New("tags")
	if customPath != "" {
		if utils.FileExists(customPath) {
			cat, err := LoadCatalog(customPath)
			if err == nil {
				log.Debugf("Loaded tag catalog from custom path: %s", customPath)
				return cat, customPath
			}
			log.Warnf("Failed to load tags from %s: %v. Trying default path...", customPath, err)
		} else {
			log.Warnf("Tag file not found at %s. Trying default path...", customPath)
		}
	}

	defaultPath, err := DefaultTagsPath()
	if err != nil {
		log.Warnf("Failed to determine tag file path: %v. Using built-in tags...", err)
		return DefaultCatalog(), ""
	}
	if !utils.FileExists(defaultPath) {
		if err := writeDefaultTags(defaultPath); err != nil {
			log.Warnf("Failed to create default tag file at %s: %v. Using built-in tags...", defaultPath, err)
			return DefaultCatalog(), ""
		}
		log.Debugf("Created default tag file at: %s", defaultPath)
	}

	cat, err := LoadCatalog(defaultPath)
	if err != nil {
		log.Warnf("Failed to load tags from %s: %v. Using built-in tags...", defaultPath, err)
		return DefaultCatalog(), ""
	}
	log.Debugf("Loaded tag catalog from default path: %s", defaultPath)
	return cat, defaultPath
}

// buildCatalog turns parsed records into a catalog, resolving menu letters.
// Records with an empty name are dropped. A tag without a letter gets the
// first letter of its name; letter collisions leave the later tag without a
// hotkey rather than shadowing the earlier one.
func buildCatalog(file *tagFile) *Catalog {
	log := logger.New("tags")
	c := Empty()
	letters := make(map[string]string)

	for _, rec := range file.Tags {
		if rec.Name == "" {
			log.Warnf("Skipping tag with empty name in tag file")
			continue
		}
		letter := rec.Letter
		if letter == "" {
			letter = string([]rune(rec.Name)[0])
		}
		if owner, taken := letters[letter]; taken {
			log.Warnf("Tag %q: letter %q already bound to %q, tag gets no hotkey", rec.Name, letter, owner)
			letter = ""
		} else {
			letters[letter] = rec.Name
		}
		c.add(rec.Name, letter, rec.Color, rec.Description, rec.Words)
	}
	return c
}

// writeDefaultTags saves the built-in catalog as a starter tags.toml so
// users have a template to extend.
func writeDefaultTags(path string) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	file := tagFile{Tags: []tagRecord{{
		Name:        StopTagName,
		Letter:      "s",
		Color:       "203",
		Description: "Common English function words",
		Words:       defaultStopWords,
	}}}
	return utils.SaveTOMLFile(file, path)
}

// defaultStopWords is the built-in stop list. Short by intent: it covers the
// function words that dominate English rank-1 territory, nothing else.
var defaultStopWords = []string{
	"a", "about", "after", "all", "an", "and", "any", "are", "as", "at",
	"be", "been", "but", "by", "can", "could", "did", "do", "for", "from",
	"had", "has", "have", "he", "her", "him", "his", "i", "if", "in",
	"into", "is", "it", "its", "me", "my", "no", "not", "of", "on",
	"one", "or", "our", "out", "she", "so", "that", "the", "their", "them",
	"then", "there", "they", "this", "to", "up", "was", "we", "were", "what",
	"when", "which", "who", "will", "with", "would", "you", "your",
}
