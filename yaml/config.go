// Package yaml loads engine configuration files.
//
// A config file tunes discovery weights and extends the location keyword
// list:
//
//	weights:
//	  anchor: 2
//	  ats_container: 8
//	location_keywords:
//	  - Kraków
//	  - Lisbon
//
// Weights not named in the file keep their defaults. Location keywords are
// appended to the defaults.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/jobscout"
	"gopkg.in/yaml.v3"
)

type configFile struct {
	Weights          jobscout.ScoreWeights `yaml:"weights"`
	LocationKeywords []string             `yaml:"location_keywords"`
}

// LoadConfig reads an engine configuration from r on top of
// jobscout.DefaultConfig. Unknown keys and negative weights are rejected
// with EINVALID. An empty document yields the defaults.
func LoadConfig(r io.Reader) (jobscout.Config, error) {
	cfg := jobscout.DefaultConfig()
	f := configFile{Weights: cfg.Weights}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return jobscout.Config{}, jobscout.Errorf(jobscout.EINVALID, "invalid config: %v", err)
	}

	if err := validateWeights(f.Weights); err != nil {
		return jobscout.Config{}, err
	}
	cfg.Weights = f.Weights
	cfg.LocationKeywords = appendKeywords(cfg.LocationKeywords, f.LocationKeywords)

	return cfg, nil
}

// LoadConfigFile reads an engine configuration from path.
func LoadConfigFile(path string) (jobscout.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return jobscout.Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer file.Close()

	return LoadConfig(file)
}

func validateWeights(w jobscout.ScoreWeights) error {
	for name, v := range map[string]int{
		"ats_container":      w.ATSContainer,
		"strong_marker":      w.StrongMarker,
		"weak_marker":        w.WeakMarker,
		"attr_keyword":       w.AttrKeyword,
		"list_item":          w.ListItem,
		"anchor":             w.Anchor,
		"repeating":          w.Repeating,
		"list_role_boost":    w.ListRoleBoost,
		"keyword_text_boost": w.KeywordTextBoost,
	} {
		if v < 0 {
			return jobscout.Errorf(jobscout.EINVALID, "weight %s must not be negative", name)
		}
	}
	return nil
}

// appendKeywords adds extra to base, skipping blanks and case-insensitive
// duplicates.
func appendKeywords(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	for _, k := range base {
		seen[strings.ToLower(k)] = true
	}
	for _, k := range extra {
		k = strings.TrimSpace(k)
		if k == "" || seen[strings.ToLower(k)] {
			continue
		}
		seen[strings.ToLower(k)] = true
		base = append(base, k)
	}
	return base
}
