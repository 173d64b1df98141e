// Package content holds the copy shown on the portfolio page and loads it
// from YAML.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Content is everything the page renders apart from site-wide settings.
type Content struct {
	Hero      Hero       `yaml:"hero"`
	Metrics   []Metric   `yaml:"metrics"`
	Story     Story      `yaml:"story"`
	Expertise SkillGroup `yaml:"expertise"`
	Tools     SkillGroup `yaml:"tools"`
	Projects  []Project  `yaml:"projects"`
	Contact   Contact    `yaml:"contact"`
}

// Hero is the three animated lines at the top of the page.
type Hero struct {
	Greeting string `yaml:"greeting"`
	Name     string `yaml:"name"`
	Tagline  string `yaml:"tagline"`
}

// Lines returns the hero text in display order.
func (h Hero) Lines() []string {
	return []string{h.Greeting, h.Name, h.Tagline}
}

// Metric is one tile in the stats row, e.g. 1200 "commits".
type Metric struct {
	Label  string `yaml:"label"`
	Value  int64  `yaml:"value"`
	Suffix string `yaml:"suffix"` // appended after the number, e.g. "+"
}

// Story is the biography section. Paragraphs accept inline markup:
// **bold**, *italic*, `code` and [text](url).
type Story struct {
	Title      string   `yaml:"title"`
	Paragraphs []string `yaml:"paragraphs"`
}

// SkillGroup is a titled grid of skills.
type SkillGroup struct {
	Title string  `yaml:"title"`
	Items []Skill `yaml:"items"`
}

// Skill is one cell of a skills grid.
type Skill struct {
	Name   string `yaml:"name"`
	Detail string `yaml:"detail"`
	Icon   string `yaml:"icon"`
}

// Project is a work showcase.
type Project struct {
	Name    string   `yaml:"name"`
	Role    string   `yaml:"role"`
	Summary string   `yaml:"summary"`
	Tags    []string `yaml:"tags"`
	Image   string   `yaml:"image"` // file name under the showcase directory
	Links   []Link   `yaml:"links"`
}

// Contact is the closing call to action.
type Contact struct {
	Title string `yaml:"title"`
	Blurb string `yaml:"blurb"`
	Links []Link `yaml:"links"`
}

// Link is an outbound hyperlink.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// External reports whether the link leaves the site and should open in a
// new tab.
func (l Link) External() bool {
	return strings.HasPrefix(l.URL, "http://") || strings.HasPrefix(l.URL, "https://")
}

// Default returns the content compiled into the binary.
func Default() (*Content, error) {
	c, err := Parse(bytes.NewReader(defaultYAML))
	if err != nil {
		return nil, fmt.Errorf("default content: %w", err)
	}
	return c, nil
}

// Load reads and validates the content file at path.
func Load(path string) (*Content, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML content from r and validates it. Unknown keys are
// rejected so typos surface at startup.
func Parse(r io.Reader) (*Content, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Content
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("content is empty")
		}
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
