package content

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ShowcaseCount is the number of projects the work section displays.
const ShowcaseCount = 2

// ValidationError lists every problem found in a content file.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid content: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) addf(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// Validate checks the content for missing copy and malformed links.
func (c *Content) Validate() error {
	v := &ValidationError{}

	if strings.TrimSpace(c.Hero.Greeting) == "" {
		v.addf("hero.greeting is required")
	}
	if strings.TrimSpace(c.Hero.Name) == "" {
		v.addf("hero.name is required")
	}
	if strings.TrimSpace(c.Hero.Tagline) == "" {
		v.addf("hero.tagline is required")
	}

	for i, m := range c.Metrics {
		if strings.TrimSpace(m.Label) == "" {
			v.addf("metrics[%d].label is required", i)
		}
		if m.Value < 0 {
			v.addf("metrics[%d].value must not be negative", i)
		}
	}

	if len(c.Story.Paragraphs) == 0 {
		v.addf("story.paragraphs needs at least one paragraph")
	}

	validateGroup(v, "expertise", c.Expertise)
	validateGroup(v, "tools", c.Tools)

	if len(c.Projects) != ShowcaseCount {
		v.addf("projects must list exactly %d showcases, got %d", ShowcaseCount, len(c.Projects))
	}
	for i, p := range c.Projects {
		if strings.TrimSpace(p.Name) == "" {
			v.addf("projects[%d].name is required", i)
		}
		if p.Image != "" && path.Base(p.Image) != p.Image {
			v.addf("projects[%d].image %q must be a bare file name", i, p.Image)
		}
		validateLinks(v, fmt.Sprintf("projects[%d]", i), p.Links)
	}

	if len(c.Contact.Links) == 0 {
		v.addf("contact.links needs at least one link")
	}
	validateLinks(v, "contact", c.Contact.Links)

	if len(v.Problems) > 0 {
		return v
	}
	return nil
}

func validateGroup(v *ValidationError, name string, g SkillGroup) {
	if len(g.Items) == 0 {
		v.addf("%s.items needs at least one skill", name)
	}
	for i, s := range g.Items {
		if strings.TrimSpace(s.Name) == "" {
			v.addf("%s.items[%d].name is required", name, i)
		}
	}
}

func validateLinks(v *ValidationError, prefix string, links []Link) {
	for i, l := range links {
		if strings.TrimSpace(l.Label) == "" {
			v.addf("%s.links[%d].label is required", prefix, i)
		}
		if err := checkURL(l.URL); err != nil {
			v.addf("%s.links[%d].url: %v", prefix, i, err)
		}
	}
}

// checkURL accepts absolute http(s) URLs and mailto addresses.
func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%q has no host", raw)
		}
	case "mailto":
		if u.Opaque == "" || !strings.Contains(u.Opaque, "@") {
			return fmt.Errorf("%q is not an email address", raw)
		}
	default:
		return fmt.Errorf("%q must use http, https or mailto", raw)
	}
	return nil
}
