package navcheck

import (
	"fmt"
	"time"
)

// DefaultBaseURL is the origin the site is served on during development.
const DefaultBaseURL = "http://localhost:3000"

// Expectation is a content assertion on the destination page.
// At least one element matching Tag must contain Text (case-sensitive).
type Expectation struct {
	Tag  string `yaml:"tag"`
	Text string `yaml:"text"`
}

// String returns a human readable form, e.g. `h1 contains "About"`.
func (e Expectation) String() string {
	return fmt.Sprintf("%s contains %q", e.Tag, e.Text)
}

// Case is a single navigation check.
type Case struct {
	// Name identifies the case in reports (e.g. "about").
	Name string `yaml:"name"`
	// Link is matched against anchor hrefs as a substring.
	// The first matching anchor in document order is clicked.
	Link string `yaml:"link"`
	// Path must appear in the URL once navigation completes.
	Path string `yaml:"path"`
	// Expect is checked in order after navigation.
	Expect []Expectation `yaml:"expect"`
}

// LinkSelector returns the CSS selector used to find the case's link.
func (c Case) LinkSelector() string {
	return LinkSelector(c.Link)
}

// LinkSelector returns a CSS selector matching anchors whose href contains fragment.
func LinkSelector(fragment string) string {
	return fmt.Sprintf("a[href*=%q]", fragment)
}

// Suite is the fixture data for a run: the site origin and the cases to check.
type Suite struct {
	BaseURL string `yaml:"base_url"`
	Cases   []Case `yaml:"cases"`
}

// Case returns the case with the given name.
func (s Suite) Case(name string) (Case, bool) {
	for _, c := range s.Cases {
		if c.Name == name {
			return c, true
		}
	}
	return Case{}, false
}

// Names returns the case names in file order.
func (s Suite) Names() []string {
	names := make([]string, len(s.Cases))
	for i, c := range s.Cases {
		names[i] = c.Name
	}
	return names
}

// Result is the outcome of running one Case.
type Result struct {
	Case Case
	// URL is the last URL observed after clicking the link.
	// Empty if the case failed before the click.
	URL      string
	Err      error
	Duration time.Duration
}

// Passed reports whether every step of the case succeeded.
func (r Result) Passed() bool {
	return r.Err == nil
}
