package navcheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSuite returns the navigation checks for the personal website
// served at DefaultBaseURL.
func DefaultSuite() Suite {
	return Suite{
		BaseURL: DefaultBaseURL,
		Cases: []Case{
			{
				Name: "about",
				Link: "about",
				Path: "/about",
				Expect: []Expectation{
					{Tag: "h1", Text: "About"},
					{Tag: "h3", Text: "Liam Sorsby"},
					{Tag: "div", Text: "Principal Site Reliability Engineer"},
				},
			},
			{
				Name: "blog",
				Link: "blog",
				Path: "/blog",
				Expect: []Expectation{
					{Tag: "h1", Text: "All Posts"},
				},
			},
			{
				Name: "tags",
				Link: "tags",
				Path: "/tags",
				Expect: []Expectation{
					{Tag: "h1", Text: "Tags"},
				},
			},
			{
				Name: "projects",
				Link: "projects",
				Path: "/projects",
				Expect: []Expectation{
					{Tag: "h1", Text: "Projects"},
					{Tag: "h2", Text: "Website"},
					{Tag: "h2", Text: "Infrastructure As Code (IoC)"},
				},
			},
		},
	}
}

// LoadSuite reads a YAML fixture file.
func LoadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, fmt.Errorf("read fixtures: %w", err)
	}
	s, err := ParseSuite(data)
	if err != nil {
		return Suite{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseSuite decodes YAML fixture data and validates it.
// Unknown keys are rejected. An empty base_url falls back to DefaultBaseURL.
func ParseSuite(data []byte) (Suite, error) {
	var s Suite

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Suite{}, errors.New("fixtures are empty")
		}
		return Suite{}, fmt.Errorf("decode fixtures: %w", err)
	}

	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	if err := s.Validate(); err != nil {
		return Suite{}, err
	}
	return s, nil
}

// Validate checks that the suite can be run.
func (s Suite) Validate() error {
	if s.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if len(s.Cases) == 0 {
		return errors.New("no cases defined")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("case %d: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("case %q: duplicate name", c.Name)
		}
		seen[c.Name] = true

		if c.Link == "" {
			return fmt.Errorf("case %q: link is required", c.Name)
		}
		if c.Path == "" {
			return fmt.Errorf("case %q: path is required", c.Name)
		}
		for j, e := range c.Expect {
			if e.Tag == "" || e.Text == "" {
				return fmt.Errorf("case %q: expect[%d] needs both tag and text", c.Name, j)
			}
		}
	}
	return nil
}
