package fixture

import (
	"gopkg.in/yaml.v3"
)

// Fixture is one mapping declared in a file.
type Fixture struct {
	Name        string        `yaml:"name,omitempty"`
	Request     RequestSpec   `yaml:"request"`
	Response    *ResponseSpec `yaml:"response,omitempty"`
	Passthrough bool          `yaml:"passthrough,omitempty"`

	// Source is the file the fixture was read from.
	Source string `yaml:"-"`
}

// RequestSpec describes which requests a fixture answers. All given
// criteria must hold.
type RequestSpec struct {
	URL          string                 `yaml:"url,omitempty"`
	URLPattern   string                 `yaml:"urlPattern,omitempty"`
	Method       string                 `yaml:"method,omitempty"`
	Path         string                 `yaml:"path,omitempty"`
	Glob         string                 `yaml:"glob,omitempty"`
	Headers      map[string]string      `yaml:"headers,omitempty"`
	Query        map[string]string      `yaml:"query,omitempty"`
	BodyContains string                 `yaml:"bodyContains,omitempty"`
	JSONPath     map[string]interface{} `yaml:"jsonPath,omitempty"`
	When         string                 `yaml:"when,omitempty"`
}

// ResponseSpec describes a canned response. Body and JSON are mutually
// exclusive; Status defaults to 200.
type ResponseSpec struct {
	Status  int               `yaml:"status,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Body    string            `yaml:"body,omitempty"`
	JSON    interface{}       `yaml:"json,omitempty"`
}

// Label names the fixture in messages: its name, or its source and
// position.
func (f Fixture) Label() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Source
}

// fileContent is either a single fixture or a list of fixtures.
type fileContent struct {
	Fixtures []Fixture
}

// UnmarshalYAML accepts both a mapping node and a sequence node.
func (c *fileContent) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&c.Fixtures)
	}
	var f Fixture
	if err := node.Decode(&f); err != nil {
		return err
	}
	c.Fixtures = []Fixture{f}
	return nil
}
