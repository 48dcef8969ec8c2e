// Package conformance loads and runs declarative fixture suites against the
// value engine. The same runner backs the package tests and the adder CLI.
package conformance

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Suite is one fixture file: a named list of cases.
type Suite struct {
	Name  string `yaml:"-"`
	Cases []Case `yaml:"cases"`
}

// Case describes a single operation against the engine. Exactly one of the
// operation fields must be set; the outcome is either a rendered value
// (want) or a failure kind (fail).
type Case struct {
	Name    string       `yaml:"name"`
	Eval    *OpSpec      `yaml:"eval,omitempty"`
	Unary   *UnarySpec   `yaml:"unary,omitempty"`
	Render  *ValueSpec   `yaml:"render,omitempty"`
	Truthy  *ValueSpec   `yaml:"truthy,omitempty"`
	Length  *ValueSpec   `yaml:"length,omitempty"`
	Index   *IndexSpec   `yaml:"index,omitempty"`
	Iterate *IterateSpec `yaml:"iterate,omitempty"`
	Want    *string      `yaml:"want,omitempty"`
	Fail    string       `yaml:"fail,omitempty"`
}

// OpSpec is a binary arithmetic or comparison operation; the operator string
// selects which.
type OpSpec struct {
	Op    string    `yaml:"op"`
	Left  ValueSpec `yaml:"left"`
	Right ValueSpec `yaml:"right"`
}

type UnarySpec struct {
	Op      string    `yaml:"op"`
	Operand ValueSpec `yaml:"operand"`
}

type IndexSpec struct {
	Target ValueSpec `yaml:"target"`
	Key    ValueSpec `yaml:"key"`
}

// IterateSpec walks an iterator to exhaustion; the case's want is the
// comma-joined renderings of the yielded values. Mutations fire after the
// given number of steps, against the live target.
type IterateSpec struct {
	Target    ValueSpec      `yaml:"target"`
	Mutations []MutationSpec `yaml:"mutations,omitempty"`
	MaxSteps  int            `yaml:"max_steps,omitempty"`
}

type MutationSpec struct {
	After  int        `yaml:"after"`
	Append *ValueSpec `yaml:"append,omitempty"`
	Pop    bool       `yaml:"pop,omitempty"`
}

// ValueSpec builds one runtime value. Exactly one field must be set.
type ValueSpec struct {
	Int   *int32               `yaml:"int,omitempty"`
	Str   *string              `yaml:"str,omitempty"`
	Bool  *bool                `yaml:"bool,omitempty"`
	None  bool                 `yaml:"none,omitempty"`
	List  []ValueSpec          `yaml:"list,omitempty"`
	Tuple []ValueSpec          `yaml:"tuple,omitempty"`
	Dict  map[string]ValueSpec `yaml:"dict,omitempty"`
	Slice *SliceSpec           `yaml:"slice,omitempty"`
}

type SliceSpec struct {
	Start *int32 `yaml:"start,omitempty"`
	Stop  *int32 `yaml:"stop,omitempty"`
	Step  *int32 `yaml:"step,omitempty"`
}

// Load parses one fixture file, rejecting unknown fields.
func Load(path string) (*Suite, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var suite Suite
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("conformance: parse %s: %w", path, err)
	}
	suite.Name = filepath.Base(path)
	for i, c := range suite.Cases {
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("conformance: %s case %d (%s): %w", suite.Name, i, c.Name, err)
		}
	}
	return &suite, nil
}

// LoadDir loads every *.yaml file in dir, sorted by name.
func LoadDir(dir string) ([]*Suite, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("conformance: no fixture files in %s", dir)
	}
	sort.Strings(matches)
	suites := make([]*Suite, 0, len(matches))
	for _, path := range matches {
		suite, err := Load(path)
		if err != nil {
			return nil, err
		}
		suites = append(suites, suite)
	}
	return suites, nil
}

func (c Case) validate() error {
	set := 0
	for _, present := range []bool{
		c.Eval != nil, c.Unary != nil, c.Render != nil, c.Truthy != nil,
		c.Length != nil, c.Index != nil, c.Iterate != nil,
	} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one operation must be set, found %d", set)
	}
	if c.Name == "" {
		return fmt.Errorf("case name is required")
	}
	if c.Fail == "" && c.Want == nil {
		return fmt.Errorf("either want or fail is required")
	}
	return nil
}
