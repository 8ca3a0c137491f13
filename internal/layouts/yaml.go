package layouts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkalv/faktura/internal/extract"
	"github.com/mkalv/faktura/internal/grid"
	"github.com/mkalv/faktura/internal/rule"
)

// Layout files mirror the rule step set one to one. Example:
//
//	name: serija
//	vat_rate: 1.21
//	columns:
//	  - name: SERIJA
//	    find: {prefix: "Serija "}
//	    steps:
//	      - {op: word, index: 1}
//	  - name: KAINA BE PVM
//	    find: {exact: "Suma Eur"}
//	    steps:
//	      - {op: continuous, dir: down}
//	      - {op: exclude-vat}
type layoutSpec struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	VATRate     float64      `yaml:"vat_rate"`
	Columns     []columnSpec `yaml:"columns"`
}

type columnSpec struct {
	Name  string     `yaml:"name"`
	Find  findSpec   `yaml:"find"`
	Steps []stepSpec `yaml:"steps"`
}

type findSpec struct {
	Exact  string `yaml:"exact"`
	Prefix string `yaml:"prefix"`
}

type stepSpec struct {
	Op     string  `yaml:"op"`
	Dir    string  `yaml:"dir"`
	Count  int     `yaml:"count"`
	Target string  `yaml:"target"`
	Index  int     `yaml:"index"`
	Rate   float64 `yaml:"rate"`
}

// Load reads and parses a YAML layout file.
func Load(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, fmt.Errorf("layout file not found: %s — check that the path is correct", path)
		}
		return Layout{}, fmt.Errorf("could not read layout file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a layout from YAML bytes.
func Parse(data []byte) (Layout, error) {
	var spec layoutSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Layout{}, fmt.Errorf("invalid layout YAML: %w", err)
	}

	if spec.Name == "" {
		return Layout{}, fmt.Errorf("layout is missing a 'name' field")
	}
	if len(spec.Columns) == 0 {
		return Layout{}, fmt.Errorf("layout %q has no columns defined", spec.Name)
	}

	rate := spec.VATRate
	if rate == 0 {
		rate = DefaultVATRate
	}

	seen := make(map[string]bool)
	columns := make([]extract.Column, 0, len(spec.Columns))
	for i, c := range spec.Columns {
		if c.Name == "" {
			return Layout{}, fmt.Errorf("column %d is missing a 'name' field", i+1)
		}
		if seen[c.Name] {
			return Layout{}, fmt.Errorf("duplicate column %q — each column needs a unique name", c.Name)
		}
		seen[c.Name] = true

		r, err := buildRule(c, rate)
		if err != nil {
			return Layout{}, fmt.Errorf("column %q: %w", c.Name, err)
		}
		columns = append(columns, extract.Column{Name: c.Name, Rule: r})
	}

	return Layout{Name: spec.Name, Description: spec.Description, Columns: columns}, nil
}

func buildRule(c columnSpec, vatRate float64) (rule.Rule, error) {
	var r rule.Rule
	switch {
	case c.Find.Exact != "" && c.Find.Prefix != "":
		return rule.Rule{}, fmt.Errorf("'find' takes either 'exact' or 'prefix', not both")
	case c.Find.Exact != "":
		r = rule.FindExact(c.Find.Exact)
	case c.Find.Prefix != "":
		r = rule.FindPrefix(c.Find.Prefix)
	default:
		return rule.Rule{}, fmt.Errorf("'find' needs an 'exact' or 'prefix' target")
	}

	for i, s := range c.Steps {
		next, err := appendStep(r, s, vatRate)
		if err != nil {
			return rule.Rule{}, fmt.Errorf("step %d: %w", i+1, err)
		}
		r = next
	}
	return r, nil
}

func appendStep(r rule.Rule, s stepSpec, vatRate float64) (rule.Rule, error) {
	switch s.Op {
	case "move":
		d, err := parseDir(s.Dir)
		if err != nil {
			return rule.Rule{}, err
		}
		count := s.Count
		if count == 0 {
			count = 1
		}
		return r.Move(d, count), nil
	case "advance":
		d, err := parseDir(s.Dir)
		if err != nil {
			return rule.Rule{}, err
		}
		return r.AdvanceToValue(d), nil
	case "until-exact":
		d, err := parseDir(s.Dir)
		if err != nil {
			return rule.Rule{}, err
		}
		if s.Target == "" {
			return rule.Rule{}, fmt.Errorf("'until-exact' needs a 'target'")
		}
		return r.AdvanceUntilExact(d, s.Target), nil
	case "until-prefix":
		d, err := parseDir(s.Dir)
		if err != nil {
			return rule.Rule{}, err
		}
		if s.Target == "" {
			return rule.Rule{}, fmt.Errorf("'until-prefix' needs a 'target'")
		}
		return r.AdvanceUntilPrefix(d, s.Target), nil
	case "continuous":
		d, err := parseDir(s.Dir)
		if err != nil {
			return rule.Rule{}, err
		}
		return r.AdvanceWhileContinuous(d), nil
	case "suffix":
		return r.ReadSuffix(), nil
	case "trim":
		return r.Apply(rule.Trim()), nil
	case "word":
		return r.Apply(rule.Word(s.Index)), nil
	case "exclude-vat":
		rate := s.Rate
		if rate == 0 {
			rate = vatRate
		}
		return r.Apply(rule.ExcludeVAT(rate)), nil
	default:
		return rule.Rule{}, fmt.Errorf("unknown op %q", s.Op)
	}
}

func parseDir(s string) (grid.Direction, error) {
	switch s {
	case "right":
		return grid.Right, nil
	case "left":
		return grid.Left, nil
	case "down":
		return grid.Down, nil
	case "up":
		return grid.Up, nil
	case "":
		return grid.Direction{}, fmt.Errorf("missing 'dir' (want right, left, down, or up)")
	default:
		return grid.Direction{}, fmt.Errorf("unknown direction %q (want right, left, down, or up)", s)
	}
}
