package model

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclModelFile mirrors the top-level structure of a .hcl model file for
// decoding. The constraints block keeps its raw body so its attributes can
// be decoded leniently below.
type hclModelFile struct {
	Rooms       []*hclRoom      `hcl:"room,block"`
	Teachers    []*hclTeacher   `hcl:"teacher,block"`
	Subjects    []*hclSubject   `hcl:"subject,block"`
	Groups      []*hclGroup     `hcl:"group,block"`
	Slots       *hclSlots       `hcl:"slots,block"`
	Constraints *hclConstraints `hcl:"constraints,block"`
}

type hclRoom struct {
	ID       string   `hcl:"id,label"`
	Type     string   `hcl:"type"`
	Capacity int      `hcl:"capacity,optional"`
	For      []string `hcl:"for,optional"`
}

type hclTeacher struct {
	ID       string   `hcl:"id,label"`
	Name     string   `hcl:"name"`
	Subjects []string `hcl:"subjects"`
}

type hclSubject struct {
	ID             string `hcl:"id,label"`
	Name           string `hcl:"name"`
	Type           string `hcl:"type"`
	ClassesPerWeek int    `hcl:"classes_per_week,optional"`
}

type hclGroup struct {
	ID       string   `hcl:"id,label"`
	Size     int      `hcl:"size,optional"`
	Subjects []string `hcl:"subjects,optional"`
}

type hclSlots struct {
	Days   []string    `hcl:"days"`
	Times  []string    `hcl:"times"`
	Breaks []*hclBreak `hcl:"break,block"`
}

type hclBreak struct {
	Day  string `hcl:"day"`
	Time string `hcl:"time"`
}

type hclConstraints struct {
	Body hcl.Body `hcl:",remain"`
}

// constraintAttrs are the attributes a constraints block may carry, mapped
// onto their destination in Constraints.
var constraintAttrs = map[string]func(*Constraints) *int{
	"maximum_consecutive_classes":    func(c *Constraints) *int { return &c.MaxConsecutiveClasses },
	"maximum_slot_per_group_per_day": func(c *Constraints) *int { return &c.MaxSlotsPerGroupPerDay },
}

// decodeConstraints evaluates each attribute of the constraints block into
// a cty value and converts it onto the model. Unknown attribute names are
// rejected so typos surface at load time instead of silently relaxing the
// timetable.
func decodeConstraints(body hcl.Body, dst *Constraints) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("failed to read constraints block: %w", diags)
	}

	for name, attr := range attrs {
		setter, known := constraintAttrs[name]
		if !known {
			return fmt.Errorf("unsupported constraint %q at %s", name, attr.Range)
		}

		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("failed to evaluate constraint %q: %w", name, diags)
		}
		if err := gocty.FromCtyValue(val, setter(dst)); err != nil {
			return fmt.Errorf("constraint %q must be a number: %w", name, err)
		}
	}

	return nil
}

// FromHCL parses a .hcl model file into a Model, applying defaults.
func FromHCL(path string) (*Model, error) {
	parser := hclparse.NewParser()

	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse model file %s: %w", path, diags)
	}

	var parsed hclModelFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode model file %s: %w", path, diags)
	}

	m := &Model{}
	for _, r := range parsed.Rooms {
		m.Rooms = append(m.Rooms, Room{ID: r.ID, Type: r.Type, Capacity: r.Capacity, For: r.For})
	}
	for _, t := range parsed.Teachers {
		m.Teachers = append(m.Teachers, Teacher{ID: t.ID, Name: t.Name, Subjects: t.Subjects})
	}
	for _, s := range parsed.Subjects {
		m.Subjects = append(m.Subjects, Subject{ID: s.ID, Name: s.Name, Type: s.Type, ClassesPerWeek: s.ClassesPerWeek})
	}
	for _, g := range parsed.Groups {
		m.Groups = append(m.Groups, Group{ID: g.ID, Size: g.Size, Subjects: g.Subjects})
	}
	if parsed.Slots != nil {
		m.Slots.Days = parsed.Slots.Days
		m.Slots.Times = parsed.Slots.Times
		for _, b := range parsed.Slots.Breaks {
			m.Slots.Breaks = append(m.Slots.Breaks, Break{Day: b.Day, Time: b.Time})
		}
	}
	if parsed.Constraints != nil {
		if err := decodeConstraints(parsed.Constraints.Body, &m.Constraints); err != nil {
			return nil, fmt.Errorf("in model file %s: %w", path, err)
		}
	}

	m.applyDefaults()
	return m, nil
}
