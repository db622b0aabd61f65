// Package model defines the timetable definition that the solver consumes:
// rooms, teachers, subjects, student groups, the weekly slot grid, and the
// scheduling constraints.
//
// Why a format-agnostic model?
//
// Definitions arrive either as JSON (the original interchange format) or as
// HCL. Both loaders normalize into the same Model so that validation, the
// solver, and the artifact writers never care where a definition came from.
package model

// Room types and subject types share the same vocabulary: a lecture subject
// needs a lecture room, a lab subject needs a lab room that lists it.
const (
	TypeLecture = "lecture"
	TypeLab     = "lab"
)

// Defaults applied while loading when a definition omits the field.
const (
	DefaultRoomCapacity          = 50
	DefaultClassesPerWeek        = 1
	DefaultMaxConsecutiveClasses = 2
)

// BreakEveryDay is the wildcard day in a break declaration.
const BreakEveryDay = "*"

// Room is a schedulable location. Lab rooms additionally carry the subject
// ids they are equipped for.
type Room struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Capacity int      `json:"capacity"`
	For      []string `json:"for,omitempty"`
}

// Teacher can teach the listed subject ids.
type Teacher struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Subjects []string `json:"subjects"`
}

// Subject is a unit of teaching. ClassesPerWeek is how many occurrences
// each group taking the subject needs per week.
type Subject struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	ClassesPerWeek int    `json:"classes_per_week"`
}

// Group is a cohort of students taking the listed subject ids.
type Group struct {
	ID       string   `json:"id"`
	Size     int      `json:"size"`
	Subjects []string `json:"subjects"`
}

// Break marks a slot that must stay free. Day may be BreakEveryDay.
type Break struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// Slots is the weekly grid: the ordered days and start times classes may
// occupy, minus the declared breaks.
type Slots struct {
	Days   []string `json:"days"`
	Times  []string `json:"times"`
	Breaks []Break  `json:"breaks"`
}

// Constraints tune the solver. MaxSlotsPerGroupPerDay of zero means
// unlimited.
type Constraints struct {
	MaxConsecutiveClasses  int `json:"maximum_consecutive_classes"`
	MaxSlotsPerGroupPerDay int `json:"maximum_slot_per_group_per_day,omitempty"`
}

// Model is a complete timetable definition.
type Model struct {
	Rooms       []Room      `json:"rooms"`
	Slots       Slots       `json:"slots"`
	Teachers    []Teacher   `json:"teachers"`
	Subjects    []Subject   `json:"subjects"`
	Groups      []Group     `json:"groups"`
	Constraints Constraints `json:"constraints"`
}

// applyDefaults fills zero-valued optional fields in place. Loaders call it
// after decoding so both formats share one defaulting rule.
func (m *Model) applyDefaults() {
	for i := range m.Rooms {
		if m.Rooms[i].Capacity == 0 {
			m.Rooms[i].Capacity = DefaultRoomCapacity
		}
	}
	for i := range m.Subjects {
		if m.Subjects[i].ClassesPerWeek == 0 {
			m.Subjects[i].ClassesPerWeek = DefaultClassesPerWeek
		}
	}
	if m.Constraints.MaxConsecutiveClasses == 0 {
		m.Constraints.MaxConsecutiveClasses = DefaultMaxConsecutiveClasses
	}
}
