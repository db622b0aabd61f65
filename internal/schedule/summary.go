package schedule

import (
	"github.com/samber/lo"

	"github.com/debarchito/time-table-generator/internal/model"
)

// Stats breaks the class count down by several dimensions.
type Stats struct {
	ClassesPerGroup   map[string]int `json:"classes_per_group"`
	ClassesPerTeacher map[string]int `json:"classes_per_teacher"`
	ClassesPerRoom    map[string]int `json:"classes_per_room"`
	ClassesPerDay     map[string]int `json:"classes_per_day"`
}

// Summary is the solution-wide overview written to summary.json.
type Summary struct {
	TotalClasses   int            `json:"total_classes"`
	Groups         []string       `json:"groups"`
	Teachers       []string       `json:"teachers"`
	Rooms          []string       `json:"rooms"`
	Days           []string       `json:"days"`
	Times          []string       `json:"times"`
	Subjects       []string       `json:"subjects"`
	Stats          Stats          `json:"stats"`
	RoomCapacities map[string]int `json:"room_capacities"`
	GroupSizes     map[string]int `json:"group_sizes"`
	Unassigned     []Unassigned   `json:"unassigned"`
}

// Summarize builds the summary for a solution against its source model.
func Summarize(sol *Solution, m *model.Model) *Summary {
	perGroup := map[string]int{}
	for _, c := range sol.Classes {
		for _, g := range c.Groups {
			perGroup[g]++
		}
	}

	unassigned := sol.Unassigned
	if unassigned == nil {
		unassigned = []Unassigned{}
	}

	return &Summary{
		TotalClasses: len(sol.Classes),
		Groups:       sol.Groups(),
		Teachers:     sol.Teachers(),
		Rooms:        sol.Rooms(),
		Days:         sol.Days(),
		Times:        sol.Times(),
		Subjects:     sol.Subjects(),
		Stats: Stats{
			ClassesPerGroup:   perGroup,
			ClassesPerTeacher: lo.CountValuesBy(sol.Classes, func(c Class) string { return c.Teacher }),
			ClassesPerRoom:    lo.CountValuesBy(sol.Classes, func(c Class) string { return c.Room }),
			ClassesPerDay:     lo.CountValuesBy(sol.Classes, func(c Class) string { return c.Day }),
		},
		RoomCapacities: lo.SliceToMap(m.Rooms, func(r model.Room) (string, int) { return r.ID, r.Capacity }),
		GroupSizes:     lo.SliceToMap(m.Groups, func(g model.Group) (string, int) { return g.ID, g.Size }),
		Unassigned:     unassigned,
	}
}
