// Package schedule holds the solver's output and the read-side views over
// it: pivoted per-entity timetables, summary statistics, and the conflict
// and capacity verification passes.
package schedule

import (
	"sort"

	"github.com/samber/lo"
)

// Class is one scheduled teaching unit. Subject and Teacher carry display
// names; Room and Groups carry ids.
type Class struct {
	Day     string   `json:"day"`
	Time    string   `json:"time"`
	Subject string   `json:"subject"`
	Teacher string   `json:"teacher"`
	Room    string   `json:"room"`
	Groups  []string `json:"groups"`
}

// Unassigned records an event the solver could not place.
type Unassigned struct {
	Subject    string `json:"subject"`
	Group      string `json:"group"`
	Occurrence int    `json:"occurrence"`
}

// Solution is the flat solver output.
type Solution struct {
	Classes    []Class
	Unassigned []Unassigned
}

// weekdayOrder is the canonical ordering used everywhere a day column is
// sorted or pivoted.
var weekdayOrder = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// dayRank returns a sort rank for a day name. Unknown names sort after the
// known weekdays, keeping their input order.
func dayRank(day string) int {
	if i := lo.IndexOf(weekdayOrder, day); i >= 0 {
		return i
	}
	return len(weekdayOrder)
}

// Sort orders classes by canonical day, then time, then room, giving the
// solution a stable on-disk representation.
func (s *Solution) Sort() {
	sort.SliceStable(s.Classes, func(i, j int) bool {
		a, b := s.Classes[i], s.Classes[j]
		if a.Day != b.Day {
			return dayRank(a.Day) < dayRank(b.Day)
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.Room < b.Room
	})
}

// Groups returns the distinct group ids appearing in the solution, sorted.
func (s *Solution) Groups() []string {
	groups := lo.Uniq(lo.FlatMap(s.Classes, func(c Class, _ int) []string { return c.Groups }))
	sort.Strings(groups)
	return groups
}

// Teachers returns the distinct teacher names, sorted.
func (s *Solution) Teachers() []string {
	teachers := lo.Uniq(lo.Map(s.Classes, func(c Class, _ int) string { return c.Teacher }))
	sort.Strings(teachers)
	return teachers
}

// Rooms returns the distinct room ids, sorted.
func (s *Solution) Rooms() []string {
	rooms := lo.Uniq(lo.Map(s.Classes, func(c Class, _ int) string { return c.Room }))
	sort.Strings(rooms)
	return rooms
}

// Subjects returns the distinct subject names, sorted.
func (s *Solution) Subjects() []string {
	subjects := lo.Uniq(lo.Map(s.Classes, func(c Class, _ int) string { return c.Subject }))
	sort.Strings(subjects)
	return subjects
}

// Times returns the distinct start times, sorted.
func (s *Solution) Times() []string {
	times := lo.Uniq(lo.Map(s.Classes, func(c Class, _ int) string { return c.Time }))
	sort.Strings(times)
	return times
}

// Days returns the distinct days in canonical weekday order.
func (s *Solution) Days() []string {
	present := lo.Uniq(lo.Map(s.Classes, func(c Class, _ int) string { return c.Day }))
	return lo.Filter(weekdayOrder, func(day string, _ int) bool {
		return lo.Contains(present, day)
	})
}
