package schedule

import (
	"strings"

	"github.com/samber/lo"

	"github.com/debarchito/time-table-generator/internal/model"
)

// Conflict is a teacher, room, or group scheduled into more than one class
// in the same slot. Exactly one of Teacher, Room, or Group is set.
type Conflict struct {
	Day     string  `json:"day"`
	Time    string  `json:"time"`
	Teacher string  `json:"teacher,omitempty"`
	Room    string  `json:"room,omitempty"`
	Group   string  `json:"group,omitempty"`
	Classes []Class `json:"classes"`
}

// ConflictReport aggregates conflicts by kind. A correct solver output has
// an empty report; the detector is a verification pass over any solution,
// including hand-edited ones.
type ConflictReport struct {
	TeacherConflicts []Conflict `json:"teacher_conflicts"`
	RoomConflicts    []Conflict `json:"room_conflicts"`
	GroupConflicts   []Conflict `json:"group_conflicts"`
}

// Total returns the number of conflicts across all kinds.
func (r *ConflictReport) Total() int {
	return len(r.TeacherConflicts) + len(r.RoomConflicts) + len(r.GroupConflicts)
}

// DetectConflicts scans every occupied slot for double-booked teachers,
// rooms, and groups.
func DetectConflicts(sol *Solution) *ConflictReport {
	report := &ConflictReport{
		TeacherConflicts: []Conflict{},
		RoomConflicts:    []Conflict{},
		GroupConflicts:   []Conflict{},
	}

	for _, slot := range occupiedSlots(sol) {
		inSlot := lo.Filter(sol.Classes, func(c Class, _ int) bool {
			return c.Day == slot.day && c.Time == slot.time
		})

		for _, teacher := range collidingKeys(inSlot, func(c Class) []string { return []string{c.Teacher} }) {
			report.TeacherConflicts = append(report.TeacherConflicts, Conflict{
				Day:     slot.day,
				Time:    slot.time,
				Teacher: teacher,
				Classes: lo.Filter(inSlot, func(c Class, _ int) bool { return c.Teacher == teacher }),
			})
		}

		for _, room := range collidingKeys(inSlot, func(c Class) []string { return []string{c.Room} }) {
			report.RoomConflicts = append(report.RoomConflicts, Conflict{
				Day:     slot.day,
				Time:    slot.time,
				Room:    room,
				Classes: lo.Filter(inSlot, func(c Class, _ int) bool { return c.Room == room }),
			})
		}

		for _, group := range collidingKeys(inSlot, func(c Class) []string { return c.Groups }) {
			report.GroupConflicts = append(report.GroupConflicts, Conflict{
				Day:   slot.day,
				Time:  slot.time,
				Group: group,
				Classes: lo.Filter(inSlot, func(c Class, _ int) bool {
					return lo.Contains(c.Groups, group)
				}),
			})
		}
	}

	return report
}

// collidingKeys returns, in first-appearance order, the keys that occur in
// more than one class of a slot.
func collidingKeys(classes []Class, keysOf func(Class) []string) []string {
	counts := map[string]int{}
	var order []string
	for _, c := range classes {
		for _, key := range keysOf(c) {
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
	}
	return lo.Filter(order, func(key string, _ int) bool { return counts[key] > 1 })
}

// CapacityViolation records a class whose groups do not fit the room.
type CapacityViolation struct {
	Day           string   `json:"day"`
	Time          string   `json:"time"`
	Subject       string   `json:"subject"`
	Teacher       string   `json:"teacher"`
	Room          string   `json:"room"`
	RoomCapacity  int      `json:"room_capacity"`
	Groups        []string `json:"groups"`
	TotalStudents int      `json:"total_students"`
	Overflow      int      `json:"overflow"`
}

// DetectCapacityViolations compares each class's combined group size with
// the capacity of its room. Ids missing from the lookup tables fall back to
// the defaults the model loader would have applied.
func DetectCapacityViolations(sol *Solution, roomCapacity map[string]int, groupSize map[string]int) []CapacityViolation {
	violations := []CapacityViolation{}

	for _, c := range sol.Classes {
		capacity, ok := roomCapacity[c.Room]
		if !ok {
			capacity = model.DefaultRoomCapacity
		}

		total := lo.SumBy(c.Groups, func(g string) int { return groupSize[strings.TrimSpace(g)] })
		if total <= capacity {
			continue
		}

		violations = append(violations, CapacityViolation{
			Day:           c.Day,
			Time:          c.Time,
			Subject:       c.Subject,
			Teacher:       c.Teacher,
			Room:          c.Room,
			RoomCapacity:  capacity,
			Groups:        c.Groups,
			TotalStudents: total,
			Overflow:      total - capacity,
		})
	}

	return violations
}
