package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Validate checks referential integrity of a loaded model. It is called
// before solving so that a broken definition fails loudly instead of
// producing a quietly wrong timetable.
func (m *Model) Validate() error {
	if len(m.Slots.Days) == 0 {
		return fmt.Errorf("model defines no days")
	}
	if len(m.Slots.Times) == 0 {
		return fmt.Errorf("model defines no times")
	}

	if dup, ok := firstDuplicate(lo.Map(m.Rooms, func(r Room, _ int) string { return r.ID })); ok {
		return fmt.Errorf("duplicate room id %q", dup)
	}
	if dup, ok := firstDuplicate(lo.Map(m.Teachers, func(t Teacher, _ int) string { return t.ID })); ok {
		return fmt.Errorf("duplicate teacher id %q", dup)
	}
	if dup, ok := firstDuplicate(lo.Map(m.Subjects, func(s Subject, _ int) string { return s.ID })); ok {
		return fmt.Errorf("duplicate subject id %q", dup)
	}
	if dup, ok := firstDuplicate(lo.Map(m.Groups, func(g Group, _ int) string { return g.ID })); ok {
		return fmt.Errorf("duplicate group id %q", dup)
	}

	subjectIDs := lo.SliceToMap(m.Subjects, func(s Subject) (string, struct{}) { return s.ID, struct{}{} })

	for _, r := range m.Rooms {
		if r.Type != TypeLecture && r.Type != TypeLab {
			return fmt.Errorf("room %q has unknown type %q", r.ID, r.Type)
		}
		for _, sid := range r.For {
			if _, ok := subjectIDs[sid]; !ok {
				return fmt.Errorf("room %q serves unknown subject %q", r.ID, sid)
			}
		}
	}
	for _, s := range m.Subjects {
		if s.Type != TypeLecture && s.Type != TypeLab {
			return fmt.Errorf("subject %q has unknown type %q", s.ID, s.Type)
		}
	}
	for _, t := range m.Teachers {
		for _, sid := range t.Subjects {
			if _, ok := subjectIDs[sid]; !ok {
				return fmt.Errorf("teacher %q teaches unknown subject %q", t.ID, sid)
			}
		}
	}
	for _, g := range m.Groups {
		for _, sid := range g.Subjects {
			if _, ok := subjectIDs[sid]; !ok {
				return fmt.Errorf("group %q takes unknown subject %q", g.ID, sid)
			}
		}
	}

	days := lo.SliceToMap(m.Slots.Days, func(d string) (string, struct{}) { return d, struct{}{} })
	times := lo.SliceToMap(m.Slots.Times, func(t string) (string, struct{}) { return t, struct{}{} })
	for _, b := range m.Slots.Breaks {
		if b.Day != BreakEveryDay {
			if _, ok := days[b.Day]; !ok {
				return fmt.Errorf("break references unknown day %q", b.Day)
			}
		}
		if _, ok := times[b.Time]; !ok {
			return fmt.Errorf("break references unknown time %q", b.Time)
		}
	}

	return nil
}

// firstDuplicate returns the first value occurring more than once.
func firstDuplicate(ids []string) (string, bool) {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id, true
		}
		seen[id] = struct{}{}
	}
	return "", false
}
