// Package solver implements the greedy timetable solver.
//
// Why greedy?
//
// The solver walks the events in a deterministic order and commits the
// first placement that satisfies every constraint. It never backtracks, so
// a solvable model with a tight corner can still leave events unplaced —
// those are reported as unassigned rather than silently dropped. The
// upside is that runs are fast, reproducible, and easy to reason about:
// the same model always yields the same timetable.
package solver

import (
	"context"

	"github.com/samber/lo"

	"github.com/debarchito/time-table-generator/internal/ctxlog"
	"github.com/debarchito/time-table-generator/internal/model"
	"github.com/debarchito/time-table-generator/internal/schedule"
)

// Event is one class occurrence to place: a group needs the subject's n-th
// weekly occurrence.
type Event struct {
	Subject    string
	Group      string
	Occurrence int
}

// slot is a (day, time) position in the weekly grid.
type slot struct {
	day  string
	time string
}

// Solver holds the model plus the lookup tables precomputed from it.
type Solver struct {
	m *model.Model

	days  []string
	times []string

	maxConsec      int
	maxPerGroupDay int

	invalidStart    map[string]map[string]struct{}
	roomType        map[string]string
	roomCapacity    map[string]int
	groupSize       map[string]int
	labFor          map[string]map[string]struct{}
	teacherSubjects map[string]map[string]struct{}
	subjectType     map[string]string
	subjectName     map[string]string
	teacherName     map[string]string
	timeIndex       map[string]int

	// Mutable placement state, rebuilt per Solve call.
	teacherBusy     map[string]map[slot]struct{}
	roomBusy        map[string]map[slot]struct{}
	groupBusy       map[string]map[slot]struct{}
	teacherDayTimes map[string]map[string][]int
	groupDayCount   map[string]map[string]int
}

// New builds a solver with all lookup tables derived from the model.
func New(m *model.Model) *Solver {
	toSet := func(ids []string) map[string]struct{} {
		return lo.SliceToMap(ids, func(id string) (string, struct{}) { return id, struct{}{} })
	}

	s := &Solver{
		m:              m,
		days:           m.Slots.Days,
		times:          m.Slots.Times,
		maxConsec:      m.Constraints.MaxConsecutiveClasses,
		maxPerGroupDay: m.Constraints.MaxSlotsPerGroupPerDay,

		roomType:     lo.SliceToMap(m.Rooms, func(r model.Room) (string, string) { return r.ID, r.Type }),
		roomCapacity: lo.SliceToMap(m.Rooms, func(r model.Room) (string, int) { return r.ID, r.Capacity }),
		groupSize:    lo.SliceToMap(m.Groups, func(g model.Group) (string, int) { return g.ID, g.Size }),
		subjectType:  lo.SliceToMap(m.Subjects, func(sub model.Subject) (string, string) { return sub.ID, sub.Type }),
		subjectName:  lo.SliceToMap(m.Subjects, func(sub model.Subject) (string, string) { return sub.ID, sub.Name }),
		teacherName:  lo.SliceToMap(m.Teachers, func(t model.Teacher) (string, string) { return t.ID, t.Name }),
	}

	s.timeIndex = make(map[string]int, len(m.Slots.Times))
	for i, t := range m.Slots.Times {
		s.timeIndex[t] = i
	}

	s.teacherSubjects = lo.SliceToMap(m.Teachers, func(t model.Teacher) (string, map[string]struct{}) {
		return t.ID, toSet(t.Subjects)
	})
	s.labFor = lo.SliceToMap(
		lo.Filter(m.Rooms, func(r model.Room, _ int) bool { return r.Type == model.TypeLab }),
		func(r model.Room) (string, map[string]struct{}) { return r.ID, toSet(r.For) },
	)

	s.invalidStart = map[string]map[string]struct{}{}
	for _, brk := range m.Slots.Breaks {
		days := []string{brk.Day}
		if brk.Day == model.BreakEveryDay {
			days = s.days
		}
		for _, d := range days {
			if s.invalidStart[d] == nil {
				s.invalidStart[d] = map[string]struct{}{}
			}
			s.invalidStart[d][brk.Time] = struct{}{}
		}
	}

	return s
}

// Events expands the model into the list of class occurrences to place, in
// model order: groups, then their subjects, then weekly occurrences.
func (s *Solver) Events() []Event {
	classesPerWeek := lo.SliceToMap(s.m.Subjects, func(sub model.Subject) (string, int) {
		return sub.ID, sub.ClassesPerWeek
	})

	var events []Event
	for _, g := range s.m.Groups {
		for _, subjectID := range g.Subjects {
			n := classesPerWeek[subjectID]
			for occ := 1; occ <= n; occ++ {
				events = append(events, Event{Subject: subjectID, Group: g.ID, Occurrence: occ})
			}
		}
	}
	return events
}

// Solve places every event it can and returns the sorted solution,
// including the events that found no valid placement.
func (s *Solver) Solve(ctx context.Context) *schedule.Solution {
	logger := ctxlog.FromContext(ctx)

	s.teacherBusy = map[string]map[slot]struct{}{}
	s.roomBusy = map[string]map[slot]struct{}{}
	s.groupBusy = map[string]map[slot]struct{}{}
	s.teacherDayTimes = map[string]map[string][]int{}
	s.groupDayCount = map[string]map[string]int{}

	events := s.Events()
	logger.Debug("Solver starting.", "events", len(events))

	sol := &schedule.Solution{Unassigned: []schedule.Unassigned{}}
	for _, ev := range events {
		class, ok := s.place(ev)
		if !ok {
			logger.Warn("No valid placement for event.",
				"subject", ev.Subject, "group", ev.Group, "occurrence", ev.Occurrence)
			sol.Unassigned = append(sol.Unassigned, schedule.Unassigned{
				Subject:    ev.Subject,
				Group:      ev.Group,
				Occurrence: ev.Occurrence,
			})
			continue
		}
		sol.Classes = append(sol.Classes, class)
	}

	sol.Sort()
	logger.Debug("Solver finished.", "placed", len(sol.Classes), "unassigned", len(sol.Unassigned))
	return sol
}

// place tries teachers qualified for the event's subject, then slots in
// grid order, then rooms in model order, committing the first combination
// that passes every constraint.
func (s *Solver) place(ev Event) (schedule.Class, bool) {
	for _, teacher := range s.m.Teachers {
		if _, ok := s.teacherSubjects[teacher.ID][ev.Subject]; !ok {
			continue
		}

		for _, day := range s.days {
			for _, tm := range s.times {
				sl := slot{day: day, time: tm}
				if s.isBreak(sl) {
					continue
				}
				if s.busy(s.teacherBusy, teacher.ID, sl) || s.busy(s.groupBusy, ev.Group, sl) {
					continue
				}
				if !s.maxConsecutiveOK(teacher.ID, sl) {
					continue
				}
				if !s.maxPerGroupDayOK(ev.Group, day) {
					continue
				}

				for _, room := range s.m.Rooms {
					if !s.roomFitsSubject(room.ID, ev.Subject) {
						continue
					}
					if s.busy(s.roomBusy, room.ID, sl) {
						continue
					}
					if !s.capacitySufficient(room.ID, ev.Group) {
						continue
					}

					s.commit(teacher.ID, room.ID, ev.Group, sl)
					return schedule.Class{
						Day:     day,
						Time:    tm,
						Subject: s.subjectName[ev.Subject],
						Teacher: s.teacherName[teacher.ID],
						Room:    room.ID,
						Groups:  []string{ev.Group},
					}, true
				}
			}
		}
	}

	return schedule.Class{}, false
}

// commit records a placement in every occupancy index.
func (s *Solver) commit(teacherID, roomID, groupID string, sl slot) {
	mark := func(busy map[string]map[slot]struct{}, id string) {
		if busy[id] == nil {
			busy[id] = map[slot]struct{}{}
		}
		busy[id][sl] = struct{}{}
	}
	mark(s.teacherBusy, teacherID)
	mark(s.roomBusy, roomID)
	mark(s.groupBusy, groupID)

	if s.teacherDayTimes[teacherID] == nil {
		s.teacherDayTimes[teacherID] = map[string][]int{}
	}
	s.teacherDayTimes[teacherID][sl.day] = append(s.teacherDayTimes[teacherID][sl.day], s.timeIndex[sl.time])

	if s.groupDayCount[groupID] == nil {
		s.groupDayCount[groupID] = map[string]int{}
	}
	s.groupDayCount[groupID][sl.day]++
}
