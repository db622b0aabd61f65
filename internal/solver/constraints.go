package solver

import (
	"sort"

	"github.com/debarchito/time-table-generator/internal/model"
)

// isBreak reports whether the slot is blocked by a break declaration.
func (s *Solver) isBreak(sl slot) bool {
	_, blocked := s.invalidStart[sl.day][sl.time]
	return blocked
}

// busy reports whether the given entity already has a class in the slot.
func (s *Solver) busy(index map[string]map[slot]struct{}, id string, sl slot) bool {
	_, taken := index[id][sl]
	return taken
}

// roomFitsSubject checks room-type compatibility: lecture subjects need
// lecture rooms; lab subjects need a lab room that lists the subject.
func (s *Solver) roomFitsSubject(roomID, subjectID string) bool {
	rtype := s.roomType[roomID]
	stype := s.subjectType[subjectID]

	if rtype == model.TypeLecture && stype == model.TypeLecture {
		return true
	}
	if rtype == model.TypeLab && stype == model.TypeLab {
		_, served := s.labFor[roomID][subjectID]
		return served
	}
	return false
}

// capacitySufficient checks that the room holds the group.
func (s *Solver) capacitySufficient(roomID, groupID string) bool {
	return s.groupSize[groupID] <= s.roomCapacity[roomID]
}

// maxConsecutiveOK checks that adding a class at the slot keeps the
// teacher's longest consecutive run that day within the limit.
func (s *Solver) maxConsecutiveOK(teacherID string, sl slot) bool {
	existing := s.teacherDayTimes[teacherID][sl.day]

	times := make([]int, 0, len(existing)+1)
	times = append(times, existing...)
	times = append(times, s.timeIndex[sl.time])
	sort.Ints(times)

	maxRun, run := 1, 1
	for i := 1; i < len(times); i++ {
		if times[i] == times[i-1]+1 {
			run++
			if run > maxRun {
				maxRun = run
			}
		} else {
			run = 1
		}
	}
	return maxRun <= s.maxConsec
}

// maxPerGroupDayOK checks the group's per-day class cap. A cap of zero
// means unlimited.
func (s *Solver) maxPerGroupDayOK(groupID, day string) bool {
	if s.maxPerGroupDay == 0 {
		return true
	}
	return s.groupDayCount[groupID][day] < s.maxPerGroupDay
}
