package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debarchito/time-table-generator/internal/model"
	"github.com/debarchito/time-table-generator/internal/schedule"
)

// testModel builds a small solvable model. Callers mutate the result to
// exercise individual constraints.
func testModel() *model.Model {
	return &model.Model{
		Rooms: []model.Room{
			{ID: "r1", Type: model.TypeLecture, Capacity: 50},
			{ID: "lab1", Type: model.TypeLab, Capacity: 20, For: []string{"phy101"}},
		},
		Slots: model.Slots{
			Days:  []string{"Mon", "Tue"},
			Times: []string{"08:00", "09:00", "10:00", "11:00"},
		},
		Teachers: []model.Teacher{
			{ID: "t1", Name: "A. Lovelace", Subjects: []string{"cs101", "phy101"}},
			{ID: "t2", Name: "C. Babbage", Subjects: []string{"cs101"}},
		},
		Subjects: []model.Subject{
			{ID: "cs101", Name: "Intro to CS", Type: model.TypeLecture, ClassesPerWeek: 1},
			{ID: "phy101", Name: "Physics Lab", Type: model.TypeLab, ClassesPerWeek: 1},
		},
		Groups: []model.Group{
			{ID: "g1", Size: 20, Subjects: []string{"cs101", "phy101"}},
			{ID: "g2", Size: 20, Subjects: []string{"cs101"}},
		},
		Constraints: model.Constraints{MaxConsecutiveClasses: 2},
	}
}

func solve(t *testing.T, m *model.Model) *schedule.Solution {
	t.Helper()
	require.NoError(t, m.Validate())
	return New(m).Solve(context.Background())
}

func TestEvents_ExpandsClassesPerWeek(t *testing.T) {
	m := testModel()
	m.Subjects[0].ClassesPerWeek = 3

	events := New(m).Events()

	// g1: 3x cs101 + 1x phy101, g2: 3x cs101.
	require.Len(t, events, 7)
	assert.Equal(t, Event{Subject: "cs101", Group: "g1", Occurrence: 1}, events[0])
	assert.Equal(t, Event{Subject: "cs101", Group: "g1", Occurrence: 3}, events[2])
	assert.Equal(t, Event{Subject: "phy101", Group: "g1", Occurrence: 1}, events[3])
}

func TestSolve_PlacesAllEvents(t *testing.T) {
	sol := solve(t, testModel())

	assert.Empty(t, sol.Unassigned)
	assert.Len(t, sol.Classes, 3)
	assert.Zero(t, schedule.DetectConflicts(sol).Total(), "a solver output must be conflict-free")
}

func TestSolve_IsDeterministic(t *testing.T) {
	first := solve(t, testModel())
	second := solve(t, testModel())
	assert.Equal(t, first, second)
}

func TestSolve_RespectsBreaks(t *testing.T) {
	m := testModel()
	m.Slots.Breaks = []model.Break{
		{Day: "*", Time: "08:00"},
		{Day: "Mon", Time: "09:00"},
	}

	sol := solve(t, m)

	for _, c := range sol.Classes {
		assert.NotEqual(t, "08:00", c.Time, "wildcard break must block every day")
		if c.Day == "Mon" {
			assert.NotEqual(t, "09:00", c.Time)
		}
	}
}

func TestSolve_LabNeedsEquippedRoom(t *testing.T) {
	m := testModel()
	// The only lab no longer serves phy101, so the lab event cannot be placed.
	m.Rooms[1].For = nil

	sol := solve(t, m)

	require.Len(t, sol.Unassigned, 1)
	assert.Equal(t, "phy101", sol.Unassigned[0].Subject)
	assert.Equal(t, "g1", sol.Unassigned[0].Group)
}

func TestSolve_RespectsRoomCapacity(t *testing.T) {
	m := testModel()
	m.Groups[0].Size = 30 // over lab1's capacity of 20

	sol := solve(t, m)

	require.Len(t, sol.Unassigned, 1)
	assert.Equal(t, "phy101", sol.Unassigned[0].Subject)
}

func TestSolve_MaxConsecutiveClasses(t *testing.T) {
	m := testModel()
	m.Constraints.MaxConsecutiveClasses = 1
	m.Subjects[0].ClassesPerWeek = 4
	m.Teachers = m.Teachers[:1]
	m.Groups = []model.Group{{ID: "g1", Size: 20, Subjects: []string{"cs101"}}}

	sol := solve(t, m)

	byDay := map[string][]int{}
	timeIdx := map[string]int{"08:00": 0, "09:00": 1, "10:00": 2, "11:00": 3}
	for _, c := range sol.Classes {
		byDay[c.Day] = append(byDay[c.Day], timeIdx[c.Time])
	}
	for day, times := range byDay {
		for i := 1; i < len(times); i++ {
			assert.Greater(t, times[i], times[i-1]+1, "teacher has back-to-back classes on %s", day)
		}
	}
}

func TestSolve_MaxSlotsPerGroupPerDay(t *testing.T) {
	m := testModel()
	m.Constraints.MaxSlotsPerGroupPerDay = 1
	m.Subjects[0].ClassesPerWeek = 2
	m.Groups = []model.Group{{ID: "g1", Size: 20, Subjects: []string{"cs101"}}}

	sol := solve(t, m)

	perDay := map[string]int{}
	for _, c := range sol.Classes {
		perDay[c.Day]++
	}
	for day, n := range perDay {
		assert.LessOrEqual(t, n, 1, "group g1 has %d classes on %s", n, day)
	}
}

func TestSolve_NoTeacherForSubject(t *testing.T) {
	m := testModel()
	m.Teachers[0].Subjects = []string{"cs101"} // nobody teaches phy101 now

	sol := solve(t, m)

	require.Len(t, sol.Unassigned, 1)
	assert.Equal(t, "phy101", sol.Unassigned[0].Subject)
}

func TestSolve_OutputIsSorted(t *testing.T) {
	sol := solve(t, testModel())

	dayRank := map[string]int{"Mon": 0, "Tue": 1}
	for i := 1; i < len(sol.Classes); i++ {
		prev, cur := sol.Classes[i-1], sol.Classes[i]
		if dayRank[prev.Day] == dayRank[cur.Day] {
			assert.LessOrEqual(t, prev.Time, cur.Time)
		} else {
			assert.Less(t, dayRank[prev.Day], dayRank[cur.Day])
		}
	}
}
