package schedule

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/samber/lo"
)

// Defaults for the grid rendered when a filter matches nothing, so every
// group, teacher, and room still gets a (blank) timetable artifact.
var (
	defaultGridDays  = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	defaultGridTimes = []string{"08:00", "09:00", "11:00", "13:00", "14:00", "16:00"}
)

// Filter selects the entity a timetable is pivoted for. Exactly one field
// must be set.
type Filter struct {
	Group   string
	Teacher string
	Room    string
}

// Cell is the payload of one timetable slot.
type Cell struct {
	Subject string `json:"subject"`
	Teacher string `json:"teacher"`
	Room    string `json:"room"`
	Group   string `json:"group"`
}

// Timetable is a day-by-time grid for a single entity. Cells is keyed by
// day, then time; a missing entry means the slot is free.
type Timetable struct {
	Days  []string
	Times []string
	Cells map[string]map[string]Cell
}

// Pivot builds the timetable for the entity selected by the filter. When
// several classes collide on a slot the first one (in solution order) wins;
// collisions are the conflict detector's business, not the renderer's.
func Pivot(sol *Solution, f Filter) (*Timetable, error) {
	set := lo.Count([]bool{f.Group != "", f.Teacher != "", f.Room != ""}, true)
	if set != 1 {
		return nil, fmt.Errorf("exactly one of group, teacher, or room must be set, got %d", set)
	}

	classes := lo.Filter(sol.Classes, func(c Class, _ int) bool {
		switch {
		case f.Group != "":
			return lo.Contains(c.Groups, f.Group)
		case f.Teacher != "":
			return c.Teacher == f.Teacher
		default:
			return c.Room == f.Room
		}
	})

	if len(classes) == 0 {
		return &Timetable{
			Days:  defaultGridDays,
			Times: defaultGridTimes,
			Cells: map[string]map[string]Cell{},
		}, nil
	}

	filtered := &Solution{Classes: classes}
	tt := &Timetable{
		Days:  filtered.Days(),
		Times: filtered.Times(),
		Cells: map[string]map[string]Cell{},
	}

	for _, c := range classes {
		row, ok := tt.Cells[c.Day]
		if !ok {
			row = map[string]Cell{}
			tt.Cells[c.Day] = row
		}
		if _, taken := row[c.Time]; taken {
			continue
		}

		cell := Cell{
			Subject: c.Subject,
			Teacher: c.Teacher,
			Room:    c.Room,
			Group:   strings.Join(c.Groups, ", "),
		}
		if f.Room != "" {
			cell.Room = f.Room
		}
		row[c.Time] = cell
	}

	return tt, nil
}

// CSVRecords renders the grid as CSV records: a header of "Day" plus the
// time columns, then one row per day whose cells are compact JSON payloads.
func (tt *Timetable) CSVRecords() ([][]string, error) {
	records := [][]string{append([]string{"Day"}, tt.Times...)}

	for _, day := range tt.Days {
		row := []string{day}
		for _, tm := range tt.Times {
			cell, ok := tt.Cells[day][tm]
			if !ok {
				row = append(row, "")
				continue
			}
			data, err := sonic.Marshal(cell)
			if err != nil {
				return nil, fmt.Errorf("failed to encode cell for %s %s: %w", day, tm, err)
			}
			row = append(row, string(data))
		}
		records = append(records, row)
	}

	return records, nil
}

// Rows renders the grid as one map per day, with the occupied times mapped
// to their cells and free times to nil. This is the JSON artifact shape.
func (tt *Timetable) Rows() []map[string]any {
	rows := make([]map[string]any, 0, len(tt.Days))
	for _, day := range tt.Days {
		row := map[string]any{"Day": day}
		for _, tm := range tt.Times {
			if cell, ok := tt.Cells[day][tm]; ok {
				row[tm] = cell
			} else {
				row[tm] = nil
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// slotKey identifies one (day, time) position.
type slotKey struct {
	day  string
	time string
}

// occupiedSlots returns the distinct (day, time) positions of the solution
// in canonical day-then-time order.
func occupiedSlots(sol *Solution) []slotKey {
	slots := lo.Uniq(lo.Map(sol.Classes, func(c Class, _ int) slotKey {
		return slotKey{day: c.Day, time: c.Time}
	}))
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].day != slots[j].day {
			return dayRank(slots[i].day) < dayRank(slots[j].day)
		}
		return slots[i].time < slots[j].time
	})
	return slots
}
