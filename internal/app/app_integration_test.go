package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debarchito/time-table-generator/internal/schedule"
	"github.com/debarchito/time-table-generator/internal/testutil"
)

const fixtureJSON = `{
  "rooms": [
    {"id": "r1", "type": "lecture", "capacity": 60},
    {"id": "lab1", "type": "lab", "capacity": 25, "for": ["phy101"]}
  ],
  "slots": {
    "days": ["Mon", "Tue", "Wed"],
    "times": ["08:00", "09:00", "11:00", "13:00"],
    "breaks": [{"day": "*", "time": "11:00"}]
  },
  "teachers": [
    {"id": "t1", "name": "A. Lovelace", "subjects": ["cs101", "phy101"]},
    {"id": "t2", "name": "C. Babbage", "subjects": ["cs101"]}
  ],
  "subjects": [
    {"id": "cs101", "name": "Intro to CS", "type": "lecture", "classes_per_week": 2},
    {"id": "phy101", "name": "Physics Lab", "type": "lab"}
  ],
  "groups": [
    {"id": "g1", "size": 25, "subjects": ["cs101", "phy101"]},
    {"id": "g2", "size": 30, "subjects": ["cs101"]}
  ],
  "constraints": {
    "maximum_consecutive_classes": 2,
    "maximum_slot_per_group_per_day": 3
  }
}`

const fixtureHCL = `
room "r1" {
  type     = "lecture"
  capacity = 60
}

slots {
  days  = ["Mon", "Tue"]
  times = ["08:00", "09:00"]
}

teacher "t1" {
  name     = "G. Hopper"
  subjects = ["cs101"]
}

subject "cs101" {
  name = "Compilers"
  type = "lecture"
}

group "g1" {
  size     = 20
  subjects = ["cs101"]
}
`

func TestGenerate_JSONModelEndToEnd(t *testing.T) {
	result := testutil.RunGenerator(t, map[string]string{"one.json": fixtureJSON}, testutil.Options{})
	require.NoError(t, result.Err)

	base := filepath.Join(result.OutDir, "one")
	assert.FileExists(t, filepath.Join(base, "solution.csv"))
	assert.FileExists(t, filepath.Join(base, "summary.json"))
	assert.FileExists(t, filepath.Join(base, "conflicts.json"))
	assert.FileExists(t, filepath.Join(base, "groups", "timetable_group_g1.csv"))
	assert.FileExists(t, filepath.Join(base, "teachers", "timetable_teacher_A_Lovelace.json"))

	data, err := os.ReadFile(filepath.Join(base, "summary.json"))
	require.NoError(t, err)
	var summary schedule.Summary
	require.NoError(t, sonic.Unmarshal(data, &summary))

	// g1: 2x cs101 + 1x phy101; g2: 2x cs101.
	assert.Equal(t, 5, summary.TotalClasses)
	assert.Empty(t, summary.Unassigned)

	data, err = os.ReadFile(filepath.Join(base, "conflicts.json"))
	require.NoError(t, err)
	var report schedule.ConflictReport
	require.NoError(t, sonic.Unmarshal(data, &report))
	assert.Zero(t, report.Total(), "solver output must verify conflict-free")

	assert.Contains(t, result.Output, "[+] No conflicts detected in the timetable(s).")
}

func TestGenerate_BreaksStayFree(t *testing.T) {
	result := testutil.RunGenerator(t, map[string]string{"one.json": fixtureJSON}, testutil.Options{})
	require.NoError(t, result.Err)

	data, err := os.ReadFile(filepath.Join(result.OutDir, "one", "solution.csv"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), ",11:00,", "the 11:00 wildcard break must stay free")
}

func TestGenerate_DirectoryOfMixedFormats(t *testing.T) {
	result := testutil.RunGenerator(t, map[string]string{
		"one.json": fixtureJSON,
		"two.hcl":  fixtureHCL,
	}, testutil.Options{})
	require.NoError(t, result.Err)

	assert.FileExists(t, filepath.Join(result.OutDir, "one", "solution.csv"))
	assert.FileExists(t, filepath.Join(result.OutDir, "two", "solution.csv"))
	assert.FileExists(t, filepath.Join(result.OutDir, "two", "teachers", "timetable_teacher_G_Hopper.csv"))
}

func TestGenerate_SQLiteExport(t *testing.T) {
	result := testutil.RunGenerator(t, map[string]string{"one.json": fixtureJSON}, testutil.Options{SQLite: true})
	require.NoError(t, result.Err)

	assert.FileExists(t, filepath.Join(result.OutDir, "one", "solution.db"))
	assert.Contains(t, result.Output, "[+] Wrote solution as SQLite database.")
}

func TestGenerate_InvalidModelFails(t *testing.T) {
	broken := `{
  "rooms": [{"id": "r1", "type": "lecture"}],
  "slots": {"days": ["Mon"], "times": ["08:00"]},
  "teachers": [{"id": "t1", "name": "A", "subjects": ["ghost"]}],
  "subjects": [],
  "groups": [],
  "constraints": {}
}`
	result := testutil.RunGenerator(t, map[string]string{"bad.json": broken}, testutil.Options{})

	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), `teaches unknown subject "ghost"`)
}

func TestGenerate_UnassignedAreReported(t *testing.T) {
	// A lab subject with no lab room equipped for it cannot be placed.
	unplaceable := `{
  "rooms": [{"id": "r1", "type": "lecture"}],
  "slots": {"days": ["Mon"], "times": ["08:00"]},
  "teachers": [{"id": "t1", "name": "A", "subjects": ["phy101"]}],
  "subjects": [{"id": "phy101", "name": "Physics Lab", "type": "lab"}],
  "groups": [{"id": "g1", "size": 10, "subjects": ["phy101"]}],
  "constraints": {}
}`
	result := testutil.RunGenerator(t, map[string]string{"stuck.json": unplaceable}, testutil.Options{})
	require.NoError(t, result.Err)

	data, err := os.ReadFile(filepath.Join(result.OutDir, "stuck", "summary.json"))
	require.NoError(t, err)
	var summary schedule.Summary
	require.NoError(t, sonic.Unmarshal(data, &summary))

	require.Len(t, summary.Unassigned, 1)
	assert.Equal(t, "phy101", summary.Unassigned[0].Subject)
	assert.Contains(t, result.Output, "No valid placement for event.")
}
