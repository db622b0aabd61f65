// Package artifacts writes a solved timetable out as the solution
// directory tree: the flat solution CSV, pivoted per-group/teacher/room
// timetables in CSV and JSON, the summary, and the verification reports.
package artifacts

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/debarchito/time-table-generator/internal/ctxlog"
	"github.com/debarchito/time-table-generator/internal/model"
	"github.com/debarchito/time-table-generator/internal/schedule"
)

// json is the artifact codec. Sorted map keys keep the JSON files stable
// across runs so they diff cleanly.
var json = sonic.Config{SortMapKeys: true}.Froze()

// Writer writes solution directories under a common output root.
type Writer struct {
	root   string
	sqlite bool
	outW   io.Writer
}

// NewWriter returns a Writer rooted at the given directory. Progress lines
// are printed to outW. When sqlite is set, each solution also gets a
// solution.db export.
func NewWriter(root string, sqlite bool, outW io.Writer) *Writer {
	return &Writer{root: root, sqlite: sqlite, outW: outW}
}

// Write produces the full artifact tree for one solved model under
// <root>/<name>/.
func (w *Writer) Write(ctx context.Context, name string, m *model.Model, sol *schedule.Solution) error {
	logger := ctxlog.FromContext(ctx)

	base := filepath.Join(w.root, name)
	if err := os.MkdirAll(base, 0755); err != nil {
		return fmt.Errorf("failed to create solution directory %s: %w", base, err)
	}
	logger.Debug("Writing solution artifacts.", "dir", base)

	if err := w.writeSolutionCSV(filepath.Join(base, "solution.csv"), sol); err != nil {
		return err
	}

	if err := w.writeTimetables(base, "groups", sol.Groups(), func(id string) schedule.Filter {
		return schedule.Filter{Group: id}
	}, sol, "group"); err != nil {
		return err
	}
	fmt.Fprintln(w.outW, "[+] Wrote timetables for groups as both CSV and JSON.")

	if err := w.writeTimetables(base, "teachers", sol.Teachers(), func(id string) schedule.Filter {
		return schedule.Filter{Teacher: id}
	}, sol, "teacher"); err != nil {
		return err
	}
	fmt.Fprintln(w.outW, "[+] Wrote timetables for teachers as both CSV and JSON.")

	if err := w.writeTimetables(base, "rooms", sol.Rooms(), func(id string) schedule.Filter {
		return schedule.Filter{Room: id}
	}, sol, "room"); err != nil {
		return err
	}
	fmt.Fprintln(w.outW, "[+] Wrote timetables for rooms as both CSV and JSON.")

	summary := schedule.Summarize(sol, m)
	if err := w.writeJSON(filepath.Join(base, "summary.json"), summary); err != nil {
		return err
	}
	fmt.Fprintln(w.outW, "[+] Wrote summary as JSON.")

	conflicts := schedule.DetectConflicts(sol)
	if err := w.writeJSON(filepath.Join(base, "conflicts.json"), conflicts); err != nil {
		return err
	}
	if total := conflicts.Total(); total > 0 {
		fmt.Fprintf(w.outW, "[!] %d conflicts detected! Check `conflicts.json` for reports.\n", total)
	} else {
		fmt.Fprintln(w.outW, "[+] No conflicts detected in the timetable(s).")
	}

	violations := schedule.DetectCapacityViolations(sol, summary.RoomCapacities, summary.GroupSizes)
	if err := w.writeJSON(filepath.Join(base, "capacity_violations.json"), violations); err != nil {
		return err
	}
	if len(violations) > 0 {
		fmt.Fprintf(w.outW, "[!] %d capacity violations detected! Check `capacity_violations.json` for reports.\n", len(violations))
	}

	if w.sqlite {
		dbPath := filepath.Join(base, "solution.db")
		if err := ExportSQLite(ctx, dbPath, sol); err != nil {
			return err
		}
		fmt.Fprintln(w.outW, "[+] Wrote solution as SQLite database.")
	}

	return nil
}

// writeTimetables writes the CSV and JSON timetable pair for every entity
// of one kind into its subdirectory.
func (w *Writer) writeTimetables(base, subdir string, ids []string, filter func(string) schedule.Filter, sol *schedule.Solution, kind string) error {
	dir := filepath.Join(base, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	for _, id := range ids {
		tt, err := schedule.Pivot(sol, filter(id))
		if err != nil {
			return fmt.Errorf("failed to pivot timetable for %s %q: %w", kind, id, err)
		}

		stem := fmt.Sprintf("timetable_%s_%s", kind, safeName(id))

		records, err := tt.CSVRecords()
		if err != nil {
			return err
		}
		if err := writeCSV(filepath.Join(dir, stem+".csv"), records); err != nil {
			return err
		}
		if err := w.writeJSON(filepath.Join(dir, stem+".json"), tt.Rows()); err != nil {
			return err
		}
	}

	return nil
}

// writeSolutionCSV writes the flat solution rows.
func (w *Writer) writeSolutionCSV(path string, sol *schedule.Solution) error {
	records := [][]string{{"Day", "Time", "Subject", "Teacher", "Room", "Groups"}}
	for _, c := range sol.Classes {
		records = append(records, []string{
			c.Day, c.Time, c.Subject, c.Teacher, c.Room, strings.Join(c.Groups, ", "),
		})
	}
	return writeCSV(path, records)
}

// writeJSON writes a value as indented JSON.
func (w *Writer) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeCSV writes records to a CSV file.
func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// safeName makes an entity name usable as a file name: spaces become
// underscores and dots are dropped ("A. Lovelace" -> "A_Lovelace").
func safeName(name string) string {
	return strings.NewReplacer(" ", "_", ".", "").Replace(name)
}
