// Package app wires the timetable generator together: it owns the logger,
// resolves the model files to process, and drives each one through the
// load → validate → solve → write pipeline.
package app
