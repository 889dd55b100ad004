// Package views holds read-only projections over a store record: calendar
// months, upcoming lists, feedback summaries and dashboard counters.
//
// Every function is pure. Callers pass the record (usually from
// engine.Read) and, where time matters, the current instant; the location of
// that instant decides how free-form dates are interpreted.
package views
