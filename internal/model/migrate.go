package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LegacyEventTitle is a demonstration event from early builds that migration
// removes together with its feedback.
const LegacyEventTitle = "Career Fair 2023"

// legacyStatuses maps calendar-era status names onto the status table.
var legacyStatuses = map[string]EventStatus{
	"live":      StatusPublished,
	"completed": StatusAttended,
}

// Decode parses a persisted record and migrates it in memory. changed reports
// whether the migrated record differs from the stored bytes and should be
// written back.
//
// Collections are decoded element by element. An element that still does not
// fit its type after coercion is dropped and the rest of the record is kept;
// the same holds for a collection stored with the wrong shape. Only a value
// that is not a JSON object is an error.
func Decode(data []byte) (rec Record, changed bool, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Record{}, false, fmt.Errorf("decode record: %w", err)
	}
	if raw == nil {
		return Record{}, false, fmt.Errorf("decode record: not an object")
	}

	changed = migrateRaw(raw)
	if decodeParts(raw, &rec) > 0 {
		changed = true
	}
	rec.Normalize()
	if rec.SchemaVersion < CurrentSchemaVersion {
		rec.SchemaVersion = CurrentSchemaVersion
		changed = true
	}
	return rec, changed, nil
}

// decodeParts fills rec from the migrated map and returns how many values
// were dropped.
func decodeParts(raw map[string]any, rec *Record) int {
	dropped := decodeValue(raw, "schemaVersion", &rec.SchemaVersion) +
		decodeValue(raw, "revision", &rec.Revision) +
		decodeValue(raw, "stats", &rec.Stats) +
		decodeList(raw, "events", &rec.Events) +
		decodeList(raw, "approvals", &rec.Approvals) +
		decodeList(raw, "users", &rec.Users) +
		decodeList(raw, "notifications", &rec.Notifications) +
		decodeList(raw, "registrations", &rec.Registrations) +
		decodeList(raw, "reports", &rec.Reports) +
		decodeList(raw, "feedback", &rec.Feedback)

	switch files := raw["files"].(type) {
	case nil:
	case map[string]any:
		dropped += decodeList(files, "badges", &rec.Files.Badges) +
			decodeList(files, "documents", &rec.Files.Documents)
	default:
		dropped++
	}
	return dropped
}

func decodeValue[T any](raw map[string]any, key string, dst *T) int {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0
	}
	if !remarshal(v, dst) {
		return 1
	}
	return 0
}

func decodeList[T any](raw map[string]any, key string, dst *[]T) int {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0
	}
	items, ok := v.([]any)
	if !ok {
		return 1
	}
	dropped := 0
	out := make([]T, 0, len(items))
	for _, item := range items {
		var elem T
		if item == nil || !remarshal(item, &elem) {
			dropped++
			continue
		}
		out = append(out, elem)
	}
	*dst = out
	return dropped
}

func remarshal(v, dst any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// migrateRaw reshapes a decoded record. Every step is idempotent so it runs on
// each load. Event defaults only fill fields that are absent; a present but
// empty value is kept.
func migrateRaw(raw map[string]any) bool {
	changed := false

	events, _ := raw["events"].([]any)
	removed := map[string]bool{}
	kept := make([]any, 0, len(events))
	for _, item := range events {
		ev, ok := item.(map[string]any)
		if !ok {
			kept = append(kept, item)
			continue
		}
		if title, _ := ev["title"].(string); title == LegacyEventTitle {
			removed[rawKey(ev["id"])] = true
			changed = true
			continue
		}
		if fillEventDefaults(ev) {
			changed = true
		}
		kept = append(kept, ev)
	}
	if events != nil {
		raw["events"] = kept
	}

	if stats, ok := raw["stats"].(map[string]any); ok {
		for _, key := range []string{"totalEvents", "totalUsers", "registrations", "pendingApprovals"} {
			if coerceInt(stats, key) {
				changed = true
			}
		}
	}
	for _, key := range []string{"schemaVersion", "revision"} {
		if coerceInt(raw, key) {
			changed = true
		}
	}
	if users, ok := raw["users"].([]any); ok {
		for _, item := range users {
			if u, ok := item.(map[string]any); ok && coerceInt(u, "eventsCount") {
				changed = true
			}
		}
	}
	if notes, ok := raw["notifications"].([]any); ok {
		for _, item := range notes {
			if n, ok := item.(map[string]any); ok && coerceBool(n, "unread") {
				changed = true
			}
		}
	}

	if approvals, ok := raw["approvals"].([]any); ok {
		for _, item := range approvals {
			if ap, ok := item.(map[string]any); ok && coerceInt(ap, "capacity") {
				changed = true
			}
		}
	}

	if len(removed) > 0 {
		feedback, _ := raw["feedback"].([]any)
		keptFeedback := make([]any, 0, len(feedback))
		for _, item := range feedback {
			if fb, ok := item.(map[string]any); ok && removed[rawKey(fb["eventId"])] {
				continue
			}
			keptFeedback = append(keptFeedback, item)
		}
		if feedback != nil {
			raw["feedback"] = keptFeedback
		}
	}
	if feedback, ok := raw["feedback"].([]any); ok {
		for _, item := range feedback {
			if fb, ok := item.(map[string]any); ok && coerceInt(fb, "rating") {
				changed = true
			}
		}
	}
	return changed
}

func fillEventDefaults(ev map[string]any) bool {
	changed := false
	defaults := []struct {
		key   string
		value any
	}{
		{"type", "general"},
		{"description", "No description provided"},
		{"date", "TBD"},
		{"time", "TBD"},
		{"location", "TBD"},
		{"capacity", json.Number("50")},
		{"registered", json.Number("0")},
	}
	for _, d := range defaults {
		if _, ok := ev[d.key]; !ok {
			ev[d.key] = d.value
			changed = true
		}
	}
	if coerceInt(ev, "capacity") {
		changed = true
	}
	if coerceInt(ev, "registered") {
		changed = true
	}
	if s, ok := ev["status"].(string); ok {
		if mapped, legacy := legacyStatuses[s]; legacy {
			ev["status"] = string(mapped)
			changed = true
		}
	} else {
		ev["status"] = string(StatusDraft)
		changed = true
	}
	return changed
}

// coerceInt rewrites numeric text and fractional numbers (form input stored
// verbatim by older builds) as integers. Unparsable text becomes 0.
func coerceInt(obj map[string]any, key string) bool {
	var text string
	switch v := obj[key].(type) {
	case string:
		text = strings.TrimSpace(v)
	case json.Number:
		if _, err := v.Int64(); err == nil {
			return false
		}
		text = v.String()
	default:
		return false
	}
	n := int64(0)
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		n = int64(f)
	}
	obj[key] = json.Number(strconv.FormatInt(n, 10))
	return true
}

// coerceBool rewrites "true"/"false" text and 0/1 numbers as booleans. Other
// text is false.
func coerceBool(obj map[string]any, key string) bool {
	switch v := obj[key].(type) {
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		obj[key] = err == nil && b
		return true
	case json.Number:
		f, err := v.Float64()
		obj[key] = err == nil && f != 0
		return true
	}
	return false
}

// rawKey renders a decoded id so numeric and string forms of the same id match.
func rawKey(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	default:
		return fmt.Sprint(id)
	}
}
