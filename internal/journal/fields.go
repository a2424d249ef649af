// Astrographus - Elite Dangerous Journal Ingestion and Star System Mapping
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/astrographus

package journal

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// UnknownFaction is reported when neither the nested nor the flat faction
// shape is present.
const UnknownFaction = "Unknown"

// Fields is the generic key-value document decoded from one journal line.
// Numbers are json.Number so 64-bit system addresses survive decoding.
//
// Every accessor takes a list of candidate keys and returns the first one
// present, which is how renamed fields are read across game versions.
type Fields map[string]any

func (f Fields) value(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := f[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether any of the keys is present and non-null.
func (f Fields) Has(keys ...string) bool {
	_, ok := f.value(keys...)
	return ok
}

// Str returns the first present string value, or "".
func (f Fields) Str(keys ...string) string {
	v, ok := f.value(keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// Localised prefers the "<key>_Localised" variant and falls back to key.
func (f Fields) Localised(key string) string {
	if s := f.Str(key + "_Localised"); s != "" {
		return s
	}
	return f.Str(key)
}

// Int64 returns the first present integer value and whether one was found.
// Fractional values are truncated.
func (f Fields) Int64(keys ...string) (int64, bool) {
	v, ok := f.value(keys...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if fl, err := n.Float64(); err == nil && !math.IsNaN(fl) {
			return int64(fl), true
		}
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

// Int returns the first present integer value or 0.
func (f Fields) Int(keys ...string) int {
	n, _ := f.Int64(keys...)
	return int(n)
}

// Long returns the first present integer value or 0 as int64.
func (f Fields) Long(keys ...string) int64 {
	n, _ := f.Int64(keys...)
	return n
}

// IntPtr returns nil when none of the keys holds an integer.
func (f Fields) IntPtr(keys ...string) *int {
	n, ok := f.Int64(keys...)
	if !ok {
		return nil
	}
	i := int(n)
	return &i
}

// Float returns the first present numeric value or 0.
func (f Fields) Float(keys ...string) float64 {
	v, ok := f.value(keys...)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case json.Number:
		fl, _ := n.Float64()
		return fl
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

// Bool returns the first present boolean value or false.
func (f Fields) Bool(keys ...string) bool {
	v, ok := f.value(keys...)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Time parses an ISO-8601 UTC timestamp; the zero time is returned when the
// value is missing or malformed.
func (f Fields) Time(keys ...string) time.Time {
	s := f.Str(keys...)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// Obj returns the first present nested object, or nil.
func (f Fields) Obj(keys ...string) Fields {
	v, ok := f.value(keys...)
	if !ok {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return Fields(m)
	}
	return nil
}

// Objects returns the nested objects of an array field; non-object elements
// are skipped.
func (f Fields) Objects(keys ...string) []Fields {
	v, ok := f.value(keys...)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Fields, 0, len(arr))
	for _, e := range arr {
		if m, ok := e.(map[string]any); ok {
			out = append(out, Fields(m))
		}
	}
	return out
}

// Strings returns the string elements of an array field.
func (f Fields) Strings(keys ...string) []string {
	v, ok := f.value(keys...)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Faction reads a faction name that moved from a flat string
// ("SystemFaction": "X") to a nested object ("SystemFaction": {"Name": "X"}).
// The nested shape is preferred across all keys before any flat value is
// used; UnknownFaction is returned when neither is present.
func (f Fields) Faction(keys ...string) string {
	for _, k := range keys {
		if o := f.Obj(k); o != nil {
			if name := o.Str("Name"); name != "" {
				return name
			}
		}
	}
	for _, k := range keys {
		if v, ok := f[k].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return UnknownFaction
}

// Vec3 reads a three-element coordinate array such as StarPos.
func (f Fields) Vec3(key string) *Vec3 {
	v, ok := f.value(key)
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 3 {
		return nil
	}
	var out [3]float64
	for i, e := range arr {
		switch n := e.(type) {
		case json.Number:
			fl, err := n.Float64()
			if err != nil {
				return nil
			}
			out[i] = fl
		case float64:
			out[i] = n
		default:
			return nil
		}
	}
	return &Vec3{X: out[0], Y: out[1], Z: out[2]}
}

// Vec3 is a galactic position in light years.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
