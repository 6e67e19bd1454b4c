package zolo

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// A hint is a parenthesized annotation after a key, such as
// "port(int):". Without a hint a value is always a string; the hint is
// the only way to obtain a typed value. The set of hints is closed.
type hintEntry struct {
	doc     string
	resolve func(raw string) (Node, string)
}

var (
	versionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)
	ratioPattern   = regexp.MustCompile(`^\d+:\d+$`)
)

// hintTable is initialized once and never mutated, so it is safe to
// share across concurrent parses.
var hintTable = map[string]hintEntry{
	"int": {
		doc: "Coerce the value to a 64-bit integer.",
		resolve: func(raw string) (Node, string) {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Sprintf("cannot parse %q as int", raw)
			}
			return &Integer{Value: v}, ""
		},
	},
	"float": {
		doc: "Coerce the value to a 64-bit floating point number.",
		resolve: func(raw string) (Node, string) {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Sprintf("cannot parse %q as float", raw)
			}
			return &Float{Value: v}, ""
		},
	},
	"bool": {
		doc: "Coerce the value to a boolean. Only the literals true and false are accepted.",
		resolve: func(raw string) (Node, string) {
			switch raw {
			case "true":
				return &Boolean{Value: true}, ""
			case "false":
				return &Boolean{Value: false}, ""
			}
			return nil, fmt.Sprintf("cannot parse %q as bool", raw)
		},
	},
	"str": {
		doc: "Keep the value as a string even if it looks numeric or boolean.",
		resolve: func(raw string) (Node, string) {
			return &String{Value: raw}, ""
		},
	},
	"version": {
		doc: "A dotted version string such as 1.2 or 1.2.3. Stays a string.",
		resolve: func(raw string) (Node, string) {
			if !versionPattern.MatchString(raw) {
				return nil, fmt.Sprintf("cannot parse %q as version", raw)
			}
			return &String{Value: raw}, ""
		},
	},
	"timestamp": {
		doc: "An RFC 3339 timestamp, a date-time, or a plain date. Stays a string.",
		resolve: func(raw string) (Node, string) {
			for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
				if _, err := time.Parse(layout, raw); err == nil {
					return &String{Value: raw}, ""
				}
			}
			return nil, fmt.Sprintf("cannot parse %q as timestamp", raw)
		},
	},
	"time": {
		doc: "A time of day, HH:MM or HH:MM:SS. Stays a string.",
		resolve: func(raw string) (Node, string) {
			for _, layout := range []string{"15:04:05", "15:04"} {
				if _, err := time.Parse(layout, raw); err == nil {
					return &String{Value: raw}, ""
				}
			}
			return nil, fmt.Sprintf("cannot parse %q as time", raw)
		},
	},
	"ratio": {
		doc: "A ratio of two integers such as 16:9. Stays a string.",
		resolve: func(raw string) (Node, string) {
			if !ratioPattern.MatchString(raw) {
				return nil, fmt.Sprintf("cannot parse %q as ratio", raw)
			}
			return &String{Value: raw}, ""
		},
	},
}

// HintNames returns the closed set of hint names in sorted order.
func HintNames() []string {
	names := make([]string, 0, len(hintTable))
	for name := range hintTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HintDoc returns the documentation for a hint name.
func HintDoc(name string) (string, bool) {
	e, ok := hintTable[name]
	if !ok {
		return "", false
	}
	return e.doc, true
}

// resolveHint applies a hint to a raw value. It returns the typed node,
// or a TypeError node plus a non-empty message when coercion fails. An
// empty hint always yields a String.
func resolveHint(raw, hint string) (Node, string) {
	if hint == "" {
		return &String{Value: raw}, ""
	}
	e, ok := hintTable[hint]
	if !ok {
		// Callers diagnose the unknown hint; the value stays a string.
		return &String{Value: raw}, ""
	}
	n, msg := e.resolve(raw)
	if msg != "" {
		return &TypeError{Hint: hint, Raw: raw, Message: msg}, msg
	}
	return n, ""
}

// knownHint reports whether name is in the closed hint set.
func knownHint(name string) bool {
	_, ok := hintTable[name]
	return ok
}
