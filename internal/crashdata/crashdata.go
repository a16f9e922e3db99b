// Package crashdata holds the in-memory model of a crash report as handed
// out by the crash daemon: an ordered set of named items plus helpers for
// the auxiliary metadata (quality rating, applicable reporting backends).
package crashdata

import (
	"strconv"
	"strings"
)

// Flags describe how a report item may be handled.
type Flags uint32

const (
	// Text marks human-readable content.
	Text Flags = 1 << iota

	// Binary marks content that is a path to binary data (e.g. a core dump).
	Binary

	// Editable allows the operator to change the item while reviewing.
	Editable

	// System marks an item owned by the daemon. It must never be modified,
	// regardless of the Editable flag.
	System
)

// Well-known item names.
const (
	FieldComment      = "comment"
	FieldReproduce    = "reproduce"
	FieldBacktrace    = "backtrace"
	FieldDuphash      = "duphash"
	FieldArchitecture = "architecture"
	FieldCmdline      = "cmdline"
	FieldComponent    = "component"
	FieldCoredump     = "coredump"
	FieldExecutable   = "executable"
	FieldKernel       = "kernel"
	FieldPackage      = "package"
	FieldRating       = "rating"
	FieldReason       = "reason"
	FieldRelease      = "release"

	// FieldEvents is the newline-delimited list of event identifiers
	// applicable to the crash, reporting backends among them.
	FieldEvents = "events"
)

// reporterPrefix selects backends of the reporting kind from the events
// list. An identifier qualifies when it is exactly the prefix or the prefix
// followed by an underscore separator.
const reporterPrefix = "report"

// defaultRating applies when the rating item is missing or unparsable.
const defaultRating = 4

// Item is a single named slot of crash data.
type Item struct {
	Content string
	Flags   Flags
}

// Editable reports whether the operator may change the item.
func (i *Item) Editable() bool { return i.Flags&Editable != 0 }

// System reports whether the item is owned by the daemon.
func (i *Item) System() bool { return i.Flags&System != 0 }

// Report is an ordered collection of crash items keyed by field name.
type Report struct {
	items map[string]*Item
	order []string
}

// New returns an empty report.
func New() *Report {
	return &Report{items: make(map[string]*Item)}
}

// Set stores an item, replacing any previous content and flags under the
// same name. Insertion order is kept for new names.
func (r *Report) Set(name, content string, flags Flags) {
	if _, ok := r.items[name]; !ok {
		r.order = append(r.order, name)
	}

	r.items[name] = &Item{Content: content, Flags: flags}
}

// Get returns the named item, if present.
func (r *Report) Get(name string) (*Item, bool) {
	item, ok := r.items[name]
	return item, ok
}

// Content returns the named item's content, or "" when the item is absent.
func (r *Report) Content(name string) string {
	if item, ok := r.items[name]; ok {
		return item.Content
	}

	return ""
}

// Names returns the field names in insertion order.
func (r *Report) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)

	return names
}

// Len returns the number of items in the report.
func (r *Report) Len() int { return len(r.items) }

// Empty reports whether the report carries no items at all.
func (r *Report) Empty() bool { return len(r.items) == 0 }

// Rating returns the crash quality rating. Ratings run from 0 (useless
// backtrace) upwards; a missing or garbled rating item counts as 4 so that
// reporting is not blocked by a daemon that did not rate the crash.
func (r *Report) Rating() int {
	content := r.Content(FieldRating)
	if content == "" {
		return defaultRating
	}

	rating, err := strconv.Atoi(strings.TrimSpace(content))
	if err != nil || rating < 0 {
		return defaultRating
	}

	return rating
}

// Reporters returns the reporting backends applicable to this crash, in the
// order the daemon listed them. Event identifiers of other kinds (including
// ones merely sharing the "report" prefix without a separator) are ignored.
func (r *Report) Reporters() []string {
	var reporters []string

	for _, line := range strings.Split(r.Content(FieldEvents), "\n") {
		if line == reporterPrefix || strings.HasPrefix(line, reporterPrefix+"_") {
			reporters = append(reporters, line)
		}
	}

	return reporters
}

// EnsureEditorFields inserts the free-text fields the review editor expects
// (comment and reproduction steps) when the daemon did not provide them.
func (r *Report) EnsureEditorFields() {
	if _, ok := r.Get(FieldComment); !ok {
		r.Set(FieldComment, "", Text|Editable)
	}

	if _, ok := r.Get(FieldReproduce); !ok {
		r.Set(FieldReproduce, "1. \n2. \n3. \n", Text|Editable)
	}
}
