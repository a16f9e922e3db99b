package reportfile

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/meztrex/abrt/internal/crashdata"
)

// FieldSep starts every field boundary line in the editable document.
const FieldSep = "%----"

const preamble = "# Please check this report. Lines starting with '#' will be ignored.\n" +
	"# Lines starting with '%----' separate fields, please do not delete them.\n\n"

// fieldOrder fixes the layout of the document. Fields absent from a report
// are skipped; fields present in a report but not listed here are never
// offered for editing.
var fieldOrder = []struct {
	name        string
	description string
}{
	{crashdata.FieldComment, "# Describe the circumstances of this crash below"},
	{crashdata.FieldReproduce, "# How to reproduce the crash?"},
	{crashdata.FieldBacktrace, "# Backtrace\n# Check that it does not contain any sensitive data (passwords, etc.)"},
	{crashdata.FieldDuphash, "# DUPHASH"},
	{crashdata.FieldArchitecture, "# Architecture"},
	{crashdata.FieldCmdline, "# Command line"},
	{crashdata.FieldComponent, "# Component"},
	{crashdata.FieldCoredump, "# Core dump"},
	{crashdata.FieldExecutable, "# Executable"},
	{crashdata.FieldKernel, "# Kernel version"},
	{crashdata.FieldPackage, "# Package"},
	{crashdata.FieldReason, "# Reason of crash"},
	{crashdata.FieldRelease, "# Release string of the operating system"},
}

// Serialize renders the report as a commented document for review in a text
// editor. Every field is optional; system-owned fields are never written.
func Serialize(r *crashdata.Report) string {
	var b strings.Builder
	b.WriteString(preamble)

	for _, f := range fieldOrder {
		writeField(&b, r, f.name, f.description)
	}

	return b.String()
}

func writeField(b *strings.Builder, r *crashdata.Report, name, description string) {
	item, ok := r.Get(name)
	if !ok {
		return
	}

	if item.System() {
		slog.Warn("cannot write field because it is a system value", "field", name)
		return
	}

	fmt.Fprintf(b, "%s%s\n", FieldSep, name)
	b.WriteString(description)
	b.WriteByte('\n')

	if !item.Editable() {
		b.WriteString("# This field is read only\n")
	}

	b.WriteString(Encode(item.Content))
	b.WriteByte('\n')
}

// Deserialize applies operator edits from text back onto r and returns the
// number of fields whose content actually changed. The text must already be
// comment-stripped and unescaped (see Decode). Edits to read-only fields are
// dropped silently; edits to system-owned fields are dropped with a warning.
// Changes confined to leading or trailing whitespace do not count.
func Deserialize(text string, r *crashdata.Report) int {
	changed := 0

	for _, f := range fieldOrder {
		if readField(text, r, f.name) {
			changed++
		}
	}

	return changed
}

func readField(text string, r *crashdata.Report, name string) bool {
	// A leading newline lets the separator match a field at the very start
	// of the document, where editing removed the preamble's blank line.
	doc := "\n" + text

	sep := "\n" + FieldSep + name + "\n"
	start := strings.Index(doc, sep)
	if start < 0 {
		return false
	}

	body := doc[start+len(sep):]
	if end := strings.Index(body, "\n"+FieldSep); end >= 0 {
		body = body[:end]
	}

	item, ok := r.Get(name)
	if !ok {
		slog.Warn("field not found in report", "field", name)
		return false
	}

	if item.System() {
		slog.Warn("cannot update field because it is a system value", "field", name)
		return false
	}

	if !item.Editable() {
		return false
	}

	content := strings.TrimSpace(body)
	if content == strings.TrimSpace(item.Content) {
		return false
	}

	item.Content = content

	return true
}
