package report

import "errors"

var (
	// ErrNotFound means the crash id did not resolve to any report data.
	ErrNotFound = errors.New("crash not found")

	// ErrTemporaryResource means the editable document could not be
	// written, read back or closed; the report is left untouched.
	ErrTemporaryResource = errors.New("temporary report file failure")

	// ErrEditorUnavailable means no usable editor could be determined or
	// the editor could not be launched.
	ErrEditorUnavailable = errors.New("editor unavailable")

	// ErrReportFailed means at least one backend reported failure.
	ErrReportFailed = errors.New("reporting failed")
)
