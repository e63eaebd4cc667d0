// Package requirements reconciles a single package pin into pip
// requirements files.
//
// # Overview
//
// Given a package name, a desired version and specifier, this package finds
// the requirement files in a directory, decides how each one must change and
// rewrites it in place:
//
//   - [ParseLine]: extracts a [Pin] ("name", "==", "1.0") from one line
//   - [Locate]: expands a glob in a directory, asking a [Chooser] when more
//     than one file matches
//   - [Reconcile]: scans one file and returns a [Decision]
//   - [Apply]: commits a reconciled file atomically
//   - [Updater]: runs the whole flow over every selected file
//
// # Decisions
//
// Reconciliation is a single forward pass that stops at the first decisive
// line, so at most one line is edited per file:
//
//   - [ReplaceExisting]: a pin for the package exists with another version
//   - [NoOpExisting]: a pin exists with the desired version; nothing is written
//   - [ReplacePlaceholder]: a "#wopp" marker line is replaced by the pin
//   - [AppendToEnd]: neither was found; the pin is appended after a blank line
//
// When no specifier is requested, a replaced pin keeps the operator of the
// line it replaces ("pkg~=1.0" becomes "pkg~=2.0"); new lines default to "==".
//
// # Malformed Lines
//
// A non-comment line that does not parse as a pin is ignored under
// [PolicySkip], the default. Under [PolicyStrict] a line that names the
// target package without a parseable pin ("requests", "requests>2") fails
// with an INVALID_FORMAT error instead of silently producing a duplicate.
//
// # Usage
//
//	u := requirements.NewUpdater(requirements.AllChooser{}, logger)
//	results, err := u.Update(ctx, requirements.Options{
//	    Package: "requests",
//	    Version: "2.32.3",
//	    Comment: "http client",
//	    Dir:     ".",
//	    Pattern: requirements.DefaultPattern,
//	})
//
// Files are processed one after another. An error stops the run; files that
// were already written keep their new content.
package requirements
