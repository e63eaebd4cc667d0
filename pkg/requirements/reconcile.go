package requirements

import (
	"slices"
	"strings"

	"github.com/matzehuels/wopp/pkg/errors"
)

// PlaceholderMarker is the sentinel line replaced by a new pin. Matching
// ignores case and all whitespace, so "# WOPP" is a marker too.
const PlaceholderMarker = "#wopp"

// Kind identifies the edit chosen for a file.
type Kind int

const (
	// AppendToEnd appends the pin after a blank line.
	AppendToEnd Kind = iota
	// ReplaceExisting rewrites an existing pin with a new version.
	ReplaceExisting
	// NoOpExisting leaves the file untouched: the pin is already current.
	NoOpExisting
	// ReplacePlaceholder substitutes the pin for a placeholder marker line.
	ReplacePlaceholder
)

// String returns a short lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case AppendToEnd:
		return "append"
	case ReplaceExisting:
		return "replace"
	case NoOpExisting:
		return "unchanged"
	case ReplacePlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Changes reports whether the kind mutates the file.
func (k Kind) Changes() bool { return k != NoOpExisting }

// Policy controls how lines that fail to parse are treated.
type Policy int

const (
	// PolicySkip ignores unparseable non-comment lines.
	PolicySkip Policy = iota
	// PolicyStrict rejects unparseable lines that name the target package.
	PolicyStrict
)

// Requirement is the desired state of a single package.
type Requirement struct {
	Name      string // Package name, matched case-insensitively
	Version   string // Desired version; empty means "unpinned"
	Specifier string // Desired operator; empty inherits or defaults to ==
	Comment   string // Optional comment written on its own line above the pin
}

// Decision is the edit chosen for one file.
type Decision struct {
	Kind  Kind
	Index int    // Line index acted on; -1 for AppendToEnd
	Text  string // Text written; empty for NoOpExisting
	Prior string // The line that triggered the decision, as written in the file
}

// Result is a reconciled file: the decision plus the edited line buffer.
type Result struct {
	Decision Decision
	Lines    []string
}

// Content joins the edited lines back into file content.
func (r Result) Content() string { return JoinLines(r.Lines) }

// SplitLines splits file content on "\n". Joining the result with
// [JoinLines] reproduces content byte for byte; a trailing newline shows up
// as a final empty element.
func SplitLines(content string) []string {
	return strings.Split(content, "\n")
}

// JoinLines is the inverse of [SplitLines].
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Reconcile decides how lines must change so that they pin want.
//
// It walks the lines once and acts on the first decisive one: an existing
// pin for the package (replace, or no-op when the version already matches)
// or a placeholder marker. Later lines are never touched. When neither is
// found the pin is appended. The input slice is not modified.
//
// Reconcile only returns an error under [PolicyStrict].
func Reconcile(lines []string, want Requirement, policy Policy) (Result, error) {
	target := strings.ToLower(strings.TrimSpace(want.Name))
	desired := strings.ToLower(strings.TrimSpace(want.Version))

	for _, l := range ParseLines(lines) {
		if l.Blank() {
			continue
		}

		if !l.Comment() {
			if !l.Parsed {
				if policy == PolicyStrict && leadingName(l.Text) == target {
					return Result{}, errors.New(errors.ErrCodeInvalidFormat,
						"line %d names %s but has no version pin: %q", l.Index+1, want.Name, strings.TrimSpace(l.Raw))
				}
				continue
			}
			if l.Pin.Name != target {
				continue
			}
			if desired != "" && desired == l.Pin.Version {
				return Result{
					Decision: Decision{Kind: NoOpExisting, Index: l.Index, Prior: l.Raw},
					Lines:    lines,
				}, nil
			}
			op := want.Specifier
			if op == "" {
				op = l.Pin.Specifier
			}
			return replaceAt(lines, l.Index, ReplaceExisting, format(want, op)), nil
		}

		if isPlaceholder(l.Text) {
			return replaceAt(lines, l.Index, ReplacePlaceholder, format(want, want.Specifier)), nil
		}
	}

	text := format(want, want.Specifier)
	return Result{
		Decision: Decision{Kind: AppendToEnd, Index: -1, Text: text},
		Lines:    appendPin(lines, text),
	}, nil
}

// FormatRequirement renders want as it is written into a file: an optional
// "# comment" line followed by the pin. An empty op defaults to "==".
func FormatRequirement(want Requirement, op string) string {
	return format(want, op)
}

func format(want Requirement, op string) string {
	pin := Pin{Name: strings.TrimSpace(want.Name), Specifier: op, Version: strings.TrimSpace(want.Version)}
	if c := strings.TrimSpace(want.Comment); c != "" {
		return "# " + c + "\n" + pin.String()
	}
	return pin.String()
}

func isPlaceholder(line string) bool {
	return strings.Join(strings.Fields(line), "") == PlaceholderMarker
}

// replaceAt copies lines and swaps line i for text. CRLF files keep their
// line endings for every line of text.
func replaceAt(lines []string, i int, kind Kind, text string) Result {
	out := make([]string, len(lines))
	copy(out, lines)
	written := text
	if strings.HasSuffix(lines[i], "\r") {
		written = strings.ReplaceAll(text, "\n", "\r\n") + "\r"
	}
	out[i] = written
	return Result{
		Decision: Decision{Kind: kind, Index: i, Text: text, Prior: lines[i]},
		Lines:    out,
	}
}

// appendPin adds text after a blank separator line and ends the file with a
// newline. A file without a final newline gets one first so the separator
// is a real blank line. Files with CRLF endings get CRLF throughout.
func appendPin(lines []string, text string) []string {
	n := len(lines)
	if n > 0 && lines[n-1] == "" {
		n--
	}
	out := make([]string, 0, n+3)
	out = append(out, lines[:n]...)

	eol := ""
	if slices.ContainsFunc(out, func(l string) bool { return strings.HasSuffix(l, "\r") }) {
		eol = "\r"
		text = strings.ReplaceAll(text, "\n", "\r\n")
		if !strings.HasSuffix(out[n-1], "\r") {
			out[n-1] += "\r"
		}
	}
	return append(out, eol, text+eol, "")
}
