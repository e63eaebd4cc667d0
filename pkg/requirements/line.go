package requirements

import (
	"regexp"
	"strings"
)

var (
	pinRE       = regexp.MustCompile(`^([A-Za-z0-9\[\]\-_.]+)(==|~=|>=|<=)([A-Za-z0-9\-_.]+)`)
	nameTokenRE = regexp.MustCompile(`^[A-Za-z0-9\[\]\-_.]+`)
)

// Pin is a parsed requirement line: a package name with one version
// specifier.
type Pin struct {
	Name      string // Package name as written, extras included ("requests[socks]")
	Specifier string // One of ==, <=, >=, ~=
	Version   string // Version string (may be empty for a bare name)
}

// String formats the pin as it appears in a requirements file.
// A pin without a version formats as the bare name.
func (p Pin) String() string {
	if p.Version == "" {
		return p.Name
	}
	op := p.Specifier
	if op == "" {
		op = DefaultOperator
	}
	return p.Name + op + p.Version
}

// ParseLine extracts a pin from a single trimmed line.
//
// The line must start with "<name><op><version>" where name is made of
// letters, digits, "[", "]", "-", "_" and "." and version of letters,
// digits, "-", "_" and ".". Anything after the version (environment
// markers, trailing comments, further constraints) is ignored.
// Lines that do not match return ok=false; ParseLine never fails.
func ParseLine(line string) (Pin, bool) {
	m := pinRE.FindStringSubmatch(line)
	if m == nil {
		return Pin{}, false
	}
	return Pin{Name: m[1], Specifier: m[2], Version: m[3]}, true
}

// ParsePackageArg splits a command-line package argument such as
// "django==4.2" into its parts. An argument that is not a pin is returned
// as a bare name.
func ParsePackageArg(arg string) Pin {
	arg = strings.TrimSpace(arg)
	if p, ok := ParseLine(arg); ok {
		return p
	}
	return Pin{Name: arg}
}

// Line is one line of a requirements file prepared for matching.
type Line struct {
	Index  int    // Zero-based position in the file
	Raw    string // Text as read
	Text   string // Trimmed, lower-cased text
	Pin    Pin    // Parsed pin; meaningful only when Parsed is true
	Parsed bool
}

// Blank reports whether the line is empty or whitespace.
func (l Line) Blank() bool { return l.Text == "" }

// Comment reports whether the line is a comment.
func (l Line) Comment() bool { return strings.HasPrefix(l.Text, "#") }

// ParseLines prepares every line for matching. Comment and blank lines are
// never parsed as pins.
func ParseLines(lines []string) []Line {
	out := make([]Line, len(lines))
	for i, raw := range lines {
		l := Line{Index: i, Raw: raw, Text: strings.ToLower(strings.TrimSpace(raw))}
		if !l.Blank() && !l.Comment() {
			l.Pin, l.Parsed = ParseLine(l.Text)
		}
		out[i] = l
	}
	return out
}

// leadingName returns the package-name token at the start of line.
func leadingName(line string) string {
	return nameTokenRE.FindString(line)
}
