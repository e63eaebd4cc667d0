package requirements

import "testing"

func TestParseLine(t *testing.T) {
	tests := []struct {
		line   string
		want   Pin
		wantOK bool
	}{
		{"requests==2.31.0", Pin{"requests", "==", "2.31.0"}, true},
		{"django~=4.2", Pin{"django", "~=", "4.2"}, true},
		{"numpy>=1.26", Pin{"numpy", ">=", "1.26"}, true},
		{"urllib3<=2.0.7", Pin{"urllib3", "<=", "2.0.7"}, true},
		{"pkg>=1.0,<2.0", Pin{"pkg", ">=", "1.0"}, true},
		{"requests[security]==2.0", Pin{"requests[security]", "==", "2.0"}, true},
		{"zope.interface==6.0", Pin{"zope.interface", "==", "6.0"}, true},
		{"my_pkg==1.0.dev3", Pin{"my_pkg", "==", "1.0.dev3"}, true},
		{"pkg==1.0  # pinned for py38", Pin{"pkg", "==", "1.0"}, true},
		{"pkg==1.0; python_version<'3.9'", Pin{"pkg", "==", "1.0"}, true},

		{"requests", Pin{}, false},
		{"requests>2.0", Pin{}, false},
		{"requests == 2.0", Pin{}, false},
		{"# requests==2.0", Pin{}, false},
		{"-r base.txt", Pin{}, false},
		{"", Pin{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestPinString(t *testing.T) {
	tests := []struct {
		pin  Pin
		want string
	}{
		{Pin{"requests", "==", "2.0"}, "requests==2.0"},
		{Pin{"requests", "~=", "2.0"}, "requests~=2.0"},
		{Pin{"requests", "", "2.0"}, "requests==2.0"},
		{Pin{"requests", ">=", ""}, "requests"},
	}

	for _, tt := range tests {
		if got := tt.pin.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.pin, got, tt.want)
		}
	}
}

func TestParsePackageArg(t *testing.T) {
	tests := []struct {
		arg  string
		want Pin
	}{
		{"Django==4.2", Pin{"Django", "==", "4.2"}},
		{" flask ", Pin{Name: "flask"}},
		{"httpx~=0.27", Pin{"httpx", "~=", "0.27"}},
		{"rich>13", Pin{Name: "rich>13"}},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			if got := ParsePackageArg(tt.arg); got != tt.want {
				t.Errorf("ParsePackageArg(%q) = %+v, want %+v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestLookupSpecifier(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"ee", "==", false},
		{"le", "<=", false},
		{"GE", ">=", false},
		{"te", "~=", false},
		{"~=", "~=", false},
		{" == ", "==", false},
		{"gt", "", true},
		{">", "", true},
		{"!=", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := LookupSpecifier(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LookupSpecifier(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("LookupSpecifier(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSpecifierTokensResolve(t *testing.T) {
	for _, tok := range SpecifierTokens() {
		if _, err := LookupSpecifier(tok); err != nil {
			t.Errorf("token %q does not resolve: %v", tok, err)
		}
	}
}

func TestParseLines(t *testing.T) {
	lines := ParseLines([]string{"  Django==4.2  ", "", "# requests==1.0", "flask", "-r base.txt"})

	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	tests := []struct {
		blank, comment, parsed bool
		name                   string
	}{
		{parsed: true, name: "django"},
		{blank: true},
		{comment: true},
		{},
		{},
	}
	for i, tt := range tests {
		l := lines[i]
		if l.Index != i {
			t.Errorf("line %d: Index = %d", i, l.Index)
		}
		if l.Blank() != tt.blank || l.Comment() != tt.comment || l.Parsed != tt.parsed {
			t.Errorf("line %d (%q): blank=%v comment=%v parsed=%v", i, l.Raw, l.Blank(), l.Comment(), l.Parsed)
		}
		if tt.parsed && l.Pin.Name != tt.name {
			t.Errorf("line %d: Pin.Name = %q, want %q", i, l.Pin.Name, tt.name)
		}
	}
	if lines[0].Raw != "  Django==4.2  " || lines[0].Text != "django==4.2" {
		t.Errorf("line 0: Raw = %q, Text = %q", lines[0].Raw, lines[0].Text)
	}
}
