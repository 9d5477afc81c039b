package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vnv-dev/vnv/pkg/parsing"
)

const sample = "@min(1)\n@public\nA=\"x\"\n@prod\nB=[1, 2]\n@dev\nC=3"

func TestDotenv(t *testing.T) {
	result := parsing.Parse(sample)

	tests := []struct {
		name string
		opts DotenvOptions
		want string
	}{
		{
			name: "dev with comments",
			opts: DotenvOptions{Source: ".vnv", Target: parsing.EnvironmentDev},
			want: "# This file was generated from '.vnv' by vnv.\n\n" +
				"# @min(1)\n# @public\nA=\"x\"\n" +
				"# @dev\nC=3\n",
		},
		{
			name: "prod minified",
			opts: DotenvOptions{Source: ".vnv", Minify: true, Target: parsing.EnvironmentProd},
			want: "A=\"x\"\nB=[1, 2]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Dotenv(&buf, result.Keys, tt.opts); err != nil {
				t.Fatalf("Dotenv() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDotenv_ValuesRoundTrip(t *testing.T) {
	src := "N=2.5\nS=\"hello world\"\nL=[\"a,b\", \"c\"]\nM=[1, 2, 3]"
	first := parsing.Parse(src)

	var buf bytes.Buffer
	if err := Dotenv(&buf, first.Keys, DotenvOptions{Minify: true}); err != nil {
		t.Fatalf("Dotenv() error = %v", err)
	}

	second := parsing.Parse(buf.String())
	for _, k := range first.Keys {
		got, ok := second.Key(k.Name)
		if !ok {
			t.Fatalf("key %s lost in output %q", k.Name, buf.String())
		}
		if diff := cmp.Diff(k.Value, got.Value); diff != "" {
			t.Errorf("%s value changed (-before +after):\n%s", k.Name, diff)
		}
	}
}

func TestTemplate(t *testing.T) {
	result := parsing.Parse(sample)

	var buf bytes.Buffer
	if err := Template(&buf, result.Keys); err != nil {
		t.Fatalf("Template() error = %v", err)
	}

	want := "@min(1)\n@public\nA\n@prod\nB\n@dev\nC\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	tmpl := parsing.ParseTemplate(buf.String())
	if len(tmpl.Errors) != 0 {
		t.Fatalf("template does not parse back: %v", tmpl.Errors)
	}
	for _, k := range result.Keys {
		entry, ok := tmpl.Entry(k.Name)
		if !ok {
			t.Fatalf("entry %s missing", k.Name)
		}
		if diff := cmp.Diff(Declarations(k.Decorators), Declarations(entry.Declarations)); diff != "" {
			t.Errorf("%s declarations differ (-source +template):\n%s", k.Name, diff)
		}
	}
}

func report(t *testing.T, content string, opts ReportOptions, extra ...Located) (string, bool) {
	t.Helper()
	opts.NoColor = true
	if opts.Source == "" {
		opts.Source = ".vnv"
	}
	var buf bytes.Buffer
	valid := NewReporter(&buf, opts).Report(parsing.Parse(content), extra)
	return buf.String(), valid
}

func TestReport_ValidationError(t *testing.T) {
	out, valid := report(t, "@min(5)\nSOMETHING=abcd\nOK=1", ReportOptions{})

	want := "Checking '.vnv'...\n" +
		"SOMETHING ✘\n" +
		"ERROR: 'abcd' is too short. Minimum length is 5.\n" +
		"--> .vnv:2:1\n" +
		"     |\n" +
		" 2   |  SOMETHING=\"abcd\"\n" +
		"     |  " + strings.Repeat(" ", 10) + "^^^^^^\n" +
		"\n" +
		"OK ✔\n"

	if valid {
		t.Error("expected report to fail")
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestReport_Cloak(t *testing.T) {
	out, _ := report(t, "@min(5)\nSOMETHING=abcd", ReportOptions{Cloak: true})

	if strings.Contains(out, "abcd") {
		t.Errorf("cloaked report leaks the value:\n%s", out)
	}
	for _, want := range []string{
		"ERROR: '****' is too short. Minimum length is 5.\n",
		"SOMETHING=******\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report does not contain %q:\n%s", want, out)
		}
	}
}

func TestReport_SkipsOtherEnvironments(t *testing.T) {
	out, valid := report(t, "@prod\n@min(5)\nP=1\nA=1", ReportOptions{Target: parsing.EnvironmentDev})

	if !valid {
		t.Errorf("keys outside the target must not fail the check:\n%s", out)
	}
	want := "Checking '.vnv'...\nP (skipped)\nA ✔\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestReport_FileLevelDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		content string
		extra   []Located
		want    string
		valid   bool
	}{
		{
			name:    "invalid decorator",
			content: "@nope\nA=1",
			want:    "Checking '.vnv'...\nA ✔\nERROR: Invalid decorator 'nope'\n--> .vnv:1:1\n",
		},
		{
			name:    "duplicate warning",
			content: "A=1\nA=2",
			want:    "Checking '.vnv'...\nA ✔\nWARN: Duplicate key 'A'\n--> .vnv:2:1\n",
			valid:   true,
		},
		{
			name:    "extra errors",
			content: "A=1",
			extra: []Located{{
				File:       ".vnv.template",
				ParseError: parsing.ParseError{Message: "Key 'B' is missing", Position: parsing.Position{Line: 3, Column: 1}},
			}},
			want: "Checking '.vnv'...\nA ✔\nERROR: Key 'B' is missing\n--> .vnv.template:3:1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, valid := report(t, tt.content, ReportOptions{}, tt.extra...)
			if valid != tt.valid {
				t.Errorf("valid = %v, want %v", valid, tt.valid)
			}
			if diff := cmp.Diff(tt.want, out); diff != "" {
				t.Errorf("report mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    string
		carets  string
	}{
		{
			name:    "array element",
			content: "@max(5)\nS=[\"iiiiii\",\"iiiii\"]",
			line:    `S=["iiiiii", "iiiii"]`,
			carets:  "   ^^^^^^^^",
		},
		{
			name:    "element that is a substring of an earlier one",
			content: "@min(5)\nK=[10, 1]",
			line:    "K=[10, 1]",
			carets:  "       ^",
		},
		{
			name:    "number",
			content: "@min(10)\nN=3",
			line:    "N=3",
			carets:  "  ^",
		},
		{
			name:    "wide characters",
			content: "@startsWith(\"x\")\nW=[\"日本\", \"x\"]",
			line:    `W=["日本", "x"]`,
			carets:  "   ^^^^^^",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parsing.Parse(tt.content)
			k := result.Keys[0]
			if len(k.Errors) == 0 {
				t.Fatalf("expected a validation error for %q", tt.content)
			}
			line, carets := excerpt(k, k.Errors[0], false)
			if line != tt.line {
				t.Errorf("line = %q, want %q", line, tt.line)
			}
			if carets != tt.carets {
				t.Errorf("carets = %q, want %q", carets, tt.carets)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "text": FormatText, "json": FormatJSON, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestEncode(t *testing.T) {
	result := parsing.Parse("@public\nA=[1, 2]")

	tests := []struct {
		format Format
		want   []string
	}{
		{FormatJSON, []string{`"valid": true`, `"scope": "public"`, `"name": "A"`}},
		{FormatYAML, []string{"valid: true", "scope: public", "name: A"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, tt.format, result); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output does not contain %q:\n%s", want, buf.String())
				}
			}
		})
	}

	if err := Encode(&bytes.Buffer{}, FormatText, result); err == nil {
		t.Error("expected error for text format")
	}
}

func TestEncode_NonFiniteNumbers(t *testing.T) {
	result := parsing.Parse("@min(inf)\nKEY=1\nRATIO=NaN\nLIMITS=[1, -inf]")

	for _, format := range []Format{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		if err := Encode(&buf, format, result); err != nil {
			t.Fatalf("Encode(%s) error = %v", format, err)
		}
		if format != FormatJSON {
			continue
		}
		for _, want := range []string{`"+Inf"`, `"NaN"`, `"-Inf"`} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("output does not contain %s:\n%s", want, buf.String())
			}
		}
	}
}
