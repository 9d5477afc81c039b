package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/vnv-dev/vnv/pkg/config"
	"github.com/vnv-dev/vnv/pkg/parsing"
	"github.com/vnv-dev/vnv/pkg/render"
	"github.com/vnv-dev/vnv/pkg/telemetry"
)

type fixture struct {
	runner *Runner
	fs     afero.Fs
	out    *bytes.Buffer
}

func newFixture(t *testing.T, files map[string]string, settings config.Settings, prompter Prompter) *fixture {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	out := &bytes.Buffer{}
	runner := NewRunner(Options{
		Fs:       fs,
		Settings: settings,
		Logger:   telemetry.New(zerolog.New(io.Discard)),
		Out:      out,
		Prompter: prompter,
		NoColor:  true,
	})
	return &fixture{runner: runner, fs: fs, out: out}
}

func (f *fixture) read(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func (f *fixture) exists(t *testing.T, path string) bool {
	t.Helper()
	ok, err := afero.Exists(f.fs, path)
	if err != nil {
		t.Fatalf("failed to stat %s: %v", path, err)
	}
	return ok
}

func TestRunner_CheckValid(t *testing.T) {
	f := newFixture(t, map[string]string{".vnv": "@min(1)\nA=1"}, config.Default(), nil)

	report, err := f.runner.Check(context.Background(), CheckOptions{Target: parsing.EnvironmentDev})
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if !report.Valid {
		t.Error("expected valid report")
	}
	for _, want := range []string{"Checking '.vnv'...\n", "A ✔\n", "Completed in "} {
		if !strings.Contains(f.out.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, f.out.String())
		}
	}
}

func TestRunner_CheckInvalid(t *testing.T) {
	f := newFixture(t, map[string]string{".vnv": "@min(5)\nA=abcd"}, config.Default(), nil)

	report, err := f.runner.Check(context.Background(), CheckOptions{Target: parsing.EnvironmentDev})
	if !IsInvalidSource(err) {
		t.Fatalf("expected invalid source error, got %v", err)
	}
	if report == nil || report.Valid {
		t.Fatalf("expected an invalid report, got %+v", report)
	}
	if !strings.Contains(f.out.String(), "ERROR: 'abcd' is too short. Minimum length is 5.") {
		t.Errorf("diagnostic missing from output:\n%s", f.out.String())
	}
	if !strings.Contains(f.out.String(), "Check completed in ") {
		t.Errorf("summary missing from output:\n%s", f.out.String())
	}
}

func TestRunner_CheckMissingSource(t *testing.T) {
	f := newFixture(t, nil, config.Default(), nil)

	_, err := f.runner.Check(context.Background(), CheckOptions{})
	if !IsIO(err) {
		t.Fatalf("expected I/O error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Couldn't find a file at .vnv") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestRunner_CheckCancelled(t *testing.T) {
	f := newFixture(t, map[string]string{".vnv": "A=1"}, config.Default(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.runner.Check(ctx, CheckOptions{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if f.out.Len() != 0 {
		t.Errorf("cancelled check printed output:\n%s", f.out.String())
	}
}

func TestRunner_CheckJSON(t *testing.T) {
	f := newFixture(t, map[string]string{".vnv": "@prod\nA=1"}, config.Default(), nil)

	if _, err := f.runner.Check(context.Background(), CheckOptions{Target: parsing.EnvironmentProd, Format: render.FormatJSON}); err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	var got struct {
		Source string `json:"source"`
		Target string `json:"target"`
		Valid  bool   `json:"valid"`
		Result struct {
			Keys []struct {
				Name        string `json:"name"`
				Environment string `json:"environment"`
			} `json:"keys"`
		} `json:"result"`
	}
	if err := json.Unmarshal(f.out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, f.out.String())
	}
	if got.Source != ".vnv" || got.Target != "prod" || !got.Valid {
		t.Errorf("unexpected report header %+v", got)
	}
	if len(got.Result.Keys) != 1 || got.Result.Keys[0].Environment != "prod" {
		t.Errorf("unexpected keys %+v", got.Result.Keys)
	}
}

func TestRunner_CheckTemplate(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		template string
		want     []string
	}{
		{
			name:     "matching",
			source:   "@public\n@min(1)\nA=1",
			template: "@min(1)\n@public\nA",
		},
		{
			name:     "missing and undeclared keys",
			source:   "@min(1)\nA=1\nB=2",
			template: "@min(1)\nA\nC",
			want: []string{
				"Key 'C' is declared in the template but missing from the source",
				"Key 'B' is not declared in the template",
			},
		},
		{
			name:     "different decorators",
			source:   "@public\nA=1",
			template: "@min(1)\nA",
			want:     []string{"Decorators of key 'A' do not match the template: expected @min(1), found @public"},
		},
		{
			name:     "invalid template decorator",
			source:   "A=1",
			template: "@nope\nA",
			want: []string{
				"Invalid decorator 'nope'",
				"Decorators of key 'A' do not match the template: expected @nope, found none",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := config.Default()
			settings.Template = config.DefaultTemplate
			f := newFixture(t, map[string]string{
				".vnv":          tt.source,
				".vnv.template": tt.template,
			}, settings, nil)

			report, err := f.runner.Check(context.Background(), CheckOptions{Target: parsing.EnvironmentDev})
			if len(tt.want) == 0 {
				if err != nil {
					t.Fatalf("Check() error = %v\n%s", err, f.out.String())
				}
			} else if !IsInvalidSource(err) {
				t.Fatalf("expected invalid source error, got %v", err)
			}

			got := make([]string, 0, len(report.Template))
			for _, m := range report.Template {
				got = append(got, m.Message)
			}
			if diff := cmp.Diff(tt.want, got); len(tt.want) > 0 && diff != "" {
				t.Errorf("mismatches (-want +got):\n%s", diff)
			}
			if len(tt.want) == 0 && len(got) != 0 {
				t.Errorf("expected no mismatches, got %v", got)
			}
		})
	}
}

func TestRunner_CheckTemplateLocations(t *testing.T) {
	settings := config.Default()
	settings.Template = "env.template"
	f := newFixture(t, map[string]string{
		".vnv":         "A=1",
		"env.template": "A\nB",
	}, settings, nil)

	_, _ = f.runner.Check(context.Background(), CheckOptions{})
	if !strings.Contains(f.out.String(), "--> env.template:2:1\n") {
		t.Errorf("missing key should point into the template:\n%s", f.out.String())
	}
}

func TestRunner_CheckConfiguredTemplateMissing(t *testing.T) {
	settings := config.Default()
	settings.Template = config.DefaultTemplate
	f := newFixture(t, map[string]string{".vnv": "A=1"}, settings, nil)

	if _, err := f.runner.Check(context.Background(), CheckOptions{}); err != nil {
		t.Fatalf("a missing template file should be ignored, got %v", err)
	}
}

const buildSource = "@min(1)\n@public\nA=\"x\"\n@prod\nB=[1, 2]\n@dev\nC=3"

func TestRunner_Build(t *testing.T) {
	tests := []struct {
		name   string
		minify bool
		target parsing.Environment
		want   string
	}{
		{
			name:   "dev",
			target: parsing.EnvironmentDev,
			want: "# This file was generated from '.vnv' by vnv.\n\n" +
				"# @min(1)\n# @public\nA=\"x\"\n# @dev\nC=3\n",
		},
		{
			name:   "prod minified",
			minify: true,
			target: parsing.EnvironmentProd,
			want:   "A=\"x\"\nB=[1, 2]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := config.Default()
			settings.Build.Minify = tt.minify
			f := newFixture(t, map[string]string{".vnv": buildSource}, settings, nil)

			if err := f.runner.Build(context.Background(), BuildOptions{Target: tt.target}); err != nil {
				t.Fatalf("Build() error = %v\n%s", err, f.out.String())
			}
			if diff := cmp.Diff(tt.want, f.read(t, ".env")); diff != "" {
				t.Errorf(".env mismatch (-want +got):\n%s", diff)
			}
			if !strings.Contains(f.out.String(), "Completed build wrote output to .env.") {
				t.Errorf("completion message missing:\n%s", f.out.String())
			}
		})
	}
}

func TestRunner_BuildInvalidWritesNothing(t *testing.T) {
	f := newFixture(t, map[string]string{".vnv": "@min(5)\nA=abcd"}, config.Default(), nil)

	err := f.runner.Build(context.Background(), BuildOptions{Target: parsing.EnvironmentDev})
	if !IsInvalidSource(err) {
		t.Fatalf("expected invalid source error, got %v", err)
	}
	if f.exists(t, ".env") {
		t.Error("build wrote output for an invalid source")
	}
}

func TestRunner_BuildIgnoresOtherEnvironments(t *testing.T) {
	f := newFixture(t, map[string]string{".vnv": "@prod\n@min(5)\nP=1\nA=1"}, config.Default(), nil)

	if err := f.runner.Build(context.Background(), BuildOptions{Target: parsing.EnvironmentDev}); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if strings.Contains(f.read(t, ".env"), "P=") {
		t.Error("prod key written to dev build")
	}
}

func TestRunner_Template(t *testing.T) {
	f := newFixture(t, map[string]string{".vnv": "@matches(\"bar\")\nFOO=\"bar\"\nBAR=1"}, config.Default(), nil)

	if err := f.runner.Template(context.Background(), TemplateOptions{}); err != nil {
		t.Fatalf("Template() error = %v", err)
	}

	if diff := cmp.Diff("@matches(\"bar\")\nFOO\nBAR\n", f.read(t, config.DefaultTemplate)); diff != "" {
		t.Errorf("template mismatch (-want +got):\n%s", diff)
	}

	saved, err := config.NewLoader(f.fs).Load(config.DefaultPath)
	if err != nil {
		t.Fatalf("failed to load saved settings: %v", err)
	}
	if saved.Template != config.DefaultTemplate {
		t.Errorf("settings template = %q, want %q", saved.Template, config.DefaultTemplate)
	}
	if !strings.Contains(f.out.String(), "Wrote template path to config file.") {
		t.Errorf("output missing settings notice:\n%s", f.out.String())
	}
}

func TestRunner_TemplateConfiguredPathNotSaved(t *testing.T) {
	settings := config.Default()
	settings.Template = "custom.template"
	f := newFixture(t, map[string]string{".vnv": "A=1"}, settings, nil)

	if err := f.runner.Template(context.Background(), TemplateOptions{}); err != nil {
		t.Fatalf("Template() error = %v", err)
	}
	if got := f.read(t, "custom.template"); got != "A\n" {
		t.Errorf("template = %q, want %q", got, "A\n")
	}
	if f.exists(t, config.DefaultPath) {
		t.Error("settings written although the template path was configured")
	}
}

func TestRunner_TemplateOverwrite(t *testing.T) {
	files := map[string]string{
		".vnv":                 "A=1",
		config.DefaultTemplate: "OLD\n",
	}

	t.Run("declined", func(t *testing.T) {
		f := newFixture(t, files, config.Default(), NewLinePrompter(strings.NewReader("n\n"), io.Discard, true))
		err := f.runner.Template(context.Background(), TemplateOptions{})
		if !IsAborted(err) {
			t.Fatalf("expected aborted error, got %v", err)
		}
		if got := f.read(t, config.DefaultTemplate); got != "OLD\n" {
			t.Errorf("template changed to %q", got)
		}
	})

	t.Run("yes flag", func(t *testing.T) {
		f := newFixture(t, files, config.Default(), NewLinePrompter(strings.NewReader("n\n"), io.Discard, true))
		if err := f.runner.Template(context.Background(), TemplateOptions{Yes: true}); err != nil {
			t.Fatalf("Template() error = %v", err)
		}
		if got := f.read(t, config.DefaultTemplate); got != "A\n" {
			t.Errorf("template = %q, want %q", got, "A\n")
		}
	})
}

func TestRunner_TemplateRefusesInvalidSource(t *testing.T) {
	f := newFixture(t, map[string]string{".vnv": "@min(5)\nA=abcd"}, config.Default(), nil)

	err := f.runner.Template(context.Background(), TemplateOptions{})
	if !IsInvalidSource(err) {
		t.Fatalf("expected invalid source error, got %v", err)
	}
	if f.exists(t, config.DefaultTemplate) {
		t.Error("template written for an invalid source")
	}
	if !strings.Contains(f.out.String(), "Error: .vnv not valid.") {
		t.Errorf("output missing error notice:\n%s", f.out.String())
	}
}

func TestRunner_InitYes(t *testing.T) {
	f := newFixture(t, nil, config.Default(), nil)

	if err := f.runner.Init(context.Background(), InitOptions{Yes: true}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if got := f.read(t, ".vnv"); got != DefaultSourceContent {
		t.Errorf("source = %q, want %q", got, DefaultSourceContent)
	}
	if got := f.read(t, config.DefaultTemplate); got != DefaultTemplateContent {
		t.Errorf("template = %q, want %q", got, DefaultTemplateContent)
	}

	saved, err := config.NewLoader(f.fs).Load(config.DefaultPath)
	if err != nil {
		t.Fatalf("failed to load saved settings: %v", err)
	}
	want := config.Default()
	want.Template = config.DefaultTemplate
	if diff := cmp.Diff(want, saved); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	// The scaffolded files must pass a check against each other.
	checker := NewRunner(Options{Fs: f.fs, Settings: saved, Out: io.Discard})
	if _, err := checker.Check(context.Background(), CheckOptions{}); err != nil {
		t.Errorf("scaffolded files fail check: %v", err)
	}
}

func TestRunner_InitInteractive(t *testing.T) {
	answers := strings.Join([]string{
		"app.vnv", // source path
		"y",       // use a template
		"",        // default template path
	}, "\n") + "\n"
	f := newFixture(t, nil, config.Default(), NewLinePrompter(strings.NewReader(answers), io.Discard, true))

	if err := f.runner.Init(context.Background(), InitOptions{}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if !f.exists(t, "app.vnv") || !f.exists(t, config.DefaultTemplate) {
		t.Fatal("expected source and template to be created")
	}
	if s := f.runner.Settings(); s.Source != "app.vnv" || s.Template != config.DefaultTemplate {
		t.Errorf("settings = %+v", s)
	}
}

func TestRunner_InitKeepsExistingSource(t *testing.T) {
	answers := "\nn\nn\n" // default path, keep source, no template
	f := newFixture(t, map[string]string{".vnv": "MINE=1"}, config.Default(),
		NewLinePrompter(strings.NewReader(answers), io.Discard, true))

	if err := f.runner.Init(context.Background(), InitOptions{}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if got := f.read(t, ".vnv"); got != "MINE=1" {
		t.Errorf("source overwritten: %q", got)
	}
	if f.exists(t, config.DefaultTemplate) {
		t.Error("template created although declined")
	}
	if !strings.Contains(f.out.String(), "Keeping existing source file at .vnv") {
		t.Errorf("output missing notice:\n%s", f.out.String())
	}
}

func TestDefaultContent(t *testing.T) {
	if want := "@matches(\"bar\")\nFOO=\"bar\"\n"; DefaultSourceContent != want {
		t.Errorf("DefaultSourceContent = %q, want %q", DefaultSourceContent, want)
	}
	if !strings.HasSuffix(DefaultTemplateContent, "\n\n@matches(\"bar\")\nFOO\n") {
		t.Errorf("DefaultTemplateContent = %q", DefaultTemplateContent)
	}
	if !strings.HasPrefix(DefaultTemplateContent, "# Use this file") {
		t.Errorf("DefaultTemplateContent = %q", DefaultTemplateContent)
	}
}
