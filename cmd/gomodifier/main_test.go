package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseArg(t *testing.T) {
	tests := []struct {
		raw  string
		want interface{}
	}{
		{"5", float64(5)},
		{`"5"`, "5"},
		{"abc", "abc"},
		{"true", true},
		{"null", nil},
		{`["a",1]`, []interface{}{"a", float64(1)}},
		{"", ""},
		{"yyyy-MM-dd", "yyyy-MM-dd"},
	}
	for _, tt := range tests {
		if got := parseArg(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseArg(%q) = %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}

func TestApplyCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"pad", []string{"apply", "leftPad", "ab", "5", `"0"`}, "\"000ab\"\n"},
		{"substring", []string{"apply", "substring", "hello", "1", "3"}, "\"el\"\n"},
		{"split", []string{"apply", "split", ",", "a,b"}, "[\"a\",\"b\"]\n"},
		{"empty", []string{"apply", "substring", "hello", "3", "1"}, emptyOutput + "\n"},
		{"locale", []string{"--locale", "tr", "apply", "toUpperCase", "istanbul"}, "\"İSTANBUL\"\n"},
		{"date", []string{"apply", "transformDate", `"1700000000"`, "EPOCH_SECOND", "yyyy-MM-dd"}, "\"2023-11-14\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyStrict(t *testing.T) {
	_, err := execute(t, "apply", "--strict", "substring", "hello", "3", "1")
	var exit *exitError
	if !errors.As(err, &exit) || exit.code != 2 {
		t.Errorf("error = %v, want exit status 2", err)
	}
}

func TestApplyUnknownFunction(t *testing.T) {
	if _, err := execute(t, "apply", "nope"); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Errorf("error = %v", err)
	}
	if _, err := execute(t, "--locale", "not a locale!", "apply", "trim", "x"); err == nil {
		t.Error("invalid locale accepted")
	}
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "locale: tr\nindent: true\n")

	got, err := execute(t, "--config", cfg, "apply", "split", ",", "ı,i")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "\n  \"ı\"") {
		t.Errorf("indented output expected, got %q", got)
	}

	got, err = execute(t, "--config", cfg, "apply", "toLowerCase", "I")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "ı") {
		t.Errorf("config locale not applied: %q", got)
	}

	got, err = execute(t, "--config", cfg, "--locale", "en", "apply", "toLowerCase", "I")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `"i"`) {
		t.Errorf("flag did not override config: %q", got)
	}

	if _, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version"); err == nil {
		t.Error("missing explicit config accepted")
	}
}

func TestRunCommand(t *testing.T) {
	yamlFile := writeFile(t, "calls.yaml", `calls:
  - id: pad
    function: leftPad
    args: ["42", 5, "0"]
  - id: none
    function: substring
    args: ["abc", 2, 1]
  - id: bad
    function: nope
`)
	got, err := execute(t, "run", yamlFile)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`{"id":"pad","function":"leftPad","present":true,"result":"00042"}`,
		`{"id":"none","function":"substring","present":false}`,
		`"id":"bad"`,
		`F0101`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}

	jsonFile := writeFile(t, "calls.json", `{"calls":[{"id":"j","function":"join","args":["+","a","b"]}]}`)
	got, err = execute(t, "--concurrency", "1", "run", jsonFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `"result":"a+b"`) {
		t.Errorf("json batch output = %q", got)
	}
}

func TestRunStream(t *testing.T) {
	file := writeFile(t, "calls.ndjson", `{"id":"1","function":"trim","args":["  x  "]}
{"id":"2","function":"concat","args":["a",1]}
`)
	got, err := execute(t, "run", "--stream", file)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), got)
	}
	if !strings.Contains(lines[0], `"result":"x"`) || !strings.Contains(lines[1], `"result":"a1"`) {
		t.Errorf("stream output = %q", got)
	}

	broken := writeFile(t, "broken.ndjson", "not json\n")
	if _, err := execute(t, "run", "--stream", broken); err == nil {
		t.Error("broken stream accepted")
	}
}

func TestListAndVersion(t *testing.T) {
	got, err := execute(t, "list")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"FUNCTION", "transformDate", "driver+list", "split", "driver+single"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q", want)
		}
	}

	got, err = execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "v") {
		t.Errorf("version = %q", got)
	}
}
