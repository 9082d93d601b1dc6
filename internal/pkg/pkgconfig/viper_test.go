package pkgconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestViperConfigValues(t *testing.T) {
	path := writeConfigFile(t, "int: 42\nbool: true\nstring: hi\narray: a, b,,c\n")

	cfg, err := NewViper(path)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}()

	if got := cfg.GetInt("int"); got != 42 {
		t.Fatalf("GetInt: expected 42, got %d", got)
	}
	if got := cfg.GetBool("bool"); got != true {
		t.Fatalf("GetBool: expected true, got %v", got)
	}
	if got := cfg.GetString("string"); got != "hi" {
		t.Fatalf("GetString: expected hi, got %q", got)
	}
	if got := cfg.GetArray("array"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("GetArray: unexpected value: %#v", got)
	}
}

func TestViperMissingFile(t *testing.T) {
	if _, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestViperWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := NewViper("", WithDefaults(map[string]any{
		"server.address.http": "127.0.0.1:8080",
	}))
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetString("server.address.http"); got != "127.0.0.1:8080" {
		t.Fatalf("expected default address, got %q", got)
	}
	if got := cfg.GetArray("missing"); got != nil {
		t.Fatalf("expected nil array, got %#v", got)
	}
}

func TestViperPrecedence(t *testing.T) {
	path := writeConfigFile(t, "records:\n  file: from-file.csv\n  on_startup_parse_error: fallback\n")
	t.Setenv("CSVJSONTEST_RECORDS_ON_STARTUP_PARSE_ERROR", "abort")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("file", "f", "", "")
	flags.String("on-startup-parse-error", "", "")
	if err := flags.Parse([]string{"-f", "from-flag.csv"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := NewViper(path,
		WithDefaults(map[string]any{"records.on_startup_parse_error": "fallback"}),
		WithEnvPrefix("CSVJSONTEST"),
		WithFlags(flags, map[string]string{
			"records.file":                   "file",
			"records.on_startup_parse_error": "on-startup-parse-error",
			"records.unknown":                "missing-flag",
		}),
	)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetString("records.file"); got != "from-flag.csv" {
		t.Fatalf("expected flag to win, got %q", got)
	}
	if got := cfg.GetString("records.on_startup_parse_error"); got != "abort" {
		t.Fatalf("expected env to beat file, got %q", got)
	}
}
