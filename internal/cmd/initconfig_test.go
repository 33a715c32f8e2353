package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sealdice/sealupd/internal/config"
)

func TestRunInitConfig(t *testing.T) {
	for _, format := range []string{"toml", "yaml"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sealupd."+format)

			var stdout bytes.Buffer
			if err := runInitConfig(&stdout, format, path, false); err != nil {
				t.Fatalf("runInitConfig() error = %v", err)
			}
			if !strings.Contains(stdout.String(), "Created") {
				t.Errorf("stdout = %q", stdout.String())
			}
			if _, err := config.Load(path); err != nil {
				t.Errorf("written config does not load: %v", err)
			}
		})
	}
}

func TestRunInitConfig_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sealupd.toml")
	if err := os.WriteFile(path, []byte("wait_retries = 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	if err := runInitConfig(&stdout, "toml", path, false); err == nil {
		t.Fatal("runInitConfig() should refuse to overwrite")
	}
	content, _ := os.ReadFile(path)
	if string(content) != "wait_retries = 5\n" {
		t.Error("existing file was modified")
	}

	if err := runInitConfig(&stdout, "toml", path, true); err != nil {
		t.Fatalf("runInitConfig(force) error = %v", err)
	}
	content, _ = os.ReadFile(path)
	if !strings.Contains(string(content), "relaunch_delay") {
		t.Error("--force should overwrite with the template")
	}
}

func TestRunInitConfig_DefaultPath(t *testing.T) {
	dir := isolate(t)

	code, stdout, _, err := runCLI(t, "init-config", "--format", "yaml")
	if err != nil || code != 0 {
		t.Fatalf("Execute() = %d, %v", code, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sealupd.yaml")); err != nil {
		t.Errorf("sealupd.yaml not created: %v", err)
	}
	if !strings.Contains(stdout, "sealupd.yaml") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRunInitConfig_UnknownFormat(t *testing.T) {
	var stdout bytes.Buffer
	if err := runInitConfig(&stdout, "ini", filepath.Join(t.TempDir(), "x"), false); err == nil {
		t.Error("runInitConfig() should reject unknown formats")
	}
}
