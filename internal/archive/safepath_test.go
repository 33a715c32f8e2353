package archive

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"
)

func TestCleanEntryPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain file", "app.exe", "app.exe", false},
		{"nested file", "data/config.json", "data/config.json", false},
		{"directory", "data/", "data", false},
		{"dot prefix", "./bin/app", "bin/app", false},
		{"dot only", "./", ".", false},
		{"backslashes", `lib\deep\file.dll`, "lib/deep/file.dll", false},
		{"doubled separators", "a//b///c", "a/b/c", false},
		{"dots inside name", "a..b/c..", "a..b/c..", false},
		{"empty", "", "", true},
		{"absolute", "/etc/passwd", "", true},
		{"absolute backslash", `\Windows\System32`, "", true},
		{"drive letter", "C:/evil", "", true},
		{"drive relative", "d:evil", "", true},
		{"parent", "..", "", true},
		{"leading parent", "../evil", "", true},
		{"inner parent", "a/../../evil", "", true},
		{"parent that stays inside", "a/../b", "", true},
		{"backslash parent", `a\..\..\evil`, "", true},
		{"trailing parent", "a/b/..", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanEntryPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CleanEntryPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnsafePath) {
					t.Errorf("error = %v, want ErrUnsafePath", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("CleanEntryPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSafeJoin(t *testing.T) {
	root := filepath.Join("opt", "sealdice")

	tests := []struct {
		name    string
		entry   string
		updater string
		want    string
	}{
		{"regular file", "sealdice-core", "sealupd", filepath.Join(root, "sealdice-core")},
		{"updater quarantined", "sealupd", "sealupd", filepath.Join(root, "new-updater", "sealupd")},
		{"updater with dot prefix", "./sealupd", "sealupd", filepath.Join(root, "new-updater", "sealupd")},
		{"nested updater name is not quarantined", "bin/sealupd", "sealupd", filepath.Join(root, "bin", "sealupd")},
		{"windows updater", "sealupd.exe", "sealupd.exe", filepath.Join(root, "new-updater", "sealupd.exe")},
		{"no updater name", "sealupd", "", filepath.Join(root, "sealupd")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SafeJoin(root, tt.entry, tt.updater, "")
			if err != nil {
				t.Fatalf("SafeJoin() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SafeJoin() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSafeJoin_CustomQuarantine(t *testing.T) {
	got, err := SafeJoin("root", "sealupd", "sealupd", "staging")
	if err != nil {
		t.Fatalf("SafeJoin() error = %v", err)
	}
	if want := filepath.Join("root", "staging", "sealupd"); got != want {
		t.Errorf("SafeJoin() = %s, want %s", got, want)
	}
}

func TestSafeJoin_CaseFolding(t *testing.T) {
	got, err := SafeJoin("root", "SEALUPD.EXE", "sealupd.exe", "")
	if err != nil {
		t.Fatalf("SafeJoin() error = %v", err)
	}

	quarantined := filepath.Join("root", "new-updater", "SEALUPD.EXE")
	if runtime.GOOS == "windows" {
		if got != quarantined {
			t.Errorf("SafeJoin() = %s, want %s", got, quarantined)
		}
		return
	}
	if got == quarantined {
		t.Errorf("names differing in case must not match on %s", runtime.GOOS)
	}
}

func TestSafeJoin_RejectsUnsafe(t *testing.T) {
	for _, name := range []string{"../x", "/x", `C:\x`, "a/../../x"} {
		if _, err := SafeJoin("root", name, "sealupd", ""); !errors.Is(err, ErrUnsafePath) {
			t.Errorf("SafeJoin(%q) error = %v, want ErrUnsafePath", name, err)
		}
	}
}
