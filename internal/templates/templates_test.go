package templates

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sealdice/sealupd/internal/config"
)

func TestList(t *testing.T) {
	if got, want := List(), []string{"toml", "yaml"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{"toml", "toml", false},
		{"yaml", "yaml", false},
		{"yml", "yaml", false},
		{"TOML", "toml", false},
		{"json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("Get(%s) error = %v, want ErrNotFound", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%s) error = %v", tt.name, err)
			}
			if tmpl.Name != tt.wantName {
				t.Errorf("Name = %s, want %s", tmpl.Name, tt.wantName)
			}
			if tmpl.FileName != "sealupd."+tt.wantName {
				t.Errorf("FileName = %s", tmpl.FileName)
			}
			if len(tmpl.Content) == 0 {
				t.Error("Content is empty")
			}
			if tmpl.Description == "Custom template" {
				t.Error("built-in template should have a description")
			}
		})
	}
}

// Every template must load as a valid config that matches the defaults.
func TestTemplatesLoad(t *testing.T) {
	t.Setenv("SEALDICE_HOME", "")

	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			tmpl, err := Get(name)
			if err != nil {
				t.Fatal(err)
			}
			path := filepath.Join(t.TempDir(), tmpl.FileName)
			if err := os.WriteFile(path, tmpl.Content, 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := config.Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if want := config.Default(); !reflect.DeepEqual(cfg, want) {
				t.Errorf("template config = %+v, want defaults %+v", cfg, want)
			}
		})
	}
}
