package types

import (
	"testing"
)

func TestStateValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       State
		wantErr bool
	}{
		{"idle valid", StateIdle, false},
		{"waiting valid", StateWaiting, false},
		{"done valid", StateDone, false},
		{"aborted valid", StateAborted, false},
		{"empty invalid", "", true},
		{"invalid value", "sleeping", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("State.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStateTerminal(t *testing.T) {
	tests := []struct {
		s        State
		terminal bool
		code     int
	}{
		{StateIdle, false, 1},
		{StateWaiting, false, 1},
		{StateBackingUp, false, 1},
		{StateExtracting, false, 1},
		{StateRelaunching, false, 1},
		{StateDone, true, 0},
		{StateAborted, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.s.String(), func(t *testing.T) {
			if got := tt.s.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
			if got := tt.s.ExitCode(); got != tt.code {
				t.Errorf("ExitCode() = %d, want %d", got, tt.code)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{"zip", "zip", FormatZip, false},
		{"zip with dot", ".ZIP", FormatZip, false},
		{"tar.gz", "tar.gz", FormatTarGz, false},
		{"tgz alias", "tgz", FormatTarGz, false},
		{"empty", "", FormatUnknown, true},
		{"rar", "rar", FormatUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	if got := FormatUnknown.String(); got != "unknown" {
		t.Errorf("FormatUnknown.String() = %q, want unknown", got)
	}
}

func TestEntryKindValidate(t *testing.T) {
	tests := []struct {
		k       EntryKind
		wantErr bool
	}{
		{EntryFile, false},
		{EntryDir, false},
		{EntryOther, false},
		{"", true},
		{"symlink", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.k), func(t *testing.T) {
			err := tt.k.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("EntryKind.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if !EntryFile.IsFile() || EntryFile.IsDir() {
		t.Error("EntryFile helpers are wrong")
	}
	if !EntryDir.IsDir() || EntryDir.IsFile() {
		t.Error("EntryDir helpers are wrong")
	}
}
