package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

type sample struct {
	State   string `json:"state" yaml:"state"`
	Entries int    `json:"entries" yaml:"entries"`
}

type textSample struct{ sample }

func (s textSample) RenderText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "state: %s (%d entries)\n", s.State, s.Entries)
	return err
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("error = %v, want ErrUnknownFormat", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWriter_Write(t *testing.T) {
	v := sample{State: "done", Entries: 2}

	tests := []struct {
		name   string
		format Format
		value  any
		want   []string
	}{
		{"json", FormatJSON, v, []string{`"state": "done"`, `"entries": 2`}},
		{"yaml", FormatYAML, v, []string{"state: done", "entries: 2"}},
		{"text renderer", FormatText, textSample{v}, []string{"state: done (2 entries)"}},
		{"text fallback", FormatText, v, []string{"State:done", "Entries:2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewWriter(&buf, tt.format).Write(tt.value); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
