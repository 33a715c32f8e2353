package handoff

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sealdice/sealupd/internal/types"
)

// Report summarizes one updater run.
type Report struct {
	State         types.State  `json:"state" yaml:"state"`
	Package       string       `json:"package" yaml:"package"`
	Format        types.Format `json:"format,omitempty" yaml:"format,omitempty"`
	Entries       int          `json:"entries" yaml:"entries"`
	Skipped       int          `json:"skipped" yaml:"skipped"`
	BackedUp      bool         `json:"backed_up" yaml:"backed_up"`
	BackupPath    string       `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`
	Relaunched    bool         `json:"relaunched" yaml:"relaunched"`
	RelaunchError string       `json:"relaunch_error,omitempty" yaml:"relaunch_error,omitempty"`
	Error         string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// ExitCode returns the process exit code for the run.
func (r *Report) ExitCode() int {
	return r.State.ExitCode()
}

// RenderText writes the report as aligned key/value lines.
func (r *Report) RenderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	rows := [][2]string{
		{"State", r.State.String()},
		{"Package", r.Package},
	}
	if r.Format != types.FormatUnknown {
		rows = append(rows, [2]string{"Format", r.Format.String()})
	}
	rows = append(rows, [2]string{"Entries", fmt.Sprintf("%d written, %d skipped", r.Entries, r.Skipped)})

	backup := "not needed"
	if r.BackedUp {
		backup = r.BackupPath
	}
	rows = append(rows, [2]string{"Backup", backup})

	launch := "no"
	switch {
	case r.Relaunched:
		launch = "yes"
	case r.RelaunchError != "":
		launch = "failed: " + r.RelaunchError
	}
	rows = append(rows, [2]string{"Relaunched", launch})

	if r.Error != "" {
		rows = append(rows, [2]string{"Error", r.Error})
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}
