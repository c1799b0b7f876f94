package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/jbweber/macman/internal/status"
)

// TableFormatter formats VM status as a human-readable table.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

// FormatList formats a list of VMs as a table.
func (f *TableFormatter) FormatList(list []status.Status) (string, error) {
	if len(list) == 0 {
		return "No VMs registered\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tPHASE\tBOX\tDIRECTORY")
	}

	for _, st := range list {
		phase := string(st.Phase)
		if phase == "" {
			phase = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.Name, phase, boxState(st), st.Directory)
	}

	_ = w.Flush()
	return buf.String(), nil
}

// boxState summarizes the base box column.
func boxState(st status.Status) string {
	switch {
	case st.BaseBox == "":
		return "-"
	case st.Downloaded:
		return "downloaded"
	default:
		return "missing"
	}
}
