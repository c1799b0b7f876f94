package output

import (
	"encoding/json"
	"fmt"

	"github.com/jbweber/macman/internal/status"
)

// JSONFormatter formats VM status as JSON.
type JSONFormatter struct{}

// FormatList formats a list of VMs as a JSON array.
func (f *JSONFormatter) FormatList(list []status.Status) (string, error) {
	if len(list) == 0 {
		return "[]\n", nil
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal VMs to JSON: %w", err)
	}
	return string(data) + "\n", nil
}
