package output

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/macman/internal/status"
)

// YAMLFormatter formats VM status as YAML.
type YAMLFormatter struct{}

// FormatList formats a list of VMs as a YAML stream (documents separated
// by ---).
func (f *YAMLFormatter) FormatList(list []status.Status) (string, error) {
	var buf bytes.Buffer

	for i, st := range list {
		data, err := yaml.Marshal(st)
		if err != nil {
			return "", fmt.Errorf("failed to marshal VM %s to YAML: %w", st.Name, err)
		}
		if i > 0 {
			buf.WriteString("---\n")
		}
		buf.Write(data)
	}

	return buf.String(), nil
}
