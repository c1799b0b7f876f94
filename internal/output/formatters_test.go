package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/macman/internal/status"
)

// createTestStatus creates a Status for testing.
func createTestStatus(name string, phase status.Phase, downloaded bool) status.Status {
	return status.Status{
		Name:       name,
		Directory:  "/srv/macman/var/vm/" + name,
		Phase:      phase,
		BaseBox:    "/srv/macman/var/vm/lucid64.box",
		Downloaded: downloaded,
	}
}

func TestTableFormatter_Row(t *testing.T) {
	tests := []struct {
		name      string
		st        status.Status
		wantPhase string
		wantBox   string
	}{
		{
			name:      "configured and downloaded",
			st:        createTestStatus("web", status.PhaseConfigured, true),
			wantPhase: "Configured",
			wantBox:   "downloaded",
		},
		{
			name:      "unconfigured without box",
			st:        createTestStatus("db", status.PhaseUnconfigured, false),
			wantPhase: "Unconfigured",
			wantBox:   "missing",
		},
		{
			name:      "no base box",
			st:        status.Status{Name: "bare", Phase: status.PhaseUnconfigured},
			wantPhase: "Unconfigured",
			wantBox:   "-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TableFormatter{NoHeaders: true}
			output, err := formatter.FormatList([]status.Status{tt.st})
			if err != nil {
				t.Fatalf("FormatList() error = %v", err)
			}

			fields := strings.Fields(output)
			if len(fields) < 3 {
				t.Fatalf("unexpected row: %q", output)
			}
			if fields[0] != tt.st.Name {
				t.Errorf("name = %q, want %q", fields[0], tt.st.Name)
			}
			if fields[1] != tt.wantPhase {
				t.Errorf("phase = %q, want %q", fields[1], tt.wantPhase)
			}
			if fields[2] != tt.wantBox {
				t.Errorf("box = %q, want %q", fields[2], tt.wantBox)
			}
		})
	}
}

func TestTableFormatter_FormatList(t *testing.T) {
	tests := []struct {
		name       string
		list       []status.Status
		noHeaders  bool
		wantCount  int
		wantHeader bool
	}{
		{
			name:      "empty list",
			list:      []status.Status{},
			wantCount: 0,
		},
		{
			name: "single VM",
			list: []status.Status{
				createTestStatus("vm1", status.PhaseConfigured, true),
			},
			wantCount:  1,
			wantHeader: true,
		},
		{
			name: "multiple VMs",
			list: []status.Status{
				createTestStatus("vm1", status.PhaseConfigured, true),
				createTestStatus("vm2", status.PhaseUnconfigured, false),
				createTestStatus("vm3", status.PhaseUnconfigured, true),
			},
			wantCount:  3,
			wantHeader: true,
		},
		{
			name: "no headers",
			list: []status.Status{
				createTestStatus("vm1", status.PhaseConfigured, true),
			},
			noHeaders:  true,
			wantCount:  1,
			wantHeader: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TableFormatter{NoHeaders: tt.noHeaders}
			output, err := formatter.FormatList(tt.list)
			if err != nil {
				t.Fatalf("FormatList() error = %v", err)
			}

			if tt.wantCount == 0 {
				if !strings.Contains(output, "No VMs registered") {
					t.Errorf("expected 'No VMs registered' message, got: %s", output)
				}
				return
			}

			hasHeader := strings.Contains(output, "NAME") && strings.Contains(output, "PHASE")
			if tt.wantHeader && !hasHeader {
				t.Errorf("expected header in output, got: %s", output)
			}
			if !tt.wantHeader && hasHeader {
				t.Errorf("expected no header in output, got: %s", output)
			}

			lines := strings.Split(strings.TrimSpace(output), "\n")
			expectedLines := tt.wantCount
			if tt.wantHeader {
				expectedLines++
			}
			if len(lines) != expectedLines {
				t.Errorf("expected %d lines, got %d: %s", expectedLines, len(lines), output)
			}
		})
	}
}

func TestYAMLFormatter_Fields(t *testing.T) {
	st := createTestStatus("web", status.PhaseConfigured, true)

	formatter := &YAMLFormatter{}
	output, err := formatter.FormatList([]status.Status{st})
	if err != nil {
		t.Fatalf("FormatList() error = %v", err)
	}

	requiredFields := []string{
		"name: web",
		"directory: /srv/macman/var/vm/web",
		"phase: Configured",
		"baseBox: /srv/macman/var/vm/lucid64.box",
		"downloaded: true",
	}
	for _, field := range requiredFields {
		if !strings.Contains(output, field) {
			t.Errorf("output missing required field %q: %s", field, output)
		}
	}
}

func TestYAMLFormatter_FormatList(t *testing.T) {
	list := []status.Status{
		createTestStatus("vm1", status.PhaseConfigured, true),
		createTestStatus("vm2", status.PhaseUnconfigured, false),
	}

	formatter := &YAMLFormatter{}
	output, err := formatter.FormatList(list)
	if err != nil {
		t.Fatalf("FormatList() error = %v", err)
	}

	if got := strings.Count(output, "---\n"); got != 1 {
		t.Errorf("expected 1 document separator, got %d: %s", got, output)
	}

	// Each document decodes back to the VM it describes.
	dec := yaml.NewDecoder(strings.NewReader(output))
	for _, want := range list {
		var got status.Status
		if err := dec.Decode(&got); err != nil {
			t.Fatalf("failed to decode document: %v", err)
		}
		if got != want {
			t.Errorf("decoded %+v, want %+v", got, want)
		}
	}

	empty, err := formatter.FormatList(nil)
	if err != nil {
		t.Fatalf("FormatList(nil) error = %v", err)
	}
	if empty != "" {
		t.Errorf("expected empty output, got %q", empty)
	}
}

func TestJSONFormatter_Fields(t *testing.T) {
	st := createTestStatus("web", status.PhaseUnconfigured, false)

	formatter := &JSONFormatter{}
	output, err := formatter.FormatList([]status.Status{st})
	if err != nil {
		t.Fatalf("FormatList() error = %v", err)
	}

	requiredFields := []string{
		`"name": "web"`,
		`"phase": "Unconfigured"`,
		`"downloaded": false`,
	}
	for _, field := range requiredFields {
		if !strings.Contains(output, field) {
			t.Errorf("output missing required field %q: %s", field, output)
		}
	}
}

func TestJSONFormatter_FormatList(t *testing.T) {
	tests := []struct {
		name      string
		list      []status.Status
		wantEmpty bool
	}{
		{
			name:      "empty list",
			list:      []status.Status{},
			wantEmpty: true,
		},
		{
			name: "single VM",
			list: []status.Status{
				createTestStatus("vm1", status.PhaseConfigured, true),
			},
		},
		{
			name: "multiple VMs",
			list: []status.Status{
				createTestStatus("vm1", status.PhaseConfigured, true),
				createTestStatus("vm2", status.PhaseUnconfigured, false),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &JSONFormatter{}
			output, err := formatter.FormatList(tt.list)
			if err != nil {
				t.Fatalf("FormatList() error = %v", err)
			}

			if tt.wantEmpty {
				if output != "[]\n" {
					t.Errorf("expected %q, got: %q", "[]\n", output)
				}
				return
			}

			var got []status.Status
			if err := json.Unmarshal([]byte(output), &got); err != nil {
				t.Fatalf("output is not a JSON array: %v\n%s", err, output)
			}
			if len(got) != len(tt.list) {
				t.Fatalf("expected %d entries, got %d", len(tt.list), len(got))
			}
			for i := range got {
				if got[i] != tt.list[i] {
					t.Errorf("entry %d = %+v, want %+v", i, got[i], tt.list[i])
				}
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		want    Format
		wantErr bool
	}{
		{name: "table", format: "table", want: FormatTable},
		{name: "yaml", format: "yaml", want: FormatYAML},
		{name: "json", format: "json", want: FormatJSON},
		{name: "invalid format", format: "xml", wantErr: true},
		{name: "empty format", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	list := []status.Status{createTestStatus("web", status.PhaseConfigured, true)}

	tests := []struct {
		name       string
		opts       Options
		wantPrefix string
		wantErr    bool
	}{
		{name: "table", opts: Options{Format: FormatTable}, wantPrefix: "NAME"},
		{name: "table without headers", opts: Options{Format: FormatTable, NoHeaders: true}, wantPrefix: "web"},
		{name: "yaml", opts: Options{Format: FormatYAML}, wantPrefix: "name: web"},
		{name: "json", opts: Options{Format: FormatJSON}, wantPrefix: "["},
		{name: "invalid format", opts: Options{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, tt.opts, list)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Write() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if buf.Len() != 0 {
					t.Errorf("expected no output on error, got %q", buf.String())
				}
				return
			}
			if !strings.HasPrefix(buf.String(), tt.wantPrefix) {
				t.Errorf("expected output to start with %q, got %q", tt.wantPrefix, buf.String())
			}
		})
	}
}
