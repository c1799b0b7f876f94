package naming

import "testing"

func TestClassifySource(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind SourceKind
		wantLoc  string
	}{
		{
			name:     "http",
			raw:      "http://files.vagrantup.com/lucid64.box",
			wantKind: SourceHTTP,
			wantLoc:  "http://files.vagrantup.com/lucid64.box",
		},
		{
			name:     "https",
			raw:      "https://example.com/a.box",
			wantKind: SourceHTTP,
			wantLoc:  "https://example.com/a.box",
		},
		{
			name:     "ssh prefix stripped",
			raw:      "ssh://user@host/box.img",
			wantKind: SourceSSH,
			wantLoc:  "user@host/box.img",
		},
		{
			name:     "local path",
			raw:      "/srv/boxes/base.box",
			wantKind: SourceLocal,
			wantLoc:  "/srv/boxes/base.box",
		},
		{
			name:     "relative local path",
			raw:      "boxes/base.box",
			wantKind: SourceLocal,
			wantLoc:  "boxes/base.box",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, loc := ClassifySource(tt.raw)
			if kind != tt.wantKind {
				t.Errorf("ClassifySource() kind = %v, want %v", kind, tt.wantKind)
			}
			if loc != tt.wantLoc {
				t.Errorf("ClassifySource() loc = %v, want %v", loc, tt.wantLoc)
			}
		})
	}
}

func TestBaseBoxFilename(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "http", raw: "http://files.vagrantup.com/lucid64.box", want: "lucid64.box"},
		{name: "http with query", raw: "https://example.com/boxes/a.box?token=x", want: "a.box"},
		{name: "ssh", raw: "ssh://user@host/box.img", want: "box.img"},
		{name: "ssh rsync syntax", raw: "ssh://user@host:path/base.box", want: "base.box"},
		{name: "local", raw: "/srv/boxes/base.box", want: "base.box"},
		{name: "http without path", raw: "http://example.com", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BaseBoxFilename(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("BaseBoxFilename() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("BaseBoxFilename() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBaseBoxPath(t *testing.T) {
	got, err := BaseBoxPath("/srv/vm/web", "http://files.vagrantup.com/lucid64.box")
	if err != nil {
		t.Fatalf("BaseBoxPath() error = %v", err)
	}
	if got != "/srv/vm/lucid64.box" {
		t.Errorf("BaseBoxPath() = %s, want /srv/vm/lucid64.box", got)
	}
}

func TestVagrantfilePath(t *testing.T) {
	if got := VagrantfilePath("/srv/vm/web"); got != "/srv/vm/web/Vagrantfile" {
		t.Errorf("VagrantfilePath() = %s", got)
	}
}
