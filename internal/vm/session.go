package vm

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jbweber/macman/internal/config"
	"github.com/jbweber/macman/internal/execx"
	"github.com/jbweber/macman/internal/naming"
	"github.com/jbweber/macman/internal/status"
	"github.com/jbweber/macman/internal/vagrantfile"
)

// Options read from a VM's effective settings besides the template
// variables.
const (
	OptionURL          = "url"
	OptionTemplate     = "template"
	OptionResetCommand = "reset_command"
	OptionDeletePolicy = "delete_policy"
)

// Vagrant and transfer commands. Placeholders are filled by execx.Expand.
const (
	cmdBoxList   = "vagrant box list"
	cmdBoxAdd    = "vagrant box add ${name} ${box}"
	cmdBoxRemove = "vagrant box remove ${name}"
	cmdUp        = "vagrant up"
	cmdHalt      = "vagrant halt"
	cmdReload    = "vagrant reload"
	cmdSSH       = "vagrant ssh"
	cmdDestroy   = "vagrant destroy"
	cmdWget      = "wget -O ${dst} ${src}"
	cmdRsync     = "rsync --progress ${src} ${dst}"
	cmdCopy      = "cp ${src} ${dst}"
)

// Session manages one VM.
type Session struct {
	Name      string
	Directory string

	// Settings are the VM's effective settings.
	Settings map[string]string

	// DeletePolicy applies to Delete. Defaults to DeleteBestEffort.
	DeletePolicy DeletePolicy

	runner execx.Runner
	log    logrus.FieldLogger
}

// NewSession returns a session for the VM name stored in dir. settings is
// copied.
func NewSession(name, dir string, settings map[string]string, runner execx.Runner, log logrus.FieldLogger) *Session {
	eff := make(map[string]string, len(settings))
	for k, v := range settings {
		eff[k] = v
	}
	return &Session{
		Name:         name,
		Directory:    dir,
		Settings:     eff,
		DeletePolicy: DeleteBestEffort,
		runner:       runner,
		log:          log.WithField("vm", name),
	}
}

// BaseBox returns the path of the VM's base box file.
func (s *Session) BaseBox() (string, error) {
	url, ok := s.Settings[OptionURL]
	if !ok || url == "" {
		return "", config.Errorf("no %s configured for VM %s", OptionURL, s.Name)
	}
	return naming.BaseBoxPath(s.Directory, url)
}

// Vagrantfile returns the path of the VM's Vagrantfile.
func (s *Session) Vagrantfile() string {
	return naming.VagrantfilePath(s.Directory)
}

// IsConfigured reports whether the Vagrantfile has been generated.
func (s *Session) IsConfigured() bool {
	return status.IsConfigured(s.Directory)
}

// IsDownloaded reports whether the base box file exists.
func (s *Session) IsDownloaded() bool {
	return status.IsDownloaded(s.Directory, s.Settings[OptionURL])
}

// Status returns a snapshot of the VM's files.
func (s *Session) Status() status.Status {
	return status.Inspect(s.Name, s.Directory, s.Settings[OptionURL])
}

// Start brings the VM up, downloading the base box, generating the
// Vagrantfile and registering the box with Vagrant first when needed.
func (s *Session) Start(ctx context.Context) (execx.Result, error) {
	if !s.IsDownloaded() {
		res, err := s.Download(ctx)
		if err != nil {
			return res, err
		}
		if !res.OK() {
			return res, nil
		}
	}

	if !s.IsConfigured() {
		if err := s.Configure(nil); err != nil {
			return execx.Result{}, err
		}
	}

	installed, err := s.hasBox(ctx)
	if err != nil {
		return execx.Result{}, err
	}
	if !installed {
		box, err := s.BaseBox()
		if err != nil {
			return execx.Result{}, err
		}
		res, err := s.run(ctx, execx.Command{
			Line:   cmdBoxAdd,
			Params: map[string]string{"name": s.Name, "box": box},
		})
		if err != nil {
			return res, err
		}
	}

	return s.runInDir(ctx, cmdUp)
}

// Stop halts the VM.
func (s *Session) Stop(ctx context.Context) (execx.Result, error) {
	return s.runInDir(ctx, cmdHalt)
}

// Restart reloads the VM.
func (s *Session) Restart(ctx context.Context) (execx.Result, error) {
	return s.runInDir(ctx, cmdReload)
}

// SSH opens an interactive SSH session to the VM.
func (s *Session) SSH(ctx context.Context) (execx.Result, error) {
	return s.runInDir(ctx, cmdSSH)
}

// Delete destroys the VM and removes its box from Vagrant. With
// DeleteAbortOnFailure the box is kept when destroy fails.
func (s *Session) Delete(ctx context.Context) (execx.Result, error) {
	res, err := s.runInDir(ctx, cmdDestroy)
	if err != nil {
		return res, err
	}
	if !res.OK() && s.DeletePolicy == DeleteAbortOnFailure {
		s.log.Warnf("Not removing box %s: destroy failed", s.Name)
		return res, nil
	}

	return s.run(ctx, execx.Command{
		Line:   cmdBoxRemove,
		Params: map[string]string{"name": s.Name},
		Dir:    s.Directory,
	})
}

// Configure renders the Vagrantfile from the VM's settings overlaid with
// overrides and writes it to the VM directory, replacing any existing file.
func (s *Session) Configure(overrides map[string]string) error {
	data := s.templateContext(overrides)

	text, err := vagrantfile.LoadTemplate(data[OptionTemplate])
	if err != nil {
		return err
	}

	path := s.Vagrantfile()
	if err := vagrantfile.Generate(text, path, data); err != nil {
		return fmt.Errorf("failed to configure VM %s: %w", s.Name, err)
	}
	s.log.Infof("Wrote %s", path)
	return nil
}

// Reconfigure runs the reset_command setting in the VM directory if one is
// set, and otherwise regenerates the Vagrantfile.
func (s *Session) Reconfigure(ctx context.Context) (execx.Result, error) {
	reset := s.Settings[OptionResetCommand]
	if reset == "" {
		return execx.Result{}, s.Configure(nil)
	}
	return s.run(ctx, execx.Command{
		Line:   reset,
		Params: s.templateContext(nil),
		Dir:    s.Directory,
	})
}

// Download fetches the base box into the parent of the VM directory.
// http(s):// URLs are fetched with wget, ssh:// locations with rsync and
// anything else is copied from the local filesystem.
func (s *Session) Download(ctx context.Context) (execx.Result, error) {
	box, err := s.BaseBox()
	if err != nil {
		return execx.Result{}, err
	}

	kind, src := naming.ClassifySource(s.Settings[OptionURL])

	var line string
	switch kind {
	case naming.SourceHTTP:
		line = cmdWget
	case naming.SourceSSH:
		line = cmdRsync
	default:
		info, err := os.Stat(src)
		if err != nil || !info.Mode().IsRegular() {
			return execx.Result{}, config.Errorf("No file found at %s", src)
		}
		line = cmdCopy
	}

	dir := filepath.Dir(box)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return execx.Result{}, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return s.run(ctx, execx.Command{
		Line:   line,
		Params: map[string]string{"src": src, "dst": box},
	})
}

// hasBox reports whether Vagrant already knows a box named after the VM.
// Lines of "vagrant box list" look like "name (provider, version)".
func (s *Session) hasBox(ctx context.Context) (bool, error) {
	out, res, err := execx.Capture(ctx, s.runner, execx.Command{Line: cmdBoxList})
	if err != nil {
		return false, err
	}
	if !res.OK() {
		s.log.Warnf("%s exited with code %d", res.Line, res.Code)
	}

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 && fields[0] == s.Name {
			return true, nil
		}
	}
	return false, nil
}

// templateContext returns a fresh map with the effective settings,
// overrides, and the VM name and directory.
func (s *Session) templateContext(overrides map[string]string) map[string]string {
	data := make(map[string]string, len(s.Settings)+len(overrides)+2)
	for k, v := range s.Settings {
		data[k] = v
	}
	for k, v := range overrides {
		data[k] = v
	}
	data["name"] = s.Name
	data["directory"] = s.Directory
	return data
}

func (s *Session) runInDir(ctx context.Context, line string) (execx.Result, error) {
	return s.run(ctx, execx.Command{Line: line, Dir: s.Directory})
}

func (s *Session) run(ctx context.Context, cmd execx.Command) (execx.Result, error) {
	res, err := s.runner.Run(ctx, cmd)
	if err != nil {
		return res, err
	}
	if !res.OK() {
		s.log.Warnf("%s exited with code %d", res.Line, res.Code)
	}
	return res, nil
}
