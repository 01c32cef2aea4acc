//go:build linux
// +build linux

package svcmgr

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/shirou/gopsutil/v3/process"

	"selfsvc/internal/logger"
)

// systemdService manages a unit file under the system unit directory
// and drives it through systemctl.
type systemdService struct {
	name      string
	unitDir   string
	systemctl string
}

func newPlatform(name string) (Service, error) {
	return &systemdService{
		name:      name,
		unitDir:   "/etc/systemd/system",
		systemctl: "systemctl",
	}, nil
}

func (s *systemdService) Name() string { return s.name }

func (s *systemdService) unit() string { return s.name + ".service" }

func (s *systemdService) unitPath() string {
	return filepath.Join(s.unitDir, s.unit())
}

func (s *systemdService) CreateStart(exePath string, opts Options) error {
	log := logger.WithComponent("svcmgr")

	content := renderUnit(s.name, exePath, opts)
	if err := renameio.WriteFile(s.unitPath(), []byte(content), 0o644); err != nil {
		return fmt.Errorf("write unit file %s: %w", s.unitPath(), err)
	}

	if err := s.run("daemon-reload"); err != nil {
		return err
	}
	if err := s.run("enable", s.unit()); err != nil {
		return err
	}
	if err := s.run("start", s.unit()); err != nil {
		return err
	}

	log.Info().Str("service", s.name).Str("unit", s.unitPath()).Msg("Unit installed and started")
	return nil
}

func (s *systemdService) StopDelete() error {
	log := logger.WithComponent("svcmgr")

	// Stop and disable tolerate a unit that is already stopped or was
	// never loaded; the registration removal below is what must stick.
	_ = s.run("stop", s.unit())
	_ = s.run("disable", s.unit())

	if err := os.Remove(s.unitPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove unit file %s: %w", s.unitPath(), err)
	}
	if err := s.run("daemon-reload"); err != nil {
		return err
	}

	log.Info().Str("service", s.name).Msg("Unit stopped and removed")
	return nil
}

func (s *systemdService) ProcessID() (int, bool, error) {
	out, err := exec.Command(s.systemctl, "show", s.unit(), "--property=MainPID").Output()
	if err != nil {
		return 0, false, fmt.Errorf("query main pid for %s: %w", s.unit(), err)
	}

	pid, ok := parseMainPID(string(out))
	if !ok {
		return 0, false, nil
	}

	// MainPID survives in systemd state briefly after exit; confirm the
	// process is actually alive before handing the pid to a caller.
	alive, err := process.PidExists(int32(pid))
	if err != nil {
		return 0, false, fmt.Errorf("check pid %d: %w", pid, err)
	}
	if !alive {
		return 0, false, nil
	}
	return pid, true, nil
}

func (s *systemdService) run(args ...string) error {
	cmd := exec.Command(s.systemctl, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("systemctl %s: %v: %s", strings.Join(args, " "), err, msg)
		}
		return fmt.Errorf("systemctl %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

// parseMainPID extracts the pid from `systemctl show --property=MainPID`
// output ("MainPID=1234"). A zero or missing pid means not running.
func parseMainPID(out string) (int, bool) {
	for _, line := range strings.Split(out, "\n") {
		value, found := strings.CutPrefix(strings.TrimSpace(line), "MainPID=")
		if !found {
			continue
		}
		pid, err := strconv.Atoi(value)
		if err != nil || pid <= 0 {
			return 0, false
		}
		return pid, true
	}
	return 0, false
}

// renderUnit builds the systemd unit file content for the service.
func renderUnit(name, exePath string, opts Options) string {
	var b strings.Builder

	b.WriteString("[Unit]\n")
	desc := opts.Description
	if desc == "" {
		desc = name + " service"
	}
	fmt.Fprintf(&b, "Description=%s\n", desc)
	b.WriteString("After=network.target\n\n")

	b.WriteString("[Service]\n")
	b.WriteString("Type=simple\n")
	fmt.Fprintf(&b, "ExecStart=%s\n", execStartLine(exePath, opts.Arguments))
	if opts.RunAs != "" {
		fmt.Fprintf(&b, "User=%s\n", opts.RunAs)
	}
	b.WriteString("KillSignal=SIGTERM\n")
	b.WriteString("TimeoutStopSec=30\n\n")

	b.WriteString("[Install]\n")
	b.WriteString("WantedBy=multi-user.target\n")

	return b.String()
}

func execStartLine(exePath string, args []Argument) string {
	tokens := append([]string{exePath}, flatten(args)...)
	for i, tok := range tokens {
		if strings.ContainsAny(tok, " \t\"") {
			tokens[i] = strconv.Quote(tok)
		}
	}
	return strings.Join(tokens, " ")
}
