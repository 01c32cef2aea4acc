//go:build windows
// +build windows

package svcmgr

import (
	"fmt"
	"strings"
	"time"

	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/eventlog"
	"golang.org/x/sys/windows/svc/mgr"

	"selfsvc/internal/logger"
)

const stopWait = 10 * time.Second

// windowsService drives the Windows service control manager.
type windowsService struct {
	name string
}

func newPlatform(name string) (Service, error) {
	return &windowsService{name: name}, nil
}

func (s *windowsService) Name() string { return s.name }

func (s *windowsService) CreateStart(exePath string, opts Options) error {
	log := logger.WithComponent("svcmgr")

	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to service control manager: %w", err)
	}
	defer m.Disconnect()

	displayName := opts.DisplayName
	if displayName == "" {
		displayName = s.name
	}

	cfg := mgr.Config{
		DisplayName:      displayName,
		Description:      opts.Description,
		StartType:        mgr.StartAutomatic,
		ServiceStartName: opts.RunAs,
	}

	handle, err := m.CreateService(s.name, exePath, cfg, flatten(opts.Arguments)...)
	if err != nil {
		return fmt.Errorf("create service %q: %w", s.name, err)
	}
	defer handle.Close()

	// Register an event source so startup errors reach the event log.
	// Registration of an existing source fails; that is fine.
	_ = eventlog.InstallAsEventCreate(s.name, eventlog.Error|eventlog.Warning|eventlog.Info)

	if err := handle.Start(); err != nil {
		return fmt.Errorf("start service %q: %w", s.name, err)
	}

	log.Info().Str("service", s.name).Str("exe", exePath).Msg("Service created and started")
	return nil
}

func (s *windowsService) StopDelete() error {
	log := logger.WithComponent("svcmgr")

	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("connect to service control manager: %w", err)
	}
	defer m.Disconnect()

	handle, err := m.OpenService(s.name)
	if err != nil {
		return fmt.Errorf("open service %q: %w", s.name, err)
	}
	defer handle.Close()

	// Best-effort stop before delete; an already-stopped service
	// rejects the control and we move on.
	if status, err := handle.Control(svc.Stop); err == nil {
		deadline := time.Now().Add(stopWait)
		for status.State != svc.Stopped && time.Now().Before(deadline) {
			time.Sleep(300 * time.Millisecond)
			status, err = handle.Query()
			if err != nil {
				break
			}
		}
	}

	if err := handle.Delete(); err != nil {
		return fmt.Errorf("delete service %q: %w", s.name, err)
	}
	_ = eventlog.Remove(s.name)

	log.Info().Str("service", s.name).Msg("Service stopped and deleted")
	return nil
}

// win32ServiceRow mirrors the Win32_Service fields we select.
type win32ServiceRow struct {
	Name      string
	ProcessId uint32
}

func (s *windowsService) ProcessID() (int, bool, error) {
	query := fmt.Sprintf(
		"SELECT Name, ProcessId FROM Win32_Service WHERE Name = '%s'",
		strings.ReplaceAll(s.name, "'", "''"))

	var rows []win32ServiceRow
	if err := wmi.Query(query, &rows); err != nil {
		return 0, false, fmt.Errorf("query process id for service %q: %w", s.name, err)
	}
	if len(rows) == 0 || rows[0].ProcessId == 0 {
		return 0, false, nil
	}
	return int(rows[0].ProcessId), true, nil
}
