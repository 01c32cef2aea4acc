package main

import (
	"path/filepath"
	"testing"
	"time"

	"selfsvc/internal/config"
	"selfsvc/internal/svcmgr"
)

func TestInstallOptionsReplaysFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DisplayName = "Self Service"
	cfg.RunAs = "svcuser"

	opts := installOptions(cfg, "conf/app.json", "30s", "demo")

	if opts.DisplayName != "Self Service" || opts.RunAs != "svcuser" {
		t.Errorf("options = %+v, want display name and run-as from configuration", opts)
	}

	wantConfig, err := filepath.Abs("conf/app.json")
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	want := []svcmgr.Argument{
		{Name: "-config", Value: wantConfig},
		{Name: "-interval", Value: "30s"},
		{Name: "-name", Value: "demo"},
	}
	if len(opts.Arguments) != len(want) {
		t.Fatalf("Arguments = %v, want %v", opts.Arguments, want)
	}
	for i, arg := range opts.Arguments {
		if arg != want[i] {
			t.Errorf("Arguments[%d] = %v, want %v", i, arg, want[i])
		}
	}
}

func TestInstallOptionsOmitsUnsetFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.HeartbeatInterval = 42 * time.Second

	opts := installOptions(cfg, "", "", "")

	if len(opts.Arguments) != 0 {
		t.Errorf("Arguments = %v, want none for an unflagged invocation", opts.Arguments)
	}
}
