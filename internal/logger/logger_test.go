package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitWritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.FilePath = filepath.Join(dir, "test.log")
	cfg.Console = false

	if err := Init(cfg); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	log := WithComponent("logger-test")
	log.Info().Str("key", "value").Msg("hello")

	data, err := os.ReadFile(cfg.FilePath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	var event map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(data), &event); err != nil {
		t.Fatalf("log line is not valid JSON: %v\n%s", err, data)
	}

	if event["message"] != "hello" {
		t.Errorf("message = %v, want hello", event["message"])
	}
	if event["component"] != "logger-test" {
		t.Errorf("component = %v, want logger-test", event["component"])
	}
	if event["key"] != "value" {
		t.Errorf("key = %v, want value", event["key"])
	}
}

func TestInitExtraSinkReceivesEvents(t *testing.T) {
	var sink bytes.Buffer
	cfg := Config{Level: "info"}

	if err := Init(cfg, &sink); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Logger().Info().Msg("mirrored")

	if !bytes.Contains(sink.Bytes(), []byte(`"message":"mirrored"`)) {
		t.Errorf("extra sink did not receive the event: %q", sink.String())
	}
}

func TestInitLevelFilter(t *testing.T) {
	var sink bytes.Buffer
	cfg := Config{Level: "warn"}

	if err := Init(cfg, &sink); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Logger().Info().Msg("suppressed")
	Logger().Warn().Msg("kept")

	out := sink.String()
	if bytes.Contains(sink.Bytes(), []byte("suppressed")) {
		t.Errorf("info event leaked through warn level: %q", out)
	}
	if !bytes.Contains(sink.Bytes(), []byte("kept")) {
		t.Errorf("warn event missing: %q", out)
	}
}

func TestInitConcurrentWithLogging(t *testing.T) {
	// The configuration watcher re-runs Init while other goroutines log
	// through the package. The race detector flags any unsynchronized
	// swap of the shared logger.
	if err := Init(Config{Level: "info"}, io.Discard); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				rlog := WithComponent("reload-test")
				rlog.Info().Msg("tick")
			}
		}
	}()

	for i := 0; i < 50; i++ {
		if err := Init(Config{Level: "info"}, io.Discard); err != nil {
			t.Errorf("Init during logging failed: %v", err)
		}
	}
	close(stop)
	wg.Wait()

	var sink bytes.Buffer
	if err := Init(Config{Level: "info"}, &sink); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	Logger().Info().Msg("after reload")
	if !bytes.Contains(sink.Bytes(), []byte("after reload")) {
		t.Errorf("logger unusable after concurrent reloads: %q", sink.String())
	}
}

func TestInitBadLevelFallsBackToInfo(t *testing.T) {
	var sink bytes.Buffer
	if err := Init(Config{Level: "nonsense"}, &sink); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Logger().Info().Msg("still visible")
	if !bytes.Contains(sink.Bytes(), []byte("still visible")) {
		t.Errorf("info event missing after bad level fallback: %q", sink.String())
	}
}
