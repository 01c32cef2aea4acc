package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteStartupErrorFile records a startup error in a well-known file
// for operators without event-log access. Overwritten on each call so
// only the most recent error is kept.
func WriteStartupErrorFile(logDir string, err error) {
	_ = os.MkdirAll(logDir, 0755)

	f, ferr := os.Create(filepath.Join(logDir, "startup-error.log"))
	if ferr != nil {
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "[%s] STARTUP ERROR\n%v\n", time.Now().Format("2006-01-02 15:04:05"), err)
}
