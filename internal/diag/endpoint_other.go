//go:build !windows
// +build !windows

package diag

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
)

// endpointPath names the diagnostic endpoint for a pid. The convention
// is fixed so a controller can locate a process's stream without any
// prior coordination.
func endpointPath(pid int) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("selfsvc-diag-%d.sock", pid))
}

func dialEndpoint(pid int) (net.Conn, error) {
	return net.Dial("unix", endpointPath(pid))
}

func listenEndpoint(pid int) (net.Listener, error) {
	path := endpointPath(pid)
	// A recycled pid can leave a stale socket file behind.
	_ = os.Remove(path)
	return net.Listen("unix", path)
}
