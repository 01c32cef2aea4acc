//go:build windows
// +build windows

package diag

import (
	"fmt"
	"net"

	"github.com/Microsoft/go-winio"
)

// endpointPath names the diagnostic endpoint for a pid. The convention
// is fixed so a controller can locate a process's stream without any
// prior coordination.
func endpointPath(pid int) string {
	return fmt.Sprintf(`\\.\pipe\selfsvc-diag-%d`, pid)
}

func dialEndpoint(pid int) (net.Conn, error) {
	return winio.DialPipe(endpointPath(pid), nil)
}

func listenEndpoint(pid int) (net.Listener, error) {
	return winio.ListenPipe(endpointPath(pid), nil)
}
