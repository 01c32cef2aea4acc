//go:build !windows && !linux
// +build !windows,!linux

package svcmgr

func newPlatform(name string) (Service, error) {
	return nil, ErrUnsupportedPlatform
}
