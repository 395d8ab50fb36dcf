//go:build linux

package main

import "golang.org/x/sys/unix"

// isatty returns true if the given file descriptor is a terminal
func isatty(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TCGETS) // #nosec G115 -- fd comes from os.File
	return err == nil
}
