//go:build unix

package preflight

import "golang.org/x/sys/unix"

func access(path string, mode int) error {
	bits := uint32(unix.X_OK)
	if mode&Read != 0 {
		bits |= unix.R_OK
	}
	if mode&Write != 0 {
		bits |= unix.W_OK
	}
	return unix.Access(path, bits)
}
