//go:build unix

package wpath

import "golang.org/x/sys/unix"

func readable(name string) bool {
	return unix.Access(name, unix.R_OK) == nil
}
