//go:build unix

package fsid

import (
	"os"
	"syscall"
)

func idOf(info os.FileInfo) ID {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return ID{}
	}
	return ID{
		Dev:   uint64(stat.Dev), //nolint:unconvert
		Ino:   uint64(stat.Ino), //nolint:unconvert
		Valid: true,
	}
}
