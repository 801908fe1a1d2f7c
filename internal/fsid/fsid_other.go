//go:build !unix

package fsid

import "os"

// On platforms without (dev, ino) semantics, identity is never comparable
// and every file is admitted by [internal/inodeset].
func idOf(_ os.FileInfo) ID {
	return ID{}
}
