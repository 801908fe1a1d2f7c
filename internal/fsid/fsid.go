// Package fsid extracts a platform file identity (device, inode) from
// [os.FileInfo], where the platform exposes one.
package fsid

import "os"

// ID identifies a file by device and inode. Valid is false on platforms
// that don't expose this information, in which case the ID carries no
// identity and must not be compared with other IDs (see [ID.Comparable]).
type ID struct {
	Dev   uint64
	Ino   uint64
	Valid bool
}

// Comparable reports whether id can be meaningfully compared against other
// IDs for equality. It is false on platforms without inode semantics.
func (id ID) Comparable() bool {
	return id.Valid
}

// Of returns the file identity of info.
func Of(info os.FileInfo) ID {
	return idOf(info)
}
