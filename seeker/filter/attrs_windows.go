//go:build windows

package filter

import (
	"os"
	"syscall"
)

const (
	fileAttributeReadOnly = 0x00000001
	fileAttributeHidden   = 0x00000002
	fileAttributeSystem   = 0x00000004
)

type attributes struct {
	hidden   bool
	readOnly bool
	system   bool
}

func attributesOf(info os.FileInfo) attributes {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return attributes{readOnly: info.Mode().Perm()&0o200 == 0}
	}
	return attributes{
		hidden:   data.FileAttributes&fileAttributeHidden != 0,
		readOnly: data.FileAttributes&fileAttributeReadOnly != 0,
		system:   data.FileAttributes&fileAttributeSystem != 0,
	}
}
