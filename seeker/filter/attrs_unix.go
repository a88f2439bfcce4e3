//go:build !windows

package filter

import (
	"os"
	"strings"
)

type attributes struct {
	hidden   bool
	readOnly bool
	system   bool
}

// Dotfiles are hidden, files without the owner write bit are read-only and
// there is no system attribute outside Windows.
func attributesOf(info os.FileInfo) attributes {
	return attributes{
		hidden:   strings.HasPrefix(info.Name(), "."),
		readOnly: info.Mode().Perm()&0o200 == 0,
	}
}
