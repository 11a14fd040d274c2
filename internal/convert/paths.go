// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"os"
	"strings"
)

// pgmExt is appended to the extension-less input path to name the output.
const pgmExt = ".pgm"

// SplitExt splits path into root and extension so that root+ext == path.
// The extension is everything from the last dot of the final path element,
// unless that element consists only of dots before it (".bashrc", "..x"),
// in which case ext is empty. Only the last extension is split off.
func SplitExt(path string) (root, ext string) {
	sep := -1
	for i := len(path) - 1; i >= 0; i-- {
		if os.IsPathSeparator(path[i]) {
			sep = i
			break
		}
	}

	dot := strings.LastIndexByte(path, '.')
	if dot <= sep {
		return path, ""
	}

	for i := sep + 1; i < dot; i++ {
		if path[i] != '.' {
			return path[:dot], path[dot:]
		}
	}
	return path, ""
}

// OutputPath derives the PGM filename for an input image by replacing its
// extension with .pgm, or appending .pgm when there is none.
func OutputPath(inname string) string {
	root, _ := SplitExt(inname)
	return root + pgmExt
}
