// assets/embed.go
//
// Ships the built-in dictionary inside the binary so the game runs with no
// word list configured.
package assets

import (
	"embed"
	"io"
)

//go:embed dictionary.txt
var FS embed.FS

// DictionaryName is the path of the built-in word list within FS.
const DictionaryName = "dictionary.txt"

// Dictionary opens the built-in newline-delimited word list.
func Dictionary() (io.ReadCloser, error) {
	return FS.Open(DictionaryName)
}
