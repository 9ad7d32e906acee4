// Package textfile implements ports.DocumentReader for files on disk.
// Documents are decoded from a configurable charset (any WHATWG label such as
// "utf-8", "windows-1251", "koi8-r") into UTF-8 before being split into lines.
package textfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/corey/orgscan/internal/ports"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Reader reads documents from the filesystem.
type Reader struct {
	enc  encoding.Encoding
	name string
}

var _ ports.DocumentReader = (*Reader)(nil)

// NewReader returns a Reader decoding documents from the named charset.
// An empty label means UTF-8. Unknown labels are configuration errors.
func NewReader(label string) (*Reader, error) {
	enc, name, err := LookupEncoding(label)
	if err != nil {
		return nil, err
	}
	return &Reader{enc: enc, name: name}, nil
}

// LookupEncoding resolves a charset label to its encoding and canonical name.
func LookupEncoding(label string) (encoding.Encoding, string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", &ports.ConfigurationError{Source: "encoding", Err: fmt.Errorf("unknown charset %q", label)}
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = label
	}
	if name == "utf-8" {
		// Strip a leading byte-order mark, as text editors on Windows write one.
		enc = unicode.UTF8BOM
	}
	return enc, name, nil
}

// Encoding returns the canonical charset name.
func (r *Reader) Encoding() string { return r.name }

// ReadLines returns the decoded lines of the file at path. "\n", "\r\n" and a
// lone "\r" all end a line.
func (r *Reader) ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}

	return splitLines(transform.NewReader(f, r.enc.NewDecoder()))
}

func splitLines(src io.Reader) ([]string, error) {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(scanLines)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// scanLines is bufio.ScanLines extended to treat a lone '\r' as a line end.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, b := range data {
		switch b {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			// Need one more byte to tell "\r" from "\r\n".
			return 0, nil, nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
