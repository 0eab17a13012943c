// Package vocab estimates the symbol vocabulary of the target language from a
// word list in the "word [count]" format, one entry per line.
package vocab

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/edsrzf/mmap-go"
)

// ErrEmpty is returned for a file that lists no words.
var ErrEmpty = errors.New("vocab: no words")

// Stats summarizes a word list.
type Stats struct {
	Words   int // distinct words
	Symbols int // distinct characters across all words
}

// Scan maps the file at path read-only and collects its statistics. Only the
// first field of each line is used; blank lines and lines starting with '#'
// are skipped.
func Scan(path string) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return Stats{}, err
	}
	if fi.Size() == 0 {
		return Stats{}, fmt.Errorf("%w: %s", ErrEmpty, path)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return Stats{}, fmt.Errorf("vocab: map %s: %w", path, err)
	}
	defer m.Unmap()

	st := scan(m)
	if st.Words == 0 {
		return Stats{}, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return st, nil
}

func scan(data []byte) Stats {
	words := make(map[string]struct{})
	symbols := make(map[rune]struct{})
	for len(data) > 0 {
		line := data
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			data = nil
		}
		fields := bytes.Fields(line)
		if len(fields) == 0 || fields[0][0] == '#' {
			continue
		}
		w := fields[0]
		if _, ok := words[string(w)]; ok {
			continue
		}
		words[string(w)] = struct{}{}
		for len(w) > 0 {
			r, size := utf8.DecodeRune(w)
			symbols[r] = struct{}{}
			w = w[size:]
		}
	}
	return Stats{Words: len(words), Symbols: len(symbols)}
}
