package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/zstd"
)

// ErrUnknownCompression is returned for an unsupported export format.
var ErrUnknownCompression = errors.New("unknown compression")

// Compression selects the codec of an export stream.
type Compression int

const (
	Zstd Compression = iota
	Bzip2
)

// String returns the codec name.
func (c Compression) String() string {
	switch c {
	case Zstd:
		return "zstd"
	case Bzip2:
		return "bzip2"
	default:
		return "unknown"
	}
}

// Ext returns the usual file extension of the codec.
func (c Compression) Ext() string {
	if c == Bzip2 {
		return ".bz2"
	}
	return ".zst"
}

// ParseCompression parses a codec name.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "zstd", "zst":
		return Zstd, nil
	case "bzip2", "bz2":
		return Bzip2, nil
	}
	return Zstd, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
}

func newCompressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case Zstd:
		return zstd.NewWriter(w)
	case Bzip2:
		return bzip2.NewWriter(w, nil)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
}

func newDecompressor(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case Zstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case Bzip2:
		return bzip2.NewReader(r, nil)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
}

// ExportGames writes every saved game to w as compressed JSON, one record
// per line, and returns the number of games written.
func (s *Storage) ExportGames(w io.Writer, c Compression) (int, error) {
	games, err := s.ListGames()
	if err != nil {
		return 0, err
	}

	cw, err := newCompressor(w, c)
	if err != nil {
		return 0, err
	}

	enc := json.NewEncoder(cw)
	for i, rec := range games {
		if err := enc.Encode(rec); err != nil {
			cw.Close()
			return i, fmt.Errorf("export %s: %w", rec.ID, err)
		}
	}
	if err := cw.Close(); err != nil {
		return len(games), fmt.Errorf("flush %s stream: %w", c, err)
	}
	return len(games), nil
}

// ReadExport decodes a stream produced by ExportGames.
func ReadExport(r io.Reader, c Compression) ([]GameRecord, error) {
	cr, err := newDecompressor(r, c)
	if err != nil {
		return nil, err
	}
	defer cr.Close()

	var games []GameRecord
	sc := bufio.NewScanner(cr)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec GameRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return games, fmt.Errorf("decode record %d: %w", len(games)+1, err)
		}
		games = append(games, rec)
	}
	return games, sc.Err()
}
