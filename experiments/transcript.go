package experiments

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Transcript writes one JSON value per line to a zstd compressed file.
type Transcript struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewTranscript(path string) (*Transcript, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Transcript{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

func (t *Transcript) Write(v any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := t.w.Write(b); err != nil {
		return err
	}
	return t.w.WriteByte('\n')
}

// Close flushes the buffered lines and the zstd frame.
func (t *Transcript) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var err1 error
	if err := t.w.Flush(); err != nil {
		err1 = fmt.Errorf("flush transcript: %w", err)
	}
	if err := t.enc.Close(); err != nil && err1 == nil {
		err1 = fmt.Errorf("close zstd encoder: %w", err)
	}
	if err := t.f.Close(); err != nil && err1 == nil {
		err1 = err
	}
	return err1
}

// ReadTranscript decodes every line of a transcript into a fresh T.
func ReadTranscript[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []T
	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var v T
		if err := json.Unmarshal(scanner.Bytes(), &v); err != nil {
			return nil, fmt.Errorf("decode transcript line %d: %w", len(out)+1, err)
		}
		out = append(out, v)
	}
	return out, scanner.Err()
}
