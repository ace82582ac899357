// Package record writes timestamped robot-state snapshots as a CBOR
// sequence, one encoded Sample per telemetry sample, for offline analysis
// and playback.
package record

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"

	scout "github.com/woodrim/go-scout"
)

// Sample is one recorded snapshot.
type Sample struct {
	Time  time.Time        `cbor:"1,keyasint"`
	State scout.RobotState `cbor:"2,keyasint"`
}

// Recorder appends samples to an underlying writer. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	w     io.Writer
	c     io.Closer
	enc   *cbor.Encoder
	count uint64
}

// NewRecorder wraps an existing writer. The caller keeps ownership of w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w, enc: cbor.NewEncoder(w)}
}

// Create opens (or truncates) a recording file.
func Create(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r := NewRecorder(f)
	r.c = f
	return r, nil
}

// Record appends one snapshot stamped with the current time.
func (r *Recorder) Record(state scout.RobotState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enc.Encode(Sample{Time: time.Now(), State: state}); err != nil {
		return err
	}
	r.count++
	return nil
}

// Count returns the number of samples recorded so far.
func (r *Recorder) Count() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Close closes the underlying file if the recorder owns one.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.c != nil {
		return r.c.Close()
	}
	return nil
}

// ReadAll decodes every sample from a recording stream.
func ReadAll(rd io.Reader) ([]Sample, error) {
	dec := cbor.NewDecoder(rd)
	var out []Sample
	for {
		var s Sample
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, err
		}
		out = append(out, s)
	}
}
