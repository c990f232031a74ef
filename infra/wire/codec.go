package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Encoder writes shard records as text, one decimal integer per line
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder creates new encoder
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// WriteCount writes the number of records stored in shard
func (e *Encoder) WriteCount(n uint64) error {
	return e.writeUint(n)
}

// WritePID writes single pid record
func (e *Encoder) WritePID(pid PID) error {
	return e.writeUint(uint64(pid))
}

// WriteHalo writes halo record as start line followed by end line
func (e *Encoder) WriteHalo(h Halo) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if err := e.writeUint(h.Start); err != nil {
		return err
	}
	return e.writeUint(h.End)
}

// Flush writes buffered data to underlying writer
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

func (e *Encoder) writeUint(v uint64) error {
	var buf [21]byte
	b := strconv.AppendUint(buf[:0], v, 10)
	b = append(b, '\n')
	_, err := e.w.Write(b)
	return err
}

// decoder reads decimal integers line by line, keeping track of line number for error reporting
type decoder struct {
	s    *bufio.Scanner
	line int
}

func newDecoder(r io.Reader) *decoder {
	return &decoder{s: bufio.NewScanner(r)}
}

func (d *decoder) readUint() (uint64, error) {
	if !d.s.Scan() {
		if err := d.s.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("line %d: %w", d.line+1, io.ErrUnexpectedEOF)
	}
	d.line++
	v, err := strconv.ParseUint(strings.TrimSpace(d.s.Text()), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", d.line, err)
	}
	return v, nil
}

func (d *decoder) expectEOF() error {
	for d.s.Scan() {
		d.line++
		if strings.TrimSpace(d.s.Text()) != "" {
			return fmt.Errorf("line %d: %w", d.line, ErrTrailingData)
		}
	}
	return d.s.Err()
}

// ErrTrailingData is returned when shard contains more records than declared by its count line
var ErrTrailingData = errors.New("unexpected data after last record")

// DecodePIDShard reads pid shard and passes pids to onPID one by one, returns number of pids declared by count line.
// Nothing is preallocated based on count line so corrupted file can't exhaust memory.
func DecodePIDShard(r io.Reader, onPID func(pid PID) error) (uint64, error) {
	d := newDecoder(r)
	n, err := d.readUint()
	if err != nil {
		return 0, fmt.Errorf("reading record count failed: %w", err)
	}
	for i := uint64(0); i < n; i++ {
		v, err := d.readUint()
		if err != nil {
			return 0, fmt.Errorf("reading pid %d failed: %w", i, err)
		}
		if err := onPID(PID(v)); err != nil {
			return 0, err
		}
	}
	if err := d.expectEOF(); err != nil {
		return 0, err
	}
	return n, nil
}

// DecodeHaloShard reads halo shard and passes halos to onHalo one by one, returns number of halos declared by count line
func DecodeHaloShard(r io.Reader, onHalo func(h Halo) error) (uint64, error) {
	d := newDecoder(r)
	n, err := d.readUint()
	if err != nil {
		return 0, fmt.Errorf("reading record count failed: %w", err)
	}
	for i := uint64(0); i < n; i++ {
		start, err := d.readUint()
		if err != nil {
			return 0, fmt.Errorf("reading start of halo %d failed: %w", i, err)
		}
		end, err := d.readUint()
		if err != nil {
			return 0, fmt.Errorf("reading end of halo %d failed: %w", i, err)
		}
		h := Halo{Start: start, End: end}
		if err := h.Validate(); err != nil {
			return 0, fmt.Errorf("halo %d is invalid: %w", i, err)
		}
		if err := onHalo(h); err != nil {
			return 0, err
		}
	}
	if err := d.expectEOF(); err != nil {
		return 0, err
	}
	return n, nil
}
