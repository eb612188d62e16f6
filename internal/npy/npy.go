// Package npy reads and writes dense float64 arrays in the NumPy .npy
// format, version 1.0, little-endian, C order.
package npy

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	magic     = "\x93NUMPY"
	descr     = "<f8"
	alignment = 64
	// magic + version + header length
	preambleLen = len(magic) + 2 + 2
)

var (
	ErrBadMagic    = errors.New("npy: not an npy file")
	ErrBadHeader   = errors.New("npy: malformed header")
	ErrUnsupported = errors.New("npy: unsupported array type")
	ErrShape       = errors.New("npy: data length does not match shape")
)

// Size is the element count of shape. An empty shape is a scalar.
func Size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func header(shape []int) []byte {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	tuple := strings.Join(dims, ", ")
	if len(shape) == 1 {
		tuple += ","
	}

	h := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%s), }", descr, tuple)
	// pad with spaces so the data starts on an aligned offset; the header
	// always ends in a newline
	total := preambleLen + len(h) + 1
	if rem := total % alignment; rem != 0 {
		h += strings.Repeat(" ", alignment-rem)
	}
	return []byte(h + "\n")
}

// Write encodes data with the given shape.
func Write(w io.Writer, shape []int, data []float64) error {
	for _, d := range shape {
		if d < 0 {
			return fmt.Errorf("negative dimension in %v: %w", shape, ErrShape)
		}
	}
	if Size(shape) != len(data) {
		return fmt.Errorf("shape %v holds %d values, got %d: %w", shape, Size(shape), len(data), ErrShape)
	}

	h := header(shape)
	if len(h) > math.MaxUint16 {
		return fmt.Errorf("header of %d bytes: %w", len(h), ErrUnsupported)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(magic)
	bw.Write([]byte{1, 0})
	var hlen [2]byte
	binary.LittleEndian.PutUint16(hlen[:], uint16(len(h)))
	bw.Write(hlen[:])
	bw.Write(h)

	var buf [8]byte
	for _, v := range data {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read decodes a little-endian float64 C-order array.
func Read(r io.Reader) (shape []int, data []float64, err error) {
	br := bufio.NewReader(r)

	pre := make([]byte, preambleLen)
	if _, err := io.ReadFull(br, pre); err != nil {
		return nil, nil, fmt.Errorf("read preamble: %w", err)
	}
	if string(pre[:len(magic)]) != magic {
		return nil, nil, ErrBadMagic
	}
	if major := pre[len(magic)]; major != 1 {
		return nil, nil, fmt.Errorf("format version %d: %w", major, ErrUnsupported)
	}

	h := make([]byte, binary.LittleEndian.Uint16(pre[len(magic)+2:]))
	if _, err := io.ReadFull(br, h); err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	shape, err = parseHeader(h)
	if err != nil {
		return nil, nil, err
	}

	data = make([]float64, Size(shape))
	var buf [8]byte
	for i := range data {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, nil, fmt.Errorf("read value %d of %d: %w", i, len(data), err)
		}
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[:]))
	}
	return shape, data, nil
}

func parseHeader(h []byte) ([]int, error) {
	s := string(bytes.TrimSpace(h))

	d, ok := field(s, "descr")
	if !ok {
		return nil, ErrBadHeader
	}
	if strings.Trim(d, "'\"") != descr {
		return nil, fmt.Errorf("descr %s: %w", d, ErrUnsupported)
	}

	f, ok := field(s, "fortran_order")
	if !ok {
		return nil, ErrBadHeader
	}
	if f != "False" {
		return nil, fmt.Errorf("fortran order: %w", ErrUnsupported)
	}

	i := strings.Index(s, "'shape'")
	if i < 0 {
		return nil, ErrBadHeader
	}
	open := strings.IndexByte(s[i:], '(')
	end := strings.IndexByte(s[i:], ')')
	if open < 0 || end < open {
		return nil, ErrBadHeader
	}

	shape := []int{}
	for _, part := range strings.Split(s[i+open+1:i+end], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("dimension %q: %w", part, ErrBadHeader)
		}
		shape = append(shape, n)
	}
	return shape, nil
}

// field returns the raw value of a scalar dict entry.
func field(s, key string) (string, bool) {
	i := strings.Index(s, "'"+key+"'")
	if i < 0 {
		return "", false
	}
	rest := s[i+len(key)+2:]
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return "", false
	}
	rest = rest[colon+1:]
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:comma]), true
}

func WriteFile(path string, shape []int, data []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, shape, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadFile(path string) ([]int, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Read(f)
}
