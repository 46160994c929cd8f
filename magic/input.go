package magic

import (
	"bytes"
	"errors"
	"io"
)

// Input is anything that offers random access to a known number of bytes.
// *bytes.Reader, *strings.Reader and *io.SectionReader satisfy it.
type Input interface {
	io.ReaderAt
	Size() int64
}

// BytesInput wraps a byte slice as an Input.
func BytesInput(b []byte) Input {
	return bytes.NewReader(b)
}

// seekerInput adapts an io.ReadSeeker to Input. Reads move the stream
// position; the caller restores it.
type seekerInput struct {
	rs   io.ReadSeeker
	size int64
}

func (s *seekerInput) Size() int64 {
	return s.size
}

func (s *seekerInput) ReadAt(p []byte, off int64) (int, error) {
	if ra, ok := s.rs.(io.ReaderAt); ok {
		return ra.ReadAt(p, off)
	}
	if _, err := s.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}
	return io.ReadFull(s.rs, p)
}

// streamInput measures rs and returns it as an Input along with a function
// that puts the stream back where it was.
func streamInput(rs io.ReadSeeker) (Input, func() error, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, nil, &ReadError{Op: "seek", Offset: 0, Err: err}
	}
	restore := func() error {
		if _, err := rs.Seek(pos, io.SeekStart); err != nil {
			return &ReadError{Op: "restore", Offset: pos, Err: err}
		}
		return nil
	}

	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, nil, errors.Join(&ReadError{Op: "seek", Offset: pos, Err: err}, restore())
	}

	return &seekerInput{rs: rs, size: size}, restore, nil
}

// ReadPrefix returns the first min(n, in.Size()) bytes of in.
func ReadPrefix(in Input, n int) ([]byte, error) {
	if isNil(in) {
		return nil, ErrInvalidInput
	}
	size := in.Size()
	if int64(n) < size {
		size = int64(n)
	}
	if size < 0 {
		size = 0
	}

	buf := make([]byte, size)
	read, err := in.ReadAt(buf, 0)
	if int64(read) < size {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, &ReadError{Op: "read", Offset: 0, Err: err}
	}
	return buf, nil
}

// ReadStreamPrefix is like ReadPrefix for a seekable stream, measured from
// the start of the stream. The stream position is restored before returning.
func ReadStreamPrefix(rs io.ReadSeeker, n int) (prefix []byte, err error) {
	if isNil(rs) {
		return nil, ErrInvalidInput
	}

	in, restore, err := streamInput(rs)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			prefix, err = nil, rerr
		}
	}()

	return ReadPrefix(in, n)
}
