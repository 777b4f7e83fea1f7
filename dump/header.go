package dump

import (
	"encoding/binary"
	"io"
)

// Header is the dimension header at the start of a headered dump.
type Header struct {
	Width  uint32 // Image width
	Height uint32 // Image height
}

func (s *Header) Read(r io.Reader, order binary.ByteOrder) error {
	var err error

	err = binary.Read(r, order, &s.Width)
	if err != nil {
		return err
	}

	err = binary.Read(r, order, &s.Height)
	if err != nil {
		return err
	}

	return nil
}

func (s *Header) Write(w io.Writer, order binary.ByteOrder) error {
	var err error

	err = binary.Write(w, order, s.Width)
	if err != nil {
		return err
	}

	err = binary.Write(w, order, s.Height)
	if err != nil {
		return err
	}

	return nil
}
