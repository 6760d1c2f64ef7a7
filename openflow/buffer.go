/*
 * Cherry - An OpenFlow Controller
 *
 * Copyright (C) 2015 Samjung Data Service, Inc. All rights reserved.
 * Kitae Kim <superkkt@sds.co.kr>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package openflow

import (
	"encoding/binary"
)

// Buffer is a sequential big-endian cursor over a byte slice. Reads consume
// bytes from the front and writes append to the end. A Buffer is owned by a
// single caller at a time and is not safe for concurrent use.
type Buffer struct {
	data []byte
	off  int
}

func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Len returns the number of unread bytes.
func (r *Buffer) Len() int {
	return len(r.data) - r.off
}

// Offset returns the number of bytes consumed so far.
func (r *Buffer) Offset() int {
	return r.off
}

// Bytes returns the unread portion of the buffer without consuming it.
func (r *Buffer) Bytes() []byte {
	return r.data[r.off:]
}

// Rewind moves the read cursor back to the beginning.
func (r *Buffer) Rewind() {
	r.off = 0
}

func (r *Buffer) Skip(n int) error {
	if n < 0 || r.Len() < n {
		return ErrInvalidPacketLength
	}
	r.off += n

	return nil
}

// Peek returns the next n bytes without consuming them.
func (r *Buffer) Peek(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, ErrInvalidPacketLength
	}

	return r.data[r.off : r.off+n], nil
}

// Next consumes the next n bytes and returns them as a new Buffer that shares
// the underlying memory. The caller owns the returned region.
func (r *Buffer) Next(n int) (*Buffer, error) {
	v, err := r.Peek(n)
	if err != nil {
		return nil, err
	}
	r.off += n

	// Cap the slice so that writes to the sub-buffer never clobber the parent.
	return NewBuffer(v[:n:n]), nil
}

// ReadBytes consumes the next n bytes and returns a copy of them.
func (r *Buffer) ReadBytes(n int) ([]byte, error) {
	v, err := r.Peek(n)
	if err != nil {
		return nil, err
	}
	r.off += n

	c := make([]byte, n)
	copy(c, v)

	return c, nil
}

func (r *Buffer) ReadUint8() (uint8, error) {
	if r.Len() < 1 {
		return 0, ErrInvalidPacketLength
	}
	v := r.data[r.off]
	r.off++

	return v, nil
}

func (r *Buffer) ReadUint16() (uint16, error) {
	if r.Len() < 2 {
		return 0, ErrInvalidPacketLength
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2

	return v, nil
}

func (r *Buffer) ReadUint32() (uint32, error) {
	if r.Len() < 4 {
		return 0, ErrInvalidPacketLength
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4

	return v, nil
}

func (r *Buffer) ReadUint48() (uint64, error) {
	return r.ReadUint(6)
}

func (r *Buffer) ReadUint64() (uint64, error) {
	if r.Len() < 8 {
		return 0, ErrInvalidPacketLength
	}
	v := binary.BigEndian.Uint64(r.data[r.off:])
	r.off += 8

	return v, nil
}

// ReadUint reads an n-byte (1 <= n <= 8) big-endian unsigned integer.
func (r *Buffer) ReadUint(n int) (uint64, error) {
	if n < 1 || n > 8 {
		panic("invalid integer width")
	}
	if r.Len() < n {
		return 0, ErrInvalidPacketLength
	}

	var v uint64
	for _, b := range r.data[r.off : r.off+n] {
		v = v<<8 | uint64(b)
	}
	r.off += n

	return v, nil
}

func (r *Buffer) WriteUint8(v uint8) {
	r.data = append(r.data, v)
}

func (r *Buffer) WriteUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	r.data = append(r.data, b[:]...)
}

func (r *Buffer) WriteUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	r.data = append(r.data, b[:]...)
}

func (r *Buffer) WriteUint48(v uint64) {
	r.WriteUint(v, 6)
}

func (r *Buffer) WriteUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	r.data = append(r.data, b[:]...)
}

// WriteUint writes the low n bytes (1 <= n <= 8) of v in big-endian order.
func (r *Buffer) WriteUint(v uint64, n int) {
	if n < 1 || n > 8 {
		panic("invalid integer width")
	}
	for i := n - 1; i >= 0; i-- {
		r.data = append(r.data, byte(v>>(uint(i)*8)))
	}
}

func (r *Buffer) WriteBytes(v []byte) {
	r.data = append(r.data, v...)
}

// WriteZeros appends n zero bytes.
func (r *Buffer) WriteZeros(n int) {
	for i := 0; i < n; i++ {
		r.data = append(r.data, 0)
	}
}

// PutUint16At overwrites two bytes at the absolute position pos. It is used
// to back-patch length fields after the payload has been written.
func (r *Buffer) PutUint16At(pos int, v uint16) {
	binary.BigEndian.PutUint16(r.data[pos:pos+2], v)
}

// Size returns the total number of bytes held by the buffer, read or not.
func (r *Buffer) Size() int {
	return len(r.data)
}
