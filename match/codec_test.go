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

package match

import (
	"bytes"
	"testing"

	"github.com/superkkt/ofmatch/openflow"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

// sampleValue returns a value of the field whose bytes start from seed.
func sampleValue(d Descriptor, width int, seed byte) Value {
	raw := make([]byte, width)
	for i := range raw {
		raw[i] = seed + byte(i)*7
	}
	v, err := decodeValue(d.Kind, width, openflow.NewBuffer(raw))
	if err != nil {
		panic(err)
	}

	return v
}

func TestCodecRoundTrip(t *testing.T) {
	reg := MustNewDefaultRegistry()

	for _, version := range []uint8{openflow.OF10_VERSION, openflow.OF13_VERSION} {
		codecs := reg.Codecs(version)
		if len(codecs) == 0 {
			t.Fatalf("no codec registered for version %v", version)
		}

		for _, c := range codecs {
			d, ok := LookupDescriptor(c.Type())
			if !ok {
				t.Fatalf("missing descriptor: %v", c.Type())
			}
			width := c.ValueLength()
			if width == 0 {
				width = 5
			}

			src := []Field{
				{Type: d.Type, Value: sampleValue(d, width, 0x11)},
			}
			if d.Maskable {
				src = append(src, Field{Type: d.Type, Value: sampleValue(d, width, 0x21), Mask: sampleValue(d, width, 0xf0)})
			}

			for _, f := range src {
				buf := openflow.NewBuffer(nil)
				if err := c.Encode(f, buf); err != nil {
					t.Fatalf("unexpected encode error: field=%v, err=%v", f, err)
				}

				expected := HeaderLength + payloadPrefix(d.Class) + width
				if f.HasMask() {
					expected += width
				}
				if buf.Len() != expected {
					t.Fatalf("unexpected encoded length: field=%v, expected=%v, actual=%v", f, expected, buf.Len())
				}

				h, err := DecodeHeader(buf)
				if err != nil {
					t.Fatalf("unexpected header decode error: %v", err)
				}
				if h.Class != d.Class || h.Field != d.Field || h.HasMask != f.HasMask() || int(h.Length) != expected-HeaderLength {
					t.Fatalf("unexpected header: field=%v, header=%v", f, h)
				}

				k, err := entryKey(version, h, buf)
				if err != nil {
					t.Fatalf("unexpected entry key error: %v", err)
				}
				dec, ok := reg.LookupDecoder(k)
				if !ok {
					t.Fatalf("missing decoder: %v", k)
				}
				if dec.Type() != d.Type {
					t.Fatalf("unexpected decoder: expected=%v, actual=%v", d.Type, dec.Type())
				}

				decoded, err := dec.Decode(h, buf)
				if err != nil {
					t.Fatalf("unexpected decode error: field=%v, err=%v", f, err)
				}
				if decoded.Equal(f) == false {
					t.Fatalf("unexpected decoded field: expected=%v, actual=%v", spew.Sdump(f), spew.Sdump(decoded))
				}
				if buf.Len() != 0 {
					t.Fatalf("unexpected remaining bytes: field=%v, remaining=%v", f, buf.Len())
				}
			}
		}
	}
}

func TestCodecIPSource(t *testing.T) {
	d, _ := LookupDescriptor(NXMOfIPSrc)
	c := NewCodec(d)
	if c.Class() != ClassNXM0 || c.Field() != 7 || c.ValueLength() != 4 || c.Type() != NXMOfIPSrc {
		t.Fatalf("unexpected codec constants: class=%v, field=%v, length=%v, type=%v", c.Class(), c.Field(), c.ValueLength(), c.Type())
	}

	buf := openflow.NewBuffer(nil)
	if err := c.Encode(NewField(NXMOfIPSrc, IPv4{10, 0, 0, 1}), buf); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	expected := []byte{0x00, 0x00, 0x0e, 0x04, 0x0a, 0x00, 0x00, 0x01}
	if bytes.Equal(buf.Bytes(), expected) == false {
		t.Fatalf("unexpected encoded bytes: expected=%x, actual=%x", expected, buf.Bytes())
	}
}

func TestCodecErrors(t *testing.T) {
	d, _ := LookupDescriptor(NXMOfIPSrc)
	c := NewCodec(d)

	// Payload shorter than the declared length.
	_, err := c.Decode(Header{Class: ClassNXM0, Field: 7, Length: 4}, openflow.NewBuffer([]byte{0x0a, 0x00}))
	if errors.Cause(err) != ErrTruncatedPayload {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrTruncatedPayload, err)
	}
	// Declared length disagreeing with the field width.
	_, err = c.Decode(Header{Class: ClassNXM0, Field: 7, Length: 5}, openflow.NewBuffer([]byte{0x0a, 0x00, 0x00, 0x01, 0x00}))
	if errors.Cause(err) != ErrBadFieldLength {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrBadFieldLength, err)
	}
	// Masked entry with only the value present.
	_, err = c.Decode(Header{Class: ClassNXM0, Field: 7, HasMask: true, Length: 8}, openflow.NewBuffer([]byte{0x0a, 0x00, 0x00, 0x01}))
	if errors.Cause(err) != ErrTruncatedPayload {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrTruncatedPayload, err)
	}

	// Wrong value variant leaves the buffer untouched.
	buf := openflow.NewBuffer(nil)
	err = c.Encode(NewField(NXMOfIPSrc, MAC{}), buf)
	if errors.Cause(err) != ErrValueType {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrValueType, err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected partial write: %x", buf.Bytes())
	}
	// Field of another type.
	if err := c.Encode(NewField(NXMOfIPDst, IPv4{}), buf); errors.Cause(err) != ErrValueType {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrValueType, err)
	}

	// Mask on a field that cannot be masked.
	d, _ = LookupDescriptor(OXMInPort)
	f := Field{Type: OXMInPort, Value: Uint32(1), Mask: Uint32(0xff)}
	if err := NewCodec(d).Encode(f, buf); errors.Cause(err) != ErrMaskNotAllowed {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrMaskNotAllowed, err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected partial write: %x", buf.Bytes())
	}
}

func TestCodecTruncatesIntegers(t *testing.T) {
	d, _ := LookupDescriptor(OXMPBBISID)
	c := NewCodec(d)

	buf := openflow.NewBuffer(nil)
	if err := c.Encode(NewField(OXMPBBISID, Uint32(0xAABBCCDD)), buf); err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	expected := []byte{0x80, 0x00, 0x4a, 0x03, 0xbb, 0xcc, 0xdd}
	if bytes.Equal(buf.Bytes(), expected) == false {
		t.Fatalf("unexpected encoded bytes: expected=%x, actual=%x", expected, buf.Bytes())
	}
}

func TestCodecTunMetadata(t *testing.T) {
	d, _ := LookupDescriptor(TunMetadata(3))
	c := NewCodec(d)
	if c.ValueLength() != 0 || c.Field() != 43 {
		t.Fatalf("unexpected codec constants: length=%v, field=%v", c.ValueLength(), c.Field())
	}

	src := []struct {
		field    Field
		expected []byte
	}{
		{
			field:    NewField(TunMetadata(3), Bytes{0x01, 0x02, 0x03}),
			expected: []byte{0x00, 0x01, 0x56, 0x03, 0x01, 0x02, 0x03},
		},
		{
			field:    Field{Type: TunMetadata(3), Value: Bytes{0x01, 0x02}, Mask: Bytes{0xff, 0x00}},
			expected: []byte{0x00, 0x01, 0x57, 0x04, 0x01, 0x02, 0xff, 0x00},
		},
	}

	for _, v := range src {
		buf := openflow.NewBuffer(nil)
		if err := c.Encode(v.field, buf); err != nil {
			t.Fatalf("unexpected encode error: %v", err)
		}
		if bytes.Equal(buf.Bytes(), v.expected) == false {
			t.Fatalf("unexpected encoded bytes: expected=%x, actual=%x", v.expected, buf.Bytes())
		}

		h, _ := DecodeHeader(buf)
		f, err := c.Decode(h, buf)
		if err != nil {
			t.Fatalf("unexpected decode error: %v", err)
		}
		if f.Equal(v.field) == false {
			t.Fatalf("unexpected decoded field: expected=%v, actual=%v", v.field, f)
		}
	}

	// Too long and empty values are rejected.
	if err := c.Encode(NewField(TunMetadata(3), make(Bytes, 125)), openflow.NewBuffer(nil)); errors.Cause(err) != ErrBadFieldLength {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrBadFieldLength, err)
	}
	if err := c.Encode(NewField(TunMetadata(3), Bytes{}), openflow.NewBuffer(nil)); errors.Cause(err) != ErrBadFieldLength {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrBadFieldLength, err)
	}
	// Mask of a different length.
	f := Field{Type: TunMetadata(3), Value: Bytes{0x01, 0x02}, Mask: Bytes{0xff}}
	if err := c.Encode(f, openflow.NewBuffer(nil)); errors.Cause(err) != ErrBadFieldLength {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrBadFieldLength, err)
	}
	// Odd masked length.
	_, err := c.Decode(Header{Class: ClassNXM1, Field: 43, HasMask: true, Length: 3}, openflow.NewBuffer([]byte{1, 2, 3}))
	if errors.Cause(err) != ErrBadFieldLength {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrBadFieldLength, err)
	}
}

func TestNewMaskedField(t *testing.T) {
	if _, err := NewMaskedField(OXMInPort, Uint32(1), Uint32(0xff)); errors.Cause(err) != ErrMaskNotAllowed {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrMaskNotAllowed, err)
	}
	f, err := NewMaskedField(OXMIPv4Src, IPv4{10, 0, 0, 0}, IPv4{255, 0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.HasMask() == false {
		t.Fatal("expected a masked field")
	}
}

// A peer may send a mask on a field that cannot be masked. It is decoded as
// sent, but such a field is never encoded.
func TestCodecMaskedNonMaskable(t *testing.T) {
	reg := MustNewDefaultRegistry()
	data := []byte{0x00, 0x00, 0x0d, 0x02, 0x06, 0xff}

	fields, err := NewDecoder(reg).DecodeList(openflow.OF10_VERSION, data)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	expected := Field{Type: NXMOfIPProto, Value: Uint8(6), Mask: Uint8(0xff)}
	if len(fields) != 1 || fields[0].Equal(expected) == false {
		t.Fatalf("unexpected fields: expected=%v, actual=%v", expected, spew.Sdump(fields))
	}
	if s := fields[0].String(); s != "nxm_of_ip_proto=6/255" {
		t.Fatalf("unexpected text form: %v", s)
	}

	buf := openflow.NewBuffer(nil)
	if err := NewEncoder(reg).EncodeList(openflow.OF10_VERSION, fields, buf); errors.Cause(err) != ErrMaskNotAllowed {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrMaskNotAllowed, err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected partial write: %x", buf.Bytes())
	}
}
