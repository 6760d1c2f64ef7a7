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
	"github.com/superkkt/ofmatch/openflow"

	"github.com/pkg/errors"
)

// Codec converts one match field between its typed form and the wire.
type Codec interface {
	Class() Class
	// Experimenter returns the experimenter id for ClassExperimenter codecs.
	Experimenter() uint32
	Field() uint8
	// ValueLength returns the value length in bytes, or zero for a variable
	// length field.
	ValueLength() int
	Type() FieldType
	// Decode reads the value and the optional mask that follow h. The header
	// and, for the experimenter class, the experimenter id must already have
	// been consumed from buf.
	Decode(h Header, buf *openflow.Buffer) (Field, error)
	// Encode writes the whole entry: header, experimenter id if any, value
	// and the optional mask. Nothing is written on failure.
	Encode(f Field, buf *openflow.Buffer) error
}

// NewCodec returns the codec described by the table row d.
func NewCodec(d Descriptor) Codec {
	if d.Variable() {
		return &metadataCodec{baseCodec{desc: d}}
	}

	return &tableCodec{baseCodec{desc: d}}
}

// payloadPrefix is the number of payload bytes preceding the value.
func payloadPrefix(class Class) int {
	if class == ClassExperimenter {
		return 4
	}

	return 0
}

func writeEntry(d *Descriptor, hasMask bool, payload []byte, buf *openflow.Buffer) error {
	length := payloadPrefix(d.Class) + len(payload)
	if length > 0xFF {
		return errors.Wrapf(ErrBadFieldLength, "%v: payload length %v overflows the header", d.Name, length)
	}

	h := Header{Class: d.Class, Field: d.Field, HasMask: hasMask, Length: uint8(length)}
	h.Encode(buf)
	if d.Class == ClassExperimenter {
		buf.WriteUint32(d.Experimenter)
	}
	buf.WriteBytes(payload)

	return nil
}

type baseCodec struct {
	desc Descriptor
}

func (r *baseCodec) Class() Class {
	return r.desc.Class
}

func (r *baseCodec) Experimenter() uint32 {
	return r.desc.Experimenter
}

func (r *baseCodec) Field() uint8 {
	return r.desc.Field
}

func (r *baseCodec) ValueLength() int {
	return r.desc.Length
}

func (r *baseCodec) Type() FieldType {
	return r.desc.Type
}

func (r *baseCodec) checkField(f Field) error {
	if f.Type != r.desc.Type {
		return errors.Wrapf(ErrValueType, "%v codec cannot encode %v", r.desc.Name, f.Type)
	}
	if f.HasMask() && r.desc.Maskable == false {
		return errors.Wrapf(ErrMaskNotAllowed, "%v", r.desc.Name)
	}

	return nil
}

// tableCodec handles every fixed length field of the table.
type tableCodec struct {
	baseCodec
}

func (r *tableCodec) Decode(h Header, buf *openflow.Buffer) (Field, error) {
	width := r.desc.Length
	expected := width
	if h.HasMask {
		expected *= 2
	}
	if int(h.Length) != payloadPrefix(r.desc.Class)+expected {
		return Field{}, errors.Wrapf(ErrBadFieldLength, "%v: header length %v", r.desc.Name, h.Length)
	}
	if buf.Len() < expected {
		return Field{}, errors.Wrapf(ErrTruncatedPayload, "%v: need %v bytes, have %v", r.desc.Name, expected, buf.Len())
	}

	v, err := decodeValue(r.desc.Kind, width, buf)
	if err != nil {
		return Field{}, errors.Wrap(err, r.desc.Name)
	}
	f := Field{Type: r.desc.Type, Value: v}
	if h.HasMask {
		if f.Mask, err = decodeValue(r.desc.Kind, width, buf); err != nil {
			return Field{}, errors.Wrap(err, r.desc.Name)
		}
	}

	return f, nil
}

func (r *tableCodec) Encode(f Field, buf *openflow.Buffer) error {
	if err := r.checkField(f); err != nil {
		return err
	}

	payload := openflow.NewBuffer(nil)
	if err := encodeValue(r.desc.Kind, r.desc.Length, f.Value, payload); err != nil {
		return errors.Wrap(err, r.desc.Name)
	}
	if f.HasMask() {
		if err := encodeValue(r.desc.Kind, r.desc.Length, f.Mask, payload); err != nil {
			return errors.Wrap(err, r.desc.Name)
		}
	}

	return writeEntry(&r.desc, f.HasMask(), payload.Bytes(), buf)
}

// metadataCodec handles the variable length tunnel metadata fields whose
// value length, 1 to 124 bytes, is taken from each entry.
type metadataCodec struct {
	baseCodec
}

func (r *metadataCodec) ValueLength() int {
	return 0
}

func (r *metadataCodec) Decode(h Header, buf *openflow.Buffer) (Field, error) {
	total := int(h.Length) - payloadPrefix(r.desc.Class)
	width := total
	if h.HasMask {
		if total%2 != 0 {
			return Field{}, errors.Wrapf(ErrBadFieldLength, "%v: odd masked length %v", r.desc.Name, total)
		}
		width = total / 2
	}
	if width < 1 || width > maxMetadataLength {
		return Field{}, errors.Wrapf(ErrBadFieldLength, "%v: value length %v", r.desc.Name, width)
	}
	if buf.Len() < total {
		return Field{}, errors.Wrapf(ErrTruncatedPayload, "%v: need %v bytes, have %v", r.desc.Name, total, buf.Len())
	}

	v, err := decodeValue(KindBytes, width, buf)
	if err != nil {
		return Field{}, errors.Wrap(err, r.desc.Name)
	}
	f := Field{Type: r.desc.Type, Value: v}
	if h.HasMask {
		if f.Mask, err = decodeValue(KindBytes, width, buf); err != nil {
			return Field{}, errors.Wrap(err, r.desc.Name)
		}
	}

	return f, nil
}

func (r *metadataCodec) Encode(f Field, buf *openflow.Buffer) error {
	if err := r.checkField(f); err != nil {
		return err
	}
	v, ok := f.Value.(Bytes)
	if !ok {
		return errors.Wrapf(ErrValueType, "%v: expected bytes, got %T", r.desc.Name, f.Value)
	}
	width := len(v)
	if width < 1 || width > maxMetadataLength {
		return errors.Wrapf(ErrBadFieldLength, "%v: value length %v", r.desc.Name, width)
	}

	payload := openflow.NewBuffer(nil)
	if err := encodeValue(KindBytes, width, v, payload); err != nil {
		return errors.Wrap(err, r.desc.Name)
	}
	if f.HasMask() {
		if err := encodeValue(KindBytes, width, f.Mask, payload); err != nil {
			return errors.Wrap(err, r.desc.Name)
		}
	}

	return writeEntry(&r.desc, f.HasMask(), payload.Bytes(), buf)
}
