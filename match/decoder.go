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
	"fmt"
	"strings"

	"github.com/superkkt/ofmatch/openflow"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var (
	logger = logging.MustGetLogger("match")
)

// Policy decides what the decoder does with an entry that has no codec.
type Policy uint8

const (
	// Skip drops the entry and continues with the next one.
	Skip Policy = iota
	// Keep returns the entry as an unknown Entry holding its raw payload.
	Keep
	// Reject fails the decoding with ErrUnknownField.
	Reject
)

func (r Policy) String() string {
	switch r {
	case Skip:
		return "skip"
	case Keep:
		return "keep"
	case Reject:
		return "reject"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(r))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return Skip, nil
	case "keep":
		return Keep, nil
	case "reject":
		return Reject, nil
	default:
		return Skip, fmt.Errorf("invalid unknown field policy: %v", s)
	}
}

// UnknownObserver is notified of every entry that has no codec, whatever the
// policy is.
type UnknownObserver interface {
	OnUnknownField(key Key, length int)
}

// Entry is one decoded match entry. Known is false for an entry without a
// codec, in which case Payload holds its value bytes (after the experimenter
// id, if any) and Field is empty.
type Entry struct {
	Header       Header
	Experimenter uint32
	Known        bool
	Field        Field
	Payload      []byte
}

// Decoder decodes match entries using the codecs of Registry. The zero
// policies skip unknown entries. A Decoder holds no mutable state and may be
// shared by multiple goroutines.
type Decoder struct {
	Registry            *Registry
	UnknownField        Policy // entries of a non-experimenter class
	UnknownExperimenter Policy // experimenter class entries
	Observer            UnknownObserver
}

func NewDecoder(reg *Registry) *Decoder {
	if reg == nil {
		panic("registry is nil")
	}

	return &Decoder{Registry: reg}
}

// entryKey returns the decoder key of an entry. For the experimenter class it
// consumes the experimenter id from the payload.
func entryKey(version uint8, h Header, payload *openflow.Buffer) (Key, error) {
	k := Key{Version: version, Class: h.Class, Field: h.Field}
	if h.Class != ClassExperimenter {
		return k, nil
	}

	id, err := payload.ReadUint32()
	if err != nil {
		return Key{}, errors.Wrapf(ErrMalformedHeader, "experimenter entry without experimenter id: %v", h)
	}
	k.Experimenter = id

	return k, nil
}

// decode resolves the codec of an entry whose payload has been cut from the
// stream. skip is true if the entry should be dropped silently.
func (r *Decoder) decode(version uint8, h Header, payload *openflow.Buffer) (entry Entry, skip bool, err error) {
	k, err := entryKey(version, h, payload)
	if err != nil {
		return Entry{}, false, err
	}
	entry = Entry{Header: h, Experimenter: k.Experimenter}

	codec, ok := r.Registry.LookupDecoder(k)
	if !ok {
		if r.Observer != nil {
			r.Observer.OnUnknownField(k, int(h.Length))
		}

		policy := r.UnknownField
		if h.Class == ClassExperimenter {
			policy = r.UnknownExperimenter
		}
		switch policy {
		case Keep:
			entry.Payload = append([]byte(nil), payload.Bytes()...)
			return entry, false, nil
		case Reject:
			return Entry{}, false, errors.Wrapf(ErrUnknownField, "%v", k)
		default:
			logger.Debugf("skipping an unknown match entry: %v, length=%v", k, h.Length)
			return entry, true, nil
		}
	}

	f, err := codec.Decode(h, payload)
	if err != nil {
		return Entry{}, false, err
	}
	entry.Known = true
	entry.Field = f

	return entry, false, nil
}

// DecodeEntry decodes a single entry from buf and advances buf past it, by
// exactly four bytes plus the declared length. An unknown entry is returned
// with Known set to false unless the policy rejects it.
func (r *Decoder) DecodeEntry(version uint8, buf *openflow.Buffer) (Entry, error) {
	h, err := DecodeHeader(buf)
	if err != nil {
		return Entry{}, err
	}
	payload, err := buf.Next(int(h.Length))
	if err != nil {
		return Entry{}, errors.Wrapf(ErrTruncatedPayload, "%v: %v bytes remaining", h, buf.Len())
	}

	entry, skip, err := r.decode(version, h, payload)
	if err != nil {
		return Entry{}, err
	}
	if skip {
		entry.Payload = append([]byte(nil), payload.Bytes()...)
	}

	return entry, nil
}

// Scan cuts length bytes from buf and returns a lazy iterator over the match
// entries they contain. buf is advanced past the list immediately.
func (r *Decoder) Scan(version uint8, buf *openflow.Buffer, length int) (*Scanner, error) {
	if length < 0 {
		return nil, errors.Wrapf(ErrMalformedList, "negative list length %v", length)
	}
	list, err := buf.Next(length)
	if err != nil {
		return nil, errors.Wrapf(ErrTruncatedPayload, "list length %v, %v bytes remaining", length, buf.Len())
	}

	return &Scanner{decoder: r, version: version, list: list}, nil
}

// DecodeList decodes a whole entry list and returns its known fields in wire
// order.
func (r *Decoder) DecodeList(version uint8, data []byte) ([]Field, error) {
	s, err := r.Scan(version, openflow.NewBuffer(data), len(data))
	if err != nil {
		return nil, err
	}

	return s.Fields()
}

// Scanner iterates the entries of a list. It is finite and restartable with
// Reset, and it is not safe for concurrent use.
type Scanner struct {
	decoder *Decoder
	version uint8
	list    *openflow.Buffer
	entry   Entry
	err     error
}

// Next advances to the next entry, skipping unknown entries if the policy
// says so. It returns false at the end of the list or on the first error.
func (r *Scanner) Next() bool {
	for {
		if r.err != nil || r.list.Len() == 0 {
			return false
		}
		if r.list.Len() < HeaderLength {
			r.err = errors.Wrapf(ErrMalformedList, "%v trailing bytes at offset %v", r.list.Len(), r.list.Offset())
			return false
		}

		h, err := DecodeHeader(r.list)
		if err != nil {
			r.err = err
			return false
		}
		payload, err := r.list.Next(int(h.Length))
		if err != nil {
			r.err = errors.Wrapf(ErrMalformedList, "%v overruns the list by %v bytes", h, int(h.Length)-r.list.Len())
			return false
		}

		entry, skip, err := r.decoder.decode(r.version, h, payload)
		if err != nil {
			r.err = err
			return false
		}
		if skip {
			continue
		}
		r.entry = entry

		return true
	}
}

// Entry returns the current entry.
func (r *Scanner) Entry() Entry {
	return r.entry
}

func (r *Scanner) Err() error {
	return r.err
}

// Reset rewinds the scanner to the first entry.
func (r *Scanner) Reset() {
	r.list.Rewind()
	r.entry = Entry{}
	r.err = nil
}

// Entries drains the scanner and returns all entries, known or not.
func (r *Scanner) Entries() ([]Entry, error) {
	result := make([]Entry, 0)
	for r.Next() {
		result = append(result, r.Entry())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Fields drains the scanner and returns the known fields only.
func (r *Scanner) Fields() ([]Field, error) {
	result := make([]Field, 0)
	for r.Next() {
		if e := r.Entry(); e.Known {
			result = append(result, e.Field)
		}
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
