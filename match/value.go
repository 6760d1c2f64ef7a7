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
	"encoding/hex"
	"fmt"
	"net"

	"github.com/superkkt/ofmatch/openflow"

	"github.com/pkg/errors"
)

// Kind is the wire representation of a field value.
type Kind uint8

const (
	KindUint    Kind = iota // big-endian unsigned integer of the field width
	KindMAC                 // 48-bit hardware address
	KindIPv4                // 32-bit address
	KindIPv6                // 128-bit address
	KindUint128             // 128-bit opaque integer
	KindBytes               // variable length octets
)

func (r Kind) String() string {
	switch r {
	case KindUint:
		return "uint"
	case KindMAC:
		return "mac"
	case KindIPv4:
		return "ipv4"
	case KindIPv6:
		return "ipv6"
	case KindUint128:
		return "uint128"
	case KindBytes:
		return "bytes"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(r))
	}
}

// Value is the closed set of match field values: Uint8, Uint16, Uint32,
// Uint64, MAC, IPv4, IPv6, Uint128 and Bytes.
type Value interface {
	Kind() Kind
	String() string
	isValue()
}

type Uint8 uint8
type Uint16 uint16
type Uint32 uint32
type Uint64 uint64
type MAC [6]byte
type IPv4 [4]byte
type IPv6 [16]byte
type Uint128 [16]byte
type Bytes []byte

func (r Uint8) Kind() Kind   { return KindUint }
func (r Uint16) Kind() Kind  { return KindUint }
func (r Uint32) Kind() Kind  { return KindUint }
func (r Uint64) Kind() Kind  { return KindUint }
func (r MAC) Kind() Kind     { return KindMAC }
func (r IPv4) Kind() Kind    { return KindIPv4 }
func (r IPv6) Kind() Kind    { return KindIPv6 }
func (r Uint128) Kind() Kind { return KindUint128 }
func (r Bytes) Kind() Kind   { return KindBytes }

func (r Uint8) isValue()   {}
func (r Uint16) isValue()  {}
func (r Uint32) isValue()  {}
func (r Uint64) isValue()  {}
func (r MAC) isValue()     {}
func (r IPv4) isValue()    {}
func (r IPv6) isValue()    {}
func (r Uint128) isValue() {}
func (r Bytes) isValue()   {}

func (r Uint8) String() string  { return fmt.Sprintf("%d", uint8(r)) }
func (r Uint16) String() string { return fmt.Sprintf("%d", uint16(r)) }
func (r Uint32) String() string { return fmt.Sprintf("%d", uint32(r)) }
func (r Uint64) String() string { return fmt.Sprintf("%d", uint64(r)) }

func (r MAC) String() string {
	return net.HardwareAddr(r[:]).String()
}

func (r IPv4) String() string {
	return net.IP(r[:]).String()
}

func (r IPv6) String() string {
	return net.IP(r[:]).String()
}

func (r Uint128) String() string {
	return "0x" + hex.EncodeToString(r[:])
}

func (r Bytes) String() string {
	return "0x" + hex.EncodeToString(r)
}

// NewMAC converts a hardware address into a MAC value.
func NewMAC(mac net.HardwareAddr) MAC {
	if mac == nil {
		panic("mac is nil")
	}

	var v MAC
	copy(v[:], mac)
	return v
}

// NewIPv4 converts an IPv4 address into an IPv4 value.
func NewIPv4(ip net.IP) IPv4 {
	if ip == nil {
		panic("ip is nil")
	}

	var v IPv4
	copy(v[:], ip.To4())
	return v
}

// NewIPv6 converts an IP address into an IPv6 value.
func NewIPv6(ip net.IP) IPv6 {
	if ip == nil {
		panic("ip is nil")
	}

	var v IPv6
	copy(v[:], ip.To16())
	return v
}

// uintOf returns the numeric content of an unsigned integer value.
func uintOf(v Value) (uint64, bool) {
	switch n := v.(type) {
	case Uint8:
		return uint64(n), true
	case Uint16:
		return uint64(n), true
	case Uint32:
		return uint64(n), true
	case Uint64:
		return uint64(n), true
	default:
		return 0, false
	}
}

// uintValue wraps n in the smallest variant that holds width bytes.
func uintValue(width int, n uint64) Value {
	switch {
	case width <= 1:
		return Uint8(n)
	case width <= 2:
		return Uint16(n)
	case width <= 4:
		return Uint32(n)
	default:
		return Uint64(n)
	}
}

// equalValue compares two values. Unsigned integers compare numerically
// regardless of their variant.
func equalValue(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if x, ok := uintOf(a); ok {
		y, ok := uintOf(b)
		return ok && x == y
	}
	if x, ok := a.(Bytes); ok {
		y, ok := b.(Bytes)
		return ok && bytes.Equal(x, y)
	}

	return a == b
}

// decodeValue reads a value of the given kind and width from buf.
func decodeValue(kind Kind, width int, buf *openflow.Buffer) (Value, error) {
	if buf.Len() < width {
		return nil, errors.Wrapf(ErrTruncatedPayload, "need %v bytes, have %v", width, buf.Len())
	}

	switch kind {
	case KindUint:
		n, err := buf.ReadUint(width)
		if err != nil {
			return nil, err
		}
		return uintValue(width, n), nil
	case KindBytes:
		v, err := buf.ReadBytes(width)
		if err != nil {
			return nil, err
		}
		return Bytes(v), nil
	}

	v, err := buf.ReadBytes(width)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindMAC:
		var mac MAC
		copy(mac[:], v)
		return mac, nil
	case KindIPv4:
		var ip IPv4
		copy(ip[:], v)
		return ip, nil
	case KindIPv6:
		var ip IPv6
		copy(ip[:], v)
		return ip, nil
	case KindUint128:
		var n Uint128
		copy(n[:], v)
		return n, nil
	default:
		panic(fmt.Sprintf("unexpected value kind: %v", kind))
	}
}

// encodeValue writes v as exactly width bytes. Unsigned integers keep their
// low-order bytes.
func encodeValue(kind Kind, width int, v Value, buf *openflow.Buffer) error {
	if v == nil {
		return errors.Wrap(ErrValueType, "nil value")
	}
	if v.Kind() != kind {
		return errors.Wrapf(ErrValueType, "expected %v, got %v (%T)", kind, v.Kind(), v)
	}

	switch n := v.(type) {
	case Uint8, Uint16, Uint32, Uint64:
		u, _ := uintOf(n)
		buf.WriteUint(u, width)
	case MAC:
		buf.WriteBytes(n[:])
	case IPv4:
		buf.WriteBytes(n[:])
	case IPv6:
		buf.WriteBytes(n[:])
	case Uint128:
		buf.WriteBytes(n[:])
	case Bytes:
		if len(n) != width {
			return errors.Wrapf(ErrBadFieldLength, "value has %v bytes, expected %v", len(n), width)
		}
		buf.WriteBytes(n)
	default:
		return errors.Wrapf(ErrValueType, "%T", v)
	}

	return nil
}
