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
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// String returns the text form of the field, name=value or name=value/mask.
func (r Field) String() string {
	d, ok := LookupDescriptor(r.Type)
	if !ok {
		return fmt.Sprintf("%v=%v", r.Type, r.Value)
	}

	s := d.Name + "=" + formatValue(&d, r.Value)
	if r.HasMask() {
		s += "/" + formatValue(&d, r.Mask)
	}

	return s
}

func formatValue(d *Descriptor, v Value) string {
	if v == nil {
		return "<nil>"
	}
	if n, ok := uintOf(v); ok && d.Hex {
		return fmt.Sprintf("0x%x", n)
	}

	return v.String()
}

// FormatList returns the comma separated text form of fields.
func FormatList(fields []Field) string {
	s := make([]string, len(fields))
	for i, v := range fields {
		s[i] = v.String()
	}

	return strings.Join(s, ",")
}

// ParseList parses comma separated fields such as
// "eth_type=0x800,ipv4_src=10.0.0.0/24". Empty items are ignored.
func ParseList(text string) ([]Field, error) {
	result := make([]Field, 0)
	for _, v := range strings.Split(text, ",") {
		v = strings.TrimSpace(v)
		if len(v) == 0 {
			continue
		}
		f, err := ParseField(v)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}

	return result, nil
}

// ParseField parses the text form of one field. Integers are decimal or 0x
// prefixed hexadecimal. Address masks may also be given as a prefix length.
func ParseField(text string) (Field, error) {
	i := strings.IndexRune(text, '=')
	if i <= 0 {
		return Field{}, errors.Wrapf(ErrInvalidSyntax, "missing field name: %v", text)
	}
	name := strings.TrimSpace(text[:i])
	d, ok := LookupName(name)
	if !ok {
		return Field{}, errors.Wrapf(ErrUnsupportedField, "unknown field name: %v", name)
	}

	value, mask := strings.TrimSpace(text[i+1:]), ""
	if j := strings.IndexRune(value, '/'); j >= 0 {
		value, mask = value[:j], value[j+1:]
	}

	v, err := parseValue(&d, value, 0)
	if err != nil {
		return Field{}, err
	}
	f := Field{Type: d.Type, Value: v}
	if len(mask) == 0 {
		return f, nil
	}
	if d.Maskable == false {
		return Field{}, errors.Wrapf(ErrMaskNotAllowed, "%v", d.Name)
	}
	if f.Mask, err = parseMask(&d, mask, v); err != nil {
		return Field{}, err
	}

	return f, nil
}

func parseMask(d *Descriptor, s string, value Value) (Value, error) {
	if d.Kind == KindIPv4 || d.Kind == KindIPv6 {
		if ones, err := strconv.Atoi(s); err == nil {
			bits := 32
			if d.Kind == KindIPv6 {
				bits = 128
			}
			if ones < 0 || ones > bits {
				return nil, errors.Wrapf(ErrInvalidSyntax, "%v: invalid prefix length %v", d.Name, s)
			}
			m := net.CIDRMask(ones, bits)
			if d.Kind == KindIPv4 {
				return NewIPv4(net.IP(m)), nil
			}
			var v IPv6
			copy(v[:], m)
			return v, nil
		}
	}

	width := 0
	if b, ok := value.(Bytes); ok {
		width = len(b)
	}

	return parseValue(d, s, width)
}

// parseValue converts s according to the field kind. width overrides the
// expected length of a variable length value when it is not zero.
func parseValue(d *Descriptor, s string, width int) (Value, error) {
	invalid := func() error {
		return errors.Wrapf(ErrInvalidSyntax, "%v: invalid %v value: %v", d.Name, d.Kind, s)
	}

	switch d.Kind {
	case KindUint:
		n, err := strconv.ParseUint(s, 0, d.Length*8)
		if err != nil {
			return nil, invalid()
		}
		return uintValue(d.Length, n), nil
	case KindMAC:
		mac, err := net.ParseMAC(s)
		if err != nil || len(mac) != 6 {
			return nil, invalid()
		}
		return NewMAC(mac), nil
	case KindIPv4:
		ip := net.ParseIP(s)
		if ip == nil || ip.To4() == nil {
			return nil, invalid()
		}
		return NewIPv4(ip), nil
	case KindIPv6:
		ip := net.ParseIP(s)
		if ip == nil {
			return nil, invalid()
		}
		return NewIPv6(ip), nil
	case KindUint128:
		b, err := parseHex(s)
		if err != nil || len(b) > 16 {
			return nil, invalid()
		}
		var v Uint128
		copy(v[16-len(b):], b)
		return v, nil
	case KindBytes:
		b, err := parseHex(s)
		if err != nil || len(b) == 0 || len(b) > maxMetadataLength {
			return nil, invalid()
		}
		if width > 0 && len(b) != width {
			return nil, errors.Wrapf(ErrBadFieldLength, "%v: mask has %v bytes, value has %v", d.Name, len(b), width)
		}
		return Bytes(b), nil
	default:
		return nil, invalid()
	}
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 != 0 {
		s = "0" + s
	}

	return hex.DecodeString(s)
}
