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
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

func TestParseField(t *testing.T) {
	src := []struct {
		text     string
		expected Field
		format   string
	}{
		{
			text:     "in_port=1",
			expected: NewField(OXMInPort, Uint32(1)),
			format:   "in_port=1",
		},
		{
			text:     "eth_type=0x0800",
			expected: NewField(OXMEthType, Uint16(0x800)),
			format:   "eth_type=0x800",
		},
		{
			text:     "eth_dst=00:11:22:33:44:55/ff:ff:ff:00:00:00",
			expected: Field{Type: OXMEthDst, Value: MAC{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}, Mask: MAC{0xff, 0xff, 0xff, 0x00, 0x00, 0x00}},
			format:   "eth_dst=00:11:22:33:44:55/ff:ff:ff:00:00:00",
		},
		{
			text:     "ipv4_src=192.168.0.1/24",
			expected: Field{Type: OXMIPv4Src, Value: IPv4{192, 168, 0, 1}, Mask: IPv4{255, 255, 255, 0}},
			format:   "ipv4_src=192.168.0.1/255.255.255.0",
		},
		{
			text:     "nxm_of_ip_src=10.0.0.1",
			expected: NewField(NXMOfIPSrc, IPv4{10, 0, 0, 1}),
			format:   "nxm_of_ip_src=10.0.0.1",
		},
		{
			text:     "ipv6_src=2001:db8::1/64",
			expected: Field{Type: OXMIPv6Src, Value: NewIPv6([]byte{0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01}), Mask: IPv6{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
			format:   "ipv6_src=2001:db8::1/ffff:ffff:ffff:ffff::",
		},
		{
			text:     "nxm_nx_reg3=0xff/0xf0",
			expected: Field{Type: Register(3), Value: Uint32(0xff), Mask: Uint32(0xf0)},
			format:   "nxm_nx_reg3=0xff/0xf0",
		},
		{
			text:     "nxm_nx_ct_label=0x1",
			expected: NewField(NXMNxCtLabel, Uint128{15: 0x01}),
			format:   "nxm_nx_ct_label=0x00000000000000000000000000000001",
		},
		{
			text:     "nxm_nx_tun_metadata0=0x0a0b/0xffff",
			expected: Field{Type: TunMetadata(0), Value: Bytes{0x0a, 0x0b}, Mask: Bytes{0xff, 0xff}},
			format:   "nxm_nx_tun_metadata0=0x0a0b/0xffff",
		},
		{
			text:     "nsh_spi=42",
			expected: NewField(NSHSPI, Uint32(42)),
			format:   "nsh_spi=42",
		},
	}

	for _, v := range src {
		f, err := ParseField(v.text)
		if err != nil {
			t.Fatalf("unexpected parse error: text=%v, err=%v", v.text, err)
		}
		if f.Equal(v.expected) == false {
			t.Fatalf("unexpected field: text=%v, expected=%v, actual=%v", v.text, spew.Sdump(v.expected), spew.Sdump(f))
		}
		if f.String() != v.format {
			t.Fatalf("unexpected text form: expected=%v, actual=%v", v.format, f.String())
		}
		// The text form parses back to the same field.
		g, err := ParseField(f.String())
		if err != nil || g.Equal(f) == false {
			t.Fatalf("unexpected reparsed field: text=%v, field=%v, err=%v", f.String(), g, err)
		}
	}
}

func TestParseFieldErrors(t *testing.T) {
	src := []struct {
		text     string
		expected error
	}{
		{"in_port", ErrInvalidSyntax},
		{"=1", ErrInvalidSyntax},
		{"no_such_field=1", ErrUnsupportedField},
		{"in_port=1/0xff", ErrMaskNotAllowed},
		{"in_port=abc", ErrInvalidSyntax},
		{"vlan_pcp=256", ErrInvalidSyntax},
		{"ipv4_src=::1", ErrInvalidSyntax},
		{"ipv4_src=10.0.0.1/33", ErrInvalidSyntax},
		{"eth_src=00:11:22", ErrInvalidSyntax},
		{"nxm_nx_tun_metadata0=0x0a0b/0xff", ErrBadFieldLength},
	}

	for _, v := range src {
		_, err := ParseField(v.text)
		if errors.Cause(err) != v.expected {
			t.Fatalf("unexpected error: text=%v, expected=%v, actual=%v", v.text, v.expected, err)
		}
	}
}

func TestParseList(t *testing.T) {
	fields, err := ParseList(" eth_type=0x800, ip_proto=6 ,tcp_dst=80,")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if len(fields) != 3 {
		t.Fatalf("unexpected field count: expected=3, actual=%v", len(fields))
	}

	expected := "eth_type=0x800,ip_proto=6,tcp_dst=80"
	if s := FormatList(fields); s != expected {
		t.Fatalf("unexpected text form: expected=%v, actual=%v", expected, s)
	}
}
