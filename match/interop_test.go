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

	"github.com/Kmotiko/gofc/ofprotocol/ofp13"
)

// TestWireCompatibility compares the encoded entries with those of an
// independent OpenFlow 1.3 implementation.
func TestWireCompatibility(t *testing.T) {
	ipv4Src, err := ofp13.NewOxmIpv4Src("10.0.0.1")
	if err != nil {
		t.Fatalf("failed to create the reference entry: %v", err)
	}
	ipv4DstW, err := ofp13.NewOxmIpv4DstW("192.168.1.0", 24)
	if err != nil {
		t.Fatalf("failed to create the reference entry: %v", err)
	}
	ethSrc, err := ofp13.NewOxmEthSrc("00:11:22:33:44:55")
	if err != nil {
		t.Fatalf("failed to create the reference entry: %v", err)
	}
	arpSpa, err := ofp13.NewOxmArpSpa("172.16.0.1")
	if err != nil {
		t.Fatalf("failed to create the reference entry: %v", err)
	}

	src := []struct {
		field     Field
		reference []byte
	}{
		{NewField(OXMInPort, Uint32(3)), ofp13.NewOxmInPort(3).Serialize()},
		{NewField(OXMEthType, Uint16(0x86dd)), ofp13.NewOxmEthType(0x86dd).Serialize()},
		{NewField(OXMVlanVID, Uint16(0x1064)), ofp13.NewOxmVlanVid(0x1064).Serialize()},
		{Field{Type: OXMVlanVID, Value: Uint16(0x1000), Mask: Uint16(0x1000)}, ofp13.NewOxmVlanVidW(0x1000, 0x1000).Serialize()},
		{Field{Type: OXMMetadata, Value: Uint64(0xabcd), Mask: Uint64(0xffff)}, ofp13.NewOxmMetadataW(0xabcd, 0xffff).Serialize()},
		{NewField(OXMIPProto, Uint8(17)), ofp13.NewOxmIpProto(17).Serialize()},
		{NewField(OXMTCPSrc, Uint16(8080)), ofp13.NewOxmTcpSrc(8080).Serialize()},
		{NewField(OXMUDPDst, Uint16(53)), ofp13.NewOxmUdpDst(53).Serialize()},
		{NewField(OXMIPv4Src, IPv4{10, 0, 0, 1}), ipv4Src.Serialize()},
		{Field{Type: OXMIPv4Dst, Value: IPv4{192, 168, 1, 0}, Mask: IPv4{255, 255, 255, 0}}, ipv4DstW.Serialize()},
		{NewField(OXMEthSrc, MAC{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}), ethSrc.Serialize()},
		{NewField(OXMARPSPA, IPv4{172, 16, 0, 1}), arpSpa.Serialize()},
	}

	enc := NewEncoder(MustNewDefaultRegistry())
	dec := NewDecoder(enc.Registry)
	for _, v := range src {
		data, err := enc.MarshalList(openflow.OF13_VERSION, []Field{v.field})
		if err != nil {
			t.Fatalf("unexpected encode error: field=%v, err=%v", v.field, err)
		}
		if bytes.Equal(data, v.reference) == false {
			t.Fatalf("unexpected encoded entry: field=%v, expected=%x, actual=%x", v.field, v.reference, data)
		}

		fields, err := dec.DecodeList(openflow.OF13_VERSION, v.reference)
		if err != nil {
			t.Fatalf("unexpected decode error: field=%v, err=%v", v.field, err)
		}
		if len(fields) != 1 || fields[0].Equal(v.field) == false {
			t.Fatalf("unexpected decoded fields: expected=%v, actual=%v", v.field, fields)
		}
	}
}
