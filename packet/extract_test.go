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

package packet

import (
	"net"
	"testing"

	"github.com/superkkt/ofmatch/match"
	"github.com/superkkt/ofmatch/openflow"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

var (
	srcMAC = net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	dstMAC = net.HardwareAddr{0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb}
)

func serialize(t *testing.T, l ...gopacket.SerializableLayer) []byte {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, l...); err != nil {
		t.Fatalf("failed to serialize a frame: %v", err)
	}

	return buf.Bytes()
}

func checkFields(t *testing.T, actual, expected []match.Field) {
	if len(actual) != len(expected) {
		t.Fatalf("unexpected field count: expected=%v, actual=%v", spew.Sdump(expected), spew.Sdump(actual))
	}
	for i := range expected {
		if actual[i].Equal(expected[i]) == false {
			t.Fatalf("unexpected field #%v: expected=%v, actual=%v", i, expected[i], actual[i])
		}
	}

	// Every extracted field must be encodable as an OpenFlow 1.3 match.
	reg := match.MustNewDefaultRegistry()
	data, err := match.NewEncoder(reg).MarshalMatch(openflow.OF13_VERSION, actual)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	decoded, err := match.NewDecoder(reg).DecodeMatch(openflow.OF13_VERSION, data)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if cmp.Equal(decoded, actual) == false {
		t.Fatalf("unexpected decoded match: diff=%v", cmp.Diff(actual, decoded))
	}
}

func TestExactMatchTCP(t *testing.T) {
	eth := &layers.Ethernet{SrcMAC: srcMAC, DstMAC: dstMAC, EthernetType: layers.EthernetTypeIPv4}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		TOS:      0xb9,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.IPv4(10, 0, 0, 1),
		DstIP:    net.IPv4(10, 0, 0, 2),
	}
	tcp := &layers.TCP{SrcPort: 34567, DstPort: 80, SYN: true, Window: 1024}
	tcp.SetNetworkLayerForChecksum(ip)
	frame := serialize(t, eth, ip, tcp, gopacket.Payload([]byte("hello")))

	fields, err := ExactMatch(7, frame)
	if err != nil {
		t.Fatalf("unexpected extraction error: %v", err)
	}
	checkFields(t, fields, []match.Field{
		match.NewField(match.OXMInPort, match.Uint32(7)),
		match.NewField(match.OXMEthDst, match.NewMAC(dstMAC)),
		match.NewField(match.OXMEthSrc, match.NewMAC(srcMAC)),
		match.NewField(match.OXMEthType, match.Uint16(0x0800)),
		match.NewField(match.OXMIPDSCP, match.Uint8(0x2e)),
		match.NewField(match.OXMIPECN, match.Uint8(0x01)),
		match.NewField(match.OXMIPProto, match.Uint8(6)),
		match.NewField(match.OXMIPv4Src, match.IPv4{10, 0, 0, 1}),
		match.NewField(match.OXMIPv4Dst, match.IPv4{10, 0, 0, 2}),
		match.NewField(match.OXMTCPSrc, match.Uint16(34567)),
		match.NewField(match.OXMTCPDst, match.Uint16(80)),
	})
}

func TestExactMatchVLANARP(t *testing.T) {
	eth := &layers.Ethernet{SrcMAC: srcMAC, DstMAC: dstMAC, EthernetType: layers.EthernetTypeDot1Q}
	vlan := &layers.Dot1Q{Priority: 5, VLANIdentifier: 100, Type: layers.EthernetTypeARP}
	arp := &layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   srcMAC,
		SourceProtAddress: []byte{192, 168, 0, 1},
		DstHwAddress:      []byte{0, 0, 0, 0, 0, 0},
		DstProtAddress:    []byte{192, 168, 0, 2},
	}
	frame := serialize(t, eth, vlan, arp)

	fields, err := ExactMatch(1, frame)
	if err != nil {
		t.Fatalf("unexpected extraction error: %v", err)
	}
	checkFields(t, fields, []match.Field{
		match.NewField(match.OXMInPort, match.Uint32(1)),
		match.NewField(match.OXMEthDst, match.NewMAC(dstMAC)),
		match.NewField(match.OXMEthSrc, match.NewMAC(srcMAC)),
		match.NewField(match.OXMVlanVID, match.Uint16(100|OFPVID_PRESENT)),
		match.NewField(match.OXMVlanPCP, match.Uint8(5)),
		match.NewField(match.OXMEthType, match.Uint16(0x0806)),
		match.NewField(match.OXMARPOp, match.Uint16(1)),
		match.NewField(match.OXMARPSPA, match.IPv4{192, 168, 0, 1}),
		match.NewField(match.OXMARPTPA, match.IPv4{192, 168, 0, 2}),
		match.NewField(match.OXMARPSHA, match.NewMAC(srcMAC)),
		match.NewField(match.OXMARPTHA, match.MAC{}),
	})
}

func TestExactMatchIPv6UDP(t *testing.T) {
	src := net.ParseIP("2001:db8::1")
	dst := net.ParseIP("2001:db8::2")
	eth := &layers.Ethernet{SrcMAC: srcMAC, DstMAC: dstMAC, EthernetType: layers.EthernetTypeIPv6}
	ip := &layers.IPv6{
		Version:      6,
		TrafficClass: 0x10,
		FlowLabel:    0x12345,
		NextHeader:   layers.IPProtocolUDP,
		HopLimit:     64,
		SrcIP:        src,
		DstIP:        dst,
	}
	udp := &layers.UDP{SrcPort: 4000, DstPort: 4001}
	udp.SetNetworkLayerForChecksum(ip)
	frame := serialize(t, eth, ip, udp, gopacket.Payload([]byte{0x01, 0x02}))

	fields, err := ExactMatch(2, frame)
	if err != nil {
		t.Fatalf("unexpected extraction error: %v", err)
	}
	checkFields(t, fields, []match.Field{
		match.NewField(match.OXMInPort, match.Uint32(2)),
		match.NewField(match.OXMEthDst, match.NewMAC(dstMAC)),
		match.NewField(match.OXMEthSrc, match.NewMAC(srcMAC)),
		match.NewField(match.OXMEthType, match.Uint16(0x86dd)),
		match.NewField(match.OXMIPDSCP, match.Uint8(0x04)),
		match.NewField(match.OXMIPECN, match.Uint8(0x00)),
		match.NewField(match.OXMIPProto, match.Uint8(17)),
		match.NewField(match.OXMIPv6Src, match.NewIPv6(src)),
		match.NewField(match.OXMIPv6Dst, match.NewIPv6(dst)),
		match.NewField(match.OXMIPv6FLabel, match.Uint32(0x12345)),
		match.NewField(match.OXMUDPSrc, match.Uint16(4000)),
		match.NewField(match.OXMUDPDst, match.Uint16(4001)),
	})
}

func TestExactMatchNotEthernet(t *testing.T) {
	if _, err := ExactMatch(1, []byte{0x01, 0x02}); err != ErrNotEthernet {
		t.Fatalf("unexpected error: expected=%v, actual=%v", ErrNotEthernet, err)
	}
}

func innerTCPFrame(t *testing.T) []byte {
	eth := &layers.Ethernet{SrcMAC: dstMAC, DstMAC: srcMAC, EthernetType: layers.EthernetTypeIPv4}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.IPv4(192, 168, 0, 1),
		DstIP:    net.IPv4(192, 168, 0, 2),
	}
	tcp := &layers.TCP{SrcPort: 1234, DstPort: 22, SYN: true, Window: 1024}
	tcp.SetNetworkLayerForChecksum(ip)

	return serialize(t, eth, ip, tcp)
}

func TestExactMatchVXLAN(t *testing.T) {
	eth := &layers.Ethernet{SrcMAC: srcMAC, DstMAC: dstMAC, EthernetType: layers.EthernetTypeIPv4}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.IPv4(10, 0, 0, 1),
		DstIP:    net.IPv4(10, 0, 0, 2),
	}
	udp := &layers.UDP{SrcPort: 50000, DstPort: 4789}
	udp.SetNetworkLayerForChecksum(ip)
	// VXLAN header with the valid VNI flag and VNI 42.
	vxlan := []byte{0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x2a, 0x00}
	frame := serialize(t, eth, ip, udp, gopacket.Payload(append(vxlan, innerTCPFrame(t)...)))

	fields, err := ExactMatch(2, frame)
	if err != nil {
		t.Fatalf("unexpected extraction error: %v", err)
	}
	checkFields(t, fields, []match.Field{
		match.NewField(match.OXMInPort, match.Uint32(2)),
		match.NewField(match.OXMEthDst, match.NewMAC(dstMAC)),
		match.NewField(match.OXMEthSrc, match.NewMAC(srcMAC)),
		match.NewField(match.OXMEthType, match.Uint16(0x0800)),
		match.NewField(match.OXMIPDSCP, match.Uint8(0)),
		match.NewField(match.OXMIPECN, match.Uint8(0)),
		match.NewField(match.OXMIPProto, match.Uint8(17)),
		match.NewField(match.OXMIPv4Src, match.IPv4{10, 0, 0, 1}),
		match.NewField(match.OXMIPv4Dst, match.IPv4{10, 0, 0, 2}),
		match.NewField(match.OXMUDPSrc, match.Uint16(50000)),
		match.NewField(match.OXMUDPDst, match.Uint16(4789)),
	})
}

func TestExactMatchIPinIP(t *testing.T) {
	inner := innerTCPFrame(t)[14:] // strip the inner Ethernet header
	eth := &layers.Ethernet{SrcMAC: srcMAC, DstMAC: dstMAC, EthernetType: layers.EthernetTypeIPv4}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolIPv4,
		SrcIP:    net.IPv4(10, 0, 0, 1),
		DstIP:    net.IPv4(10, 0, 0, 2),
	}
	frame := serialize(t, eth, ip, gopacket.Payload(inner))

	fields, err := ExactMatch(2, frame)
	if err != nil {
		t.Fatalf("unexpected extraction error: %v", err)
	}
	checkFields(t, fields, []match.Field{
		match.NewField(match.OXMInPort, match.Uint32(2)),
		match.NewField(match.OXMEthDst, match.NewMAC(dstMAC)),
		match.NewField(match.OXMEthSrc, match.NewMAC(srcMAC)),
		match.NewField(match.OXMEthType, match.Uint16(0x0800)),
		match.NewField(match.OXMIPDSCP, match.Uint8(0)),
		match.NewField(match.OXMIPECN, match.Uint8(0)),
		match.NewField(match.OXMIPProto, match.Uint8(4)),
		match.NewField(match.OXMIPv4Src, match.IPv4{10, 0, 0, 1}),
		match.NewField(match.OXMIPv4Dst, match.IPv4{10, 0, 0, 2}),
	})
}
