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

// Package packet builds OpenFlow 1.3 exact matches from raw Ethernet frames.
package packet

import (
	"errors"

	"github.com/superkkt/ofmatch/match"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("packet")
)

var (
	ErrNotEthernet = errors.New("not an ethernet frame")
)

const (
	// OFPVID_PRESENT is set in vlan_vid when a VLAN tag exists.
	OFPVID_PRESENT = 0x1000
)

// ExactMatch decodes frame received on inPort and returns the basic class
// match fields that describe it exactly. Fields are ordered so that each
// field follows its prerequisites. Only the outermost headers are matched:
// the walk stops at the first encapsulated header (VXLAN, GRE, IP in IP, an
// MPLS payload) or at a transport header that does not follow ip_proto.
// Layers that gopacket fails to decode are left out.
func ExactMatch(inPort uint32, frame []byte) ([]match.Field, error) {
	p := gopacket.NewPacket(frame, layers.LayerTypeEthernet, gopacket.Default)
	if p.Layer(layers.LayerTypeEthernet) == nil {
		return nil, ErrNotEthernet
	}
	if e := p.ErrorLayer(); e != nil {
		logger.Debugf("partially decoded frame: %v", e.Error())
	}

	w := &walker{result: []match.Field{match.NewField(match.OXMInPort, match.Uint32(inPort))}}
	for _, layer := range p.Layers() {
		if w.add(layer) == false {
			logger.Debugf("stop matching at %v", layer.LayerType())
			break
		}
	}

	return w.result, nil
}

// walker accumulates the fields of one frame. Each header kind is emitted
// at most once.
type walker struct {
	result []match.Field
	l2     bool
	vlan   bool
	mpls   bool
	l3     bool
	proto  layers.IPProtocol
	l4     layers.IPProtocol // zero until a transport header is matched
	nd     bool
}

func (r *walker) append(f ...match.Field) {
	r.result = append(r.result, f...)
}

// transport reports whether a header of proto may be matched now.
func (r *walker) transport(proto layers.IPProtocol) bool {
	if r.l3 == false || r.l4 != 0 || r.proto != proto {
		return false
	}
	r.l4 = proto

	return true
}

// add appends the fields of layer. It returns false if the walk must stop.
func (r *walker) add(layer gopacket.Layer) bool {
	switch t := layer.(type) {
	case *layers.Ethernet:
		if r.l2 {
			return false
		}
		r.l2 = true
		r.append(
			match.NewField(match.OXMEthDst, match.NewMAC(t.DstMAC)),
			match.NewField(match.OXMEthSrc, match.NewMAC(t.SrcMAC)),
		)
		if t.EthernetType != layers.EthernetTypeDot1Q && t.EthernetType != layers.EthernetTypeQinQ {
			r.append(match.NewField(match.OXMEthType, match.Uint16(t.EthernetType)))
		}
	case *layers.Dot1Q:
		if r.l3 || r.mpls {
			return false
		}
		// Only the outermost tag is matched.
		if r.vlan {
			return true
		}
		r.vlan = true
		r.append(
			match.NewField(match.OXMVlanVID, match.Uint16(t.VLANIdentifier|OFPVID_PRESENT)),
			match.NewField(match.OXMVlanPCP, match.Uint8(t.Priority)),
			match.NewField(match.OXMEthType, match.Uint16(t.Type)),
		)
	case *layers.MPLS:
		if r.l3 {
			return false
		}
		// Inner labels and the payload have no prerequisite in eth_type.
		if r.mpls {
			return false
		}
		r.mpls = true
		bos := uint8(0)
		if t.StackBottom {
			bos = 1
		}
		r.append(
			match.NewField(match.OXMMPLSLabel, match.Uint32(t.Label)),
			match.NewField(match.OXMMPLSTC, match.Uint8(t.TrafficClass)),
			match.NewField(match.OXMMPLSBOS, match.Uint8(bos)),
		)
	case *layers.ARP:
		if r.l3 || r.mpls {
			return false
		}
		r.l3 = true
		r.append(arpFields(t)...)
	case *layers.IPv4:
		if r.l3 || r.mpls {
			return false
		}
		r.l3 = true
		r.proto = t.Protocol
		r.append(
			match.NewField(match.OXMIPDSCP, match.Uint8(t.TOS>>2)),
			match.NewField(match.OXMIPECN, match.Uint8(t.TOS&0x03)),
			match.NewField(match.OXMIPProto, match.Uint8(t.Protocol)),
			match.NewField(match.OXMIPv4Src, match.NewIPv4(t.SrcIP)),
			match.NewField(match.OXMIPv4Dst, match.NewIPv4(t.DstIP)),
		)
	case *layers.IPv6:
		if r.l3 || r.mpls {
			return false
		}
		r.l3 = true
		r.proto = t.NextHeader
		r.append(
			match.NewField(match.OXMIPDSCP, match.Uint8(t.TrafficClass>>2)),
			match.NewField(match.OXMIPECN, match.Uint8(t.TrafficClass&0x03)),
			match.NewField(match.OXMIPProto, match.Uint8(t.NextHeader)),
			match.NewField(match.OXMIPv6Src, match.NewIPv6(t.SrcIP)),
			match.NewField(match.OXMIPv6Dst, match.NewIPv6(t.DstIP)),
			match.NewField(match.OXMIPv6FLabel, match.Uint32(t.FlowLabel)),
		)
	case *layers.TCP:
		if r.transport(layers.IPProtocolTCP) == false {
			return false
		}
		r.append(
			match.NewField(match.OXMTCPSrc, match.Uint16(t.SrcPort)),
			match.NewField(match.OXMTCPDst, match.Uint16(t.DstPort)),
		)
	case *layers.UDP:
		if r.transport(layers.IPProtocolUDP) == false {
			return false
		}
		r.append(
			match.NewField(match.OXMUDPSrc, match.Uint16(t.SrcPort)),
			match.NewField(match.OXMUDPDst, match.Uint16(t.DstPort)),
		)
	case *layers.SCTP:
		if r.transport(layers.IPProtocolSCTP) == false {
			return false
		}
		r.append(
			match.NewField(match.OXMSCTPSrc, match.Uint16(t.SrcPort)),
			match.NewField(match.OXMSCTPDst, match.Uint16(t.DstPort)),
		)
	case *layers.ICMPv4:
		if r.transport(layers.IPProtocolICMPv4) == false {
			return false
		}
		r.append(
			match.NewField(match.OXMICMPv4Type, match.Uint8(t.TypeCode.Type())),
			match.NewField(match.OXMICMPv4Code, match.Uint8(t.TypeCode.Code())),
		)
	case *layers.ICMPv6:
		if r.transport(layers.IPProtocolICMPv6) == false {
			return false
		}
		r.append(
			match.NewField(match.OXMICMPv6Type, match.Uint8(t.TypeCode.Type())),
			match.NewField(match.OXMICMPv6Code, match.Uint8(t.TypeCode.Code())),
		)
	case *layers.ICMPv6NeighborSolicitation:
		if r.l4 != layers.IPProtocolICMPv6 || r.nd {
			return false
		}
		r.nd = true
		r.append(match.NewField(match.OXMIPv6NDTarget, match.NewIPv6(t.TargetAddress)))
		r.append(ndOptions(t.Options, layers.ICMPv6OptSourceAddress, match.OXMIPv6NDSLL)...)
	case *layers.ICMPv6NeighborAdvertisement:
		if r.l4 != layers.IPProtocolICMPv6 || r.nd {
			return false
		}
		r.nd = true
		r.append(match.NewField(match.OXMIPv6NDTarget, match.NewIPv6(t.TargetAddress)))
		r.append(ndOptions(t.Options, layers.ICMPv6OptTargetAddress, match.OXMIPv6NDTLL)...)
	default:
		// Application payloads and tunnel headers such as VXLAN or GRE
		// carry nothing to match. What they encapsulate is cut by the
		// checks above.
	}

	return true
}

func arpFields(t *layers.ARP) []match.Field {
	result := []match.Field{match.NewField(match.OXMARPOp, match.Uint16(t.Operation))}
	// Only Ethernet/IPv4 addresses fit the basic class fields.
	if t.HwAddressSize != 6 || t.ProtAddressSize != 4 {
		return result
	}

	return append(result,
		match.NewField(match.OXMARPSPA, match.NewIPv4(t.SourceProtAddress)),
		match.NewField(match.OXMARPTPA, match.NewIPv4(t.DstProtAddress)),
		match.NewField(match.OXMARPSHA, match.NewMAC(t.SourceHwAddress)),
		match.NewField(match.OXMARPTHA, match.NewMAC(t.DstHwAddress)),
	)
}

func ndOptions(options layers.ICMPv6Options, opt layers.ICMPv6Opt, t match.FieldType) []match.Field {
	for _, v := range options {
		if v.Type == opt && len(v.Data) >= 6 {
			return []match.Field{match.NewField(t, match.NewMAC(v.Data[:6]))}
		}
	}

	return nil
}
