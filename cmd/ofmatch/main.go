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

package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/superkkt/ofmatch"
	"github.com/superkkt/ofmatch/log"
	"github.com/superkkt/ofmatch/match"
	"github.com/superkkt/ofmatch/openflow"
	"github.com/superkkt/ofmatch/packet"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

const (
	programName    = "ofmatch"
	programVersion = ofmatch.Version
)

var (
	logger = logging.MustGetLogger("main")
)

const usage = `usage: %v <command> [options] [arguments]

commands:
  decode [-version V] [-wrapped] [-unknown POLICY] HEX   decode a match entry list
  encode [-version V] [-wrapped] FIELD[,FIELD...]       encode fields in text form
  fields [-version V]                                   show the match field table
  packet [-in_port N] HEX                               exact match of an Ethernet frame
  version                                               show program version
`

func main() {
	backend, err := log.NewBackend(log.DriverStderr, programName, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init log: %v\n", err)
		os.Exit(1)
	}
	backend.SetLevel(logging.WARNING, "")
	logging.SetBackend(backend)

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", programName, err)
		os.Exit(1)
	}
}

func run(args []string, w io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf(usage, programName)
	}

	registry, err := match.NewDefaultRegistry()
	if err != nil {
		return err
	}

	switch args[0] {
	case "decode":
		return decode(registry, args[1:], w)
	case "encode":
		return encode(registry, args[1:], w)
	case "fields":
		return fields(args[1:], w)
	case "packet":
		return extract(args[1:], w)
	case "version":
		fmt.Fprintf(w, "%v v%v\n", programName, programVersion)
		return nil
	default:
		return fmt.Errorf(usage, programName)
	}
}

func parseHex(args []string) ([]byte, error) {
	s := strings.Join(strings.Fields(strings.Join(args, " ")), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.Replace(s, ":", "", -1)
	if len(s) == 0 {
		return nil, errors.New("missing hexadecimal input")
	}

	return hex.DecodeString(s)
}

func decode(registry *match.Registry, args []string, w io.Writer) error {
	flags := flag.NewFlagSet("decode", flag.ContinueOnError)
	version := flags.String("version", "1.3", "OpenFlow version")
	wrapped := flags.Bool("wrapped", false, "input is an ofp_match structure")
	unknown := flags.String("unknown", "keep", "policy for unknown entries: skip, keep or reject")
	if err := flags.Parse(args); err != nil {
		return err
	}

	ver, err := openflow.ParseVersion(*version)
	if err != nil {
		return err
	}
	policy, err := match.ParsePolicy(*unknown)
	if err != nil {
		return err
	}
	data, err := parseHex(flags.Args())
	if err != nil {
		return err
	}

	decoder := match.NewDecoder(registry)
	decoder.UnknownField = policy
	decoder.UnknownExperimenter = policy

	var scanner *match.Scanner
	buf := openflow.NewBuffer(data)
	if *wrapped {
		scanner, err = decoder.ScanMatch(ver, buf)
	} else {
		scanner, err = decoder.Scan(ver, buf, buf.Len())
	}
	if err != nil {
		return err
	}
	if buf.Len() > 0 {
		logger.Warningf("ignoring %v trailing bytes after the match", buf.Len())
	}

	for scanner.Next() {
		e := scanner.Entry()
		if e.Known {
			fmt.Fprintln(w, e.Field)
			continue
		}
		if e.Header.Class == match.ClassExperimenter {
			fmt.Fprintf(w, "unknown(class=%v,experimenter=0x%08x,field=%v,mask=%v)=0x%x\n", e.Header.Class, e.Experimenter, e.Header.Field, e.Header.HasMask, e.Payload)
		} else {
			fmt.Fprintf(w, "unknown(class=%v,field=%v,mask=%v)=0x%x\n", e.Header.Class, e.Header.Field, e.Header.HasMask, e.Payload)
		}
	}

	return scanner.Err()
}

func encode(registry *match.Registry, args []string, w io.Writer) error {
	flags := flag.NewFlagSet("encode", flag.ContinueOnError)
	version := flags.String("version", "1.3", "OpenFlow version")
	wrapped := flags.Bool("wrapped", false, "output an ofp_match structure")
	if err := flags.Parse(args); err != nil {
		return err
	}

	ver, err := openflow.ParseVersion(*version)
	if err != nil {
		return err
	}
	list, err := match.ParseList(strings.Join(flags.Args(), ","))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return errors.New("missing match fields")
	}

	encoder := match.NewEncoder(registry)
	var data []byte
	if *wrapped {
		data, err = encoder.MarshalMatch(ver, list)
	} else {
		data, err = encoder.MarshalList(ver, list)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(w, hex.EncodeToString(data))

	return nil
}

func fields(args []string, w io.Writer) error {
	flags := flag.NewFlagSet("fields", flag.ContinueOnError)
	version := flags.String("version", "", "show the fields of this OpenFlow version only")
	if err := flags.Parse(args); err != nil {
		return err
	}

	var ver uint8
	if len(*version) > 0 {
		v, err := openflow.ParseVersion(*version)
		if err != nil {
			return err
		}
		ver = v
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCLASS\tFIELD\tLENGTH\tMASK\tVERSIONS")
	for _, d := range match.Descriptors() {
		if ver != 0 && supports(d, ver) == false {
			continue
		}
		class := d.Class.String()
		if d.Class == match.ClassExperimenter {
			class = fmt.Sprintf("%v(0x%08x)", class, d.Experimenter)
		}
		length := fmt.Sprintf("%v", d.Length)
		if d.Variable() {
			length = "var"
		}
		versions := make([]string, len(d.Versions))
		for i, v := range d.Versions {
			versions[i] = openflow.VersionString(v)
		}
		fmt.Fprintf(tw, "%v\t%v\t%v\t%v\t%v\t%v\n", d.Name, class, d.Field, length, d.Maskable, strings.Join(versions, ","))
	}

	return tw.Flush()
}

func supports(d match.Descriptor, version uint8) bool {
	for _, v := range d.Versions {
		if v == version {
			return true
		}
	}

	return false
}

func extract(args []string, w io.Writer) error {
	flags := flag.NewFlagSet("packet", flag.ContinueOnError)
	inPort := flags.Uint("in_port", 1, "ingress port number")
	if err := flags.Parse(args); err != nil {
		return err
	}

	frame, err := parseHex(flags.Args())
	if err != nil {
		return err
	}
	list, err := packet.ExactMatch(uint32(*inPort), frame)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, match.FormatList(list))

	return nil
}
