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

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/superkkt/ofmatch/device"
	"github.com/superkkt/ofmatch/match"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("api")
)

type Server struct {
	Port uint16
	TLS  struct {
		Cert string // Path for a TLS certification file.
		Key  string // Path for a TLS private key file.
	}
	Observer Observer
	Registry *match.Registry
	Devices  *device.Manager
	// Policies applied by the decode handler to entries without a codec.
	UnknownField        match.Policy
	UnknownExperimenter match.Policy
}

type Observer interface {
	IsMaster() bool
}

func (r *Server) validate() error {
	if r.Observer == nil {
		return errors.New("nil observer")
	}
	if r.Registry == nil {
		return errors.New("nil registry")
	}
	if r.Devices == nil {
		return errors.New("nil device manager")
	}

	return nil
}

// Handler returns the HTTP handler serving all the API routes.
func (r *Server) Handler() (http.Handler, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	api := rest.NewApi()
	// Middleware to set the CORS header.
	api.Use(rest.MiddlewareSimple(func(handler rest.HandlerFunc) rest.HandlerFunc {
		return func(writer rest.ResponseWriter, request *rest.Request) {
			writer.Header().Set("Access-Control-Allow-Origin", "*")
			handler(writer, request)
		}
	}))
	router, err := rest.MakeRouter(
		rest.Get("/api/v1/field", r.listField),
		rest.Get("/api/v1/status", r.status),
		rest.Post("/api/v1/match/decode", r.decode),
		rest.Post("/api/v1/match/encode", r.masterOnly(r.encode)),
		rest.Post("/api/v1/packet/match", r.packetMatch),
		rest.Get("/api/v1/device", r.listDevice),
		rest.Post("/api/v1/device", r.addDevice),
		rest.Delete("/api/v1/device/:id", r.removeDevice),
		rest.Post("/api/v1/device/:id/match/decode", r.decodeDeviceMatch),
		rest.Post("/api/v1/device/:id/match/encode", r.encodeDeviceMatch),
	)
	if err != nil {
		return nil, err
	}
	api.SetApp(router)

	return api.MakeHandler(), nil
}

func (r *Server) Serve() error {
	handler, err := r.Handler()
	if err != nil {
		return err
	}

	// Listen on all interfaces.
	addr := fmt.Sprintf(":%v", r.Port)
	if r.TLS.Cert != "" && r.TLS.Key != "" {
		err = http.ListenAndServeTLS(addr, r.TLS.Cert, r.TLS.Key, handler)
	} else {
		err = http.ListenAndServe(addr, handler)
	}

	return err
}

// masterOnly denies the request if we are not the master controller.
func (r *Server) masterOnly(handler rest.HandlerFunc) rest.HandlerFunc {
	return func(writer rest.ResponseWriter, request *rest.Request) {
		if r.Observer.IsMaster() == false {
			logger.Infof("denying %v from %v: not the master controller", request.URL.Path, request.RemoteAddr)
			writer.WriteJson(Response{Status: StatusServiceUnavailable, Message: "use the master controller server"})
			return
		}
		handler(writer, request)
	}
}

func (r *Server) status(w rest.ResponseWriter, req *rest.Request) {
	logger.Debugf("status request from %v", req.RemoteAddr)

	w.WriteJson(&Response{
		Status: StatusOkay,
		Data: struct {
			Master bool `json:"master"`
		}{
			Master: r.Observer.IsMaster(),
		},
	})
}
