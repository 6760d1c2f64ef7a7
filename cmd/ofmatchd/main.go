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
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/superkkt/ofmatch"
	"github.com/superkkt/ofmatch/api"
	"github.com/superkkt/ofmatch/database"
	"github.com/superkkt/ofmatch/device"
	"github.com/superkkt/ofmatch/election"
	"github.com/superkkt/ofmatch/log"
	"github.com/superkkt/ofmatch/match"
	"github.com/superkkt/ofmatch/openflow"

	"github.com/fsnotify/fsnotify"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	programName     = "ofmatchd"
	programVersion  = ofmatch.Version
	defaultLogLevel = logging.INFO
)

var (
	logger        = logging.MustGetLogger("main")
	loggerLeveled logging.LeveledBackend

	showHelp          = flag.Bool("help", false, "show this help and exit")
	showVersion       = flag.Bool("version", false, "show program version and exit")
	defaultConfigFile = flag.String("config", fmt.Sprintf("/usr/local/etc/%v.yaml", programName), "absolute path of the configuration file")
)

func init() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	rand.Seed(time.Now().Unix())
}

func main() {
	parseCmdLines()
	initConfig()
	initLog()

	ctx, cancel := context.WithCancel(context.Background())
	registry, err := match.NewDefaultRegistry()
	if err != nil {
		logger.Fatalf("failed to build the codec registry: %v", err)
	}
	logger.Infof("codec registry ready: %v fields for OpenFlow 1.0, %v fields for OpenFlow 1.3",
		len(registry.Codecs(openflow.OF10_VERSION)), len(registry.Codecs(openflow.OF13_VERSION)))

	observer := initElectionObserver(ctx)
	devices := device.NewManager(registry, decoderConfig(), observer)
	initAPIServer(observer, registry, devices)
	waitSignal(devices)
	cancel()
	logger.Infof("%v (version %v) shutdown complete!", programName, programVersion)
}

// Handle the command-line arguments.
func parseCmdLines() {
	flag.Parse()
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Printf("%v v%v\n", programName, programVersion)
		os.Exit(0)
	}
}

func initConfig() {
	viper.SetConfigFile(*defaultConfigFile)
	viper.SetDefault("log.driver", log.DriverStderr)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("rest.port", 7070)
	viper.SetDefault("decoder.unknown_field", "skip")
	viper.SetDefault("decoder.unknown_experimenter", "skip")

	// Read the config file.
	if err := viper.ReadInConfig(); err != nil {
		logger.Fatalf("failed to read the config file: %v", err)
	}

	// Watching and re-reading config file whenever it changes.
	viper.OnConfigChange(func(e fsnotify.Event) {
		// Ignore all the fsnotify operations except WRITE to avoid reading empty config.
		if e.Op != fsnotify.Write {
			return
		}
		logger.Infof("config file changed: %v", e.Name)
		if loggerLeveled != nil {
			// Set log level for all modules
			loggerLeveled.SetLevel(getLogLevel(), "")
		}
	})
	viper.WatchConfig()

	if err := validateConfig(); err != nil {
		logger.Fatalf("invalid configuration: %v", err)
	}
}

// validateConfig validates essential configurations.
func validateConfig() error {
	if port := viper.GetInt("rest.port"); port <= 0 || port > 0xFFFF {
		return errors.New("invalid rest.port")
	}
	if viper.GetBool("rest.tls") {
		if len(viper.GetString("rest.cert_file")) == 0 || len(viper.GetString("rest.key_file")) == 0 {
			return errors.New("rest.tls requires both rest.cert_file and rest.key_file")
		}
	}
	if _, err := match.ParsePolicy(viper.GetString("decoder.unknown_field")); err != nil {
		return errors.Wrap(err, "decoder.unknown_field")
	}
	if _, err := match.ParsePolicy(viper.GetString("decoder.unknown_experimenter")); err != nil {
		return errors.Wrap(err, "decoder.unknown_experimenter")
	}
	if viper.GetBool("election.enable") {
		if len(viper.GetString("mysql.addr")) == 0 {
			return errors.New("election.enable requires mysql.addr")
		}
		if len(viper.GetString("mysql.name")) == 0 {
			return errors.New("election.enable requires mysql.name")
		}
	}

	return nil
}

func initLog() {
	backend, err := log.NewBackend(viper.GetString("log.driver"), programName, nil)
	if err != nil {
		logger.Fatalf("failed to init log: %v", err)
	}

	loggerLeveled = backend
	// Set log level for all modules
	loggerLeveled.SetLevel(getLogLevel(), "")
	logging.SetBackend(loggerLeveled)
}

func getLogLevel() logging.Level {
	level := viper.GetString("log.level")
	ret, err := log.ParseLevel(level)
	if err != nil {
		logger.Errorf("invalid log.level=%v, defaulting to %v..", level, defaultLogLevel)
		return defaultLogLevel
	}

	return ret
}

func initElectionObserver(ctx context.Context) election.Mastership {
	if viper.GetBool("election.enable") == false {
		logger.Info("election is disabled: running as the static master controller")
		return election.NewStatic()
	}

	db, err := database.NewMySQL()
	if err != nil {
		logger.Fatalf("failed to init MySQL database: %v", err)
	}
	observer := election.New(db)
	go func() {
		if err := observer.Run(ctx); err != nil {
			logger.Fatalf("failed to run the election observer: %v", err)
		}
		logger.Debugf("election observer terminated")
	}()

	return observer
}

// decoderConfig returns the unknown entry policies already checked by
// validateConfig.
func decoderConfig() device.Config {
	unknownField, _ := match.ParsePolicy(viper.GetString("decoder.unknown_field"))
	unknownExperimenter, _ := match.ParsePolicy(viper.GetString("decoder.unknown_experimenter"))

	return device.Config{UnknownField: unknownField, UnknownExperimenter: unknownExperimenter}
}

func initAPIServer(observer election.Mastership, registry *match.Registry, devices *device.Manager) {
	conf := decoderConfig()

	go func() {
		s := &api.Server{}
		s.Port = uint16(viper.GetInt("rest.port"))
		if viper.GetBool("rest.tls") == true {
			s.TLS.Cert = viper.GetString("rest.cert_file")
			s.TLS.Key = viper.GetString("rest.key_file")
		}
		s.Observer = observer
		s.Registry = registry
		s.Devices = devices
		s.UnknownField = conf.UnknownField
		s.UnknownExperimenter = conf.UnknownExperimenter

		if err := s.Serve(); err != nil {
			logger.Fatalf("failed to run the API server: %v", err)
		}
	}()
}

// waitSignal waits until we receive SIGTERM or SIGINT signals. SIGHUP dumps
// the known devices.
func waitSignal(devices *device.Manager) {
	c := make(chan os.Signal, 1)
	// Following signals will be transferred to the channel c.
	signal.Notify(c, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP, syscall.SIGUSR1, syscall.SIGUSR2, syscall.SIGPIPE)

	// Infinite loop.
	for {
		s := <-c
		switch s {
		case syscall.SIGTERM, syscall.SIGINT:
			logger.Infof("caught %v signal: shutting down...", s)
			return
		case syscall.SIGHUP:
			fmt.Println("* Devices:")
			for _, v := range devices.Devices() {
				fmt.Println(v)
			}
		default:
			logger.Infof("caught %v signal: ignored!", s)
		}
	}
}
