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

// Package database keeps the controller mastership lease in MySQL.
package database

import (
	"database/sql"
	"math/rand"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var (
	logger = logging.MustGetLogger("database")
)

const (
	// Dial network name under which the node list dialer is registered.
	failoverNetwork = "ofmatch-failover"

	// Transient InnoDB errors worth retrying a lease transaction for.
	errLockWaitTimeout uint16 = 1205
	errDeadlock        uint16 = 1213

	maxAttempts = 4
	baseBackoff = 20 * time.Millisecond

	// Row key of the lease shared by all ofmatchd instances.
	leaseName = "ofmatchd"
)

const schema = "CREATE TABLE IF NOT EXISTS `mastership` (" +
	"`lease` varchar(32) NOT NULL, " +
	"`holder` varchar(64) NOT NULL, " +
	"`term` bigint(20) unsigned NOT NULL, " +
	"`renewed` datetime(3) NOT NULL, " +
	"PRIMARY KEY (`lease`)" +
	") ENGINE=InnoDB DEFAULT CHARSET=utf8"

var registerDial sync.Once

// MySQL is the mastership lease store. It is safe for concurrent use.
type MySQL struct {
	db *sql.DB

	mutex  sync.Mutex
	random *rand.Rand
}

// NewMySQL connects to the nodes listed in mysql.addr and creates the lease
// table if it does not exist.
func NewMySQL() (*MySQL, error) {
	nodes, err := parseNodes(viper.GetString("mysql.addr"))
	if err != nil {
		return nil, err
	}
	registerDial.Do(func() { mysql.RegisterDial(failoverNetwork, dialFirst) })

	conf := mysql.NewConfig()
	conf.User = viper.GetString("mysql.username")
	conf.Passwd = viper.GetString("mysql.password")
	conf.DBName = viper.GetString("mysql.name")
	conf.Net = failoverNetwork
	conf.Addr = strings.Join(nodes, ",")
	conf.ParseTime = true
	conf.Timeout = 5 * time.Second
	conf.ReadTimeout = 30 * time.Second
	conf.WriteTimeout = 30 * time.Second

	db, err := sql.Open("mysql", conf.FormatDSN())
	if err != nil {
		return nil, err
	}
	// A lease renewal needs a single connection at a time.
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	// Reconnect now and then so that a recovered primary node is used again.
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "pinging the database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating the mastership table")
	}

	return &MySQL{
		db:     db,
		random: newRandom(),
	}, nil
}

func newRandom() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (r *MySQL) Close() error {
	return r.db.Close()
}

// parseNodes splits a comma separated list of host:port pairs.
func parseNodes(addr string) ([]string, error) {
	var nodes []string
	for _, v := range strings.Split(addr, ",") {
		v = strings.TrimSpace(v)
		if len(v) == 0 {
			continue
		}
		if _, _, err := net.SplitHostPort(v); err != nil {
			return nil, errors.Wrapf(err, "invalid mysql node %q", v)
		}
		nodes = append(nodes, v)
	}
	if len(nodes) == 0 {
		return nil, errors.New("no mysql node in mysql.addr")
	}

	return nodes, nil
}

// dialFirst connects to the first reachable node of addr, in list order.
func dialFirst(addr string) (net.Conn, error) {
	var last error
	for _, v := range strings.Split(addr, ",") {
		conn, err := net.DialTimeout("tcp", v, 5*time.Second)
		if err == nil {
			return conn, nil
		}
		logger.Warningf("mysql node %v is not reachable: %v", v, err)
		last = err
	}

	return nil, errors.Wrap(last, "no reachable mysql node")
}

func transient(err error) bool {
	e, ok := errors.Cause(err).(*mysql.MySQLError)
	if !ok {
		return false
	}

	return e.Number == errDeadlock || e.Number == errLockWaitTimeout
}

// backoff returns the delay before the given retry: exponential with full
// jitter.
func (r *MySQL) backoff(attempt int) time.Duration {
	limit := int64(baseBackoff) << uint(attempt)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	return time.Duration(r.random.Int63n(limit) + 1)
}

// transact runs f in a transaction, retrying on deadlocks and lock wait
// timeouts up to maxAttempts times in total.
func (r *MySQL) transact(f func(*sql.Tx) error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			d := r.backoff(attempt)
			logger.Infof("retrying the lease transaction in %v: %v", d, err)
			time.Sleep(d)
		}

		var tx *sql.Tx
		if tx, err = r.db.Begin(); err != nil {
			return err
		}
		if err = f(tx); err == nil {
			if err = tx.Commit(); err == nil {
				return nil
			}
		} else {
			tx.Rollback()
		}
		if transient(err) == false {
			return err
		}
	}

	return errors.Wrapf(err, "giving up after %v attempts", maxAttempts)
}

// lease is the stored mastership row. age is measured by the database clock
// so that the controllers do not need synchronized clocks.
type lease struct {
	holder string
	term   uint64
	age    time.Duration
}

// renew decides the next state of l when uid asks for it. ok is false if
// another live holder keeps the lease, in which case nothing is written.
func renew(l lease, uid string, expiration time.Duration) (next lease, ok bool) {
	switch {
	case l.holder == uid:
		return lease{holder: uid, term: l.term}, true
	case l.age > expiration:
		return lease{holder: uid, term: l.term + 1}, true
	default:
		return l, false
	}
}

// Elect implements election.Database. The lease row is created on first use
// and taken over once its holder has not renewed it within expiration.
func (r *MySQL) Elect(uid string, expiration time.Duration) (elected bool, err error) {
	f := func(tx *sql.Tx) error {
		elected = false

		// The lease of a fresh table is created already expired.
		_, err := tx.Exec("INSERT IGNORE INTO `mastership` (`lease`, `holder`, `term`, `renewed`) VALUES (?, '', 0, '1970-01-02')", leaseName)
		if err != nil {
			return err
		}

		var cur lease
		var age int64
		row := tx.QueryRow("SELECT `holder`, `term`, TIMESTAMPDIFF(MICROSECOND, `renewed`, NOW(3)) FROM `mastership` WHERE `lease` = ? FOR UPDATE", leaseName)
		if err := row.Scan(&cur.holder, &cur.term, &age); err != nil {
			return err
		}
		cur.age = time.Duration(age) * time.Microsecond

		next, ok := renew(cur, uid, expiration)
		if !ok {
			return nil
		}
		if _, err := tx.Exec("UPDATE `mastership` SET `holder` = ?, `term` = ?, `renewed` = NOW(3) WHERE `lease` = ?", next.holder, next.term, leaseName); err != nil {
			return err
		}
		if next.term != cur.term {
			logger.Warningf("took over the mastership lease from %q (idle %v): term=%v", cur.holder, cur.age, next.term)
		}
		elected = true

		return nil
	}

	if err := r.transact(f); err != nil {
		return false, err
	}

	return elected, nil
}
