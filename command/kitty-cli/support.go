// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/chain"
	"github.com/bitmark-inc/kittyd/entropy"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/messagebus"
	"github.com/bitmark-inc/kittyd/registry"
	"github.com/bitmark-inc/kittyd/storage"
)

const logFile = "kitty-cli.log"

// data shared by all commands
type metadata struct {
	chain    string
	store    *storage.Store
	registry *registry.Registry
	events   *messagebus.Queue
	verbose  bool
	e        io.Writer
	w        io.Writer
}

// commands that never change the database
func isReadOnly(command string) bool {
	switch command {
	case "count", "height", "show", "owned", "balance":
		return true
	default:
		return false
	}
}

func openDatabase(c *cli.Context, readOnly bool) (*metadata, error) {
	e := c.App.ErrWriter
	verbose := c.GlobalBool("verbose")

	database := c.GlobalString("database")
	if "" == database {
		return nil, fmt.Errorf("database directory is required")
	}
	database, err := filepath.Abs(filepath.Clean(database))
	if nil != err {
		return nil, err
	}

	chainName := strings.ToLower(c.GlobalString("chain"))
	if !chain.Valid(chainName) {
		return nil, fmt.Errorf("chain: %q can only be kitties/testing/local", chainName)
	}

	level := "critical"
	if verbose {
		level = "info"
	}
	err = logger.Initialise(logger.Configuration{
		Directory: filepath.Dir(database),
		File:      logFile,
		Size:      1048576,
		Count:     2,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	})
	if nil != err {
		return nil, err
	}

	if verbose {
		fmt.Fprintf(e, "database: %q  read only: %t\n", database, readOnly)
	}

	store, err := storage.Open(database, readOnly)
	if nil != err {
		logger.Finalise()
		return nil, err
	}

	events := messagebus.New(messagebus.DefaultQueueSize)
	source := entropy.NewCollective(sha3.Sum256([]byte(chainName)))
	configuration := registry.Configuration{
		MaximumOwned:   c.GlobalUint64("maximum-owned"),
		MaximumKitties: c.GlobalUint64("maximum-kitties"),
	}
	r, err := registry.New(store, source, events, configuration)
	if nil != err {
		store.Close()
		logger.Finalise()
		return nil, err
	}

	return &metadata{
		chain:    chainName,
		store:    store,
		registry: r,
		events:   events,
		verbose:  verbose,
		e:        e,
		w:        c.App.Writer,
	}, nil
}

// report any queued events then release the database
func (m *metadata) close() {
	if m.verbose {
	loop:
		for {
			select {
			case event := <-m.events.Chan():
				params := make([]string, len(event.Parameters))
				for i, p := range event.Parameters {
					params[i] = hex.EncodeToString(p)
				}
				fmt.Fprintf(m.e, "event: %s  %s\n", event.Command, strings.Join(params, " "))
			default:
				break loop
			}
		}
	}
	m.store.Close()
	logger.Finalise()
}

func getMetadata(c *cli.Context) (*metadata, error) {
	m, ok := c.App.Metadata["data"].(*metadata)
	if !ok {
		return nil, fmt.Errorf("database is not open")
	}
	return m, nil
}

func checkAccount(c *cli.Context, name string) (account.Account, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return account.Account{}, fmt.Errorf("%s account is required", name)
	}
	a, err := account.FromBase58(s)
	if nil != err {
		return account.Account{}, fmt.Errorf("%s: %q  error: %s", name, s, err)
	}
	return a, nil
}

func checkKittyId(c *cli.Context, name string) (kitty.Id, error) {
	s := strings.TrimSpace(c.String(name))
	if "" == s {
		return kitty.Id{}, fmt.Errorf("%s kitty id is required", name)
	}
	var id kitty.Id
	if err := id.UnmarshalText([]byte(s)); nil != err {
		return kitty.Id{}, fmt.Errorf("%s: %q  error: %s", name, s, err)
	}
	return id, nil
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}
