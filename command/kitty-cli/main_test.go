// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittyd/fixtures"
	"github.com/bitmark-inc/kittyd/kitty"
)

type testDatabase struct {
	t        *testing.T
	dir      string
	database string
}

func newTestDatabase(t *testing.T) *testDatabase {
	dir, err := os.MkdirTemp("", "kitty-cli")
	assert.Nil(t, err, "temp dir")
	return &testDatabase{
		t:        t,
		dir:      dir,
		database: filepath.Join(dir, "local.leveldb"),
	}
}

func (td *testDatabase) cleanup() {
	_ = os.RemoveAll(td.dir)
}

// run one command against the database returning its standard output
func (td *testDatabase) run(args ...string) ([]byte, error) {
	var w, e bytes.Buffer
	app := newApp(&w, &e)
	full := append([]string{"kitty-cli", "--database", td.database, "--chain", "local"}, args...)
	err := app.Run(full)
	return w.Bytes(), err
}

func (td *testDatabase) record(args ...string) *kitty.Record {
	out, err := td.run(args...)
	assert.Nil(td.t, err, "%v", args)
	var r kitty.Record
	err = json.Unmarshal(out, &r)
	assert.Nil(td.t, err, "decode: %s", out)
	return &r
}

func TestMissingDatabase(t *testing.T) {
	var w, e bytes.Buffer
	err := newApp(&w, &e).Run([]string{"kitty-cli", "count"})
	assert.NotNil(t, err, "missing database accepted")
}

func TestReadOnlyNeedsExistingDatabase(t *testing.T) {
	td := newTestDatabase(t)
	defer td.cleanup()

	_, err := td.run("count")
	assert.NotNil(t, err, "read only open created a database")
}

func TestMarket(t *testing.T) {
	td := newTestDatabase(t)
	defer td.cleanup()

	alice := fixtures.Alice.String()
	bob := fixtures.Bob.String()

	first := td.record("create", "--owner", alice)
	assert.Equal(t, fixtures.Alice, first.Owner, "wrong owner")
	assert.Nil(t, first.Price, "new kitty is for sale")

	out, err := td.run("count")
	assert.Nil(t, err, "count")
	var count countReply
	assert.Nil(t, json.Unmarshal(out, &count), "decode count")
	assert.Equal(t, uint64(1), count.Count, "wrong count")

	shown := td.record("show", "--id", first.Id.String())
	assert.Equal(t, first, shown, "show differs from create")

	priced := td.record("price", "--owner", alice, "--id", first.Id.String(), "--price", "40")
	assert.NotNil(t, priced.Price, "price not set")
	assert.Equal(t, uint64(40), *priced.Price, "wrong price")

	_, err = td.run("deposit", "--owner", bob, "--amount", "100")
	assert.Nil(t, err, "deposit")

	_, err = td.run("buy", "--buyer", bob, "--id", first.Id.String(), "--max", "39")
	assert.NotNil(t, err, "bid below price accepted")

	bought := td.record("buy", "--buyer", bob, "--id", first.Id.String(), "--max", "50")
	assert.Equal(t, fixtures.Bob, bought.Owner, "wrong owner after buy")
	assert.Nil(t, bought.Price, "still for sale after buy")

	out, err = td.run("balance", "--owner", bob)
	assert.Nil(t, err, "balance")
	var balance balanceReply
	assert.Nil(t, json.Unmarshal(out, &balance), "decode balance")
	assert.Equal(t, uint64(60), balance.Balance, "wrong buyer balance")

	out, err = td.run("owned", "--owner", bob)
	assert.Nil(t, err, "owned")
	var owned ownedReply
	assert.Nil(t, json.Unmarshal(out, &owned), "decode owned")
	assert.Equal(t, uint64(1), owned.Total, "wrong total")
	assert.Equal(t, first.Id, owned.Kitties[0].Id, "wrong owned kitty")

	back := td.record("transfer", "--owner", bob, "--receiver", alice, "--id", first.Id.String())
	assert.Equal(t, fixtures.Alice, back.Owner, "wrong owner after transfer")

	out, err = td.run("count", "--at", "1")
	assert.Nil(t, err, "count at")
	assert.Nil(t, json.Unmarshal(out, &count), "decode count")
	assert.Equal(t, uint64(1), count.Count, "wrong historical count")
}

func TestPriceArguments(t *testing.T) {
	td := newTestDatabase(t)
	defer td.cleanup()

	alice := fixtures.Alice.String()
	k := td.record("create", "--owner", alice)

	_, err := td.run("price", "--owner", alice, "--id", k.Id.String())
	assert.NotNil(t, err, "neither price nor clear")

	_, err = td.run("price", "--owner", alice, "--id", k.Id.String(), "--price", "1", "--clear")
	assert.NotNil(t, err, "both price and clear")

	withdrawn := td.record("price", "--owner", alice, "--id", k.Id.String(), "--clear")
	assert.Nil(t, withdrawn.Price, "price not cleared")
}

func TestDepositOnlyOnTestChains(t *testing.T) {
	td := newTestDatabase(t)
	defer td.cleanup()

	var w, e bytes.Buffer
	err := newApp(&w, &e).Run([]string{"kitty-cli", "--database", td.database, "--chain", "kitties", "deposit", "--owner", fixtures.Bob.String(), "--amount", "5"})
	assert.NotNil(t, err, "deposit allowed on the main chain")
}

func TestLimitsFollowTheLedger(t *testing.T) {
	td := newTestDatabase(t)
	defer td.cleanup()

	alice := fixtures.Alice.String()
	bob := fixtures.Bob.String()

	_, err := td.run("--maximum-owned", "1", "--maximum-kitties", "2", "create", "--owner", alice)
	assert.Nil(t, err, "create with limits")

	// later runs without limits use the recorded ones
	_, err = td.run("create", "--owner", alice)
	assert.NotNil(t, err, "owner limit ignored")
	k := td.record("create", "--owner", bob)
	_, err = td.run("create", "--owner", fixtures.Carol.String())
	assert.NotNil(t, err, "counter limit ignored")

	_, err = td.run("transfer", "--owner", bob, "--receiver", alice, "--id", k.Id.String())
	assert.NotNil(t, err, "receiver limit ignored")

	_, err = td.run("--maximum-owned", "5", "create", "--owner", fixtures.Carol.String())
	assert.NotNil(t, err, "contradicting limit accepted")

	out, err := td.run("count")
	assert.Nil(t, err, "count")
	var count countReply
	assert.Nil(t, json.Unmarshal(out, &count), "decode count")
	assert.Equal(t, uint64(2), count.Count, "wrong count")
}
