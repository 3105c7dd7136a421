// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/dna"
	"github.com/bitmark-inc/kittyd/entropy"
	"github.com/bitmark-inc/kittyd/fixtures"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/mocks"
	"github.com/bitmark-inc/kittyd/registry"
	"github.com/bitmark-inc/kittyd/storage"
)

var fixedEntropy = entropy.Fixed("a fixed entropy source for tests")

type testRegistry struct {
	*registry.Registry
	store  *storage.Store
	ctl    *gomock.Controller
	events *mocks.MockEventSink
}

// registry on a fresh memory store that accepts any event
func setupTestRegistry(t *testing.T, configuration registry.Configuration) *testRegistry {
	tr := setupStrictTestRegistry(t, configuration)
	tr.events.EXPECT().Send(gomock.Any(), gomock.Any()).Return(true).AnyTimes()
	return tr
}

// registry on a fresh memory store, events must be expected by the test
func setupStrictTestRegistry(t *testing.T, configuration registry.Configuration) *testRegistry {
	fixtures.SetupTestLogger()

	s, err := storage.OpenMemory()
	assert.Nil(t, err, "open memory store")

	ctl := gomock.NewController(t)
	events := mocks.NewMockEventSink(ctl)

	r, err := registry.New(s, fixedEntropy, events, configuration)
	assert.Nil(t, err, "new registry")

	return &testRegistry{
		Registry: r,
		store:    s,
		ctl:      ctl,
		events:   events,
	}
}

func (tr *testRegistry) teardown() {
	tr.ctl.Finish()
	tr.store.Close()
	fixtures.TeardownTestLogger()
}

// account with a small number in its first byte
func accountNumber(n byte) account.Account {
	a := account.Account{}
	a[0] = n
	return a
}

func dnaOf(s string) *dna.DNA {
	d, err := dna.FromBytes([]byte(s))
	if nil != err {
		panic(err)
	}
	return &d
}

func genderOf(g dna.Gender) *dna.Gender {
	return &g
}

func priceOf(p uint64) *uint64 {
	return &p
}

func (tr *testRegistry) count(t *testing.T) uint64 {
	n, err := tr.Count()
	assert.Nil(t, err, "count")
	return n
}

func (tr *testRegistry) owned(t *testing.T, owner account.Account) []kitty.Id {
	items, err := tr.Owned(owner, 0, int(tr.MaximumOwned()))
	assert.Nil(t, err, "owned")
	ids := make([]kitty.Id, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Id)
	}
	return ids
}

// every owner's index must hold exactly the kitties whose owner field names them
func (tr *testRegistry) checkConsistency(t *testing.T, accounts ...account.Account) {
	elements, err := tr.store.Pool.Kitties.Range(nil)
	assert.Nil(t, err, "kitties range")

	byOwner := make(map[account.Account][]kitty.Id)
	for _, element := range elements {
		id, err := kitty.IdFromBytes(element.Key)
		assert.Nil(t, err, "kitty id")
		record, err := kitty.Packed(element.Value).Unpack(id)
		assert.Nil(t, err, "kitty unpack")
		byOwner[record.Owner] = append(byOwner[record.Owner], id)
	}

	for _, a := range accounts {
		expected := append([]kitty.Id{}, byOwner[a]...)
		actual := tr.owned(t, a)
		assert.ElementsMatch(t, expected, actual, "index of: %s", a)
		assert.Equal(t, uint64(len(expected)), tr.OwnedCount(a), "owned count of: %s", a)
	}
}

// all ledger state, for checking that a failed transition changed nothing
func (tr *testRegistry) snapshot(t *testing.T) [][]storage.Element {
	p := tr.store.Pool
	pools := []*storage.PoolHandle{
		p.Kitties,
		p.OwnerNextCount,
		p.OwnerList,
		p.OwnerIndex,
		p.OwnerTotal,
		p.Balances,
		p.Global,
		p.History,
	}
	result := make([][]storage.Element, len(pools))
	for i, pool := range pools {
		elements, err := pool.Range(nil)
		assert.Nil(t, err, "range")
		result[i] = elements
	}
	return result
}
