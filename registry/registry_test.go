// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittyd/dna"
	"github.com/bitmark-inc/kittyd/entropy"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/fixtures"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/mocks"
	"github.com/bitmark-inc/kittyd/registry"
	"github.com/bitmark-inc/kittyd/storage"
)

func TestNewRequiresStoreAndEntropy(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := registry.New(nil, fixedEntropy, nil, registry.Configuration{})
	assert.Equal(t, fault.ErrMissingParameters, err, "nil store")

	s, err := storage.OpenMemory()
	assert.Nil(t, err, "open memory store")
	defer s.Close()

	_, err = registry.New(s, nil, nil, registry.Configuration{})
	assert.Equal(t, fault.ErrMissingParameters, err, "nil entropy")

	r, err := registry.New(s, fixedEntropy, nil, registry.Configuration{})
	assert.Nil(t, err, "nil event sink is allowed")
	assert.Equal(t, uint64(9999), r.MaximumOwned(), "default capacity")

	_, err = r.Create(fixtures.Alice)
	assert.Nil(t, err, "create without event sink")
}

func TestCreate(t *testing.T) {
	tr := setupStrictTestRegistry(t, registry.Configuration{})
	defer tr.teardown()

	tr.events.EXPECT().Send(registry.EventCreated, gomock.Any(), fixtures.Alice.Bytes()).Return(true).Times(2)

	first, err := tr.Create(fixtures.Alice)
	assert.Nil(t, err, "first create")
	assert.Equal(t, uint64(1), tr.count(t), "count")

	_, err = tr.Get(first.Id)
	assert.Nil(t, err, "first is stored")

	// second id must not exist beforehand
	second, err := tr.Create(fixtures.Alice)
	assert.Nil(t, err, "second create")
	assert.NotEqual(t, first.Id, second.Id, "distinct ids")
	assert.NotEqual(t, first.DNA, second.DNA, "distinct dna")
	assert.Equal(t, uint64(2), tr.count(t), "count")

	record, err := tr.Get(second.Id)
	assert.Nil(t, err, "get")
	assert.Equal(t, second, record, "stored record")
	assert.Nil(t, record.Price, "not for sale")
	assert.Equal(t, record.DNA.Gender(), record.Gender, "gender follows dna")
	assert.Equal(t, []kitty.Id{first.Id, second.Id}, tr.owned(t, fixtures.Alice), "creation order")

	height, err := tr.Height()
	assert.Nil(t, err, "height")
	assert.Equal(t, uint64(2), height, "one height per transition")
}

func TestCreateUsesEntropyForOwner(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s, err := storage.OpenMemory()
	assert.Nil(t, err, "open memory store")
	defer s.Close()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	random := []byte("unpredictable")
	source := mocks.NewMockSource(ctl)
	source.EXPECT().Random(fixtures.Bob.Bytes()).Return(random).Times(1)

	r, err := registry.New(s, source, nil, registry.Configuration{})
	assert.Nil(t, err, "new registry")

	record, err := r.Create(fixtures.Bob)
	assert.Nil(t, err, "create")
	assert.Equal(t, dna.Derive(1, random, fixtures.Bob), record.DNA, "dna from first nonce")
}

func TestIndependentRegistriesAreReproducible(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	results := make([][]dna.DNA, 2)
	for i := range results {
		s, err := storage.OpenMemory()
		assert.Nil(t, err, "open memory store")

		r, err := registry.New(s, fixedEntropy, nil, registry.Configuration{})
		assert.Nil(t, err, "new registry")

		for n := 0; n < 3; n += 1 {
			record, err := r.Create(fixtures.Carol)
			assert.Nil(t, err, "create")
			results[i] = append(results[i], record.DNA)
		}
		s.Close()
	}
	assert.Equal(t, results[0], results[1], "same inputs give same dna")
}

func TestMint(t *testing.T) {
	tr := setupTestRegistry(t, registry.Configuration{})
	defer tr.teardown()

	even := dnaOf("0000000000000000") // '0' is even
	record, err := tr.Mint(fixtures.Alice, even, nil)
	assert.Nil(t, err, "mint")
	assert.Equal(t, *even, record.DNA, "explicit dna")
	assert.Equal(t, dna.Female, record.Gender, "gender from dna")

	record, err = tr.Mint(fixtures.Alice, even, genderOf(dna.Male))
	assert.Nil(t, err, "mint with gender override")
	assert.Equal(t, dna.Male, record.Gender, "explicit gender")

	_, err = tr.Mint(fixtures.Alice, even, genderOf(dna.Male))
	assert.Equal(t, fault.ErrKittyAlreadyExists, err, "identical kitty")
	assert.Equal(t, uint64(2), tr.count(t), "count unchanged by duplicate")

	_, err = tr.Mint(fixtures.Alice, even, genderOf(dna.Gender(7)))
	assert.Equal(t, fault.ErrInvalidGender, err, "invalid gender")

	record, err = tr.Mint(fixtures.Bob, nil, genderOf(dna.Male))
	assert.Nil(t, err, "random dna with gender override")
	assert.Equal(t, dna.Male, record.Gender, "explicit gender on random dna")

	tr.checkConsistency(t, fixtures.Alice, fixtures.Bob)
}

func TestSetPrice(t *testing.T) {
	tr := setupTestRegistry(t, registry.Configuration{})
	defer tr.teardown()

	created, err := tr.Create(fixtures.Alice)
	assert.Nil(t, err, "create")

	record, err := tr.SetPrice(fixtures.Alice, created.Id, priceOf(25))
	assert.Nil(t, err, "list")
	assert.Equal(t, uint64(25), *record.Price, "returned price")

	stored, err := tr.Get(created.Id)
	assert.Nil(t, err, "get")
	assert.True(t, stored.IsListed(), "listed")
	assert.Equal(t, uint64(25), *stored.Price, "stored price")
	assert.Equal(t, created.DNA, stored.DNA, "dna unchanged")
	assert.Equal(t, uint64(1), tr.count(t), "count unchanged")

	_, err = tr.SetPrice(fixtures.Alice, created.Id, nil)
	assert.Nil(t, err, "unlist")
	stored, err = tr.Get(created.Id)
	assert.Nil(t, err, "get")
	assert.False(t, stored.IsListed(), "unlisted")

	_, err = tr.SetPrice(fixtures.Bob, created.Id, priceOf(1))
	assert.Equal(t, fault.ErrNotKittyOwner, err, "not owner")

	_, err = tr.SetPrice(fixtures.Alice, kitty.Id{}, priceOf(1))
	assert.Equal(t, fault.ErrKittyNotFound, err, "not found")
}

func TestTransferRoundTrip(t *testing.T) {
	tr := setupTestRegistry(t, registry.Configuration{})
	defer tr.teardown()

	created, err := tr.Create(fixtures.Alice)
	assert.Nil(t, err, "create")
	_, err = tr.SetPrice(fixtures.Alice, created.Id, priceOf(10))
	assert.Nil(t, err, "list")

	record, err := tr.Transfer(fixtures.Alice, fixtures.Bob, created.Id)
	assert.Nil(t, err, "alice to bob")
	assert.Equal(t, fixtures.Bob, record.Owner, "bob owns")
	assert.Nil(t, record.Price, "transfer clears price")
	tr.checkConsistency(t, fixtures.Alice, fixtures.Bob)

	_, err = tr.Transfer(fixtures.Bob, fixtures.Alice, created.Id)
	assert.Nil(t, err, "bob to alice")

	stored, err := tr.Get(created.Id)
	assert.Nil(t, err, "get")
	assert.Equal(t, fixtures.Alice, stored.Owner, "owner restored")
	assert.Nil(t, stored.Price, "not for sale")
	assert.Equal(t, []kitty.Id{created.Id}, tr.owned(t, fixtures.Alice), "alice membership restored")
	assert.Equal(t, 0, len(tr.owned(t, fixtures.Bob)), "bob membership restored")
	tr.checkConsistency(t, fixtures.Alice, fixtures.Bob)
}

func TestTransferErrors(t *testing.T) {
	tr := setupTestRegistry(t, registry.Configuration{MaximumOwned: 1})
	defer tr.teardown()

	mine, err := tr.Create(fixtures.Alice)
	assert.Nil(t, err, "create alice")
	_, err = tr.Create(fixtures.Bob)
	assert.Nil(t, err, "create bob")

	before := tr.snapshot(t)

	_, err = tr.Transfer(fixtures.Alice, fixtures.Carol, kitty.Id{})
	assert.Equal(t, fault.ErrKittyNotFound, err, "not found")

	_, err = tr.Transfer(fixtures.Carol, fixtures.Bob, mine.Id)
	assert.Equal(t, fault.ErrNotKittyOwner, err, "not owner")

	_, err = tr.Transfer(fixtures.Alice, fixtures.Alice, mine.Id)
	assert.Equal(t, fault.ErrTransferToSelf, err, "to self")

	_, err = tr.Transfer(fixtures.Alice, fixtures.Bob, mine.Id)
	assert.Equal(t, fault.ErrTooManyKittiesOwned, err, "receiver full")
	assert.True(t, fault.IsErrCapacity(err), "capacity class")

	assert.Equal(t, before, tr.snapshot(t), "failed transfers change nothing")
}

func TestBuy(t *testing.T) {
	tr := setupStrictTestRegistry(t, registry.Configuration{})
	defer tr.teardown()

	tr.events.EXPECT().Send(gomock.Any(), gomock.Any()).Return(true).Times(3)

	created, err := tr.Create(fixtures.Alice)
	assert.Nil(t, err, "create")
	_, err = tr.SetPrice(fixtures.Alice, created.Id, priceOf(7))
	assert.Nil(t, err, "list")
	assert.Nil(t, tr.Deposit(fixtures.Bob, 20), "deposit")

	tr.events.EXPECT().Send(registry.EventBought, created.Id[:], fixtures.Alice.Bytes(), fixtures.Bob.Bytes(), []byte{0, 0, 0, 0, 0, 0, 0, 7}).Return(true).Times(1)

	record, err := tr.Buy(fixtures.Bob, created.Id, 10)
	assert.Nil(t, err, "buy")
	assert.Equal(t, fixtures.Bob, record.Owner, "buyer owns")
	assert.Nil(t, record.Price, "no longer for sale")
	assert.Equal(t, uint64(13), tr.Balance(fixtures.Bob), "buyer balance")
	assert.Equal(t, uint64(7), tr.Balance(fixtures.Alice), "seller balance")
	tr.checkConsistency(t, fixtures.Alice, fixtures.Bob)
}

func TestBuyPriceTooLowChangesNothing(t *testing.T) {
	tr := setupTestRegistry(t, registry.Configuration{})
	defer tr.teardown()

	created, err := tr.Create(fixtures.Alice)
	assert.Nil(t, err, "create")
	_, err = tr.SetPrice(fixtures.Alice, created.Id, priceOf(50))
	assert.Nil(t, err, "list")
	assert.Nil(t, tr.Deposit(fixtures.Bob, 100), "deposit")

	before := tr.snapshot(t)
	count := tr.count(t)

	for _, offer := range []uint64{0, 1, 49} {
		_, err = tr.Buy(fixtures.Bob, created.Id, offer)
		assert.Equal(t, fault.ErrKittyBidPriceTooLow, err, "offer: %d", offer)
	}

	assert.Equal(t, count, tr.count(t), "counter unchanged")
	assert.Equal(t, before, tr.snapshot(t), "state unchanged")
	assert.Equal(t, uint64(100), tr.Balance(fixtures.Bob), "buyer balance unchanged")
	assert.Equal(t, uint64(0), tr.Balance(fixtures.Alice), "seller balance unchanged")
}

func TestBuyErrors(t *testing.T) {
	tr := setupTestRegistry(t, registry.Configuration{MaximumOwned: 1})
	defer tr.teardown()

	unlisted, err := tr.Create(fixtures.Alice)
	assert.Nil(t, err, "create")
	listed, err := tr.Create(fixtures.Carol)
	assert.Nil(t, err, "create")
	_, err = tr.SetPrice(fixtures.Carol, listed.Id, priceOf(5))
	assert.Nil(t, err, "list")
	assert.Nil(t, tr.Deposit(fixtures.Alice, 5), "deposit alice")
	assert.Nil(t, tr.Deposit(fixtures.Bob, 4), "deposit bob")

	before := tr.snapshot(t)

	_, err = tr.Buy(fixtures.Bob, kitty.Id{}, 100)
	assert.Equal(t, fault.ErrKittyNotFound, err, "not found")

	_, err = tr.Buy(fixtures.Bob, unlisted.Id, 100)
	assert.Equal(t, fault.ErrKittyNotForSale, err, "not for sale")

	_, err = tr.Buy(fixtures.Carol, listed.Id, 100)
	assert.Equal(t, fault.ErrBuyerIsKittyOwner, err, "own kitty")

	_, err = tr.Buy(fixtures.Bob, listed.Id, 100)
	assert.Equal(t, fault.ErrInsufficientBalance, err, "insufficient balance")

	// alice can pay but already holds her limit
	_, err = tr.Buy(fixtures.Alice, listed.Id, 100)
	assert.Equal(t, fault.ErrTooManyKittiesOwned, err, "buyer full")

	assert.Equal(t, before, tr.snapshot(t), "failed purchases change nothing")
}

func TestBreed(t *testing.T) {
	tr := setupTestRegistry(t, registry.Configuration{})
	defer tr.teardown()

	female, err := tr.Mint(fixtures.Alice, dnaOf("ffffffffffffffff"), genderOf(dna.Female))
	assert.Nil(t, err, "female")
	male, err := tr.Mint(fixtures.Alice, dnaOf("mmmmmmmmmmmmmmmm"), genderOf(dna.Male))
	assert.Nil(t, err, "male")
	female2, err := tr.Mint(fixtures.Alice, dnaOf("gggggggggggggggg"), genderOf(dna.Female))
	assert.Nil(t, err, "second female")

	before := tr.snapshot(t)
	_, err = tr.Breed(fixtures.Alice, female.Id, female2.Id)
	assert.Equal(t, fault.ErrSameGenderParents, err, "same gender")
	_, err = tr.Breed(fixtures.Alice, female.Id, female.Id)
	assert.Equal(t, fault.ErrSameGenderParents, err, "same parent twice")
	assert.Equal(t, before, tr.snapshot(t), "failed breed changes nothing")

	child, err := tr.Breed(fixtures.Alice, female.Id, male.Id)
	assert.Nil(t, err, "breed")
	assert.NotEqual(t, female.Id, child.Id, "distinct from mother")
	assert.NotEqual(t, male.Id, child.Id, "distinct from father")
	assert.Equal(t, child.DNA.Gender(), child.Gender, "gender follows child dna")
	assert.Nil(t, child.Price, "not for sale")
	assert.Equal(t, uint64(4), tr.count(t), "count")

	// every child bit comes from one of the parents
	for i := range child.DNA {
		either := female.DNA[i] | male.DNA[i]
		both := female.DNA[i] & male.DNA[i]
		assert.Equal(t, byte(0), child.DNA[i]&^either, "byte %d has a bit from neither parent", i)
		assert.Equal(t, both, child.DNA[i]&both, "byte %d lost a common bit", i)
	}

	// parents in either order
	_, err = tr.Breed(fixtures.Alice, male.Id, female.Id)
	assert.Nil(t, err, "breed reversed")
	tr.checkConsistency(t, fixtures.Alice)
}

func TestBreedErrors(t *testing.T) {
	tr := setupTestRegistry(t, registry.Configuration{MaximumOwned: 3})
	defer tr.teardown()

	female, err := tr.Mint(fixtures.Alice, dnaOf("ffffffffffffffff"), genderOf(dna.Female))
	assert.Nil(t, err, "female")
	male, err := tr.Mint(fixtures.Bob, dnaOf("mmmmmmmmmmmmmmmm"), genderOf(dna.Male))
	assert.Nil(t, err, "male")

	_, err = tr.Breed(fixtures.Alice, female.Id, kitty.Id{})
	assert.Equal(t, fault.ErrKittyNotFound, err, "missing second parent")
	_, err = tr.Breed(fixtures.Alice, kitty.Id{}, male.Id)
	assert.Equal(t, fault.ErrKittyNotFound, err, "missing first parent")
	_, err = tr.Breed(fixtures.Alice, female.Id, male.Id)
	assert.Equal(t, fault.ErrNotKittyOwner, err, "not owner of both")

	_, err = tr.Transfer(fixtures.Bob, fixtures.Alice, male.Id)
	assert.Nil(t, err, "give male to alice")
	_, err = tr.Create(fixtures.Alice)
	assert.Nil(t, err, "fill alice")

	_, err = tr.Breed(fixtures.Alice, female.Id, male.Id)
	assert.Equal(t, fault.ErrTooManyKittiesOwned, err, "breeder full")
	assert.Equal(t, uint64(3), tr.count(t), "count unchanged")
}

func TestCounterLimit(t *testing.T) {
	tr := setupTestRegistry(t, registry.Configuration{MaximumKitties: 2})
	defer tr.teardown()

	_, err := tr.Create(fixtures.Alice)
	assert.Nil(t, err, "first")
	_, err = tr.Create(fixtures.Bob)
	assert.Nil(t, err, "second")

	_, err = tr.Create(fixtures.Carol)
	assert.Equal(t, fault.ErrKittyCountOverflow, err, "counter full")
	_, err = tr.Mint(fixtures.Carol, dnaOf("cccccccccccccccc"), nil)
	assert.Equal(t, fault.ErrKittyCountOverflow, err, "counter full for mint")
	assert.Equal(t, uint64(2), tr.count(t), "count saturated")
}

func TestCountAtHeight(t *testing.T) {
	tr := setupTestRegistry(t, registry.Configuration{})
	defer tr.teardown()

	n, err := tr.CountAt(0)
	assert.Nil(t, err, "empty ledger")
	assert.Equal(t, uint64(0), n, "empty ledger count")

	created, err := tr.Create(fixtures.Alice)
	assert.Nil(t, err, "create")                                 // height 1
	assert.Nil(t, tr.Deposit(fixtures.Bob, 3), "deposit")        // height 2
	_, err = tr.SetPrice(fixtures.Alice, created.Id, priceOf(1)) // height 3
	assert.Nil(t, err, "set price")
	_, err = tr.Create(fixtures.Bob) // height 4
	assert.Nil(t, err, "create")

	height, err := tr.Height()
	assert.Nil(t, err, "height")
	assert.Equal(t, uint64(4), height, "height")

	expected := []uint64{0, 1, 1, 1, 2}
	for h, count := range expected {
		n, err := tr.CountAt(uint64(h))
		assert.Nil(t, err, "count at: %d", h)
		assert.Equal(t, count, n, "count at: %d", h)
	}

	_, err = tr.CountAt(5)
	assert.Equal(t, fault.ErrHeightNotFound, err, "future height")

	d3, err := tr.DigestAt(3)
	assert.Nil(t, err, "digest")
	d4, err := tr.DigestAt(4)
	assert.Nil(t, err, "digest")
	assert.NotEqual(t, d3, d4, "digests chain")
}

func TestCollectiveEntropyIsRestored(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s, err := storage.OpenMemory()
	assert.Nil(t, err, "open memory store")
	defer s.Close()

	live := entropy.NewCollective([32]byte{})
	r, err := registry.New(s, live, nil, registry.Configuration{})
	assert.Nil(t, err, "new registry")

	for i := 0; i < 3; i += 1 {
		_, err = r.Create(fixtures.Alice)
		assert.Nil(t, err, "create")
	}

	// a restarted node rebuilds the same source from the ledger
	restored := entropy.NewCollective([32]byte{})
	_, err = registry.New(s, restored, nil, registry.Configuration{})
	assert.Nil(t, err, "restart registry")

	subject := []byte("subject")
	assert.Equal(t, live.Random(subject), restored.Random(subject), "restored entropy")
}

func TestReadsOnClosedStore(t *testing.T) {
	tr := setupTestRegistry(t, registry.Configuration{})
	defer tr.teardown()

	tr.store.Close()

	_, err := tr.Count()
	assert.Equal(t, fault.ErrDatabaseIsNotSet, err, "count")
	_, err = tr.CountAt(1)
	assert.Equal(t, fault.ErrDatabaseIsNotSet, err, "count at")
	_, err = tr.Create(fixtures.Alice)
	assert.Equal(t, fault.ErrDatabaseIsNotSet, err, "create")
}
