// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dna_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/dna"
	"github.com/bitmark-inc/kittyd/fault"
)

var (
	owner1  = account.Account{1}
	owner2  = account.Account{2}
	entropy = []byte("some fixed entropy for testing")
)

func TestDeriveIsDeterministic(t *testing.T) {
	d1 := dna.Derive(1, entropy, owner1)
	d2 := dna.Derive(1, entropy, owner1)
	assert.Equal(t, d1, d2, "same inputs gave different dna")
}

func TestDeriveDependsOnEveryInput(t *testing.T) {
	base := dna.Derive(1, entropy, owner1)

	assert.NotEqual(t, base, dna.Derive(2, entropy, owner1), "nonce ignored")
	assert.NotEqual(t, base, dna.Derive(1, []byte("other entropy"), owner1), "entropy ignored")
	assert.NotEqual(t, base, dna.Derive(1, entropy, owner2), "account ignored")
}

func TestDeriveDistinctNonces(t *testing.T) {
	seen := make(map[dna.DNA]uint64)
	for nonce := uint64(0); nonce < 1000; nonce += 1 {
		d := dna.Derive(nonce, entropy, owner1)
		if previous, ok := seen[d]; ok {
			t.Fatalf("nonce: %d repeats dna of nonce: %d", nonce, previous)
		}
		seen[d] = nonce
	}
}

func TestGenderOf(t *testing.T) {
	assert.Equal(t, dna.Female, dna.GenderOf(dna.DNA{0x00}), "zero")
	assert.Equal(t, dna.Male, dna.GenderOf(dna.DNA{0x01}), "one")
	assert.Equal(t, dna.Female, dna.GenderOf(dna.DNA{0xfe, 0x01}), "only first byte counts")
	assert.Equal(t, dna.Male, dna.GenderOf(dna.DNA{'1'}), "ASCII '1' is odd")

	d := dna.DNA{0x33}
	assert.Equal(t, dna.Male, d.Gender(), "method")
}

func TestBreed(t *testing.T) {
	first := dna.DNA{0xff, 0x00, 0xf0, 0x0f}
	second := dna.DNA{0x00, 0xff, 0x0f, 0xf0}

	allFirst := dna.DNA{}
	for i := range allFirst {
		allFirst[i] = 0xff
	}
	assert.Equal(t, first, dna.Breed(allFirst, first, second), "all bits from first")
	assert.Equal(t, second, dna.Breed(dna.DNA{}, first, second), "all bits from second")

	selector := dna.DNA{0x0f, 0x0f, 0x0f, 0x0f}
	child := dna.Breed(selector, first, second)
	assert.Equal(t, dna.DNA{0x0f, 0xf0, 0x00, 0xff}, child, "mixed bits")

	// every bit of a child comes from one of its parents
	p1 := dna.Derive(1, entropy, owner1)
	p2 := dna.Derive(2, entropy, owner2)
	s := dna.Derive(3, entropy, owner1)
	c := dna.Breed(s, p1, p2)
	for i := 0; i < dna.Length; i += 1 {
		fromFirst := c[i] & s[i]
		fromSecond := c[i] &^ s[i]
		assert.Equal(t, p1[i]&s[i], fromFirst, "byte: %d first parent bits", i)
		assert.Equal(t, p2[i]&^s[i], fromSecond, "byte: %d second parent bits", i)
	}
}

func TestGenderText(t *testing.T) {
	for _, g := range []dna.Gender{dna.Female, dna.Male} {
		buffer, err := g.MarshalText()
		assert.Nil(t, err, "marshal: %v", g)

		var g2 dna.Gender
		err = g2.UnmarshalText(buffer)
		assert.Nil(t, err, "unmarshal: %q", buffer)
		assert.Equal(t, g, g2, "round trip")
	}

	g, err := dna.ParseGender("M")
	assert.Nil(t, err, "short form")
	assert.Equal(t, dna.Male, g, "short form")

	_, err = dna.ParseGender("neither")
	assert.Equal(t, fault.ErrInvalidGender, err, "invalid gender")

	_, err = dna.Gender(7).MarshalText()
	assert.Equal(t, fault.ErrInvalidGender, err, "invalid value")
	assert.True(t, dna.Female.Opposite(dna.Male), "opposite")
	assert.False(t, dna.Male.Opposite(dna.Male), "same")
}

func TestDNAText(t *testing.T) {
	d := dna.DNA{}
	copy(d[:], "1234567890123456")

	buffer, err := json.Marshal(d)
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `"31323334353637383930313233343536"`, string(buffer), "wrong JSON")

	var d2 dna.DNA
	err = json.Unmarshal(buffer, &d2)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, d, d2, "round trip")

	err = d2.UnmarshalText([]byte("1234"))
	assert.Equal(t, fault.ErrInvalidDNALength, err, "short text")

	_, err = dna.FromBytes([]byte("short"))
	assert.Equal(t, fault.ErrInvalidDNALength, err, "short bytes")
}
