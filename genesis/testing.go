// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genesis

import (
	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/dna"
)

// Testing - the built in state for test chains when none is configured
//
// account 1 holds a female and account 2 a male kitty
func Testing() *Genesis {
	return &Genesis{
		Seeds: []Seed{
			{
				Owner:  numberedAccount(1),
				DNA:    fixedDNA("1234567890123456"),
				Gender: dna.Female,
			},
			{
				Owner:  numberedAccount(2),
				DNA:    fixedDNA("123456789012345a"),
				Gender: dna.Male,
			},
		},
		Endowments: []Endowment{
			{Owner: numberedAccount(1), Amount: 1 << 60},
			{Owner: numberedAccount(2), Amount: 1 << 60},
		},
	}
}

func numberedAccount(n byte) account.Account {
	a := account.Account{}
	a[0] = n
	return a
}

func fixedDNA(s string) dna.DNA {
	d := dna.DNA{}
	copy(d[:], s)
	return d
}
