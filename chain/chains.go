// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

// names of all chains
const (
	Kitties = "kitties"
	Testing = "testing"
	Local   = "local"
)

// Valid - validate a chain name
func Valid(name string) bool {
	switch name {
	case Kitties, Testing, Local:
		return true
	default:
		return false
	}
}

// IsTesting - chains where genesis seeding and operator deposits are allowed
func IsTesting(name string) bool {
	return Testing == name || Local == name
}
