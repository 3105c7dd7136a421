// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dna

import (
	"strings"

	"github.com/bitmark-inc/kittyd/fault"
)

// Gender - the gender of a kitty
type Gender byte

// possible genders
const (
	Female Gender = iota
	Male
)

// GenderOf - even first byte is female, odd is male
func GenderOf(d DNA) Gender {
	if 0 == d[0]&0x01 {
		return Female
	}
	return Male
}

// Valid - check a gender value
func (g Gender) Valid() bool {
	return Female == g || Male == g
}

// Opposite - true when the two genders differ
func (g Gender) Opposite(other Gender) bool {
	return g != other
}

// String - lower case name of a gender
func (g Gender) String() string {
	switch g {
	case Female:
		return "female"
	case Male:
		return "male"
	default:
		return "*unknown*"
	}
}

// MarshalText - convert gender to text
func (g Gender) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fault.ErrInvalidGender
	}
	return []byte(g.String()), nil
}

// UnmarshalText - convert text to gender
func (g *Gender) UnmarshalText(s []byte) error {
	parsed, err := ParseGender(string(s))
	if nil != err {
		return err
	}
	*g = parsed
	return nil
}

// ParseGender - convert a name to a gender
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(s) {
	case "female", "f":
		return Female, nil
	case "male", "m":
		return Male, nil
	default:
		return Female, fault.ErrInvalidGender
	}
}
