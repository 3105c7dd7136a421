// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/fault"
)

func makeAccount(n byte) account.Account {
	a := account.Account{}
	for i := range a {
		a[i] = n + byte(i)
	}
	return a
}

func TestBase58RoundTrip(t *testing.T) {
	for _, n := range []byte{0, 1, 2, 10, 200} {
		a := makeAccount(n)
		s := a.String()

		b, err := account.FromBase58(s)
		assert.Nil(t, err, "decode: %q", s)
		assert.Equal(t, a, b, "wrong account for: %q", s)
	}
}

func TestBase58Errors(t *testing.T) {
	a := makeAccount(7)
	s := []byte(a.String())

	// change one character to corrupt the checksum
	if '2' == s[3] {
		s[3] = '3'
	} else {
		s[3] = '2'
	}

	_, err := account.FromBase58(string(s))
	assert.NotNil(t, err, "corrupted account decoded")

	_, err = account.FromBase58("3gLJjLSociTmf4kgL3ztUK;tgADFvg9yjXt1jFbEx9KgpEEAFn")
	assert.Equal(t, fault.ErrCannotDecodeAccount, err, "invalid base58 string")

	_, err = account.FromBase58("3MvykBZzN")
	assert.Equal(t, fault.ErrInvalidAccountLength, err, "short account")
}

func TestFromBytes(t *testing.T) {
	a := makeAccount(3)

	b, err := account.FromBytes(a.Bytes())
	assert.Nil(t, err, "from bytes")
	assert.Equal(t, a, b, "wrong account")

	_, err = account.FromBytes(a.Bytes()[1:])
	assert.Equal(t, fault.ErrInvalidAccountLength, err, "short buffer")

	assert.True(t, account.Account{}.IsZero(), "zero account")
	assert.False(t, a.IsZero(), "non-zero account")
}

func TestJSON(t *testing.T) {
	type holder struct {
		Owner account.Account `json:"owner"`
	}

	h := holder{Owner: makeAccount(42)}
	buffer, err := json.Marshal(h)
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `{"owner":"`+h.Owner.String()+`"}`, string(buffer), "wrong JSON")

	var h2 holder
	err = json.Unmarshal(buffer, &h2)
	assert.Nil(t, err, "unmarshal")
	assert.Equal(t, h, h2, "round trip")
}
