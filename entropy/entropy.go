// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import (
	"sync"

	"golang.org/x/crypto/sha3"
)

// Source - supplies entropy for a subject
type Source interface {
	Random(subject []byte) []byte
}

// Accumulator - a source that is refreshed by each ledger commit
type Accumulator interface {
	Source
	Add(digest [32]byte)
}

// ---

// Fixed - always returns the same bytes, for tests and reproducible runs
type Fixed []byte

// Random - returns a copy of the fixed bytes
func (f Fixed) Random(_ []byte) []byte {
	result := make([]byte, len(f))
	copy(result, f)
	return result
}

// ---

// CollectiveLength - the number of recent digests mixed together
const CollectiveLength = 81

// Collective - mixes the most recent ledger digests
type Collective struct {
	sync.Mutex
	digests [][32]byte
	next    int
}

// NewCollective - create a collective source seeded with a single digest
func NewCollective(seed [32]byte) *Collective {
	c := &Collective{
		digests: make([][32]byte, 0, CollectiveLength),
	}
	c.Add(seed)
	return c
}

// Add - record a new ledger digest, dropping the oldest once full
func (c *Collective) Add(digest [32]byte) {
	c.Lock()
	defer c.Unlock()

	if len(c.digests) < CollectiveLength {
		c.digests = append(c.digests, digest)
		return
	}
	c.digests[c.next] = digest
	c.next = (c.next + 1) % CollectiveLength
}

// Random - SHA3-256 over subject ⧺ digests (oldest first)
func (c *Collective) Random(subject []byte) []byte {
	c.Lock()
	defer c.Unlock()

	h := sha3.New256()
	h.Write(subject)
	n := len(c.digests)
	for i := 0; i < n; i += 1 {
		d := c.digests[(c.next+i)%n]
		h.Write(d[:])
	}
	return h.Sum(nil)
}
