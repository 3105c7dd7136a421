// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"
	"strconv"
)

// EventSink - receiver of one notification per successful transition
//
// Send must not block, the result only reports whether the event was accepted
type EventSink interface {
	Send(command string, parameters ...[]byte) bool
}

// event commands
const (
	EventCreated     = "created"
	EventPriced      = "priced"
	EventTransferred = "transferred"
	EventBought      = "bought"
	EventBred        = "bred"
	EventDeposited   = "deposited"
)

func (r *Registry) notify(command string, parameters ...[]byte) {
	if nil == r.events {
		return
	}
	if !r.events.Send(command, parameters...) {
		r.log.Warnf("event: %s dropped", command)
	}
}

// big endian value, empty for nil
func uint64Bytes(value *uint64) []byte {
	if nil == value {
		return []byte{}
	}
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, *value)
	return buffer
}

func formatPrice(price *uint64) string {
	if nil == price {
		return "none"
	}
	return strconv.FormatUint(*price, 10)
}
