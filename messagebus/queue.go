// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/google/uuid"

	"github.com/bitmark-inc/kittyd/counter"
)

// DefaultQueueSize - queue length used when none is given
const DefaultQueueSize = 1000

// Message - a queued event
type Message struct {
	Id         uuid.UUID
	Command    string
	Parameters [][]byte
}

// Queue - a bounded queue of messages
type Queue struct {
	c       chan Message
	dropped counter.Counter
}

// New - create a queue holding up to size messages
func New(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		c: make(chan Message, size),
	}
}

// Send - queue a message without waiting
//
// returns false if the queue was full and the message discarded
func (queue *Queue) Send(command string, parameters ...[]byte) bool {
	m := Message{
		Id:         uuid.New(),
		Command:    command,
		Parameters: parameters,
	}
	select {
	case queue.c <- m:
		return true
	default:
		queue.dropped.Increment()
		return false
	}
}

// Chan - channel to read from
func (queue *Queue) Chan() <-chan Message {
	return queue.c
}

// Dropped - number of messages discarded because the queue was full
func (queue *Queue) Dropped() uint64 {
	return queue.dropped.Uint64()
}
