// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittyd/background"
)

type ticker struct {
	ticks   uint64
	stopped uint64
}

func (state *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	delay := args.(time.Duration)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(delay):
			atomic.AddUint64(&state.ticks, 1)
		}
	}

	atomic.StoreUint64(&state.stopped, 1)
}

func TestStartAndStop(t *testing.T) {
	proc1 := &ticker{}
	proc2 := &ticker{}

	p := background.Start(background.Processes{proc1, proc2}, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	for i, proc := range []*ticker{proc1, proc2} {
		assert.Equal(t, uint64(1), atomic.LoadUint64(&proc.stopped), "process %d did not finish", i)
		assert.NotEqual(t, uint64(0), atomic.LoadUint64(&proc.ticks), "process %d did not run", i)
	}

	// ticks must not advance after stop
	ticks := atomic.LoadUint64(&proc1.ticks)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, ticks, atomic.LoadUint64(&proc1.ticks), "ran after stop")
}

func TestStopTwice(t *testing.T) {
	p := background.Start(background.Processes{&ticker{}}, time.Millisecond)
	p.Stop()
	p.Stop()
}

func TestEmpty(t *testing.T) {
	p := background.Start(nil, nil)
	p.Stop()
}
