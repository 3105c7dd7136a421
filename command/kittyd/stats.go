// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/messagebus"
	"github.com/bitmark-inc/kittyd/registry"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// memoryStats - background process logging memory and ledger use
type memoryStats struct {
	log      *logger.L
	registry *registry.Registry
	events   *messagebus.Queue
}

// Run - background entry point
func (m *memoryStats) Run(args interface{}, shutdown <-chan struct{}) {
	ticker := time.NewTicker(statsDelay)
	defer ticker.Stop()

loop:
	for {
		m.report()

		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
		}
	}
}

func (m *memoryStats) report() {
	log := m.log

	var s runtime.MemStats
	runtime.ReadMemStats(&s)

	text, err := json.Marshal(s)
	if nil != err {
		log.Errorf("marshal error: %s", err)
	} else {
		log.Debugf("stats: %s", text)
	}
	a := s.Alloc / mega
	t := s.TotalAlloc / mega
	o := s.Sys / mega
	log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M", a, t, o)

	height, _ := m.registry.Height()
	count, _ := m.registry.Count()
	log.Infof("height: %d  kitties: %d  dropped events: %d", height, count, m.events.Dropped())
}
