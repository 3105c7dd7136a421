// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"encoding/hex"
	"strings"

	"github.com/bitmark-inc/logger"
)

// Logger - background process writing every queued message to the log
type Logger struct {
	log   *logger.L
	queue *Queue
}

// NewLogger - drain queue into the "events" log channel
func NewLogger(queue *Queue) *Logger {
	return &Logger{
		log:   logger.New("events"),
		queue: queue,
	}
}

// Run - background entry point
func (l *Logger) Run(args interface{}, shutdown <-chan struct{}) {
	log := l.log

	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case m := <-l.queue.Chan():
			log.Infof("%s: %s %s", m.Id, m.Command, formatParameters(m.Parameters))
		}
	}

	if dropped := l.queue.Dropped(); 0 != dropped {
		log.Warnf("dropped messages: %d", dropped)
	}
	log.Info("stopped")
}

func formatParameters(parameters [][]byte) string {
	s := make([]string, len(parameters))
	for i, p := range parameters {
		s[i] = hex.EncodeToString(p)
	}
	return strings.Join(s, " ")
}
