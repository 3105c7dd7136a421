// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/kittyd/constants"
	"github.com/bitmark-inc/kittyd/counter"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

// Status - ledger state reported by Info
type Status interface {
	Height() (uint64, error)
	Count() (uint64, error)
	MaximumOwned() uint64
}

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Chain   string
	Status  Status
	counter *counter.Counter
}

// New - create the node RPC handler
func New(log *logger.L, chain string, start time.Time, version string, counter *counter.Counter, status Status) *Node {
	return &Node{
		Log:     log,
		Limiter: ratelimit.New(constants.RPCRequestsPerSecond),
		Start:   start,
		Version: version,
		Chain:   chain,
		Status:  status,
		counter: counter,
	}
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain        string `json:"chain"`
	Height       uint64 `json:"height,string"`
	Kitties      uint64 `json:"kitties,string"`
	MaximumOwned uint64 `json:"maximumOwned,string"`
	RPCs         uint64 `json:"rpcs"`
	Version      string `json:"version"`
	Uptime       string `json:"uptime"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Status {
		return fault.ErrDatabaseIsNotSet
	}

	height, err := node.Status.Height()
	if nil != err {
		return fault.NewRuntimeError("unable to get ledger height", err)
	}
	count, err := node.Status.Count()
	if nil != err {
		return fault.NewRuntimeError("unable to get kitties count", err)
	}

	reply.Chain = node.Chain
	reply.Height = height
	reply.Kitties = count
	reply.MaximumOwned = node.Status.MaximumOwned()
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
