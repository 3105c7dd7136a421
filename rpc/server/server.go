// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/kittyd/counter"
	"github.com/bitmark-inc/kittyd/registry"
	"github.com/bitmark-inc/kittyd/rpc/kitties"
	"github.com/bitmark-inc/kittyd/rpc/node"
	"github.com/bitmark-inc/logger"
)

// Create - an RPC server with all services registered
func Create(log *logger.L, version string, chain string, rpcCount *counter.Counter, r *registry.Registry) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(kitties.New(log, r))
	_ = server.Register(node.New(log, chain, start, version, rpcCount, r))

	return server
}
