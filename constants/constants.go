// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import (
	"math"
)

// registry limits
const (
	// kitties one account may hold at any time
	MaximumKittiesOwned = 9999

	// upper bound for a configured per account limit, an owner's
	// whole collection must fit in one listing
	MaximumOwnedLimit = math.MaxInt32

	// kitties that can ever be created
	MaximumKitties = math.MaxUint64
)

// event queue length
const (
	EventQueueSize = 1000
)

// RPC limits
const (
	RPCRequestsPerSecond  = 200
	RPCMaximumConnections = 100
	RPCMaximumPageSize    = 100
)
