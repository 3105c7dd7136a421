// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - accept TLS connections and serve JSON-RPC on them
package listeners

// Listener - a started set of network listeners
type Listener interface {
	Serve() error
	Stop()
}

const minConnectionCount = 1
