// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package entropy - sources of bytes that the submitter of a
// transition cannot predict, but that replay identically from the
// same ledger state
package entropy
