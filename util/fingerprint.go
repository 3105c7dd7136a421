// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// FingerprintBytes - to hold type for fingerprint
type FingerprintBytes [sha256.Size]byte

// Fingerprint - fingerprint a DER certificate
//
// the same value as:
// openssl x509 -noout -in ~/.config/kittyd/rpc.crt -fingerprint -sha256
func Fingerprint(certificate []byte) FingerprintBytes {
	return sha256.Sum256(certificate)
}

// String - hex form of a fingerprint
func (f FingerprintBytes) String() string {
	return hex.EncodeToString(f[:])
}
