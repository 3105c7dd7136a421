// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:generate mockgen -destination=event_sink.go -package=mocks github.com/bitmark-inc/kittyd/registry EventSink
//go:generate mockgen -destination=entropy_source.go -package=mocks github.com/bitmark-inc/kittyd/entropy Source
//go:generate mockgen -destination=kitties_reader.go -package=mocks github.com/bitmark-inc/kittyd/rpc/kitties Reader

package mocks
