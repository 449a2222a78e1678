// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - account identities and program derived addresses
//
// A program derived address is SHA-256 over the seeds, the program
// identity and a fixed marker.  Only hashes that are not valid ed25519
// points are accepted so the address has no private key; the bump
// seed is decremented from 255 until that holds.
//
// Anything that signs for a derived address must use a Derived value,
// which can only be produced by Verify or Locate.
package address
