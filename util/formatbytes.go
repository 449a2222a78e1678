// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"fmt"
	"strings"
)

// FormatBytes - Go source for a byte slice literal, used by tests to
// print a replacement for an expected value
func FormatBytes(name string, data []byte) string {
	var s strings.Builder
	s.WriteString(name + " := []byte{")
	for i, b := range data {
		if 0 == i%8 {
			s.WriteString("\n\t")
		} else {
			s.WriteString(" ")
		}
		fmt.Fprintf(&s, "0x%02x,", b)
	}
	s.WriteString("\n}")
	return s.String()
}
