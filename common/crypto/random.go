// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto

import (
	crand "crypto/rand"
	"encoding/hex"
	"io"
)

//CRandBytes 操作系统熵源随机字节
func CRandBytes(numBytes int) []byte {
	b := make([]byte, numBytes)
	_, err := crand.Read(b)
	if err != nil {
		panic("crypto rand failed: " + err.Error())
	}
	return b
}

//CRandHex CRandHex(24) 提供96位随机量
func CRandHex(numDigits int) string {
	return hex.EncodeToString(CRandBytes(numDigits / 2))
}

//CReader 随机源
func CReader() io.Reader {
	return crand.Reader
}
