// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "encoding/json"

// Encode 序列化回执与查询结构,出错直接panic
func Encode(data interface{}) []byte {
	b, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return b
}

// Decode 反序列化
func Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
