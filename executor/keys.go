// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import "fmt"

//状态键前缀 mavl-,本地索引键前缀 LODB-,两类键各自独立,互不落入对方的迭代范围

func calcAcctKey(execName, addr string) []byte {
	return []byte(fmt.Sprintf("mavl-%s-acct-%s", execName, addr))
}

func calcLastHeaderKey(execName string) []byte {
	return []byte(fmt.Sprintf("mavl-%s-lastheader", execName))
}

func calcGenesisDoneKey(execName string) []byte {
	return []byte(fmt.Sprintf("mavl-%s-genesis", execName))
}

//红包索引:创建者维度,值为红包记录地址,id 定长编码保证字典序即数值序
func calcPacketIndexKey(execName, creator string, id uint64) []byte {
	return []byte(fmt.Sprintf("LODB-%s-packet-%s-%020d", execName, creator, id))
}

func calcPacketIndexPrefix(execName, creator string) []byte {
	return []byte(fmt.Sprintf("LODB-%s-packet-%s-", execName, creator))
}

//交易回执索引,按交易哈希查询
func calcTxDetailKey(execName string, hash []byte) []byte {
	return append([]byte(fmt.Sprintf("LODB-%s-tx-", execName)), hash...)
}
