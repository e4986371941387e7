// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// AccountData 宿主为数据账户保存的元信息
// Owner 为管辖该账户数据的程序名,代币账户以 Asset 记资产符号,Authority 记支配者地址
type AccountData struct {
	Owner     string `json:"owner"`
	Asset     string `json:"asset,omitempty"`
	Authority string `json:"authority,omitempty"`
	Data      []byte `json:"data,omitempty"`
}

// ReqRedPacket 红包查询请求,红包由创建者地址与编号唯一确定
type ReqRedPacket struct {
	Creator string `json:"creator"`
	ID      uint64 `json:"id"`
}

// ReplyRedPacket 红包记录的解码视图
type ReplyRedPacket struct {
	Addr          string   `json:"addr"`
	Vault         string   `json:"vault"`
	Creator       string   `json:"creator"`
	ID            uint64   `json:"id"`
	TokenType     byte     `json:"tokenType"`
	Asset         string   `json:"asset,omitempty"`
	TotalAmount   uint64   `json:"totalAmount"`
	Remaining     uint64   `json:"remaining"`
	NumRecipients byte     `json:"numRecipients"`
	NumClaimed    byte     `json:"numClaimed"`
	SplitMode     byte     `json:"splitMode"`
	ExpiresAt     int64    `json:"expiresAt"`
	Status        string   `json:"status"`
	Amounts       []uint64 `json:"amounts"`
	Claimers      []string `json:"claimers"`
}

// ReplyStatus 红包状态摘要
type ReplyStatus struct {
	Status        string `json:"status"`
	NumClaimed    byte   `json:"numClaimed"`
	NumRecipients byte   `json:"numRecipients"`
	Remaining     uint64 `json:"remaining"`
	ExpiresAt     int64  `json:"expiresAt"`
}

// ReqTreasury 国库查询请求,原生币国库 Asset 留空
type ReqTreasury struct {
	TokenType byte   `json:"tokenType"`
	Asset     string `json:"asset,omitempty"`
}

// ReplyTreasury 国库记录的解码视图
type ReplyTreasury struct {
	Addr          string `json:"addr"`
	Vault         string `json:"vault,omitempty"`
	TokenType     byte   `json:"tokenType"`
	AcceptedAsset string `json:"acceptedAsset"`
	FeesCollected uint64 `json:"feesCollected"`
	Balance       uint64 `json:"balance"`
}

// ReqList 按创建者列出红包
type ReqList struct {
	Creator string `json:"creator"`
	Count   int32  `json:"count"`
}

// ReplyRedPacketList 红包列表
type ReplyRedPacketList struct {
	Packets []*ReplyRedPacket `json:"packets"`
}

// ReqBalance 余额查询,Asset 留空查原生币
type ReqBalance struct {
	Addr  string `json:"addr"`
	Asset string `json:"asset,omitempty"`
}

// ReqNil 空请求
type ReqNil struct{}

// Header 当前链头摘要
type Header struct {
	Height    int64 `json:"height"`
	BlockTime int64 `json:"blockTime"`
}

// RawParm 十六进制编码的已签名交易
type RawParm struct {
	Data string `json:"data"`
}

// ReplyHash 交易哈希
type ReplyHash struct {
	Hash string `json:"hash"`
}

// TransactionDetail 交易及其回执
type TransactionDetail struct {
	Tx        *Transaction `json:"tx"`
	Receipt   *Receipt     `json:"receipt"`
	Height    int64        `json:"height"`
	Index     int32        `json:"index"`
	Blocktime int64        `json:"blocktime"`
	FromAddr  string       `json:"fromAddr"`
}
