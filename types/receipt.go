// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// KeyValue 状态库键值对
type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// ReceiptLog 执行日志,Log 为对应日志结构的序列化
type ReceiptLog struct {
	Ty  int32  `json:"ty"`
	Log []byte `json:"log"`
}

// Receipt 交易执行回执
// Ty 为 ExecOk 时 KV 全部落盘,为 ExecErr 时仅保留日志
type Receipt struct {
	Ty   int32         `json:"ty"`
	KV   []*KeyValue   `json:"kv"`
	Logs []*ReceiptLog `json:"logs"`
}

// ReceiptAccountTransfer 账户余额变更
type ReceiptAccountTransfer struct {
	Prev    *Account `json:"prev"`
	Current *Account `json:"current"`
}

// ReceiptHongbaoCreate 创建红包
type ReceiptHongbaoCreate struct {
	Creator       string `json:"creator"`
	ID            uint64 `json:"id"`
	TokenType     byte   `json:"tokenType"`
	TotalAmount   uint64 `json:"totalAmount"`
	Fee           uint64 `json:"fee"`
	NumRecipients byte   `json:"numRecipients"`
	SplitMode     byte   `json:"splitMode"`
	ExpiresAt     int64  `json:"expiresAt"`
	RedPacket     string `json:"redPacket"`
	Vault         string `json:"vault"`
}

// ReceiptHongbaoClaim 领取红包
type ReceiptHongbaoClaim struct {
	Claimer   string `json:"claimer"`
	ID        uint64 `json:"id"`
	Index     byte   `json:"index"`
	Amount    uint64 `json:"amount"`
	Remaining uint64 `json:"remaining"`
	RedPacket string `json:"redPacket"`
}

// ReceiptHongbaoClose 关闭红包
type ReceiptHongbaoClose struct {
	Creator   string `json:"creator"`
	ID        uint64 `json:"id"`
	Refund    uint64 `json:"refund"`
	RedPacket string `json:"redPacket"`
}

// ReceiptTreasuryInit 初始化国库
type ReceiptTreasuryInit struct {
	Payer         string `json:"payer"`
	TokenType     byte   `json:"tokenType"`
	AcceptedAsset string `json:"acceptedAsset"`
	Treasury      string `json:"treasury"`
	Vault         string `json:"vault,omitempty"`
}

// ReceiptTreasuryWithdraw 提取手续费
type ReceiptTreasuryWithdraw struct {
	Admin     string `json:"admin"`
	TokenType byte   `json:"tokenType"`
	Amount    uint64 `json:"amount"`
	Remaining uint64 `json:"remaining"`
	Treasury  string `json:"treasury"`
}
