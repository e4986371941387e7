// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "github.com/hongbaochain/hongbao/common/address"

// MintAddress 资产符号对应的登记账户地址,链上链下用同一算法推导
func MintAddress(symbol string) string {
	return address.PubKeyToAddr(AssetID(symbol))
}

// Account 账户资产,Balance 可用余额,Frozen 冻结余额
type Account struct {
	Currency int32  `json:"currency"`
	Balance  int64  `json:"balance"`
	Frozen   int64  `json:"frozen"`
	Addr     string `json:"addr"`
}

// CheckAmount 金额取值是否合法
func CheckAmount(amount int64) bool {
	return amount > 0 && amount <= MaxCoin
}
