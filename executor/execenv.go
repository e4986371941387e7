// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/hongbaochain/hongbao/common/db"
	"github.com/hongbaochain/hongbao/types"
)

//数据账户的读写:宿主为每个数据账户保存一条 AccountData 元信息,
//Owner 指明管辖程序,记录字节放在 Data 里,账户的原生币余额走 coins 账本

func loadAccountData(db dbm.KV, execName, addr string) (*types.AccountData, error) {
	value, err := db.Get(calcAcctKey(execName, addr))
	if err != nil {
		return nil, types.ErrNotFound
	}
	var acct types.AccountData
	if err := types.Decode(value, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

func saveAccountData(db dbm.KV, execName, addr string, acct *types.AccountData) *types.KeyValue {
	kv := &types.KeyValue{
		Key:   calcAcctKey(execName, addr),
		Value: types.Encode(acct),
	}
	db.Set(kv.Key, kv.Value)
	return kv
}

//deleteAccountData 账户元信息销毁,nil 值在落盘时转为删除
func deleteAccountData(db dbm.KV, execName, addr string) *types.KeyValue {
	kv := &types.KeyValue{Key: calcAcctKey(execName, addr)}
	db.Set(kv.Key, nil)
	return kv
}

//readRedPacket 读取并校验红包记录:账户归属本程序且记录可解码
func readRedPacket(db dbm.KV, execName, addr string) (*types.RedPacket, error) {
	acct, err := loadAccountData(db, execName, addr)
	if err != nil {
		return nil, types.ErrInvalidDiscriminator
	}
	if acct.Owner != execName {
		return nil, types.ErrInvalidAccountOwner
	}
	return types.DecodeRedPacket(acct.Data)
}

//readTreasury 读取并校验金库记录
func readTreasury(db dbm.KV, execName, addr string) (*types.Treasury, error) {
	acct, err := loadAccountData(db, execName, addr)
	if err != nil {
		return nil, types.ErrTreasuryNotInitialized
	}
	if acct.Owner != execName {
		return nil, types.ErrInvalidAccountOwner
	}
	return types.DecodeTreasury(acct.Data)
}
