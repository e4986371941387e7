// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package account 资产账本:加载、保存、转账及其回执
package account

import (
	"fmt"
	"strings"

	dbm "github.com/hongbaochain/hongbao/common/db"
	"github.com/hongbaochain/hongbao/types"
)

// DB 某一种资产的账本,原生币与各代币各用一个前缀隔离
type DB struct {
	db               dbm.KV
	accountKeyPrefix []byte
	execer           string
	symbol           string
}

// NewCoinsAccount 原生币账本
func NewCoinsAccount(symbol string, db dbm.KV) *DB {
	acc, err := NewAccountDB("coins", symbol, db)
	if err != nil {
		panic(err)
	}
	return acc
}

// NewAccountDB 指定资产的账本,execer 和 symbol 中不允许出现 "-"
func NewAccountDB(execer string, symbol string, db dbm.KV) (*DB, error) {
	if strings.ContainsRune(execer, '-') {
		return nil, types.ErrExecNameNotAllow
	}
	if strings.ContainsRune(symbol, '-') {
		return nil, types.ErrSymbolNameNotAllow
	}
	acc := &DB{
		accountKeyPrefix: []byte(SymbolPrefix(execer, symbol)),
		execer:           execer,
		symbol:           symbol,
		db:               db,
	}
	return acc, nil
}

// SetDB 替换底层KV,执行器在每笔交易的缓存上重绑
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

// Symbol 资产符号
func (acc *DB) Symbol() string {
	return acc.symbol
}

// LoadAccount 加载账户,不存在时返回零余额账户
func (acc *DB) LoadAccount(addr string) *types.Account {
	value, err := acc.db.Get(acc.AccountKey(addr))
	if err != nil {
		return &types.Account{Addr: addr}
	}
	var acc1 types.Account
	err = types.Decode(value, &acc1)
	if err != nil {
		panic(err) //数据库已经损坏
	}
	return &acc1
}

// CheckTransfer 转账前置检查
func (acc *DB) CheckTransfer(from, to string, amount int64) error {
	if !types.CheckAmount(amount) {
		return types.ErrAmount
	}
	accFrom := acc.LoadAccount(from)
	if accFrom.Balance-amount < 0 {
		return types.ErrNoBalance
	}
	return nil
}

// Transfer 账户间转账
func (acc *DB) Transfer(from, to string, amount int64) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	accFrom := acc.LoadAccount(from)
	accTo := acc.LoadAccount(to)
	if accFrom.Addr == accTo.Addr {
		return nil, types.ErrSendSameToRecv
	}
	if accFrom.Balance-amount < 0 {
		return nil, types.ErrNoBalance
	}
	copyfrom := *accFrom
	copyto := *accTo

	accFrom.Balance = accFrom.Balance - amount
	accTo.Balance = accTo.Balance + amount

	receiptFrom := &types.ReceiptAccountTransfer{Prev: &copyfrom, Current: accFrom}
	receiptTo := &types.ReceiptAccountTransfer{Prev: &copyto, Current: accTo}

	acc.SaveAccount(accFrom)
	acc.SaveAccount(accTo)
	return acc.transferReceipt(accFrom, accTo, receiptFrom, receiptTo), nil
}

func (acc *DB) transferReceipt(accFrom, accTo *types.Account, receiptFrom, receiptTo *types.ReceiptAccountTransfer) *types.Receipt {
	log1 := &types.ReceiptLog{
		Ty:  types.TyLogTransfer,
		Log: types.Encode(receiptFrom),
	}
	log2 := &types.ReceiptLog{
		Ty:  types.TyLogTransfer,
		Log: types.Encode(receiptTo),
	}
	kv := acc.GetKVSet(accFrom)
	kv = append(kv, acc.GetKVSet(accTo)...)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kv,
		Logs: []*types.ReceiptLog{log1, log2},
	}
}

// GenesisInit 创世充值,凭空记入余额
func (acc *DB) GenesisInit(addr string, amount int64) (*types.Receipt, error) {
	if !types.CheckAmount(amount) {
		return nil, types.ErrAmount
	}
	acc1 := acc.LoadAccount(addr)
	copyacc := *acc1
	acc1.Balance += amount
	receipt := &types.ReceiptAccountTransfer{Prev: &copyacc, Current: acc1}
	acc.SaveAccount(acc1)
	log1 := &types.ReceiptLog{
		Ty:  types.TyLogDeposit,
		Log: types.Encode(receipt),
	}
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   acc.GetKVSet(acc1),
		Logs: []*types.ReceiptLog{log1},
	}, nil
}

// SaveAccount 保存账户
func (acc *DB) SaveAccount(acc1 *types.Account) {
	set := acc.GetKVSet(acc1)
	for i := 0; i < len(set); i++ {
		acc.db.Set(set[i].Key, set[i].Value)
	}
}

// GetKVSet 账户对应的状态键值
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.AccountKey(acc1.Addr),
		Value: value,
	})
	return kvset
}

// AccountKey 账户的状态键
func (acc *DB) AccountKey(address string) (key []byte) {
	key = append(key, acc.accountKeyPrefix...)
	key = append(key, []byte(address)...)
	return key
}

// SymbolPrefix 资产账本的键前缀
func SymbolPrefix(execer string, symbol string) string {
	return fmt.Sprintf("mavl-%s-%s-", execer, symbol)
}
