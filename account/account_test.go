// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "github.com/hongbaochain/hongbao/common/db"
	"github.com/hongbaochain/hongbao/types"
)

var (
	addr1 = "14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"
	addr2 = "1JRNjdEqp4LJ5fqycUBm9ayCKSeeskgMKR"
)

func newTestAccount(t *testing.T) *DB {
	testdb, err := dbm.NewGoMemDB("test", "", 0)
	require.NoError(t, err)
	return NewCoinsAccount("hbc", testdb)
}

func TestGenesisInit(t *testing.T) {
	acc := newTestAccount(t)
	receipt, err := acc.GenesisInit(addr1, 1000*types.Coin)
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 1)
	assert.Equal(t, int32(types.TyLogDeposit), receipt.Logs[0].Ty)

	loaded := acc.LoadAccount(addr1)
	assert.Equal(t, 1000*types.Coin, loaded.Balance)
}

func TestTransfer(t *testing.T) {
	acc := newTestAccount(t)
	_, err := acc.GenesisInit(addr1, 1000*types.Coin)
	require.NoError(t, err)

	receipt, err := acc.Transfer(addr1, addr2, 200*types.Coin)
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 2)
	assert.Equal(t, int32(types.TyLogTransfer), receipt.Logs[0].Ty)

	var fromLog types.ReceiptAccountTransfer
	require.NoError(t, types.Decode(receipt.Logs[0].Log, &fromLog))
	assert.Equal(t, 1000*types.Coin, fromLog.Prev.Balance)
	assert.Equal(t, 800*types.Coin, fromLog.Current.Balance)

	assert.Equal(t, 800*types.Coin, acc.LoadAccount(addr1).Balance)
	assert.Equal(t, 200*types.Coin, acc.LoadAccount(addr2).Balance)
}

func TestTransferChecks(t *testing.T) {
	acc := newTestAccount(t)
	_, err := acc.GenesisInit(addr1, 100)
	require.NoError(t, err)

	_, err = acc.Transfer(addr1, addr2, 0)
	assert.Equal(t, types.ErrAmount, err)

	_, err = acc.Transfer(addr1, addr1, 10)
	assert.Equal(t, types.ErrSendSameToRecv, err)

	_, err = acc.Transfer(addr1, addr2, 101)
	assert.Equal(t, types.ErrNoBalance, err)

	//失败的转账不能留下痕迹
	assert.Equal(t, int64(100), acc.LoadAccount(addr1).Balance)
	assert.Equal(t, int64(0), acc.LoadAccount(addr2).Balance)
}

func TestAssetAccountDB(t *testing.T) {
	testdb, err := dbm.NewGoMemDB("test", "", 0)
	require.NoError(t, err)

	_, err = NewAccountDB("token", "bad-symbol", testdb)
	assert.Equal(t, types.ErrSymbolNameNotAllow, err)

	tokenAcc, err := NewAccountDB("token", "usdh", testdb)
	require.NoError(t, err)
	coinsAcc := NewCoinsAccount("hbc", testdb)

	_, err = tokenAcc.GenesisInit(addr1, 500)
	require.NoError(t, err)

	//不同资产的账本互不可见
	assert.Equal(t, int64(500), tokenAcc.LoadAccount(addr1).Balance)
	assert.Equal(t, int64(0), coinsAcc.LoadAccount(addr1).Balance)
}
