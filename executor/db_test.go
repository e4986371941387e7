// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "github.com/hongbaochain/hongbao/common/db"
	"github.com/hongbaochain/hongbao/types"
)

func newTestStateDB(t *testing.T) (*StateDB, dbm.DB) {
	kvdb, err := dbm.NewGoMemDB("state", "", 0)
	require.NoError(t, err)
	return NewStateDB(kvdb), kvdb
}

func TestStateDBRollback(t *testing.T) {
	s, _ := newTestStateDB(t)
	s.Begin()
	require.NoError(t, s.Set([]byte("a"), []byte("1")))
	value, err := s.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)

	s.Rollback()
	_, err = s.Get([]byte("a"))
	assert.Equal(t, types.ErrNotFound, err)
}

func TestStateDBCommit(t *testing.T) {
	s, _ := newTestStateDB(t)
	s.Begin()
	require.NoError(t, s.Set([]byte("a"), []byte("1")))
	require.NoError(t, s.Set([]byte("b"), []byte("2")))
	require.NoError(t, s.Set([]byte("a"), []byte("3")))
	kvs := s.Commit()

	//同键重复写只提交末值,键序保持首次写入顺序
	require.Len(t, kvs, 2)
	assert.Equal(t, []byte("a"), kvs[0].Key)
	assert.Equal(t, []byte("3"), kvs[0].Value)
	assert.Equal(t, []byte("b"), kvs[1].Key)

	value, err := s.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), value)
}

func TestStateDBFlush(t *testing.T) {
	s, kvdb := newTestStateDB(t)
	s.Begin()
	require.NoError(t, s.Set([]byte("a"), []byte("1")))
	s.Commit()
	require.NoError(t, s.Flush())

	value, err := kvdb.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)

	//落盘后的读取穿透到底层KV
	value, err = s.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), value)

	//nil 值提交并落盘等价于删除
	s.Begin()
	require.NoError(t, s.Set([]byte("a"), nil))
	_, err = s.Get([]byte("a"))
	assert.Equal(t, types.ErrNotFound, err)
	s.Commit()
	require.NoError(t, s.Flush())
	_, err = s.Get([]byte("a"))
	assert.Equal(t, types.ErrNotFound, err)
}

func TestStateDBGetLayering(t *testing.T) {
	s, kvdb := newTestStateDB(t)
	require.NoError(t, kvdb.Set([]byte("k"), []byte("disk")))

	value, err := s.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("disk"), value)

	s.Begin()
	require.NoError(t, s.Set([]byte("k"), []byte("tx")))
	value, err = s.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("tx"), value)
	s.Commit()

	value, err = s.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("tx"), value)

	//缓存未落盘,底层仍是旧值
	value, err = kvdb.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("disk"), value)
}
