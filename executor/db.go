// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	dbm "github.com/hongbaochain/hongbao/common/db"
	"github.com/hongbaochain/hongbao/types"
)

// StateDB 状态库的内存事务层
// 每条指令在 Begin/Commit 之间执行,任何一步检查失败就 Rollback,
// 指令的全部写入要么一起提交要么全部消失,落盘由执行器在提交后统一批量完成
type StateDB struct {
	cache   map[string][]byte
	txcache map[string][]byte
	keys    []string
	intx    bool
	db      dbm.DB
}

// NewStateDB 在底层KV之上构造状态库
func NewStateDB(db dbm.DB) *StateDB {
	return &StateDB{
		cache: make(map[string][]byte),
		db:    db,
	}
}

// Begin 开启内存事务
func (s *StateDB) Begin() {
	s.intx = true
	s.txcache = nil
	s.keys = nil
}

// Rollback 丢弃事务内的全部写入
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 事务写入合并进缓存,返回本次提交的键值
func (s *StateDB) Commit() []*types.KeyValue {
	kvs := make([]*types.KeyValue, 0, len(s.keys))
	for _, key := range s.keys {
		value := s.txcache[key]
		s.cache[key] = value
		kvs = append(kvs, &types.KeyValue{Key: []byte(key), Value: value})
	}
	s.resetTx()
	return kvs
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = nil
	s.keys = nil
}

// Get 取值顺序:事务缓存、已提交缓存、底层KV
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if s.intx && s.txcache != nil {
		if value, ok := s.txcache[skey]; ok {
			if value == nil {
				return nil, types.ErrNotFound
			}
			return value, nil
		}
	}
	if value, ok := s.cache[skey]; ok {
		if value == nil {
			return nil, types.ErrNotFound
		}
		return value, nil
	}
	value, err := s.db.Get(key)
	if err != nil {
		return nil, types.ErrNotFound
	}
	return value, nil
}

// Set 事务内写入事务缓存,事务外直接写缓存
func (s *StateDB) Set(key []byte, value []byte) error {
	skey := string(key)
	if s.intx {
		if s.txcache == nil {
			s.txcache = make(map[string][]byte)
		}
		if _, ok := s.txcache[skey]; !ok {
			s.keys = append(s.keys, skey)
		}
		s.txcache[skey] = value
		return nil
	}
	s.cache[skey] = value
	return nil
}

// Flush 已提交缓存批量落盘并清空,nil 值表示删除
func (s *StateDB) Flush() error {
	batch := s.db.NewBatch(true)
	defer batch.Reset()
	for key, value := range s.cache {
		if value == nil {
			batch.Delete([]byte(key))
			continue
		}
		batch.Set([]byte(key), value)
	}
	if err := batch.Write(); err != nil {
		return err
	}
	s.cache = make(map[string][]byte)
	return nil
}
