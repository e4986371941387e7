// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"bytes"
	"sort"
	"sync"

	"github.com/hongbaochain/hongbao/common"
)

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoMemDB(name, dir, cache)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

//GoMemDB 内存后端,测试用
type GoMemDB struct {
	mtx sync.RWMutex
	db  map[string][]byte
}

//NewGoMemDB 创建内存数据库
func NewGoMemDB(name string, dir string, cache int) (*GoMemDB, error) {
	return &GoMemDB{db: make(map[string][]byte)}, nil
}

//Get 读取
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	value, ok := db.db[string(key)]
	if !ok {
		return nil, ErrNotFoundInDb
	}
	return common.CopyBytes(value), nil
}

//Set 写入
func (db *GoMemDB) Set(key []byte, value []byte) error {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	db.db[string(key)] = common.CopyBytes(value)
	return nil
}

//SetSync 同步写入
func (db *GoMemDB) SetSync(key []byte, value []byte) error {
	return db.Set(key, value)
}

//Delete 删除
func (db *GoMemDB) Delete(key []byte) error {
	db.mtx.Lock()
	defer db.mtx.Unlock()
	delete(db.db, string(key))
	return nil
}

//DeleteSync 同步删除
func (db *GoMemDB) DeleteSync(key []byte) error {
	return db.Delete(key)
}

//Close 关闭
func (db *GoMemDB) Close() {
}

//Stats 统计
func (db *GoMemDB) Stats() map[string]string {
	db.mtx.RLock()
	defer db.mtx.RUnlock()
	stats := make(map[string]string)
	stats["database.type"] = "memdb"
	return stats
}

//Iterator 迭代时对键做一次快照,期间的写入不可见
func (db *GoMemDB) Iterator(prefix []byte, reverse bool) Iterator {
	db.mtx.RLock()
	keys := make([]string, 0, len(db.db))
	for k := range db.db {
		if bytes.HasPrefix([]byte(k), prefix) {
			keys = append(keys, k)
		}
	}
	db.mtx.RUnlock()
	sort.Strings(keys)
	if reverse {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}
	return &goMemDBIt{db: db, keys: keys, index: -1}
}

//List 列出前缀下的值
func (db *GoMemDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	return listValues(db, prefix, key, count, direction)
}

type goMemDBIt struct {
	db    *GoMemDB
	keys  []string
	index int
}

func (dbit *goMemDBIt) Next() bool {
	if dbit.index+1 >= len(dbit.keys) {
		return false
	}
	dbit.index++
	return true
}

func (dbit *goMemDBIt) Key() []byte {
	return []byte(dbit.keys[dbit.index])
}

func (dbit *goMemDBIt) Value() []byte {
	value, err := dbit.db.Get([]byte(dbit.keys[dbit.index]))
	if err != nil {
		return nil
	}
	return value
}

func (dbit *goMemDBIt) Close() {
}

//NewBatch 批量写
func (db *GoMemDB) NewBatch(sync bool) Batch {
	return &goMemDBBatch{db: db}
}

type memDBWrite struct {
	key    []byte
	value  []byte
	delete bool
}

type goMemDBBatch struct {
	db     *GoMemDB
	writes []memDBWrite
}

func (mBatch *goMemDBBatch) Set(key, value []byte) {
	mBatch.writes = append(mBatch.writes, memDBWrite{
		key:   common.CopyBytes(key),
		value: common.CopyBytes(value),
	})
}

func (mBatch *goMemDBBatch) Delete(key []byte) {
	mBatch.writes = append(mBatch.writes, memDBWrite{
		key:    common.CopyBytes(key),
		delete: true,
	})
}

func (mBatch *goMemDBBatch) Write() error {
	mBatch.db.mtx.Lock()
	defer mBatch.db.mtx.Unlock()
	for _, w := range mBatch.writes {
		if w.delete {
			delete(mBatch.db.db, string(w.key))
			continue
		}
		mBatch.db.db[string(w.key)] = w.value
	}
	mBatch.writes = nil
	return nil
}

func (mBatch *goMemDBBatch) Reset() {
	mBatch.writes = nil
}
