// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db KV数据库统一接口与后端注册
package db

import (
	"bytes"
	"errors"
	"fmt"
)

//ErrNotFoundInDb 键不存在
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

//List 方向
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

//KV 基本读写
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
}

//Batch 批量写,Write 时一次性落盘
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	Reset()
}

//Iterator 迭代器,使用完必须 Close
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Close()
}

//DB 数据库后端
type DB interface {
	KV
	SetSync(key, value []byte) error
	Delete(key []byte) error
	DeleteSync(key []byte) error
	Close()
	NewBatch(sync bool) Batch
	//Iterator 按前缀迭代,reverse 为 true 时从大到小
	Iterator(prefix []byte, reverse bool) Iterator
	//List 列出前缀下的值,key 为翻页起点(不含),count 为 0 表示全部
	List(prefix, key []byte, count, direction int32) ([][]byte, error)
	Stats() map[string]string
}

//支持的后端
const (
	LevelDBBackendStr    = "leveldb"
	GoLevelDBBackendStr  = "goleveldb"
	MemDBBackendStr      = "memdb"
	GoBadgerDBBackendStr = "gobadgerdb"
	PegasusBackendStr    = "pegasus"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

//NewDB 创建数据库,失败直接panic
func NewDB(name string, backend string, dir string, cache int) DB {
	dbCreator, ok := backends[backend]
	if !ok {
		panic(fmt.Sprintf("initializing DB: unknown backend %q", backend))
	}
	db, err := dbCreator(name, dir, cache)
	if err != nil {
		panic(fmt.Sprintf("initializing DB: %v", err))
	}
	return db
}

//listValues 各后端共用的List实现,key 为翻页起点,方向内与起点严格相邻
func listValues(db DB, prefix, key []byte, count, direction int32) ([][]byte, error) {
	it := db.Iterator(prefix, direction == ListDESC)
	defer it.Close()
	var values [][]byte
	skipping := len(key) > 0
	for it.Next() {
		if skipping {
			cmp := bytes.Compare(it.Key(), key)
			if direction == ListDESC && cmp >= 0 {
				continue
			}
			if direction == ListASC && cmp <= 0 {
				continue
			}
			skipping = false
		}
		values = append(values, it.Value())
		if count > 0 && int32(len(values)) >= count {
			break
		}
	}
	if len(values) == 0 {
		return nil, ErrNotFoundInDb
	}
	return values, nil
}
