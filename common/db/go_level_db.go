// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"path"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/hongbaochain/hongbao/common"
)

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoLevelDB(name, dir, cache)
	}
	registerDBCreator(LevelDBBackendStr, dbCreator, false)
	registerDBCreator(GoLevelDBBackendStr, dbCreator, false)
}

//GoLevelDB leveldb后端
type GoLevelDB struct {
	db *leveldb.DB
}

//NewGoLevelDB 打开数据库,损坏时尝试恢复
func NewGoLevelDB(name string, dir string, cache int) (*GoLevelDB, error) {
	dbPath := path.Join(dir, name+".db")
	if cache <= 0 {
		cache = 64
	}
	handles := cache
	if handles < 16 {
		handles = 16
	}
	db, err := leveldb.OpenFile(dbPath, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(dbPath, nil)
	}
	if err != nil {
		return nil, err
	}
	return &GoLevelDB{db: db}, nil
}

//Get 读取
func (db *GoLevelDB) Get(key []byte) ([]byte, error) {
	res, err := db.db.Get(key, nil)
	if err != nil {
		if err == lerrors.ErrNotFound {
			return nil, ErrNotFoundInDb
		}
		return nil, err
	}
	return res, nil
}

//Set 写入
func (db *GoLevelDB) Set(key []byte, value []byte) error {
	return db.db.Put(key, value, nil)
}

//SetSync 同步写入
func (db *GoLevelDB) SetSync(key []byte, value []byte) error {
	return db.db.Put(key, value, &opt.WriteOptions{Sync: true})
}

//Delete 删除
func (db *GoLevelDB) Delete(key []byte) error {
	return db.db.Delete(key, nil)
}

//DeleteSync 同步删除
func (db *GoLevelDB) DeleteSync(key []byte) error {
	return db.db.Delete(key, &opt.WriteOptions{Sync: true})
}

//Close 关闭
func (db *GoLevelDB) Close() {
	db.db.Close()
}

//Stats leveldb内部统计
func (db *GoLevelDB) Stats() map[string]string {
	keys := []string{
		"leveldb.stats",
		"leveldb.sstables",
		"leveldb.blockpool",
		"leveldb.cachedblock",
		"leveldb.openedtables",
		"leveldb.alivesnaps",
		"leveldb.aliveiters",
	}
	stats := make(map[string]string)
	for _, key := range keys {
		str, err := db.db.GetProperty(key)
		if err == nil {
			stats[key] = str
		}
	}
	return stats
}

//Iterator 前缀迭代
func (db *GoLevelDB) Iterator(prefix []byte, reverse bool) Iterator {
	iter := db.db.NewIterator(util.BytesPrefix(prefix), nil)
	return &goLevelDBIt{iter: iter, reverse: reverse}
}

//List 列出前缀下的值
func (db *GoLevelDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	return listValues(db, prefix, key, count, direction)
}

type goLevelDBIt struct {
	iter    iterator.Iterator
	reverse bool
	started bool
}

func (dbit *goLevelDBIt) Next() bool {
	if !dbit.started {
		dbit.started = true
		if dbit.reverse {
			return dbit.iter.Last()
		}
		return dbit.iter.First()
	}
	if dbit.reverse {
		return dbit.iter.Prev()
	}
	return dbit.iter.Next()
}

//leveldb迭代器复用内部缓冲,必须拷贝
func (dbit *goLevelDBIt) Key() []byte {
	return common.CopyBytes(dbit.iter.Key())
}

func (dbit *goLevelDBIt) Value() []byte {
	return common.CopyBytes(dbit.iter.Value())
}

func (dbit *goLevelDBIt) Close() {
	dbit.iter.Release()
}

//NewBatch 批量写
func (db *GoLevelDB) NewBatch(sync bool) Batch {
	return &goLevelDBBatch{
		db:    db,
		batch: new(leveldb.Batch),
		wop:   &opt.WriteOptions{Sync: sync},
	}
}

type goLevelDBBatch struct {
	db    *GoLevelDB
	batch *leveldb.Batch
	wop   *opt.WriteOptions
}

func (mBatch *goLevelDBBatch) Set(key, value []byte) {
	mBatch.batch.Put(key, value)
}

func (mBatch *goLevelDBBatch) Delete(key []byte) {
	mBatch.batch.Delete(key)
}

func (mBatch *goLevelDBBatch) Write() error {
	return mBatch.db.db.Write(mBatch.batch, mBatch.wop)
}

func (mBatch *goLevelDBBatch) Reset() {
	mBatch.batch.Reset()
}
