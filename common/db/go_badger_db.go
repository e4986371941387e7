// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"path"

	"github.com/dgraph-io/badger"
)

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewGoBadgerDB(name, dir, cache)
	}
	registerDBCreator(GoBadgerDBBackendStr, dbCreator, false)
}

//GoBadgerDB badger后端
type GoBadgerDB struct {
	db *badger.DB
}

//NewGoBadgerDB 打开数据库
func NewGoBadgerDB(name string, dir string, cache int) (*GoBadgerDB, error) {
	opts := badger.DefaultOptions(path.Join(dir, name+".db"))
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &GoBadgerDB{db: db}, nil
}

//Get 读取
func (db *GoBadgerDB) Get(key []byte) ([]byte, error) {
	var value []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, ErrNotFoundInDb
		}
		return nil, err
	}
	return value, nil
}

//Set 写入
func (db *GoBadgerDB) Set(key []byte, value []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

//SetSync 同步写入
func (db *GoBadgerDB) SetSync(key []byte, value []byte) error {
	return db.Set(key, value)
}

//Delete 删除
func (db *GoBadgerDB) Delete(key []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

//DeleteSync 同步删除
func (db *GoBadgerDB) DeleteSync(key []byte) error {
	return db.Delete(key)
}

//Close 关闭
func (db *GoBadgerDB) Close() {
	db.db.Close()
}

//Stats 统计
func (db *GoBadgerDB) Stats() map[string]string {
	stats := make(map[string]string)
	stats["database.type"] = "gobadgerdb"
	return stats
}

//Iterator 前缀迭代,持有读事务,Close 时释放
func (db *GoBadgerDB) Iterator(prefix []byte, reverse bool) Iterator {
	txn := db.db.NewTransaction(false)
	opts := badger.DefaultIteratorOptions
	opts.Reverse = reverse
	it := txn.NewIterator(opts)
	return &goBadgerDBIt{txn: txn, it: it, prefix: prefix, reverse: reverse}
}

//List 列出前缀下的值
func (db *GoBadgerDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	return listValues(db, prefix, key, count, direction)
}

type goBadgerDBIt struct {
	txn     *badger.Txn
	it      *badger.Iterator
	prefix  []byte
	reverse bool
	started bool
}

func (dbit *goBadgerDBIt) Next() bool {
	if !dbit.started {
		dbit.started = true
		if dbit.reverse {
			//反向迭代先定位到前缀区间末尾
			seek := append(append([]byte{}, dbit.prefix...), 0xff)
			dbit.it.Seek(seek)
		} else {
			dbit.it.Seek(dbit.prefix)
		}
	} else {
		dbit.it.Next()
	}
	return dbit.it.ValidForPrefix(dbit.prefix)
}

func (dbit *goBadgerDBIt) Key() []byte {
	return dbit.it.Item().KeyCopy(nil)
}

func (dbit *goBadgerDBIt) Value() []byte {
	value, err := dbit.it.Item().ValueCopy(nil)
	if err != nil {
		return nil
	}
	return value
}

func (dbit *goBadgerDBIt) Close() {
	dbit.it.Close()
	dbit.txn.Discard()
}

//NewBatch 批量写
func (db *GoBadgerDB) NewBatch(sync bool) Batch {
	return &goBadgerDBBatch{db: db}
}

type goBadgerDBBatch struct {
	db     *GoBadgerDB
	writes []memDBWrite
}

func (mBatch *goBadgerDBBatch) Set(key, value []byte) {
	mBatch.writes = append(mBatch.writes, memDBWrite{key: key, value: value})
}

func (mBatch *goBadgerDBBatch) Delete(key []byte) {
	mBatch.writes = append(mBatch.writes, memDBWrite{key: key, delete: true})
}

func (mBatch *goBadgerDBBatch) Write() error {
	return mBatch.db.db.Update(func(txn *badger.Txn) error {
		for _, w := range mBatch.writes {
			if w.delete {
				if err := txn.Delete(w.key); err != nil {
					return err
				}
				continue
			}
			if err := txn.Set(w.key, w.value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (mBatch *goBadgerDBBatch) Reset() {
	mBatch.writes = nil
}
