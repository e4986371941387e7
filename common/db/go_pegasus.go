// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"context"
	"strings"

	"github.com/XiaoMi/pegasus-go-client/pegasus"
	log "github.com/inconshreveable/log15"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var slog = log.New("module", "db.pegasus")

//所有KV挂在同一个hashkey下,sortkey即键本身
var hashKey = []byte("hongbao")

const scanPageSize = 1000

func init() {
	dbCreator := func(name string, dir string, cache int) (DB, error) {
		return NewPegasusDB(name, dir, cache)
	}
	registerDBCreator(PegasusBackendStr, dbCreator, false)
}

//PegasusDB pegasus远端KV后端,dir 为逗号分隔的meta server列表
type PegasusDB struct {
	name   string
	client pegasus.Client
	table  pegasus.TableConnector
}

//NewPegasusDB 连接pegasus集群并打开表
func NewPegasusDB(name string, dir string, cache int) (*PegasusDB, error) {
	cfg := pegasus.Config{MetaServers: strings.Split(dir, ",")}
	database := &PegasusDB{name: name}
	database.client = pegasus.NewClient(cfg)
	table, err := database.client.OpenTable(context.Background(), name)
	if err != nil {
		slog.Error("connect to pegasus", "meta", cfg.MetaServers, "err", err)
		database.client.Close()
		return nil, err
	}
	database.table = table
	return database, nil
}

//Get 读取
func (db *PegasusDB) Get(key []byte) ([]byte, error) {
	value, err := db.table.Get(context.Background(), hashKey, key)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, ErrNotFoundInDb
	}
	return value, nil
}

//Set 写入
func (db *PegasusDB) Set(key []byte, value []byte) error {
	err := db.table.Set(context.Background(), hashKey, key, value)
	if err != nil {
		slog.Error("Set", "err", err)
	}
	return err
}

//SetSync 同步写入
func (db *PegasusDB) SetSync(key []byte, value []byte) error {
	return db.Set(key, value)
}

//Delete 删除
func (db *PegasusDB) Delete(key []byte) error {
	err := db.table.Del(context.Background(), hashKey, key)
	if err != nil {
		slog.Error("Delete", "err", err)
	}
	return err
}

//DeleteSync 同步删除
func (db *PegasusDB) DeleteSync(key []byte) error {
	return db.Delete(key)
}

//Close 关闭
func (db *PegasusDB) Close() {
	db.table.Close()
	db.client.Close()
}

//Stats 统计
func (db *PegasusDB) Stats() map[string]string {
	stats := make(map[string]string)
	stats["database.type"] = "pegasus"
	return stats
}

//Iterator 分页拉取前缀区间到内存后迭代
func (db *PegasusDB) Iterator(prefix []byte, reverse bool) Iterator {
	bound := util.BytesPrefix(prefix)
	var all []*pegasus.KeyValue
	start := bound.Start
	opts := pegasus.MultiGetOptions{StartInclusive: true, StopInclusive: false, MaxFetchCount: scanPageSize}
	for {
		vals, allFetched, err := db.table.MultiGetRangeOpt(context.Background(), hashKey, start, bound.Limit, &opts)
		if err != nil {
			slog.Error("Iterator", "err", err)
			break
		}
		all = append(all, vals...)
		if allFetched || len(vals) == 0 {
			break
		}
		start = vals[len(vals)-1].SortKey
		opts.StartInclusive = false
	}
	if reverse {
		for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
			all[i], all[j] = all[j], all[i]
		}
	}
	return &pegasusIt{vals: all, index: -1}
}

//List 列出前缀下的值
func (db *PegasusDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	return listValues(db, prefix, key, count, direction)
}

type pegasusIt struct {
	vals  []*pegasus.KeyValue
	index int
}

func (dbit *pegasusIt) Next() bool {
	if dbit.index+1 >= len(dbit.vals) {
		return false
	}
	dbit.index++
	return true
}

func (dbit *pegasusIt) Key() []byte {
	return dbit.vals[dbit.index].SortKey
}

func (dbit *pegasusIt) Value() []byte {
	return dbit.vals[dbit.index].Value
}

func (dbit *pegasusIt) Close() {
	dbit.index = -1
}

//NewBatch 批量写,Write 时按MultiSet/MultiDel成组提交
func (db *PegasusDB) NewBatch(sync bool) Batch {
	return &pegasusBatch{db: db}
}

type pegasusBatch struct {
	db     *PegasusDB
	writes []memDBWrite
}

func (mBatch *pegasusBatch) Set(key, value []byte) {
	mBatch.writes = append(mBatch.writes, memDBWrite{key: key, value: value})
}

func (mBatch *pegasusBatch) Delete(key []byte) {
	mBatch.writes = append(mBatch.writes, memDBWrite{key: key, delete: true})
}

func (mBatch *pegasusBatch) Write() error {
	var setKeys, setValues, delKeys [][]byte
	for _, w := range mBatch.writes {
		if w.delete {
			delKeys = append(delKeys, w.key)
			continue
		}
		setKeys = append(setKeys, w.key)
		setValues = append(setValues, w.value)
	}
	if len(setKeys) > 0 {
		if err := mBatch.db.table.MultiSet(context.Background(), hashKey, setKeys, setValues); err != nil {
			return err
		}
	}
	if len(delKeys) > 0 {
		if err := mBatch.db.table.MultiDel(context.Background(), hashKey, delKeys); err != nil {
			return err
		}
	}
	mBatch.writes = nil
	return nil
}

func (mBatch *pegasusBatch) Reset() {
	mBatch.writes = nil
}
