// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 红包程序的宿主执行器
//
// 执行器承担周边账本平台的两条契约:
//  1. 互斥:所有执行与查询都排进同一个工作协程,指令引用的任何账户
//     在指令存续期内独占,不存在并发改写;
//  2. 原子:每条指令跑在状态库的内存事务里,第一个失败的检查回滚
//     全部写入,提交成功后才批量落盘。
package executor

import (
	"fmt"
	"reflect"
	"time"

	log "github.com/inconshreveable/log15"
	metrics "github.com/rcrowley/go-metrics"

	"github.com/hongbaochain/hongbao/account"
	"github.com/hongbaochain/hongbao/common/address"
	dbm "github.com/hongbaochain/hongbao/common/db"
	"github.com/hongbaochain/hongbao/types"
)

var elog = log.New("module", "execs.hongbao")

// Executor 宿主执行器
type Executor struct {
	cfg      *types.Config
	execName string
	execaddr string
	admin    string

	db           dbm.DB
	stateDB      *StateDB
	coinsAccount *account.DB
	deriver      address.Deriver

	height    int64
	blocktime int64

	reqCh chan func()
	done  chan struct{}
}

//lastHeader 高度与区块时间,每执行一笔推进一次
type lastHeader struct {
	Height    int64 `json:"height"`
	BlockTime int64 `json:"blockTime"`
}

// NewExecutor 构造执行器并启动工作协程,首次启动写入创世余额
func NewExecutor(cfg *types.Config, kvdb dbm.DB) (*Executor, error) {
	stateDB := NewStateDB(kvdb)
	e := &Executor{
		cfg:      cfg,
		execName: cfg.Exec.Name,
		execaddr: address.ExecAddress(cfg.Exec.Name),
		admin:    cfg.Exec.Admin,
		db:       kvdb,
		stateDB:  stateDB,
		deriver:  address.NewHashDeriver(address.ExecAddress(cfg.Exec.Name)),
		reqCh:    make(chan func()),
		done:     make(chan struct{}),
	}
	e.coinsAccount = account.NewCoinsAccount(cfg.CoinSymbol, stateDB)
	if err := e.loadLastHeader(); err != nil {
		return nil, err
	}
	if err := e.genesisInit(); err != nil {
		return nil, err
	}
	go e.run()
	return e, nil
}

func (e *Executor) run() {
	for req := range e.reqCh {
		req()
	}
	close(e.done)
}

// Close 停止工作协程
func (e *Executor) Close() {
	close(e.reqCh)
	<-e.done
	e.db.Close()
}

//serial 所有状态访问都经由这里排队,单协程串行执行
func (e *Executor) serial(work func()) {
	finish := make(chan struct{})
	e.reqCh <- func() {
		work()
		close(finish)
	}
	<-finish
}

// GetCoinsAccount 原生币账本
func (e *Executor) GetCoinsAccount() *account.DB {
	return e.coinsAccount
}

// GetHeight 当前高度
func (e *Executor) GetHeight() int64 {
	return e.height
}

// GetBlockTime 当前区块时间
func (e *Executor) GetBlockTime() int64 {
	return e.blocktime
}

// GetName 执行器名称
func (e *Executor) GetName() string {
	return e.execName
}

// GetExecAddr 程序地址
func (e *Executor) GetExecAddr() string {
	return e.execaddr
}

// GetDeriver 地址派生后端
func (e *Executor) GetDeriver() address.Deriver {
	return e.deriver
}

func (e *Executor) loadLastHeader() error {
	value, err := e.db.Get(calcLastHeaderKey(e.execName))
	if err != nil {
		e.height = 0
		e.blocktime = time.Now().Unix()
		return nil
	}
	var h lastHeader
	if err := types.Decode(value, &h); err != nil {
		return err
	}
	e.height = h.Height
	e.blocktime = h.BlockTime
	return nil
}

//genesisInit 首次启动时按配置写入创世余额,并登记配置里出现的代币
func (e *Executor) genesisInit() error {
	if _, err := e.db.Get(calcGenesisDoneKey(e.execName)); err == nil {
		return nil
	}
	for _, alloc := range e.cfg.Exec.Genesis {
		if alloc.Asset == "" {
			if _, err := e.coinsAccount.GenesisInit(alloc.Addr, alloc.Amount); err != nil {
				return err
			}
			continue
		}
		mintAddr := types.MintAddress(alloc.Asset)
		if _, err := loadAccountData(e.stateDB, e.execName, mintAddr); err != nil {
			saveAccountData(e.stateDB, e.execName, mintAddr, &types.AccountData{
				Owner: types.TokenX,
				Asset: alloc.Asset,
			})
		}
		tokenAccount, err := account.NewAccountDB(types.TokenX, alloc.Asset, e.stateDB)
		if err != nil {
			return err
		}
		if _, err := tokenAccount.GenesisInit(alloc.Addr, alloc.Amount); err != nil {
			return err
		}
	}
	e.stateDB.Set(calcGenesisDoneKey(e.execName), []byte("done"))
	if err := e.stateDB.Flush(); err != nil {
		return err
	}
	elog.Info("genesis init done", "allocs", len(e.cfg.Exec.Genesis))
	return nil
}

// Exec 执行一笔交易,返回回执;检查失败时状态不发生任何变化
func (e *Executor) Exec(tx *types.Transaction) (receipt *types.Receipt, err error) {
	e.serial(func() {
		receipt, err = e.execTx(tx)
	})
	return receipt, err
}

func (e *Executor) execTx(tx *types.Transaction) (*types.Receipt, error) {
	now := time.Now().Unix()
	if now > e.blocktime {
		e.blocktime = now
	}
	if err := e.checkTx(tx); err != nil {
		return errReceipt(err), err
	}
	ins, err := types.DecodeInstruction(tx.Payload)
	if err != nil {
		return errReceipt(err), err
	}
	actionName := types.ActionName(ins.OpCode())

	e.stateDB.Begin()
	receipt, err := e.dispatch(tx, ins)
	if err != nil {
		e.stateDB.Rollback()
		metrics.GetOrRegisterCounter(fmt.Sprintf("exec.%s.err", actionName), nil).Inc(1)
		elog.Info("exec failed", "action", actionName, "from", tx.From(), "err", err)
		return errReceipt(err), err
	}
	e.stateDB.Commit()
	e.height++
	e.stateDB.Set(calcLastHeaderKey(e.execName), types.Encode(&lastHeader{
		Height:    e.height,
		BlockTime: e.blocktime,
	}))
	if err := e.stateDB.Flush(); err != nil {
		return nil, err
	}
	e.execLocal(tx, receipt)
	metrics.GetOrRegisterCounter(fmt.Sprintf("exec.%s.ok", actionName), nil).Inc(1)
	metrics.GetOrRegisterTimer("exec.tx", nil).UpdateSince(time.Unix(now, 0))
	return receipt, nil
}

//checkTx 信封校验:执行器名、过期、签名,签名人标记只认封皮签名核实过的地址
func (e *Executor) checkTx(tx *types.Transaction) error {
	if tx.Execer != e.execName {
		return types.ErrExecNameNotAllow
	}
	if tx.IsExpire(e.blocktime) {
		return types.ErrTxExpire
	}
	if !tx.CheckSign() {
		return types.ErrSign
	}
	from := tx.From()
	for _, meta := range tx.Accounts {
		if meta.Signer && meta.Addr != from {
			return types.ErrSign
		}
	}
	return nil
}

func (e *Executor) dispatch(tx *types.Transaction, ins types.Instruction) (*types.Receipt, error) {
	action := NewAction(e, tx)
	switch v := ins.(type) {
	case *types.CreateInstruction:
		return action.Create(v, tx.Accounts)
	case *types.ClaimInstruction:
		return action.Claim(v, tx.Accounts)
	case *types.CloseInstruction:
		return action.Close(v, tx.Accounts)
	case *types.InitTreasuryInstruction:
		return action.InitTreasury(v, tx.Accounts)
	case *types.WithdrawFeesInstruction:
		return action.WithdrawFees(v, tx.Accounts)
	default:
		return nil, types.ErrInvalidInstruction
	}
}

//errReceipt 失败回执,只带错误日志,不带任何状态写入
func errReceipt(err error) *types.Receipt {
	return &types.Receipt{
		Ty: types.ExecErr,
		Logs: []*types.ReceiptLog{{
			Ty:  types.TyLogErr,
			Log: types.Encode(map[string]interface{}{"code": types.CodeOf(err), "error": err.Error()}),
		}},
	}
}

//execLocal 成功回执映射为本地查询索引,索引键不参与共识状态
func (e *Executor) execLocal(tx *types.Transaction, receipt *types.Receipt) {
	batch := e.db.NewBatch(true)
	defer batch.Reset()
	for _, rlog := range receipt.Logs {
		switch rlog.Ty {
		case types.TyLogHongbaoCreate:
			var r types.ReceiptHongbaoCreate
			if types.Decode(rlog.Log, &r) == nil {
				batch.Set(calcPacketIndexKey(e.execName, r.Creator, r.ID), []byte(r.RedPacket))
			}
		case types.TyLogHongbaoClose:
			var r types.ReceiptHongbaoClose
			if types.Decode(rlog.Log, &r) == nil {
				batch.Delete(calcPacketIndexKey(e.execName, r.Creator, r.ID))
			}
		}
	}
	detail := &types.TransactionDetail{
		Tx:        tx,
		Receipt:   receipt,
		Height:    e.height,
		Blocktime: e.blocktime,
		FromAddr:  tx.From(),
	}
	batch.Set(calcTxDetailKey(e.execName, tx.Hash()), types.Encode(detail))
	if err := batch.Write(); err != nil {
		elog.Error("execLocal batch write", "err", err)
	}
}

// Query 查询入口,按函数名反射路由到 Query_ 前缀的方法
func (e *Executor) Query(funcName string, param []byte) (reply interface{}, err error) {
	e.serial(func() {
		reply, err = e.query(funcName, param)
	})
	return reply, err
}

func (e *Executor) query(funcName string, param []byte) (interface{}, error) {
	method := reflect.ValueOf(e).MethodByName("Query_" + funcName)
	if !method.IsValid() || method.Type().NumIn() != 1 {
		return nil, types.ErrNotFound
	}
	paramType := method.Type().In(0)
	if paramType.Kind() != reflect.Ptr {
		return nil, types.ErrInvalidParam
	}
	value := reflect.New(paramType.Elem())
	if err := types.Decode(param, value.Interface()); err != nil {
		return nil, types.ErrInvalidParam
	}
	out := method.Call([]reflect.Value{value})
	if len(out) != 2 {
		return nil, types.ErrNotFound
	}
	if !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}
