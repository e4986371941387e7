// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/hongbaochain/hongbao/common"
	"github.com/hongbaochain/hongbao/executor"
	"github.com/hongbaochain/hongbao/types"
)

// Hongbao json-rpc服务对象,方法名即对外的 Hongbao.<Method>
type Hongbao struct {
	e *executor.Executor
}

// SendTransaction 提交已签名交易,返回交易哈希;执行失败时返回错误码对应的错误
func (h *Hongbao) SendTransaction(in types.RawParm, result *interface{}) error {
	data, err := common.FromHex(in.Data)
	if err != nil {
		return types.ErrInvalidParam
	}
	tx, err := types.DecodeTx(data)
	if err != nil {
		return err
	}
	if _, err := h.e.Exec(tx); err != nil {
		return err
	}
	*result = common.ToHex(tx.Hash())
	return nil
}

// GetPacket 红包记录查询
func (h *Hongbao) GetPacket(in types.ReqRedPacket, result *interface{}) error {
	reply, err := h.e.Query("GetPacket", types.Encode(&in))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetStatus 红包状态查询
func (h *Hongbao) GetStatus(in types.ReqRedPacket, result *interface{}) error {
	reply, err := h.e.Query("GetStatus", types.Encode(&in))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetTreasury 金库查询
func (h *Hongbao) GetTreasury(in types.ReqTreasury, result *interface{}) error {
	reply, err := h.e.Query("GetTreasury", types.Encode(&in))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// ListPackets 按创建者列出红包
func (h *Hongbao) ListPackets(in types.ReqList, result *interface{}) error {
	reply, err := h.e.Query("ListPackets", types.Encode(&in))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetBalance 余额查询
func (h *Hongbao) GetBalance(in types.ReqBalance, result *interface{}) error {
	reply, err := h.e.Query("GetBalance", types.Encode(&in))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetTx 按哈希查询交易与回执
func (h *Hongbao) GetTx(in types.ReplyHash, result *interface{}) error {
	reply, err := h.e.Query("GetTx", types.Encode(&in))
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetLastHeader 当前高度与区块时间
func (h *Hongbao) GetLastHeader(in types.ReqNil, result *interface{}) error {
	height, blocktime := h.e.LastHeader()
	*result = &types.Header{Height: height, BlockTime: blocktime}
	return nil
}
