// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	farm "github.com/dgryski/go-farm"
	lru "github.com/hashicorp/golang-lru"

	"github.com/hongbaochain/hongbao/account"
	"github.com/hongbaochain/hongbao/common"
	"github.com/hongbaochain/hongbao/common/address"
	dbm "github.com/hongbaochain/hongbao/common/db"
	"github.com/hongbaochain/hongbao/types"
)

//解码缓存:同一条记录在被改写之前反复查询时不重复解码,
//键为记录原始字节的散列,记录一旦变化散列随之变化
var decodeCache *lru.Cache

func init() {
	decodeCache, _ = lru.New(1024)
}

func decodeRedPacketCached(data []byte) (*types.RedPacket, error) {
	key := farm.Hash64(data)
	if value, ok := decodeCache.Get(key); ok {
		return value.(*types.RedPacket), nil
	}
	rp, err := types.DecodeRedPacket(data)
	if err != nil {
		return nil, err
	}
	decodeCache.Add(key, rp)
	return rp, nil
}

//packetAddr 查询侧只凭创建者和编号重建记录地址
func (e *Executor) packetAddr(creator string, id uint64) (string, error) {
	creatorID, err := address.ToIdentity(creator)
	if err != nil {
		return "", types.ErrInvalidParam
	}
	addr, _, err := e.deriver.FindBump([]byte(types.SeedRedPacket), creatorID, idBytes(id))
	if err != nil {
		return "", types.ErrInvalidPDA
	}
	return addr, nil
}

func (e *Executor) loadPacket(addr string) (*types.RedPacket, error) {
	acct, err := loadAccountData(e.stateDB, e.execName, addr)
	if err != nil {
		return nil, types.ErrNotFound
	}
	if acct.Owner != e.execName {
		return nil, types.ErrInvalidAccountOwner
	}
	return decodeRedPacketCached(acct.Data)
}

func (e *Executor) packetReply(addr string, rp *types.RedPacket) *types.ReplyRedPacket {
	creator, _ := address.FromIdentity(rp.Creator)
	vaultAddr, _ := e.deriver.Derive([]byte(types.SeedVault), rp.Creator, idBytes(rp.ID), rp.VaultBump)
	reply := &types.ReplyRedPacket{
		Addr:          addr,
		Vault:         vaultAddr,
		Creator:       creator,
		ID:            rp.ID,
		TokenType:     rp.TokenType,
		TotalAmount:   rp.TotalAmount,
		Remaining:     rp.Remaining,
		NumRecipients: rp.NumRecipients,
		NumClaimed:    rp.NumClaimed,
		SplitMode:     rp.SplitMode,
		ExpiresAt:     rp.ExpiresAt,
		Status:        rp.Status(e.blocktime),
		Amounts:       rp.Amounts,
	}
	if rp.TokenType == types.AssetFungible {
		if vaultAcct, err := loadAccountData(e.stateDB, e.execName, vaultAddr); err == nil {
			reply.Asset = vaultAcct.Asset
		}
	}
	for i := 0; i < int(rp.NumClaimed); i++ {
		claimer, err := address.FromIdentity(rp.Claimers[i])
		if err != nil {
			continue
		}
		reply.Claimers = append(reply.Claimers, claimer)
	}
	return reply
}

// Query_GetPacket 红包记录的解码视图
func (e *Executor) Query_GetPacket(req *types.ReqRedPacket) (interface{}, error) {
	addr, err := e.packetAddr(req.Creator, req.ID)
	if err != nil {
		return nil, err
	}
	rp, err := e.loadPacket(addr)
	if err != nil {
		return nil, err
	}
	return e.packetReply(addr, rp), nil
}

// Query_GetStatus 红包状态摘要,领完优先于过期
func (e *Executor) Query_GetStatus(req *types.ReqRedPacket) (interface{}, error) {
	addr, err := e.packetAddr(req.Creator, req.ID)
	if err != nil {
		return nil, err
	}
	rp, err := e.loadPacket(addr)
	if err != nil {
		return nil, err
	}
	return &types.ReplyStatus{
		Status:        rp.Status(e.blocktime),
		NumClaimed:    rp.NumClaimed,
		NumRecipients: rp.NumRecipients,
		Remaining:     rp.Remaining,
		ExpiresAt:     rp.ExpiresAt,
	}, nil
}

// Query_GetTreasury 金库记录与余额
func (e *Executor) Query_GetTreasury(req *types.ReqTreasury) (interface{}, error) {
	if err := types.CheckTokenType(req.TokenType); err != nil {
		return nil, err
	}
	assetID := types.NativeAssetID
	if req.TokenType == types.AssetFungible {
		if req.Asset == "" {
			return nil, types.ErrInvalidParam
		}
		assetID = types.AssetID(req.Asset)
	}
	addr, _, err := e.deriver.FindBump([]byte(types.SeedTreasury), assetID, nil)
	if err != nil {
		return nil, types.ErrInvalidPDA
	}
	treasury, err := readTreasury(e.stateDB, e.execName, addr)
	if err != nil {
		return nil, err
	}
	reply := &types.ReplyTreasury{
		Addr:          addr,
		TokenType:     req.TokenType,
		AcceptedAsset: req.Asset,
		FeesCollected: treasury.FeesCollected,
	}
	if req.TokenType == types.AssetNative {
		reply.Balance = uint64(e.coinsAccount.LoadAccount(addr).Balance)
	} else {
		vaultAddr, err := e.deriver.Derive([]byte(types.SeedTreasuryVault), assetID, nil, treasury.VaultBump)
		if err != nil {
			return nil, types.ErrInvalidPDA
		}
		tokenAccount, err := account.NewAccountDB(types.TokenX, req.Asset, e.stateDB)
		if err != nil {
			return nil, err
		}
		reply.Vault = vaultAddr
		balance := uint64(tokenAccount.LoadAccount(vaultAddr).Balance)
		reply.Balance = balance
		//代币金库的余额就是手续费总额
		reply.FeesCollected = balance
	}
	return reply, nil
}

// Query_ListPackets 按创建者列出未关闭的红包
func (e *Executor) Query_ListPackets(req *types.ReqList) (interface{}, error) {
	values, err := e.db.List(calcPacketIndexPrefix(e.execName, req.Creator), nil, req.Count, dbm.ListASC)
	reply := &types.ReplyRedPacketList{}
	if err != nil {
		return reply, nil
	}
	for _, value := range values {
		addr := string(value)
		rp, err := e.loadPacket(addr)
		if err != nil {
			continue
		}
		reply.Packets = append(reply.Packets, e.packetReply(addr, rp))
	}
	return reply, nil
}

// Query_GetBalance 余额查询,Asset 留空查原生币
func (e *Executor) Query_GetBalance(req *types.ReqBalance) (interface{}, error) {
	if req.Asset == "" {
		return e.coinsAccount.LoadAccount(req.Addr), nil
	}
	tokenAccount, err := account.NewAccountDB(types.TokenX, req.Asset, e.stateDB)
	if err != nil {
		return nil, err
	}
	return tokenAccount.LoadAccount(req.Addr), nil
}

// Query_GetTx 按哈希取交易与回执
func (e *Executor) Query_GetTx(req *types.ReplyHash) (interface{}, error) {
	hash, err := common.FromHex(req.Hash)
	if err != nil {
		return nil, types.ErrInvalidParam
	}
	value, err := e.db.Get(calcTxDetailKey(e.execName, hash))
	if err != nil {
		return nil, types.ErrNotFound
	}
	var detail types.TransactionDetail
	if err := types.Decode(value, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// LastHeader 当前高度与区块时间
func (e *Executor) LastHeader() (height int64, blocktime int64) {
	e.serial(func() {
		height, blocktime = e.height, e.blocktime
	})
	return height, blocktime
}
