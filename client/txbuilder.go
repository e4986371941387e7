// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package client

import (
	"encoding/binary"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"

	"github.com/hongbaochain/hongbao/common/address"
	"github.com/hongbaochain/hongbao/common/crypto"
	"github.com/hongbaochain/hongbao/types"
)

// TxBuilder 未签名交易组装器
// 组装出的交易由最终用户的钱包签名后提交,这里永远不接触任何私钥
type TxBuilder struct {
	execName string
	deriver  address.Deriver
}

// NewTxBuilder 按执行器名构造,地址派生与链上使用同一套算法
func NewTxBuilder(execName string) *TxBuilder {
	return &TxBuilder{
		execName: execName,
		deriver:  address.NewHashDeriver(address.ExecAddress(execName)),
	}
}

// NewPacketID 随机红包编号,取 v4 uuid 的前8字节
func NewPacketID() uint64 {
	id := uuid.New()
	return binary.LittleEndian.Uint64(id[:8])
}

// AssetIDString 资产标识的base58显示形式
func AssetIDString(symbol string) string {
	return base58.Encode(types.AssetID(symbol))
}

func txNonce() int64 {
	b := crypto.CRandBytes(8)
	return int64(binary.LittleEndian.Uint64(b) >> 1)
}

// PacketAddrs 红包记录和金库的派生地址及bump
func (b *TxBuilder) PacketAddrs(creator string, id uint64) (rpAddr string, rpBump byte, vaultAddr string, vaultBump byte, err error) {
	creatorID, err := address.ToIdentity(creator)
	if err != nil {
		return "", 0, "", 0, err
	}
	var nonce [8]byte
	binary.LittleEndian.PutUint64(nonce[:], id)
	rpAddr, rpBump, err = b.deriver.FindBump([]byte(types.SeedRedPacket), creatorID, nonce[:])
	if err != nil {
		return "", 0, "", 0, err
	}
	vaultAddr, vaultBump, err = b.deriver.FindBump([]byte(types.SeedVault), creatorID, nonce[:])
	if err != nil {
		return "", 0, "", 0, err
	}
	return rpAddr, rpBump, vaultAddr, vaultBump, nil
}

// TreasuryAddrs 金库记录和金库子账户的派生地址及bump,symbol 留空表示原生币
func (b *TxBuilder) TreasuryAddrs(symbol string) (treasuryAddr string, treasuryBump byte, vaultAddr string, vaultBump byte, err error) {
	assetID := types.AssetID(symbol)
	treasuryAddr, treasuryBump, err = b.deriver.FindBump([]byte(types.SeedTreasury), assetID, nil)
	if err != nil {
		return "", 0, "", 0, err
	}
	vaultAddr, vaultBump, err = b.deriver.FindBump([]byte(types.SeedTreasuryVault), assetID, nil)
	if err != nil {
		return "", 0, "", 0, err
	}
	return treasuryAddr, treasuryBump, vaultAddr, vaultBump, nil
}

func (b *TxBuilder) newTx(payload []byte, accounts []types.AccountMeta) *types.Transaction {
	return &types.Transaction{
		Execer:   b.execName,
		Payload:  payload,
		Accounts: accounts,
		Nonce:    txNonce(),
	}
}

// BuildCreate 组装创建红包交易
// 随机模式且未显式给出金额时在本地生成随机拆分
func (b *TxBuilder) BuildCreate(creator, symbol string, id uint64, total uint64, numRecipients byte, splitMode byte, expiresAt int64, amounts []uint64) (*types.Transaction, error) {
	rpAddr, rpBump, vaultAddr, vaultBump, err := b.PacketAddrs(creator, id)
	if err != nil {
		return nil, err
	}
	treasuryAddr, _, tvaultAddr, _, err := b.TreasuryAddrs(symbol)
	if err != nil {
		return nil, err
	}
	if splitMode == types.SplitRandom && amounts == nil {
		amounts = GenerateRandomSplit(total, int(numRecipients))
	}
	tokenType := byte(types.AssetNative)
	if symbol != "" {
		tokenType = types.AssetFungible
	}
	ins := &types.CreateInstruction{
		TokenType:     tokenType,
		ID:            id,
		TotalAmount:   total,
		NumRecipients: numRecipients,
		SplitMode:     splitMode,
		ExpiresAt:     expiresAt,
		Bump:          rpBump,
		VaultBump:     vaultBump,
		Amounts:       amounts,
	}
	var accounts []types.AccountMeta
	if symbol == "" {
		accounts = []types.AccountMeta{
			{Addr: creator, Signer: true, Writable: true},
			{Addr: rpAddr, Writable: true},
			{Addr: vaultAddr, Writable: true},
			{Addr: treasuryAddr, Writable: true},
			{Addr: address.ExecAddress(types.SystemX)},
		}
	} else {
		accounts = []types.AccountMeta{
			{Addr: creator, Signer: true, Writable: true},
			{Addr: creator, Writable: true},
			{Addr: rpAddr, Writable: true},
			{Addr: vaultAddr, Writable: true},
			{Addr: treasuryAddr, Writable: true},
			{Addr: tvaultAddr, Writable: true},
			{Addr: types.MintAddress(symbol)},
			{Addr: address.ExecAddress(types.TokenX)},
			{Addr: address.ExecAddress(types.SystemX)},
		}
	}
	return b.newTx(ins.Encode(), accounts), nil
}

// BuildClaim 组装领取交易,领取人只提供创建者和编号,记录地址由双方各自重建
func (b *TxBuilder) BuildClaim(claimer, creator string, id uint64, symbol string) (*types.Transaction, error) {
	rpAddr, _, vaultAddr, _, err := b.PacketAddrs(creator, id)
	if err != nil {
		return nil, err
	}
	tokenType := byte(types.AssetNative)
	var accounts []types.AccountMeta
	if symbol == "" {
		accounts = []types.AccountMeta{
			{Addr: claimer, Signer: true, Writable: true},
			{Addr: rpAddr, Writable: true},
			{Addr: vaultAddr, Writable: true},
		}
	} else {
		tokenType = types.AssetFungible
		accounts = []types.AccountMeta{
			{Addr: claimer, Signer: true, Writable: true},
			{Addr: claimer, Writable: true},
			{Addr: rpAddr, Writable: true},
			{Addr: vaultAddr, Writable: true},
			{Addr: address.ExecAddress(types.TokenX)},
		}
	}
	ins := &types.ClaimInstruction{TokenType: tokenType}
	return b.newTx(ins.Encode(), accounts), nil
}

// BuildClose 组装关闭交易
func (b *TxBuilder) BuildClose(creator string, id uint64, symbol string) (*types.Transaction, error) {
	rpAddr, _, vaultAddr, _, err := b.PacketAddrs(creator, id)
	if err != nil {
		return nil, err
	}
	tokenType := byte(types.AssetNative)
	var accounts []types.AccountMeta
	if symbol == "" {
		accounts = []types.AccountMeta{
			{Addr: creator, Signer: true, Writable: true},
			{Addr: rpAddr, Writable: true},
			{Addr: vaultAddr, Writable: true},
		}
	} else {
		tokenType = types.AssetFungible
		accounts = []types.AccountMeta{
			{Addr: creator, Signer: true, Writable: true},
			{Addr: creator, Writable: true},
			{Addr: rpAddr, Writable: true},
			{Addr: vaultAddr, Writable: true},
			{Addr: address.ExecAddress(types.TokenX)},
		}
	}
	ins := &types.CloseInstruction{TokenType: tokenType}
	return b.newTx(ins.Encode(), accounts), nil
}

// BuildInitTreasury 组装金库初始化交易
func (b *TxBuilder) BuildInitTreasury(payer, symbol string) (*types.Transaction, error) {
	treasuryAddr, treasuryBump, tvaultAddr, tvaultBump, err := b.TreasuryAddrs(symbol)
	if err != nil {
		return nil, err
	}
	tokenType := byte(types.AssetNative)
	var accounts []types.AccountMeta
	if symbol == "" {
		accounts = []types.AccountMeta{
			{Addr: payer, Signer: true, Writable: true},
			{Addr: treasuryAddr, Writable: true},
			{Addr: address.ExecAddress(types.SystemX)},
		}
		tvaultBump = 0
	} else {
		tokenType = types.AssetFungible
		accounts = []types.AccountMeta{
			{Addr: payer, Signer: true, Writable: true},
			{Addr: treasuryAddr, Writable: true},
			{Addr: tvaultAddr, Writable: true},
			{Addr: types.MintAddress(symbol)},
			{Addr: address.ExecAddress(types.TokenX)},
			{Addr: address.ExecAddress(types.SystemX)},
		}
	}
	ins := &types.InitTreasuryInstruction{
		TokenType:    tokenType,
		TreasuryBump: treasuryBump,
		VaultBump:    tvaultBump,
	}
	return b.newTx(ins.Encode(), accounts), nil
}

// BuildWithdrawFees 组装提取手续费交易,amount 为 0 表示全部提取
func (b *TxBuilder) BuildWithdrawFees(admin, symbol string, amount uint64) (*types.Transaction, error) {
	treasuryAddr, _, tvaultAddr, _, err := b.TreasuryAddrs(symbol)
	if err != nil {
		return nil, err
	}
	tokenType := byte(types.AssetNative)
	var accounts []types.AccountMeta
	if symbol == "" {
		accounts = []types.AccountMeta{
			{Addr: admin, Signer: true, Writable: true},
			{Addr: treasuryAddr, Writable: true},
		}
	} else {
		tokenType = types.AssetFungible
		accounts = []types.AccountMeta{
			{Addr: admin, Signer: true, Writable: true},
			{Addr: admin, Writable: true},
			{Addr: treasuryAddr, Writable: true},
			{Addr: tvaultAddr, Writable: true},
			{Addr: address.ExecAddress(types.TokenX)},
		}
	}
	ins := &types.WithdrawFeesInstruction{TokenType: tokenType, Amount: amount}
	return b.newTx(ins.Encode(), accounts), nil
}
