// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"crypto/sha256"
)

//HongbaoX 执行器名称
var HongbaoX = "hongbao"

//内置程序名,代币转账与账户创建分别由这两个程序管辖
const (
	TokenX  = "token"
	SystemX = "system"
)

//币种精度
const (
	Coin    int64 = 1e8
	MaxCoin int64 = 1e17
)

//红包指令操作码,指令payload的第一个字节
const (
	HongbaoActionCreate = iota
	HongbaoActionClaim
	HongbaoActionClose
	HongbaoActionInitTreasury
	HongbaoActionWithdrawFees
)

//资产类型,合约资产为0,原生币为1
const (
	AssetFungible = 0
	AssetNative   = 1
)

//拆分方式
const (
	SplitEven   = 0
	SplitRandom = 1
)

//地址派生种子,红包和金库的地址都由种子+所有者+序号唯一确定
const (
	SeedRedPacket     = "redpacket"
	SeedVault         = "vault"
	SeedTreasury      = "treasury"
	SeedTreasuryVault = "treasury_vault"
)

//记录类型标识,存储数据的第一个字节
const (
	RedPacketDiscriminator byte = 1
	TreasuryDiscriminator  byte = 2
)

//红包参数约束
const (
	MaxRecipients = 20
	//手续费费率,万分之十即千分之一
	FeeRateBPS     int64 = 10
	BPSDenominator int64 = 10000
	MinCreateFee   int64 = 1
)

//NativeAssetID 原生币的资产标识,32个0xFF,与任何合约资产地址都不会冲突
var NativeAssetID = bytes.Repeat([]byte{0xFF}, 32)

//AssetIDLen 资产标识长度
const AssetIDLen = 32

//AssetID 合约资产的资产标识,取符号的sha256,空符号表示原生币
func AssetID(symbol string) []byte {
	if symbol == "" {
		return NativeAssetID
	}
	h := sha256.Sum256([]byte(symbol))
	return h[:]
}

//TokenAccountSize 代币金库子账户的标称数据长度,只用于押金计算
const TokenAccountSize = 165

//存储押金:账户数据每字节押金,租期两年,每字节每年3480
const (
	rentPerByteYear int64 = 3480
	rentYears       int64 = 2
	rentBaseBytes   int64 = 128
)

//RentExempt 计算指定数据长度的存储押金下限
func RentExempt(dataLen int) int64 {
	return (int64(dataLen) + rentBaseBytes) * rentYears * rentPerByteYear
}

//签名类型
const (
	SECP256K1 = 1
	ED25519   = 2
)

//执行结果
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

//收据日志类型
const (
	TyLogErr      = 1
	TyLogTransfer = 13
	TyLogDeposit  = 14
	TyLogWithdraw = 15

	TyLogHongbaoCreate    = 901
	TyLogHongbaoClaim     = 902
	TyLogHongbaoClose     = 903
	TyLogTreasuryInit     = 904
	TyLogTreasuryWithdraw = 905
)
