// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

//红包执行错误,错误码0-21固定不变,对外接口依赖这些编号
var (
	ErrInvalidAmount               = errors.New("ErrInvalidAmount")
	ErrInvalidRecipientCount       = errors.New("ErrInvalidRecipientCount")
	ErrInvalidSplitMode            = errors.New("ErrInvalidSplitMode")
	ErrAlreadyClaimed              = errors.New("ErrAlreadyClaimed")
	ErrRedPacketFull               = errors.New("ErrRedPacketFull")
	ErrExpired                     = errors.New("ErrExpired")
	ErrNotExpiredOrFull            = errors.New("ErrNotExpiredOrFull")
	ErrUnauthorized                = errors.New("ErrUnauthorized")
	ErrInvalidPDA                  = errors.New("ErrInvalidPDA")
	ErrInvalidAccountOwner         = errors.New("ErrInvalidAccountOwner")
	ErrInvalidDiscriminator        = errors.New("ErrInvalidDiscriminator")
	ErrAmountMismatch              = errors.New("ErrAmountMismatch")
	ErrNotEnoughAccounts           = errors.New("ErrNotEnoughAccounts")
	ErrUnauthorizedAdmin           = errors.New("ErrUnauthorizedAdmin")
	ErrTreasuryNotInitialized      = errors.New("ErrTreasuryNotInitialized")
	ErrInsufficientTreasuryBalance = errors.New("ErrInsufficientTreasuryBalance")
	ErrTreasuryAlreadyInitialized  = errors.New("ErrTreasuryAlreadyInitialized")
	ErrInvalidMint                 = errors.New("ErrInvalidMint")
	ErrInvalidTokenAccount         = errors.New("ErrInvalidTokenAccount")
	ErrInvalidTokenProgram         = errors.New("ErrInvalidTokenProgram")
	ErrInvalidSystemProgram        = errors.New("ErrInvalidSystemProgram")
	ErrInvalidTokenType            = errors.New("ErrInvalidTokenType")

	//以下两个在封闭错误集之外,编号顺延
	ErrInvalidInstruction = errors.New("ErrInvalidInstruction")
	ErrArithmeticOverflow = errors.New("ErrArithmeticOverflow")
)

//宿主层错误,不携带固定错误码
var (
	ErrNoBalance           = errors.New("ErrNoBalance")
	ErrBalanceLessThanZero = errors.New("ErrBalanceLessThanZero")
	ErrAccountNotExist     = errors.New("ErrAccountNotExist")
	ErrAmount              = errors.New("ErrAmount")
	ErrSendSameToRecv      = errors.New("ErrSendSameToRecv")
	ErrSymbolNameNotAllow  = errors.New("ErrSymbolNameNotAllow")
	ErrNotFound            = errors.New("ErrNotFound")
	ErrSign                = errors.New("ErrSign")
	ErrTxDecode            = errors.New("ErrTxDecode")
	ErrTxExpire            = errors.New("ErrTxExpire")
	ErrInvalidParam        = errors.New("ErrInvalidParam")
	ErrExecNameNotAllow    = errors.New("ErrExecNameNotAllow")
	ErrAccountExists       = errors.New("ErrAccountExists")
)

var errCodes = map[error]int32{
	ErrInvalidAmount:               0,
	ErrInvalidRecipientCount:       1,
	ErrInvalidSplitMode:            2,
	ErrAlreadyClaimed:              3,
	ErrRedPacketFull:               4,
	ErrExpired:                     5,
	ErrNotExpiredOrFull:            6,
	ErrUnauthorized:                7,
	ErrInvalidPDA:                  8,
	ErrInvalidAccountOwner:         9,
	ErrInvalidDiscriminator:        10,
	ErrAmountMismatch:              11,
	ErrNotEnoughAccounts:           12,
	ErrUnauthorizedAdmin:           13,
	ErrTreasuryNotInitialized:      14,
	ErrInsufficientTreasuryBalance: 15,
	ErrTreasuryAlreadyInitialized:  16,
	ErrInvalidMint:                 17,
	ErrInvalidTokenAccount:         18,
	ErrInvalidTokenProgram:         19,
	ErrInvalidSystemProgram:        20,
	ErrInvalidTokenType:            21,
	ErrInvalidInstruction:          22,
	ErrArithmeticOverflow:          23,
}

//CodeOf 返回错误对应的固定错误码,未知错误返回-1
func CodeOf(err error) int32 {
	if code, ok := errCodes[err]; ok {
		return code
	}
	return -1
}
