// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "encoding/binary"

// 指令载荷编码: 首字节为操作码,其后为各操作的定长体,多字节整数一律小端
// 定长体之后允许出现多余字节,解码时忽略
const (
	createBodyLen       = 29
	claimBodyLen        = 1
	closeBodyLen        = 1
	initTreasuryBodyLen = 3
	withdrawBodyLen     = 9
)

// Instruction 指令载荷解码后的类型化表示,分发器据此路由到各处理函数
type Instruction interface {
	OpCode() int32
	Encode() []byte
}

// DecodeInstruction 解码指令载荷
// 操作码未知或载荷长度不足时返回 ErrInvalidInstruction,取值范围类检查留给处理函数
func DecodeInstruction(payload []byte) (Instruction, error) {
	if len(payload) < 1 {
		return nil, ErrInvalidInstruction
	}
	body := payload[1:]
	switch int32(payload[0]) {
	case HongbaoActionCreate:
		return decodeCreate(body)
	case HongbaoActionClaim:
		if len(body) < claimBodyLen {
			return nil, ErrInvalidInstruction
		}
		return &ClaimInstruction{TokenType: body[0]}, nil
	case HongbaoActionClose:
		if len(body) < closeBodyLen {
			return nil, ErrInvalidInstruction
		}
		return &CloseInstruction{TokenType: body[0]}, nil
	case HongbaoActionInitTreasury:
		if len(body) < initTreasuryBodyLen {
			return nil, ErrInvalidInstruction
		}
		return &InitTreasuryInstruction{
			TokenType:    body[0],
			TreasuryBump: body[1],
			VaultBump:    body[2],
		}, nil
	case HongbaoActionWithdrawFees:
		if len(body) < withdrawBodyLen {
			return nil, ErrInvalidInstruction
		}
		return &WithdrawFeesInstruction{
			TokenType: body[0],
			Amount:    binary.LittleEndian.Uint64(body[1:9]),
		}, nil
	default:
		return nil, ErrInvalidInstruction
	}
}

// CheckTokenType 校验资产类型取值
func CheckTokenType(tokenType byte) error {
	if tokenType != AssetFungible && tokenType != AssetNative {
		return ErrInvalidTokenType
	}
	return nil
}

// ActionName 操作码对应的动作名
func ActionName(op int32) string {
	switch op {
	case HongbaoActionCreate:
		return "create"
	case HongbaoActionClaim:
		return "claim"
	case HongbaoActionClose:
		return "close"
	case HongbaoActionInitTreasury:
		return "initTreasury"
	case HongbaoActionWithdrawFees:
		return "withdrawFees"
	default:
		return "unknown"
	}
}

// CreateInstruction 创建红包
// 随机模式下 Amounts 携带逐槽金额,均分模式下由处理函数计算
type CreateInstruction struct {
	TokenType     byte
	ID            uint64
	TotalAmount   uint64
	NumRecipients byte
	SplitMode     byte
	ExpiresAt     int64
	Bump          byte
	VaultBump     byte
	Amounts       []uint64
}

func decodeCreate(body []byte) (*CreateInstruction, error) {
	if len(body) < createBodyLen {
		return nil, ErrInvalidInstruction
	}
	ins := &CreateInstruction{
		TokenType:     body[0],
		ID:            binary.LittleEndian.Uint64(body[1:9]),
		TotalAmount:   binary.LittleEndian.Uint64(body[9:17]),
		NumRecipients: body[17],
		SplitMode:     body[18],
		ExpiresAt:     int64(binary.LittleEndian.Uint64(body[19:27])),
		Bump:          body[27],
		VaultBump:     body[28],
	}
	// 收款人数越界或模式非法时金额区不可信,留空由处理函数按取值类错误拒绝
	n := int(ins.NumRecipients)
	if ins.SplitMode != SplitRandom || n < 1 || n > MaxRecipients {
		return ins, nil
	}
	if len(body) < createBodyLen+8*n {
		return nil, ErrInvalidInstruction
	}
	ins.Amounts = make([]uint64, n)
	for i := 0; i < n; i++ {
		off := createBodyLen + 8*i
		ins.Amounts[i] = binary.LittleEndian.Uint64(body[off : off+8])
	}
	return ins, nil
}

// OpCode 操作码
func (ins *CreateInstruction) OpCode() int32 { return HongbaoActionCreate }

// Encode 编码为指令载荷
func (ins *CreateInstruction) Encode() []byte {
	buf := make([]byte, 1+createBodyLen, 1+createBodyLen+8*len(ins.Amounts))
	buf[0] = byte(HongbaoActionCreate)
	buf[1] = ins.TokenType
	binary.LittleEndian.PutUint64(buf[2:], ins.ID)
	binary.LittleEndian.PutUint64(buf[10:], ins.TotalAmount)
	buf[18] = ins.NumRecipients
	buf[19] = ins.SplitMode
	binary.LittleEndian.PutUint64(buf[20:], uint64(ins.ExpiresAt))
	buf[28] = ins.Bump
	buf[29] = ins.VaultBump
	if ins.SplitMode == SplitRandom {
		var b [8]byte
		for _, amount := range ins.Amounts {
			binary.LittleEndian.PutUint64(b[:], amount)
			buf = append(buf, b[:]...)
		}
	}
	return buf
}

// ClaimInstruction 领取红包
type ClaimInstruction struct {
	TokenType byte
}

// OpCode 操作码
func (ins *ClaimInstruction) OpCode() int32 { return HongbaoActionClaim }

// Encode 编码为指令载荷
func (ins *ClaimInstruction) Encode() []byte {
	return []byte{byte(HongbaoActionClaim), ins.TokenType}
}

// CloseInstruction 关闭红包并取回余额
type CloseInstruction struct {
	TokenType byte
}

// OpCode 操作码
func (ins *CloseInstruction) OpCode() int32 { return HongbaoActionClose }

// Encode 编码为指令载荷
func (ins *CloseInstruction) Encode() []byte {
	return []byte{byte(HongbaoActionClose), ins.TokenType}
}

// InitTreasuryInstruction 初始化指定资产的国库
type InitTreasuryInstruction struct {
	TokenType    byte
	TreasuryBump byte
	VaultBump    byte
}

// OpCode 操作码
func (ins *InitTreasuryInstruction) OpCode() int32 { return HongbaoActionInitTreasury }

// Encode 编码为指令载荷
func (ins *InitTreasuryInstruction) Encode() []byte {
	return []byte{byte(HongbaoActionInitTreasury), ins.TokenType, ins.TreasuryBump, ins.VaultBump}
}

// WithdrawFeesInstruction 管理员提取手续费,Amount 为 0 表示全部提取
type WithdrawFeesInstruction struct {
	TokenType byte
	Amount    uint64
}

// OpCode 操作码
func (ins *WithdrawFeesInstruction) OpCode() int32 { return HongbaoActionWithdrawFees }

// Encode 编码为指令载荷
func (ins *WithdrawFeesInstruction) Encode() []byte {
	buf := make([]byte, 1+withdrawBodyLen)
	buf[0] = byte(HongbaoActionWithdrawFees)
	buf[1] = ins.TokenType
	binary.LittleEndian.PutUint64(buf[2:], ins.Amount)
	return buf
}
