// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCreateInstruction(t *testing.T) {
	ins := &CreateInstruction{
		TokenType:     AssetNative,
		ID:            42,
		TotalAmount:   1000000,
		NumRecipients: 3,
		SplitMode:     SplitRandom,
		ExpiresAt:     1700000000,
		Bump:          254,
		VaultBump:     250,
		Amounts:       []uint64{500000, 300000, 200000},
	}
	got, err := DecodeInstruction(ins.Encode())
	require.NoError(t, err)
	decoded, ok := got.(*CreateInstruction)
	require.True(t, ok)
	assert.Equal(t, ins, decoded)
	assert.Equal(t, int32(HongbaoActionCreate), decoded.OpCode())

	//均分模式不携带金额区
	ins.SplitMode = SplitEven
	ins.Amounts = nil
	got, err = DecodeInstruction(ins.Encode())
	require.NoError(t, err)
	assert.Nil(t, got.(*CreateInstruction).Amounts)
}

func TestDecodeInstructionRejects(t *testing.T) {
	_, err := DecodeInstruction(nil)
	assert.Equal(t, ErrInvalidInstruction, err)

	//未知操作码
	_, err = DecodeInstruction([]byte{99})
	assert.Equal(t, ErrInvalidInstruction, err)

	//载荷截断
	ins := &CreateInstruction{NumRecipients: 2, SplitMode: SplitRandom, Amounts: []uint64{1, 2}}
	payload := ins.Encode()
	_, err = DecodeInstruction(payload[:len(payload)-1])
	assert.Equal(t, ErrInvalidInstruction, err)

	_, err = DecodeInstruction([]byte{byte(HongbaoActionWithdrawFees), 1})
	assert.Equal(t, ErrInvalidInstruction, err)
}

func TestDecodeCreateOutOfRangeRecipients(t *testing.T) {
	//收款人数越界时金额区不可信,解码保留原值交处理函数拒绝
	ins := &CreateInstruction{NumRecipients: 200, SplitMode: SplitRandom}
	got, err := DecodeInstruction(ins.Encode())
	require.NoError(t, err)
	decoded := got.(*CreateInstruction)
	assert.Equal(t, byte(200), decoded.NumRecipients)
	assert.Nil(t, decoded.Amounts)
}

func TestSimpleInstructions(t *testing.T) {
	for _, ins := range []Instruction{
		&ClaimInstruction{TokenType: AssetFungible},
		&CloseInstruction{TokenType: AssetNative},
		&InitTreasuryInstruction{TokenType: AssetFungible, TreasuryBump: 255, VaultBump: 254},
		&WithdrawFeesInstruction{TokenType: AssetNative, Amount: 999},
	} {
		got, err := DecodeInstruction(ins.Encode())
		require.NoError(t, err)
		assert.Equal(t, ins, got)
	}
}

func TestCheckTokenType(t *testing.T) {
	assert.NoError(t, CheckTokenType(AssetFungible))
	assert.NoError(t, CheckTokenType(AssetNative))
	assert.Equal(t, ErrInvalidTokenType, CheckTokenType(2))
}

func TestActionName(t *testing.T) {
	assert.Equal(t, "create", ActionName(HongbaoActionCreate))
	assert.Equal(t, "withdrawFees", ActionName(HongbaoActionWithdrawFees))
	assert.Equal(t, "unknown", ActionName(99))
}
