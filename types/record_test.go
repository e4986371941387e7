// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPacket(n byte) *RedPacket {
	creator := bytes.Repeat([]byte{0xAB}, IdentityLen)
	amounts := make([]uint64, n)
	claimers := make([][]byte, n)
	var total uint64
	for i := range amounts {
		amounts[i] = uint64(i+1) * 100
		total += amounts[i]
	}
	return &RedPacket{
		Creator:       creator,
		ID:            0xDEADBEEF12345678,
		TotalAmount:   total,
		Remaining:     total,
		NumRecipients: n,
		SplitMode:     SplitRandom,
		Bump:          254,
		VaultBump:     251,
		TokenType:     AssetNative,
		ExpiresAt:     1700000000,
		Amounts:       amounts,
		Claimers:      claimers,
	}
}

func TestRedPacketSize(t *testing.T) {
	assert.Equal(t, 71, RedPacketSize(0))
	assert.Equal(t, 111, RedPacketSize(1))
	assert.Equal(t, 71+20*40, RedPacketSize(20))
	assert.Equal(t, 43, TreasurySize(true))
	assert.Equal(t, 35, TreasurySize(false))
}

func TestRedPacketRoundTrip(t *testing.T) {
	for _, n := range []byte{1, 3, 20} {
		rp := testPacket(n)
		buf := rp.Encode()
		require.Len(t, buf, RedPacketSize(int(n)))
		assert.Equal(t, RedPacketDiscriminator, buf[0])

		got, err := DecodeRedPacket(buf)
		require.NoError(t, err)
		assert.Equal(t, rp.Creator, got.Creator)
		assert.Equal(t, rp.ID, got.ID)
		assert.Equal(t, rp.TotalAmount, got.TotalAmount)
		assert.Equal(t, rp.NumRecipients, got.NumRecipients)
		assert.Equal(t, rp.Bump, got.Bump)
		assert.Equal(t, rp.VaultBump, got.VaultBump)
		assert.Equal(t, rp.ExpiresAt, got.ExpiresAt)
		assert.Equal(t, rp.Amounts, got.Amounts)
		//未领取的槽位解码为全零身份
		for _, claimer := range got.Claimers {
			assert.Equal(t, make([]byte, IdentityLen), claimer)
		}
	}
}

func TestRedPacketClaimers(t *testing.T) {
	rp := testPacket(3)
	id1 := bytes.Repeat([]byte{0x01}, IdentityLen)
	id2 := bytes.Repeat([]byte{0x02}, IdentityLen)
	rp.Claimers[0] = id1
	rp.Claimers[1] = id2
	rp.NumClaimed = 2

	got, err := DecodeRedPacket(rp.Encode())
	require.NoError(t, err)
	assert.True(t, got.Claimed(id1))
	assert.True(t, got.Claimed(id2))
	//第三个槽位还没写入,不算已领取
	assert.False(t, got.Claimed(bytes.Repeat([]byte{0x03}, IdentityLen)))
	//全零身份不会误判,扫描只覆盖已领取数量
	assert.False(t, got.Claimed(make([]byte, IdentityLen)))
}

func TestDecodeRedPacketRejects(t *testing.T) {
	rp := testPacket(2)
	buf := rp.Encode()

	//截断
	_, err := DecodeRedPacket(buf[:len(buf)-1])
	assert.Equal(t, ErrInvalidDiscriminator, err)
	//类型标识不对
	bad := append([]byte{}, buf...)
	bad[0] = TreasuryDiscriminator
	_, err = DecodeRedPacket(bad)
	assert.Equal(t, ErrInvalidDiscriminator, err)
	//全零
	_, err = DecodeRedPacket(make([]byte, len(buf)))
	assert.Equal(t, ErrInvalidDiscriminator, err)
	//长度与收款人数不符
	_, err = DecodeRedPacket(append(buf, 0))
	assert.Equal(t, ErrInvalidDiscriminator, err)
}

func TestRedPacketStatus(t *testing.T) {
	rp := testPacket(2)
	rp.ExpiresAt = 1000
	assert.Equal(t, StatusActive, rp.Status(999))
	assert.Equal(t, StatusExpired, rp.Status(1000))
	rp.NumClaimed = 2
	//领完优先于过期
	assert.Equal(t, StatusFullyClaimed, rp.Status(2000))
}

func TestTreasuryRoundTrip(t *testing.T) {
	native := &Treasury{Bump: 253, AcceptedAsset: NativeAssetID, FeesCollected: 12345}
	buf := native.Encode()
	require.Len(t, buf, TreasurySize(true))
	assert.Equal(t, TreasuryDiscriminator, buf[0])
	got, err := DecodeTreasury(buf)
	require.NoError(t, err)
	assert.True(t, got.IsNative())
	assert.Equal(t, uint64(12345), got.FeesCollected)

	fungible := &Treasury{Bump: 252, VaultBump: 249, AcceptedAsset: AssetID("CNY")}
	buf = fungible.Encode()
	require.Len(t, buf, TreasurySize(false))
	got, err = DecodeTreasury(buf)
	require.NoError(t, err)
	assert.False(t, got.IsNative())
	assert.Equal(t, AssetID("CNY"), got.AcceptedAsset)
	assert.Zero(t, got.FeesCollected)
}

func TestDecodeTreasuryRejects(t *testing.T) {
	_, err := DecodeTreasury(nil)
	assert.Equal(t, ErrTreasuryNotInitialized, err)
	_, err = DecodeTreasury(make([]byte, TreasurySize(false)))
	assert.Equal(t, ErrTreasuryNotInitialized, err)
	//原生金库记录被截断成合约金库长度
	native := &Treasury{AcceptedAsset: NativeAssetID, FeesCollected: 1}
	_, err = DecodeTreasury(native.Encode()[:TreasurySize(false)])
	assert.Equal(t, ErrTreasuryNotInitialized, err)
}
