// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"encoding/binary"
)

//记录采用定长布局,字段位置全部由下面的布局表决定,多字节整数一律小端,
//没有填充、版本号和可选字段,代码里不允许出现手写的偏移量

type field struct {
	name  string
	off   int
	width int
}

//红包记录定长头部,变长的amounts和claimers数组紧随其后
var redPacketFields = []field{
	{"discriminator", 0, 1},
	{"creator", 1, 32},
	{"id", 33, 8},
	{"total_amount", 41, 8},
	{"remaining_amount", 49, 8},
	{"num_recipients", 57, 1},
	{"num_claimed", 58, 1},
	{"split_mode", 59, 1},
	{"bump", 60, 1},
	{"vault_bump", 61, 1},
	{"token_type", 62, 1},
	{"expires_at", 63, 8},
}

//金库记录,fees_collected只有原生资产金库才有
var treasuryFields = []field{
	{"discriminator", 0, 1},
	{"bump", 1, 1},
	{"vault_bump", 2, 1},
	{"accepted_asset", 3, 32},
	{"fees_collected", 35, 8},
}

func fieldsEnd(fields []field, name string) int {
	for _, f := range fields {
		if f.name == name {
			return f.off + f.width
		}
	}
	panic("unknown field " + name)
}

//布局尺寸都从布局表推导
var (
	redPacketBaseSize    = fieldsEnd(redPacketFields, "expires_at")
	treasuryFungibleSize = fieldsEnd(treasuryFields, "accepted_asset")
	treasuryNativeSize   = fieldsEnd(treasuryFields, "fees_collected")
)

//每个领取人占用的字节数:8字节金额+32字节身份
const perRecipientSize = 8 + IdentityLen

//IdentityLen 链上身份长度
const IdentityLen = 32

//RedPacketSize n个领取人的红包记录总长度
func RedPacketSize(n int) int {
	return redPacketBaseSize + n*perRecipientSize
}

//TreasurySize 金库记录长度
func TreasurySize(native bool) int {
	if native {
		return treasuryNativeSize
	}
	return treasuryFungibleSize
}

//layout 在字节缓冲上按布局表读写,唯一允许计算偏移的地方
type layout struct {
	buf    []byte
	fields []field
}

func (l layout) spec(name string) field {
	for _, f := range l.fields {
		if f.name == name {
			return f
		}
	}
	panic("unknown field " + name)
}

func (l layout) byteAt(name string) byte {
	return l.buf[l.spec(name).off]
}

func (l layout) putByte(name string, v byte) {
	l.buf[l.spec(name).off] = v
}

func (l layout) u64(name string) uint64 {
	f := l.spec(name)
	return binary.LittleEndian.Uint64(l.buf[f.off : f.off+f.width])
}

func (l layout) putU64(name string, v uint64) {
	f := l.spec(name)
	binary.LittleEndian.PutUint64(l.buf[f.off:f.off+f.width], v)
}

func (l layout) bytesAt(name string) []byte {
	f := l.spec(name)
	out := make([]byte, f.width)
	copy(out, l.buf[f.off:f.off+f.width])
	return out
}

func (l layout) putBytes(name string, v []byte) {
	f := l.spec(name)
	copy(l.buf[f.off:f.off+f.width], v)
}

//变长数组的槽位位置同样由布局表推导
func amountOff(i int) int {
	return redPacketBaseSize + 8*i
}

func claimerOff(n, i int) int {
	return redPacketBaseSize + 8*n + IdentityLen*i
}

//RedPacket 红包记录
type RedPacket struct {
	Creator       []byte
	ID            uint64
	TotalAmount   uint64
	Remaining     uint64
	NumRecipients byte
	NumClaimed    byte
	SplitMode     byte
	Bump          byte
	VaultBump     byte
	TokenType     byte
	ExpiresAt     int64
	Amounts       []uint64
	Claimers      [][]byte
}

//Encode 按定长布局编码,未领取的claimer槽位保持全零
func (r *RedPacket) Encode() []byte {
	n := int(r.NumRecipients)
	buf := make([]byte, RedPacketSize(n))
	l := layout{buf: buf, fields: redPacketFields}
	l.putByte("discriminator", RedPacketDiscriminator)
	l.putBytes("creator", r.Creator)
	l.putU64("id", r.ID)
	l.putU64("total_amount", r.TotalAmount)
	l.putU64("remaining_amount", r.Remaining)
	l.putByte("num_recipients", r.NumRecipients)
	l.putByte("num_claimed", r.NumClaimed)
	l.putByte("split_mode", r.SplitMode)
	l.putByte("bump", r.Bump)
	l.putByte("vault_bump", r.VaultBump)
	l.putByte("token_type", r.TokenType)
	l.putU64("expires_at", uint64(r.ExpiresAt))
	for i, amount := range r.Amounts {
		binary.LittleEndian.PutUint64(buf[amountOff(i):amountOff(i)+8], amount)
	}
	for i, claimer := range r.Claimers {
		if len(claimer) == 0 {
			continue
		}
		copy(buf[claimerOff(n, i):claimerOff(n, i)+IdentityLen], claimer)
	}
	return buf
}

//DecodeRedPacket 解码红包记录,长度或者类型标识不对即视为非法记录
func DecodeRedPacket(buf []byte) (*RedPacket, error) {
	if len(buf) < redPacketBaseSize {
		return nil, ErrInvalidDiscriminator
	}
	l := layout{buf: buf, fields: redPacketFields}
	if l.byteAt("discriminator") != RedPacketDiscriminator {
		return nil, ErrInvalidDiscriminator
	}
	n := int(l.byteAt("num_recipients"))
	if len(buf) != RedPacketSize(n) {
		return nil, ErrInvalidDiscriminator
	}
	r := &RedPacket{
		Creator:       l.bytesAt("creator"),
		ID:            l.u64("id"),
		TotalAmount:   l.u64("total_amount"),
		Remaining:     l.u64("remaining_amount"),
		NumRecipients: l.byteAt("num_recipients"),
		NumClaimed:    l.byteAt("num_claimed"),
		SplitMode:     l.byteAt("split_mode"),
		Bump:          l.byteAt("bump"),
		VaultBump:     l.byteAt("vault_bump"),
		TokenType:     l.byteAt("token_type"),
		ExpiresAt:     int64(l.u64("expires_at")),
		Amounts:       make([]uint64, n),
		Claimers:      make([][]byte, n),
	}
	for i := 0; i < n; i++ {
		r.Amounts[i] = binary.LittleEndian.Uint64(buf[amountOff(i) : amountOff(i)+8])
		claimer := make([]byte, IdentityLen)
		copy(claimer, buf[claimerOff(n, i):claimerOff(n, i)+IdentityLen])
		r.Claimers[i] = claimer
	}
	return r, nil
}

//Claimed 判断身份是否已经领取过,只扫描已写入的槽位
func (r *RedPacket) Claimed(identity []byte) bool {
	for i := 0; i < int(r.NumClaimed); i++ {
		if bytes.Equal(r.Claimers[i], identity) {
			return true
		}
	}
	return false
}

//红包状态
const (
	StatusActive       = "active"
	StatusExpired      = "expired"
	StatusFullyClaimed = "fully_claimed"
)

//Status 领完优先于过期
func (r *RedPacket) Status(now int64) string {
	if r.NumClaimed >= r.NumRecipients {
		return StatusFullyClaimed
	}
	if now >= r.ExpiresAt {
		return StatusExpired
	}
	return StatusActive
}

//Treasury 手续费金库记录
type Treasury struct {
	Bump          byte
	VaultBump     byte
	AcceptedAsset []byte
	//原生资产金库累计的手续费,合约资产金库没有这个字段
	FeesCollected uint64
}

//IsNative 是否原生资产金库
func (t *Treasury) IsNative() bool {
	return bytes.Equal(t.AcceptedAsset, NativeAssetID)
}

//Encode 按定长布局编码
func (t *Treasury) Encode() []byte {
	buf := make([]byte, TreasurySize(t.IsNative()))
	l := layout{buf: buf, fields: treasuryFields}
	l.putByte("discriminator", TreasuryDiscriminator)
	l.putByte("bump", t.Bump)
	l.putByte("vault_bump", t.VaultBump)
	l.putBytes("accepted_asset", t.AcceptedAsset)
	if t.IsNative() {
		l.putU64("fees_collected", t.FeesCollected)
	}
	return buf
}

//DecodeTreasury 解码金库记录,非法时返回未初始化错误
func DecodeTreasury(buf []byte) (*Treasury, error) {
	if len(buf) < treasuryFungibleSize {
		return nil, ErrTreasuryNotInitialized
	}
	l := layout{buf: buf, fields: treasuryFields}
	if l.byteAt("discriminator") != TreasuryDiscriminator {
		return nil, ErrTreasuryNotInitialized
	}
	t := &Treasury{
		Bump:          l.byteAt("bump"),
		VaultBump:     l.byteAt("vault_bump"),
		AcceptedAsset: l.bytesAt("accepted_asset"),
	}
	if t.IsNative() {
		if len(buf) < treasuryNativeSize {
			return nil, ErrTreasuryNotInitialized
		}
		t.FeesCollected = l.u64("fees_collected")
	}
	return t, nil
}
