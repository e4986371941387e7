// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/binary"

	"github.com/hongbaochain/hongbao/common"
	"github.com/hongbaochain/hongbao/common/address"
	"github.com/hongbaochain/hongbao/common/crypto"
)

// Signature 交易签名
type Signature struct {
	Ty        int32  `json:"ty"`
	Pubkey    []byte `json:"pubkey"`
	Signature []byte `json:"signature"`
}

// AccountMeta 指令引用的账户及其权限标记
// Signer 标记由执行器对照签名地址核实,Writable 标记限定本条指令可改写的账户
type AccountMeta struct {
	Addr     string `json:"addr"`
	Signer   bool   `json:"signer"`
	Writable bool   `json:"writable"`
}

// Transaction 交易封皮,单签名,Payload 为指令载荷
type Transaction struct {
	Execer    string        `json:"execer"`
	Payload   []byte        `json:"payload"`
	Accounts  []AccountMeta `json:"accounts"`
	Expire    int64         `json:"expire"`
	Nonce     int64         `json:"nonce"`
	Signature *Signature    `json:"signature,omitempty"`
}

const (
	accountFlagSigner   = 0x01
	accountFlagWritable = 0x02
)

//signBytes 签名覆盖的部分,不含签名本身,修改签名无法重放为新交易
func (tx *Transaction) signBytes() []byte {
	buf := make([]byte, 0, 64+len(tx.Payload)+len(tx.Accounts)*36)
	buf = append(buf, byte(len(tx.Execer)))
	buf = append(buf, tx.Execer...)
	buf = appendU32(buf, uint32(len(tx.Payload)))
	buf = append(buf, tx.Payload...)
	buf = append(buf, byte(len(tx.Accounts)))
	for _, acc := range tx.Accounts {
		buf = append(buf, byte(len(acc.Addr)))
		buf = append(buf, acc.Addr...)
		var flags byte
		if acc.Signer {
			flags |= accountFlagSigner
		}
		if acc.Writable {
			flags |= accountFlagWritable
		}
		buf = append(buf, flags)
	}
	buf = appendU64(buf, uint64(tx.Expire))
	buf = appendU64(buf, uint64(tx.Nonce))
	return buf
}

// Encode 编码整笔交易,含签名
func (tx *Transaction) Encode() []byte {
	buf := tx.signBytes()
	if tx.Signature == nil {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	buf = appendU32(buf, uint32(tx.Signature.Ty))
	buf = appendU16(buf, uint16(len(tx.Signature.Pubkey)))
	buf = append(buf, tx.Signature.Pubkey...)
	buf = appendU16(buf, uint16(len(tx.Signature.Signature)))
	buf = append(buf, tx.Signature.Signature...)
	return buf
}

// DecodeTx 解码交易,格式错误返回 ErrTxDecode
func DecodeTx(data []byte) (*Transaction, error) {
	r := txReader{data: data}
	tx := &Transaction{}
	tx.Execer = string(r.bytes(int(r.byte1())))
	tx.Payload = r.bytes(int(r.u32()))
	numAccounts := int(r.byte1())
	if r.err == nil && numAccounts > 0 {
		tx.Accounts = make([]AccountMeta, numAccounts)
		for i := 0; i < numAccounts; i++ {
			tx.Accounts[i].Addr = string(r.bytes(int(r.byte1())))
			flags := r.byte1()
			tx.Accounts[i].Signer = flags&accountFlagSigner != 0
			tx.Accounts[i].Writable = flags&accountFlagWritable != 0
		}
	}
	tx.Expire = int64(r.u64())
	tx.Nonce = int64(r.u64())
	if r.byte1() == 1 {
		sig := &Signature{}
		sig.Ty = int32(r.u32())
		sig.Pubkey = r.bytes(int(r.u16()))
		sig.Signature = r.bytes(int(r.u16()))
		tx.Signature = sig
	}
	if r.err != nil || r.off != len(data) {
		return nil, ErrTxDecode
	}
	return tx, nil
}

// Hash 交易哈希,不含签名
func (tx *Transaction) Hash() []byte {
	return common.Sha256(tx.signBytes())
}

// Sign 交易签名
func (tx *Transaction) Sign(ty int32, priv crypto.PrivKey) {
	tx.Signature = nil
	data := tx.signBytes()
	pub := priv.PubKey()
	sign := priv.Sign(data)
	tx.Signature = &Signature{
		Ty:        ty,
		Pubkey:    pub.Bytes(),
		Signature: sign.Bytes(),
	}
}

// CheckSign 校验交易签名
func (tx *Transaction) CheckSign() bool {
	if tx.Signature == nil {
		return false
	}
	return CheckSign(tx.signBytes(), tx.Signature)
}

// CheckSign 用注册的签名插件校验数据签名
func CheckSign(data []byte, sign *Signature) bool {
	c, err := crypto.New(crypto.GetName(int(sign.Ty)))
	if err != nil {
		return false
	}
	pub, err := c.PubKeyFromBytes(sign.Pubkey)
	if err != nil {
		return false
	}
	s, err := c.SignatureFromBytes(sign.Signature)
	if err != nil {
		return false
	}
	return pub.VerifyBytes(data, s)
}

// From 签名者地址
func (tx *Transaction) From() string {
	if tx.Signature == nil {
		return ""
	}
	return address.PubKeyToAddr(tx.Signature.Pubkey)
}

// IsExpire 交易是否已过期,Expire 为 0 表示永不过期
func (tx *Transaction) IsExpire(blocktime int64) bool {
	if tx.Expire == 0 {
		return false
	}
	return tx.Expire <= blocktime
}

// ActionName 交易动作名
func (tx *Transaction) ActionName() string {
	if len(tx.Payload) < 1 {
		return "unknown"
	}
	return ActionName(int32(tx.Payload[0]))
}

func appendU16(buf []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(buf, b[:]...)
}

func appendU32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendU64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

//txReader 顺序读取,越界后置 err 并一直返回零值
type txReader struct {
	data []byte
	off  int
	err  error
}

func (r *txReader) take(n int) []byte {
	if r.err != nil || r.off+n > len(r.data) {
		r.err = ErrTxDecode
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *txReader) byte1() byte {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *txReader) bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

func (r *txReader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *txReader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *txReader) u64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}
