// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package address 地址编码与程序派生地址
package address

import (
	"bytes"
	"encoding/hex"
	"errors"

	"github.com/decred/base58"
	lru "github.com/hashicorp/golang-lru"
	"github.com/hongbaochain/hongbao/common"
)

var addrSeed = []byte("address seed bytes for public key")

var (
	addressCache      *lru.Cache
	checkAddressCache *lru.Cache
)

//MaxExecNameLength 执行器名最大长度
const MaxExecNameLength = 100

//IdentityLen 记录中身份字段的定长,20字节地址散列左对齐补零
const IdentityLen = 32

func init() {
	addressCache, _ = lru.New(10240)
	checkAddressCache, _ = lru.New(10240)
}

//Address 地址
type Address struct {
	Version  byte
	Hash160  [20]byte
	Checksum []byte
	Pubkey   []byte
	Enc58str string
}

func (a *Address) String() string {
	if a.Enc58str == "" {
		var ad [25]byte
		ad[0] = a.Version
		copy(ad[1:21], a.Hash160[:])
		if a.Checksum == nil {
			sh := common.Sha2Sum(ad[0:21])
			a.Checksum = make([]byte, 4)
			copy(a.Checksum, sh[:4])
		}
		copy(ad[21:25], a.Checksum[:])
		a.Enc58str = base58.Encode(ad[:])
	}
	return a.Enc58str
}

//PubKeyToAddress 公钥转为地址
func PubKeyToAddress(in []byte) *Address {
	a := new(Address)
	a.Pubkey = make([]byte, len(in))
	copy(a.Pubkey[:], in[:])
	a.Version = 0
	a.Hash160 = common.Rimp160AfterSha256(in)
	return a
}

//PubKeyToAddr 公钥转为地址串
func PubKeyToAddr(in []byte) string {
	return PubKeyToAddress(in).String()
}

//ExecAddress 执行器名对应的合约地址,计算量有点大,做一次cache
func ExecAddress(name string) string {
	if value, ok := addressCache.Get(name); ok {
		return value.(string)
	}
	addr := PubKeyToAddress(execPubkey(name)).String()
	addressCache.Add(name, addr)
	return addr
}

func execPubkey(name string) []byte {
	if len(name) > MaxExecNameLength {
		panic("name too long")
	}
	var bname [200]byte
	buf := append(bname[:0], addrSeed...)
	buf = append(buf, []byte(name)...)
	hash := common.Sha2Sum(buf)
	return hash[:]
}

//CheckAddress 检查地址合法性
func CheckAddress(addr string) (e error) {
	if value, ok := checkAddressCache.Get(addr); ok {
		if value == nil {
			return nil
		}
		return value.(error)
	}
	e = checkAddress(addr)
	checkAddressCache.Add(addr, e)
	return
}

func checkAddress(addr string) error {
	dec := base58.Decode(addr)
	if dec == nil {
		return errors.New("Cannot decode b58 string '" + addr + "'")
	}
	if len(dec) < 25 {
		return errors.New("Address too short " + hex.EncodeToString(dec))
	}
	if len(dec) == 25 {
		sh := common.Sha2Sum(dec[0:21])
		if !bytes.Equal(sh[:4], dec[21:25]) {
			return errors.New("Address Checksum error")
		}
	}
	return nil
}

//NewAddrFromString 地址串解码
func NewAddrFromString(hs string) (a *Address, e error) {
	dec := base58.Decode(hs)
	if dec == nil {
		e = errors.New("Cannot decode b58 string '" + hs + "'")
		return
	}
	if len(dec) < 25 {
		e = errors.New("Address too short " + hex.EncodeToString(dec))
		return
	}
	if len(dec) == 25 {
		sh := common.Sha2Sum(dec[0:21])
		if !bytes.Equal(sh[:4], dec[21:25]) {
			e = errors.New("Address Checksum error")
		} else {
			a = new(Address)
			a.Version = dec[0]
			copy(a.Hash160[:], dec[1:21])
			a.Checksum = make([]byte, 4)
			copy(a.Checksum, dec[21:25])
			a.Enc58str = hs
		}
	}
	return
}

//ToIdentity 地址串转为记录中的定长身份,20字节散列左对齐补零
func ToIdentity(addr string) ([]byte, error) {
	a, err := NewAddrFromString(addr)
	if err != nil {
		return nil, err
	}
	id := make([]byte, IdentityLen)
	copy(id, a.Hash160[:])
	return id, nil
}

//FromIdentity 定长身份还原为地址串
func FromIdentity(id []byte) (string, error) {
	if len(id) != IdentityLen {
		return "", errors.New("invalid identity length")
	}
	a := new(Address)
	a.Version = 0
	copy(a.Hash160[:], id[:20])
	return a.String(), nil
}
