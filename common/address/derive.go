// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"errors"

	lru "github.com/hashicorp/golang-lru"
	"github.com/hongbaochain/hongbao/common"
)

// Deriver 程序派生地址后端
// 同一组 tag/owner/nonce/bump 必须始终给出同一地址,且无私钥能签出该地址
type Deriver interface {
	Derive(tag, owner, nonce []byte, bump byte) (string, error)
	FindBump(tag, owner, nonce []byte) (string, byte, error)
}

//ErrUnusableBump 该bump下无可用地址
var ErrUnusableBump = errors.New("bump yields no usable address")

var deriveMarker = []byte("program derived address")

// HashDeriver 以程序身份为盐的单向散列派生
type HashDeriver struct {
	program []byte
	cache   *lru.Cache
}

// NewHashDeriver 创建派生后端,program 为程序身份
func NewHashDeriver(program string) *HashDeriver {
	cache, _ := lru.New(10240)
	return &HashDeriver{program: []byte(program), cache: cache}
}

// Derive 按给定bump重建地址,候选被保留时返回 ErrUnusableBump
func (d *HashDeriver) Derive(tag, owner, nonce []byte, bump byte) (string, error) {
	buf := make([]byte, 0, len(deriveMarker)+len(d.program)+len(tag)+len(owner)+len(nonce)+1)
	buf = append(buf, deriveMarker...)
	buf = append(buf, d.program...)
	buf = append(buf, tag...)
	buf = append(buf, owner...)
	buf = append(buf, nonce...)
	buf = append(buf, bump)
	key := string(buf)
	if value, ok := d.cache.Get(key); ok {
		if addr, ok := value.(string); ok {
			return addr, nil
		}
		return "", ErrUnusableBump
	}
	hash := common.Sha256(buf)
	// 首字节0xff的候选视为保留,换bump重试,保证bump字节有判别意义
	if hash[0] == 0xff {
		d.cache.Add(key, ErrUnusableBump)
		return "", ErrUnusableBump
	}
	addr := PubKeyToAddress(hash).String()
	d.cache.Add(key, addr)
	return addr, nil
}

// FindBump 从255向下搜索首个可用bump
func (d *HashDeriver) FindBump(tag, owner, nonce []byte) (string, byte, error) {
	for i := 255; i >= 0; i-- {
		addr, err := d.Derive(tag, owner, nonce, byte(i))
		if err == nil {
			return addr, byte(i), nil
		}
	}
	return "", 0, errors.New("no usable bump for seeds")
}
