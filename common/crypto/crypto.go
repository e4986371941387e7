// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crypto 签名接口定义与插件注册
package crypto

import (
	"fmt"
	"sync"
)

//PrivKey 私钥
type PrivKey interface {
	Bytes() []byte
	Sign(msg []byte) Signature
	PubKey() PubKey
	Equals(PrivKey) bool
}

//Signature 签名
type Signature interface {
	Bytes() []byte
	IsZero() bool
	String() string
	Equals(Signature) bool
}

//PubKey 公钥
type PubKey interface {
	Bytes() []byte
	KeyString() string
	VerifyBytes(msg []byte, sig Signature) bool
	Equals(PubKey) bool
}

//Crypto 签名插件
type Crypto interface {
	GenKey() (PrivKey, error)
	SignatureFromBytes([]byte) (Signature, error)
	PrivKeyFromBytes([]byte) (PrivKey, error)
	PubKeyFromBytes([]byte) (PubKey, error)
}

//签名插件名
const (
	SignNameSecp256k1 = "secp256k1"
	SignNameEd25519   = "ed25519"
)

type driverInfo struct {
	ty     int
	driver Crypto
}

var (
	driverMutex sync.Mutex
	drivers     = make(map[string]*driverInfo)
)

//Register 注册签名插件,名字与类型编号都不允许重复
func Register(name string, ty int, driver Crypto) {
	driverMutex.Lock()
	defer driverMutex.Unlock()
	if driver == nil {
		panic("crypto: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("crypto: Register called twice for driver " + name)
	}
	for n, info := range drivers {
		if info.ty == ty {
			panic(fmt.Sprintf("crypto: Register type %d already used by %s", ty, n))
		}
	}
	drivers[name] = &driverInfo{ty: ty, driver: driver}
}

//New 按名字取签名插件
func New(name string) (Crypto, error) {
	driverMutex.Lock()
	defer driverMutex.Unlock()
	info, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf("unknown driver %q", name)
	}
	return info.driver, nil
}

//GetName 类型编号对应的插件名
func GetName(ty int) string {
	driverMutex.Lock()
	defer driverMutex.Unlock()
	for name, info := range drivers {
		if info.ty == ty {
			return name
		}
	}
	return "unknown"
}

//GetType 插件名对应的类型编号
func GetType(name string) int {
	driverMutex.Lock()
	defer driverMutex.Unlock()
	if info, ok := drivers[name]; ok {
		return info.ty
	}
	return 0
}
