// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ed25519 ed25519签名插件
package ed25519

import (
	"bytes"
	ed "crypto/ed25519"
	"errors"
	"fmt"

	"github.com/hongbaochain/hongbao/common/crypto"
)

//插件类型与名字
const (
	ID   = 2
	Name = "ed25519"
)

func init() {
	crypto.Register(Name, ID, &Driver{})
}

//Driver 驱动
type Driver struct{}

//GenKey 生成私钥
func (d Driver) GenKey() (crypto.PrivKey, error) {
	_, priv, err := ed.GenerateKey(crypto.CReader())
	if err != nil {
		return nil, err
	}
	var privKeyBytes [64]byte
	copy(privKeyBytes[:], priv)
	return PrivKeyEd25519(privKeyBytes), nil
}

//PrivKeyFromBytes 字节转私钥,接受32字节种子或64字节完整私钥
func (d Driver) PrivKeyFromBytes(b []byte) (crypto.PrivKey, error) {
	var privKeyBytes [64]byte
	switch len(b) {
	case ed.SeedSize:
		copy(privKeyBytes[:], ed.NewKeyFromSeed(b))
	case ed.PrivateKeySize:
		copy(privKeyBytes[:], b)
	default:
		return nil, errors.New("invalid priv key byte")
	}
	return PrivKeyEd25519(privKeyBytes), nil
}

//PubKeyFromBytes 字节转公钥
func (d Driver) PubKeyFromBytes(b []byte) (crypto.PubKey, error) {
	if len(b) != ed.PublicKeySize {
		return nil, errors.New("invalid pub key byte")
	}
	var pubKeyBytes [32]byte
	copy(pubKeyBytes[:], b)
	return PubKeyEd25519(pubKeyBytes), nil
}

//SignatureFromBytes 字节转签名
func (d Driver) SignatureFromBytes(b []byte) (crypto.Signature, error) {
	return SignatureEd25519(b), nil
}

//PrivKeyEd25519 私钥
type PrivKeyEd25519 [64]byte

//Bytes 私钥字节
func (privKey PrivKeyEd25519) Bytes() []byte {
	s := make([]byte, 64)
	copy(s, privKey[:])
	return s
}

//Sign 签名
func (privKey PrivKeyEd25519) Sign(msg []byte) crypto.Signature {
	return SignatureEd25519(ed.Sign(ed.PrivateKey(privKey[:]), msg))
}

//PubKey 导出公钥
func (privKey PrivKeyEd25519) PubKey() crypto.PubKey {
	var pubKey PubKeyEd25519
	copy(pubKey[:], privKey[32:])
	return pubKey
}

//Equals 私钥比较
func (privKey PrivKeyEd25519) Equals(other crypto.PrivKey) bool {
	if otherEd, ok := other.(PrivKeyEd25519); ok {
		return bytes.Equal(privKey[:], otherEd[:])
	}
	return false
}

//PubKeyEd25519 公钥
type PubKeyEd25519 [32]byte

//Bytes 公钥字节
func (pubKey PubKeyEd25519) Bytes() []byte {
	s := make([]byte, 32)
	copy(s, pubKey[:])
	return s
}

//VerifyBytes 验签
func (pubKey PubKeyEd25519) VerifyBytes(msg []byte, sig crypto.Signature) bool {
	sigEd, ok := sig.(SignatureEd25519)
	if !ok || len(sigEd) != ed.SignatureSize {
		return false
	}
	return ed.Verify(ed.PublicKey(pubKey[:]), msg, sigEd)
}

func (pubKey PubKeyEd25519) String() string {
	return fmt.Sprintf("PubKeyEd25519{%X}", pubKey[:])
}

//KeyString 公钥的hex表示
func (pubKey PubKeyEd25519) KeyString() string {
	return fmt.Sprintf("%X", pubKey[:])
}

//Equals 公钥比较
func (pubKey PubKeyEd25519) Equals(other crypto.PubKey) bool {
	if otherEd, ok := other.(PubKeyEd25519); ok {
		return bytes.Equal(pubKey[:], otherEd[:])
	}
	return false
}

//SignatureEd25519 签名
type SignatureEd25519 []byte

//Bytes 签名字节
func (sig SignatureEd25519) Bytes() []byte {
	s := make([]byte, len(sig))
	copy(s, sig[:])
	return s
}

//IsZero 是否为空
func (sig SignatureEd25519) IsZero() bool { return len(sig) == 0 }

func (sig SignatureEd25519) String() string {
	fingerprint := make([]byte, len(sig[:]))
	copy(fingerprint, sig[:])
	return fmt.Sprintf("/%X.../", fingerprint)
}

//Equals 签名比较
func (sig SignatureEd25519) Equals(other crypto.Signature) bool {
	if otherSig, ok := other.(SignatureEd25519); ok {
		return bytes.Equal(sig[:], otherSig[:])
	}
	return false
}
