// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDeterministic(t *testing.T) {
	d := NewHashDeriver("hongbao")
	owner := make([]byte, 32)
	owner[0] = 1
	nonce := make([]byte, 8)
	binary.LittleEndian.PutUint64(nonce, 42)

	addr, bump, err := d.FindBump([]byte("redpacket"), owner, nonce)
	require.NoError(t, err)
	assert.NoError(t, CheckAddress(addr))

	//同一组种子重建地址必须一致
	again, err := d.Derive([]byte("redpacket"), owner, nonce, bump)
	require.NoError(t, err)
	assert.Equal(t, addr, again)

	//再次搜索走缓存路径,结果不变
	addr2, bump2, err := d.FindBump([]byte("redpacket"), owner, nonce)
	require.NoError(t, err)
	assert.Equal(t, addr, addr2)
	assert.Equal(t, bump, bump2)
}

func TestDeriveSeparation(t *testing.T) {
	d := NewHashDeriver("hongbao")
	owner := make([]byte, 32)
	owner[0] = 1
	nonce := make([]byte, 8)

	base, err := d.Derive([]byte("redpacket"), owner, nonce, 255)
	if err != nil {
		t.Skip("bump 255 unusable for this seed set")
	}

	//tag、owner、nonce、bump、程序身份任一变化都必须改变地址
	other, err := d.Derive([]byte("vault"), owner, nonce, 255)
	if err == nil {
		assert.NotEqual(t, base, other)
	}
	owner2 := make([]byte, 32)
	owner2[0] = 2
	other, err = d.Derive([]byte("redpacket"), owner2, nonce, 255)
	if err == nil {
		assert.NotEqual(t, base, other)
	}
	nonce2 := []byte{1, 0, 0, 0, 0, 0, 0, 0}
	other, err = d.Derive([]byte("redpacket"), owner, nonce2, 255)
	if err == nil {
		assert.NotEqual(t, base, other)
	}
	other, err = d.Derive([]byte("redpacket"), owner, nonce, 254)
	if err == nil {
		assert.NotEqual(t, base, other)
	}
	other, err = NewHashDeriver("token").Derive([]byte("redpacket"), owner, nonce, 255)
	if err == nil {
		assert.NotEqual(t, base, other)
	}
}

func TestFindBumpScansDown(t *testing.T) {
	d := NewHashDeriver("hongbao")
	owner := make([]byte, 32)
	nonce := make([]byte, 8)

	addr, bump, err := d.FindBump([]byte("treasury"), owner, nonce)
	require.NoError(t, err)
	//更高的bump要么不可用,要么不会成为搜索结果以外的答案
	for i := 255; i > int(bump); i-- {
		_, err := d.Derive([]byte("treasury"), owner, nonce, byte(i))
		assert.Equal(t, ErrUnusableBump, err)
	}
	again, err := d.Derive([]byte("treasury"), owner, nonce, bump)
	require.NoError(t, err)
	assert.Equal(t, addr, again)
}
