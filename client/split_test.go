// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvenSplit(t *testing.T) {
	assert.Equal(t, []uint64{333333, 333333, 333334}, EvenSplit(1000000, 3))
	assert.Equal(t, []uint64{100}, EvenSplit(100, 1))
	assert.Equal(t, []uint64{2, 2, 3}, EvenSplit(7, 3))
	assert.Equal(t, []uint64{0, 0, 2}, EvenSplit(2, 3))
	assert.Nil(t, EvenSplit(100, 0))
}

func TestGenerateRandomSplit(t *testing.T) {
	for i := 0; i < 200; i++ {
		total := uint64(1000000)
		amounts := GenerateRandomSplit(total, 5)
		require.Len(t, amounts, 5)
		var sum uint64
		//最后一槽之外的槽位至少一个最小单位
		for _, amount := range amounts[:4] {
			assert.NotZero(t, amount)
			sum += amount
		}
		sum += amounts[4]
		assert.Equal(t, total, sum)
	}
}

func TestGenerateRandomSplitEdges(t *testing.T) {
	assert.Nil(t, GenerateRandomSplit(100, 0))
	assert.Equal(t, []uint64{100}, GenerateRandomSplit(100, 1))

	//总额小到每槽摊不到1,总和仍然精确
	for i := 0; i < 50; i++ {
		amounts := GenerateRandomSplit(3, 3)
		var sum uint64
		for _, amount := range amounts {
			sum += amount
		}
		assert.Equal(t, uint64(3), sum)
	}

	//大额下浮点换算不允许损失精度
	for i := 0; i < 50; i++ {
		total := uint64(1) << 50
		amounts := GenerateRandomSplit(total, 20)
		var sum uint64
		for _, amount := range amounts {
			sum += amount
		}
		assert.Equal(t, total, sum)
	}
}

func TestNewPacketID(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		id := NewPacketID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
