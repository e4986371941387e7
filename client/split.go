// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package client 红包程序的链下协作方
//
// 随机拆分在这里生成而不是链上:链上执行是确定性的,任何链上"随机"
// 都会被未来的领取人预判,所以链上只校验结果,从不产生随机数
package client

import (
	"encoding/binary"
	"math"
	"sort"

	"github.com/hongbaochain/hongbao/common/crypto"
)

//randFloat 熵源随机数折算到 [0,1)
func randFloat() float64 {
	b := crypto.CRandBytes(8)
	return float64(binary.LittleEndian.Uint64(b)>>11) / float64(1<<53)
}

// GenerateRandomSplit 单位区间切点采样拆分总额
// 切点之间的区段向下取整,中间槽位不足1的补成1,最后一槽吸收误差保证
// 总和精确;极端切点下最后一槽向零饱和而不报错,链上会拒绝零金额槽位
func GenerateRandomSplit(total uint64, n int) []uint64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []uint64{total}
	}
	cuts := make([]float64, n-1)
	for i := range cuts {
		cuts[i] = randFloat()
	}
	sort.Float64s(cuts)

	ftotal := float64(total)
	amounts := make([]uint64, 0, n)
	prev := 0.0
	for _, cut := range cuts {
		raw := uint64(math.Floor(cut*ftotal)) - uint64(math.Floor(prev*ftotal))
		if raw < 1 {
			raw = 1
		}
		amounts = append(amounts, raw)
		prev = cut
	}
	used := uint64(math.Floor(prev * ftotal))
	if used > total {
		used = total
	}
	amounts = append(amounts, total-used)

	var sum uint64
	for _, amount := range amounts {
		sum += amount
	}
	if sum != total {
		i := len(amounts) - 1
		if sum < total {
			amounts[i] += total - sum
		} else if delta := sum - total; delta > amounts[i] {
			amounts[i] = 0
		} else {
			amounts[i] -= delta
		}
	}
	return amounts
}

// EvenSplit 均分,余数全部加到最后一槽,总和严格等于总额
func EvenSplit(total uint64, n int) []uint64 {
	if n <= 0 {
		return nil
	}
	per := total / uint64(n)
	amounts := make([]uint64, n)
	for i := range amounts {
		amounts[i] = per
	}
	amounts[n-1] = per + total%uint64(n)
	return amounts
}
