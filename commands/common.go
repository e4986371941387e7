// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands 提供 hongbao-cli 的命令实现
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hongbaochain/hongbao/common"
	"github.com/hongbaochain/hongbao/common/address"
	"github.com/hongbaochain/hongbao/common/crypto"
	"github.com/hongbaochain/hongbao/rpc/jsonclient"
	"github.com/hongbaochain/hongbao/types"
)

var coinUnit = decimal.New(types.Coin, 0)

// parseAmount 把十进制币值转成最小单位,最多8位小数
func parseAmount(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %v", s, err)
	}
	if d.Sign() < 0 {
		return 0, fmt.Errorf("negative amount %q", s)
	}
	base := d.Mul(coinUnit)
	v := base.IntPart()
	if !decimal.New(v, 0).Equal(base) {
		return 0, fmt.Errorf("amount %q has more than 8 decimal places", s)
	}
	return uint64(v), nil
}

// formatAmount 最小单位转十进制币值字符串
func formatAmount(v uint64) string {
	return decimal.New(int64(v), 0).Div(coinUnit).String()
}

// parseAmountList 解析逗号分隔的币值列表
func parseAmountList(s string) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]uint64, 0, len(parts))
	for _, p := range parts {
		v, err := parseAmount(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// loadPrivKey 从十六进制私钥恢复签名私钥与地址
func loadPrivKey(keyHex string, signType int) (crypto.PrivKey, string, error) {
	data, err := common.FromHex(keyHex)
	if err != nil {
		return nil, "", fmt.Errorf("invalid private key hex: %v", err)
	}
	c, err := crypto.New(crypto.GetName(signType))
	if err != nil {
		return nil, "", err
	}
	priv, err := c.PrivKeyFromBytes(data)
	if err != nil {
		return nil, "", err
	}
	addr := address.PubKeyToAddr(priv.PubKey().Bytes())
	return priv, addr, nil
}

func getSignType(cmd *cobra.Command) int {
	name, _ := cmd.Flags().GetString("signtype")
	ty := crypto.GetType(name)
	if ty <= 0 {
		fmt.Fprintln(os.Stderr, "unknown sign type", name, ", fallback to secp256k1")
		return types.SECP256K1
	}
	return ty
}

// sendTx 签名并提交交易,打印交易哈希
func sendTx(cmd *cobra.Command, tx *types.Transaction, keyHex string) {
	signType := getSignType(cmd)
	priv, _, err := loadPrivKey(keyHex, signType)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	tx.Sign(int32(signType), priv)
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	params := types.RawParm{Data: common.ToHex(tx.Encode())}
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Hongbao.SendTransaction", params, nil)
	ctx.RunWithoutMarshal()
}

func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("key", "k", "", "private key hex of the signer")
	cmd.MarkFlagRequired("key")
	cmd.Flags().String("signtype", "secp256k1", "sign type (secp256k1/ed25519)")
}
