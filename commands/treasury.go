// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hongbaochain/hongbao/client"
	"github.com/hongbaochain/hongbao/rpc/jsonclient"
	"github.com/hongbaochain/hongbao/types"
)

// TreasuryCmd 手续费金库命令
func TreasuryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treasury",
		Short: "Fee treasury management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		TreasuryInitCmd(),
		TreasuryWithdrawCmd(),
		TreasuryShowCmd(),
	)
	return cmd
}

// TreasuryInitCmd 初始化金库
func TreasuryInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the fee treasury",
		Run:   initTreasury,
	}
	addKeyFlags(cmd)
	cmd.Flags().StringP("symbol", "s", "", "token symbol, empty for native coin")
	return cmd
}

func initTreasury(cmd *cobra.Command, args []string) {
	keyHex, _ := cmd.Flags().GetString("key")
	symbol, _ := cmd.Flags().GetString("symbol")

	_, payer, err := loadPrivKey(keyHex, getSignType(cmd))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	builder := client.NewTxBuilder(types.HongbaoX)
	tx, err := builder.BuildInitTreasury(payer, symbol)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sendTx(cmd, tx, keyHex)
}

// TreasuryWithdrawCmd 提取累计手续费,仅管理员可用
func TreasuryWithdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw collected fees (admin only)",
		Run:   withdrawFees,
	}
	addKeyFlags(cmd)
	cmd.Flags().StringP("symbol", "s", "", "token symbol, empty for native coin")
	cmd.Flags().StringP("amount", "a", "0", "amount to withdraw, 0 for all available")
	return cmd
}

func withdrawFees(cmd *cobra.Command, args []string) {
	keyHex, _ := cmd.Flags().GetString("key")
	symbol, _ := cmd.Flags().GetString("symbol")
	amountStr, _ := cmd.Flags().GetString("amount")

	amount, err := parseAmount(amountStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	_, admin, err := loadPrivKey(keyHex, getSignType(cmd))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	builder := client.NewTxBuilder(types.HongbaoX)
	tx, err := builder.BuildWithdrawFees(admin, symbol, amount)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sendTx(cmd, tx, keyHex)
}

// TreasuryShowCmd 查询金库
func TreasuryShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show treasury state",
		Run:   showTreasury,
	}
	cmd.Flags().StringP("symbol", "s", "", "token symbol, empty for native coin")
	return cmd
}

func showTreasury(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	symbol, _ := cmd.Flags().GetString("symbol")

	params := types.ReqTreasury{TokenType: types.AssetNative}
	if symbol != "" {
		params.TokenType = types.AssetFungible
		params.Asset = symbol
	}
	var res types.ReplyTreasury
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Hongbao.GetTreasury", params, &res)
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		reply, ok := res.(*types.ReplyTreasury)
		if !ok {
			return res, nil
		}
		return struct {
			*types.ReplyTreasury
			Collected string `json:"collected"`
		}{reply, formatAmount(reply.FeesCollected)}, nil
	})
	ctx.Run()
}
