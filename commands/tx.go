// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/spf13/cobra"

	"github.com/hongbaochain/hongbao/rpc/jsonclient"
	"github.com/hongbaochain/hongbao/types"
)

// TxCmd 交易相关命令
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		QueryTxCmd(),
		SendRawTxCmd(),
	)
	return cmd
}

// QueryTxCmd 按哈希查询交易与回执
func QueryTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query_hash",
		Short: "Query transaction by hash",
		Run:   queryTx,
	}
	cmd.Flags().StringP("hash", "x", "", "transaction hash")
	cmd.MarkFlagRequired("hash")
	return cmd
}

func queryTx(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	hash, _ := cmd.Flags().GetString("hash")

	params := types.ReplyHash{Hash: hash}
	var res types.TransactionDetail
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Hongbao.GetTx", params, &res)
	ctx.Run()
}

// SendRawTxCmd 提交已签名的十六进制交易
func SendRawTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a signed raw transaction (hex)",
		Run:   sendRawTx,
	}
	cmd.Flags().StringP("data", "d", "", "signed transaction hex")
	cmd.MarkFlagRequired("data")
	return cmd
}

func sendRawTx(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	data, _ := cmd.Flags().GetString("data")

	params := types.RawParm{Data: data}
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Hongbao.SendTransaction", params, nil)
	ctx.RunWithoutMarshal()
}
