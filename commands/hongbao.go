// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/qianlnk/pgbar"
	"github.com/spf13/cobra"

	"github.com/hongbaochain/hongbao/client"
	"github.com/hongbaochain/hongbao/rpc/jsonclient"
	"github.com/hongbaochain/hongbao/types"
)

// HongbaoCmd 红包相关命令
func HongbaoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hongbao",
		Short: "Red packet management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		CreateCmd(),
		ClaimCmd(),
		CloseCmd(),
		ShowCmd(),
		StatusCmd(),
		ListCmd(),
		ScanCmd(),
	)
	return cmd
}

// CreateCmd 创建红包
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a red packet",
		Run:   createPacket,
	}
	addKeyFlags(cmd)
	cmd.Flags().StringP("amount", "a", "", "total amount, at most 8 decimal places")
	cmd.MarkFlagRequired("amount")
	cmd.Flags().Int32P("num", "n", 1, "number of recipients, 1-20")
	cmd.Flags().StringP("mode", "m", "even", "split mode (even/random)")
	cmd.Flags().Int64P("expire", "e", 86400, "lifetime in seconds from now")
	cmd.Flags().StringP("symbol", "s", "", "token symbol, empty for native coin")
	cmd.Flags().String("amounts", "", "per-slot amounts for random mode, comma separated (generated when empty)")
	return cmd
}

func createPacket(cmd *cobra.Command, args []string) {
	keyHex, _ := cmd.Flags().GetString("key")
	amountStr, _ := cmd.Flags().GetString("amount")
	num, _ := cmd.Flags().GetInt32("num")
	mode, _ := cmd.Flags().GetString("mode")
	expire, _ := cmd.Flags().GetInt64("expire")
	symbol, _ := cmd.Flags().GetString("symbol")
	amountsStr, _ := cmd.Flags().GetString("amounts")

	total, err := parseAmount(amountStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	var splitMode byte
	switch mode {
	case "even":
		splitMode = types.SplitEven
	case "random":
		splitMode = types.SplitRandom
	default:
		fmt.Fprintln(os.Stderr, "unknown split mode", mode)
		return
	}
	amounts, err := parseAmountList(amountsStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	_, creator, err := loadPrivKey(keyHex, getSignType(cmd))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	builder := client.NewTxBuilder(types.HongbaoX)
	id := client.NewPacketID()
	expiresAt := time.Now().Unix() + expire
	tx, err := builder.BuildCreate(creator, symbol, id, total, byte(num), splitMode, expiresAt, amounts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println("packet id:", id)
	sendTx(cmd, tx, keyHex)
}

// ClaimCmd 领取红包
func ClaimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Claim one slot from a red packet",
		Run:   claimPacket,
	}
	addKeyFlags(cmd)
	addPacketFlags(cmd)
	return cmd
}

func claimPacket(cmd *cobra.Command, args []string) {
	keyHex, _ := cmd.Flags().GetString("key")
	creator, _ := cmd.Flags().GetString("creator")
	id, _ := cmd.Flags().GetUint64("id")
	symbol, _ := cmd.Flags().GetString("symbol")

	_, claimer, err := loadPrivKey(keyHex, getSignType(cmd))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	builder := client.NewTxBuilder(types.HongbaoX)
	tx, err := builder.BuildClaim(claimer, creator, id, symbol)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sendTx(cmd, tx, keyHex)
}

// CloseCmd 关闭红包并取回余额
func CloseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close a red packet and reclaim the remainder",
		Run:   closePacket,
	}
	addKeyFlags(cmd)
	cmd.Flags().Uint64P("id", "i", 0, "packet id")
	cmd.MarkFlagRequired("id")
	cmd.Flags().StringP("symbol", "s", "", "token symbol, empty for native coin")
	return cmd
}

func closePacket(cmd *cobra.Command, args []string) {
	keyHex, _ := cmd.Flags().GetString("key")
	id, _ := cmd.Flags().GetUint64("id")
	symbol, _ := cmd.Flags().GetString("symbol")

	_, creator, err := loadPrivKey(keyHex, getSignType(cmd))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	builder := client.NewTxBuilder(types.HongbaoX)
	tx, err := builder.BuildClose(creator, id, symbol)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sendTx(cmd, tx, keyHex)
}

func addPacketFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("creator", "c", "", "creator address")
	cmd.MarkFlagRequired("creator")
	cmd.Flags().Uint64P("id", "i", 0, "packet id")
	cmd.MarkFlagRequired("id")
	cmd.Flags().StringP("symbol", "s", "", "token symbol, empty for native coin")
}

// ShowCmd 查询红包详情
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show red packet detail",
		Run:   showPacket,
	}
	cmd.Flags().StringP("creator", "c", "", "creator address")
	cmd.MarkFlagRequired("creator")
	cmd.Flags().Uint64P("id", "i", 0, "packet id")
	cmd.MarkFlagRequired("id")
	return cmd
}

func showPacket(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	creator, _ := cmd.Flags().GetString("creator")
	id, _ := cmd.Flags().GetUint64("id")

	params := types.ReqRedPacket{Creator: creator, ID: id}
	var res types.ReplyRedPacket
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Hongbao.GetPacket", params, &res)
	ctx.SetResultCb(parsePacketRes)
	ctx.Run()
}

func parsePacketRes(res interface{}) (interface{}, error) {
	reply, ok := res.(*types.ReplyRedPacket)
	if !ok {
		return res, nil
	}
	result := struct {
		*types.ReplyRedPacket
		Total     string   `json:"total"`
		Left      string   `json:"left"`
		Slots     []string `json:"slots"`
		ExpiresAt string   `json:"expires"`
	}{
		ReplyRedPacket: reply,
		Total:          formatAmount(reply.TotalAmount),
		Left:           formatAmount(reply.Remaining),
		ExpiresAt:      time.Unix(reply.ExpiresAt, 0).Format(time.RFC3339),
	}
	for _, a := range reply.Amounts {
		result.Slots = append(result.Slots, formatAmount(a))
	}
	return result, nil
}

// StatusCmd 查询红包状态摘要
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show red packet status",
		Run:   showStatus,
	}
	cmd.Flags().StringP("creator", "c", "", "creator address")
	cmd.MarkFlagRequired("creator")
	cmd.Flags().Uint64P("id", "i", 0, "packet id")
	cmd.MarkFlagRequired("id")
	return cmd
}

func showStatus(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	creator, _ := cmd.Flags().GetString("creator")
	id, _ := cmd.Flags().GetUint64("id")

	params := types.ReqRedPacket{Creator: creator, ID: id}
	var res types.ReplyStatus
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Hongbao.GetStatus", params, &res)
	ctx.Run()
}

// ListCmd 按创建者列出红包
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List red packets by creator",
		Run:   listPackets,
	}
	cmd.Flags().StringP("creator", "c", "", "creator address")
	cmd.MarkFlagRequired("creator")
	cmd.Flags().Int32P("count", "n", 10, "max packets to return")
	return cmd
}

func listPackets(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	creator, _ := cmd.Flags().GetString("creator")
	count, _ := cmd.Flags().GetInt32("count")

	params := types.ReqList{Creator: creator, Count: count}
	var res types.ReplyRedPacketList
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Hongbao.ListPackets", params, &res)
	ctx.Run()
}

// ScanCmd 扫描创建者的全部红包并汇总状态
func ScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan all packets of a creator and summarize status",
		Run:   scanPackets,
	}
	cmd.Flags().StringP("creator", "c", "", "creator address")
	cmd.MarkFlagRequired("creator")
	cmd.Flags().Int32P("count", "n", 100, "max packets to scan")
	return cmd
}

func scanPackets(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	creator, _ := cmd.Flags().GetString("creator")
	count, _ := cmd.Flags().GetInt32("count")

	cli, err := client.NewClient(rpcLaddr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	list, err := cli.ListPackets(creator, count)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if len(list.Packets) == 0 {
		fmt.Println("no packets found")
		return
	}
	pgbar.Println("scanning packets")
	bar := pgbar.NewBar(0, "scan", len(list.Packets))
	stats := make(map[string]int)
	var locked uint64
	for _, p := range list.Packets {
		status, err := cli.GetStatus(creator, p.ID)
		if err == nil {
			stats[status.Status]++
			locked += status.Remaining
		}
		bar.Add(1)
	}
	fmt.Println()
	for status, n := range stats {
		fmt.Printf("%-14s %d\n", status, n)
	}
	fmt.Println("unclaimed total:", formatAmount(locked))
}

// BalanceCmd 余额查询
func BalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Query balance of an address",
		Run:   showBalance,
	}
	cmd.Flags().StringP("addr", "a", "", "account address")
	cmd.MarkFlagRequired("addr")
	cmd.Flags().StringP("symbol", "s", "", "token symbol, empty for native coin")
	return cmd
}

func showBalance(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	addr, _ := cmd.Flags().GetString("addr")
	symbol, _ := cmd.Flags().GetString("symbol")

	params := types.ReqBalance{Addr: addr, Asset: symbol}
	var res types.Account
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "Hongbao.GetBalance", params, &res)
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		acc, ok := res.(*types.Account)
		if !ok {
			return res, nil
		}
		return struct {
			Addr    string `json:"addr"`
			Balance string `json:"balance"`
			Frozen  string `json:"frozen"`
		}{acc.Addr, formatAmount(uint64(acc.Balance)), formatAmount(uint64(acc.Frozen))}, nil
	})
	ctx.Run()
}
