// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hongbaochain/hongbao/commands"
	_ "github.com/hongbaochain/hongbao/common/crypto/ed25519"
	_ "github.com/hongbaochain/hongbao/common/crypto/secp256k1"
	"github.com/hongbaochain/hongbao/common/log"
)

var rootCmd = &cobra.Command{
	Use:   "hongbao-cli",
	Short: "hongbao client tools",
}

func init() {
	rootCmd.PersistentFlags().String("rpc_laddr", "http://localhost:8801", "http url")

	rootCmd.AddCommand(
		commands.AccountCmd(),
		commands.HongbaoCmd(),
		commands.TreasuryCmd(),
		commands.TxCmd(),
	)
}

func main() {
	log.SetLogLevel("error")
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
