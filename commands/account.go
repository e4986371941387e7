// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hongbaochain/hongbao/common"
	"github.com/hongbaochain/hongbao/common/address"
	"github.com/hongbaochain/hongbao/common/crypto"
)

// AccountCmd 账户相关命令
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		NewAccountCmd(),
		BalanceCmd(),
	)
	return cmd
}

// NewAccountCmd 生成新账户密钥
func NewAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate a new key pair",
		Run:   newAccount,
	}
	cmd.Flags().String("signtype", "secp256k1", "sign type (secp256k1/ed25519)")
	return cmd
}

func newAccount(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("signtype")
	c, err := crypto.New(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	priv, err := c.GenKey()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	out := struct {
		Addr    string `json:"addr"`
		PrivKey string `json:"privKey"`
		PubKey  string `json:"pubKey"`
	}{
		Addr:    address.PubKeyToAddr(priv.PubKey().Bytes()),
		PrivKey: common.ToHex(priv.Bytes()),
		PubKey:  common.ToHex(priv.PubKey().Bytes()),
	}
	data, err := json.MarshalIndent(&out, "", "    ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}
