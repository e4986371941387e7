// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/inconshreveable/log15"

	_ "github.com/hongbaochain/hongbao/common/crypto/ed25519"
	_ "github.com/hongbaochain/hongbao/common/crypto/secp256k1"
	"github.com/hongbaochain/hongbao/common/limits"
	clog "github.com/hongbaochain/hongbao/common/log"
	dbm "github.com/hongbaochain/hongbao/common/db"
	"github.com/hongbaochain/hongbao/executor"
	"github.com/hongbaochain/hongbao/metrics"
	"github.com/hongbaochain/hongbao/rpc"
	"github.com/hongbaochain/hongbao/types"
)

var (
	configPath = flag.String("f", "hongbao.toml", "configfile")
)

func main() {
	flag.Parse()
	if err := limits.SetLimits(); err != nil {
		panic(err)
	}
	cfg := types.InitCfg(*configPath)
	clog.SetFileLog(cfg.Log)
	mlog := log.New("module", "main")
	mlog.Info("loading state db", "driver", cfg.Store.Driver, "path", cfg.Store.DbPath)

	kvdb := dbm.NewDB("state", cfg.Store.Driver, cfg.Store.DbPath, int(cfg.Store.DbCache))
	exec, err := executor.NewExecutor(cfg, kvdb)
	if err != nil {
		mlog.Error("init executor", "err", err)
		os.Exit(1)
	}

	japi := rpc.NewJSONRPCServer(cfg.RPC, exec)
	if japi == nil {
		mlog.Error("init jrpc server failed")
		os.Exit(1)
	}
	if _, err := japi.Listen(); err != nil {
		mlog.Error("jrpc listen", "err", err)
		os.Exit(1)
	}

	metrics.StartMetrics(cfg)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	fmt.Println("quit by signal:", sig)

	japi.Close()
	exec.Close()
	mlog.Info("hongbao closed")
}
