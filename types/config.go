// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"io/ioutil"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

//Config 节点配置,由toml配置文件解析得到
type Config struct {
	Title      string
	CoinSymbol string
	Log        *Log
	Store      *Store
	Exec       *Exec
	RPC        *RPC
	Metrics    *Metrics
}

//Log 日志配置
type Log struct {
	Loglevel        string
	LogConsoleLevel string
	//日志文件名,空表示只输出到控制台
	LogFile     string
	MaxFileSize uint32
	MaxBackups  uint32
	MaxAge      uint32
	LocalTime   bool
	Compress    bool
}

//Store 状态存储配置
type Store struct {
	//驱动名称:leveldb gobadgerdb memdb pegasus
	Driver  string
	DbPath  string
	DbCache int32
	//pegasus等远端KV的接入点
	Hosts []string
}

//Exec 执行器配置,管理员与程序身份均来自配置而非硬编码
type Exec struct {
	//执行器名称,程序地址由该名称派生
	Name string
	//手续费管理员地址,只有该地址可以提取金库手续费
	Admin string
	//创世账户,首次启动时写入初始余额
	Genesis []*GenesisAlloc
}

//GenesisAlloc 创世余额分配,Asset为空表示原生币
type GenesisAlloc struct {
	Addr   string
	Asset  string
	Amount int64
}

//RPC 对外json-rpc服务配置
type RPC struct {
	JrpcBindAddr      string
	Whitelist         []string
	JrpcFuncWhitelist []string
	JrpcFuncBlacklist []string
	JrpcUserName      string
	JrpcUserPasswd    string
	EnableCors        bool
	//单IP每秒请求上限,0表示不限制
	RateLimitPerIP int64
}

//Metrics 指标上报配置
type Metrics struct {
	EnableMetrics bool
	DataEmitMode  string
	//上报间隔,单位秒
	Duration  int64
	URL       string
	Database  string
	Username  string
	Password  string
	Namespace string
}

func readFile(path string) string {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func initCfgString(cfgstring string) (*Config, error) {
	var cfg Config
	if _, err := tml.Decode(cfgstring, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return &cfg, nil
}

//InitCfg 初始化配置
func InitCfg(path string) *Config {
	return InitCfgString(readFile(path))
}

//InitCfgString 从字符串初始化配置,缺失的段用默认值补齐
func InitCfgString(cfgstring string) *Config {
	cfg, err := initCfgString(cfgstring)
	if err != nil {
		panic(err)
	}
	cfg.fillDefaults()
	return cfg
}

func (c *Config) fillDefaults() {
	def := defaultConfig()
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.CoinSymbol == "" {
		c.CoinSymbol = def.CoinSymbol
	}
	if c.Log == nil {
		c.Log = def.Log
	}
	if c.Store == nil {
		c.Store = def.Store
	}
	if c.Exec == nil {
		c.Exec = def.Exec
	}
	if c.Exec.Name == "" {
		c.Exec.Name = HongbaoX
	}
	if c.RPC == nil {
		c.RPC = def.RPC
	}
	if c.Metrics == nil {
		c.Metrics = def.Metrics
	}
}
