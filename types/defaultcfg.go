// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

//DefaultCfgstring 默认配置,测试和未配置项回填都用它
var DefaultCfgstring = `
Title="hongbao"
CoinSymbol="hbc"

[log]
loglevel="info"
logConsoleLevel="info"
logFile="logs/hongbao.log"
maxFileSize=300
maxBackups=100
maxAge=28
localTime=true
compress=true

[store]
driver="leveldb"
dbPath="datadir"
dbCache=64

[exec]
name="hongbao"
admin="14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"

[[exec.genesis]]
addr="14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"
amount=100000000000000

[rpc]
jrpcBindAddr="localhost:8801"
whitelist=["127.0.0.1"]
jrpcFuncWhitelist=["*"]
enableCors=false
rateLimitPerIP=0

[metrics]
enableMetrics=false
dataEmitMode="influxdb"
duration=10
url="http://127.0.0.1:8086"
database="hongbaometrics"
namespace="hongbao"
`

func defaultConfig() *Config {
	cfg, err := initCfgString(DefaultCfgstring)
	if err != nil {
		panic(err)
	}
	return cfg
}
