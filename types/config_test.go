// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCfgString(t *testing.T) {
	cfg := InitCfgString(DefaultCfgstring)
	require.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.Title)
	assert.NotEmpty(t, cfg.CoinSymbol)
	require.NotNil(t, cfg.Exec)
	assert.Equal(t, HongbaoX, cfg.Exec.Name)
	require.NotNil(t, cfg.Store)
	assert.NotEmpty(t, cfg.Store.Driver)
	require.NotNil(t, cfg.RPC)
	assert.NotEmpty(t, cfg.RPC.JrpcBindAddr)
	require.NotNil(t, cfg.Log)
	require.NotNil(t, cfg.Metrics)
}

func TestInitCfgFillDefaults(t *testing.T) {
	//只给执行器段,其余段补默认值
	cfg := InitCfgString(`
[exec]
admin = "14KEKbYtKKQm4wMthSK9J4La4nAiidGozt"
`)
	require.NotNil(t, cfg.Exec)
	assert.Equal(t, "14KEKbYtKKQm4wMthSK9J4La4nAiidGozt", cfg.Exec.Admin)
	//执行器名称缺省为程序名
	assert.Equal(t, HongbaoX, cfg.Exec.Name)
	require.NotNil(t, cfg.Store)
	require.NotNil(t, cfg.RPC)
}

func TestInitCfgBadToml(t *testing.T) {
	assert.Panics(t, func() {
		InitCfgString("not = [valid")
	})
}
