// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 按配置把执行统计上报到外部时序库
package metrics

import (
	"time"

	log15 "github.com/inconshreveable/log15"
	gometrics "github.com/rcrowley/go-metrics"

	"github.com/hongbaochain/hongbao/metrics/influxdb"
	"github.com/hongbaochain/hongbao/types"
)

var log = log15.New("module", "metrics")

//StartMetrics 根据配置文件相关参数启动上报
func StartMetrics(cfg *types.Config) {
	m := cfg.Metrics
	if m == nil || !m.EnableMetrics {
		log.Info("Metrics data is not enabled to emit")
		return
	}
	switch m.DataEmitMode {
	case "influxdb":
		log.Info("StartMetrics with influxdb", "duration", m.Duration, "url", m.URL,
			"database", m.Database, "namespace", m.Namespace)
		var tags map[string]string
		if m.Namespace != "" {
			tags = map[string]string{"namespace": m.Namespace}
		}
		go influxdb.InfluxDB(gometrics.DefaultRegistry,
			time.Duration(m.Duration)*time.Second,
			m.URL,
			m.Database,
			m.Username,
			m.Password,
			tags)
	default:
		log.Error("StartMetrics", "The dataEmitMode set is not supported now ", m.DataEmitMode)
	}
}
