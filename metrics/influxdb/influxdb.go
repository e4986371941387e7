// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package influxdb 周期性把 go-metrics 注册表刷给 influxdb
package influxdb

import (
	"fmt"
	uurl "net/url"
	"time"

	client "github.com/influxdata/influxdb/client/v2"
	log15 "github.com/inconshreveable/log15"
	metrics "github.com/rcrowley/go-metrics"
)

var log = log15.New("module", "metrics.influxdb")

type reporter struct {
	reg      metrics.Registry
	interval time.Duration

	url      string
	database string
	username string
	password string
	tags     map[string]string

	client client.Client
}

// InfluxDB 周期上报,阻塞直到出错,通常以 goroutine 运行
func InfluxDB(r metrics.Registry, d time.Duration, url, database, username, password string, tags map[string]string) {
	if _, err := uurl.Parse(url); err != nil {
		log.Error("InfluxDB", "unable to parse url", err)
		return
	}
	rep := &reporter{
		reg:      r,
		interval: d,
		url:      url,
		database: database,
		username: username,
		password: password,
		tags:     tags,
	}
	if err := rep.makeClient(); err != nil {
		log.Error("InfluxDB", "unable to make client", err)
		return
	}
	rep.run()
}

func (r *reporter) makeClient() (err error) {
	r.client, err = client.NewHTTPClient(client.HTTPConfig{
		Addr:     r.url,
		Username: r.username,
		Password: r.password,
	})
	return err
}

func (r *reporter) run() {
	intervalTicker := time.NewTicker(r.interval)
	pingTicker := time.NewTicker(time.Second * 5)
	defer intervalTicker.Stop()
	defer pingTicker.Stop()
	for {
		select {
		case <-intervalTicker.C:
			if err := r.send(); err != nil {
				log.Error("run", "unable to send metrics to influxdb", err)
			}
		case <-pingTicker.C:
			if _, _, err := r.client.Ping(time.Second); err != nil {
				log.Error("run", "got error while sending a ping", err)
				if err = r.makeClient(); err != nil {
					log.Error("run", "unable to make client", err)
				}
			}
		}
	}
}

func (r *reporter) send() error {
	bps, err := client.NewBatchPoints(client.BatchPointsConfig{
		Database: r.database,
	})
	if err != nil {
		return err
	}
	now := time.Now()
	r.reg.Each(func(name string, i interface{}) {
		switch metric := i.(type) {
		case metrics.Counter:
			v := metric.Count()
			pt, err := client.NewPoint(
				fmt.Sprintf("%s.count", name),
				r.tags,
				map[string]interface{}{"value": v},
				now,
			)
			if err != nil {
				return
			}
			bps.AddPoint(pt)
		case metrics.Gauge:
			pt, err := client.NewPoint(
				fmt.Sprintf("%s.gauge", name),
				r.tags,
				map[string]interface{}{"value": metric.Value()},
				now,
			)
			if err != nil {
				return
			}
			bps.AddPoint(pt)
		case metrics.GaugeFloat64:
			pt, err := client.NewPoint(
				fmt.Sprintf("%s.gauge", name),
				r.tags,
				map[string]interface{}{"value": metric.Value()},
				now,
			)
			if err != nil {
				return
			}
			bps.AddPoint(pt)
		case metrics.Histogram:
			ms := metric.Snapshot()
			ps := ms.Percentiles([]float64{0.5, 0.75, 0.95, 0.99, 0.999})
			pt, err := client.NewPoint(
				fmt.Sprintf("%s.histogram", name),
				r.tags,
				map[string]interface{}{
					"count":  ms.Count(),
					"max":    ms.Max(),
					"mean":   ms.Mean(),
					"min":    ms.Min(),
					"stddev": ms.StdDev(),
					"p50":    ps[0],
					"p75":    ps[1],
					"p95":    ps[2],
					"p99":    ps[3],
					"p999":   ps[4],
				},
				now,
			)
			if err != nil {
				return
			}
			bps.AddPoint(pt)
		case metrics.Meter:
			ms := metric.Snapshot()
			pt, err := client.NewPoint(
				fmt.Sprintf("%s.meter", name),
				r.tags,
				map[string]interface{}{
					"count": ms.Count(),
					"m1":    ms.Rate1(),
					"m5":    ms.Rate5(),
					"m15":   ms.Rate15(),
					"mean":  ms.RateMean(),
				},
				now,
			)
			if err != nil {
				return
			}
			bps.AddPoint(pt)
		case metrics.Timer:
			ms := metric.Snapshot()
			ps := ms.Percentiles([]float64{0.5, 0.75, 0.95, 0.99, 0.999})
			pt, err := client.NewPoint(
				fmt.Sprintf("%s.timer", name),
				r.tags,
				map[string]interface{}{
					"count":  ms.Count(),
					"max":    ms.Max(),
					"mean":   ms.Mean(),
					"min":    ms.Min(),
					"stddev": ms.StdDev(),
					"p50":    ps[0],
					"p75":    ps[1],
					"p95":    ps[2],
					"p99":    ps[3],
					"p999":   ps[4],
					"m1":     ms.Rate1(),
					"m5":     ms.Rate5(),
					"m15":    ms.Rate15(),
					"meanrate": ms.RateMean(),
				},
				now,
			)
			if err != nil {
				return
			}
			bps.AddPoint(pt)
		}
	})
	return r.client.Write(bps)
}
