// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc 对外提供 json-rpc 2.0 服务
package rpc

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"io/ioutil"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"

	log15 "github.com/inconshreveable/log15"
	leakybucket "github.com/kevinms/leakybucket-go"
	"github.com/rs/cors"

	"github.com/hongbaochain/hongbao/executor"
	"github.com/hongbaochain/hongbao/types"
)

var (
	remoteIPWhitelist = make(map[string]bool)
	jrpcFuncWhitelist = make(map[string]bool)
	jrpcFuncBlacklist = make(map[string]bool)
	rpcCfg            *types.RPC
	log               = log15.New("module", "rpc")
)

// JSONRPCServer json rpc服务对象
type JSONRPCServer struct {
	jrpc      *Hongbao
	s         *rpc.Server
	l         net.Listener
	limiter   *leakybucket.Collector
	enableTLS bool
}

// NewJSONRPCServer 基于执行器构造 json rpc服务
func NewJSONRPCServer(cfg *types.RPC, e *executor.Executor) *JSONRPCServer {
	initCfg(cfg)
	j := &JSONRPCServer{jrpc: &Hongbao{e: e}}
	server := rpc.NewServer()
	j.s = server
	if err := server.RegisterName("Hongbao", j.jrpc); err != nil {
		log.Error("NewJSONRPCServer", "register err", err)
		return nil
	}
	if cfg.RateLimitPerIP > 0 {
		j.limiter = leakybucket.NewCollector(float64(cfg.RateLimitPerIP), int64(cfg.RateLimitPerIP), true)
	}
	return j
}

func initCfg(cfg *types.RPC) {
	rpcCfg = cfg
	initIPWhitelist(cfg)
	initJrpcFuncWhitelist(cfg)
	initJrpcFuncBlacklist(cfg)
}

// httpConn adapt HTTP connection to ReadWriteCloser
type httpConn struct {
	in  io.Reader
	out io.Writer
}

func (c *httpConn) Read(p []byte) (n int, err error)  { return c.in.Read(p) }
func (c *httpConn) Write(d []byte) (n int, err error) { return c.out.Write(d) }
func (c *httpConn) Close() error                      { return nil }

type serverResponse struct {
	ID     uint64      `json:"id"`
	Result interface{} `json:"result"`
	Error  interface{} `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, errCode int, errMsg string) {
	w.Header().Set("Content-type", "application/json")
	w.WriteHeader(errCode)
	var req clientRequest
	var id uint64
	if body, err := ioutil.ReadAll(r.Body); err == nil {
		if err := json.Unmarshal(body, &req); err == nil {
			id = req.ID
		}
	}
	resp, err := json.Marshal(&serverResponse{ID: id, Error: errMsg})
	if err != nil {
		log.Error("writeError", "marshal err", err)
		return
	}
	if _, err := w.Write(resp); err != nil {
		log.Error("writeError", "write err", err)
	}
}

// Listen 开始监听,返回实际端口
func (s *JSONRPCServer) Listen() (int, error) {
	listener, err := net.Listen("tcp", rpcCfg.JrpcBindAddr)
	if err != nil {
		return 0, err
	}
	s.l = listener
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			writeError(w, r, 0, "can't get remote ip")
			return
		}
		if !checkIPWhitelist(ip) {
			writeError(w, r, 0, ip+" not in ip whitelist")
			return
		}
		if s.limiter != nil && s.limiter.Add(ip, 1) == 0 {
			writeError(w, r, http.StatusTooManyRequests, "too many requests")
			return
		}
		if !checkBasicAuth(r) {
			writeError(w, r, http.StatusUnauthorized, "basic auth failed")
			return
		}
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		body, err := ioutil.ReadAll(r.Body)
		if err != nil {
			writeError(w, r, 0, "read body failed")
			return
		}
		funcName := parseFuncName(body)
		if checkJrpcFuncBlacklist(funcName) || !checkJrpcFuncWhitelist(funcName) {
			writeError(w, r, 0, funcName+" not supported")
			return
		}
		serverCodec := jsonrpc.NewServerCodec(&httpConn{in: bytes.NewReader(body), out: w})
		w.Header().Set("Content-type", "application/json")
		w.WriteHeader(200)
		if err := s.s.ServeRequest(serverCodec); err != nil {
			log.Debug("Error while serving JSON request", "err", err)
			return
		}
	})
	if rpcCfg.EnableCors {
		handler = cors.New(cors.Options{}).Handler(handler)
	}
	go func() {
		if err := http.Serve(listener, handler); err != nil {
			log.Debug("jrpc server", "serve err", err)
		}
	}()
	addr := listener.Addr().(*net.TCPAddr)
	log.Info("jrpc listening", "addr", addr.String())
	return addr.Port, nil
}

// Close 关闭监听
func (s *JSONRPCServer) Close() {
	if s.l != nil {
		if err := s.l.Close(); err != nil {
			log.Error("JSONRPCServer close", "err", err)
		}
	}
}

// parseFuncName 从请求体解出方法名,如 Hongbao.GetPacket 取 GetPacket
func parseFuncName(body []byte) string {
	var req clientRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return ""
	}
	if i := strings.Index(req.Method, "."); i >= 0 {
		return req.Method[i+1:]
	}
	return req.Method
}

type clientRequest struct {
	Method string `json:"method"`
	ID     uint64 `json:"id"`
}

func checkBasicAuth(r *http.Request) bool {
	if rpcCfg.JrpcUserName == "" && rpcCfg.JrpcUserPasswd == "" {
		return true
	}
	s := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(s) != 2 {
		return false
	}
	b, err := base64.StdEncoding.DecodeString(s[1])
	if err != nil {
		return false
	}
	pair := strings.SplitN(string(b), ":", 2)
	if len(pair) != 2 {
		return false
	}
	return pair[0] == rpcCfg.JrpcUserName && pair[1] == rpcCfg.JrpcUserPasswd
}

func checkIPWhitelist(addr string) bool {
	//回环网络直接允许
	ip := net.ParseIP(addr)
	if ip != nil && ip.IsLoopback() {
		return true
	}
	if ip != nil {
		if ipv4 := ip.To4(); ipv4 != nil {
			addr = ipv4.String()
		}
	}
	if _, ok := remoteIPWhitelist["0.0.0.0"]; ok {
		return true
	}
	return remoteIPWhitelist[addr]
}

func checkJrpcFuncWhitelist(funcName string) bool {
	if _, ok := jrpcFuncWhitelist["*"]; ok {
		return true
	}
	return jrpcFuncWhitelist[funcName]
}

func checkJrpcFuncBlacklist(funcName string) bool {
	return jrpcFuncBlacklist[funcName]
}

func initIPWhitelist(cfg *types.RPC) {
	if len(cfg.Whitelist) == 0 {
		remoteIPWhitelist["127.0.0.1"] = true
		return
	}
	if len(cfg.Whitelist) == 1 && cfg.Whitelist[0] == "*" {
		remoteIPWhitelist["0.0.0.0"] = true
		return
	}
	for _, addr := range cfg.Whitelist {
		remoteIPWhitelist[addr] = true
	}
}

func initJrpcFuncWhitelist(cfg *types.RPC) {
	if len(cfg.JrpcFuncWhitelist) == 0 {
		jrpcFuncWhitelist["*"] = true
		return
	}
	if len(cfg.JrpcFuncWhitelist) == 1 && cfg.JrpcFuncWhitelist[0] == "*" {
		jrpcFuncWhitelist["*"] = true
		return
	}
	for _, funcName := range cfg.JrpcFuncWhitelist {
		jrpcFuncWhitelist[funcName] = true
	}
}

func initJrpcFuncBlacklist(cfg *types.RPC) {
	for _, funcName := range cfg.JrpcFuncBlacklist {
		jrpcFuncBlacklist[funcName] = true
	}
}
