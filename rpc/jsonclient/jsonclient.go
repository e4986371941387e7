// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonclient json-rpc客户端
package jsonclient

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/net/context"
)

// JSONClient 与节点 json-rpc 服务交互的客户端
type JSONClient struct {
	url    string
	client *http.Client
	seq    uint64
}

// NewJSONClient 创建客户端,地址不带协议头时默认 http
func NewJSONClient(url string) (*JSONClient, error) {
	if url == "" {
		return nil, errors.New("rpc url is empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return &JSONClient{
		url:    url,
		client: &http.Client{Timeout: time.Minute},
	}, nil
}

type clientRequest struct {
	Method string         `json:"method"`
	Params [1]interface{} `json:"params"`
	ID     uint64         `json:"id"`
}

type clientResponse struct {
	ID     uint64           `json:"id"`
	Result *json.RawMessage `json:"result"`
	Error  interface{}      `json:"error"`
}

// Call 同步调用,resp 传指针接收结果
func (client *JSONClient) Call(method string, params, resp interface{}) error {
	return client.CallContext(context.Background(), method, params, resp)
}

// CallContext 带上下文的同步调用,上下文取消即中止请求
func (client *JSONClient) CallContext(ctx context.Context, method string, params, resp interface{}) error {
	req := &clientRequest{Method: method, ID: atomic.AddUint64(&client.seq, 1)}
	req.Params[0] = params
	data, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}
	postreq, err := http.NewRequest("POST", client.url, bytes.NewBuffer(data))
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	postreq = postreq.WithContext(ctx)
	postreq.Header.Set("Content-Type", "application/json")
	postresp, err := client.client.Do(postreq)
	if err != nil {
		return errors.Wrap(err, "post")
	}
	defer postresp.Body.Close()
	body, err := ioutil.ReadAll(postresp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	cresp := &clientResponse{}
	if err := json.Unmarshal(body, cresp); err != nil {
		return errors.Wrap(err, "unmarshal response")
	}
	if cresp.Error != nil {
		x, ok := cresp.Error.(string)
		if !ok {
			return errors.Errorf("invalid error %v", cresp.Error)
		}
		return errors.New(x)
	}
	if cresp.Result == nil {
		return errors.New("unexpected null result")
	}
	return json.Unmarshal(*cresp.Result, resp)
}
