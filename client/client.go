// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package client

import (
	"github.com/hongbaochain/hongbao/common"
	"github.com/hongbaochain/hongbao/rpc/jsonclient"
	"github.com/hongbaochain/hongbao/types"
)

// Client 查询与提交的远端封装,内部走 json-rpc
type Client struct {
	rpc *jsonclient.JSONClient
}

// NewClient 连接到节点的 json-rpc 地址
func NewClient(laddr string) (*Client, error) {
	rpc, err := jsonclient.NewJSONClient(laddr)
	if err != nil {
		return nil, err
	}
	return &Client{rpc: rpc}, nil
}

// GetPacket 拉取并解码红包记录
func (c *Client) GetPacket(creator string, id uint64) (*types.ReplyRedPacket, error) {
	var reply types.ReplyRedPacket
	err := c.rpc.Call("Hongbao.GetPacket", &types.ReqRedPacket{Creator: creator, ID: id}, &reply)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetStatus 红包状态: fully_claimed / expired / active
func (c *Client) GetStatus(creator string, id uint64) (*types.ReplyStatus, error) {
	var reply types.ReplyStatus
	err := c.rpc.Call("Hongbao.GetStatus", &types.ReqRedPacket{Creator: creator, ID: id}, &reply)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetTreasury 金库记录与余额,symbol 留空查原生币金库
func (c *Client) GetTreasury(symbol string) (*types.ReplyTreasury, error) {
	req := &types.ReqTreasury{TokenType: types.AssetNative}
	if symbol != "" {
		req.TokenType = types.AssetFungible
		req.Asset = symbol
	}
	var reply types.ReplyTreasury
	if err := c.rpc.Call("Hongbao.GetTreasury", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// ListPackets 按创建者列出红包
func (c *Client) ListPackets(creator string, count int32) (*types.ReplyRedPacketList, error) {
	var reply types.ReplyRedPacketList
	err := c.rpc.Call("Hongbao.ListPackets", &types.ReqList{Creator: creator, Count: count}, &reply)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetBalance 余额查询
func (c *Client) GetBalance(addr, symbol string) (*types.Account, error) {
	var reply types.Account
	err := c.rpc.Call("Hongbao.GetBalance", &types.ReqBalance{Addr: addr, Asset: symbol}, &reply)
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// SendTransaction 提交已签名交易,返回交易哈希
func (c *Client) SendTransaction(tx *types.Transaction) (string, error) {
	var hash string
	err := c.rpc.Call("Hongbao.SendTransaction", &types.RawParm{Data: common.ToHex(tx.Encode())}, &hash)
	if err != nil {
		return "", err
	}
	return hash, nil
}
