// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongbaochain/hongbao/client"
	"github.com/hongbaochain/hongbao/common"
	"github.com/hongbaochain/hongbao/common/address"
	"github.com/hongbaochain/hongbao/common/crypto"
	_ "github.com/hongbaochain/hongbao/common/crypto/secp256k1"
	dbm "github.com/hongbaochain/hongbao/common/db"
	"github.com/hongbaochain/hongbao/types"
)

const testSymbol = "CNY"

type testEnv struct {
	exec    *Executor
	builder *client.TxBuilder

	adminKey   crypto.PrivKey
	admin      string
	creatorKey crypto.PrivKey
	creator    string
	claimerKey crypto.PrivKey
	claimer    string
	otherKey   crypto.PrivKey
	other      string
}

func genKey(t *testing.T) (crypto.PrivKey, string) {
	c, err := crypto.New("secp256k1")
	require.NoError(t, err)
	priv, err := c.GenKey()
	require.NoError(t, err)
	return priv, address.PubKeyToAddr(priv.PubKey().Bytes())
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{}
	env.adminKey, env.admin = genKey(t)
	env.creatorKey, env.creator = genKey(t)
	env.claimerKey, env.claimer = genKey(t)
	env.otherKey, env.other = genKey(t)

	cfg := &types.Config{
		Title:      "hongbao-test",
		CoinSymbol: "hbc",
		Exec: &types.Exec{
			Name:  types.HongbaoX,
			Admin: env.admin,
			Genesis: []*types.GenesisAlloc{
				{Addr: env.creator, Amount: 10000 * types.Coin},
				{Addr: env.claimer, Amount: 100 * types.Coin},
				{Addr: env.other, Amount: 100 * types.Coin},
				{Addr: env.admin, Amount: 100 * types.Coin},
				{Addr: env.creator, Asset: testSymbol, Amount: 10000 * types.Coin},
			},
		},
	}
	kvdb, err := dbm.NewGoMemDB("exec-test", "", 0)
	require.NoError(t, err)
	env.exec, err = NewExecutor(cfg, kvdb)
	require.NoError(t, err)
	t.Cleanup(env.exec.Close)
	env.builder = client.NewTxBuilder(types.HongbaoX)
	return env
}

func (env *testEnv) sendTx(tx *types.Transaction, key crypto.PrivKey) (*types.Receipt, error) {
	tx.Sign(types.SECP256K1, key)
	return env.exec.Exec(tx)
}

//advanceTime 把执行器时钟拨到未来,经工作协程排队避免并发改写
func (env *testEnv) advanceTime(to int64) {
	env.exec.serial(func() {
		env.exec.blocktime = to
	})
}

func (env *testEnv) initTreasury(t *testing.T, symbol string) {
	tx, err := env.builder.BuildInitTreasury(env.admin, symbol)
	require.NoError(t, err)
	receipt, err := env.sendTx(tx, env.adminKey)
	require.NoError(t, err)
	require.Equal(t, int32(types.ExecOk), receipt.Ty)
}

func (env *testEnv) createPacket(t *testing.T, symbol string, total uint64, n byte, mode byte, expiresAt int64, amounts []uint64) uint64 {
	id := client.NewPacketID()
	tx, err := env.builder.BuildCreate(env.creator, symbol, id, total, n, mode, expiresAt, amounts)
	require.NoError(t, err)
	receipt, err := env.sendTx(tx, env.creatorKey)
	require.NoError(t, err)
	require.Equal(t, int32(types.ExecOk), receipt.Ty)
	return id
}

func (env *testEnv) nativeBalance(t *testing.T, addr string) int64 {
	reply, err := env.exec.Query("GetBalance", types.Encode(&types.ReqBalance{Addr: addr}))
	require.NoError(t, err)
	return reply.(*types.Account).Balance
}

func (env *testEnv) tokenBalance(t *testing.T, addr, symbol string) int64 {
	reply, err := env.exec.Query("GetBalance", types.Encode(&types.ReqBalance{Addr: addr, Asset: symbol}))
	require.NoError(t, err)
	return reply.(*types.Account).Balance
}

func (env *testEnv) getPacket(t *testing.T, id uint64) (*types.ReplyRedPacket, error) {
	reply, err := env.exec.Query("GetPacket", types.Encode(&types.ReqRedPacket{Creator: env.creator, ID: id}))
	if err != nil {
		return nil, err
	}
	return reply.(*types.ReplyRedPacket), nil
}

func TestCreateNativeEven(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")

	before := env.nativeBalance(t, env.creator)
	total := uint64(10 * types.Coin)
	expiresAt := time.Now().Unix() + 3600
	id := env.createPacket(t, "", total, 3, types.SplitEven, expiresAt, nil)

	rp, err := env.getPacket(t, id)
	require.NoError(t, err)
	assert.Equal(t, total, rp.TotalAmount)
	assert.Equal(t, total, rp.Remaining)
	assert.Equal(t, byte(3), rp.NumRecipients)
	assert.Equal(t, byte(0), rp.NumClaimed)
	assert.Equal(t, types.StatusActive, rp.Status)
	per := total / 3
	assert.Equal(t, []uint64{per, per, per + total%3}, rp.Amounts)

	//创建者支付本金+手续费+两笔押金
	fee := total * uint64(types.FeeRateBPS) / uint64(types.BPSDenominator)
	rent := types.RentExempt(types.RedPacketSize(3)) + types.RentExempt(0)
	assert.Equal(t, before-int64(total)-int64(fee)-rent, env.nativeBalance(t, env.creator))
	assert.Equal(t, int64(total)+types.RentExempt(0), env.nativeBalance(t, rp.Vault))
}

func TestEvenSplitRemainderToLastSlot(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	id := env.createPacket(t, "", 1000000, 3, types.SplitEven, time.Now().Unix()+3600, nil)
	rp, err := env.getPacket(t, id)
	require.NoError(t, err)
	assert.Equal(t, []uint64{333333, 333333, 333334}, rp.Amounts)
}

func TestCreateFeeFloor(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	//费率万分之十,50不足一个最小单位,按一个收
	env.createPacket(t, "", 50, 1, types.SplitEven, time.Now().Unix()+3600, nil)

	reply, err := env.exec.Query("GetTreasury", types.Encode(&types.ReqTreasury{TokenType: types.AssetNative}))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), reply.(*types.ReplyTreasury).FeesCollected)
}

func TestCreateParamChecks(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	expiresAt := time.Now().Unix() + 3600

	//金额为零
	tx, err := env.builder.BuildCreate(env.creator, "", client.NewPacketID(), 0, 1, types.SplitEven, expiresAt, nil)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.creatorKey)
	assert.Equal(t, types.ErrInvalidAmount, err)

	//收款人数越界
	tx, err = env.builder.BuildCreate(env.creator, "", client.NewPacketID(), 1000, 21, types.SplitEven, expiresAt, nil)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.creatorKey)
	assert.Equal(t, types.ErrInvalidRecipientCount, err)

	//过期时间在当前时间之前
	tx, err = env.builder.BuildCreate(env.creator, "", client.NewPacketID(), 1000, 2, types.SplitEven, time.Now().Unix()-10, nil)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.creatorKey)
	assert.Equal(t, types.ErrExpired, err)
}

func TestCreateRandomAmountChecks(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	expiresAt := time.Now().Unix() + 3600

	//金额之和对不上总额
	tx, err := env.builder.BuildCreate(env.creator, "", client.NewPacketID(), 1000, 3, types.SplitRandom, expiresAt, []uint64{300, 300, 300})
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.creatorKey)
	assert.Equal(t, types.ErrAmountMismatch, err)

	//出现零金额槽位
	tx, err = env.builder.BuildCreate(env.creator, "", client.NewPacketID(), 1000, 3, types.SplitRandom, expiresAt, []uint64{1000, 0, 0})
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.creatorKey)
	assert.Equal(t, types.ErrInvalidAmount, err)

	//本地生成的随机拆分一定能通过校验
	id := env.createPacket(t, "", 123456789, 7, types.SplitRandom, expiresAt, nil)
	rp, err := env.getPacket(t, id)
	require.NoError(t, err)
	var sum uint64
	for _, amount := range rp.Amounts {
		assert.NotZero(t, amount)
		sum += amount
	}
	assert.Equal(t, uint64(123456789), sum)
}

func TestCreateDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	expiresAt := time.Now().Unix() + 3600
	id := env.createPacket(t, "", 1000, 2, types.SplitEven, expiresAt, nil)

	tx, err := env.builder.BuildCreate(env.creator, "", id, 1000, 2, types.SplitEven, expiresAt, nil)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.creatorKey)
	assert.Equal(t, types.ErrAccountExists, err)
}

func TestCreateWithoutTreasury(t *testing.T) {
	env := newTestEnv(t)
	tx, err := env.builder.BuildCreate(env.creator, "", client.NewPacketID(), 1000, 2, types.SplitEven, time.Now().Unix()+3600, nil)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.creatorKey)
	assert.Equal(t, types.ErrTreasuryNotInitialized, err)
}

func TestClaimFlow(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	total := uint64(10 * types.Coin)
	id := env.createPacket(t, "", total, 2, types.SplitEven, time.Now().Unix()+3600, nil)

	before := env.nativeBalance(t, env.claimer)
	tx, err := env.builder.BuildClaim(env.claimer, env.creator, id, "")
	require.NoError(t, err)
	receipt, err := env.sendTx(tx, env.claimerKey)
	require.NoError(t, err)
	require.Equal(t, int32(types.ExecOk), receipt.Ty)

	rp, err := env.getPacket(t, id)
	require.NoError(t, err)
	assert.Equal(t, byte(1), rp.NumClaimed)
	assert.Equal(t, total-rp.Amounts[0], rp.Remaining)
	assert.Equal(t, []string{env.claimer}, rp.Claimers)
	assert.Equal(t, before+int64(rp.Amounts[0]), env.nativeBalance(t, env.claimer))

	//再领一次被拒绝,状态不变
	tx, err = env.builder.BuildClaim(env.claimer, env.creator, id, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.claimerKey)
	assert.Equal(t, types.ErrAlreadyClaimed, err)
	again, err := env.getPacket(t, id)
	require.NoError(t, err)
	assert.Equal(t, rp.Remaining, again.Remaining)
	assert.Equal(t, byte(1), again.NumClaimed)

	//第二个人领走最后一槽
	tx, err = env.builder.BuildClaim(env.other, env.creator, id, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.otherKey)
	require.NoError(t, err)
	full, err := env.getPacket(t, id)
	require.NoError(t, err)
	assert.Equal(t, types.StatusFullyClaimed, full.Status)
	assert.Zero(t, full.Remaining)

	//领完之后任何人都领不到
	tx, err = env.builder.BuildClaim(env.admin, env.creator, id, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.adminKey)
	assert.Equal(t, types.ErrRedPacketFull, err)
}

func TestClaimExpired(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	expiresAt := time.Now().Unix() + 3600
	id := env.createPacket(t, "", 1000, 2, types.SplitEven, expiresAt, nil)

	env.advanceTime(expiresAt + 1)
	tx, err := env.builder.BuildClaim(env.claimer, env.creator, id, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.claimerKey)
	assert.Equal(t, types.ErrExpired, err)

	rp, err := env.getPacket(t, id)
	require.NoError(t, err)
	assert.Equal(t, byte(0), rp.NumClaimed)
	assert.Equal(t, uint64(1000), rp.Remaining)
	assert.Equal(t, types.StatusExpired, rp.Status)
}

func TestCloseLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	total := uint64(10 * types.Coin)
	expiresAt := time.Now().Unix() + 3600
	id := env.createPacket(t, "", total, 2, types.SplitEven, expiresAt, nil)

	//未过期也未领完不允许关闭
	tx, err := env.builder.BuildClose(env.creator, id, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.creatorKey)
	assert.Equal(t, types.ErrNotExpiredOrFull, err)

	//非创建者不允许关闭
	env.advanceTime(expiresAt + 1)
	tx, err = env.builder.BuildClose(env.creator, id, "")
	require.NoError(t, err)
	tx.Accounts[0].Addr = env.other
	_, err = env.sendTx(tx, env.otherKey)
	assert.Equal(t, types.ErrUnauthorized, err)

	//过期后关闭,剩余本金和两笔押金全部退回
	before := env.nativeBalance(t, env.creator)
	tx, err = env.builder.BuildClose(env.creator, id, "")
	require.NoError(t, err)
	receipt, err := env.sendTx(tx, env.creatorKey)
	require.NoError(t, err)
	require.Equal(t, int32(types.ExecOk), receipt.Ty)

	refund := int64(total) + types.RentExempt(types.RedPacketSize(2)) + types.RentExempt(0)
	assert.Equal(t, before+refund, env.nativeBalance(t, env.creator))

	//记录销毁,查询不到
	_, err = env.getPacket(t, id)
	assert.Equal(t, types.ErrNotFound, err)

	//同一个编号可以重新创建
	env.advanceTime(expiresAt + 2)
	tx, err = env.builder.BuildCreate(env.creator, "", id, 1000, 1, types.SplitEven, expiresAt+3600, nil)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.creatorKey)
	require.NoError(t, err)
}

func TestCloseFullyClaimed(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	id := env.createPacket(t, "", 1000, 1, types.SplitEven, time.Now().Unix()+3600, nil)

	tx, err := env.builder.BuildClaim(env.claimer, env.creator, id, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.claimerKey)
	require.NoError(t, err)

	//领完即可关闭,不必等过期,退回的只有押金
	before := env.nativeBalance(t, env.creator)
	tx, err = env.builder.BuildClose(env.creator, id, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.creatorKey)
	require.NoError(t, err)
	refund := types.RentExempt(types.RedPacketSize(1)) + types.RentExempt(0)
	assert.Equal(t, before+refund, env.nativeBalance(t, env.creator))
}

func TestTreasuryReinit(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	tx, err := env.builder.BuildInitTreasury(env.admin, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.adminKey)
	assert.Equal(t, types.ErrTreasuryAlreadyInitialized, err)
}

func TestWithdrawFees(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	total := uint64(100 * types.Coin)
	env.createPacket(t, "", total, 2, types.SplitEven, time.Now().Unix()+3600, nil)
	fee := total * uint64(types.FeeRateBPS) / uint64(types.BPSDenominator)

	//非管理员被拒绝
	tx, err := env.builder.BuildWithdrawFees(env.other, "", 0)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.otherKey)
	assert.Equal(t, types.ErrUnauthorizedAdmin, err)

	//超额提取被拒绝
	tx, err = env.builder.BuildWithdrawFees(env.admin, "", fee+1)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.adminKey)
	assert.Equal(t, types.ErrInsufficientTreasuryBalance, err)

	//0表示全部提取
	before := env.nativeBalance(t, env.admin)
	tx, err = env.builder.BuildWithdrawFees(env.admin, "", 0)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.adminKey)
	require.NoError(t, err)
	assert.Equal(t, before+int64(fee), env.nativeBalance(t, env.admin))

	//提完之后没有可提余额
	tx, err = env.builder.BuildWithdrawFees(env.admin, "", 0)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.adminKey)
	assert.Equal(t, types.ErrInsufficientTreasuryBalance, err)

	//押金永远留在金库账户上
	reply, err := env.exec.Query("GetTreasury", types.Encode(&types.ReqTreasury{TokenType: types.AssetNative}))
	require.NoError(t, err)
	treasury := reply.(*types.ReplyTreasury)
	assert.Zero(t, treasury.FeesCollected)
	assert.Equal(t, uint64(types.RentExempt(types.TreasurySize(true))), treasury.Balance)
}

func TestFungibleLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, testSymbol)
	total := uint64(100 * types.Coin)
	expiresAt := time.Now().Unix() + 3600
	id := env.createPacket(t, testSymbol, total, 2, types.SplitEven, expiresAt, nil)

	fee := total * uint64(types.FeeRateBPS) / uint64(types.BPSDenominator)
	rp, err := env.getPacket(t, id)
	require.NoError(t, err)
	assert.Equal(t, byte(types.AssetFungible), rp.TokenType)
	assert.Equal(t, testSymbol, rp.Asset)
	assert.Equal(t, int64(total), env.tokenBalance(t, rp.Vault, testSymbol))

	//领取进代币账本
	tx, err := env.builder.BuildClaim(env.claimer, env.creator, id, testSymbol)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.claimerKey)
	require.NoError(t, err)
	assert.Equal(t, int64(total/2), env.tokenBalance(t, env.claimer, testSymbol))

	//资产类型对不上被拒绝
	tx, err = env.builder.BuildClaim(env.other, env.creator, id, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.otherKey)
	assert.Equal(t, types.ErrInvalidTokenType, err)

	//过期关闭退回剩余代币
	env.advanceTime(expiresAt + 1)
	beforeToken := env.tokenBalance(t, env.creator, testSymbol)
	tx, err = env.builder.BuildClose(env.creator, id, testSymbol)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.creatorKey)
	require.NoError(t, err)
	assert.Equal(t, beforeToken+int64(total-total/2), env.tokenBalance(t, env.creator, testSymbol))

	//代币手续费提取到管理员的代币账本
	tx, err = env.builder.BuildWithdrawFees(env.admin, testSymbol, 0)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.adminKey)
	require.NoError(t, err)
	assert.Equal(t, int64(fee), env.tokenBalance(t, env.admin, testSymbol))
}

func TestRollbackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")

	//余额不足,第一笔押金转账就失败,之前没有任何写入需要回滚检验
	poorKey, poor := genKey(t)
	tx, err := env.builder.BuildCreate(poor, "", client.NewPacketID(), 1000, 2, types.SplitEven, time.Now().Unix()+3600, nil)
	require.NoError(t, err)
	_, err = env.sendTx(tx, poorKey)
	assert.Equal(t, types.ErrNoBalance, err)

	//押金垫付后本金不够:中途失败必须整体回滚
	halfKey, half := genKey(t)
	rent := types.RentExempt(types.RedPacketSize(2)) + types.RentExempt(0)
	_, err = env.exec.coinsAccount.GenesisInit(half, rent+10)
	require.NoError(t, err)
	require.NoError(t, env.exec.stateDB.Flush())
	tx, err = env.builder.BuildCreate(half, "", client.NewPacketID(), 1000, 2, types.SplitEven, time.Now().Unix()+3600, nil)
	require.NoError(t, err)
	_, err = env.sendTx(tx, halfKey)
	assert.Equal(t, types.ErrNoBalance, err)
	//押金转账被回滚,余额原封不动
	assert.Equal(t, rent+10, env.nativeBalance(t, half))
}

func TestTxEnvelopeChecks(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")

	//执行器名不匹配
	tx, err := env.builder.BuildCreate(env.creator, "", client.NewPacketID(), 1000, 2, types.SplitEven, time.Now().Unix()+3600, nil)
	require.NoError(t, err)
	tx.Execer = "coins"
	_, err = env.sendTx(tx, env.creatorKey)
	assert.Equal(t, types.ErrExecNameNotAllow, err)

	//签名人标记的账户与实际签名地址不符
	tx, err = env.builder.BuildCreate(env.creator, "", client.NewPacketID(), 1000, 2, types.SplitEven, time.Now().Unix()+3600, nil)
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.otherKey)
	assert.Equal(t, types.ErrSign, err)

	//签名被篡改
	tx, err = env.builder.BuildCreate(env.creator, "", client.NewPacketID(), 1000, 2, types.SplitEven, time.Now().Unix()+3600, nil)
	require.NoError(t, err)
	tx.Sign(types.SECP256K1, env.creatorKey)
	tx.Payload[1]++
	_, err = env.exec.Exec(tx)
	assert.Equal(t, types.ErrSign, err)

	//交易过期
	tx, err = env.builder.BuildCreate(env.creator, "", client.NewPacketID(), 1000, 2, types.SplitEven, time.Now().Unix()+3600, nil)
	require.NoError(t, err)
	tx.Expire = 1
	_, err = env.sendTx(tx, env.creatorKey)
	assert.Equal(t, types.ErrTxExpire, err)
}

func TestListPackets(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	expiresAt := time.Now().Unix() + 3600
	id1 := env.createPacket(t, "", 1000, 2, types.SplitEven, expiresAt, nil)
	id2 := env.createPacket(t, "", 2000, 3, types.SplitEven, expiresAt, nil)

	reply, err := env.exec.Query("ListPackets", types.Encode(&types.ReqList{Creator: env.creator, Count: 10}))
	require.NoError(t, err)
	list := reply.(*types.ReplyRedPacketList)
	require.Len(t, list.Packets, 2)
	ids := map[uint64]bool{list.Packets[0].ID: true, list.Packets[1].ID: true}
	assert.True(t, ids[id1])
	assert.True(t, ids[id2])

	//关闭后从列表消失
	env.advanceTime(expiresAt + 1)
	tx, err := env.builder.BuildClose(env.creator, id1, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.creatorKey)
	require.NoError(t, err)
	reply, err = env.exec.Query("ListPackets", types.Encode(&types.ReqList{Creator: env.creator, Count: 10}))
	require.NoError(t, err)
	list = reply.(*types.ReplyRedPacketList)
	require.Len(t, list.Packets, 1)
	assert.Equal(t, id2, list.Packets[0].ID)
}

func TestGetTxDetail(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	tx, err := env.builder.BuildCreate(env.creator, "", client.NewPacketID(), 1000, 2, types.SplitEven, time.Now().Unix()+3600, nil)
	require.NoError(t, err)
	tx.Sign(types.SECP256K1, env.creatorKey)
	_, err = env.exec.Exec(tx)
	require.NoError(t, err)

	reply, err := env.exec.Query("GetTx", types.Encode(&types.ReplyHash{Hash: common.ToHex(tx.Hash())}))
	require.NoError(t, err)
	detail := reply.(*types.TransactionDetail)
	assert.Equal(t, env.creator, detail.FromAddr)
	assert.Equal(t, int32(types.ExecOk), detail.Receipt.Ty)
	assert.Equal(t, "create", detail.Tx.ActionName())
}

func TestClaimDerivedAddressMismatch(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	expiresAt := time.Now().Unix() + 3600
	id := env.createPacket(t, "", uint64(1*types.Coin), 2, types.SplitEven, expiresAt, nil)

	//金库账户换成任意地址,按记录字段重算派生地址必须对不上
	tx, err := env.builder.BuildClaim(env.claimer, env.creator, id, "")
	require.NoError(t, err)
	tx.Accounts[2].Addr = env.other
	_, err = env.sendTx(tx, env.claimerKey)
	assert.Equal(t, types.ErrInvalidPDA, err)

	//原样账户列表仍可领取
	tx, err = env.builder.BuildClaim(env.claimer, env.creator, id, "")
	require.NoError(t, err)
	receipt, err := env.sendTx(tx, env.claimerKey)
	require.NoError(t, err)
	assert.Equal(t, int32(types.ExecOk), receipt.Ty)
}

func TestClaimZeroAmountSlot(t *testing.T) {
	env := newTestEnv(t)
	env.initTreasury(t, "")
	expiresAt := time.Now().Unix() + 3600
	//总额小于份数,均分后前两槽为零额
	id := env.createPacket(t, "", 2, 3, types.SplitEven, expiresAt, nil)

	rp, err := env.getPacket(t, id)
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 0, 2}, rp.Amounts)

	//零额槽位领取成功:记入领取人、推进计数,但不发生转账
	before := env.nativeBalance(t, env.claimer)
	tx, err := env.builder.BuildClaim(env.claimer, env.creator, id, "")
	require.NoError(t, err)
	receipt, err := env.sendTx(tx, env.claimerKey)
	require.NoError(t, err)
	assert.Equal(t, int32(types.ExecOk), receipt.Ty)
	assert.Equal(t, before, env.nativeBalance(t, env.claimer))

	rp, err = env.getPacket(t, id)
	require.NoError(t, err)
	assert.Equal(t, byte(1), rp.NumClaimed)
	require.Len(t, rp.Claimers, 1)
	assert.Equal(t, env.claimer, rp.Claimers[0])

	//同一人不能再领,零额领取同样占名额
	tx, err = env.builder.BuildClaim(env.claimer, env.creator, id, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.claimerKey)
	assert.Equal(t, types.ErrAlreadyClaimed, err)

	//后续槽位不受阻塞,末槽照常付出余额
	tx, err = env.builder.BuildClaim(env.other, env.creator, id, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.otherKey)
	require.NoError(t, err)

	before = env.nativeBalance(t, env.admin)
	tx, err = env.builder.BuildClaim(env.admin, env.creator, id, "")
	require.NoError(t, err)
	_, err = env.sendTx(tx, env.adminKey)
	require.NoError(t, err)
	assert.Equal(t, before+2, env.nativeBalance(t, env.admin))

	reply, err := env.exec.Query("GetStatus", types.Encode(&types.ReqRedPacket{Creator: env.creator, ID: id}))
	require.NoError(t, err)
	assert.Equal(t, "fully_claimed", reply.(*types.ReplyStatus).Status)
}
