// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"
	"encoding/binary"
	"math"

	log "github.com/inconshreveable/log15"

	"github.com/hongbaochain/hongbao/account"
	"github.com/hongbaochain/hongbao/common/address"
	dbm "github.com/hongbaochain/hongbao/common/db"
	"github.com/hongbaochain/hongbao/types"
)

var alog = log.New("module", "hongbao.action")

// Action 单条指令的执行环境
// 指令引用到的账户在执行期间独占,检查全部通过之前不产生任何可见写入
type Action struct {
	coinsAccount *account.DB
	db           dbm.KV
	txhash       []byte
	fromaddr     string
	blocktime    int64
	height       int64
	execaddr     string
	execName     string
	admin        string
	deriver      address.Deriver
}

// NewAction 从执行器环境构造
func NewAction(e *Executor, tx *types.Transaction) *Action {
	return &Action{
		coinsAccount: e.GetCoinsAccount(),
		db:           e.stateDB,
		txhash:       tx.Hash(),
		fromaddr:     tx.From(),
		blocktime:    e.GetBlockTime(),
		height:       e.GetHeight(),
		execaddr:     e.execaddr,
		execName:     e.execName,
		admin:        e.admin,
		deriver:      e.deriver,
	}
}

func (action *Action) tokenAccount(symbol string) (*account.DB, error) {
	acc, err := account.NewAccountDB(types.TokenX, symbol, action.db)
	if err != nil {
		return nil, err
	}
	return acc, nil
}

//溢出即错,金额运算不允许静默回绕
func safeAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, types.ErrArithmeticOverflow
	}
	return a + b, nil
}

func safeSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, types.ErrArithmeticOverflow
	}
	return a - b, nil
}

func safeMul(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, types.ErrArithmeticOverflow
	}
	return a * b, nil
}

//createFee 手续费万分之十,不足一个最小单位按一个收
func createFee(total uint64) (uint64, error) {
	mul, err := safeMul(total, uint64(types.FeeRateBPS))
	if err != nil {
		return 0, err
	}
	fee := mul / uint64(types.BPSDenominator)
	if fee < uint64(types.MinCreateFee) {
		fee = uint64(types.MinCreateFee)
	}
	return fee, nil
}

func idBytes(id uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], id)
	return b[:]
}

//checkDerived 按存储字段重算派生地址,供给的账户对不上即拒绝
func (action *Action) checkDerived(tag string, owner, nonce []byte, bump byte, got string) error {
	want, err := action.deriver.Derive([]byte(tag), owner, nonce, bump)
	if err != nil || want != got {
		return types.ErrInvalidPDA
	}
	return nil
}

func (action *Action) checkSigner(meta types.AccountMeta) error {
	if !meta.Signer || meta.Addr != action.fromaddr {
		return types.ErrUnauthorized
	}
	return nil
}

//readMint 读取代币登记账户,返回资产符号
func (action *Action) readMint(addr string) (string, error) {
	acct, err := loadAccountData(action.db, action.execName, addr)
	if err != nil || acct.Owner != types.TokenX || acct.Asset == "" {
		return "", types.ErrInvalidMint
	}
	return acct.Asset, nil
}

// Create 创建红包:锁入本金、缴纳手续费、写入记录
func (action *Action) Create(ins *types.CreateInstruction, accounts []types.AccountMeta) (*types.Receipt, error) {
	if err := types.CheckTokenType(ins.TokenType); err != nil {
		return nil, err
	}
	isNative := ins.TokenType == types.AssetNative
	minAccounts := 5
	if !isNative {
		minAccounts = 9
	}
	if len(accounts) < minAccounts {
		return nil, types.ErrNotEnoughAccounts
	}
	var creator, rpAddr, vaultAddr, treasuryAddr, tvaultAddr, mintAddr string
	var creatorTokenAcct string
	if isNative {
		creator = accounts[0].Addr
		rpAddr = accounts[1].Addr
		vaultAddr = accounts[2].Addr
		treasuryAddr = accounts[3].Addr
		if accounts[4].Addr != address.ExecAddress(types.SystemX) {
			return nil, types.ErrInvalidSystemProgram
		}
	} else {
		creator = accounts[0].Addr
		creatorTokenAcct = accounts[1].Addr
		rpAddr = accounts[2].Addr
		vaultAddr = accounts[3].Addr
		treasuryAddr = accounts[4].Addr
		tvaultAddr = accounts[5].Addr
		mintAddr = accounts[6].Addr
		if accounts[7].Addr != address.ExecAddress(types.TokenX) {
			return nil, types.ErrInvalidTokenProgram
		}
		if accounts[8].Addr != address.ExecAddress(types.SystemX) {
			return nil, types.ErrInvalidSystemProgram
		}
	}
	if err := action.checkSigner(accounts[0]); err != nil {
		return nil, err
	}
	if ins.TotalAmount == 0 || ins.TotalAmount > uint64(types.MaxCoin) {
		return nil, types.ErrInvalidAmount
	}
	n := int(ins.NumRecipients)
	if n == 0 || n > types.MaxRecipients {
		return nil, types.ErrInvalidRecipientCount
	}
	if ins.SplitMode != types.SplitEven && ins.SplitMode != types.SplitRandom {
		return nil, types.ErrInvalidSplitMode
	}
	if ins.ExpiresAt <= action.blocktime {
		return nil, types.ErrExpired
	}

	creatorID, err := address.ToIdentity(creator)
	if err != nil {
		return nil, types.ErrInvalidParam
	}
	nonce := idBytes(ins.ID)
	if err := action.checkDerived(types.SeedRedPacket, creatorID, nonce, ins.Bump, rpAddr); err != nil {
		return nil, err
	}
	if err := action.checkDerived(types.SeedVault, creatorID, nonce, ins.VaultBump, vaultAddr); err != nil {
		return nil, err
	}
	//同一个派生地址不允许二次创建,关闭之前的记录占着这个位置
	if _, err := loadAccountData(action.db, action.execName, rpAddr); err == nil {
		return nil, types.ErrAccountExists
	}

	treasury, err := readTreasury(action.db, action.execName, treasuryAddr)
	if err != nil {
		return nil, err
	}
	if err := action.checkDerived(types.SeedTreasury, treasury.AcceptedAsset, nil, treasury.Bump, treasuryAddr); err != nil {
		return nil, err
	}
	var symbol string
	if isNative {
		if !treasury.IsNative() {
			return nil, types.ErrInvalidMint
		}
	} else {
		symbol, err = action.readMint(mintAddr)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(types.AssetID(symbol), treasury.AcceptedAsset) {
			return nil, types.ErrInvalidMint
		}
		if err := action.checkDerived(types.SeedTreasuryVault, treasury.AcceptedAsset, nil, treasury.VaultBump, tvaultAddr); err != nil {
			return nil, err
		}
		if creatorTokenAcct != creator {
			return nil, types.ErrInvalidTokenAccount
		}
	}

	amounts := make([]uint64, n)
	if ins.SplitMode == types.SplitEven {
		per := ins.TotalAmount / uint64(n)
		rem := ins.TotalAmount % uint64(n)
		for i := 0; i < n; i++ {
			amounts[i] = per
		}
		amounts[n-1], err = safeAdd(per, rem)
		if err != nil {
			return nil, err
		}
	} else {
		if len(ins.Amounts) != n {
			return nil, types.ErrInvalidInstruction
		}
		var sum uint64
		for i, amount := range ins.Amounts {
			if amount == 0 {
				return nil, types.ErrInvalidAmount
			}
			amounts[i] = amount
			sum, err = safeAdd(sum, amount)
			if err != nil {
				return nil, err
			}
		}
		if sum != ins.TotalAmount {
			return nil, types.ErrAmountMismatch
		}
	}
	fee, err := createFee(ins.TotalAmount)
	if err != nil {
		return nil, err
	}

	var logs []*types.ReceiptLog
	var kv []*types.KeyValue

	//记录与金库账户的存储押金由创建者垫付,关闭时退还
	rpRent := types.RentExempt(types.RedPacketSize(n))
	receipt, err := action.coinsAccount.Transfer(creator, rpAddr, rpRent)
	if err != nil {
		alog.Error("create.rent", "creator", creator, "rent", rpRent, "err", err)
		return nil, err
	}
	logs = append(logs, receipt.Logs...)
	kv = append(kv, receipt.KV...)

	vaultRent := types.RentExempt(0)
	if !isNative {
		vaultRent = types.RentExempt(types.TokenAccountSize)
	}
	receipt, err = action.coinsAccount.Transfer(creator, vaultAddr, vaultRent)
	if err != nil {
		return nil, err
	}
	logs = append(logs, receipt.Logs...)
	kv = append(kv, receipt.KV...)

	if isNative {
		receipt, err = action.coinsAccount.Transfer(creator, vaultAddr, int64(ins.TotalAmount))
		if err != nil {
			return nil, err
		}
		logs = append(logs, receipt.Logs...)
		kv = append(kv, receipt.KV...)
		//原生币手续费直接记在金库记录自己的余额上,并累加计数器
		receipt, err = action.coinsAccount.Transfer(creator, treasuryAddr, int64(fee))
		if err != nil {
			return nil, err
		}
		logs = append(logs, receipt.Logs...)
		kv = append(kv, receipt.KV...)
		treasury.FeesCollected, err = safeAdd(treasury.FeesCollected, fee)
		if err != nil {
			return nil, err
		}
		kv = append(kv, saveAccountData(action.db, action.execName, treasuryAddr, &types.AccountData{
			Owner: action.execName,
			Data:  treasury.Encode(),
		}))
		kv = append(kv, saveAccountData(action.db, action.execName, vaultAddr, &types.AccountData{
			Owner: action.execName,
		}))
	} else {
		tokenAccount, err := action.tokenAccount(symbol)
		if err != nil {
			return nil, err
		}
		receipt, err = tokenAccount.Transfer(creator, vaultAddr, int64(ins.TotalAmount))
		if err != nil {
			alog.Error("create.lock", "creator", creator, "symbol", symbol, "err", err)
			return nil, err
		}
		logs = append(logs, receipt.Logs...)
		kv = append(kv, receipt.KV...)
		receipt, err = tokenAccount.Transfer(creator, tvaultAddr, int64(fee))
		if err != nil {
			return nil, err
		}
		logs = append(logs, receipt.Logs...)
		kv = append(kv, receipt.KV...)
		kv = append(kv, saveAccountData(action.db, action.execName, vaultAddr, &types.AccountData{
			Owner:     types.TokenX,
			Asset:     symbol,
			Authority: rpAddr,
		}))
	}

	rp := &types.RedPacket{
		Creator:       creatorID,
		ID:            ins.ID,
		TotalAmount:   ins.TotalAmount,
		Remaining:     ins.TotalAmount,
		NumRecipients: ins.NumRecipients,
		NumClaimed:    0,
		SplitMode:     ins.SplitMode,
		Bump:          ins.Bump,
		VaultBump:     ins.VaultBump,
		TokenType:     ins.TokenType,
		ExpiresAt:     ins.ExpiresAt,
		Amounts:       amounts,
		Claimers:      make([][]byte, n),
	}
	kv = append(kv, saveAccountData(action.db, action.execName, rpAddr, &types.AccountData{
		Owner: action.execName,
		Data:  rp.Encode(),
	}))

	logs = append(logs, &types.ReceiptLog{
		Ty: types.TyLogHongbaoCreate,
		Log: types.Encode(&types.ReceiptHongbaoCreate{
			Creator:       creator,
			ID:            ins.ID,
			TokenType:     ins.TokenType,
			TotalAmount:   ins.TotalAmount,
			Fee:           fee,
			NumRecipients: ins.NumRecipients,
			SplitMode:     ins.SplitMode,
			ExpiresAt:     ins.ExpiresAt,
			RedPacket:     rpAddr,
			Vault:         vaultAddr,
		}),
	})
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: logs}, nil
}

// Claim 领取红包:槽位金额在创建时就已定死,领取顺序决定拿到哪一槽
func (action *Action) Claim(ins *types.ClaimInstruction, accounts []types.AccountMeta) (*types.Receipt, error) {
	if err := types.CheckTokenType(ins.TokenType); err != nil {
		return nil, err
	}
	isNative := ins.TokenType == types.AssetNative
	minAccounts := 3
	if !isNative {
		minAccounts = 5
	}
	if len(accounts) < minAccounts {
		return nil, types.ErrNotEnoughAccounts
	}
	var claimer, claimerTokenAcct, rpAddr, vaultAddr string
	if isNative {
		claimer = accounts[0].Addr
		rpAddr = accounts[1].Addr
		vaultAddr = accounts[2].Addr
	} else {
		claimer = accounts[0].Addr
		claimerTokenAcct = accounts[1].Addr
		rpAddr = accounts[2].Addr
		vaultAddr = accounts[3].Addr
		if accounts[4].Addr != address.ExecAddress(types.TokenX) {
			return nil, types.ErrInvalidTokenProgram
		}
	}
	if err := action.checkSigner(accounts[0]); err != nil {
		return nil, err
	}

	rp, err := readRedPacket(action.db, action.execName, rpAddr)
	if err != nil {
		return nil, err
	}
	if rp.TokenType != ins.TokenType {
		return nil, types.ErrInvalidTokenType
	}
	//记录地址和金库地址都从记录自己存的字段重算,杜绝指过来一个同长度的野账户
	nonce := idBytes(rp.ID)
	if err := action.checkDerived(types.SeedRedPacket, rp.Creator, nonce, rp.Bump, rpAddr); err != nil {
		return nil, err
	}
	if err := action.checkDerived(types.SeedVault, rp.Creator, nonce, rp.VaultBump, vaultAddr); err != nil {
		return nil, err
	}
	if action.blocktime >= rp.ExpiresAt {
		return nil, types.ErrExpired
	}
	if rp.NumClaimed >= rp.NumRecipients {
		return nil, types.ErrRedPacketFull
	}
	claimerID, err := address.ToIdentity(claimer)
	if err != nil {
		return nil, types.ErrInvalidParam
	}
	if rp.Claimed(claimerID) {
		return nil, types.ErrAlreadyClaimed
	}

	index := rp.NumClaimed
	amount := rp.Amounts[index]

	var logs []*types.ReceiptLog
	var kv []*types.KeyValue
	if isNative {
		vaultAcct, err := loadAccountData(action.db, action.execName, vaultAddr)
		if err != nil || vaultAcct.Owner != action.execName {
			return nil, types.ErrInvalidAccountOwner
		}
		//均分红包总额小于份数时会出现零额槽位,领取成功但不转账
		if amount > 0 {
			receipt, err := action.coinsAccount.Transfer(vaultAddr, claimer, int64(amount))
			if err != nil {
				alog.Error("claim.transfer", "vault", vaultAddr, "claimer", claimer, "amount", amount, "err", err)
				return nil, err
			}
			logs = append(logs, receipt.Logs...)
			kv = append(kv, receipt.KV...)
		}
	} else {
		vaultAcct, err := loadAccountData(action.db, action.execName, vaultAddr)
		if err != nil || vaultAcct.Owner != types.TokenX {
			return nil, types.ErrInvalidTokenAccount
		}
		if vaultAcct.Authority != rpAddr {
			return nil, types.ErrInvalidAccountOwner
		}
		tokenAccount, err := action.tokenAccount(vaultAcct.Asset)
		if err != nil {
			return nil, err
		}
		if amount > 0 {
			receipt, err := tokenAccount.Transfer(vaultAddr, claimerTokenAcct, int64(amount))
			if err != nil {
				return nil, err
			}
			logs = append(logs, receipt.Logs...)
			kv = append(kv, receipt.KV...)
		}
	}

	//已领取人列表和计数必须同笔更新,列表扫描是唯一的防重复领取手段
	rp.Claimers[index] = claimerID
	rp.NumClaimed = index + 1
	rp.Remaining, err = safeSub(rp.Remaining, amount)
	if err != nil {
		return nil, err
	}
	kv = append(kv, saveAccountData(action.db, action.execName, rpAddr, &types.AccountData{
		Owner: action.execName,
		Data:  rp.Encode(),
	}))

	logs = append(logs, &types.ReceiptLog{
		Ty: types.TyLogHongbaoClaim,
		Log: types.Encode(&types.ReceiptHongbaoClaim{
			Claimer:   claimer,
			ID:        rp.ID,
			Index:     index,
			Amount:    amount,
			Remaining: rp.Remaining,
			RedPacket: rpAddr,
		}),
	})
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: logs}, nil
}

// Close 关闭红包:取回剩余本金和存储押金,记录彻底销毁
func (action *Action) Close(ins *types.CloseInstruction, accounts []types.AccountMeta) (*types.Receipt, error) {
	if err := types.CheckTokenType(ins.TokenType); err != nil {
		return nil, err
	}
	isNative := ins.TokenType == types.AssetNative
	minAccounts := 3
	if !isNative {
		minAccounts = 5
	}
	if len(accounts) < minAccounts {
		return nil, types.ErrNotEnoughAccounts
	}
	var creator, creatorTokenAcct, rpAddr, vaultAddr string
	if isNative {
		creator = accounts[0].Addr
		rpAddr = accounts[1].Addr
		vaultAddr = accounts[2].Addr
	} else {
		creator = accounts[0].Addr
		creatorTokenAcct = accounts[1].Addr
		rpAddr = accounts[2].Addr
		vaultAddr = accounts[3].Addr
		if accounts[4].Addr != address.ExecAddress(types.TokenX) {
			return nil, types.ErrInvalidTokenProgram
		}
	}
	if err := action.checkSigner(accounts[0]); err != nil {
		return nil, err
	}

	rp, err := readRedPacket(action.db, action.execName, rpAddr)
	if err != nil {
		return nil, err
	}
	if rp.TokenType != ins.TokenType {
		return nil, types.ErrInvalidTokenType
	}
	creatorID, err := address.ToIdentity(creator)
	if err != nil {
		return nil, types.ErrInvalidParam
	}
	if !bytes.Equal(rp.Creator, creatorID) {
		return nil, types.ErrUnauthorized
	}
	nonce := idBytes(rp.ID)
	if err := action.checkDerived(types.SeedRedPacket, rp.Creator, nonce, rp.Bump, rpAddr); err != nil {
		return nil, err
	}
	if err := action.checkDerived(types.SeedVault, rp.Creator, nonce, rp.VaultBump, vaultAddr); err != nil {
		return nil, err
	}
	allClaimed := rp.NumClaimed >= rp.NumRecipients
	expired := action.blocktime >= rp.ExpiresAt
	if !allClaimed && !expired {
		return nil, types.ErrNotExpiredOrFull
	}

	var logs []*types.ReceiptLog
	var kv []*types.KeyValue
	var refund uint64
	if isNative {
		vaultAcct, err := loadAccountData(action.db, action.execName, vaultAddr)
		if err != nil || vaultAcct.Owner != action.execName {
			return nil, types.ErrInvalidAccountOwner
		}
		//金库全部余额退回,包括剩余本金和押金
		balance := action.coinsAccount.LoadAccount(vaultAddr).Balance
		if balance > 0 {
			receipt, err := action.coinsAccount.Transfer(vaultAddr, creator, balance)
			if err != nil {
				return nil, err
			}
			logs = append(logs, receipt.Logs...)
			kv = append(kv, receipt.KV...)
		}
		refund = uint64(balance)
	} else {
		vaultAcct, err := loadAccountData(action.db, action.execName, vaultAddr)
		if err != nil || vaultAcct.Owner != types.TokenX || vaultAcct.Authority != rpAddr {
			return nil, types.ErrInvalidTokenAccount
		}
		tokenAccount, err := action.tokenAccount(vaultAcct.Asset)
		if err != nil {
			return nil, err
		}
		if rp.Remaining > 0 {
			receipt, err := tokenAccount.Transfer(vaultAddr, creatorTokenAcct, int64(rp.Remaining))
			if err != nil {
				return nil, err
			}
			logs = append(logs, receipt.Logs...)
			kv = append(kv, receipt.KV...)
		}
		refund = rp.Remaining
		//金库子账户关闭,押金退给创建者
		deposit := action.coinsAccount.LoadAccount(vaultAddr).Balance
		if deposit > 0 {
			receipt, err := action.coinsAccount.Transfer(vaultAddr, creator, deposit)
			if err != nil {
				return nil, err
			}
			logs = append(logs, receipt.Logs...)
			kv = append(kv, receipt.KV...)
		}
	}
	kv = append(kv, deleteAccountData(action.db, action.execName, vaultAddr))

	//记录自身余额清空后记录销毁,存储上不留任何可读的旧数据
	deposit := action.coinsAccount.LoadAccount(rpAddr).Balance
	if deposit > 0 {
		receipt, err := action.coinsAccount.Transfer(rpAddr, creator, deposit)
		if err != nil {
			return nil, err
		}
		logs = append(logs, receipt.Logs...)
		kv = append(kv, receipt.KV...)
	}
	kv = append(kv, deleteAccountData(action.db, action.execName, rpAddr))

	logs = append(logs, &types.ReceiptLog{
		Ty: types.TyLogHongbaoClose,
		Log: types.Encode(&types.ReceiptHongbaoClose{
			Creator:   creator,
			ID:        rp.ID,
			Refund:    refund,
			RedPacket: rpAddr,
		}),
	})
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: logs}, nil
}

// InitTreasury 初始化某种资产的手续费金库,每种资产只允许一次
func (action *Action) InitTreasury(ins *types.InitTreasuryInstruction, accounts []types.AccountMeta) (*types.Receipt, error) {
	if err := types.CheckTokenType(ins.TokenType); err != nil {
		return nil, err
	}
	isNative := ins.TokenType == types.AssetNative
	minAccounts := 3
	if !isNative {
		minAccounts = 6
	}
	if len(accounts) < minAccounts {
		return nil, types.ErrNotEnoughAccounts
	}
	payer := accounts[0].Addr
	treasuryAddr := accounts[1].Addr
	var tvaultAddr, mintAddr string
	var symbol string
	var assetID []byte
	var err error
	if isNative {
		if accounts[2].Addr != address.ExecAddress(types.SystemX) {
			return nil, types.ErrInvalidSystemProgram
		}
		assetID = types.NativeAssetID
	} else {
		tvaultAddr = accounts[2].Addr
		mintAddr = accounts[3].Addr
		if accounts[4].Addr != address.ExecAddress(types.TokenX) {
			return nil, types.ErrInvalidTokenProgram
		}
		if accounts[5].Addr != address.ExecAddress(types.SystemX) {
			return nil, types.ErrInvalidSystemProgram
		}
		symbol, err = action.readMint(mintAddr)
		if err != nil {
			return nil, err
		}
		assetID = types.AssetID(symbol)
	}
	if err := action.checkSigner(accounts[0]); err != nil {
		return nil, err
	}
	if err := action.checkDerived(types.SeedTreasury, assetID, nil, ins.TreasuryBump, treasuryAddr); err != nil {
		return nil, err
	}
	//余额为零是最廉价的不存在证明
	if action.coinsAccount.LoadAccount(treasuryAddr).Balance > 0 {
		return nil, types.ErrTreasuryAlreadyInitialized
	}
	if _, err := loadAccountData(action.db, action.execName, treasuryAddr); err == nil {
		return nil, types.ErrTreasuryAlreadyInitialized
	}

	var logs []*types.ReceiptLog
	var kv []*types.KeyValue
	rent := types.RentExempt(types.TreasurySize(isNative))
	receipt, err := action.coinsAccount.Transfer(payer, treasuryAddr, rent)
	if err != nil {
		alog.Error("initTreasury.rent", "payer", payer, "rent", rent, "err", err)
		return nil, err
	}
	logs = append(logs, receipt.Logs...)
	kv = append(kv, receipt.KV...)

	vaultBump := byte(0)
	if !isNative {
		vaultBump = ins.VaultBump
		if err := action.checkDerived(types.SeedTreasuryVault, assetID, nil, vaultBump, tvaultAddr); err != nil {
			return nil, err
		}
		vaultRent := types.RentExempt(types.TokenAccountSize)
		receipt, err = action.coinsAccount.Transfer(payer, tvaultAddr, vaultRent)
		if err != nil {
			return nil, err
		}
		logs = append(logs, receipt.Logs...)
		kv = append(kv, receipt.KV...)
		kv = append(kv, saveAccountData(action.db, action.execName, tvaultAddr, &types.AccountData{
			Owner:     types.TokenX,
			Asset:     symbol,
			Authority: treasuryAddr,
		}))
	}

	treasury := &types.Treasury{
		Bump:          ins.TreasuryBump,
		VaultBump:     vaultBump,
		AcceptedAsset: assetID,
	}
	kv = append(kv, saveAccountData(action.db, action.execName, treasuryAddr, &types.AccountData{
		Owner: action.execName,
		Data:  treasury.Encode(),
	}))

	logs = append(logs, &types.ReceiptLog{
		Ty: types.TyLogTreasuryInit,
		Log: types.Encode(&types.ReceiptTreasuryInit{
			Payer:         payer,
			TokenType:     ins.TokenType,
			AcceptedAsset: symbol,
			Treasury:      treasuryAddr,
			Vault:         tvaultAddr,
		}),
	})
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: logs}, nil
}

// WithdrawFees 管理员提取手续费,Amount 为 0 表示全部可提余额
func (action *Action) WithdrawFees(ins *types.WithdrawFeesInstruction, accounts []types.AccountMeta) (*types.Receipt, error) {
	if err := types.CheckTokenType(ins.TokenType); err != nil {
		return nil, err
	}
	isNative := ins.TokenType == types.AssetNative
	minAccounts := 2
	if !isNative {
		minAccounts = 5
	}
	if len(accounts) < minAccounts {
		return nil, types.ErrNotEnoughAccounts
	}
	admin := accounts[0].Addr
	if err := action.checkSigner(accounts[0]); err != nil {
		return nil, err
	}
	if admin != action.admin {
		return nil, types.ErrUnauthorizedAdmin
	}

	var logs []*types.ReceiptLog
	var kv []*types.KeyValue
	var withdrawn, remaining uint64
	var treasuryAddr string
	if isNative {
		treasuryAddr = accounts[1].Addr
		treasury, err := readTreasury(action.db, action.execName, treasuryAddr)
		if err != nil {
			return nil, err
		}
		if err := action.checkDerived(types.SeedTreasury, treasury.AcceptedAsset, nil, treasury.Bump, treasuryAddr); err != nil {
			return nil, err
		}
		if !treasury.IsNative() {
			return nil, types.ErrInvalidMint
		}
		//押金以下的余额永远不可提取
		rent := uint64(types.RentExempt(types.TreasurySize(true)))
		balance := uint64(action.coinsAccount.LoadAccount(treasuryAddr).Balance)
		above := uint64(0)
		if balance > rent {
			above = balance - rent
		}
		available := treasury.FeesCollected
		if above < available {
			available = above
		}
		amount := ins.Amount
		if amount == 0 {
			amount = available
		}
		if amount == 0 || amount > available {
			return nil, types.ErrInsufficientTreasuryBalance
		}
		receipt, err := action.coinsAccount.Transfer(treasuryAddr, admin, int64(amount))
		if err != nil {
			return nil, err
		}
		logs = append(logs, receipt.Logs...)
		kv = append(kv, receipt.KV...)
		treasury.FeesCollected, err = safeSub(treasury.FeesCollected, amount)
		if err != nil {
			return nil, err
		}
		kv = append(kv, saveAccountData(action.db, action.execName, treasuryAddr, &types.AccountData{
			Owner: action.execName,
			Data:  treasury.Encode(),
		}))
		withdrawn, remaining = amount, treasury.FeesCollected
	} else {
		adminTokenAcct := accounts[1].Addr
		treasuryAddr = accounts[2].Addr
		tvaultAddr := accounts[3].Addr
		if accounts[4].Addr != address.ExecAddress(types.TokenX) {
			return nil, types.ErrInvalidTokenProgram
		}
		treasury, err := readTreasury(action.db, action.execName, treasuryAddr)
		if err != nil {
			return nil, err
		}
		if err := action.checkDerived(types.SeedTreasury, treasury.AcceptedAsset, nil, treasury.Bump, treasuryAddr); err != nil {
			return nil, err
		}
		if err := action.checkDerived(types.SeedTreasuryVault, treasury.AcceptedAsset, nil, treasury.VaultBump, tvaultAddr); err != nil {
			return nil, err
		}
		tvaultAcct, err := loadAccountData(action.db, action.execName, tvaultAddr)
		if err != nil || tvaultAcct.Owner != types.TokenX {
			return nil, types.ErrInvalidTokenAccount
		}
		tokenAccount, err := action.tokenAccount(tvaultAcct.Asset)
		if err != nil {
			return nil, err
		}
		//代币金库没有单独计数器,金库余额本身就是手续费总额
		balance := uint64(tokenAccount.LoadAccount(tvaultAddr).Balance)
		amount := ins.Amount
		if amount == 0 {
			amount = balance
		}
		if amount == 0 || amount > balance {
			return nil, types.ErrInsufficientTreasuryBalance
		}
		receipt, err := tokenAccount.Transfer(tvaultAddr, adminTokenAcct, int64(amount))
		if err != nil {
			return nil, err
		}
		logs = append(logs, receipt.Logs...)
		kv = append(kv, receipt.KV...)
		withdrawn, remaining = amount, balance-amount
	}

	logs = append(logs, &types.ReceiptLog{
		Ty: types.TyLogTreasuryWithdraw,
		Log: types.Encode(&types.ReceiptTreasuryWithdraw{
			Admin:     admin,
			TokenType: ins.TokenType,
			Amount:    withdrawn,
			Remaining: remaining,
			Treasury:  treasuryAddr,
		}),
	})
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: logs}, nil
}
