package daemon

import (
	"context"

	"github.com/nerva-project/go-nerva/rpc"
)

// The daemon exposes a second catalog of methods as plain HTTP endpoints
// (POST /<name>) without a JSON-RPC envelope; the response object is the
// result itself. Binary (.bin) endpoints speak the epee portable-storage
// format and are not part of this client.

type GetHeightResult struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
	Status
}

// GetHeight returns the daemon's current chain height.
func (c *Client) GetHeight(ctx context.Context) (*GetHeightResult, error) {
	return callOther[GetHeightResult](ctx, c, "get_height", nil, "height")
}

type getTransactionsParams struct {
	TxsHashes    []string `json:"txs_hashes" validate:"required,min=1"`
	DecodeAsJSON bool     `json:"decode_as_json,omitempty"`
	Prune        bool     `json:"prune,omitempty"`
	Split        bool     `json:"split,omitempty"`
}

// GetTransactionsOptions tune the get_transactions lookup.
type GetTransactionsOptions struct {
	DecodeAsJSON bool
	Prune        bool
	Split        bool
}

// TxEntry is one transaction as returned by get_transactions.
type TxEntry struct {
	AsHex           string   `json:"as_hex"`
	AsJSON          string   `json:"as_json"`
	BlockHeight     uint64   `json:"block_height"`
	BlockTimestamp  uint64   `json:"block_timestamp"`
	DoubleSpendSeen bool     `json:"double_spend_seen"`
	InPool          bool     `json:"in_pool"`
	OutputIndices   []uint64 `json:"output_indices"`
	PrunableAsHex   string   `json:"prunable_as_hex"`
	PrunableHash    string   `json:"prunable_hash"`
	PrunedAsHex     string   `json:"pruned_as_hex"`
	TxHash          string   `json:"tx_hash"`
}

type GetTransactionsResult struct {
	MissedTx  []string  `json:"missed_tx"`
	Txs       []TxEntry `json:"txs"`
	TxsAsHex  []string  `json:"txs_as_hex"`
	TxsAsJSON []string  `json:"txs_as_json"`
	Status
}

// GetTransactions looks up transactions by hash. opts may be nil.
func (c *Client) GetTransactions(ctx context.Context, txsHashes []string, opts *GetTransactionsOptions) (*GetTransactionsResult, error) {
	if opts == nil {
		opts = &GetTransactionsOptions{}
	}
	p := getTransactionsParams{
		TxsHashes:    txsHashes,
		DecodeAsJSON: opts.DecodeAsJSON,
		Prune:        opts.Prune,
		Split:        opts.Split,
	}
	if err := rpc.ValidateParams("get_transactions", p); err != nil {
		return nil, err
	}
	return callOther[GetTransactionsResult](ctx, c, "get_transactions", p, "status")
}

type GetAltBlocksHashesResult struct {
	BlksHashes []string `json:"blks_hashes"`
	Status
}

// GetAltBlocksHashes lists the hashes of known off-chain blocks.
func (c *Client) GetAltBlocksHashes(ctx context.Context) (*GetAltBlocksHashesResult, error) {
	return callOther[GetAltBlocksHashesResult](ctx, c, "get_alt_blocks_hashes", nil, "status")
}

type IsKeyImageSpentResult struct {
	// SpentStatus entries: 0 unspent, 1 spent in blockchain, 2 spent in
	// transaction pool.
	SpentStatus []int `json:"spent_status"`
	Status
}

// IsKeyImageSpent checks the spent status of the given key images.
func (c *Client) IsKeyImageSpent(ctx context.Context, keyImages []string) (*IsKeyImageSpentResult, error) {
	if len(keyImages) == 0 {
		return nil, &rpc.ValidationError{Method: "is_key_image_spent", Reason: "no key images"}
	}
	return callOther[IsKeyImageSpentResult](ctx, c, "is_key_image_spent", map[string][]string{"key_images": keyImages}, "spent_status")
}

type sendRawTransactionParams struct {
	TxAsHex    string `json:"tx_as_hex" validate:"required,hexadecimal"`
	DoNotRelay bool   `json:"do_not_relay"`
}

type SendRawTransactionResult struct {
	DoubleSpend       bool   `json:"double_spend"`
	FeeTooLow         bool   `json:"fee_too_low"`
	InvalidInput      bool   `json:"invalid_input"`
	InvalidOutput     bool   `json:"invalid_output"`
	LowMixin          bool   `json:"low_mixin"`
	NotRelayed        bool   `json:"not_relayed"`
	Overspend         bool   `json:"overspend"`
	Reason            string `json:"reason"`
	SanityCheckFailed bool   `json:"sanity_check_failed"`
	TooBig            bool   `json:"too_big"`
	Status
}

// SendRawTransaction broadcasts a serialized transaction. The result's
// Status is not "OK" when the daemon rejects it; Reason says why.
func (c *Client) SendRawTransaction(ctx context.Context, txAsHex string, doNotRelay bool) (*SendRawTransactionResult, error) {
	p := sendRawTransactionParams{TxAsHex: txAsHex, DoNotRelay: doNotRelay}
	if err := rpc.ValidateParams("send_raw_transaction", p); err != nil {
		return nil, err
	}
	return callOther[SendRawTransactionResult](ctx, c, "send_raw_transaction", p, "status")
}

type startMiningParams struct {
	Address          string `json:"miner_address" validate:"required"`
	ThreadsCount     uint   `json:"threads_count" validate:"required"`
	BackgroundMining bool   `json:"do_background_mining"`
	IgnoreBattery    bool   `json:"ignore_battery"`
}

type StartMiningResult struct {
	Status
}

// StartMining starts mining on the daemon, paying rewards to address.
func (c *Client) StartMining(ctx context.Context, address string, threadsCount uint, backgroundMining, ignoreBattery bool) (*StartMiningResult, error) {
	p := startMiningParams{
		Address:          address,
		ThreadsCount:     threadsCount,
		BackgroundMining: backgroundMining,
		IgnoreBattery:    ignoreBattery,
	}
	if err := rpc.ValidateParams("start_mining", p); err != nil {
		return nil, err
	}
	return callOther[StartMiningResult](ctx, c, "start_mining", p, "status")
}

type SetDonateLevelResult struct {
	Status
}

// SetDonateLevel sets how many blocks per hundred are mined for the
// development fund.
func (c *Client) SetDonateLevel(ctx context.Context, blocks uint32) (*SetDonateLevelResult, error) {
	return callOther[SetDonateLevelResult](ctx, c, "set_donate_level", map[string]uint32{"blocks": blocks}, "status")
}

type StopMiningResult struct {
	Status
}

// StopMining stops mining on the daemon.
func (c *Client) StopMining(ctx context.Context) (*StopMiningResult, error) {
	return callOther[StopMiningResult](ctx, c, "stop_mining", nil, "status")
}

type MiningStatusResult struct {
	Active                    bool   `json:"active"`
	Address                   string `json:"address"`
	IsBackgroundMiningEnabled bool   `json:"is_background_mining_enabled"`
	Speed                     uint64 `json:"speed"`
	ThreadsCount              uint   `json:"threads_count"`
	Status
}

// MiningStatus reports whether the daemon is mining and how fast.
func (c *Client) MiningStatus(ctx context.Context) (*MiningStatusResult, error) {
	return callOther[MiningStatusResult](ctx, c, "mining_status", nil, "active")
}

type SaveBCResult struct {
	Status
}

// SaveBC flushes the blockchain state to disk.
func (c *Client) SaveBC(ctx context.Context) (*SaveBCResult, error) {
	return callOther[SaveBCResult](ctx, c, "save_bc", nil, "status")
}

// Peer is one peer-list entry.
type Peer struct {
	Host     string `json:"host"`
	ID       uint64 `json:"id"`
	IP       uint32 `json:"ip"`
	LastSeen int64  `json:"last_seen"`
	Port     uint16 `json:"port"`
}

type GetPeerListResult struct {
	GrayList  []Peer `json:"gray_list"`
	WhiteList []Peer `json:"white_list"`
	Status
}

// GetPeerList returns the daemon's known peers.
func (c *Client) GetPeerList(ctx context.Context) (*GetPeerListResult, error) {
	return callOther[GetPeerListResult](ctx, c, "get_peer_list", nil, "status")
}

// PublicNode is a peer advertising an open RPC port.
type PublicNode struct {
	Host     string `json:"host"`
	LastSeen int64  `json:"last_seen"`
	RPCPort  uint16 `json:"rpc_port"`
}

type GetPublicNodesResult struct {
	Gray  []PublicNode `json:"gray"`
	White []PublicNode `json:"white"`
	Status
}

// GetPublicNodes lists peers that advertise a public RPC port.
func (c *Client) GetPublicNodes(ctx context.Context) (*GetPublicNodesResult, error) {
	return callOther[GetPublicNodesResult](ctx, c, "get_public_nodes", nil, "status")
}

type SetLogHashRateResult struct {
	Status
}

// SetLogHashRate toggles hash-rate logging while mining.
func (c *Client) SetLogHashRate(ctx context.Context, visible bool) (*SetLogHashRateResult, error) {
	return callOther[SetLogHashRateResult](ctx, c, "set_log_hash_rate", map[string]bool{"visible": visible}, "status")
}

type SetLogLevelResult struct {
	Status
}

// SetLogLevel sets the daemon log level (0-4).
func (c *Client) SetLogLevel(ctx context.Context, level int) (*SetLogLevelResult, error) {
	if level < 0 || level > 4 {
		return nil, &rpc.ValidationError{Method: "set_log_level", Reason: "level must be between 0 and 4"}
	}
	return callOther[SetLogLevelResult](ctx, c, "set_log_level", map[string]int{"level": level}, "status")
}

type SetLogCategoriesResult struct {
	Categories string `json:"categories"`
	Status
}

// SetLogCategories sets per-category daemon log levels.
func (c *Client) SetLogCategories(ctx context.Context, categories string) (*SetLogCategoriesResult, error) {
	return callOther[SetLogCategoriesResult](ctx, c, "set_log_categories", map[string]string{"categories": categories}, "status")
}

// PoolTx is one transaction sitting in the pool.
type PoolTx struct {
	BlobSize           uint64 `json:"blob_size"`
	DoNotRelay         bool   `json:"do_not_relay"`
	DoubleSpendSeen    bool   `json:"double_spend_seen"`
	Fee                uint64 `json:"fee"`
	IDHash             string `json:"id_hash"`
	KeptByBlock        bool   `json:"kept_by_block"`
	LastFailedHeight   uint64 `json:"last_failed_height"`
	LastFailedIDHash   string `json:"last_failed_id_hash"`
	LastRelayedTime    uint64 `json:"last_relayed_time"`
	MaxUsedBlockHeight uint64 `json:"max_used_block_height"`
	MaxUsedBlockIDHash string `json:"max_used_block_id_hash"`
	ReceiveTime        int64  `json:"receive_time"`
	Relayed            bool   `json:"relayed"`
	TxBlob             string `json:"tx_blob"`
	TxJSON             string `json:"tx_json"`
}

// SpentKeyImage maps a key image to the pool transactions spending it.
type SpentKeyImage struct {
	IDHash    string   `json:"id_hash"`
	TxsHashes []string `json:"txs_hashes"`
}

type GetTransactionPoolResult struct {
	SpentKeyImages []SpentKeyImage `json:"spent_key_images"`
	Transactions   []PoolTx        `json:"transactions"`
	Status
}

// GetTransactionPool returns the full contents of the transaction pool.
func (c *Client) GetTransactionPool(ctx context.Context) (*GetTransactionPoolResult, error) {
	return callOther[GetTransactionPoolResult](ctx, c, "get_transaction_pool", nil, "status")
}

type GetTransactionPoolHashesResult struct {
	TxHashes []string `json:"tx_hashes"`
	Status
}

// GetTransactionPoolHashes returns the hashes of the pool's transactions.
func (c *Client) GetTransactionPoolHashes(ctx context.Context) (*GetTransactionPoolHashesResult, error) {
	return callOther[GetTransactionPoolHashesResult](ctx, c, "get_transaction_pool_hashes", nil, "status")
}

type PoolHisto struct {
	Bytes uint64 `json:"bytes"`
	Txs   uint64 `json:"txs"`
}

type PoolStats struct {
	BytesMax        uint64      `json:"bytes_max"`
	BytesMed        uint64      `json:"bytes_med"`
	BytesMin        uint64      `json:"bytes_min"`
	BytesTotal      uint64      `json:"bytes_total"`
	FeeTotal        uint64      `json:"fee_total"`
	Histo           []PoolHisto `json:"histo"`
	Histo98pc       uint64      `json:"histo_98pc"`
	Num10m          uint64      `json:"num_10m"`
	NumDoubleSpends uint64      `json:"num_double_spends"`
	NumFailing      uint64      `json:"num_failing"`
	NumNotRelayed   uint64      `json:"num_not_relayed"`
	Oldest          int64       `json:"oldest"`
	TxsTotal        uint64      `json:"txs_total"`
}

type GetTransactionPoolStatsResult struct {
	PoolStats PoolStats `json:"pool_stats"`
	Status
}

// GetTransactionPoolStats returns aggregate statistics of the pool.
func (c *Client) GetTransactionPoolStats(ctx context.Context) (*GetTransactionPoolStatsResult, error) {
	return callOther[GetTransactionPoolStatsResult](ctx, c, "get_transaction_pool_stats", nil, "pool_stats")
}

type setBootstrapDaemonParams struct {
	Address  string `json:"address" validate:"required"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type SetBootstrapDaemonResult struct {
	Status
}

// SetBootstrapDaemon points the daemon at a bootstrap node to proxy RPC
// queries to while still syncing.
func (c *Client) SetBootstrapDaemon(ctx context.Context, address, username, password string) (*SetBootstrapDaemonResult, error) {
	p := setBootstrapDaemonParams{Address: address, Username: username, Password: password}
	if err := rpc.ValidateParams("set_bootstrap_daemon", p); err != nil {
		return nil, err
	}
	return callOther[SetBootstrapDaemonResult](ctx, c, "set_bootstrap_daemon", p, "status")
}

type StopDaemonResult struct {
	Status
}

// StopDaemon asks the daemon to shut down cleanly.
func (c *Client) StopDaemon(ctx context.Context) (*StopDaemonResult, error) {
	return callOther[StopDaemonResult](ctx, c, "stop_daemon", nil, "status")
}

// GetInfoOther is GetInfo via the plain endpoint; some daemon builds only
// expose one of the two.
func (c *Client) GetInfoOther(ctx context.Context) (*GetInfoResult, error) {
	return callOther[GetInfoResult](ctx, c, "get_info", nil, "height")
}

type GetNetStatsResult struct {
	StartTime       int64  `json:"start_time"`
	TotalBytesIn    uint64 `json:"total_bytes_in"`
	TotalBytesOut   uint64 `json:"total_bytes_out"`
	TotalPacketsIn  uint64 `json:"total_packets_in"`
	TotalPacketsOut uint64 `json:"total_packets_out"`
	Status
}

// GetNetStats returns cumulative network traffic counters.
func (c *Client) GetNetStats(ctx context.Context) (*GetNetStatsResult, error) {
	return callOther[GetNetStatsResult](ctx, c, "get_net_stats", nil, "status")
}

type GetLimitResult struct {
	LimitDown uint64 `json:"limit_down"`
	LimitUp   uint64 `json:"limit_up"`
	Status
}

// GetLimit returns the daemon's bandwidth limits in kB/s.
func (c *Client) GetLimit(ctx context.Context) (*GetLimitResult, error) {
	return callOther[GetLimitResult](ctx, c, "get_limit", nil, "status")
}

type setLimitParams struct {
	LimitDown int64 `json:"limit_down" validate:"gte=-1"`
	LimitUp   int64 `json:"limit_up" validate:"gte=-1"`
}

type SetLimitResult struct {
	LimitDown int64 `json:"limit_down"`
	LimitUp   int64 `json:"limit_up"`
	Status
}

// SetLimit sets the bandwidth limits in kB/s; -1 restores the default and
// 0 leaves the value unchanged.
func (c *Client) SetLimit(ctx context.Context, limitDown, limitUp int64) (*SetLimitResult, error) {
	p := setLimitParams{LimitDown: limitDown, LimitUp: limitUp}
	if err := rpc.ValidateParams("set_limit", p); err != nil {
		return nil, err
	}
	return callOther[SetLimitResult](ctx, c, "set_limit", p, "status")
}

// The Nerva daemon's out_peers/in_peers take no arguments and answer
// with only the status trailer; newer Monero builds added a count
// parameter and echo that this build does not have.
type OutPeersResult struct {
	Status
}

// OutPeers reports the outgoing peer limit state.
func (c *Client) OutPeers(ctx context.Context) (*OutPeersResult, error) {
	return callOther[OutPeersResult](ctx, c, "out_peers", nil, "status")
}

type InPeersResult struct {
	Status
}

// InPeers reports the incoming peer limit state.
func (c *Client) InPeers(ctx context.Context) (*InPeersResult, error) {
	return callOther[InPeersResult](ctx, c, "in_peers", nil, "status")
}

// OutputRef identifies one output by amount and index.
type OutputRef struct {
	Amount uint64 `json:"amount"`
	Index  uint64 `json:"index"`
}

type getOutsParams struct {
	Outputs []OutputRef `json:"outputs" validate:"required,min=1"`
	GetTxID bool        `json:"get_txid"`
}

// OutKey is the public data of one output.
type OutKey struct {
	Height   uint64 `json:"height"`
	Key      string `json:"key"`
	Mask     string `json:"mask"`
	TxID     string `json:"txid"`
	Unlocked bool   `json:"unlocked"`
}

type GetOutsResult struct {
	Outs []OutKey `json:"outs"`
	Status
}

// GetOuts returns the public data of the referenced outputs.
func (c *Client) GetOuts(ctx context.Context, outputs []OutputRef, getTxID bool) (*GetOutsResult, error) {
	p := getOutsParams{Outputs: outputs, GetTxID: getTxID}
	if err := rpc.ValidateParams("get_outs", p); err != nil {
		return nil, err
	}
	return callOther[GetOutsResult](ctx, c, "get_outs", p, "outs")
}

type UpdateResult struct {
	AutoURI string `json:"auto_uri"`
	Hash    string `json:"hash"`
	Path    string `json:"path"`
	Update  bool   `json:"update"`
	UserURI string `json:"user_uri"`
	Version string `json:"version"`
	Status
}

// Update checks for (and optionally downloads) a daemon update.
func (c *Client) Update(ctx context.Context) (*UpdateResult, error) {
	return callOther[UpdateResult](ctx, c, "update", nil, "status")
}

type PopBlocksResult struct {
	Height uint64 `json:"height"`
	Status
}

// PopBlocks removes the top nblocks blocks from the local chain.
func (c *Client) PopBlocks(ctx context.Context, nblocks uint64) (*PopBlocksResult, error) {
	if nblocks == 0 {
		return nil, &rpc.ValidationError{Method: "pop_blocks", Reason: "nblocks must be positive"}
	}
	return callOther[PopBlocksResult](ctx, c, "pop_blocks", map[string]uint64{"nblocks": nblocks}, "height")
}
