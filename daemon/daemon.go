package daemon

import (
	"context"

	"github.com/nerva-project/go-nerva/rpc"
)

// Status is the trailer every daemon result carries. Status is "OK" on
// success; Untrusted is set when the daemon answered from a bootstrap
// node it does not trust.
type Status struct {
	Status    string `json:"status"`
	Untrusted bool   `json:"untrusted"`
}

// BlockHeader describes one block as reported by the daemon.
type BlockHeader struct {
	BlockSize    uint64 `json:"block_size"`
	Depth        uint64 `json:"depth"`
	Difficulty   uint64 `json:"difficulty"`
	Hash         string `json:"hash"`
	Height       uint64 `json:"height"`
	MajorVersion uint32 `json:"major_version"`
	MinorVersion uint32 `json:"minor_version"`
	Nonce        uint32 `json:"nonce"`
	NumTxes      uint64 `json:"num_txes"`
	OrphanStatus bool   `json:"orphan_status"`
	PrevHash     string `json:"prev_hash"`
	Reward       uint64 `json:"reward"`
	Timestamp    uint64 `json:"timestamp"`
}

// Connection describes one peer connection.
type Connection struct {
	Address         string `json:"address"`
	AvgDownload     uint64 `json:"avg_download"`
	AvgUpload       uint64 `json:"avg_upload"`
	ConnectionID    string `json:"connection_id"`
	CurrentDownload uint64 `json:"current_download"`
	CurrentUpload   uint64 `json:"current_upload"`
	Height          uint64 `json:"height"`
	Host            string `json:"host"`
	Incoming        bool   `json:"incoming"`
	IP              string `json:"ip"`
	LiveTime        uint64 `json:"live_time"`
	LocalIP         bool   `json:"local_ip"`
	Localhost       bool   `json:"localhost"`
	PeerID          string `json:"peer_id"`
	Port            string `json:"port"`
	RecvCount       uint64 `json:"recv_count"`
	RecvIdleTime    uint64 `json:"recv_idle_time"`
	SendCount       uint64 `json:"send_count"`
	SendIdleTime    uint64 `json:"send_idle_time"`
	State           string `json:"state"`
	SupportFlags    uint32 `json:"support_flags"`
}

type GetBlockCountResult struct {
	Count uint64 `json:"count"`
	Status
}

// GetBlockCount returns the number of blocks in the longest chain.
func (c *Client) GetBlockCount(ctx context.Context) (*GetBlockCountResult, error) {
	return call[GetBlockCountResult](ctx, c, "get_block_count", nil, "count")
}

type OnGetBlockHashResult struct {
	Hash string `json:"hash"`
}

// OnGetBlockHash looks up the hash of the block at the given height.
func (c *Client) OnGetBlockHash(ctx context.Context, height uint64) (*OnGetBlockHashResult, error) {
	return call[OnGetBlockHashResult](ctx, c, "on_get_block_hash", map[string]uint64{"height": height}, "hash")
}

type getBlockTemplateParams struct {
	WalletAddress string `json:"wallet_address" validate:"required"`
	ReserveSize   uint64 `json:"reserve_size" validate:"lte=255"`
}

type GetBlockTemplateResult struct {
	BlocktemplateBlob string `json:"blocktemplate_blob"`
	BlockhashingBlob  string `json:"blockhashing_blob"`
	Difficulty        uint64 `json:"difficulty"`
	ExpectedReward    uint64 `json:"expected_reward"`
	Height            uint64 `json:"height"`
	PrevHash          string `json:"prev_hash"`
	ReservedOffset    uint64 `json:"reserved_offset"`
	Status
}

// GetBlockTemplate returns a block template to mine on, reserving
// reserveSize bytes in the coinbase for extra data.
func (c *Client) GetBlockTemplate(ctx context.Context, walletAddress string, reserveSize uint64) (*GetBlockTemplateResult, error) {
	p := getBlockTemplateParams{WalletAddress: walletAddress, ReserveSize: reserveSize}
	if err := rpc.ValidateParams("get_block_template", p); err != nil {
		return nil, err
	}
	return call[GetBlockTemplateResult](ctx, c, "get_block_template", p, "blocktemplate_blob", "height")
}

type SubmitBlockResult struct {
	Status
}

// SubmitBlock submits one or more mined block blobs to the network.
func (c *Client) SubmitBlock(ctx context.Context, blockBlobs []string) (*SubmitBlockResult, error) {
	if len(blockBlobs) == 0 {
		return nil, &rpc.ValidationError{Method: "submit_block", Reason: "no block blobs"}
	}
	return call[SubmitBlockResult](ctx, c, "submit_block", map[string][]string{"blob": blockBlobs}, "status")
}

type BlockHeaderResult struct {
	BlockHeader BlockHeader `json:"block_header"`
	Status
}

// GetLastBlockHeader returns the header of the most recent block.
func (c *Client) GetLastBlockHeader(ctx context.Context) (*BlockHeaderResult, error) {
	return call[BlockHeaderResult](ctx, c, "get_last_block_header", nil, "block_header")
}

// GetBlockHeaderByHash returns the header of the block with the given
// hash.
func (c *Client) GetBlockHeaderByHash(ctx context.Context, hash string) (*BlockHeaderResult, error) {
	if hash == "" {
		return nil, &rpc.ValidationError{Method: "get_block_header_by_hash", Reason: "empty hash"}
	}
	return call[BlockHeaderResult](ctx, c, "get_block_header_by_hash", map[string]string{"hash": hash}, "block_header")
}

// GetBlockHeaderByHeight returns the header of the block at the given
// height.
func (c *Client) GetBlockHeaderByHeight(ctx context.Context, height uint64) (*BlockHeaderResult, error) {
	return call[BlockHeaderResult](ctx, c, "get_block_header_by_height", map[string]uint64{"height": height}, "block_header")
}

type getBlockHeadersRangeParams struct {
	StartHeight uint64 `json:"start_height"`
	EndHeight   uint64 `json:"end_height"`
}

type GetBlockHeadersRangeResult struct {
	Headers []BlockHeader `json:"headers"`
	Status
}

// GetBlockHeadersRange returns the headers of the blocks in the inclusive
// height range [start, end].
func (c *Client) GetBlockHeadersRange(ctx context.Context, startHeight, endHeight uint64) (*GetBlockHeadersRangeResult, error) {
	if endHeight < startHeight {
		return nil, &rpc.ValidationError{Method: "get_block_headers_range", Reason: "end height below start height"}
	}
	p := getBlockHeadersRangeParams{StartHeight: startHeight, EndHeight: endHeight}
	return call[GetBlockHeadersRangeResult](ctx, c, "get_block_headers_range", p, "headers")
}

type getBlockParams struct {
	Hash   string  `json:"hash,omitempty"`
	Height *uint64 `json:"height,omitempty"`
}

type GetBlockResult struct {
	Blob        string      `json:"blob"`
	BlockHeader BlockHeader `json:"block_header"`
	JSON        string      `json:"json"`
	MinerTxHash string      `json:"miner_tx_hash"`
	TxHashes    []string    `json:"tx_hashes"`
	Status
}

// GetBlockByHash returns the full block with the given hash.
func (c *Client) GetBlockByHash(ctx context.Context, hash string) (*GetBlockResult, error) {
	if hash == "" {
		return nil, &rpc.ValidationError{Method: "get_block", Reason: "empty hash"}
	}
	return call[GetBlockResult](ctx, c, "get_block", getBlockParams{Hash: hash}, "block_header")
}

// GetBlockByHeight returns the full block at the given height.
func (c *Client) GetBlockByHeight(ctx context.Context, height uint64) (*GetBlockResult, error) {
	return call[GetBlockResult](ctx, c, "get_block", getBlockParams{Height: &height}, "block_header")
}

type GetConnectionsResult struct {
	Connections []Connection `json:"connections"`
	Status
}

// GetConnections lists the daemon's current peer connections.
func (c *Client) GetConnections(ctx context.Context) (*GetConnectionsResult, error) {
	return call[GetConnectionsResult](ctx, c, "get_connections", nil, "connections")
}

// GetInfoResult is the daemon's general state snapshot.
type GetInfoResult struct {
	AltBlocksCount           uint64 `json:"alt_blocks_count"`
	BlockSizeLimit           uint64 `json:"block_size_limit"`
	BlockSizeMedian          uint64 `json:"block_size_median"`
	BootstrapDaemonAddress   string `json:"bootstrap_daemon_address"`
	CumulativeDifficulty     uint64 `json:"cumulative_difficulty"`
	DatabaseSize             uint64 `json:"database_size"`
	Difficulty               uint64 `json:"difficulty"`
	FreeSpace                uint64 `json:"free_space"`
	GreyPeerlistSize         uint64 `json:"grey_peerlist_size"`
	Height                   uint64 `json:"height"`
	HeightWithoutBootstrap   uint64 `json:"height_without_bootstrap"`
	IncomingConnectionsCount uint64 `json:"incoming_connections_count"`
	Mainnet                  bool   `json:"mainnet"`
	Nettype                  string `json:"nettype"`
	Offline                  bool   `json:"offline"`
	OutgoingConnectionsCount uint64 `json:"outgoing_connections_count"`
	Stagenet                 bool   `json:"stagenet"`
	StartTime                uint64 `json:"start_time"`
	Target                   uint64 `json:"target"`
	TargetHeight             uint64 `json:"target_height"`
	Testnet                  bool   `json:"testnet"`
	TopBlockHash             string `json:"top_block_hash"`
	TxCount                  uint64 `json:"tx_count"`
	TxPoolSize               uint64 `json:"tx_pool_size"`
	UpdateAvailable          bool   `json:"update_available"`
	Version                  string `json:"version"`
	WasBootstrapEverUsed     bool   `json:"was_bootstrap_ever_used"`
	WhitePeerlistSize        uint64 `json:"white_peerlist_size"`
	Status
}

// GetInfo returns general information about the daemon and the network
// state it sees.
func (c *Client) GetInfo(ctx context.Context) (*GetInfoResult, error) {
	return call[GetInfoResult](ctx, c, "get_info", nil, "height")
}

type HardForkInfoResult struct {
	EarliestHeight uint64 `json:"earliest_height"`
	Enabled        bool   `json:"enabled"`
	State          uint32 `json:"state"`
	Threshold      uint32 `json:"threshold"`
	Version        uint32 `json:"version"`
	Votes          uint32 `json:"votes"`
	Voting         uint32 `json:"voting"`
	Window         uint32 `json:"window"`
	Status
}

// HardForkInfo returns the state of the hard-fork voting machinery.
func (c *Client) HardForkInfo(ctx context.Context) (*HardForkInfoResult, error) {
	return call[HardForkInfoResult](ctx, c, "hard_fork_info", nil, "version")
}

// Ban describes one ban entry. Ban is true to ban and false to unban;
// Seconds is the ban duration.
type Ban struct {
	Host    string `json:"host,omitempty"`
	IP      uint32 `json:"ip,omitempty"`
	Ban     bool   `json:"ban"`
	Seconds uint32 `json:"seconds"`
}

type SetBansResult struct {
	Status
}

// SetBans bans or unbans the given hosts.
func (c *Client) SetBans(ctx context.Context, bans []Ban) (*SetBansResult, error) {
	if len(bans) == 0 {
		return nil, &rpc.ValidationError{Method: "set_bans", Reason: "no ban entries"}
	}
	return call[SetBansResult](ctx, c, "set_bans", map[string][]Ban{"bans": bans}, "status")
}

// BanEntry is one currently banned host.
type BanEntry struct {
	Host    string `json:"host"`
	IP      uint32 `json:"ip"`
	Seconds uint32 `json:"seconds"`
}

type GetBansResult struct {
	Bans []BanEntry `json:"bans"`
	Status
}

// GetBans lists the hosts the daemon currently bans.
func (c *Client) GetBans(ctx context.Context) (*GetBansResult, error) {
	return call[GetBansResult](ctx, c, "get_bans", nil, "status")
}

type FlushTxpoolResult struct {
	Status
}

// FlushTxpool removes the given transactions from the pool, or all of
// them when txids is empty.
func (c *Client) FlushTxpool(ctx context.Context, txids []string) (*FlushTxpoolResult, error) {
	if txids == nil {
		txids = []string{}
	}
	return call[FlushTxpoolResult](ctx, c, "flush_txpool", map[string][]string{"txids": txids}, "status")
}

type getOutputHistogramParams struct {
	Amounts      []uint64 `json:"amounts" validate:"required,min=1"`
	MinCount     uint64   `json:"min_count"`
	MaxCount     uint64   `json:"max_count"`
	Unlocked     bool     `json:"unlocked"`
	RecentCutoff uint64   `json:"recent_cutoff"`
}

type HistogramEntry struct {
	Amount            uint64 `json:"amount"`
	TotalInstances    uint64 `json:"total_instances"`
	UnlockedInstances uint64 `json:"unlocked_instances"`
	RecentInstances   uint64 `json:"recent_instances"`
}

type GetOutputHistogramResult struct {
	Histogram []HistogramEntry `json:"histogram"`
	Status
}

// GetOutputHistogram returns, per amount, how many outputs exist on the
// chain.
func (c *Client) GetOutputHistogram(ctx context.Context, amounts []uint64, minCount, maxCount uint64, unlocked bool, recentCutoff uint64) (*GetOutputHistogramResult, error) {
	p := getOutputHistogramParams{
		Amounts:      amounts,
		MinCount:     minCount,
		MaxCount:     maxCount,
		Unlocked:     unlocked,
		RecentCutoff: recentCutoff,
	}
	if err := rpc.ValidateParams("get_output_histogram", p); err != nil {
		return nil, err
	}
	return call[GetOutputHistogramResult](ctx, c, "get_output_histogram", p, "histogram")
}

type GetVersionResult struct {
	Version uint32 `json:"version"`
	Status
}

// GetVersion returns the daemon's RPC version.
func (c *Client) GetVersion(ctx context.Context) (*GetVersionResult, error) {
	return call[GetVersionResult](ctx, c, "get_version", nil, "version")
}

type getCoinbaseTxSumParams struct {
	Height uint64 `json:"height"`
	Count  uint64 `json:"count" validate:"required"`
}

type GetCoinbaseTxSumResult struct {
	EmissionAmount uint64 `json:"emission_amount"`
	FeeAmount      uint64 `json:"fee_amount"`
	Status
}

// GetCoinbaseTxSum sums the coinbase rewards and fees of count blocks
// starting at height.
func (c *Client) GetCoinbaseTxSum(ctx context.Context, height, count uint64) (*GetCoinbaseTxSumResult, error) {
	p := getCoinbaseTxSumParams{Height: height, Count: count}
	if err := rpc.ValidateParams("get_coinbase_tx_sum", p); err != nil {
		return nil, err
	}
	return call[GetCoinbaseTxSumResult](ctx, c, "get_coinbase_tx_sum", p, "emission_amount")
}

type getFeeEstimateParams struct {
	GraceBlocks *uint64 `json:"grace_blocks,omitempty"`
}

type GetFeeEstimateResult struct {
	Fee              uint64 `json:"fee"`
	QuantizationMask uint64 `json:"quantization_mask"`
	Status
}

// GetFeeEstimate returns the per-byte fee estimate. graceBlocks may be
// nil to use the daemon default.
func (c *Client) GetFeeEstimate(ctx context.Context, graceBlocks *uint64) (*GetFeeEstimateResult, error) {
	return call[GetFeeEstimateResult](ctx, c, "get_fee_estimate", getFeeEstimateParams{GraceBlocks: graceBlocks}, "fee")
}

type Chain struct {
	BlockHash  string `json:"block_hash"`
	Difficulty uint64 `json:"difficulty"`
	Height     uint64 `json:"height"`
	Length     uint64 `json:"length"`
}

type GetAlternateChainsResult struct {
	Chains []Chain `json:"chains"`
	Status
}

// GetAlternateChains lists alternative chains the daemon has seen.
func (c *Client) GetAlternateChains(ctx context.Context) (*GetAlternateChainsResult, error) {
	return call[GetAlternateChainsResult](ctx, c, "get_alternate_chains", nil, "status")
}

type RelayTxResult struct {
	Status
}

// RelayTx relays the given known transactions to the network.
func (c *Client) RelayTx(ctx context.Context, txids []string) (*RelayTxResult, error) {
	if len(txids) == 0 {
		return nil, &rpc.ValidationError{Method: "relay_tx", Reason: "no txids"}
	}
	return call[RelayTxResult](ctx, c, "relay_tx", map[string][]string{"txids": txids}, "status")
}

type SyncPeer struct {
	Info Connection `json:"info"`
}

type SyncSpan struct {
	ConnectionID string `json:"connection_id"`
	NBlocks      uint64 `json:"nblocks"`
	Rate         uint64 `json:"rate"`
	RemoteAddr   string `json:"remote_address"`
	Size         uint64 `json:"size"`
	Speed        uint64 `json:"speed"`
	StartHeight  uint64 `json:"start_block_height"`
}

type SyncInfoResult struct {
	Height       uint64     `json:"height"`
	Peers        []SyncPeer `json:"peers"`
	Spans        []SyncSpan `json:"spans"`
	TargetHeight uint64     `json:"target_height"`
	Status
}

// SyncInfo reports the daemon's synchronization progress.
func (c *Client) SyncInfo(ctx context.Context) (*SyncInfoResult, error) {
	return call[SyncInfoResult](ctx, c, "sync_info", nil, "height")
}

type BacklogEntry struct {
	BlobSize   uint64 `json:"blob_size"`
	Fee        uint64 `json:"fee"`
	TimeInPool uint64 `json:"time_in_pool"`
}

type GetTxpoolBacklogResult struct {
	Backlog []BacklogEntry `json:"backlog"`
	Status
}

// GetTxpoolBacklog returns a compact view of the pending transaction
// pool.
func (c *Client) GetTxpoolBacklog(ctx context.Context) (*GetTxpoolBacklogResult, error) {
	return call[GetTxpoolBacklogResult](ctx, c, "get_txpool_backlog", nil, "status")
}

// OutputDistributionOptions bound the get_output_distribution query.
type OutputDistributionOptions struct {
	FromHeight uint64
	ToHeight   uint64
	Cumulative bool
}

type getOutputDistributionParams struct {
	Amounts    []uint64 `json:"amounts" validate:"required,min=1"`
	FromHeight uint64   `json:"from_height"`
	ToHeight   uint64   `json:"to_height"`
	Cumulative bool     `json:"cumulative"`
	Binary     bool     `json:"binary"`
	Compress   bool     `json:"compress"`
}

type Distribution struct {
	Amount       uint64   `json:"amount"`
	Base         uint64   `json:"base"`
	Distribution []uint64 `json:"distribution"`
	StartHeight  uint64   `json:"start_height"`
}

type GetOutputDistributionResult struct {
	Distributions []Distribution `json:"distributions"`
	Status
}

// GetOutputDistribution returns the per-height output distribution for
// the given amounts. opts may be nil.
func (c *Client) GetOutputDistribution(ctx context.Context, amounts []uint64, opts *OutputDistributionOptions) (*GetOutputDistributionResult, error) {
	if opts == nil {
		opts = &OutputDistributionOptions{}
	}
	p := getOutputDistributionParams{
		Amounts:    amounts,
		FromHeight: opts.FromHeight,
		ToHeight:   opts.ToHeight,
		Cumulative: opts.Cumulative,
	}
	if err := rpc.ValidateParams("get_output_distribution", p); err != nil {
		return nil, err
	}
	return call[GetOutputDistributionResult](ctx, c, "get_output_distribution", p, "distributions")
}

type PruneBlockchainResult struct {
	Pruned      bool   `json:"pruned"`
	PruningSeed uint32 `json:"pruning_seed"`
	Status
}

// PruneBlockchain prunes the local copy of the blockchain.
func (c *Client) PruneBlockchain(ctx context.Context) (*PruneBlockchainResult, error) {
	return call[PruneBlockchainResult](ctx, c, "prune_blockchain", nil, "status")
}

type FlushCacheResult struct {
	Status
}

// FlushCache flushes the daemon's internal caches; badTxs also drops
// cached invalid transactions.
func (c *Client) FlushCache(ctx context.Context, badTxs bool) (*FlushCacheResult, error) {
	return call[FlushCacheResult](ctx, c, "flush_cache", map[string]bool{"bad_txs": badTxs}, "status")
}

type getGeneratedCoinsParams struct {
	Height *uint64 `json:"height,omitempty"`
}

type GetGeneratedCoinsResult struct {
	Coins uint64 `json:"coins"`
	Status
}

// GetGeneratedCoins returns the coins generated up to height, or up to
// the chain tip when height is nil.
func (c *Client) GetGeneratedCoins(ctx context.Context, height *uint64) (*GetGeneratedCoinsResult, error) {
	return call[GetGeneratedCoinsResult](ctx, c, "get_generated_coins", getGeneratedCoinsParams{Height: height}, "coins")
}

type GetMinVersionResult struct {
	Version uint32 `json:"version"`
	Status
}

// GetMinVersion returns the minimum daemon version the network accepts.
func (c *Client) GetMinVersion(ctx context.Context) (*GetMinVersionResult, error) {
	return call[GetMinVersionResult](ctx, c, "get_min_version", nil, "version")
}

type GetTxPubkeyResult struct {
	Pubkey string `json:"pubkey"`
	Status
}

// GetTxPubkey extracts the transaction public key from a tx_extra blob.
func (c *Client) GetTxPubkey(ctx context.Context, extra string) (*GetTxPubkeyResult, error) {
	if extra == "" {
		return nil, &rpc.ValidationError{Method: "get_tx_pubkey", Reason: "empty extra"}
	}
	return call[GetTxPubkeyResult](ctx, c, "get_tx_pubkey", map[string]string{"extra": extra}, "pubkey")
}

type decodeOutputsParams struct {
	TxHashes   []string `json:"tx_hashes" validate:"required,min=1"`
	SecViewKey string   `json:"sec_view_key" validate:"required"`
	Address    string   `json:"address" validate:"required"`
}

type DecodedOutput struct {
	Amount uint64 `json:"amount"`
	Index  uint64 `json:"index"`
	Spent  bool   `json:"spent"`
	TxHash string `json:"tx_hash"`
}

type DecodeOutputsResult struct {
	Outputs []DecodedOutput `json:"outputs"`
	Status
}

// DecodeOutputs decodes the outputs of the given transactions with a view
// key, returning the amounts paid to address.
func (c *Client) DecodeOutputs(ctx context.Context, txHashes []string, secViewKey, address string) (*DecodeOutputsResult, error) {
	p := decodeOutputsParams{TxHashes: txHashes, SecViewKey: secViewKey, Address: address}
	if err := rpc.ValidateParams("decode_outputs", p); err != nil {
		return nil, err
	}
	return call[DecodeOutputsResult](ctx, c, "decode_outputs", p, "outputs")
}

type AddPeerResult struct {
	Status
}

// AddPeer tells the daemon to connect to the given peer.
func (c *Client) AddPeer(ctx context.Context, host string) (*AddPeerResult, error) {
	if host == "" {
		return nil, &rpc.ValidationError{Method: "add_peer", Reason: "empty host"}
	}
	return call[AddPeerResult](ctx, c, "add_peer", map[string]string{"host": host}, "status")
}
