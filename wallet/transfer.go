package wallet

import (
	"context"

	"github.com/nerva-project/go-nerva/rpc"
)

// Destination is one transfer recipient.
type Destination struct {
	Amount  uint64 `json:"amount"`
	Address string `json:"address" validate:"required"`
}

// TransferOptions are the knobs shared by Transfer and TransferSplit.
// The zero value relays immediately with no mixing and no lock.
type TransferOptions struct {
	AccountIndex   uint32   `json:"account_index"`
	SubaddrIndices []uint32 `json:"subaddr_indices,omitempty"`
	Priority       uint32   `json:"priority"`
	Mixin          uint64   `json:"mixin"`
	RingSize       uint64   `json:"ring_size"`
	UnlockTime     uint64   `json:"unlock_time"`
	GetTxHex       bool     `json:"get_tx_hex"`
	GetTxMetadata  bool     `json:"get_tx_metadata"`
	DoNotRelay     bool     `json:"do_not_relay"`
	PaymentID      string   `json:"payment_id,omitempty" validate:"omitempty,len=64,hexadecimal"`
}

type transferParams struct {
	Destinations []Destination `json:"destinations" validate:"required,min=1,dive"`
	GetTxKey     bool          `json:"get_tx_key"`
	TransferOptions
}

type TransferResult struct {
	Amount        uint64 `json:"amount"`
	Fee           uint64 `json:"fee"`
	MultisigTxset string `json:"multisig_txset"`
	TxBlob        string `json:"tx_blob"`
	TxHash        string `json:"tx_hash"`
	TxKey         string `json:"tx_key"`
	TxMetadata    string `json:"tx_metadata"`
	UnsignedTxset string `json:"unsigned_txset"`
}

// Transfer sends from the wallet in a single transaction. opts may be
// nil.
func (c *Client) Transfer(ctx context.Context, destinations []Destination, getTxKey bool, opts *TransferOptions) (*TransferResult, error) {
	if opts == nil {
		opts = &TransferOptions{}
	}
	p := transferParams{Destinations: destinations, GetTxKey: getTxKey, TransferOptions: *opts}
	if err := rpc.ValidateParams("transfer", p); err != nil {
		return nil, err
	}
	return call[TransferResult](ctx, c, "transfer", p, "tx_hash")
}

type transferSplitParams struct {
	Destinations []Destination `json:"destinations" validate:"required,min=1,dive"`
	GetTxKeys    bool          `json:"get_tx_keys"`
	TransferOptions
}

type TransferSplitResult struct {
	AmountList    []uint64 `json:"amount_list"`
	FeeList       []uint64 `json:"fee_list"`
	MultisigTxset string   `json:"multisig_txset"`
	TxBlobList    []string `json:"tx_blob_list"`
	TxHashList    []string `json:"tx_hash_list"`
	TxKeyList     []string `json:"tx_key_list"`
	UnsignedTxset string   `json:"unsigned_txset"`
}

// TransferSplit sends from the wallet, splitting into several
// transactions when one would be too large. opts may be nil.
func (c *Client) TransferSplit(ctx context.Context, destinations []Destination, getTxKeys bool, opts *TransferOptions) (*TransferSplitResult, error) {
	if opts == nil {
		opts = &TransferOptions{}
	}
	p := transferSplitParams{Destinations: destinations, GetTxKeys: getTxKeys, TransferOptions: *opts}
	if err := rpc.ValidateParams("transfer_split", p); err != nil {
		return nil, err
	}
	return call[TransferSplitResult](ctx, c, "transfer_split", p, "tx_hash_list")
}

type signTransferParams struct {
	UnsignedTxset string `json:"unsigned_txset" validate:"required"`
	ExportRaw     bool   `json:"export_raw"`
}

type SignTransferResult struct {
	SignedTxset string   `json:"signed_txset"`
	TxHashList  []string `json:"tx_hash_list"`
	TxRawList   []string `json:"tx_raw_list"`
}

// SignTransfer signs a transaction set produced on a watch-only wallet.
func (c *Client) SignTransfer(ctx context.Context, unsignedTxset string, exportRaw bool) (*SignTransferResult, error) {
	p := signTransferParams{UnsignedTxset: unsignedTxset, ExportRaw: exportRaw}
	if err := rpc.ValidateParams("sign_transfer", p); err != nil {
		return nil, err
	}
	return call[SignTransferResult](ctx, c, "sign_transfer", p, "signed_txset")
}

// TransferDescription is one decoded unsigned transfer.
type TransferDescription struct {
	AmountIn      uint64        `json:"amount_in"`
	AmountOut     uint64        `json:"amount_out"`
	ChangeAddress string        `json:"change_address"`
	ChangeAmount  uint64        `json:"change_amount"`
	DummyOutputs  uint64        `json:"dummy_outputs"`
	Extra         string        `json:"extra"`
	Fee           uint64        `json:"fee"`
	PaymentID     string        `json:"payment_id"`
	Recipients    []Destination `json:"recipients"`
	RingSize      uint64        `json:"ring_size"`
	UnlockTime    uint64        `json:"unlock_time"`
}

type DescribeTransferResult struct {
	Desc []TransferDescription `json:"desc"`
}

// DescribeTransfer decodes an unsigned transaction set without signing
// it.
func (c *Client) DescribeTransfer(ctx context.Context, unsignedTxset string) (*DescribeTransferResult, error) {
	if unsignedTxset == "" {
		return nil, &rpc.ValidationError{Method: "describe_transfer", Reason: "empty unsigned txset"}
	}
	return call[DescribeTransferResult](ctx, c, "describe_transfer", map[string]string{"unsigned_txset": unsignedTxset}, "desc")
}

type SubmitTransferResult struct {
	TxHashList []string `json:"tx_hash_list"`
}

// SubmitTransfer broadcasts a previously signed transaction set.
func (c *Client) SubmitTransfer(ctx context.Context, txDataHex string) (*SubmitTransferResult, error) {
	if txDataHex == "" {
		return nil, &rpc.ValidationError{Method: "submit_transfer", Reason: "empty tx data"}
	}
	return call[SubmitTransferResult](ctx, c, "submit_transfer", map[string]string{"tx_data_hex": txDataHex}, "tx_hash_list")
}

// SweepOptions tune the sweep_dust output flags.
type SweepOptions struct {
	GetTxKeys     bool `json:"get_tx_keys"`
	DoNotRelay    bool `json:"do_not_relay"`
	GetTxHex      bool `json:"get_tx_hex"`
	GetTxMetadata bool `json:"get_tx_metadata"`
}

type SweepResult struct {
	AmountList     []uint64 `json:"amount_list"`
	FeeList        []uint64 `json:"fee_list"`
	MultisigTxset  string   `json:"multisig_txset"`
	TxBlobList     []string `json:"tx_blob_list"`
	TxHashList     []string `json:"tx_hash_list"`
	TxKeyList      []string `json:"tx_key_list"`
	TxMetadataList []string `json:"tx_metadata_list"`
	UnsignedTxset  string   `json:"unsigned_txset"`
}

// SweepDust sends all dust outputs back to the wallet to make them
// easier to spend. opts may be nil.
func (c *Client) SweepDust(ctx context.Context, opts *SweepOptions) (*SweepResult, error) {
	if opts == nil {
		opts = &SweepOptions{}
	}
	return call[SweepResult](ctx, c, "sweep_dust", opts)
}

// SweepUnmixable sweeps outputs that cannot be mixed.
func (c *Client) SweepUnmixable(ctx context.Context) (*SweepResult, error) {
	return call[SweepResult](ctx, c, "sweep_unmixable", nil)
}

type sweepAllParams struct {
	Address        string   `json:"address" validate:"required"`
	AccountIndex   uint32   `json:"account_index"`
	SubaddrIndices []uint32 `json:"subaddr_indices,omitempty"`
	Priority       uint32   `json:"priority"`
	Mixin          uint64   `json:"mixin"`
	RingSize       uint64   `json:"ring_size"`
	UnlockTime     uint64   `json:"unlock_time"`
	GetTxKeys      bool     `json:"get_tx_keys"`
	BelowAmount    uint64   `json:"below_amount"`
	DoNotRelay     bool     `json:"do_not_relay"`
	GetTxHex       bool     `json:"get_tx_hex"`
	GetTxMetadata  bool     `json:"get_tx_metadata"`
	PaymentID      string   `json:"payment_id,omitempty" validate:"omitempty,len=64,hexadecimal"`
}

// SweepAllOptions tune a sweep_all call beyond the destination.
type SweepAllOptions struct {
	AccountIndex   uint32
	SubaddrIndices []uint32
	Priority       uint32
	Mixin          uint64
	RingSize       uint64
	UnlockTime     uint64
	GetTxKeys      bool
	BelowAmount    uint64
	DoNotRelay     bool
	GetTxHex       bool
	GetTxMetadata  bool
	PaymentID      string
}

// SweepAll sends every unlocked output of an account to address. opts
// may be nil.
func (c *Client) SweepAll(ctx context.Context, address string, opts *SweepAllOptions) (*SweepResult, error) {
	if opts == nil {
		opts = &SweepAllOptions{}
	}
	p := sweepAllParams{
		Address:        address,
		AccountIndex:   opts.AccountIndex,
		SubaddrIndices: opts.SubaddrIndices,
		Priority:       opts.Priority,
		Mixin:          opts.Mixin,
		RingSize:       opts.RingSize,
		UnlockTime:     opts.UnlockTime,
		GetTxKeys:      opts.GetTxKeys,
		BelowAmount:    opts.BelowAmount,
		DoNotRelay:     opts.DoNotRelay,
		GetTxHex:       opts.GetTxHex,
		GetTxMetadata:  opts.GetTxMetadata,
		PaymentID:      opts.PaymentID,
	}
	if err := rpc.ValidateParams("sweep_all", p); err != nil {
		return nil, err
	}
	return call[SweepResult](ctx, c, "sweep_all", p, "tx_hash_list")
}

type sweepSingleParams struct {
	Address       string `json:"address" validate:"required"`
	KeyImage      string `json:"key_image,omitempty"`
	Priority      uint32 `json:"priority"`
	Mixin         uint64 `json:"mixin"`
	RingSize      uint64 `json:"ring_size"`
	UnlockTime    uint64 `json:"unlock_time"`
	GetTxKey      bool   `json:"get_tx_key"`
	GetTxHex      bool   `json:"get_tx_hex"`
	GetTxMetadata bool   `json:"get_tx_metadata"`
	DoNotRelay    bool   `json:"do_not_relay"`
	PaymentID     string `json:"payment_id,omitempty" validate:"omitempty,len=64,hexadecimal"`
}

// SweepSingleOptions tune a sweep_single call.
type SweepSingleOptions struct {
	KeyImage      string
	Priority      uint32
	Mixin         uint64
	RingSize      uint64
	UnlockTime    uint64
	GetTxKey      bool
	GetTxHex      bool
	GetTxMetadata bool
	DoNotRelay    bool
	PaymentID     string
}

type SweepSingleResult struct {
	Amount        uint64 `json:"amount"`
	Fee           uint64 `json:"fee"`
	MultisigTxset string `json:"multisig_txset"`
	TxBlob        string `json:"tx_blob"`
	TxHash        string `json:"tx_hash"`
	TxKey         string `json:"tx_key"`
	TxMetadata    string `json:"tx_metadata"`
	UnsignedTxset string `json:"unsigned_txset"`
}

// SweepSingle sends one output to address. opts may be nil.
func (c *Client) SweepSingle(ctx context.Context, address string, opts *SweepSingleOptions) (*SweepSingleResult, error) {
	if opts == nil {
		opts = &SweepSingleOptions{}
	}
	p := sweepSingleParams{
		Address:       address,
		KeyImage:      opts.KeyImage,
		Priority:      opts.Priority,
		Mixin:         opts.Mixin,
		RingSize:      opts.RingSize,
		UnlockTime:    opts.UnlockTime,
		GetTxKey:      opts.GetTxKey,
		GetTxHex:      opts.GetTxHex,
		GetTxMetadata: opts.GetTxMetadata,
		DoNotRelay:    opts.DoNotRelay,
		PaymentID:     opts.PaymentID,
	}
	if err := rpc.ValidateParams("sweep_single", p); err != nil {
		return nil, err
	}
	return call[SweepSingleResult](ctx, c, "sweep_single", p, "tx_hash")
}

type RelayTxResult struct {
	TxHash string `json:"tx_hash"`
}

// RelayTx broadcasts a transaction previously created with DoNotRelay.
// The wallet RPC takes the blob under the key "hex".
func (c *Client) RelayTx(ctx context.Context, txHex string) (*RelayTxResult, error) {
	if txHex == "" {
		return nil, &rpc.ValidationError{Method: "relay_tx", Reason: "empty tx hex"}
	}
	return call[RelayTxResult](ctx, c, "relay_tx", map[string]string{"hex": txHex}, "tx_hash")
}

type StoreResult struct{}

// Store saves the wallet file.
func (c *Client) Store(ctx context.Context) (*StoreResult, error) {
	return call[StoreResult](ctx, c, "store", nil)
}

// Payment is one incoming payment.
type Payment struct {
	Address      string          `json:"address"`
	Amount       uint64          `json:"amount"`
	BlockHeight  uint64          `json:"block_height"`
	PaymentID    string          `json:"payment_id"`
	SubaddrIndex SubaddressIndex `json:"subaddr_index"`
	TxHash       string          `json:"tx_hash"`
	UnlockTime   uint64          `json:"unlock_time"`
}

type GetPaymentsResult struct {
	Payments []Payment `json:"payments"`
}

// GetPayments lists incoming payments carrying the given payment id.
func (c *Client) GetPayments(ctx context.Context, paymentID string) (*GetPaymentsResult, error) {
	if paymentID == "" {
		return nil, &rpc.ValidationError{Method: "get_payments", Reason: "empty payment id"}
	}
	return call[GetPaymentsResult](ctx, c, "get_payments", map[string]string{"payment_id": paymentID})
}

type getBulkPaymentsParams struct {
	PaymentIDs     []string `json:"payment_ids" validate:"required,min=1"`
	MinBlockHeight uint64   `json:"min_block_height"`
}

// GetBulkPayments lists incoming payments for several payment ids at
// once, scanning from minBlockHeight.
func (c *Client) GetBulkPayments(ctx context.Context, paymentIDs []string, minBlockHeight uint64) (*GetPaymentsResult, error) {
	p := getBulkPaymentsParams{PaymentIDs: paymentIDs, MinBlockHeight: minBlockHeight}
	if err := rpc.ValidateParams("get_bulk_payments", p); err != nil {
		return nil, err
	}
	return call[GetPaymentsResult](ctx, c, "get_bulk_payments", p)
}

// TransferType selects which outputs incoming_transfers returns.
type TransferType string

const (
	TransferAll         TransferType = "all"
	TransferAvailable   TransferType = "available"
	TransferUnavailable TransferType = "unavailable"
)

type incomingTransfersParams struct {
	TransferType   TransferType `json:"transfer_type"`
	AccountIndex   uint32       `json:"account_index"`
	SubaddrIndices []uint32     `json:"subaddr_indices,omitempty"`
	Verbose        bool         `json:"verbose"`
}

// IncomingTransfer is one output owned by the wallet.
type IncomingTransfer struct {
	Amount       uint64          `json:"amount"`
	BlockHeight  uint64          `json:"block_height"`
	Frozen       bool            `json:"frozen"`
	GlobalIndex  uint64          `json:"global_index"`
	KeyImage     string          `json:"key_image"`
	Spent        bool            `json:"spent"`
	SubaddrIndex SubaddressIndex `json:"subaddr_index"`
	TxHash       string          `json:"tx_hash"`
	Unlocked     bool            `json:"unlocked"`
}

type IncomingTransfersResult struct {
	Transfers []IncomingTransfer `json:"transfers"`
}

// IncomingTransfers lists outputs received by an account, filtered by
// spent status.
func (c *Client) IncomingTransfers(ctx context.Context, transferType TransferType, accountIndex uint32, subaddrIndices []uint32, verbose bool) (*IncomingTransfersResult, error) {
	switch transferType {
	case TransferAll, TransferAvailable, TransferUnavailable:
	default:
		return nil, &rpc.ValidationError{Method: "incoming_transfers", Reason: "unknown transfer type " + string(transferType)}
	}
	p := incomingTransfersParams{
		TransferType:   transferType,
		AccountIndex:   accountIndex,
		SubaddrIndices: subaddrIndices,
		Verbose:        verbose,
	}
	return call[IncomingTransfersResult](ctx, c, "incoming_transfers", p)
}

// GetTransfersFilter selects which transfer categories and heights
// get_transfers returns. The wire keys for In and Out are "in" and
// "out".
type GetTransfersFilter struct {
	In             bool     `json:"in"`
	Out            bool     `json:"out"`
	Pending        bool     `json:"pending"`
	Failed         bool     `json:"failed"`
	Pool           bool     `json:"pool"`
	FilterByHeight bool     `json:"filter_by_height"`
	MinHeight      *uint64  `json:"min_height,omitempty"`
	MaxHeight      *uint64  `json:"max_height,omitempty"`
	AccountIndex   uint32   `json:"account_index"`
	SubaddrIndices []uint32 `json:"subaddr_indices,omitempty"`
}

// TransferEntry is one entry of the wallet's transfer history.
type TransferEntry struct {
	Address                         string            `json:"address"`
	Amount                          uint64            `json:"amount"`
	Confirmations                   uint64            `json:"confirmations"`
	Destinations                    []Destination     `json:"destinations"`
	DoubleSpendSeen                 bool              `json:"double_spend_seen"`
	Fee                             uint64            `json:"fee"`
	Height                          uint64            `json:"height"`
	Note                            string            `json:"note"`
	PaymentID                       string            `json:"payment_id"`
	SubaddrIndex                    SubaddressIndex   `json:"subaddr_index"`
	SubaddrIndices                  []SubaddressIndex `json:"subaddr_indices"`
	SuggestedConfirmationsThreshold uint64            `json:"suggested_confirmations_threshold"`
	Timestamp                       int64             `json:"timestamp"`
	TxID                            string            `json:"txid"`
	Type                            string            `json:"type"`
	UnlockTime                      uint64            `json:"unlock_time"`
}

type GetTransfersResult struct {
	In      []TransferEntry `json:"in"`
	Out     []TransferEntry `json:"out"`
	Pending []TransferEntry `json:"pending"`
	Failed  []TransferEntry `json:"failed"`
	Pool    []TransferEntry `json:"pool"`
}

// GetTransfers returns the wallet's transfer history per the filter.
func (c *Client) GetTransfers(ctx context.Context, filter GetTransfersFilter) (*GetTransfersResult, error) {
	return call[GetTransfersResult](ctx, c, "get_transfers", filter)
}

type getTransferByTxIDParams struct {
	TxID         string  `json:"txid" validate:"required"`
	AccountIndex *uint32 `json:"account_index,omitempty"`
}

type GetTransferByTxIDResult struct {
	Transfer  TransferEntry   `json:"transfer"`
	Transfers []TransferEntry `json:"transfers"`
}

// GetTransferByTxID looks a transfer up by transaction id. accountIndex
// may be nil to search all accounts.
func (c *Client) GetTransferByTxID(ctx context.Context, txid string, accountIndex *uint32) (*GetTransferByTxIDResult, error) {
	p := getTransferByTxIDParams{TxID: txid, AccountIndex: accountIndex}
	if err := rpc.ValidateParams("get_transfer_by_txid", p); err != nil {
		return nil, err
	}
	return call[GetTransferByTxIDResult](ctx, c, "get_transfer_by_txid", p, "transfer")
}

type setTxNotesParams struct {
	TxIDs []string `json:"txids" validate:"required,min=1"`
	Notes []string `json:"notes" validate:"required,min=1"`
}

type SetTxNotesResult struct{}

// SetTxNotes attaches notes to transactions, pairing txids with notes
// by position.
func (c *Client) SetTxNotes(ctx context.Context, txids, notes []string) (*SetTxNotesResult, error) {
	p := setTxNotesParams{TxIDs: txids, Notes: notes}
	if err := rpc.ValidateParams("set_tx_notes", p); err != nil {
		return nil, err
	}
	if len(txids) != len(notes) {
		return nil, &rpc.ValidationError{Method: "set_tx_notes", Reason: "txids and notes differ in length"}
	}
	return call[SetTxNotesResult](ctx, c, "set_tx_notes", p)
}

type GetTxNotesResult struct {
	Notes []string `json:"notes"`
}

// GetTxNotes reads the notes attached to the given transactions.
func (c *Client) GetTxNotes(ctx context.Context, txids []string) (*GetTxNotesResult, error) {
	if len(txids) == 0 {
		return nil, &rpc.ValidationError{Method: "get_tx_notes", Reason: "no txids"}
	}
	return call[GetTxNotesResult](ctx, c, "get_tx_notes", map[string][]string{"txids": txids}, "notes")
}

type GetTxKeyResult struct {
	TxKey string `json:"tx_key"`
}

// GetTxKey returns the secret key of one of the wallet's transactions.
func (c *Client) GetTxKey(ctx context.Context, txid string) (*GetTxKeyResult, error) {
	if txid == "" {
		return nil, &rpc.ValidationError{Method: "get_tx_key", Reason: "empty txid"}
	}
	return call[GetTxKeyResult](ctx, c, "get_tx_key", map[string]string{"txid": txid}, "tx_key")
}

type checkTxKeyParams struct {
	TxID    string `json:"txid" validate:"required"`
	TxKey   string `json:"tx_key" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type CheckTxKeyResult struct {
	Confirmations uint64 `json:"confirmations"`
	InPool        bool   `json:"in_pool"`
	Received      uint64 `json:"received"`
}

// CheckTxKey proves a payment to address using the transaction's secret
// key.
func (c *Client) CheckTxKey(ctx context.Context, txid, txKey, address string) (*CheckTxKeyResult, error) {
	p := checkTxKeyParams{TxID: txid, TxKey: txKey, Address: address}
	if err := rpc.ValidateParams("check_tx_key", p); err != nil {
		return nil, err
	}
	return call[CheckTxKeyResult](ctx, c, "check_tx_key", p, "received")
}

type getTxProofParams struct {
	TxID    string `json:"txid" validate:"required"`
	Address string `json:"address" validate:"required"`
	Message string `json:"message,omitempty"`
}

type GetTxProofResult struct {
	Signature string `json:"signature"`
}

// GetTxProof generates a signature proving a payment to address.
func (c *Client) GetTxProof(ctx context.Context, txid, address, message string) (*GetTxProofResult, error) {
	p := getTxProofParams{TxID: txid, Address: address, Message: message}
	if err := rpc.ValidateParams("get_tx_proof", p); err != nil {
		return nil, err
	}
	return call[GetTxProofResult](ctx, c, "get_tx_proof", p, "signature")
}

type checkTxProofParams struct {
	TxID      string `json:"txid" validate:"required"`
	Address   string `json:"address" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	Message   string `json:"message,omitempty"`
}

type CheckTxProofResult struct {
	Confirmations uint64 `json:"confirmations"`
	Good          bool   `json:"good"`
	InPool        bool   `json:"in_pool"`
	Received      uint64 `json:"received"`
}

// CheckTxProof verifies a signature generated by GetTxProof.
func (c *Client) CheckTxProof(ctx context.Context, txid, address, signature, message string) (*CheckTxProofResult, error) {
	p := checkTxProofParams{TxID: txid, Address: address, Signature: signature, Message: message}
	if err := rpc.ValidateParams("check_tx_proof", p); err != nil {
		return nil, err
	}
	return call[CheckTxProofResult](ctx, c, "check_tx_proof", p, "good")
}

type getSpendProofParams struct {
	TxID    string `json:"txid" validate:"required"`
	Message string `json:"message,omitempty"`
}

type GetSpendProofResult struct {
	Signature string `json:"signature"`
}

// GetSpendProof generates a signature proving the wallet made a spend.
func (c *Client) GetSpendProof(ctx context.Context, txid, message string) (*GetSpendProofResult, error) {
	p := getSpendProofParams{TxID: txid, Message: message}
	if err := rpc.ValidateParams("get_spend_proof", p); err != nil {
		return nil, err
	}
	return call[GetSpendProofResult](ctx, c, "get_spend_proof", p, "signature")
}

type checkSpendProofParams struct {
	TxID      string `json:"txid" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	Message   string `json:"message,omitempty"`
}

type CheckSpendProofResult struct {
	Good bool `json:"good"`
}

// CheckSpendProof verifies a signature generated by GetSpendProof.
func (c *Client) CheckSpendProof(ctx context.Context, txid, signature, message string) (*CheckSpendProofResult, error) {
	p := checkSpendProofParams{TxID: txid, Signature: signature, Message: message}
	if err := rpc.ValidateParams("check_spend_proof", p); err != nil {
		return nil, err
	}
	return call[CheckSpendProofResult](ctx, c, "check_spend_proof", p, "good")
}

type getReserveProofParams struct {
	All          bool   `json:"all"`
	AccountIndex uint32 `json:"account_index"`
	Amount       uint64 `json:"amount"`
	Message      string `json:"message,omitempty"`
}

type GetReserveProofResult struct {
	Signature string `json:"signature"`
}

// GetReserveProof generates a signature proving the wallet holds at
// least amount, or the full reserve when all is set. The wire key for
// all is "all".
func (c *Client) GetReserveProof(ctx context.Context, all bool, accountIndex uint32, amount uint64, message string) (*GetReserveProofResult, error) {
	p := getReserveProofParams{All: all, AccountIndex: accountIndex, Amount: amount, Message: message}
	return call[GetReserveProofResult](ctx, c, "get_reserve_proof", p, "signature")
}

type checkReserveProofParams struct {
	Address   string `json:"address" validate:"required"`
	Signature string `json:"signature" validate:"required"`
	Message   string `json:"message,omitempty"`
}

type CheckReserveProofResult struct {
	Good  bool   `json:"good"`
	Spent uint64 `json:"spent"`
	Total uint64 `json:"total"`
}

// CheckReserveProof verifies a signature generated by GetReserveProof.
func (c *Client) CheckReserveProof(ctx context.Context, address, signature, message string) (*CheckReserveProofResult, error) {
	p := checkReserveProofParams{Address: address, Signature: signature, Message: message}
	if err := rpc.ValidateParams("check_reserve_proof", p); err != nil {
		return nil, err
	}
	return call[CheckReserveProofResult](ctx, c, "check_reserve_proof", p, "good")
}

type ExportOutputsResult struct {
	OutputsDataHex string `json:"outputs_data_hex"`
}

// ExportOutputs exports the wallet's outputs in hex.
func (c *Client) ExportOutputs(ctx context.Context) (*ExportOutputsResult, error) {
	return call[ExportOutputsResult](ctx, c, "export_outputs", nil, "outputs_data_hex")
}

type ImportOutputsResult struct {
	NumImported uint64 `json:"num_imported"`
}

// ImportOutputs imports outputs exported from another copy of the
// wallet.
func (c *Client) ImportOutputs(ctx context.Context, outputsDataHex string) (*ImportOutputsResult, error) {
	if outputsDataHex == "" {
		return nil, &rpc.ValidationError{Method: "import_outputs", Reason: "empty outputs data"}
	}
	return call[ImportOutputsResult](ctx, c, "import_outputs", map[string]string{"outputs_data_hex": outputsDataHex}, "num_imported")
}

// SignedKeyImage pairs a key image with its signature.
type SignedKeyImage struct {
	KeyImage  string `json:"key_image"`
	Signature string `json:"signature"`
}

type ExportKeyImagesResult struct {
	Offset          uint64           `json:"offset"`
	SignedKeyImages []SignedKeyImage `json:"signed_key_images"`
}

// ExportKeyImages exports the wallet's signed key images.
func (c *Client) ExportKeyImages(ctx context.Context) (*ExportKeyImagesResult, error) {
	return call[ExportKeyImagesResult](ctx, c, "export_key_images", nil)
}

type importKeyImagesParams struct {
	SignedKeyImages []SignedKeyImage `json:"signed_key_images" validate:"required,min=1"`
}

type ImportKeyImagesResult struct {
	Height  uint64 `json:"height"`
	Spent   uint64 `json:"spent"`
	Unspent uint64 `json:"unspent"`
}

// ImportKeyImages imports signed key images and recomputes their spent
// status.
func (c *Client) ImportKeyImages(ctx context.Context, signedKeyImages []SignedKeyImage) (*ImportKeyImagesResult, error) {
	p := importKeyImagesParams{SignedKeyImages: signedKeyImages}
	if err := rpc.ValidateParams("import_key_images", p); err != nil {
		return nil, err
	}
	return call[ImportKeyImagesResult](ctx, c, "import_key_images", p, "height")
}

type makeURIParams struct {
	Address       string  `json:"address" validate:"required"`
	Amount        *uint64 `json:"amount,omitempty"`
	PaymentID     string  `json:"payment_id,omitempty" validate:"omitempty,len=64,hexadecimal"`
	RecipientName string  `json:"recipient_name,omitempty"`
	TxDescription string  `json:"tx_description,omitempty"`
}

// MakeURIOptions are the optional fields of a payment URI.
type MakeURIOptions struct {
	Amount        *uint64
	PaymentID     string
	RecipientName string
	TxDescription string
}

type MakeURIResult struct {
	URI string `json:"uri"`
}

// MakeURI builds a payment URI for address. opts may be nil.
func (c *Client) MakeURI(ctx context.Context, address string, opts *MakeURIOptions) (*MakeURIResult, error) {
	if opts == nil {
		opts = &MakeURIOptions{}
	}
	p := makeURIParams{
		Address:       address,
		Amount:        opts.Amount,
		PaymentID:     opts.PaymentID,
		RecipientName: opts.RecipientName,
		TxDescription: opts.TxDescription,
	}
	if err := rpc.ValidateParams("make_uri", p); err != nil {
		return nil, err
	}
	return call[MakeURIResult](ctx, c, "make_uri", p, "uri")
}

// URI is a decoded payment URI.
type URI struct {
	Address       string `json:"address"`
	Amount        uint64 `json:"amount"`
	PaymentID     string `json:"payment_id"`
	RecipientName string `json:"recipient_name"`
	TxDescription string `json:"tx_description"`
}

type ParseURIResult struct {
	URI URI `json:"uri"`
}

// ParseURI decodes a payment URI.
func (c *Client) ParseURI(ctx context.Context, uri string) (*ParseURIResult, error) {
	if uri == "" {
		return nil, &rpc.ValidationError{Method: "parse_uri", Reason: "empty uri"}
	}
	return call[ParseURIResult](ctx, c, "parse_uri", map[string]string{"uri": uri}, "uri")
}

// AddressBookEntry is one saved contact.
type AddressBookEntry struct {
	Address     string `json:"address"`
	Description string `json:"description"`
	Index       uint64 `json:"index"`
	PaymentID   string `json:"payment_id"`
}

type GetAddressBookResult struct {
	Entries []AddressBookEntry `json:"entries"`
}

// GetAddressBook returns the address book entries at the given indices,
// or all of them when indices is empty.
func (c *Client) GetAddressBook(ctx context.Context, entries []uint64) (*GetAddressBookResult, error) {
	if entries == nil {
		entries = []uint64{}
	}
	return call[GetAddressBookResult](ctx, c, "get_address_book", map[string][]uint64{"entries": entries}, "entries")
}

type addAddressBookParams struct {
	Address     string `json:"address" validate:"required"`
	PaymentID   string `json:"payment_id,omitempty" validate:"omitempty,len=64,hexadecimal"`
	Description string `json:"description,omitempty"`
}

type AddAddressBookResult struct {
	Index uint64 `json:"index"`
}

// AddAddressBook adds an entry to the address book.
func (c *Client) AddAddressBook(ctx context.Context, address, paymentID, description string) (*AddAddressBookResult, error) {
	p := addAddressBookParams{Address: address, PaymentID: paymentID, Description: description}
	if err := rpc.ValidateParams("add_address_book", p); err != nil {
		return nil, err
	}
	return call[AddAddressBookResult](ctx, c, "add_address_book", p, "index")
}

// EditAddressBookOptions say which fields of an entry to change. A Set
// flag false leaves the field untouched.
type EditAddressBookOptions struct {
	SetAddress     bool   `json:"set_address"`
	Address        string `json:"address,omitempty"`
	SetDescription bool   `json:"set_description"`
	Description    string `json:"description,omitempty"`
	SetPaymentID   bool   `json:"set_payment_id"`
	PaymentID      string `json:"payment_id,omitempty"`
}

type editAddressBookParams struct {
	Index uint64 `json:"index"`
	EditAddressBookOptions
}

type EditAddressBookResult struct{}

// EditAddressBook edits an existing address book entry in place.
func (c *Client) EditAddressBook(ctx context.Context, index uint64, opts EditAddressBookOptions) (*EditAddressBookResult, error) {
	p := editAddressBookParams{Index: index, EditAddressBookOptions: opts}
	return call[EditAddressBookResult](ctx, c, "edit_address_book", p)
}

type DeleteAddressBookResult struct{}

// DeleteAddressBook removes an entry from the address book.
func (c *Client) DeleteAddressBook(ctx context.Context, index uint64) (*DeleteAddressBookResult, error) {
	return call[DeleteAddressBookResult](ctx, c, "delete_address_book", map[string]uint64{"index": index})
}
