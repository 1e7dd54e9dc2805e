package wallet

import (
	"context"

	"github.com/nerva-project/go-nerva/rpc"
)

type createWalletParams struct {
	Filename string `json:"filename" validate:"required"`
	Password string `json:"password"`
	Language string `json:"language" validate:"required"`
}

type CreateWalletResult struct{}

// CreateWallet creates a new wallet file on the server. The server must
// run with --wallet-dir for this to work.
func (c *Client) CreateWallet(ctx context.Context, filename, password, language string) (*CreateWalletResult, error) {
	p := createWalletParams{Filename: filename, Password: password, Language: language}
	if err := rpc.ValidateParams("create_wallet", p); err != nil {
		return nil, err
	}
	return call[CreateWalletResult](ctx, c, "create_wallet", p)
}

type createHWWalletParams struct {
	Filename      string `json:"filename" validate:"required"`
	Language      string `json:"language" validate:"required"`
	DeviceName    string `json:"device_name" validate:"required"`
	RestoreHeight uint64 `json:"restore_height"`
}

type CreateHWWalletResult struct{}

// CreateHWWallet creates a wallet file backed by a hardware device.
func (c *Client) CreateHWWallet(ctx context.Context, filename, language, deviceName string, restoreHeight uint64) (*CreateHWWalletResult, error) {
	p := createHWWalletParams{
		Filename:      filename,
		Language:      language,
		DeviceName:    deviceName,
		RestoreHeight: restoreHeight,
	}
	if err := rpc.ValidateParams("create_hw_wallet", p); err != nil {
		return nil, err
	}
	return call[CreateHWWalletResult](ctx, c, "create_hw_wallet", p)
}

type openWalletParams struct {
	Filename string `json:"filename" validate:"required"`
	Password string `json:"password"`
}

type OpenWalletResult struct{}

// OpenWallet opens a wallet file on the server, closing any wallet that
// is currently open.
func (c *Client) OpenWallet(ctx context.Context, filename, password string) (*OpenWalletResult, error) {
	p := openWalletParams{Filename: filename, Password: password}
	if err := rpc.ValidateParams("open_wallet", p); err != nil {
		return nil, err
	}
	return call[OpenWalletResult](ctx, c, "open_wallet", p)
}

type CloseWalletResult struct{}

// CloseWallet stores and closes the currently open wallet.
func (c *Client) CloseWallet(ctx context.Context) (*CloseWalletResult, error) {
	return call[CloseWalletResult](ctx, c, "close_wallet", nil)
}

type changeWalletPasswordParams struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ChangeWalletPasswordResult struct{}

// ChangeWalletPassword changes the open wallet's password.
func (c *Client) ChangeWalletPassword(ctx context.Context, oldPassword, newPassword string) (*ChangeWalletPasswordResult, error) {
	p := changeWalletPasswordParams{OldPassword: oldPassword, NewPassword: newPassword}
	return call[ChangeWalletPasswordResult](ctx, c, "change_wallet_password", p)
}

type restoreWalletFromSeedParams struct {
	Filename      string `json:"filename" validate:"required"`
	Seed          string `json:"seed" validate:"required"`
	RestoreHeight uint64 `json:"restore_height"`
}

type RestoreWalletResult struct {
	Address string `json:"address"`
	Info    string `json:"info"`
	Seed    string `json:"seed"`
}

// RestoreWalletFromSeed restores a wallet from its mnemonic seed,
// scanning from restoreHeight.
func (c *Client) RestoreWalletFromSeed(ctx context.Context, filename, seed string, restoreHeight uint64) (*RestoreWalletResult, error) {
	p := restoreWalletFromSeedParams{Filename: filename, Seed: seed, RestoreHeight: restoreHeight}
	if err := rpc.ValidateParams("restore_wallet_from_seed", p); err != nil {
		return nil, err
	}
	return call[RestoreWalletResult](ctx, c, "restore_wallet_from_seed", p)
}

type restoreWalletFromKeysParams struct {
	Filename      string `json:"filename" validate:"required"`
	Address       string `json:"address" validate:"required"`
	Viewkey       string `json:"viewkey" validate:"required"`
	Spendkey      string `json:"spendkey"`
	RestoreHeight uint64 `json:"restore_height"`
}

// RestoreWalletFromKeys restores a wallet from its address and keys. An
// empty spendkey restores a watch-only wallet.
func (c *Client) RestoreWalletFromKeys(ctx context.Context, filename, address, viewkey, spendkey string, restoreHeight uint64) (*RestoreWalletResult, error) {
	p := restoreWalletFromKeysParams{
		Filename:      filename,
		Address:       address,
		Viewkey:       viewkey,
		Spendkey:      spendkey,
		RestoreHeight: restoreHeight,
	}
	if err := rpc.ValidateParams("restore_wallet_from_keys", p); err != nil {
		return nil, err
	}
	return call[RestoreWalletResult](ctx, c, "restore_wallet_from_keys", p)
}

type IsMultisigResult struct {
	Multisig  bool   `json:"multisig"`
	Ready     bool   `json:"ready"`
	Threshold uint32 `json:"threshold"`
	Total     uint32 `json:"total"`
}

// IsMultisig reports whether the open wallet is multisig.
func (c *Client) IsMultisig(ctx context.Context) (*IsMultisigResult, error) {
	return call[IsMultisigResult](ctx, c, "is_multisig", nil, "multisig")
}

type PrepareMultisigResult struct {
	MultisigInfo string `json:"multisig_info"`
}

// PrepareMultisig starts turning the wallet into a multisig wallet and
// returns the info string to hand to the other participants.
func (c *Client) PrepareMultisig(ctx context.Context) (*PrepareMultisigResult, error) {
	return call[PrepareMultisigResult](ctx, c, "prepare_multisig", nil, "multisig_info")
}

type makeMultisigParams struct {
	MultisigInfo []string `json:"multisig_info" validate:"required,min=1"`
	Threshold    uint32   `json:"threshold" validate:"required"`
	Password     string   `json:"password"`
}

type MakeMultisigResult struct {
	Address      string `json:"address"`
	MultisigInfo string `json:"multisig_info"`
}

// MakeMultisig turns the wallet multisig using the other participants'
// info strings.
func (c *Client) MakeMultisig(ctx context.Context, multisigInfo []string, threshold uint32, password string) (*MakeMultisigResult, error) {
	p := makeMultisigParams{MultisigInfo: multisigInfo, Threshold: threshold, Password: password}
	if err := rpc.ValidateParams("make_multisig", p); err != nil {
		return nil, err
	}
	return call[MakeMultisigResult](ctx, c, "make_multisig", p, "address")
}

type ExportMultisigInfoResult struct {
	Info string `json:"info"`
}

// ExportMultisigInfo exports this participant's partial key images.
func (c *Client) ExportMultisigInfo(ctx context.Context) (*ExportMultisigInfoResult, error) {
	return call[ExportMultisigInfoResult](ctx, c, "export_multisig_info", nil, "info")
}

type ImportMultisigInfoResult struct {
	NOutputs uint64 `json:"n_outputs"`
}

// ImportMultisigInfo imports the other participants' partial key
// images.
func (c *Client) ImportMultisigInfo(ctx context.Context, info []string) (*ImportMultisigInfoResult, error) {
	if len(info) == 0 {
		return nil, &rpc.ValidationError{Method: "import_multisig_info", Reason: "no multisig info"}
	}
	return call[ImportMultisigInfoResult](ctx, c, "import_multisig_info", map[string][]string{"info": info}, "n_outputs")
}

type finalizeMultisigParams struct {
	MultisigInfo []string `json:"multisig_info" validate:"required,min=1"`
	Password     string   `json:"password"`
}

type FinalizeMultisigResult struct {
	Address string `json:"address"`
}

// FinalizeMultisig completes an N-1/N multisig wallet setup.
func (c *Client) FinalizeMultisig(ctx context.Context, multisigInfo []string, password string) (*FinalizeMultisigResult, error) {
	p := finalizeMultisigParams{MultisigInfo: multisigInfo, Password: password}
	if err := rpc.ValidateParams("finalize_multisig", p); err != nil {
		return nil, err
	}
	return call[FinalizeMultisigResult](ctx, c, "finalize_multisig", p, "address")
}

type ExchangeMultisigKeysResult struct {
	Address      string `json:"address"`
	MultisigInfo string `json:"multisig_info"`
}

// ExchangeMultisigKeys performs one round of multisig key exchange.
func (c *Client) ExchangeMultisigKeys(ctx context.Context, multisigInfo []string, password string) (*ExchangeMultisigKeysResult, error) {
	p := finalizeMultisigParams{MultisigInfo: multisigInfo, Password: password}
	if err := rpc.ValidateParams("exchange_multisig_keys", p); err != nil {
		return nil, err
	}
	return call[ExchangeMultisigKeysResult](ctx, c, "exchange_multisig_keys", p)
}

type SignMultisigResult struct {
	TxDataHex  string   `json:"tx_data_hex"`
	TxHashList []string `json:"tx_hash_list"`
}

// SignMultisig adds this participant's signature to a multisig
// transaction.
func (c *Client) SignMultisig(ctx context.Context, txDataHex string) (*SignMultisigResult, error) {
	if txDataHex == "" {
		return nil, &rpc.ValidationError{Method: "sign_multisig", Reason: "empty tx data"}
	}
	return call[SignMultisigResult](ctx, c, "sign_multisig", map[string]string{"tx_data_hex": txDataHex}, "tx_data_hex")
}

type SubmitMultisigResult struct {
	TxHashList []string `json:"tx_hash_list"`
}

// SubmitMultisig broadcasts a fully signed multisig transaction.
func (c *Client) SubmitMultisig(ctx context.Context, txDataHex string) (*SubmitMultisigResult, error) {
	if txDataHex == "" {
		return nil, &rpc.ValidationError{Method: "submit_multisig", Reason: "empty tx data"}
	}
	return call[SubmitMultisigResult](ctx, c, "submit_multisig", map[string]string{"tx_data_hex": txDataHex}, "tx_hash_list")
}
