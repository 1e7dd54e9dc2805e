package wallet

import (
	"context"

	"github.com/nerva-project/go-nerva/rpc"
)

// SubaddressIndex addresses one subaddress inside the wallet: Major is
// the account, Minor the address within it.
type SubaddressIndex struct {
	Major uint32 `json:"major"`
	Minor uint32 `json:"minor"`
}

type getBalanceParams struct {
	AccountIndex   uint32   `json:"account_index"`
	AddressIndices []uint32 `json:"address_indices,omitempty"`
}

// SubaddressBalance is the per-subaddress detail of a balance query.
type SubaddressBalance struct {
	Address           string `json:"address"`
	AddressIndex      uint32 `json:"address_index"`
	Balance           uint64 `json:"balance"`
	BlocksToUnlock    uint64 `json:"blocks_to_unlock"`
	Label             string `json:"label"`
	NumUnspentOutputs uint64 `json:"num_unspent_outputs"`
	UnlockedBalance   uint64 `json:"unlocked_balance"`
}

type GetBalanceResult struct {
	Balance              uint64              `json:"balance"`
	BlocksToUnlock       uint64              `json:"blocks_to_unlock"`
	MultisigImportNeeded bool                `json:"multisig_import_needed"`
	PerSubaddress        []SubaddressBalance `json:"per_subaddress"`
	UnlockedBalance      uint64              `json:"unlocked_balance"`
}

// GetBalance returns the balance of an account, with per-subaddress
// detail for the given indices (all when nil).
func (c *Client) GetBalance(ctx context.Context, accountIndex uint32, addressIndices []uint32) (*GetBalanceResult, error) {
	p := getBalanceParams{AccountIndex: accountIndex, AddressIndices: addressIndices}
	return call[GetBalanceResult](ctx, c, "get_balance", p, "balance")
}

// Address is one wallet (sub)address.
type Address struct {
	Address      string `json:"address"`
	AddressIndex uint32 `json:"address_index"`
	Label        string `json:"label"`
	Used         bool   `json:"used"`
}

type GetAddressResult struct {
	Address   string    `json:"address"`
	Addresses []Address `json:"addresses"`
}

// GetAddress returns the addresses of an account, optionally restricted
// to the given subaddress indices.
func (c *Client) GetAddress(ctx context.Context, accountIndex uint32, addressIndices []uint32) (*GetAddressResult, error) {
	p := getBalanceParams{AccountIndex: accountIndex, AddressIndices: addressIndices}
	return call[GetAddressResult](ctx, c, "get_address", p, "address")
}

type GetAddressIndexResult struct {
	Index SubaddressIndex `json:"index"`
}

// GetAddressIndex resolves a (sub)address to its account and address
// indices.
func (c *Client) GetAddressIndex(ctx context.Context, address string) (*GetAddressIndexResult, error) {
	if address == "" {
		return nil, &rpc.ValidationError{Method: "get_address_index", Reason: "empty address"}
	}
	return call[GetAddressIndexResult](ctx, c, "get_address_index", map[string]string{"address": address}, "index")
}

type createAddressParams struct {
	AccountIndex uint32 `json:"account_index"`
	Label        string `json:"label,omitempty"`
}

type CreateAddressResult struct {
	Address      string `json:"address"`
	AddressIndex uint32 `json:"address_index"`
}

// CreateAddress creates a new subaddress in an account.
func (c *Client) CreateAddress(ctx context.Context, accountIndex uint32, label string) (*CreateAddressResult, error) {
	p := createAddressParams{AccountIndex: accountIndex, Label: label}
	return call[CreateAddressResult](ctx, c, "create_address", p, "address")
}

type makeIntegratedAddressParams struct {
	PaymentID       string `json:"payment_id,omitempty" validate:"omitempty,hexadecimal"`
	StandardAddress string `json:"standard_address,omitempty"`
}

type MakeIntegratedAddressResult struct {
	IntegratedAddress string `json:"integrated_address"`
	PaymentID         string `json:"payment_id"`
}

// MakeIntegratedAddress combines standardAddress and paymentID into an
// integrated address. An empty standardAddress uses the wallet's primary
// address; an empty paymentID lets the server pick a random one.
func (c *Client) MakeIntegratedAddress(ctx context.Context, standardAddress, paymentID string) (*MakeIntegratedAddressResult, error) {
	p := makeIntegratedAddressParams{PaymentID: paymentID, StandardAddress: standardAddress}
	if err := rpc.ValidateParams("make_integrated_address", p); err != nil {
		return nil, err
	}
	return call[MakeIntegratedAddressResult](ctx, c, "make_integrated_address", p, "integrated_address")
}

type SplitIntegratedAddressResult struct {
	IsSubaddress    bool   `json:"is_subaddress"`
	PaymentID       string `json:"payment_id"`
	StandardAddress string `json:"standard_address"`
}

// SplitIntegratedAddress recovers the standard address and payment id
// embedded in an integrated address.
func (c *Client) SplitIntegratedAddress(ctx context.Context, integratedAddress string) (*SplitIntegratedAddressResult, error) {
	if integratedAddress == "" {
		return nil, &rpc.ValidationError{Method: "split_integrated_address", Reason: "empty address"}
	}
	return call[SplitIntegratedAddressResult](ctx, c, "split_integrated_address",
		map[string]string{"integrated_address": integratedAddress}, "standard_address")
}

type labelAddressParams struct {
	Index SubaddressIndex `json:"index"`
	Label string          `json:"label" validate:"required"`
}

type LabelAddressResult struct{}

// LabelAddress sets the label of a subaddress.
func (c *Client) LabelAddress(ctx context.Context, index SubaddressIndex, label string) (*LabelAddressResult, error) {
	p := labelAddressParams{Index: index, Label: label}
	if err := rpc.ValidateParams("label_address", p); err != nil {
		return nil, err
	}
	return call[LabelAddressResult](ctx, c, "label_address", p)
}

// Account is one account summary.
type Account struct {
	AccountIndex    uint32 `json:"account_index"`
	Balance         uint64 `json:"balance"`
	BaseAddress     string `json:"base_address"`
	Label           string `json:"label"`
	Tag             string `json:"tag"`
	UnlockedBalance uint64 `json:"unlocked_balance"`
}

type GetAccountsResult struct {
	SubaddressAccounts   []Account `json:"subaddress_accounts"`
	TotalBalance         uint64    `json:"total_balance"`
	TotalUnlockedBalance uint64    `json:"total_unlocked_balance"`
}

// GetAccounts lists the wallet's accounts, filtered by tag when tag is
// not empty.
func (c *Client) GetAccounts(ctx context.Context, tag string) (*GetAccountsResult, error) {
	return call[GetAccountsResult](ctx, c, "get_accounts", map[string]string{"tag": tag}, "subaddress_accounts")
}

type CreateAccountResult struct {
	AccountIndex uint32 `json:"account_index"`
	Address      string `json:"address"`
}

// CreateAccount creates a new account with an optional label.
func (c *Client) CreateAccount(ctx context.Context, label string) (*CreateAccountResult, error) {
	return call[CreateAccountResult](ctx, c, "create_account", map[string]string{"label": label}, "address")
}

type labelAccountParams struct {
	AccountIndex uint32 `json:"account_index"`
	Label        string `json:"label" validate:"required"`
}

type LabelAccountResult struct{}

// LabelAccount sets the label of an account.
func (c *Client) LabelAccount(ctx context.Context, accountIndex uint32, label string) (*LabelAccountResult, error) {
	p := labelAccountParams{AccountIndex: accountIndex, Label: label}
	if err := rpc.ValidateParams("label_account", p); err != nil {
		return nil, err
	}
	return call[LabelAccountResult](ctx, c, "label_account", p)
}

// AccountTag groups accounts under a named tag.
type AccountTag struct {
	Accounts []uint32 `json:"accounts"`
	Label    string   `json:"label"`
	Tag      string   `json:"tag"`
}

type GetAccountTagsResult struct {
	AccountTags []AccountTag `json:"account_tags"`
}

// GetAccountTags lists the wallet's account tags.
func (c *Client) GetAccountTags(ctx context.Context) (*GetAccountTagsResult, error) {
	return call[GetAccountTagsResult](ctx, c, "get_account_tags", nil)
}

type tagAccountsParams struct {
	Tag      string   `json:"tag" validate:"required"`
	Accounts []uint32 `json:"accounts" validate:"required,min=1"`
}

type TagAccountsResult struct{}

// TagAccounts applies a tag to the given accounts.
func (c *Client) TagAccounts(ctx context.Context, tag string, accounts []uint32) (*TagAccountsResult, error) {
	p := tagAccountsParams{Tag: tag, Accounts: accounts}
	if err := rpc.ValidateParams("tag_accounts", p); err != nil {
		return nil, err
	}
	return call[TagAccountsResult](ctx, c, "tag_accounts", p)
}

type UntagAccountsResult struct{}

// UntagAccounts removes any tag from the given accounts.
func (c *Client) UntagAccounts(ctx context.Context, accounts []uint32) (*UntagAccountsResult, error) {
	if len(accounts) == 0 {
		return nil, &rpc.ValidationError{Method: "untag_accounts", Reason: "no accounts"}
	}
	return call[UntagAccountsResult](ctx, c, "untag_accounts", map[string][]uint32{"accounts": accounts})
}

type setAccountTagDescriptionParams struct {
	Tag         string `json:"tag" validate:"required"`
	Description string `json:"description"`
}

type SetAccountTagDescriptionResult struct{}

// SetAccountTagDescription attaches a description to a tag.
func (c *Client) SetAccountTagDescription(ctx context.Context, tag, description string) (*SetAccountTagDescriptionResult, error) {
	p := setAccountTagDescriptionParams{Tag: tag, Description: description}
	if err := rpc.ValidateParams("set_account_tag_description", p); err != nil {
		return nil, err
	}
	return call[SetAccountTagDescriptionResult](ctx, c, "set_account_tag_description", p)
}

type GetHeightResult struct {
	Height uint64 `json:"height"`
}

// GetHeight returns the wallet's current sync height.
func (c *Client) GetHeight(ctx context.Context) (*GetHeightResult, error) {
	return call[GetHeightResult](ctx, c, "get_height", nil, "height")
}

// KeyType selects which secret query_key returns.
type KeyType string

const (
	KeyMnemonic KeyType = "mnemonic"
	KeyView     KeyType = "view_key"
	KeySpend    KeyType = "spend_key"
	KeySeed     KeyType = "seed"
)

type QueryKeyResult struct {
	Key string `json:"key"`
}

// QueryKey returns a wallet secret: the mnemonic seed or a private key.
func (c *Client) QueryKey(ctx context.Context, keyType KeyType) (*QueryKeyResult, error) {
	switch keyType {
	case KeyMnemonic, KeyView, KeySpend, KeySeed:
	default:
		return nil, &rpc.ValidationError{Method: "query_key", Reason: "unknown key type " + string(keyType)}
	}
	return call[QueryKeyResult](ctx, c, "query_key", map[string]KeyType{"key_type": keyType}, "key")
}

type StopWalletResult struct{}

// StopWallet stores the wallet and shuts the RPC server down.
func (c *Client) StopWallet(ctx context.Context) (*StopWalletResult, error) {
	return call[StopWalletResult](ctx, c, "stop_wallet", nil)
}

type RescanBlockchainResult struct{}

// RescanBlockchain rescans the chain from genesis. Destroys cached
// transfer metadata such as payment ids and notes.
func (c *Client) RescanBlockchain(ctx context.Context) (*RescanBlockchainResult, error) {
	return call[RescanBlockchainResult](ctx, c, "rescan_blockchain", nil)
}

type setAttributeParams struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

type SetAttributeResult struct{}

// SetAttribute stores an arbitrary attribute in the wallet file.
func (c *Client) SetAttribute(ctx context.Context, key, value string) (*SetAttributeResult, error) {
	p := setAttributeParams{Key: key, Value: value}
	if err := rpc.ValidateParams("set_attribute", p); err != nil {
		return nil, err
	}
	return call[SetAttributeResult](ctx, c, "set_attribute", p)
}

type GetAttributeResult struct {
	Value string `json:"value"`
}

// GetAttribute reads an attribute from the wallet file.
func (c *Client) GetAttribute(ctx context.Context, key string) (*GetAttributeResult, error) {
	if key == "" {
		return nil, &rpc.ValidationError{Method: "get_attribute", Reason: "empty key"}
	}
	return call[GetAttributeResult](ctx, c, "get_attribute", map[string]string{"key": key}, "value")
}

type SignResult struct {
	Signature string `json:"signature"`
}

// Sign signs arbitrary data with the wallet's spend key.
func (c *Client) Sign(ctx context.Context, data string) (*SignResult, error) {
	return call[SignResult](ctx, c, "sign", map[string]string{"data": data}, "signature")
}

type verifyParams struct {
	Data      string `json:"data"`
	Address   string `json:"address" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type VerifyResult struct {
	Good bool `json:"good"`
}

// Verify checks a signature made by Sign against an address.
func (c *Client) Verify(ctx context.Context, data, address, signature string) (*VerifyResult, error) {
	p := verifyParams{Data: data, Address: address, Signature: signature}
	if err := rpc.ValidateParams("verify", p); err != nil {
		return nil, err
	}
	return call[VerifyResult](ctx, c, "verify", p, "good")
}

type RefreshResult struct {
	BlocksFetched uint64 `json:"blocks_fetched"`
	ReceivedMoney bool   `json:"received_money"`
}

// Refresh syncs the wallet with the daemon, starting at startHeight
// when it is beyond the wallet's own height.
func (c *Client) Refresh(ctx context.Context, startHeight uint64) (*RefreshResult, error) {
	return call[RefreshResult](ctx, c, "refresh", map[string]uint64{"start_height": startHeight}, "blocks_fetched")
}

type autoRefreshParams struct {
	Enable bool    `json:"enable"`
	Period *uint64 `json:"period,omitempty"`
}

type AutoRefreshResult struct{}

// AutoRefresh enables or disables periodic background refresh. period
// is the refresh interval in seconds; nil keeps the server default.
func (c *Client) AutoRefresh(ctx context.Context, enable bool, period *uint64) (*AutoRefreshResult, error) {
	p := autoRefreshParams{Enable: enable, Period: period}
	return call[AutoRefreshResult](ctx, c, "auto_refresh", p)
}

type RescanSpentResult struct{}

// RescanSpent asks the daemon to recheck the spent status of the
// wallet's key images.
func (c *Client) RescanSpent(ctx context.Context) (*RescanSpentResult, error) {
	return call[RescanSpentResult](ctx, c, "rescan_spent", nil)
}

type startMiningParams struct {
	ThreadsCount       uint `json:"threads_count" validate:"required"`
	DoBackgroundMining bool `json:"do_background_mining"`
	IgnoreBattery      bool `json:"ignore_battery"`
}

type StartMiningResult struct{}

// StartMining starts mining through the connected daemon, paying the
// wallet's primary address.
func (c *Client) StartMining(ctx context.Context, threadsCount uint, doBackgroundMining, ignoreBattery bool) (*StartMiningResult, error) {
	p := startMiningParams{
		ThreadsCount:       threadsCount,
		DoBackgroundMining: doBackgroundMining,
		IgnoreBattery:      ignoreBattery,
	}
	if err := rpc.ValidateParams("start_mining", p); err != nil {
		return nil, err
	}
	return call[StartMiningResult](ctx, c, "start_mining", p)
}

type SetDonateLevelResult struct{}

// SetDonateLevel sets the development-fund donation level.
func (c *Client) SetDonateLevel(ctx context.Context, donate uint32) (*SetDonateLevelResult, error) {
	return call[SetDonateLevelResult](ctx, c, "set_donate_level", map[string]uint32{"donate": donate})
}

type StopMiningResult struct{}

// StopMining stops mining through the connected daemon.
func (c *Client) StopMining(ctx context.Context) (*StopMiningResult, error) {
	return call[StopMiningResult](ctx, c, "stop_mining", nil)
}

type GetLanguagesResult struct {
	Languages []string `json:"languages"`
}

// GetLanguages lists the seed languages available for new wallets.
func (c *Client) GetLanguages(ctx context.Context) (*GetLanguagesResult, error) {
	return call[GetLanguagesResult](ctx, c, "get_languages", nil, "languages")
}

type validateAddressParams struct {
	Address        string `json:"address" validate:"required"`
	AnyNetType     bool   `json:"any_net_type"`
	AllowOpenalias bool   `json:"allow_openalias"`
}

type ValidateAddressResult struct {
	Valid            bool   `json:"valid"`
	Integrated       bool   `json:"integrated"`
	Subaddress       bool   `json:"subaddress"`
	Nettype          string `json:"nettype"`
	OpenaliasAddress string `json:"openalias_address"`
}

// ValidateAddress checks whether an address is a valid Nerva address.
func (c *Client) ValidateAddress(ctx context.Context, address string, anyNetType, allowOpenalias bool) (*ValidateAddressResult, error) {
	p := validateAddressParams{Address: address, AnyNetType: anyNetType, AllowOpenalias: allowOpenalias}
	if err := rpc.ValidateParams("validate_address", p); err != nil {
		return nil, err
	}
	return call[ValidateAddressResult](ctx, c, "validate_address", p, "valid")
}

// SetDaemonOptions configure the wallet's daemon connection beyond the
// address itself.
type SetDaemonOptions struct {
	Trusted                bool     `json:"trusted"`
	SSLSupport             string   `json:"ssl_support,omitempty"`
	SSLPrivateKeyPath      string   `json:"ssl_private_key_path,omitempty"`
	SSLCertificatePath     string   `json:"ssl_certificate_path,omitempty"`
	SSLCAFile              string   `json:"ssl_ca_file,omitempty"`
	SSLAllowedFingerprints []string `json:"ssl_allowed_fingerprints,omitempty"`
	SSLAllowAnyCert        bool     `json:"ssl_allow_any_cert,omitempty"`
}

type setDaemonParams struct {
	Address string `json:"address" validate:"required"`
	SetDaemonOptions
}

type SetDaemonResult struct{}

// SetDaemon points the wallet at a different daemon. opts may be nil;
// SSLSupport defaults to autodetect.
func (c *Client) SetDaemon(ctx context.Context, address string, opts *SetDaemonOptions) (*SetDaemonResult, error) {
	if opts == nil {
		opts = &SetDaemonOptions{}
	}
	if opts.SSLSupport == "" {
		opts.SSLSupport = "autodetect"
	}
	p := setDaemonParams{Address: address, SetDaemonOptions: *opts}
	if err := rpc.ValidateParams("set_daemon", p); err != nil {
		return nil, err
	}
	return call[SetDaemonResult](ctx, c, "set_daemon", p)
}

type SetLogLevelResult struct{}

// SetLogLevel sets the wallet server log level (0-4).
func (c *Client) SetLogLevel(ctx context.Context, level int) (*SetLogLevelResult, error) {
	if level < 0 || level > 4 {
		return nil, &rpc.ValidationError{Method: "set_log_level", Reason: "level must be between 0 and 4"}
	}
	return call[SetLogLevelResult](ctx, c, "set_log_level", map[string]int{"level": level})
}

type SetLogCategoriesResult struct {
	Categories string `json:"categories"`
}

// SetLogCategories sets per-category wallet server log levels.
func (c *Client) SetLogCategories(ctx context.Context, categories string) (*SetLogCategoriesResult, error) {
	return call[SetLogCategoriesResult](ctx, c, "set_log_categories", map[string]string{"categories": categories})
}

type GetVersionResult struct {
	Release bool   `json:"release"`
	Version uint32 `json:"version"`
}

// GetVersion returns the wallet RPC version.
func (c *Client) GetVersion(ctx context.Context) (*GetVersionResult, error) {
	return call[GetVersionResult](ctx, c, "get_version", nil, "version")
}
