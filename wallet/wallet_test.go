package wallet_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerva-project/go-nerva/rpc"
	"github.com/nerva-project/go-nerva/wallet"
)

// testWallet serves canned results per method and keeps the raw params
// of the last request for wire-format assertions.
type testWallet struct {
	methods    map[string]string
	lastMethod string
	lastParams json.RawMessage
}

func (d *testWallet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     uint64          `json:"id"`
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	d.lastMethod = req.Method
	d.lastParams = req.Params
	result, ok := d.methods[req.Method]
	if !ok {
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"Method not found"}}`, req.ID)
		return
	}
	fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"result":%s}`, req.ID, result)
}

func newTestClient(t *testing.T, d *testWallet) *wallet.Client {
	t.Helper()
	ts := httptest.NewServer(d)
	t.Cleanup(ts.Close)
	host, portStr, err := net.SplitHostPort(ts.Listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	c, err := wallet.NewClient(rpc.Config{Host: host, Port: port})
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresPort(t *testing.T) {
	_, err := wallet.NewClient(rpc.Config{Host: "localhost"})
	assert.Error(t, err)
}

func TestGetBalance(t *testing.T) {
	d := &testWallet{methods: map[string]string{
		"get_balance": `{"balance":140000000000,"unlocked_balance":50000000000,"multisig_import_needed":false,"per_subaddress":[{"address_index":0,"balance":140000000000,"label":"Primary account","num_unspent_outputs":5}]}`,
	}}
	c := newTestClient(t, d)

	res, err := c.GetBalance(context.Background(), 0, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(140000000000), res.Balance)
	assert.Equal(t, uint64(50000000000), res.UnlockedBalance)
	require.Len(t, res.PerSubaddress, 1)
	assert.Equal(t, "Primary account", res.PerSubaddress[0].Label)
}

func TestTransferValidation(t *testing.T) {
	d := &testWallet{methods: map[string]string{}}
	c := newTestClient(t, d)

	// No destinations never reaches the wire.
	_, err := c.Transfer(context.Background(), nil, true, nil)
	var vErr *rpc.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "transfer", vErr.Method)
	assert.Empty(t, d.lastMethod)

	// A malformed payment id is rejected locally too.
	dests := []wallet.Destination{{Amount: 1000, Address: "NV1abc"}}
	_, err = c.Transfer(context.Background(), dests, true, &wallet.TransferOptions{PaymentID: "tooshort"})
	require.ErrorAs(t, err, &vErr)
}

func TestTransfer(t *testing.T) {
	d := &testWallet{methods: map[string]string{
		"transfer": `{"amount":1000,"fee":48958481211,"tx_hash":"985180f4","tx_key":"c1",` +
			`"tx_blob":"","tx_metadata":"","multisig_txset":"","unsigned_txset":""}`,
	}}
	c := newTestClient(t, d)

	dests := []wallet.Destination{{Amount: 1000, Address: "NV1abc"}}
	res, err := c.Transfer(context.Background(), dests, true, &wallet.TransferOptions{RingSize: 11})
	require.NoError(t, err)
	assert.Equal(t, "985180f4", res.TxHash)
	assert.Equal(t, uint64(48958481211), res.Fee)

	var sent struct {
		Destinations []wallet.Destination `json:"destinations"`
		RingSize     uint64               `json:"ring_size"`
		GetTxKey     bool                 `json:"get_tx_key"`
	}
	require.NoError(t, json.Unmarshal(d.lastParams, &sent))
	assert.Equal(t, dests, sent.Destinations)
	assert.Equal(t, uint64(11), sent.RingSize)
	assert.True(t, sent.GetTxKey)
}

func TestRelayTxWireKey(t *testing.T) {
	d := &testWallet{methods: map[string]string{
		"relay_tx": `{"tx_hash":"deadbeef"}`,
	}}
	c := newTestClient(t, d)

	res, err := c.RelayTx(context.Background(), "0011ff")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", res.TxHash)

	// The wallet RPC takes the blob under "hex", not "tx_hex".
	var sent map[string]string
	require.NoError(t, json.Unmarshal(d.lastParams, &sent))
	assert.Equal(t, map[string]string{"hex": "0011ff"}, sent)
}

func TestGetReserveProofWireKey(t *testing.T) {
	d := &testWallet{methods: map[string]string{
		"get_reserve_proof": `{"signature":"ReserveProofV1abc"}`,
	}}
	c := newTestClient(t, d)

	_, err := c.GetReserveProof(context.Background(), true, 0, 0, "")
	require.NoError(t, err)

	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(d.lastParams, &sent))
	assert.Contains(t, sent, "all")
	assert.NotContains(t, sent, "all_reserve")
}

func TestGetTransfersWireKeys(t *testing.T) {
	d := &testWallet{methods: map[string]string{
		"get_transfers": `{"in":[{"txid":"abc","amount":5,"type":"in","height":12}],"out":[]}`,
	}}
	c := newTestClient(t, d)

	res, err := c.GetTransfers(context.Background(), wallet.GetTransfersFilter{In: true, Out: true})
	require.NoError(t, err)
	require.Len(t, res.In, 1)
	assert.Equal(t, "abc", res.In[0].TxID)

	var sent map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(d.lastParams, &sent))
	assert.Contains(t, sent, "in")
	assert.Contains(t, sent, "out")
}

func TestIntegratedAddress(t *testing.T) {
	d := &testWallet{methods: map[string]string{
		"make_integrated_address":  `{"integrated_address":"NV2integrated","payment_id":"420fa29b2d9a49f5"}`,
		"split_integrated_address": `{"is_subaddress":false,"payment_id":"420fa29b2d9a49f5","standard_address":"NV1abc"}`,
	}}
	c := newTestClient(t, d)

	made, err := c.MakeIntegratedAddress(context.Background(), "", "420fa29b2d9a49f5")
	require.NoError(t, err)
	assert.Equal(t, "NV2integrated", made.IntegratedAddress)
	assert.Equal(t, "420fa29b2d9a49f5", made.PaymentID)

	split, err := c.SplitIntegratedAddress(context.Background(), made.IntegratedAddress)
	require.NoError(t, err)
	assert.Equal(t, "NV1abc", split.StandardAddress)
	assert.Equal(t, made.PaymentID, split.PaymentID)
	assert.False(t, split.IsSubaddress)

	_, err = c.MakeIntegratedAddress(context.Background(), "", "not-hex")
	var vErr *rpc.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = c.SplitIntegratedAddress(context.Background(), "")
	require.ErrorAs(t, err, &vErr)
}

func TestQueryKey(t *testing.T) {
	d := &testWallet{methods: map[string]string{
		"query_key": `{"key":"sequence atlas unveil summon pebbles tuesday"}`,
	}}
	c := newTestClient(t, d)

	res, err := c.QueryKey(context.Background(), wallet.KeyMnemonic)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Key, "sequence atlas"))

	_, err = c.QueryKey(context.Background(), wallet.KeyType("private_key"))
	var vErr *rpc.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestSetTxNotesLengthMismatch(t *testing.T) {
	d := &testWallet{methods: map[string]string{}}
	c := newTestClient(t, d)

	_, err := c.SetTxNotes(context.Background(), []string{"a", "b"}, []string{"only one"})
	var vErr *rpc.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, d.lastMethod)
}

func TestMakeMultisig(t *testing.T) {
	d := &testWallet{methods: map[string]string{
		"make_multisig": `{"address":"NV1multisig","multisig_info":"MultisigV1"}`,
	}}
	c := newTestClient(t, d)

	res, err := c.MakeMultisig(context.Background(), []string{"MultisigV1peer"}, 2, "pw")
	require.NoError(t, err)
	assert.Equal(t, "NV1multisig", res.Address)

	_, err = c.MakeMultisig(context.Background(), nil, 2, "pw")
	var vErr *rpc.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestOpenWallet(t *testing.T) {
	d := &testWallet{methods: map[string]string{
		"open_wallet": `{}`,
	}}
	c := newTestClient(t, d)

	_, err := c.OpenWallet(context.Background(), "mywallet", "pw")
	require.NoError(t, err)
	assert.Equal(t, "open_wallet", d.lastMethod)

	_, err = c.OpenWallet(context.Background(), "", "pw")
	var vErr *rpc.ValidationError
	require.ErrorAs(t, err, &vErr)
}
