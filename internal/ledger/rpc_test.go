package ledger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/config"
	"github.com/MrKevinOConnell/zencasterbackend/pkg/platform/sentinel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// rpcStub answers eth_blockNumber and eth_getLogs with canned payloads and
// records the filters it was asked for.
type rpcStub struct {
	head    string
	logs    []rpcLog
	rpcErr  *rpcError
	filters []map[string]any
}

func (s *rpcStub) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := rpcResponse{}
		if s.rpcErr != nil {
			resp.Error = s.rpcErr
		} else {
			switch req.Method {
			case "eth_blockNumber":
				raw, err := json.Marshal(s.head)
				require.NoError(t, err)
				resp.Result = raw
			case "eth_getLogs":
				filter, ok := req.Params[0].(map[string]any)
				require.True(t, ok)
				s.filters = append(s.filters, filter)
				raw, err := json.Marshal(s.logs)
				require.NoError(t, err)
				resp.Result = raw
			default:
				t.Fatalf("unexpected rpc method %q", req.Method)
			}
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}
}

func newTestClient(t *testing.T, stub *rpcStub) *RPCClient {
	srv := httptest.NewServer(stub.handler(t))
	t.Cleanup(srv.Close)
	return NewRPCClient(config.LedgerConfig{
		RPCURL:          srv.URL,
		RegistryAddress: "0xDA107A1CAf36d198B12c16c7B6a1d1C795978C42",
		PollInterval:    10 * time.Millisecond,
		CallTimeout:     time.Second,
	}, discardLogger())
}

func registerLog(owner, id, block string) rpcLog {
	return rpcLog{
		Topics:      []string{registerTopic, owner, id},
		BlockNumber: block,
	}
}

func TestHeadHeight(t *testing.T) {
	client := newTestClient(t, &rpcStub{head: "0x74b5fb"})

	head, err := client.HeadHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(7648763), head)
}

func TestHeadHeightSurfacesRPCError(t *testing.T) {
	client := newTestClient(t, &rpcStub{rpcErr: &rpcError{Code: -32000, Message: "overloaded"}})

	_, err := client.HeadHeight(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestFilterRegistersDecodesLogs(t *testing.T) {
	stub := &rpcStub{
		logs: []rpcLog{
			registerLog(
				"0x000000000000000000000000a1b2c3d4e5f60718293a4b5c6d7e8f9012345678",
				"0x000000000000000000000000000000000000000000000000000000000000002a",
				"0x64",
			),
		},
	}
	client := newTestClient(t, stub)

	events, err := client.FilterRegisters(context.Background(), 90, 110)
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, uint64(42), events[0].ID)
	assert.Equal(t, "0xa1b2c3d4e5f60718293a4b5c6d7e8f9012345678", events[0].Owner)
	assert.Equal(t, uint64(100), events[0].Height)
	assert.False(t, events[0].ObservedAt.IsZero())

	require.Len(t, stub.filters, 1)
	filter := stub.filters[0]
	assert.Equal(t, "0xda107a1caf36d198b12c16c7b6a1d1c795978c42", filter["address"])
	assert.Equal(t, "0x5a", filter["fromBlock"])
	assert.Equal(t, "0x6e", filter["toBlock"])
}

func TestFilterRegistersSkipsUndecodableLogs(t *testing.T) {
	stub := &rpcStub{
		logs: []rpcLog{
			{Topics: []string{registerTopic}, BlockNumber: "0x64"}, // owner topic missing
			registerLog(
				"0x000000000000000000000000a1b2c3d4e5f60718293a4b5c6d7e8f9012345678",
				"0x0000000000000000000000000000000000000000000000000000000000000007",
				"0x65",
			),
		},
	}
	client := newTestClient(t, stub)

	events, err := client.FilterRegisters(context.Background(), 100, 102)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(7), events[0].ID)
}

func TestDecodeRegisterLogFallsBackToData(t *testing.T) {
	now := time.Now().UTC()
	event, err := decodeRegisterLog(rpcLog{
		Topics: []string{
			registerTopic,
			"0x000000000000000000000000a1b2c3d4e5f60718293a4b5c6d7e8f9012345678",
		},
		Data:        "0x0000000000000000000000000000000000000000000000000000000000000009",
		BlockNumber: "0x10",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), event.ID)
	assert.Equal(t, now, event.ObservedAt)
}

func TestParseHexUint(t *testing.T) {
	cases := []struct {
		raw     string
		want    uint64
		wantErr bool
	}{
		{raw: "0x0", want: 0},
		{raw: "0x", want: 0},
		{raw: "0x2a", want: 42},
		{raw: "0x000000000000000000000000000000000000000000000000000000000000002a", want: 42},
		{raw: "0xffffffffffffffff", want: 1<<64 - 1},
		{raw: "0x10000000000000000", wantErr: true},
		{raw: "0xzz", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseHexUint(tc.raw)
		if tc.wantErr {
			assert.Error(t, err, tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}
