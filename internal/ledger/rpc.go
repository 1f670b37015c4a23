package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MrKevinOConnell/zencasterbackend/internal/platform/config"
	"github.com/MrKevinOConnell/zencasterbackend/pkg/platform/sentinel"
)

// registerTopic is the keccak hash of the registry's Register event signature.
const registerTopic = "0xf2e19a901b0748d8b08e428d0468896a039ac751ec4fec49b44b7b9c28097e45"

// RPCClient talks to an Ethereum JSON-RPC endpoint over HTTP. The live
// subscription is implemented as head polling so a dropped connection is just
// a failed poll, retried on the next tick.
type RPCClient struct {
	url          string
	registry     string
	pollInterval time.Duration
	callTimeout  time.Duration
	http         *http.Client
	log          *slog.Logger
}

// NewRPCClient builds a client for the configured registry contract.
func NewRPCClient(cfg config.LedgerConfig, log *slog.Logger) *RPCClient {
	return &RPCClient{
		url:          cfg.RPCURL,
		registry:     strings.ToLower(cfg.RegistryAddress),
		pollInterval: cfg.PollInterval,
		callTimeout:  cfg.CallTimeout,
		http:         &http.Client{Timeout: cfg.CallTimeout},
		log:          log,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcLog struct {
	Topics      []string `json:"topics"`
	Data        string   `json:"data"`
	BlockNumber string   `json:"blockNumber"`
}

func (c *RPCClient) call(ctx context.Context, method string, params []any, result any) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", method, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	var parsed rpcResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if parsed.Error != nil {
		return fmt.Errorf("%s: rpc error %d: %s: %w", method, parsed.Error.Code, parsed.Error.Message, sentinel.ErrUnavailable)
	}
	if err := json.Unmarshal(parsed.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// HeadHeight returns the current chain head via eth_blockNumber.
func (c *RPCClient) HeadHeight(ctx context.Context) (uint64, error) {
	var hex string
	if err := c.call(ctx, "eth_blockNumber", []any{}, &hex); err != nil {
		return 0, err
	}
	return parseHexUint(hex)
}

// FilterRegisters fetches Register logs for [from, to] via eth_getLogs.
func (c *RPCClient) FilterRegisters(ctx context.Context, from, to uint64) ([]RegisterEvent, error) {
	filter := map[string]any{
		"address":   c.registry,
		"topics":    []any{registerTopic},
		"fromBlock": hexUint(from),
		"toBlock":   hexUint(to),
	}

	var logs []rpcLog
	if err := c.call(ctx, "eth_getLogs", []any{filter}, &logs); err != nil {
		return nil, err
	}

	events := make([]RegisterEvent, 0, len(logs))
	now := time.Now().UTC()
	for _, lg := range logs {
		event, err := decodeRegisterLog(lg, now)
		if err != nil {
			c.log.Warn("skipping undecodable register log", "error", err)
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// WatchRegisters polls the head and forwards any Register events past the
// last delivered height. Poll failures are logged and retried next tick; the
// method only returns when ctx is done.
func (c *RPCClient) WatchRegisters(ctx context.Context, sink chan<- RegisterEvent) error {
	var lastSeen uint64

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		head, err := c.HeadHeight(ctx)
		if err != nil {
			c.log.Warn("head poll failed", "error", err)
			continue
		}
		if lastSeen == 0 {
			// First poll anchors the watch window; history is the
			// reconciler's job.
			lastSeen = head
			continue
		}
		if head <= lastSeen {
			continue
		}

		events, err := c.FilterRegisters(ctx, lastSeen+1, head)
		if err != nil {
			c.log.Warn("register log poll failed", "error", err)
			continue
		}
		for _, event := range events {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case sink <- event:
			}
		}
		lastSeen = head
	}
}

func decodeRegisterLog(lg rpcLog, observedAt time.Time) (RegisterEvent, error) {
	if len(lg.Topics) < 2 {
		return RegisterEvent{}, fmt.Errorf("register log has %d topics", len(lg.Topics))
	}

	owner, err := addressFromTopic(lg.Topics[1])
	if err != nil {
		return RegisterEvent{}, err
	}

	// The id is the second indexed topic when present, otherwise the first
	// word of the data payload.
	idWord := lg.Data
	if len(lg.Topics) >= 3 {
		idWord = lg.Topics[2]
	}
	id, err := parseHexUint(idWord)
	if err != nil {
		return RegisterEvent{}, fmt.Errorf("parse register id: %w", err)
	}

	height, err := parseHexUint(lg.BlockNumber)
	if err != nil {
		return RegisterEvent{}, fmt.Errorf("parse block number: %w", err)
	}

	return RegisterEvent{
		ID:         id,
		Owner:      owner,
		Height:     height,
		ObservedAt: observedAt,
	}, nil
}

func addressFromTopic(topic string) (string, error) {
	hex := strings.TrimPrefix(strings.ToLower(topic), "0x")
	if len(hex) != 64 {
		return "", fmt.Errorf("topic %q is not a 32-byte word", topic)
	}
	return "0x" + hex[24:], nil
}

func parseHexUint(raw string) (uint64, error) {
	hex := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(raw)), "0x")
	hex = strings.TrimLeft(hex, "0")
	if hex == "" {
		return 0, nil
	}
	if len(hex) > 16 {
		// Registry ids and heights fit in 64 bits; anything wider is a
		// malformed or foreign log.
		return 0, fmt.Errorf("hex value %q overflows uint64", raw)
	}
	return strconv.ParseUint(hex, 16, 64)
}

func hexUint(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}
