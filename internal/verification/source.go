package verification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/MrKevinOConnell/zencasterbackend/pkg/platform/sentinel"
)

// Source is the external verification collaborator.
type Source interface {
	FetchNew(ctx context.Context, cap int) ([]Verification, error)
}

// HTTPSource pulls verification records from a JSON endpoint.
type HTTPSource struct {
	url  string
	http *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

type sourceVerification struct {
	FID        uint64 `json:"fid"`
	Claim      string `json:"claim"`
	VerifiedAt int64  `json:"verifiedAt"`
}

type sourceResponse struct {
	Result struct {
		Verifications []sourceVerification `json:"verifications"`
	} `json:"result"`
}

func (s *HTTPSource) FetchNew(ctx context.Context, cap int) ([]Verification, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build verification fetch: %w", err)
	}
	q := req.URL.Query()
	q.Set("limit", strconv.Itoa(cap))
	req.URL.RawQuery = q.Encode()

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch verifications: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verification source returned %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read verification response: %w", err)
	}

	var parsed sourceResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode verification response: %w", err)
	}

	out := make([]Verification, 0, len(parsed.Result.Verifications))
	for _, sv := range parsed.Result.Verifications {
		out = append(out, Verification{
			FID:        sv.FID,
			Claim:      sv.Claim,
			VerifiedAt: time.UnixMilli(sv.VerifiedAt).UTC(),
		})
	}
	return out, nil
}
