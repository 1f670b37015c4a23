package cast

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

// Source is the external content collaborator. FetchNew returns up to cap of
// the newest casts; the indexer tolerates overlap with earlier windows.
type Source interface {
	FetchNew(ctx context.Context, cap int) ([]Cast, error)
}

// HTTPSource pulls casts from a JSON endpoint that accepts a limit parameter.
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

type sourceCast struct {
	Hash            string `json:"merkleRoot"`
	AuthorID        uint64 `json:"authorFid"`
	Text            string `json:"text"`
	PublishedAt     int64  `json:"publishedAt"`
	ReplyParentRoot string `json:"replyParentMerkleRoot"`
	Deleted         bool   `json:"deleted"`
	Recast          bool   `json:"recast"`
}

type sourceResponse struct {
	Result struct {
		Casts []sourceCast `json:"casts"`
	} `json:"result"`
}

func (s *HTTPSource) FetchNew(ctx context.Context, cap int) ([]Cast, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build cast fetch: %w", err)
	}
	q := req.URL.Query()
	q.Set("limit", strconv.Itoa(cap))
	req.URL.RawQuery = q.Encode()

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch casts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cast source returned %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("read cast response: %w", err)
	}

	var parsed sourceResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode cast response: %w", err)
	}

	casts := make([]Cast, 0, len(parsed.Result.Casts))
	for _, sc := range parsed.Result.Casts {
		casts = append(casts, Cast{
			Hash:            sc.Hash,
			AuthorID:        sc.AuthorID,
			Text:            sc.Text,
			PublishedAt:     time.UnixMilli(sc.PublishedAt).UTC(),
			ReplyParentRoot: sc.ReplyParentRoot,
			Deleted:         sc.Deleted,
			Recast:          sc.Recast,
		})
	}
	return casts, nil
}
