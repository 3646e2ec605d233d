package resultcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/skinlab/skinanalyzer/internal/domain/analysis"
)

// Valkey persists analysis results in a Valkey-compatible database. Only the
// parsed document is stored, never image bytes.
type Valkey struct {
	client valkey.Client
	prefix string
}

// NewValkey constructs a cache backed by Valkey.
func NewValkey(client valkey.Client, prefix string) *Valkey {
	if prefix == "" {
		prefix = "analysis"
	}
	return &Valkey{client: client, prefix: prefix}
}

// Get implements analysis.Cache.
func (v *Valkey) Get(ctx context.Context, key string) (analysis.Result, bool, error) {
	cmd := v.client.B().Get().Key(v.entryKey(key)).Build()
	payload, err := v.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return analysis.Result{}, false, nil
		}
		return analysis.Result{}, false, err
	}
	var result analysis.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return analysis.Result{}, false, err
	}
	return result, true, nil
}

// Save implements analysis.Cache.
func (v *Valkey) Save(ctx context.Context, key string, result analysis.Result, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	builder := v.client.B().Set().Key(v.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return v.client.Do(ctx, cmd).Error()
}

func (v *Valkey) entryKey(key string) string {
	return v.prefix + ":" + key
}

var _ analysis.Cache = (*Valkey)(nil)
