package service

import (
	"fmt"

	"github.com/goccy/go-json"
)

// mergePatch applies a partial update on top of the stored document: every
// top level attribute present in the patch replaces the stored one wholesale
// (lists included), attributes absent from the patch are kept. Decoding the
// merged document into a zero value avoids leaking stored elements into
// patched lists.
func mergePatch[T any](current T, patch []byte) (T, error) {
	var ret T
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(patch, &fields); err != nil {
		return ret, fmt.Errorf("invalid patch: %w", err)
	}
	base, err := json.Marshal(current)
	if err != nil {
		return ret, err
	}
	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return ret, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	buf, err := json.Marshal(merged)
	if err != nil {
		return ret, err
	}
	if err := json.Unmarshal(buf, &ret); err != nil {
		return ret, fmt.Errorf("invalid patch: %w", err)
	}
	return ret, nil
}
