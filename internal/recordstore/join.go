package recordstore

import (
	"context"
	"fmt"
)

// Join resolves a foreign key on each child into the referenced parent
// document. Distinct keys are fetched with a single FindByIDs call; keys that
// no longer resolve are simply absent from the returned map.
func Join[C any, P Identified](ctx context.Context, parents Collection[P], children []C, key func(C) string) (map[string]P, error) {
	seen := make(map[string]struct{}, len(children))
	ids := make([]string, 0, len(children))
	for _, c := range children {
		k := key(c)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ids = append(ids, k)
	}

	out := make(map[string]P, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	found, err := parents.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("join %s: %w", parents.Name(), err)
	}
	for _, p := range found {
		out[p.RecordID()] = p
	}

	return out, nil
}
