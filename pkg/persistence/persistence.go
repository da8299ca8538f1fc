// Package persistence applies runtime settings overrides to a live system
// and restores them from a ports.OverrideStore.
//
// Every function that touches a system must run on the goroutine that owns
// it (see scheduler.Loop.Do).
package persistence

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/animator"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/ports"
	"github.com/aretw0/animator/pkg/settings"
)

// Key is the name overrides are stored under: the scene name of the node,
// or its ID when it has none.
func Key(n *animator.Node) string {
	if n.Name() != "" {
		return n.Name()
	}
	return string(n.ID())
}

// Override replaces the dynamic settings of n with props. Invalid props leave
// the previous settings in place. On success n receives update and its parent
// refresh, so manager, activation and condition changes take effect.
func Override(n *animator.Node, props map[string]any) error {
	p, err := settings.Decode(props)
	if err != nil {
		return err
	}

	ctl := n.Control()
	prev := ctl.GetSettings()
	ctl.SetSettings(p)
	if err := settings.Validate(n.Settings()); err != nil {
		ctl.SetSettings(prev)
		return err
	}

	n.Send(domain.ActionUpdate)
	if parent := n.Parent(); parent != nil {
		parent.Send(domain.ActionRefresh)
	}
	return nil
}

// Clear drops the dynamic settings of n. It fails, keeping them, when the
// settings left underneath are invalid.
func Clear(n *animator.Node) error {
	return Override(n, nil)
}

// Apply overrides every node of sys found in o. It returns the keys that
// matched no node. Props that fail to apply are reported together and do not
// stop the others.
func Apply(sys *animator.System, o ports.Overrides) (unknown []string, err error) {
	byKey := make(map[string]*animator.Node)
	for _, n := range sys.Nodes() {
		byKey[Key(n)] = n
	}

	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		n, ok := byKey[k]
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		if err := Override(n, o[k]); err != nil {
			errs = append(errs, &settings.ValidationError{Key: k, Reason: err.Error(), Err: err})
		}
	}
	if len(errs) > 0 {
		return unknown, &settings.AggregateError{Errors: errs}
	}
	return unknown, nil
}

// Load reads the overrides of sys from store. It does not touch sys and may
// run on any goroutine.
func Load(ctx context.Context, store ports.OverrideStore, systemID string) (ports.Overrides, error) {
	o, err := store.Load(ctx, systemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load overrides for %s: %w", systemID, err)
	}
	return o, nil
}
