package payments

import "context"

// HookFunc runs after a real unpaid->paid transition, with the updated record.
type HookFunc func(ctx context.Context, p Payment) error

// HookRegistry maps known hook names to handlers. It is populated during
// startup wiring and read-only afterwards; the success_hook column on a
// payment record can only select from this fixed set, never name arbitrary
// code.
type HookRegistry struct {
	m map[string]HookFunc
}

func NewHookRegistry() *HookRegistry {
	return &HookRegistry{m: make(map[string]HookFunc)}
}

// Register adds a hook under a deploy-time name. Startup only; not safe for
// concurrent use with Resolve.
func (r *HookRegistry) Register(name string, fn HookFunc) {
	r.m[name] = fn
}

func (r *HookRegistry) Resolve(name string) (HookFunc, bool) {
	fn, ok := r.m[name]
	return fn, ok
}
