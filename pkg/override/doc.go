// Package override implements the two-state machine that decides whether a
// field shows a computed or a manually entered reading time.
//
//	Computed   --Submit("M")-->     Overridden   (M matches digits(.digits)?)
//	Overridden --Submit("")-->      Computed     (recomputed from live content)
//	Overridden --ContentChanged-->  Overridden   (no recompute)
//	Computed   --ContentChanged-->  Computed     (recompute requested)
//	*          --Cancel-->          unchanged
//
// With AllowOverride off every Submit is rejected with
// types.ErrOverrideDisabled. A value overridden earlier keeps its state and
// is not recomputed.
package override
