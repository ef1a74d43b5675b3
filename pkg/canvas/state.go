// state.go — Scoped drawing state and the default-state check.
package canvas

// Scoped runs fn and then restores compositing and shadow state to their
// defaults, so fn's state changes never reach the next draw call.
func (c *Context) Scoped(fn func()) {
	defer func() {
		c.ResetCompositing()
		c.ResetShadow()
	}()
	fn()
}

// DefaultState reports whether compositing and shadow are at their defaults.
func (c *Context) DefaultState() bool {
	return c.GlobalAlpha == 1 &&
		c.GlobalCompositeOperation == SourceOver &&
		c.ShadowColor.A == 0 &&
		c.ShadowBlur == 0 &&
		c.ShadowOffsetX == 0 &&
		c.ShadowOffsetY == 0
}
