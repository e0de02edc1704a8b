package obj

import "image"

// Hook runs custom per-tick behaviour at the start of Sprite.Update.
type Hook interface {
	Update(s *Sprite, in *Input)
}

// HookFunc adapts a function to Hook.
type HookFunc func(s *Sprite, in *Input)

func (f HookFunc) Update(s *Sprite, in *Input) {
	f(s, in)
}

type hookChain []Hook

func (c hookChain) Update(s *Sprite, in *Input) {
	for _, h := range c {
		h.Update(s, in)
	}
}

// ChainHooks runs hooks in order. Nil entries are dropped.
func ChainHooks(hooks ...Hook) Hook {
	var chain hookChain
	for _, h := range hooks {
		if h != nil {
			chain = append(chain, h)
		}
	}
	switch len(chain) {
	case 0:
		return nil
	case 1:
		return chain[0]
	}
	return chain
}

// Canvas is implemented by renderers. The toolkit decides which frame to
// show and where; the canvas composites the pixels.
type Canvas interface {
	DrawFrame(img image.Image, t Transform)
}
