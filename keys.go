package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/rollcourse/input"
)

// keyTable maps lowercase ebiten key names ("w", "arrowup", "space") to keys.
func keyTable() map[string]ebiten.Key {
	keys := make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		keys[strings.ToLower(k.String())] = k
	}
	return keys
}

type keySource struct {
	keys map[string]ebiten.Key
}

func (s keySource) IsKeyPressed(name string) bool {
	k, ok := s.keys[name]
	return ok && ebiten.IsKeyPressed(k)
}

func (s keySource) justPressed(names []string) bool {
	for _, name := range names {
		if k, ok := s.keys[strings.ToLower(name)]; ok && inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// checkKeys rejects bindings that name keys ebiten does not know.
func (s keySource) checkKeys(bindings input.Bindings, pause []string) error {
	check := func(name string) error {
		if _, ok := s.keys[strings.ToLower(strings.TrimSpace(name))]; !ok {
			return fmt.Errorf("keys: unknown key name %q", name)
		}
		return nil
	}
	for _, names := range bindings {
		for _, name := range names {
			if err := check(name); err != nil {
				return err
			}
		}
	}
	for _, name := range pause {
		if err := check(name); err != nil {
			return err
		}
	}
	return nil
}
