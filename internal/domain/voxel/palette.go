package voxel

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
)

// AirID is the palette id every palette reserves for air
const AirID uint16 = 0

// Palette maps block names to compact ids in declaration order.
// Ids are stable for a given declaration order, which recordings rely on.
type Palette struct {
	ids    *orderedmap.OrderedMap[string, uint16]
	blocks []Block
}

// NewPalette creates a palette holding only air
func NewPalette() *Palette {
	p := &Palette{ids: orderedmap.NewOrderedMap[string, uint16]()}
	p.ids.Set(Air{}.Name(), AirID)
	p.blocks = append(p.blocks, Air{})
	return p
}

// Register adds a block and returns its id
func (p *Palette) Register(b Block) (uint16, error) {
	if _, ok := p.ids.Get(b.Name()); ok {
		return 0, fmt.Errorf("block %s already registered", b.Name())
	}
	if len(p.blocks) > int(^uint16(0)) {
		return 0, fmt.Errorf("palette full, cannot register %s", b.Name())
	}
	id := uint16(len(p.blocks))
	p.ids.Set(b.Name(), id)
	p.blocks = append(p.blocks, b)
	return id, nil
}

// ID returns the id of a registered block name
func (p *Palette) ID(name string) (uint16, bool) {
	return p.ids.Get(name)
}

// Block returns the block for id. Unknown ids are air.
func (p *Palette) Block(id uint16) Block {
	if int(id) >= len(p.blocks) {
		return Air{}
	}
	return p.blocks[id]
}

// Names returns the registered names in declaration order
func (p *Palette) Names() []string {
	names := make([]string, 0, p.ids.Len())
	for el := p.ids.Front(); el != nil; el = el.Next() {
		names = append(names, el.Key)
	}
	return names
}

// Len returns the number of registered blocks including air
func (p *Palette) Len() int {
	return p.ids.Len()
}
