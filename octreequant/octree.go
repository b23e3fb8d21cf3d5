// Package octreequant implements an adaptive octree color quantizer. Pixels
// are sorted into an 8-ary tree, one level per significant bit of each color
// channel, and subtrees are folded into their parents until the number of
// leaves fits the requested palette.
package octreequant

import (
	"errors"
	"image/color"

	"git.sr.ht/~rockorager/octquant"
	"git.sr.ht/~rockorager/octquant/log"
)

var (
	// ErrNoLeaf is returned by LookupIndex when a color's path ends before
	// a leaf. It indicates a color that was never added to the tree.
	ErrNoLeaf = errors.New("octreequant: no leaf on color path")
	// ErrNotBuilt is returned by LookupIndex before BuildPalette.
	ErrNotBuilt = errors.New("octreequant: palette not built")
)

var mask = [8]uint8{0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01}

type node struct {
	level    int
	leaf     bool
	children [8]*node

	red    uint64
	green  uint64
	blue   uint64
	pixels uint64

	index uint8
}

// childIndex returns the child slot for p at the given level, taking one bit
// from each channel: red is the high bit, blue the low bit.
func childIndex(p octquant.Pixel, level int) int {
	m := mask[level]
	i := 0
	if p.R&m != 0 {
		i |= 4
	}
	if p.G&m != 0 {
		i |= 2
	}
	if p.B&m != 0 {
		i |= 1
	}
	return i
}

func (n *node) add(p octquant.Pixel) {
	n.red += uint64(p.R)
	n.green += uint64(p.G)
	n.blue += uint64(p.B)
	n.pixels++
}

// fold moves the statistics of every child into n, discards the children and
// makes n a leaf. It returns the number of children folded.
func (n *node) fold() int {
	folded := 0
	for i, c := range n.children {
		if c == nil {
			continue
		}
		n.red += c.red
		n.green += c.green
		n.blue += c.blue
		n.pixels += c.pixels
		n.children[i] = nil
		folded++
	}
	n.leaf = true
	return folded
}

func (n *node) average() color.NRGBA {
	if n.pixels == 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: uint8(n.red / n.pixels),
		G: uint8(n.green / n.pixels),
		B: uint8(n.blue / n.pixels),
		A: 0xFF,
	}
}

// Octree accumulates color statistics for a single quantization run.
//
// Internal nodes are kept on one stack per level. Reduction always pops the
// most recently created node at the deepest level that has one.
type Octree struct {
	bits      int
	root      *node
	reducible [][]*node
	leaves    int

	// one pixel cache for runs of identical pixels
	lastColor uint32
	lastLeaf  *node

	frozen bool
}

// NewOctree returns an empty tree examining bits significant bits per
// channel. bits must be in [1,8].
func NewOctree(bits int) *Octree {
	if bits < 1 || bits > 8 {
		panic("octreequant: color bits out of range")
	}
	t := &Octree{
		bits:      bits,
		reducible: make([][]*node, bits),
	}
	t.root = t.newNode(0)
	return t
}

func (t *Octree) newNode(level int) *node {
	n := &node{level: level}
	if level == t.bits {
		n.leaf = true
		t.leaves++
		return n
	}
	t.reducible[level] = append(t.reducible[level], n)
	return n
}

// Leaves returns the number of leaves reachable from the root.
func (t *Octree) Leaves() int {
	return t.leaves
}

// AddColor accumulates p into the leaf for its color. AddColor panics if
// called after BuildPalette.
func (t *Octree) AddColor(p octquant.Pixel) {
	if t.frozen {
		panic("octreequant: AddColor after BuildPalette")
	}
	v := p.Uint32()
	if t.lastLeaf != nil && v == t.lastColor {
		t.lastLeaf.add(p)
		return
	}
	n := t.root
	for !n.leaf {
		i := childIndex(p, n.level)
		c := n.children[i]
		if c == nil {
			c = t.newNode(n.level + 1)
			n.children[i] = c
		}
		n = c
	}
	n.add(p)
	t.lastColor = v
	t.lastLeaf = n
}

// reduce folds one internal node into a leaf. It returns false when there is
// nothing left to fold.
func (t *Octree) reduce() bool {
	level := t.bits - 1
	for level > 0 && len(t.reducible[level]) == 0 {
		level--
	}
	stack := t.reducible[level]
	if len(stack) == 0 {
		return false
	}
	n := stack[len(stack)-1]
	stack[len(stack)-1] = nil
	t.reducible[level] = stack[:len(stack)-1]
	t.leaves -= n.fold() - 1
	t.lastLeaf = nil
	return true
}

// BuildPalette folds the tree until at most maxColors leaves remain, numbers
// the leaves in depth first order and returns their average colors. The
// transparent slot of the palette is maxColors, which must be in [1,255].
// After BuildPalette the tree is read only.
func (t *Octree) BuildPalette(maxColors int) octquant.Palette {
	if maxColors < 1 || maxColors > 255 {
		panic("octreequant: max colors out of range")
	}
	if t.frozen {
		panic("octreequant: BuildPalette called twice")
	}
	before := t.leaves
	for t.leaves > maxColors {
		if !t.reduce() {
			break
		}
	}
	log.Debug("octree reduced from %d to %d leaves (max %d)", before, t.leaves, maxColors)
	t.frozen = true
	t.lastLeaf = nil
	t.reducible = nil

	palette := octquant.Palette{
		Colors:      make([]color.NRGBA, 0, t.leaves),
		Transparent: uint8(maxColors),
	}
	t.walk(func(n *node) {
		n.index = uint8(len(palette.Colors))
		palette.Colors = append(palette.Colors, n.average())
	})
	return palette
}

// walk visits every leaf in pre-order, children in ascending slot order.
// An empty tree has no leaves: the root is only a leaf once it has been
// folded.
func (t *Octree) walk(fn func(*node)) {
	var visit func(*node)
	visit = func(n *node) {
		if n.leaf {
			fn(n)
			return
		}
		for _, c := range n.children {
			if c != nil {
				visit(c)
			}
		}
	}
	visit(t.root)
}

// PixelCount returns the number of pixels accumulated across all leaves.
func (t *Octree) PixelCount() uint64 {
	var total uint64
	t.walk(func(n *node) {
		total += n.pixels
	})
	return total
}

// LookupIndex returns the palette index of the leaf p falls into. The walk
// stops at the first leaf on p's path, which may be above the bottom level
// when the subtree was folded.
func (t *Octree) LookupIndex(p octquant.Pixel) (uint8, error) {
	if !t.frozen {
		return 0, ErrNotBuilt
	}
	n := t.root
	for !n.leaf {
		n = n.children[childIndex(p, n.level)]
		if n == nil {
			return 0, ErrNoLeaf
		}
	}
	return n.index, nil
}
