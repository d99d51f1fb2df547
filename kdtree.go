package kdknn

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"
)

// MaxStackDepth is the capacity of the traversal stack. It bounds the number
// of internal nodes on any root-to-leaf path, which median splitting keeps
// below 30 for up to MaxPoints points.
const MaxStackDepth = 30

// MaxPoints is the largest number of points a tree may hold.
const MaxPoints = 1 << 30

// Node is one entry of a Tree's node array.
//
// Internal nodes split space at Pos along axis Dim and have their children
// at Offset (lower side) and Offset+1 (upper side). Leaves have a non-zero
// Count and reference PrimIDs[Offset : Offset+Count].
type Node struct {
	Pos    float32
	Dim    int32
	Offset int32
	Count  int32
}

// IsLeaf reports whether the node is a leaf.
func (n Node) IsLeaf() bool { return n.Count != 0 }

// Tree is a read-only spatial k-d tree. Points on the lower side of a split
// have coordinates <= Pos and points on the upper side have coordinates >= Pos.
// Bounds covers every point in the tree. The traits type is a parameter so
// traversals bind GetPoint at compile time.
type Tree[D any, P Point[P], T DataTraits[D, P]] struct {
	Nodes   []Node
	PrimIDs []int32
	Data    []D
	Bounds  Box[P]
	Traits  T
}

// PointTree is a Tree whose data items are the points themselves.
type PointTree[P Point[P]] = Tree[P, P, PointData[P]]

// BuildOptions controls tree construction.
type BuildOptions struct {
	// LeafSize is the maximum number of primitives per leaf. Default: 8.
	LeafSize int

	// Logger receives a debug record per build. Nil disables logging.
	Logger *Logger
}

// DefaultBuildOptions returns BuildOptions with reasonable defaults.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{LeafSize: 8}
}

// BuildPointTree builds a tree whose data items are the points themselves.
func BuildPointTree[P Point[P]](points []P, opts BuildOptions) (*PointTree[P], error) {
	return BuildTree[P, P](points, PointData[P]{}, opts)
}

// BuildTree builds a spatial k-d tree over data. Nodes split at the median of
// the axis with the greatest extent, so the tree is balanced. data is not
// copied; the caller must not modify it while the tree is in use.
func BuildTree[D any, P Point[P], T DataTraits[D, P]](data []D, traits T, opts BuildOptions) (*Tree[D, P, T], error) {
	start := time.Now()
	t, err := buildTree(data, traits, opts)
	if opts.Logger != nil {
		nodes, depth := 0, 0
		if t != nil {
			nodes, depth = len(t.Nodes), t.Depth()
		}
		opts.Logger.LogBuild(context.Background(), len(data), nodes, depth, time.Since(start), err)
	}
	return t, err
}

func buildTree[D any, P Point[P], T DataTraits[D, P]](data []D, traits T, opts BuildOptions) (*Tree[D, P, T], error) {
	n := len(data)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if n > MaxPoints {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooManyPoints, n, MaxPoints)
	}
	leafSize := opts.LeafSize
	if leafSize < 1 {
		leafSize = DefaultBuildOptions().LeafSize
	}

	b := &treeBuilder[P]{
		points:   make([]P, n),
		leafSize: leafSize,
	}
	bounds := EmptyBox[P]()
	for i, d := range data {
		p := traits.GetPoint(d)
		if !isFinitePoint(p) {
			return nil, fmt.Errorf("%w: point %d", ErrNonFinite, i)
		}
		b.points[i] = p
		bounds.Grow(p)
	}

	b.primIDs = make([]int32, n)
	for i := range b.primIDs {
		b.primIDs[i] = int32(i)
	}
	b.nodes = make([]Node, 1, 2*((n+leafSize-1)/leafSize))
	b.buildNode(0, 0, n, 0)

	if b.maxDepth > MaxStackDepth {
		return nil, fmt.Errorf("%w: tree depth %d exceeds %d", ErrTooManyPoints, b.maxDepth, MaxStackDepth)
	}

	return &Tree[D, P, T]{
		Nodes:   b.nodes,
		PrimIDs: b.primIDs,
		Data:    data,
		Bounds:  bounds,
		Traits:  traits,
	}, nil
}

type treeBuilder[P Point[P]] struct {
	points   []P // positions indexed by original data index
	primIDs  []int32
	nodes    []Node
	leafSize int
	maxDepth int
}

// buildNode fills nodes[nodeID] for primIDs[start:end]. depth counts the
// internal nodes above it.
func (b *treeBuilder[P]) buildNode(nodeID, start, end, depth int) {
	count := end - start
	if count <= b.leafSize {
		b.nodes[nodeID] = Node{Offset: int32(start), Count: int32(count)}
		b.maxDepth = max(b.maxDepth, depth)
		return
	}

	// Find dimension with greatest spread.
	spread := EmptyBox[P]()
	for _, id := range b.primIDs[start:end] {
		spread.Grow(b.points[id])
	}
	dim := spread.WidestDim()

	b.sortByDimension(start, end, dim)
	mid := start + count/2
	pos := b.points[b.primIDs[mid]].Coord(dim)

	offset := len(b.nodes)
	b.nodes = append(b.nodes, Node{}, Node{})
	b.nodes[nodeID] = Node{Pos: pos, Dim: int32(dim), Offset: int32(offset)}

	b.buildNode(offset, start, mid, depth+1)
	b.buildNode(offset+1, mid, end, depth+1)
}

// sortByDimension sorts primIDs[start:end] by the given dimension.
func (b *treeBuilder[P]) sortByDimension(start, end, dim int) {
	points := b.points
	slices.SortFunc(b.primIDs[start:end], func(i, j int32) int {
		return cmp.Compare(points[i].Coord(dim), points[j].Coord(dim))
	})
}

// Depth returns the largest number of internal nodes on any root-to-leaf path.
func (t *Tree[D, P, T]) Depth() int {
	var walk func(nodeID, depth int) int
	walk = func(nodeID, depth int) int {
		node := t.Nodes[nodeID]
		if node.IsLeaf() {
			return depth
		}
		return max(walk(int(node.Offset), depth+1), walk(int(node.Offset)+1, depth+1))
	}
	return walk(0, 0)
}

// NumLeaves returns the number of leaf nodes.
func (t *Tree[D, P, T]) NumLeaves() int {
	leaves := 0
	for _, n := range t.Nodes {
		if n.IsLeaf() {
			leaves++
		}
	}
	return leaves
}

// Len returns the number of data items in the tree.
func (t *Tree[D, P, T]) Len() int { return len(t.Data) }

// Point returns the position of the data item with the given id.
func (t *Tree[D, P, T]) Point(id int32) P {
	return t.Traits.GetPoint(t.Data[id])
}
