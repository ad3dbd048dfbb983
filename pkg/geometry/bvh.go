package geometry

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/golang/glog"
	"golang.org/x/xerrors"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

var (
	// ErrEmptyScene is returned when a BVH is built over no objects
	ErrEmptyScene = xerrors.New("no objects to build a BVH over")
	// ErrNoBoundingBox is returned when an object cannot report a bounding box
	ErrNoBoundingBox = xerrors.New("object has no bounding box")
	// ErrIncomparableBounds is returned when bounding box coordinates cannot be ordered (NaN)
	ErrIncomparableBounds = xerrors.New("bounding box coordinates are not comparable")
	// ErrUnknownAxis is returned when the split axis is not one of x, y or z
	ErrUnknownAxis = xerrors.New("unknown split axis")
)

const noChild = -1

// bvhNode is either a leaf holding one object or an interior node with two
// child indices into the arena
type bvhNode struct {
	box         core.AABB
	left, right int
	object      Hitable
}

func (n *bvhNode) isLeaf() bool {
	return n.object != nil
}

// BVH is a bounding volume hierarchy stored as a flat arena of nodes.
// It is immutable after construction and is itself a Hitable, so BVHs can be nested.
type BVH struct {
	nodes []bvhNode
	root  int
}

// bvhEntry caches an object's bounding box for the duration of the build
type bvhEntry struct {
	object Hitable
	box    core.AABB
}

// NewBVH builds a hierarchy over objects. At every level the split axis is
// drawn from sampler, the objects are sorted by their box minimum on that axis
// and split at the middle index. The objects slice is not modified.
func NewBVH(objects []Hitable, sampler core.Sampler) (*BVH, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyScene
	}

	entries := make([]bvhEntry, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox()
		if !ok {
			return nil, xerrors.Errorf("while collecting bounds of object %d (%T): %w", i, object, ErrNoBoundingBox)
		}
		entries[i] = bvhEntry{object: object, box: box}
	}

	bvh := &BVH{nodes: make([]bvhNode, 0, 2*len(entries)-1)}
	root, err := bvh.build(entries, sampler)
	if err != nil {
		return nil, xerrors.Errorf("while building BVH over %d objects: %w", len(objects), err)
	}
	bvh.root = root

	if glog.V(1) {
		stats := bvh.Stats()
		glog.Infof("Built BVH: %d objects, %d nodes, %d leaves, max depth %d",
			len(objects), stats.TotalNodes, stats.LeafNodes, stats.MaxDepth)
	}
	return bvh, nil
}

// build appends the subtree over entries to the arena and returns its root index
func (bvh *BVH) build(entries []bvhEntry, sampler core.Sampler) (int, error) {
	axis := int(3 * sampler.Get1D())
	if err := sortByAxis(entries, axis); err != nil {
		return noChild, err
	}

	switch len(entries) {
	case 1:
		return bvh.addLeaf(entries[0]), nil
	case 2:
		left := bvh.addLeaf(entries[0])
		right := bvh.addLeaf(entries[1])
		return bvh.addInterior(left, right), nil
	}

	mid := len(entries) / 2
	left, err := bvh.build(entries[:mid], sampler)
	if err != nil {
		return noChild, err
	}
	right, err := bvh.build(entries[mid:], sampler)
	if err != nil {
		return noChild, err
	}
	return bvh.addInterior(left, right), nil
}

func (bvh *BVH) addLeaf(entry bvhEntry) int {
	bvh.nodes = append(bvh.nodes, bvhNode{box: entry.box, left: noChild, right: noChild, object: entry.object})
	return len(bvh.nodes) - 1
}

func (bvh *BVH) addInterior(left, right int) int {
	box := core.SurroundingBox(bvh.nodes[left].box, bvh.nodes[right].box)
	bvh.nodes = append(bvh.nodes, bvhNode{box: box, left: left, right: right})
	return len(bvh.nodes) - 1
}

// sortByAxis orders entries by their box minimum along axis
func sortByAxis(entries []bvhEntry, axis int) error {
	if axis < 0 || axis > 2 {
		return xerrors.Errorf("axis %d: %w", axis, ErrUnknownAxis)
	}
	for i, entry := range entries {
		if math32.IsNaN(entry.box.Min.Axis(axis)) {
			return xerrors.Errorf("while sorting %T (entry %d) on axis %d: %w", entry.object, i, axis, ErrIncomparableBounds)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].box.Min.Axis(axis) < entries[j].box.Min.Axis(axis)
	})
	return nil
}

// Hit returns the closest hit in the hierarchy
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	return bvh.hitNode(bvh.root, ray, tMin, tMax, sampler)
}

// hitNode prunes on the node box, then queries both children with the same
// window and keeps the closer result
func (bvh *BVH) hitNode(index int, ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	node := &bvh.nodes[index]
	if !node.box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	if node.isLeaf() {
		return node.object.Hit(ray, tMin, tMax, sampler)
	}

	leftHit, hitLeft := bvh.hitNode(node.left, ray, tMin, tMax, sampler)
	rightHit, hitRight := bvh.hitNode(node.right, ray, tMin, tMax, sampler)

	switch {
	case hitLeft && hitRight:
		if leftHit.T < rightHit.T {
			return leftHit, true
		}
		return rightHit, true
	case hitLeft:
		return leftHit, true
	case hitRight:
		return rightHit, true
	default:
		return nil, false
	}
}

// BoundingBox returns the root box
func (bvh *BVH) BoundingBox() (core.AABB, bool) {
	return bvh.nodes[bvh.root].box, true
}

// BVHStats describes the shape of a hierarchy
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64 // Mean leaf depth
}

// Stats walks the hierarchy and reports its shape
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	bvh.collectStats(bvh.root, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}
	return stats
}

func (bvh *BVH) collectStats(index, depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	node := &bvh.nodes[index]
	if node.isLeaf() {
		stats.LeafNodes++
		stats.AvgDepth += float64(depth) // Accumulated here, divided in Stats
		return
	}
	bvh.collectStats(node.left, depth+1, stats)
	bvh.collectStats(node.right, depth+1, stats)
}
