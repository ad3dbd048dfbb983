package geometry

import (
	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

// HitableList is an unordered aggregate searched linearly
type HitableList struct {
	Objects []Hitable
}

// NewHitableList creates a list from the given objects
func NewHitableList(objects ...Hitable) *HitableList {
	return &HitableList{Objects: objects}
}

// Add appends an object to the list
func (l *HitableList) Add(object Hitable) {
	l.Objects = append(l.Objects, object)
}

// Hit returns the closest hit among all members, shrinking the upper bound
// each time a closer hit is found
func (l *HitableList) Hit(ray core.Ray, tMin, tMax float32, sampler core.Sampler) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar, sampler); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox is the union of all member boxes. An empty list or any
// unbounded member makes the list unbounded.
func (l *HitableList) BoundingBox() (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	var box core.AABB
	for i, object := range l.Objects {
		objectBox, ok := object.BoundingBox()
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			box = objectBox
		} else {
			box = core.SurroundingBox(box, objectBox)
		}
	}
	return box, true
}
