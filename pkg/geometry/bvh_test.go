package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	"golang.org/x/xerrors"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/material"
)

// randomScene builds a mix of spheres, rects and boxes, each with its own material
// so hits can be attributed to an object
func randomScene(sampler *core.RandomSampler, count int) []Hitable {
	coord := func() float32 { return 20*sampler.Get1D() - 10 }

	objects := make([]Hitable, 0, count)
	for i := 0; i < count; i++ {
		mat := material.NewLambertian(core.NewVec3(sampler.Get1D(), sampler.Get1D(), sampler.Get1D()))
		switch i % 4 {
		case 0, 1:
			objects = append(objects, NewSphere(core.NewVec3(coord(), coord(), coord()), 0.2+sampler.Get1D(), mat))
		case 2:
			x, y, z := coord(), coord(), coord()
			objects = append(objects, NewXZRect(x, x+1+sampler.Get1D(), z, z+1+sampler.Get1D(), y, mat))
		case 3:
			p := core.NewVec3(coord(), coord(), coord())
			size := core.NewVec3(1, 2, 1)
			if i%8 == 7 {
				// Flat boxes have zero height
				size.Y = 0
			}
			objects = append(objects, NewBox(p, p.Add(size), mat))
		}
	}
	return objects
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	sampler := core.NewSeededSampler(7)
	objects := randomScene(sampler, 200)

	bvh, err := NewBVH(objects, sampler)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}
	list := NewHitableList(objects...)

	hits := 0
	for i := 0; i < 2000; i++ {
		origin := core.NewVec3(30*sampler.Get1D()-15, 30*sampler.Get1D()-15, 30*sampler.Get1D()-15)
		ray := core.NewRay(origin, core.RandomInUnitSphere(sampler))

		want, wantHit := list.Hit(ray, 0.001, math32.Inf(1), sampler)
		got, gotHit := bvh.Hit(ray, 0.001, math32.Inf(1), sampler)

		if wantHit != gotHit {
			t.Fatalf("ray %d: linear scan hit=%t, BVH hit=%t", i, wantHit, gotHit)
		}
		if !wantHit {
			continue
		}
		hits++
		if got.T != want.T || got.Material != want.Material {
			t.Errorf("ray %d: BVH hit t=%f, linear scan hit t=%f", i, got.T, want.T)
		}
	}

	if hits == 0 {
		t.Fatal("Test scene produced no hits")
	}
}

func TestBVH_DoesNotReorderInput(t *testing.T) {
	sampler := core.NewSeededSampler(1)
	objects := randomScene(sampler, 50)
	original := append([]Hitable(nil), objects...)

	if _, err := NewBVH(objects, sampler); err != nil {
		t.Fatalf("NewBVH: %v", err)
	}
	for i := range objects {
		if objects[i] != original[i] {
			t.Fatalf("input slice modified at %d", i)
		}
	}
}

func TestBVH_Stats(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"single", 1},
		{"pair", 2},
		{"odd", 7},
		{"many", 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler := core.NewSeededSampler(3)
			bvh, err := NewBVH(randomScene(sampler, tt.count), sampler)
			if err != nil {
				t.Fatalf("NewBVH: %v", err)
			}

			stats := bvh.Stats()
			if stats.LeafNodes != tt.count {
				t.Errorf("Expected %d leaves, got %d", tt.count, stats.LeafNodes)
			}
			if stats.TotalNodes != 2*tt.count-1 {
				t.Errorf("Expected %d nodes, got %d", 2*tt.count-1, stats.TotalNodes)
			}
			// Median splits keep the tree balanced
			maxDepth := int(math32.Ceil(math32.Log2(float32(tt.count))))
			if stats.MaxDepth > maxDepth {
				t.Errorf("Expected depth <= %d, got %d", maxDepth, stats.MaxDepth)
			}
		})
	}
}

func TestBVH_BoundingBoxCoversObjects(t *testing.T) {
	sampler := core.NewSeededSampler(11)
	objects := randomScene(sampler, 30)
	bvh, err := NewBVH(objects, sampler)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	root, ok := bvh.BoundingBox()
	if !ok {
		t.Fatal("Expected BVH to be bounded")
	}
	for _, object := range objects {
		box, _ := object.BoundingBox()
		if root.Union(box) != root {
			t.Errorf("root box %v does not contain %v", root, box)
		}
	}
}

func TestBVH_Nested(t *testing.T) {
	sampler := core.NewSeededSampler(5)
	inner, err := NewBVH([]Hitable{
		NewSphere(core.NewVec3(0, 0, 0), 1, gray),
		NewSphere(core.NewVec3(3, 0, 0), 1, gray),
	}, sampler)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	outer, err := NewBVH([]Hitable{
		NewTranslate(inner, core.NewVec3(0, 10, 0)),
		NewSphere(core.NewVec3(0, -10, 0), 1, gray),
	}, sampler)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	ray := core.NewRay(core.NewVec3(3, 10, 5), core.NewVec3(0, 0, -1))
	hit, isHit := outer.Hit(ray, 0.001, math32.Inf(1), sampler)
	if !isHit {
		t.Fatal("Expected hit on nested sphere")
	}
	if math32.Abs(hit.T-4) > 1e-5 {
		t.Errorf("Expected t=4, got %f", hit.T)
	}
}

func TestNewBVH_Errors(t *testing.T) {
	nan := math32.NaN()

	tests := []struct {
		name    string
		objects []Hitable
		sampler core.Sampler
		want    error
	}{
		{
			name:    "empty scene",
			objects: nil,
			sampler: fixedSampler(0),
			want:    ErrEmptyScene,
		},
		{
			name: "unbounded object",
			objects: []Hitable{
				NewSphere(core.Vec3{}, 1, gray),
				NewHitableList(),
			},
			sampler: fixedSampler(0),
			want:    ErrNoBoundingBox,
		},
		{
			name: "NaN bounds",
			objects: []Hitable{
				NewSphere(core.Vec3{}, 1, gray),
				NewSphere(core.NewVec3(nan, nan, nan), 1, gray),
			},
			sampler: fixedSampler(0.5),
			want:    ErrIncomparableBounds,
		},
		{
			name: "axis out of range",
			objects: []Hitable{
				NewSphere(core.Vec3{}, 1, gray),
				NewSphere(core.NewVec3(2, 0, 0), 1, gray),
			},
			sampler: fixedSampler(1),
			want:    ErrUnknownAxis,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bvh, err := NewBVH(tt.objects, tt.sampler)
			if !xerrors.Is(err, tt.want) {
				t.Errorf("NewBVH error = %v, want %v", err, tt.want)
			}
			if bvh != nil {
				t.Error("Expected no BVH on error")
			}
		})
	}
}
