package voxelao

import (
	"sync"
	"testing"
)

// testWorld is a mutable occupancy fixture. Coordinates absent from the map
// are empty; chunks listed in unloaded report loaded=false.
type testWorld struct {
	mu       sync.Mutex
	solid    map[[3]int]bool
	unloaded map[[3]int]bool
	queries  int
}

func newTestWorld() *testWorld {
	return &testWorld{solid: make(map[[3]int]bool), unloaded: make(map[[3]int]bool)}
}

func (w *testWorld) occupancy(x, y, z int) (bool, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queries++
	key := [3]int{x, y, z}
	if w.unloaded[key] {
		return false, false
	}
	return w.solid[key], true
}

func TestQueryOpenAirIsFullyLit(t *testing.T) {
	c := NewCache(newTestWorld().occupancy)
	if got := c.Query(0, 10, 0, FaceTop); got != 1.0 {
		t.Errorf("open-air voxel AO = %v, want 1.0", got)
	}
}

func TestQueryFullyEnclosedClampsToFloor(t *testing.T) {
	w := newTestWorld()
	// All 8 neighbors of the top-face stencil solid.
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			w.solid[[3]int{dx, 0, dz}] = true
		}
	}

	c := NewCache(w.occupancy)
	if got := c.Query(0, 0, 0, FaceTop); got != MinAO {
		t.Errorf("fully enclosed voxel AO = %v, want the %v floor", got, MinAO)
	}
}

func TestQueryPartialOcclusion(t *testing.T) {
	w := newTestWorld()
	w.solid[[3]int{1, 0, 0}] = true
	w.solid[[3]int{0, 0, 1}] = true

	c := NewCache(w.occupancy)
	want := float32(1.0) - 2.0/8.0
	if got := c.Query(0, 0, 0, FaceTop); got != want {
		t.Errorf("2 solid neighbors: AO = %v, want %v", got, want)
	}
}

func TestQueryIntensityScalesOcclusion(t *testing.T) {
	w := newTestWorld()
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			w.solid[[3]int{dx, 0, dz}] = true
		}
	}

	c := NewCache(w.occupancy, WithIntensity(0.5))
	if got := c.Query(0, 0, 0, FaceTop); got != 0.5 {
		t.Errorf("enclosed voxel at half intensity: AO = %v, want 0.5", got)
	}
}

func TestQueryMemoizesAndIgnoresWorldMutation(t *testing.T) {
	w := newTestWorld()
	c := NewCache(w.occupancy)

	first := c.Query(0, 0, 0, FaceTop)
	queriesAfterFirst := w.queries

	// Mutate the world; the cached entry must win unchanged, with no new
	// occupancy traffic.
	w.mu.Lock()
	w.solid[[3]int{1, 0, 0}] = true
	w.mu.Unlock()

	second := c.Query(0, 0, 0, FaceTop)
	if second != first {
		t.Errorf("cached entry mutated: %v then %v", first, second)
	}
	if w.queries != queriesAfterFirst {
		t.Errorf("cache hit still queried occupancy %d more times", w.queries-queriesAfterFirst)
	}
}

func TestQueryUnloadedChunkIsNeutralAndUncached(t *testing.T) {
	w := newTestWorld()
	w.unloaded[[3]int{1, 0, 0}] = true
	c := NewCache(w.occupancy)

	if got := c.Query(0, 0, 0, FaceTop); got != 1.0 {
		t.Errorf("unloaded neighbor: AO = %v, want neutral 1.0", got)
	}
	if c.Len() != 0 {
		t.Errorf("unloaded query was cached: Len() = %d", c.Len())
	}

	// Once the chunk loads, the real value is computed and cached.
	w.mu.Lock()
	delete(w.unloaded, [3]int{1, 0, 0})
	w.solid[[3]int{1, 0, 0}] = true
	w.mu.Unlock()

	want := float32(1.0) - 1.0/8.0
	if got := c.Query(0, 0, 0, FaceTop); got != want {
		t.Errorf("after chunk load: AO = %v, want %v", got, want)
	}
	if c.Len() != 1 {
		t.Errorf("loaded query not cached: Len() = %d", c.Len())
	}
}

func TestQueryRejectsWhenFull(t *testing.T) {
	w := newTestWorld()
	w.solid[[3]int{1, 50, 0}] = true
	c := NewCache(w.occupancy, WithCapacity(2))

	c.Query(0, 0, 0, FaceTop)
	c.Query(10, 0, 0, FaceTop)
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	// The third computation is returned but not persisted, and existing
	// entries are not evicted.
	got := c.Query(0, 50, 0, FaceTop)
	want := float32(1.0) - 1.0/8.0
	if got != want {
		t.Errorf("over-capacity query = %v, want computed %v", got, want)
	}
	if c.Len() != 2 {
		t.Errorf("capacity exceeded: Len() = %d", c.Len())
	}
	if got := c.Query(0, 0, 0, FaceTop); got != 1.0 {
		t.Errorf("existing entry evicted: %v", got)
	}
}

func TestStencilsFollowFaceAxis(t *testing.T) {
	w := newTestWorld()
	// A single solid voxel straight above: in the XZ-plane stencil of a top
	// face it is invisible, but a left/right face's YZ stencil sees it.
	w.solid[[3]int{0, 1, 0}] = true
	c := NewCache(w.occupancy)

	if got := c.Query(0, 0, 0, FaceTop); got != 1.0 {
		t.Errorf("top-face stencil should not see the voxel above: AO = %v", got)
	}

	c2 := NewCache(w.occupancy)
	want := float32(1.0) - 1.0/8.0
	if got := c2.Query(0, 0, 0, FaceLeft); got != want {
		t.Errorf("side-face stencil should see the voxel above: AO = %v, want %v", got, want)
	}

	c3 := NewCache(w.occupancy)
	if got := c3.Query(0, 0, 0, FaceFront); got != want {
		t.Errorf("front-face stencil should see the voxel above: AO = %v, want %v", got, want)
	}
}

func TestInvalidateDropsNeighborhood(t *testing.T) {
	w := newTestWorld()
	c := NewCache(w.occupancy)

	for x := -3; x <= 3; x++ {
		c.Query(x, 0, 0, FaceTop)
	}
	if c.Len() != 7 {
		t.Fatalf("Len() = %d, want 7", c.Len())
	}

	c.Invalidate(0, 0, 0)
	if c.Len() != 4 {
		t.Errorf("after Invalidate: Len() = %d, want 4 (x in {-3,-2,2,3} survive)", c.Len())
	}

	// A re-query after mutation sees the new world.
	w.mu.Lock()
	w.solid[[3]int{1, 0, 0}] = true
	w.mu.Unlock()
	want := float32(1.0) - 1.0/8.0
	if got := c.Query(0, 0, 0, FaceTop); got != want {
		t.Errorf("re-query after invalidate = %v, want %v", got, want)
	}
}

func TestClearEmptiesCache(t *testing.T) {
	c := NewCache(newTestWorld().occupancy)
	c.Query(0, 0, 0, FaceTop)
	c.Query(1, 0, 0, FaceTop)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("after Clear: Len() = %d, want 0", c.Len())
	}
}

func TestBakerWarmsRegion(t *testing.T) {
	w := newTestWorld()
	w.solid[[3]int{2, 3, 2}] = true
	c := NewCache(w.occupancy)

	b := NewBaker(4)
	b.Bake(c, [3]int{0, 0, 0}, [3]int{7, 7, 7})

	if c.Len() != 8*8*8 {
		t.Fatalf("baked region cached %d entries, want %d", c.Len(), 8*8*8)
	}

	// Baked entries answer without further occupancy traffic.
	w.mu.Lock()
	before := w.queries
	w.mu.Unlock()
	want := float32(1.0) - 1.0/8.0
	if got := c.Query(1, 3, 2, FaceTop); got != want {
		t.Errorf("baked voxel beside the solid block = %v, want %v", got, want)
	}
	w.mu.Lock()
	after := w.queries
	w.mu.Unlock()
	if after != before {
		t.Errorf("baked entry still queried occupancy %d times", after-before)
	}
}
