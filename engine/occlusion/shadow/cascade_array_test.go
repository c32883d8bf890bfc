package shadow

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

type fakeTarget struct {
	label     string
	width     int
	height    int
	destroyed bool
}

func (f *fakeTarget) View() *wgpu.TextureView { return nil }
func (f *fakeTarget) Destroy()                { f.destroyed = true }

type fakeDevice struct {
	targets    []*fakeTarget
	failAt     int // index of CreateDepthTarget call to fail, -1 for none
	failSample bool
	calls      int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{failAt: -1}
}

func (d *fakeDevice) CreateDepthTarget(label string, width, height int) (DepthTarget, error) {
	call := d.calls
	d.calls++
	if call == d.failAt {
		return nil, errors.New("out of memory")
	}
	t := &fakeTarget{label: label, width: width, height: height}
	d.targets = append(d.targets, t)
	return t, nil
}

func (d *fakeDevice) CreateComparisonSampler() (*wgpu.Sampler, error) {
	if d.failSample {
		return nil, errors.New("device lost")
	}
	return nil, nil
}

func TestNewCascadeArrayAllocatesTargets(t *testing.T) {
	dev := newFakeDevice()
	arr, err := NewCascadeArray(dev, WithArrayCount(4), WithResolution(1024))
	if err != nil {
		t.Fatalf("NewCascadeArray failed: %v", err)
	}

	if arr.Count() != 4 {
		t.Errorf("Count() = %d, want 4", arr.Count())
	}
	if len(dev.targets) != 4 {
		t.Fatalf("device allocated %d targets, want 4", len(dev.targets))
	}
	for i, target := range dev.targets {
		if target.width != 1024 || target.height != 1024 {
			t.Errorf("target %d size %dx%d, want 1024x1024", i, target.width, target.height)
		}
		if !arr.Enabled(i) {
			t.Errorf("cascade %d should be enabled", i)
		}
	}
	if got := arr.TexelSize(); got != 1.0/1024.0 {
		t.Errorf("TexelSize() = %v, want %v", got, 1.0/1024.0)
	}
}

func TestNewCascadeArrayDisablesFailedCascade(t *testing.T) {
	dev := newFakeDevice()
	dev.failAt = 2
	arr, err := NewCascadeArray(dev, WithArrayCount(4))
	if err != nil {
		t.Fatalf("per-cascade failure must not fail the array: %v", err)
	}

	for i := 0; i < 4; i++ {
		want := i != 2
		if arr.Enabled(i) != want {
			t.Errorf("cascade %d enabled = %v, want %v", i, arr.Enabled(i), want)
		}
	}
	if arr.View(2) != nil {
		t.Error("disabled cascade should return a nil view")
	}
}

func TestNewCascadeArraySamplerFailureIsFatal(t *testing.T) {
	dev := newFakeDevice()
	dev.failSample = true
	if _, err := NewCascadeArray(dev); err == nil {
		t.Fatal("expected error when comparison sampler creation fails")
	}
}

func TestBindClampsIndex(t *testing.T) {
	dev := newFakeDevice()
	arr, err := NewCascadeArray(dev, WithArrayCount(3))
	if err != nil {
		t.Fatal(err)
	}

	low := arr.Bind(-5)
	high := arr.Bind(99)
	defer low.Release()
	defer high.Release()

	if low.Cascade != 0 {
		t.Errorf("Bind(-5) cascade = %d, want 0", low.Cascade)
	}
	if high.Cascade != 2 {
		t.Errorf("Bind(99) cascade = %d, want 2", high.Cascade)
	}
}

func TestDestroyRefusedWhileBound(t *testing.T) {
	dev := newFakeDevice()
	arr, err := NewCascadeArray(dev, WithArrayCount(2))
	if err != nil {
		t.Fatal(err)
	}

	b := arr.Bind(0)
	if err := arr.Destroy(); err == nil {
		t.Fatal("Destroy must fail while a binding is outstanding")
	}
	for _, target := range dev.targets {
		if target.destroyed {
			t.Fatal("targets were destroyed despite an outstanding binding")
		}
	}

	b.Release()
	b.Release() // double release is counted once
	if err := arr.Destroy(); err != nil {
		t.Fatalf("Destroy after release failed: %v", err)
	}
	for i, target := range dev.targets {
		if !target.destroyed {
			t.Errorf("target %d not destroyed", i)
		}
	}

	// Idempotent teardown.
	if err := arr.Destroy(); err != nil {
		t.Errorf("second Destroy failed: %v", err)
	}
}

func TestPCFSampleSnapping(t *testing.T) {
	dev := newFakeDevice()
	cases := []struct {
		requested int
		want      int
	}{
		{0, 1}, {1, 1}, {3, 1}, {4, 4}, {7, 4}, {9, 9}, {12, 9}, {16, 16}, {64, 16},
	}
	for _, tc := range cases {
		arr, err := NewCascadeArray(dev, WithPCFSamples(tc.requested))
		if err != nil {
			t.Fatal(err)
		}
		if got := arr.PCFSamples(); got != tc.want {
			t.Errorf("WithPCFSamples(%d): got %d taps, want %d", tc.requested, got, tc.want)
		}
	}
}

func TestFilterNoneForcesSingleTap(t *testing.T) {
	dev := newFakeDevice()
	arr, err := NewCascadeArray(dev, WithFilter(FilterNone), WithPCFSamples(16))
	if err != nil {
		t.Fatal(err)
	}
	if got := arr.PCFSamples(); got != 1 {
		t.Errorf("FilterNone PCFSamples() = %d, want 1", got)
	}
}
