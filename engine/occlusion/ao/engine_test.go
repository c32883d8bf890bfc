package ao

import (
	"bytes"
	"testing"
)

func TestEngineEvaluateFillsRawBuffer(t *testing.T) {
	gb := stepBuffer()
	e := NewEngine(testSize, testSize, WithWorkers(4), WithQuality(QualityLow))
	e.Evaluate(gb, testProj())

	raw := e.Raw()
	if len(raw) != testSize*testSize {
		t.Fatalf("raw buffer has %d values, want %d", len(raw), testSize*testSize)
	}
	for i, v := range raw {
		if v < 0 || v > 1 {
			t.Fatalf("raw[%d] = %v, outside [0, 1]", i, v)
		}
	}

	nearWall := raw[32*testSize+wallStart-1]
	open := raw[32*testSize+10]
	if nearWall >= open {
		t.Errorf("pixel beside the step (%v) should be darker than the open pixel (%v)", nearWall, open)
	}
}

func TestEngineParallelMatchesSerial(t *testing.T) {
	gb := stepBuffer()
	parallel := NewEngine(testSize, testSize, WithWorkers(8), WithQuality(QualityLow))
	serial := NewEngine(testSize, testSize, WithWorkers(1), WithQuality(QualityLow))

	parallel.Evaluate(gb, testProj())
	serial.Evaluate(gb, testProj())

	p := parallel.Raw()
	s := serial.Raw()
	for i := range p {
		if p[i] != s[i] {
			t.Fatalf("worker fan-out changed the result at %d: %v vs %v", i, p[i], s[i])
		}
	}
}

func TestEngineResolveWritesResolvedBuffer(t *testing.T) {
	gb := stepBuffer()
	e := NewEngine(testSize, testSize, WithWorkers(2), WithQuality(QualityLow))
	e.Evaluate(gb, testProj())
	e.Resolve(gb)

	resolved := e.Resolved()
	for i, v := range resolved {
		if v < 0 || v > 1 {
			t.Fatalf("resolved[%d] = %v, outside [0, 1]", i, v)
		}
	}
}

func TestEngineResizeReallocatesBuffers(t *testing.T) {
	e := NewEngine(testSize, testSize, WithWorkers(1))
	e.Resize(16, 8)
	if e.Width() != 16 || e.Height() != 8 {
		t.Errorf("after Resize: %dx%d, want 16x8", e.Width(), e.Height())
	}
	if len(e.Raw()) != 128 || len(e.Resolved()) != 128 {
		t.Errorf("buffers not reallocated: raw %d, resolved %d", len(e.Raw()), len(e.Resolved()))
	}
}

func TestEngineEvaluateAdoptsMismatchedBufferSize(t *testing.T) {
	e := NewEngine(testSize, testSize, WithWorkers(1), WithQuality(QualityLow))
	small := NewGBuffer(8, 8)
	e.Evaluate(small, testProj())
	if e.Width() != 8 || e.Height() != 8 {
		t.Errorf("engine did not adopt the geometry buffer size: %dx%d", e.Width(), e.Height())
	}
}

func TestEngineQualitySwitching(t *testing.T) {
	e := NewEngine(testSize, testSize, WithWorkers(1), WithQuality(QualityLow))
	if e.Kernel().Size() != 32 {
		t.Fatalf("low quality kernel has %d samples, want 32", e.Kernel().Size())
	}
	e.SetQuality(QualityUltra)
	if e.Quality() != QualityUltra || e.Kernel().Size() != 256 {
		t.Errorf("after SetQuality(ultra): %s with %d samples", e.Quality(), e.Kernel().Size())
	}
}

func TestEngineTechniqueSwitching(t *testing.T) {
	e := NewEngine(testSize, testSize, WithWorkers(1))
	if e.Technique().Name() != "ssao" {
		t.Fatalf("default technique = %s, want ssao", e.Technique().Name())
	}
	e.SetTechnique(NewGTAO())
	if e.Technique().Name() != "gtao" {
		t.Errorf("after SetTechnique: %s, want gtao", e.Technique().Name())
	}
	e.SetTechnique(nil)
	if e.Technique() == nil {
		t.Error("SetTechnique(nil) must keep the current technique")
	}
}

func TestEncodeWebP(t *testing.T) {
	values := make([]float32, 16*16)
	for i := range values {
		values[i] = float32(i) / 255
	}

	var buf bytes.Buffer
	if err := EncodeWebP(&buf, values, 16, 16); err != nil {
		t.Fatalf("EncodeWebP failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("EncodeWebP wrote no data")
	}
	if err := EncodeWebP(&bytes.Buffer{}, values, 64, 64); err == nil {
		t.Error("undersized buffer must be rejected")
	}
}
