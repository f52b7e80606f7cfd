package entity

import "testing"

func ptr(v float64) *float64 { return &v }

func TestNormalizeFaceMeta_Nil_ReturnsDefaults(t *testing.T) {
	meta := NormalizeFaceMeta(nil)

	want := FaceMeta{Width: 512, Height: 512, Scale: 1, Rotation: 0, OffsetX: 0, OffsetY: 0}
	if meta != want {
		t.Errorf("got %+v, want %+v", meta, want)
	}
}

func TestNormalizeFaceMeta_PartialTransform_FillsMissing(t *testing.T) {
	meta := NormalizeFaceMeta(&FaceTransform{Scale: ptr(1.5), Rotation: ptr(10)})

	if meta.Scale != 1.5 || meta.Rotation != 10 {
		t.Errorf("provided fields not kept: %+v", meta)
	}
	if meta.OffsetX != 0 || meta.OffsetY != 0 {
		t.Errorf("missing offsets should default to 0: %+v", meta)
	}
	if meta.Width != FaceOutputSize || meta.Height != FaceOutputSize {
		t.Errorf("dimensions should be fixed to %d: %+v", FaceOutputSize, meta)
	}
}

func TestNormalizeFaceMeta_ExplicitZeroScale_IsKept(t *testing.T) {
	meta := NormalizeFaceMeta(&FaceTransform{Scale: ptr(0)})

	if meta.Scale != 0 {
		t.Errorf("explicit zero should be kept, got %v", meta.Scale)
	}
}
