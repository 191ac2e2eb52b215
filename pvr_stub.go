// pvr_stub.go - PVR rasterizer collaborator boundary

/*
Grounded on original_source/crates/dreamcast/src/pvr.rs and
.../refsw2-rust (the reference's tile-accelerator/rasterizer split):
the PVR is a large out-of-scope rasterizer in this specification, and
the core's only contract with it is "present the framebuffer for the
texture the frontend is about to draw." PresentForTexture is the narrow
seam; a real rasterizer is a separate collaborator wired in later.
*/

package dreamcast

// PVRPresenter is the narrow PVR collaborator boundary: given a
// requested width/height, produce a packed RGBA8888 framebuffer.
type PVRPresenter interface {
	PresentForTexture(width, height int) []byte
}

// stubPVR is a placeholder PVRPresenter returning an opaque black
// framebuffer, used when no real rasterizer is wired in.
type stubPVR struct{}

func NewStubPVR() PVRPresenter { return stubPVR{} }

func (stubPVR) PresentForTexture(width, height int) []byte {
	buf := make([]byte, width*height*4)
	for i := 3; i < len(buf); i += 4 {
		buf[i] = 0xFF
	}
	return buf
}
