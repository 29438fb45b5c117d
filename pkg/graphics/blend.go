package graphics

import (
	"image"
	"math"
)

// Composite blends the src pixels starting at sp onto dst within r using mode.
// Both images hold premultiplied RGBA. Separable modes follow the W3C
// compositing model: co = (1-ab)·Cs + (1-as)·Cb + as·ab·B(cb, cs).
func Composite(dst *image.RGBA, r image.Rectangle, src *image.RGBA, sp image.Point, mode BlendMode) {
	delta := sp.Sub(r.Min)
	r = r.Intersect(dst.Bounds())
	r = r.Add(delta).Intersect(src.Bounds()).Sub(delta)
	if r.Empty() {
		return
	}
	blend := blendFunc(mode)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(r.Min.X+delta.X, y+delta.Y)
		for x := r.Min.X; x < r.Max.X; x, di, si = x+1, di+4, si+4 {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]
			compositePixel(d, s, mode, blend)
		}
	}
}

// BlendLayer composites a full-size layer onto dst.
func BlendLayer(dst, layer *image.RGBA, mode BlendMode) {
	Composite(dst, dst.Bounds(), layer, layer.Bounds().Min, mode)
}

func compositePixel(d, s []uint8, mode BlendMode, blend func(cb, cs float64) float64) {
	switch mode {
	case BlendModeClear:
		d[0], d[1], d[2], d[3] = 0, 0, 0, 0
		return
	case BlendModeSrc:
		copy(d, s)
		return
	}
	if s[3] == 0 {
		return
	}
	sa := float64(s[3]) / maxByte
	da := float64(d[3]) / maxByte
	for i := 0; i < 3; i++ {
		csp := float64(s[i]) / maxByte
		cbp := float64(d[i]) / maxByte
		cs := csp / sa
		cb := 0.0
		if da > 0 {
			cb = cbp / da
		}
		co := (1-da)*csp + (1-sa)*cbp + sa*da*clamp01(blend(cb, cs))
		d[i] = toByte(co)
	}
	d[3] = toByte(sa + da - sa*da)
}

func toByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * maxByte))
}

func blendFunc(mode BlendMode) func(cb, cs float64) float64 {
	switch mode {
	case BlendModeMultiply:
		return func(cb, cs float64) float64 { return cb * cs }
	case BlendModeScreen:
		return screen
	case BlendModeOverlay:
		return func(cb, cs float64) float64 { return hardLight(cs, cb) }
	case BlendModeSoftLight:
		return softLight
	default:
		return func(_, cs float64) float64 { return cs }
	}
}

func screen(cb, cs float64) float64 {
	return cb + cs - cb*cs
}

// hardLight is B(cb, cs) for the hard-light mode; overlay swaps its arguments.
func hardLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb * 2 * cs
	}
	return screen(cb, 2*cs-1)
}

func softLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float64
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = math.Sqrt(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}
