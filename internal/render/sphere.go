package render

import (
	"math"

	"wavesphere/internal/core"
)

// heightClamp bounds the displacement consumed for shading. The simulation
// itself leaves values unbounded; presentation clamps them.
const heightClamp = 400

// Surface is the slice of the simulation the renderer consumes: angle
// sampling for vertices and gradients for shading normals.
type Surface interface {
	Size() core.Size
	AngleToIndex(theta, phi float64) (col, row int)
	HeightAt(col, row int) float32
	GradientAt(col, row int) (dCol, dRow float32)
}

// SphereView projects the heightfield onto a shaded sphere in an RGBA pixel
// buffer, and inverts the projection for gesture picking. It owns the view
// rotation the Rotating gesture mutates; the simulation never sees it.
type SphereView struct {
	sizePx int
	radius float64
	center float64

	yaw   float64
	pitch float64

	buf []byte
}

// NewSphereView allocates a square view of the given pixel size. The sphere
// fills most of the viewport.
func NewSphereView(sizePx int) *SphereView {
	if sizePx < 16 {
		sizePx = 16
	}
	return &SphereView{
		sizePx: sizePx,
		radius: float64(sizePx) * 0.42,
		center: float64(sizePx) / 2,
		buf:    make([]byte, sizePx*sizePx*4),
	}
}

// SizePx returns the square viewport size in pixels.
func (v *SphereView) SizePx() int { return v.sizePx }

// Rotate applies a view-rotation delta in normalized units. Pitch is held
// short of the poles so the picking math stays stable.
func (v *SphereView) Rotate(dx, dy float64) {
	v.yaw += dx * 1.5
	v.pitch += dy * 1.5
	const limit = math.Pi/2 - 0.05
	if v.pitch > limit {
		v.pitch = limit
	}
	if v.pitch < -limit {
		v.pitch = -limit
	}
}

// Normalize converts pixel coordinates into view-space units relative to the
// sphere center, with the sphere radius as the unit and +y pointing up.
func (v *SphereView) Normalize(px, py float64) (x, y float64) {
	return (px - v.center) / v.radius, (v.center - py) / v.radius
}

// Pick converts a normalized view-space point into the spherical angles under
// it. ok is false when the point misses the sphere disc; the gesture machine
// still classifies such points as draw gestures inside the widened disc, they
// just inject nothing.
func (v *SphereView) Pick(x, y float64) (theta, phi float64, ok bool) {
	d2 := x*x + y*y
	if d2 > 1 {
		return 0, 0, false
	}
	z := math.Sqrt(1 - d2)
	mx, my, mz := v.unrotate(x, y, z)
	return anglesOf(mx, my, mz)
}

// Shade fills and returns the RGBA buffer for the current field state. One
// height and gradient sample per covered pixel.
func (v *SphereView) Shade(s Surface) []byte {
	size := v.sizePx
	// Light from the upper left, fixed in view space.
	const lx, ly, lz = -0.45, 0.55, 0.7

	i := 0
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			x := (float64(px) + 0.5 - v.center) / v.radius
			y := (v.center - float64(py) - 0.5) / v.radius
			d2 := x*x + y*y
			if d2 > 1 {
				v.buf[i+0] = 8
				v.buf[i+1] = 10
				v.buf[i+2] = 18
				v.buf[i+3] = 255
				i += 4
				continue
			}
			z := math.Sqrt(1 - d2)
			mx, my, mz := v.unrotate(x, y, z)
			theta, phi, _ := anglesOf(mx, my, mz)

			col, row := s.AngleToIndex(theta, phi)
			h := float64(s.HeightAt(col, row))
			if h > heightClamp {
				h = heightClamp
			} else if h < -heightClamp {
				h = -heightClamp
			}
			dCol, dRow := s.GradientAt(col, row)

			// Diffuse term from the geometric normal, perturbed by the
			// local height gradient so ripples catch the light.
			diffuse := x*lx + y*ly + z*lz
			diffuse -= float64(dCol) * 0.004
			diffuse += float64(dRow) * 0.004
			if diffuse < 0 {
				diffuse = 0
			} else if diffuse > 1 {
				diffuse = 1
			}

			lift := h / heightClamp // [-1, 1]
			r := 20 + 90*diffuse + 70*lift
			g := 60 + 120*diffuse + 40*lift
			b := 120 + 130*diffuse - 30*lift

			v.buf[i+0] = clampByte(r)
			v.buf[i+1] = clampByte(g)
			v.buf[i+2] = clampByte(b)
			v.buf[i+3] = 255
			i += 4
		}
	}
	return v.buf
}

// unrotate maps a view-space point on the unit sphere back into model space
// by undoing pitch, then yaw.
func (v *SphereView) unrotate(x, y, z float64) (mx, my, mz float64) {
	sp, cp := math.Sincos(-v.pitch)
	y, z = y*cp-z*sp, y*sp+z*cp
	sy, cy := math.Sincos(-v.yaw)
	x, z = x*cy+z*sy, -x*sy+z*cy
	return x, y, z
}

// anglesOf converts a unit model-space point into longitude [0, 2π) and
// colatitude [0, π] measured from the +Y pole.
func anglesOf(x, y, z float64) (theta, phi float64, ok bool) {
	theta = math.Atan2(z, x)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	if y > 1 {
		y = 1
	} else if y < -1 {
		y = -1
	}
	phi = math.Acos(y)
	return theta, phi, true
}

func clampByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
