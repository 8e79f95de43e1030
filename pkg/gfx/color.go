package gfx

// RGB is a packed 24-bit color: bits 16-23 red, 8-15 green, 0-7 blue.
type RGB uint32

func (c RGB) Floats() [3]float32 {
	const inv = 1.0 / 255.0
	return [3]float32{
		float32((c>>16)&0xff) * inv,
		float32((c>>8)&0xff) * inv,
		float32(c&0xff) * inv,
	}
}
