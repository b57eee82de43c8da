package kernel

// EstimateVolume counts sample points inside s on a regular grid of the
// given step, one sample at the center of each cell of its bounding box.
// It reports false when s does not implement Sampler.
func EstimateVolume(s Solid, step float64) (float64, bool) {
	sm, ok := s.(Sampler)
	if !ok || step <= 0 {
		return 0, false
	}
	min, max := s.BoundingBox()
	n := [3]int{}
	for i := 0; i < 3; i++ {
		n[i] = int((max[i]-min[i])/step + 0.5)
	}
	count := 0
	for ix := 0; ix < n[0]; ix++ {
		x := min[0] + (float64(ix)+0.5)*step
		for iy := 0; iy < n[1]; iy++ {
			y := min[1] + (float64(iy)+0.5)*step
			for iz := 0; iz < n[2]; iz++ {
				z := min[2] + (float64(iz)+0.5)*step
				if sm.Inside(x, y, z) {
					count++
				}
			}
		}
	}
	return float64(count) * step * step * step, true
}
