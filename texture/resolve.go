package texture

// Resolve performs a multisample resolve from src into dst: for each pixel
// the sample values are pairwise-averaged down to one, using avg as the
// associative blend of two samples. dst must be single-sampled and share
// src's pixel dimensions.
func Resolve[T any](src, dst *Texture[T], avg func(a, b T) T) bool {
	if dst.SampleCount() != 1 {
		return false
	}
	if dst.size != src.size {
		return false
	}
	if src.SampleCount() == 1 {
		copy(dst.data, src.data)
		return true
	}

	samples := make([]T, src.SampleCount())
	for y := 0; y < src.size.Height; y++ {
		for x := 0; x < src.size.Width; x++ {
			for s := 0; s < src.SampleCount(); s++ {
				samples[s] = src.Get(x, y, s)
			}
			dst.Set(resolvePairwise(samples, avg), x, y, 0)
		}
	}
	return true
}

// resolvePairwise recursively halves the sample set, averaging adjacent
// pairs, until a single value remains.
func resolvePairwise[T any](samples []T, avg func(a, b T) T) T {
	if len(samples) == 1 {
		return samples[0]
	}
	half := len(samples) / 2
	next := make([]T, half)
	for i := 0; i < half; i++ {
		next[i] = avg(samples[2*i], samples[2*i+1])
	}
	return resolvePairwise(next, avg)
}
