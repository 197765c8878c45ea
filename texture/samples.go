package texture

// SampleCount names the supported MSAA sample counts.
type SampleCount int

const (
	Samples1  SampleCount = 1
	Samples2  SampleCount = 2
	Samples4  SampleCount = 4
	Samples8  SampleCount = 8
	Samples16 SampleCount = 16
)

// IsValidSampleCount reports whether n is one of the supported sample
// counts.
func IsValidSampleCount(n int) bool {
	switch SampleCount(n) {
	case Samples1, Samples2, Samples4, Samples8, Samples16:
		return true
	}
	return false
}

// locations1 through locations16 are the standard Vulkan-style sample
// positions within a unit pixel, used both to place per-sample coverage
// tests and to weight the final box filter during resolve.
var locations1 = [][2]float32{{0.5, 0.5}}

var locations2 = [][2]float32{
	{0.75, 0.75},
	{0.25, 0.25},
}

var locations4 = [][2]float32{
	{0.375, 0.125},
	{0.875, 0.375},
	{0.125, 0.625},
	{0.625, 0.875},
}

var locations8 = [][2]float32{
	{0.5625, 0.3125},
	{0.4375, 0.6875},
	{0.8125, 0.5625},
	{0.3125, 0.1875},
	{0.1875, 0.8125},
	{0.0625, 0.4375},
	{0.6875, 0.9375},
	{0.9375, 0.0625},
}

var locations16 = [][2]float32{
	{0.5625, 0.5625}, {0.4375, 0.3125}, {0.3125, 0.625}, {0.75, 0.4375},
	{0.1875, 0.375}, {0.625, 0.8125}, {0.8125, 0.6875}, {0.6875, 0.1875},
	{0.375, 0.875}, {0.5, 0.0625}, {0.25, 0.125}, {0.125, 0.75},
	{0.0, 0.5}, {0.9375, 0.25}, {0.875, 0.9375}, {0.0625, 0.0},
}

func locationsFor(count SampleCount) [][2]float32 {
	switch count {
	case Samples1:
		return locations1
	case Samples2:
		return locations2
	case Samples4:
		return locations4
	case Samples8:
		return locations8
	case Samples16:
		return locations16
	default:
		return locations1
	}
}

// SampleLocation returns the (x, y) offset, within a unit pixel, of the
// given sample index for the given sample count. The index wraps modulo
// the table length, matching the reference pattern of tiling a short table
// over higher sample counts when necessary.
func SampleLocation(count SampleCount, index int) (x, y float32) {
	locs := locationsFor(count)
	l := locs[index%len(locs)]
	return l[0], l[1]
}
