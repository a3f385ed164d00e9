// Package disguise re-skins wrapped reading text as synthetic source
// code or synthetic server logs. Output is a pure function of the
// input text and page index: a seeded 31-bit linear-congruential
// sequence drives every choice, so the same page always renders the
// same bytes.
package disguise

const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	lcgMask       = 0x7FFFFFFF

	codeSeedStep = 7919
	codeSeedBase = 31337
	logSeedStep  = 6271
	logSeedBase  = 42069
)

// lcg is a deterministic sequence generator carrying only its integer
// state. Each Next advances the state and yields a value in [0, 1).
type lcg struct {
	state uint64
}

func newLCG(seed int) *lcg {
	return &lcg{state: uint64(seed) & lcgMask}
}

func (g *lcg) Next() float64 {
	g.state = (g.state*lcgMultiplier + lcgIncrement) & lcgMask
	return float64(g.state) / float64(lcgMask)
}

// pick selects an element using the next draw.
func pick(arr []string, g *lcg) string {
	return arr[int(g.Next()*float64(len(arr)))%len(arr)]
}
