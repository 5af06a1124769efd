package component

// CandleState is the burn state of the carried candle.
//
// NOTE: intentionally a string type so it serializes cleanly in save files.
type CandleState string

const (
	CandleLit    CandleState = "lit"
	CandleUnlit  CandleState = "unlit"
	CandleBurned CandleState = "burned"
)

// Candle is the player's carried light source. The lighting shader reads it;
// this subsystem only persists and restores it.
type Candle struct {
	Wax    float64
	MaxWax float64
	State  CandleState
}

var CandleComponent = NewComponent[Candle]()
