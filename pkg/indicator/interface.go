package indicator

import "github.com/Ritenoob/miniature-enigma/pkg/types"

type KLineClosedBinder interface {
	BindK(target KLineClosedEmitter, symbol string, interval types.Interval)
}

//go:generate mockgen -destination=mocks/mock_kline_closed_emitter.go -package=mocks . KLineClosedEmitter

// KLineClosedEmitter is currently applied to the market data feed
// the feed emits the KLine closed event to the listeners.
type KLineClosedEmitter interface {
	OnKLineClosed(cb func(k types.KLine))
}

// KLinePusher provides an interface for API user to push kline value to the indicator.
// The indicator implements its own way to calculate the value from the given kline object.
type KLinePusher interface {
	PushK(k types.KLine)
}
