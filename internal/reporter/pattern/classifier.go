package pattern

import (
	"go-market-reporter/internal/entity"
)

// Label classifies the latest candle of a new-high day. Labels are
// mutually exclusive; evaluation order is the priority order.
type Label string

const (
	// NotApplicable is the sentinel for days that are not a 52-week high
	// or windows too short to classify.
	NotApplicable Label = ""

	StrongBreakout           Label = "strong_breakout"
	MildBreakout             Label = "mild_breakout"
	FalseBreakoutUpperShadow Label = "false_breakout_upper_shadow"
	BreakoutFailureCrash     Label = "breakout_failure_crash"
	Neutral                  Label = "neutral"
)

const (
	minWindow      = 5
	volWindow      = 20
	rangeFloor     = 1e-6
	strongMove     = 0.03
	strongVolRatio = 1.5
	shadowLimit    = 0.6
)

// Classify buckets today's candle into one of the five breakout
// categories. Windows shorter than five bars and non-high days are not
// classified. First match wins:
//
//  1. strong breakout: close up >= 3% on >= 1.5x average volume
//  2. mild breakout: any close-up day on at least average volume
//  3. false breakout: flat-or-down close with a dominant upper shadow
//  4. breakout failure: close down >= 3%
//  5. neutral otherwise
func Classify(window []entity.Candle, is52wHigh bool) Label {
	if !is52wHigh || len(window) < minWindow {
		return NotApplicable
	}

	today := window[len(window)-1]
	prev := window[len(window)-2]
	if prev.Close == 0 {
		return NotApplicable
	}

	change := today.Close/prev.Close - 1.0

	totalRange := today.High - today.Low
	if totalRange < rangeFloor {
		totalRange = rangeFloor
	}
	body := today.Close
	if today.Open > today.Close {
		body = today.Open
	}
	upperShadowRatio := (today.High - body) / totalRange

	volMA := trailingVolumeAvg(window)

	switch {
	case change >= strongMove && today.Volume >= strongVolRatio*volMA:
		return StrongBreakout
	case change > 0 && today.Volume >= volMA:
		return MildBreakout
	case change <= 0 && upperShadowRatio > shadowLimit:
		return FalseBreakoutUpperShadow
	case change <= -strongMove:
		return BreakoutFailureCrash
	default:
		return Neutral
	}
}

// trailingVolumeAvg averages the last 20 volumes, or all bars when fewer
// than 20 are available.
func trailingVolumeAvg(window []entity.Candle) float64 {
	n := len(window)
	span := volWindow
	if n < span {
		span = n
	}
	sum := 0.0
	for i := n - span; i < n; i++ {
		sum += window[i].Volume
	}
	return sum / float64(span)
}
