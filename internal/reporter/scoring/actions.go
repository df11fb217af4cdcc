package scoring

import "fmt"

// Actions builds the beginner-facing response checklist for one market.
// Guidance keys off the downside score first; a hot upside score adds a
// chasing warning rather than a buy call.
func Actions(marketName string, upScore, downScore int) []string {
	durLabel, durText := DurationHint(downScore)

	var actions []string
	switch {
	case downScore >= 70:
		actions = append(actions,
			fmt.Sprintf("[%s] Crash-alert response: cut exposure to leveraged and high-volatility names and raise cash.", marketName),
			"If a gap-down opens, have a pre-committed stop price that survives further downside.",
			"No averaging down. Staged entries only after the decline has visibly stabilized.",
			"Consider a partial inverse or hedge position to dampen portfolio swings.",
		)
	case downScore >= 40:
		actions = append(actions,
			fmt.Sprintf("[%s] Caution response: keep new buys conservative and avoid chasing.", marketName),
			"Re-check stop and take-profit lines on holdings and shrink position sizes to manage volatility.",
			"Even on bullish signals, intraday swings can widen, so prefer staged entries.",
		)
	default:
		actions = append(actions,
			fmt.Sprintf("[%s] Stable response: crash risk is low, but keep baseline stops and spare cash in place.", marketName),
			"Even with a high surge score, overheating can reverse quickly, so be careful chasing.",
		)
	}

	switch {
	case upScore >= 70:
		actions = append(actions,
			fmt.Sprintf("[%s] Surge likely: prefer pullback and staged entries; chasing gap-up names carries risk.", marketName),
			"Volatility often expands within a day or two of a surge, so pair staged profit-taking with risk management.",
		)
	case upScore >= 40:
		actions = append(actions,
			fmt.Sprintf("[%s] Upside attempt possible: stage buys after support confirms, and take partial profits into spikes.", marketName),
		)
	}

	actions = append(actions, fmt.Sprintf("[Duration guide] %s expected. %s", durLabel, durText))
	return actions
}
