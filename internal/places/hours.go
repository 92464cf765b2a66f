// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package places

// OpeningPeriod is a flattened opening period. Close is empty if the provider sent no
// closing time, e.g. for places open around the clock.
type OpeningPeriod struct {
	Open  string `json:"open"`
	Close string `json:"close"`
	Day   int    `json:"day"`
}

type OpeningHoursSummary struct {
	Periods []OpeningPeriod `json:"periods"`
}

// FormatOpeningHours flattens the opening periods of hours. A nil hours yields nil.
func FormatOpeningHours(hours *OpeningHours) *OpeningHoursSummary {
	if hours == nil {
		return nil
	}
	periods := make([]OpeningPeriod, 0, len(hours.Periods))
	for _, period := range hours.Periods {
		p := OpeningPeriod{
			Open: period.Open.Time,
			Day:  period.Open.Day,
		}
		if period.Close != nil {
			p.Close = period.Close.Time
		}
		periods = append(periods, p)
	}
	return &OpeningHoursSummary{Periods: periods}
}
