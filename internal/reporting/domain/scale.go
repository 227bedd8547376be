package reporting

// ChartScale returns the shared maximum used to scale every bar in
// both the category and asset breakdowns, so a given number of hours
// renders the same width in either chart. Floor of 1 keeps the
// division defined when all totals are zero.
func ChartScale(categories []CategoryTotal, assets []AssetTotal) float64 {
	max := 1.0
	for _, total := range categories {
		if total.Hours > max {
			max = total.Hours
		}
	}
	for _, total := range assets {
		if total.Hours > max {
			max = total.Hours
		}
	}
	return max
}
