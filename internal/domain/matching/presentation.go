package matching

const (
	ColorExcellent = "green"
	ColorGood      = "blue"
	ColorFair      = "yellow"
	ColorPotential = "gray"

	LabelExcellent = "Excellent Match"
	LabelGood      = "Good Match"
	LabelFair      = "Fair Match"
	LabelPotential = "Potential Match"
)

type band struct {
	min   int
	color string
	label string
}

var bands = []band{
	{min: 80, color: ColorExcellent, label: LabelExcellent},
	{min: 60, color: ColorGood, label: LabelGood},
	{min: 40, color: ColorFair, label: LabelFair},
}

// MatchScoreColor returns the style token list and card views use for a score.
func MatchScoreColor(score int) string {
	for _, b := range bands {
		if score >= b.min {
			return b.color
		}
	}
	return ColorPotential
}

func MatchScoreLabel(score int) string {
	for _, b := range bands {
		if score >= b.min {
			return b.label
		}
	}
	return LabelPotential
}
