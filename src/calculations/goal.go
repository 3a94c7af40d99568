package calculations

import "math"

// CalculateGoalProgress returns current as a percentage of goal.
// A zero goal yields zero, never NaN or Inf.
func CalculateGoalProgress(current, goal float64) float64 {
	if goal == 0 {
		return 0
	}
	return current / goal * 100
}

// CalculateRemainingToGoal returns how much is still missing, floored at zero.
func CalculateRemainingToGoal(current, goal float64) float64 {
	remaining := goal - current
	if remaining > 0 {
		return remaining
	}
	return 0
}

// EstimateMonthsToGoal estimates how many months of monthlyGrowth it takes to
// close the gap. Zero if the goal is already met; +Inf is the deliberate
// sentinel for zero or negative growth.
func EstimateMonthsToGoal(current, goal, monthlyGrowth float64) float64 {
	if current >= goal {
		return 0
	}
	if monthlyGrowth <= 0 {
		return math.Inf(1)
	}
	return math.Ceil((goal - current) / monthlyGrowth)
}
