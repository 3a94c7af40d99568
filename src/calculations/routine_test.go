package calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/divroutine/backend/src/models"
)

func flow(date string, amount int64) models.CashFlow {
	return models.CashFlow{Date: date, Amount: amount}
}

func TestCalculateRoutineAdherence(t *testing.T) {
	cashFlows := []models.CashFlow{
		flow("2024-03-05", 1_000_000),
		flow("2024-03-20", 500_000),
		flow("2024-03-25", -200_000), // withdrawal, excluded
		flow("2024-02-10", 2_000_000),
	}

	assert.Equal(t, 75.0, CalculateRoutineAdherence(cashFlows, 2024, 3, 2_000_000))
	assert.Equal(t, 100.0, CalculateRoutineAdherence(cashFlows, 2024, 2, 2_000_000))
	assert.Equal(t, 0.0, CalculateRoutineAdherence(cashFlows, 2024, 1, 2_000_000))
}

func TestCalculateRoutineAdherenceZeroPlan(t *testing.T) {
	cashFlows := []models.CashFlow{flow("2024-03-05", 1_000_000)}
	assert.Equal(t, 0.0, CalculateRoutineAdherence(cashFlows, 2024, 3, 0))
}

func TestCalculateInvestmentStreak(t *testing.T) {
	// Mar is at 75% of plan, breaking the streak: only Apr counts.
	cashFlows := []models.CashFlow{
		flow("2024-01-10", 2_000_000),
		flow("2024-02-10", 2_000_000),
		flow("2024-03-10", 1_500_000),
		flow("2024-04-10", 2_000_000),
	}

	assert.Equal(t, 1, CalculateInvestmentStreak(cashFlows, 2_000_000, 80))
}

func TestCalculateInvestmentStreakAllMonthsMeetThreshold(t *testing.T) {
	cashFlows := []models.CashFlow{
		flow("2024-01-10", 2_000_000),
		flow("2024-02-10", 1_800_000),
		flow("2024-03-10", 2_500_000),
	}

	assert.Equal(t, 3, CalculateInvestmentStreak(cashFlows, 2_000_000, 80))
}

func TestCalculateInvestmentStreakGapMonthBreaks(t *testing.T) {
	// February has no deposits at all; the gap counts as 0% adherence.
	cashFlows := []models.CashFlow{
		flow("2024-01-10", 2_000_000),
		flow("2024-03-10", 2_000_000),
		flow("2024-04-10", 2_000_000),
	}

	assert.Equal(t, 2, CalculateInvestmentStreak(cashFlows, 2_000_000, 80))
}

func TestCalculateInvestmentStreakNoDepositsOrNoPlan(t *testing.T) {
	assert.Equal(t, 0, CalculateInvestmentStreak(nil, 2_000_000, 80))
	assert.Equal(t, 0, CalculateInvestmentStreak([]models.CashFlow{flow("2024-01-10", 100)}, 0, 80))
}

func TestCalculateYearlyDeposits(t *testing.T) {
	cashFlows := []models.CashFlow{
		flow("2024-01-10", 1_000_000),
		flow("2024-06-10", 1_000_000),
		flow("2024-06-15", -300_000),
		flow("2023-12-31", 5_000_000),
	}

	assert.Equal(t, int64(2_000_000), CalculateYearlyDeposits(cashFlows, 2024))
	assert.Equal(t, int64(5_000_000), CalculateYearlyDeposits(cashFlows, 2023))
	assert.Equal(t, int64(0), CalculateYearlyDeposits(cashFlows, 2022))
}

func TestGroupCashFlowsByMonth(t *testing.T) {
	cashFlows := []models.CashFlow{
		flow("2024-03-05", 1_000_000),
		flow("2024-03-20", -400_000),
		flow("2024-01-05", 500_000),
	}

	points := GroupCashFlowsByMonth(cashFlows)
	require.Len(t, points, 2)

	assert.Equal(t, "2024-01", points[0].Month)
	assert.Equal(t, int64(500_000), points[0].Deposits)
	assert.Equal(t, int64(0), points[0].Withdrawals)

	assert.Equal(t, "2024-03", points[1].Month)
	assert.Equal(t, int64(1_000_000), points[1].Deposits)
	assert.Equal(t, int64(400_000), points[1].Withdrawals)
}
