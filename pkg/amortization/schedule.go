package amortization

import (
	"github.com/iwvelando/fincalc/pkg/mathutil"
	"go.uber.org/zap"
)

// Installment holds the values for a given monthly payment.
type Installment struct {
	Month               int     `json:"month"`
	Payment             float64 `json:"payment"`
	Principal           float64 `json:"principal"`
	Interest            float64 `json:"interest"`
	RemainingPrincipal  float64 `json:"remainingPrincipal"`
	CumulativeInterest  float64 `json:"cumulativeInterest"`
	CumulativePrincipal float64 `json:"cumulativePrincipal"`
}

// ScheduleGenerator produces month-by-month amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate creates the complete amortization schedule for a loan. The last
// installment repays whatever principal remains so the schedule always ends
// at a zero balance.
func (g *ScheduleGenerator) Generate(principal, annualRatePercent float64, months int) ([]Installment, error) {
	rate := MonthlyRate(annualRatePercent)
	payment, err := Payment(principal, rate, months)
	if err != nil {
		return nil, err
	}

	schedule := make([]Installment, 0, months)
	remaining := principal
	cumInterest := 0.0
	cumPrincipal := 0.0

	for month := 1; month <= months; month++ {
		interest := remaining * rate
		principalPart := payment - interest
		current := payment

		if month == months {
			// Absorb floating-point drift into the final installment.
			if drift := remaining - principalPart; !mathutil.IsZero(drift) {
				g.logger.Warn("final installment drift above one paisa",
					zap.String("op", "amortization.Generate"),
					zap.Float64("drift", drift),
				)
			}
			principalPart = remaining
			current = principalPart + interest
		}

		remaining -= principalPart
		if month == months {
			remaining = 0
		}
		cumInterest += interest
		cumPrincipal += principalPart

		schedule = append(schedule, Installment{
			Month:               month,
			Payment:             current,
			Principal:           principalPart,
			Interest:            interest,
			RemainingPrincipal:  remaining,
			CumulativeInterest:  cumInterest,
			CumulativePrincipal: cumPrincipal,
		})
	}

	g.logger.Debug("generated amortization schedule",
		zap.String("op", "amortization.Generate"),
		zap.Float64("principal", principal),
		zap.Float64("annual_rate", annualRatePercent),
		zap.Int("months", months),
		zap.Float64("payment", payment),
		zap.Float64("total_interest", cumInterest),
	)

	return schedule, nil
}

// Schedule generates an amortization schedule without logging.
func Schedule(principal, annualRatePercent float64, months int) ([]Installment, error) {
	return NewScheduleGenerator(nil).Generate(principal, annualRatePercent, months)
}
