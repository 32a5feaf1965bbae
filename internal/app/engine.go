package app

import (
	"fmt"

	"hris-payroll/internal/adjustment"
	"hris-payroll/internal/attendance"
	"hris-payroll/internal/calendar"
	"hris-payroll/internal/config"
	"hris-payroll/internal/employee"
	"hris-payroll/internal/payroll"
	"hris-payroll/internal/shared/resilience"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine is the payroll core wired to its stores.
type Engine struct {
	Calculator *payroll.Calculator
	Aggregator *attendance.Aggregator
	Calendars  *calendar.Provider
}

func attendancePolicy(cfg config.Config) (attendance.Policy, error) {
	checkIn, err := attendance.ParseClock(cfg.CheckInCutoff)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("CHECK_IN_CUTOFF: %w", err)
	}
	checkOut, err := attendance.ParseClock(cfg.CheckOutCutoff)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("CHECK_OUT_CUTOFF: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return attendance.Policy{}, err
	}
	penalty, err := cfg.Penalty()
	if err != nil {
		return attendance.Policy{}, err
	}

	return attendance.Policy{
		Cutoffs:           attendance.Cutoffs{CheckIn: checkIn, CheckOut: checkOut},
		Location:          loc,
		PartialDayPenalty: penalty,
	}, nil
}

// NewEngine builds the calculator and its collaborators. Every store read goes
// through its own retry and circuit breaker policy. rdb may be nil.
func NewEngine(cfg config.Config, db *gorm.DB, rdb *redis.Client, logger *zap.Logger) (*Engine, error) {
	policy, err := attendancePolicy(cfg)
	if err != nil {
		return nil, err
	}
	weekend, err := cfg.Weekend()
	if err != nil {
		return nil, err
	}

	guard := func(name string) *resilience.Policy {
		return payroll.NewRetrievalPolicy(name, cfg.RetrievalMaxAttempts, cfg.RetrievalBaseDelay, logger)
	}

	events := payroll.GuardEvents(attendance.NewRepository(db), guard("attendance_events"))
	ledger := payroll.GuardAdjustments(adjustment.NewRepository(db), guard("payroll_adjustments"))
	roster := payroll.GuardRoster(employee.NewRepository(db), guard("employee_roster"))

	aggregator := attendance.NewAggregator(events, policy)
	calendars := calendar.NewProvider(calendar.NewRepository(db), rdb, cfg.CalendarCacheTTL, weekend, policy.Location, logger)

	calculator := payroll.NewCalculator(
		roster,
		calendars,
		aggregator,
		adjustment.NewReader(ledger, policy.Location),
		payroll.PerUnitRate{Rate: cfg.PayRatePerUnit},
		cfg.PayrollWorkers,
		logger,
	)

	return &Engine{Calculator: calculator, Aggregator: aggregator, Calendars: calendars}, nil
}
