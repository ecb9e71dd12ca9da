package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CashFlowItem struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Percentage  decimal.Decimal `json:"percentage"`
	Description string          `json:"description"`
}

type CashFlowPeriod struct {
	Start          time.Time       `json:"start"`
	End            time.Time       `json:"end"`
	Inflow         decimal.Decimal `json:"inflow"`
	Outflow        decimal.Decimal `json:"outflow"`
	NetFlow        decimal.Decimal `json:"net_flow"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

type CashFlowReport struct {
	StartDate      time.Time        `json:"start_date"`
	EndDate        time.Time        `json:"end_date"`
	Granularity    string           `json:"granularity"`
	OpeningBalance decimal.Decimal  `json:"opening_balance"`
	TotalInflows   decimal.Decimal  `json:"total_inflows"`
	TotalOutflows  decimal.Decimal  `json:"total_outflows"`
	NetCashFlow    decimal.Decimal  `json:"net_cash_flow"`
	ClosingBalance decimal.Decimal  `json:"closing_balance"`
	Inflows        []CashFlowItem   `json:"inflows"`
	Outflows       []CashFlowItem   `json:"outflows"`
	Periods        []CashFlowPeriod `json:"periods"`
}
