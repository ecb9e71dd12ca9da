package export

import (
	"github.com/nurpe/fleet-reports/internal/model"
)

func LoadsTable(r *model.LoadReport) model.Table {
	table := model.Table{Name: "load-report", Title: "Load Report"}
	s := r.Summary
	table.AddField("Total Loads", s.TotalLoads)
	table.AddField("Completed Loads", s.CompletedLoads)
	table.AddField("In Progress Loads", s.InProgressLoads)
	table.AddField("Dispatched Loads", s.DispatchedLoads)
	table.AddField("Total Revenue", s.TotalRevenue)
	table.AddField("Total Driver Payouts", s.TotalDriverPayouts)
	table.AddField("Total Distance (km)", s.TotalDistance)
	table.AddField("Average Delivery Cost", s.AverageDeliveryCost)
	table.AddField("Average Delivery Time (h)", s.AverageDeliveryTime)
	table.AddField("On-Time Delivery %", s.OnTimeDeliveryPercentage)

	byStatus := table.AddSection("Loads By Status", "Status", "Count", "Revenue", "Percentage")
	for _, g := range s.LoadsByStatus {
		byStatus.AddRow(g.Status, g.Count, g.Revenue, g.Percentage)
	}
	byType := table.AddSection("Loads By Type", "Type", "Count", "Revenue", "Percentage")
	for _, g := range s.LoadsByType {
		byType.AddRow(g.Type, g.Count, g.Revenue, g.Percentage)
	}

	loads := table.AddSection("Load Details",
		"Load #", "Name", "Status", "Type", "Origin", "Destination", "Distance (km)",
		"Cost", "Driver Share", "Company Revenue", "Driver", "Truck", "Customer",
		"Dispatched Date", "Delivery Date", "Payment Status")
	for _, l := range r.Loads.Items {
		loads.AddRow(l.Number, l.Name, l.Status, l.Type, l.OriginAddress, l.DestinationAddress, l.Distance,
			l.DeliveryCost, l.DriverShare, l.CompanyRevenue, orDefault(l.AssignedDriverName, "Unassigned"),
			l.AssignedTruckNumber, l.CustomerName, l.DispatchedDate, l.DeliveryDate, paymentStatus(l.IsPaid))
	}
	return table
}

func DriversTable(r *model.DriverReport) model.Table {
	table := model.Table{Name: "driver-report", Title: "Driver Report"}
	s := r.Summary
	table.AddField("Total Drivers", s.TotalDrivers)
	table.AddField("Active Drivers", s.ActiveDrivers)
	table.AddField("Inactive Drivers", s.InactiveDrivers)
	table.AddField("Total Earnings", s.TotalEarnings)
	table.AddField("Average Earnings per Driver", s.AverageEarningsPerDriver)
	table.AddField("Total Loads Completed", s.TotalLoadsCompleted)
	table.AddField("Overall On-Time %", s.OverallOnTimeDeliveryPercent)

	drivers := table.AddSection("Driver Details",
		"Driver Name", "Email", "Phone", "Truck Number", "Truck Type", "Total Loads", "Completed Loads",
		"Total Earnings", "Average Earnings/Load", "Distance Driven", "On-Time Delivery %", "Joined Date")
	for _, d := range r.Drivers.Items {
		drivers.AddRow(d.FullName, d.Email, d.PhoneNumber, orDefault(d.CurrentTruckNumber, "N/A"), d.CurrentTruckType,
			d.TotalLoadsAssigned, d.TotalLoadsCompleted, d.TotalEarnings, d.AverageEarningsPerLoad,
			d.TotalDistanceDriven, d.OnTimeDeliveryPercentage, d.JoinedDate)
	}

	top := table.AddSection("Top Performers", "Driver", "Total Earnings", "Loads Completed", "Distance", "On-Time %")
	for _, d := range s.TopPerformers {
		top.AddRow(d.Name, d.TotalEarnings, d.LoadsCompleted, d.TotalDistance, d.OnTimePercentage)
	}
	efficiency := table.AddSection("Driver Efficiency", "Category", "Drivers", "Average Earnings", "Average On-Time %")
	for _, e := range s.DriverEfficiency {
		efficiency.AddRow(e.Category, e.DriverCount, e.AverageEarnings, e.AverageOnTimePercentage)
	}
	return table
}

func FinancialTable(r *model.FinancialReport) model.Table {
	table := model.Table{Name: "financial-report", Title: "Financial Report"}
	table.AddField("Period Start", r.StartDate)
	table.AddField("Period End", r.EndDate)
	table.AddField("Total Revenue", r.TotalRevenue)
	table.AddField("Total Expenses", r.TotalExpenses)
	table.AddField("Gross Profit", r.GrossProfit)
	table.AddField("Net Profit", r.NetProfit)
	table.AddField("Profit Margin %", r.ProfitMargin)
	table.AddField("Total Loads Delivered", r.Revenue.TotalLoadsDelivered)
	table.AddField("Average Revenue per Load", r.Revenue.AverageRevenuePerLoad)
	table.AddField("Collection %", r.PaymentStatus.CollectionPercentage)
	if c := r.Comparison; c != nil {
		table.AddField("Previous Period Revenue", c.PreviousPeriodRevenue)
		table.AddField("Revenue Growth %", c.RevenueGrowthPercentage)
		table.AddField("Previous Period Profit", c.PreviousPeriodProfit)
		table.AddField("Profit Growth %", c.ProfitGrowthPercentage)
	}

	revenue := table.AddSection("Revenue By Load Type", "Load Type", "Revenue", "Loads", "Percentage")
	for _, v := range r.Revenue.RevenueByLoadType {
		revenue.AddRow(v.LoadType, v.Revenue, v.LoadCount, v.Percentage)
	}
	expenses := table.AddSection("Expenses", "Category", "Amount", "Percentage", "Description")
	for _, e := range r.Expenses.ExpensesByCategory {
		expenses.AddRow(e.Category, e.Amount, e.Percentage, e.Description)
	}
	if len(r.InvoiceSummary.InvoiceAging) > 0 {
		aging := table.AddSection("Invoice Aging", "Age", "Count", "Amount", "Percentage")
		for _, a := range r.InvoiceSummary.InvoiceAging {
			aging.AddRow(a.AgeRange, a.Count, a.Amount, a.Percentage)
		}
	}
	if len(r.TopDrivers) > 0 {
		drivers := table.AddSection("Top Drivers", "Driver", "Total Earnings", "Loads Completed", "Distance", "Average per Load")
		for _, d := range r.TopDrivers {
			drivers.AddRow(d.DriverName, d.TotalEarnings, d.LoadsCompleted, d.TotalDistance, d.AveragePerLoad)
		}
	}
	if len(r.TopCustomers) > 0 {
		customers := table.AddSection("Top Customers", "Customer", "Total Revenue", "Loads", "Average Load Value", "Outstanding Balance")
		for _, c := range r.TopCustomers {
			customers.AddRow(c.CustomerName, c.TotalRevenue, c.TotalLoads, c.AverageLoadValue, c.OutstandingBalance)
		}
	}
	return table
}

func DashboardTable(r *model.DashboardReport) model.Table {
	table := model.Table{Name: "dashboard-report", Title: "Dashboard Report"}
	table.AddField("Period Start", r.StartDate)
	table.AddField("Period End", r.EndDate)

	loads := table.AddSection("Load Summary", "Metric", "Value")
	loads.AddRow("Total Loads", r.Loads.TotalLoads)
	loads.AddRow("Completed Loads", r.Loads.CompletedLoads)
	loads.AddRow("Total Revenue", r.Loads.TotalRevenue)
	loads.AddRow("On-Time Delivery %", r.Loads.OnTimeDeliveryPercentage)

	drivers := table.AddSection("Driver Summary", "Metric", "Value")
	drivers.AddRow("Total Drivers", r.Drivers.TotalDrivers)
	drivers.AddRow("Active Drivers", r.Drivers.ActiveDrivers)
	drivers.AddRow("Total Driver Earnings", r.Drivers.TotalEarnings)

	financials := table.AddSection("Financial Summary", "Metric", "Value")
	financials.AddRow("Total Revenue", r.Financials.TotalRevenue)
	financials.AddRow("Total Expenses", r.Financials.TotalExpenses)
	financials.AddRow("Net Profit", r.Financials.NetProfit)
	financials.AddRow("Outstanding Balance", r.Financials.OutstandingBalance)
	financials.AddRow("Collection Rate %", r.Financials.CollectionRate)

	trends := table.AddSection("Monthly Trends", "Month", "Revenue", "Expenses", "Profit", "Loads Completed")
	for _, t := range r.Financials.MonthlyTrends {
		trends.AddRow(t.Month, t.Revenue, t.Expenses, t.Profit, t.LoadsCompleted)
	}
	return table
}

func InvoicesTable(r *model.InvoiceReport) model.Table {
	table := model.Table{Name: "invoice-report", Title: "Invoice Report"}
	table.AddField("Total Invoices", r.Invoices.TotalCount)
	table.AddField("Total Invoiced", r.TotalInvoiced)
	table.AddField("Total Paid", r.TotalPaid)
	table.AddField("Total Due", r.TotalDue)

	invoices := table.AddSection("Invoices",
		"Invoice #", "Customer", "Status", "Total", "Paid", "Due", "Currency", "Due Date", "Created")
	for _, i := range r.Invoices.Items {
		invoices.AddRow(i.InvoiceNumber, orDefault(i.CustomerName, "N/A"), i.Status, i.Total, i.Paid, i.Due,
			i.Currency, i.DueDate, i.CreatedAt)
	}
	return table
}

func CashFlowTable(r *model.CashFlowReport) model.Table {
	table := model.Table{Name: "cash-flow-report", Title: "Cash Flow Report"}
	table.AddField("Period Start", r.StartDate)
	table.AddField("Period End", r.EndDate)
	table.AddField("Granularity", r.Granularity)
	table.AddField("Opening Balance", r.OpeningBalance)
	table.AddField("Total Inflows", r.TotalInflows)
	table.AddField("Total Outflows", r.TotalOutflows)
	table.AddField("Net Cash Flow", r.NetCashFlow)
	table.AddField("Closing Balance", r.ClosingBalance)

	items := table.AddSection("Categories", "Direction", "Category", "Amount", "Percentage", "Description")
	for _, i := range r.Inflows {
		items.AddRow("Inflow", i.Category, i.Amount, i.Percentage, i.Description)
	}
	for _, o := range r.Outflows {
		items.AddRow("Outflow", o.Category, o.Amount, o.Percentage, o.Description)
	}

	periods := table.AddSection("Periods", "Start", "End", "Inflow", "Outflow", "Net Flow", "Running Balance")
	for _, p := range r.Periods {
		periods.AddRow(p.Start, p.End, p.Inflow, p.Outflow, p.NetFlow, p.RunningBalance)
	}
	return table
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func paymentStatus(paid bool) string {
	if paid {
		return "Paid"
	}
	return "Pending"
}
