// Package analytics computes the dashboard key figures from the datasets.
package analytics

import (
	"github.com/denismitr/scmboard"
	"github.com/pkg/errors"
)

const delivered = "Delivered"

// Reader is satisfied by *scmboard.Tx, so a summary can be taken under one View.
type Reader interface {
	Get(name string) ([]scmboard.Record, error)
}

type Summary struct {
	TotalRevenue    float64        `json:"totalRevenue"`
	TotalProfit     float64        `json:"totalProfit"`
	TotalExpenses   float64        `json:"totalExpenses"`
	TotalOrders     int            `json:"totalOrders"`
	DeliveredOrders int            `json:"deliveredOrders"`
	OrdersByStatus  map[string]int `json:"ordersByStatus"`
	Inventory       InventoryStats `json:"inventory"`
	Warehouses      WarehouseStats `json:"warehouses"`
	Suppliers       SupplierStats  `json:"suppliers"`
	Expenses        []ExpenseRow   `json:"expenses"`
}

type InventoryStats struct {
	Items         int     `json:"items"`
	TotalQuantity float64 `json:"totalQuantity"`
	TotalValue    float64 `json:"totalValue"`
	LowStock      int     `json:"lowStock"`
}

type WarehouseStats struct {
	Count              int                    `json:"count"`
	AverageUtilization float64                `json:"averageUtilization"`
	OverallUtilization float64                `json:"overallUtilization"`
	Utilization        []WarehouseUtilization `json:"utilization"`
}

type WarehouseUtilization struct {
	Location string  `json:"location"`
	Capacity float64 `json:"capacity"`
	Used     float64 `json:"used"`
	Percent  float64 `json:"percent"`
}

type SupplierStats struct {
	Count           int          `json:"count"`
	TotalDeliveries float64      `json:"totalDeliveries"`
	AverageRating   float64      `json:"averageRating"`
	Top             *TopSupplier `json:"top"`
}

type TopSupplier struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Region string  `json:"region"`
}

type ExpenseRow struct {
	Month       string  `json:"month"`
	Logistics   float64 `json:"logistics"`
	Maintenance float64 `json:"maintenance"`
	Salaries    float64 `json:"salaries"`
	Total       float64 `json:"total"`
}

// Summarize reads every dataset it needs from r. Missing or non numeric
// fields count as zero.
func Summarize(r Reader) (*Summary, error) {
	sum := Summary{OrdersByStatus: make(map[string]int)}

	steps := []struct {
		name string
		fn   func([]scmboard.Record)
	}{
		{scmboard.Revenue, sum.addRevenue},
		{scmboard.Expenses, sum.addExpenses},
		{scmboard.Orders, sum.addOrders},
		{scmboard.Inventory, sum.addInventory},
		{scmboard.Warehouses, sum.addWarehouses},
		{scmboard.Suppliers, sum.addSuppliers},
	}

	for _, step := range steps {
		records, err := r.Get(step.name)
		if err != nil {
			return nil, errors.Wrapf(err, "could not summarize %s", step.name)
		}
		step.fn(records)
	}

	return &sum, nil
}

func (s *Summary) addRevenue(records []scmboard.Record) {
	for _, r := range records {
		s.TotalRevenue += r.FloatOrDefault("sales", 0)
		s.TotalProfit += r.FloatOrDefault("profit", 0)
	}
}

func (s *Summary) addExpenses(records []scmboard.Record) {
	s.Expenses = make([]ExpenseRow, 0, len(records))
	for _, r := range records {
		row := ExpenseRow{
			Month:       r.StringOrDefault("month", ""),
			Logistics:   r.FloatOrDefault("logistics", 0),
			Maintenance: r.FloatOrDefault("maintenance", 0),
			Salaries:    r.FloatOrDefault("salaries", 0),
		}
		row.Total = row.Logistics + row.Maintenance + row.Salaries

		s.TotalExpenses += row.Total
		s.Expenses = append(s.Expenses, row)
	}
}

func (s *Summary) addOrders(records []scmboard.Record) {
	s.TotalOrders = len(records)
	for _, r := range records {
		status := r.StringOrDefault("status", "")
		if status == delivered {
			s.DeliveredOrders++
		}
		if status != "" {
			s.OrdersByStatus[status]++
		}
	}
}

func (s *Summary) addInventory(records []scmboard.Record) {
	s.Inventory.Items = len(records)
	for _, r := range records {
		qty := r.FloatOrDefault("quantity", 0)
		s.Inventory.TotalQuantity += qty
		s.Inventory.TotalValue += qty * r.FloatOrDefault("unitPrice", 0)
		if qty <= r.FloatOrDefault("reorderLevel", 0) {
			s.Inventory.LowStock++
		}
	}
}

func (s *Summary) addWarehouses(records []scmboard.Record) {
	w := &s.Warehouses
	w.Count = len(records)
	w.Utilization = make([]WarehouseUtilization, 0, len(records))

	var capacity, used, percents float64
	for _, r := range records {
		u := WarehouseUtilization{
			Location: r.StringOrDefault("location", ""),
			Capacity: r.FloatOrDefault("capacity", 0),
			Used:     r.FloatOrDefault("used", 0),
		}
		u.Percent = percent(u.Used, u.Capacity)

		capacity += u.Capacity
		used += u.Used
		percents += u.Percent
		w.Utilization = append(w.Utilization, u)
	}

	w.OverallUtilization = percent(used, capacity)
	if w.Count > 0 {
		w.AverageUtilization = percents / float64(w.Count)
	}
}

func (s *Summary) addSuppliers(records []scmboard.Record) {
	sp := &s.Suppliers
	sp.Count = len(records)

	var ratings float64
	for _, r := range records {
		rating := r.FloatOrDefault("rating", 0)
		ratings += rating
		sp.TotalDeliveries += r.FloatOrDefault("deliveries", 0)

		// strictly greater keeps the first supplier on ties
		if sp.Top == nil || rating > sp.Top.Rating {
			sp.Top = &TopSupplier{
				Name:   r.StringOrDefault("name", ""),
				Rating: rating,
				Region: r.StringOrDefault("region", ""),
			}
		}
	}

	if sp.Count > 0 {
		sp.AverageRating = ratings / float64(sp.Count)
	}
}

func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}
