package model

// LowStockThreshold is the stock level below which a medicine counts as low
const LowStockThreshold = 100

// OrderStatusPending is forced onto every newly created order
const OrderStatusPending = "pending"

// OrderStatusCompleted marks a fulfilled order
const OrderStatusCompleted = "completed"

// Stats holds the dashboard counters, recomputed by full scan on each request
type Stats struct {
	TotalUsers        int     `json:"totalUsers"`
	TotalMedicines    int     `json:"totalMedicines"`
	TotalOrders       int     `json:"totalOrders"`
	PendingOrders     int     `json:"pendingOrders"`
	CompletedOrders   int     `json:"completedOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	LowStockMedicines int     `json:"lowStockMedicines"`
}

// ComputeStats derives the dashboard counters from the current collections
func ComputeStats(users, medicines, orders []Record) Stats {
	stats := Stats{
		TotalUsers:     len(users),
		TotalMedicines: len(medicines),
		TotalOrders:    len(orders),
	}

	for _, o := range orders {
		switch o.String("status") {
		case OrderStatusPending:
			stats.PendingOrders++
		case OrderStatusCompleted:
			stats.CompletedOrders++
		}
		stats.TotalRevenue += o.Float("total")
	}

	for _, m := range medicines {
		if stock, ok := m.Int("stock"); ok && stock < LowStockThreshold {
			stats.LowStockMedicines++
		}
	}

	return stats
}
