package analytics_test

import (
	"context"
	"github.com/denismitr/scmboard"
	"github.com/denismitr/scmboard/internal/analytics"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func summarize(t *testing.T, seed scmboard.Seed) *analytics.Summary {
	t.Helper()

	s, closer, err := scmboard.New(seed, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer() })

	var sum *analytics.Summary
	err = s.View(context.Background(), func(tx *scmboard.Tx) error {
		var err error
		sum, err = analytics.Summarize(tx)
		return err
	})
	require.NoError(t, err)
	require.NotNil(t, sum)

	return sum
}

func TestSummarize_DefaultSeed(t *testing.T) {
	sum := summarize(t, scmboard.DefaultSeed())

	assert.Equal(t, 83500.0, sum.TotalRevenue)
	assert.Equal(t, 47000.0, sum.TotalProfit)
	assert.Equal(t, 29200.0, sum.TotalExpenses)

	assert.Equal(t, 4, sum.TotalOrders)
	assert.Equal(t, 2, sum.DeliveredOrders)
	assert.Equal(t, map[string]int{"Delivered": 2, "Pending": 1, "Shipped": 1}, sum.OrdersByStatus)

	assert.Equal(t, 5, sum.Inventory.Items)
	assert.Equal(t, 610.0, sum.Inventory.TotalQuantity)
	assert.Equal(t, 9025000.0, sum.Inventory.TotalValue)
	assert.Equal(t, 0, sum.Inventory.LowStock)

	assert.Equal(t, 6, sum.Warehouses.Count)
	assert.InDelta(t, 63.4615, sum.Warehouses.OverallUtilization, 0.001)
	assert.InDelta(t, 69.3983, sum.Warehouses.AverageUtilization, 0.001)
	require.Len(t, sum.Warehouses.Utilization, 6)
	assert.Equal(t, "Noida", sum.Warehouses.Utilization[5].Location)
	assert.Equal(t, 100.0, sum.Warehouses.Utilization[5].Percent)

	assert.Equal(t, 6, sum.Suppliers.Count)
	assert.Equal(t, 1520.0, sum.Suppliers.TotalDeliveries)
	assert.InDelta(t, 4.5333, sum.Suppliers.AverageRating, 0.001)
	require.NotNil(t, sum.Suppliers.Top)
	assert.Equal(t, "MandalElectronics", sum.Suppliers.Top.Name)
	assert.Equal(t, "Kolkata", sum.Suppliers.Top.Region)

	require.Len(t, sum.Expenses, 5)
	assert.Equal(t, analytics.ExpenseRow{
		Month: "Jan", Logistics: 1500, Maintenance: 700, Salaries: 3000, Total: 5200,
	}, sum.Expenses[0])
}

func TestSummarize_EdgeCases(t *testing.T) {
	t.Run("empty datasets divide to zero", func(t *testing.T) {
		sum := summarize(t, scmboard.Seed{})

		assert.Zero(t, sum.TotalRevenue)
		assert.Zero(t, sum.Warehouses.AverageUtilization)
		assert.Zero(t, sum.Warehouses.OverallUtilization)
		assert.Zero(t, sum.Suppliers.AverageRating)
		assert.Nil(t, sum.Suppliers.Top)
		assert.NotNil(t, sum.Expenses)
		assert.Empty(t, sum.OrdersByStatus)
	})

	t.Run("numeric strings and missing fields", func(t *testing.T) {
		sum := summarize(t, scmboard.Seed{
			scmboard.Inventory: {
				{"item": "Cables", "quantity": "10", "reorderLevel": "25", "unitPrice": "2.5"},
				{"item": "Ghost"},
			},
			scmboard.Warehouses: {
				{"location": "Empty", "capacity": 0, "used": 10},
			},
		})

		assert.Equal(t, 10.0, sum.Inventory.TotalQuantity)
		assert.Equal(t, 25.0, sum.Inventory.TotalValue)
		assert.Equal(t, 2, sum.Inventory.LowStock)
		assert.Zero(t, sum.Warehouses.Utilization[0].Percent)
	})

	t.Run("first supplier wins a tie", func(t *testing.T) {
		sum := summarize(t, scmboard.Seed{
			scmboard.Suppliers: {
				{"name": "A", "rating": 4.9},
				{"name": "B", "rating": 4.9},
			},
		})

		require.NotNil(t, sum.Suppliers.Top)
		assert.Equal(t, "A", sum.Suppliers.Top.Name)
	})
}

type failingReader struct{}

func (failingReader) Get(name string) ([]scmboard.Record, error) {
	return nil, errors.Wrapf(scmboard.ErrDatasetNotFound, "%s", name)
}

func TestSummarize_ReaderError(t *testing.T) {
	_, err := analytics.Summarize(failingReader{})
	assert.ErrorIs(t, err, scmboard.ErrDatasetNotFound)
}
