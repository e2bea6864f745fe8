package handler_test

import (
	"bytes"
	"strings"
	"testing"

	"go-minimart/internal/handler"
	"go-minimart/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHandler_Products(t *testing.T) {
	a := newApp(t)
	a.addProduct(t, "Milk", "2.50", "3.99", 20, 50)
	a.addProduct(t, "Bread", "1.20", "2.49", 15, 0)

	var buf bytes.Buffer
	require.NoError(t, handler.NewExportHandler(a.inventory).Export("products", &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name,purchase_price,selling_price,stock_quantity,low_stock_threshold,low_stock", lines[0])
	assert.Equal(t, "2,Bread,1.20,2.49,0,15,true", lines[1])
	assert.Equal(t, "1,Milk,2.50,3.99,50,20,false", lines[2])
}

func TestExportHandler_Transactions(t *testing.T) {
	a := newApp(t)
	id := a.addProduct(t, "Chicken Breast", "5.00", "8.99", 10, 25)
	_, err := a.inventory.RecordSale(service.StockRequest{ProductID: id, Quantity: 10})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, handler.NewExportHandler(a.inventory).Export("transactions", &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,type,product_id,product_name,quantity,unit_price,total_amount", lines[0])
	assert.Equal(t, "1,PURCHASE,1,Chicken Breast,25,5.00,125.00", lines[1])
	assert.Equal(t, "2,SALE,1,Chicken Breast,10,8.99,89.90", lines[2])
}

func TestExportHandler_UnknownKind(t *testing.T) {
	err := handler.NewExportHandler(newApp(t).inventory).Export("users", &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown export")
}
