package database

import (
	"encoding/binary"
	"hash/crc32"
	"testing"

	"go-minimart/internal/apperrors"
	"go-minimart/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() ProductSnapshot {
	return ProductSnapshot{
		Products: []model.Product{
			{ID: 3, Name: "Milk", PurchasePrice: decimal.NewFromFloat(2.50), SellingPrice: decimal.NewFromFloat(3.99), StockQuantity: 35, LowStockThreshold: 20},
			{ID: 1, Name: "Crème fraîche", PurchasePrice: decimal.NewFromFloat(1.20), SellingPrice: decimal.NewFromFloat(2.49), StockQuantity: 0, LowStockThreshold: 15},
			{ID: 7, Name: "", PurchasePrice: decimal.Zero, SellingPrice: decimal.NewFromFloat(0.01), StockQuantity: 1, LowStockThreshold: 0},
		},
		NextID: 9,
	}
}

func sampleTransactions() TransactionSnapshot {
	return TransactionSnapshot{
		Transactions: []model.Transaction{
			model.NewTransaction(1, model.TxPurchase, 3, "Milk", 50, decimal.NewFromFloat(2.50)),
			model.NewTransaction(2, model.TxSale, 3, "Milk", 15, decimal.NewFromFloat(3.99)),
			model.NewTransaction(4, model.TxSale, 12, "Deleted Item", 1, decimal.NewFromFloat(8.99)),
		},
		NextID: 5,
	}
}

func assertProductsEqual(t *testing.T, want, got []model.Product) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.True(t, want[i].PurchasePrice.Equal(got[i].PurchasePrice), "purchase price of %d", want[i].ID)
		assert.True(t, want[i].SellingPrice.Equal(got[i].SellingPrice), "selling price of %d", want[i].ID)
		assert.Equal(t, want[i].StockQuantity, got[i].StockQuantity)
		assert.Equal(t, want[i].LowStockThreshold, got[i].LowStockThreshold)
	}
}

func assertTransactionsEqual(t *testing.T, want, got []model.Transaction) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Type, got[i].Type)
		assert.Equal(t, want[i].ProductID, got[i].ProductID)
		assert.Equal(t, want[i].ProductName, got[i].ProductName)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.True(t, want[i].UnitPrice.Equal(got[i].UnitPrice), "unit price of %d", want[i].ID)
		assert.True(t, want[i].TotalAmount.Equal(got[i].TotalAmount), "total of %d: %s vs %s", want[i].ID, want[i].TotalAmount, got[i].TotalAmount)
	}
}

func TestProductsRoundTrip(t *testing.T) {
	in := sampleProducts()
	data, err := EncodeProducts(in)
	require.NoError(t, err)

	out, err := DecodeProducts(data)
	require.NoError(t, err)
	assert.Equal(t, in.NextID, out.NextID)
	assertProductsEqual(t, in.Products, out.Products)
}

func TestTransactionsRoundTrip(t *testing.T) {
	in := sampleTransactions()
	data, err := EncodeTransactions(in)
	require.NoError(t, err)

	out, err := DecodeTransactions(data)
	require.NoError(t, err)
	assert.Equal(t, in.NextID, out.NextID)
	assertTransactionsEqual(t, in.Transactions, out.Transactions)
	assert.Equal(t, "59.85", out.Transactions[1].TotalAmount.StringFixed(2))
}

func TestEmptyRoundTrip(t *testing.T) {
	data, err := EncodeProducts(ProductSnapshot{NextID: 1})
	require.NoError(t, err)
	assert.Len(t, data, headerSize+trailerSize)

	out, err := DecodeProducts(data)
	require.NoError(t, err)
	assert.Empty(t, out.Products)
	assert.Equal(t, 1, out.NextID)
}

func TestDecode_RejectsCorruption(t *testing.T) {
	good, err := EncodeProducts(sampleProducts())
	require.NoError(t, err)

	flipped := append([]byte(nil), good...)
	flipped[20] ^= 0xFF

	// re-sign a truncated body so only the structural check can catch it
	truncated := append([]byte(nil), good[:len(good)-trailerSize-3]...)
	truncated = binary.LittleEndian.AppendUint32(truncated, crc32.ChecksumIEEE(truncated))

	txData, err := EncodeTransactions(sampleTransactions())
	require.NoError(t, err)

	cases := map[string]struct {
		data []byte
		want error
	}{
		"empty":           {nil, ErrTruncated},
		"checksum":        {flipped, ErrChecksum},
		"truncated":       {truncated, ErrTruncated},
		"wrong artifact":  {txData, ErrInvalidMagic},
		"garbage":         {[]byte("definitely not a products file"), ErrInvalidMagic},
		"future version":  {resign(withVersion(good, FormatVersion+1)), ErrUnsupportedVersion},
		"trailing bytes":  {resign(append(good[:len(good)-trailerSize:len(good)-trailerSize], 0, 0, 0, 0, 0, 0)), apperrors.ErrCorrupt},
		"negative count":  {resign(withInt32(good, 6, -1)), apperrors.ErrCorrupt},
		"zero counter":    {resign(withInt32(good, 10, 0)), apperrors.ErrCorrupt},
		"count too large": {resign(withInt32(good, 6, 1000)), ErrTruncated},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			snapshot, err := DecodeProducts(tc.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, apperrors.ErrCorrupt)
			assert.Empty(t, snapshot.Products)
		})
	}
}

func TestDecodeTransactions_RejectsUnknownType(t *testing.T) {
	data, err := EncodeTransactions(TransactionSnapshot{
		Transactions: []model.Transaction{model.NewTransaction(1, model.TxSale, 1, "Milk", 1, decimal.NewFromFloat(3.99))},
		NextID:       2,
	})
	require.NoError(t, err)

	// type byte sits right after the first record's id
	bad := append([]byte(nil), data...)
	bad[headerSize+4] = 9
	_, err = DecodeTransactions(resign(bad))
	assert.ErrorIs(t, err, apperrors.ErrCorrupt)
}

func TestDecode_RejectsDuplicateIDs(t *testing.T) {
	snapshot := sampleProducts()
	snapshot.Products[1].ID = snapshot.Products[0].ID
	data, err := EncodeProducts(snapshot)
	require.NoError(t, err)

	_, err = DecodeProducts(data)
	assert.ErrorIs(t, err, apperrors.ErrCorrupt)
}

func TestEncodeTransactions_UnknownType(t *testing.T) {
	_, err := EncodeTransactions(TransactionSnapshot{
		Transactions: []model.Transaction{{ID: 1, Type: "REFUND", Quantity: 1}},
		NextID:       2,
	})
	assert.Error(t, err)
}

func TestEncodeProducts_RejectsNonFiniteAmount(t *testing.T) {
	snapshot := ProductSnapshot{
		Products: []model.Product{{ID: 1, Name: "Milk", PurchasePrice: decimal.RequireFromString("1e400"), SellingPrice: decimal.RequireFromString("3.99")}},
		NextID:   2,
	}
	_, err := EncodeProducts(snapshot)
	assert.Error(t, err)
}

func withVersion(data []byte, v uint16) []byte {
	out := append([]byte(nil), data...)
	binary.LittleEndian.PutUint16(out[4:6], v)
	return out
}

func withInt32(data []byte, offset int, v int32) []byte {
	out := append([]byte(nil), data...)
	binary.LittleEndian.PutUint32(out[offset:offset+4], uint32(v))
	return out
}

// resign recomputes the trailing checksum over everything but the last four bytes.
func resign(data []byte) []byte {
	out := append([]byte(nil), data[:len(data)-trailerSize]...)
	return binary.LittleEndian.AppendUint32(out, crc32.ChecksumIEEE(out))
}
