package database

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"math"

	"go-minimart/internal/apperrors"
	"go-minimart/internal/model"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Artifact layout, little-endian:
//
//	magic   [4]byte  "MMPR" or "MMTX"
//	version uint16
//	count   int32
//	next    int32    next id the collection will hand out
//	records ...
//	crc     uint32   CRC-32 (IEEE) of every preceding byte
//
// Strings are a uint32 byte length followed by UTF-8 bytes. Prices are
// IEEE-754 float64 bits.
const (
	FormatVersion uint16 = 1

	headerSize  = 4 + 2 + 4 + 4
	trailerSize = 4
)

var (
	productMagic     = [4]byte{'M', 'M', 'P', 'R'}
	transactionMagic = [4]byte{'M', 'M', 'T', 'X'}
)

var (
	ErrInvalidMagic       = errors.Wrap(apperrors.ErrCorrupt, "invalid magic number")
	ErrUnsupportedVersion = errors.Wrap(apperrors.ErrCorrupt, "unsupported format version")
	ErrChecksum           = errors.Wrap(apperrors.ErrCorrupt, "checksum mismatch")
	ErrTruncated          = errors.Wrap(apperrors.ErrCorrupt, "unexpected end of data")
)

const (
	txTypePurchase byte = 0
	txTypeSale     byte = 1
)

// ProductSnapshot is the persisted state of the catalog.
type ProductSnapshot struct {
	Products []model.Product
	NextID   int
}

// TransactionSnapshot is the persisted state of the ledger.
type TransactionSnapshot struct {
	Transactions []model.Transaction
	NextID       int
}

func EncodeProducts(s ProductSnapshot) ([]byte, error) {
	w := newWriter(productMagic)
	w.putInt32(len(s.Products))
	w.putInt32(s.NextID)
	for _, p := range s.Products {
		w.putInt32(p.ID)
		w.putString(p.Name)
		w.putAmount(p.PurchasePrice)
		w.putAmount(p.SellingPrice)
		w.putInt32(p.StockQuantity)
		w.putInt32(p.LowStockThreshold)
	}
	return w.finish()
}

func DecodeProducts(data []byte) (ProductSnapshot, error) {
	r, err := newReader(data, productMagic)
	if err != nil {
		return ProductSnapshot{}, err
	}
	count, next := r.header()
	if r.err != nil {
		return ProductSnapshot{}, r.err
	}

	products := make([]model.Product, 0, min(count, r.remaining()))
	seen := make(map[int]struct{}, len(products))
	for i := 0; i < count && r.err == nil; i++ {
		p := model.Product{
			ID:                r.readInt32(),
			Name:              r.readString(),
			PurchasePrice:     r.readAmount(),
			SellingPrice:      r.readAmount(),
			StockQuantity:     r.readInt32(),
			LowStockThreshold: r.readInt32(),
		}
		if r.err != nil {
			break
		}
		if _, dup := seen[p.ID]; dup {
			return ProductSnapshot{}, errors.Wrapf(apperrors.ErrCorrupt, "duplicate product id %d", p.ID)
		}
		if p.StockQuantity < 0 {
			return ProductSnapshot{}, errors.Wrapf(apperrors.ErrCorrupt, "product %d has negative stock", p.ID)
		}
		seen[p.ID] = struct{}{}
		products = append(products, p)
	}
	if err := r.done(); err != nil {
		return ProductSnapshot{}, err
	}
	return ProductSnapshot{Products: products, NextID: next}, nil
}

func EncodeTransactions(s TransactionSnapshot) ([]byte, error) {
	w := newWriter(transactionMagic)
	w.putInt32(len(s.Transactions))
	w.putInt32(s.NextID)
	for _, tx := range s.Transactions {
		w.putInt32(tx.ID)
		switch tx.Type {
		case model.TxPurchase:
			w.putByte(txTypePurchase)
		case model.TxSale:
			w.putByte(txTypeSale)
		default:
			return nil, errors.Errorf("transaction %d has unknown type %q", tx.ID, tx.Type)
		}
		w.putInt32(tx.ProductID)
		w.putString(tx.ProductName)
		w.putInt32(tx.Quantity)
		w.putAmount(tx.UnitPrice)
		w.putAmount(tx.TotalAmount)
	}
	return w.finish()
}

func DecodeTransactions(data []byte) (TransactionSnapshot, error) {
	r, err := newReader(data, transactionMagic)
	if err != nil {
		return TransactionSnapshot{}, err
	}
	count, next := r.header()
	if r.err != nil {
		return TransactionSnapshot{}, r.err
	}

	txs := make([]model.Transaction, 0, min(count, r.remaining()))
	seen := make(map[int]struct{}, len(txs))
	for i := 0; i < count && r.err == nil; i++ {
		var tx model.Transaction
		tx.ID = r.readInt32()
		switch b := r.readByte(); b {
		case txTypePurchase:
			tx.Type = model.TxPurchase
		case txTypeSale:
			tx.Type = model.TxSale
		default:
			if r.err == nil {
				return TransactionSnapshot{}, errors.Wrapf(apperrors.ErrCorrupt, "transaction %d has unknown type %d", tx.ID, b)
			}
		}
		tx.ProductID = r.readInt32()
		tx.ProductName = r.readString()
		tx.Quantity = r.readInt32()
		tx.UnitPrice = r.readAmount()
		tx.TotalAmount = r.readAmount()
		if r.err != nil {
			break
		}
		if _, dup := seen[tx.ID]; dup {
			return TransactionSnapshot{}, errors.Wrapf(apperrors.ErrCorrupt, "duplicate transaction id %d", tx.ID)
		}
		if tx.Quantity <= 0 {
			return TransactionSnapshot{}, errors.Wrapf(apperrors.ErrCorrupt, "transaction %d has quantity %d", tx.ID, tx.Quantity)
		}
		seen[tx.ID] = struct{}{}
		txs = append(txs, tx)
	}
	if err := r.done(); err != nil {
		return TransactionSnapshot{}, err
	}
	return TransactionSnapshot{Transactions: txs, NextID: next}, nil
}

type writer struct {
	buf bytes.Buffer
	err error
}

func newWriter(magic [4]byte) *writer {
	w := &writer{}
	w.buf.Write(magic[:])
	w.putUint16(FormatVersion)
	return w
}

func (w *writer) putUint16(v uint16) {
	w.buf.Write(binary.LittleEndian.AppendUint16(nil, v))
}

func (w *writer) putUint32(v uint32) {
	w.buf.Write(binary.LittleEndian.AppendUint32(nil, v))
}

func (w *writer) putByte(b byte) {
	w.buf.WriteByte(b)
}

func (w *writer) putInt32(v int) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		if w.err == nil {
			w.err = errors.Errorf("value %d does not fit in int32", v)
		}
		return
	}
	w.putUint32(uint32(int32(v)))
}

func (w *writer) putString(s string) {
	w.putUint32(uint32(len(s)))
	w.buf.WriteString(s)
}

func (w *writer) putAmount(d decimal.Decimal) {
	f := d.InexactFloat64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if w.err == nil {
			w.err = errors.Errorf("amount %s does not fit in a float64", d.String())
		}
		return
	}
	w.buf.Write(binary.LittleEndian.AppendUint64(nil, math.Float64bits(f)))
}

func (w *writer) finish() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	sum := crc32.ChecksumIEEE(w.buf.Bytes())
	w.putUint32(sum)
	return w.buf.Bytes(), nil
}

// reader keeps the first error it hits; later reads return zero values.
type reader struct {
	data []byte
	pos  int
	err  error
}

func newReader(data []byte, magic [4]byte) (*reader, error) {
	if len(data) < headerSize+trailerSize {
		return nil, ErrTruncated
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, ErrInvalidMagic
	}
	if v := binary.LittleEndian.Uint16(data[4:6]); v == 0 || v > FormatVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", v)
	}
	body := data[:len(data)-trailerSize]
	want := binary.LittleEndian.Uint32(data[len(data)-trailerSize:])
	if crc32.ChecksumIEEE(body) != want {
		return nil, ErrChecksum
	}
	return &reader{data: body, pos: 6}, nil
}

func (r *reader) header() (count, next int) {
	count = r.readInt32()
	next = r.readInt32()
	if r.err == nil && count < 0 {
		r.err = errors.Wrapf(apperrors.ErrCorrupt, "negative record count %d", count)
	}
	if r.err == nil && next < 1 {
		r.err = errors.Wrapf(apperrors.ErrCorrupt, "invalid id counter %d", next)
	}
	return count, next
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > r.remaining() {
		r.err = ErrTruncated
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) readByte() byte {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) readInt32() int {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return int(int32(binary.LittleEndian.Uint32(b)))
}

func (r *reader) readString() string {
	b := r.take(4)
	if b == nil {
		return ""
	}
	n := binary.LittleEndian.Uint32(b)
	if uint64(n) > uint64(r.remaining()) {
		r.err = ErrTruncated
		return ""
	}
	return string(r.take(int(n)))
}

func (r *reader) readAmount() decimal.Decimal {
	b := r.take(8)
	if b == nil {
		return decimal.Zero
	}
	f := math.Float64frombits(binary.LittleEndian.Uint64(b))
	if math.IsNaN(f) || math.IsInf(f, 0) {
		r.err = errors.Wrap(apperrors.ErrCorrupt, "non-finite amount")
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func (r *reader) done() error {
	if r.err != nil {
		return r.err
	}
	if r.remaining() != 0 {
		return errors.Wrapf(apperrors.ErrCorrupt, "%d trailing bytes", r.remaining())
	}
	return nil
}
