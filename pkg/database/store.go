package database

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Options struct {
	DataDir          string
	ProductsFile     string
	TransactionsFile string
}

// Store persists the catalog and the ledger as two independent flat files.
type Store struct {
	productsPath     string
	transactionsPath string
	logger           *zap.Logger
}

// Open prepares the data directory. It does not read anything yet.
func Open(opts Options, logger *zap.Logger) (*Store, error) {
	if opts.DataDir == "" {
		opts.DataDir = "."
	}
	if opts.ProductsFile == "" {
		opts.ProductsFile = "products.bin"
	}
	if opts.TransactionsFile == "" {
		opts.TransactionsFile = "transactions.bin"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(opts.DataDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create data directory %s", opts.DataDir)
	}
	return &Store{
		productsPath:     filepath.Join(opts.DataDir, opts.ProductsFile),
		transactionsPath: filepath.Join(opts.DataDir, opts.TransactionsFile),
		logger:           logger,
	}, nil
}

func (s *Store) ProductsPath() string     { return s.productsPath }
func (s *Store) TransactionsPath() string { return s.transactionsPath }

func (s *Store) SaveProducts(snapshot ProductSnapshot) error {
	data, err := EncodeProducts(snapshot)
	if err != nil {
		return errors.Wrap(err, "encode products")
	}
	if err := writeFileAtomic(s.productsPath, data); err != nil {
		return errors.Wrap(err, "save products")
	}
	s.logger.Debug("products saved",
		zap.Int("count", len(snapshot.Products)),
		zap.Int("next_id", snapshot.NextID))
	return nil
}

func (s *Store) SaveTransactions(snapshot TransactionSnapshot) error {
	data, err := EncodeTransactions(snapshot)
	if err != nil {
		return errors.Wrap(err, "encode transactions")
	}
	if err := writeFileAtomic(s.transactionsPath, data); err != nil {
		return errors.Wrap(err, "save transactions")
	}
	s.logger.Debug("transactions saved",
		zap.Int("count", len(snapshot.Transactions)),
		zap.Int("next_id", snapshot.NextID))
	return nil
}

// LoadProducts returns an empty snapshot when the file does not exist. When
// the file is unreadable or corrupt it returns an empty snapshot and the error.
func (s *Store) LoadProducts() (ProductSnapshot, error) {
	empty := ProductSnapshot{NextID: 1}
	data, err := os.ReadFile(s.productsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return empty, nil
	}
	if err != nil {
		return empty, errors.Wrap(err, "read products")
	}
	snapshot, err := DecodeProducts(data)
	if err != nil {
		return empty, errors.Wrapf(err, "decode %s", s.productsPath)
	}
	s.logger.Info("products loaded",
		zap.Int("count", len(snapshot.Products)),
		zap.Int("next_id", snapshot.NextID))
	return snapshot, nil
}

func (s *Store) LoadTransactions() (TransactionSnapshot, error) {
	empty := TransactionSnapshot{NextID: 1}
	data, err := os.ReadFile(s.transactionsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return empty, nil
	}
	if err != nil {
		return empty, errors.Wrap(err, "read transactions")
	}
	snapshot, err := DecodeTransactions(data)
	if err != nil {
		return empty, errors.Wrapf(err, "decode %s", s.transactionsPath)
	}
	s.logger.Info("transactions loaded",
		zap.Int("count", len(snapshot.Transactions)),
		zap.Int("next_id", snapshot.NextID))
	return snapshot, nil
}

// Reset removes both files so the next load starts from empty collections.
func (s *Store) Reset() error {
	for _, path := range []string{s.productsPath, s.transactionsPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return errors.Wrapf(err, "remove %s", path)
		}
	}
	return nil
}

// Exists reports whether either data file is present.
func (s *Store) Exists() bool {
	for _, path := range []string{s.productsPath, s.transactionsPath} {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}

// writeFileAtomic writes data next to path and renames it into place, so the
// previous file survives any failure before the rename.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp := path + "." + uuid.NewString() + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
