package dbbadger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

const gcInterval = 30 * time.Minute

type txKey struct{}

func contextWithTx(ctx context.Context, tx *badger.Txn) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFromContext(ctx context.Context) *badger.Txn {
	tx, _ := ctx.Value(txKey{}).(*badger.Txn)
	return tx
}

// store makes every badgerhold operation use the transaction carried by the
// context, if any.
type store struct {
	*badgerhold.Store
}

func (s store) get(ctx context.Context, key, result interface{}) error {
	if tx := txFromContext(ctx); tx != nil {
		return s.TxGet(tx, key, result)
	}
	return s.Get(key, result)
}

func (s store) insert(ctx context.Context, key, data interface{}) error {
	if tx := txFromContext(ctx); tx != nil {
		return s.TxInsert(tx, key, data)
	}
	return s.Insert(key, data)
}

func (s store) upsert(ctx context.Context, key, data interface{}) error {
	if tx := txFromContext(ctx); tx != nil {
		return s.TxUpsert(tx, key, data)
	}
	return s.Upsert(key, data)
}

func (s store) delete(ctx context.Context, key, dataType interface{}) error {
	if tx := txFromContext(ctx); tx != nil {
		return s.TxDelete(tx, key, dataType)
	}
	return s.Delete(key, dataType)
}

func (s store) find(
	ctx context.Context, result interface{}, query *badgerhold.Query,
) error {
	if tx := txFromContext(ctx); tx != nil {
		return s.TxFind(tx, result, query)
	}
	return s.Find(result, query)
}

// withTx runs fn within the transaction of the context or, if missing, within
// a new read-write one committed right after.
func (s store) withTx(
	ctx context.Context, fn func(ctx context.Context) error,
) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return s.Badger().Update(func(tx *badger.Txn) error {
		return fn(contextWithTx(ctx, tx))
	})
}

// OpenStore opens (or creates if not exists) a badgerhold store in the given
// directory. An empty directory makes the store live in memory only.
func OpenStore(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		go runValueLogGC(db)
	}

	return db, nil
}

func runValueLogGC(db *badgerhold.Store) {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for range ticker.C {
		if db.Badger().IsClosed() {
			return
		}
		if err := db.Badger().RunValueLogGC(0.5); err != nil &&
			err != badger.ErrNoRewrite {
			log.Error(err)
		}
	}
}
