// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/counter"
	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/logger"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentVersion = 0x100

// Store - a local ledger persisted in leveldb
//
// every invocation runs under the store lock and its writes are
// committed as one batch, or not at all
type Store struct {
	sync.Mutex
	db  *leveldb.DB
	log *logger.L

	committed  counter.Counter
	rolledBack counter.Counter
	created    counter.Counter
	airdropped counter.Counter
}

// Statistics - counts since the store was opened
type Statistics struct {
	Committed       uint64 `json:"committed"`
	RolledBack      uint64 `json:"rolled_back"`
	AccountsCreated uint64 `json:"accounts_created"`
	Airdropped      uint64 `json:"airdropped"`
}

// Open - open or create a ledger database directory
func Open(directory string, readOnly bool) (*Store, error) {
	db, err := leveldb.OpenFile(directory, &ldb_opt.Options{
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	})
	if nil != err {
		return nil, err
	}
	return newStore(db, readOnly)
}

// OpenMemory - a ledger that only lives in memory, for tests and dry runs
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return newStore(db, false)
}

func newStore(db *leveldb.DB, readOnly bool) (*Store, error) {
	s := &Store{
		db:  db,
		log: logger.New("ledger"),
	}

	version, err := s.version()
	if nil != err {
		db.Close()
		return nil, err
	}

	switch {
	case version > currentVersion:
		db.Close()
		return nil, fmt.Errorf("ledger database version: %d > current version: %d", version, currentVersion)
	case 0 == version && !readOnly:
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], currentVersion)
		if err := db.Put(versionKey, b[:], nil); nil != err {
			db.Close()
			return nil, err
		}
	}

	s.log.Infof("opened ledger version: 0x%x", currentVersion)
	return s, nil
}

func (s *Store) version() (uint32, error) {
	b, err := s.db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	}
	if nil != err {
		return 0, err
	}
	if 4 != len(b) {
		return 0, fmt.Errorf("ledger database version record: %x is corrupt", b)
	}
	return binary.BigEndian.Uint32(b), nil
}

// Close - flush and close the database
func (s *Store) Close() error {
	s.Lock()
	defer s.Unlock()
	s.log.Info("closing")
	return s.db.Close()
}

// Invoke - run one invocation against a private view of the ledger
//
// a nil return commits every change made through the view; any error
// discards all of them
func (s *Store) Invoke(invocation func(Ledger) error) error {
	s.Lock()
	defer s.Unlock()

	t := newTransaction(s.db)
	if err := invocation(t); nil != err {
		s.rolledBack.Increment()
		s.log.Warnf("invocation rolled back: %s", err)
		return err
	}

	if err := s.db.Write(t.batch, &ldb_opt.WriteOptions{Sync: true}); nil != err {
		s.rolledBack.Increment()
		s.log.Errorf("commit failed: %s", err)
		return err
	}
	s.committed.Increment()
	s.created.Add(t.created)
	s.log.Debugf("committed %d account writes", t.batch.Len())
	return nil
}

// Statistics - snapshot of the counters
func (s *Store) Statistics() Statistics {
	return Statistics{
		Committed:       s.committed.Uint64(),
		RolledBack:      s.rolledBack.Uint64(),
		AccountsCreated: s.created.Uint64(),
		Airdropped:      s.airdropped.Uint64(),
	}
}

// Airdrop - credit lamports to an account, creating it if needed
func (s *Store) Airdrop(target address.Address, lamports uint64) error {
	err := s.Invoke(func(l Ledger) error {
		t := l.(*transaction)
		account, err := t.get(target)
		if nil != err {
			return err
		}
		if nil == account {
			account = &Account{Owner: address.Zero, Data: []byte{}}
		}
		account.Lamports += lamports
		s.log.Infof("airdrop: %d lamports to: %s", lamports, target)
		return t.put(target, account)
	})
	if nil == err {
		s.airdropped.Add(lamports)
	}
	return err
}

// Account - committed state of an account
func (s *Store) Account(target address.Address) (*Account, error) {
	s.Lock()
	defer s.Unlock()

	account, err := newTransaction(s.db).get(target)
	if nil != err {
		return nil, err
	}
	if nil == account {
		return nil, fault.ErrAccountNotFound
	}
	return account, nil
}

// Balance - committed lamports of an account, zero if missing
func (s *Store) Balance(target address.Address) uint64 {
	account, err := s.Account(target)
	if nil != err {
		return 0
	}
	return account.Lamports
}

// AccountData - committed data of an account, for external readers
func (s *Store) AccountData(target address.Address) ([]byte, error) {
	account, err := s.Account(target)
	if nil != err {
		return nil, err
	}
	return account.Data, nil
}
