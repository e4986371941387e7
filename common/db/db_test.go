// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"fmt"
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T, backend string) DB {
	dir, err := ioutil.TempDir("", "dbtest")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	database := NewDB("test", backend, dir, 16)
	t.Cleanup(database.Close)
	return database
}

func testBackends() []string {
	return []string{MemDBBackendStr, GoLevelDBBackendStr, GoBadgerDBBackendStr}
}

func TestGetSetDelete(t *testing.T) {
	for _, backend := range testBackends() {
		t.Run(backend, func(t *testing.T) {
			database := newTestDB(t, backend)

			_, err := database.Get([]byte("k1"))
			assert.Equal(t, ErrNotFoundInDb, err)

			require.NoError(t, database.Set([]byte("k1"), []byte("v1")))
			value, err := database.Get([]byte("k1"))
			require.NoError(t, err)
			assert.Equal(t, []byte("v1"), value)

			require.NoError(t, database.Delete([]byte("k1")))
			_, err = database.Get([]byte("k1"))
			assert.Equal(t, ErrNotFoundInDb, err)
		})
	}
}

func TestBatch(t *testing.T) {
	for _, backend := range testBackends() {
		t.Run(backend, func(t *testing.T) {
			database := newTestDB(t, backend)

			batch := database.NewBatch(true)
			batch.Set([]byte("a1"), []byte("1"))
			batch.Set([]byte("a2"), []byte("2"))
			batch.Delete([]byte("a1"))
			require.NoError(t, batch.Write())

			_, err := database.Get([]byte("a1"))
			assert.Equal(t, ErrNotFoundInDb, err)
			value, err := database.Get([]byte("a2"))
			require.NoError(t, err)
			assert.Equal(t, []byte("2"), value)
		})
	}
}

func TestIterator(t *testing.T) {
	for _, backend := range testBackends() {
		t.Run(backend, func(t *testing.T) {
			database := newTestDB(t, backend)
			for i := 0; i < 5; i++ {
				key := fmt.Sprintf("prefix-%02d", i)
				require.NoError(t, database.Set([]byte(key), []byte{byte(i)}))
			}
			require.NoError(t, database.Set([]byte("other-00"), []byte{9}))

			it := database.Iterator([]byte("prefix-"), false)
			var keys []string
			for it.Next() {
				keys = append(keys, string(it.Key()))
			}
			it.Close()
			require.Len(t, keys, 5)
			assert.Equal(t, "prefix-00", keys[0])
			assert.Equal(t, "prefix-04", keys[4])

			it = database.Iterator([]byte("prefix-"), true)
			keys = nil
			for it.Next() {
				keys = append(keys, string(it.Key()))
			}
			it.Close()
			require.Len(t, keys, 5)
			assert.Equal(t, "prefix-04", keys[0])
			assert.Equal(t, "prefix-00", keys[4])
		})
	}
}

func TestList(t *testing.T) {
	for _, backend := range testBackends() {
		t.Run(backend, func(t *testing.T) {
			database := newTestDB(t, backend)
			for i := 0; i < 5; i++ {
				key := fmt.Sprintf("prefix-%02d", i)
				require.NoError(t, database.Set([]byte(key), []byte(fmt.Sprintf("v%d", i))))
			}

			//默认从大到小
			values, err := database.List([]byte("prefix-"), nil, 2, ListDESC)
			require.NoError(t, err)
			require.Len(t, values, 2)
			assert.Equal(t, []byte("v4"), values[0])
			assert.Equal(t, []byte("v3"), values[1])

			//从翻页起点继续
			values, err = database.List([]byte("prefix-"), []byte("prefix-03"), 2, ListDESC)
			require.NoError(t, err)
			require.Len(t, values, 2)
			assert.Equal(t, []byte("v2"), values[0])
			assert.Equal(t, []byte("v1"), values[1])

			values, err = database.List([]byte("prefix-"), nil, 0, ListASC)
			require.NoError(t, err)
			require.Len(t, values, 5)
			assert.Equal(t, []byte("v0"), values[0])

			_, err = database.List([]byte("nothing-"), nil, 0, ListASC)
			assert.Equal(t, ErrNotFoundInDb, err)
		})
	}
}
