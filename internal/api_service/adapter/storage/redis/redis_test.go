package redis

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/go-redis/redismock/v9"
	"github.com/langowen/fxtrend/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

const testKey = "USD:KRW:2023-01-04..2023-12-31"

var createdAt = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

func testTable() *entities.RateTable {
	return &entities.RateTable{
		Base:    "USD",
		Columns: []string{"KRW"},
		Rows: []entities.RateRow{
			{Date: time.Date(2023, time.January, 4, 0, 0, 0, 0, time.UTC), Rates: map[string]float64{"KRW": 1269.9}},
			{Date: time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC), Rates: map[string]float64{"KRW": 1272.4}},
		},
	}
}

func encoded(t *testing.T) []byte {
	t.Helper()
	b, err := json.Marshal(payload{CreatedAt: createdAt, Table: testTable()})
	require.NoError(t, err)
	return b
}

func TestStorage_Get_Hit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("rates:" + testKey).SetVal(string(encoded(t)))

	s := NewStorage(rdb, "rates")
	table, gotCreatedAt, ok := s.Get(context.Background(), testKey)

	require.True(t, ok)
	assert.True(t, createdAt.Equal(gotCreatedAt))
	assert.Equal(t, []string{"KRW"}, table.Columns)
	assert.Equal(t, []float64{1269.9, 1272.4}, table.Column("KRW"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_Get_Miss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("rates:" + testKey).RedisNil()

	s := NewStorage(rdb, "")
	table, _, ok := s.Get(context.Background(), testKey)

	assert.False(t, ok)
	assert.Nil(t, table)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_Get_Error(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("rates:" + testKey).SetErr(errors.New("connection refused"))

	s := NewStorage(rdb, "rates")
	_, _, ok := s.Get(context.Background(), testKey)

	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_Get_CorruptedDeleted(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("rates:" + testKey).SetVal("{not json")
	mock.ExpectDel("rates:" + testKey).SetVal(1)

	s := NewStorage(rdb, "rates")
	_, _, ok := s.Get(context.Background(), testKey)

	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_Set(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectSet("fx:"+testKey, encoded(t), time.Hour).SetVal("OK")

	s := NewStorage(rdb, "fx")
	s.Set(context.Background(), testKey, testTable(), createdAt, time.Hour)

	assert.NoError(t, mock.ExpectationsWereMet())
}
