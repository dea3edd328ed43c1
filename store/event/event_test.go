package event

import (
	"context"
	"testing"

	"dsc/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []*core.Event {
	return []*core.Event{
		{TraceID: "t1", Kind: core.EventCollateralDeposited, From: "alice", To: "engine", Asset: "weth", Amount: decimal.New(10, 18)},
		{TraceID: "t2", Kind: core.EventDebtMinted, From: "engine", To: "alice", Amount: decimal.New(9000, 18)},
		{TraceID: "t3", Kind: core.EventCollateralDeposited, From: "bob", To: "engine", Asset: "wbtc", Amount: decimal.New(1, 18)},
	}
}

func testStore(t *testing.T, s core.EventStore) {
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, sampleEvents()...))

	// trace ids are unique
	require.NoError(t, s.Create(ctx, &core.Event{TraceID: "t1", Kind: core.EventDebtBurned, From: "alice"}))

	events, err := s.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, core.EventCollateralDeposited, events[0].Kind)
	assert.True(t, events[1].Amount.Equal(decimal.New(9000, 18)))

	events, err = s.List(ctx, events[0].ID, 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "t2", events[0].TraceID)

	events, err = s.ListByUser(ctx, "alice", 0, 10)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = s.ListByUser(ctx, "carol", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestEventStore(t *testing.T) {
	database, err := db.Open(db.SqliteInMemory())
	if err != nil {
		t.Skip("sqlite unavailable:", err)
	}
	defer database.Close()

	// every connection to :memory: is a separate database
	database.Update().DB().SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(database))
	testStore(t, New(database))
}
