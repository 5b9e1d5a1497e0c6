package concurrency

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshroute/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorkerPool_ValidatesAndForwards(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := make(chan models.LocationUpdate, 8)
	output := make(chan models.LocationUpdate, 8)

	pool := NewWorkerPool(2, testLogger())
	go pool.Start(ctx, input, output)

	input <- models.LocationUpdate{ShipmentID: "trip-1", Lat: 11.91, Lon: 79.81}
	input <- models.LocationUpdate{ShipmentID: "", Lat: 1, Lon: 2}            // no shipment id
	input <- models.LocationUpdate{ShipmentID: "trip-2", Lat: 999, Lon: 0}    // bad latitude
	input <- models.LocationUpdate{ShipmentID: "trip-3", Lat: 12.29, Lon: 76.63}
	close(input)

	var forwarded []models.LocationUpdate
	timeout := time.After(2 * time.Second)
	for len(forwarded) < 2 {
		select {
		case update := <-output:
			forwarded = append(forwarded, update)
		case <-timeout:
			t.Fatal("timed out waiting for forwarded updates")
		}
	}

	ids := []string{forwarded[0].ShipmentID, forwarded[1].ShipmentID}
	assert.ElementsMatch(t, []string{"trip-1", "trip-3"}, ids)
	for _, update := range forwarded {
		assert.False(t, update.ReceivedAt.IsZero(), "receive time must be stamped")
	}

	select {
	case extra := <-output:
		t.Fatalf("invalid update was forwarded: %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFanIn_MergesChannels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := NewManager(testLogger())

	ch1 := make(chan models.LocationUpdate, 1)
	ch2 := make(chan models.LocationUpdate, 1)
	merged := manager.FanIn(ctx, []<-chan models.LocationUpdate{ch1, ch2})

	ch1 <- models.LocationUpdate{ShipmentID: "trip-1"}
	ch2 <- models.LocationUpdate{ShipmentID: "trip-2"}
	close(ch1)
	close(ch2)

	var got []string
	for update := range merged {
		got = append(got, update.ShipmentID)
	}
	require.Len(t, got, 2)
	assert.ElementsMatch(t, []string{"trip-1", "trip-2"}, got)
}
