package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/arbo/memdb"
	"github.com/vocdoni/ecc-elgamal-sandbox/api/client"
	"github.com/vocdoni/ecc-elgamal-sandbox/crypto/ecc"
	"github.com/vocdoni/ecc-elgamal-sandbox/storage"
	"github.com/vocdoni/ecc-elgamal-sandbox/types"
)

func TestAPIService(t *testing.T) {
	c := qt.New(t)

	// Setup storage
	kv := memdb.New()
	store := storage.New(kv)
	defer store.Close()

	// Create API service with a random available port
	apiService := NewAPI(store, "127.0.0.1", 0, 0) // Port 0 lets the OS choose an available port

	// Start service in background
	ctx := context.Background()

	err := apiService.Start(ctx)
	c.Assert(err, qt.IsNil)
	defer apiService.Stop()

	host, port := apiService.HostPort()
	c.Assert(port, qt.Not(qt.Equals), 0)
	cli, err := client.New(fmt.Sprintf("http://%s:%d", host, port))
	c.Assert(err, qt.IsNil)
	info, err := cli.NewCurve(23, 1, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(info.Generator, qt.DeepEquals, ecc.NewPoint(9, 7))

	// Test stopping and restarting
	apiService.Stop()
	err = apiService.Start(ctx)
	c.Assert(err, qt.IsNil)

	// Test starting an already running service
	err = apiService.Start(ctx)
	c.Assert(err, qt.ErrorMatches, "service already running")

	// The curve built before the restart is still in the storage
	host, port = apiService.HostPort()
	cli, err = client.New(fmt.Sprintf("http://%s:%d", host, port))
	c.Assert(err, qt.IsNil)
	ids, err := cli.Curves()
	c.Assert(err, qt.IsNil)
	c.Assert(ids, qt.DeepEquals, []types.HexBytes{info.ID})
}

func TestAPIServiceContextCancel(t *testing.T) {
	c := qt.New(t)

	store := storage.New(memdb.New())
	defer store.Close()
	apiService := NewAPI(store, "127.0.0.1", 0, 0)

	ctx, cancel := context.WithCancel(context.Background())
	c.Assert(apiService.Start(ctx), qt.IsNil)
	host, port := apiService.HostPort()

	cancel()
	// the server shuts down in the background
	time.Sleep(500 * time.Millisecond)
	_, err := client.New(fmt.Sprintf("http://%s:%d", host, port), client.WithRetries(1))
	c.Assert(err, qt.IsNotNil)
	apiService.Stop()
}
