package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/uptask/internal/logging"
)

func startServer(t *testing.T, s *HealthServer) (healthpb.HealthClient, context.CancelFunc, chan error) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		cancel()
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn), cancel, done
}

func TestServe_ReportsServingAndStopsOnCancel(t *testing.T) {
	s := NewHealthServer("", logging.Nop{})
	s.AddCheck("database", func(context.Context) error { return nil })

	client, cancel, done := startServer(t, s)
	defer cancel()

	ctx, c := context.WithTimeout(context.Background(), 2*time.Second)
	defer c()

	for _, svc := range []string{"", "database"} {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: svc})
		if err != nil {
			t.Fatalf("Check(%q): %v", svc, err)
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			t.Fatalf("Check(%q) = %v, want SERVING", svc, resp.GetStatus())
		}
	}

	_, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: "unknown"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("unknown service: want NotFound, got %v", err)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRefresh_FailingCheckMarksNotServing(t *testing.T) {
	s := NewHealthServer("", logging.Nop{})
	healthy := true
	s.AddCheck("database", func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("connection refused")
	})

	ctx := context.Background()
	check := func(svc string) healthpb.HealthCheckResponse_ServingStatus {
		resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: svc})
		if err != nil {
			t.Fatalf("Check(%q): %v", svc, err)
		}
		return resp.GetStatus()
	}

	s.refresh(ctx)
	if got := check(""); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("overall = %v, want SERVING", got)
	}

	healthy = false
	s.refresh(ctx)
	if got := check("database"); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("database = %v, want NOT_SERVING", got)
	}
	if got := check(""); got != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("overall = %v, want NOT_SERVING", got)
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	s := NewHealthServer("127.0.0.1:99999", logging.Nop{})
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected error for invalid port")
	}
}
