package ingest

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"aptos-etl/rawtx"
)

const bufSize = 1 << 20

// rawDataStreamHandler replies with two transaction batches then closes the
// stream, standing in for the real aptos.indexer.v1.RawData service this
// package's hand-rolled stub targets.
func rawDataStreamHandler(srv any, stream grpc.ServerStream) error {
	var req rawtx.GetTransactionsRequest
	if err := stream.RecvMsg(&req); err != nil {
		return err
	}
	first := &rawtx.TransactionsResponse{
		Transactions: []*rawtx.Transaction{
			{Version: req.StartingVersion, Type: rawtx.KindBlockMetadata},
		},
	}
	second := &rawtx.TransactionsResponse{
		Transactions: []*rawtx.Transaction{
			{Version: req.StartingVersion + 1, Type: rawtx.KindBlockMetadata},
		},
	}
	if err := stream.SendMsg(first); err != nil {
		return err
	}
	return stream.SendMsg(second)
}

func startTestServer(t *testing.T) *bufconn.Listener {
	t.Helper()
	lis := bufconn.Listen(bufSize)
	srv := grpc.NewServer()
	srv.RegisterService(&grpc.ServiceDesc{
		ServiceName: "aptos.indexer.v1.RawData",
		HandlerType: (*any)(nil),
		Streams: []grpc.StreamDesc{{
			StreamName:    "GetTransactions",
			Handler:       rawDataStreamHandler,
			ServerStreams: true,
		}},
	}, nil)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return lis
}

func TestStreamHandleYieldsTransactionsFromBothBatches(t *testing.T) {
	lis := startTestServer(t)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	stream, err := conn.NewStream(context.Background(), &grpc.StreamDesc{ServerStreams: true}, rawDataMethod,
		grpc.CallContentSubtype(codecName))
	if err != nil {
		t.Fatalf("open stream failed: %v", err)
	}
	req := &rawtx.GetTransactionsRequest{StartingVersion: 100, TransactionsCount: 2}
	if err := stream.SendMsg(req); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if err := stream.CloseSend(); err != nil {
		t.Fatalf("close send failed: %v", err)
	}

	handle := &streamHandle{conn: conn, stream: stream}

	var versions []uint64
	for {
		tx, ok, err := handle.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if !ok {
			break
		}
		versions = append(versions, tx.Version)
	}
	if len(versions) != 2 || versions[0] != 100 || versions[1] != 101 {
		t.Fatalf("versions = %v, want [100 101]", versions)
	}
}

func TestClientOpenStreamFailsOverToFallback(t *testing.T) {
	lis := startTestServer(t)

	bufDial := func(ctx context.Context, _ string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
		opts = append(opts, grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
		return grpc.DialContext(ctx, "passthrough:///bufnet", opts...)
	}

	c := &Client{
		Primary:        Endpoint{Addr: "127.0.0.1:0"}, // nothing listens here; dial must fail
		Fallback:       &Endpoint{Addr: "passthrough:///bufnet"},
		ConnectTimeout: 200_000_000, // 200ms, as time.Duration nanoseconds
		dial: func(ctx context.Context, addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
			if addr == "127.0.0.1:0" {
				return grpc.DialContext(ctx, addr, opts...)
			}
			return bufDial(ctx, addr, opts...)
		},
	}

	handle, err := c.OpenStream(200, 201)
	if err != nil {
		t.Fatalf("OpenStream failed: %v", err)
	}
	defer handle.Close()

	tx, ok, err := handle.Next()
	if err != nil || !ok {
		t.Fatalf("Next() = %v, %v, %v", tx, ok, err)
	}
	if tx.Version != 200 {
		t.Fatalf("Version = %d, want 200", tx.Version)
	}
}
