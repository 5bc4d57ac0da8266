package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"

	"aptos-etl/core"
	"aptos-etl/pkg/config"
	"aptos-etl/rawtx"
)

// rawDataMethod is the fully qualified method name a generated
// aptos.indexer.v1.RawDataClient would dial; hand-written here since the
// stub itself is out of scope.
const rawDataMethod = "/aptos.indexer.v1.RawData/GetTransactions"

// Endpoint bundles a gRPC stream address with its bearer auth token.
type Endpoint struct {
	Addr string
	Auth string
}

// Client dials the Aptos transaction stream, failing over from Primary to
// Fallback exactly per spec §4.1.
type Client struct {
	Primary        Endpoint
	Fallback       *Endpoint
	PingInterval   time.Duration
	PingTimeout    time.Duration
	ConnectTimeout time.Duration
	ProjectName    string

	log *zap.Logger

	// dial defaults to grpc.DialContext; overridden in tests to dial an
	// in-memory bufconn listener instead of a real socket.
	dial func(ctx context.Context, addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error)
}

// NewClient builds a Client from process Settings (spec §6.2).
func NewClient(settings *config.Settings, logger *zap.Logger) *Client {
	c := &Client{
		Primary:        Endpoint{Addr: settings.Primary.Addr, Auth: settings.Primary.Auth},
		PingInterval:   time.Duration(settings.PingInterval) * time.Second,
		PingTimeout:    time.Duration(settings.PingTimeout) * time.Second,
		ConnectTimeout: time.Duration(settings.ConnectTimeoutSeconds) * time.Second,
		ProjectName:    settings.ProjectName,
		log:            logger,
		dial:           grpc.DialContext,
	}
	if settings.Fallback != nil {
		c.Fallback = &Endpoint{Addr: settings.Fallback.Addr, Auth: settings.Fallback.Auth}
	}
	return c
}

// OpenStream satisfies core.StreamClient: it dials the primary endpoint and,
// on failure, falls back to the configured fallback endpoint, per spec
// §4.1's failover rule.
func (c *Client) OpenStream(start, end uint64) (core.StreamHandle, error) {
	handle, err := c.openOn(c.Primary, start, end)
	if err == nil {
		return handle, nil
	}
	if c.log != nil {
		c.log.Warn("primary stream open failed, attempting fallback", zap.Error(err))
	}
	if c.Fallback == nil {
		return nil, fmt.Errorf("ingest: primary stream failed and no fallback configured: %w", err)
	}
	handle, fbErr := c.openOn(*c.Fallback, start, end)
	if fbErr != nil {
		return nil, fmt.Errorf("ingest: primary and fallback both failed: primary=%v fallback=%w", err, fbErr)
	}
	if c.log != nil {
		c.log.Info("stream opened on fallback endpoint")
	}
	return handle, nil
}

func (c *Client) openOn(ep Endpoint, start, end uint64) (*streamHandle, error) {
	dialCtx, cancel := context.WithTimeout(context.Background(), c.connectTimeout())
	defer cancel()

	dial := c.dial
	if dial == nil {
		dial = grpc.DialContext
	}
	conn, err := dial(dialCtx, ep.Addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithBlock(),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                c.pingInterval(),
			Timeout:             c.pingTimeout(),
			PermitWithoutStream: true,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("ingest: dial %s: %w", ep.Addr, err)
	}

	ctx := context.Background()
	if ep.Auth != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+ep.Auth)
	}
	ctx = metadata.AppendToOutgoingContext(ctx, "x-aptos-request-name", c.ProjectName)

	stream, err := conn.NewStream(ctx, &grpc.StreamDesc{ServerStreams: true}, rawDataMethod,
		grpc.CallContentSubtype(codecName))
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ingest: open stream on %s: %w", ep.Addr, err)
	}

	req := &rawtx.GetTransactionsRequest{StartingVersion: start, TransactionsCount: end - start + 1}
	if err := stream.SendMsg(req); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ingest: send request on %s: %w", ep.Addr, err)
	}
	if err := stream.CloseSend(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ingest: close send on %s: %w", ep.Addr, err)
	}

	return &streamHandle{conn: conn, stream: stream, log: c.log}, nil
}

func (c *Client) connectTimeout() time.Duration {
	if c.ConnectTimeout <= 0 {
		return 5 * time.Second
	}
	return c.ConnectTimeout
}

func (c *Client) pingInterval() time.Duration {
	if c.PingInterval <= 0 {
		return 10 * time.Second
	}
	return c.PingInterval
}

func (c *Client) pingTimeout() time.Duration {
	if c.PingTimeout <= 0 {
		return 10 * time.Second
	}
	return c.PingTimeout
}

// streamHandle implements core.StreamHandle over a single open grpc.ClientStream,
// unpacking each TransactionsResponse batch into individual transactions.
type streamHandle struct {
	conn   *grpc.ClientConn
	stream grpc.ClientStream
	log    *zap.Logger

	buffered []*rawtx.Transaction
	pos      int
}

func (h *streamHandle) Next() (*rawtx.Transaction, bool, error) {
	for h.pos >= len(h.buffered) {
		var resp rawtx.TransactionsResponse
		err := h.stream.RecvMsg(&resp)
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("ingest: recv: %w", err)
		}
		if len(resp.Transactions) == 0 {
			if h.log != nil {
				h.log.Warn("received an empty transactions batch")
			}
			continue
		}
		h.buffered = resp.Transactions
		h.pos = 0
	}
	tx := h.buffered[h.pos]
	h.pos++
	return tx, true, nil
}

func (h *streamHandle) Close() error {
	return h.conn.Close()
}
