package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/pchela/internal/common"
	"github.com/dmitrijs2005/pchela/internal/logging"
	"github.com/dmitrijs2005/pchela/internal/loyalty"
	"github.com/dmitrijs2005/pchela/internal/profiles"
	"github.com/dmitrijs2005/pchela/internal/repositories/kv"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const testSecret = "secret"

func newTestLoyalty(t *testing.T, limit int) *loyalty.Service {
	t.Helper()
	store := profiles.NewStore(kv.NewMemoryRepository())
	require.NoError(t, store.Initialize(context.Background(), nil))
	return loyalty.NewService(store, loyalty.DefaultCatalog(), limit, logging.Nop())
}

// startBufServer serves s on an in-memory listener and returns a client.
func startBufServer(t *testing.T, s *GRPCServer, opts ...grpc.DialOption) *Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	opts = append(opts,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	conn, err := grpc.NewClient("passthrough:///bufnet", opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return NewClient(conn)
}

func withToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, token)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop(), newTestLoyalty(t, 0), testSecret, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop(), newTestLoyalty(t, 0), testSecret, time.Hour)

	require.Error(t, srv.Run(context.Background()))
}

func TestService_EndToEnd(t *testing.T) {
	srv := NewGRPCServer("", logging.Nop(), newTestLoyalty(t, 0), testSecret, time.Hour)
	client := startBufServer(t, srv)
	ctx := context.Background()

	menu, err := client.Call(ctx, MethodMenu, nil)
	require.NoError(t, err)
	require.NotEmpty(t, menu.GetFields()["items"].GetListValue().GetValues())

	reg, err := client.Call(ctx, MethodRegister, map[string]any{"username": " Ana "})
	require.NoError(t, err)
	token := reg.GetFields()["access_token"].GetStringValue()
	require.NotEmpty(t, token)
	prof := reg.GetFields()["profile"].GetStructValue().GetFields()
	require.Equal(t, "Ana", prof["username"].GetStringValue())
	require.Equal(t, profiles.NoCurrentOrder, prof["current_order"].GetStringValue())

	order, err := client.Call(withToken(ctx, token), MethodPlaceOrder, map[string]any{
		"item_ids": []any{"cakes", "cookies"},
		"details":  "без орехи",
	})
	require.NoError(t, err)
	require.EqualValues(t, 7, order.GetFields()["points_earned"].GetNumberValue())
	summary := order.GetFields()["summary"].GetStructValue().GetFields()
	require.EqualValues(t, 3, summary["points_to_next"].GetNumberValue())
	require.EqualValues(t, 70, summary["progress_percent"].GetNumberValue())

	me, err := client.Call(withToken(ctx, token), MethodMe, nil)
	require.NoError(t, err)
	meProfile := me.GetFields()["profile"].GetStructValue().GetFields()
	require.EqualValues(t, 7, meProfile["points"].GetNumberValue())
	require.EqualValues(t, 1, meProfile["total_orders"].GetNumberValue())
	require.Equal(t, "Торти, Сладки - без орехи", meProfile["current_order"].GetStringValue())
	require.Len(t, meProfile["order_history"].GetListValue().GetValues(), 1)

	list, err := client.Call(ctx, MethodListProfiles, nil)
	require.NoError(t, err)
	require.Len(t, list.GetFields()["profiles"].GetListValue().GetValues(), 1)

	_, err = client.Call(withToken(ctx, token), MethodDeleteMe, nil)
	require.NoError(t, err)

	_, err = client.Call(withToken(ctx, token), MethodMe, nil)
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestService_ErrorCodes(t *testing.T) {
	srv := NewGRPCServer("", logging.Nop(), newTestLoyalty(t, 1), testSecret, time.Hour)
	client := startBufServer(t, srv)
	ctx := context.Background()

	_, err := client.Call(ctx, MethodRegister, map[string]any{"username": "  "})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	reg, err := client.Call(ctx, MethodRegister, map[string]any{"username": "Ana"})
	require.NoError(t, err)
	token := reg.GetFields()["access_token"].GetStringValue()

	_, err = client.Call(ctx, MethodRegister, map[string]any{"username": "Boris"})
	require.Equal(t, codes.ResourceExhausted, status.Code(err))

	_, err = client.Call(withToken(ctx, token), MethodPlaceOrder, map[string]any{"item_ids": []any{}})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Call(withToken(ctx, token), MethodPlaceOrder, map[string]any{"item_ids": []any{"pizza"}})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Call(ctx, MethodMe, nil)
	require.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = client.Call(withToken(ctx, "garbage"), MethodMe, nil)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestClient_AccessTokenInterceptor(t *testing.T) {
	srv := NewGRPCServer("", logging.Nop(), newTestLoyalty(t, 0), testSecret, time.Hour)

	var token string
	client := startBufServer(t, srv, grpc.WithUnaryInterceptor(AccessTokenInterceptor(func() string { return token })))
	ctx := context.Background()

	_, err := client.Call(ctx, MethodMe, nil)
	require.Equal(t, codes.Unauthenticated, status.Code(err))

	reg, err := client.Call(ctx, MethodRegister, map[string]any{"username": "Ana"})
	require.NoError(t, err)
	token = reg.GetFields()["access_token"].GetStringValue()

	me, err := client.Call(ctx, MethodMe, nil)
	require.NoError(t, err)
	require.Equal(t, "Ana", me.GetFields()["profile"].GetStructValue().GetFields()["username"].GetStringValue())
}
