package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/pchela/internal/auth"
	"github.com/dmitrijs2005/pchela/internal/common"
	"github.com/dmitrijs2005/pchela/internal/logging"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newInterceptorServer(secret string) *GRPCServer {
	return &GRPCServer{
		logger:    logging.Nop(),
		jwtSecret: []byte(secret),
	}
}

func incoming(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, token))
}

func TestInterceptor_PublicMethodSkipsToken(t *testing.T) {
	s := newInterceptorServer("secret")

	for _, m := range []string{MethodRegister, MethodMenu, MethodListProfiles} {
		called := false
		h := func(ctx context.Context, req any) (any, error) {
			called = true
			return "ok", nil
		}

		resp, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: m}, h)
		require.NoError(t, err, m)
		require.True(t, called, m)
		require.Equal(t, "ok", resp)
	}
}

func TestInterceptor_ProtectedMissingToken(t *testing.T) {
	s := newInterceptorServer("secret")

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: MethodMe}, h)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestInterceptor_ProtectedValidTokenInjectsProfileID(t *testing.T) {
	s := newInterceptorServer("secret")
	tok, err := auth.GenerateToken("profile_1_abc", []byte("secret"), time.Hour)
	require.NoError(t, err)

	var got string
	h := func(ctx context.Context, req any) (any, error) {
		got, _ = profileIDFromContext(ctx)
		return nil, nil
	}

	_, err = s.accessTokenInterceptor(incoming(tok), nil, &grpc.UnaryServerInfo{FullMethod: MethodPlaceOrder}, h)
	require.NoError(t, err)
	require.Equal(t, "profile_1_abc", got)
}

func TestInterceptor_ProtectedExpiredToken(t *testing.T) {
	s := newInterceptorServer("secret")
	tok, err := auth.GenerateToken("p", []byte("secret"), -time.Second)
	require.NoError(t, err)

	h := func(ctx context.Context, req any) (any, error) { return nil, nil }

	_, err = s.accessTokenInterceptor(incoming(tok), nil, &grpc.UnaryServerInfo{FullMethod: MethodDeleteMe}, h)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	require.Contains(t, status.Convert(err).Message(), "expired")
}

func TestHandlers_RequireProfileInContext(t *testing.T) {
	s := newInterceptorServer("secret")
	ctx := context.Background()

	_, err := s.Me(ctx, nil)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	_, err = s.PlaceOrder(ctx, nil)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
	_, err = s.DeleteMe(ctx, nil)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}
