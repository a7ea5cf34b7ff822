package grpc

import (
	"context"

	"github.com/dmitrijs2005/pchela/internal/auth"
	"github.com/dmitrijs2005/pchela/internal/loyalty"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	s.logger.Info(ctx, "Registration request")

	p, err := s.loyalty.Register(ctx, stringField(req, "username"))
	if err != nil {
		s.logger.Error(ctx, "registration failed", "error", err)
		return nil, toStatus(err)
	}

	token, err := auth.GenerateToken(p.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.logger.Error(ctx, "token generation failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	s.logger.Info(ctx, "Registered", "id", p.ID)
	return structpb.NewStruct(map[string]any{
		"profile":      profileToMap(p),
		"access_token": token,
	})
}

func (s *GRPCServer) Me(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	id, ok := profileIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	p, err := s.loyalty.Profile(id)
	if err != nil {
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]any{
		"profile": profileToMap(p),
		"summary": summaryToMap(loyalty.Summarize(p)),
	})
}

func (s *GRPCServer) PlaceOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, ok := profileIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	res, err := s.loyalty.PlaceOrder(ctx, id, stringListField(req, "item_ids"), stringField(req, "details"))
	if err != nil {
		s.logger.Warn(ctx, "order rejected", "id", id, "error", err)
		return nil, toStatus(err)
	}
	return structpb.NewStruct(map[string]any{
		"profile":       profileToMap(res.Profile),
		"points_earned": res.PointsEarned,
		"summary":       summaryToMap(loyalty.Summarize(res.Profile)),
	})
}

func (s *GRPCServer) DeleteMe(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	id, ok := profileIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	if err := s.loyalty.Unregister(ctx, id); err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{}, nil
}

func (s *GRPCServer) ListProfiles(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	list := s.loyalty.Profiles()
	out := make([]any, 0, len(list))
	for _, p := range list {
		out = append(out, profileToMap(p))
	}
	return structpb.NewStruct(map[string]any{"profiles": out})
}

func (s *GRPCServer) Menu(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	items := s.loyalty.Catalog().Items()
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, itemToMap(it))
	}
	return structpb.NewStruct(map[string]any{"items": out})
}
