package grpc

import (
	"errors"

	"github.com/dmitrijs2005/pchela/internal/loyalty"
	"github.com/dmitrijs2005/pchela/internal/profiles"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps domain errors to gRPC status errors.
func toStatus(err error) error {
	switch {
	case errors.Is(err, profiles.ErrNotFound):
		return status.Error(codes.NotFound, "profile not found")
	case errors.Is(err, profiles.ErrInvalidProfile),
		errors.Is(err, loyalty.ErrEmptyOrder),
		errors.Is(err, loyalty.ErrUnknownItem):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, profiles.ErrNotInitialized):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, loyalty.ErrProfileLimit):
		return status.Error(codes.ResourceExhausted, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
