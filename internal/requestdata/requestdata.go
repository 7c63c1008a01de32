package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

// RequestData carries the authenticated caller through the request context.
// Row visibility and merge authorization read from here, never from globals.
type RequestData struct {
	UserID     uuid.UUID
	UserEmail  string
	Role       string
	LocationID *uuid.UUID
}

type traceDataKey struct{}

// TraceData ties log lines and response headers back to a single request.
type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	val := ctx.Value(traceDataKey{})
	if td, ok := val.(*TraceData); ok {
		return td
	}
	return nil
}

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

func (rd *RequestData) IsAdmin() bool {
	if rd == nil {
		return false
	}
	return rd.Role == RoleAdmin || rd.Role == RoleSuperAdmin
}
