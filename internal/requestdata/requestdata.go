package requestdata

import (
  "context"
  "github.com/google/uuid"
)

type RequestData struct {
  UserID        uuid.UUID
  TokenString   string
}

type contextKey struct{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, contextKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  rd, ok := ctx.Value(contextKey{}).(*RequestData)
  if !ok {
    return nil
  }
  return rd
}
