package api

import (
	"context"
	"errors"
)

type keyType string

const userIDKey keyType = "userID"

// ctxWithUserID adds the authenticated user's id to the context
func ctxWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// ctxGetUserID retrieves the authenticated user's id from the context
func ctxGetUserID(ctx context.Context) (string, error) {
	value, ok := ctx.Value(userIDKey).(string)
	if !ok || value == "" {
		return "", errors.New("no user id in context")
	}
	return value, nil
}
