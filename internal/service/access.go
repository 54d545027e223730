package service

import (
	"context"
	"fmt"

	"github.com/mohdrazakhan/oneroom/internal/middleware"
	"github.com/mohdrazakhan/oneroom/internal/models"
	"github.com/mohdrazakhan/oneroom/internal/storage"
)

// callerID returns the authenticated user ID set by the auth interceptor.
func callerID(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", errUnauthenticated
	}
	return userID, nil
}

// memberRoom loads a room and checks that userID belongs to it.
func memberRoom(ctx context.Context, rooms storage.RoomStore, roomID, userID string) (*models.Room, error) {
	room, err := rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if _, ok := room.Member(userID); !ok {
		return nil, fmt.Errorf("room %s: %w", roomID, errNotMember)
	}
	return room, nil
}

// adminRoom is memberRoom for admin-only operations.
func adminRoom(ctx context.Context, rooms storage.RoomStore, roomID, userID string) (*models.Room, error) {
	room, err := memberRoom(ctx, rooms, roomID, userID)
	if err != nil {
		return nil, err
	}
	if !room.IsAdmin(userID) {
		return nil, fmt.Errorf("room %s: %w", roomID, errNotAdmin)
	}
	return room, nil
}
