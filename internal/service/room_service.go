package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/samber/lo"

	"github.com/mohdrazakhan/oneroom/internal/models"
	"github.com/mohdrazakhan/oneroom/internal/storage"
	"github.com/mohdrazakhan/oneroom/pkg/api"
)

// RoomService implements the Connect RoomService.
type RoomService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewRoomService creates a new RoomService with the given storage backend.
func NewRoomService(store storage.Store, logger *slog.Logger) *RoomService {
	return &RoomService{store: store, logger: logger}
}

// CreateRoom creates a room with the caller as its admin.
func (s *RoomService) CreateRoom(ctx context.Context, req *connect.Request[api.CreateRoomRequest]) (*connect.Response[api.CreateRoomResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateRoom", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "CreateRoom", err)
	}

	room := &models.Room{
		Name:        req.Msg.Name,
		Description: req.Msg.Description,
		CreatedBy:   userID,
		Members:     []models.Member{{UserID: userID, Role: models.RoleAdmin}},
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, toConnectError(s.logger, "CreateRoom", err)
	}

	// Re-read for member display names.
	created, err := s.store.GetRoom(ctx, room.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "CreateRoom", err)
	}

	s.logger.Info("Room created", "room_id", room.ID, "user_id", userID)
	return connect.NewResponse(&api.CreateRoomResponse{Room: toAPIRoom(created)}), nil
}

// GetRoom returns a room the caller belongs to.
func (s *RoomService) GetRoom(ctx context.Context, req *connect.Request[api.GetRoomRequest]) (*connect.Response[api.GetRoomResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "GetRoom", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "GetRoom", err)
	}

	room, err := memberRoom(ctx, s.store, req.Msg.RoomID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "GetRoom", err)
	}

	return connect.NewResponse(&api.GetRoomResponse{Room: toAPIRoom(room)}), nil
}

// ListRooms returns every room the caller belongs to.
func (s *RoomService) ListRooms(ctx context.Context, req *connect.Request[api.ListRoomsRequest]) (*connect.Response[api.ListRoomsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "ListRooms", err)
	}

	rooms, err := s.store.ListRoomsByMember(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "ListRooms", err)
	}

	return connect.NewResponse(&api.ListRoomsResponse{
		Rooms: lo.Map(rooms, func(r *models.Room, _ int) *api.Room { return toAPIRoom(r) }),
	}), nil
}

// JoinRoom adds the caller to the room an invite code belongs to.
func (s *RoomService) JoinRoom(ctx context.Context, req *connect.Request[api.JoinRoomRequest]) (*connect.Response[api.JoinRoomResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "JoinRoom", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "JoinRoom", err)
	}

	room, err := s.store.GetRoomByInviteCode(ctx, req.Msg.InviteCode)
	if err != nil {
		return nil, toConnectError(s.logger, "JoinRoom", err)
	}

	if err := s.store.AddMember(ctx, room.ID, models.Member{UserID: userID, Role: models.RoleMember}); err != nil {
		return nil, toConnectError(s.logger, "JoinRoom", err)
	}

	joined, err := s.store.GetRoom(ctx, room.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "JoinRoom", err)
	}

	s.logger.Info("Member joined room", "room_id", room.ID, "user_id", userID)
	return connect.NewResponse(&api.JoinRoomResponse{Room: toAPIRoom(joined)}), nil
}

// UpdateRoom renames a room. Admins only.
func (s *RoomService) UpdateRoom(ctx context.Context, req *connect.Request[api.UpdateRoomRequest]) (*connect.Response[api.UpdateRoomResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateRoom", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "UpdateRoom", err)
	}

	room, err := adminRoom(ctx, s.store, req.Msg.RoomID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "UpdateRoom", err)
	}

	room.Name = req.Msg.Name
	room.Description = req.Msg.Description
	if err := s.store.UpdateRoom(ctx, room); err != nil {
		return nil, toConnectError(s.logger, "UpdateRoom", err)
	}

	return connect.NewResponse(&api.UpdateRoomResponse{Room: toAPIRoom(room)}), nil
}

// RemoveMember removes a member. Admins may remove anyone; members may
// only remove themselves. Expenses and tasks of the member are kept.
// If the last admin leaves, the earliest-joined member takes over.
func (s *RoomService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, toConnectError(s.logger, "RemoveMember", err)
	}
	if err := api.Validate(req.Msg); err != nil {
		return nil, toConnectError(s.logger, "RemoveMember", err)
	}

	room, err := memberRoom(ctx, s.store, req.Msg.RoomID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, "RemoveMember", err)
	}
	if req.Msg.UserID != userID && !room.IsAdmin(userID) {
		return nil, toConnectError(s.logger, "RemoveMember", fmt.Errorf("remove %s: %w", req.Msg.UserID, errNotAdmin))
	}

	if err := s.store.RemoveMember(ctx, room.ID, req.Msg.UserID); err != nil {
		return nil, toConnectError(s.logger, "RemoveMember", err)
	}

	// Re-read: storage may have promoted a new admin.
	room, err = s.store.GetRoom(ctx, room.ID)
	if err != nil {
		return nil, toConnectError(s.logger, "RemoveMember", err)
	}

	s.logger.Info("Member removed", "room_id", room.ID, "user_id", req.Msg.UserID, "by", userID)
	return connect.NewResponse(&api.RemoveMemberResponse{Room: toAPIRoom(room)}), nil
}
