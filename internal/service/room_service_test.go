package service

import (
	"context"
	"strings"
	"testing"

	"connectrpc.com/connect"

	"github.com/mohdrazakhan/oneroom/pkg/api"
)

// createTestRoom creates a room owned by admin and joined by the others.
func createTestRoom(t *testing.T, c *testClients, admin string, others ...string) *api.Room {
	t.Helper()
	ctx := context.Background()

	resp, err := c.rooms.CreateRoom(ctx, as(admin, &api.CreateRoomRequest{Name: "Flat 4B"}))
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	room := resp.Msg.Room

	for _, user := range others {
		joined, err := c.rooms.JoinRoom(ctx, as(user, &api.JoinRoomRequest{InviteCode: room.InviteCode}))
		if err != nil {
			t.Fatalf("JoinRoom(%s) failed: %v", user, err)
		}
		room = joined.Msg.Room
	}
	return room
}

func TestCreateRoom(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := c.rooms.CreateRoom(context.Background(), as("alice", &api.CreateRoomRequest{
		Name:        "Flat 4B",
		Description: "Top floor",
	}))
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	room := resp.Msg.Room
	if room.ID == "" {
		t.Error("expected non-empty room ID")
	}
	if len(room.InviteCode) != 8 {
		t.Errorf("invite code: expected 8 characters, got %q", room.InviteCode)
	}
	if len(room.Members) != 1 || room.Members[0].UserID != "alice" || room.Members[0].Role != "admin" {
		t.Errorf("expected alice as sole admin, got %+v", room.Members)
	}
}

func TestCreateRoom_Unauthenticated(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := c.rooms.CreateRoom(context.Background(), connect.NewRequest(&api.CreateRoomRequest{Name: "Flat"}))
	expectCode(t, err, connect.CodeUnauthenticated)
}

func TestCreateRoom_MissingName(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := c.rooms.CreateRoom(context.Background(), as("alice", &api.CreateRoomRequest{}))
	expectCode(t, err, connect.CodeInvalidArgument)
	if kind := ErrorKind(err); kind != kindInvalidInput {
		t.Errorf("kind: expected %q, got %q", kindInvalidInput, kind)
	}
}

func TestJoinRoom(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	room := createTestRoom(t, c, "alice", "bob", "charlie")

	if len(room.Members) != 3 {
		t.Fatalf("members: expected 3, got %d", len(room.Members))
	}
	for i, want := range []string{"alice", "bob", "charlie"} {
		if room.Members[i].UserID != want {
			t.Errorf("member %d: expected %s, got %s", i, want, room.Members[i].UserID)
		}
	}
	if room.Members[1].Role != "member" {
		t.Errorf("expected joined user to be a member, got %s", room.Members[1].Role)
	}

	// Codes are case-insensitive.
	_, err := c.rooms.JoinRoom(context.Background(), as("bob", &api.JoinRoomRequest{InviteCode: strings.ToLower(room.InviteCode)}))
	expectCode(t, err, connect.CodeAlreadyExists)

	_, err = c.rooms.JoinRoom(context.Background(), as("dave", &api.JoinRoomRequest{InviteCode: "NOPE0000"}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestGetRoom_NonMember(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	room := createTestRoom(t, c, "alice")

	_, err := c.rooms.GetRoom(context.Background(), as("mallory", &api.GetRoomRequest{RoomID: room.ID}))
	expectCode(t, err, connect.CodePermissionDenied)

	_, err = c.rooms.GetRoom(context.Background(), as("alice", &api.GetRoomRequest{RoomID: "missing"}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestListRooms(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	createTestRoom(t, c, "alice", "bob")
	createTestRoom(t, c, "bob")
	createTestRoom(t, c, "charlie")

	resp, err := c.rooms.ListRooms(context.Background(), as("bob", &api.ListRoomsRequest{}))
	if err != nil {
		t.Fatalf("ListRooms failed: %v", err)
	}
	if len(resp.Msg.Rooms) != 2 {
		t.Errorf("rooms: expected 2, got %d", len(resp.Msg.Rooms))
	}
}

func TestUpdateRoom(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	room := createTestRoom(t, c, "alice", "bob")

	_, err := c.rooms.UpdateRoom(context.Background(), as("bob", &api.UpdateRoomRequest{RoomID: room.ID, Name: "Bob's"}))
	expectCode(t, err, connect.CodePermissionDenied)

	resp, err := c.rooms.UpdateRoom(context.Background(), as("alice", &api.UpdateRoomRequest{RoomID: room.ID, Name: "Flat 5C"}))
	if err != nil {
		t.Fatalf("UpdateRoom failed: %v", err)
	}
	if resp.Msg.Room.Name != "Flat 5C" {
		t.Errorf("name: expected 'Flat 5C', got '%s'", resp.Msg.Room.Name)
	}
}

func TestRemoveMember(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	room := createTestRoom(t, c, "alice", "bob", "charlie")

	// A member cannot remove someone else.
	_, err := c.rooms.RemoveMember(ctx, as("bob", &api.RemoveMemberRequest{RoomID: room.ID, UserID: "charlie"}))
	expectCode(t, err, connect.CodePermissionDenied)

	// A member can leave.
	resp, err := c.rooms.RemoveMember(ctx, as("bob", &api.RemoveMemberRequest{RoomID: room.ID, UserID: "bob"}))
	if err != nil {
		t.Fatalf("RemoveMember (self) failed: %v", err)
	}
	if len(resp.Msg.Room.Members) != 2 {
		t.Errorf("members: expected 2, got %d", len(resp.Msg.Room.Members))
	}

	// An admin can remove anyone.
	if _, err := c.rooms.RemoveMember(ctx, as("alice", &api.RemoveMemberRequest{RoomID: room.ID, UserID: "charlie"})); err != nil {
		t.Fatalf("RemoveMember (admin) failed: %v", err)
	}

	_, err = c.rooms.GetRoom(ctx, as("charlie", &api.GetRoomRequest{RoomID: room.ID}))
	expectCode(t, err, connect.CodePermissionDenied)
}

func TestRemoveMember_LastAdminLeaves(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	room := createTestRoom(t, c, "alice", "bob", "charlie")

	resp, err := c.rooms.RemoveMember(ctx, as("alice", &api.RemoveMemberRequest{RoomID: room.ID, UserID: "alice"}))
	if err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	members := resp.Msg.Room.Members
	if len(members) != 2 || members[0].UserID != "bob" || members[0].Role != "admin" || members[1].Role != "member" {
		t.Fatalf("expected bob promoted to admin, got %+v", members)
	}

	// The new admin can run admin-only operations.
	if _, err := c.rooms.UpdateRoom(ctx, as("bob", &api.UpdateRoomRequest{RoomID: room.ID, Name: "Flat 5C"})); err != nil {
		t.Fatalf("UpdateRoom by promoted admin failed: %v", err)
	}
	if _, err := c.tasks.RotateTasks(ctx, as("bob", &api.RotateTasksRequest{RoomID: room.ID})); err != nil {
		t.Fatalf("RotateTasks by promoted admin failed: %v", err)
	}
}
