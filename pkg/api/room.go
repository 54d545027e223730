package api

type Member struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	// Role is "admin" or "member".
	Role     string `json:"role"`
	JoinedAt int64  `json:"joined_at"`
}

type Room struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	InviteCode  string    `json:"invite_code"`
	CreatedBy   string    `json:"created_by"`
	Members     []*Member `json:"members"`
	CreatedAt   int64     `json:"created_at"`
}

type CreateRoomRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type CreateRoomResponse struct {
	Room *Room `json:"room"`
}

type GetRoomRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

type GetRoomResponse struct {
	Room *Room `json:"room"`
}

type ListRoomsRequest struct{}

type ListRoomsResponse struct {
	Rooms []*Room `json:"rooms"`
}

type JoinRoomRequest struct {
	InviteCode string `json:"invite_code" validate:"required,max=16"`
}

type JoinRoomResponse struct {
	Room *Room `json:"room"`
}

type UpdateRoomRequest struct {
	RoomID      string `json:"room_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type UpdateRoomResponse struct {
	Room *Room `json:"room"`
}

type RemoveMemberRequest struct {
	RoomID string `json:"room_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
}

type RemoveMemberResponse struct {
	Room *Room `json:"room"`
}
