package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mohdrazakhan/oneroom/pkg/api"
)

// RoomServiceName is the fully-qualified name of the RoomService.
const RoomServiceName = "oneroom.v1.RoomService"

// Procedure paths, as used in HTTP routes and by interceptors.
const (
	RoomServiceCreateRoomProcedure   = "/" + RoomServiceName + "/CreateRoom"
	RoomServiceGetRoomProcedure      = "/" + RoomServiceName + "/GetRoom"
	RoomServiceListRoomsProcedure    = "/" + RoomServiceName + "/ListRooms"
	RoomServiceJoinRoomProcedure     = "/" + RoomServiceName + "/JoinRoom"
	RoomServiceUpdateRoomProcedure   = "/" + RoomServiceName + "/UpdateRoom"
	RoomServiceRemoveMemberProcedure = "/" + RoomServiceName + "/RemoveMember"
)

// RoomServiceHandler manages rooms and their membership.
type RoomServiceHandler interface {
	CreateRoom(context.Context, *connect.Request[api.CreateRoomRequest]) (*connect.Response[api.CreateRoomResponse], error)
	GetRoom(context.Context, *connect.Request[api.GetRoomRequest]) (*connect.Response[api.GetRoomResponse], error)
	ListRooms(context.Context, *connect.Request[api.ListRoomsRequest]) (*connect.Response[api.ListRoomsResponse], error)
	JoinRoom(context.Context, *connect.Request[api.JoinRoomRequest]) (*connect.Response[api.JoinRoomResponse], error)
	UpdateRoom(context.Context, *connect.Request[api.UpdateRoomRequest]) (*connect.Response[api.UpdateRoomResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error)
}

// NewRoomServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewRoomServiceHandler(svc RoomServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSON(opts)
	createRoomHandler := connect.NewUnaryHandler(RoomServiceCreateRoomProcedure, svc.CreateRoom, opts...)
	getRoomHandler := connect.NewUnaryHandler(RoomServiceGetRoomProcedure, svc.GetRoom, opts...)
	listRoomsHandler := connect.NewUnaryHandler(RoomServiceListRoomsProcedure, svc.ListRooms, opts...)
	joinRoomHandler := connect.NewUnaryHandler(RoomServiceJoinRoomProcedure, svc.JoinRoom, opts...)
	updateRoomHandler := connect.NewUnaryHandler(RoomServiceUpdateRoomProcedure, svc.UpdateRoom, opts...)
	removeMemberHandler := connect.NewUnaryHandler(RoomServiceRemoveMemberProcedure, svc.RemoveMember, opts...)
	return "/" + RoomServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case RoomServiceCreateRoomProcedure:
			createRoomHandler.ServeHTTP(w, r)
		case RoomServiceGetRoomProcedure:
			getRoomHandler.ServeHTTP(w, r)
		case RoomServiceListRoomsProcedure:
			listRoomsHandler.ServeHTTP(w, r)
		case RoomServiceJoinRoomProcedure:
			joinRoomHandler.ServeHTTP(w, r)
		case RoomServiceUpdateRoomProcedure:
			updateRoomHandler.ServeHTTP(w, r)
		case RoomServiceRemoveMemberProcedure:
			removeMemberHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// RoomServiceClient calls the RoomService.
type RoomServiceClient struct {
	createRoom   *connect.Client[api.CreateRoomRequest, api.CreateRoomResponse]
	getRoom      *connect.Client[api.GetRoomRequest, api.GetRoomResponse]
	listRooms    *connect.Client[api.ListRoomsRequest, api.ListRoomsResponse]
	joinRoom     *connect.Client[api.JoinRoomRequest, api.JoinRoomResponse]
	updateRoom   *connect.Client[api.UpdateRoomRequest, api.UpdateRoomResponse]
	removeMember *connect.Client[api.RemoveMemberRequest, api.RemoveMemberResponse]
}

// NewRoomServiceClient returns a client for the RoomService at baseURL, for example
// http://localhost:8080.
func NewRoomServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *RoomServiceClient {
	opts = withJSONClient(opts)
	return &RoomServiceClient{
		createRoom: connect.NewClient[api.CreateRoomRequest, api.CreateRoomResponse](httpClient, baseURL+RoomServiceCreateRoomProcedure, opts...),
		getRoom: connect.NewClient[api.GetRoomRequest, api.GetRoomResponse](httpClient, baseURL+RoomServiceGetRoomProcedure, opts...),
		listRooms: connect.NewClient[api.ListRoomsRequest, api.ListRoomsResponse](httpClient, baseURL+RoomServiceListRoomsProcedure, opts...),
		joinRoom: connect.NewClient[api.JoinRoomRequest, api.JoinRoomResponse](httpClient, baseURL+RoomServiceJoinRoomProcedure, opts...),
		updateRoom: connect.NewClient[api.UpdateRoomRequest, api.UpdateRoomResponse](httpClient, baseURL+RoomServiceUpdateRoomProcedure, opts...),
		removeMember: connect.NewClient[api.RemoveMemberRequest, api.RemoveMemberResponse](httpClient, baseURL+RoomServiceRemoveMemberProcedure, opts...),
	}
}

func (c *RoomServiceClient) CreateRoom(ctx context.Context, req *connect.Request[api.CreateRoomRequest]) (*connect.Response[api.CreateRoomResponse], error) {
	return c.createRoom.CallUnary(ctx, req)
}

func (c *RoomServiceClient) GetRoom(ctx context.Context, req *connect.Request[api.GetRoomRequest]) (*connect.Response[api.GetRoomResponse], error) {
	return c.getRoom.CallUnary(ctx, req)
}

func (c *RoomServiceClient) ListRooms(ctx context.Context, req *connect.Request[api.ListRoomsRequest]) (*connect.Response[api.ListRoomsResponse], error) {
	return c.listRooms.CallUnary(ctx, req)
}

func (c *RoomServiceClient) JoinRoom(ctx context.Context, req *connect.Request[api.JoinRoomRequest]) (*connect.Response[api.JoinRoomResponse], error) {
	return c.joinRoom.CallUnary(ctx, req)
}

func (c *RoomServiceClient) UpdateRoom(ctx context.Context, req *connect.Request[api.UpdateRoomRequest]) (*connect.Response[api.UpdateRoomResponse], error) {
	return c.updateRoom.CallUnary(ctx, req)
}

func (c *RoomServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}
