package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mohdrazakhan/oneroom/pkg/api"
)

// TaskServiceName is the fully-qualified name of the TaskService.
const TaskServiceName = "oneroom.v1.TaskService"

// Procedure paths, as used in HTTP routes and by interceptors.
const (
	TaskServiceCreateTaskProcedure       = "/" + TaskServiceName + "/CreateTask"
	TaskServiceListTasksProcedure        = "/" + TaskServiceName + "/ListTasks"
	TaskServiceListMyTasksProcedure      = "/" + TaskServiceName + "/ListMyTasks"
	TaskServiceUpdateTaskStatusProcedure = "/" + TaskServiceName + "/UpdateTaskStatus"
	TaskServiceUpdateTaskProcedure       = "/" + TaskServiceName + "/UpdateTask"
	TaskServiceDeleteTaskProcedure       = "/" + TaskServiceName + "/DeleteTask"
	TaskServiceRotateTasksProcedure      = "/" + TaskServiceName + "/RotateTasks"
)

// TaskServiceHandler manages chores and their rotation.
type TaskServiceHandler interface {
	CreateTask(context.Context, *connect.Request[api.CreateTaskRequest]) (*connect.Response[api.CreateTaskResponse], error)
	ListTasks(context.Context, *connect.Request[api.ListTasksRequest]) (*connect.Response[api.ListTasksResponse], error)
	ListMyTasks(context.Context, *connect.Request[api.ListMyTasksRequest]) (*connect.Response[api.ListMyTasksResponse], error)
	UpdateTaskStatus(context.Context, *connect.Request[api.UpdateTaskStatusRequest]) (*connect.Response[api.UpdateTaskStatusResponse], error)
	UpdateTask(context.Context, *connect.Request[api.UpdateTaskRequest]) (*connect.Response[api.UpdateTaskResponse], error)
	DeleteTask(context.Context, *connect.Request[api.DeleteTaskRequest]) (*connect.Response[api.DeleteTaskResponse], error)
	RotateTasks(context.Context, *connect.Request[api.RotateTasksRequest]) (*connect.Response[api.RotateTasksResponse], error)
}

// NewTaskServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTaskServiceHandler(svc TaskServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withJSON(opts)
	createTaskHandler := connect.NewUnaryHandler(TaskServiceCreateTaskProcedure, svc.CreateTask, opts...)
	listTasksHandler := connect.NewUnaryHandler(TaskServiceListTasksProcedure, svc.ListTasks, opts...)
	listMyTasksHandler := connect.NewUnaryHandler(TaskServiceListMyTasksProcedure, svc.ListMyTasks, opts...)
	updateTaskStatusHandler := connect.NewUnaryHandler(TaskServiceUpdateTaskStatusProcedure, svc.UpdateTaskStatus, opts...)
	updateTaskHandler := connect.NewUnaryHandler(TaskServiceUpdateTaskProcedure, svc.UpdateTask, opts...)
	deleteTaskHandler := connect.NewUnaryHandler(TaskServiceDeleteTaskProcedure, svc.DeleteTask, opts...)
	rotateTasksHandler := connect.NewUnaryHandler(TaskServiceRotateTasksProcedure, svc.RotateTasks, opts...)
	return "/" + TaskServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case TaskServiceCreateTaskProcedure:
			createTaskHandler.ServeHTTP(w, r)
		case TaskServiceListTasksProcedure:
			listTasksHandler.ServeHTTP(w, r)
		case TaskServiceListMyTasksProcedure:
			listMyTasksHandler.ServeHTTP(w, r)
		case TaskServiceUpdateTaskStatusProcedure:
			updateTaskStatusHandler.ServeHTTP(w, r)
		case TaskServiceUpdateTaskProcedure:
			updateTaskHandler.ServeHTTP(w, r)
		case TaskServiceDeleteTaskProcedure:
			deleteTaskHandler.ServeHTTP(w, r)
		case TaskServiceRotateTasksProcedure:
			rotateTasksHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// TaskServiceClient calls the TaskService.
type TaskServiceClient struct {
	createTask       *connect.Client[api.CreateTaskRequest, api.CreateTaskResponse]
	listTasks        *connect.Client[api.ListTasksRequest, api.ListTasksResponse]
	listMyTasks      *connect.Client[api.ListMyTasksRequest, api.ListMyTasksResponse]
	updateTaskStatus *connect.Client[api.UpdateTaskStatusRequest, api.UpdateTaskStatusResponse]
	updateTask       *connect.Client[api.UpdateTaskRequest, api.UpdateTaskResponse]
	deleteTask       *connect.Client[api.DeleteTaskRequest, api.DeleteTaskResponse]
	rotateTasks      *connect.Client[api.RotateTasksRequest, api.RotateTasksResponse]
}

// NewTaskServiceClient returns a client for the TaskService at baseURL, for example
// http://localhost:8080.
func NewTaskServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TaskServiceClient {
	opts = withJSONClient(opts)
	return &TaskServiceClient{
		createTask: connect.NewClient[api.CreateTaskRequest, api.CreateTaskResponse](httpClient, baseURL+TaskServiceCreateTaskProcedure, opts...),
		listTasks: connect.NewClient[api.ListTasksRequest, api.ListTasksResponse](httpClient, baseURL+TaskServiceListTasksProcedure, opts...),
		listMyTasks: connect.NewClient[api.ListMyTasksRequest, api.ListMyTasksResponse](httpClient, baseURL+TaskServiceListMyTasksProcedure, opts...),
		updateTaskStatus: connect.NewClient[api.UpdateTaskStatusRequest, api.UpdateTaskStatusResponse](httpClient, baseURL+TaskServiceUpdateTaskStatusProcedure, opts...),
		updateTask: connect.NewClient[api.UpdateTaskRequest, api.UpdateTaskResponse](httpClient, baseURL+TaskServiceUpdateTaskProcedure, opts...),
		deleteTask: connect.NewClient[api.DeleteTaskRequest, api.DeleteTaskResponse](httpClient, baseURL+TaskServiceDeleteTaskProcedure, opts...),
		rotateTasks: connect.NewClient[api.RotateTasksRequest, api.RotateTasksResponse](httpClient, baseURL+TaskServiceRotateTasksProcedure, opts...),
	}
}

func (c *TaskServiceClient) CreateTask(ctx context.Context, req *connect.Request[api.CreateTaskRequest]) (*connect.Response[api.CreateTaskResponse], error) {
	return c.createTask.CallUnary(ctx, req)
}

func (c *TaskServiceClient) ListTasks(ctx context.Context, req *connect.Request[api.ListTasksRequest]) (*connect.Response[api.ListTasksResponse], error) {
	return c.listTasks.CallUnary(ctx, req)
}

func (c *TaskServiceClient) ListMyTasks(ctx context.Context, req *connect.Request[api.ListMyTasksRequest]) (*connect.Response[api.ListMyTasksResponse], error) {
	return c.listMyTasks.CallUnary(ctx, req)
}

func (c *TaskServiceClient) UpdateTaskStatus(ctx context.Context, req *connect.Request[api.UpdateTaskStatusRequest]) (*connect.Response[api.UpdateTaskStatusResponse], error) {
	return c.updateTaskStatus.CallUnary(ctx, req)
}

func (c *TaskServiceClient) UpdateTask(ctx context.Context, req *connect.Request[api.UpdateTaskRequest]) (*connect.Response[api.UpdateTaskResponse], error) {
	return c.updateTask.CallUnary(ctx, req)
}

func (c *TaskServiceClient) DeleteTask(ctx context.Context, req *connect.Request[api.DeleteTaskRequest]) (*connect.Response[api.DeleteTaskResponse], error) {
	return c.deleteTask.CallUnary(ctx, req)
}

func (c *TaskServiceClient) RotateTasks(ctx context.Context, req *connect.Request[api.RotateTasksRequest]) (*connect.Response[api.RotateTasksResponse], error) {
	return c.rotateTasks.CallUnary(ctx, req)
}
