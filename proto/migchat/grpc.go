// ABOUTME: gRPC bindings for migchat.ChatRoomService: service descriptor,
// ABOUTME: server interface and client, in the shape protoc-gen-go-grpc emits

package migchat

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ChatRoomService_Register_FullMethodName       = "/migchat.ChatRoomService/Register"
	ChatRoomService_Logout_FullMethodName         = "/migchat.ChatRoomService/Logout"
	ChatRoomService_GetUsers_FullMethodName       = "/migchat.ChatRoomService/GetUsers"
	ChatRoomService_GetChats_FullMethodName       = "/migchat.ChatRoomService/GetChats"
	ChatRoomService_GetInvitations_FullMethodName = "/migchat.ChatRoomService/GetInvitations"
	ChatRoomService_GetPosts_FullMethodName       = "/migchat.ChatRoomService/GetPosts"
	ChatRoomService_CreateChat_FullMethodName     = "/migchat.ChatRoomService/CreateChat"
	ChatRoomService_InviteUser_FullMethodName     = "/migchat.ChatRoomService/InviteUser"
	ChatRoomService_EnterChat_FullMethodName      = "/migchat.ChatRoomService/EnterChat"
	ChatRoomService_LeaveChat_FullMethodName      = "/migchat.ChatRoomService/LeaveChat"
	ChatRoomService_CreatePost_FullMethodName     = "/migchat.ChatRoomService/CreatePost"
)

// ChatRoomServiceClient is the client API for ChatRoomService.
type ChatRoomServiceClient interface {
	Register(ctx context.Context, in *UserInfo, opts ...grpc.CallOption) (*RegistrationInfo, error)
	Logout(ctx context.Context, in *Registration, opts ...grpc.CallOption) (*Result, error)
	GetUsers(ctx context.Context, in *Registration, opts ...grpc.CallOption) (grpc.ServerStreamingClient[UpdateUsers], error)
	GetChats(ctx context.Context, in *Registration, opts ...grpc.CallOption) (grpc.ServerStreamingClient[UpdateChats], error)
	GetInvitations(ctx context.Context, in *Registration, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Invitation], error)
	GetPosts(ctx context.Context, in *Registration, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Post], error)
	CreateChat(ctx context.Context, in *ChatInfo, opts ...grpc.CallOption) (*Chat, error)
	InviteUser(ctx context.Context, in *Invitation, opts ...grpc.CallOption) (*Result, error)
	EnterChat(ctx context.Context, in *ChatReference, opts ...grpc.CallOption) (*Result, error)
	LeaveChat(ctx context.Context, in *ChatReference, opts ...grpc.CallOption) (*Result, error)
	CreatePost(ctx context.Context, in *Post, opts ...grpc.CallOption) (*Result, error)
}

type chatRoomServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewChatRoomServiceClient returns a client for ChatRoomService. The
// connection must carry the migchat Codec, either through
// grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec{})) at dial time or
// grpc.ForceCodec per call.
func NewChatRoomServiceClient(cc grpc.ClientConnInterface) ChatRoomServiceClient {
	return &chatRoomServiceClient{cc}
}

func (c *chatRoomServiceClient) Register(ctx context.Context, in *UserInfo, opts ...grpc.CallOption) (*RegistrationInfo, error) {
	out := new(RegistrationInfo)
	if err := c.cc.Invoke(ctx, ChatRoomService_Register_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatRoomServiceClient) Logout(ctx context.Context, in *Registration, opts ...grpc.CallOption) (*Result, error) {
	out := new(Result)
	if err := c.cc.Invoke(ctx, ChatRoomService_Logout_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatRoomServiceClient) GetUsers(ctx context.Context, in *Registration, opts ...grpc.CallOption) (grpc.ServerStreamingClient[UpdateUsers], error) {
	return serverStream[Registration, UpdateUsers](ctx, c.cc, &ChatRoomService_ServiceDesc.Streams[0], ChatRoomService_GetUsers_FullMethodName, in, opts)
}

func (c *chatRoomServiceClient) GetChats(ctx context.Context, in *Registration, opts ...grpc.CallOption) (grpc.ServerStreamingClient[UpdateChats], error) {
	return serverStream[Registration, UpdateChats](ctx, c.cc, &ChatRoomService_ServiceDesc.Streams[1], ChatRoomService_GetChats_FullMethodName, in, opts)
}

func (c *chatRoomServiceClient) GetInvitations(ctx context.Context, in *Registration, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Invitation], error) {
	return serverStream[Registration, Invitation](ctx, c.cc, &ChatRoomService_ServiceDesc.Streams[2], ChatRoomService_GetInvitations_FullMethodName, in, opts)
}

func (c *chatRoomServiceClient) GetPosts(ctx context.Context, in *Registration, opts ...grpc.CallOption) (grpc.ServerStreamingClient[Post], error) {
	return serverStream[Registration, Post](ctx, c.cc, &ChatRoomService_ServiceDesc.Streams[3], ChatRoomService_GetPosts_FullMethodName, in, opts)
}

func (c *chatRoomServiceClient) CreateChat(ctx context.Context, in *ChatInfo, opts ...grpc.CallOption) (*Chat, error) {
	out := new(Chat)
	if err := c.cc.Invoke(ctx, ChatRoomService_CreateChat_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatRoomServiceClient) InviteUser(ctx context.Context, in *Invitation, opts ...grpc.CallOption) (*Result, error) {
	out := new(Result)
	if err := c.cc.Invoke(ctx, ChatRoomService_InviteUser_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatRoomServiceClient) EnterChat(ctx context.Context, in *ChatReference, opts ...grpc.CallOption) (*Result, error) {
	out := new(Result)
	if err := c.cc.Invoke(ctx, ChatRoomService_EnterChat_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatRoomServiceClient) LeaveChat(ctx context.Context, in *ChatReference, opts ...grpc.CallOption) (*Result, error) {
	out := new(Result)
	if err := c.cc.Invoke(ctx, ChatRoomService_LeaveChat_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chatRoomServiceClient) CreatePost(ctx context.Context, in *Post, opts ...grpc.CallOption) (*Result, error) {
	out := new(Result)
	if err := c.cc.Invoke(ctx, ChatRoomService_CreatePost_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// serverStream opens a server-streaming call, sends the single request and
// half-closes, returning the receive side.
func serverStream[Req, Res any](ctx context.Context, cc grpc.ClientConnInterface, desc *grpc.StreamDesc, method string, in *Req, opts []grpc.CallOption) (grpc.ServerStreamingClient[Res], error) {
	stream, err := cc.NewStream(ctx, desc, method, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[Req, Res]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ChatRoomServiceServer is the server API for ChatRoomService.
type ChatRoomServiceServer interface {
	Register(ctx context.Context, in *UserInfo) (*RegistrationInfo, error)
	Logout(ctx context.Context, in *Registration) (*Result, error)
	GetUsers(in *Registration, stream grpc.ServerStreamingServer[UpdateUsers]) error
	GetChats(in *Registration, stream grpc.ServerStreamingServer[UpdateChats]) error
	GetInvitations(in *Registration, stream grpc.ServerStreamingServer[Invitation]) error
	GetPosts(in *Registration, stream grpc.ServerStreamingServer[Post]) error
	CreateChat(ctx context.Context, in *ChatInfo) (*Chat, error)
	InviteUser(ctx context.Context, in *Invitation) (*Result, error)
	EnterChat(ctx context.Context, in *ChatReference) (*Result, error)
	LeaveChat(ctx context.Context, in *ChatReference) (*Result, error)
	CreatePost(ctx context.Context, in *Post) (*Result, error)
}

// UnimplementedChatRoomServiceServer returns Unimplemented for every method.
// Embed it to be forward compatible with service additions.
type UnimplementedChatRoomServiceServer struct{}

func (UnimplementedChatRoomServiceServer) Register(context.Context, *UserInfo) (*RegistrationInfo, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedChatRoomServiceServer) Logout(context.Context, *Registration) (*Result, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedChatRoomServiceServer) GetUsers(*Registration, grpc.ServerStreamingServer[UpdateUsers]) error {
	return status.Error(codes.Unimplemented, "method GetUsers not implemented")
}
func (UnimplementedChatRoomServiceServer) GetChats(*Registration, grpc.ServerStreamingServer[UpdateChats]) error {
	return status.Error(codes.Unimplemented, "method GetChats not implemented")
}
func (UnimplementedChatRoomServiceServer) GetInvitations(*Registration, grpc.ServerStreamingServer[Invitation]) error {
	return status.Error(codes.Unimplemented, "method GetInvitations not implemented")
}
func (UnimplementedChatRoomServiceServer) GetPosts(*Registration, grpc.ServerStreamingServer[Post]) error {
	return status.Error(codes.Unimplemented, "method GetPosts not implemented")
}
func (UnimplementedChatRoomServiceServer) CreateChat(context.Context, *ChatInfo) (*Chat, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateChat not implemented")
}
func (UnimplementedChatRoomServiceServer) InviteUser(context.Context, *Invitation) (*Result, error) {
	return nil, status.Error(codes.Unimplemented, "method InviteUser not implemented")
}
func (UnimplementedChatRoomServiceServer) EnterChat(context.Context, *ChatReference) (*Result, error) {
	return nil, status.Error(codes.Unimplemented, "method EnterChat not implemented")
}
func (UnimplementedChatRoomServiceServer) LeaveChat(context.Context, *ChatReference) (*Result, error) {
	return nil, status.Error(codes.Unimplemented, "method LeaveChat not implemented")
}
func (UnimplementedChatRoomServiceServer) CreatePost(context.Context, *Post) (*Result, error) {
	return nil, status.Error(codes.Unimplemented, "method CreatePost not implemented")
}

// RegisterChatRoomServiceServer registers the service implementation with s.
// The server must be constructed with grpc.ForceServerCodec(Codec{}).
func RegisterChatRoomServiceServer(s grpc.ServiceRegistrar, srv ChatRoomServiceServer) {
	s.RegisterService(&ChatRoomService_ServiceDesc, srv)
}

func _ChatRoomService_Register_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(UserInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).Register(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ChatRoomService_Register_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatRoomServiceServer).Register(ctx, req.(*UserInfo))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_Logout_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Registration)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).Logout(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ChatRoomService_Logout_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatRoomServiceServer).Logout(ctx, req.(*Registration))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_CreateChat_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChatInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).CreateChat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ChatRoomService_CreateChat_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatRoomServiceServer).CreateChat(ctx, req.(*ChatInfo))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_InviteUser_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Invitation)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).InviteUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ChatRoomService_InviteUser_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatRoomServiceServer).InviteUser(ctx, req.(*Invitation))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_EnterChat_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChatReference)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).EnterChat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ChatRoomService_EnterChat_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatRoomServiceServer).EnterChat(ctx, req.(*ChatReference))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_LeaveChat_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ChatReference)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).LeaveChat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ChatRoomService_LeaveChat_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatRoomServiceServer).LeaveChat(ctx, req.(*ChatReference))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_CreatePost_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(Post)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChatRoomServiceServer).CreatePost(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ChatRoomService_CreatePost_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChatRoomServiceServer).CreatePost(ctx, req.(*Post))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChatRoomService_GetUsers_Handler(srv any, stream grpc.ServerStream) error {
	in := new(Registration)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(ChatRoomServiceServer).GetUsers(in, &grpc.GenericServerStream[Registration, UpdateUsers]{ServerStream: stream})
}

func _ChatRoomService_GetChats_Handler(srv any, stream grpc.ServerStream) error {
	in := new(Registration)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(ChatRoomServiceServer).GetChats(in, &grpc.GenericServerStream[Registration, UpdateChats]{ServerStream: stream})
}

func _ChatRoomService_GetInvitations_Handler(srv any, stream grpc.ServerStream) error {
	in := new(Registration)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(ChatRoomServiceServer).GetInvitations(in, &grpc.GenericServerStream[Registration, Invitation]{ServerStream: stream})
}

func _ChatRoomService_GetPosts_Handler(srv any, stream grpc.ServerStream) error {
	in := new(Registration)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(ChatRoomServiceServer).GetPosts(in, &grpc.GenericServerStream[Registration, Post]{ServerStream: stream})
}

// ChatRoomService_ServiceDesc is the grpc.ServiceDesc for ChatRoomService.
// The Streams order is relied on by the client constructors above.
var ChatRoomService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "migchat.ChatRoomService",
	HandlerType: (*ChatRoomServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler:    _ChatRoomService_Register_Handler,
		},
		{
			MethodName: "Logout",
			Handler:    _ChatRoomService_Logout_Handler,
		},
		{
			MethodName: "CreateChat",
			Handler:    _ChatRoomService_CreateChat_Handler,
		},
		{
			MethodName: "InviteUser",
			Handler:    _ChatRoomService_InviteUser_Handler,
		},
		{
			MethodName: "EnterChat",
			Handler:    _ChatRoomService_EnterChat_Handler,
		},
		{
			MethodName: "LeaveChat",
			Handler:    _ChatRoomService_LeaveChat_Handler,
		},
		{
			MethodName: "CreatePost",
			Handler:    _ChatRoomService_CreatePost_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "GetUsers",
			Handler:       _ChatRoomService_GetUsers_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "GetChats",
			Handler:       _ChatRoomService_GetChats_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "GetInvitations",
			Handler:       _ChatRoomService_GetInvitations_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "GetPosts",
			Handler:       _ChatRoomService_GetPosts_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "proto/migchat/migchat.proto",
}
