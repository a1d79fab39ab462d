package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The gearshare.v1 services exchange google.protobuf.Struct messages, so the
// descriptors are declared here instead of generated from a .proto file.

const apiPackage = "gearshare.v1"

type AuthServiceServer interface {
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RefreshToken(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type BookingServiceServer interface {
	Quote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateBooking(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ConfirmBooking(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelBooking(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetContract(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type SessionServiceServer interface {
	GetSession(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Advance(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RequestPhotoUpload(context.Context, *structpb.Struct) (*structpb.Struct, error)
	OverrideIdentity(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type FeeConfigServiceServer interface {
	GetActiveFeeConfig(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PublishFeeConfig(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type NotificationServiceServer interface {
	GetNotifications(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MarkNotificationRead(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type structHandler func(context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryMethod adapts a Struct-in/Struct-out handler to grpc.MethodDesc,
// running the server's interceptor chain like generated code does.
func unaryMethod(service, name string, bind func(srv any) structHandler) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			h := bind(srv)
			if interceptor == nil {
				return h(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return h(ctx, req.(*structpb.Struct))
			})
		},
	}
}

func serviceDesc(name string, handlerType any, methods ...grpc.MethodDesc) grpc.ServiceDesc {
	return grpc.ServiceDesc{
		ServiceName: apiPackage + "." + name,
		HandlerType: handlerType,
		Methods:     methods,
		Streams:     []grpc.StreamDesc{},
		Metadata:    "gearshare/v1/" + name,
	}
}

var AuthServiceDesc = serviceDesc("AuthService", (*AuthServiceServer)(nil),
	unaryMethod("gearshare.v1.AuthService", "Login", func(srv any) structHandler { return srv.(AuthServiceServer).Login }),
	unaryMethod("gearshare.v1.AuthService", "RefreshToken", func(srv any) structHandler { return srv.(AuthServiceServer).RefreshToken }),
)

var BookingServiceDesc = serviceDesc("BookingService", (*BookingServiceServer)(nil),
	unaryMethod("gearshare.v1.BookingService", "Quote", func(srv any) structHandler { return srv.(BookingServiceServer).Quote }),
	unaryMethod("gearshare.v1.BookingService", "CreateBooking", func(srv any) structHandler { return srv.(BookingServiceServer).CreateBooking }),
	unaryMethod("gearshare.v1.BookingService", "ConfirmBooking", func(srv any) structHandler { return srv.(BookingServiceServer).ConfirmBooking }),
	unaryMethod("gearshare.v1.BookingService", "CancelBooking", func(srv any) structHandler { return srv.(BookingServiceServer).CancelBooking }),
	unaryMethod("gearshare.v1.BookingService", "GetContract", func(srv any) structHandler { return srv.(BookingServiceServer).GetContract }),
)

var SessionServiceDesc = serviceDesc("SessionService", (*SessionServiceServer)(nil),
	unaryMethod("gearshare.v1.SessionService", "GetSession", func(srv any) structHandler { return srv.(SessionServiceServer).GetSession }),
	unaryMethod("gearshare.v1.SessionService", "Advance", func(srv any) structHandler { return srv.(SessionServiceServer).Advance }),
	unaryMethod("gearshare.v1.SessionService", "RequestPhotoUpload", func(srv any) structHandler { return srv.(SessionServiceServer).RequestPhotoUpload }),
	unaryMethod("gearshare.v1.SessionService", "OverrideIdentity", func(srv any) structHandler { return srv.(SessionServiceServer).OverrideIdentity }),
)

var FeeConfigServiceDesc = serviceDesc("FeeConfigService", (*FeeConfigServiceServer)(nil),
	unaryMethod("gearshare.v1.FeeConfigService", "GetActiveFeeConfig", func(srv any) structHandler { return srv.(FeeConfigServiceServer).GetActiveFeeConfig }),
	unaryMethod("gearshare.v1.FeeConfigService", "PublishFeeConfig", func(srv any) structHandler { return srv.(FeeConfigServiceServer).PublishFeeConfig }),
)

var NotificationServiceDesc = serviceDesc("NotificationService", (*NotificationServiceServer)(nil),
	unaryMethod("gearshare.v1.NotificationService", "GetNotifications", func(srv any) structHandler { return srv.(NotificationServiceServer).GetNotifications }),
	unaryMethod("gearshare.v1.NotificationService", "MarkNotificationRead", func(srv any) structHandler { return srv.(NotificationServiceServer).MarkNotificationRead }),
)

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&BookingServiceDesc, srv)
}

func RegisterSessionServiceServer(s grpc.ServiceRegistrar, srv SessionServiceServer) {
	s.RegisterService(&SessionServiceDesc, srv)
}

func RegisterFeeConfigServiceServer(s grpc.ServiceRegistrar, srv FeeConfigServiceServer) {
	s.RegisterService(&FeeConfigServiceDesc, srv)
}

func RegisterNotificationServiceServer(s grpc.ServiceRegistrar, srv NotificationServiceServer) {
	s.RegisterService(&NotificationServiceDesc, srv)
}
