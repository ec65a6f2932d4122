package grpc_server

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"strings"

	"learnplatform/internal/domain"
	"learnplatform/internal/infrastructure/repository"
	"learnplatform/pkg/procpb"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const maxNameLength = 30

type UserStore interface {
	CreateAccount(ctx context.Context, user *domain.User) error
	GetByWallet(ctx context.Context, wallet string) (*domain.User, error)
}

type CourseStore interface {
	Featured(ctx context.Context) ([]domain.CourseCard, error)
}

var (
	_ UserStore   = (*repository.UserRepository)(nil)
	_ CourseStore = (*repository.CourseRepository)(nil)
)

type ProcedureServer struct {
	procpb.UnimplementedProceduresServer
	users   UserStore
	courses CourseStore
}

func NewProcedureServer(users UserStore, courses CourseStore) *ProcedureServer {
	return &ProcedureServer{users: users, courses: courses}
}

func (s *ProcedureServer) CreateStd(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.createAccount(ctx, req, domain.RoleStudent, "p_std_name")
}

func (s *ProcedureServer) CreateIns(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.createAccount(ctx, req, domain.RoleTeacher, "p_ins_name")
}

func (s *ProcedureServer) createAccount(ctx context.Context, req *structpb.Struct, role domain.Role, nameParam string) (*structpb.Struct, error) {
	p := req.GetFields()
	user := &domain.User{
		WalletAddress: strings.TrimSpace(p["p_wallet_address"].GetStringValue()),
		Username:      strings.TrimSpace(p["p_username"].GetStringValue()),
		FullName:      strings.TrimSpace(p[nameParam].GetStringValue()),
		Signature:     p["p_signature"].GetStringValue(),
		Role:          role,
	}

	switch {
	case user.WalletAddress == "":
		return nil, status.Error(codes.InvalidArgument, "p_wallet_address is required")
	case user.Username == "":
		return nil, status.Error(codes.InvalidArgument, "p_username is required")
	case user.Signature == "":
		return nil, status.Error(codes.InvalidArgument, "p_signature is required")
	case len([]rune(user.Username)) > maxNameLength || len([]rune(user.FullName)) > maxNameLength:
		return nil, status.Error(codes.InvalidArgument, "name fields are limited to 30 characters")
	}

	if err := s.users.CreateAccount(ctx, user); err != nil {
		switch {
		case errors.Is(err, domain.ErrWalletTaken):
			return nil, conflict(procpb.ReasonWalletTaken, "wallet already registered")
		case errors.Is(err, domain.ErrUsernameTaken):
			return nil, conflict(procpb.ReasonUsernameTaken, "username already taken")
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return nil, conflict(procpb.ReasonUserExists, "user already exists")
		}
		log.Printf("%s failed for %s: %v", nameParam, user.WalletAddress, err)
		return nil, status.Error(codes.Internal, "could not create account")
	}

	return structpb.NewStruct(map[string]interface{}{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
	})
}

func conflict(reason, msg string) error {
	st := status.New(codes.AlreadyExists, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason: reason,
		Domain: procpb.ErrorDomain,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

func (s *ProcedureServer) GetRoleByWallet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	wallet := req.GetFields()["p_wallet_address"].GetStringValue()
	if wallet == "" {
		return nil, status.Error(codes.InvalidArgument, "p_wallet_address is required")
	}

	user, err := s.users.GetByWallet(ctx, wallet)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, status.Error(codes.NotFound, "wallet is not registered")
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	return structpb.NewStruct(map[string]interface{}{
		"user_id":  user.ID.String(),
		"role":     string(user.Role),
		"username": user.Username,
	})
}

func (s *ProcedureServer) GetRelativeCourseData(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	cards, err := s.courses.Featured(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}

	rows := make([]interface{}, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, map[string]interface{}{
			"id":          c.ID.String(),
			"title":       c.Title,
			"description": c.Description,
			"thumbnail":   c.Thumbnail,
			"ins_name":    c.InsName,
		})
	}
	return structpb.NewStruct(map[string]interface{}{"courses": rows})
}

// APIKeyInterceptor rejects calls that do not carry the anon key in metadata.
func APIKeyInterceptor(key string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if !strings.HasPrefix(info.FullMethod, "/"+procpb.ServiceName+"/") {
			return handler(ctx, req)
		}
		md, _ := metadata.FromIncomingContext(ctx)
		vals := md.Get(procpb.APIKeyHeader)
		if len(vals) == 0 || subtle.ConstantTimeCompare([]byte(vals[0]), []byte(key)) != 1 {
			return nil, status.Error(codes.Unauthenticated, "missing or invalid api key")
		}
		return handler(ctx, req)
	}
}
