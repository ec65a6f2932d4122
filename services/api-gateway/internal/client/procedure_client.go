package client

import (
	"context"
	"errors"
	"fmt"

	"learnplatform/internal/domain"
	"learnplatform/pkg/procpb"

	"github.com/google/uuid"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Account is what a create procedure or role lookup returns.
type Account struct {
	UserID   uuid.UUID
	Role     domain.Role
	Username string
}

type ProcedureClient struct {
	Client procpb.ProceduresClient
	conn   *grpc.ClientConn
}

func NewProcedureClient(url, apiKey string, opts ...grpc.DialOption) (*ProcedureClient, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(apiKeyInterceptor(apiKey)),
	}, opts...)

	cc, err := grpc.NewClient(url, opts...)
	if err != nil {
		return nil, err
	}

	return &ProcedureClient{
		Client: procpb.NewProceduresClient(cc),
		conn:   cc,
	}, nil
}

func (c *ProcedureClient) Close() error {
	return c.conn.Close()
}

func apiKeyInterceptor(key string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, procpb.APIKeyHeader, key)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// CreateAccount calls create_std or create_ins depending on role.
func (c *ProcedureClient) CreateAccount(ctx context.Context, role domain.Role, wallet, username, fullName, signature string) (*Account, error) {
	nameParam := "p_std_name"
	call := c.Client.CreateStd
	switch role {
	case domain.RoleStudent:
	case domain.RoleTeacher:
		nameParam = "p_ins_name"
		call = c.Client.CreateIns
	default:
		return nil, domain.ErrInvalidRole
	}

	params, err := structpb.NewStruct(map[string]interface{}{
		nameParam:          fullName,
		"p_signature":      signature,
		"p_username":       username,
		"p_wallet_address": wallet,
	})
	if err != nil {
		return nil, err
	}

	res, err := call(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}
	return account(res)
}

func (c *ProcedureClient) RoleByWallet(ctx context.Context, wallet string) (*Account, error) {
	params, err := structpb.NewStruct(map[string]interface{}{"p_wallet_address": wallet})
	if err != nil {
		return nil, err
	}

	res, err := c.Client.GetRoleByWallet(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}
	return account(res)
}

func (c *ProcedureClient) RelativeCourses(ctx context.Context) ([]domain.CourseCard, error) {
	res, err := c.Client.GetRelativeCourseData(ctx, &structpb.Struct{})
	if err != nil {
		return nil, mapError(err)
	}

	rows := res.GetFields()["courses"].GetListValue().GetValues()
	cards := make([]domain.CourseCard, 0, len(rows))
	for _, row := range rows {
		f := row.GetStructValue().GetFields()
		id, err := uuid.Parse(f["id"].GetStringValue())
		if err != nil {
			return nil, fmt.Errorf("course row: %w", err)
		}
		cards = append(cards, domain.CourseCard{
			ID:          id,
			Title:       f["title"].GetStringValue(),
			Description: f["description"].GetStringValue(),
			Thumbnail:   f["thumbnail"].GetStringValue(),
			InsName:     f["ins_name"].GetStringValue(),
		})
	}
	return cards, nil
}

func account(res *structpb.Struct) (*Account, error) {
	f := res.GetFields()
	id, err := uuid.Parse(f["user_id"].GetStringValue())
	if err != nil {
		return nil, fmt.Errorf("procedure returned bad user_id: %w", err)
	}
	role, err := domain.ParseRole(f["role"].GetStringValue())
	if err != nil {
		return nil, err
	}
	return &Account{UserID: id, Role: role, Username: f["username"].GetStringValue()}, nil
}

func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.NotFound:
		return domain.ErrUserNotFound
	case codes.AlreadyExists:
		for _, d := range st.Details() {
			info, ok := d.(*errdetails.ErrorInfo)
			if !ok {
				continue
			}
			switch info.Reason {
			case procpb.ReasonWalletTaken:
				return domain.ErrWalletTaken
			case procpb.ReasonUsernameTaken:
				return domain.ErrUsernameTaken
			}
		}
		return domain.ErrUserAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	}
	return fmt.Errorf("procedure call failed: %w", err)
}

// ErrRejected marks parameters the procedure refused.
var ErrRejected = errors.New("procedure rejected parameters")
