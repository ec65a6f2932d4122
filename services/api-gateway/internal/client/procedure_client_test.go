package client

import (
	"context"
	"net"
	"testing"

	"learnplatform/internal/domain"
	"learnplatform/pkg/procpb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakeProcedures struct {
	procpb.UnimplementedProceduresServer
	lastParams map[string]interface{}
	lastKey    string
	createErr  error
}

func (f *fakeProcedures) record(ctx context.Context, in *structpb.Struct) {
	f.lastParams = in.AsMap()
	md, _ := metadata.FromIncomingContext(ctx)
	if v := md.Get(procpb.APIKeyHeader); len(v) > 0 {
		f.lastKey = v[0]
	}
}

func (f *fakeProcedures) CreateStd(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f.record(ctx, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return structpb.NewStruct(map[string]interface{}{"user_id": uuid.NewString(), "role": "student"})
}

func (f *fakeProcedures) CreateIns(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f.record(ctx, in)
	return structpb.NewStruct(map[string]interface{}{"user_id": uuid.NewString(), "role": "teacher"})
}

func (f *fakeProcedures) GetRoleByWallet(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f.record(ctx, in)
	return nil, status.Error(codes.NotFound, "wallet is not registered")
}

func (f *fakeProcedures) GetRelativeCourseData(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"courses": []interface{}{
			map[string]interface{}{"id": uuid.NewString(), "title": "Art", "ins_name": "Tina"},
		},
	})
}

func dial(t *testing.T, fake *fakeProcedures) *ProcedureClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	procpb.RegisterProceduresServer(srv, fake)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	c, err := NewProcedureClient("passthrough:///bufnet", "anon-key",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCreateAccount_SendsProcedureParams(t *testing.T) {
	fake := &fakeProcedures{}
	c := dial(t, fake)

	acc, err := c.CreateAccount(context.Background(), domain.RoleTeacher, "walletT", "tina", "Tina T", "sig58")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTeacher, acc.Role)

	assert.Equal(t, "anon-key", fake.lastKey)
	assert.Equal(t, map[string]interface{}{
		"p_ins_name":       "Tina T",
		"p_signature":      "sig58",
		"p_username":       "tina",
		"p_wallet_address": "walletT",
	}, fake.lastParams)
}

func TestCreateAccount_MapsConflicts(t *testing.T) {
	st, err := status.New(codes.AlreadyExists, "taken").WithDetails(&errdetails.ErrorInfo{Reason: procpb.ReasonUsernameTaken})
	require.NoError(t, err)

	c := dial(t, &fakeProcedures{createErr: st.Err()})
	_, err = c.CreateAccount(context.Background(), domain.RoleStudent, "w", "alice", "", "s")
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = c.CreateAccount(context.Background(), domain.Role("admin"), "w", "alice", "", "s")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestRoleByWallet_NotFound(t *testing.T) {
	c := dial(t, &fakeProcedures{})
	_, err := c.RoleByWallet(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRelativeCourses(t *testing.T) {
	c := dial(t, &fakeProcedures{})
	cards, err := c.RelativeCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Art", cards[0].Title)
	assert.Equal(t, "Tina", cards[0].InsName)
}
