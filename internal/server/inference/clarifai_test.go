package inference

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/Clarifai/clarifai-go-grpc/proto/clarifai/api"
	"github.com/Clarifai/clarifai-go-grpc/proto/clarifai/api/status"
	"github.com/dmitrijs2005/smartbrain/internal/common"
	"github.com/dmitrijs2005/smartbrain/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"

	grpcstatus "google.golang.org/grpc/status"
)

type fakeV2 struct {
	api.UnimplementedV2Server

	mu      sync.Mutex
	gotReq  *api.PostModelOutputsRequest
	gotAuth []string

	resp  *api.MultiOutputResponse
	err   error
	block bool
}

func (f *fakeV2) PostModelOutputs(ctx context.Context, req *api.PostModelOutputsRequest) (*api.MultiOutputResponse, error) {
	md, _ := metadata.FromIncomingContext(ctx)

	f.mu.Lock()
	f.gotReq = req
	f.gotAuth = md.Get("authorization")
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.resp, f.err
}

func successResponse() *api.MultiOutputResponse {
	return &api.MultiOutputResponse{
		Status: &status.Status{Code: status.StatusCode_SUCCESS, Description: "Ok"},
		Outputs: []*api.Output{{
			Data: &api.Data{Regions: []*api.Region{{
				RegionInfo: &api.RegionInfo{BoundingBox: &api.BoundingBox{
					TopRow: 0.25, LeftCol: 0.5, BottomRow: 0.75, RightCol: 1,
				}},
			}}},
		}},
	}
}

// newClient serves f over an in-memory listener and returns a gateway
// pointed at it.
func newClient(t *testing.T, f *fakeV2, mutate func(*config.Config)) *ClarifaiClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	srv := grpc.NewServer()
	api.RegisterV2Server(srv, f)
	go func() { _ = srv.Serve(lis) }()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.InferenceAddr = "passthrough:///bufnet"
	cfg.InferenceAPIKey = "test-key"
	if mutate != nil {
		mutate(cfg)
	}

	c, err := NewClarifaiClient(cfg,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		srv.Stop()
	})
	return c
}

func TestDetect_RelaysResponse(t *testing.T) {
	f := &fakeV2{resp: successResponse()}
	c := newClient(t, f, nil)

	out, err := c.Detect(context.Background(), "https://example.com/face.jpg")
	require.NoError(t, err)

	var body struct {
		Status struct {
			Code        int    `json:"code"`
			Description string `json:"description"`
		} `json:"status"`
		Outputs []struct {
			Data struct {
				Regions []struct {
					RegionInfo struct {
						BoundingBox map[string]float64 `json:"bounding_box"`
					} `json:"region_info"`
				} `json:"regions"`
			} `json:"data"`
		} `json:"outputs"`
	}
	require.NoError(t, json.Unmarshal(out, &body))
	assert.Equal(t, 10000, body.Status.Code)
	assert.Equal(t, "Ok", body.Status.Description)
	require.Len(t, body.Outputs, 1)
	require.Len(t, body.Outputs[0].Data.Regions, 1)
	assert.Equal(t, map[string]float64{
		"top_row": 0.25, "left_col": 0.5, "bottom_row": 0.75, "right_col": 1,
	}, body.Outputs[0].Data.Regions[0].RegionInfo.BoundingBox)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, []string{"Key test-key"}, f.gotAuth)
	assert.Equal(t, config.DefaultModelID, f.gotReq.GetModelId())
	assert.Nil(t, f.gotReq.GetUserAppId())
	require.Len(t, f.gotReq.GetInputs(), 1)
	assert.Equal(t, "https://example.com/face.jpg", f.gotReq.GetInputs()[0].GetData().GetImage().GetUrl())
}

func TestDetect_SendsUserAppID(t *testing.T) {
	f := &fakeV2{resp: successResponse()}
	c := newClient(t, f, func(cfg *config.Config) {
		cfg.InferenceUserID = "clarifai"
		cfg.InferenceAppID = "main"
	})

	_, err := c.Detect(context.Background(), "https://example.com/a.png")
	require.NoError(t, err)

	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotNil(t, f.gotReq.GetUserAppId())
	assert.Equal(t, "clarifai", f.gotReq.GetUserAppId().GetUserId())
	assert.Equal(t, "main", f.gotReq.GetUserAppId().GetAppId())
}

func TestDetect_Failures(t *testing.T) {
	cases := []struct {
		name string
		f    *fakeV2
	}{
		{"rpc error", &fakeV2{err: grpcstatus.Error(codes.Unauthenticated, "bad key")}},
		{"non-success status", &fakeV2{resp: &api.MultiOutputResponse{
			Status: &status.Status{Code: status.StatusCode_FAILURE, Description: "Failure"},
		}}},
		{"missing status", &fakeV2{resp: &api.MultiOutputResponse{}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newClient(t, tc.f, nil)
			out, err := c.Detect(context.Background(), "https://example.com/a.png")
			assert.Nil(t, out)
			assert.ErrorIs(t, err, common.ErrUpstream)
		})
	}
}

func TestDetect_Unreachable(t *testing.T) {
	lis := bufconn.Listen(1 << 10)
	require.NoError(t, lis.Close())

	cfg := &config.Config{InferenceAddr: "passthrough:///bufnet", InferenceModelID: "m", InferenceTimeout: time.Second}
	c, err := NewClarifaiClient(cfg,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	_, err = c.Detect(context.Background(), "https://example.com/a.png")
	assert.ErrorIs(t, err, common.ErrUpstream)
}

func TestDetect_Timeout(t *testing.T) {
	c := newClient(t, &fakeV2{block: true}, func(cfg *config.Config) {
		cfg.InferenceTimeout = 20 * time.Millisecond
	})

	start := time.Now()
	_, err := c.Detect(context.Background(), "https://example.com/a.png")
	assert.ErrorIs(t, err, common.ErrUpstream)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestNewClarifaiClient_DefaultsToTLS(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()

	c, err := NewClarifaiClient(cfg)
	require.NoError(t, err)
	assert.Equal(t, "api.clarifai.com:443", c.conn.Target())
	require.NoError(t, c.Close())
}

var _ Gateway = (*ClarifaiClient)(nil)
