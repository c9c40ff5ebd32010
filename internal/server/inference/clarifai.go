// Package inference forwards image URLs to the external face-detection model
// and relays its answer.
package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Clarifai/clarifai-go-grpc/proto/clarifai/api"
	"github.com/Clarifai/clarifai-go-grpc/proto/clarifai/api/status"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/encoding/protojson"

	"github.com/dmitrijs2005/smartbrain/internal/common"
	"github.com/dmitrijs2005/smartbrain/internal/server/config"
)

// Gateway runs a detection model against an image URL and returns the raw
// model response.
type Gateway interface {
	Detect(ctx context.Context, imageURL string) (json.RawMessage, error)
}

// Field names and enum values are emitted the way the Clarifai REST API
// spells them (bounding_box, "code": 10000).
var relayJSON = protojson.MarshalOptions{UseProtoNames: true, UseEnumNumbers: true}

type ClarifaiClient struct {
	conn    *grpc.ClientConn
	v2      api.V2Client
	apiKey  string
	modelID string
	userID  string
	appID   string
	timeout time.Duration
}

// NewClarifaiClient prepares a client for cfg.InferenceAddr. Without opts the
// connection uses TLS with the system roots. No connection is made until the
// first Detect.
func NewClarifaiClient(cfg *config.Config, opts ...grpc.DialOption) (*ClarifaiClient, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(credentials.NewClientTLSFromCert(nil, ""))}
	}

	conn, err := grpc.NewClient(cfg.InferenceAddr, opts...)
	if err != nil {
		return nil, fmt.Errorf("inference client: %w", err)
	}

	return &ClarifaiClient{
		conn:    conn,
		v2:      api.NewV2Client(conn),
		apiKey:  cfg.InferenceAPIKey,
		modelID: cfg.InferenceModelID,
		userID:  cfg.InferenceUserID,
		appID:   cfg.InferenceAppID,
		timeout: cfg.InferenceTimeout,
	}, nil
}

func (c *ClarifaiClient) Close() error {
	return c.conn.Close()
}

// Detect asks the model for outputs on imageURL. A failed call, a
// non-success Clarifai status or an unencodable reply yields an error
// wrapping common.ErrUpstream.
func (c *ClarifaiClient) Detect(ctx context.Context, imageURL string) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Key "+c.apiKey)

	req := &api.PostModelOutputsRequest{
		ModelId: c.modelID,
		Inputs: []*api.Input{
			{Data: &api.Data{Image: &api.Image{Url: imageURL}}},
		},
	}
	if c.userID != "" || c.appID != "" {
		req.UserAppId = &api.UserAppIDSet{UserId: c.userID, AppId: c.appID}
	}

	resp, err := c.v2.PostModelOutputs(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUpstream, err)
	}
	if code := resp.GetStatus().GetCode(); code != status.StatusCode_SUCCESS {
		return nil, fmt.Errorf("%w: status %d %s", common.ErrUpstream, int32(code), resp.GetStatus().GetDescription())
	}

	b, err := relayJSON.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("%w: encode response: %v", common.ErrUpstream, err)
	}
	return json.RawMessage(b), nil
}
