package cli

import (
	"context"

	"github.com/turtacn/MissionIntelligence/internal/application/scoring"
	"github.com/turtacn/MissionIntelligence/pkg/client"
	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
	scoringtypes "github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// Backend answers the CLI commands, either in-process or through a remote
// API server.
type Backend interface {
	StandardizeBrief(ctx context.Context, req *brief.Request) (*brief.StandardizationResult, error)
	CalculateComprehensiveScore(ctx context.Context, req *scoringtypes.ComprehensiveScoreRequest) (*scoringtypes.ComprehensiveScoreResult, error)
	RecommendPrice(ctx context.Context, req *scoringtypes.PriceRequest) (*scoringtypes.PriceResult, error)
	PredictSuccess(ctx context.Context, req *scoringtypes.SuccessRequest) (*scoringtypes.SuccessPrediction, error)
	Stats(ctx context.Context) (interface{}, error)
}

// localBackend runs the scoring service in-process. Its operations never fail.
type localBackend struct {
	svc *scoring.Service
}

func (b localBackend) StandardizeBrief(ctx context.Context, req *brief.Request) (*brief.StandardizationResult, error) {
	return b.svc.StandardizeBrief(ctx, req), nil
}

func (b localBackend) CalculateComprehensiveScore(ctx context.Context, req *scoringtypes.ComprehensiveScoreRequest) (*scoringtypes.ComprehensiveScoreResult, error) {
	return b.svc.CalculateComprehensiveScore(ctx, req), nil
}

func (b localBackend) RecommendPrice(ctx context.Context, req *scoringtypes.PriceRequest) (*scoringtypes.PriceResult, error) {
	return b.svc.RecommendPrice(ctx, req), nil
}

func (b localBackend) PredictSuccess(ctx context.Context, req *scoringtypes.SuccessRequest) (*scoringtypes.SuccessPrediction, error) {
	return b.svc.PredictSuccess(ctx, req), nil
}

func (b localBackend) Stats(context.Context) (interface{}, error) {
	return b.svc.Stats(), nil
}

// remoteBackend forwards every command to an API server.
type remoteBackend struct {
	*client.Client
}

func (b remoteBackend) Stats(ctx context.Context) (interface{}, error) {
	s, err := b.Client.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return s, nil
}

//Personal.AI order the ending
