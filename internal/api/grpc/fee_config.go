package grpc

import (
	"context"

	"gearshare-backend/internal/service"

	"google.golang.org/protobuf/types/known/structpb"
)

type FeeConfigHandler struct {
	feeSvc service.FeeConfigService
}

func NewFeeConfigHandler(feeSvc service.FeeConfigService) *FeeConfigHandler {
	return &FeeConfigHandler{feeSvc: feeSvc}
}

func (h *FeeConfigHandler) GetActiveFeeConfig(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	cfg, err := h.feeSvc.Active(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]any{"fee_config": MapDomainFeeConfig(cfg)})
}

func (h *FeeConfigHandler) PublishFeeConfig(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	adminID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseFeeConfig(fieldsOf(req).object("fee_config"))
	if err != nil {
		return nil, err
	}

	if err := h.feeSvc.Publish(ctx, adminID, cfg); err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]any{"fee_config": MapDomainFeeConfig(cfg)})
}
