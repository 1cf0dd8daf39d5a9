package service

import (
	"context"
)

// entitlementChecker is the slice of the entitlement service the access
// resolver needs.
type entitlementChecker interface {
	IsInstalled(ctx context.Context, userID, moduleID string) (bool, error)
}

// AccessService resolves feature keys to module entitlements.
type AccessService struct {
	featureMap   map[string]string
	entitlements entitlementChecker
}

// NewAccessService creates a new AccessService over the given feature-key
// to module-id map.
func NewAccessService(featureMap map[string]string, entitlements entitlementChecker) *AccessService {
	return &AccessService{
		featureMap:   featureMap,
		entitlements: entitlements,
	}
}

// AccessDecision is the result of a feature access check.
type AccessDecision struct {
	FeatureKey string `json:"featureKey"`
	ModuleID   string `json:"moduleId,omitempty"`
	Allowed    bool   `json:"allowed"`
}

// HasFeature reports whether the user may use the given feature. Keys not
// present in the feature map are not gated by any module and are always
// allowed.
func (s *AccessService) HasFeature(ctx context.Context, userID, featureKey string) (*AccessDecision, error) {
	moduleID, gated := s.featureMap[featureKey]
	if !gated {
		return &AccessDecision{FeatureKey: featureKey, Allowed: true}, nil
	}

	installed, err := s.entitlements.IsInstalled(ctx, userID, moduleID)
	if err != nil {
		return nil, err
	}
	return &AccessDecision{
		FeatureKey: featureKey,
		ModuleID:   moduleID,
		Allowed:    installed,
	}, nil
}
