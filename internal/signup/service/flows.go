package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/delveng/signup/internal/signup/domain"
	"github.com/delveng/signup/internal/signup/flow"
	"github.com/delveng/signup/internal/signup/store"
	"github.com/delveng/signup/pkg/idx"
	"github.com/delveng/signup/pkg/jwtx"
	"github.com/delveng/signup/pkg/regsdk"
	"github.com/delveng/signup/pkg/slogx"
)

var ErrFlowNotFound = errors.New("flow not found or expired")

type flowEntry struct {
	deviceID string
	journey  *flow.Journey
	lastSeen time.Time
}

// FlowService keeps every live signup journey in memory, one per flow id.
type FlowService struct {
	Registrar *regsdk.Client
	Profiles  flow.ProfileFetcher
	Slots     *TokenSlots
	Handles   *Handles
	Store     store.Store

	// IdleTTL is how long an untouched flow survives.
	IdleTTL time.Duration

	now   func() time.Time
	mu    sync.Mutex
	flows map[string]*flowEntry
}

func NewFlowService(reg *regsdk.Client, profiles flow.ProfileFetcher, slots *TokenSlots, handles *Handles, st store.Store, idleTTL time.Duration) *FlowService {
	if idleTTL <= 0 {
		idleTTL = jwtx.DefaultFlowTTL
	}
	return &FlowService{
		Registrar: reg,
		Profiles:  profiles,
		Slots:     slots,
		Handles:   handles,
		Store:     st,
		IdleTTL:   idleTTL,
		now:       time.Now,
		flows:     make(map[string]*flowEntry),
	}
}

// CreateFlow starts a journey on the welcome page. A still-valid previous
// handle keeps its device id, and with it the device's session token; the
// flow it named is dropped.
func (s *FlowService) CreateFlow(ctx context.Context, previousHandle string) (FlowHandle, flow.View, error) {
	log := slogx.FromContext(ctx)

	var deviceID string
	if previousHandle != "" {
		if claims, err := s.Handles.Verify(previousHandle); err == nil {
			deviceID = claims.DeviceID()
			s.drop(claims.FlowID())
		} else {
			log.Debug("ignoring previous flow handle", slog.Any("error", err))
		}
	}
	if deviceID == "" {
		deviceID = idx.New().String()
	}
	flowID := idx.New().String()

	registrar := s.Registrar.WithTokenStore(s.Slots.Slot(deviceID))
	journey := flow.NewJourney(flow.Deps{
		Registrar: registrar,
		Profiles:  s.Profiles,
		OnComplete: func(flow.Completion) {
			slog.Default().Info("signup completed", slog.String("flow_id", flowID), slog.String("device_id", deviceID))
		},
	})

	now := s.now()
	handle, err := s.Handles.Issue(deviceID, flowID, now)
	if err != nil {
		return FlowHandle{}, flow.View{}, err
	}

	s.mu.Lock()
	s.flows[flowID] = &flowEntry{deviceID: deviceID, journey: journey, lastSeen: now}
	s.mu.Unlock()

	log.Info("flow created", slog.String("flow_id", flowID), slog.String("device_id", deviceID))
	return handle, journey.View(), nil
}

// Journey returns the live journey for flowID if it belongs to deviceID.
func (s *FlowService) Journey(flowID, deviceID string) (*flow.Journey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.flows[flowID]
	if !ok || e.deviceID != deviceID {
		return nil, ErrFlowNotFound
	}

	now := s.now()
	if now.Sub(e.lastSeen) > s.IdleTTL {
		delete(s.flows, flowID)
		return nil, ErrFlowNotFound
	}
	e.lastSeen = now
	return e.journey, nil
}

// SubmitPreferences runs the final submission and records the attempt.
func (s *FlowService) SubmitPreferences(ctx context.Context, flowID, deviceID string, prefs domain.PreferencesDraft) (flow.View, error) {
	j, err := s.Journey(flowID, deviceID)
	if err != nil {
		return flow.View{}, err
	}
	ctrl, err := j.Signup()
	if err != nil {
		return j.View(), err
	}

	before := ctrl.Snapshot()
	err = ctrl.SubmitPreferences(ctx, prefs)
	if err == nil || flow.IsRemote(err) {
		s.recordAttempt(ctx, flowID, deviceID, before, err)
	}
	return j.View(), err
}

func (s *FlowService) recordAttempt(ctx context.Context, flowID, deviceID string, snap flow.Snapshot, err error) {
	a := store.Attempt{
		ID:        idx.New().String(),
		FlowID:    flowID,
		DeviceID:  deviceID,
		Email:     snap.Draft.Email,
		Origin:    string(snap.Origin),
		Outcome:   outcomeOf(err),
		CreatedAt: s.now().UTC(),
	}

	if rerr := s.Store.Attempts().RecordAttempt(ctx, a); rerr != nil {
		slogx.FromContext(ctx).Error("failed to record registration attempt", slog.Any("error", rerr))
	}
}

func outcomeOf(err error) store.Outcome {
	var (
		remote *flow.RemoteError
		netErr *regsdk.NetworkError
		valErr *regsdk.ValidationError
	)
	switch {
	case err == nil:
		return store.OutcomeAccepted
	case errors.As(err, &remote) && remote.Step == flow.StepExchange:
		return store.OutcomeExchangeFailed
	case errors.As(err, &netErr):
		return store.OutcomeNetworkError
	case errors.As(err, &valErr):
		return store.OutcomeInvalidFields
	default:
		return store.OutcomeRejected
	}
}

// SignOut forgets the device's registration API session token.
func (s *FlowService) SignOut(ctx context.Context, deviceID string) error {
	if err := s.Registrar.WithTokenStore(s.Slots.Slot(deviceID)).SignOut(ctx); err != nil {
		return err
	}
	slogx.FromContext(ctx).Info("session token cleared", slog.String("device_id", deviceID))
	return nil
}

// EvictIdle drops flows untouched for longer than IdleTTL and returns how many
// were removed.
func (s *FlowService) EvictIdle() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for id, e := range s.flows {
		if now.Sub(e.lastSeen) > s.IdleTTL {
			delete(s.flows, id)
			n++
		}
	}
	return n
}

// Len is the number of live flows.
func (s *FlowService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flows)
}

func (s *FlowService) drop(flowID string) {
	s.mu.Lock()
	delete(s.flows, flowID)
	s.mu.Unlock()
}
