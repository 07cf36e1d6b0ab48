package resolver

import (
	"context"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/app/models"
	"curebird-service/internal/app/services/core/routectx"
	"curebird-service/internal/pkg/constvars"
	"sync"

	"go.uber.org/zap"
)

// SessionResolver computes the session state of one portal session. It
// reacts to two event streams, identity changes from the credential provider
// and path changes from the session's history, and recomputes the state on
// every event.
//
// Each recomputation bumps the resolve epoch. Async results (the doctor
// lookup, patient snapshots) carry the epoch they were started under and are
// dropped when a newer recomputation has started since, so a stale lookup
// can never overwrite a fresher state.
type SessionResolver struct {
	PortalSessionID    string
	Classifier         *routectx.Classifier
	ProfileStore       contracts.ProfileStore
	CredentialProvider contracts.CredentialProvider
	History            contracts.HistorySource
	Log                *zap.Logger

	mu           sync.Mutex
	epoch        uint64
	identity     *models.Identity
	routeCtx     models.RouteContext
	state        models.SessionState
	patientUnsub contracts.UnsubscribeFunc
	observers    map[int]func(models.SessionState)
	nextObsID    int
	closed       bool

	unsubIdentity func()
	unsubHistory  func()
}

func NewSessionResolver(
	portalSessionID string,
	classifier *routectx.Classifier,
	profileStore contracts.ProfileStore,
	credentialProvider contracts.CredentialProvider,
	history contracts.HistorySource,
	logger *zap.Logger,
) *SessionResolver {
	r := &SessionResolver{
		PortalSessionID:    portalSessionID,
		Classifier:         classifier,
		ProfileStore:       profileStore,
		CredentialProvider: credentialProvider,
		History:            history,
		Log:                logger,
		state:              models.LoadingState(),
		observers:          make(map[int]func(models.SessionState)),
	}
	r.routeCtx = classifier.Classify(history.CurrentPath())

	r.unsubIdentity = credentialProvider.SubscribeIdentityChanges(portalSessionID, r.onIdentityChanged)
	r.unsubHistory = history.SubscribePathChanges(r.onPathChanged)

	r.resolve()
	return r
}

func (r *SessionResolver) State() models.SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *SessionResolver) RouteContext() models.RouteContext {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.routeCtx
}

// Subscribe registers a state observer and delivers the current state to it
// immediately. The returned function unsubscribes; calling it more than once
// is a no-op.
func (r *SessionResolver) Subscribe(callback func(models.SessionState)) func() {
	r.mu.Lock()
	obsID := r.nextObsID
	r.nextObsID++
	r.observers[obsID] = callback
	current := r.state
	r.mu.Unlock()

	callback(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.observers, obsID)
		})
	}
}

// Refresh recomputes the state from the current identity and path, the way
// a full page reload would. Used after onboarding writes so the new profile
// is picked up without waiting for another event.
func (r *SessionResolver) Refresh() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.routeCtx = r.Classifier.Classify(r.History.CurrentPath())
	r.mu.Unlock()

	r.resolve()
}

// Close tears the resolver down: both event subscriptions and any live
// profile subscription are cancelled and no further state changes fire.
func (r *SessionResolver) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.epoch++
	if r.patientUnsub != nil {
		r.patientUnsub()
		r.patientUnsub = nil
	}
	r.mu.Unlock()

	r.unsubIdentity()
	r.unsubHistory()
}

func (r *SessionResolver) onIdentityChanged(identity *models.Identity) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.identity = identity
	r.mu.Unlock()

	r.resolve()
}

func (r *SessionResolver) onPathChanged(path string) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	newCtx := r.Classifier.Classify(path)
	if newCtx == r.routeCtx {
		// Navigation within one context never resolves; only crossing the
		// boundary does.
		r.mu.Unlock()
		return
	}
	r.routeCtx = newCtx
	r.mu.Unlock()

	r.resolve()
}

func (r *SessionResolver) resolve() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.epoch++
	epoch := r.epoch
	if r.patientUnsub != nil {
		r.patientUnsub()
		r.patientUnsub = nil
	}
	identity := r.identity
	routeCtx := r.routeCtx
	r.mu.Unlock()

	if identity == nil {
		r.setState(epoch, models.UnauthenticatedState())
		return
	}

	r.setState(epoch, models.LoadingState())

	if routeCtx == models.DoctorContext {
		go r.lookupDoctor(epoch, identity)
		return
	}
	go r.subscribePatient(epoch, identity)
}

// lookupDoctor is the one-shot doctor resolution. A lookup failure is logged
// and falls through to onboarding rather than surfacing an error state.
func (r *SessionResolver) lookupDoctor(epoch uint64, identity *models.Identity) {
	profile, err := r.ProfileStore.GetDoctorProfile(context.Background(), identity.UID)
	if err != nil {
		r.Log.Warn("SessionResolver.lookupDoctor profile lookup failed, treating as onboarding",
			zap.String(constvars.LoggingIdentityUIDKey, identity.UID),
			zap.Uint64(constvars.LoggingResolveEpochKey, epoch),
			zap.Error(err),
		)
		r.setState(epoch, models.DoctorOnboardingState(identity))
		return
	}

	kind := models.AccountKindOfDoctor(profile)
	if kind.Tag == models.AccountKindDoctor {
		r.setState(epoch, models.DoctorActiveState(identity, kind.Doctor))
		return
	}
	// No document, or a document without the doctor role. Either way the
	// identity has no doctor account yet.
	r.setState(epoch, models.DoctorOnboardingState(identity))
}

// subscribePatient opens the live patient profile subscription. The snapshot
// callback keeps firing until the next resolve cancels it, so an onboarding
// write flips the state without any explicit refresh.
func (r *SessionResolver) subscribePatient(epoch uint64, identity *models.Identity) {
	unsubscribe, err := r.ProfileStore.SubscribePatientProfile(context.Background(), identity.UID, func(profile *models.PatientProfile) {
		r.onPatientSnapshot(epoch, identity, profile)
	})
	if err != nil {
		r.Log.Warn("SessionResolver.subscribePatient subscription failed, treating as onboarding",
			zap.String(constvars.LoggingIdentityUIDKey, identity.UID),
			zap.Uint64(constvars.LoggingResolveEpochKey, epoch),
			zap.Error(err),
		)
		r.setState(epoch, models.PatientOnboardingState(identity))
		return
	}

	r.mu.Lock()
	if r.closed || epoch != r.epoch {
		r.mu.Unlock()
		unsubscribe()
		return
	}
	r.patientUnsub = unsubscribe
	r.mu.Unlock()
}

func (r *SessionResolver) onPatientSnapshot(epoch uint64, identity *models.Identity, profile *models.PatientProfile) {
	kind := models.AccountKindOfPatient(profile)
	if kind.Tag != models.AccountKindPatient {
		r.setState(epoch, models.PatientOnboardingState(identity))
		return
	}
	r.setState(epoch, models.PatientActiveState(identity, kind.Patient))
}

// setState installs the state computed under the given epoch. Stale epochs
// are dropped. Observer callbacks run without the resolver lock held.
func (r *SessionResolver) setState(epoch uint64, state models.SessionState) {
	r.mu.Lock()
	if r.closed || epoch != r.epoch {
		r.mu.Unlock()
		return
	}
	r.state = state
	observers := make([]func(models.SessionState), 0, len(r.observers))
	for _, observer := range r.observers {
		observers = append(observers, observer)
	}
	r.mu.Unlock()

	r.Log.Debug("SessionResolver.setState state changed",
		zap.String(constvars.LoggingSessionStateKey, string(state.Phase)),
		zap.Uint64(constvars.LoggingResolveEpochKey, epoch),
	)

	for _, observer := range observers {
		observer(state)
	}
}
