package resolver

import (
	"context"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/app/models"
	"curebird-service/internal/app/services/core/routectx"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProfileStore struct {
	mu            sync.Mutex
	patients      map[string]*models.PatientProfile
	doctors       map[string]*models.DoctorProfile
	doctorErr     error
	doctorLookups int
	patientSubs   int
	unsubscribes  int
	snapshotFns   map[string][]func(*models.PatientProfile)
	blockDoctor   chan struct{}
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		patients:    make(map[string]*models.PatientProfile),
		doctors:     make(map[string]*models.DoctorProfile),
		snapshotFns: make(map[string][]func(*models.PatientProfile)),
	}
}

func (f *fakeProfileStore) GetPatientProfile(ctx context.Context, uid string) (*models.PatientProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.patients[uid], nil
}

func (f *fakeProfileStore) GetDoctorProfile(ctx context.Context, uid string) (*models.DoctorProfile, error) {
	f.mu.Lock()
	block := f.blockDoctor
	f.mu.Unlock()
	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.doctorLookups++
	if f.doctorErr != nil {
		return nil, f.doctorErr
	}
	return f.doctors[uid], nil
}

func (f *fakeProfileStore) SavePatientProfile(ctx context.Context, profile *models.PatientProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patients[profile.UID] = profile
	return nil
}

func (f *fakeProfileStore) SaveDoctorProfile(ctx context.Context, profile *models.DoctorProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doctors[profile.UID] = profile
	return nil
}

func (f *fakeProfileStore) SubscribePatientProfile(ctx context.Context, uid string, onSnapshot func(*models.PatientProfile)) (contracts.UnsubscribeFunc, error) {
	f.mu.Lock()
	f.patientSubs++
	f.snapshotFns[uid] = append(f.snapshotFns[uid], onSnapshot)
	current := f.patients[uid]
	f.mu.Unlock()

	onSnapshot(current)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unsubscribes++
	}, nil
}

// emitPatient simulates a document write being observed by the live
// subscription.
func (f *fakeProfileStore) emitPatient(uid string, profile *models.PatientProfile) {
	f.mu.Lock()
	f.patients[uid] = profile
	callbacks := append([]func(*models.PatientProfile){}, f.snapshotFns[uid]...)
	f.mu.Unlock()

	for _, callback := range callbacks {
		callback(profile)
	}
}

func (f *fakeProfileStore) doctorLookupCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doctorLookups
}

func (f *fakeProfileStore) unsubscribeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unsubscribes
}

type fakeCredentials struct {
	mu          sync.Mutex
	subscribers map[string][]func(*models.Identity)
}

func newFakeCredentials() *fakeCredentials {
	return &fakeCredentials{subscribers: make(map[string][]func(*models.Identity))}
}

func (f *fakeCredentials) SignInWithPassword(ctx context.Context, portalSessionID, email, password string) (*models.Identity, error) {
	return nil, nil
}

func (f *fakeCredentials) CreateAccountWithPassword(ctx context.Context, portalSessionID, email, password string) (*models.Identity, error) {
	return nil, nil
}

func (f *fakeCredentials) SignInWithFederatedAssertion(ctx context.Context, portalSessionID string, assertion *contracts.FederatedAssertion) (*models.Identity, error) {
	return nil, nil
}

func (f *fakeCredentials) ConfirmPhoneIdentity(ctx context.Context, portalSessionID, phoneNumber string) (*models.Identity, error) {
	return nil, nil
}

func (f *fakeCredentials) SignOut(ctx context.Context, portalSessionID string) error {
	f.emit(portalSessionID, nil)
	return nil
}

func (f *fakeCredentials) SubscribeIdentityChanges(portalSessionID string, callback func(*models.Identity)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribers[portalSessionID] = append(f.subscribers[portalSessionID], callback)
	return func() {}
}

func (f *fakeCredentials) emit(portalSessionID string, identity *models.Identity) {
	f.mu.Lock()
	callbacks := append([]func(*models.Identity){}, f.subscribers[portalSessionID]...)
	f.mu.Unlock()

	for _, callback := range callbacks {
		callback(identity)
	}
}

func newTestResolver(t *testing.T, store *fakeProfileStore, creds *fakeCredentials, initialPath string) (*SessionResolver, *routectx.MemoryHistory) {
	t.Helper()
	history := routectx.NewMemoryHistory(initialPath)
	classifier := routectx.NewClassifier("/doctor")
	r := NewSessionResolver("portal-1", classifier, store, creds, history, zap.NewNop())
	t.Cleanup(r.Close)
	return r, history
}

func eventuallyPhase(t *testing.T, r *SessionResolver, phase models.SessionPhase) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return r.State().Phase == phase
	}, time.Second, 5*time.Millisecond, "expected phase %s, got %s", phase, r.State().Phase)
}

func TestSessionResolver_StartsUnauthenticated(t *testing.T) {
	r, _ := newTestResolver(t, newFakeProfileStore(), newFakeCredentials(), "/")
	assert.Equal(t, models.PhaseUnauthenticated, r.State().Phase)
	assert.Equal(t, models.PatientContext, r.RouteContext())
}

func TestSessionResolver_PatientWithCompleteProfile(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()
	store.patients["uid-1"] = &models.PatientProfile{UID: "uid-1", FirstName: "Asha", IsProfileComplete: true}

	r, _ := newTestResolver(t, store, creds, "/")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})

	eventuallyPhase(t, r, models.PhasePatientActive)
	state := r.State()
	require.NotNil(t, state.PatientProfile)
	assert.Equal(t, "Asha", state.PatientProfile.FirstName)
}

func TestSessionResolver_PatientWithoutProfileGoesToOnboarding(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()

	r, _ := newTestResolver(t, store, creds, "/")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})

	eventuallyPhase(t, r, models.PhasePatientOnboarding)
}

func TestSessionResolver_OnboardingWriteFlipsStateWithoutRefresh(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()

	r, _ := newTestResolver(t, store, creds, "/")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})
	eventuallyPhase(t, r, models.PhasePatientOnboarding)

	// The live subscription observes the insert; no refresh is issued.
	store.emitPatient("uid-1", &models.PatientProfile{UID: "uid-1", IsProfileComplete: true})
	eventuallyPhase(t, r, models.PhasePatientActive)
}

func TestSessionResolver_IncompleteProfileStaysOnboarding(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()
	store.patients["uid-1"] = &models.PatientProfile{UID: "uid-1", IsProfileComplete: false}

	r, _ := newTestResolver(t, store, creds, "/")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})

	eventuallyPhase(t, r, models.PhasePatientOnboarding)
}

func TestSessionResolver_DoctorWithRole(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()
	store.doctors["uid-1"] = &models.DoctorProfile{UID: "uid-1", Role: "doctor", Name: "Dr. Rao"}

	r, _ := newTestResolver(t, store, creds, "/doctor")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})

	eventuallyPhase(t, r, models.PhaseDoctorActive)
	state := r.State()
	require.NotNil(t, state.DoctorProfile)
	assert.Equal(t, "Dr. Rao", state.DoctorProfile.Name)
}

func TestSessionResolver_DoctorWithoutDocumentGoesToOnboarding(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()

	r, _ := newTestResolver(t, store, creds, "/doctor")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})

	eventuallyPhase(t, r, models.PhaseDoctorOnboarding)
}

func TestSessionResolver_DoctorWithWrongRoleGoesToOnboarding(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()
	store.doctors["uid-1"] = &models.DoctorProfile{UID: "uid-1", Role: "receptionist"}

	r, _ := newTestResolver(t, store, creds, "/doctor")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})

	eventuallyPhase(t, r, models.PhaseDoctorOnboarding)
}

func TestSessionResolver_DoctorLookupFailureFallsOpenToOnboarding(t *testing.T) {
	store := newFakeProfileStore()
	store.doctorErr = assert.AnError
	creds := newFakeCredentials()

	r, _ := newTestResolver(t, store, creds, "/doctor")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})

	eventuallyPhase(t, r, models.PhaseDoctorOnboarding)
}

func TestSessionResolver_CrossingContextBoundaryResolves(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()
	store.patients["uid-1"] = &models.PatientProfile{UID: "uid-1", IsProfileComplete: true}
	store.doctors["uid-1"] = &models.DoctorProfile{UID: "uid-1", Role: "doctor"}

	r, history := newTestResolver(t, store, creds, "/")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})
	eventuallyPhase(t, r, models.PhasePatientActive)

	history.SetPath("/doctor/visits")
	eventuallyPhase(t, r, models.PhaseDoctorActive)

	history.SetPath("/records")
	eventuallyPhase(t, r, models.PhasePatientActive)
}

func TestSessionResolver_NavigationWithinContextDoesNotResolve(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()
	store.doctors["uid-1"] = &models.DoctorProfile{UID: "uid-1", Role: "doctor"}

	r, history := newTestResolver(t, store, creds, "/doctor")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})
	eventuallyPhase(t, r, models.PhaseDoctorActive)
	lookupsAfterSignIn := store.doctorLookupCount()

	history.SetPath("/doctor/visits")
	history.SetPath("/doctor/settings")

	assert.Equal(t, models.PhaseDoctorActive, r.State().Phase)
	assert.Equal(t, lookupsAfterSignIn, store.doctorLookupCount())
}

func TestSessionResolver_StaleDoctorLookupIsDropped(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()
	store.doctors["uid-1"] = &models.DoctorProfile{UID: "uid-1", Role: "doctor"}
	block := make(chan struct{})
	store.blockDoctor = block

	r, _ := newTestResolver(t, store, creds, "/doctor")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})
	assert.Equal(t, models.PhaseLoading, r.State().Phase)

	// Sign out while the lookup is still in flight, then release it. The
	// lookup result belongs to a dead epoch and must not resurface.
	creds.emit("portal-1", nil)
	eventuallyPhase(t, r, models.PhaseUnauthenticated)
	close(block)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, models.PhaseUnauthenticated, r.State().Phase)
}

func TestSessionResolver_SignOutCancelsPatientSubscription(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()
	store.patients["uid-1"] = &models.PatientProfile{UID: "uid-1", IsProfileComplete: true}

	r, _ := newTestResolver(t, store, creds, "/")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})
	eventuallyPhase(t, r, models.PhasePatientActive)

	creds.emit("portal-1", nil)
	eventuallyPhase(t, r, models.PhaseUnauthenticated)

	assert.Eventually(t, func() bool {
		return store.unsubscribeCount() == 1
	}, time.Second, 5*time.Millisecond)

	// A subsequent snapshot from the old subscription must not change state.
	store.emitPatient("uid-1", &models.PatientProfile{UID: "uid-1", IsProfileComplete: true})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, models.PhaseUnauthenticated, r.State().Phase)
}

func TestSessionResolver_RefreshReResolves(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()

	r, _ := newTestResolver(t, store, creds, "/doctor")
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})
	eventuallyPhase(t, r, models.PhaseDoctorOnboarding)

	store.mu.Lock()
	store.doctors["uid-1"] = &models.DoctorProfile{UID: "uid-1", Role: "doctor"}
	store.mu.Unlock()

	r.Refresh()
	eventuallyPhase(t, r, models.PhaseDoctorActive)
}

func TestSessionResolver_SubscribeDeliversCurrentAndSubsequentStates(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()

	r, _ := newTestResolver(t, store, creds, "/")

	var mu sync.Mutex
	var seen []models.SessionPhase
	unsubscribe := r.Subscribe(func(state models.SessionState) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, state.Phase)
	})

	creds.emit("portal-1", &models.Identity{UID: "uid-1"})
	eventuallyPhase(t, r, models.PhasePatientOnboarding)

	mu.Lock()
	require.NotEmpty(t, seen)
	assert.Equal(t, models.PhaseUnauthenticated, seen[0])
	assert.Contains(t, seen, models.PhasePatientOnboarding)
	count := len(seen)
	mu.Unlock()

	unsubscribe()
	creds.emit("portal-1", nil)
	eventuallyPhase(t, r, models.PhaseUnauthenticated)

	mu.Lock()
	assert.Equal(t, count, len(seen))
	mu.Unlock()
}

func TestSessionResolver_CloseStopsResolution(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()
	history := routectx.NewMemoryHistory("/")
	classifier := routectx.NewClassifier("/doctor")
	r := NewSessionResolver("portal-1", classifier, store, creds, history, zap.NewNop())

	r.Close()
	creds.emit("portal-1", &models.Identity{UID: "uid-1"})

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, models.PhaseUnauthenticated, r.State().Phase)
}

func TestSessionHub_LifecycleAndPathReporting(t *testing.T) {
	store := newFakeProfileStore()
	creds := newFakeCredentials()
	hub := NewSessionHub(routectx.NewClassifier("/doctor"), store, creds, zap.NewNop())
	defer hub.CloseAll()

	r := hub.GetOrCreate("portal-1", "/")
	assert.Same(t, r, hub.GetOrCreate("portal-1", "/doctor"))
	assert.Same(t, r, hub.Get("portal-1"))

	assert.True(t, hub.ReportPathChange("portal-1", "/doctor"))
	assert.Equal(t, models.DoctorContext, r.RouteContext())
	assert.False(t, hub.ReportPathChange("unknown", "/doctor"))

	hub.Remove("portal-1")
	assert.Nil(t, hub.Get("portal-1"))
}
