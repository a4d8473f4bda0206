package auth

//go:generate mockgen -source=bridge.go -destination=mocks/mocks.go -package=mocks SessionCache,TokenVault,Backend,AuditPublisher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"assetdesk/internal/auth/mocks"
	"assetdesk/internal/events"
	"assetdesk/internal/gateway"
	"assetdesk/internal/identity"
	identitymocks "assetdesk/internal/identity/mocks"
	"assetdesk/internal/profile"
	"assetdesk/internal/session"
	dErrors "assetdesk/pkg/domain-errors"
	"assetdesk/pkg/platform/audit"
	"assetdesk/pkg/platform/audit/store/memory"
	"assetdesk/pkg/platform/sentinel"
	"assetdesk/pkg/requestcontext"
)

// =============================================================================
// Auth Bridge Test Suite
// =============================================================================
// Justification for unit tests: the bridge sequences provider, backend and
// cache calls with partial-failure rules (best-effort steps, fail-closed login,
// split registration) that only show up by controlling each collaborator.
// Provider and backend are mocked; the cache and vault are the real in-memory
// implementations so assertions read the state a later request would see.

type BridgeSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	provider *identitymocks.MockProvider
	backend  *mocks.MockBackend
	auditor  *mocks.MockAuditPublisher
	history  *memory.InMemoryStore
	cache    *session.Cache
	vault    *session.Vault
	bridge   *Bridge
	listener identity.Listener

	mu      sync.Mutex
	emitted []audit.Event
}

func TestBridgeSuite(t *testing.T) {
	suite.Run(t, new(BridgeSuite))
}

func (s *BridgeSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.provider = identitymocks.NewMockProvider(s.ctrl)
	s.backend = mocks.NewMockBackend(s.ctrl)
	s.auditor = mocks.NewMockAuditPublisher(s.ctrl)
	s.history = memory.NewInMemoryStore()
	s.emitted = nil

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sealer, err := session.NewSealer("bridge-test-secret")
	s.Require().NoError(err)
	durable := session.NewMemoryStore()
	s.vault = session.NewVault(session.NewMemoryStore(), durable, sealer, time.Hour)
	s.cache = session.NewCache(durable, s.vault, events.NewBus(logger), time.Hour)

	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, e audit.Event) error {
		s.mu.Lock()
		s.emitted = append(s.emitted, e)
		s.mu.Unlock()
		return s.history.Append(ctx, e)
	}).AnyTimes()
	s.provider.EXPECT().OnSessionChange(gomock.Any()).DoAndReturn(func(fn identity.Listener) func() {
		s.listener = fn
		return func() {}
	})

	s.bridge, err = New(s.provider, s.backend, s.cache, s.vault,
		WithLogger(logger),
		WithAuditPublisher(s.auditor),
		WithActivityReader(s.history),
		WithRevalidateInterval(time.Minute),
	)
	s.Require().NoError(err)
	s.bridge.Initialize(context.Background())
}

// =============================================================================
// Helpers
// =============================================================================

func (s *BridgeSuite) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.emitted))
	for _, e := range s.emitted {
		out = append(out, e.Action+":"+e.Reason)
	}
	return out
}

func hrPrincipal() identity.Principal {
	return identity.Principal{UserID: "kid-1", SessionToken: "kt-1", Email: "boss@acme.io", Name: "Boss"}
}

func notFound() error {
	return dErrors.Wrap(sentinel.ErrNotFound, dErrors.CodeNotFound, "user not found")
}

func unreachable() error {
	return dErrors.Wrap(sentinel.ErrUnavailable, dErrors.CodeUnavailable, "backend unreachable")
}

// loginHR signs sessionID in as an HR manager.
func (s *BridgeSuite) loginHR(sessionID string) Result {
	s.provider.EXPECT().SignIn(gomock.Any(), "boss@acme.io", "pw").Return(hrPrincipal(), nil)
	s.backend.EXPECT().UserByEmail(gomock.Any(), "boss@acme.io").Return(profile.Record{
		ID: "u1", Email: "boss@acme.io", Role: "HR", CompanyName: "Acme",
	}, nil)
	s.backend.EXPECT().Login(gomock.Any(), gateway.LoginRequest{UID: "kid-1", Email: "boss@acme.io"}).Return("bt-1", nil)

	res, err := s.bridge.Login(context.Background(), sessionID, Credentials{Email: " Boss@Acme.io ", Password: "pw", Remember: true})
	s.Require().NoError(err)
	return res
}

func (s *BridgeSuite) requireSignedOut(sessionID string) {
	ctx := context.Background()
	_, err := s.cache.LoadRecord(ctx, sessionID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.vault.Lookup(ctx, sessionID, session.TokenBackend)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.vault.Lookup(ctx, sessionID, session.TokenProvider)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// =============================================================================
// Constructor Tests (Invariant Enforcement)
// =============================================================================

func (s *BridgeSuite) TestNew() {
	s.Run("nil provider returns error", func() {
		_, err := New(nil, s.backend, s.cache, s.vault)
		s.ErrorContains(err, "identity provider is required")
	})

	s.Run("nil backend returns error", func() {
		_, err := New(s.provider, nil, s.cache, s.vault)
		s.ErrorContains(err, "backend is required")
	})

	s.Run("nil cache returns error", func() {
		_, err := New(s.provider, s.backend, nil, s.vault)
		s.ErrorContains(err, "session cache is required")
	})

	s.Run("nil vault returns error", func() {
		_, err := New(s.provider, s.backend, s.cache, nil)
		s.ErrorContains(err, "token vault is required")
	})
}

// =============================================================================
// Login Tests
// =============================================================================

func (s *BridgeSuite) TestLogin() {
	ctx := context.Background()

	s.Run("success persists profile and both tokens", func() {
		res := s.loginHR("s-login")

		s.Equal("/hr/home", res.Home)
		s.Zero(res.RedirectAfter)
		s.Empty(res.Degraded)

		rec, err := s.cache.LoadRecord(ctx, "s-login")
		s.Require().NoError(err)
		s.Equal("HR", rec.Role)
		s.Equal("Boss", rec.Name)
		s.Equal("Acme", rec.CompanyName)

		tok, err := s.vault.Lookup(ctx, "s-login", session.TokenBackend)
		s.Require().NoError(err)
		s.Equal("bt-1", tok)
		tok, err = s.vault.Lookup(ctx, "s-login", session.TokenProvider)
		s.Require().NoError(err)
		s.Equal("kt-1", tok)

		s.Contains(s.actions(), "login_succeeded:")
	})

	s.Run("a nameless account gets a name from its address", func() {
		s.provider.EXPECT().SignIn(gomock.Any(), "ada.lovelace@acme.io", "pw").
			Return(identity.Principal{UserID: "kid-9", SessionToken: "kt-9", Email: "ada.lovelace@acme.io"}, nil)
		s.backend.EXPECT().UserByEmail(gomock.Any(), "ada.lovelace@acme.io").
			Return(profile.Record{Email: "ada.lovelace@acme.io", Role: "Employee"}, nil)
		s.backend.EXPECT().Login(gomock.Any(), gomock.Any()).Return("bt-9", nil)

		res, err := s.bridge.Login(ctx, "s-nameless", Credentials{Email: "ada.lovelace@acme.io", Password: "pw"})
		s.Require().NoError(err)
		s.Equal("Ada Lovelace", res.Profile.Details().Name)

		rec, err := s.cache.LoadRecord(ctx, "s-nameless")
		s.Require().NoError(err)
		s.Equal("Ada Lovelace", rec.Name)
	})

	s.Run("malformed email never reaches the provider", func() {
		_, err := s.bridge.Login(ctx, "s-bad", Credentials{Email: "not-an-email", Password: "pw"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("wrong password maps to the fixed message", func() {
		s.provider.EXPECT().SignIn(gomock.Any(), "a@x.com", "nope").
			Return(identity.Principal{}, &identity.Error{Code: identity.CodeWrongCredential})

		_, err := s.bridge.Login(ctx, "s-wrong", Credentials{Email: "a@x.com", Password: "nope"})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
		de, ok := dErrors.As(err)
		s.Require().True(ok)
		s.Equal("Incorrect password. Please try again.", de.Message)
		s.Contains(s.actions(), "login_rejected:wrong_credential")
	})

	s.Run("provider account without backend record must register first", func() {
		s.provider.EXPECT().SignIn(gomock.Any(), "ghost@x.com", "pw").
			Return(identity.Principal{UserID: "kid-9", SessionToken: "kt-9", Email: "ghost@x.com"}, nil)
		s.backend.EXPECT().UserByEmail(gomock.Any(), "ghost@x.com").Return(profile.Record{}, notFound())
		s.provider.EXPECT().SignOut(gomock.Any(), "kt-9").Return(nil)

		_, err := s.bridge.Login(ctx, "s-ghost", Credentials{Email: "ghost@x.com", Password: "pw"})
		s.ErrorIs(err, ErrRegisterFirst)
		s.Contains(err.Error(), "register first")
		s.requireSignedOut("s-ghost")
		s.Contains(s.actions(), "login_rejected:no_backend_record")
	})

	s.Run("empty backend record must register first", func() {
		s.provider.EXPECT().SignIn(gomock.Any(), "blank@x.com", "pw").
			Return(identity.Principal{UserID: "kid-8", SessionToken: "kt-8", Email: "blank@x.com"}, nil)
		s.backend.EXPECT().UserByEmail(gomock.Any(), "blank@x.com").Return(profile.Record{}, nil)
		s.provider.EXPECT().SignOut(gomock.Any(), "kt-8").Return(nil)

		res, err := s.bridge.Login(ctx, "s-blank", Credentials{Email: "blank@x.com", Password: "pw"})
		s.ErrorIs(err, ErrRegisterFirst)
		s.Empty(res.Home)
		s.requireSignedOut("s-blank")
	})

	s.Run("unreachable backend fails closed", func() {
		s.provider.EXPECT().SignIn(gomock.Any(), "a@x.com", "pw").
			Return(identity.Principal{SessionToken: "kt-2", Email: "a@x.com"}, nil)
		s.backend.EXPECT().UserByEmail(gomock.Any(), "a@x.com").Return(profile.Record{}, unreachable())
		s.provider.EXPECT().SignOut(gomock.Any(), "kt-2").Return(nil)

		_, err := s.bridge.Login(ctx, "s-down", Credentials{Email: "a@x.com", Password: "pw"})
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
		s.requireSignedOut("s-down")
	})

	s.Run("missing backend token degrades but signs in", func() {
		s.provider.EXPECT().SignIn(gomock.Any(), "a@x.com", "pw").
			Return(identity.Principal{UserID: "kid-3", SessionToken: "kt-3", Email: "a@x.com"}, nil)
		s.backend.EXPECT().UserByEmail(gomock.Any(), "a@x.com").
			Return(profile.Record{Email: "a@x.com", Role: "Employee"}, nil)
		s.backend.EXPECT().Login(gomock.Any(), gomock.Any()).Return("", unreachable())

		res, err := s.bridge.Login(ctx, "s-notoken", Credentials{Email: "a@x.com", Password: "pw"})
		s.Require().NoError(err)
		s.Equal("/employee/home", res.Home)
		s.Equal([]string{"backend_token"}, res.Degraded)

		_, err = s.vault.Lookup(ctx, "s-notoken", session.TokenBackend)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("unrecognized backend role lands on the generic home", func() {
		s.provider.EXPECT().SignIn(gomock.Any(), "odd@x.com", "pw").
			Return(identity.Principal{SessionToken: "kt-4", Email: "odd@x.com"}, nil)
		s.backend.EXPECT().UserByEmail(gomock.Any(), "odd@x.com").
			Return(profile.Record{Email: "odd@x.com", Role: "Contractor"}, nil)
		s.backend.EXPECT().Login(gomock.Any(), gomock.Any()).Return("bt-4", nil)

		res, err := s.bridge.Login(ctx, "s-odd", Credentials{Email: "odd@x.com", Password: "pw"})
		s.Require().NoError(err)
		s.Equal("/", res.Home)
	})
}

// =============================================================================
// Register Tests
// =============================================================================

func (s *BridgeSuite) TestRegister() {
	ctx := context.Background()
	staff := Registration{Name: "A", Email: "a@x.com", Password: "secret1", DateOfBirth: "2000-01-01"}

	s.Run("staff registration caches the employee and redirects after the delay", func() {
		principal := identity.Principal{UserID: "kid-a", SessionToken: "kt-a", Email: "a@x.com"}
		named := principal
		named.Name = "A"

		s.provider.EXPECT().CreateAccount(gomock.Any(), "a@x.com", "secret1").Return(principal, nil)
		s.provider.EXPECT().UpdateProfile(gomock.Any(), "kt-a", "A", "").Return(named, nil)
		s.backend.EXPECT().CreateUser(gomock.Any(), profile.Record{
			Email: "a@x.com", Name: "A", DateOfBirth: "2000-01-01", Role: "Employee",
		}).DoAndReturn(func(_ context.Context, rec profile.Record) (profile.Record, error) {
			rec.ID = "u-a"
			return rec, nil
		})
		s.backend.EXPECT().Login(gomock.Any(), gateway.LoginRequest{UID: "kid-a", Email: "a@x.com"}).Return("bt-a", nil)

		res, err := s.bridge.Register(ctx, "s-reg", profile.RoleEmployee, staff)
		s.Require().NoError(err)
		s.Equal("/employee/home", res.Home)
		s.Equal(1500*time.Millisecond, res.RedirectAfter)

		rec, err := s.cache.LoadRecord(ctx, "s-reg")
		s.Require().NoError(err)
		s.Equal("Employee", rec.Role)
		s.Equal("u-a", rec.ID)
		s.Contains(s.actions(), "registration_completed:")
	})

	s.Run("short password is rejected locally", func() {
		reg := staff
		reg.Password = "12345"
		_, err := s.bridge.Register(ctx, "s-weak", profile.RoleEmployee, reg)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		de, _ := dErrors.As(err)
		s.Equal("Password should be at least 6 characters.", de.Message)
	})

	s.Run("hr registration needs a company and a package", func() {
		_, err := s.bridge.Register(ctx, "s-hr", profile.RoleHR, staff)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("duplicate provider account surfaces the fixed message", func() {
		s.provider.EXPECT().CreateAccount(gomock.Any(), "a@x.com", "secret1").
			Return(identity.Principal{}, &identity.Error{Code: identity.CodeDuplicateAccount})

		_, err := s.bridge.Register(ctx, "s-dup", profile.RoleEmployee, staff)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		de, _ := dErrors.As(err)
		s.Equal("An account with this email already exists.", de.Message)
	})

	s.Run("unreachable backend is swallowed and flagged for support", func() {
		s.provider.EXPECT().CreateAccount(gomock.Any(), "a@x.com", "secret1").
			Return(identity.Principal{SessionToken: "kt-b", Email: "a@x.com"}, nil)
		s.provider.EXPECT().UpdateProfile(gomock.Any(), "kt-b", "A", "").Return(identity.Principal{}, errors.New("flaky"))
		s.backend.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(profile.Record{}, unreachable())
		s.backend.EXPECT().Login(gomock.Any(), gomock.Any()).Return("", unreachable())

		res, err := s.bridge.Register(ctx, "s-offline", profile.RoleEmployee, staff)
		s.Require().NoError(err)
		s.ElementsMatch([]string{"provider_profile", "backend_record", "backend_token"}, res.Degraded)
		s.Contains(s.actions(), "registration_incomplete:backend_unreachable")

		rec, err := s.cache.LoadRecord(ctx, "s-offline")
		s.Require().NoError(err)
		s.Equal("Employee", rec.Role)
	})

	s.Run("explicit backend rejection signs out and surfaces", func() {
		s.provider.EXPECT().CreateAccount(gomock.Any(), "a@x.com", "secret1").
			Return(identity.Principal{SessionToken: "kt-c", Email: "a@x.com"}, nil)
		s.provider.EXPECT().UpdateProfile(gomock.Any(), "kt-c", "A", "").Return(identity.Principal{SessionToken: "kt-c", Email: "a@x.com"}, nil)
		s.backend.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
			Return(profile.Record{}, dErrors.Wrap(sentinel.ErrConflict, dErrors.CodeConflict, "user already exists"))
		s.provider.EXPECT().SignOut(gomock.Any(), "kt-c").Return(nil)

		_, err := s.bridge.Register(ctx, "s-rejected", profile.RoleEmployee, staff)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.requireSignedOut("s-rejected")
		s.Contains(s.actions(), "registration_incomplete:backend_rejected")
	})
}

// =============================================================================
// Logout Tests
// =============================================================================

func (s *BridgeSuite) TestLogout() {
	ctx := context.Background()

	s.Run("clears profile and tokens and the guard sees no session", func() {
		s.loginHR("s-out")
		s.provider.EXPECT().SignOut(gomock.Any(), "kt-1").Return(nil)

		s.Require().NoError(s.bridge.Logout(ctx, "s-out"))

		s.requireSignedOut("s-out")
		s.False(s.bridge.Resolve(ctx, "s-out").Authenticated)
		s.Contains(s.actions(), "logout:")
	})

	s.Run("provider failure does not block the local sign-out", func() {
		s.loginHR("s-out2")
		s.provider.EXPECT().SignOut(gomock.Any(), "kt-1").Return(errors.New("provider down"))

		s.Require().NoError(s.bridge.Logout(ctx, "s-out2"))
		s.requireSignedOut("s-out2")
	})

	s.Run("unknown session is a no-op", func() {
		s.NoError(s.bridge.Logout(ctx, "never-seen"))
		s.NoError(s.bridge.Logout(ctx, ""))
	})
}

func (s *BridgeSuite) TestForceLogout() {
	ctx := context.Background()

	s.Run("backend rejection ends the session", func() {
		s.loginHR("s-forced")
		s.provider.EXPECT().SignOut(gomock.Any(), "kt-1").Return(nil)

		s.bridge.ForceLogout(ctx, "s-forced")

		s.requireSignedOut("s-forced")
		s.Contains(s.actions(), "forced_logout:backend_unauthorized")
	})

	s.Run("sessions being established are left to their own flow", func() {
		s.Require().NoError(s.cache.SaveRecord(ctx, "s-busy", profile.Record{Email: "a@x.com", Role: "HR"}))
		done := s.bridge.establish("s-busy")
		defer done()

		s.bridge.ForceLogout(ctx, "s-busy")

		_, err := s.cache.LoadRecord(ctx, "s-busy")
		s.NoError(err)
	})
}

// =============================================================================
// Session Change Tests
// =============================================================================

func (s *BridgeSuite) TestSessionChange() {
	ctx := context.Background()

	s.Run("absent principal clears the cache", func() {
		s.Require().NoError(s.cache.SaveRecord(ctx, "s-gone", profile.Record{Email: "a@x.com", Role: "HR"}))

		s.listener(ctx, identity.SessionChange{SessionID: "s-gone"})

		_, err := s.cache.LoadRecord(ctx, "s-gone")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("backend fields win over cached ones", func() {
		s.Require().NoError(s.cache.SaveRecord(ctx, "s-merge", profile.Record{
			Email: "a@x.com", Name: "Cached", PhotoURL: "https://img/a.png", Role: "Employee",
		}))
		s.backend.EXPECT().UserByEmail(gomock.Any(), "a@x.com").
			Return(profile.Record{ID: "u-a", Email: "a@x.com", Name: "Fresh"}, nil)

		s.listener(ctx, identity.SessionChange{
			SessionID: "s-merge",
			Principal: &identity.Principal{Email: "a@x.com"},
		})

		rec, err := s.cache.LoadRecord(ctx, "s-merge")
		s.Require().NoError(err)
		s.Equal("Fresh", rec.Name)
		s.Equal("https://img/a.png", rec.PhotoURL)
		s.Equal("Employee", rec.Role)
		s.Equal("u-a", rec.ID)
	})

	s.Run("backend failure keeps the cached profile", func() {
		s.Require().NoError(s.cache.SaveRecord(ctx, "s-keep", profile.Record{Email: "a@x.com", Name: "Cached", Role: "HR"}))
		s.backend.EXPECT().UserByEmail(gomock.Any(), "a@x.com").Return(profile.Record{}, unreachable())

		s.listener(ctx, identity.SessionChange{
			SessionID: "s-keep",
			Principal: &identity.Principal{Email: "a@x.com"},
		})

		rec, err := s.cache.LoadRecord(ctx, "s-keep")
		s.Require().NoError(err)
		s.Equal("Cached", rec.Name)
	})

	s.Run("empty backend record keeps the cached profile", func() {
		s.Require().NoError(s.cache.SaveRecord(ctx, "s-blank", profile.Record{Email: "a@x.com", Name: "Cached", Role: "HR"}))
		s.backend.EXPECT().UserByEmail(gomock.Any(), "a@x.com").Return(profile.Record{}, nil)

		s.listener(ctx, identity.SessionChange{
			SessionID: "s-blank",
			Principal: &identity.Principal{Email: "a@x.com"},
		})

		rec, err := s.cache.LoadRecord(ctx, "s-blank")
		s.Require().NoError(err)
		s.Equal("HR", rec.Role)
		s.Equal("Cached", rec.Name)
	})

	s.Run("changes for a session being established are skipped", func() {
		s.Require().NoError(s.cache.SaveRecord(ctx, "s-est", profile.Record{Email: "a@x.com", Role: "HR"}))
		done := s.bridge.establish("s-est")

		s.listener(ctx, identity.SessionChange{SessionID: "s-est"})
		done()

		_, err := s.cache.LoadRecord(ctx, "s-est")
		s.NoError(err)
	})
}

// =============================================================================
// Resolve Tests (Role Router liveness)
// =============================================================================

func (s *BridgeSuite) TestResolve() {
	ctx := context.Background()

	s.Run("fresh login resolves without asking the provider", func() {
		s.loginHR("s-live")

		subject := s.bridge.Resolve(ctx, "s-live")
		s.True(subject.Authenticated)
		s.Equal("HR", subject.Role)
	})

	s.Run("stale liveness is revalidated with the provider", func() {
		s.loginHR("s-stale")
		later := requestcontext.WithTime(ctx, time.Now().Add(2*time.Minute))
		s.provider.EXPECT().Refresh(gomock.Any(), "kt-1").Return(hrPrincipal(), nil)

		subject := s.bridge.Resolve(later, "s-stale")
		s.True(subject.Authenticated)
	})

	s.Run("dead provider session is unauthenticated", func() {
		s.loginHR("s-dead")
		later := requestcontext.WithTime(ctx, time.Now().Add(2*time.Minute))
		s.provider.EXPECT().Refresh(gomock.Any(), "kt-1").Return(identity.Principal{}, identity.ErrNoSession)

		s.False(s.bridge.Resolve(later, "s-dead").Authenticated)
	})

	s.Run("cached profile without provider token is unauthenticated", func() {
		s.Require().NoError(s.cache.SaveRecord(ctx, "s-orphan", profile.Record{Email: "a@x.com", Role: "HR"}))
		s.False(s.bridge.Resolve(ctx, "s-orphan").Authenticated)
	})

	s.Run("anonymous", func() {
		s.False(s.bridge.Resolve(ctx, "").Authenticated)
	})
}

// =============================================================================
// Profile Tests
// =============================================================================

func (s *BridgeSuite) TestUpdateProfile() {
	ctx := context.Background()

	s.Run("backend update is followed by a re-fetch", func() {
		s.loginHR("s-edit")
		s.backend.EXPECT().UpdateUser(gomock.Any(), "boss@acme.io", gateway.UserUpdate{Name: "Chief"}).
			Return(profile.Record{}, nil)
		s.provider.EXPECT().UpdateProfile(gomock.Any(), "kt-1", "Chief", "").Return(hrPrincipal(), nil)
		s.backend.EXPECT().UserByEmail(gomock.Any(), "boss@acme.io").
			Return(profile.Record{Email: "boss@acme.io", Name: "Chief", Role: "HR"}, nil)

		p, err := s.bridge.UpdateProfile(ctx, "s-edit", ProfileChanges{Name: " Chief "})
		s.Require().NoError(err)
		hr, ok := p.(*profile.HRManager)
		s.Require().True(ok)
		s.Equal("Chief", hr.Name)
		s.Equal("Acme", hr.CompanyName)

		cached, err := s.bridge.Current(ctx, "s-edit")
		s.Require().NoError(err)
		s.Equal("Chief", cached.Details().Name)
	})

	s.Run("refresh against an empty backend record fails as not found", func() {
		s.loginHR("s-vanished")
		s.backend.EXPECT().UserByEmail(gomock.Any(), "boss@acme.io").Return(profile.Record{}, nil)

		_, err := s.bridge.RefreshProfile(ctx, "s-vanished")
		s.True(gateway.IsNotFound(err))

		p, err := s.bridge.Current(ctx, "s-vanished")
		s.Require().NoError(err)
		s.Equal(profile.RoleHR, p.Role())
	})

	s.Run("company fields are HR only", func() {
		s.Require().NoError(s.cache.SaveRecord(ctx, "s-emp", profile.Record{Email: "a@x.com", Role: "Employee"}))

		_, err := s.bridge.UpdateProfile(ctx, "s-emp", ProfileChanges{CompanyName: "Mine"})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("account outside the known roles is refused", func() {
		s.Require().NoError(s.cache.SaveRecord(ctx, "s-admin", profile.Record{Email: "root@x.com", Role: "Admin"}))

		_, err := s.bridge.Current(ctx, "s-admin")
		s.ErrorIs(err, ErrUnsupportedRole)

		_, err = s.bridge.UpdateProfile(ctx, "s-admin", ProfileChanges{Name: "X"})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("signed-out session cannot edit", func() {
		_, err := s.bridge.UpdateProfile(ctx, "nobody", ProfileChanges{Name: "X"})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

// =============================================================================
// Activity Tests
// =============================================================================

func (s *BridgeSuite) TestActivity() {
	ctx := context.Background()

	s.Run("lists the signed-in account's own events newest first", func() {
		s.Require().NoError(s.history.Append(ctx, audit.Event{Subject: "other@acme.io", Action: string(audit.EventLogout)}))
		s.loginHR("s-trail")
		s.Require().NoError(s.history.Append(ctx, audit.Event{Subject: "boss@acme.io", Action: string(audit.EventPaymentConfirmed)}))

		events, err := s.bridge.Activity(ctx, "s-trail", 0)
		s.Require().NoError(err)
		s.Require().Len(events, 2)
		s.Equal(string(audit.EventPaymentConfirmed), events[0].Action)
		s.Equal(string(audit.EventLoginSucceeded), events[1].Action)
		for _, e := range events {
			s.Equal("boss@acme.io", e.Subject)
		}

		events, err = s.bridge.Activity(ctx, "s-trail", 1)
		s.Require().NoError(err)
		s.Len(events, 1)
	})

	s.Run("signed-out session has no activity", func() {
		_, err := s.bridge.Activity(ctx, "nobody", 0)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("a write-only audit sink is reported as unavailable", func() {
		s.loginHR("s-blind")
		blind, err := New(s.provider, s.backend, s.cache, s.vault)
		s.Require().NoError(err)

		_, err = blind.Activity(ctx, "s-blind", 0)
		s.ErrorIs(err, ErrActivityUnavailable)
	})
}
