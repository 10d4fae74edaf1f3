package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"schoolhub/internal/authz"
	"schoolhub/internal/logger"
	"schoolhub/internal/models"
	"schoolhub/internal/repositories"
	"schoolhub/internal/utils"
)

// memAccounts is an in-memory AccountRepository for one role.
type memAccounts struct {
	role     authz.Role
	mu       sync.Mutex
	accounts []*models.Account
	schools  map[string]string // school id -> name
	lookups  int
}

func newMemAccounts(role authz.Role, schools map[string]string, accs ...*models.Account) *memAccounts {
	for _, a := range accs {
		a.Role = role
	}
	return &memAccounts{role: role, accounts: accs, schools: schools}
}

func (m *memAccounts) Role() authz.Role { return m.role }

func (m *memAccounts) FindByLoginKey(_ context.Context, email, schoolID string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	for _, a := range m.accounts {
		if !strings.EqualFold(a.Email, email) {
			continue
		}
		if m.role.RequiresSchool() && a.SchoolID != schoolID {
			continue
		}
		cp := *a
		return &cp, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *memAccounts) FindByID(_ context.Context, id int64) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	for _, a := range m.accounts {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *memAccounts) ResolveSchool(_ context.Context, acc *models.Account) (string, string, error) {
	if m.role == authz.RoleSchool {
		return acc.SchoolID, acc.Name, nil
	}
	name, ok := m.schools[acc.SchoolID]
	if !ok && m.role == authz.RoleTeacher {
		return "", "", repositories.ErrSchoolMissing
	}
	return acc.SchoolID, name, nil
}

func (m *memAccounts) UpdatePassword(_ context.Context, id int64, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.ID == id {
			a.PasswordHash = hash
			return nil
		}
	}
	return repositories.ErrNotFound
}

// memTeachers adds school name resolution on top of memAccounts.
type memTeachers struct {
	*memAccounts
}

func (m *memTeachers) ResolveSchoolKey(_ context.Context, idOrName string) (string, error) {
	if _, ok := m.schools[idOrName]; ok {
		return idOrName, nil
	}
	for id, name := range m.schools {
		if strings.EqualFold(name, idOrName) {
			return id, nil
		}
	}
	return idOrName, nil
}

type sentMail struct {
	To, Name, Code string
	Reset          bool
}

type fakeEmails struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeEmails) SendLoginOTP(email, name, code string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: email, Name: name, Code: code})
	return nil
}

func (f *fakeEmails) SendPasswordResetOTP(email, name, code string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{To: email, Name: name, Code: code, Reset: true})
	return nil
}

func (f *fakeEmails) last(t *testing.T) sentMail {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent, "no email sent")
	return f.sent[len(f.sent)-1]
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

const testSecret = "test-signing-secret"

type fixture struct {
	clock    *fakeClock
	mr       *miniredis.Miniredis
	otpRepo  repositories.OTPRepository
	otps     *otpService
	emails   *fakeEmails
	tokens   *utils.TokenManager
	auth     AuthService
	admins   *memAccounts
	schools  *memAccounts
	teachers *memTeachers
	students *memAccounts
	accounts *AccountDirectory
	login    LoginService
	reset    PasswordResetService
}

func hashPW(t *testing.T, auth AuthService, pw string) string {
	t.Helper()
	h, err := auth.HashPassword(pw)
	require.NoError(t, err)
	return h
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	otpRepo := repositories.NewOTPRepository(client)
	otps := &otpService{repo: otpRepo, ttl: defaultOTPTTL, now: clock.Now}

	tokens, err := utils.NewTokenManager(testSecret, 7*24*time.Hour)
	require.NoError(t, err)
	tokens.WithClock(clock.Now)

	auth := &authService{cost: 4} // bcrypt.MinCost keeps tests fast
	pw := hashPW(t, auth, "pw")

	schoolNames := map[string]string{
		"SCH1": "Green Valley High",
		"SCH2": "Riverside Academy",
	}
	admins := newMemAccounts(authz.RoleAdmin, schoolNames,
		&models.Account{ID: 1, Name: "Root", Email: "admin@x.com", PasswordHash: pw},
	)
	schools := newMemAccounts(authz.RoleSchool, schoolNames,
		&models.Account{ID: 10, Name: "Green Valley High", Email: "office@gv.edu", PasswordHash: pw, SchoolID: "SCH1"},
	)
	teachers := &memTeachers{newMemAccounts(authz.RoleTeacher, schoolNames,
		&models.Account{ID: 20, Name: "Tina", Email: "t@x.com", PasswordHash: pw, SchoolID: "SCH1"},
		&models.Account{ID: 21, Name: "Orphan", Email: "orphan@x.com", PasswordHash: pw, SchoolID: "GONE"},
	)}
	students := newMemAccounts(authz.RoleStudent, schoolNames,
		&models.Account{ID: 30, Name: "Sam", Email: "s@x.com", PasswordHash: pw, SchoolID: "SCH1", Picture: "data:image/png;base64,AAA"},
		&models.Account{ID: 31, Name: "NoMail", Email: "", PasswordHash: pw, SchoolID: "SCH1"},
	)
	accounts := NewAccountDirectory(admins, schools, teachers, students)
	emails := &fakeEmails{}
	log := logger.Nop()

	return &fixture{
		clock:    clock,
		mr:       mr,
		otpRepo:  otpRepo,
		otps:     otps,
		emails:   emails,
		tokens:   tokens,
		auth:     auth,
		admins:   admins,
		schools:  schools,
		teachers: teachers,
		students: students,
		accounts: accounts,
		login:    NewLoginService(accounts, auth, otps, emails, NewSessionService(tokens), log),
		reset:    NewPasswordResetService(accounts, otps, emails, auth, log),
	}
}
