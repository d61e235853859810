package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brexcellence/intranet-server/internal/mailer"
	"github.com/brexcellence/intranet-server/internal/schema"
	"github.com/brexcellence/intranet-server/internal/sheets"
	"github.com/brexcellence/intranet-server/internal/utils"
)

func seedUser(t *testing.T, store sheets.Store, email, password string) {
	t.Helper()
	ctx := context.Background()
	if existing, err := store.Read(ctx, schema.SheetUsers); err == nil && existing == nil {
		require.NoError(t, store.CreateSheet(ctx, schema.SheetUsers,
			[]string{schema.ColUserEmail, schema.ColUserName, schema.ColUserRole, schema.ColUserPassword}))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, store.AppendRow(ctx, schema.SheetUsers,
		[]interface{}{email, "Usuária Teste", "Analista", string(hash)}))
}

func TestCheckCredentials(t *testing.T) {
	ctx := context.Background()
	store := sheets.NewMemoryStore()
	seedUser(t, store, "ana@example.com", "s3nh4forte")
	svc := newTestService(store)

	profile, err := svc.CheckCredentials(ctx, "ANA@example.com", "s3nh4forte")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Usuária Teste", profile.Name)
	assert.Equal(t, "https://i.pravatar.cc/40?u=ana@example.com", profile.Avatar)

	profile, err = svc.CheckCredentials(ctx, "ana@example.com", "errada")
	require.NoError(t, err)
	assert.Nil(t, profile)

	// Missing users sheet is an operator-facing error.
	_, err = newTestService(sheets.NewMemoryStore()).CheckCredentials(ctx, "ana@example.com", "x")
	assert.ErrorContains(t, err, schema.SheetUsers)
}

func TestRequestPasswordResetCreatesToken(t *testing.T) {
	ctx := context.Background()
	store := sheets.NewMemoryStore()
	seedUser(t, store, "ana@example.com", "s3nh4forte")

	mail := mailer.NewRecorder()
	svc := NewDefaultService(store, mail, nil, utils.NewLogger(), "test-secret", "http://localhost")
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }

	resp, err := svc.RequestPasswordReset(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, resp.Success)

	// The reset sheet is created on demand with exactly one token row.
	resets, err := store.Read(ctx, schema.SheetPasswordResets)
	require.NoError(t, err)
	require.NotNil(t, resets)
	require.Len(t, resets.Rows, 1)

	code := sheets.CellText(resets.Cell(0, resets.Col(schema.ColResetCode)))
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{6}$`), code)

	exp, err := time.Parse(time.RFC3339, sheets.CellText(resets.Cell(0, resets.Col(schema.ColResetExpiration))))
	require.NoError(t, err)
	assert.Equal(t, base.Add(30*time.Minute), exp)

	require.Len(t, mail.Messages(), 1)
	assert.Contains(t, mail.Messages()[0].Body, code)
	assert.Contains(t, mail.Messages()[0].Body, "30 minutos")
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	ctx := context.Background()
	store := sheets.NewMemoryStore()
	seedUser(t, store, "ana@example.com", "s3nh4forte")

	mail := mailer.NewRecorder()
	svc := NewDefaultService(store, mail, nil, utils.NewLogger(), "test-secret", "http://localhost")

	resp, err := svc.RequestPasswordReset(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.True(t, resp.Success, "generic success regardless of account existence")

	resets, err := store.Read(ctx, schema.SheetPasswordResets)
	require.NoError(t, err)
	assert.Nil(t, resets, "no token sheet should be created")
	assert.Empty(t, mail.Messages())
}

func TestResetPasswordMostRecentCodeWins(t *testing.T) {
	ctx := context.Background()
	store := sheets.NewMemoryStore()
	seedUser(t, store, "ana@example.com", "antiga")
	svc := newTestService(store)

	future := time.Now().Add(time.Hour).Format(time.RFC3339)
	require.NoError(t, store.CreateSheet(ctx, schema.SheetPasswordResets,
		[]string{schema.ColResetEmail, schema.ColResetCode, schema.ColResetExpiration}))
	// Two coexisting codes; the same code value appears twice and the
	// backwards scan must pick the later row.
	require.NoError(t, store.AppendRow(ctx, schema.SheetPasswordResets,
		[]interface{}{"ana@example.com", "AAAAAA", "2020-01-01T00:00:00Z"}))
	require.NoError(t, store.AppendRow(ctx, schema.SheetPasswordResets,
		[]interface{}{"ana@example.com", "AAAAAA", future}))

	resp, err := svc.ResetPasswordWithCode(ctx, "AAAAAA", "novaSenha123")
	require.NoError(t, err)
	assert.True(t, resp.Success, resp.Message)

	profile, err := svc.CheckCredentials(ctx, "ana@example.com", "novaSenha123")
	require.NoError(t, err)
	assert.NotNil(t, profile)
}

func TestResetPasswordExpiredCodeDeleted(t *testing.T) {
	ctx := context.Background()
	store := sheets.NewMemoryStore()
	seedUser(t, store, "ana@example.com", "antiga")
	svc := newTestService(store)

	require.NoError(t, store.CreateSheet(ctx, schema.SheetPasswordResets,
		[]string{schema.ColResetEmail, schema.ColResetCode, schema.ColResetExpiration}))
	require.NoError(t, store.AppendRow(ctx, schema.SheetPasswordResets,
		[]interface{}{"ana@example.com", "OLD123", "2020-01-01T00:00:00Z"}))

	resp, err := svc.ResetPasswordWithCode(ctx, "OLD123", "novaSenha123")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "expirado")

	resets, err := store.Read(ctx, schema.SheetPasswordResets)
	require.NoError(t, err)
	assert.Empty(t, resets.Rows)

	// The old password still works.
	profile, err := svc.CheckCredentials(ctx, "ana@example.com", "antiga")
	require.NoError(t, err)
	assert.NotNil(t, profile)
}

func TestNewResetCodeShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for i := 0; i < 20; i++ {
		code, err := newResetCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}
