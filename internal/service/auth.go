package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/brexcellence/intranet-server/internal/models"
	"github.com/brexcellence/intranet-server/internal/schema"
	"github.com/brexcellence/intranet-server/internal/sheets"
)

// ErrInvalidCredentials is returned by Login when no user matches.
var ErrInvalidCredentials = errors.New("e-mail ou senha inválidos")

// resetGenericMessage is returned whether or not the email exists, so the
// endpoint cannot be used to enumerate accounts.
const resetGenericMessage = "Se o e-mail estiver cadastrado, um link para redefinição de senha será enviado."

const resetCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const resetCodeValidity = 30 * time.Minute

// Login verifies credentials and issues a bearer token.
func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.CheckCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.LoginResponse{
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Avatar:    user.Avatar,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}, nil
}

// CheckCredentials looks the user up by case-insensitive email and verifies
// the password against the stored bcrypt hash. Returns (nil, nil) when no
// user matches.
func (s *DefaultService) CheckCredentials(ctx context.Context, email, password string) (*models.UserProfile, error) {
	sheet, err := s.store.Read(ctx, schema.SheetUsers)
	if err != nil {
		return nil, fmt.Errorf("error reading users sheet: %w", err)
	}
	if sheet == nil {
		return nil, fmt.Errorf("a aba '%s' não foi encontrada", schema.SheetUsers)
	}

	emailCol := sheet.Col(schema.ColUserEmail)
	nameCol := sheet.Col(schema.ColUserName)
	roleCol := sheet.Col(schema.ColUserRole)
	passwordCol := sheet.Col(schema.ColUserPassword)
	if emailCol == -1 || nameCol == -1 || roleCol == -1 || passwordCol == -1 {
		return nil, fmt.Errorf(
			"a planilha '%s' deve conter as colunas '%s', '%s', '%s' e '%s'",
			schema.SheetUsers, schema.ColUserEmail, schema.ColUserName,
			schema.ColUserRole, schema.ColUserPassword)
	}

	for i := range sheet.Rows {
		rowEmail := sheets.CellText(sheet.Cell(i, emailCol))
		if rowEmail == "" || !strings.EqualFold(rowEmail, email) {
			continue
		}
		hash := sheets.CellText(sheet.Cell(i, passwordCol))
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
			continue
		}
		return &models.UserProfile{
			Name:   sheets.CellText(sheet.Cell(i, nameCol)),
			Email:  rowEmail,
			Role:   sheets.CellText(sheet.Cell(i, roleCol)),
			Avatar: "https://i.pravatar.cc/40?u=" + rowEmail,
		}, nil
	}

	return nil, nil
}

// RequestPasswordReset issues a short-lived reset code for an existing
// account and mails it. The response message never reveals whether the
// account exists.
func (s *DefaultService) RequestPasswordReset(ctx context.Context, email string) (*models.StatusResponse, error) {
	sheet, err := s.store.Read(ctx, schema.SheetUsers)
	if err != nil {
		return nil, fmt.Errorf("error reading users sheet: %w", err)
	}
	if sheet == nil {
		return &models.StatusResponse{Success: false, Message: "Aba de utilizadores não encontrada."}, nil
	}

	emailCol := sheet.Col(schema.ColUserEmail)
	if emailCol == -1 {
		return nil, fmt.Errorf("a planilha '%s' não possui a coluna '%s'", schema.SheetUsers, schema.ColUserEmail)
	}

	exists := false
	for i := range sheet.Rows {
		rowEmail := sheets.CellText(sheet.Cell(i, emailCol))
		if rowEmail != "" && strings.EqualFold(rowEmail, email) {
			exists = true
			break
		}
	}
	if !exists {
		return &models.StatusResponse{Success: true, Message: resetGenericMessage}, nil
	}

	if err := s.ensureResetSheet(ctx); err != nil {
		return nil, err
	}

	code, err := newResetCode()
	if err != nil {
		return nil, fmt.Errorf("error generating reset code: %w", err)
	}
	expiration := s.now().UTC().Add(resetCodeValidity)

	err = s.store.AppendRow(ctx, schema.SheetPasswordResets,
		[]interface{}{email, code, expiration.Format(time.RFC3339)})
	if err != nil {
		return nil, fmt.Errorf("error storing reset code: %w", err)
	}

	resetURL := fmt.Sprintf("%s?page=reset&code=%s", s.appURL, code)
	subject := "Redefinição de Senha - Intranet Brasil Excellence"
	body := fmt.Sprintf("Olá,\n\nRecebemos uma solicitação para redefinir sua senha.\n\n"+
		"Clique no link a seguir para criar uma nova senha: %s\n\n"+
		"Este link é válido por 30 minutos.\n\n"+
		"Se você não solicitou isso, pode ignorar este e-mail.\n\n"+
		"Atenciosamente,\nSistema de Intranet Brasil Excellence.", resetURL)

	// Delivery is fire-and-forget: a relay failure must not change the
	// operation outcome, or the generic message would leak account state.
	if err := s.mail.Send(email, subject, body); err != nil {
		s.log.Error("failed to send reset mail to %s: %v", email, err)
	}

	return &models.StatusResponse{Success: true, Message: resetGenericMessage}, nil
}

// ResetPasswordWithCode consumes a reset code. Expired codes are deleted
// and reported as failure; valid codes update the user's password hash and
// are deleted.
func (s *DefaultService) ResetPasswordWithCode(ctx context.Context, code, newPassword string) (*models.StatusResponse, error) {
	sheet, err := s.store.Read(ctx, schema.SheetPasswordResets)
	if err != nil {
		return nil, fmt.Errorf("error reading reset sheet: %w", err)
	}
	if sheet == nil {
		return nil, errors.New("aba de redefinição não encontrada")
	}

	codeCol := sheet.Col(schema.ColResetCode)
	emailCol := sheet.Col(schema.ColResetEmail)
	expCol := sheet.Col(schema.ColResetExpiration)
	if codeCol == -1 || emailCol == -1 || expCol == -1 {
		return nil, fmt.Errorf("a planilha '%s' está com colunas em falta", schema.SheetPasswordResets)
	}

	// Most-recent-first: several codes may coexist for one email.
	rowIndex := -1
	for i := len(sheet.Rows) - 1; i >= 0; i-- {
		if sheets.CellText(sheet.Cell(i, codeCol)) == code {
			rowIndex = i
			break
		}
	}
	if rowIndex == -1 {
		return &models.StatusResponse{Success: false, Message: "Código de redefinição inválido."}, nil
	}

	expiration, err := time.Parse(time.RFC3339, sheets.CellText(sheet.Cell(rowIndex, expCol)))
	if err != nil || expiration.Before(s.now()) {
		if delErr := s.store.DeleteRow(ctx, schema.SheetPasswordResets, rowIndex); delErr != nil {
			s.log.Error("failed to delete stale reset code: %v", delErr)
		}
		return &models.StatusResponse{
			Success: false,
			Message: "Código de redefinição expirado. Por favor, solicite novamente.",
		}, nil
	}

	email := sheets.CellText(sheet.Cell(rowIndex, emailCol))

	users, err := s.store.Read(ctx, schema.SheetUsers)
	if err != nil {
		return nil, fmt.Errorf("error reading users sheet: %w", err)
	}
	if users == nil {
		return nil, fmt.Errorf("a aba '%s' não foi encontrada", schema.SheetUsers)
	}
	userEmailCol := users.Col(schema.ColUserEmail)
	passwordCol := users.Col(schema.ColUserPassword)
	if userEmailCol == -1 || passwordCol == -1 {
		return nil, fmt.Errorf("a planilha '%s' está com colunas em falta", schema.SheetUsers)
	}

	for i := range users.Rows {
		if !strings.EqualFold(sheets.CellText(users.Cell(i, userEmailCol)), email) {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		if err := s.store.UpdateCell(ctx, schema.SheetUsers, i, passwordCol, string(hash)); err != nil {
			return nil, fmt.Errorf("error updating password: %w", err)
		}
		if err := s.store.DeleteRow(ctx, schema.SheetPasswordResets, rowIndex); err != nil {
			return nil, fmt.Errorf("error deleting reset code: %w", err)
		}
		return &models.StatusResponse{Success: true, Message: "Senha redefinida com sucesso! Pode fazer o login."}, nil
	}

	return &models.StatusResponse{Success: false, Message: "Utilizador não encontrado."}, nil
}

func (s *DefaultService) ensureResetSheet(ctx context.Context) error {
	sheet, err := s.store.Read(ctx, schema.SheetPasswordResets)
	if err != nil {
		return fmt.Errorf("error reading reset sheet: %w", err)
	}
	if sheet != nil {
		return nil
	}
	return s.store.CreateSheet(ctx, schema.SheetPasswordResets,
		[]string{schema.ColResetEmail, schema.ColResetCode, schema.ColResetExpiration})
}

// newResetCode returns a 6-character uppercase alphanumeric code.
func newResetCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = resetCodeAlphabet[int(b)%len(resetCodeAlphabet)]
	}
	return string(buf), nil
}
