package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/brexcellence/intranet-server/internal/docgen"
	"github.com/brexcellence/intranet-server/internal/mailer"
	"github.com/brexcellence/intranet-server/internal/models"
	"github.com/brexcellence/intranet-server/internal/period"
	"github.com/brexcellence/intranet-server/internal/sheets"
	"github.com/brexcellence/intranet-server/internal/utils"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication and password reset
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	CheckCredentials(ctx context.Context, email, password string) (*models.UserProfile, error)
	RequestPasswordReset(ctx context.Context, email string) (*models.StatusResponse, error)
	ResetPasswordWithCode(ctx context.Context, code, newPassword string) (*models.StatusResponse, error)

	// Record writes
	AddForecast(ctx context.Context, req models.ForecastRequest, userName string) (*models.StatusResponse, error)
	AddClient(ctx context.Context, req models.ClientRequest) (*models.AddClientResponse, error)
	SaveGeneratedProposal(ctx context.Context, req models.ProposalRecordRequest) (*models.StatusResponse, error)
	AddSalaryBaseEntry(ctx context.Context, req models.SalaryEntryRequest) (*models.AddSalaryEntryResponse, error)
	UpdateSalaryBaseEntries(ctx context.Context, entries []models.SalaryUpdate) (*models.StatusResponse, error)

	// Reads
	GetInitialData(ctx context.Context) (*models.InitialDataResponse, error)
	ComputeDashboard(ctx context.Context, p period.Period) (*models.DashboardResponse, error)
	GetKpiDetails(ctx context.Context, kpiName string, p period.Period) (*models.KpiDetailsResponse, error)

	// Document generation
	GenerateProposalPDF(ctx context.Context, req models.ProposalPDFRequest) (*models.DocumentResponse, error)
	GenerateReportPDF(ctx context.Context, req models.ReportPDFRequest, userRole string) (*models.DocumentResponse, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	store         sheets.Store
	mail          mailer.Mailer
	docs          *docgen.Generator
	log           *utils.Logger
	jwtSecret     []byte
	tokenDuration time.Duration
	appURL        string
	now           func() time.Time
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(
	store sheets.Store,
	mail mailer.Mailer,
	docs *docgen.Generator,
	log *utils.Logger,
	jwtSecret string,
	appURL string,
) *DefaultService {
	return &DefaultService{
		store:         store,
		mail:          mail,
		docs:          docs,
		log:           log,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour, // 24 hours token validity
		appURL:        appURL,
		now:           time.Now,
	}
}

// Helper methods
func (s *DefaultService) generateJWT(user *models.UserProfile) (string, error) {
	expirationTime := s.now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub":  user.Email, // subject
		"name": user.Name,
		"role": user.Role,
		"exp":  expirationTime.Unix(),
		"iat":  s.now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
