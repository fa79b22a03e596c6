package service

import (
	"context"
	"time"

	"notes-app-be/internal/dto"
	"notes-app-be/internal/entity"
	"notes-app-be/internal/pkg/googletoken"
	"notes-app-be/internal/pkg/logger"
	"notes-app-be/internal/pkg/mailer"
	"notes-app-be/internal/pkg/serverutils"
	"notes-app-be/internal/repository/contract"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error
	GoogleAuth(ctx context.Context, req *dto.GoogleAuthRequest) (*dto.AuthResponse, error)
}

type GoogleVerifier interface {
	Verify(ctx context.Context, token, email, googleId string) (*googletoken.Claims, error)
}

type authService struct {
	users        contract.UserRepository
	tokens       ITokenService
	emailService mailer.IEmailService
	publisher    IPublisherService
	google       GoogleVerifier
	logger       logger.ILogger
}

func NewAuthService(
	users contract.UserRepository,
	tokens ITokenService,
	emailService mailer.IEmailService,
	publisher IPublisherService,
	google GoogleVerifier,
	log logger.ILogger,
) IAuthService {
	return &authService{
		users:        users,
		tokens:       tokens,
		emailService: emailService,
		publisher:    publisher,
		google:       google,
		logger:       log,
	}
}

func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflict("User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	otp, err := s.tokens.GeneratePasscode()
	if err != nil {
		return nil, err
	}
	otpExpiry := s.tokens.PasscodeExpiry()

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		PasswordHash: &hashStr,
		Otp:          &otp,
		OtpExpiresAt: &otpExpiry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent signup may win the race; the unique index reports it.
		if err == contract.ErrDuplicateEmail {
			return nil, serverutils.NewConflict("User with this email already exists")
		}
		return nil, err
	}

	// The OTP mail is the one delivery that must succeed: without it the
	// account is unverifiable. On failure the signup is rolled back so the
	// address can be registered again.
	if err := s.emailService.SendOTP(user.Email, otp); err != nil {
		s.logger.Error("auth", "failed to send OTP email, rolling back signup", map[string]interface{}{
			"email": user.Email,
			"error": err.Error(),
		})
		if delErr := s.users.Delete(ctx, user.Id); delErr != nil {
			s.logger.Error("auth", "signup rollback failed", map[string]interface{}{
				"user_id": user.Id.String(),
				"error":   delErr.Error(),
			})
		}
		return nil, serverutils.NewNotifierError("Failed to send OTP email")
	}

	s.logger.Info("auth", "signup pending verification", map[string]interface{}{"email": user.Email})
	return &dto.SignupResponse{UserId: user.Id, Email: user.Email}, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.AuthResponse, error) {
	user, err := s.consumePasscode(ctx, req.Email, req.Otp)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.Id, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishAccountVerified(user); err != nil {
		// Welcome mail is best effort; verification already succeeded.
		s.logger.Warn("auth", "failed to publish verified event", map[string]interface{}{
			"email": user.Email,
			"error": err.Error(),
		})
	}

	s.logger.Info("auth", "email verified", map[string]interface{}{"email": user.Email})
	return &dto.AuthResponse{
		Token: token,
		User:  dto.UserDTO{Id: user.Id, Email: user.Email},
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.consumePasscode(ctx, req.Email, req.Otp)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.Id, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("auth", "login successful", map[string]interface{}{"email": user.Email})
	return &dto.AuthResponse{
		Token: token,
		User:  dto.UserDTO{Id: user.Id, Email: user.Email},
	}, nil
}

// consumePasscode matches the (email, otp) pair, rejects stale codes, and
// clears the challenge exactly once. A mismatch mutates nothing.
func (s *authService) consumePasscode(ctx context.Context, email, otp string) (*entity.User, error) {
	user, err := s.users.FindByEmailAndOtp(ctx, email, otp)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, serverutils.NewValidationError("Invalid OTP or OTP expired")
	}
	if user.OtpExpiresAt != nil && time.Now().After(*user.OtpExpiresAt) {
		return nil, serverutils.NewValidationError("Invalid OTP or OTP expired")
	}

	if err := s.users.ClearOtp(ctx, user.Id); err != nil {
		return nil, err
	}
	user.Otp = nil
	user.OtpExpiresAt = nil
	return user, nil
}

func (s *authService) ResendOTP(ctx context.Context, req *dto.ResendOTPRequest) error {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return serverutils.NewNotFound("User not found")
	}

	otp, err := s.tokens.GeneratePasscode()
	if err != nil {
		return err
	}

	// Overwrites any outstanding code; the old one stops working here.
	if err := s.users.SetOtp(ctx, user.Id, otp, s.tokens.PasscodeExpiry()); err != nil {
		return err
	}

	if err := s.emailService.SendOTP(user.Email, otp); err != nil {
		s.logger.Error("auth", "failed to resend OTP email", map[string]interface{}{
			"email": user.Email,
			"error": err.Error(),
		})
		return serverutils.NewNotifierError("Failed to send OTP email")
	}

	s.logger.Info("auth", "OTP resent", map[string]interface{}{"email": user.Email})
	return nil
}

func (s *authService) GoogleAuth(ctx context.Context, req *dto.GoogleAuthRequest) (*dto.AuthResponse, error) {
	// Never trust client-supplied identity claims: the token has to check
	// out against Google's published keys and carry the same email/subject.
	if _, err := s.google.Verify(ctx, req.GoogleToken, req.Email, req.GoogleId); err != nil {
		s.logger.Warn("auth", "google token rejected", map[string]interface{}{
			"email": req.Email,
			"error": err.Error(),
		})
		return nil, serverutils.NewUnauthorized("Google token verification failed")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		now := time.Now()
		user = &entity.User{
			Id:        uuid.New(),
			Email:     req.Email,
			GoogleId:  &req.GoogleId,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if err == contract.ErrDuplicateEmail {
				return nil, serverutils.NewConflict("User with this email already exists")
			}
			return nil, err
		}
		s.logger.Info("auth", "google account created", map[string]interface{}{"email": user.Email})
	} else if !user.HasGoogle() {
		if err := s.users.LinkGoogle(ctx, user.Id, req.GoogleId); err != nil {
			return nil, err
		}
		user.GoogleId = &req.GoogleId
		s.logger.Info("auth", "google account linked", map[string]interface{}{"email": user.Email})
	}

	token, err := s.tokens.Issue(user.Id, user.Email)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token: token,
		User:  dto.UserDTO{Id: user.Id, Email: user.Email},
	}, nil
}
