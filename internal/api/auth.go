package api

import (
	"net/http"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/identity"
)

type AuthResponse struct {
	Token string `json:"token"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

func (s *APIServer) registerHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req identity.Registration
		if err := decodeJSON(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		if _, err := s.identity.Register(r.Context(), req); err != nil {
			s.fail(w, r, err)
			return
		}

		respondSuccess(w, http.StatusCreated, "user created successfully")
	}
}

func (s *APIServer) loginHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req identity.Credentials
		if err := decodeJSON(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		token, err := s.identity.Login(r.Context(), req)
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{Token: token})
	}
}

func (s *APIServer) verifyHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.identity.VerifyEmail(r.Context(), r.URL.Query().Get("token")); err != nil {
			s.fail(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, "email verified successfully")
	}
}

func (s *APIServer) resendVerificationHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req emailRequest
		if err := decodeJSON(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		if err := s.identity.ResendVerification(r.Context(), req.Email); err != nil {
			s.fail(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, "verification email sent")
	}
}

func (s *APIServer) forgotPasswordHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req emailRequest
		if err := decodeJSON(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		if err := s.identity.ForgotPassword(r.Context(), req.Email); err != nil {
			s.fail(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, "password reset email sent")
	}
}

func (s *APIServer) resetPasswordHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetRequest
		if err := decodeJSON(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		if err := s.identity.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
			s.fail(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, "password updated successfully")
	}
}

func (s *APIServer) infoHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.identity.Info(r.Context(), ownerFrom(r.Context()))
		if err != nil {
			s.fail(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func (s *APIServer) updateInfoHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.UserPatch
		if err := decodeJSON(r, &patch); err != nil {
			s.fail(w, r, err)
			return
		}

		if _, err := s.identity.UpdateInfo(r.Context(), ownerFrom(r.Context()), patch); err != nil {
			s.fail(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, "user updated successfully")
	}
}

func (s *APIServer) changePasswordHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req identity.PasswordChange
		if err := decodeJSON(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		if err := s.identity.ChangePassword(r.Context(), ownerFrom(r.Context()), req); err != nil {
			s.fail(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, "password updated successfully")
	}
}

func (s *APIServer) deleteProfileHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordRequest
		if err := decodeJSON(r, &req); err != nil {
			s.fail(w, r, err)
			return
		}

		if err := s.identity.DeleteProfile(r.Context(), ownerFrom(r.Context()), req.Password); err != nil {
			s.fail(w, r, err)
			return
		}

		respondSuccess(w, http.StatusOK, "user deleted successfully")
	}
}
