package httpapi

import (
	"encoding/json"
	"net/http"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		s.fail(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	user, token, err := s.auths.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.failFromError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  user,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" {
		s.fail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, token, err := s.auths.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.failFromError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

func (s *Server) handleCredit(w http.ResponseWriter, r *http.Request) {
	user, err := s.auths.Account(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.failFromError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"credits": user.CreditBalance,
		"user":    user,
	})
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.plans.List(r.Context())
	if err != nil {
		s.failFromError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"plans": plans})
}

type payRequest struct {
	PlanID string `json:"planId"`
}

func (s *Server) handlePayRazor(w http.ResponseWriter, r *http.Request) {
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PlanID == "" {
		s.fail(w, http.StatusBadRequest, "planId is required")
		return
	}

	order, err := s.payments.InitiatePurchase(r.Context(), userIDFrom(r.Context()), req.PlanID)
	if err != nil {
		s.failFromError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

type verifyRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

func (s *Server) handleVerifyRazor(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		s.fail(w, http.StatusBadRequest, "order id, payment id and signature are required")
		return
	}

	if err := s.payments.ConfirmPurchase(r.Context(), userIDFrom(r.Context()), req.OrderID, req.PaymentID, req.Signature); err != nil {
		s.failFromError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"message": "credits added"})
}
