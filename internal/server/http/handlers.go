package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/smartbrain/internal/common"
	"github.com/gin-gonic/gin"
)

// Response bodies are bare JSON strings.
const (
	msgStatus            = "Maintained route"
	msgWrongCredentials  = "wrong credentials"
	msgIncorrectForm     = "incorrect form submission"
	msgUnableToRegister  = "unable to register"
	msgNotFound          = "Not found"
	msgErrorGettingUser  = "error getting user"
	msgErrorUpdating     = "error while updating entries"
	msgInferenceFailed   = "unable to work with API"
	msgInternalServerErr = "internal server error"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// imageRequest accepts the id as a JSON number or a numeric string.
type imageRequest struct {
	ID json.Number `json:"id"`
}

type detectRequest struct {
	Input string `json:"input"`
}

func (s *HTTPServer) status(c *gin.Context) {
	c.String(http.StatusOK, msgStatus)
}

func (s *HTTPServer) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, msgWrongCredentials)
		return
	}

	p, err := s.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, msgWrongCredentials)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (s *HTTPServer) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, msgIncorrectForm)
		return
	}

	p, err := s.auth.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, msgIncorrectForm)
			return
		}
		s.logger.Warn(c.Request.Context(), "registration failed", "error", err)
		c.JSON(http.StatusBadRequest, msgUnableToRegister)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (s *HTTPServer) getProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, msgErrorGettingUser)
		return
	}

	p, err := s.profiles.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, msgNotFound)
			return
		}
		c.JSON(http.StatusBadRequest, msgErrorGettingUser)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (s *HTTPServer) incrementEntries(c *gin.Context) {
	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, msgErrorUpdating)
		return
	}

	id, err := strconv.ParseInt(req.ID.String(), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, msgErrorUpdating)
		return
	}

	n, err := s.profiles.IncrementEntries(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadRequest, msgErrorUpdating)
		return
	}

	c.JSON(http.StatusOK, n)
}

func (s *HTTPServer) detect(c *gin.Context) {
	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Input) == "" {
		c.JSON(http.StatusBadRequest, msgIncorrectForm)
		return
	}

	out, err := s.gateway.Detect(c.Request.Context(), req.Input)
	if err != nil {
		s.logger.Error(c.Request.Context(), "inference call failed", "error", err)
		c.JSON(http.StatusBadGateway, msgInferenceFailed)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}
