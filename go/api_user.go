package petcareserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/Apurer/petcare-api/internal/domains/users/adapters/http/mapper"
	usersports "github.com/Apurer/petcare-api/internal/domains/users/ports"
)

// UserAPI serves registration, sessions and account administration.
type UserAPI struct {
	service usersports.Service
}

func NewUserAPI(service usersports.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /api/users
// Register a customer account, or any account type when called by an admin
func (api *UserAPI) Register(c *gin.Context) {
	var payload usermapper.RegisterRequest
	if !bindJSON(c, &payload) {
		return
	}
	user, err := api.service.Register(c.Request.Context(), principal(c), payload.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usermapper.FromDomain(user))
}

// Post /api/users/login
func (api *UserAPI) Login(c *gin.Context) {
	var payload usermapper.LoginRequest
	if !bindJSON(c, &payload) {
		return
	}
	result, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromLogin(result))
}

// Post /api/users/logout
// Ends the caller's current session
func (api *UserAPI) Logout(c *gin.Context) {
	if err := api.service.Logout(c.Request.Context(), principal(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message{Message: "Logged out successfully"})
}

// Get /api/users/me
func (api *UserAPI) Me(c *gin.Context) {
	user, err := api.service.Me(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomain(user))
}

// Get /api/users
func (api *UserAPI) ListUsers(c *gin.Context) {
	users, err := api.service.List(c.Request.Context(), principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainList(users))
}

// Put /api/users/:email/block
// Blocks or unblocks an account and revokes its sessions when blocked
func (api *UserAPI) SetBlocked(c *gin.Context) {
	var payload usermapper.BlockRequest
	if !bindJSON(c, &payload) {
		return
	}
	user, err := api.service.SetBlocked(c.Request.Context(), principal(c), c.Param("email"), payload.IsBlocked)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomain(user))
}

// Delete /api/users/:email
func (api *UserAPI) DeleteUser(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), principal(c), c.Param("email")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message{Message: "User deleted successfully"})
}
