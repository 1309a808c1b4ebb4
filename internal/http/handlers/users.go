package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"transport/internal/http/middleware"
	"transport/internal/repositories"
	"transport/internal/services"
)

type userRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r userRequest) input() services.UserInput {
	return services.UserInput{
		Name:     r.Name,
		Username: r.Username,
		Email:    r.Email,
		Phone:    r.Phone,
		Password: r.Password,
		Role:     r.Role,
	}
}

func directorySvc(c *gin.Context) services.DirectoryService {
	return services.DirectoryService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/users?q=&role=
func GetUsers(c *gin.Context) {
	users, err := (repositories.UserRepo{}).List(c.Query("q"), c.Query("role"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GET /api/users/:id
func GetUserByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := (repositories.UserRepo{}).GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// POST /api/users
func CreateUser(c *gin.Context) {
	var req userRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	user, err := directorySvc(c).CreateUser(middleware.UserID(c), req.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// PUT /api/users/:id
func UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req userRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	user, err := directorySvc(c).UpdateUser(middleware.UserID(c), id, req.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DELETE /api/users/:id
func DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := directorySvc(c).DeleteUser(middleware.UserID(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

type accountStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/users/:id/status
func SetAccountStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req accountStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := directorySvc(c).SetAccountStatus(middleware.UserID(c), id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account status updated"})
}
